package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gustavo-laureano/checkers-backpropagation/internal/apperror"
	"github.com/gustavo-laureano/checkers-backpropagation/internal/entity"
	"github.com/gustavo-laureano/checkers-backpropagation/internal/usecase"
)

var errMalformedMove = errors.New("move must name from and to squares")

type GameHandler interface {
	CreateGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	DeleteGame(w http.ResponseWriter, r *http.Request)

	MakeMove(w http.ResponseWriter, r *http.Request)
	PreviewMove(w http.ResponseWriter, r *http.Request)
}

type gameUseCase interface {
	CreateGame(ctx context.Context) (*usecase.GameState, error)
	GetGame(ctx context.Context, id string) (*usecase.GameState, error)
	DeleteGame(ctx context.Context, id string) error

	MakeMove(ctx context.Context, id string, move entity.Move) (*usecase.GameState, error)
	PreviewMove(ctx context.Context, id string, move entity.Move) (*entity.Board, error)
}

type gameResponse struct {
	*entity.Game
	LegalMoves []entity.Move `json:"legal_moves"`
}

type previewResponse struct {
	Board [entity.Rows]string `json:"board"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type moveRequest struct {
	From     *entity.Position  `json:"from"`
	To       *entity.Position  `json:"to"`
	Captures []entity.Position `json:"captures"`
}

type gameHandler struct {
	logger *slog.Logger
	game   gameUseCase
}

func NewGameHandler(logger *slog.Logger, game gameUseCase) GameHandler {
	return &gameHandler{
		logger: logger.With("component", "gameHandler"),
		game:   game,
	}
}

func (that *gameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	state, err := that.game.CreateGame(r.Context())
	if err != nil {
		that.writeError(w, "CreateGame", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, newGameResponse(state))
}

func (that *gameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	state, err := that.game.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "GetGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(state))
}

func (that *gameHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.game.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, "DeleteGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *gameHandler) MakeMove(w http.ResponseWriter, r *http.Request) {
	move, err := decodeMove(r)
	if err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	state, err := that.game.MakeMove(r.Context(), chi.URLParam(r, "id"), move)
	if err != nil {
		that.writeError(w, "MakeMove", err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(state))
}

func (that *gameHandler) PreviewMove(w http.ResponseWriter, r *http.Request) {
	move, err := decodeMove(r)
	if err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	board, err := that.game.PreviewMove(r.Context(), chi.URLParam(r, "id"), move)
	if err != nil {
		that.writeError(w, "PreviewMove", err)
		return
	}

	that.writeJSON(w, http.StatusOK, previewResponse{Board: board.Rows()})
}

func (that *gameHandler) writeError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		that.writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *gameHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidMove):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeMove(r *http.Request) (entity.Move, error) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return entity.Move{}, err
	}

	if req.From == nil || req.To == nil {
		return entity.Move{}, errMalformedMove
	}

	return entity.Move{From: *req.From, To: *req.To, Captures: req.Captures}, nil
}

func newGameResponse(state *usecase.GameState) gameResponse {
	moves := state.LegalMoves
	if moves == nil {
		moves = []entity.Move{}
	}

	return gameResponse{Game: state.Game, LegalMoves: moves}
}
