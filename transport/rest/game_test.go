package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gustavo-laureano/checkers-backpropagation/internal/apperror"
	"github.com/gustavo-laureano/checkers-backpropagation/internal/checkers"
	"github.com/gustavo-laureano/checkers-backpropagation/internal/entity"
	"github.com/gustavo-laureano/checkers-backpropagation/internal/usecase"
)

type mockGameUseCase struct {
	mock.Mock
}

func (that *mockGameUseCase) CreateGame(ctx context.Context) (*usecase.GameState, error) {
	args := that.Called(ctx)
	state, _ := args.Get(0).(*usecase.GameState)
	return state, args.Error(1)
}

func (that *mockGameUseCase) GetGame(ctx context.Context, id string) (*usecase.GameState, error) {
	args := that.Called(ctx, id)
	state, _ := args.Get(0).(*usecase.GameState)
	return state, args.Error(1)
}

func (that *mockGameUseCase) DeleteGame(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

func (that *mockGameUseCase) MakeMove(ctx context.Context, id string, move entity.Move) (*usecase.GameState, error) {
	args := that.Called(ctx, id, move)
	state, _ := args.Get(0).(*usecase.GameState)
	return state, args.Error(1)
}

func (that *mockGameUseCase) PreviewMove(ctx context.Context, id string, move entity.Move) (*entity.Board, error) {
	args := that.Called(ctx, id, move)
	board, _ := args.Get(0).(*entity.Board)
	return board, args.Error(1)
}

func newTestServer(t *testing.T) (*httptest.Server, *mockGameUseCase) {
	t.Helper()

	game := &mockGameUseCase{}
	game.Test(t)
	t.Cleanup(func() { game.AssertExpectations(t) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httptest.NewServer(NewRouter(logger, NewGameHandler(logger, game)))
	t.Cleanup(server.Close)

	return server, game
}

func newState(id string) *usecase.GameState {
	manager := checkers.NewGameManager()
	return &usecase.GameState{Game: manager.Snapshot(id), LegalMoves: manager.LegalMoves()}
}

func do(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, url, strings.NewReader(body))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}

	return resp, decoded
}

func TestPing(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
}

func TestGameHandler_CreateGame(t *testing.T) {
	t.Run("Returns the new game", func(t *testing.T) {
		// Given: a use case creating game g1
		server, game := newTestServer(t)
		game.On("CreateGame", mock.Anything).Return(newState("g1"), nil).Once()

		// When: POST /games
		resp, body := do(t, http.MethodPost, server.URL+"/games", "")

		// Then: 201 with the game and its opening moves
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		assert.Equal(t, "g1", body["id"])
		assert.Equal(t, "white", body["turn"])
		assert.Equal(t, "ongoing", body["status"])
		assert.NotContains(t, body, "winner")
		assert.Len(t, body["legal_moves"], 7)
		assert.Len(t, body["board"], entity.Rows)
	})

	t.Run("Hides internal errors", func(t *testing.T) {
		// Given: a failing use case
		server, game := newTestServer(t)
		game.On("CreateGame", mock.Anything).Return(nil, errors.New("redis down")).Once()

		// When: POST /games
		resp, body := do(t, http.MethodPost, server.URL+"/games", "")

		// Then: 500 without the cause
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Internal Server Error", body["error"])
	})
}

func TestGameHandler_GetGame(t *testing.T) {
	t.Run("Returns the stored game", func(t *testing.T) {
		server, game := newTestServer(t)
		game.On("GetGame", mock.Anything, "g1").Return(newState("g1"), nil).Once()

		resp, body := do(t, http.MethodGet, server.URL+"/games/g1", "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "g1", body["id"])
	})

	t.Run("Unknown game is 404", func(t *testing.T) {
		server, game := newTestServer(t)
		game.On("GetGame", mock.Anything, "nope").
			Return(nil, fmt.Errorf("failed to get game: %w", apperror.ErrGameNotFound)).Once()

		resp, body := do(t, http.MethodGet, server.URL+"/games/nope", "")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, body["error"], apperror.ErrGameNotFound.Error())
	})
}

func TestGameHandler_DeleteGame(t *testing.T) {
	t.Run("Deleted game is 204", func(t *testing.T) {
		server, game := newTestServer(t)
		game.On("DeleteGame", mock.Anything, "g1").Return(nil).Once()

		resp, _ := do(t, http.MethodDelete, server.URL+"/games/g1", "")

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("Unknown game is 404", func(t *testing.T) {
		server, game := newTestServer(t)
		game.On("DeleteGame", mock.Anything, "g1").Return(apperror.ErrGameNotFound).Once()

		resp, _ := do(t, http.MethodDelete, server.URL+"/games/g1", "")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGameHandler_MakeMove(t *testing.T) {
	jump := entity.Move{From: entity.Pos(4, 3), To: entity.Pos(2, 1), Captures: []entity.Position{entity.Pos(3, 2)}}
	jumpBody := `{"from":{"row":4,"col":3},"to":{"row":2,"col":1},"captures":[{"row":3,"col":2}]}`

	t.Run("Decodes the move and returns the new state", func(t *testing.T) {
		// Given: a use case accepting the capture
		server, game := newTestServer(t)
		game.On("MakeMove", mock.Anything, "g1", jump).Return(newState("g1"), nil).Once()

		// When: the capture is posted
		resp, body := do(t, http.MethodPost, server.URL+"/games/g1/moves", jumpBody)

		// Then: 200 with the state
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "g1", body["id"])
	})

	t.Run("Simple move without captures", func(t *testing.T) {
		server, game := newTestServer(t)
		move := entity.Move{From: entity.Pos(5, 0), To: entity.Pos(4, 1)}
		game.On("MakeMove", mock.Anything, "g1", move).Return(newState("g1"), nil).Once()

		resp, _ := do(t, http.MethodPost, server.URL+"/games/g1/moves", `{"from":{"row":5,"col":0},"to":{"row":4,"col":1}}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Finished game has empty legal moves", func(t *testing.T) {
		server, game := newTestServer(t)
		state := newState("g1")
		state.Game.Status = entity.StatusFinished
		state.Game.Winner = entity.White
		state.LegalMoves = nil
		game.On("MakeMove", mock.Anything, "g1", jump).Return(state, nil).Once()

		resp, body := do(t, http.MethodPost, server.URL+"/games/g1/moves", jumpBody)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "white", body["winner"])
		assert.Equal(t, []any{}, body["legal_moves"])
	})

	t.Run("Maps use case errors to status codes", func(t *testing.T) {
		cases := []struct {
			name   string
			err    error
			status int
		}{
			{"illegal move", fmt.Errorf("failed to make move: %w", apperror.ErrInvalidMove), http.StatusUnprocessableEntity},
			{"finished game", apperror.ErrGameFinished, http.StatusConflict},
			{"unknown game", apperror.ErrGameNotFound, http.StatusNotFound},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				server, game := newTestServer(t)
				game.On("MakeMove", mock.Anything, "g1", jump).Return(nil, tc.err).Once()

				resp, body := do(t, http.MethodPost, server.URL+"/games/g1/moves", jumpBody)

				assert.Equal(t, tc.status, resp.StatusCode)
				assert.NotEmpty(t, body["error"])
			})
		}
	})

	t.Run("Malformed body is 400", func(t *testing.T) {
		for _, body := range []string{`{`, `{"to":{"row":4,"col":1}}`, `{"from":{"row":5,"col":0}}`} {
			server, game := newTestServer(t)

			resp, _ := do(t, http.MethodPost, server.URL+"/games/g1/moves", body)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
			game.AssertNotCalled(t, "MakeMove", mock.Anything, mock.Anything, mock.Anything)
		}
	})
}

func TestGameHandler_PreviewMove(t *testing.T) {
	move := entity.Move{From: entity.Pos(5, 0), To: entity.Pos(4, 1)}

	t.Run("Returns the previewed board", func(t *testing.T) {
		// Given: the use case previews a simple move
		server, game := newTestServer(t)
		board, err := checkers.NewGameManager().Simulate(move)
		require.NoError(t, err)
		game.On("PreviewMove", mock.Anything, "g1", move).Return(board, nil).Once()

		// When: the preview is requested
		resp, body := do(t, http.MethodPost, server.URL+"/games/g1/preview", `{"from":{"row":5,"col":0},"to":{"row":4,"col":1}}`)

		// Then: the board shows the moved man
		require.Equal(t, http.StatusOK, resp.StatusCode)
		rows, ok := body["board"].([]any)
		require.True(t, ok)
		assert.Equal(t, ".w......", rows[4])
	})

	t.Run("Illegal preview is 422", func(t *testing.T) {
		server, game := newTestServer(t)
		game.On("PreviewMove", mock.Anything, "g1", move).Return(nil, apperror.ErrInvalidMove).Once()

		resp, _ := do(t, http.MethodPost, server.URL+"/games/g1/preview", `{"from":{"row":5,"col":0},"to":{"row":4,"col":1}}`)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}
