package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gustavo-laureano/checkers-backpropagation/internal/checkers"
	"github.com/gustavo-laureano/checkers-backpropagation/internal/entity"
	"github.com/gustavo-laureano/checkers-backpropagation/internal/pkg"
)

// GameState is a stored game together with the moves open to the side to play.
type GameState struct {
	Game       *entity.Game
	LegalMoves []entity.Move
}

type GameUseCase interface {
	CreateGame(ctx context.Context) (*GameState, error)
	GetGame(ctx context.Context, id string) (*GameState, error)
	DeleteGame(ctx context.Context, id string) error

	MakeMove(ctx context.Context, id string, move entity.Move) (*GameState, error)
	PreviewMove(ctx context.Context, id string, move entity.Move) (*entity.Board, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameUseCase struct {
	logger   *slog.Logger
	gameRepo gameRepo
}

func NewGameUseCase(logger *slog.Logger, gameRepo gameRepo) GameUseCase {
	return &gameUseCase{
		logger:   logger.With("component", "gameUseCase"),
		gameRepo: gameRepo,
	}
}

func (that *gameUseCase) CreateGame(ctx context.Context) (*GameState, error) {
	manager := checkers.NewGameManager()
	game := manager.Snapshot(pkg.GenerateGameID())

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "method", "CreateGame", "gameID", game.ID)

	return &GameState{Game: game, LegalMoves: manager.LegalMoves()}, nil
}

func (that *gameUseCase) GetGame(ctx context.Context, id string) (*GameState, error) {
	manager, err := that.loadGame(ctx, id)
	if err != nil {
		return nil, err
	}

	return &GameState{Game: manager.Snapshot(id), LegalMoves: manager.LegalMoves()}, nil
}

func (that *gameUseCase) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "method", "DeleteGame", "gameID", id)

	return nil
}

func (that *gameUseCase) MakeMove(ctx context.Context, id string, move entity.Move) (*GameState, error) {
	log := that.logger.With("method", "MakeMove", "gameID", id)

	manager, err := that.loadGame(ctx, id)
	if err != nil {
		return nil, err
	}

	player := manager.CurrentPlayer()
	if err = manager.Apply(move); err != nil {
		log.Debug("move rejected", "player", player, "move", move.String(), "error", err)
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	game := manager.Snapshot(id)
	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	log.Debug("move applied", "player", player, "move", move.String(), "captures", len(move.Captures))

	if winner, over := manager.Winner(); over {
		log.Info("game finished", "winner", winner)
	}

	return &GameState{Game: game, LegalMoves: manager.LegalMoves()}, nil
}

func (that *gameUseCase) PreviewMove(ctx context.Context, id string, move entity.Move) (*entity.Board, error) {
	manager, err := that.loadGame(ctx, id)
	if err != nil {
		return nil, err
	}

	board, err := manager.Simulate(move)
	if err != nil {
		return nil, fmt.Errorf("failed to preview move: %w", err)
	}

	return board, nil
}

func (that *gameUseCase) loadGame(ctx context.Context, id string) (*checkers.GameManager, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	manager, err := checkers.Restore(game)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	return manager, nil
}
