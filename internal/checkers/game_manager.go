package checkers

import (
	"fmt"

	"github.com/gustavo-laureano/checkers-backpropagation/internal/apperror"
	"github.com/gustavo-laureano/checkers-backpropagation/internal/entity"
)

// GameManager runs one game: it owns the board and alternates turns.
// Each instance is independent, so many games can run side by side.
type GameManager struct {
	board     *entity.Board
	validator *MoveValidator

	turn       entity.Player
	winner     entity.Player
	legalMoves []entity.Move
}

// NewGameManager starts a standard game with White to move.
func NewGameManager() *GameManager {
	board := entity.NewBoard()
	board.InitializeStandardSetup()

	return NewGameManagerFromBoard(board, entity.White)
}

// NewGameManagerFromBoard resumes play on an arbitrary position. If turn has no
// legal move there, the game is already over.
func NewGameManagerFromBoard(board *entity.Board, turn entity.Player) *GameManager {
	manager := &GameManager{
		board:     board,
		validator: NewMoveValidator(),
		turn:      turn,
	}
	manager.updateLegalMoves()

	return manager
}

// Restore rebuilds a manager from its stored form.
func Restore(game *entity.Game) (*GameManager, error) {
	board, err := entity.ParseBoard(game.Board[:])
	if err != nil {
		return nil, fmt.Errorf("failed to parse board of game %s: %w", game.ID, err)
	}

	turn, err := entity.ParsePlayer(string(game.Turn))
	if err != nil {
		return nil, fmt.Errorf("failed to restore turn of game %s: %w", game.ID, err)
	}

	return NewGameManagerFromBoard(board, turn), nil
}

// Apply plays move if it is one of the current legal moves, compared by
// origin, destination and captured squares. A rejected move changes nothing.
func (that *GameManager) Apply(move entity.Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !that.isLegal(move) {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidMove, move)
	}

	play(that.board, move)

	that.turn = that.turn.Opponent()
	that.updateLegalMoves()

	return nil
}

// Simulate plays a legal move on a copy of the board and returns the copy.
func (that *GameManager) Simulate(move entity.Move) (*entity.Board, error) {
	if that.IsFinished() {
		return nil, apperror.ErrGameFinished
	}

	if !that.isLegal(move) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrInvalidMove, move)
	}

	board := that.board.DeepCopy()
	play(board, move)

	return board, nil
}

func (that *GameManager) CurrentPlayer() entity.Player {
	return that.turn
}

func (that *GameManager) LegalMoves() []entity.Move {
	return that.legalMoves
}

// Winner is set once the side to move has nothing left to play.
func (that *GameManager) Winner() (entity.Player, bool) {
	return that.winner, that.winner != ""
}

func (that *GameManager) IsFinished() bool {
	return that.winner != ""
}

// Board is shared with the manager; callers must not mutate it.
func (that *GameManager) Board() *entity.Board {
	return that.board
}

// Snapshot returns the stored form of the game under id.
func (that *GameManager) Snapshot(id string) *entity.Game {
	game := &entity.Game{
		ID:     id,
		Board:  that.board.Rows(),
		Turn:   that.turn,
		Winner: that.winner,
		Status: entity.StatusOngoing,
	}

	if that.IsFinished() {
		game.Status = entity.StatusFinished
	}

	return game
}

func (that *GameManager) updateLegalMoves() {
	that.legalMoves = that.validator.LegalMoves(that.board, that.turn)

	if len(that.legalMoves) == 0 {
		that.winner = that.turn.Opponent()
	}
}

func (that *GameManager) isLegal(move entity.Move) bool {
	for _, legal := range that.legalMoves {
		if legal.Equal(move) {
			return true
		}
	}

	return false
}

// play mutates board with an already validated move and crowns the piece
// if it finished on its promotion row.
func play(board *entity.Board, move entity.Move) {
	piece := board.At(move.From)

	board.Relocate(move.From, move.To)
	for _, captured := range move.Captures {
		board.Remove(captured.Row, captured.Col)
	}

	if piece != nil && !piece.IsCrowned() && move.To.Row == piece.Owner().PromotionRow() {
		piece.Promote()
	}
}
