package checkers

import (
	"github.com/gustavo-laureano/checkers-backpropagation/internal/entity"
)

var diagonals = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// MoveValidator computes legal moves. It only reads the board.
type MoveValidator struct{}

func NewMoveValidator() *MoveValidator {
	return &MoveValidator{}
}

// LegalMoves returns every move the player may make this turn. Captures are
// mandatory and only the chains with the most captures across all of the
// player's pieces are kept. An empty result means the player has lost.
func (that *MoveValidator) LegalMoves(board *entity.Board, player entity.Player) []entity.Move {
	var chains, simple []entity.Move

	for row := 0; row < entity.Rows; row++ {
		for col := 0; col < entity.Cols; col++ {
			piece := board.Get(row, col)
			if piece == nil || piece.Owner() != player {
				continue
			}

			origin := entity.Pos(row, col)

			pieceChains := that.captureChains(board, piece, origin)
			if len(pieceChains) > 0 {
				chains = append(chains, pieceChains...)
				continue
			}

			simple = append(simple, that.simpleMoves(board, piece, origin)...)
		}
	}

	if len(chains) == 0 {
		return simple
	}

	return longestChains(chains)
}

func longestChains(chains []entity.Move) []entity.Move {
	longest := 0
	for _, chain := range chains {
		longest = max(longest, len(chain.Captures))
	}

	out := make([]entity.Move, 0, len(chains))
	for _, chain := range chains {
		if len(chain.Captures) == longest {
			out = append(out, chain)
		}
	}

	return out
}

// chainStep is a worklist entry: where the piece stands and what it took to get there.
type chainStep struct {
	at       entity.Position
	captured []entity.Position
}

// captureChains runs a depth-first search over every jump sequence from origin.
// The piece keeps its rank for the whole search; a man reaching the far row
// mid-chain is crowned only after the move is applied.
func (that *MoveValidator) captureChains(board *entity.Board, piece *entity.Piece, origin entity.Position) []entity.Move {
	var chains []entity.Move

	stack := []chainStep{{at: origin}}
	for len(stack) > 0 {
		step := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		jumps := that.singleJumps(board, piece, step.at, step.captured)
		if len(jumps) == 0 {
			if len(step.captured) > 0 {
				chains = append(chains, entity.Move{From: origin, To: step.at, Captures: step.captured})
			}
			continue
		}

		for _, jump := range jumps {
			captured := make([]entity.Position, len(step.captured), len(step.captured)+1)
			copy(captured, step.captured)

			stack = append(stack, chainStep{at: jump.To, captured: append(captured, jump.Captures[0])})
		}
	}

	return chains
}

// singleJumps lists the one-capture jumps available from pos.
func (that *MoveValidator) singleJumps(board *entity.Board, piece *entity.Piece, pos entity.Position, captured []entity.Position) []entity.Move {
	var jumps []entity.Move

	for _, d := range diagonals {
		if !piece.IsCrowned() {
			over := pos.Add(d[0], d[1])
			land := pos.Add(2*d[0], 2*d[1])

			if !board.InBounds(land.Row, land.Col) || board.At(land) != nil {
				continue
			}

			if isCapturable(board.At(over), piece.Owner(), over, captured) {
				jumps = append(jumps, entity.Move{From: pos, To: land, Captures: []entity.Position{over}})
			}
			continue
		}

		// A king takes the first piece on the ray and may land on any empty square behind it.
		victim, found := entity.Position{}, false
		for cur := pos.Add(d[0], d[1]); board.InBounds(cur.Row, cur.Col); cur = cur.Add(d[0], d[1]) {
			occupant := board.At(cur)

			if !found {
				if occupant == nil {
					continue
				}
				if !isCapturable(occupant, piece.Owner(), cur, captured) {
					break
				}
				victim, found = cur, true
				continue
			}

			if occupant != nil {
				break
			}
			jumps = append(jumps, entity.Move{From: pos, To: cur, Captures: []entity.Position{victim}})
		}
	}

	return jumps
}

func (that *MoveValidator) simpleMoves(board *entity.Board, piece *entity.Piece, origin entity.Position) []entity.Move {
	var moves []entity.Move

	if !piece.IsCrowned() {
		forward := piece.Owner().Forward()
		for _, dCol := range []int{-1, 1} {
			to := origin.Add(forward, dCol)
			if board.InBounds(to.Row, to.Col) && board.At(to) == nil {
				moves = append(moves, entity.Move{From: origin, To: to})
			}
		}

		return moves
	}

	for _, d := range diagonals {
		for to := origin.Add(d[0], d[1]); board.InBounds(to.Row, to.Col) && board.At(to) == nil; to = to.Add(d[0], d[1]) {
			moves = append(moves, entity.Move{From: origin, To: to})
		}
	}

	return moves
}

// isCapturable reports whether occupant is an opponent not yet taken in this chain.
func isCapturable(occupant *entity.Piece, mover entity.Player, at entity.Position, captured []entity.Position) bool {
	if occupant == nil || occupant.Owner() == mover {
		return false
	}

	for _, c := range captured {
		if c == at {
			return false
		}
	}

	return true
}
