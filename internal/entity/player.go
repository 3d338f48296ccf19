package entity

import "fmt"

// Player is one side of the board.
type Player string

const (
	White Player = "white"
	Black Player = "black"
)

// Opponent returns the other side.
func (that Player) Opponent() Player {
	if that == White {
		return Black
	}
	return White
}

// Forward is the row step of a man's non-capturing move.
func (that Player) Forward() int {
	if that == White {
		return -1
	}
	return 1
}

// PromotionRow is the far row where this side's men are crowned.
func (that Player) PromotionRow() int {
	if that == White {
		return 0
	}
	return Rows - 1
}

func ParsePlayer(s string) (Player, error) {
	switch p := Player(s); p {
	case White, Black:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPlayer, s)
	}
}
