package entity

import (
	"fmt"
	"strings"
)

// Position is a square on the board, zero-based from the top-left corner.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

func (that Position) Add(dRow, dCol int) Position {
	return Position{Row: that.Row + dRow, Col: that.Col + dCol}
}

func (that Position) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Move takes a piece from From to To, removing every square in Captures.
// Captures keeps the order in which the pieces were jumped.
type Move struct {
	From     Position   `json:"from"`
	To       Position   `json:"to"`
	Captures []Position `json:"captures,omitempty"`
}

func (that Move) IsCapture() bool {
	return len(that.Captures) > 0
}

// Equal compares the full move, captured squares included.
func (that Move) Equal(other Move) bool {
	if that.From != other.From || that.To != other.To {
		return false
	}

	if len(that.Captures) != len(other.Captures) {
		return false
	}

	for i := range that.Captures {
		if that.Captures[i] != other.Captures[i] {
			return false
		}
	}

	return true
}

func (that Move) String() string {
	if !that.IsCapture() {
		return that.From.String() + "-" + that.To.String()
	}

	captures := make([]string, len(that.Captures))
	for i, c := range that.Captures {
		captures[i] = c.String()
	}

	return fmt.Sprintf("%sx%s [%s]", that.From, that.To, strings.Join(captures, " "))
}
