package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	Rows = 8
	Cols = 8

	setupRows = 3
)

const (
	symbolEmpty     = '.'
	symbolWhiteMan  = 'w'
	symbolWhiteKing = 'W'
	symbolBlackMan  = 'b'
	symbolBlackKing = 'B'
)

var (
	ErrInvalidBoard  = errors.New("invalid board")
	ErrUnknownPlayer = errors.New("unknown player")
)

// Board is the 8x8 placement grid. It knows nothing about the rules:
// reads outside the grid return nil and writes outside it are ignored.
type Board struct {
	grid [Rows][Cols]*Piece
}

func NewBoard() *Board {
	return &Board{}
}

func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

func (that *Board) Get(row, col int) *Piece {
	if !that.InBounds(row, col) {
		return nil
	}
	return that.grid[row][col]
}

func (that *Board) At(pos Position) *Piece {
	return that.Get(pos.Row, pos.Col)
}

func (that *Board) Place(piece *Piece, row, col int) {
	if that.InBounds(row, col) {
		that.grid[row][col] = piece
	}
}

func (that *Board) Remove(row, col int) {
	if that.InBounds(row, col) {
		that.grid[row][col] = nil
	}
}

// Relocate moves the piece itself, so its crown travels with it.
func (that *Board) Relocate(from, to Position) {
	piece := that.At(from)
	if piece == nil {
		return
	}

	that.Remove(from.Row, from.Col)
	that.Place(piece, to.Row, to.Col)
}

// InitializeStandardSetup fills the three rows nearest each edge on the dark squares.
func (that *Board) InitializeStandardSetup() {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if !IsPlayable(row, col) {
				continue
			}

			switch {
			case row < setupRows:
				that.Place(NewPiece(Black), row, col)
			case row >= Rows-setupRows:
				that.Place(NewPiece(White), row, col)
			}
		}
	}
}

func (that *Board) DeepCopy() *Board {
	clone := &Board{}
	for row := range that.grid {
		for col, piece := range that.grid[row] {
			if piece != nil {
				clone.grid[row][col] = &Piece{owner: piece.owner, crowned: piece.crowned}
			}
		}
	}

	return clone
}

func (that *Board) Pieces(player Player) int {
	count := 0
	for row := range that.grid {
		for _, piece := range that.grid[row] {
			if piece != nil && piece.owner == player {
				count++
			}
		}
	}

	return count
}

// Rows encodes the board one string per row, see ParseBoard.
func (that *Board) Rows() [Rows]string {
	var out [Rows]string
	for row := range that.grid {
		line := make([]byte, Cols)
		for col, piece := range that.grid[row] {
			if piece == nil {
				line[col] = symbolEmpty
				continue
			}
			line[col] = piece.symbol()
		}
		out[row] = string(line)
	}

	return out
}

// ParseBoard builds a board from 8 rows of 8 symbols:
// '.' empty, 'w'/'W' white man/king, 'b'/'B' black man/king.
func ParseBoard(rows []string) (*Board, error) {
	if len(rows) != Rows {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoard, Rows, len(rows))
	}

	board := NewBoard()
	for row, line := range rows {
		if len(line) != Cols {
			return nil, fmt.Errorf("%w: row %d has %d squares", ErrInvalidBoard, row, len(line))
		}

		for col := 0; col < Cols; col++ {
			switch line[col] {
			case symbolEmpty:
			case symbolWhiteMan:
				board.Place(NewPiece(White), row, col)
			case symbolWhiteKing:
				board.Place(&Piece{owner: White, crowned: true}, row, col)
			case symbolBlackMan:
				board.Place(NewPiece(Black), row, col)
			case symbolBlackKing:
				board.Place(&Piece{owner: Black, crowned: true}, row, col)
			default:
				return nil, fmt.Errorf("%w: symbol %q at %d,%d", ErrInvalidBoard, line[col], row, col)
			}
		}
	}

	return board, nil
}

func (that *Board) String() string {
	var b strings.Builder

	b.WriteString("   ")
	for col := 0; col < Cols; col++ {
		b.WriteString(" " + strconv.Itoa(col) + " ")
	}
	b.WriteString("\n  +" + strings.Repeat("---", Cols) + "+\n")

	for row := range that.grid {
		b.WriteString(strconv.Itoa(row) + " |")
		for _, piece := range that.grid[row] {
			if piece == nil {
				b.WriteString(" . ")
				continue
			}
			fmt.Fprintf(&b, "%-3s", " "+piece.String())
		}
		b.WriteString("|\n")
	}
	b.WriteString("  +" + strings.Repeat("---", Cols) + "+\n")

	return b.String()
}

// IsPlayable reports whether the square is a dark one.
func IsPlayable(row, col int) bool {
	return (row+col)%2 == 1
}
