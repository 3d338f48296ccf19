package entity

// Piece is a man or, once promoted, a king. The owner never changes.
type Piece struct {
	owner   Player
	crowned bool
}

func NewPiece(owner Player) *Piece {
	return &Piece{owner: owner}
}

func (that *Piece) Owner() Player {
	return that.owner
}

func (that *Piece) IsCrowned() bool {
	return that.crowned
}

// Promote crowns the piece. Calling it again has no effect.
func (that *Piece) Promote() {
	that.crowned = true
}

func (that *Piece) String() string {
	mark := "B"
	if that.owner == White {
		mark = "W"
	}

	if that.crowned {
		return mark + "K"
	}
	return mark
}

// symbol is the single-byte encoding used by snapshots.
func (that *Piece) symbol() byte {
	switch {
	case that.owner == White && that.crowned:
		return symbolWhiteKing
	case that.owner == White:
		return symbolWhiteMan
	case that.crowned:
		return symbolBlackKing
	default:
		return symbolBlackMan
	}
}
