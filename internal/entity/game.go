package entity

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

// Game is the stored form of a match: everything needed to rebuild it.
type Game struct {
	ID     string       `json:"id"`
	Board  [Rows]string `json:"board"`
	Turn   Player       `json:"turn"`
	Winner Player       `json:"winner,omitempty"`
	Status string       `json:"status"`
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}
