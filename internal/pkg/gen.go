package pkg

import "github.com/google/uuid"

// GenerateGameID - generates a new unique game ID.
func GenerateGameID() string {
	return uuid.NewString()
}
