package uid

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateGameID returns a random 32-character hex game ID.
func GenerateGameID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// IsGameID reports whether id looks like something GenerateGameID produced.
func IsGameID(id string) bool {
	if len(id) != 32 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
