package domain

// PlayerID is the content of a board cell and doubles as the identity of a side.
type PlayerID int

const (
	Empty    PlayerID = 0
	Player   PlayerID = 1
	Opponent PlayerID = 2
)

// Other returns the opposing side. Empty has no opponent and is returned unchanged.
func (p PlayerID) Other() PlayerID {
	switch p {
	case Player:
		return Opponent
	case Opponent:
		return Player
	}
	return Empty
}

func (p PlayerID) IsSide() bool {
	return p == Player || p == Opponent
}

func (p PlayerID) String() string {
	switch p {
	case Player:
		return "player"
	case Opponent:
		return "opponent"
	}
	return "empty"
}

// ParseSide accepts the names used on the wire ("player", "opponent") as well as 1 and 2.
func ParseSide(s string) (PlayerID, error) {
	switch s {
	case "player", "1":
		return Player, nil
	case "opponent", "2":
		return Opponent, nil
	}
	return Empty, ErrInvalidSide
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// NoColumn is returned in place of a column when there is no move to make.
const NoColumn = -1

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// Outcome is what the shell polls after each move.
type Outcome struct {
	Status GameStatus `json:"status"`
	Winner PlayerID   `json:"winner"`
}

func (o Outcome) IsFinished() bool {
	return o.Status != StatusActive
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn Error = "column out of range"
	ErrColumnFull    Error = "column is full"
	ErrNoLegalMoves  Error = "no legal moves"
	ErrInvalidDepth  Error = "search depth out of range"
	ErrInvalidMove   Error = "invalid move"
	ErrInvalidSide   Error = "invalid side"
	ErrInvalidBoard  Error = "invalid board"
	ErrGameNotFound  Error = "game not found"
	ErrCacheMiss     Error = "cache miss"
)
