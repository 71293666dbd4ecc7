package domain

// Move is one placed piece.
type Move struct {
	Player PlayerID `json:"player"`
	Column int      `json:"column"`
	Row    int      `json:"row"`
}

// Game is the single long-lived mutable board of a round plus turn bookkeeping.
type Game struct {
	Board         Board
	CurrentPlayer PlayerID
	Status        GameStatus
	Winner        PlayerID
	MoveCount     int
	Moves         []Move
}

func NewGame(first PlayerID) *Game {
	if !first.IsSide() {
		first = Player
	}
	return &Game{
		Board:         NewBoard(),
		CurrentPlayer: first,
		Status:        StatusActive,
		Winner:        Empty,
	}
}

func (g *Game) MakeMove(player PlayerID, column int) (int, error) {
	if g.Status != StatusActive || player != g.CurrentPlayer {
		return -1, ErrInvalidMove
	}

	row, err := g.Board.Place(column, player)
	if err != nil {
		return -1, err
	}

	g.MoveCount++
	g.Moves = append(g.Moves, Move{Player: player, Column: column, Row: row})

	if CheckWin(&g.Board, row, column, player) {
		g.Status = StatusWon
		g.Winner = player
		return row, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentPlayer = player.Other()
	return row, nil
}

func (g *Game) Outcome() Outcome {
	return Outcome{Status: g.Status, Winner: g.Winner}
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}
