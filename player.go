package main

type PlayerColor uint8

const (
	PlayerBlack PlayerColor = iota
	PlayerWhite
)

func (p PlayerColor) Opponent() PlayerColor {
	if p == PlayerBlack {
		return PlayerWhite
	}
	return PlayerBlack
}

func (p PlayerColor) String() string {
	if p == PlayerBlack {
		return "black"
	}
	return "white"
}

type GameStatus uint8

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusBlackWon
	StatusWhiteWon
	StatusDraw
)

type PlayerType uint8

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

// IPlayer is what the game loop polls each turn. A human player reports
// a move once one has been submitted over the API; an AI player reports
// one once its background search finishes. Update must not block.
type IPlayer interface {
	IsHuman() bool
	Update(state *GameState, moveCount int)
	// TakeMove returns (move, decided, hasMove). decided stays false
	// while the player is still thinking; hasMove is false when the
	// player concluded that no legal move exists.
	TakeMove() (Move, bool, bool)
	Reset()
}
