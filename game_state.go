package main

type GameState struct {
	Board       Board
	ToMove      PlayerColor
	Status      GameStatus
	MoveCount   int
	LastMove    Move
	HasLastMove bool
	WinningLine []Move
	Hash        uint64
}

func NewGameState(settings GameSettings) GameState {
	return GameState{
		Board:  NewBoard(settings.BoardSize),
		ToMove: PlayerBlack,
		Status: StatusNotStarted,
	}
}

func (s GameState) Clone() GameState {
	clone := s
	clone.Board = s.Board.Clone()
	clone.WinningLine = append([]Move(nil), s.WinningLine...)
	return clone
}

func (s *GameState) Reset(settings GameSettings) {
	*s = NewGameState(settings)
}
