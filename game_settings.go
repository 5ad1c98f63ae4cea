package main

import "fmt"

type GameSettings struct {
	BoardSize       int        `json:"board_size"`
	WinLength       int        `json:"win_length"`
	BlackType       PlayerType `json:"black_type"`
	WhiteType       PlayerType `json:"white_type"`
	BlackDifficulty Difficulty `json:"black_difficulty"`
	WhiteDifficulty Difficulty `json:"white_difficulty"`
	// Hard-strategy overrides. Zero means "use the config defaults".
	AiDepth        int `json:"ai_depth"`
	AiTimeBudgetMs int `json:"ai_time_budget_ms"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		BoardSize:       15,
		WinLength:       5,
		BlackType:       PlayerHuman,
		WhiteType:       PlayerAI,
		BlackDifficulty: DifficultyHard,
		WhiteDifficulty: DifficultyHard,
	}
}

func (s GameSettings) Validate() error {
	if s.WinLength < 3 {
		return fmt.Errorf("win length %d too small", s.WinLength)
	}
	if s.BoardSize < s.WinLength {
		return fmt.Errorf("board size %d smaller than win length %d", s.BoardSize, s.WinLength)
	}
	return nil
}

func (s GameSettings) DifficultyFor(player PlayerColor) Difficulty {
	if player == PlayerBlack {
		return s.BlackDifficulty
	}
	return s.WhiteDifficulty
}

func (s GameSettings) TypeFor(player PlayerColor) PlayerType {
	if player == PlayerBlack {
		return s.BlackType
	}
	return s.WhiteType
}
