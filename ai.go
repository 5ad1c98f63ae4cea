package main

import (
	"encoding/json"
	"fmt"
	"time"
)

type Difficulty uint8

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyNormal:
		return "normal"
	default:
		return "hard"
	}
}

func (d Difficulty) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Difficulty) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "easy":
		*d = DifficultyEasy
	case "normal":
		*d = DifficultyNormal
	case "hard":
		*d = DifficultyHard
	default:
		return fmt.Errorf("unknown difficulty %q", name)
	}
	return nil
}

// Strategy is the single entry point a game controller uses to obtain a
// move. The bool result is false when no legal move exists, which the
// caller must treat as a draw signal, not an error.
type Strategy interface {
	FindMove(state *GameState, moveCount int) (Move, bool)
}

// NewStrategy resolves a difficulty to its move-choosing policy. Hard
// takes its depth and time budget from the settings when set, falling
// back to the runtime config defaults.
func NewStrategy(difficulty Difficulty, player PlayerColor, settings GameSettings) Strategy {
	switch difficulty {
	case DifficultyEasy:
		return NewAIEasy(player, settings)
	case DifficultyNormal:
		return NewAINormal(player, settings)
	default:
		config := GetConfig()
		depth := settings.AiDepth
		if depth <= 0 {
			depth = config.AiDepth
		}
		budgetMs := settings.AiTimeBudgetMs
		if budgetMs <= 0 {
			budgetMs = config.AiTimeBudgetMs
		}
		return NewAIHard(player, settings, depth, time.Duration(budgetMs)*time.Millisecond)
	}
}
