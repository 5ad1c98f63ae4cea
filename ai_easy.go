package main

import (
	"math/rand"
	"time"
)

// AIEasy plays a uniformly random legal move.
type AIEasy struct {
	player PlayerColor
	rules  *Rules
	rng    *rand.Rand
}

func NewAIEasy(player PlayerColor, settings GameSettings) *AIEasy {
	return &AIEasy{
		player: player,
		rules:  NewRules(settings),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (ai *AIEasy) FindMove(state *GameState, moveCount int) (Move, bool) {
	legal := ai.rules.LegalMoves(&state.Board, ai.player, moveCount)
	if len(legal) == 0 {
		return Move{}, false
	}
	return legal[ai.rng.Intn(len(legal))], true
}
