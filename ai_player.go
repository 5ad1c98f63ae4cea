package main

import (
	"log"
	"sync"
	"sync/atomic"
)

// AIPlayer runs its strategy on a background goroutine so the game loop
// never blocks on search. The search works on a clone of the state; a
// generation counter drops results that finish after a Reset.
type AIPlayer struct {
	player   PlayerColor
	strategy Strategy

	thinking atomic.Bool
	ready    atomic.Bool
	gen      atomic.Uint64

	mu      sync.Mutex
	move    Move
	hasMove bool
}

func NewAIPlayer(player PlayerColor, difficulty Difficulty, settings GameSettings) *AIPlayer {
	return &AIPlayer{
		player:   player,
		strategy: NewStrategy(difficulty, player, settings),
	}
}

func (p *AIPlayer) IsHuman() bool {
	return false
}

func (p *AIPlayer) Update(state *GameState, moveCount int) {
	if p.thinking.Load() || p.ready.Load() {
		return
	}
	p.thinking.Store(true)
	gen := p.gen.Load()
	clone := state.Clone()
	go func() {
		move, ok := p.strategy.FindMove(&clone, moveCount)
		if hard, isHard := p.strategy.(*AIHard); isHard && GetConfig().AiLogSearchStats {
			stats := hard.Stats()
			log.Printf("[ai] %s search nodes=%d tt_hits=%d depths=%d elapsed=%s",
				p.player, stats.Nodes, stats.TTHits, stats.CompletedDepths, stats.Elapsed)
		}
		if p.gen.Load() != gen {
			p.thinking.Store(false)
			return
		}
		p.mu.Lock()
		p.move = move
		p.hasMove = ok
		p.mu.Unlock()
		p.ready.Store(true)
		p.thinking.Store(false)
	}()
}

func (p *AIPlayer) TakeMove() (Move, bool, bool) {
	if !p.ready.Load() {
		return Move{}, false, false
	}
	p.mu.Lock()
	move := p.move
	hasMove := p.hasMove
	p.mu.Unlock()
	p.ready.Store(false)
	return move, true, hasMove
}

func (p *AIPlayer) Reset() {
	p.gen.Add(1)
	p.ready.Store(false)
}

func (p *AIPlayer) Thinking() bool {
	return p.thinking.Load()
}
