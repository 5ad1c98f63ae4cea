package main

import "sync"

// HumanPlayer holds the move submitted over the API until the game loop
// collects it.
type HumanPlayer struct {
	mu         sync.Mutex
	pending    Move
	hasPending bool
}

func NewHumanPlayer() *HumanPlayer {
	return &HumanPlayer{}
}

func (p *HumanPlayer) IsHuman() bool {
	return true
}

func (p *HumanPlayer) Update(state *GameState, moveCount int) {}

func (p *HumanPlayer) Submit(move Move) {
	p.mu.Lock()
	p.pending = move
	p.hasPending = true
	p.mu.Unlock()
}

func (p *HumanPlayer) TakeMove() (Move, bool, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.hasPending {
		return Move{}, false, false
	}
	move := p.pending
	p.hasPending = false
	return move, true, true
}

func (p *HumanPlayer) Reset() {
	p.mu.Lock()
	p.hasPending = false
	p.mu.Unlock()
}
