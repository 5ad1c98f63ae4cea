package main

import (
	"math/rand"
	"time"
)

// Shapes the cascade looks for around a hypothetical stone. The window
// tokens reuse the evaluator alphabet; board edges read as 'O'.
var (
	shapeOpenFour    = []byte(".MMMM.")
	shapeClosedFourA = []byte("OMMMM.")
	shapeClosedFourB = []byte(".MMMMO")
	shapeOpenThree   = []byte(".MMM.")
)

var shapesFour = [][]byte{shapeClosedFourA, shapeClosedFourB}

// The three steps of the cascade act on the contiguous open three only.
var shapesThree = [][]byte{shapeOpenThree}

// AINormal plays a fixed priority cascade: win, block a win, make an
// open four, block an open four, make a closed four, make an open
// three, block an open three, otherwise random. Every check places the
// hypothetical stone and reverts it before moving on.
type AINormal struct {
	player PlayerColor
	rules  *Rules
	rng    *rand.Rand
	window [11]byte
}

func NewAINormal(player PlayerColor, settings GameSettings) *AINormal {
	return &AINormal{
		player: player,
		rules:  NewRules(settings),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (ai *AINormal) FindMove(state *GameState, moveCount int) (Move, bool) {
	legal := ai.rules.LegalMoves(&state.Board, ai.player, moveCount)
	if len(legal) == 0 {
		return Move{}, false
	}
	opponent := ai.player.Opponent()

	for _, move := range legal {
		if ai.rules.WouldWin(state, move, ai.player) {
			return move, true
		}
	}
	for _, move := range legal {
		if ai.rules.WouldWin(state, move, opponent) {
			return move, true
		}
	}
	if move, ok := ai.firstCreating(state, legal, ai.player, [][]byte{shapeOpenFour}); ok {
		return move, true
	}
	if move, ok := ai.firstCreating(state, legal, opponent, [][]byte{shapeOpenFour}); ok {
		return move, true
	}
	if move, ok := ai.firstCreating(state, legal, ai.player, shapesFour); ok {
		return move, true
	}
	if move, ok := ai.firstCreating(state, legal, ai.player, shapesThree); ok {
		return move, true
	}
	if move, ok := ai.firstCreating(state, legal, opponent, shapesThree); ok {
		return move, true
	}
	return legal[ai.rng.Intn(len(legal))], true
}

// firstCreating returns the first legal cell, in board-scan order, where
// placing owner's stone produces any of the given shapes through that
// cell.
func (ai *AINormal) firstCreating(state *GameState, legal []Move, owner PlayerColor, shapes [][]byte) (Move, bool) {
	for _, move := range legal {
		if ai.createsShape(&state.Board, move, owner, shapes) {
			return move, true
		}
	}
	return Move{}, false
}

func (ai *AINormal) createsShape(b *Board, move Move, owner PlayerColor, shapes [][]byte) bool {
	created := false
	withStone(b, move.X, move.Y, cellForPlayer(owner), func() {
		for _, dir := range directions {
			ai.fillWindow(b, move, owner, dir[0], dir[1])
			for _, shape := range shapes {
				if ai.windowHasShapeThroughCenter(shape) {
					created = true
					return
				}
			}
		}
	})
	return created
}

// fillWindow tokenizes the 11 cells centered on the move along one
// direction. Off-board cells read as opponent stones so edge-blocked
// shapes match.
func (ai *AINormal) fillWindow(b *Board, move Move, owner PlayerColor, dx, dy int) {
	own := cellForPlayer(owner)
	for i := -5; i <= 5; i++ {
		x := move.X + dx*i
		y := move.Y + dy*i
		tok := byte(evalFoe)
		if b.InBounds(x, y) {
			switch b.At(x, y) {
			case own:
				tok = evalSelf
			case CellEmpty:
				tok = evalBlank
			default:
				tok = evalFoe
			}
		}
		ai.window[i+5] = tok
	}
}

// windowHasShapeThroughCenter requires the matched segment to contain
// the center cell, so only shapes the new stone participates in count.
func (ai *AINormal) windowHasShapeThroughCenter(shape []byte) bool {
	length := len(shape)
	for start := 0; start+length <= len(ai.window); start++ {
		if start > 5 || start+length <= 5 {
			continue
		}
		if matchAt(ai.window[:], start, shape) {
			return true
		}
	}
	return false
}
