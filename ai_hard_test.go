package main

import (
	"math"
	"testing"
	"time"
)

// naiveMinimax mirrors the search recursion without the transposition
// table and without alpha-beta windows: every candidate is visited.
func naiveMinimax(ai *AIHard, state *GameState, depth int, maximizing bool, moveCount int) int {
	sideToMove := ai.player
	if !maximizing {
		sideToMove = ai.player.Opponent()
	}
	previous := sideToMove.Opponent()
	if win, _ := ai.rules.CheckWin(state, previous); win {
		if previous == ai.player {
			return searchWinScore + depth
		}
		return -(searchWinScore + depth)
	}
	if state.Board.CountEmpty() == 0 {
		return 0
	}
	if depth == 0 {
		return ai.eval.EvaluateBoard(&state.Board, ai.player)
	}
	candidates := ai.candidateMoves(state, sideToMove, moveCount)
	if len(candidates) == 0 {
		return ai.eval.EvaluateBoard(&state.Board, ai.player)
	}
	candidates = ai.tacticalOrShuffle(state, candidates, sideToMove)
	best := math.MinInt
	if !maximizing {
		best = math.MaxInt
	}
	for _, move := range candidates {
		token := applyMove(state, move, sideToMove)
		score := naiveMinimax(ai, state, depth-1, !maximizing, moveCount+1)
		token.Revert(state)
		if maximizing && score > best {
			best = score
		}
		if !maximizing && score < best {
			best = score
		}
	}
	return best
}

func midgameState(t *testing.T, settings GameSettings) *GameState {
	t.Helper()
	state := NewGameState(settings)
	state.Board.Set(3, 3, CellBlack)
	state.Board.Set(3, 4, CellWhite)
	state.Board.Set(2, 3, CellBlack)
	state.Board.Set(4, 4, CellWhite)
	state.MoveCount = 4
	state.LastMove = Move{X: 4, Y: 4}
	state.HasLastMove = true
	return &state
}

func TestSearchMatchesUnprunedOracle(t *testing.T) {
	settings := GameSettings{BoardSize: 7, WinLength: 5}
	ai := NewAIHard(PlayerBlack, settings, 2, time.Second)
	state := midgameState(t, settings)
	candidates := ai.candidateMoves(state, PlayerBlack, state.MoveCount)
	if len(candidates) == 0 {
		t.Fatalf("no candidates in midgame position")
	}
	for depth := 1; depth <= 2; depth++ {
		for _, move := range candidates {
			token := applyMove(state, move, PlayerBlack)
			hash := ai.zobrist.ComputeHash(&state.Board)
			ai.tt.Clear()
			pruned := ai.minimax(state, depth-1, math.MinInt, math.MaxInt, false, state.MoveCount+1, hash)
			naive := naiveMinimax(ai, state, depth-1, false, state.MoveCount+1)
			token.Revert(state)
			if pruned != naive {
				t.Fatalf("depth %d move (%d,%d): pruned %d != unpruned %d",
					depth, move.X, move.Y, pruned, naive)
			}
		}
	}
}

func TestTranspositionExactEntryMatchesResearch(t *testing.T) {
	settings := GameSettings{BoardSize: 7, WinLength: 5}
	ai := NewAIHard(PlayerBlack, settings, 2, time.Second)
	state := midgameState(t, settings)
	hash := ai.zobrist.ComputeHash(&state.Board)
	ai.tt.Clear()
	score := ai.minimax(state, 2, math.MinInt, math.MaxInt, true, state.MoveCount, hash)
	entry, ok := ai.tt.Probe(hash)
	if !ok {
		t.Fatalf("root position not stored")
	}
	if entry.Flag != TTExact {
		t.Fatalf("full-window search stored flag %v, want exact", entry.Flag)
	}
	if entry.Score != score {
		t.Fatalf("stored score %d != returned score %d", entry.Score, score)
	}
	if naive := naiveMinimax(ai, state, 2, true, state.MoveCount); entry.Score != naive {
		t.Fatalf("stored exact score %d != unpruned re-search %d", entry.Score, naive)
	}
}

func TestHardTakesImmediateWin(t *testing.T) {
	settings := testSettings(15)
	ai := NewAIHard(PlayerBlack, settings, 2, time.Second)
	state := NewGameState(settings)
	for _, x := range []int{4, 5, 6, 7} {
		state.Board.Set(x, 7, CellBlack)
	}
	state.Board.Set(4, 8, CellWhite)
	state.Board.Set(5, 8, CellWhite)
	state.Board.Set(6, 8, CellWhite)
	state.MoveCount = 7
	move, ok := ai.FindMove(&state, state.MoveCount)
	if !ok {
		t.Fatalf("no move returned")
	}
	if move.Y != 7 || (move.X != 3 && move.X != 8) {
		t.Fatalf("winning completion not taken, got (%d,%d)", move.X, move.Y)
	}
}

func TestHardBlocksImmediateLoss(t *testing.T) {
	settings := testSettings(15)
	ai := NewAIHard(PlayerWhite, settings, 2, time.Second)
	state := NewGameState(settings)
	for _, x := range []int{5, 6, 7, 8} {
		state.Board.Set(x, 7, CellBlack)
	}
	state.MoveCount = 7
	move, ok := ai.FindMove(&state, state.MoveCount)
	if !ok {
		t.Fatalf("no move returned")
	}
	if move.Y != 7 || (move.X != 4 && move.X != 9) {
		t.Fatalf("open four not blocked, got (%d,%d)", move.X, move.Y)
	}
}

func TestHardFullBoardReturnsNone(t *testing.T) {
	settings := GameSettings{BoardSize: 5, WinLength: 5}
	ai := NewAIHard(PlayerBlack, settings, 2, time.Second)
	state := NewGameState(settings)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			cell := CellBlack
			if (x+y)%2 == 0 {
				cell = CellWhite
			}
			state.Board.Set(x, y, cell)
		}
	}
	state.MoveCount = 25
	if _, ok := ai.FindMove(&state, state.MoveCount); ok {
		t.Fatalf("move returned on a full board")
	}
}

func TestFindMoveLeavesBoardUnchanged(t *testing.T) {
	settings := GameSettings{BoardSize: 9, WinLength: 5}
	ai := NewAIHard(PlayerWhite, settings, 2, time.Second)
	state := NewGameState(settings)
	state.Board.Set(4, 4, CellBlack)
	state.Board.Set(4, 5, CellWhite)
	state.Board.Set(5, 4, CellBlack)
	state.MoveCount = 3
	state.LastMove = Move{X: 5, Y: 4}
	state.HasLastMove = true
	before := state.Board.Clone()
	if _, ok := ai.FindMove(&state, state.MoveCount); !ok {
		t.Fatalf("no move found")
	}
	for i := range before.cells {
		if before.cells[i] != state.Board.cells[i] {
			t.Fatalf("search mutated the shared board at index %d", i)
		}
	}
}

func TestSearchStatsReportCompletedDepths(t *testing.T) {
	settings := GameSettings{BoardSize: 9, WinLength: 5}
	ai := NewAIHard(PlayerBlack, settings, 2, time.Second)
	state := NewGameState(settings)
	state.Board.Set(4, 4, CellWhite)
	state.Board.Set(5, 5, CellBlack)
	state.MoveCount = 4
	state.LastMove = Move{X: 5, Y: 5}
	state.HasLastMove = true
	if _, ok := ai.FindMove(&state, state.MoveCount); !ok {
		t.Fatalf("no move found")
	}
	stats := ai.Stats()
	if stats.CompletedDepths != 2 {
		t.Fatalf("completed depths = %d, want 2", stats.CompletedDepths)
	}
	if stats.Nodes == 0 {
		t.Fatalf("search visited no nodes")
	}
}
