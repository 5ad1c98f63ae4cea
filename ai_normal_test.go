package main

import "testing"

func TestNormalTakesImmediateWin(t *testing.T) {
	settings := testSettings(15)
	ai := NewAINormal(PlayerBlack, settings)
	state := NewGameState(settings)
	for _, x := range []int{4, 5, 6, 7} {
		state.Board.Set(x, 7, CellBlack)
	}
	// A tempting block exists too; winning outranks it.
	for _, x := range []int{4, 5, 6, 7} {
		state.Board.Set(x, 9, CellWhite)
	}
	state.MoveCount = 8
	move, ok := ai.FindMove(&state, state.MoveCount)
	if !ok {
		t.Fatalf("no move returned")
	}
	if move.Y != 7 || (move.X != 3 && move.X != 8) {
		t.Fatalf("win not taken, got (%d,%d)", move.X, move.Y)
	}
}

func TestNormalBlocksOpenFour(t *testing.T) {
	settings := testSettings(15)
	ai := NewAINormal(PlayerWhite, settings)
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

func TestNormalCompletesOpenFour(t *testing.T) {
	settings := testSettings(15)
	ai := NewAINormal(PlayerWhite, settings)
	state := NewGameState(settings)
	// Own open three with room on both sides; no urgent threats.
	for _, x := range []int{5, 6, 7} {
		state.Board.Set(x, 7, CellWhite)
	}
	state.Board.Set(0, 0, CellBlack)
	state.Board.Set(1, 0, CellBlack)
	state.MoveCount = 6
	move, ok := ai.FindMove(&state, state.MoveCount)
	if !ok {
		t.Fatalf("no move returned")
	}
	if move.Y != 7 || (move.X != 4 && move.X != 8) {
		t.Fatalf("open four not created, got (%d,%d)", move.X, move.Y)
	}
}

func TestNormalBlocksOpponentOpenThree(t *testing.T) {
	settings := testSettings(15)
	ai := NewAINormal(PlayerWhite, settings)
	state := NewGameState(settings)
	// Opponent pair that a third stone would turn into an open three;
	// the cascade blocks the cell that would create it.
	state.Board.Set(6, 7, CellBlack)
	state.Board.Set(7, 7, CellBlack)
	state.MoveCount = 4
	move, ok := ai.FindMove(&state, state.MoveCount)
	if !ok {
		t.Fatalf("no move returned")
	}
	created := ai.createsShape(&state.Board, move, PlayerBlack, shapesThree)
	if !created {
		t.Fatalf("cascade did not block an open-three cell, got (%d,%d)", move.X, move.Y)
	}
}

func TestNormalThreeStepsMatchContiguousOnly(t *testing.T) {
	settings := testSettings(15)
	ai := NewAINormal(PlayerWhite, settings)
	state := NewGameState(settings)
	state.Board.Set(5, 7, CellWhite)
	state.Board.Set(7, 7, CellWhite)
	if ai.createsShape(&state.Board, Move{X: 8, Y: 7}, PlayerWhite, shapesThree) {
		t.Fatalf("gapped three treated as an open three by the cascade")
	}
	if !ai.createsShape(&state.Board, Move{X: 6, Y: 7}, PlayerWhite, shapesThree) {
		t.Fatalf("contiguous open three not recognized")
	}
}

func TestNormalFullBoardReturnsNone(t *testing.T) {
	settings := GameSettings{BoardSize: 5, WinLength: 5}
	ai := NewAINormal(PlayerBlack, settings)
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
