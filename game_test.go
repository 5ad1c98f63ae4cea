package main

import "testing"

func humanSettings() GameSettings {
	settings := DefaultGameSettings()
	settings.BlackType = PlayerHuman
	settings.WhiteType = PlayerHuman
	return settings
}

func TestGameRejectsMovesBeforeStart(t *testing.T) {
	game := NewGame(humanSettings())
	if ok, reason := game.TryApplyMove(Move{X: 7, Y: 7}); ok || reason == "" {
		t.Fatalf("move accepted before start")
	}
}

func TestGameAppliesOpeningSequence(t *testing.T) {
	game := NewGame(humanSettings())
	game.Start()
	if ok, reason := game.TryApplyMove(Move{X: 0, Y: 0}); ok {
		t.Fatalf("off-center opening accepted: %s", reason)
	}
	if ok, reason := game.TryApplyMove(Move{X: 7, Y: 7}); !ok {
		t.Fatalf("center opening rejected: %s", reason)
	}
	state := game.State()
	if state.ToMove != PlayerWhite || state.MoveCount != 1 {
		t.Fatalf("turn did not advance: %+v", state)
	}
	if game.History().Size() != 1 {
		t.Fatalf("history size = %d, want 1", game.History().Size())
	}
	if state.Hash == 0 {
		t.Fatalf("hash not updated after first stone")
	}
}

func TestGamePlaysToBlackWin(t *testing.T) {
	game := NewGame(humanSettings())
	game.Start()
	moves := []Move{
		{X: 7, Y: 7}, // black
		{X: 7, Y: 6}, // white
		{X: 5, Y: 7}, // black
		{X: 0, Y: 0}, // white
		{X: 6, Y: 7}, // black
		{X: 0, Y: 1}, // white
		{X: 8, Y: 7}, // black
		{X: 0, Y: 2}, // white
		{X: 9, Y: 7}, // black completes five
	}
	for i, move := range moves {
		if ok, reason := game.TryApplyMove(move); !ok {
			t.Fatalf("move %d (%d,%d) rejected: %s", i, move.X, move.Y, reason)
		}
	}
	state := game.State()
	if state.Status != StatusBlackWon {
		t.Fatalf("status = %v, want black won", state.Status)
	}
	if len(state.WinningLine) != 5 {
		t.Fatalf("winning line = %+v", state.WinningLine)
	}
	if ok, _ := game.TryApplyMove(Move{X: 1, Y: 1}); ok {
		t.Fatalf("move accepted after the game ended")
	}
}

func TestGameDrawOnFullBoard(t *testing.T) {
	settings := GameSettings{
		BoardSize: 5, WinLength: 5,
		BlackType: PlayerHuman, WhiteType: PlayerHuman,
	}
	game := NewGame(settings)
	game.state.Status = StatusRunning
	rows := [][]Cell{
		{CellBlack, CellWhite, CellBlack, CellWhite, CellBlack},
		{CellBlack, CellWhite, CellBlack, CellWhite, CellBlack},
		{CellWhite, CellBlack, CellWhite, CellBlack, CellWhite},
		{CellBlack, CellWhite, CellBlack, CellWhite, CellBlack},
		{CellBlack, CellWhite, CellBlack, CellWhite, CellEmpty},
	}
	for y, row := range rows {
		for x, cell := range row {
			if cell != CellEmpty {
				game.state.Board.Set(x, y, cell)
			}
		}
	}
	game.state.MoveCount = 24
	game.state.ToMove = PlayerBlack
	if ok, reason := game.TryApplyMove(Move{X: 4, Y: 4}); !ok {
		t.Fatalf("final move rejected: %s", reason)
	}
	if status := game.State().Status; status != StatusDraw {
		t.Fatalf("status = %v, want draw", status)
	}
}

func TestGameSubmitThenTickAppliesHumanMove(t *testing.T) {
	game := NewGame(humanSettings())
	if game.SubmitHumanMove(Move{X: 7, Y: 7}) {
		t.Fatalf("submit accepted before start")
	}
	game.Start()
	if !game.SubmitHumanMove(Move{X: 7, Y: 7}) {
		t.Fatalf("submit rejected on the human's turn")
	}
	if !game.Tick() {
		t.Fatalf("tick did not apply the pending move")
	}
	state := game.State()
	if state.Board.At(7, 7) != CellBlack || state.MoveCount != 1 || state.ToMove != PlayerWhite {
		t.Fatalf("pending move not applied: %+v", state)
	}
	if game.Tick() {
		t.Fatalf("tick applied a move with nothing pending")
	}
}

func TestGameResetReusesPlayersAndClearsPending(t *testing.T) {
	game := NewGame(humanSettings())
	game.Start()
	before := game.players
	if !game.SubmitHumanMove(Move{X: 7, Y: 7}) {
		t.Fatalf("submit rejected")
	}
	game.Reset(humanSettings())
	if game.players != before {
		t.Fatalf("reset rebuilt players although the settings were unchanged")
	}
	game.Start()
	if game.Tick() {
		t.Fatalf("pending move survived the reset")
	}
}

func TestGameResetRebuildsPlayersOnSettingsChange(t *testing.T) {
	game := NewGame(humanSettings())
	before := game.players
	settings := humanSettings()
	settings.BlackType = PlayerAI
	settings.BlackDifficulty = DifficultyEasy
	game.Reset(settings)
	if game.players == before {
		t.Fatalf("reset kept the players across a roster change")
	}
	if game.players[PlayerBlack].IsHuman() {
		t.Fatalf("black not rebuilt as an AI player")
	}
}

func TestGameResetClearsEverything(t *testing.T) {
	game := NewGame(humanSettings())
	game.Start()
	if ok, _ := game.TryApplyMove(Move{X: 7, Y: 7}); !ok {
		t.Fatalf("opening rejected")
	}
	game.Reset(humanSettings())
	state := game.State()
	if state.Status != StatusNotStarted || state.MoveCount != 0 || state.HasLastMove {
		t.Fatalf("reset left state behind: %+v", state)
	}
	if game.History().Size() != 0 {
		t.Fatalf("reset left history behind")
	}
	if state.Board.CountEmpty() != 15*15 {
		t.Fatalf("reset left stones on the board")
	}
}

func TestControllerRejectsHumanMoveOnAITurn(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BlackType = PlayerAI
	settings.BlackDifficulty = DifficultyEasy
	settings.WhiteType = PlayerHuman
	controller := NewGameController(settings)
	controller.StartGame(settings)
	if ok, reason := controller.ApplyHumanMove(Move{X: 7, Y: 7}); ok || reason != "not human turn" {
		t.Fatalf("human move accepted on AI turn: %v %q", ok, reason)
	}
}

func TestGameStateCloneIsDeep(t *testing.T) {
	settings := humanSettings()
	state := NewGameState(settings)
	state.Board.Set(7, 7, CellBlack)
	state.WinningLine = []Move{{X: 7, Y: 7}}
	clone := state.Clone()
	clone.Board.Set(0, 0, CellWhite)
	clone.WinningLine[0] = Move{X: 1, Y: 1}
	if state.Board.At(0, 0) != CellEmpty {
		t.Fatalf("clone shares the board")
	}
	if state.WinningLine[0] != (Move{X: 7, Y: 7}) {
		t.Fatalf("clone shares the winning line")
	}
}
