package main

import "time"

// Game drives one match: it owns the state, the rule engine, the hash
// and both players, and applies moves through the validation pipeline.
type Game struct {
	settings      GameSettings
	rules         *Rules
	state         GameState
	zobrist       *ZobristTable
	history       MoveHistory
	players       [2]IPlayer
	turnStartedAt time.Time
}

func NewGame(settings GameSettings) Game {
	g := Game{
		settings: settings,
		rules:    NewRules(settings),
		state:    NewGameState(settings),
		zobrist:  NewZobristTable(settings.BoardSize),
	}
	g.createPlayers()
	return g
}

func (g *Game) createPlayers() {
	for _, color := range []PlayerColor{PlayerBlack, PlayerWhite} {
		var player IPlayer
		if g.settings.TypeFor(color) == PlayerHuman {
			player = NewHumanPlayer()
		} else {
			player = NewAIPlayer(color, g.settings.DifficultyFor(color), g.settings)
		}
		g.players[color] = player
	}
}

func (g *Game) Start() {
	if g.state.Status == StatusNotStarted {
		g.state.Status = StatusRunning
		g.turnStartedAt = time.Now()
	}
}

// Reset clears the match state. Players are kept and reset in place when
// the settings are unchanged, which drops any pending human move and any
// in-flight AI result; a settings change rebuilds the roster.
func (g *Game) Reset(settings GameSettings) {
	samePlayers := g.settings == settings
	g.settings = settings
	g.rules = NewRules(settings)
	g.state.Reset(settings)
	if g.zobrist.Size() != settings.BoardSize {
		g.zobrist = NewZobristTable(settings.BoardSize)
	}
	g.history.Clear()
	if samePlayers {
		for _, player := range g.players {
			player.Reset()
		}
		return
	}
	g.createPlayers()
}

// TryApplyMove validates and applies one move for the side to move,
// records history, updates the incremental hash and advances the status
// machine. The reason string is empty on success.
func (g *Game) TryApplyMove(move Move) (bool, string) {
	if g.state.Status != StatusRunning {
		return false, "game not running"
	}
	player := g.state.ToMove
	if ok, reason := g.rules.IsValidMove(&g.state.Board, move, player, g.state.MoveCount); !ok {
		return false, reason
	}
	if !g.rules.PlaceStone(&g.state, move, player) {
		return false, "rejected"
	}
	g.state.Hash = g.zobrist.UpdateHash(g.state.Hash, move.X, move.Y, player)

	elapsed := int64(0)
	if !g.turnStartedAt.IsZero() {
		elapsed = time.Since(g.turnStartedAt).Milliseconds()
	}
	g.history.Add(HistoryEntry{
		Move:      move,
		Player:    player,
		ElapsedMs: elapsed,
		IsAi:      g.settings.TypeFor(player) == PlayerAI,
		Depth:     move.Depth,
	})

	if win, line := g.rules.CheckWin(&g.state, player); win {
		g.state.WinningLine = expandWinLine(line)
		if player == PlayerBlack {
			g.state.Status = StatusBlackWon
		} else {
			g.state.Status = StatusWhiteWon
		}
		return true, ""
	}
	if g.state.Board.CountEmpty() == 0 {
		g.state.Status = StatusDraw
		return true, ""
	}
	g.state.ToMove = player.Opponent()
	g.turnStartedAt = time.Now()
	return true, ""
}

// Tick polls the side to move: starts the AI thinking if it is not
// already, and applies whatever move has been decided. A player with no
// legal move ends the game as a draw. Returns true when the state
// changed.
func (g *Game) Tick() bool {
	if g.state.Status != StatusRunning {
		return false
	}
	current := g.players[g.state.ToMove]
	current.Update(&g.state, g.state.MoveCount)
	move, decided, hasMove := current.TakeMove()
	if !decided {
		return false
	}
	if !hasMove {
		g.state.Status = StatusDraw
		return true
	}
	applied, _ := g.TryApplyMove(move)
	return applied
}

// SubmitHumanMove hands a move to the current player if it is human.
func (g *Game) SubmitHumanMove(move Move) bool {
	if g.state.Status != StatusRunning {
		return false
	}
	human, ok := g.players[g.state.ToMove].(*HumanPlayer)
	if !ok {
		return false
	}
	human.Submit(move)
	return true
}

func (g *Game) CurrentPlayerIsHuman() bool {
	return g.players[g.state.ToMove].IsHuman()
}

func (g *Game) AiThinking() bool {
	for _, player := range g.players {
		if ai, ok := player.(*AIPlayer); ok && ai.Thinking() {
			return true
		}
	}
	return false
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) History() MoveHistory {
	return g.history
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStartedAt.IsZero() {
		return 0
	}
	return g.turnStartedAt.UnixMilli()
}

func (g *Game) Threats(player PlayerColor) []Threat {
	return g.rules.FindThreats(&g.state.Board, player)
}

func expandWinLine(line WinLine) []Move {
	moves := []Move{}
	x, y := line.Start.X, line.Start.Y
	for {
		moves = append(moves, Move{X: x, Y: y})
		if x == line.End.X && y == line.End.Y {
			return moves
		}
		x += line.Dir[0]
		y += line.Dir[1]
	}
}
