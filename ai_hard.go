package main

import (
	"math"
	"sort"
	"time"
)

// Search win scores sit far above any static evaluation and are offset
// by remaining depth so the search prefers faster wins and later losses.
const searchWinScore = 1_000_000_000

const (
	defaultSearchDepth    = 2
	defaultSearchBudgetMs = 1500
)

type SearchStats struct {
	Nodes           int
	TTHits          int
	CompletedDepths int
	Elapsed         time.Duration
}

// AIHard chooses moves with a time-boxed iterative-deepening minimax
// over the one shared board. Every recursion step applies a move and
// reverts it before returning, so the board is bit-identical before and
// after a search. The Zobrist table is sized to the board at
// construction; the transposition table lives for a single FindMove
// call.
type AIHard struct {
	player   PlayerColor
	rules    *Rules
	eval     *Evaluator
	zobrist  *ZobristTable
	tt       *TranspositionTable
	maxDepth int
	budget   time.Duration
	deadline time.Time
	stats    SearchStats
}

func NewAIHard(player PlayerColor, settings GameSettings, maxDepth int, budget time.Duration) *AIHard {
	if maxDepth <= 0 {
		maxDepth = defaultSearchDepth
	}
	if budget <= 0 {
		budget = defaultSearchBudgetMs * time.Millisecond
	}
	config := GetConfig()
	return &AIHard{
		player:   player,
		rules:    NewRules(settings),
		eval:     NewEvaluator(settings.BoardSize, settings.WinLength),
		zobrist:  NewZobristTable(settings.BoardSize),
		tt:       NewTranspositionTable(uint64(config.AiTtSize), config.AiTtBuckets),
		maxDepth: maxDepth,
		budget:   budget,
	}
}

func (ai *AIHard) Stats() SearchStats {
	return ai.stats
}

// FindMove runs the full move decision: per-turn table reset, immediate
// win and forced-block pre-checks, then iterative deepening until the
// wall-clock budget runs out. The deadline is only consulted at natural
// boundaries (start of each root candidate, after each depth); a deep
// recursive call is never interrupted mid-flight.
func (ai *AIHard) FindMove(state *GameState, moveCount int) (Move, bool) {
	start := time.Now()
	ai.deadline = start.Add(ai.budget)
	ai.stats = SearchStats{}
	ai.tt.Clear()
	hash := ai.zobrist.ComputeHash(&state.Board)

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

	// First legal cell is the ultimate fallback if the very first root
	// scan never finishes a candidate.
	best := legal[0]
	haveResult := false
	for depth := 1; depth <= ai.maxDepth; depth++ {
		candidates := ai.candidateMoves(state, ai.player, moveCount)
		if len(candidates) == 0 {
			candidates = legal
		}
		candidates = ai.orderByProximity(&state.Board, candidates)
		depthBest := Move{}
		depthScore := math.MinInt
		scanned := false
		aborted := false
		for _, move := range candidates {
			if time.Now().After(ai.deadline) {
				aborted = true
				break
			}
			token := applyMove(state, move, ai.player)
			childHash := ai.zobrist.UpdateHash(hash, move.X, move.Y, ai.player)
			score := ai.minimax(state, depth-1, depthScore, math.MaxInt, false, moveCount+1, childHash)
			token.Revert(state)
			if score > depthScore {
				depthScore = score
				depthBest = move
			}
			scanned = true
		}
		if scanned && (!aborted || !haveResult) {
			best = depthBest
			haveResult = true
		}
		if !aborted {
			ai.stats.CompletedDepths = depth
		}
		if aborted || time.Now().After(ai.deadline) {
			break
		}
	}
	ai.stats.Elapsed = time.Since(start)
	best.Depth = ai.stats.CompletedDepths
	return best, true
}

// minimax is a standard alpha-beta search over the shared board. The
// transposition table is probed first and used to tighten the window;
// results are stored keyed by the pre-move hash, tagged exact, lower or
// upper depending on how the window closed.
func (ai *AIHard) minimax(state *GameState, depth, alpha, beta int, maximizing bool, moveCount int, hash uint64) int {
	ai.stats.Nodes++
	alphaOrig := alpha
	betaOrig := beta
	if entry, ok := ai.tt.Probe(hash); ok && entry.Depth >= depth {
		ai.stats.TTHits++
		switch entry.Flag {
		case TTExact:
			return entry.Score
		case TTLower:
			if entry.Score > alpha {
				alpha = entry.Score
			}
		case TTUpper:
			if entry.Score < beta {
				beta = entry.Score
			}
		}
		if alpha >= beta {
			return entry.Score
		}
	}

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
	var bestMove Move
	for _, move := range candidates {
		token := applyMove(state, move, sideToMove)
		childHash := ai.zobrist.UpdateHash(hash, move.X, move.Y, sideToMove)
		score := ai.minimax(state, depth-1, alpha, beta, !maximizing, moveCount+1, childHash)
		token.Revert(state)
		if maximizing {
			if score > best {
				best = score
				bestMove = move
			}
			if score > alpha {
				alpha = score
			}
		} else {
			if score < best {
				best = score
				bestMove = move
			}
			if score < beta {
				beta = score
			}
		}
		if beta <= alpha {
			break
		}
	}

	flag := TTExact
	if best <= alphaOrig {
		flag = TTUpper
	} else if best >= betaOrig {
		flag = TTLower
	}
	ai.tt.Store(hash, depth, best, flag, bestMove)
	return best
}

// tacticalOrShuffle narrows the candidate list to a single forced move
// when one wins outright or blocks an immediate loss; otherwise it
// orders the list by the cheap proximity heuristic.
func (ai *AIHard) tacticalOrShuffle(state *GameState, candidates []Move, sideToMove PlayerColor) []Move {
	for _, move := range candidates {
		if ai.rules.WouldWin(state, move, sideToMove) {
			return []Move{move}
		}
	}
	other := sideToMove.Opponent()
	for _, move := range candidates {
		if ai.rules.WouldWin(state, move, other) {
			return []Move{move}
		}
	}
	return ai.orderByProximity(&state.Board, candidates)
}

// candidateMoves returns the cells within Chebyshev distance 1 of any
// stone that are legal for the side to move, in board-scan order.
func (ai *AIHard) candidateMoves(state *GameState, player PlayerColor, moveCount int) []Move {
	b := &state.Board
	candidates := make([]Move, 0, 32)
	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			if !b.IsEmpty(x, y) {
				continue
			}
			if neighborCount(b, x, y) == 0 {
				continue
			}
			move := Move{X: x, Y: y}
			if ok, _ := ai.rules.IsValidMove(b, move, player, moveCount); ok {
				candidates = append(candidates, move)
			}
		}
	}
	return candidates
}

// orderByProximity ranks candidates by descending occupied-neighbor
// count. The sort is stable so equal ranks keep board-scan order and
// searches stay deterministic.
func (ai *AIHard) orderByProximity(b *Board, candidates []Move) []Move {
	sort.SliceStable(candidates, func(i, j int) bool {
		return neighborCount(b, candidates[i].X, candidates[i].Y) >
			neighborCount(b, candidates[j].X, candidates[j].Y)
	})
	return candidates
}

func neighborCount(b *Board, x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if b.InBounds(nx, ny) && !b.IsEmpty(nx, ny) {
				count++
			}
		}
	}
	return count
}
