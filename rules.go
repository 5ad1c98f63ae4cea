package main

// Rules implements move legality, forbidden-move detection for Black and
// win detection over a Board. All hypothetical placements go through
// applyStone/undoToken so the board is restored on every exit path.
type Rules struct {
	settings GameSettings

	// Last cell rejected by the forbidden-move check, surfaced to the
	// UI so it can mark the cell. Cleared on the next validation.
	LastForbidden    Move
	HasLastForbidden bool
}

func NewRules(settings GameSettings) *Rules {
	return &Rules{settings: settings}
}

type WinLine struct {
	Start Move   `json:"start"`
	End   Move   `json:"end"`
	Dir   [2]int `json:"dir"`
}

// undoToken records what a hypothetical placement overwrote. Revert puts
// the board (and the caller's last-move slot, when tracked) back exactly.
type undoToken struct {
	x, y     int
	prevCell Cell
}

func applyStone(b *Board, x, y int, cell Cell) undoToken {
	token := undoToken{x: x, y: y, prevCell: b.At(x, y)}
	b.Set(x, y, cell)
	return token
}

func (t undoToken) Revert(b *Board) {
	b.Set(t.x, t.y, t.prevCell)
}

// moveToken extends undoToken with the previous last-move slot so a
// hypothetical move can be unwound completely, early returns included.
type moveToken struct {
	cell     undoToken
	prevLast Move
	prevHas  bool
}

func applyMove(state *GameState, move Move, player PlayerColor) moveToken {
	token := moveToken{
		cell:     applyStone(&state.Board, move.X, move.Y, cellForPlayer(player)),
		prevLast: state.LastMove,
		prevHas:  state.HasLastMove,
	}
	state.LastMove = move
	state.HasLastMove = true
	return token
}

func (t moveToken) Revert(state *GameState) {
	state.LastMove = t.prevLast
	state.HasLastMove = t.prevHas
	t.cell.Revert(&state.Board)
}

// withStone runs fn with the stone placed, reverting afterwards even if
// fn panics.
func withStone(b *Board, x, y int, cell Cell, fn func()) {
	token := applyStone(b, x, y, cell)
	defer token.Revert(b)
	fn()
}

// IsValidMove checks bounds, occupancy, the opening restriction and, for
// Black, the forbidden-move rules, in that order. The reason string is
// empty for legal moves.
func (r *Rules) IsValidMove(b *Board, move Move, player PlayerColor, moveCount int) (bool, string) {
	if !b.InBounds(move.X, move.Y) {
		return false, "out of bounds"
	}
	if !b.IsEmpty(move.X, move.Y) {
		return false, "occupied"
	}
	if !r.openingAllows(b, move, moveCount) {
		return false, "opening restriction"
	}
	if player == PlayerBlack && r.IsForbidden(b, move, player) {
		r.LastForbidden = move
		r.HasLastForbidden = true
		return false, "forbidden"
	}
	return true, ""
}

// openingAllows enforces the fixed opening sequence on the first three
// stones: move 0 on the exact center, move 1 on one of the two cells
// just above or diagonally up-right of the center, move 2 within
// Chebyshev distance 2 of the center. Boards smaller than 5 or without
// an exact center cell are exempt.
func (r *Rules) openingAllows(b *Board, move Move, moveCount int) bool {
	if b.Size() < 5 || b.Size()%2 == 0 || moveCount > 2 {
		return true
	}
	center := b.Size() / 2
	switch moveCount {
	case 0:
		return move.X == center && move.Y == center
	case 1:
		if move.X == center && move.Y == center-1 {
			return true
		}
		return move.X == center+1 && move.Y == center-1
	default:
		return chebyshev(move.X, move.Y, center, center) <= 2
	}
}

func chebyshev(x1, y1, x2, y2 int) int {
	dx := x1 - x2
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y2
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// PlaceStone re-validates the move and, on success, writes the cell and
// advances last-move and the move counter. The board is untouched when
// the move is rejected.
func (r *Rules) PlaceStone(state *GameState, move Move, player PlayerColor) bool {
	ok, _ := r.IsValidMove(&state.Board, move, player, state.MoveCount)
	if !ok {
		return false
	}
	state.Board.Set(move.X, move.Y, cellForPlayer(player))
	state.LastMove = move
	state.HasLastMove = true
	state.MoveCount++
	return true
}

// IsForbidden reports whether placing player's stone at move would break
// the overline, double-three or double-four rules. Only Black is ever
// restricted. A placement whose run reaches exactly the win length in
// some direction is exempt and reported as not forbidden immediately,
// without inspecting the remaining directions.
func (r *Rules) IsForbidden(b *Board, move Move, player PlayerColor) bool {
	if player != PlayerBlack {
		return false
	}
	cell := cellForPlayer(player)
	forbidden := false
	withStone(b, move.X, move.Y, cell, func() {
		openThrees := 0
		fours := 0
		for _, dir := range directions {
			run, sx, sy, ex, ey := runThrough(b, move.X, move.Y, dir[0], dir[1], cell)
			if run > r.settings.WinLength {
				forbidden = true
				return
			}
			if run == r.settings.WinLength {
				forbidden = false
				return
			}
			switch run {
			case 3:
				if runEndsOpen(b, sx, sy, ex, ey, dir[0], dir[1]) {
					openThrees++
				}
			case 4:
				fours++
			}
		}
		forbidden = openThrees >= 2 || fours >= 2
	})
	return forbidden
}

// CheckWin looks for a winning run through the last move only. Runs
// longer than the win length count too, so positions loaded from outside
// normal play still resolve.
func (r *Rules) CheckWin(state *GameState, player PlayerColor) (bool, WinLine) {
	if !state.HasLastMove {
		return false, WinLine{}
	}
	cell := cellForPlayer(player)
	last := state.LastMove
	if state.Board.At(last.X, last.Y) != cell {
		return false, WinLine{}
	}
	for _, dir := range directions {
		run, sx, sy, ex, ey := runThrough(&state.Board, last.X, last.Y, dir[0], dir[1], cell)
		if run >= r.settings.WinLength {
			return true, WinLine{
				Start: Move{X: sx, Y: sy},
				End:   Move{X: ex, Y: ey},
				Dir:   dir,
			}
		}
	}
	return false, WinLine{}
}

// runThrough counts the contiguous run of cell through (x, y) along
// ±(dx, dy) and returns the run length with its two endpoints.
func runThrough(b *Board, x, y, dx, dy int, cell Cell) (run, sx, sy, ex, ey int) {
	run = 1
	sx, sy = x, y
	ex, ey = x, y
	for cx, cy := x-dx, y-dy; b.InBounds(cx, cy) && b.At(cx, cy) == cell; cx, cy = cx-dx, cy-dy {
		run++
		sx, sy = cx, cy
	}
	for cx, cy := x+dx, y+dy; b.InBounds(cx, cy) && b.At(cx, cy) == cell; cx, cy = cx+dx, cy+dy {
		run++
		ex, ey = cx, cy
	}
	return run, sx, sy, ex, ey
}

// runEndsOpen reports whether both cells just beyond the run endpoints
// are empty board cells.
func runEndsOpen(b *Board, sx, sy, ex, ey, dx, dy int) bool {
	bx, by := sx-dx, sy-dy
	ax, ay := ex+dx, ey+dy
	if !b.InBounds(bx, by) || !b.IsEmpty(bx, by) {
		return false
	}
	if !b.InBounds(ax, ay) || !b.IsEmpty(ax, ay) {
		return false
	}
	return true
}

// WouldWin reports whether placing player's stone at move would win the
// game on the spot. The move is applied and fully reverted; legality is
// not checked here.
func (r *Rules) WouldWin(state *GameState, move Move, player PlayerColor) bool {
	token := applyMove(state, move, player)
	defer token.Revert(state)
	win, _ := r.CheckWin(state, player)
	return win
}

// LegalMoves enumerates every empty cell that passes IsValidMove for the
// given player and move count, in board-scan order.
func (r *Rules) LegalMoves(b *Board, player PlayerColor, moveCount int) []Move {
	moves := make([]Move, 0, 32)
	for _, move := range b.EmptyCells() {
		if ok, _ := r.IsValidMove(b, move, player, moveCount); ok {
			moves = append(moves, move)
		}
	}
	return moves
}
