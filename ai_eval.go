package main

// Pattern scores, own side. Opponent patterns carry larger magnitudes so
// the search defends before it attacks. The two-stone scores are part of
// the tuning table; the line scan stops at threes.
const (
	scoreWin         = 10000000
	scoreOpenFour    = 100000
	scoreClosedFour  = 10000
	scoreOpenThree   = 5000
	scoreClosedThree = 500
	scoreBrokenThree = 450
	scoreOpenTwo     = 100
	scoreClosedTwo   = 10
	scoreBrokenTwo   = 5

	scoreFoeWin         = -100000000
	scoreFoeOpenFour    = -6000000
	scoreFoeClosedFour  = -50000
	scoreFoeOpenThree   = -150000
	scoreFoeClosedThree = -5000
	scoreFoeBrokenThree = -4500
	scoreFoeOpenTwo     = -1000
	scoreFoeClosedTwo   = -100
	scoreFoeBrokenTwo   = -50
)

// Token bytes for line evaluation. '#' marks cells beyond the board
// edge; only the edge-blocked shape variants match it.
const (
	evalSelf   = 'M'
	evalFoe    = 'O'
	evalBlank  = '.'
	evalBorder = '#'
)

type evalPattern struct {
	toks  []byte
	score int
}

// Evaluator scores a position by line patterns. It is built once per AI
// instance for a fixed board size: line index lists and the token buffer
// are cached so the hot path allocates nothing.
type Evaluator struct {
	size      int
	winLength int
	lines     [][]int
	buf       []byte
	patterns  []evalPattern
}

func NewEvaluator(size, winLength int) *Evaluator {
	e := &Evaluator{size: size, winLength: winLength}
	e.lines = buildLines(size, winLength)
	longest := 0
	for _, line := range e.lines {
		if len(line) > longest {
			longest = len(line)
		}
	}
	e.buf = make([]byte, longest+2)
	e.patterns = buildEvalPatterns(winLength)
	return e
}

// buildLines collects the cell-index lists for every row, column and
// diagonal (both families) long enough to hold a winning run.
func buildLines(size, winLength int) [][]int {
	lines := make([][]int, 0, size*6)
	for y := 0; y < size; y++ {
		row := make([]int, size)
		for x := 0; x < size; x++ {
			row[x] = y*size + x
		}
		lines = append(lines, row)
	}
	for x := 0; x < size; x++ {
		col := make([]int, size)
		for y := 0; y < size; y++ {
			col[y] = y*size + x
		}
		lines = append(lines, col)
	}
	appendDiag := func(x, y, dx, dy int) {
		diag := []int{}
		for x >= 0 && x < size && y >= 0 && y < size {
			diag = append(diag, y*size+x)
			x += dx
			y += dy
		}
		if len(diag) >= winLength {
			lines = append(lines, diag)
		}
	}
	for x := 0; x < size; x++ {
		appendDiag(x, 0, 1, 1)
		appendDiag(x, 0, -1, 1)
	}
	for y := 1; y < size; y++ {
		appendDiag(0, y, 1, 1)
		appendDiag(size-1, y, -1, 1)
	}
	return lines
}

// buildEvalPatterns returns the shape catalogue for both colors as one
// list. Lines are scanned in a single pass, so a matched shape consumes
// its cells and hides any overlapping shape of either color.
func buildEvalPatterns(winLength int) []evalPattern {
	ownWin := make([]byte, winLength)
	foeWin := make([]byte, winLength)
	for i := 0; i < winLength; i++ {
		ownWin[i] = evalSelf
		foeWin[i] = evalFoe
	}
	return []evalPattern{
		{ownWin, scoreWin},
		{foeWin, scoreFoeWin},
		{[]byte(".MMMM."), scoreOpenFour},
		{[]byte(".OOOO."), scoreFoeOpenFour},
		{[]byte("OMMMM."), scoreClosedFour},
		{[]byte(".MMMMO"), scoreClosedFour},
		{[]byte("#MMMM."), scoreClosedFour},
		{[]byte(".MMMM#"), scoreClosedFour},
		{[]byte("MOOOO."), scoreFoeClosedFour},
		{[]byte(".OOOOM"), scoreFoeClosedFour},
		{[]byte("#OOOO."), scoreFoeClosedFour},
		{[]byte(".OOOO#"), scoreFoeClosedFour},
		{[]byte(".MMM."), scoreOpenThree},
		{[]byte(".OOO."), scoreFoeOpenThree},
		{[]byte(".MM.M."), scoreBrokenThree},
		{[]byte(".M.MM."), scoreBrokenThree},
		{[]byte(".OO.O."), scoreFoeBrokenThree},
		{[]byte(".O.OO."), scoreFoeBrokenThree},
		{[]byte("OMMM."), scoreClosedThree},
		{[]byte(".MMMO"), scoreClosedThree},
		{[]byte("#MMM."), scoreClosedThree},
		{[]byte(".MMM#"), scoreClosedThree},
		{[]byte("MOOO."), scoreFoeClosedThree},
		{[]byte(".OOOM"), scoreFoeClosedThree},
		{[]byte("#OOO."), scoreFoeClosedThree},
		{[]byte(".OOO#"), scoreFoeClosedThree},
	}
}

// EvaluateBoard scores the position from self's perspective: the sum
// over all lines of each line's dominant pattern score. A line whose
// dominant pattern is the opponent's open four or open three counts
// double, and a matched win on either side returns its constant
// immediately.
func (e *Evaluator) EvaluateBoard(b *Board, self PlayerColor) int {
	selfCell := cellForPlayer(self)
	foeCell := cellForPlayer(self.Opponent())
	total := 0
	for _, line := range e.lines {
		score := e.scanLine(b, line, selfCell, foeCell)
		if score == scoreWin || score == scoreFoeWin {
			return score
		}
		total += score
		if score == scoreFoeOpenFour || score == scoreFoeOpenThree {
			total += score
		}
	}
	return total
}

// scanLine tokenizes one line between edge sentinels and runs one greedy
// leftmost pass over the combined catalogue: the first shape matched at
// a position consumes its cells, whichever color it belongs to. Returns
// the largest-magnitude score on the line; wins return as soon as seen.
func (e *Evaluator) scanLine(b *Board, line []int, me, them Cell) int {
	buf := e.buf[:len(line)+2]
	buf[0] = evalBorder
	for i, idx := range line {
		switch b.cells[idx] {
		case me:
			buf[i+1] = evalSelf
		case them:
			buf[i+1] = evalFoe
		default:
			buf[i+1] = evalBlank
		}
	}
	buf[len(buf)-1] = evalBorder

	best := 0
	i := 0
	for i < len(buf) {
		matched := false
		for _, pattern := range e.patterns {
			if matchAt(buf, i, pattern.toks) {
				if pattern.score == scoreWin || pattern.score == scoreFoeWin {
					return pattern.score
				}
				if abs(pattern.score) > abs(best) {
					best = pattern.score
				}
				i += len(pattern.toks)
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
	return best
}

func matchAt(buf []byte, at int, toks []byte) bool {
	if at+len(toks) > len(buf) {
		return false
	}
	for i, tok := range toks {
		if buf[at+i] != tok {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
