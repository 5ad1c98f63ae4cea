package main

import "sort"

type ThreatKind uint8

const (
	ThreatOpenThree ThreatKind = iota
	ThreatClosedFour
	ThreatOpenFour
)

func (k ThreatKind) String() string {
	switch k {
	case ThreatOpenThree:
		return "open_three"
	case ThreatClosedFour:
		return "closed_four"
	default:
		return "open_four"
	}
}

type Threat struct {
	Kind   ThreatKind `json:"kind"`
	Start  Move       `json:"start"`
	End    Move       `json:"end"`
	Dir    [2]int     `json:"dir"`
	Stones []Move     `json:"stones"`
}

type patToken uint8

const (
	tokEmpty patToken = iota
	tokSelf
	tokFoe
)

type threatPattern struct {
	kind ThreatKind
	toks []patToken
}

// threatCatalogue is the fixed shape list scanned by FindThreats.
// Stronger shapes come first so a stone set is recorded under its most
// significant category. tokFoe also matches the board edge, which makes
// the edge-bounded four variants fall out of the same matcher.
var threatCatalogue = []threatPattern{
	{ThreatOpenFour, []patToken{tokEmpty, tokSelf, tokSelf, tokSelf, tokSelf, tokEmpty}},
	{ThreatClosedFour, []patToken{tokFoe, tokSelf, tokSelf, tokSelf, tokSelf, tokEmpty}},
	{ThreatClosedFour, []patToken{tokEmpty, tokSelf, tokSelf, tokSelf, tokSelf, tokFoe}},
	{ThreatClosedFour, []patToken{tokSelf, tokSelf, tokSelf, tokEmpty, tokSelf}},
	{ThreatClosedFour, []patToken{tokSelf, tokSelf, tokEmpty, tokSelf, tokSelf}},
	{ThreatClosedFour, []patToken{tokSelf, tokEmpty, tokSelf, tokSelf, tokSelf}},
	{ThreatOpenThree, []patToken{tokEmpty, tokSelf, tokSelf, tokSelf, tokEmpty}},
	{ThreatOpenThree, []patToken{tokEmpty, tokSelf, tokSelf, tokEmpty, tokSelf, tokEmpty}},
	{ThreatOpenThree, []patToken{tokEmpty, tokSelf, tokEmpty, tokSelf, tokSelf, tokEmpty}},
	{ThreatOpenThree, []patToken{tokEmpty, tokSelf, tokEmpty, tokSelf, tokEmpty, tokSelf, tokEmpty}},
}

// FindThreats scans the whole board for player's open threes, fours and
// open fours. A physical threat matched through several overlapping
// windows is reported once: uniqueness is keyed on the exact set of
// same-color stones participating, not on the window position. Runs once
// per move for UI and tactics, never inside the search recursion.
func (r *Rules) FindThreats(b *Board, player PlayerColor) []Threat {
	if r.settings.WinLength != 5 {
		return nil
	}
	self := cellForPlayer(player)
	seen := make(map[string]struct{})
	threats := []Threat{}
	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			for _, dir := range directions {
				for _, pattern := range threatCatalogue {
					stones, ok := matchThreatAt(b, x, y, dir[0], dir[1], self, pattern.toks)
					if !ok {
						continue
					}
					key := stoneSetKey(b, stones)
					if _, dup := seen[key]; dup {
						continue
					}
					seen[key] = struct{}{}
					threats = append(threats, Threat{
						Kind:   pattern.kind,
						Start:  stones[0],
						End:    stones[len(stones)-1],
						Dir:    dir,
						Stones: stones,
					})
				}
			}
		}
	}
	return threats
}

// matchThreatAt matches a token pattern starting at (x, y) along
// (dx, dy) and returns the player's stones inside the window. tokFoe
// accepts an opponent stone or a cell off the board.
func matchThreatAt(b *Board, x, y, dx, dy int, self Cell, toks []patToken) ([]Move, bool) {
	stones := make([]Move, 0, 4)
	for i, tok := range toks {
		cx := x + dx*i
		cy := y + dy*i
		inside := b.InBounds(cx, cy)
		switch tok {
		case tokSelf:
			if !inside || b.At(cx, cy) != self {
				return nil, false
			}
			stones = append(stones, Move{X: cx, Y: cy})
		case tokEmpty:
			if !inside || !b.IsEmpty(cx, cy) {
				return nil, false
			}
		case tokFoe:
			if inside && (b.IsEmpty(cx, cy) || b.At(cx, cy) == self) {
				return nil, false
			}
		}
	}
	return stones, true
}

func stoneSetKey(b *Board, stones []Move) string {
	indices := make([]int, len(stones))
	for i, stone := range stones {
		indices[i] = b.index(stone.X, stone.Y)
	}
	sort.Ints(indices)
	key := make([]byte, 0, len(indices)*3)
	for _, idx := range indices {
		key = append(key, byte(idx), byte(idx>>8), ',')
	}
	return string(key)
}
