package main

// ZobristTable holds one random 64-bit key per (cell, color) pair, sized
// exactly to the board it was built for. Empty cells contribute nothing
// to the hash. Keys are generated once at construction and never change.
type ZobristTable struct {
	size int
	keys []uint64
}

func NewZobristTable(size int) *ZobristTable {
	rng := splitmix64{state: uint64(size)*0x9e3779b97f4a7c15 + 0x2545f4914f6cdd1d}
	keys := make([]uint64, size*size*2)
	for i := range keys {
		keys[i] = rng.next()
	}
	return &ZobristTable{size: size, keys: keys}
}

func (z *ZobristTable) Size() int {
	return z.size
}

func (z *ZobristTable) Stone(x, y int, player PlayerColor) uint64 {
	idx := (y*z.size + x) * 2
	if player == PlayerWhite {
		idx++
	}
	return z.keys[idx]
}

// ComputeHash builds the hash of a position from scratch. Used once per
// search call; in-tree updates go through UpdateHash.
func (z *ZobristTable) ComputeHash(b *Board) uint64 {
	var hash uint64
	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			switch b.At(x, y) {
			case CellBlack:
				hash ^= z.Stone(x, y, PlayerBlack)
			case CellWhite:
				hash ^= z.Stone(x, y, PlayerWhite)
			}
		}
	}
	return hash
}

// UpdateHash toggles one stone in or out of the hash. Applying the same
// update twice restores the previous hash.
func (z *ZobristTable) UpdateHash(hash uint64, x, y int, player PlayerColor) uint64 {
	return hash ^ z.Stone(x, y, player)
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
