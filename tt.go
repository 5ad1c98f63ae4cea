package main

type TTFlag uint8

const (
	TTExact TTFlag = iota
	TTLower
	TTUpper
)

type TTEntry struct {
	Key      uint64
	Score    int
	Depth    int
	Flag     TTFlag
	BestMove Move
	Valid    bool
}

// TranspositionTable caches search results for one FindMove call. It is
// cleared at the start of every move decision and never shared between
// searches, so there is no locking and no aging.
type TranspositionTable struct {
	mask    uint64
	buckets int
	entries []TTEntry
}

func NewTranspositionTable(size uint64, buckets int) *TranspositionTable {
	if buckets <= 0 {
		buckets = 2
	}
	if size < 1 {
		size = 1
	}
	if size&(size-1) != 0 {
		size = nextPowerOfTwo(size)
	}
	return &TranspositionTable{
		mask:    size - 1,
		buckets: buckets,
		entries: make([]TTEntry, int(size)*buckets),
	}
}

func (tt *TranspositionTable) bucketIndex(key uint64) int {
	return int(key&tt.mask) * tt.buckets
}

func (tt *TranspositionTable) Probe(key uint64) (TTEntry, bool) {
	start := tt.bucketIndex(key)
	for i := 0; i < tt.buckets; i++ {
		entry := tt.entries[start+i]
		if entry.Valid && entry.Key == key {
			return entry, true
		}
	}
	return TTEntry{}, false
}

// Store keeps the deeper result on key collisions within a bucket and
// prefers exact bounds over fail-low/fail-high ones at equal depth.
func (tt *TranspositionTable) Store(key uint64, depth int, score int, flag TTFlag, best Move) {
	start := tt.bucketIndex(key)
	for i := 0; i < tt.buckets; i++ {
		idx := start + i
		entry := tt.entries[idx]
		if !entry.Valid || entry.Key != key {
			continue
		}
		if depth < entry.Depth {
			return
		}
		if depth == entry.Depth && entry.Flag == TTExact && flag != TTExact {
			return
		}
		tt.entries[idx] = TTEntry{Key: key, Score: score, Depth: depth, Flag: flag, BestMove: best, Valid: true}
		return
	}
	victim := start
	for i := 0; i < tt.buckets; i++ {
		idx := start + i
		if !tt.entries[idx].Valid {
			victim = idx
			break
		}
		if tt.entries[idx].Depth < tt.entries[victim].Depth {
			victim = idx
		}
	}
	tt.entries[victim] = TTEntry{Key: key, Score: score, Depth: depth, Flag: flag, BestMove: best, Valid: true}
}

func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
}

func (tt *TranspositionTable) Count() int {
	count := 0
	for i := range tt.entries {
		if tt.entries[i].Valid {
			count++
		}
	}
	return count
}

func (tt *TranspositionTable) Capacity() int {
	if tt == nil {
		return 0
	}
	return len(tt.entries)
}

func nextPowerOfTwo(v uint64) uint64 {
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	v++
	return v
}
