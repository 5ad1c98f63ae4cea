package main

type HistoryEntry struct {
	Move      Move
	Player    PlayerColor
	ElapsedMs int64
	IsAi      bool
	Depth     int
}

type MoveHistory struct {
	entries []HistoryEntry
}

func (h *MoveHistory) Add(entry HistoryEntry) {
	h.entries = append(h.entries, entry)
}

func (h MoveHistory) All() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}

func (h MoveHistory) Size() int {
	return len(h.entries)
}

func (h *MoveHistory) Clear() {
	h.entries = h.entries[:0]
}
