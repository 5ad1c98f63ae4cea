package main

type Cell uint8

const (
	CellEmpty Cell = iota
	CellBlack
	CellWhite
)

// Line directions shared by every scan: horizontal, vertical,
// down-right diagonal, up-right diagonal.
var directions = [4][2]int{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

type Board struct {
	size  int
	cells []Cell
}

func NewBoard(size int) Board {
	return Board{
		size:  size,
		cells: make([]Cell, size*size),
	}
}

func (b Board) index(x, y int) int {
	return y*b.size + x
}

func (b Board) Size() int {
	return b.size
}

func (b Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.size && y >= 0 && y < b.size
}

func (b Board) At(x, y int) Cell {
	return b.cells[b.index(x, y)]
}

func (b *Board) Set(x, y int, cell Cell) {
	b.cells[b.index(x, y)] = cell
}

func (b Board) IsEmpty(x, y int) bool {
	return b.cells[b.index(x, y)] == CellEmpty
}

func (b Board) CountEmpty() int {
	count := 0
	for _, cell := range b.cells {
		if cell == CellEmpty {
			count++
		}
	}
	return count
}

func (b Board) EmptyCells() []Move {
	moves := make([]Move, 0, b.CountEmpty())
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			if b.cells[b.index(x, y)] == CellEmpty {
				moves = append(moves, Move{X: x, Y: y})
			}
		}
	}
	return moves
}

func (b Board) Clone() Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return Board{size: b.size, cells: cells}
}

func cellForPlayer(player PlayerColor) Cell {
	if player == PlayerBlack {
		return CellBlack
	}
	return CellWhite
}
