package engine

import "sort"

// Board is the grid of settled cells. Row 0 is the top.
type Board struct {
	width  int
	height int
	cells  [][]PieceType
}

// NewBoard returns an empty board.
func NewBoard(width, height int) *Board {
	b := &Board{width: width, height: height, cells: make([][]PieceType, height)}
	for y := range b.cells {
		b.cells[y] = make([]PieceType, width)
	}
	return b
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// InBounds reports whether (x, y) lies on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the cell at (x, y), or PieceNone outside the board.
func (b *Board) At(x, y int) PieceType {
	if !b.InBounds(x, y) {
		return PieceNone
	}
	return b.cells[y][x]
}

// Set writes a cell. Out-of-range writes are ignored.
func (b *Board) Set(x, y int, p PieceType) {
	if b.InBounds(x, y) {
		b.cells[y][x] = p
	}
}

// Clear empties every cell.
func (b *Board) Clear() {
	for y := range b.cells {
		clear(b.cells[y])
	}
}

// Collides reports whether s placed with its top-left at (x, y) would leave
// the sides or bottom or overlap a settled cell. Cells above the top are allowed.
func (b *Board) Collides(s Shape, x, y int) bool {
	blocked := false
	s.Each(func(dx, dy int) {
		col, row := x+dx, y+dy
		switch {
		case col < 0 || col >= b.width || row >= b.height:
			blocked = true
		case row >= 0 && b.cells[row][col] != PieceNone:
			blocked = true
		}
	})
	return blocked
}

// Place writes s into the grid as piece p. Cells above the top are dropped.
func (b *Board) Place(s Shape, x, y int, p PieceType) {
	s.Each(func(dx, dy int) {
		if y+dy >= 0 {
			b.Set(x+dx, y+dy, p)
		}
	})
}

// FullRows returns the indices of completely filled rows, ascending.
func (b *Board) FullRows() []int {
	var rows []int
	for y, row := range b.cells {
		full := true
		for _, c := range row {
			if c == PieceNone {
				full = false
				break
			}
		}
		if full {
			rows = append(rows, y)
		}
	}
	return rows
}

// RemoveRows deletes the given rows, shifts everything above them down and
// refills the top with empty rows. It returns how many rows were removed.
func (b *Board) RemoveRows(rows []int) int {
	sorted := make([]int, 0, len(rows))
	seen := make(map[int]bool, len(rows))
	for _, r := range rows {
		if r >= 0 && r < b.height && !seen[r] {
			seen[r] = true
			sorted = append(sorted, r)
		}
	}
	sort.Ints(sorted)

	for i, r := range sorted {
		y := r - i
		b.cells = append(b.cells[:y], b.cells[y+1:]...)
	}
	fresh := make([][]PieceType, len(sorted), b.height)
	for i := range fresh {
		fresh[i] = make([]PieceType, b.width)
	}
	b.cells = append(fresh, b.cells...)
	return len(sorted)
}

// Rows returns a deep copy of the grid.
func (b *Board) Rows() [][]PieceType {
	out := make([][]PieceType, b.height)
	for y, row := range b.cells {
		out[y] = make([]PieceType, b.width)
		copy(out[y], row)
	}
	return out
}

// Empty reports whether no cell is occupied.
func (b *Board) Empty() bool {
	for _, row := range b.cells {
		for _, c := range row {
			if c != PieceNone {
				return false
			}
		}
	}
	return true
}
