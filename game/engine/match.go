package engine

// MatchMask flags the cells that took part in the most recent scan
type MatchMask struct {
	size  int
	cells []bool
}

// NewMatchMask creates a cleared mask for an N×N board
func NewMatchMask(size int) *MatchMask {
	return &MatchMask{size: size, cells: make([]bool, size*size)}
}

// Size returns N
func (m *MatchMask) Size() int {
	return m.size
}

// At reports whether the cell at x,y is marked. Out of range reads are false.
func (m *MatchMask) At(x, y int) bool {
	if x < 0 || x >= m.size || y < 0 || y >= m.size {
		return false
	}
	return m.cells[y*m.size+x]
}

// Mark flags the cell at x,y
func (m *MatchMask) Mark(x, y int) {
	m.cells[y*m.size+x] = true
}

// Clear unmarks every cell
func (m *MatchMask) Clear() {
	for i := range m.cells {
		m.cells[i] = false
	}
}

// Count returns the number of marked cells
func (m *MatchMask) Count() int {
	count := 0
	for _, marked := range m.cells {
		if marked {
			count++
		}
	}
	return count
}

// Marked lists marked positions in row-major order
func (m *MatchMask) Marked() []Position {
	var out []Position
	for i, marked := range m.cells {
		if marked {
			out = append(out, Position{X: i % m.size, Y: i / m.size})
		}
	}
	return out
}

// Scan clears mask and marks every horizontal then vertical window of three
// equal symbols. It returns the number of windows found; a run of length L
// counts L-2 windows. The board is not modified.
func Scan(b *Board, mask *MatchMask) int {
	mask.Clear()
	n := b.size
	windows := 0

	for y := 0; y < n; y++ {
		for x := 0; x < n-2; x++ {
			t := b.at(x, y)
			if t != Empty && t == b.at(x+1, y) && t == b.at(x+2, y) {
				mask.Mark(x, y)
				mask.Mark(x+1, y)
				mask.Mark(x+2, y)
				windows++
			}
		}
	}

	for y := 0; y < n-2; y++ {
		for x := 0; x < n; x++ {
			t := b.at(x, y)
			if t != Empty && t == b.at(x, y+1) && t == b.at(x, y+2) {
				mask.Mark(x, y)
				mask.Mark(x, y+1)
				mask.Mark(x, y+2)
				windows++
			}
		}
	}

	return windows
}

// HasRun reports whether any row or column holds three equal symbols in a row
func HasRun(b *Board) bool {
	return Scan(b, NewMatchMask(b.size)) > 0
}
