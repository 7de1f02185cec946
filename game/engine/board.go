package engine

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Board is a fixed N×N grid of symbols stored row-major
type Board struct {
	size     int
	cells    []Symbol
	alphabet []Symbol
	rng      *rand.Rand
}

// NewBoard creates a board filled with random tiles drawn from alphabet
func NewBoard(size int, alphabet string, rng *rand.Rand) (*Board, error) {
	b, err := newEmptyBoard(size, alphabet, rng)
	if err != nil {
		return nil, err
	}
	b.Fill()
	return b, nil
}

// NewBoardFromRows creates a board from one string per row. Later refills
// still draw from alphabet.
func NewBoardFromRows(rows []string, alphabet string, rng *rand.Rand) (*Board, error) {
	b, err := newEmptyBoard(len(rows), alphabet, rng)
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != b.size {
			return nil, fmt.Errorf("row %d must have %d cells, got %d", y, b.size, len(row))
		}
		for x := 0; x < b.size; x++ {
			b.cells[y*b.size+x] = Symbol(row[x])
		}
	}
	return b, nil
}

func newEmptyBoard(size int, alphabet string, rng *rand.Rand) (*Board, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("board size must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, size)
	}
	if len(alphabet) == 0 {
		return nil, fmt.Errorf("alphabet cannot be empty")
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	symbols := make([]Symbol, len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		symbols[i] = Symbol(alphabet[i])
	}

	cells := make([]Symbol, size*size)
	for i := range cells {
		cells[i] = Empty
	}

	return &Board{
		size:     size,
		cells:    cells,
		alphabet: symbols,
		rng:      rng,
	}, nil
}

// Size returns N
func (b *Board) Size() int {
	return b.size
}

// Contains reports whether p lies on the board
func (b *Board) Contains(p Position) bool {
	return p.X >= 0 && p.X < b.size && p.Y >= 0 && p.Y < b.size
}

// Get returns the symbol at p
func (b *Board) Get(p Position) (Symbol, error) {
	if !b.Contains(p) {
		return Empty, fmt.Errorf("get %v: %w", p, ErrOutOfBounds)
	}
	return b.at(p.X, p.Y), nil
}

// Set stores s at p
func (b *Board) Set(p Position, s Symbol) error {
	if !b.Contains(p) {
		return fmt.Errorf("set %v: %w", p, ErrOutOfBounds)
	}
	b.cells[b.index(p.X, p.Y)] = s
	return nil
}

// Swap exchanges the symbols at a and c in place
func (b *Board) Swap(a, c Position) error {
	if !b.Contains(a) || !b.Contains(c) {
		return fmt.Errorf("swap %v<->%v: %w", a, c, ErrOutOfBounds)
	}
	i, j := b.index(a.X, a.Y), b.index(c.X, c.Y)
	b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
	return nil
}

// RandomTile picks a symbol uniformly from the alphabet
func (b *Board) RandomTile() Symbol {
	return b.alphabet[b.rng.IntN(len(b.alphabet))]
}

// Fill overwrites every cell with a random tile
func (b *Board) Fill() {
	for i := range b.cells {
		b.cells[i] = b.RandomTile()
	}
}

// CountEmpty returns the number of voided cells
func (b *Board) CountEmpty() int {
	count := 0
	for _, s := range b.cells {
		if s == Empty {
			count++
		}
	}
	return count
}

// Rows renders the board as one string per row
func (b *Board) Rows() []string {
	rows := make([]string, b.size)
	var sb strings.Builder
	for y := 0; y < b.size; y++ {
		sb.Reset()
		for x := 0; x < b.size; x++ {
			sb.WriteByte(byte(b.at(x, y)))
		}
		rows[y] = sb.String()
	}
	return rows
}

// Clone returns a deep copy sharing the random source
func (b *Board) Clone() *Board {
	cells := make([]Symbol, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		size:     b.size,
		cells:    cells,
		alphabet: b.alphabet,
		rng:      b.rng,
	}
}

// Equal reports whether both boards hold the same symbols
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (b *Board) index(x, y int) int {
	return y*b.size + x
}

func (b *Board) at(x, y int) Symbol {
	return b.cells[y*b.size+x]
}

// AreAdjacent reports whether a and c are exactly one step apart
func AreAdjacent(a, c Position) bool {
	return ManhattanDistance(a, c) == 1
}

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
