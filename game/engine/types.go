package engine

import "errors"

// Symbol is the content of a single board cell
type Symbol byte

const (
	// Empty marks a cell voided during resolution
	Empty Symbol = ' '

	// Validation constants
	MinBoardSize    = 3
	MaxBoardSize    = 32
	MinTileTypes    = 3
	MaxCascadePass  = 1000
	DefaultSymbols  = "#$%&@*+=?!"
	DefaultTileSize = 42

	// Screen the classic preset is centered in
	DefaultScreenWidth  = 800
	DefaultScreenHeight = 450
)

var (
	ErrOutOfBounds   = errors.New("position out of bounds")
	ErrMaskMismatch  = errors.New("match mask does not fit board")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrCascadeLimit  = errors.New("cascade did not settle")
)

// String returns the symbol as a one character string
func (s Symbol) String() string {
	return string(rune(s))
}

// Position represents x,y coordinates; X is the column, Y the row from the top
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Status is derived from the fall offsets, never stored
type Status string

const (
	Idle      Status = "idle"
	Animating Status = "animating"
)

// Swap is a pair of adjacent cells
type Swap struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Pointer is the input feed consumed once per tick
type Pointer interface {
	Position() (x, y float64)
	JustPressed() bool
}

// CellView is one cell of the render feed
type CellView struct {
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Symbol  string  `json:"symbol"`
	Matched bool    `json:"matched,omitempty"`
	Offset  float64 `json:"offset,omitempty"`
}

// Snapshot is the read-only render feed for a single frame
type Snapshot struct {
	Cells     []CellView `json:"cells"`
	Rows      []string   `json:"rows"`
	Selected  *Position  `json:"selected,omitempty"`
	Score     int        `json:"score"`
	Status    Status     `json:"status"`
	Ticks     int        `json:"ticks"`
	Cascades  int        `json:"cascades"`
	BoardSize int        `json:"board_size"`
}

// PressResult describes what a pointer press did
type PressResult string

const (
	PressIgnored   PressResult = "ignored"
	PressSelected  PressResult = "selected"
	PressSwapped   PressResult = "swapped"
	PressReverted  PressResult = "reverted"
	PressOutOfGrid PressResult = "out_of_grid"
)
