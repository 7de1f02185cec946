package engine

import (
	"fmt"
	"math"
	"math/rand/v2"

	"go.uber.org/zap"
)

// Engine provides the main interface for board operations
type Engine interface {
	// Frame loop
	Tick(in Pointer) bool
	Status() Status

	// Input
	Press(px, py float64) PressResult
	Click(p Position) PressResult
	Selected() (Position, bool)
	Deselect()

	// State
	Board() *Board
	Score() int
	Snapshot() *Snapshot
	Config() *Config
	Reset()

	// Helpers for shells and simulations
	Hints() []Swap
	Cascade(maxPasses int) (int, error)
}

// GameEngine implements the Engine interface
type GameEngine struct {
	config   *Config
	board    *Board
	mask     *MatchMask
	falls    *FallField
	selected *Position
	score    int
	ticks    int
	cascades int
	logger   *zap.Logger
}

// Option customizes a GameEngine at construction
type Option func(*options)

type options struct {
	logger *zap.Logger
	rng    *rand.Rand
	rows   []string
}

// WithLogger sets the logger used for debug events
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRand sets the random source used for fills and refills
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithRows starts the engine from a fixed layout instead of a random fill
func WithRows(rows ...string) Option {
	return func(o *options) { o.rows = rows }
}

// NewEngine creates a new board engine with the provided configuration
func NewEngine(config *Config, opts ...Option) (*GameEngine, error) {
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.rng == nil && config.Seed != 0 {
		o.rng = rand.New(rand.NewPCG(config.Seed, config.Seed^0x9e3779b97f4a7c15))
	}

	var board *Board
	var err error
	if o.rows != nil {
		board, err = NewBoardFromRows(o.rows, config.Alphabet(), o.rng)
	} else {
		board, err = NewBoard(config.BoardSize, config.Alphabet(), o.rng)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	if board.Size() != config.BoardSize {
		return nil, fmt.Errorf("layout has %d rows but board_size is %d: %w", board.Size(), config.BoardSize, ErrInvalidConfig)
	}

	cfg := *config
	return &GameEngine{
		config: &cfg,
		board:  board,
		mask:   NewMatchMask(config.BoardSize),
		falls:  NewFallField(config.BoardSize),
		logger: o.logger.With(zap.String("config", config.Name)),
	}, nil
}

// NewEngineWithDefaults creates a new engine with the classic configuration
func NewEngineWithDefaults() *GameEngine {
	eng, err := NewEngine(DefaultConfig())
	if err != nil {
		panic(err) // the default config is always valid
	}
	return eng
}

// Tick advances one frame: falling cells move first, then, only if the
// board has settled, at most one pointer press is handled followed by one
// detect and resolve pass. It reports whether the board is animating.
func (e *GameEngine) Tick(in Pointer) bool {
	e.ticks++
	e.falls.Step(e.config.FallSpeed)

	if e.Status() == Animating {
		return true
	}

	if in != nil && in.JustPressed() {
		e.Press(in.Position())
	}
	e.resolvePass()

	return e.Status() == Animating
}

// Status returns Animating while any cell still has a fall offset
func (e *GameEngine) Status() Status {
	if e.falls.Animating() {
		return Animating
	}
	return Idle
}

// Press maps a screen point to a cell and clicks it
func (e *GameEngine) Press(px, py float64) PressResult {
	if e.Status() == Animating {
		return PressIgnored
	}
	p, ok := e.CellAt(px, py)
	if !ok {
		return PressOutOfGrid
	}
	return e.Click(p)
}

// CellAt maps a screen point to a board cell
func (e *GameEngine) CellAt(px, py float64) (Position, bool) {
	x := int(math.Floor((px - e.config.OriginX) / e.config.TileSize))
	y := int(math.Floor((py - e.config.OriginY) / e.config.TileSize))
	p := Position{X: x, Y: y}
	return p, e.board.Contains(p)
}

// Click selects p or, when a neighbour is already selected, attempts a swap.
// A swap that creates no run is reverted. Presses while animating are ignored.
func (e *GameEngine) Click(p Position) PressResult {
	if e.Status() == Animating {
		return PressIgnored
	}
	if !e.board.Contains(p) {
		return PressOutOfGrid
	}

	if e.selected == nil || !AreAdjacent(*e.selected, p) {
		sel := p
		e.selected = &sel
		return PressSelected
	}

	from := *e.selected
	e.selected = nil

	if err := e.board.Swap(from, p); err != nil {
		return PressIgnored
	}
	windows := Scan(e.board, e.mask)
	if windows == 0 {
		_ = e.board.Swap(from, p)
		e.logger.Debug("swap reverted",
			zap.Int("from_x", from.X), zap.Int("from_y", from.Y),
			zap.Int("to_x", p.X), zap.Int("to_y", p.Y),
		)
		return PressReverted
	}

	e.award(windows)
	e.resolve()
	e.logger.Debug("swap accepted",
		zap.Int("from_x", from.X), zap.Int("from_y", from.Y),
		zap.Int("to_x", p.X), zap.Int("to_y", p.Y),
		zap.Int("windows", windows), zap.Int("score", e.score),
	)
	return PressSwapped
}

// Selected returns the pending half of a swap, if any
func (e *GameEngine) Selected() (Position, bool) {
	if e.selected == nil {
		return Position{}, false
	}
	return *e.selected, true
}

// Deselect drops a pending selection
func (e *GameEngine) Deselect() {
	e.selected = nil
}

// Board returns the grid store
func (e *GameEngine) Board() *Board {
	return e.board
}

// Mask returns the result of the most recent scan
func (e *GameEngine) Mask() *MatchMask {
	return e.mask
}

// Falls returns the per-cell fall offsets
func (e *GameEngine) Falls() *FallField {
	return e.falls
}

// Score returns the current score
func (e *GameEngine) Score() int {
	return e.score
}

// Ticks returns the number of frames processed
func (e *GameEngine) Ticks() int {
	return e.ticks
}

// Cascades returns the number of resolution passes performed
func (e *GameEngine) Cascades() int {
	return e.cascades
}

// Config returns the engine configuration
func (e *GameEngine) Config() *Config {
	return e.config
}

// Reset refills the board and clears score, selection and animation
func (e *GameEngine) Reset() {
	e.board.Fill()
	e.mask.Clear()
	e.falls.Settle()
	e.selected = nil
	e.score = 0
	e.ticks = 0
	e.cascades = 0
}

// Cascade repeats detect and resolve until the board is stable, skipping the
// fall animation. It returns the number of passes that found a run.
func (e *GameEngine) Cascade(maxPasses int) (int, error) {
	if maxPasses <= 0 {
		maxPasses = MaxCascadePass
	}
	passes := 0
	for e.resolvePass() {
		passes++
		if passes >= maxPasses && HasRun(e.board) {
			e.falls.Settle()
			return passes, fmt.Errorf("after %d passes: %w", passes, ErrCascadeLimit)
		}
	}
	e.falls.Settle()
	return passes, nil
}

// Hints lists every adjacent swap that would create at least one run
func (e *GameEngine) Hints() []Swap {
	scratch := e.board.Clone()
	mask := NewMatchMask(scratch.size)
	n := scratch.size

	var hints []Swap
	try := func(a, b Position) {
		if scratch.at(a.X, a.Y) == scratch.at(b.X, b.Y) {
			return
		}
		_ = scratch.Swap(a, b)
		if Scan(scratch, mask) > 0 {
			hints = append(hints, Swap{From: a, To: b})
		}
		_ = scratch.Swap(a, b)
	}

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if x+1 < n {
				try(Position{X: x, Y: y}, Position{X: x + 1, Y: y})
			}
			if y+1 < n {
				try(Position{X: x, Y: y}, Position{X: x, Y: y + 1})
			}
		}
	}
	return hints
}

// Snapshot builds the render feed for the current frame
func (e *GameEngine) Snapshot() *Snapshot {
	n := e.board.size
	cells := make([]CellView, 0, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			cells = append(cells, CellView{
				X:       x,
				Y:       y,
				Symbol:  e.board.at(x, y).String(),
				Matched: e.mask.At(x, y),
				Offset:  e.falls.At(x, y),
			})
		}
	}

	snap := &Snapshot{
		Cells:     cells,
		Rows:      e.board.Rows(),
		Score:     e.score,
		Status:    e.Status(),
		Ticks:     e.ticks,
		Cascades:  e.cascades,
		BoardSize: n,
	}
	if sel, ok := e.Selected(); ok {
		snap.Selected = &sel
	}
	return snap
}

// resolvePass runs one detect and resolve cycle and reports whether it found a run
func (e *GameEngine) resolvePass() bool {
	windows := Scan(e.board, e.mask)
	if windows == 0 {
		return false
	}
	e.award(windows)
	e.resolve()
	return true
}

func (e *GameEngine) award(windows int) {
	e.score += windows * e.config.Reward
}

func (e *GameEngine) resolve() {
	if err := Resolve(e.board, e.mask, e.falls, e.config.TileSize); err != nil {
		e.logger.Error("resolve failed", zap.Error(err))
		return
	}
	e.cascades++
	e.logger.Debug("resolved matches",
		zap.Int("cells", e.mask.Count()),
		zap.Int("cascades", e.cascades),
	)
}
