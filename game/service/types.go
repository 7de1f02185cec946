package service

import (
	"time"

	"github.com/wricardo/blockmatch/game/engine"
)

// SessionInfo provides information about a board session
type SessionInfo struct {
	ID             string           `json:"id"`
	ConfigName     string           `json:"config_name"`
	CreatedAt      time.Time        `json:"created_at"`
	LastAccessedAt time.Time        `json:"last_accessed_at"`
	Snapshot       *engine.Snapshot `json:"snapshot"`
	Config         *engine.Config   `json:"config"`
}

// ClickResult contains the result of a single pointer press
type ClickResult struct {
	Result     engine.PressResult `json:"result"`
	Cell       *engine.Position   `json:"cell,omitempty"`
	ScoreDelta int                `json:"score_delta"`
	Snapshot   *engine.Snapshot   `json:"snapshot"`
	Events     []GameEvent        `json:"events,omitempty"`
}

// TickResult summarizes a batch of frames
type TickResult struct {
	Frames     int              `json:"frames"`
	Settled    bool             `json:"settled"`
	ScoreDelta int              `json:"score_delta"`
	Cascades   int              `json:"cascades"`
	Snapshot   *engine.Snapshot `json:"snapshot"`
}

// SimulationResult summarizes an automated run
type SimulationResult struct {
	// Summary
	RequestedMoves int    `json:"requested_moves"`
	MovesExecuted  int    `json:"moves_executed"`
	StoppedReason  string `json:"stopped_reason,omitempty"` // no_moves|cancelled|frame_limit
	Frames         int    `json:"frames"`
	Cascades       int    `json:"cascades"`

	// Start/end snapshot
	StartScore int              `json:"start_score"`
	EndScore   int              `json:"end_score"`
	ScoreDelta int              `json:"score_delta"`
	Snapshot   *engine.Snapshot `json:"snapshot"`

	// Per-swap compact trace
	Steps []StepInfo `json:"steps,omitempty"`
}

// StepInfo is a compact record for each swap executed by a simulation
type StepInfo struct {
	Idx        int             `json:"idx"`
	From       engine.Position `json:"from"`
	To         engine.Position `json:"to"`
	ScoreAfter int             `json:"score_after"`
	Frames     int             `json:"frames"` // frames until the board settled again
}

// GameEvent represents something that happened during play
type GameEvent struct {
	Type      string          `json:"type"` // "select", "swap", "revert", "ignored", "reset"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position,omitempty"`
}

// ConfigInfo provides information about a board preset
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	BoardSize   int    `json:"board_size"`
	TileTypes   int    `json:"tile_types"`
	Symbols     string `json:"symbols"`
}
