package service

import (
	"context"
	"sync"
	"time"

	"github.com/wricardo/blockmatch/game/engine"
)

// GameService defines all board-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string, seed uint64) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Input
	Click(ctx context.Context, sessionID string, cell engine.Position) (*ClickResult, error)
	Press(ctx context.Context, sessionID string, px, py float64) (*ClickResult, error)

	// Frames
	Tick(ctx context.Context, sessionID string, frames int) (*TickResult, error)
	Settle(ctx context.Context, sessionID string) (*TickResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.Snapshot, error)

	// Board State
	Snapshot(ctx context.Context, sessionID string) (*engine.Snapshot, error)
	Hints(ctx context.Context, sessionID string) ([]engine.Swap, error)
	Simulate(ctx context.Context, sessionID string, moves int) (*SimulationResult, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.Config, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.Config) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles preset loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.Config, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.Config
}

// Session represents an active board. Engine is not safe for concurrent
// use; callers go through Do.
type Session struct {
	ID        string
	Engine    *engine.GameEngine
	Config    *engine.Config
	CreatedAt time.Time

	mu           sync.Mutex
	accessMu     sync.Mutex
	lastAccessed time.Time
}

// Touch records an access. It does not wait for a running Do.
func (s *Session) Touch(at time.Time) {
	s.accessMu.Lock()
	s.lastAccessed = at
	s.accessMu.Unlock()
}

// LastAccessed returns the time of the latest Touch
func (s *Session) LastAccessed() time.Time {
	s.accessMu.Lock()
	defer s.accessMu.Unlock()
	return s.lastAccessed
}

// Do runs fn with exclusive access to the session's engine
func (s *Session) Do(fn func(eng *engine.GameEngine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.Engine)
}
