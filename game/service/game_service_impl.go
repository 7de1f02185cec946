package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wricardo/blockmatch/game/engine"
)

const (
	// MaxTickBatch bounds a single Tick call
	MaxTickBatch = 10000
	// SettleFrameLimit bounds how long Settle waits for a board to come to rest
	SettleFrameLimit = 10000
	// MaxSimulatedMoves bounds a single Simulate call
	MaxSimulatedMoves = 5000
)

// ErrFrameLimit is returned when a board keeps animating past SettleFrameLimit
var ErrFrameLimit = errors.New("board did not settle within frame limit")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	logger   *zap.Logger
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, logger *zap.Logger) GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		logger:   logger,
	}
}

// CreateSession creates a new board session. A non-zero seed makes the
// board reproducible.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string, seed uint64) (*SessionInfo, error) {
	var base *engine.Config
	if configName != "" {
		loaded, err := s.configs.LoadConfig(configName)
		if err != nil {
			return nil, s.configError(configName, err)
		}
		base = loaded
	} else {
		base = s.configs.GetDefault()
	}

	config := *base
	if seed != 0 {
		config.Seed = seed
	}

	session, err := s.sessions.Create("", &config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("session created",
		zap.String("session_id", session.ID),
		zap.String("config", config.Name),
		zap.Uint64("seed", config.Seed),
	)
	return s.info(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.info(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.info(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.logger.Info("session deleted", zap.String("session_id", sessionID))
	return nil
}

// Click presses a board cell directly
func (s *gameServiceImpl) Click(ctx context.Context, sessionID string, cell engine.Position) (*ClickResult, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var result *ClickResult
	session.Do(func(eng *engine.GameEngine) {
		before := eng.Score()
		res := eng.Click(cell)
		result = &ClickResult{
			Result:     res,
			Cell:       &cell,
			ScoreDelta: eng.Score() - before,
			Snapshot:   eng.Snapshot(),
			Events:     []GameEvent{eventFor(res, cell)},
		}
	})
	return result, nil
}

// Press presses a screen point, mapping it through the board origin
func (s *gameServiceImpl) Press(ctx context.Context, sessionID string, px, py float64) (*ClickResult, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var result *ClickResult
	session.Do(func(eng *engine.GameEngine) {
		before := eng.Score()
		res := eng.Press(px, py)
		result = &ClickResult{
			Result:     res,
			ScoreDelta: eng.Score() - before,
			Snapshot:   eng.Snapshot(),
		}
		if cell, ok := eng.CellAt(px, py); ok {
			result.Cell = &cell
			result.Events = []GameEvent{eventFor(res, cell)}
		}
	})
	return result, nil
}

// Tick advances the board by a number of frames without input
func (s *gameServiceImpl) Tick(ctx context.Context, sessionID string, frames int) (*TickResult, error) {
	if frames <= 0 {
		frames = 1
	}
	if frames > MaxTickBatch {
		frames = MaxTickBatch
	}

	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var result *TickResult
	session.Do(func(eng *engine.GameEngine) {
		startScore, startCascades := eng.Score(), eng.Cascades()
		animating := eng.Status() == engine.Animating
		executed := 0
		for ; executed < frames; executed++ {
			if ctx.Err() != nil {
				break
			}
			animating = eng.Tick(nil)
		}
		result = &TickResult{
			Frames:     executed,
			Settled:    !animating,
			ScoreDelta: eng.Score() - startScore,
			Cascades:   eng.Cascades() - startCascades,
			Snapshot:   eng.Snapshot(),
		}
	})
	return result, ctx.Err()
}

// Settle ticks until the board is idle and stable
func (s *gameServiceImpl) Settle(ctx context.Context, sessionID string) (*TickResult, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var result *TickResult
	session.Do(func(eng *engine.GameEngine) {
		startScore, startCascades := eng.Score(), eng.Cascades()
		frames, settleErr := settle(ctx, eng)
		err = settleErr
		result = &TickResult{
			Frames:     frames,
			Settled:    settleErr == nil,
			ScoreDelta: eng.Score() - startScore,
			Cascades:   eng.Cascades() - startCascades,
			Snapshot:   eng.Snapshot(),
		}
	})
	return result, err
}

// Reset refills the board and zeroes the score
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var snap *engine.Snapshot
	session.Do(func(eng *engine.GameEngine) {
		eng.Reset()
		snap = eng.Snapshot()
	})
	s.logger.Debug("session reset", zap.String("session_id", sessionID))
	return snap, nil
}

// Snapshot returns the current render feed
func (s *gameServiceImpl) Snapshot(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var snap *engine.Snapshot
	session.Do(func(eng *engine.GameEngine) {
		snap = eng.Snapshot()
	})
	return snap, nil
}

// Hints lists swaps that would create a run
func (s *gameServiceImpl) Hints(ctx context.Context, sessionID string) ([]engine.Swap, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var hints []engine.Swap
	session.Do(func(eng *engine.GameEngine) {
		hints = eng.Hints()
	})
	return hints, nil
}

// Simulate plays up to moves swaps, always taking the first hint and letting
// the board settle between swaps
func (s *gameServiceImpl) Simulate(ctx context.Context, sessionID string, moves int) (*SimulationResult, error) {
	if moves > MaxSimulatedMoves {
		moves = MaxSimulatedMoves
	}

	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var result *SimulationResult
	session.Do(func(eng *engine.GameEngine) {
		result = &SimulationResult{
			RequestedMoves: moves,
			StartScore:     eng.Score(),
		}
		startCascades := eng.Cascades()

		frames, settleErr := settle(ctx, eng)
		result.Frames += frames
		if settleErr != nil {
			result.StoppedReason = stopReason(settleErr)
		}

		for result.StoppedReason == "" && result.MovesExecuted < moves {
			if ctx.Err() != nil {
				result.StoppedReason = "cancelled"
				break
			}
			hints := eng.Hints()
			if len(hints) == 0 {
				result.StoppedReason = "no_moves"
				break
			}

			h := hints[0]
			eng.Deselect()
			eng.Click(h.From)
			if res := eng.Click(h.To); res != engine.PressSwapped {
				err = fmt.Errorf("hint %v->%v was rejected: %s", h.From, h.To, res)
				return
			}
			result.MovesExecuted++

			frames, settleErr := settle(ctx, eng)
			result.Frames += frames
			result.Steps = append(result.Steps, StepInfo{
				Idx:        result.MovesExecuted,
				From:       h.From,
				To:         h.To,
				ScoreAfter: eng.Score(),
				Frames:     frames,
			})
			if settleErr != nil {
				result.StoppedReason = stopReason(settleErr)
			}
		}

		result.EndScore = eng.Score()
		result.ScoreDelta = result.EndScore - result.StartScore
		result.Cascades = eng.Cascades() - startCascades
		result.Snapshot = eng.Snapshot()
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("simulation finished",
		zap.String("session_id", sessionID),
		zap.Int("moves", result.MovesExecuted),
		zap.Int("score", result.EndScore),
		zap.String("stopped", result.StoppedReason),
	)
	return result, nil
}

// ListConfigs returns all available presets
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a preset by name
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.Config, error) {
	config, err := s.configs.LoadConfig(configName)
	if err != nil {
		return nil, s.configError(configName, err)
	}
	return config, nil
}

func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	_ = s.sessions.UpdateLastAccessed(sessionID)
	return session, nil
}

func (s *gameServiceImpl) info(session *Session) *SessionInfo {
	info := &SessionInfo{
		ID:             session.ID,
		ConfigName:     session.Config.Name,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessed(),
		Config:         session.Config,
	}
	session.Do(func(eng *engine.GameEngine) {
		info.Snapshot = eng.Snapshot()
	})
	return info
}

// configError adds the list of available presets to a failed lookup
func (s *gameServiceImpl) configError(configName string, err error) error {
	availableConfigs, listErr := s.configs.ListConfigs()
	if listErr != nil || len(availableConfigs) == 0 {
		return fmt.Errorf("failed to load config %s: %w", configName, err)
	}
	var configIDs []string
	for _, cfg := range availableConfigs {
		configIDs = append(configIDs, cfg.ConfigID)
	}
	return fmt.Errorf("failed to load config %s (available: %v): %w", configName, configIDs, err)
}

// settle ticks eng until a frame ends idle. The frame that ends idle has
// already run a scan that found nothing, so the board is stable.
func settle(ctx context.Context, eng *engine.GameEngine) (int, error) {
	if eng.Status() == engine.Idle && !engine.HasRun(eng.Board()) {
		return 0, nil
	}
	for frames := 1; frames <= SettleFrameLimit; frames++ {
		if err := ctx.Err(); err != nil {
			return frames - 1, err
		}
		if !eng.Tick(nil) {
			return frames, nil
		}
	}
	return SettleFrameLimit, ErrFrameLimit
}

func stopReason(err error) string {
	if errors.Is(err, ErrFrameLimit) {
		return "frame_limit"
	}
	return "cancelled"
}

func eventFor(res engine.PressResult, cell engine.Position) GameEvent {
	ev := GameEvent{Timestamp: time.Now(), Position: cell}
	switch res {
	case engine.PressSelected:
		ev.Type = "select"
		ev.Message = fmt.Sprintf("selected (%d,%d)", cell.X, cell.Y)
	case engine.PressSwapped:
		ev.Type = "swap"
		ev.Message = fmt.Sprintf("swapped into (%d,%d)", cell.X, cell.Y)
	case engine.PressReverted:
		ev.Type = "revert"
		ev.Message = fmt.Sprintf("swap into (%d,%d) made no run", cell.X, cell.Y)
	default:
		ev.Type = "ignored"
		ev.Message = fmt.Sprintf("press at (%d,%d) ignored", cell.X, cell.Y)
	}
	return ev
}
