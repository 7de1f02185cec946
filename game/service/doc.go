// Package service provides the session-level API over block-match boards.
//
// GameService wraps an engine per session and adds the operations a shell
// needs on top of the frame loop: batched ticks, settling a board until it
// is stable, hints, and a first-hint bot that plays a number of swaps.
// SessionManager and ConfigManager are the storage seams; the session and
// config packages provide the in-memory and file-backed implementations.
//
// Usage:
//
//	sessions := session.NewManager(logger)
//	configs, err := config.NewManager("configs")
//	if err != nil {
//		return err
//	}
//	svc := service.NewGameService(sessions, configs, logger)
//
//	info, err := svc.CreateSession(ctx, "classic", 42)
//	if err != nil {
//		return err
//	}
//	svc.Click(ctx, info.ID, engine.Position{X: 2, Y: 0})
//	svc.Click(ctx, info.ID, engine.Position{X: 3, Y: 0})
//	svc.Settle(ctx, info.ID)
//
// Every engine call goes through Session.Do, so concurrent requests against
// one session are serialized.
package service
