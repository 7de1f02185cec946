// Package session provides in-memory session management for block-match
// boards.
//
// Each session owns its own engine instance. The manager is safe for
// concurrent use; access to a single engine is serialized through
// service.Session.Do.
//
// Session IDs are case-insensitive. Generated IDs are the first eight hex
// characters of a random UUID.
//
// Usage:
//
//	manager := session.NewManager(logger)
//	sess, err := manager.Create("", engine.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	sess.Do(func(eng *engine.GameEngine) {
//		eng.Click(engine.Position{X: 2, Y: 3})
//	})
//
// Sessions that have not been touched for a while can be dropped with
// CleanupExpiredSessions.
package session
