// Package session provides in-memory session management for checkers games.
//
// Manager is the SessionManager used by the service layer. Each session owns
// one rules engine together with its creation and last-access times.
//
// Session Identifiers:
//
// Sessions created with an empty ID get a random UUID. Lookups are
// case-insensitive, so an ID may be passed back in any case.
//
// Concurrency:
//
// The manager guards its session map with a read/write lock. The engine in
// each session has its own lock (see service.Session), so moves in different
// games never contend with each other or with map lookups.
//
// Usage:
//
//	manager := session.NewManager(logger)
//
//	sess, err := manager.Create("", engine.NewEngine())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Drop games nobody has touched for a day
//	removed := manager.CleanupExpiredSessions(24 * time.Hour)
//
// Sessions live only as long as the process.
package session
