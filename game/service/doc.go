// Package service provides the business logic layer for checkers games.
//
// The service package implements:
//   - Multi-game management on top of a SessionManager
//   - Move processing with per-game locking
//   - Move sequences applied atomically with respect to other callers
//   - Paginated move history
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
//
// Architecture:
//
// The service layer sits between the transports (host bridge, interactive
// shell) and the rules engine. Each session owns one engine guarded by a
// read/write lock, so queries on a game can run in parallel while a move
// holds the game exclusively. Different games never contend.
//
// Usage:
//
//	sessions := session.NewManager(logger)
//	games := service.NewGameService(sessions, logger)
//
//	info, err := games.CreateGame(ctx, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	outcome, err := games.Move(ctx, info.ID, engine.NewMove(2, 2, 3, 3))
//	if errors.Is(err, engine.ErrMustCapture) {
//		// a jump was available
//	}
//
// Declined moves return a nil outcome and an error that wraps one of the
// engine sentinels; ReasonCode turns it into a stable string.
package service
