// Package engine provides the rules engine for English draughts (checkers).
//
// The engine package implements the game mechanics including:
//   - An 8x8 board of optional pieces with standard starting layout
//   - Simple diagonal moves and jumps over opponent pieces
//   - Mandatory capture and multi-jump continuation
//   - Crowning on the far row and turn alternation
//   - Win detection when the side to move has no legal move
//
// Core Types:
//
// Board is a rule-free container of pieces. GameEngine owns a Board and the
// turn state and is the only rule-checked mutator of the board. Every
// attempted move either fully succeeds, returning a MoveResult, or fails with
// an error wrapping one of the Err sentinels and leaves the game untouched.
//
// Usage:
//
//	eng := engine.NewEngine()
//
//	res, err := eng.MovePiece(engine.NewMove(2, 2, 3, 3))
//	if err != nil {
//		if errors.Is(err, engine.ErrMustCapture) {
//			// pick a capture from eng.LegalMoves()
//		}
//		return err
//	}
//	if res.Crowned {
//		// the piece on (3,3) is now a king
//	}
//
// Coordinates:
//
// Coordinates are zero-based (column, row). Dark squares, the only ones where
// pieces live, are those where column+row is even. Black starts on rows 0-2
// and moves toward row 7; White starts on rows 5-7 and moves toward row 0.
//
// Multi-jumps:
//
// A jump sequence is played as successive MovePiece calls. After a jump that
// leaves the same piece with another capture, the turn is retained
// (MoveResult.TurnRetained) and only that piece may move until the sequence
// ends. A piece crowned by a jump ends the turn.
//
// GameEngine is not safe for concurrent use. The service package guards each
// engine with a read/write lock.
package engine
