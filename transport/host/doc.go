// Package host adapts a game to the numeric interface an embedding host
// expects.
//
// Pieces cross the boundary as int32 bit flags (PieceFlagBlack,
// PieceFlagWhite, PieceFlagCrown) with NoPiece for an empty square.
// Bridge exposes GetPiece, GetCurrentTurn and MovePiece over one game of a
// service.GameService and reports committed moves through a Notifier.
//
// A Notifier is called at most once per event for each successful move, in
// the order moved then crowned, after the game lock has been released. It is
// never called for a declined move.
//
// Hub:
//
// Hub fans notifications out to any number of in-process subscribers. It
// runs a single event loop; a subscriber whose buffer is full is dropped and
// its channel closed.
//
//	hub := host.NewHub(logger)
//	go hub.Run(ctx)
//
//	sub := hub.Subscribe(gameID, 16)
//	bridge := host.NewBridge(games, gameID, hub.Notifier(gameID), logger)
//	bridge.MovePiece(2, 2, 3, 3)
//	fmt.Println(<-sub.C) // moved 2,2 -> 3,3
package host
