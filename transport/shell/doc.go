// Package shell implements a line-oriented front end for playing checkers.
//
// A Shell plays one game at a time through a host.Bridge, so every move goes
// through the same validation and notification path an embedding host uses.
// Commands are registered in a table with a long and a short name:
//
//	move fx fy tx ty   (m)  apply a step or jump
//	piece x y          (p)  print the encoded piece on a square
//	turn               (t)  print the side to move
//	moves              (l)  list legal moves
//	status             (s)  status and piece counts
//	history            (h)  moves played so far
//	new [black|white]  (n)  start over
//	help, exit
//
// RunInteractive uses readline for editing and history and should be used
// when IsTerminal reports a terminal. RunScript and Replay read plain lines.
package shell
