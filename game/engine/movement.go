package engine

// moveKind is the geometric classification of a move
type moveKind int

const (
	kindSimple moveKind = iota + 1
	kindCapture
)

// diagonals lists the four diagonal unit directions
var diagonals = [4]struct{ dx, dy int }{
	{1, 1},   // toward higher rows, right
	{-1, 1},  // toward higher rows, left
	{1, -1},  // toward lower rows, right
	{-1, -1}, // toward lower rows, left
}

// permits reports whether the piece may travel along row delta dy
func permits(p GamePiece, dy int) bool {
	return p.Crowned || dy == p.Color.forward()
}

// classify determines whether mv is a simple step or a capture for piece p.
// For captures it also returns the square of the jumped piece.
func (e *GameEngine) classify(p GamePiece, mv Move) (moveKind, Coordinate, error) {
	dx := mv.To.X - mv.From.X
	dy := mv.To.Y - mv.From.Y

	if abs(dx) != abs(dy) || dy == 0 || !permits(p, sign(dy)) {
		return 0, Coordinate{}, ErrIllegalMove
	}

	switch abs(dy) {
	case 1:
		return kindSimple, Coordinate{}, nil
	case 2:
		mid := Coordinate{X: mv.From.X + dx/2, Y: mv.From.Y + dy/2}
		victim, occupied := e.board.at(mid)
		if !occupied || victim.Color == p.Color {
			return 0, Coordinate{}, ErrIllegalMove
		}
		return kindCapture, mid, nil
	default:
		return 0, Coordinate{}, ErrIllegalMove
	}
}

// jumpsFrom returns every capture available to piece p standing on from
func (e *GameEngine) jumpsFrom(from Coordinate, p GamePiece) []Move {
	var moves []Move
	for _, d := range diagonals {
		if !permits(p, d.dy) {
			continue
		}
		mid := Coordinate{X: from.X + d.dx, Y: from.Y + d.dy}
		land := Coordinate{X: from.X + 2*d.dx, Y: from.Y + 2*d.dy}
		if !land.InBounds() {
			continue
		}
		victim, occupied := e.board.at(mid)
		if !occupied || victim.Color == p.Color {
			continue
		}
		if _, blocked := e.board.at(land); blocked {
			continue
		}
		moves = append(moves, Move{From: from, To: land})
	}
	return moves
}

// stepsFrom returns every simple move available to piece p standing on from
func (e *GameEngine) stepsFrom(from Coordinate, p GamePiece) []Move {
	var moves []Move
	for _, d := range diagonals {
		if !permits(p, d.dy) {
			continue
		}
		to := Coordinate{X: from.X + d.dx, Y: from.Y + d.dy}
		if !to.InBounds() {
			continue
		}
		if _, blocked := e.board.at(to); blocked {
			continue
		}
		moves = append(moves, Move{From: from, To: to})
	}
	return moves
}

// captureAvailable reports whether the side to move has any capture.
// During a multi-jump only the continuing piece is considered.
func (e *GameEngine) captureAvailable() bool {
	if e.continuing != nil {
		p, _ := e.board.at(*e.continuing)
		return len(e.jumpsFrom(*e.continuing, p)) > 0
	}
	for _, c := range e.board.Pieces(e.turn) {
		p, _ := e.board.at(c)
		if len(e.jumpsFrom(c, p)) > 0 {
			return true
		}
	}
	return false
}

// legalMoves lists the moves of the side to move, captures only when any exist
func (e *GameEngine) legalMoves() []Move {
	if e.continuing != nil {
		p, _ := e.board.at(*e.continuing)
		return e.jumpsFrom(*e.continuing, p)
	}

	var jumps, steps []Move
	for _, c := range e.board.Pieces(e.turn) {
		p, _ := e.board.at(c)
		jumps = append(jumps, e.jumpsFrom(c, p)...)
		steps = append(steps, e.stepsFrom(c, p)...)
	}
	if len(jumps) > 0 {
		return jumps
	}
	return steps
}
