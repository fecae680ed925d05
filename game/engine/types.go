package engine

import "fmt"

const (
	// BoardSize is the number of rows and columns on the board
	BoardSize = 8

	// PiecesPerSide is the number of pieces each side starts with
	PiecesPerSide = 12

	// startingRows is the number of rows each side fills at the start
	startingRows = 3
)

// PieceColor identifies one of the two sides
type PieceColor int

const (
	Black PieceColor = iota + 1
	White
)

// String returns the lowercase name of the color
func (c PieceColor) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return fmt.Sprintf("color(%d)", int(c))
	}
}

// Opponent returns the other side
func (c PieceColor) Opponent() PieceColor {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		panic(fmt.Sprintf("engine: invalid piece color %d", int(c)))
	}
}

// forward is the row delta an uncrowned piece of this color moves by
func (c PieceColor) forward() int {
	if c == Black {
		return 1
	}
	return -1
}

// crownRow is the far row where a piece of this color is crowned
func (c PieceColor) crownRow() int {
	if c == Black {
		return BoardSize - 1
	}
	return 0
}

// ParseColor converts "black"/"b" or "white"/"w" into a PieceColor
func ParseColor(s string) (PieceColor, error) {
	switch s {
	case "black", "b", "Black", "B":
		return Black, nil
	case "white", "w", "White", "W":
		return White, nil
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

// Coordinate is a zero-based (column, row) pair
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String formats the coordinate as "x,y"
func (c Coordinate) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// InBounds reports whether the coordinate lies on the 8x8 grid
func (c Coordinate) InBounds() bool {
	return c.X >= 0 && c.X < BoardSize && c.Y >= 0 && c.Y < BoardSize
}

// GamePiece is a piece value; pieces have no identity beyond their square
type GamePiece struct {
	Color   PieceColor `json:"color"`
	Crowned bool       `json:"crowned"`
}

// NewGamePiece returns an uncrowned piece of the given color
func NewGamePiece(color PieceColor) GamePiece {
	return GamePiece{Color: color}
}

// crowned returns a copy of the piece with the crown set
func (p GamePiece) crowned() GamePiece {
	p.Crowned = true
	return p
}

// Move describes an attempted relocation from one square to another
type Move struct {
	From Coordinate `json:"from"`
	To   Coordinate `json:"to"`
}

// NewMove builds a move from raw coordinate pairs
func NewMove(fx, fy, tx, ty int) Move {
	return Move{
		From: Coordinate{X: fx, Y: fy},
		To:   Coordinate{X: tx, Y: ty},
	}
}

// String formats the move as "fx,fy->tx,ty"
func (m Move) String() string {
	return m.From.String() + "->" + m.To.String()
}

// MoveResult reports the outcome of a successful move
type MoveResult struct {
	// Crowned is true only on the move that promoted the piece
	Crowned bool `json:"crowned"`

	// Captured is the square of the removed opponent piece, nil for simple moves
	Captured *Coordinate `json:"captured,omitempty"`

	// TurnRetained is true when the same piece must continue jumping
	TurnRetained bool `json:"turn_retained"`
}

// Status is the terminal state of a game
type Status int

const (
	InProgress Status = iota
	BlackWins
	WhiteWins
)

// String returns a machine-friendly status code
func (s Status) String() string {
	switch s {
	case BlackWins:
		return "black_wins"
	case WhiteWins:
		return "white_wins"
	default:
		return "in_progress"
	}
}

// winnerStatus maps the winning color to its status
func winnerStatus(winner PieceColor) Status {
	if winner == Black {
		return BlackWins
	}
	return WhiteWins
}

// MoveRecord represents a single successful move in the game history
type MoveRecord struct {
	Number   int         `json:"number"`
	Color    PieceColor  `json:"color"`
	From     Coordinate  `json:"from"`
	To       Coordinate  `json:"to"`
	Captured *Coordinate `json:"captured,omitempty"`
	Crowned  bool        `json:"crowned,omitempty"`
}
