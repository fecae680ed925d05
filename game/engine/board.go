package engine

import "fmt"

// cell is one square of the grid
type cell struct {
	piece    GamePiece
	occupied bool
}

// Board is an 8x8 grid of optional pieces with no rule knowledge
type Board struct {
	cells [BoardSize][BoardSize]cell
}

// NewEmptyBoard returns a board with no pieces
func NewEmptyBoard() *Board {
	return &Board{}
}

// NewBoard returns a board in the standard starting layout:
// Black on the dark squares of rows 0-2, White on rows 5-7
func NewBoard() *Board {
	b := NewEmptyBoard()
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			c := Coordinate{X: x, Y: y}
			if !b.IsPlayable(c) {
				continue
			}
			switch {
			case y < startingRows:
				b.cells[y][x] = cell{piece: NewGamePiece(Black), occupied: true}
			case y >= BoardSize-startingRows:
				b.cells[y][x] = cell{piece: NewGamePiece(White), occupied: true}
			}
		}
	}
	return b
}

// InBounds reports whether c lies on the grid
func (b *Board) InBounds(c Coordinate) bool {
	return c.InBounds()
}

// IsPlayable reports whether c is one of the 32 dark squares.
// (0,0) is dark, so dark squares are those where x+y is even.
func (b *Board) IsPlayable(c Coordinate) bool {
	return c.InBounds() && (c.X+c.Y)%2 == 0
}

// Get returns a copy of the piece at c, or nil when the square is empty
func (b *Board) Get(c Coordinate) (*GamePiece, error) {
	if !c.InBounds() {
		return nil, fmt.Errorf("get %s: %w", c, ErrOutOfBounds)
	}
	sq := b.cells[c.Y][c.X]
	if !sq.occupied {
		return nil, nil
	}
	p := sq.piece
	return &p, nil
}

// Set places a copy of piece at c, or clears the square when piece is nil
func (b *Board) Set(c Coordinate, piece *GamePiece) error {
	if !c.InBounds() {
		return fmt.Errorf("set %s: %w", c, ErrOutOfBounds)
	}
	if piece == nil {
		b.cells[c.Y][c.X] = cell{}
		return nil
	}
	b.cells[c.Y][c.X] = cell{piece: *piece, occupied: true}
	return nil
}

// at is the unchecked internal accessor used once bounds are known
func (b *Board) at(c Coordinate) (GamePiece, bool) {
	sq := b.cells[c.Y][c.X]
	return sq.piece, sq.occupied
}

func (b *Board) put(c Coordinate, p GamePiece) {
	b.cells[c.Y][c.X] = cell{piece: p, occupied: true}
}

func (b *Board) clear(c Coordinate) {
	b.cells[c.Y][c.X] = cell{}
}

// Clone returns an independent copy of the board
func (b *Board) Clone() *Board {
	cp := *b
	return &cp
}

// Count returns the number of pieces of the given color
func (b *Board) Count(color PieceColor) int {
	return len(b.Pieces(color))
}

// Pieces returns the squares holding pieces of the given color,
// ordered by row then column
func (b *Board) Pieces(color PieceColor) []Coordinate {
	var out []Coordinate
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if sq := b.cells[y][x]; sq.occupied && sq.piece.Color == color {
				out = append(out, Coordinate{X: x, Y: y})
			}
		}
	}
	return out
}
