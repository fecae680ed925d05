package engine

import (
	"fmt"
	"sort"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Queries
	GetPiece(c Coordinate) (*GamePiece, error)
	CurrentTurn() PieceColor
	Board() *Board
	PieceCount(color PieceColor) int

	// Movement
	MovePiece(mv Move) (MoveResult, error)
	LegalMoves() []Move
	ContinuingFrom() (Coordinate, bool)

	// Terminal detection
	Status() Status
	IsGameOver() bool

	// History
	GetMoveHistory() []MoveRecord
	GetLastMove() *MoveRecord

	Reset()
}

// GameEngine implements the Engine interface.
// It is not safe for concurrent use; callers serialize access.
type GameEngine struct {
	board *Board
	turn  PieceColor

	// continuing is the square of a piece in the middle of a multi-jump
	continuing *Coordinate
	history    []MoveRecord

	initialBoard *Board
	initialTurn  PieceColor
}

// NewEngine creates an engine with the standard layout and Black to move
func NewEngine() *GameEngine {
	return &GameEngine{
		board:        NewBoard(),
		turn:         Black,
		initialBoard: NewBoard(),
		initialTurn:  Black,
	}
}

// NewEngineFromBoard creates an engine from a custom position
func NewEngineFromBoard(b *Board, turn PieceColor) (*GameEngine, error) {
	if b == nil {
		return nil, fmt.Errorf("board cannot be nil: %w", ErrInvalidPosition)
	}
	if turn != Black && turn != White {
		return nil, fmt.Errorf("turn %s: %w", turn, ErrInvalidPosition)
	}
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			c := Coordinate{X: x, Y: y}
			p, occupied := b.at(c)
			if !occupied {
				continue
			}
			if !b.IsPlayable(c) {
				return nil, fmt.Errorf("piece on light square %s: %w", c, ErrInvalidPosition)
			}
			if p.Color != Black && p.Color != White {
				return nil, fmt.Errorf("piece with %s at %s: %w", p.Color, c, ErrInvalidPosition)
			}
		}
	}

	return &GameEngine{
		board:        b.Clone(),
		turn:         turn,
		initialBoard: b.Clone(),
		initialTurn:  turn,
	}, nil
}

// GetPiece returns the piece at c, nil for an empty square
func (e *GameEngine) GetPiece(c Coordinate) (*GamePiece, error) {
	return e.board.Get(c)
}

// CurrentTurn returns the side permitted to move next
func (e *GameEngine) CurrentTurn() PieceColor {
	return e.turn
}

// Board returns a copy of the current board
func (e *GameEngine) Board() *Board {
	return e.board.Clone()
}

// PieceCount returns how many pieces the given side has left
func (e *GameEngine) PieceCount(color PieceColor) int {
	return e.board.Count(color)
}

// ContinuingFrom returns the square of the piece that must keep jumping, if any
func (e *GameEngine) ContinuingFrom() (Coordinate, bool) {
	if e.continuing == nil {
		return Coordinate{}, false
	}
	return *e.continuing, true
}

// MovePiece validates and executes a single step or jump.
// A declined move leaves the board, the turn and the history untouched.
// Multi-jumps are played as successive calls while the turn is retained.
func (e *GameEngine) MovePiece(mv Move) (MoveResult, error) {
	if !e.board.IsPlayable(mv.From) || !e.board.IsPlayable(mv.To) {
		return MoveResult{}, declined(mv, ErrInvalidCoordinate)
	}

	piece, occupied := e.board.at(mv.From)
	if !occupied {
		return MoveResult{}, declined(mv, ErrNoPieceAtSource)
	}
	if piece.Color != e.turn {
		return MoveResult{}, declined(mv, ErrWrongTurn)
	}
	if e.continuing != nil && *e.continuing != mv.From {
		return MoveResult{}, declined(mv, ErrMustContinueJump)
	}
	if _, blocked := e.board.at(mv.To); blocked {
		return MoveResult{}, declined(mv, ErrDestinationOccupied)
	}

	kind, captured, err := e.classify(piece, mv)
	if err != nil {
		return MoveResult{}, declined(mv, err)
	}
	if kind == kindSimple && e.captureAvailable() {
		return MoveResult{}, declined(mv, ErrMustCapture)
	}

	var result MoveResult
	e.board.clear(mv.From)
	if kind == kindCapture {
		e.board.clear(captured)
		result.Captured = &captured
	}
	if !piece.Crowned && mv.To.Y == piece.Color.crownRow() {
		piece = piece.crowned()
		result.Crowned = true
	}
	e.board.put(mv.To, piece)

	// Crowning ends the turn even when another jump would be available
	e.continuing = nil
	if kind == kindCapture && !result.Crowned && len(e.jumpsFrom(mv.To, piece)) > 0 {
		to := mv.To
		e.continuing = &to
		result.TurnRetained = true
	} else {
		e.turn = e.turn.Opponent()
	}

	e.addToHistory(piece.Color, mv, result)
	return result, nil
}

// LegalMoves returns every legal move for the side to move,
// ordered by source then destination
func (e *GameEngine) LegalMoves() []Move {
	moves := e.legalMoves()
	sort.Slice(moves, func(i, j int) bool {
		a, b := moves[i], moves[j]
		if a.From.Y != b.From.Y {
			return a.From.Y < b.From.Y
		}
		if a.From.X != b.From.X {
			return a.From.X < b.From.X
		}
		if a.To.Y != b.To.Y {
			return a.To.Y < b.To.Y
		}
		return a.To.X < b.To.X
	})
	return moves
}

// Status reports the winner once the side to move has no legal move
func (e *GameEngine) Status() Status {
	if len(e.legalMoves()) > 0 {
		return InProgress
	}
	return winnerStatus(e.turn.Opponent())
}

// IsGameOver returns whether the game has been decided
func (e *GameEngine) IsGameOver() bool {
	return e.Status() != InProgress
}

// GetMoveHistory returns a copy of the successful moves so far
func (e *GameEngine) GetMoveHistory() []MoveRecord {
	out := make([]MoveRecord, len(e.history))
	copy(out, e.history)
	return out
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveRecord {
	if len(e.history) == 0 {
		return nil
	}
	rec := e.history[len(e.history)-1]
	return &rec
}

// Reset restores the position the engine was created with
func (e *GameEngine) Reset() {
	e.board = e.initialBoard.Clone()
	e.turn = e.initialTurn
	e.continuing = nil
	e.history = nil
}

func (e *GameEngine) addToHistory(color PieceColor, mv Move, result MoveResult) {
	rec := MoveRecord{
		Number:  len(e.history) + 1,
		Color:   color,
		From:    mv.From,
		To:      mv.To,
		Crowned: result.Crowned,
	}
	if result.Captured != nil {
		c := *result.Captured
		rec.Captured = &c
	}
	e.history = append(e.history, rec)
}
