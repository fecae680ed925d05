package engine

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds         = errors.New("coordinate out of bounds")
	ErrInvalidCoordinate   = errors.New("invalid coordinate")
	ErrIllegalMove         = errors.New("illegal move")
	ErrNoPieceAtSource     = errors.New("no piece at source")
	ErrWrongTurn           = errors.New("wrong turn")
	ErrDestinationOccupied = errors.New("destination occupied")
	ErrMustCapture         = errors.New("capture is mandatory")
	ErrMustContinueJump    = errors.New("jumping piece must continue")
	ErrInvalidPosition     = errors.New("invalid position")
)

// MoveError wraps a declined move with the reason it was declined
type MoveError struct {
	Move Move
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %s: %v", e.Move, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

func declined(mv Move, err error) error {
	return &MoveError{Move: mv, Err: err}
}
