package host

import (
	"errors"
	"fmt"

	"github.com/wricardo/checkers/game/engine"
)

// Piece encoding at the host boundary. Colour and crown are independent
// flags combined with OR, so a crowned white piece is PieceFlagWhite|PieceFlagCrown.
const (
	PieceFlagBlack int32 = 1
	PieceFlagWhite int32 = 2
	PieceFlagCrown int32 = 4

	// NoPiece marks an empty or off-board square
	NoPiece int32 = -1

	colorMask = PieceFlagBlack | PieceFlagWhite
)

// ErrInvalidEncoding is returned when a value does not decode to a piece
var ErrInvalidEncoding = errors.New("invalid piece encoding")

// EncodePiece packs a piece into its boundary value; nil encodes as NoPiece
func EncodePiece(p *engine.GamePiece) int32 {
	if p == nil {
		return NoPiece
	}
	v := EncodeColor(p.Color)
	if p.Crowned {
		v |= PieceFlagCrown
	}
	return v
}

// DecodePiece is the inverse of EncodePiece. NoPiece decodes to nil.
func DecodePiece(v int32) (*engine.GamePiece, error) {
	if v == NoPiece {
		return nil, nil
	}
	if v&^(colorMask|PieceFlagCrown) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidEncoding, v)
	}

	var p engine.GamePiece
	switch v & colorMask {
	case PieceFlagBlack:
		p.Color = engine.Black
	case PieceFlagWhite:
		p.Color = engine.White
	default:
		return nil, fmt.Errorf("%w: %d has no single colour", ErrInvalidEncoding, v)
	}
	p.Crowned = v&PieceFlagCrown != 0
	return &p, nil
}

// EncodeColor returns the colour flag for c
func EncodeColor(c engine.PieceColor) int32 {
	switch c {
	case engine.Black:
		return PieceFlagBlack
	case engine.White:
		return PieceFlagWhite
	default:
		panic(fmt.Sprintf("host: cannot encode %s", c))
	}
}
