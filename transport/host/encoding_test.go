package host

import (
	"errors"
	"testing"

	"github.com/wricardo/checkers/game/engine"
)

func TestEncodePiece(t *testing.T) {
	tests := []struct {
		name  string
		piece *engine.GamePiece
		want  int32
	}{
		{"empty", nil, NoPiece},
		{"black man", &engine.GamePiece{Color: engine.Black}, 1},
		{"white man", &engine.GamePiece{Color: engine.White}, 2},
		{"black king", &engine.GamePiece{Color: engine.Black, Crowned: true}, 5},
		{"white king", &engine.GamePiece{Color: engine.White, Crowned: true}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodePiece(tt.piece); got != tt.want {
				t.Errorf("EncodePiece() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDecodePiece(t *testing.T) {
	for _, v := range []int32{1, 2, 5, 6} {
		p, err := DecodePiece(v)
		if err != nil {
			t.Fatalf("DecodePiece(%d) failed: %v", v, err)
		}
		if got := EncodePiece(p); got != v {
			t.Errorf("DecodePiece(%d) re-encodes as %d", v, got)
		}
	}

	if p, err := DecodePiece(NoPiece); p != nil || err != nil {
		t.Errorf("Expected nil piece for NoPiece, got %v (err %v)", p, err)
	}

	for _, v := range []int32{0, 3, 4, 7, 8, -2} {
		if _, err := DecodePiece(v); !errors.Is(err, ErrInvalidEncoding) {
			t.Errorf("DecodePiece(%d): expected ErrInvalidEncoding, got %v", v, err)
		}
	}
}

func TestEncodeColor(t *testing.T) {
	if EncodeColor(engine.Black) != PieceFlagBlack || EncodeColor(engine.White) != PieceFlagWhite {
		t.Error("Colour flags do not match piece flags")
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for an invalid colour")
		}
	}()
	EncodeColor(engine.PieceColor(0))
}
