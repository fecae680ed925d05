package engine

import (
	"testing"
)

func TestPieceColor_Opponent(t *testing.T) {
	if Black.Opponent() != White {
		t.Errorf("Expected Black.Opponent() to be White, got %s", Black.Opponent())
	}
	if White.Opponent() != Black {
		t.Errorf("Expected White.Opponent() to be Black, got %s", White.Opponent())
	}
}

func TestPieceColor_OpponentPanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for invalid color")
		}
	}()
	PieceColor(0).Opponent()
}

func TestPieceColor_Direction(t *testing.T) {
	if Black.forward() != 1 || White.forward() != -1 {
		t.Errorf("Unexpected forward directions: black=%d white=%d", Black.forward(), White.forward())
	}
	if Black.crownRow() != 7 || White.crownRow() != 0 {
		t.Errorf("Unexpected crown rows: black=%d white=%d", Black.crownRow(), White.crownRow())
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    PieceColor
		wantErr bool
	}{
		{"black", Black, false},
		{"b", Black, false},
		{"white", White, false},
		{"W", White, false},
		{"red", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestCoordinate_InBounds(t *testing.T) {
	tests := []struct {
		c    Coordinate
		want bool
	}{
		{Coordinate{0, 0}, true},
		{Coordinate{7, 7}, true},
		{Coordinate{3, 4}, true},
		{Coordinate{-1, 0}, false},
		{Coordinate{0, -1}, false},
		{Coordinate{8, 0}, false},
		{Coordinate{0, 8}, false},
	}

	for _, tt := range tests {
		if got := tt.c.InBounds(); got != tt.want {
			t.Errorf("%v.InBounds() = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestGamePiece_Equality(t *testing.T) {
	a := NewGamePiece(Black)
	b := GamePiece{Color: Black}
	if a != b {
		t.Error("Expected pieces with same color and crown to be equal")
	}
	if a.Crowned {
		t.Error("Expected new piece to be uncrowned")
	}
	if a == a.crowned() {
		t.Error("Expected crowned piece to differ from uncrowned piece")
	}
}

func TestMove_String(t *testing.T) {
	mv := NewMove(2, 2, 3, 3)
	if mv.String() != "2,2->3,3" {
		t.Errorf("Expected '2,2->3,3', got '%s'", mv.String())
	}
	if mv.From != (Coordinate{2, 2}) || mv.To != (Coordinate{3, 3}) {
		t.Errorf("Unexpected endpoints: %+v", mv)
	}
}

func TestStatus_String(t *testing.T) {
	if InProgress.String() != "in_progress" {
		t.Errorf("Unexpected InProgress string: %s", InProgress)
	}
	if BlackWins.String() != "black_wins" {
		t.Errorf("Unexpected BlackWins string: %s", BlackWins)
	}
	if WhiteWins.String() != "white_wins" {
		t.Errorf("Unexpected WhiteWins string: %s", WhiteWins)
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		input   string
		want    Move
		wantErr bool
	}{
		{"2 2 3 3", NewMove(2, 2, 3, 3), false},
		{"2,2->3,3", NewMove(2, 2, 3, 3), false},
		{"  5 5  4 4 ", NewMove(5, 5, 4, 4), false},
		{"-1 0 1 1", NewMove(-1, 0, 1, 1), false},
		{"2 2 3", Move{}, true},
		{"a b c d", Move{}, true},
		{"", Move{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMove(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMove(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMove(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
