package engine

import (
	"fmt"
	"strconv"
	"strings"
)

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

// ParseMove reads a move written as four integers "fx fy tx ty".
// Commas and an "->" arrow are accepted as separators, so "2,2->3,3" also parses.
func ParseMove(s string) (Move, error) {
	normalized := strings.NewReplacer("->", " ", ",", " ").Replace(s)
	fields := strings.Fields(normalized)
	if len(fields) != 4 {
		return Move{}, fmt.Errorf("parse move %q: expected 4 coordinates, got %d", s, len(fields))
	}

	var n [4]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Move{}, fmt.Errorf("parse move %q: %w", s, err)
		}
		n[i] = v
	}
	return NewMove(n[0], n[1], n[2], n[3]), nil
}

// CountMoves tallies how many records in history are captures and crownings
func CountMoves(history []MoveRecord) (captures, crownings int) {
	for _, rec := range history {
		if rec.Captured != nil {
			captures++
		}
		if rec.Crowned {
			crownings++
		}
	}
	return captures, crownings
}
