package service

import (
	"errors"
	"time"

	"github.com/wricardo/checkers/game/engine"
)

const (
	// MaxBulkMoves caps the number of moves applied by one BulkMove call
	MaxBulkMoves = 200

	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Event types reported in MoveOutcome.Events
const (
	EventPieceMoved    = "piece_moved"
	EventPieceCaptured = "piece_captured"
	EventPieceCrowned  = "piece_crowned"
	EventTurnRetained  = "turn_retained"
	EventGameOver      = "game_over"
)

// Setup describes a custom starting position; nil means the standard layout
type Setup struct {
	Board *engine.Board
	Turn  engine.PieceColor
}

// GameInfo provides information about a game session
type GameInfo struct {
	ID             string             `json:"id"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	Turn           engine.PieceColor  `json:"turn"`
	Status         engine.Status      `json:"status"`
	BlackPieces    int                `json:"black_pieces"`
	WhitePieces    int                `json:"white_pieces"`
	TotalMoves     int                `json:"total_moves"`
	ContinuingFrom *engine.Coordinate `json:"continuing_from,omitempty"`
}

// GameEvent represents something that happened during a move.
// Moved events carry From and To; captured, crowned and turn_retained
// events carry At. Game over carries no square.
type GameEvent struct {
	Type string             `json:"type"`
	From *engine.Coordinate `json:"from,omitempty"`
	To   *engine.Coordinate `json:"to,omitempty"`
	At   *engine.Coordinate `json:"at,omitempty"`
}

// MoveOutcome contains the result of a successful move
type MoveOutcome struct {
	GameID string            `json:"game_id"`
	Move   engine.Move       `json:"move"`
	Result engine.MoveResult `json:"result"`
	Mover  engine.PieceColor `json:"mover"`
	Turn   engine.PieceColor `json:"turn"`
	Status engine.Status     `json:"status"`
	Events []GameEvent       `json:"events"`
}

// BulkMoveResult contains the result of a move sequence
type BulkMoveResult struct {
	RequestedMoves int            `json:"requested_moves"`
	MovesExecuted  int            `json:"moves_executed"`
	Success        bool           `json:"success"`
	Outcomes       []*MoveOutcome `json:"outcomes"`
	Truncated      bool           `json:"truncated,omitempty"`

	// Set when a move was declined
	StoppedOnMove  int    `json:"stopped_on_move,omitempty"` // 1-based
	StopReasonCode string `json:"stop_reason_code,omitempty"`
	StoppedReason  string `json:"stopped_reason,omitempty"`

	Turn   engine.PieceColor `json:"turn"`
	Status engine.Status     `json:"status"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveRecord `json:"moves"`
	TotalMoves  int                 `json:"total_moves"`
	Captures    int                 `json:"captures"`
	Crownings   int                 `json:"crownings"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// ReasonCode maps a declined-move error to a machine-friendly code
func ReasonCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, engine.ErrInvalidCoordinate), errors.Is(err, engine.ErrOutOfBounds):
		return "invalid_coordinate"
	case errors.Is(err, engine.ErrNoPieceAtSource):
		return "no_piece_at_source"
	case errors.Is(err, engine.ErrWrongTurn):
		return "wrong_turn"
	case errors.Is(err, engine.ErrDestinationOccupied):
		return "destination_occupied"
	case errors.Is(err, engine.ErrMustCapture):
		return "must_capture"
	case errors.Is(err, engine.ErrMustContinueJump):
		return "must_continue_jump"
	case errors.Is(err, engine.ErrIllegalMove):
		return "illegal_move"
	default:
		return "error"
	}
}
