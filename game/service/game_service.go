package service

import (
	"context"
	"sync"
	"time"

	"github.com/wricardo/checkers/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Game lifecycle
	CreateGame(ctx context.Context, setup *Setup) (*GameInfo, error)
	GetGame(ctx context.Context, gameID string) (*GameInfo, error)
	ListGames(ctx context.Context) ([]*GameInfo, error)
	DeleteGame(ctx context.Context, gameID string) error

	// Game operations
	Move(ctx context.Context, gameID string, mv engine.Move) (*MoveOutcome, error)
	BulkMove(ctx context.Context, gameID string, moves []engine.Move) (*BulkMoveResult, error)
	Reset(ctx context.Context, gameID string) (*GameInfo, error)

	// Queries
	GetPiece(ctx context.Context, gameID string, c engine.Coordinate) (*engine.GamePiece, error)
	CurrentTurn(ctx context.Context, gameID string) (engine.PieceColor, error)
	LegalMoves(ctx context.Context, gameID string) ([]engine.Move, error)
	Status(ctx context.Context, gameID string) (engine.Status, error)
	GetMoveHistory(ctx context.Context, gameID string, opts HistoryOptions) (*HistoryResponse, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, eng *engine.GameEngine) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// Session represents one in-progress game. The engine is guarded by a
// read/write lock: queries run concurrently, moves run exclusively.
type Session struct {
	ID             string
	CreatedAt      time.Time
	LastAccessedAt time.Time

	engine *engine.GameEngine
	mu     sync.RWMutex
}

// NewSession wraps an engine in a session
func NewSession(id string, eng *engine.GameEngine) *Session {
	now := time.Now()
	return &Session{
		ID:             id,
		CreatedAt:      now,
		LastAccessedAt: now,
		engine:         eng,
	}
}

// Touch records an access
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastAccessedAt = time.Now()
}

// LastAccessed returns the time of the most recent access
func (s *Session) LastAccessed() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastAccessedAt
}

// View runs fn with shared access to the engine
func (s *Session) View(fn func(eng *engine.GameEngine)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.engine)
}

// Update runs fn with exclusive access to the engine
func (s *Session) Update(fn func(eng *engine.GameEngine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
}
