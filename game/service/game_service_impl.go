package service

import (
	"context"
	"fmt"

	"github.com/inconshreveable/log15/v3"

	"github.com/wricardo/checkers/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	log      log15.Logger
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, logger log15.Logger) GameService {
	if logger == nil {
		logger = log15.New()
		logger.SetHandler(log15.DiscardHandler())
	}
	return &gameServiceImpl{
		sessions: sessions,
		log:      logger.New("component", "service"),
	}
}

// CreateGame starts a new game with the standard layout or a custom setup
func (s *gameServiceImpl) CreateGame(ctx context.Context, setup *Setup) (*GameInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	eng := engine.NewEngine()
	if setup != nil {
		var err error
		eng, err = engine.NewEngineFromBoard(setup.Board, setup.Turn)
		if err != nil {
			return nil, fmt.Errorf("invalid setup: %w", err)
		}
	}

	// Let the session manager generate the ID
	sess, err := s.sessions.Create("", eng)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	s.log.Info("game created", "game", sess.ID, "custom", setup != nil)
	return s.info(sess), nil
}

// GetGame retrieves game information
func (s *gameServiceImpl) GetGame(ctx context.Context, gameID string) (*GameInfo, error) {
	sess, err := s.session(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return s.info(sess), nil
}

// ListGames returns all active games
func (s *gameServiceImpl) ListGames(ctx context.Context) ([]*GameInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sessions := s.sessions.List()
	games := make([]*GameInfo, 0, len(sessions))
	for _, sess := range sessions {
		games = append(games, s.info(sess))
	}
	return games, nil
}

// DeleteGame removes a game
func (s *gameServiceImpl) DeleteGame(ctx context.Context, gameID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.sessions.Delete(gameID); err != nil {
		return err
	}
	s.log.Info("game deleted", "game", gameID)
	return nil
}

// Move applies one step or jump. A declined move returns a nil outcome and
// an error wrapping the engine's reason.
func (s *gameServiceImpl) Move(ctx context.Context, gameID string, mv engine.Move) (*MoveOutcome, error) {
	sess, err := s.session(ctx, gameID)
	if err != nil {
		return nil, err
	}

	var outcome *MoveOutcome
	sess.Update(func(eng *engine.GameEngine) {
		outcome, err = s.apply(gameID, eng, mv)
	})
	if err != nil {
		s.log.Debug("move declined", "game", gameID, "move", mv, "reason", ReasonCode(err))
		return nil, err
	}

	s.log.Debug("move", "game", gameID, "mover", outcome.Mover, "move", mv,
		"captured", outcome.Result.Captured != nil, "crowned", outcome.Result.Crowned)
	if outcome.Status != engine.InProgress {
		s.log.Info("game over", "game", gameID, "status", outcome.Status)
	}
	return outcome, nil
}

// BulkMove applies a sequence of moves under one lock, stopping at the first
// declined move. Moves already applied stay applied.
func (s *gameServiceImpl) BulkMove(ctx context.Context, gameID string, moves []engine.Move) (*BulkMoveResult, error) {
	sess, err := s.session(ctx, gameID)
	if err != nil {
		return nil, err
	}

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Success:        true,
	}
	if len(moves) > MaxBulkMoves {
		moves = moves[:MaxBulkMoves]
		result.Truncated = true
	}

	sess.Update(func(eng *engine.GameEngine) {
		for i, mv := range moves {
			if err := ctx.Err(); err != nil {
				result.Success = false
				result.StoppedOnMove = i + 1
				result.StopReasonCode = "canceled"
				result.StoppedReason = err.Error()
				break
			}

			outcome, err := s.apply(gameID, eng, mv)
			if err != nil {
				result.Success = false
				result.StoppedOnMove = i + 1
				result.StopReasonCode = ReasonCode(err)
				result.StoppedReason = err.Error()
				break
			}
			result.Outcomes = append(result.Outcomes, outcome)
			result.MovesExecuted++
		}
		result.Turn = eng.CurrentTurn()
		result.Status = eng.Status()
	})

	s.log.Info("bulk move", "game", gameID, "requested", result.RequestedMoves,
		"executed", result.MovesExecuted, "success", result.Success)
	return result, nil
}

// Reset restores the position the game was created with
func (s *gameServiceImpl) Reset(ctx context.Context, gameID string) (*GameInfo, error) {
	sess, err := s.session(ctx, gameID)
	if err != nil {
		return nil, err
	}

	sess.Update(func(eng *engine.GameEngine) {
		eng.Reset()
	})
	s.log.Info("game reset", "game", gameID)
	return s.info(sess), nil
}

// GetPiece returns the piece on a square, nil when empty
func (s *gameServiceImpl) GetPiece(ctx context.Context, gameID string, c engine.Coordinate) (*engine.GamePiece, error) {
	sess, err := s.session(ctx, gameID)
	if err != nil {
		return nil, err
	}

	var piece *engine.GamePiece
	sess.View(func(eng *engine.GameEngine) {
		piece, err = eng.GetPiece(c)
	})
	return piece, err
}

// CurrentTurn returns the side to move
func (s *gameServiceImpl) CurrentTurn(ctx context.Context, gameID string) (engine.PieceColor, error) {
	sess, err := s.session(ctx, gameID)
	if err != nil {
		return 0, err
	}

	var turn engine.PieceColor
	sess.View(func(eng *engine.GameEngine) {
		turn = eng.CurrentTurn()
	})
	return turn, nil
}

// LegalMoves lists every legal move for the side to move
func (s *gameServiceImpl) LegalMoves(ctx context.Context, gameID string) ([]engine.Move, error) {
	sess, err := s.session(ctx, gameID)
	if err != nil {
		return nil, err
	}

	var moves []engine.Move
	sess.View(func(eng *engine.GameEngine) {
		moves = eng.LegalMoves()
	})
	return moves, nil
}

// Status reports whether the game is decided
func (s *gameServiceImpl) Status(ctx context.Context, gameID string) (engine.Status, error) {
	sess, err := s.session(ctx, gameID)
	if err != nil {
		return engine.InProgress, err
	}

	var status engine.Status
	sess.View(func(eng *engine.GameEngine) {
		status = eng.Status()
	})
	return status, nil
}

// GetMoveHistory retrieves paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, gameID string, opts HistoryOptions) (*HistoryResponse, error) {
	sess, err := s.session(ctx, gameID)
	if err != nil {
		return nil, err
	}

	var history []engine.MoveRecord
	sess.View(func(eng *engine.GameEngine) {
		history = eng.GetMoveHistory()
	})

	// Set defaults
	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultHistoryLimit
	}
	if opts.Limit > maxHistoryLimit {
		opts.Limit = maxHistoryLimit
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	total := len(history)
	captures, crownings := engine.CountMoves(history)
	totalPages := (total + opts.Limit - 1) / opts.Limit

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	moves := make([]engine.MoveRecord, 0, end-start)
	if opts.Order == "desc" {
		// Newest first
		for i := total - 1 - start; i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else {
		moves = append(moves, history[start:end]...)
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Captures:    captures,
		Crownings:   crownings,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// session resolves a game and records the access
func (s *gameServiceImpl) session(ctx context.Context, gameID string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(gameID)
	return sess, nil
}

// apply runs one move on an engine the caller holds exclusively
func (s *gameServiceImpl) apply(gameID string, eng *engine.GameEngine, mv engine.Move) (*MoveOutcome, error) {
	mover := eng.CurrentTurn()
	result, err := eng.MovePiece(mv)
	if err != nil {
		return nil, err
	}

	outcome := &MoveOutcome{
		GameID: gameID,
		Move:   mv,
		Result: result,
		Mover:  mover,
		Turn:   eng.CurrentTurn(),
		Status: eng.Status(),
	}
	outcome.Events = moveEvents(mv, result, outcome.Status)
	return outcome, nil
}

func moveEvents(mv engine.Move, result engine.MoveResult, status engine.Status) []GameEvent {
	from, to := mv.From, mv.To
	events := []GameEvent{{Type: EventPieceMoved, From: &from, To: &to}}
	if result.Captured != nil {
		at := *result.Captured
		events = append(events, GameEvent{Type: EventPieceCaptured, At: &at})
	}
	if result.Crowned {
		events = append(events, GameEvent{Type: EventPieceCrowned, At: &to})
	}
	if result.TurnRetained {
		events = append(events, GameEvent{Type: EventTurnRetained, At: &to})
	}
	if status != engine.InProgress {
		events = append(events, GameEvent{Type: EventGameOver})
	}
	return events
}

func (s *gameServiceImpl) info(sess *Session) *GameInfo {
	info := &GameInfo{
		ID:        sess.ID,
		CreatedAt: sess.CreatedAt,
	}
	sess.View(func(eng *engine.GameEngine) {
		info.LastAccessedAt = sess.LastAccessedAt
		info.Turn = eng.CurrentTurn()
		info.Status = eng.Status()
		info.BlackPieces = eng.PieceCount(engine.Black)
		info.WhitePieces = eng.PieceCount(engine.White)
		info.TotalMoves = len(eng.GetMoveHistory())
		if c, ok := eng.ContinuingFrom(); ok {
			info.ContinuingFrom = &c
		}
	})
	return info
}
