package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/inconshreveable/log15/v3"

	"github.com/wricardo/checkers/game/engine"
	"github.com/wricardo/checkers/game/service"
)

// Return values of Bridge.MovePiece
const (
	MoveFailed    int32 = 0
	MoveSucceeded int32 = 1
)

// Notifier receives host notifications for committed moves
type Notifier interface {
	NotifyPieceMoved(fx, fy, tx, ty int32)
	NotifyPieceCrowned(x, y int32)
}

// NotifierFuncs adapts plain functions to Notifier. Nil fields are skipped.
type NotifierFuncs struct {
	PieceMoved   func(fx, fy, tx, ty int32)
	PieceCrowned func(x, y int32)
}

func (f NotifierFuncs) NotifyPieceMoved(fx, fy, tx, ty int32) {
	if f.PieceMoved != nil {
		f.PieceMoved(fx, fy, tx, ty)
	}
}

func (f NotifierFuncs) NotifyPieceCrowned(x, y int32) {
	if f.PieceCrowned != nil {
		f.PieceCrowned(x, y)
	}
}

// MultiNotifier fans notifications out to every non-nil notifier in order
func MultiNotifier(notifiers ...Notifier) Notifier {
	var list multiNotifier
	for _, n := range notifiers {
		if n != nil {
			list = append(list, n)
		}
	}
	return list
}

type multiNotifier []Notifier

func (m multiNotifier) NotifyPieceMoved(fx, fy, tx, ty int32) {
	for _, n := range m {
		n.NotifyPieceMoved(fx, fy, tx, ty)
	}
}

func (m multiNotifier) NotifyPieceCrowned(x, y int32) {
	for _, n := range m {
		n.NotifyPieceCrowned(x, y)
	}
}

// Square addresses one board square from the host side
type Square struct {
	X int32 `validate:"min=0,max=7"`
	Y int32 `validate:"min=0,max=7"`
}

// MoveRequest is a move as received from the host
type MoveRequest struct {
	FromX int32 `validate:"min=0,max=7"`
	FromY int32 `validate:"min=0,max=7"`
	ToX   int32 `validate:"min=0,max=7"`
	ToY   int32 `validate:"min=0,max=7"`
}

// Move converts the request to an engine move
func (r MoveRequest) Move() engine.Move {
	return engine.NewMove(int(r.FromX), int(r.FromY), int(r.ToX), int(r.ToY))
}

// Bridge exposes one game through the numeric host interface
type Bridge struct {
	games    service.GameService
	gameID   string
	notifier Notifier
	validate *validator.Validate
	log      log15.Logger
}

// NewBridge binds a bridge to gameID. A nil notifier drops notifications.
func NewBridge(games service.GameService, gameID string, notifier Notifier, logger log15.Logger) *Bridge {
	if notifier == nil {
		notifier = NotifierFuncs{}
	}
	if logger == nil {
		logger = log15.New()
		logger.SetHandler(log15.DiscardHandler())
	}
	return &Bridge{
		games:    games,
		gameID:   gameID,
		notifier: notifier,
		validate: validator.New(),
		log:      logger.New("component", "host", "game", gameID),
	}
}

// GameID returns the game the bridge is bound to
func (b *Bridge) GameID() string {
	return b.gameID
}

// GetPiece returns the encoded piece at (x, y), NoPiece when empty or off the board
func (b *Bridge) GetPiece(x, y int32) int32 {
	p, err := b.Piece(context.Background(), Square{X: x, Y: y})
	if err != nil {
		return NoPiece
	}
	return EncodePiece(p)
}

// Piece returns the piece on sq, nil when the square is empty
func (b *Bridge) Piece(ctx context.Context, sq Square) (*engine.GamePiece, error) {
	if err := b.validate.Struct(sq); err != nil {
		return nil, invalidInput(err)
	}
	return b.games.GetPiece(ctx, b.gameID, engine.Coordinate{X: int(sq.X), Y: int(sq.Y)})
}

// GetCurrentTurn returns the colour flag of the side to move, NoPiece on error
func (b *Bridge) GetCurrentTurn() int32 {
	turn, err := b.games.CurrentTurn(context.Background(), b.gameID)
	if err != nil {
		b.log.Warn("turn query failed", "err", err)
		return NoPiece
	}
	return EncodeColor(turn)
}

// MovePiece attempts a move and returns MoveSucceeded or MoveFailed
func (b *Bridge) MovePiece(fx, fy, tx, ty int32) int32 {
	req := MoveRequest{FromX: fx, FromY: fy, ToX: tx, ToY: ty}
	if _, err := b.Move(context.Background(), req); err != nil {
		return MoveFailed
	}
	return MoveSucceeded
}

// Move validates and applies req. Notifications fire only after the move is
// committed and the game lock released: moved first, then crowned if it applies.
func (b *Bridge) Move(ctx context.Context, req MoveRequest) (*service.MoveOutcome, error) {
	if err := b.validate.Struct(req); err != nil {
		b.log.Debug("move rejected", "req", fmt.Sprintf("%+v", req), "err", err)
		return nil, invalidInput(err)
	}

	outcome, err := b.games.Move(ctx, b.gameID, req.Move())
	if err != nil {
		return nil, err
	}

	b.notifier.NotifyPieceMoved(req.FromX, req.FromY, req.ToX, req.ToY)
	if outcome.Result.Crowned {
		b.notifier.NotifyPieceCrowned(req.ToX, req.ToY)
	}
	return outcome, nil
}

// invalidInput wraps validator failures so callers can match engine.ErrInvalidCoordinate
func invalidInput(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%s=%v out of range: %w", fe.Field(), fe.Value(), engine.ErrInvalidCoordinate)
	}
	return fmt.Errorf("%v: %w", err, engine.ErrInvalidCoordinate)
}
