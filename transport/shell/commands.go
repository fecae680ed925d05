package shell

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wricardo/checkers/game/engine"
	"github.com/wricardo/checkers/game/service"
	"github.com/wricardo/checkers/transport/host"
)

func (s *Shell) registerGameCommands() {
	s.Register(&Command{
		Name:        "move",
		ShortName:   "m",
		Description: "Move a piece one step or jump",
		Usage:       "move fx fy tx ty",
		Handler:     s.moveHandler,
	})
	s.Register(&Command{
		Name:        "piece",
		ShortName:   "p",
		Description: "Show the encoded piece on a square",
		Usage:       "piece x y",
		Handler:     s.pieceHandler,
	})
	s.Register(&Command{
		Name:        "turn",
		ShortName:   "t",
		Description: "Show the side to move",
		Usage:       "turn",
		Handler:     s.turnHandler,
	})
	s.Register(&Command{
		Name:        "moves",
		ShortName:   "l",
		Description: "List legal moves",
		Usage:       "moves",
		Handler:     s.movesHandler,
	})
	s.Register(&Command{
		Name:        "status",
		ShortName:   "s",
		Description: "Show game status and piece counts",
		Usage:       "status",
		Handler:     s.statusHandler,
	})
	s.Register(&Command{
		Name:        "history",
		ShortName:   "h",
		Description: "Show moves played so far",
		Usage:       "history",
		Handler:     s.historyHandler,
	})
	s.Register(&Command{
		Name:        "new",
		ShortName:   "n",
		Description: "Start a new game, optionally with white to move",
		Usage:       "new [black|white]",
		Handler:     s.newHandler,
		Standalone:  true,
	})
}

func (s *Shell) moveHandler(ctx context.Context, args []string) error {
	return s.playLine(ctx, strings.Join(args, " "))
}

// playLine parses "fx fy tx ty" and plays it through the bridge
func (s *Shell) playLine(ctx context.Context, line string) error {
	mv, err := engine.ParseMove(line)
	if err != nil {
		return err
	}
	req, err := moveRequest(mv)
	if err != nil {
		return fmt.Errorf("%s: %w", service.ReasonCode(err), err)
	}

	outcome, err := s.Move(ctx, req)
	if err != nil {
		return fmt.Errorf("%s: %w", service.ReasonCode(err), err)
	}
	s.printOutcome(outcome)
	return nil
}

// moveRequest narrows mv to the bridge's int32 coordinates
func moveRequest(mv engine.Move) (host.MoveRequest, error) {
	var req host.MoveRequest
	fields := []struct {
		name string
		v    int
		dst  *int32
	}{
		{"from.x", mv.From.X, &req.FromX},
		{"from.y", mv.From.Y, &req.FromY},
		{"to.x", mv.To.X, &req.ToX},
		{"to.y", mv.To.Y, &req.ToY},
	}
	for _, f := range fields {
		v, err := toInt32(f.name, f.v)
		if err != nil {
			return host.MoveRequest{}, err
		}
		*f.dst = v
	}
	return req, nil
}

// toInt32 narrows v, declining anything outside the int32 range
func toInt32(name string, v int) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%s=%d out of range: %w", name, v, engine.ErrInvalidCoordinate)
	}
	return int32(v), nil
}

// parseCoordinate reads one int32 coordinate from a command argument
func parseCoordinate(name, arg string) (int32, error) {
	v, err := strconv.ParseInt(arg, 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%s=%s out of range: %w", name, arg, engine.ErrInvalidCoordinate)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, arg)
	}
	return int32(v), nil
}

// Move applies req through the bridge so notifications are printed
func (s *Shell) Move(ctx context.Context, req host.MoveRequest) (*service.MoveOutcome, error) {
	return s.bridge.Move(ctx, req)
}

func (s *Shell) printOutcome(outcome *service.MoveOutcome) {
	if outcome.Result.TurnRetained {
		fmt.Fprintf(s.out, "%s continues jumping from %s\n", outcome.Mover, outcome.Move.To)
	}
	if outcome.Status != engine.InProgress {
		fmt.Fprintf(s.out, "game over: %s\n", outcome.Status)
	}
}

func (s *Shell) pieceHandler(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: piece x y")
	}
	x, err := parseCoordinate("x", args[0])
	if err != nil {
		return err
	}
	y, err := parseCoordinate("y", args[1])
	if err != nil {
		return err
	}

	p, err := s.bridge.Piece(ctx, host.Square{X: x, Y: y})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%d %s\n", host.EncodePiece(p), describe(p))
	return nil
}

func (s *Shell) turnHandler(ctx context.Context, _ []string) error {
	turn, err := s.games.CurrentTurn(ctx, s.GameID())
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%d %s\n", host.EncodeColor(turn), turn)
	return nil
}

func (s *Shell) movesHandler(ctx context.Context, _ []string) error {
	moves, err := s.games.LegalMoves(ctx, s.GameID())
	if err != nil {
		return err
	}
	if len(moves) == 0 {
		fmt.Fprintln(s.out, "no legal moves")
		return nil
	}
	for _, mv := range moves {
		fmt.Fprintln(s.out, mv)
	}
	return nil
}

func (s *Shell) statusHandler(ctx context.Context, _ []string) error {
	info, err := s.games.GetGame(ctx, s.GameID())
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s: %s to move, black %d, white %d, %d moves\n",
		info.Status, info.Turn, info.BlackPieces, info.WhitePieces, info.TotalMoves)
	if info.ContinuingFrom != nil {
		fmt.Fprintf(s.out, "jump in progress from %s\n", info.ContinuingFrom)
	}
	return nil
}

func (s *Shell) historyHandler(ctx context.Context, _ []string) error {
	opts := service.HistoryOptions{Page: 1, Limit: 100, Order: "asc"}
	for {
		resp, err := s.games.GetMoveHistory(ctx, s.GameID(), opts)
		if err != nil {
			return err
		}
		if resp.TotalMoves == 0 {
			fmt.Fprintln(s.out, "no moves yet")
			return nil
		}
		for _, rec := range resp.Moves {
			fmt.Fprintln(s.out, formatRecord(rec))
		}
		if !resp.HasNext {
			fmt.Fprintf(s.out, "%d moves, %d captures, %d crownings\n",
				resp.TotalMoves, resp.Captures, resp.Crownings)
			return nil
		}
		opts.Page++
	}
}

func (s *Shell) newHandler(ctx context.Context, args []string) error {
	var setup *service.Setup
	if len(args) > 0 {
		turn, err := engine.ParseColor(args[0])
		if err != nil {
			return err
		}
		if turn != engine.Black {
			setup = &service.Setup{Board: engine.NewBoard(), Turn: turn}
		}
	}

	info, err := s.games.CreateGame(ctx, setup)
	if err != nil {
		return err
	}

	previous := s.GameID()
	s.attach(info.ID)
	if err := s.games.DeleteGame(ctx, previous); err != nil {
		s.log.Warn("failed to delete previous game", "game", previous, "err", err)
	}

	fmt.Fprintf(s.out, "new game %s, %s to move\n", info.ID, info.Turn)
	return nil
}

func describe(p *engine.GamePiece) string {
	if p == nil {
		return "empty"
	}
	if p.Crowned {
		return p.Color.String() + " king"
	}
	return p.Color.String() + " man"
}

func formatRecord(rec engine.MoveRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s %s->%s", rec.Number, rec.Color, rec.From, rec.To)
	if rec.Captured != nil {
		fmt.Fprintf(&b, " x%s", rec.Captured)
	}
	if rec.Crowned {
		b.WriteString(" crowned")
	}
	return b.String()
}
