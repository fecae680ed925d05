package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/inconshreveable/log15/v3"

	"github.com/wricardo/checkers/game/service"
	"github.com/wricardo/checkers/game/session"
	"github.com/wricardo/checkers/transport/host"
)

// ErrExit is returned by Execute when the user asks to leave
var ErrExit = errors.New("exit")

// Command defines a shell command with its handler
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Handler     func(ctx context.Context, args []string) error

	// Standalone commands run without checking the attached game
	Standalone bool
}

// Option configures a Shell
type Option func(*Shell)

// WithNotifier adds an observer for every game the shell plays,
// for example host.Hub.Notifier
func WithNotifier(factory func(gameID string) host.Notifier) Option {
	return func(s *Shell) {
		s.observers = append(s.observers, factory)
	}
}

// WithLogger sets the logger handed to the shell and its bridges
func WithLogger(logger log15.Logger) Option {
	return func(s *Shell) {
		s.log = logger
	}
}

// Shell is a line-oriented front end over one game at a time
type Shell struct {
	games     service.GameService
	bridge    *host.Bridge
	out       io.Writer
	observers []func(gameID string) host.Notifier
	log       log15.Logger

	commands map[string]*Command
	names    []string
}

// New creates a shell and starts a game with the standard layout
func New(ctx context.Context, games service.GameService, out io.Writer, opts ...Option) (*Shell, error) {
	s := &Shell{
		games:    games,
		out:      out,
		commands: make(map[string]*Command),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = log15.New()
		s.log.SetHandler(log15.DiscardHandler())
	}

	s.registerGameCommands()

	// Help command
	s.Register(&Command{
		Name:        "help",
		ShortName:   "?",
		Description: "Show available commands",
		Usage:       "help [command]",
		Handler:     s.helpHandler,
		Standalone:  true,
	})

	// Exit command
	s.Register(&Command{
		Name:        "exit",
		ShortName:   "quit",
		Description: "Leave the shell",
		Usage:       "exit",
		Handler: func(context.Context, []string) error {
			return ErrExit
		},
		Standalone: true,
	})

	info, err := games.CreateGame(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}
	s.attach(info.ID)
	return s, nil
}

// Register adds cmd under its name and short name
func (s *Shell) Register(cmd *Command) {
	if _, exists := s.commands[cmd.Name]; !exists {
		s.names = append(s.names, cmd.Name)
	}
	s.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		s.commands[cmd.ShortName] = cmd
	}
}

// GameID returns the game currently being played
func (s *Shell) GameID() string {
	return s.bridge.GameID()
}

// Prompt shows the side to move
func (s *Shell) Prompt() string {
	turn, err := s.games.CurrentTurn(context.Background(), s.GameID())
	if err != nil {
		return "checkers> "
	}
	return fmt.Sprintf("checkers [%s]> ", turn)
}

// Execute runs one input line. Command failures are printed, not returned;
// the only error is ErrExit.
func (s *Shell) Execute(ctx context.Context, line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 || strings.HasPrefix(parts[0], "#") {
		return nil
	}

	cmd, exists := s.commands[strings.ToLower(parts[0])]
	if !exists {
		fmt.Fprintf(s.out, "unknown command: %s\n", parts[0])
		fmt.Fprintln(s.out, "type 'help' for available commands")
		return nil
	}

	if !cmd.Standalone {
		s.ensureGame(ctx)
	}

	err := cmd.Handler(ctx, parts[1:])
	if errors.Is(err, ErrExit) {
		return ErrExit
	}
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
	return nil
}

// ensureGame starts a replacement when the attached game has been removed,
// for example by idle expiry
func (s *Shell) ensureGame(ctx context.Context) {
	_, err := s.games.GetGame(ctx, s.GameID())
	if !errors.Is(err, session.ErrSessionNotFound) {
		return
	}

	expired := s.GameID()
	info, err := s.games.CreateGame(ctx, nil)
	if err != nil {
		s.log.Error("failed to replace expired game", "game", expired, "err", err)
		return
	}
	s.attach(info.ID)
	s.log.Info("expired game replaced", "expired", expired, "game", info.ID)
	fmt.Fprintf(s.out, "game %s expired, new game %s, %s to move\n", expired, info.ID, info.Turn)
}

// attach binds the shell to gameID with a fresh bridge
func (s *Shell) attach(gameID string) {
	notifiers := []host.Notifier{s.printer()}
	for _, factory := range s.observers {
		notifiers = append(notifiers, factory(gameID))
	}
	s.bridge = host.NewBridge(s.games, gameID, host.MultiNotifier(notifiers...), s.log)
	s.log.Debug("shell attached", "game", gameID)
}

// printer writes notifications as they arrive
func (s *Shell) printer() host.Notifier {
	return host.NotifierFuncs{
		PieceMoved: func(fx, fy, tx, ty int32) {
			fmt.Fprintf(s.out, "moved %d,%d -> %d,%d\n", fx, fy, tx, ty)
		},
		PieceCrowned: func(x, y int32) {
			fmt.Fprintf(s.out, "crowned %d,%d\n", x, y)
		},
	}
}

func (s *Shell) helpHandler(_ context.Context, args []string) error {
	if len(args) > 0 {
		cmd, exists := s.commands[args[0]]
		if !exists {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		fmt.Fprintf(s.out, "%s - %s\n", cmd.Name, cmd.Description)
		if cmd.ShortName != "" {
			fmt.Fprintf(s.out, "short form: %s\n", cmd.ShortName)
		}
		fmt.Fprintf(s.out, "usage: %s\n", cmd.Usage)
		return nil
	}

	names := append([]string(nil), s.names...)
	sort.Strings(names)
	fmt.Fprintln(s.out, "available commands:")
	for _, name := range names {
		cmd := s.commands[name]
		fmt.Fprintf(s.out, "  %-24s %s\n", cmd.Usage, cmd.Description)
	}
	return nil
}
