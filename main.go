// Command checkers plays English draughts from the terminal.
//
// It supports three commands:
//  1. "play" (default) – an interactive shell over one game, with line
//     editing when stdin is a terminal and plain line reading otherwise
//  2. "replay" – applies "fx fy tx ty" lines from a file or stdin
//  3. "version" – prints version information
//
// Settings come from a .env file and CHECKERS_* environment variables;
// the --log-level and --log-format flags override them.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/inconshreveable/log15/v3"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/checkers/game/config"
	"github.com/wricardo/checkers/game/service"
	"github.com/wricardo/checkers/game/session"
	"github.com/wricardo/checkers/transport/host"
	"github.com/wricardo/checkers/transport/shell"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Checkers"
)

// janitorInterval bounds how often expired games are swept
const janitorInterval = 10 * time.Minute

// services bundles what every command needs
type services struct {
	cfg      *config.Config
	log      log15.Logger
	sessions *session.Manager
	games    service.GameService
}

// main wires signals to a context and runs the command line.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdin, os.Stdout, os.Stderr).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp builds the root command reading from stdin and writing to stdout.
// Logs go to stderr.
func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "checkers",
		Usage:     "English draughts rules engine and shell",
		Version:   Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error, crit)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format (terminal, logfmt, json)",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file to load before reading the environment",
				Value: ".env",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "play a game in an interactive shell",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runPlay(ctx, cmd, stdin, stdout, stderr)
				},
			},
			{
				Name:      "replay",
				Usage:     "apply moves from a file, one \"fx fy tx ty\" per line",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "stop with an error at the first declined move",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runReplay(ctx, cmd, stdin, stdout, stderr)
				},
			},
			{
				Name:  "version",
				Usage: "print version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Fprintf(stdout, "%s v%s\n", AppName, Version)
					return nil
				},
			},
		},
		DefaultCommand: "play",
	}
}

// setup loads configuration, applies flag overrides, and builds the services
func setup(cmd *cli.Command, stderr io.Writer) (*services, error) {
	cfg, err := config.Load(cmd.String("env-file"))
	if err != nil {
		return nil, err
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		cfg.LogFormat = cmd.String("log-format")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := config.NewLogger(cfg, stderr)
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(logger)
	return &services{
		cfg:      cfg,
		log:      logger,
		sessions: sessions,
		games:    service.NewGameService(sessions, logger),
	}, nil
}

func runPlay(ctx context.Context, cmd *cli.Command, stdin io.Reader, stdout, stderr io.Writer) error {
	rt, err := setup(cmd, stderr)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	// Notification hub with one subscriber logging every event
	hub := host.NewHub(rt.log)
	wg.Add(1)
	go func() {
		defer wg.Done()
		hub.Run(ctx)
	}()

	sub := hub.Subscribe(host.AllGames, 64)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for n := range sub.C {
			rt.log.Debug("notification", "game", n.GameID, "event", n.Event, "detail", n.String())
		}
	}()

	if rt.cfg.SessionTTL > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runJanitor(ctx, rt.sessions, rt.cfg.SessionTTL)
		}()
	}

	sh, err := shell.New(ctx, rt.games, stdout, shell.WithNotifier(hub.Notifier), shell.WithLogger(rt.log))
	if err != nil {
		return err
	}
	rt.log.Info("game started", "game", sh.GameID())

	if f, ok := stdin.(*os.File); ok && shell.IsTerminal(f) {
		return sh.RunInteractive(ctx, rt.cfg.HistoryFile)
	}
	return sh.RunScript(ctx, stdin)
}

func runReplay(ctx context.Context, cmd *cli.Command, stdin io.Reader, stdout, stderr io.Writer) error {
	rt, err := setup(cmd, stderr)
	if err != nil {
		return err
	}

	in := stdin
	if path := cmd.Args().First(); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open replay file: %w", err)
		}
		defer f.Close()
		in = f
	}

	sh, err := shell.New(ctx, rt.games, stdout, shell.WithLogger(rt.log))
	if err != nil {
		return err
	}

	result, err := sh.Replay(ctx, in, cmd.Bool("strict"))
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "applied %d, declined %d, status %s\n", result.Applied, result.Declined, result.Status)
	return nil
}

// runJanitor drops games that have been idle longer than ttl until ctx is done
func runJanitor(ctx context.Context, sessions *session.Manager, ttl time.Duration) {
	interval := ttl
	if interval > janitorInterval {
		interval = janitorInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sessions.CleanupExpiredSessions(ttl)
		}
	}
}
