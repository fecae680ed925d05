package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/wricardo/checkers/game/engine"
)

// ErrReplayStopped is returned by a strict replay at the first declined move
var ErrReplayStopped = errors.New("replay stopped")

// IsTerminal reports whether f is an interactive terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// RunInteractive reads commands with line editing and history until exit or EOF
func (s *Shell) RunInteractive(ctx context.Context, historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.Prompt(),
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to start line editor: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(s.out, "checkers shell, type 'help' for commands")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		rl.SetPrompt(s.Prompt())

		line, err := rl.Readline()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, readline.ErrInterrupt) {
			// Clear the line and keep going
			continue
		}
		if err != nil {
			return err
		}

		if err := s.Execute(ctx, line); errors.Is(err, ErrExit) {
			return nil
		}
	}
}

// RunScript executes commands read from r, one per line, without prompting
func (s *Shell) RunScript(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Execute(ctx, scanner.Text()); errors.Is(err, ErrExit) {
			return nil
		}
	}
	return scanner.Err()
}

// ReplayResult summarises a replay
type ReplayResult struct {
	Applied  int
	Declined int
	Status   engine.Status
}

// Replay applies "fx fy tx ty" lines from r to the current game. Blank lines
// and lines starting with '#' are skipped. Declined moves are reported and
// skipped, or stop the replay when strict is set.
func (s *Shell) Replay(ctx context.Context, r io.Reader, strict bool) (*ReplayResult, error) {
	result := &ReplayResult{}
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return result, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := s.playLine(ctx, line); err != nil {
			result.Declined++
			fmt.Fprintf(s.out, "line %d: %v\n", lineNo, err)
			if strict {
				return result, fmt.Errorf("%w at line %d: %w", ErrReplayStopped, lineNo, err)
			}
			continue
		}
		result.Applied++
	}
	if err := scanner.Err(); err != nil {
		return result, err
	}

	status, err := s.games.Status(ctx, s.GameID())
	if err != nil {
		return result, err
	}
	result.Status = status
	return result, nil
}
