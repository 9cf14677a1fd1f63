// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package shell runs the interactive line-oriented front end. Each line is
// one user action, handled to completion before the next line is read.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Actions are the user actions a line can trigger.
type Actions interface {
	OnSearchSubmit(ctx context.Context, query string) error
	OnSelectDetail(ctx context.Context, id string) error
	OnToggleFavorite(ctx context.Context, id, title, poster string) error
	OnSetRating(ctx context.Context, id string, rating int) error
	OnToggleTheme(ctx context.Context) error
	OnClearHistory(ctx context.Context) error
	ShowWelcome()
	ShowFavorites()
	ShowHistory()
	ShowPreviousResults()
	Back()
}

const helpText = `Commands:
  search <title>               search for movies
  detail <id>                  show full details for a movie
  fav <id> ["title"] [poster]  add or remove a favorite
  rate <id> <1-5>              rate a movie
  theme                        toggle dark mode
  favorites                    list favorites
  history                      list recent searches
  clear-history                forget recent searches
  results                      show the last search results again
  back                         return to the previous screen
  help                         show this help
  quit                         leave the shell
Anything else is searched for as a title.`

// Shell reads commands from In and reports usage problems to Out. Action
// output goes through the renderer the actions were built with.
type Shell struct {
	actions Actions
	in      io.Reader
	out     io.Writer
	log     *zap.Logger

	// Prompt is written before each line is read. Empty disables it.
	Prompt string
}

// New returns a shell with the default prompt.
func New(a Actions, in io.Reader, out io.Writer, log *zap.Logger) *Shell {
	if log == nil {
		log = zap.NewNop()
	}
	return &Shell{actions: a, in: in, out: out, log: log, Prompt: "movie> "}
}

// Run shows the welcome screen and handles lines until quit, end of input,
// or ctx is done. Input is read on its own goroutine so cancellation does
// not wait for the next line.
func (s *Shell) Run(ctx context.Context) error {
	s.actions.ShowWelcome()

	done := make(chan struct{})
	defer close(done)
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(s.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.Prompt != "" {
			fmt.Fprint(s.out, s.Prompt)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("reading input: %w", err)
				}
				fmt.Fprintln(s.out)
				return nil
			}
			if quit := s.Exec(ctx, line); quit {
				return nil
			}
		}
	}
}

// Exec handles one line and reports whether the shell should exit. Action
// errors have already been rendered; they are only logged here.
func (s *Shell) Exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	var err error
	switch strings.ToLower(cmd) {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
	case "search", "s":
		err = s.actions.OnSearchSubmit(ctx, rest)
	case "detail", "d":
		if rest == "" {
			s.usage("detail <id>")
			return false
		}
		err = s.actions.OnSelectDetail(ctx, rest)
	case "fav", "f":
		args, perr := splitArgs(rest)
		if perr != nil || len(args) == 0 || len(args) > 3 {
			s.usage(`fav <id> ["title"] [poster]`)
			return false
		}
		args = append(args, "", "")
		err = s.actions.OnToggleFavorite(ctx, args[0], args[1], args[2])
	case "rate", "r":
		args := strings.Fields(rest)
		if len(args) != 2 {
			s.usage("rate <id> <1-5>")
			return false
		}
		n, perr := strconv.Atoi(args[1])
		if perr != nil {
			s.usage("rate <id> <1-5>")
			return false
		}
		err = s.actions.OnSetRating(ctx, args[0], n)
	case "theme":
		err = s.actions.OnToggleTheme(ctx)
	case "favorites", "favs":
		s.actions.ShowFavorites()
	case "history", "h":
		s.actions.ShowHistory()
	case "clear-history":
		err = s.actions.OnClearHistory(ctx)
	case "results":
		s.actions.ShowPreviousResults()
	case "back", "b":
		s.actions.Back()
	case "home", "welcome":
		s.actions.ShowWelcome()
	default:
		err = s.actions.OnSearchSubmit(ctx, line)
	}
	if err != nil {
		s.log.Debug("command failed", zap.String("command", cmd), zap.Error(err))
	}
	return false
}

func (s *Shell) usage(u string) {
	fmt.Fprintf(s.out, "Usage: %s\n", u)
}

var errUnterminatedQuote = errors.New("unterminated quote")

// splitArgs splits s on spaces, keeping double-quoted runs together.
func splitArgs(s string) ([]string, error) {
	var (
		args  []string
		cur   strings.Builder
		inQ   bool
		begun bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			inQ = !inQ
			begun = true
		case r == ' ' && !inQ:
			if begun {
				args = append(args, cur.String())
				cur.Reset()
				begun = false
			}
		default:
			cur.WriteRune(r)
			begun = true
		}
	}
	if inQ {
		return nil, errUnterminatedQuote
	}
	if begun {
		args = append(args, cur.String())
	}
	return args, nil
}
