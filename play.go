/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Seednode/whodle/games/whodle"
	"github.com/Seednode/whodle/games/whodle/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const maxSuggestions = 8

func defaultSaveDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".whodle"
	}
	return filepath.Join(dir, "whodle")
}

func newPlayCmd(cfg *Config, v *viper.Viper) *cobra.Command {
	var (
		mode    string
		saveDir string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play today's puzzle in the terminal.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := whodle.LookupMode(mode)
			if err != nil {
				return err
			}

			st, err := store.NewFile(saveDir)
			if err != nil {
				return err
			}
			defer st.Close()

			return play(cmd.Context(), cfg, m, st, time.Now(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	fs := cmd.Flags()
	fs.SetNormalizeFunc(normalize)

	fs.StringVarP(&mode, "mode", "m", whodle.TextMode.Name, "puzzle mode to play: text or image (env: WHODLE_MODE)")
	fs.StringVar(&saveDir, "save-dir", defaultSaveDir(), "directory for saved progress (env: WHODLE_SAVE_DIR)")

	bindFlags(v, fs)

	return cmd
}

// play runs one interactive game until it is over or in is exhausted.
// Entering a name guesses its best match; entering a number picks from the
// last list of suggestions.
func play(ctx context.Context, cfg *Config, mode whodle.Mode, st whodle.Store, now time.Time, in io.Reader, out io.Writer) error {
	ds, err := loadDataset(ctx, cfg, mode)
	if err != nil {
		return err
	}

	p, err := whodle.NewPuzzle(cfg.cal, mode, ds, now)
	if err != nil {
		return err
	}

	g, err := whodle.Open(ctx, st, whodle.SessionKey(mode.Name, p.Number), p, ds, cfg.maxGuesses)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("WHODLE %s #%d", mode.Emoji, p.Number)), dimStyle.Render(p.Display))
	fmt.Fprintf(out, "\n%s\n\n", g.Content())
	if d := p.Target.Difficulty; d != nil {
		fmt.Fprintln(out, dimStyle.Render("Difficulty: "+d.Label))
	}
	fmt.Fprintf(out, "Who %s it?\n", mode.Verb)

	if len(g.Session.Guesses) > 0 {
		fmt.Fprintln(out, renderGuesses(g.Session.Guesses))
	}

	scanner := bufio.NewScanner(in)

	var last []whodle.Suggestion
	for !g.Session.GameOver {
		fmt.Fprintf(out, "Guess (%d left): ", g.Remaining())

		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		var pick *whodle.User
		if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(last) {
			pick = &last[n-1].User
		} else {
			last = g.Suggestions(input)
			if len(last) > 0 && (len(last) == 1 || strings.EqualFold(last[0].User.Nickname, input) || strings.EqualFold(last[0].User.Username, input)) {
				pick = &last[0].User
			}
		}

		if pick == nil {
			printSuggestions(out, last)
			continue
		}

		_, err := g.Guess(ctx, pick.ID)
		switch {
		case errors.Is(err, whodle.ErrAlreadyGuessed):
			fmt.Fprintf(out, "Already guessed %s.\n", displayName(*pick))
			continue
		case err != nil:
			return err
		}

		last = nil
		fmt.Fprintln(out, renderGuesses(g.Session.Guesses))
	}

	return printFinish(ctx, cfg, g, out)
}

func printSuggestions(out io.Writer, suggestions []whodle.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintln(out, dimStyle.Render("No matching members."))
		return
	}

	for i, s := range suggestions {
		if i >= maxSuggestions {
			break
		}

		line := fmt.Sprintf("%d. %s (@%s)", i+1, displayName(s.User), s.User.Username)
		if s.AlreadyGuessed {
			line = dimStyle.Render(line + " - already guessed")
		}
		fmt.Fprintln(out, line)
	}
}

func printFinish(ctx context.Context, cfg *Config, g *whodle.Game, out io.Writer) error {
	flavor := cfg.flavor
	won := g.Session.Won()

	fmt.Fprintln(out, titleStyle.Render(flavor.EndMessage(won, g.Puzzle.Seed)))
	fmt.Fprintf(out, "It was %s (@%s).\n", displayName(g.Puzzle.Author), g.Puzzle.Author.Username)

	if imposter, ok := g.Imposter(); ok {
		fmt.Fprintf(out, "The imposter was %s (@%s).\n", displayName(imposter), imposter.Username)
	}

	fmt.Fprintln(out, dimStyle.Render(g.Dataset.DeepLink(g.Puzzle.Target)))

	enc := whodle.NewShareEncoder(flavor, g.MaxGuesses, cfg.shareURL)

	text, _, err := g.ShareText(ctx, enc, func(m whodle.Mode) string {
		return whodle.SessionKey(m.Name, g.Puzzle.Number)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s\n", text)

	return nil
}
