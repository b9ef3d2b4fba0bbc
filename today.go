/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/Seednode/whodle/games/whodle"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newTodayCmd(cfg *Config, v *viper.Viper) *cobra.Command {
	var (
		date   string
		reveal bool
	)

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Print the puzzle number and seeds for a day.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if date != "" {
				t, err := time.ParseInLocation(time.DateOnly, date, cfg.cal.Location())
				if err != nil {
					return fmt.Errorf("parse date %q: %w", date, err)
				}
				now = t.Add(12 * time.Hour)
			}

			var datasets map[string]*whodle.Dataset
			if reveal {
				var err error
				datasets, err = loadDatasets(cmd.Context(), cfg)
				if err != nil {
					return err
				}
			}

			return printToday(cmd.OutOrStdout(), cfg.cal, now, datasets)
		},
	}

	fs := cmd.Flags()
	fs.SetNormalizeFunc(normalize)

	fs.StringVar(&date, "date", "", "day to describe as YYYY-MM-DD, instead of today (env: WHODLE_DATE)")
	fs.BoolVar(&reveal, "reveal", false, "also print each mode's answer (env: WHODLE_REVEAL)")

	bindFlags(v, fs)

	return cmd
}

// printToday describes the puzzle for now. Modes present in datasets also
// get their chosen target and author.
func printToday(out io.Writer, cal *whodle.Calendar, now time.Time, datasets map[string]*whodle.Dataset) error {
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("WHODLE #%d", cal.PuzzleNumber(now))), dimStyle.Render(cal.DisplayDate(now)))
	fmt.Fprintf(out, "date string: %s\n", cal.DateString(now))

	for _, mode := range whodle.Modes() {
		fmt.Fprintf(out, "%s %s seed: %d\n", mode.Emoji, mode.Name, cal.Seed(now)+mode.SeedOffset)

		ds, ok := datasets[mode.Name]
		if !ok {
			continue
		}

		p, err := whodle.NewPuzzle(cal, mode, ds, now)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "  %s %s: %s\n", displayName(p.Author), mode.Verb, ds.FormatMentions(p.Target.Content))
		fmt.Fprintf(out, "  %s\n", ds.DeepLink(p.Target))
	}

	return nil
}
