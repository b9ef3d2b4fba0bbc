/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/Seednode/whodle/games/whodle"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type authorStat struct {
	User     whodle.User
	Messages int
	Share    float64
}

type channelStat struct {
	ChannelID string
	Messages  int
	AvgWords  float64
}

// authorStats counts messages per author, most prolific first.
func authorStats(ds *whodle.Dataset) []authorStat {
	counts := make(map[string]int)
	for _, m := range ds.Messages {
		counts[m.AuthorID]++
	}

	out := make([]authorStat, 0, len(counts))
	for id, n := range counts {
		out = append(out, authorStat{
			User:     ds.Users[id],
			Messages: n,
			Share:    100 * float64(n) / float64(len(ds.Messages)),
		})
	}

	slices.SortFunc(out, func(a, b authorStat) int {
		return cmp.Or(cmp.Compare(b.Messages, a.Messages), cmp.Compare(a.User.ID, b.User.ID))
	})

	return out
}

// channelStats averages word counts of text messages per channel.
func channelStats(ds *whodle.Dataset) []channelStat {
	messages := make(map[string]int)
	words := make(map[string]int)

	for _, m := range ds.Messages {
		if m.Type == whodle.ItemImage {
			continue
		}
		messages[m.ChannelID]++
		words[m.ChannelID] += len(strings.Fields(m.Content))
	}

	out := make([]channelStat, 0, len(messages))
	for id, n := range messages {
		out = append(out, channelStat{
			ChannelID: id,
			Messages:  n,
			AvgWords:  float64(words[id]) / float64(n),
		})
	}

	slices.SortFunc(out, func(a, b channelStat) int {
		return cmp.Or(cmp.Compare(b.Messages, a.Messages), cmp.Compare(a.ChannelID, b.ChannelID))
	})

	return out
}

func statsTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

func printStats(out io.Writer, mode whodle.Mode, ds *whodle.Dataset, top int) {
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s %s: %d messages, %d members", mode.Emoji, mode.Name, len(ds.Messages), len(ds.Users))))

	authors := authorStats(ds)
	rows := make([][]string, 0, len(authors))
	for i, a := range authors {
		if top > 0 && i >= top {
			break
		}
		rows = append(rows, []string{displayName(a.User), a.User.Username, fmt.Sprint(a.Messages), fmt.Sprintf("%.1f%%", a.Share)})
	}
	fmt.Fprintln(out, statsTable([]string{"Member", "Username", "Messages", "Share"}, rows))

	channels := channelStats(ds)
	if len(channels) == 0 {
		return
	}

	rows = rows[:0]
	for i, c := range channels {
		if top > 0 && i >= top {
			break
		}
		rows = append(rows, []string{c.ChannelID, fmt.Sprint(c.Messages), fmt.Sprintf("%.1f", c.AvgWords)})
	}
	fmt.Fprintln(out, statsTable([]string{"Channel", "Messages", "Avg words"}, rows))
}

func newStatsCmd(cfg *Config, v *viper.Viper) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the loaded datasets by author and channel.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			datasets, err := loadDatasets(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			for _, mode := range whodle.Modes() {
				if ds, ok := datasets[mode.Name]; ok {
					printStats(cmd.OutOrStdout(), mode, ds, top)
				}
			}

			return nil
		},
	}

	fs := cmd.Flags()
	fs.SetNormalizeFunc(normalize)

	fs.IntVar(&top, "top", 10, "rows per table, 0 for all (env: WHODLE_TOP)")

	bindFlags(v, fs)

	return cmd
}
