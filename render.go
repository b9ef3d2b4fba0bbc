/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"time"

	"github.com/Seednode/whodle/games/whodle"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const unrankedVal = 999

var (
	cellStyle    = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#FAFAFA"))
	fullStyle    = cellStyle.Background(lipgloss.Color("#23a559"))
	partialStyle = cellStyle.Background(lipgloss.Color("#f0b232"))
	noneStyle    = cellStyle.Background(lipgloss.Color("#4e5058"))
	headerStyle  = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#23a559"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#949ba4"))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4e5058"))
)

func displayName(u whodle.User) string {
	switch {
	case u.Nickname != "":
		return u.Nickname
	case u.DisplayName != "":
		return u.DisplayName
	default:
		return u.Username
	}
}

func rankLabel(rank int) string {
	if rank >= unrankedVal {
		return "unranked"
	}
	return fmt.Sprintf("#%d", rank)
}

func rankCell(g whodle.Guess) (string, lipgloss.Style) {
	label := rankLabel(g.User.RankVal)

	switch g.RankHint {
	case whodle.RankEqual:
		return label, fullStyle
	case whodle.RankHigher:
		return label + " ⬆", noneStyle
	default:
		return label + " ⬇", noneStyle
	}
}

func joinCell(g whodle.Guess) (string, lipgloss.Style) {
	label := time.Unix(int64(g.User.JoinedAt), 0).UTC().Format("Jan 2006")

	switch {
	case g.Correct:
		return label, fullStyle
	case g.JoinHint == whodle.JoinEqual:
		return label, partialStyle
	case g.JoinHint == whodle.JoinEarlier:
		return "⬅ " + label, noneStyle
	default:
		return label + " ➡", noneStyle
	}
}

func roleCell(g whodle.Guess) (string, lipgloss.Style) {
	label := g.RoleClue.String()

	if g.Correct {
		return label, fullStyle
	}

	switch whodle.RoleTier(g.Similarity) {
	case whodle.RoleTier(100):
		return label, fullStyle
	case whodle.RoleTier(50):
		return label, partialStyle
	default:
		return label, noneStyle
	}
}

// renderGuesses draws the clue grid, one row per guess.
func renderGuesses(guesses []whodle.Guess) string {
	rows := make([][]string, 0, len(guesses))
	styles := make([][]lipgloss.Style, 0, len(guesses))

	for _, g := range guesses {
		nameStyle := noneStyle
		if g.Correct {
			nameStyle = fullStyle
		}

		rank, rankStyle := rankCell(g)
		join, joinStyle := joinCell(g)
		role, roleStyle := roleCell(g)

		rows = append(rows, []string{displayName(g.User), rank, join, role})
		styles = append(styles, []lipgloss.Style{nameStyle, rankStyle, joinStyle, roleStyle})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("Member", "Rank", "Joined", "Role").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(styles) || col >= len(styles[row]) {
				return cellStyle
			}
			return styles[row][col]
		})

	return t.Render()
}
