/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package whodle

import (
	"fmt"
	"strconv"
	"strings"
)

const DefaultShareURL = "https://vsporeddy.github.io/whodle/"

const (
	symFull    = "🟩"
	symPartial = "🟨"
	symNone    = "⬛"
	symUp      = "⬆️"
	symDown    = "⬇️"
	symLeft    = "⬅️"
	symRight   = "➡️"
)

// Flavor holds the text tables used around a finished game.
type Flavor struct {
	WinMessages  []string
	LoseMessages []string
	Emojis       map[string]string
	DefaultEmoji string
}

func DefaultFlavor() Flavor {
	return Flavor{
		WinMessages:  []string{"Oh??", "🤠", "👀", "Good job, bud.", "EZ."},
		LoseMessages: []string{"Yikes.", "Bro??", "Skill Issue?", "Uhhh...", "Frick!"},
		Emojis:       map[string]string{},
		DefaultEmoji: "||🤠||",
	}
}

// EndMessage picks the day's win or lose line from seed.
func (f Flavor) EndMessage(won bool, seed uint32) string {
	list := f.LoseMessages
	if won {
		list = f.WinMessages
	}

	if len(list) == 0 {
		return ""
	}

	return list[seed%uint32(len(list))]
}

func (f Flavor) Emoji(username string) string {
	if e, ok := f.Emojis[username]; ok && username != "" {
		return e
	}

	return f.DefaultEmoji
}

// Result is a finished (or in-progress) session ready to render.
type Result struct {
	Mode    Mode
	Puzzle  int
	Guesses []Guess
}

func (r Result) Score(limit int) string {
	if n := len(r.Guesses); n > 0 && r.Guesses[n-1].Correct {
		return fmt.Sprintf("%d/%d", n, limit)
	}

	return fmt.Sprintf("X/%d", limit)
}

// ShareEncoder renders results as copy-pasteable emoji grids.
type ShareEncoder struct {
	Flavor     Flavor
	MaxGuesses int
	URL        string
}

func NewShareEncoder(flavor Flavor, maxGuesses int, url string) *ShareEncoder {
	return &ShareEncoder{Flavor: flavor, MaxGuesses: maxGuesses, URL: url}
}

// Row encodes one guess. A correct guess is full-match in every column.
func (e *ShareEncoder) Row(g Guess) string {
	if g.Correct {
		return strings.Repeat(symFull, 4)
	}

	var row strings.Builder

	row.WriteString(e.Flavor.Emoji(g.User.Username))

	switch g.RankHint {
	case RankEqual:
		row.WriteString(symFull)
	case RankHigher:
		row.WriteString(symUp)
	default:
		row.WriteString(symDown)
	}

	switch g.JoinHint {
	case JoinEqual:
		row.WriteString(symPartial)
	case JoinEarlier:
		row.WriteString(symLeft)
	default:
		row.WriteString(symRight)
	}

	row.WriteString(RoleTier(g.Similarity))

	return row.String()
}

// RoleTier maps a similarity percentage onto the three share colours.
func RoleTier(similarity int) string {
	switch {
	case similarity >= 100:
		return symFull
	case similarity > 30:
		return symPartial
	default:
		return symNone
	}
}

func (e *ShareEncoder) Grid(guesses []Guess) string {
	var grid strings.Builder

	for _, g := range guesses {
		grid.WriteString(e.Row(g))
		grid.WriteString("\n")
	}

	return grid.String()
}

func (e *ShareEncoder) Single(r Result) string {
	var text strings.Builder

	text.WriteString("WHODLE " + r.Mode.Emoji + " #" + strconv.Itoa(r.Puzzle) + "\n")
	text.WriteString(r.Score(e.MaxGuesses) + "\n")
	text.WriteString(e.Grid(r.Guesses))
	text.WriteString(e.URL)

	return text.String()
}

// Combined renders several modes of the same puzzle under one header, in
// Modes() order regardless of argument order.
func (e *ShareEncoder) Combined(results ...Result) string {
	if len(results) == 1 {
		return e.Single(results[0])
	}

	ordered := make([]Result, 0, len(results))
	for _, m := range Modes() {
		for _, r := range results {
			if r.Mode.Name == m.Name {
				ordered = append(ordered, r)
			}
		}
	}

	var text strings.Builder

	if len(ordered) > 0 {
		text.WriteString("WHODLE #" + strconv.Itoa(ordered[0].Puzzle) + "\n")
	}

	for i, r := range ordered {
		if i > 0 {
			text.WriteString("\n")
		}
		text.WriteString(r.Mode.Emoji + ": " + r.Score(e.MaxGuesses) + "\n")
		text.WriteString(e.Grid(r.Guesses))
	}

	text.WriteString(e.URL)

	return text.String()
}
