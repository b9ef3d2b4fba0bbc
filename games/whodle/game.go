/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package whodle

import (
	"context"
	"errors"
	"fmt"
)

const DefaultMaxGuesses = 5

var (
	ErrAlreadyGuessed = errors.New("user already guessed")
	ErrGameOver       = errors.New("game is over")
	ErrUnknownMode    = errors.New("unknown mode")

	ErrGameOverRequired = errors.New("game is not over yet")
)

// Mode is an independent puzzle track with its own pool and sessions.
type Mode struct {
	Name       string
	Emoji      string
	Verb       string
	SeedOffset uint32
}

var (
	TextMode  = Mode{Name: "text", Emoji: "💬", Verb: "said", SeedOffset: 0}
	ImageMode = Mode{Name: "image", Emoji: "📸", Verb: "posted", SeedOffset: 2}
)

// Modes lists every mode in share order.
func Modes() []Mode {
	return []Mode{TextMode, ImageMode}
}

func LookupMode(name string) (Mode, error) {
	for _, m := range Modes() {
		if m.Name == name {
			return m, nil
		}
	}

	return Mode{}, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// Game drives one session: it rejects invalid submissions, evaluates the
// rest, and persists after every mutation.
type Game struct {
	Puzzle     *Puzzle
	Dataset    *Dataset
	Session    *Session
	MaxGuesses int
	Evaluator  *Evaluator

	store Store
	key   string
}

// Open resumes the saved session for key when it matches the puzzle's
// seed, and starts a fresh one otherwise.
func Open(ctx context.Context, st Store, key string, p *Puzzle, ds *Dataset, maxGuesses int) (*Game, error) {
	if maxGuesses < 1 {
		maxGuesses = DefaultMaxGuesses
	}

	s, err := LoadSession(ctx, st, key, p.Seed, maxGuesses)
	if err != nil {
		return nil, err
	}

	g := &Game{
		Puzzle:     p,
		Dataset:    ds,
		Session:    s,
		MaxGuesses: maxGuesses,
		Evaluator:  NewEvaluator(),
		store:      st,
		key:        key,
	}

	if s == nil {
		g.Session = NewSession(p.Seed)
		if err := SaveSession(ctx, st, key, g.Session); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func (g *Game) Key() string {
	return g.key
}

func (g *Game) Remaining() int {
	return g.MaxGuesses - len(g.Session.Guesses)
}

// Guess submits userID. Duplicates and submissions after game over are
// rejected without touching the session.
func (g *Game) Guess(ctx context.Context, userID string) (Guess, error) {
	if g.Session.GameOver {
		return Guess{}, ErrGameOver
	}

	if g.Session.HasGuessed(userID) {
		return Guess{}, ErrAlreadyGuessed
	}

	user, ok := g.Dataset.Users[userID]
	if !ok {
		return Guess{}, fmt.Errorf("%w: %s", ErrUnknownUser, userID)
	}

	result := g.Evaluator.Evaluate(user, g.Puzzle.Author, g.Session.Guesses)
	g.Session.record(result, g.MaxGuesses)

	if err := SaveSession(ctx, g.store, g.key, g.Session); err != nil {
		return result, err
	}

	return result, nil
}

// Suggestion is a search hit annotated for the guess picker.
type Suggestion struct {
	User           User `json:"user"`
	AlreadyGuessed bool `json:"already_guessed"`
}

func (g *Game) Suggestions(query string) []Suggestion {
	users := Search(g.Dataset.Users, query)

	out := make([]Suggestion, len(users))
	for i, u := range users {
		out[i] = Suggestion{User: u, AlreadyGuessed: g.Session.HasGuessed(u.ID)}
	}

	return out
}

// Content returns the target's display content, with mentions resolved for text.
func (g *Game) Content() string {
	if g.Puzzle.Target.Type == ItemImage {
		return g.Puzzle.Target.Content
	}

	return g.Dataset.FormatMentions(g.Puzzle.Target.Content)
}

// Imposter is the decoy author attached to the target, if any.
func (g *Game) Imposter() (User, bool) {
	if g.Puzzle.Target.ImposterID == "" {
		return User{}, false
	}

	u, ok := g.Dataset.Users[g.Puzzle.Target.ImposterID]

	return u, ok
}

// Result snapshots the session for sharing.
func (g *Game) Result() Result {
	return Result{Mode: g.Puzzle.Mode, Puzzle: g.Puzzle.Number, Guesses: g.Session.Guesses}
}

// Finished reports whether the session for mode on this puzzle day, stored
// under key, is complete. It never touches this game's own session.
func (g *Game) Finished(ctx context.Context, mode Mode, key string) (Result, bool, error) {
	seed := g.Puzzle.Seed - g.Puzzle.Mode.SeedOffset + mode.SeedOffset

	s, err := LoadSession(ctx, g.store, key, seed, g.MaxGuesses)
	if err != nil || s == nil || !s.GameOver {
		return Result{}, false, err
	}

	return Result{Mode: mode, Puzzle: g.Puzzle.Number, Guesses: s.Guesses}, true, nil
}

// ShareText renders this game alone, or combined with every other mode when
// all of them are finished for the same puzzle. keyFor maps a mode to its
// session key.
func (g *Game) ShareText(ctx context.Context, enc *ShareEncoder, keyFor func(Mode) string) (string, bool, error) {
	if !g.Session.GameOver {
		return "", false, ErrGameOverRequired
	}

	results := []Result{g.Result()}
	for _, m := range Modes() {
		if m.Name == g.Puzzle.Mode.Name {
			continue
		}

		r, ok, err := g.Finished(ctx, m, keyFor(m))
		if err != nil {
			return "", false, err
		}
		if !ok {
			return enc.Single(g.Result()), false, nil
		}
		results = append(results, r)
	}

	return enc.Combined(results...), len(results) > 1, nil
}
