/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package whodle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("session not found")

// Store is the persistence primitive behind sessions: opaque bytes by key.
// Put must be safe to call repeatedly; last write wins.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// Session is one player's progress on one (mode, puzzle) pair.
type Session struct {
	Seed     uint32  `json:"seed"`
	Guesses  []Guess `json:"guesses"`
	GameOver bool    `json:"gameOver"`
}

func NewSession(seed uint32) *Session {
	return &Session{Seed: seed, Guesses: []Guess{}}
}

func SessionKey(mode string, puzzle int) string {
	return fmt.Sprintf("whodle_%s_%d", mode, puzzle)
}

func (s *Session) HasGuessed(id string) bool {
	for _, g := range s.Guesses {
		if g.User.ID == id {
			return true
		}
	}

	return false
}

func (s *Session) Won() bool {
	return len(s.Guesses) > 0 && s.Guesses[len(s.Guesses)-1].Correct
}

// record appends g and applies the one-way game-over transition.
func (s *Session) record(g Guess, limit int) {
	s.Guesses = append(s.Guesses, g)

	if g.Correct || len(s.Guesses) >= limit {
		s.GameOver = true
	}
}

type storedSession struct {
	Seed     *uint32  `json:"seed"`
	Guesses  *[]Guess `json:"guesses"`
	GameOver *bool    `json:"gameOver"`
}

func decodeSession(data []byte, limit int) (*Session, error) {
	var raw storedSession
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if raw.Seed == nil || raw.Guesses == nil || raw.GameOver == nil {
		return nil, errors.New("missing session fields")
	}

	s := &Session{Seed: *raw.Seed, Guesses: *raw.Guesses, GameOver: *raw.GameOver}

	if len(s.Guesses) > limit {
		return nil, fmt.Errorf("%d guesses exceeds limit of %d", len(s.Guesses), limit)
	}

	seen := make(map[string]bool, len(s.Guesses))
	for i, g := range s.Guesses {
		if g.User.ID == "" || seen[g.User.ID] {
			return nil, fmt.Errorf("guess %d: missing or repeated user", i)
		}
		seen[g.User.ID] = true

		if g.Correct && i != len(s.Guesses)-1 {
			return nil, fmt.Errorf("guess %d: correct guess before the end", i)
		}
	}

	over := s.Won() || len(s.Guesses) >= limit
	if over != s.GameOver {
		return nil, errors.New("gameOver does not match guesses")
	}

	return s, nil
}

// LoadSession returns the saved session for key only when it was computed
// against seed. A missing, stale or malformed record yields (nil, nil);
// only store failures are returned as errors.
func LoadSession(ctx context.Context, st Store, key string, seed uint32, limit int) (*Session, error) {
	data, err := st.Get(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("load session %s: %w", key, err)
	}

	s, err := decodeSession(data, limit)
	if err != nil || s.Seed != seed {
		return nil, nil
	}

	return s, nil
}

func SaveSession(ctx context.Context, st Store, key string, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", key, err)
	}

	if err := st.Put(ctx, key, data); err != nil {
		return fmt.Errorf("save session %s: %w", key, err)
	}

	return nil
}
