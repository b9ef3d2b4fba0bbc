/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package whodle

import (
	"math"
	"math/rand/v2"
)

// RankHint describes the target's rank relative to the guess.
type RankHint string

const (
	RankEqual  RankHint = "equal"
	RankHigher RankHint = "higher"
	RankLower  RankHint = "lower"
)

// JoinHint describes when the target joined relative to the guess.
type JoinHint string

const (
	JoinEqual   JoinHint = "equal"
	JoinEarlier JoinHint = "earlier"
	JoinLater   JoinHint = "later"
)

type RoleClueKind string

const (
	RoleRevealed   RoleClueKind = "revealed"
	RoleNoneNew    RoleClueKind = "none_new"
	RoleNoneShared RoleClueKind = "none_shared"
	RoleCorrect    RoleClueKind = "correct"
)

// RoleClue is either one revealed role or one of the sentinels.
type RoleClue struct {
	Kind RoleClueKind `json:"kind"`
	Role string       `json:"role,omitempty"`
}

func (c RoleClue) String() string {
	switch c.Kind {
	case RoleRevealed:
		return c.Role
	case RoleNoneNew:
		return "No new shared roles!"
	case RoleCorrect:
		return "Correct!"
	default:
		return "-"
	}
}

// Guess is the resolved, immutable outcome of one submission.
type Guess struct {
	Index       int      `json:"guessIndex"`
	User        User     `json:"user"`
	Correct     bool     `json:"correct"`
	RankHint    RankHint `json:"rankHint"`
	JoinHint    JoinHint `json:"joinHint"`
	RoleClue    RoleClue `json:"roleClue"`
	SharedRoles []string `json:"sharedClues"`
	Similarity  int      `json:"roleSimilarity"`
}

// Evaluator resolves guesses. Intn picks among unrevealed shared roles and
// is deliberately not seeded from the day.
type Evaluator struct {
	Intn func(n int) int
}

func NewEvaluator() *Evaluator {
	return &Evaluator{Intn: rand.IntN}
}

// Evaluate compares guess against target. The caller must reject
// duplicates and must append the result to the session itself.
func (e *Evaluator) Evaluate(guess, target User, history []Guess) Guess {
	shared := sharedRoles(guess.Clues, target.Clues)

	g := Guess{
		Index:       len(history),
		User:        guess,
		Correct:     guess.ID == target.ID,
		RankHint:    compareRank(guess.RankVal, target.RankVal),
		JoinHint:    compareJoin(guess.JoinedAt, target.JoinedAt),
		SharedRoles: shared,
		Similarity:  Similarity(guess.Clues, target.Clues),
	}

	if g.Correct {
		g.RoleClue = RoleClue{Kind: RoleCorrect}
		return g
	}

	g.RoleClue = e.roleClue(shared, history)

	return g
}

func (e *Evaluator) roleClue(shared []string, history []Guess) RoleClue {
	if len(shared) == 0 {
		return RoleClue{Kind: RoleNoneShared}
	}

	revealed := make(map[string]bool)
	for _, h := range history {
		if !h.Correct && h.RoleClue.Kind == RoleRevealed {
			revealed[h.RoleClue.Role] = true
		}
	}

	var candidates []string
	for _, role := range shared {
		if !revealed[role] {
			candidates = append(candidates, role)
		}
	}

	if len(candidates) == 0 {
		return RoleClue{Kind: RoleNoneNew}
	}

	i := e.Intn(len(candidates))
	if i < 0 || i >= len(candidates) {
		i = 0
	}

	return RoleClue{Kind: RoleRevealed, Role: candidates[i]}
}

// A numerically greater guess rank means the target outranks the guess.
func compareRank(guess, target int) RankHint {
	switch {
	case guess == target:
		return RankEqual
	case guess > target:
		return RankHigher
	default:
		return RankLower
	}
}

func compareJoin(guess, target float64) JoinHint {
	switch {
	case guess == target:
		return JoinEqual
	case guess > target:
		return JoinEarlier
	default:
		return JoinLater
	}
}

func sharedRoles(guess, target []string) []string {
	in := make(map[string]bool, len(target))
	for _, r := range target {
		in[r] = true
	}

	shared := []string{}
	seen := make(map[string]bool)
	for _, r := range guess {
		if in[r] && !seen[r] {
			seen[r] = true
			shared = append(shared, r)
		}
	}

	return shared
}

// Similarity is the rounded Jaccard percentage of two clue sets; two empty
// sets count as a full match.
func Similarity(a, b []string) int {
	union := make(map[string]bool, len(a)+len(b))
	for _, r := range a {
		union[r] = true
	}
	for _, r := range b {
		union[r] = true
	}

	if len(union) == 0 {
		return 100
	}

	shared := len(sharedRoles(a, b))

	return int(math.Round(100 * float64(shared) / float64(len(union))))
}
