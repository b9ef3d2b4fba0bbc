/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package whodle

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	matchExact = iota
	matchPrefix
	matchContains
	matchNone
)

func relevance(u User, query string) int {
	best := matchNone
	for _, name := range []string{u.Username, u.Nickname, u.DisplayName} {
		name = strings.ToLower(name)
		switch {
		case name == query:
			return matchExact
		case strings.HasPrefix(name, query):
			best = min(best, matchPrefix)
		case strings.Contains(name, query):
			best = min(best, matchContains)
		}
	}

	return best
}

// Search returns users whose username, nickname or display name contains
// query (case-insensitive), exact matches first, then prefixes, then
// substrings. Ties go to the shorter nickname.
func Search(users map[string]User, query string) []User {
	query = strings.ToLower(query)
	if query == "" {
		return nil
	}

	type scored struct {
		user  User
		score int
	}

	matches := make([]scored, 0, len(users))
	for _, u := range users {
		if s := relevance(u, query); s != matchNone {
			matches = append(matches, scored{user: u, score: s})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.score != b.score {
			return a.score < b.score
		}

		la, lb := utf8.RuneCountInString(a.user.Nickname), utf8.RuneCountInString(b.user.Nickname)
		if la != lb {
			return la < lb
		}

		return a.user.ID < b.user.ID
	})

	out := make([]User, len(matches))
	for i, m := range matches {
		out[i] = m.user
	}

	return out
}
