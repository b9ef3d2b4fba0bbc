/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package whodle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
)

var ErrUnknownUser = errors.New("unknown user")

const deepLinkTemplate = "https://discord.com/channels/%s/%s/%s"

type ItemType string

const (
	ItemText  ItemType = "text"
	ItemImage ItemType = "image"
)

// User is a roster member. Lower RankVal means higher status.
type User struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Nickname    string   `json:"nickname"`
	DisplayName string   `json:"display_name"`
	Avatar      string   `json:"avatar"`
	RankVal     int      `json:"rank_val"`
	JoinedAt    float64  `json:"joined_at"`
	Clues       []string `json:"clues"`
}

type Difficulty struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

type TargetItem struct {
	Type       ItemType    `json:"type"`
	Content    string      `json:"content"`
	AuthorID   string      `json:"author_id"`
	ChannelID  string      `json:"channel_id"`
	MsgID      string      `json:"msg_id"`
	Difficulty *Difficulty `json:"difficulty,omitempty"`
	ImposterID string      `json:"imposter_id,omitempty"`
}

type Meta struct {
	GuildID     string `json:"guild_id"`
	GeneratedAt string `json:"generated_at,omitempty"`
}

// Dataset is the immutable roster and message pool for one mode.
type Dataset struct {
	Meta     Meta            `json:"meta"`
	Users    map[string]User `json:"users"`
	Messages []TargetItem    `json:"messages"`
}

// ParseDataset decodes and validates a dataset document. Clue lists are
// deduplicated so they can be treated as sets.
func ParseDataset(r io.Reader) (*Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	if len(ds.Users) == 0 {
		return nil, errors.New("dataset has no users")
	}

	for id, u := range ds.Users {
		if u.ID == "" {
			u.ID = id
		}
		if u.ID != id {
			return nil, fmt.Errorf("user keyed %q has id %q", id, u.ID)
		}
		u.Clues = dedupe(u.Clues)
		ds.Users[id] = u
	}

	for i, m := range ds.Messages {
		if _, ok := ds.Users[m.AuthorID]; !ok {
			return nil, fmt.Errorf("message %d: %w: %s", i, ErrUnknownUser, m.AuthorID)
		}
	}

	return &ds, nil
}

// LoadDataset reads a dataset from a local path or an http(s) URL.
func LoadDataset(ctx context.Context, client *http.Client, src string) (*Dataset, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		f, err := os.Open(src)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		return ParseDataset(f)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", src, resp.Status)
	}

	return ParseDataset(resp.Body)
}

// DeepLink points at the original message.
func (d *Dataset) DeepLink(item TargetItem) string {
	return fmt.Sprintf(deepLinkTemplate, d.Meta.GuildID, item.ChannelID, item.MsgID)
}

var mentionPattern = regexp.MustCompile(`<@!?(\d+)>`)

// FormatMentions replaces raw user mentions with @nickname.
func (d *Dataset) FormatMentions(content string) string {
	return mentionPattern.ReplaceAllStringFunc(content, func(m string) string {
		id := mentionPattern.FindStringSubmatch(m)[1]
		if u, ok := d.Users[id]; ok {
			return "@" + u.Nickname
		}
		return "@User"
	})
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}

	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}

	return out
}
