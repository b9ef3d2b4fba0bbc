package whodle

import (
	"context"
	"sync"
)

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
	puts int
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}

	return append([]byte(nil), b...), nil
}

func (m *memStore) Put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), data...)
	m.puts++

	return nil
}

// fixedPick always chooses the first candidate.
func fixedPick(int) int { return 0 }

func testDataset() *Dataset {
	users := map[string]User{
		"1": {ID: "1", Username: "alpha", Nickname: "Alpha", DisplayName: "Al", RankVal: 0, JoinedAt: 100, Clues: []string{"x", "y"}},
		"2": {ID: "2", Username: "bravo", Nickname: "Bravo", DisplayName: "B", RankVal: 2, JoinedAt: 50, Clues: []string{"x"}},
		"3": {ID: "3", Username: "charlie", Nickname: "Charlie", DisplayName: "Chuck", RankVal: 5, JoinedAt: 200, Clues: []string{"y", "x"}},
		"4": {ID: "4", Username: "delta", Nickname: "Delta", DisplayName: "D", RankVal: 0, JoinedAt: 100, Clues: []string{}},
		"5": {ID: "5", Username: "echo", Nickname: "Echo", DisplayName: "E", RankVal: 1, JoinedAt: 300, Clues: []string{"z"}},
		"6": {ID: "6", Username: "foxtrot", Nickname: "Foxtrot", DisplayName: "F", RankVal: 3, JoinedAt: 10, Clues: []string{"x", "y"}},
	}

	return &Dataset{
		Meta:  Meta{GuildID: "999"},
		Users: users,
		Messages: []TargetItem{
			{Type: ItemText, Content: "hello <@2> and <@!77>", AuthorID: "1", ChannelID: "10", MsgID: "100"},
		},
	}
}

func testPuzzle(ds *Dataset) *Puzzle {
	return &Puzzle{
		Mode:   TextMode,
		Number: 7,
		Seed:   1234,
		Target: ds.Messages[0],
		Author: ds.Users[ds.Messages[0].AuthorID],
	}
}
