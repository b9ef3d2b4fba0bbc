package whodle

import (
	"errors"
	"strconv"
	"testing"
	"time"
)

func poolOf(n int) []TargetItem {
	pool := make([]TargetItem, n)
	for i := range pool {
		pool[i] = TargetItem{Type: ItemText, Content: "msg " + strconv.Itoa(i), AuthorID: "1", MsgID: strconv.Itoa(i)}
	}

	return pool
}

func TestSelectEmptyPool(t *testing.T) {
	if _, err := Select(nil, 1); !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("Select(nil) error = %v, want ErrEmptyPool", err)
	}
}

func TestSelectDeterministic(t *testing.T) {
	pool := poolOf(10)

	first, err := Select(pool, 538935996)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if first.MsgID != "8" {
		t.Fatalf("Select() = %s, want 8", first.MsgID)
	}

	for i := 0; i < 50; i++ {
		again, _ := Select(pool, 538935996)
		if again != first {
			t.Fatalf("run %d picked %s, want %s", i, again.MsgID, first.MsgID)
		}
	}
}

func TestNewPuzzle(t *testing.T) {
	cal := mustCalendar(t)
	ds := testDataset()
	ds.Messages = poolOf(10)

	ny, _ := time.LoadLocation(DefaultZone)
	now := time.Date(2026, 10, 16, 9, 30, 0, 0, ny)

	text, err := NewPuzzle(cal, TextMode, ds, now)
	if err != nil {
		t.Fatalf("NewPuzzle(text) error = %v", err)
	}
	if text.Target.MsgID != "8" || text.Number != 320 || text.Seed != 538935996 {
		t.Fatalf("text puzzle = %+v", text)
	}
	if text.Author.ID != "1" || text.Date != "10/16/2026" || text.Display != "Oct 16, 2026" {
		t.Fatalf("text puzzle = %+v", text)
	}

	image, err := NewPuzzle(cal, ImageMode, ds, now)
	if err != nil {
		t.Fatalf("NewPuzzle(image) error = %v", err)
	}
	if image.Seed != text.Seed+2 || image.Target.MsgID != "5" {
		t.Fatalf("image puzzle = %+v", image)
	}

	// Order of derivation does not matter.
	n := cal.PuzzleNumber(now)
	later, _ := NewPuzzle(cal, TextMode, ds, now.Add(10*time.Hour))
	if later.Number != n || later.Target != text.Target {
		t.Fatalf("later puzzle = %+v, want number %d target %s", later, n, text.Target.MsgID)
	}
}

func TestNewPuzzleEmptyPool(t *testing.T) {
	ds := testDataset()
	ds.Messages = nil

	if _, err := NewPuzzle(mustCalendar(t), TextMode, ds, time.Now()); !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("NewPuzzle() error = %v, want ErrEmptyPool", err)
	}
}
