package whodle

import (
	"testing"
	"time"
)

func mustCalendar(t *testing.T) *Calendar {
	t.Helper()

	cal, err := NewCalendar(DefaultZone, DefaultEpoch)
	if err != nil {
		t.Fatalf("NewCalendar() error = %v", err)
	}

	return cal
}

func TestHashDate(t *testing.T) {
	cases := []struct {
		date string
		want uint32
	}{
		{"12/1/2025", 1213980723},
		{"1/1/2026", 290868290},
		{"10/16/2026", 538935996},
		{"10/17/2026", 567565147},
	}
	for _, c := range cases {
		if got := HashDate(c.date); got != c.want {
			t.Fatalf("HashDate(%q)=%d, want %d", c.date, got, c.want)
		}
	}
}

func TestSeedStableWithinDay(t *testing.T) {
	cal := mustCalendar(t)
	ny, _ := time.LoadLocation(DefaultZone)

	morning := time.Date(2026, 10, 16, 0, 0, 1, 0, ny)
	night := time.Date(2026, 10, 16, 23, 59, 59, 0, ny)
	// Same instant seen from a client far to the east, already on the 17th locally.
	tokyo := night.In(time.FixedZone("JST", 9*3600))

	want := cal.Seed(morning)
	for _, ts := range []time.Time{night, tokyo} {
		if got := cal.Seed(ts); got != want {
			t.Fatalf("Seed(%v)=%d, want %d", ts, got, want)
		}
	}

	if got := cal.DateString(tokyo); got != "10/16/2026" {
		t.Fatalf("DateString()=%q, want %q", got, "10/16/2026")
	}
}

func TestSeedDiffersAcrossDays(t *testing.T) {
	cal := mustCalendar(t)
	ny, _ := time.LoadLocation(DefaultZone)

	start := time.Date(2025, 12, 1, 12, 0, 0, 0, ny)
	seen := make(map[uint32]string)
	for i := 0; i < 730; i++ {
		day := start.AddDate(0, 0, i)
		seed := cal.Seed(day)
		if prev, ok := seen[seed]; ok {
			t.Fatalf("seed %d repeated on %s and %s", seed, prev, cal.DateString(day))
		}
		seen[seed] = cal.DateString(day)
	}
}

func TestPuzzleNumber(t *testing.T) {
	cal := mustCalendar(t)
	ny, _ := time.LoadLocation(DefaultZone)

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"epoch day", time.Date(2025, 12, 1, 0, 0, 0, 0, ny), 1},
		{"second day", time.Date(2025, 12, 2, 23, 0, 0, 0, ny), 2},
		{"before epoch clamps", time.Date(2025, 6, 1, 12, 0, 0, 0, ny), 1},
		{"across dst change", time.Date(2026, 3, 9, 1, 0, 0, 0, ny), 99},
		{"later", time.Date(2026, 10, 16, 12, 0, 0, 0, ny), 320},
		{"utc still previous day in zone", time.Date(2025, 12, 2, 3, 0, 0, 0, time.UTC), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cal.PuzzleNumber(tt.at); got != tt.want {
				t.Errorf("PuzzleNumber() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewCalendarErrors(t *testing.T) {
	if _, err := NewCalendar("Not/AZone", DefaultEpoch); err == nil {
		t.Error("NewCalendar() with bad zone should fail")
	}
	if _, err := NewCalendar(DefaultZone, "12/01/2025"); err == nil {
		t.Error("NewCalendar() with bad epoch should fail")
	}
}
