/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package whodle

import (
	"fmt"
	"time"
	_ "time/tzdata"
	"unicode/utf16"
)

const (
	DefaultZone  = "America/New_York"
	DefaultEpoch = "2025-12-01"

	epochLayout   = "2006-01-02"
	seedLayout    = "1/2/2006"
	displayLayout = "Jan 2, 2006"
)

// Calendar pins puzzle days to a single reference time zone, so every
// player sees the same puzzle regardless of their local clock.
type Calendar struct {
	loc   *time.Location
	epoch time.Time
}

func NewCalendar(zone, epoch string) (*Calendar, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", zone, err)
	}

	start, err := time.Parse(epochLayout, epoch)
	if err != nil {
		return nil, fmt.Errorf("parse epoch %q: %w", epoch, err)
	}

	return &Calendar{loc: loc, epoch: start}, nil
}

// Location is the reference zone that decides when the day rolls over.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// DateString renders the calendar day of t as an en-US numeric date (M/D/YYYY).
func (c *Calendar) DateString(t time.Time) string {
	return t.In(c.loc).Format(seedLayout)
}

func (c *Calendar) DisplayDate(t time.Time) string {
	return t.In(c.loc).Format(displayLayout)
}

// Seed is stable for the whole calendar day in the reference zone.
func (c *Calendar) Seed(t time.Time) uint32 {
	return HashDate(c.DateString(t))
}

// PuzzleNumber counts days since the epoch, starting at 1.
func (c *Calendar) PuzzleNumber(t time.Time) int {
	y, m, d := t.In(c.loc).Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	n := int(day.Sub(c.epoch).Hours()/24) + 1
	if n < 1 {
		return 1
	}

	return n
}

// HashDate is a 31-multiplier rolling hash over UTF-16 code units,
// wrapping at signed 32 bits, with the absolute value taken at the end.
func HashDate(s string) uint32 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(u)
	}

	if h < 0 {
		return uint32(-int64(h))
	}

	return uint32(h)
}
