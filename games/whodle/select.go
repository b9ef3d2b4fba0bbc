/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package whodle

import (
	"errors"
	"fmt"
	"time"
)

var ErrEmptyPool = errors.New("message pool is empty")

// Select draws the day's target from pool with a single mulberry32 draw.
func Select(pool []TargetItem, seed uint32) (TargetItem, error) {
	if len(pool) == 0 {
		return TargetItem{}, ErrEmptyPool
	}

	return pool[NewMulberry32(seed).Intn(len(pool))], nil
}

// Puzzle is one (mode, day) instance: the chosen target and the inputs that chose it.
type Puzzle struct {
	Mode    Mode
	Number  int
	Seed    uint32
	Date    string
	Display string
	Target  TargetItem
	Author  User
}

func NewPuzzle(cal *Calendar, mode Mode, ds *Dataset, now time.Time) (*Puzzle, error) {
	seed := cal.Seed(now) + mode.SeedOffset

	target, err := Select(ds.Messages, seed)
	if err != nil {
		return nil, fmt.Errorf("select %s puzzle: %w", mode.Name, err)
	}

	author, ok := ds.Users[target.AuthorID]
	if !ok {
		return nil, fmt.Errorf("select %s puzzle: %w: %s", mode.Name, ErrUnknownUser, target.AuthorID)
	}

	return &Puzzle{
		Mode:    mode,
		Number:  cal.PuzzleNumber(now),
		Seed:    seed,
		Date:    cal.DateString(now),
		Display: cal.DisplayDate(now),
		Target:  target,
		Author:  author,
	}, nil
}
