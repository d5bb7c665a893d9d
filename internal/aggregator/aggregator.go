// Package aggregator computes leak-free pre-game form aggregates from the
// loaded event tables and joins them into compiled rows. All functions are
// pure over their inputs; the four stat domains may run concurrently.
package aggregator

import (
	"errors"
	"strconv"
)

// ErrDuplicateKey reports a key that appears more than once where a 1:1 join
// is required. It is fatal: picking one of the rows would silently corrupt
// the window.
var ErrDuplicateKey = errors.New("duplicate join key")

// appearanceKey identifies one player's appearance in one game.
type appearanceKey struct {
	gid        string
	team       string
	gameNumber int
	pid        string
}

// teamGameKey identifies one team's side of one game.
type teamGameKey struct {
	gid        string
	team       string
	gameNumber int
}

// seasonPrefix returns the gid prefix selecting games of the given year.
func seasonPrefix(year int) string { return strconv.Itoa(year) }
