// Package window provides the sliding-window primitive behind every form
// aggregate: per-group chronologically sorted histories answering "the most
// recent n entries strictly before a given game" without ever looking ahead.
package window

import "sort"

// Entry is one dated record in a group's history. Date is the YYYYMMDD game
// date; GameNumber is the team-relative sequence counter used as tiebreak for
// same-day doubleheaders.
type Entry[S any] struct {
	Date       string
	GameNumber int
	Stats      S
}

// Index holds the histories of many groups (teams, players, matchups). Build
// it once with Add, then query with Tail; each group is sorted a single time
// on first query.
type Index[K comparable, S any] struct {
	groups map[K][]Entry[S]
	sorted bool
}

// NewIndex returns an empty index.
func NewIndex[K comparable, S any]() *Index[K, S] {
	return &Index[K, S]{groups: make(map[K][]Entry[S])}
}

// Add appends an entry to key's history. Entries may arrive in any order.
func (ix *Index[K, S]) Add(key K, date string, gameNumber int, stats S) {
	ix.groups[key] = append(ix.groups[key], Entry[S]{Date: date, GameNumber: gameNumber, Stats: stats})
	ix.sorted = false
}

func (ix *Index[K, S]) ensureSorted() {
	if ix.sorted {
		return
	}
	for k := range ix.groups {
		g := ix.groups[k]
		sort.Slice(g, func(i, j int) bool {
			if g[i].Date != g[j].Date {
				return g[i].Date < g[j].Date
			}
			return g[i].GameNumber < g[j].GameNumber
		})
	}
	ix.sorted = true
}

// Tail returns up to n entries from key's history strictly before
// (date, gameNumber), oldest first. An entry is strictly before when its date
// is earlier, or its date is equal and its game number lower; an entry on
// the same date with an equal or higher game number never qualifies. Fewer
// than n prior entries yield the short window as-is.
func (ix *Index[K, S]) Tail(key K, date string, gameNumber, n int) []Entry[S] {
	if n < 1 {
		return nil
	}
	ix.ensureSorted()
	g := ix.groups[key]
	// First position not strictly before the target.
	pos := sort.Search(len(g), func(i int) bool {
		if g[i].Date != date {
			return g[i].Date > date
		}
		return g[i].GameNumber >= gameNumber
	})
	lo := pos - n
	if lo < 0 {
		lo = 0
	}
	return g[lo:pos]
}
