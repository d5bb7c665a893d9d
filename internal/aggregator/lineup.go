package aggregator

import (
	"fmt"
	"strings"

	"github.com/pable/go-bb-form/internal/model"
	"github.com/pable/go-bb-form/internal/window"
)

// Batting computes team batting form for every target-year game. This is not
// a window over team events: each of the nine starters contributes the sum of
// their own last ≤period appearances, regardless of how many games the team
// has played, and the nine per-player windows are summed into one row. The
// sum is order-independent, so batting-order permutations do not matter, and
// no count column is emitted.
func Batting(lineups []model.Lineup, games []model.BattingGame, year, period int) ([]model.BattingForm, error) {
	byKey := make(map[appearanceKey]model.BattingStats, len(games))
	for _, g := range games {
		k := appearanceKey{g.GID, g.Team, g.GameNumber, g.PlayerID}
		if _, dup := byKey[k]; dup {
			return nil, fmt.Errorf("batting %s %s game %d pid %s: %w", g.GID, g.Team, g.GameNumber, g.PlayerID, ErrDuplicateKey)
		}
		byKey[k] = g.Stats
	}

	ix := window.NewIndex[string, model.BattingStats]()
	seen := make(map[teamGameKey]struct{}, len(lineups))
	for _, l := range lineups {
		k := teamGameKey{l.GID, l.Team, l.GameNumber}
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("lineup %s %s game %d: %w", l.GID, l.Team, l.GameNumber, ErrDuplicateKey)
		}
		seen[k] = struct{}{}
		for _, pid := range l.Batters {
			ix.Add(pid, model.GameDate(l.GID), l.GameNumber, byKey[appearanceKey{l.GID, l.Team, l.GameNumber, pid}])
		}
	}

	prefix := seasonPrefix(year)
	var out []model.BattingForm
	for _, l := range lineups {
		if !strings.HasPrefix(l.GID, prefix) {
			continue
		}
		form := model.BattingForm{GID: l.GID, Team: l.Team, GameNumber: l.GameNumber}
		for _, pid := range l.Batters {
			for _, e := range ix.Tail(pid, model.GameDate(l.GID), l.GameNumber, period) {
				form.Stats.Add(e.Stats)
			}
		}
		out = append(out, form)
	}
	return out, nil
}
