package aggregator

import (
	"fmt"
	"strings"

	"github.com/pable/go-bb-form/internal/model"
	"github.com/pable/go-bb-form/internal/window"
)

// Pitching computes each starting pitcher's windowed form for every
// target-year game. Lineups and pitching games should span the prior and
// target seasons so early-season starts have look-back history; only
// target-year rows are emitted. The window is keyed by the pitcher's own
// identity: only that pitcher's prior starts count, never the team's.
func Pitching(lineups []model.Lineup, games []model.PitchingGame, year, period int) ([]model.PitchingForm, error) {
	byKey := make(map[appearanceKey]model.PitchingStats, len(games))
	for _, g := range games {
		k := appearanceKey{g.GID, g.Team, g.GameNumber, g.PlayerID}
		if _, dup := byKey[k]; dup {
			return nil, fmt.Errorf("pitching %s %s game %d pid %s: %w", g.GID, g.Team, g.GameNumber, g.PlayerID, ErrDuplicateKey)
		}
		byKey[k] = g.Stats
	}

	// Every designated starter counts as an appearance; a missing game log
	// contributes a zero line, not a missing entry.
	ix := window.NewIndex[string, model.PitchingStats]()
	seen := make(map[teamGameKey]struct{}, len(lineups))
	for _, l := range lineups {
		k := teamGameKey{l.GID, l.Team, l.GameNumber}
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("lineup %s %s game %d: %w", l.GID, l.Team, l.GameNumber, ErrDuplicateKey)
		}
		seen[k] = struct{}{}
		ix.Add(l.Pitcher, model.GameDate(l.GID), l.GameNumber, byKey[appearanceKey{l.GID, l.Team, l.GameNumber, l.Pitcher}])
	}

	prefix := seasonPrefix(year)
	var out []model.PitchingForm
	for _, l := range lineups {
		if !strings.HasPrefix(l.GID, prefix) {
			continue
		}
		past := ix.Tail(l.Pitcher, model.GameDate(l.GID), l.GameNumber, period)
		form := model.PitchingForm{
			GID:        l.GID,
			Team:       l.Team,
			GameNumber: l.GameNumber,
			PlayerID:   l.Pitcher,
			Starts:     len(past),
		}
		for _, e := range past {
			form.Stats.Add(e.Stats)
		}
		out = append(out, form)
	}
	return out, nil
}
