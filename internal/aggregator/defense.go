package aggregator

import (
	"fmt"

	"github.com/pable/go-bb-form/internal/model"
	"github.com/pable/go-bb-form/internal/window"
)

// Defense computes each team's windowed defensive form. The source serves
// defense lines for the target season only, so early-season windows are
// shorter here than in the other stat domains; every input row yields an
// output row.
func Defense(games []model.DefenseGame, period int) ([]model.DefenseForm, error) {
	ix := window.NewIndex[string, model.DefenseStats]()
	seen := make(map[teamGameKey]struct{}, len(games))
	for _, g := range games {
		k := teamGameKey{g.GID, g.Team, g.GameNumber}
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("defense %s %s game %d: %w", g.GID, g.Team, g.GameNumber, ErrDuplicateKey)
		}
		seen[k] = struct{}{}
		ix.Add(g.Team, model.GameDate(g.GID), g.GameNumber, g.Stats)
	}

	var out []model.DefenseForm
	for _, g := range games {
		past := ix.Tail(g.Team, model.GameDate(g.GID), g.GameNumber, period)
		form := model.DefenseForm{
			GID:        g.GID,
			Team:       g.Team,
			GameNumber: g.GameNumber,
			Games:      len(past),
		}
		for _, e := range past {
			form.Stats.Add(e.Stats)
		}
		out = append(out, form)
	}
	return out, nil
}
