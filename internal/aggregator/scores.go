package aggregator

import (
	"fmt"
	"strings"

	"github.com/pable/go-bb-form/internal/model"
	"github.com/pable/go-bb-form/internal/window"
)

// matchupKey identifies one team's history against one specific opponent.
type matchupKey struct {
	team string
	opp  string
}

// Scores computes two parallel windows for every target-year game: the
// team's last ≤period games against anyone, and its last ≤period games
// against this specific opponent. Head-to-head games are sparser, so that
// window may reach further back in calendar time than the general one.
// Spread and Home pass through as labels.
func Scores(games []model.ScoreGame, year, period int) ([]model.ScoreForm, error) {
	general := window.NewIndex[string, model.ScoreLine]()
	headToHead := window.NewIndex[matchupKey, model.ScoreLine]()
	seen := make(map[teamGameKey]struct{}, len(games))
	for _, g := range games {
		k := teamGameKey{g.GID, g.Team, g.GameNumber}
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("score %s %s game %d: %w", g.GID, g.Team, g.GameNumber, ErrDuplicateKey)
		}
		seen[k] = struct{}{}
		line := g.Line()
		general.Add(g.Team, model.GameDate(g.GID), g.GameNumber, line)
		headToHead.Add(matchupKey{g.Team, g.Opponent}, model.GameDate(g.GID), g.GameNumber, line)
	}

	prefix := seasonPrefix(year)
	var out []model.ScoreForm
	for _, g := range games {
		if !strings.HasPrefix(g.GID, prefix) {
			continue
		}
		date := model.GameDate(g.GID)
		form := model.ScoreForm{
			GID:        g.GID,
			Team:       g.Team,
			GameNumber: g.GameNumber,
			Opponent:   g.Opponent,
			Home:       g.Home,
			Spread:     g.Spread(),
		}

		prev := general.Tail(g.Team, date, g.GameNumber, period)
		form.Games = len(prev)
		for _, e := range prev {
			form.Wins += e.Stats.Win
			form.Scored += e.Stats.Scored
			form.Allowed += e.Stats.Allowed
			form.LOB += e.Stats.LOB
		}

		prevVs := headToHead.Tail(matchupKey{g.Team, g.Opponent}, date, g.GameNumber, period)
		form.VsGames = len(prevVs)
		for _, e := range prevVs {
			form.VsWins += e.Stats.Win
			form.VsScored += e.Stats.Scored
			form.VsAllowed += e.Stats.Allowed
		}

		out = append(out, form)
	}
	return out, nil
}
