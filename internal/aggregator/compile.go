package aggregator

import (
	"fmt"
	"sort"

	"github.com/pable/go-bb-form/internal/model"
)

// Compile inner-joins the four aggregate streams on (gid, team, gameNumber).
// A key missing from any stream drops the whole (game, team) row; the number
// of dropped rows is returned for diagnosability. A key duplicated within a
// stream is fatal. Rows come back ordered by gid then home flag, so repeated
// compilations of the same inputs are byte-identical.
func Compile(scores []model.ScoreForm, defense []model.DefenseForm, pitching []model.PitchingForm, batting []model.BattingForm) ([]model.CompiledRow, int, error) {
	defenseByKey := make(map[teamGameKey]model.DefenseForm, len(defense))
	for _, d := range defense {
		k := teamGameKey{d.GID, d.Team, d.GameNumber}
		if _, dup := defenseByKey[k]; dup {
			return nil, 0, fmt.Errorf("defense aggregate %s %s game %d: %w", d.GID, d.Team, d.GameNumber, ErrDuplicateKey)
		}
		defenseByKey[k] = d
	}
	pitchingByKey := make(map[teamGameKey]model.PitchingForm, len(pitching))
	for _, p := range pitching {
		k := teamGameKey{p.GID, p.Team, p.GameNumber}
		if _, dup := pitchingByKey[k]; dup {
			return nil, 0, fmt.Errorf("pitching aggregate %s %s game %d: %w", p.GID, p.Team, p.GameNumber, ErrDuplicateKey)
		}
		pitchingByKey[k] = p
	}
	battingByKey := make(map[teamGameKey]model.BattingForm, len(batting))
	for _, b := range batting {
		k := teamGameKey{b.GID, b.Team, b.GameNumber}
		if _, dup := battingByKey[k]; dup {
			return nil, 0, fmt.Errorf("batting aggregate %s %s game %d: %w", b.GID, b.Team, b.GameNumber, ErrDuplicateKey)
		}
		battingByKey[k] = b
	}

	seen := make(map[teamGameKey]struct{}, len(scores))
	var rows []model.CompiledRow
	dropped := 0
	for _, s := range scores {
		k := teamGameKey{s.GID, s.Team, s.GameNumber}
		if _, dup := seen[k]; dup {
			return nil, 0, fmt.Errorf("score aggregate %s %s game %d: %w", s.GID, s.Team, s.GameNumber, ErrDuplicateKey)
		}
		seen[k] = struct{}{}

		d, okD := defenseByKey[k]
		p, okP := pitchingByKey[k]
		b, okB := battingByKey[k]
		if !okD || !okP || !okB {
			dropped++
			continue
		}

		rows = append(rows, model.CompiledRow{
			GID:        s.GID,
			Team:       s.Team,
			GameNumber: s.GameNumber,

			Opponent: s.Opponent,
			Home:     s.Home,
			Spread:   s.Spread,

			Games:   s.Games,
			Wins:    s.Wins,
			Scored:  s.Scored,
			Allowed: s.Allowed,
			LOB:     s.LOB,

			VsGames:   s.VsGames,
			VsWins:    s.VsWins,
			VsScored:  s.VsScored,
			VsAllowed: s.VsAllowed,

			DefenseGames: d.Games,
			Defense:      d.Stats,

			PitcherID: p.PlayerID,
			Starts:    p.Starts,
			Pitching:  p.Stats,

			Batting: b.Stats,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].GID != rows[j].GID {
			return rows[i].GID < rows[j].GID
		}
		return rows[i].Home < rows[j].Home
	})
	return rows, dropped, nil
}
