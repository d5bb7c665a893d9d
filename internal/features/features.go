// Package features derives normalized rate metrics from compiled form rows.
// Every rate with a zero denominator is NaN, the undefined marker, never
// zero and never a panic; NaN renders as "—" in reports.
package features

import (
	"math"

	"github.com/pable/go-bb-form/internal/model"
)

// rate divides num by den, mapping division by zero and ±Inf to NaN.
func rate(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	v := num / den
	if math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

// gidHome addresses one side of one game for the log5 self-join.
type gidHome struct {
	gid  string
	home int
}

// Derive computes one feature row per compiled row. Log5 joins each row with
// the opposing side of the same gid (the opposite home flag); anything other
// than exactly one opposing row yields NaN instead of a join explosion.
func Derive(rows []model.CompiledRow) []model.FeatureRow {
	winRates := make(map[gidHome]float64, len(rows))
	sides := make(map[gidHome]int, len(rows))
	for _, r := range rows {
		k := gidHome{r.GID, r.Home}
		sides[k]++
		winRates[k] = rate(float64(r.Wins), float64(r.Games))
	}

	out := make([]model.FeatureRow, 0, len(rows))
	for _, r := range rows {
		f := model.FeatureRow{
			GID:        r.GID,
			Team:       r.Team,
			GameNumber: r.GameNumber,
			Home:       r.Home,
			Spread:     r.Spread,
			Starts:     r.Starts,
			DefGames:   r.DefenseGames,
		}
		if r.Spread > 0 {
			f.Win = 1
		}

		// Recent record.
		a := rate(float64(r.Wins), float64(r.Games))
		f.WinRate = a
		ratio := rate(float64(r.Allowed), float64(r.Scored))
		f.ExpectedWin = rate(1, 1+ratio*ratio)
		f.Log5 = log5(a, r, winRates, sides)
		f.LOBRate = rate(float64(r.LOB), float64(r.Games))
		f.WinVsRate = rate(float64(r.VsWins), float64(r.VsGames))
		f.ScoredVsRate = rate(float64(r.VsScored), float64(r.VsScored+r.VsAllowed))

		// Defense.
		f.ErrorRate = rate(float64(r.Defense.E), float64(r.DefenseGames))

		// Batting.
		b := r.Batting
		ab := b.O + b.E + b.K + b.S + b.D + b.T + b.HR
		pa := ab + b.BB + b.HBP + b.SH + b.SF + b.I
		hits := b.S + b.D + b.T + b.HR
		f.BA = rate(float64(hits), float64(ab))
		f.SLG = rate(float64(b.S+2*b.D+3*b.T+4*b.HR), float64(ab))
		f.OBP = rate(float64(hits+b.BB+b.HBP), float64(ab+b.BB+b.HBP+b.SF))
		f.OPS = f.SLG + f.OBP
		f.RBIRate = rate(float64(b.RBI), float64(ab))
		f.BBRate = rate(float64(b.BB), float64(pa))

		// Pitching.
		p := r.Pitching
		f.ERA = rate(float64(p.ER*27), float64(p.IP))
		f.KRate = rate(float64(p.K), float64(p.BF))
		f.PitcherBBRate = rate(float64(p.BB), float64(p.BF))
		f.TotalBaseRate = rate(float64(p.S+2*p.D+3*p.T+4*p.HR), float64(p.BF))
		f.HitsAllowedRate = rate(float64(p.S+p.D+p.T+p.HR), float64(p.BF))

		out = append(out, f)
	}
	return out
}

// log5 combines a team's win rate with the opposing team's for the same gid:
// a(1−b) / (a(1−b) + b(1−a)).
func log5(a float64, r model.CompiledRow, winRates map[gidHome]float64, sides map[gidHome]int) float64 {
	opp := gidHome{r.GID, 1 - r.Home}
	if sides[opp] != 1 || sides[gidHome{r.GID, r.Home}] != 1 {
		return math.NaN()
	}
	b := winRates[opp]
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.NaN()
	}
	return rate(a*(1-b), a*(1-b)+b*(1-a))
}
