package bbstat

import (
	"fmt"

	"github.com/pable/go-bb-form/internal/model"
)

// Lineups returns every team's starting lineup for the season: the starting
// pitcher plus nine batters with their position codes.
func (c *Client) Lineups(year int) ([]model.Lineup, error) {
	t, err := c.get(fmt.Sprintf("lineups/%d", year))
	if err != nil {
		return nil, err
	}
	var out []model.Lineup
	err = t.each(func(s *scanner) error {
		l := model.Lineup{
			GID:        s.str("gid"),
			Team:       s.str("team"),
			Home:       s.num("home"),
			GameNumber: s.num("gameNumber"),
			Pitcher:    s.str("pitcher"),
		}
		for i := 0; i < 9; i++ {
			l.Batters[i] = s.str(fmt.Sprintf("pid%d", i+1))
			l.Positions[i] = s.str(fmt.Sprintf("pos%d", i+1))
		}
		out = append(out, l)
		return nil
	})
	return out, err
}

// PitchingGames returns each starting pitcher's per-game line for the season.
func (c *Client) PitchingGames(year int) ([]model.PitchingGame, error) {
	t, err := c.get(fmt.Sprintf("pitching/player/games/%d", year))
	if err != nil {
		return nil, err
	}
	var out []model.PitchingGame
	err = t.each(func(s *scanner) error {
		out = append(out, model.PitchingGame{
			GID:        s.str("gid"),
			Team:       s.str("team"),
			GameNumber: s.num("gameNumber"),
			PlayerID:   s.str("pid"),
			Stats: model.PitchingStats{
				W: s.num("W"), L: s.num("L"), SV: s.num("SV"),
				R: s.num("R"), ER: s.num("ER"),
				IP: s.num("IP"), BF: s.num("BF"),
				S: s.num("S"), D: s.num("D"), T: s.num("T"), HR: s.num("HR"),
				BB: s.num("BB"), HBP: s.num("HBP"), IBB: s.num("IBB"), K: s.num("K"),
				BK: s.num("BK"), WP: s.num("WP"), PO: s.num("PO"), GDP: s.num("GDP"),
			},
		})
		return nil
	})
	return out, err
}

// BattingGames returns each starting batter's per-game line for the season.
func (c *Client) BattingGames(year int) ([]model.BattingGame, error) {
	t, err := c.get(fmt.Sprintf("batting/player/games/%d", year))
	if err != nil {
		return nil, err
	}
	var out []model.BattingGame
	err = t.each(func(s *scanner) error {
		out = append(out, model.BattingGame{
			GID:        s.str("gid"),
			Team:       s.str("team"),
			GameNumber: s.num("gameNumber"),
			PlayerID:   s.str("pid"),
			Stats: model.BattingStats{
				O: s.num("O"), E: s.num("E"),
				S: s.num("S"), D: s.num("D"), T: s.num("T"), HR: s.num("HR"),
				BB: s.num("BB"), IBB: s.num("IBB"), HBP: s.num("HBP"), K: s.num("K"),
				I: s.num("I"), SH: s.num("SH"), SF: s.num("SF"), GDP: s.num("GDP"),
				R: s.num("R"), RBI: s.num("RBI"),
				SB: s.num("SB"), CS: s.num("CS"), PO: s.num("PO"),
			},
		})
		return nil
	})
	return out, err
}

// DefenseGames returns each team's per-game defensive line for the season.
func (c *Client) DefenseGames(year int) ([]model.DefenseGame, error) {
	t, err := c.get(fmt.Sprintf("defense/team/games/%d", year))
	if err != nil {
		return nil, err
	}
	var out []model.DefenseGame
	err = t.each(func(s *scanner) error {
		out = append(out, model.DefenseGame{
			GID:        s.str("gid"),
			Team:       s.str("team"),
			GameNumber: s.num("gameNumber"),
			Stats: model.DefenseStats{
				UR: s.num("UR"), TUR: s.num("TUR"),
				P: s.num("P"), A: s.num("A"), E: s.num("E"), PB: s.num("PB"),
			},
		})
		return nil
	})
	return out, err
}

// Scores returns each team's per-game score record for the season.
func (c *Client) Scores(year int) ([]model.ScoreGame, error) {
	t, err := c.get(fmt.Sprintf("scores/%d", year))
	if err != nil {
		return nil, err
	}
	var out []model.ScoreGame
	err = t.each(func(s *scanner) error {
		out = append(out, model.ScoreGame{
			GID:        s.str("gid"),
			Team:       s.str("team"),
			GameNumber: s.num("gameNumber"),
			Opponent:   s.str("opp"),
			Home:       s.num("home"),
			Score:      s.num("score"),
			OppScore:   s.num("opp_score"),
			LOB:        s.num("lob"),
		})
		return nil
	})
	return out, err
}
