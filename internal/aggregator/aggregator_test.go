package aggregator

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/pable/go-bb-form/internal/model"
)

// testLineup builds a lineup row. Unnamed batting slots are filled with
// team-scoped placeholder ids so histories never collide across teams.
func testLineup(gid, team string, home, n int, pitcher string, batters ...string) model.Lineup {
	l := model.Lineup{GID: gid, Team: team, Home: home, GameNumber: n, Pitcher: pitcher}
	for i := range l.Batters {
		if i < len(batters) {
			l.Batters[i] = batters[i]
		} else {
			l.Batters[i] = fmt.Sprintf("%s-slot%d", team, i+1)
		}
	}
	return l
}

func testScore(gid, team, opp string, n, home, score, oppScore, lob int) model.ScoreGame {
	return model.ScoreGame{
		GID: gid, Team: team, GameNumber: n, Opponent: opp,
		Home: home, Score: score, OppScore: oppScore, LOB: lob,
	}
}

// findScoreForm returns the form row for (gid, team), failing the test if absent.
func findScoreForm(t *testing.T, forms []model.ScoreForm, gid, team string) model.ScoreForm {
	t.Helper()
	for _, f := range forms {
		if f.GID == gid && f.Team == team {
			return f
		}
	}
	t.Fatalf("no score form for %s %s", gid, team)
	return model.ScoreForm{}
}

// ---- Score/matchup aggregator ----

// Three prior games (scored 4,2,6; allowed 3,1,5): period 5 sees all three,
// period 2 only the most recent two.
func TestScores_GeneralWindow(t *testing.T) {
	games := []model.ScoreGame{
		testScore("202104010", "ATL", "MIA", 1, 1, 4, 3, 6),
		testScore("202104030", "ATL", "PHI", 2, 0, 2, 1, 4),
		testScore("202104050", "ATL", "WAS", 3, 1, 6, 5, 8),
		testScore("202104070", "ATL", "NYN", 4, 1, 0, 2, 5),
	}

	forms, err := Scores(games, 2021, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := findScoreForm(t, forms, "202104070", "ATL")
	if f.Games != 3 || f.Scored != 12 || f.Allowed != 9 {
		t.Errorf("period 5: expected count=3 scored=12 allowed=9, got count=%d scored=%d allowed=%d", f.Games, f.Scored, f.Allowed)
	}
	if f.Wins != 3 {
		t.Errorf("period 5: expected 3 wins, got %d", f.Wins)
	}
	if f.LOB != 18 {
		t.Errorf("period 5: expected lob=18, got %d", f.LOB)
	}

	forms, err = Scores(games, 2021, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f = findScoreForm(t, forms, "202104070", "ATL")
	if f.Games != 2 || f.Scored != 8 || f.Allowed != 6 {
		t.Errorf("period 2: expected count=2 scored=8 allowed=6, got count=%d scored=%d allowed=%d", f.Games, f.Scored, f.Allowed)
	}
}

// The head-to-head window is keyed by (team, opponent) and filters
// independently of the general window.
func TestScores_HeadToHeadWindow(t *testing.T) {
	games := []model.ScoreGame{
		testScore("202104010", "ATL", "NYN", 1, 1, 7, 2, 6), // vs NYN, win
		testScore("202104030", "ATL", "PHI", 2, 0, 2, 3, 4), // other opponent
		testScore("202104050", "ATL", "NYN", 3, 1, 1, 4, 8), // vs NYN, loss
		testScore("202104070", "ATL", "NYN", 4, 1, 0, 0, 0),
	}

	forms, err := Scores(games, 2021, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := findScoreForm(t, forms, "202104070", "ATL")
	if f.Games != 3 {
		t.Errorf("general window: expected 3 games, got %d", f.Games)
	}
	if f.VsGames != 2 || f.VsWins != 1 || f.VsScored != 8 || f.VsAllowed != 6 {
		t.Errorf("head-to-head: expected count=2 wins=1 scored=8 allowed=6, got count=%d wins=%d scored=%d allowed=%d",
			f.VsGames, f.VsWins, f.VsScored, f.VsAllowed)
	}
}

// Prior-season games feed the window; only target-season rows are emitted.
func TestScores_PriorSeasonLookback(t *testing.T) {
	games := []model.ScoreGame{
		testScore("202009250", "ATL", "MIA", 58, 1, 9, 1, 3),
		testScore("202104010", "ATL", "PHI", 1, 0, 2, 5, 7),
	}

	forms, err := Scores(games, 2021, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forms) != 1 {
		t.Fatalf("expected only the target-season row, got %d rows", len(forms))
	}
	f := forms[0]
	if f.Games != 1 || f.Scored != 9 || f.Wins != 1 {
		t.Errorf("expected the 2020 game in the window: count=%d scored=%d wins=%d", f.Games, f.Scored, f.Wins)
	}
}

// Recomputing over the same inputs must yield identical output.
func TestScores_Idempotent(t *testing.T) {
	games := []model.ScoreGame{
		testScore("202104010", "ATL", "MIA", 1, 1, 4, 3, 6),
		testScore("202104030", "ATL", "PHI", 2, 0, 2, 1, 4),
		testScore("202104050", "ATL", "WAS", 3, 1, 6, 5, 8),
	}
	a, err := Scores(games, 2021, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Scores(games, 2021, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("recomputation produced different output")
	}
}

func TestScores_DuplicateKeyFatal(t *testing.T) {
	games := []model.ScoreGame{
		testScore("202104010", "ATL", "MIA", 1, 1, 4, 3, 6),
		testScore("202104010", "ATL", "MIA", 1, 1, 4, 3, 6),
	}
	_, err := Scores(games, 2021, 5)
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

// ---- Starter aggregator ----

// A pitcher's first career start across both ingested seasons: zero count,
// zero stat vector.
func TestPitching_FirstStart(t *testing.T) {
	lineups := []model.Lineup{
		testLineup("202104010", "NYA", 1, 1, "rookie01"),
	}
	forms, err := Pitching(lineups, nil, 2021, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forms) != 1 {
		t.Fatalf("expected 1 form row, got %d", len(forms))
	}
	f := forms[0]
	if f.Starts != 0 {
		t.Errorf("expected pastStartCount=0, got %d", f.Starts)
	}
	if f.Stats != (model.PitchingStats{}) {
		t.Errorf("expected all-zero stat vector, got %+v", f.Stats)
	}
}

// Only the starter's own prior starts count, capped at the period, with
// prior-season starts included.
func TestPitching_OwnHistoryWindow(t *testing.T) {
	lineups := []model.Lineup{
		testLineup("202009200", "NYA", 1, 55, "ace00001"), // prior season
		testLineup("202104010", "NYA", 1, 1, "ace00001"),
		testLineup("202104020", "NYA", 0, 2, "other001"), // different starter
		testLineup("202104060", "NYA", 1, 3, "ace00001"),
	}
	games := []model.PitchingGame{
		{GID: "202009200", Team: "NYA", GameNumber: 55, PlayerID: "ace00001", Stats: model.PitchingStats{K: 10, IP: 21, BF: 27}},
		{GID: "202104010", Team: "NYA", GameNumber: 1, PlayerID: "ace00001", Stats: model.PitchingStats{K: 7, IP: 18, BF: 24}},
		{GID: "202104020", Team: "NYA", GameNumber: 2, PlayerID: "other001", Stats: model.PitchingStats{K: 99}},
	}

	forms, err := Pitching(lineups, games, 2021, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var target model.PitchingForm
	for _, f := range forms {
		if f.GID == "202104060" {
			target = f
		}
	}
	if target.Starts != 2 {
		t.Fatalf("expected 2 prior starts, got %d", target.Starts)
	}
	if target.Stats.K != 17 || target.Stats.IP != 39 {
		t.Errorf("expected K=17 IP=39 from own starts only, got K=%d IP=%d", target.Stats.K, target.Stats.IP)
	}

	// Period 1 keeps only the most recent start.
	forms, err = Pitching(lineups, games, 2021, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, f := range forms {
		if f.GID == "202104060" && (f.Starts != 1 || f.Stats.K != 7) {
			t.Errorf("period 1: expected the 20210401 start only (K=7), got starts=%d K=%d", f.Starts, f.Stats.K)
		}
	}
}

// A designated starter with no game log still counts as an appearance with a
// zero line.
func TestPitching_MissingGameLogZeroFilled(t *testing.T) {
	lineups := []model.Lineup{
		testLineup("202104010", "NYA", 1, 1, "ghost001"),
		testLineup("202104060", "NYA", 1, 2, "ghost001"),
	}
	forms, err := Pitching(lineups, nil, 2021, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, f := range forms {
		if f.GID == "202104060" {
			if f.Starts != 1 {
				t.Errorf("expected the logless start to count as an appearance, got starts=%d", f.Starts)
			}
			if f.Stats != (model.PitchingStats{}) {
				t.Errorf("expected zero stats, got %+v", f.Stats)
			}
		}
	}
}

func TestPitching_DuplicateAppearanceFatal(t *testing.T) {
	games := []model.PitchingGame{
		{GID: "202104010", Team: "NYA", GameNumber: 1, PlayerID: "p1"},
		{GID: "202104010", Team: "NYA", GameNumber: 1, PlayerID: "p1"},
	}
	_, err := Pitching(nil, games, 2021, 5)
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

// ---- Lineup aggregator ----

// Each batter contributes their own ≤period window even when the team has
// played fewer games.
func TestBatting_PerPlayerWindow(t *testing.T) {
	var lineups []model.Lineup
	var games []model.BattingGame
	// A veteran accumulates five appearances for NYA.
	for i := 1; i <= 5; i++ {
		gid := fmt.Sprintf("2021040%d0", i)
		lineups = append(lineups, testLineup(gid, "NYA", 1, i, "nyap0001", "vet00001"))
		games = append(games, model.BattingGame{
			GID: gid, Team: "NYA", GameNumber: i, PlayerID: "vet00001",
			Stats: model.BattingStats{S: 1, O: 3},
		})
	}
	// The veteran then starts for BOS in BOS's first game of the season.
	lineups = append(lineups, testLineup("202104060", "BOS", 0, 1, "bosp0001", "vet00001"))

	forms, err := Batting(lineups, games, 2021, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var target model.BattingForm
	for _, f := range forms {
		if f.GID == "202104060" && f.Team == "BOS" {
			target = f
		}
	}
	if target.Stats.S != 3 || target.Stats.O != 9 {
		t.Errorf("expected the veteran's last 3 appearances (S=3 O=9), got S=%d O=%d", target.Stats.S, target.Stats.O)
	}
}

// Permuting the batting order of the nine starters must not change the row.
func TestBatting_OrderIndependent(t *testing.T) {
	batters := []string{"b1", "b2", "b3", "b4", "b5", "b6", "b7", "b8", "b9"}
	permuted := []string{"b9", "b4", "b1", "b7", "b2", "b8", "b3", "b6", "b5"}

	var games []model.BattingGame
	for i, b := range batters {
		games = append(games, model.BattingGame{
			GID: "202104010", Team: "NYA", GameNumber: 1, PlayerID: b,
			Stats: model.BattingStats{S: i, BB: 1},
		})
	}
	build := func(order []string) []model.Lineup {
		return []model.Lineup{
			testLineup("202104010", "NYA", 1, 1, "p1", order...),
			testLineup("202104030", "NYA", 1, 2, "p1", order...),
		}
	}

	a, err := Batting(build(batters), games, 2021, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Batting(build(permuted), games, 2021, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("row counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Stats != b[i].Stats {
			t.Errorf("row %d: permuted batting order changed the aggregate: %+v vs %+v", i, a[i].Stats, b[i].Stats)
		}
	}
	// Sanity: the second game actually sees the nine windows.
	if a[1].Stats.BB != 9 {
		t.Errorf("expected BB=9 across nine starters, got %d", a[1].Stats.BB)
	}
}

// ---- Defense aggregator ----

func TestDefense_Window(t *testing.T) {
	games := []model.DefenseGame{
		{GID: "202104010", Team: "SF", GameNumber: 1, Stats: model.DefenseStats{E: 2, P: 27}},
		{GID: "202104020", Team: "SF", GameNumber: 2, Stats: model.DefenseStats{E: 1, P: 27}},
		{GID: "202104030", Team: "SF", GameNumber: 3, Stats: model.DefenseStats{E: 0, P: 27}},
	}
	forms, err := Defense(games, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forms) != 3 {
		t.Fatalf("expected one output row per input row, got %d", len(forms))
	}
	if forms[0].Games != 0 {
		t.Errorf("opening day: expected empty window, got %d", forms[0].Games)
	}
	last := forms[2]
	if last.Games != 2 || last.Stats.E != 3 || last.Stats.P != 54 {
		t.Errorf("expected last 2 games (E=3 P=54), got games=%d E=%d P=%d", last.Games, last.Stats.E, last.Stats.P)
	}
}

// ---- Compiler join ----

func compileFixture() ([]model.ScoreForm, []model.DefenseForm, []model.PitchingForm, []model.BattingForm) {
	scores := []model.ScoreForm{
		{GID: "202104010", Team: "NYA", GameNumber: 1, Opponent: "BOS", Home: 1, Games: 1},
		{GID: "202104010", Team: "BOS", GameNumber: 1, Opponent: "NYA", Home: 0, Games: 1},
	}
	defense := []model.DefenseForm{
		{GID: "202104010", Team: "NYA", GameNumber: 1, Games: 1},
		{GID: "202104010", Team: "BOS", GameNumber: 1, Games: 1},
	}
	pitching := []model.PitchingForm{
		{GID: "202104010", Team: "NYA", GameNumber: 1, PlayerID: "p1", Starts: 1},
		{GID: "202104010", Team: "BOS", GameNumber: 1, PlayerID: "p2", Starts: 1},
	}
	batting := []model.BattingForm{
		{GID: "202104010", Team: "NYA", GameNumber: 1},
		{GID: "202104010", Team: "BOS", GameNumber: 1},
	}
	return scores, defense, pitching, batting
}

func TestCompile_InnerJoin(t *testing.T) {
	scores, defense, pitching, batting := compileFixture()
	rows, dropped, err := Compile(scores, defense, pitching, batting)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dropped != 0 {
		t.Errorf("expected no dropped rows, got %d", dropped)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// Ordered by gid then home: away row first.
	if rows[0].Team != "BOS" || rows[1].Team != "NYA" {
		t.Errorf("expected (BOS, NYA) ordering, got (%s, %s)", rows[0].Team, rows[1].Team)
	}
	if rows[1].PitcherID != "p1" {
		t.Errorf("expected NYA row to carry its pitcher, got %s", rows[1].PitcherID)
	}
}

// A key absent from any one stream drops the whole row, never null-fills.
func TestCompile_MissingKeyDropsRow(t *testing.T) {
	scores, defense, pitching, batting := compileFixture()
	batting = batting[:1] // drop BOS batting aggregate

	rows, dropped, err := Compile(scores, defense, pitching, batting)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dropped != 1 {
		t.Errorf("expected 1 dropped row, got %d", dropped)
	}
	if len(rows) != 1 || rows[0].Team != "NYA" {
		t.Fatalf("expected only the NYA row to survive, got %d rows", len(rows))
	}
	// Output can never exceed the smallest input stream.
	if len(rows) > len(batting) {
		t.Errorf("output rows (%d) exceed smallest input (%d)", len(rows), len(batting))
	}
}

func TestCompile_DuplicateKeyFatal(t *testing.T) {
	scores, defense, pitching, batting := compileFixture()
	defense = append(defense, defense[0])

	_, _, err := Compile(scores, defense, pitching, batting)
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}
