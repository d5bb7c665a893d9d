package model

// GameDate returns the YYYYMMDD date component of a game id. Game ids encode
// the calendar date in their first 8 characters followed by a per-day
// sequence suffix, so the date substring sorts chronologically as a string.
func GameDate(gid string) string {
	if len(gid) < 8 {
		return gid
	}
	return gid[:8]
}

// ---- Per-domain counting stats ----

// PitchingStats are the counting stats of one pitching appearance.
type PitchingStats struct {
	W, L, SV        int
	R, ER           int
	IP, BF          int
	S, D, T, HR     int
	BB, HBP, IBB, K int
	BK, WP, PO, GDP int
}

// Add accumulates o into s element-wise.
func (s *PitchingStats) Add(o PitchingStats) {
	s.W += o.W
	s.L += o.L
	s.SV += o.SV
	s.R += o.R
	s.ER += o.ER
	s.IP += o.IP
	s.BF += o.BF
	s.S += o.S
	s.D += o.D
	s.T += o.T
	s.HR += o.HR
	s.BB += o.BB
	s.HBP += o.HBP
	s.IBB += o.IBB
	s.K += o.K
	s.BK += o.BK
	s.WP += o.WP
	s.PO += o.PO
	s.GDP += o.GDP
}

// BattingStats are the counting stats of one batting appearance.
type BattingStats struct {
	O, E            int
	S, D, T, HR     int
	BB, IBB, HBP, K int
	I, SH, SF, GDP  int
	R, RBI          int
	SB, CS, PO      int
}

// Add accumulates o into s element-wise.
func (s *BattingStats) Add(o BattingStats) {
	s.O += o.O
	s.E += o.E
	s.S += o.S
	s.D += o.D
	s.T += o.T
	s.HR += o.HR
	s.BB += o.BB
	s.IBB += o.IBB
	s.HBP += o.HBP
	s.K += o.K
	s.I += o.I
	s.SH += o.SH
	s.SF += o.SF
	s.GDP += o.GDP
	s.R += o.R
	s.RBI += o.RBI
	s.SB += o.SB
	s.CS += o.CS
	s.PO += o.PO
}

// DefenseStats are one team's defensive line for a single game.
type DefenseStats struct {
	UR, TUR     int
	P, A, E, PB int
}

// Add accumulates o into s element-wise.
func (s *DefenseStats) Add(o DefenseStats) {
	s.UR += o.UR
	s.TUR += o.TUR
	s.P += o.P
	s.A += o.A
	s.E += o.E
	s.PB += o.PB
}

// ScoreLine is the per-game summary windowed by the score aggregator.
// Win is 1 for a victory so lines sum element-wise like the other domains.
type ScoreLine struct {
	Spread  int
	Win     int
	Scored  int
	Allowed int
	LOB     int
}

// Add accumulates o into s element-wise.
func (s *ScoreLine) Add(o ScoreLine) {
	s.Spread += o.Spread
	s.Win += o.Win
	s.Scored += o.Scored
	s.Allowed += o.Allowed
	s.LOB += o.LOB
}

// ---- Event records served by the bbstat source ----

// Lineup is one team's starting lineup for one game: the starting pitcher
// plus the nine starting batters and their position codes.
type Lineup struct {
	GID        string
	Team       string
	Home       int
	GameNumber int
	Pitcher    string
	Batters    [9]string
	Positions  [9]string
}

// PitchingGame is one starting pitcher's line for one game.
type PitchingGame struct {
	GID        string
	Team       string
	GameNumber int
	PlayerID   string
	Stats      PitchingStats
}

// BattingGame is one starting batter's line for one game.
type BattingGame struct {
	GID        string
	Team       string
	GameNumber int
	PlayerID   string
	Stats      BattingStats
}

// DefenseGame is one team's defensive line for one game.
type DefenseGame struct {
	GID        string
	Team       string
	GameNumber int
	Stats      DefenseStats
}

// ScoreGame is one team's score record for one game.
type ScoreGame struct {
	GID        string
	Team       string
	GameNumber int
	Opponent   string
	Home       int
	Score      int
	OppScore   int
	LOB        int
}

// Spread is the run differential from this team's perspective.
func (g ScoreGame) Spread() int { return g.Score - g.OppScore }

// Line converts the record into the windowable per-game summary.
func (g ScoreGame) Line() ScoreLine {
	win := 0
	if g.Spread() > 0 {
		win = 1
	}
	return ScoreLine{
		Spread:  g.Spread(),
		Win:     win,
		Scored:  g.Score,
		Allowed: g.OppScore,
		LOB:     g.LOB,
	}
}

// ---- Pre-game aggregate rows, one per (game, team) ----

// PitchingForm is the starting pitcher's windowed form ahead of a game.
type PitchingForm struct {
	GID        string
	Team       string
	GameNumber int
	PlayerID   string
	Starts     int // prior starts found, capped at the period
	Stats      PitchingStats
}

// BattingForm is the summed windowed form of a team's nine starters. There is
// no count column: the meaningful denominator is per-batter, not per-team.
type BattingForm struct {
	GID        string
	Team       string
	GameNumber int
	Stats      BattingStats
}

// DefenseForm is a team's windowed defensive form ahead of a game.
type DefenseForm struct {
	GID        string
	Team       string
	GameNumber int
	Games      int
	Stats      DefenseStats
}

// ScoreForm carries a team's general recent record and its head-to-head
// record against the game's opponent, both ahead of the game. Home and
// Spread pass through as labels, not features.
type ScoreForm struct {
	GID        string
	Team       string
	GameNumber int
	Opponent   string
	Home       int
	Spread     int

	Games   int
	Wins    int
	Scored  int
	Allowed int
	LOB     int

	VsGames   int
	VsWins    int
	VsScored  int
	VsAllowed int
}

// CompiledRow is the inner join of the four aggregate streams for one
// (game, team), as persisted per (year, period).
type CompiledRow struct {
	GID        string
	Team       string
	GameNumber int

	Opponent string
	Home     int
	Spread   int

	Games   int
	Wins    int
	Scored  int
	Allowed int
	LOB     int

	VsGames   int
	VsWins    int
	VsScored  int
	VsAllowed int

	DefenseGames int
	Defense      DefenseStats

	PitcherID string
	Starts    int
	Pitching  PitchingStats

	Batting BattingStats
}

// FeatureRow holds the normalized rate metrics derived from one CompiledRow.
// Undefined rates (division by zero) are NaN, never zero.
type FeatureRow struct {
	GID        string
	Team       string
	GameNumber int
	Home       int
	Spread     int
	Starts     int
	DefGames   int

	Win          int
	WinRate      float64
	ExpectedWin  float64
	Log5         float64
	LOBRate      float64
	WinVsRate    float64
	ScoredVsRate float64

	ErrorRate float64

	BA      float64
	SLG     float64
	OBP     float64
	OPS     float64
	RBIRate float64
	BBRate  float64

	ERA             float64
	KRate           float64
	PitcherBBRate   float64
	TotalBaseRate   float64
	HitsAllowedRate float64
}
