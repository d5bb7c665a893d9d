package storage

import (
	"testing"

	"github.com/pable/go-bb-form/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleRows() []model.CompiledRow {
	return []model.CompiledRow{
		{
			GID: "202104010", Team: "BOS", GameNumber: 1, Opponent: "NYA", Home: 0,
			Spread: -2, Games: 3, Wins: 1, Scored: 10, Allowed: 12, LOB: 20,
			VsGames: 1, VsWins: 0, VsScored: 3, VsAllowed: 5,
			DefenseGames: 3, Defense: model.DefenseStats{E: 2, P: 81},
			PitcherID: "bosp0001", Starts: 2,
			Pitching: model.PitchingStats{K: 11, BF: 48, IP: 33, ER: 6},
			Batting:  model.BattingStats{S: 15, O: 60, HR: 2, RBI: 9},
		},
		{
			GID: "202104010", Team: "NYA", GameNumber: 1, Opponent: "BOS", Home: 1,
			Spread: 2, Games: 3, Wins: 2, Scored: 14, Allowed: 10, LOB: 18,
			VsGames: 1, VsWins: 1, VsScored: 5, VsAllowed: 3,
			DefenseGames: 3, Defense: model.DefenseStats{E: 1, P: 81},
			PitcherID: "nyap0001", Starts: 3,
			Pitching: model.PitchingStats{K: 19, BF: 71, IP: 51, ER: 5},
			Batting:  model.BattingStats{S: 18, O: 55, HR: 4, RBI: 13},
		},
	}
}

func TestCompiledRoundTrip(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertCompiled(2021, 10, sampleRows()); err != nil {
		t.Fatalf("InsertCompiled: %v", err)
	}

	got, err := db.GetCompiled(2021, 10)
	if err != nil {
		t.Fatalf("GetCompiled: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	// Ordered by gid then home: BOS (away) first.
	if got[0].Team != "BOS" || got[1].Team != "NYA" {
		t.Errorf("expected (BOS, NYA), got (%s, %s)", got[0].Team, got[1].Team)
	}
	nya := got[1]
	if nya.PitcherID != "nyap0001" || nya.Starts != 3 {
		t.Errorf("pitcher mismatch: %s starts=%d", nya.PitcherID, nya.Starts)
	}
	if nya.Pitching.K != 19 || nya.Batting.HR != 4 || nya.Defense.P != 81 {
		t.Errorf("stat mismatch: K=%d HR=%d P=%d", nya.Pitching.K, nya.Batting.HR, nya.Defense.P)
	}
	if nya.VsScored != 5 || nya.LOB != 18 {
		t.Errorf("score group mismatch: vs_scored=%d lob=%d", nya.VsScored, nya.LOB)
	}
}

// Recompiling a (year, period) replaces the whole table, never appends.
func TestInsertCompiledReplaces(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertCompiled(2021, 10, sampleRows()); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := db.InsertCompiled(2021, 10, sampleRows()[:1]); err != nil {
		t.Fatalf("second insert: %v", err)
	}

	got, err := db.GetCompiled(2021, 10)
	if err != nil {
		t.Fatalf("GetCompiled: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected recompilation to replace rows, got %d", len(got))
	}
}

func TestGetCompiledByPeriod(t *testing.T) {
	db := openMemDB(t)

	db.InsertCompiled(2020, 10, sampleRows()[:1])
	db.InsertCompiled(2021, 10, sampleRows())
	db.InsertCompiled(2021, 5, sampleRows())

	got, err := db.GetCompiledByPeriod(10)
	if err != nil {
		t.Fatalf("GetCompiledByPeriod: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 rows across years for period 10, got %d", len(got))
	}
}

func TestListAndDeleteCompilations(t *testing.T) {
	db := openMemDB(t)

	db.InsertCompiled(2021, 5, sampleRows())
	db.InsertCompiled(2021, 10, sampleRows())

	list, err := db.ListCompilations()
	if err != nil {
		t.Fatalf("ListCompilations: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 compilations, got %d", len(list))
	}
	if list[0].Period != 5 || list[0].Rows != 2 {
		t.Errorf("unexpected first compilation: %+v", list[0])
	}

	n, err := db.DeleteCompilation(2021, 5)
	if err != nil {
		t.Fatalf("DeleteCompilation: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 deleted rows, got %d", n)
	}
	list, _ = db.ListCompilations()
	if len(list) != 1 {
		t.Errorf("expected 1 compilation left, got %d", len(list))
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	db.InsertCompiled(2021, 10, sampleRows())

	cols, rows, err := db.QueryRaw("SELECT team, wins FROM compiled ORDER BY team")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 2 || cols[0] != "team" {
		t.Errorf("unexpected columns: %v", cols)
	}
	if len(rows) != 2 || rows[0][0] != "BOS" || rows[1][1] != "2" {
		t.Errorf("unexpected rows: %v", rows)
	}
}
