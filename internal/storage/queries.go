package storage

import (
	"fmt"

	"github.com/pable/go-bb-form/internal/model"
)

// compiledCols is the non-key column list in insert/select order.
const compiledCols = `opp, home, spread, n, wins, scored, allowed, lob,
	n_vs, wins_vs, scored_vs, allowed_vs,
	dn, d_ur, d_tur, d_p, d_a, d_e, d_pb,
	ppid, pn, p_w, p_l, p_sv, p_r, p_er, p_ip, p_bf, p_s, p_d, p_t, p_hr,
	p_bb, p_hbp, p_ibb, p_k, p_bk, p_wp, p_po, p_gdp,
	b_o, b_e, b_s, b_d, b_t, b_hr, b_bb, b_ibb, b_hbp, b_k,
	b_i, b_sh, b_sf, b_gdp, b_r, b_rbi, b_sb, b_cs, b_po`

// InsertCompiled replaces the compiled table for (year, period) with rows,
// all inside one transaction so a failed compilation never leaves a partial
// table behind.
func (db *DB) InsertCompiled(year, period int, rows []model.CompiledRow) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM compiled WHERE year = ? AND period = ?`, year, period); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO compiled(year, period, gid, team, game_number, ` + compiledCols + `)
		VALUES (?,?,?,?,?,
			?,?,?,?,?,?,?,?,?,?,?,?,
			?,?,?,?,?,?,?,
			?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,
			?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err = stmt.Exec(
			year, period, r.GID, r.Team, r.GameNumber,
			r.Opponent, r.Home, r.Spread, r.Games, r.Wins, r.Scored, r.Allowed, r.LOB,
			r.VsGames, r.VsWins, r.VsScored, r.VsAllowed,
			r.DefenseGames, r.Defense.UR, r.Defense.TUR, r.Defense.P, r.Defense.A, r.Defense.E, r.Defense.PB,
			r.PitcherID, r.Starts,
			r.Pitching.W, r.Pitching.L, r.Pitching.SV, r.Pitching.R, r.Pitching.ER,
			r.Pitching.IP, r.Pitching.BF, r.Pitching.S, r.Pitching.D, r.Pitching.T, r.Pitching.HR,
			r.Pitching.BB, r.Pitching.HBP, r.Pitching.IBB, r.Pitching.K,
			r.Pitching.BK, r.Pitching.WP, r.Pitching.PO, r.Pitching.GDP,
			r.Batting.O, r.Batting.E, r.Batting.S, r.Batting.D, r.Batting.T, r.Batting.HR,
			r.Batting.BB, r.Batting.IBB, r.Batting.HBP, r.Batting.K,
			r.Batting.I, r.Batting.SH, r.Batting.SF, r.Batting.GDP,
			r.Batting.R, r.Batting.RBI, r.Batting.SB, r.Batting.CS, r.Batting.PO,
		)
		if err != nil {
			return fmt.Errorf("insert compiled row %s %s: %w", r.GID, r.Team, err)
		}
	}
	return tx.Commit()
}

func scanCompiledRow(scan func(dest ...any) error) (model.CompiledRow, error) {
	var r model.CompiledRow
	err := scan(
		&r.GID, &r.Team, &r.GameNumber,
		&r.Opponent, &r.Home, &r.Spread, &r.Games, &r.Wins, &r.Scored, &r.Allowed, &r.LOB,
		&r.VsGames, &r.VsWins, &r.VsScored, &r.VsAllowed,
		&r.DefenseGames, &r.Defense.UR, &r.Defense.TUR, &r.Defense.P, &r.Defense.A, &r.Defense.E, &r.Defense.PB,
		&r.PitcherID, &r.Starts,
		&r.Pitching.W, &r.Pitching.L, &r.Pitching.SV, &r.Pitching.R, &r.Pitching.ER,
		&r.Pitching.IP, &r.Pitching.BF, &r.Pitching.S, &r.Pitching.D, &r.Pitching.T, &r.Pitching.HR,
		&r.Pitching.BB, &r.Pitching.HBP, &r.Pitching.IBB, &r.Pitching.K,
		&r.Pitching.BK, &r.Pitching.WP, &r.Pitching.PO, &r.Pitching.GDP,
		&r.Batting.O, &r.Batting.E, &r.Batting.S, &r.Batting.D, &r.Batting.T, &r.Batting.HR,
		&r.Batting.BB, &r.Batting.IBB, &r.Batting.HBP, &r.Batting.K,
		&r.Batting.I, &r.Batting.SH, &r.Batting.SF, &r.Batting.GDP,
		&r.Batting.R, &r.Batting.RBI, &r.Batting.SB, &r.Batting.CS, &r.Batting.PO,
	)
	return r, err
}

// GetCompiled returns the compiled rows for one (year, period), ordered by
// gid then home flag.
func (db *DB) GetCompiled(year, period int) ([]model.CompiledRow, error) {
	rows, err := db.conn.Query(`
		SELECT gid, team, game_number, `+compiledCols+`
		FROM compiled WHERE year = ? AND period = ?
		ORDER BY gid, home`, year, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CompiledRow
	for rows.Next() {
		r, err := scanCompiledRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetCompiledByPeriod returns compiled rows for one period across all stored
// years, ordered by gid then home flag.
func (db *DB) GetCompiledByPeriod(period int) ([]model.CompiledRow, error) {
	rows, err := db.conn.Query(`
		SELECT gid, team, game_number, `+compiledCols+`
		FROM compiled WHERE period = ?
		ORDER BY gid, home`, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CompiledRow
	for rows.Next() {
		r, err := scanCompiledRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Compilation summarizes one stored (year, period) table.
type Compilation struct {
	Year   int
	Period int
	Rows   int
}

// ListCompilations returns all stored (year, period) tables with row counts.
func (db *DB) ListCompilations() ([]Compilation, error) {
	rows, err := db.conn.Query(`
		SELECT year, period, COUNT(1)
		FROM compiled GROUP BY year, period ORDER BY year, period`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Compilation
	for rows.Next() {
		var c Compilation
		if err := rows.Scan(&c.Year, &c.Period, &c.Rows); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteCompilation removes one (year, period) table, returning the number
// of deleted rows.
func (db *DB) DeleteCompilation(year, period int) (int64, error) {
	res, err := db.conn.Exec(`DELETE FROM compiled WHERE year = ? AND period = ?`, year, period)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// QueryRaw runs an arbitrary query and returns column names plus stringified
// rows, for the sql command.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range raw {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprintf("%v", x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}
