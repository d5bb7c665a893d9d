package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-bb-form/internal/model"
	"github.com/pable/go-bb-form/internal/storage"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// rate renders a derived rate, or "—" for the undefined marker.
func rate(v float64) string {
	if math.IsNaN(v) {
		return "—"
	}
	return fmt.Sprintf("%.3f", v)
}

// PrintCompilationsTable lists the stored (year, period) tables.
func PrintCompilationsTable(w io.Writer, comps []storage.Compilation) {
	table := newTable(w)
	table.Header("YEAR", "PERIOD", "ROWS")
	for _, c := range comps {
		table.Append(
			strconv.Itoa(c.Year),
			strconv.Itoa(c.Period),
			strconv.Itoa(c.Rows),
		)
	}
	table.Render()
}

// PrintFeatureTable prints the derived per-game feature rows.
func PrintFeatureTable(w io.Writer, rows []model.FeatureRow) {
	table := newTable(w)
	table.Header(
		"GID", "TEAM", "G#", "HOME", "SPREAD", "WIN",
		"WR", "XW", "LOG5", "LOB", "WR_VS", "SR_VS",
		"ERR", "BA", "SLG", "OBP", "OPS", "RBI", "BB",
		"ERA", "K", "PBB", "PTB", "PHITS",
	)
	for _, f := range rows {
		table.Append(
			f.GID,
			f.Team,
			strconv.Itoa(f.GameNumber),
			strconv.Itoa(f.Home),
			strconv.Itoa(f.Spread),
			strconv.Itoa(f.Win),
			rate(f.WinRate),
			rate(f.ExpectedWin),
			rate(f.Log5),
			rate(f.LOBRate),
			rate(f.WinVsRate),
			rate(f.ScoredVsRate),
			rate(f.ErrorRate),
			rate(f.BA),
			rate(f.SLG),
			rate(f.OBP),
			rate(f.OPS),
			rate(f.RBIRate),
			rate(f.BBRate),
			rate(f.ERA),
			rate(f.KRate),
			rate(f.PitcherBBRate),
			rate(f.TotalBaseRate),
			rate(f.HitsAllowedRate),
		)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}
