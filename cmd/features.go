package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/go-bb-form/internal/features"
	"github.com/pable/go-bb-form/internal/model"
	"github.com/pable/go-bb-form/internal/report"
	"github.com/pable/go-bb-form/internal/storage"
)

var featuresYear int

var featuresCmd = &cobra.Command{
	Use:   "features <period>",
	Short: "Derive rate features from a compiled period",
	Long: `Loads compiled rows for one window size and prints the derived rate
features (win rates, log5, batting and pitching rates). Undefined rates
show as "—".

By default all compiled years for the period are included; restrict to
one season with --year.`,
	Args: cobra.ExactArgs(1),
	RunE: runFeatures,
}

func init() {
	featuresCmd.Flags().IntVar(&featuresYear, "year", 0, "restrict to one season")
}

func runFeatures(cmd *cobra.Command, args []string) error {
	period, err := strconv.Atoi(args[0])
	if err != nil || period < 1 {
		return fmt.Errorf("invalid period %q: want a positive integer", args[0])
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	var rows []model.CompiledRow
	if featuresYear > 0 {
		rows, err = db.GetCompiled(featuresYear, period)
	} else {
		rows, err = db.GetCompiledByPeriod(period)
	}
	if err != nil {
		return fmt.Errorf("load compiled rows: %w", err)
	}
	if len(rows) == 0 {
		fmt.Println("No compiled rows for this period. Run 'bbform compile <years> <period>' first.")
		return nil
	}

	report.PrintFeatureTable(os.Stdout, features.Derive(rows))
	return nil
}
