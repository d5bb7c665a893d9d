package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-bb-form/internal/report"
	"github.com/pable/go-bb-form/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored compilations",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	comps, err := db.ListCompilations()
	if err != nil {
		return fmt.Errorf("list compilations: %w", err)
	}
	if len(comps) == 0 {
		fmt.Fprintln(os.Stdout, "No compilations stored yet. Run 'bbform compile <years> <period>' to add one.")
		return nil
	}

	report.PrintCompilationsTable(os.Stdout, comps)
	return nil
}
