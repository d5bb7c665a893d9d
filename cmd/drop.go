package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/go-bb-form/internal/storage"
)

// dropCmd deletes one stored (year, period) compilation.
var dropCmd = &cobra.Command{
	Use:   "drop <year> <period>",
	Short: "Delete a stored compilation",
	Args:  cobra.ExactArgs(2),
	RunE:  runDrop,
}

func runDrop(cmd *cobra.Command, args []string) error {
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid year %q", args[0])
	}
	period, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid period %q", args[1])
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	n, err := db.DeleteCompilation(year, period)
	if err != nil {
		return fmt.Errorf("delete compilation: %w", err)
	}
	if n == 0 {
		fmt.Fprintf(os.Stdout, "No compilation stored for %d period %d.\n", year, period)
		return nil
	}
	fmt.Fprintf(os.Stdout, "Deleted %d rows for %d period %d.\n", n, year, period)
	return nil
}
