package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pable/go-bb-form/internal/aggregator"
	"github.com/pable/go-bb-form/internal/bbstat"
	"github.com/pable/go-bb-form/internal/config"
	"github.com/pable/go-bb-form/internal/model"
	"github.com/pable/go-bb-form/internal/storage"
)

var compileCmd = &cobra.Command{
	Use:   "compile <years> <period>...",
	Short: "Compile rolling-form tables for seasons and window sizes",
	Long: `Fetches lineup, pitching, batting, defense and score records from the
bbstat service and compiles per-game rolling-form tables, one per
(year, period) pair.

Years accept single values, comma lists and ranges:

  bbform compile 2021 10
  bbform compile 2019,2021-2023 5 10 20

A season that cannot be retrieved is skipped and reported; the command
exits non-zero if any season failed.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCompile,
}

func runCompile(cmd *cobra.Command, args []string) error {
	years, err := parseYears(args[0])
	if err != nil {
		return err
	}
	var periods []int
	for _, a := range args[1:] {
		p, err := strconv.Atoi(a)
		if err != nil || p < 1 {
			return fmt.Errorf("invalid period %q: want a positive integer", a)
		}
		periods = append(periods, p)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	cfg := config.Load()
	client := bbstat.NewClient(cfg.SourceURL, cfg.HTTPTimeout)

	failed := 0
	for _, year := range years {
		if err := compileYear(db, client, year, periods); err != nil {
			fmt.Fprintf(os.Stderr, "[error] season %d: %v\n", year, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d seasons failed", failed, len(years))
	}
	return nil
}

// seasonEvents holds everything compileYear fetches for one target season.
// Lineups, player game logs and scores span the prior season too, so
// early-season windows have look-back history; defense is target-year only.
type seasonEvents struct {
	lineups  []model.Lineup
	pitching []model.PitchingGame
	batting  []model.BattingGame
	defense  []model.DefenseGame
	scores   []model.ScoreGame
}

func fetchSeason(client *bbstat.Client, year int) (*seasonEvents, error) {
	ev := &seasonEvents{}
	for _, y := range []int{year - 1, year} {
		lineups, err := client.Lineups(y)
		if err != nil {
			return nil, err
		}
		ev.lineups = append(ev.lineups, lineups...)

		pitching, err := client.PitchingGames(y)
		if err != nil {
			return nil, err
		}
		ev.pitching = append(ev.pitching, pitching...)

		batting, err := client.BattingGames(y)
		if err != nil {
			return nil, err
		}
		ev.batting = append(ev.batting, batting...)

		scores, err := client.Scores(y)
		if err != nil {
			return nil, err
		}
		ev.scores = append(ev.scores, scores...)
	}

	defense, err := client.DefenseGames(year)
	if err != nil {
		return nil, err
	}
	ev.defense = defense
	return ev, nil
}

func compileYear(db *storage.DB, client *bbstat.Client, year int, periods []int) error {
	fmt.Printf("Season %d: fetching...\n", year)
	ev, err := fetchSeason(client, year)
	if err != nil {
		return err
	}
	fmt.Printf("  %d lineups, %d pitching, %d batting, %d defense, %d scores\n",
		len(ev.lineups), len(ev.pitching), len(ev.batting), len(ev.defense), len(ev.scores))

	for _, period := range periods {
		var (
			scores   []model.ScoreForm
			defense  []model.DefenseForm
			pitching []model.PitchingForm
			batting  []model.BattingForm
		)

		// The four aggregators are pure over the fetched events, so they
		// run concurrently per period.
		var g errgroup.Group
		g.Go(func() error {
			var err error
			scores, err = aggregator.Scores(ev.scores, year, period)
			return err
		})
		g.Go(func() error {
			var err error
			defense, err = aggregator.Defense(ev.defense, period)
			return err
		})
		g.Go(func() error {
			var err error
			pitching, err = aggregator.Pitching(ev.lineups, ev.pitching, year, period)
			return err
		})
		g.Go(func() error {
			var err error
			batting, err = aggregator.Batting(ev.lineups, ev.batting, year, period)
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}

		rows, dropped, err := aggregator.Compile(scores, defense, pitching, batting)
		if err != nil {
			return err
		}
		if err := db.InsertCompiled(year, period, rows); err != nil {
			return fmt.Errorf("store period %d: %w", period, err)
		}
		if dropped > 0 {
			fmt.Printf("  period %d: %d rows stored (%d dropped for missing join keys)\n", period, len(rows), dropped)
		} else {
			fmt.Printf("  period %d: %d rows stored\n", period, len(rows))
		}
	}
	return nil
}

// parseYears expands a year spec like "2019,2021-2023" into a sorted list.
func parseYears(spec string) ([]int, error) {
	seen := make(map[int]struct{})
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("invalid years %q", spec)
		}
		lo, hi, ok := strings.Cut(part, "-")
		from, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q", part)
		}
		to := from
		if ok {
			to, err = strconv.Atoi(hi)
			if err != nil || to < from {
				return nil, fmt.Errorf("invalid year range %q", part)
			}
		}
		for y := from; y <= to; y++ {
			seen[y] = struct{}{}
		}
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}
