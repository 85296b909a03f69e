// Command check_rankings reports which ranking table entries match a
// Sleeper rookie. Unmatched entries usually mean a nickname or spelling
// difference that the table or the matcher needs to learn.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftboard/go/clients/sleeper_client"
	"github.com/mcdev12/draftboard/go/internal/draft/ranking"
	"github.com/mcdev12/draftboard/go/internal/models"
)

// report lists, per table rank, the rookie it matched
type report struct {
	Matched   map[int]models.Player
	Unmatched []int
}

func checkTable(table *ranking.Table, players map[string]models.Player) report {
	r := report{Matched: map[int]models.Player{}}
	for id, p := range players {
		if !p.IsRookie() {
			continue
		}
		if p.PlayerID == "" {
			p.PlayerID = id
		}
		rank := table.Match(p)
		if rank == 0 {
			continue
		}
		// Keep the lowest player ID so repeated runs agree.
		if prev, ok := r.Matched[rank]; !ok || p.PlayerID < prev.PlayerID {
			r.Matched[rank] = p
		}
	}
	for rank := 1; rank <= table.Len(); rank++ {
		if _, ok := r.Matched[rank]; !ok {
			r.Unmatched = append(r.Unmatched, rank)
		}
	}
	return r
}

func printReport(w io.Writer, table *ranking.Table, r report, verbose bool) {
	if verbose {
		ranks := make([]int, 0, len(r.Matched))
		for rank := range r.Matched {
			ranks = append(ranks, rank)
		}
		sort.Ints(ranks)
		for _, rank := range ranks {
			p := r.Matched[rank]
			fmt.Fprintf(w, "%3d %-28s -> %s (%s, %s)\n", rank, table.Players[rank-1].Name, p.Name(), p.PlayerID, p.Position)
		}
	}
	for _, rank := range r.Unmatched {
		e := table.Players[rank-1]
		fmt.Fprintf(w, "%3d %-28s -> no rookie matched (%s)\n", rank, e.Name, e.Position)
	}
	fmt.Fprintf(w, "Ranking table %s %s: total=%d matched=%d unmatched=%d\n",
		table.Source, table.Season, table.Len(), len(r.Matched), len(r.Unmatched))
}

func loadPlayers(ctx context.Context, path string) (map[string]models.Player, error) {
	if path == "" {
		client := sleeper_client.NewSleeperClient(sleeper_client.Config{})
		return client.GetPlayers(ctx)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var players map[string]models.Player
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, fmt.Errorf("unmarshal players: %w", err)
	}
	return players, nil
}

type options struct {
	tablePath   string
	playersPath string
	verbose     bool
}

// run prints the report to w and returns how many table entries went unmatched.
func run(ctx context.Context, opts options, w io.Writer) (int, error) {
	table := ranking.DefaultTable()
	if opts.tablePath != "" {
		loaded, err := ranking.LoadTable(opts.tablePath)
		if err != nil {
			return 0, fmt.Errorf("load table: %w", err)
		}
		table = loaded
	}

	players, err := loadPlayers(ctx, opts.playersPath)
	if err != nil {
		return 0, fmt.Errorf("load players: %w", err)
	}

	r := checkTable(table, players)
	printReport(w, table, r, opts.verbose)
	return len(r.Unmatched), nil
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var opts options
	flag.StringVar(&opts.tablePath, "table", "", "ranking table YAML (default: built-in table)")
	flag.StringVar(&opts.playersPath, "players", "", "Sleeper players JSON file (default: fetch from Sleeper)")
	flag.BoolVar(&opts.verbose, "v", false, "list matched entries too")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	unmatched, err := run(ctx, opts, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("Ranking check failed")
	}
	if unmatched > 0 {
		log.Warn().Int("unmatched", unmatched).Msg("Ranking table has unmatched entries")
		os.Exit(2)
	}
}
