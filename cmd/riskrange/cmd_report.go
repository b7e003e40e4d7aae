package main

import (
	"fmt"
	"os"
	"sync"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"RiskRange/internal/collector"
)

func reportCmd() *cobra.Command {
	var tail int
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute and print risk ranges for the configured tickers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if tail <= 0 {
				tail = cfg.Output.TableRows
			}

			col, c := newCollector(cmd, cfg)
			defer c.Close()

			snapshots := collectAll(cmd, col, cfg.Tickers)
			if len(snapshots) == 0 {
				return fmt.Errorf("no ticker produced a result")
			}

			for _, symbol := range cfg.Tickers {
				snap, ok := snapshots[symbol]
				if !ok {
					continue
				}
				printReport(symbol, snap, tail)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&tail, "rows", 0, "table rows to print (default from config)")
	return cmd
}

// collectAll runs the pipeline per ticker in parallel. A failing ticker is
// logged and skipped; it never aborts the others.
func collectAll(cmd *cobra.Command, col *collector.Collector, tickers []string) map[string]*collector.Snapshot {
	var mu sync.Mutex
	snapshots := make(map[string]*collector.Snapshot, len(tickers))

	g, ctx := errgroup.WithContext(cmd.Context())
	for _, symbol := range tickers {
		g.Go(func() error {
			snap, err := col.Collect(ctx, symbol)
			if err != nil {
				log.Error().Err(err).Str("symbol", symbol).Msg("ticker failed")
				return nil
			}
			mu.Lock()
			snapshots[symbol] = snap
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
	return snapshots
}

func printReport(symbol string, snap *collector.Snapshot, tail int) {
	fmt.Printf("\n== %s ==\n", symbol)

	latest, ok := snap.Latest()
	if !ok {
		fmt.Printf("not enough history: %d bars fetched, all inside warm-up\n", len(snap.Rows))
		return
	}
	fmt.Printf("Close %.2f | Risk Range %.2f – %.2f | Width %.2f%% | Daily ROC %+.2f%%\n\n",
		latest.Close, latest.Lower, latest.Upper, 100*latest.WidthPct, 100*latest.ROC1d)

	tbl := snap.Table.Tail(tail)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "Date")
	for _, c := range tbl.Columns {
		fmt.Fprintf(w, "\t%s", c)
	}
	fmt.Fprintln(w)
	for _, row := range tbl.Rows {
		fmt.Fprint(w, row.Date.Format("2006-01-02"))
		for _, v := range row.Values {
			fmt.Fprintf(w, "\t%.2f", v)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}
