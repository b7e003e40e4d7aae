package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"RiskRange/internal/export"
)

func exportCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write each ticker's projected table as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.Output.Dir
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
				path, err := export.WriteCSVFile(dir, symbol, snap.Table)
				if err != nil {
					log.Error().Err(err).Str("symbol", symbol).Msg("csv export failed")
					continue
				}
				log.Info().Str("symbol", symbol).Str("path", path).
					Int("rows", len(snap.Table.Rows)).Msg("csv written")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "out", "", "output directory (default from config)")
	return cmd
}
