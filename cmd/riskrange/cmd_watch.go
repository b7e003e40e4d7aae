package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"RiskRange/internal/notifier"
	"RiskRange/internal/scheduler"
)

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh on a cron schedule and alert on band breaches",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			col, c := newCollector(cmd, cfg)
			defer c.Close()

			var n notifier.Notifier = notifier.NewLogNotifier()
			if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
				n = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
			}
			log.Info().Str("notifier", n.Name()).Msg("notifier ready")

			ctx := cmd.Context()
			sched := scheduler.NewScheduler(ctx, col, n, cfg.Tickers)
			if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			if os.Getenv("RUN_ON_START") == "true" {
				log.Info().Msg("RUN_ON_START enabled, refreshing now")
				go sched.RunNow()
			}

			log.Info().Str("cron", cfg.Schedule.RefreshCron).Msg("watching; press Ctrl+C to stop")
			<-ctx.Done()
			log.Info().Msg("shutdown signal received, stopping")
			return nil
		},
	}
	return cmd
}
