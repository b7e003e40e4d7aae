package scheduler

import (
	"context"
	"fmt"
	"math"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"RiskRange/internal/collector"
	"RiskRange/internal/model"
	"RiskRange/internal/notifier"
)

// Scheduler periodically refreshes every ticker's risk range and raises an
// alert when a close settles outside the band forecast by the prior session.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Notifier  notifier.Notifier
	Tickers   []string
	Ctx       context.Context
}

// NewScheduler creates a Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, n notifier.Notifier, tickers []string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Notifier:  n,
		Tickers:   tickers,
		Ctx:       ctx,
	}
}

// Register adds the refresh task under the given cron expression.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Strs("tickers", s.Tickers).Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the refresh task immediately (manual trigger / run-on-start).
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

// refreshTask recomputes each ticker independently; one ticker failing never
// aborts the others.
func (s *Scheduler) refreshTask() {
	log.Info().Msg("running refresh task")
	for _, symbol := range s.Tickers {
		snap, err := s.Collector.Collect(s.Ctx, symbol)
		if err != nil {
			log.Error().Err(err).Str("symbol", symbol).Msg("refresh collect failed")
			continue
		}

		latest, ok := snap.Latest()
		if !ok {
			log.Warn().Str("symbol", symbol).Msg("series still warming up, nothing to report")
			continue
		}

		s.trySend(notifier.FormatSnapshot(symbol, latest))

		if prev, ok := previousDefined(snap.Rows, latest); ok {
			if latest.Close > prev.Upper || latest.Close < prev.Lower {
				log.Info().Str("symbol", symbol).
					Float64("close", latest.Close).
					Float64("lower", prev.Lower).
					Float64("upper", prev.Upper).
					Msg("band breach")
				s.trySend(notifier.FormatBreach(symbol, model.RiskRangeRow{
					IndicatorRow: latest.IndicatorRow,
					VolCombined:  prev.VolCombined,
					WidthPct:     prev.WidthPct,
					Width:        prev.Width,
					Center:       prev.Center,
					Upper:        prev.Upper,
					Lower:        prev.Lower,
				}))
			}
		}
	}
}

// previousDefined returns the last fully defined row dated before latest.
func previousDefined(rows []model.RiskRangeRow, latest model.RiskRangeRow) (model.RiskRangeRow, bool) {
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].Date.Before(latest.Date) && !math.IsNaN(rows[i].WidthPct) {
			return rows[i], true
		}
	}
	return model.RiskRangeRow{}, false
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification failed")
	}
}
