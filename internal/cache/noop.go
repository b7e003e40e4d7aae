package cache

import "RiskRange/internal/model"

// Noop is a no-op cache used when no database path is configured.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (n *Noop) Load(_ string, _ int) (*model.PriceSeries, bool, error) { return nil, false, nil }
func (n *Noop) Store(_ *model.PriceSeries, _ int) error                { return nil }
func (n *Noop) Close() error                                           { return nil }
