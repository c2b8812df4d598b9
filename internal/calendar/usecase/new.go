package usecase

import (
	"time"

	"yeargrid/internal/account"
	"yeargrid/internal/calendar"
	"yeargrid/internal/model"
	"yeargrid/internal/provider"
	"yeargrid/internal/token"
	"yeargrid/pkg/log"
)

// Config tunes the aggregation pacing.
type Config struct {
	// FetchDelay is the minimum spacing between consecutive event fetches.
	FetchDelay time.Duration
	// RateLimitBackoff is the base delay for retrying throttled Microsoft
	// calls; attempt n waits base * 2^n.
	RateLimitBackoff time.Duration
}

type implUseCase struct {
	l         log.Logger
	store     account.Store
	refresher token.Refresher
	adapters  map[model.Provider]provider.Adapter
	cfg       Config
}

var _ calendar.UseCase = &implUseCase{}

func New(l log.Logger, store account.Store, refresher token.Refresher, adapters map[model.Provider]provider.Adapter, cfg Config) calendar.UseCase {
	if cfg.RateLimitBackoff <= 0 {
		cfg.RateLimitBackoff = time.Second
	}
	return &implUseCase{
		l:         l,
		store:     store,
		refresher: refresher,
		adapters:  adapters,
		cfg:       cfg,
	}
}
