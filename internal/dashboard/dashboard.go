// Package dashboard aggregates the backend counters and chart series shown
// on the console landing pages, with a short-lived cache in front so the
// filtering service is not hammered by page refreshes.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"shuul-console/internal/api"
	"shuul-console/internal/cache"
)

// Counters is the headline block of the dashboard page.
type Counters struct {
	RulesTotal       int `json:"rules_total"`
	RulesActive      int `json:"rules_active"`
	RequestsTotal    int `json:"requests_total"`
	RequestsFiltered int `json:"requests_filtered"`
}

// CountryCount is one top-countries slice.
type CountryCount struct {
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	Count       int    `json:"count"`
}

// RuleCount is one top-rules slice.
type RuleCount struct {
	RuleID int    `json:"rule_id"`
	Label  string `json:"label,omitempty"`
	Count  int    `json:"count"`
}

// EvolutionPoint is one bucket of the request evolution series.
type EvolutionPoint struct {
	Bucket   string `json:"bucket"`
	Total    int    `json:"total"`
	Filtered int    `json:"filtered"`
}

// Service reads aggregates from the backend and caches them.
type Service struct {
	client     *api.Client
	cache      cache.Provider
	counterTTL time.Duration
	chartTTL   time.Duration
	logger     *slog.Logger
}

func NewService(client *api.Client, provider cache.Provider, counterTTL, chartTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		client:     client,
		cache:      provider,
		counterTTL: counterTTL,
		chartTTL:   chartTTL,
		logger:     logger,
	}
}

// Counters returns the four headline counters. A backend failure for one
// counter leaves it at zero rather than failing the whole block.
func (s *Service) Counters(ctx context.Context, token string) Counters {
	if cached, ok := fromCache[Counters](ctx, s.cache, "counters"); ok {
		return cached
	}

	var c Counters
	c.RulesTotal = s.count(ctx, token, "rules/info", "total")
	c.RulesActive = s.count(ctx, token, "rules/info", "active")
	c.RequestsTotal = s.count(ctx, token, "requests/info", "total")
	c.RequestsFiltered = s.count(ctx, token, "requests/info", "filtered")

	s.store(ctx, "counters", c, s.counterTTL)
	return c
}

// TopCountries returns the request count per country.
func (s *Service) TopCountries(ctx context.Context, token string) ([]CountryCount, error) {
	return cachedSeries[CountryCount](ctx, s, token, "top_countries", "requests/top_countries", nil)
}

// TopRules returns the hit count per matching rule.
func (s *Service) TopRules(ctx context.Context, token string) ([]RuleCount, error) {
	return cachedSeries[RuleCount](ctx, s, token, "top_rules", "requests/top_rules", nil)
}

// Evolution returns the bucketed request series for the last n units.
func (s *Service) Evolution(ctx context.Context, token, unit string, last int) ([]EvolutionPoint, error) {
	if unit != "day" && unit != "hour" {
		unit = "day"
	}
	if last <= 0 {
		last = 30
	}
	key := fmt.Sprintf("evolution:%s:%d", unit, last)
	params := api.Params{{Key: "unit", Value: unit}, {Key: "last", Value: last}}
	return cachedSeries[EvolutionPoint](ctx, s, token, key, "requests/evolution", params)
}

func cachedSeries[T any](ctx context.Context, s *Service, token, key, endpoint string, params api.Params) ([]T, error) {
	if cached, ok := fromCache[[]T](ctx, s.cache, key); ok {
		return cached, nil
	}

	envelope := s.client.LoadData(ctx, token, endpoint, params)
	series, ok := api.Decode[[]T](envelope)
	if !ok {
		return nil, fmt.Errorf("loading %s: %s", endpoint, envelope.Message)
	}
	s.store(ctx, key, series, s.chartTTL)
	return series, nil
}

func (s *Service) count(ctx context.Context, token, endpoint, option string) int {
	envelope := s.client.LoadData(ctx, token, endpoint, api.Params{{Key: "option", Value: option}})
	payload, ok := api.Decode[struct {
		Count int `json:"count"`
	}](envelope)
	if !ok {
		s.logger.Warn("counter unavailable", "endpoint", endpoint, "option", option, "message", envelope.Message)
		return 0
	}
	return payload.Count
}

func fromCache[T any](ctx context.Context, provider cache.Provider, key string) (T, bool) {
	var out T
	raw, err := provider.Get(ctx, key)
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false
	}
	return out, true
}

func (s *Service) store(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, ttl); err != nil {
		s.logger.Warn("caching dashboard data failed", "key", key, "error", err)
	}
}
