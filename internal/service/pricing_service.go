package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/elevate-careers-api/internal/pricing"
	appErrors "github.com/noah-isme/elevate-careers-api/pkg/errors"
	"github.com/noah-isme/elevate-careers-api/pkg/paystack"
)

// pricingCache is the slice of the cache repository the pricing service
// uses.
type pricingCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// ProgramPrice is one row of the public pricing listing.
type ProgramPrice struct {
	TrainingProgram string  `json:"training_program"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Formatted       string  `json:"formatted"`
	Free            bool    `json:"free"`
}

// PricingService serves the public program price listing, optionally
// cached per currency.
type PricingService struct {
	catalog  *pricing.Catalog
	cache    pricingCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewPricingService constructs the service. A nil cache disables
// caching.
func NewPricingService(catalog *pricing.Catalog, cache pricingCache, cacheTTL time.Duration, logger *zap.Logger) *PricingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PricingService{catalog: catalog, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// ListPrices returns all registered programs priced in the currency.
func (s *PricingService) ListPrices(ctx context.Context, currency string) ([]ProgramPrice, error) {
	if currency == "" {
		currency = paystack.DefaultCurrency
	}
	if !paystack.IsSupported(currency) {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			fmt.Sprintf("unsupported currency %q", currency))
	}

	cacheKey := "pricing:programs:" + currency
	if s.cache != nil {
		var cached []ProgramPrice
		err := s.cache.Get(ctx, cacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("pricing cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	programs := s.catalog.Programs()
	prices := make([]ProgramPrice, 0, len(programs))
	for _, program := range programs {
		prices = append(prices, ProgramPrice{
			TrainingProgram: program,
			Amount:          s.catalog.PriceOf(program, currency),
			Currency:        currency,
			Formatted:       s.catalog.FormattedPrice(program, currency),
			Free:            s.catalog.IsFree(program),
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, prices, s.cacheTTL); err != nil {
			s.logger.Warn("pricing cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return prices, nil
}
