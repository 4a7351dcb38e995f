package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/elevate-careers-api/internal/pricing"
	appErrors "github.com/noah-isme/elevate-careers-api/pkg/errors"
)

type fakePricingCache struct {
	store    map[string][]byte
	getCalls int
	setCalls int
}

func newFakePricingCache() *fakePricingCache {
	return &fakePricingCache{store: map[string][]byte{}}
}

func (f *fakePricingCache) Get(_ context.Context, key string, dest interface{}) error {
	f.getCalls++
	raw, ok := f.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakePricingCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	f.setCalls++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = raw
	return nil
}

func TestListPricesCoversAllPrograms(t *testing.T) {
	svc := NewPricingService(pricing.NewCatalog(), nil, 0, nil)

	prices, err := svc.ListPrices(context.Background(), "NGN")
	require.NoError(t, err)
	require.Len(t, prices, 12)

	byProgram := map[string]ProgramPrice{}
	for _, p := range prices {
		byProgram[p.TrainingProgram] = p
	}
	cv := byProgram["CV Optimization"]
	assert.Equal(t, 47850.0, cv.Amount)
	assert.Equal(t, "₦47,850", cv.Formatted)
	assert.False(t, cv.Free)

	free := byProgram["Job Opportunities"]
	assert.Zero(t, free.Amount)
	assert.Equal(t, "Free", free.Formatted)
	assert.True(t, free.Free)
}

func TestListPricesDefaultsCurrency(t *testing.T) {
	svc := NewPricingService(pricing.NewCatalog(), nil, 0, nil)

	prices, err := svc.ListPrices(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "USD", prices[0].Currency)
}

func TestListPricesRejectsUnsupportedCurrency(t *testing.T) {
	svc := NewPricingService(pricing.NewCatalog(), nil, 0, nil)

	_, err := svc.ListPrices(context.Background(), "EUR")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestListPricesServesFromCache(t *testing.T) {
	cache := newFakePricingCache()
	svc := NewPricingService(pricing.NewCatalog(), cache, time.Minute, nil)

	first, err := svc.ListPrices(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.setCalls)

	second, err := svc.ListPrices(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.setCalls, "second listing must come from cache")
	assert.Equal(t, first, second)
}
