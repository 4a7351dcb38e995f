package paystack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(2900), ToMinorUnits(29, "USD"))
	assert.Equal(t, int64(2950), ToMinorUnits(29.50, "USD"))
	assert.Equal(t, int64(4785000), ToMinorUnits(47850, "NGN"))
	assert.Equal(t, int64(1), ToMinorUnits(0.01, "USD"))
}

func TestFromMinorUnits(t *testing.T) {
	assert.Equal(t, 29.0, FromMinorUnits(2900, "USD"))
	assert.Equal(t, 0.01, FromMinorUnits(1, "USD"))
	assert.Equal(t, 47850.0, FromMinorUnits(4785000, "NGN"))
}

func TestMinorUnitsRoundTrip(t *testing.T) {
	for code := range SupportedCurrencies {
		// Every integer-cent amount must survive the round trip.
		for _, cents := range []int64{0, 1, 99, 100, 2900, 123456789} {
			amount := FromMinorUnits(cents, code)
			assert.Equal(t, cents, ToMinorUnits(amount, code), "currency %s cents %d", code, cents)
		}
	}
}

func TestCurrencyInfo(t *testing.T) {
	info, ok := CurrencyInfo("KES")
	require.True(t, ok)
	assert.Equal(t, "KSh", info.Symbol)
	assert.Equal(t, int64(100), info.Multiplier)

	_, ok = CurrencyInfo("EUR")
	assert.False(t, ok)
	assert.False(t, IsSupported("EUR"))
	assert.True(t, IsSupported("GHS"))
}
