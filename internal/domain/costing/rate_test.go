package costing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/shrimpcfr/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRate(t *testing.T) {
	t.Run("valid bracket", func(t *testing.T) {
		rate, err := NewRate("  D ", 14, 19, dec("1600"))
		require.NoError(t, err)
		assert.Equal(t, "D", rate.Name)
		assert.Equal(t, 1, rate.Version)
		assert.True(t, rate.Contains(14))
		assert.True(t, rate.Contains(19))
		assert.False(t, rate.Contains(20))
	})

	tests := []struct {
		name string
		in   func() (*Rate, error)
		code string
	}{
		{"empty name", func() (*Rate, error) { return NewRate(" ", 1, 4, dec("1")) }, "INVALID_RATE_NAME"},
		{"zero low", func() (*Rate, error) { return NewRate("A", 0, 4, dec("1")) }, "INVALID_RATE_RANGE"},
		{"inverted", func() (*Rate, error) { return NewRate("A", 5, 4, dec("1")) }, "INVALID_RATE_RANGE"},
		{"above the size ceiling", func() (*Rate, error) { return NewRate("A", 1, MaxSizeCount+1, dec("1")) }, "INVALID_RATE_RANGE"},
		{"zero rate", func() (*Rate, error) { return NewRate("A", 1, 4, decimal.Zero) }, "INVALID_RATE_VALUE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.in()
			domainErr, ok := shared.AsDomainError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, domainErr.Code)
		})
	}
}

func TestRate_Update(t *testing.T) {
	rate, err := NewRate("A", 1, 4, dec("2200"))
	require.NoError(t, err)

	require.NoError(t, rate.Update("A+", 1, 5, dec("2300")))
	assert.Equal(t, "A+", rate.Name)
	assert.Equal(t, 5, rate.High)
	assert.Equal(t, 2, rate.Version)

	assert.Error(t, rate.Update("A", 3, 2, dec("2300")))
	assert.Equal(t, "A+", rate.Name)
}

func TestRateTable(t *testing.T) {
	table := defaultRates(t)

	t.Run("for quantity", func(t *testing.T) {
		rate, err := table.ForQuantity(12)
		require.NoError(t, err)
		assert.Equal(t, "C", rate.Name)

		_, err = table.ForQuantity(99)
		assert.ErrorIs(t, err, ErrRateNotFound)
	})

	t.Run("overlapping", func(t *testing.T) {
		names := []string{}
		for _, r := range table.Overlapping(14, 20) {
			names = append(names, r.Name)
		}
		assert.Equal(t, []string{"D", "E"}, names)
		assert.Empty(t, table.Overlapping(40, 50))
	})
}
