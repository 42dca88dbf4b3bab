package export

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatter(t *testing.T) {
	f := newFormatter()

	assert.Equal(t, "1,617.67", f.money(decimal.RequireFromString("1617.67")))
	assert.Equal(t, "0.80", f.money(decimal.RequireFromString("0.8")))
	assert.Equal(t, "122", f.plain(decimal.NewFromInt(122)))
	assert.Equal(t, "8.0%", f.percent(decimal.RequireFromString("0.08")))
}
