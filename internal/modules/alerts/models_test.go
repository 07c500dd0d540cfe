package alerts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceUpdate(t *testing.T) {
	update, err := ParsePriceUpdate("AAPL:150.0")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", update.Symbol)
	assert.Equal(t, 150.0, update.Price)
}

func TestParsePriceUpdate_Malformed(t *testing.T) {
	cases := []string{
		"",
		"AAPL",
		"AAPL:",
		"AAPL:abc",
		":150.0",
		"AAPL:150.0:extra",
	}
	for _, body := range cases {
		_, err := ParsePriceUpdate(body)
		assert.Error(t, err, "body %q should not parse", body)
	}
}

func TestParsePriceUpdate_NegativeAndIntegerPrices(t *testing.T) {
	update, err := ParsePriceUpdate("TSLA:215")
	require.NoError(t, err)
	assert.Equal(t, 215.0, update.Price)

	update, err = ParsePriceUpdate("OIL:-3.5")
	require.NoError(t, err)
	assert.Equal(t, -3.5, update.Price)
}

func TestTriggered(t *testing.T) {
	tests := []struct {
		name     string
		condType ConditionType
		thresh   float64
		price    float64
		want     bool
	}{
		{"above triggers when price greater", ConditionAbove, 140, 150, true},
		{"above does not trigger at threshold", ConditionAbove, 140, 140, false},
		{"above does not trigger below threshold", ConditionAbove, 140, 130, false},
		{"below triggers when price lower", ConditionBelow, 140, 130, true},
		{"below does not trigger at threshold", ConditionBelow, 140, 140, false},
		{"below does not trigger above threshold", ConditionBelow, 140, 150, false},
		{"unknown type never triggers", ConditionType("between"), 140, 150, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := AlertCondition{
				AlertID:       "a1",
				StockSymbol:   "AAPL",
				ConditionType: tt.condType,
				Threshold:     tt.thresh,
			}
			assert.Equal(t, tt.want, cond.Triggered(tt.price))
		})
	}
}

func TestValidate(t *testing.T) {
	valid := AlertCondition{
		AlertID:       "a1",
		StockSymbol:   "AAPL",
		ConditionType: ConditionAbove,
		Threshold:     140,
	}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.AlertID = ""
	assert.Error(t, missing.Validate())

	noSymbol := valid
	noSymbol.StockSymbol = ""
	assert.Error(t, noSymbol.Validate())

	badType := valid
	badType.ConditionType = "crosses"
	assert.Error(t, badType.Validate())
}
