package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount string
		want   int64
	}{
		{"25.50", 2550},
		{"0.01", 1},
		{"10", 1000},
		{"19.999", 2000},
		{"0.005", 1},
	}
	for _, tc := range cases {
		got := MinorUnits(decimal.RequireFromString(tc.amount))
		assert.Equal(t, tc.want, got, "amount %s", tc.amount)
	}
}

func TestStripeConfigValidate(t *testing.T) {
	assert.Error(t, StripeConfig{}.Validate())
	assert.NoError(t, StripeConfig{SecretKey: "sk_test_123"}.Validate())
}

func TestNewStripeClientRequiresKey(t *testing.T) {
	_, err := NewStripeClient(StripeConfig{}, zap.NewNop())
	assert.Error(t, err)
}
