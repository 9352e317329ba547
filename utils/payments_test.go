package utils_test

import (
	"coursex/utils"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitRevenue(t *testing.T) {
	// Default platform fee is 10 percent
	cases := []struct {
		amount   float64
		fee      float64
		earnings float64
	}{
		{49.99, 5.00, 44.99},
		{100.00, 10.00, 90.00},
		{9.99, 1.00, 8.99},
		{0.05, 0.01, 0.04},
		{0, 0, 0},
	}

	for _, tc := range cases {
		fee, earnings := utils.SplitRevenue(tc.amount)
		assert.InDelta(t, tc.fee, fee, 0.0001, "fee for %.2f", tc.amount)
		assert.InDelta(t, tc.earnings, earnings, 0.0001, "earnings for %.2f", tc.amount)
		assert.InDelta(t, tc.amount, fee+earnings, 0.0001, "parts must add up for %.2f", tc.amount)
	}
}

func TestMockPaymentIntent(t *testing.T) {
	// No gateway key configured in tests, so the mock path is taken
	result, err := utils.CreatePaymentIntent(49.99, 1, 2, "Some Course")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.PaymentIntentID, "pi_mock_"))
	assert.True(t, strings.HasPrefix(result.ClientSecret, "cs_mock_"))
}

func TestMockPaymentConfirm(t *testing.T) {
	success, err := utils.ConfirmPayment("pi_mock_anything")
	require.NoError(t, err)
	assert.True(t, success)
}
