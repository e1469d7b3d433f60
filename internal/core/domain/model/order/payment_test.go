package order_test

import (
	"testing"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentType(t *testing.T) {
	for _, raw := range []string{"CASH", "upi", "Card", " NETBANKING "} {
		_, err := order.ParsePaymentType(raw)
		require.NoError(t, err, raw)
	}

	_, err := order.ParsePaymentType("CRYPTO")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.ParsePaymentType("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewPaymentMethod(t *testing.T) {
	t.Run("cash details are normalized to empty", func(t *testing.T) {
		pm, err := order.NewPaymentMethod(order.PaymentCash, map[string]string{"note": "keep change"})

		require.NoError(t, err)
		assert.Empty(t, pm.Details())
		assert.False(t, pm.IsCompleted())
	})

	t.Run("upi requires upiId", func(t *testing.T) {
		_, err := order.NewPaymentMethod(order.PaymentUPI, map[string]string{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "upiId")

		pm, err := order.NewPaymentMethod(order.PaymentUPI, map[string]string{"upiId": "captainmarvel@upi"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"upiId": "captainmarvel@upi"}, pm.Details())
	})

	t.Run("netbanking requires bankName", func(t *testing.T) {
		_, err := order.NewPaymentMethod(order.PaymentNetBanking, map[string]string{"bankName": "   "})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		pm, err := order.NewPaymentMethod(order.PaymentNetBanking, map[string]string{"bankName": "HDFC"})
		require.NoError(t, err)
		assert.Equal(t, "HDFC", pm.Details()["bankName"])
	})

	t.Run("card number is masked to the last four digits", func(t *testing.T) {
		pm, err := order.NewPaymentMethod(order.PaymentCard, map[string]string{"cardNumber": "1234567890123456"})

		require.NoError(t, err)
		masked := pm.Details()["cardNumber"]
		assert.Equal(t, "************3456", masked)
		assert.NotContains(t, masked, "1234567890123456")
		assert.NotContains(t, masked, "123456789012")
	})

	t.Run("card holder alias is kept", func(t *testing.T) {
		pm, err := order.NewPaymentMethod(order.PaymentCard, map[string]string{
			"cardNumber": "1234-5678-9012-3456",
			"holder":     "Nick Fury",
		})

		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"cardNumber": "************3456",
			"cardHolder": "Nick Fury",
		}, pm.Details())
	})

	t.Run("card requires number", func(t *testing.T) {
		_, err := order.NewPaymentMethod(order.PaymentCard, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		_, err := order.NewPaymentMethod(order.PaymentType("CHEQUE"), nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("details are copied", func(t *testing.T) {
		pm, _ := order.NewPaymentMethod(order.PaymentUPI, map[string]string{"upiId": "a@upi"})
		details := pm.Details()
		details["upiId"] = "changed"
		assert.Equal(t, "a@upi", pm.Details()["upiId"])
	})
}

func TestMaskCardNumber(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected string
		wantErr  bool
	}{
		{"sixteen digits", "1234567890123456", "************3456", false},
		{"spaces", "4111 1111 1111 1111", "************1111", false},
		{"twelve digits", "123456789012", "********9012", false},
		{"nineteen digits", "1234567890123456789", "***************6789", false},
		{"too short", "12345678901", "", true},
		{"too long", "12345678901234567890", "", true},
		{"letters", "1234abcd90123456", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			masked, err := order.MaskCardNumber(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, masked)
		})
	}
}

func TestRestorePaymentMethod(t *testing.T) {
	pm, err := order.RestorePaymentMethod(order.PaymentCard, map[string]string{"cardNumber": "************3456"}, true)

	require.NoError(t, err)
	assert.True(t, pm.IsCompleted())
	assert.Equal(t, "************3456", pm.Details()["cardNumber"])

	_, err = order.RestorePaymentMethod("", nil, false)
	require.Error(t, err)
}
