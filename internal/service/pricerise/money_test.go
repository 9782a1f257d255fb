package pricerise

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/price-rise/internal/domain"
	"github.com/ougirez/price-rise/internal/pkg/constants"
)

func TestEncodePrice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		currency string
		price    string
		want     domain.Money
	}{
		{"whole cents", "USD", "14.99", domain.Money{CurrencyCode: "USD", Units: "14", Nanos: 990_000_000}},
		{"aed example", "AED", "36.69", domain.Money{CurrencyCode: "AED", Units: "36", Nanos: 690_000_000}},
		{"no fraction", "GBP", "12", domain.Money{CurrencyCode: "GBP", Units: "12", Nanos: 0}},
		{"sub ten cents", "EUR", "0.09", domain.Money{CurrencyCode: "EUR", Units: "0", Nanos: 90_000_000}},
		{"zero", "USD", "0", domain.Money{CurrencyCode: "USD", Units: "0", Nanos: 0}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := EncodePrice(tc.currency, decimal.RequireFromString(tc.price))
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestEncodePriceRejectsUnrepresentable(t *testing.T) {
	t.Parallel()

	for _, price := range []string{"12.999", "-1.50"} {
		_, err := EncodePrice("USD", decimal.RequireFromString(price))
		require.ErrorIs(t, err, constants.ErrBadPriceFormat, price)
	}
}

func TestDecodePrice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		money domain.Money
		want  string
	}{
		{"whole cents", domain.Money{CurrencyCode: "USD", Units: "12", Nanos: 990_000_000}, "12.99"},
		{"single digit fraction pads", domain.Money{CurrencyCode: "EUR", Units: "12", Nanos: 90_000_000}, "12.09"},
		{"absent fields default", domain.Money{}, "0"},
		{"sub-cent remainder truncated", domain.Money{Units: "9", Nanos: 995_000_001}, "9.99"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodePrice(tc.money)
			require.NoError(t, err)
			require.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s, want %s", got, tc.want)
		})
	}
}

func TestDecodePriceRejectsNanosOutOfRange(t *testing.T) {
	t.Parallel()

	for _, nanos := range []int64{-1, 1_000_000_000} {
		_, err := DecodePrice(domain.Money{Units: "1", Nanos: nanos})
		require.ErrorIs(t, err, constants.ErrBadPriceFormat)
	}
}

func TestMoneyRoundTrip(t *testing.T) {
	t.Parallel()

	for _, price := range []string{"0", "0.01", "0.09", "0.99", "1", "12.99", "14.99", "169.99", "1250.50", "99999.09"} {
		p := decimal.RequireFromString(price)
		money, err := EncodePrice("USD", p)
		require.NoError(t, err)

		back, err := DecodePrice(money)
		require.NoError(t, err)
		require.True(t, back.Equal(p), "round trip of %s gave %s", p, back)
	}
}
