package pricerise

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ougirez/price-rise/internal/domain"
	"github.com/ougirez/price-rise/internal/pkg/constants"
)

// Prices in this domain are whole cents, so nanos is always a multiple of
// 1e7: the two fractional digits followed by seven zeros.
const nanosPerCent = 10_000_000

// EncodePrice builds the publisher money shape from a two-decimal price.
func EncodePrice(currency string, price decimal.Decimal) (domain.Money, error) {
	if price.IsNegative() || !price.Round(2).Equal(price) {
		return domain.Money{}, fmt.Errorf("encode %s: %w", price, constants.ErrBadPriceFormat)
	}

	parts := strings.SplitN(price.StringFixed(2), ".", 2)
	cents, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return domain.Money{}, fmt.Errorf("strconv.ParseInt: %w", err)
	}

	return domain.Money{
		CurrencyCode: currency,
		Units:        parts[0],
		Nanos:        cents * nanosPerCent,
	}, nil
}

// DecodePrice reads back the visible two-digit fraction. Any sub-cent
// remainder in nanos is truncated, not rounded.
func DecodePrice(m domain.Money) (decimal.Decimal, error) {
	units := m.Units
	if units == "" {
		units = "0"
	}
	if m.Nanos < 0 || m.Nanos > 999_999_999 {
		return decimal.Decimal{}, fmt.Errorf("nanos %d out of range: %w", m.Nanos, constants.ErrBadPriceFormat)
	}

	price, err := decimal.NewFromString(fmt.Sprintf("%s.%02d", units, m.Nanos/nanosPerCent))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("decimal.NewFromString: %w", err)
	}

	return price, nil
}
