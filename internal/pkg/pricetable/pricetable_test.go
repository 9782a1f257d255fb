package pricetable

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/price-rise/internal/pkg/constants"
)

const sampleCSV = `product_id,region,currency,new_price
com.guardian.subscription.monthly.11.freetrial,US,USD,14.99
com.guardian.subscription.monthly.11.freetrial,AU,AUD,16.99
com.guardian.subscription.annual.14.freetrial,US,USD,144.99
`

func TestParse(t *testing.T) {
	t.Parallel()

	table, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, table, 2)

	monthly := table["com.guardian.subscription.monthly.11.freetrial"]
	require.Len(t, monthly, 2)
	require.Equal(t, "USD", monthly["US"].Currency)
	require.True(t, monthly["US"].Price.Equal(decimal.RequireFromString("14.99")))
	require.Equal(t, "AUD", monthly["AU"].Currency)

	annual := table["com.guardian.subscription.annual.14.freetrial"]
	require.True(t, annual["US"].Price.Equal(decimal.RequireFromString("144.99")))
}

func TestParseWithoutHeader(t *testing.T) {
	t.Parallel()

	table, err := Parse(strings.NewReader("prod.monthly,US,USD,14.99\n"))
	require.NoError(t, err)
	require.Len(t, table, 1)
}

func TestParseRejectsBadRows(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		csv  string
	}{
		{"lowercase currency", "prod,US,usd,14.99\n"},
		{"bad region code", "prod,USA,USD,14.99\n"},
		{"missing product", ",US,USD,14.99\n"},
		{"non-numeric price", "prod,US,USD,cheap\n"},
		{"duplicate entry", "prod,US,USD,14.99\nprod,US,USD,15.99\n"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(strings.NewReader(tc.csv))
			require.Error(t, err)
		})
	}
}

func TestParseRejectsThreeDecimalPrice(t *testing.T) {
	t.Parallel()

	_, err := Parse(strings.NewReader("prod,US,USD,14.999\n"))
	require.ErrorIs(t, err, constants.ErrBadPriceFormat)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	table, err := Load(path)
	require.NoError(t, err)
	require.Len(t, table, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}
