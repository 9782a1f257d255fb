// Package pricetable loads the per-region target prices for each product.
package pricetable

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/ougirez/price-rise/internal/pkg/constants"
)

// Target is the wanted price for one (product, region) pair.
type Target struct {
	Currency string
	Price    decimal.Decimal
}

// RegionTargets maps an ISO 3166-2 region code to its target price.
type RegionTargets map[string]Target

// Table maps a product identifier to its region targets.
type Table map[string]RegionTargets

type row struct {
	ProductID string `validate:"required"`
	Region    string `validate:"required,len=2,uppercase"`
	Currency  string `validate:"required,len=3,uppercase"`
	Price     string `validate:"required"`
}

var validate = validator.New()

// Load reads the price rise CSV at path.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	table, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return table, nil
}

// Parse decodes rows of the form product_id,region,currency,new_price into a
// Table. A leading header row is skipped. Duplicate (product, region) pairs
// are rejected.
func Parse(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	table := make(Table)
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv.Read: %w", err)
		}
		line++

		if line == 1 && rec[0] == "product_id" {
			continue
		}
		if len(rec) != 4 {
			return nil, fmt.Errorf("line %d: expected 4 columns, got %d", line, len(rec))
		}

		rw := row{ProductID: rec[0], Region: rec[1], Currency: rec[2], Price: rec[3]}
		if err := validate.Struct(rw); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		price, err := decimal.NewFromString(rw.Price)
		if err != nil {
			return nil, fmt.Errorf("line %d: decimal.NewFromString: %w", line, err)
		}
		if !price.Round(2).Equal(price) || price.IsNegative() {
			return nil, fmt.Errorf("line %d, price %s: %w", line, rw.Price, constants.ErrBadPriceFormat)
		}

		regions, ok := table[rw.ProductID]
		if !ok {
			regions = make(RegionTargets)
			table[rw.ProductID] = regions
		}
		if _, ok := regions[rw.Region]; ok {
			return nil, fmt.Errorf("line %d: duplicate entry for %s/%s", line, rw.ProductID, rw.Region)
		}
		regions[rw.Region] = Target{Currency: rw.Currency, Price: price}
	}

	return table, nil
}
