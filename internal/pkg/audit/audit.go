// Package audit writes the append-only record of every price that was changed.
package audit

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"github.com/shopspring/decimal"
)

// Record is one rewritten region: old and new price plus the computed
// relative increase (already formatted, so a division-by-zero sentinel can
// be carried through as-is).
type Record struct {
	ProductID       string
	RegionCode      string
	Currency        string
	OldPrice        decimal.Decimal
	NewPrice        decimal.Decimal
	PercentIncrease string
}

var header = []string{"productId", "regionCode", "currency", "oldPrice", "newPrice", "pcIncrease"}

// Writer is a single CSV sink shared by all product goroutines. Writes are
// serialized by a mutex so rows never interleave.
type Writer struct {
	mu sync.Mutex
	f  *os.File
	w  *csv.Writer
}

func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("os.Create: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	return &Writer{f: f, w: w}, nil
}

func (w *Writer) Write(rec Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.w.Write([]string{
		rec.ProductID,
		rec.RegionCode,
		rec.Currency,
		rec.OldPrice.StringFixed(2),
		rec.NewPrice.StringFixed(2),
		rec.PercentIncrease,
	})
}

// Close flushes buffered rows and closes the file. Safe to defer on every
// exit path.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.w.Flush()
	flushErr := w.w.Error()
	closeErr := w.f.Close()
	if flushErr != nil {
		return fmt.Errorf("flush: %w", flushErr)
	}
	return closeErr
}
