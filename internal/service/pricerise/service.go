// Package pricerise drives the bulk subscription price update: for each
// product it fetches the current base plan, reconciles it against the price
// table and submits the result back, recording every change in the audit
// sink.
package pricerise

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ougirez/price-rise/internal/domain"
	"github.com/ougirez/price-rise/internal/pkg/audit"
	"github.com/ougirez/price-rise/internal/pkg/constants"
	"github.com/ougirez/price-rise/internal/pkg/logger"
	"github.com/ougirez/price-rise/internal/pkg/pricetable"
	"github.com/ougirez/price-rise/internal/pkg/publisher"
)

type Options struct {
	PackageName    string
	RegionsVersion string
	DryRun         bool
}

type Service struct {
	api  publisher.API
	sink *audit.Writer
	opts Options
}

func NewService(api publisher.API, sink *audit.Writer, opts Options) *Service {
	return &Service{api: api, sink: sink, opts: opts}
}

// Run processes every product of the table with parallel fan-out. One
// product's failure never aborts the others; failed products are collected
// and reported in the returned error.
func (s *Service) Run(ctx context.Context, table pricetable.Table) error {
	ctx = logger.ContextWithRunID(ctx, uuid.NewString())
	logger.Infof(ctx, "starting price rise for %d products, dry_run=%t", len(table), s.opts.DryRun)

	var (
		failed   []string
		failedMx sync.Mutex
	)
	eg, egCtx := errgroup.WithContext(ctx)
	for productID, targets := range table {
		productID, targets := productID, targets
		eg.Go(func() error {
			if err := s.processProduct(egCtx, productID, targets); err != nil {
				logger.Errorf(egCtx, "processProduct, product_id-%s: %s", productID, err.Error())

				failedMx.Lock()
				defer failedMx.Unlock()
				failed = append(failed, productID)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("err in goroutine: %w", err)
	}

	if len(failed) > 0 {
		return fmt.Errorf("failed to update %d of %d products: %s",
			len(failed), len(table), strings.Join(failed, ", "))
	}

	return nil
}

func (s *Service) processProduct(ctx context.Context, productID string, targets pricetable.RegionTargets) error {
	logger.Infof(ctx, "updating product %s in %d regions", productID, len(targets))

	sub, err := s.api.GetSubscription(ctx, s.opts.PackageName, productID)
	if err != nil {
		return fmt.Errorf("api.GetSubscription: %w", err)
	}
	if len(sub.BasePlans) == 0 {
		return fmt.Errorf("product %s: %w", productID, constants.ErrNoBasePlan)
	}
	if len(sub.BasePlans) > 1 {
		logger.Warnf(ctx, "product %s has %d base plans, using the first", productID, len(sub.BasePlans))
	}

	updated, records, err := ReconcileBasePlan(ctx, sub.BasePlans[0], targets, productID)
	if err != nil {
		return fmt.Errorf("ReconcileBasePlan: %w", err)
	}

	for _, rec := range records {
		if err := s.sink.Write(rec); err != nil {
			return fmt.Errorf("sink.Write: %w", err)
		}
	}

	if s.opts.DryRun {
		logger.Infof(ctx, "dry run: skipping submit for %s, %d regions rewritten", productID, len(records))
		return nil
	}

	patched := *sub
	patched.BasePlans = []domain.BasePlan{updated}
	if err := s.api.PatchSubscription(ctx, &patched, s.opts.RegionsVersion); err != nil {
		return fmt.Errorf("api.PatchSubscription: %w", err)
	}

	logger.Infof(ctx, "updated prices for %s, %d regions rewritten", productID, len(records))
	return nil
}
