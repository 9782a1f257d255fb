// Package migration moves existing subscribers onto the current price after
// a rise has been published, one opt-out migration request per product.
package migration

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ougirez/price-rise/internal/domain"
	"github.com/ougirez/price-rise/internal/pkg/constants"
	"github.com/ougirez/price-rise/internal/pkg/logger"
	"github.com/ougirez/price-rise/internal/pkg/pricetable"
	"github.com/ougirez/price-rise/internal/pkg/publisher"
	"github.com/ougirez/price-rise/internal/service/pricerise"
)

type Options struct {
	PackageName    string
	RegionsVersion string
	DryRun         bool
}

type Service struct {
	api  publisher.API
	opts Options
	now  func() time.Time
}

func NewService(api publisher.API, opts Options) *Service {
	return &Service{api: api, opts: opts, now: time.Now}
}

// Run migrates legacy price cohorts for every product of the table.
func (s *Service) Run(ctx context.Context, table pricetable.Table) error {
	ctx = logger.ContextWithRunID(ctx, uuid.NewString())
	logger.Infof(ctx, "starting price migration for %d products, dry_run=%t", len(table), s.opts.DryRun)

	var (
		failed   []string
		failedMx sync.Mutex
	)
	eg, egCtx := errgroup.WithContext(ctx)
	for productID := range table {
		productID := productID
		eg.Go(func() error {
			if err := s.migrateProduct(egCtx, productID); err != nil {
				logger.Errorf(egCtx, "migrateProduct, product_id-%s: %s", productID, err.Error())

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
		return fmt.Errorf("failed to migrate %d of %d products: %s",
			len(failed), len(table), strings.Join(failed, ", "))
	}

	return nil
}

func (s *Service) migrateProduct(ctx context.Context, productID string) error {
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
	plan := sub.BasePlans[0]

	configs := BuildMigrationConfigs(plan.RegionalConfigs, s.now())
	if len(configs) == 0 {
		logger.Infof(ctx, "product %s has no migratable regions", productID)
		return nil
	}

	logger.Infof(ctx, "migrating %s: %d regions", productID, len(configs))
	if s.opts.DryRun {
		return nil
	}

	req := &domain.BatchMigrateBasePlanPricesRequest{
		Requests: []domain.MigrateBasePlanPricesRequest{{
			PackageName:             s.opts.PackageName,
			ProductID:               productID,
			BasePlanID:              plan.BasePlanID,
			RegionalPriceMigrations: configs,
			RegionsVersion:          domain.RegionsVersion{Version: s.opts.RegionsVersion},
		}},
	}
	if err := s.api.BatchMigratePrices(ctx, s.opts.PackageName, productID, req); err != nil {
		return fmt.Errorf("api.BatchMigratePrices: %w", err)
	}

	logger.Infof(ctx, "migrated prices for %s", productID)
	return nil
}

// BuildMigrationConfigs produces one opt-out migration entry per eligible
// region of the base plan. Subscribers in cohorts older than oldest are
// moved to the current price.
func BuildMigrationConfigs(configs []domain.RegionalConfig, oldest time.Time) []domain.RegionalPriceMigrationConfig {
	out := make([]domain.RegionalPriceMigrationConfig, 0, len(configs))
	for _, cfg := range configs {
		if cfg.RegionCode == "" || !pricerise.AllowsOptOut(cfg.RegionCode) {
			continue
		}
		out = append(out, domain.RegionalPriceMigrationConfig{
			RegionCode:                    cfg.RegionCode,
			OldestAllowedPriceVersionTime: oldest.UTC().Format(time.RFC3339),
			PriceIncreaseType:             domain.PriceIncreaseTypeOptOut,
		})
	}
	return out
}
