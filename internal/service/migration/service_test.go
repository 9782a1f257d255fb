package migration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/price-rise/internal/domain"
	"github.com/ougirez/price-rise/internal/pkg/pricetable"
)

type fakeAPI struct {
	mu       sync.Mutex
	sub      *domain.Subscription
	migrated []*domain.BatchMigrateBasePlanPricesRequest
}

func (f *fakeAPI) GetSubscription(context.Context, string, string) (*domain.Subscription, error) {
	return f.sub, nil
}

func (f *fakeAPI) PatchSubscription(context.Context, *domain.Subscription, string) error {
	return nil
}

func (f *fakeAPI) BatchMigratePrices(_ context.Context, _, _ string, req *domain.BatchMigrateBasePlanPricesRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.migrated = append(f.migrated, req)
	return nil
}

func TestBuildMigrationConfigsFiltersNonOptOutRegions(t *testing.T) {
	t.Parallel()

	configs := []domain.RegionalConfig{
		{RegionCode: "US"},
		{RegionCode: "AE"},
		{RegionCode: ""},
		{RegionCode: "DE"},
	}
	oldest := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	out := BuildMigrationConfigs(configs, oldest)
	require.Len(t, out, 2)
	for _, cfg := range out {
		require.Equal(t, "2025-03-05T00:00:00Z", cfg.OldestAllowedPriceVersionTime)
		require.Equal(t, domain.PriceIncreaseTypeOptOut, cfg.PriceIncreaseType)
	}
	require.Equal(t, "US", out[0].RegionCode)
	require.Equal(t, "DE", out[1].RegionCode)
}

func testTable() pricetable.Table {
	return pricetable.Table{
		"prod.monthly": {
			"US": {Currency: "USD", Price: decimal.RequireFromString("14.99")},
		},
	}
}

func testSub() *domain.Subscription {
	return &domain.Subscription{
		ProductID: "prod.monthly",
		BasePlans: []domain.BasePlan{{
			BasePlanID: "p1m",
			RegionalConfigs: []domain.RegionalConfig{
				{RegionCode: "US"},
				{RegionCode: "AE"},
			},
		}},
	}
}

func TestRunSubmitsOneRequestPerProduct(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{sub: testSub()}
	svc := NewService(api, Options{PackageName: "com.guardian", RegionsVersion: "2025/01"})

	err := svc.Run(context.Background(), testTable())
	require.NoError(t, err)

	require.Len(t, api.migrated, 1)
	require.Len(t, api.migrated[0].Requests, 1)

	req := api.migrated[0].Requests[0]
	require.Equal(t, "p1m", req.BasePlanID)
	require.Equal(t, "2025/01", req.RegionsVersion.Version)
	require.Len(t, req.RegionalPriceMigrations, 1)
	require.Equal(t, "US", req.RegionalPriceMigrations[0].RegionCode)
}

func TestRunDryRunSkipsSubmit(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{sub: testSub()}
	svc := NewService(api, Options{PackageName: "com.guardian", RegionsVersion: "2025/01", DryRun: true})

	err := svc.Run(context.Background(), testTable())
	require.NoError(t, err)
	require.Empty(t, api.migrated)
}
