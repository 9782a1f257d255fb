package pricerise

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ougirez/price-rise/internal/domain"
	"github.com/ougirez/price-rise/internal/pkg/audit"
	"github.com/ougirez/price-rise/internal/pkg/logger"
	"github.com/ougirez/price-rise/internal/pkg/pricetable"
)

// regionCurrencyOverrides pins territories that must be priced in their
// local currency regardless of what the source table or the current config
// says. TR is a regulatory requirement, not a pricing choice.
var regionCurrencyOverrides = map[string]string{
	"TR": "TRY",
}

// pcIncreaseZeroBase is emitted in the audit row when the current price is
// zero and the relative increase is undefined.
const pcIncreaseZeroBase = "+Inf"

// ReconcileRegion decides whether one regional config gets its price
// rewritten. A region is touched only when it has an entry in targets and
// allows opt-out increases; everything else passes through unchanged. The
// returned record is nil when no rewrite happened.
func ReconcileRegion(ctx context.Context, cfg domain.RegionalConfig, targets pricetable.RegionTargets, productID string) (domain.RegionalConfig, *audit.Record, error) {
	if cfg.RegionCode == "" {
		return cfg, nil, nil
	}
	target, ok := targets[cfg.RegionCode]
	if !ok {
		return cfg, nil, nil
	}

	if !AllowsOptOut(cfg.RegionCode) {
		logger.Infof(ctx, "skipping region that doesn't allow opt-outs: %s", cfg.RegionCode)
		return cfg, nil, nil
	}

	currency := target.Currency
	if cfg.Price != nil {
		if cfg.Price.CurrencyCode != target.Currency {
			logger.Warnf(ctx, "currency mismatch for %s in %s: %s -> %s",
				productID, cfg.RegionCode, cfg.Price.CurrencyCode, target.Currency)
		}
		if cfg.Price.CurrencyCode != "" {
			currency = cfg.Price.CurrencyCode
		}
	}
	if override, ok := regionCurrencyOverrides[cfg.RegionCode]; ok {
		currency = override
	}

	current := decimal.Zero
	if cfg.Price != nil {
		var err error
		current, err = DecodePrice(*cfg.Price)
		if err != nil {
			return cfg, nil, fmt.Errorf("DecodePrice, region-%s: %w", cfg.RegionCode, err)
		}
	}

	pcIncrease := pcIncreaseZeroBase
	if !current.IsZero() {
		pcIncrease = target.Price.Sub(current).Div(current).String()
	}

	rec := &audit.Record{
		ProductID:       productID,
		RegionCode:      cfg.RegionCode,
		Currency:        currency,
		OldPrice:        current,
		NewPrice:        target.Price,
		PercentIncrease: pcIncrease,
	}

	price, err := EncodePrice(currency, target.Price)
	if err != nil {
		return cfg, nil, fmt.Errorf("EncodePrice, region-%s: %w", cfg.RegionCode, err)
	}

	updated := cfg
	updated.Price = &price
	return updated, rec, nil
}

// ReconcileBasePlan applies ReconcileRegion to every regional config and
// returns a new base plan with identical metadata. Audit records come back
// in config order.
func ReconcileBasePlan(ctx context.Context, plan domain.BasePlan, targets pricetable.RegionTargets, productID string) (domain.BasePlan, []audit.Record, error) {
	updated := plan
	updated.RegionalConfigs = make([]domain.RegionalConfig, 0, len(plan.RegionalConfigs))

	var records []audit.Record
	for _, cfg := range plan.RegionalConfigs {
		out, rec, err := ReconcileRegion(ctx, cfg, targets, productID)
		if err != nil {
			return plan, nil, fmt.Errorf("ReconcileRegion: %w", err)
		}
		if rec != nil {
			records = append(records, *rec)
		}
		updated.RegionalConfigs = append(updated.RegionalConfigs, out)
	}

	return updated, records, nil
}
