package domain

// PriceIncreaseTypeOptOut marks a migration where subscribers only receive a
// notification and may opt out, instead of having to actively re-consent.
const PriceIncreaseTypeOptOut = "PRICE_INCREASE_TYPE_OPT_OUT"

type RegionsVersion struct {
	Version string `json:"version,omitempty"`
}

// RegionalPriceMigrationConfig moves the legacy price cohorts of one region
// onto the current price.
type RegionalPriceMigrationConfig struct {
	RegionCode                    string `json:"regionCode,omitempty"`
	OldestAllowedPriceVersionTime string `json:"oldestAllowedPriceVersionTime,omitempty"`
	PriceIncreaseType             string `json:"priceIncreaseType,omitempty"`
}

type MigrateBasePlanPricesRequest struct {
	PackageName             string                         `json:"packageName,omitempty"`
	ProductID               string                         `json:"productId,omitempty"`
	BasePlanID              string                         `json:"basePlanId,omitempty"`
	RegionalPriceMigrations []RegionalPriceMigrationConfig `json:"regionalPriceMigrations,omitempty"`
	RegionsVersion          RegionsVersion                 `json:"regionsVersion,omitempty"`
}

type BatchMigrateBasePlanPricesRequest struct {
	Requests []MigrateBasePlanPricesRequest `json:"requests"`
}
