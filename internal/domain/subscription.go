package domain

import "encoding/json"

// Money mirrors the publisher API money shape: whole units as a decimal
// string plus a nanos field scaled by 1e9.
type Money struct {
	CurrencyCode string `json:"currencyCode,omitempty"`
	Units        string `json:"units,omitempty"`
	Nanos        int64  `json:"nanos,omitempty"`
}

// RegionalConfig is the per-region price and availability entry of a base plan.
type RegionalConfig struct {
	RegionCode                string `json:"regionCode,omitempty"`
	NewSubscriberAvailability bool   `json:"newSubscriberAvailability,omitempty"`
	Price                     *Money `json:"price,omitempty"`
}

// BasePlan is the publisher's top-level pricing configuration for a
// subscription product. Non-price fields are kept as raw JSON so a PATCH
// sends back exactly what the publisher returned.
type BasePlan struct {
	BasePlanID               string           `json:"basePlanId,omitempty"`
	State                    string           `json:"state,omitempty"`
	RegionalConfigs          []RegionalConfig `json:"regionalConfigs,omitempty"`
	AutoRenewingBasePlanType json.RawMessage  `json:"autoRenewingBasePlanType,omitempty"`
	PrepaidBasePlanType      json.RawMessage  `json:"prepaidBasePlanType,omitempty"`
	OtherRegionsConfig       json.RawMessage  `json:"otherRegionsConfig,omitempty"`
	OfferTags                json.RawMessage  `json:"offerTags,omitempty"`
}

type Subscription struct {
	PackageName              string          `json:"packageName,omitempty"`
	ProductID                string          `json:"productId,omitempty"`
	BasePlans                []BasePlan      `json:"basePlans,omitempty"`
	Listings                 json.RawMessage `json:"listings,omitempty"`
	Archived                 bool            `json:"archived,omitempty"`
	TaxAndComplianceSettings json.RawMessage `json:"taxAndComplianceSettings,omitempty"`
}
