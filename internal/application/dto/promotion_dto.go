package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PromotionRequest alta o edición de una promoción.
type PromotionRequest struct {
	Code              string           `json:"code,omitempty"`
	Name              string           `json:"name"`
	Scope             string           `json:"scope"`
	Type              string           `json:"type"`
	Value             decimal.Decimal  `json:"value"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount,omitempty"`
	MinOrderValue     decimal.Decimal  `json:"min_order_value"`
	StartDate         time.Time        `json:"start_date"`
	EndDate           time.Time        `json:"end_date"`
	Status            string           `json:"status,omitempty"`
	UsageLimit        int              `json:"usage_limit,omitempty"`
	UsagePerCustomer  int              `json:"usage_per_customer,omitempty"`
	RequiresCode      bool             `json:"requires_code,omitempty"`
	Priority          int              `json:"priority,omitempty"`
	ConflictIDs       []string         `json:"conflict_ids,omitempty"`
	EligibleTierIDs   []string         `json:"eligible_tier_ids,omitempty"`
	TargetProductIDs  []string         `json:"target_product_ids,omitempty"`
	TargetCategoryIDs []string         `json:"target_category_ids,omitempty"`
}

// PromotionResponse promoción con su contador de uso.
type PromotionResponse struct {
	ID                string           `json:"id"`
	Code              string           `json:"code,omitempty"`
	Name              string           `json:"name"`
	Scope             string           `json:"scope"`
	Type              string           `json:"type"`
	Value             decimal.Decimal  `json:"value"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount,omitempty"`
	MinOrderValue     decimal.Decimal  `json:"min_order_value"`
	StartDate         time.Time        `json:"start_date"`
	EndDate           time.Time        `json:"end_date"`
	Status            string           `json:"status"`
	UsageLimit        int              `json:"usage_limit"`
	UsageCount        int              `json:"usage_count"`
	UsagePerCustomer  int              `json:"usage_per_customer"`
	RequiresCode      bool             `json:"requires_code"`
	Priority          int              `json:"priority"`
}
