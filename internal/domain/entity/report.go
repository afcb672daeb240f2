// Package entity contains the core business objects of the project.
package entity

import "github.com/google/uuid"

// The types below are the projected result shapes of the metric pipelines.
// Each pipeline renames and selects fields into one of these before
// returning, so handlers never expose raw aggregation rows.

// ProductSales is one row of the top-selling-products report.
type ProductSales struct {
	ProductName    string `json:"product_name"`
	Category       string `json:"category"`
	TotalUnitsSold int64  `json:"total_units_sold"`
	TotalRevenue   int64  `json:"total_revenue"`
}

// HighValueUser is one row of the high-value-users report.
type HighValueUser struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	TotalSpent int64  `json:"total_spent"`
}

// ReferralChain is the report for a single user's transitive referrals.
// Chain is empty when the user exists but referred nobody.
type ReferralChain struct {
	Name  string                `json:"name"`
	Chain []*ReferralChainEntry `json:"referral_chain"`
}

// ReferralChainEntry is one referred user within a referral chain.
// Level is the hop distance from the chain's starting user.
type ReferralChainEntry struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Level  int       `json:"level"`
}

// PremiumRetention is the scalar result of the premium-retention pipeline.
type PremiumRetention struct {
	Percentage float64 `json:"percentage"`
	Count      int64   `json:"count"`
}

// StockProjection is one row of the projected-stock report. The
// projection may be fractional or negative; no clamping is applied.
type StockProjection struct {
	Name               string  `json:"name"`
	CurrentStock       int     `json:"current_stock"`
	AverageSalesPerDay float64 `json:"average_sales_per_day"`
	ProjectedStock     float64 `json:"projected_stock"`
}

// CancellationReport is one row of the cancellation-abuse report.
type CancellationReport struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	CanceledCount int64  `json:"canceled_count"`
}
