// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"insight/internal/domain/entity"
)

// AnalyticsRepository is the read-only aggregation contract the metric
// pipelines consume. Every method is a pure query: implementations push
// filtering, grouping and joining down to the store and never mutate
// records. Time windows arrive as absolute cutoffs so the store stays
// clock-free and the pipelines stay deterministic under test.
type AnalyticsRepository interface {
	// TopSellingProducts flattens line items of orders placed at or after
	// soldSince, groups them by product summing quantity and
	// quantity*unit_price, attaches the product name and category, and
	// returns at most limit rows sorted descending by units sold.
	// Products without a qualifying sale are absent, not zero-filled.
	TopSellingProducts(ctx context.Context, soldSince time.Time, limit int) ([]*entity.ProductSales, error)

	// HighValueUsers left-joins every user to their orders, sums
	// total_amount per user and keeps only users whose sum is strictly
	// greater than minTotalSpent. Users without orders sum to zero.
	HighValueUsers(ctx context.Context, minTotalSpent int64) ([]*entity.HighValueUser, error)

	// CountPremiumUsers counts all premium users regardless of join date.
	CountPremiumUsers(ctx context.Context) (int64, error)

	// CountRetainedPremiumUsers counts distinct premium users who joined
	// strictly before joinedBefore and placed at least one order at or
	// after orderedSince.
	CountRetainedPremiumUsers(ctx context.Context, joinedBefore, orderedSince time.Time) (int64, error)

	// ProductSalesRates returns one row per product carrying its current
	// stock and the mean of per-order-line quantities among orders placed
	// at or after orderedSince. Products without a qualifying line keep a
	// row with a zero average (outer join preserves the product).
	// ProjectedStock is left for the caller to fill.
	ProductSalesRates(ctx context.Context, orderedSince time.Time) ([]*entity.StockProjection, error)

	// CancellationCounts groups orders with the exact given status placed
	// at or after canceledSince by user, keeps groups whose count is
	// strictly greater than minCount, and attaches user name and email.
	CancellationCounts(ctx context.Context, status string, canceledSince time.Time, minCount int64) ([]*entity.CancellationReport, error)

	// FindUsersReferredBy returns every user whose referred_by value
	// matches one of the given referral codes. Used by the referral chain
	// traversal to expand one frontier level at a time.
	FindUsersReferredBy(ctx context.Context, codes []string) ([]*entity.User, error)
}
