package usecase

import (
	"context"

	"insight/internal/domain/entity"

	"github.com/google/uuid"
)

// AnalyticsUsecase defines the six metric pipelines of the reporting core.
// Every method is a pure, stateless read: safe under concurrent
// invocation, all-or-nothing in outcome, never retried internally.
type AnalyticsUsecase interface {
	// TopSellingProducts reports the best selling products of the recent
	// sales window, at most the configured limit, sorted descending by
	// units sold.
	TopSellingProducts(ctx context.Context) ([]*entity.ProductSales, error)

	// HighValueUsers reports users whose lifetime order total strictly
	// exceeds the configured threshold.
	HighValueUsers(ctx context.Context) ([]*entity.HighValueUser, error)

	// ReferralChain reports the transitive referrals of one user as a
	// single-element sequence, or an empty sequence when the user does
	// not exist. A user without referrals yields an empty chain.
	ReferralChain(ctx context.Context, userID uuid.UUID) ([]*entity.ReferralChain, error)

	// PremiumRetention reports how many long-standing premium users
	// ordered recently, as a count and a percentage of all premium users.
	PremiumRetention(ctx context.Context) (*entity.PremiumRetention, error)

	// ProjectedStock reports the expected stock level per product after
	// the configured projection horizon at recent sales rates.
	ProjectedStock(ctx context.Context) ([]*entity.StockProjection, error)

	// CancellationAbuse reports users who canceled more orders within the
	// window than the configured tolerance.
	CancellationAbuse(ctx context.Context) ([]*entity.CancellationReport, error)
}
