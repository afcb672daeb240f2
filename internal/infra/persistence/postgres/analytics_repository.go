// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"insight/internal/domain/entity"
	"insight/internal/domain/repository"
	"insight/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// analyticsRepository implements the repository.AnalyticsRepository
// interface. All methods are read-only aggregations pushed down to
// PostgreSQL; the database guarantees read consistency within each
// statement.
type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository is the constructor for analyticsRepository.
func NewAnalyticsRepository(db *gorm.DB) repository.AnalyticsRepository {
	return &analyticsRepository{
		db: db,
	}
}

// TopSellingProducts flattens line items of qualifying orders, groups
// them by product and attaches the catalog name and category. Products
// without a qualifying sale produce no row.
func (repo *analyticsRepository) TopSellingProducts(ctx context.Context, soldSince time.Time, limit int) ([]*entity.ProductSales, error) {
	var report []*entity.ProductSales

	if err := repo.db.WithContext(ctx).Raw(`
		SELECT p.name AS product_name,
		       p.category,
		       SUM(oi.quantity) AS total_units_sold,
		       SUM(oi.quantity * oi.unit_price) AS total_revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.order_date >= ?
		GROUP BY p.id, p.name, p.category
		ORDER BY total_units_sold DESC
		LIMIT ?`, soldSince, limit).
		Scan(&report).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate top selling products")
	}

	return report, nil
}

// HighValueUsers left-joins every user to their orders so that users
// without orders still sum to zero, then keeps sums strictly above the
// threshold.
func (repo *analyticsRepository) HighValueUsers(ctx context.Context, minTotalSpent int64) ([]*entity.HighValueUser, error) {
	var report []*entity.HighValueUser

	if err := repo.db.WithContext(ctx).Raw(`
		SELECT u.name,
		       u.email,
		       COALESCE(SUM(o.total_amount), 0) AS total_spent
		FROM users u
		LEFT JOIN orders o ON o.user_id = u.id
		GROUP BY u.id, u.name, u.email
		HAVING COALESCE(SUM(o.total_amount), 0) > ?`, minTotalSpent).
		Scan(&report).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate high value users")
	}

	return report, nil
}

// CountPremiumUsers counts all premium users regardless of join date.
func (repo *analyticsRepository) CountPremiumUsers(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("is_premium_member = ?", true).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count premium users")
	}

	return count, nil
}

// CountRetainedPremiumUsers counts distinct premium users who joined
// before the membership cutoff and ordered within the recency window.
func (repo *analyticsRepository) CountRetainedPremiumUsers(ctx context.Context, joinedBefore, orderedSince time.Time) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).Raw(`
		SELECT COUNT(DISTINCT u.id)
		FROM users u
		JOIN orders o ON o.user_id = u.id
		WHERE u.is_premium_member
		  AND u.date_joined < ?
		  AND o.order_date >= ?`, joinedBefore, orderedSince).
		Scan(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count retained premium users")
	}

	return count, nil
}

// ProductSalesRates averages per-line quantities of recent orders per
// product. The outer join preserves products without recent sales; their
// NULL average coalesces to zero rather than dropping the row.
func (repo *analyticsRepository) ProductSalesRates(ctx context.Context, orderedSince time.Time) ([]*entity.StockProjection, error) {
	var report []*entity.StockProjection

	if err := repo.db.WithContext(ctx).Raw(`
		SELECT p.name,
		       p.stock AS current_stock,
		       COALESCE(AVG(recent.quantity), 0) AS average_sales_per_day
		FROM products p
		LEFT JOIN (
			SELECT oi.product_id, oi.quantity
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE o.order_date >= ?
		) recent ON recent.product_id = p.id
		GROUP BY p.id, p.name, p.stock`, orderedSince).
		Scan(&report).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate product sales rates")
	}

	return report, nil
}

// CancellationCounts groups orders with the exact given status by user
// and keeps counts strictly above minCount.
func (repo *analyticsRepository) CancellationCounts(ctx context.Context, status string, canceledSince time.Time, minCount int64) ([]*entity.CancellationReport, error) {
	var report []*entity.CancellationReport

	if err := repo.db.WithContext(ctx).Raw(`
		SELECT u.name,
		       u.email,
		       COUNT(o.id) AS canceled_count
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.status = ?
		  AND o.order_date >= ?
		GROUP BY u.id, u.name, u.email
		HAVING COUNT(o.id) > ?`, status, canceledSince, minCount).
		Scan(&report).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate cancellation counts")
	}

	return report, nil
}

// FindUsersReferredBy returns every user whose referred_by matches one
// of the given referral codes.
func (repo *analyticsRepository) FindUsersReferredBy(ctx context.Context, codes []string) ([]*entity.User, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	var userModels []*model.UserModel
	if err := repo.db.WithContext(ctx).
		Where("referred_by IN ?", codes).
		Find(&userModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find users by referral codes")
	}

	users := make([]*entity.User, 0, len(userModels))
	for _, userM := range userModels {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}
