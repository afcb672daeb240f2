package impl

import (
	"context"
	"time"

	"insight/config"
	"insight/internal/domain/entity"
	"insight/internal/domain/repository"
	"insight/internal/domain/service"
	"insight/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// canceledStatus is matched exactly; the store does not enforce a status
// enumeration.
const canceledStatus = "canceled"

const defaultReportTTL = time.Minute

// Cache keys for the input-less reports. The referral chain takes a user
// id and is never cached.
const (
	cacheKeyTopProducts      = "report:top-products"
	cacheKeyHighValueUsers   = "report:high-value-users"
	cacheKeyPremiumRetention = "report:premium-retention"
	cacheKeyProjectedStock   = "report:projected-stock"
	cacheKeyCancellations    = "report:cancellation-abuse"
)

type analyticsService struct {
	analyticsRepo repository.AnalyticsRepository
	userRepo      repository.UserRepository
	cache         service.ReportCache
	cfg           *config.AnalyticsConfig
	reportTTL     time.Duration
}

// AnalyticsServiceParams holds dependencies for AnalyticsService, injected by Fx.
type AnalyticsServiceParams struct {
	fx.In

	AnalyticsRepo repository.AnalyticsRepository
	UserRepo      repository.UserRepository
	Cache         service.ReportCache
	Config        *config.Config
}

// NewAnalyticsService creates the analytics service backing the six
// metric pipelines. Cache may be nil, in which case every invocation
// recomputes its report.
func NewAnalyticsService(params AnalyticsServiceParams) usecase.AnalyticsUsecase {
	reportTTL := defaultReportTTL
	if params.Config.Redis != nil && params.Config.Redis.ReportTTL > 0 {
		reportTTL = params.Config.Redis.ReportTTL
	}

	return &analyticsService{
		analyticsRepo: params.AnalyticsRepo,
		userRepo:      params.UserRepo,
		cache:         params.Cache,
		cfg:           params.Config.Analytics,
		reportTTL:     reportTTL,
	}
}

// TopSellingProducts reports the best sellers of the recent sales window.
func (s *analyticsService) TopSellingProducts(ctx context.Context) ([]*entity.ProductSales, error) {
	return cachedReport(ctx, s, cacheKeyTopProducts, func(ctx context.Context) ([]*entity.ProductSales, error) {
		soldSince := time.Now().AddDate(0, 0, -s.cfg.TopProductsWindowDays)

		report, err := s.analyticsRepo.TopSellingProducts(ctx, soldSince, s.cfg.TopProductsLimit)
		if err != nil {
			return nil, errors.Wrap(err, "failed to aggregate top selling products")
		}

		return report, nil
	})
}

// HighValueUsers reports users whose lifetime spending strictly exceeds
// the configured threshold. Users without orders sum to zero and never
// pass the threshold.
func (s *analyticsService) HighValueUsers(ctx context.Context) ([]*entity.HighValueUser, error) {
	return cachedReport(ctx, s, cacheKeyHighValueUsers, func(ctx context.Context) ([]*entity.HighValueUser, error) {
		report, err := s.analyticsRepo.HighValueUsers(ctx, s.cfg.HighValueMinSpent)
		if err != nil {
			return nil, errors.Wrap(err, "failed to aggregate high value users")
		}

		return report, nil
	})
}

// ReferralChain reports the transitive referrals of one user. An unknown
// id yields an empty sequence, distinct from a found user without
// referrals, which yields a single element with an empty chain.
func (s *analyticsService) ReferralChain(ctx context.Context, userID uuid.UUID) ([]*entity.ReferralChain, error) {
	target, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return []*entity.ReferralChain{}, nil
		}

		return nil, errors.Wrap(err, "failed to resolve referral chain target")
	}

	chain, err := s.collectReferrals(ctx, target)
	if err != nil {
		return nil, err
	}

	return []*entity.ReferralChain{{Name: target.Name, Chain: chain}}, nil
}

// collectReferrals walks referral_code -> referred_by links breadth
// first. Referral codes are untrusted free-form strings, so the walk
// tracks visited user ids to terminate on cycles; the breadth-first
// order makes each entry's level the minimal hop distance from the
// target.
func (s *analyticsService) collectReferrals(ctx context.Context, target *entity.User) ([]*entity.ReferralChainEntry, error) {
	chain := make([]*entity.ReferralChainEntry, 0)
	if target.ReferralCode == nil || *target.ReferralCode == "" {
		return chain, nil
	}

	visited := map[uuid.UUID]struct{}{target.ID: {}}
	seenCodes := map[string]struct{}{*target.ReferralCode: {}}
	frontier := []string{*target.ReferralCode}

	for level := 1; len(frontier) > 0; level++ {
		referred, err := s.analyticsRepo.FindUsersReferredBy(ctx, frontier)
		if err != nil {
			return nil, errors.Wrap(err, "failed to expand referral frontier")
		}

		var next []string
		for _, user := range referred {
			if _, ok := visited[user.ID]; ok {
				continue
			}
			visited[user.ID] = struct{}{}

			chain = append(chain, &entity.ReferralChainEntry{
				UserID: user.ID,
				Name:   user.Name,
				Email:  user.Email,
				Level:  level,
			})

			if user.ReferralCode == nil || *user.ReferralCode == "" {
				continue
			}
			if _, ok := seenCodes[*user.ReferralCode]; ok {
				continue
			}
			seenCodes[*user.ReferralCode] = struct{}{}
			next = append(next, *user.ReferralCode)
		}

		frontier = next
	}

	return chain, nil
}

// PremiumRetention reports how many long-standing premium users ordered
// recently. The denominator deliberately counts all premium users
// regardless of join date while the numerator is join-age filtered. The
// asymmetry is intentional.
func (s *analyticsService) PremiumRetention(ctx context.Context) (*entity.PremiumRetention, error) {
	return cachedReport(ctx, s, cacheKeyPremiumRetention, func(ctx context.Context) (*entity.PremiumRetention, error) {
		total, err := s.analyticsRepo.CountPremiumUsers(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to count premium users")
		}

		now := time.Now()
		retained, err := s.analyticsRepo.CountRetainedPremiumUsers(ctx,
			now.AddDate(0, 0, -s.cfg.RetentionMembershipDays),
			now.AddDate(0, 0, -s.cfg.RetentionOrderWindowDays),
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to count retained premium users")
		}

		percentage := 0.0
		if total > 0 {
			percentage = float64(retained) / float64(total) * 100
		}

		return &entity.PremiumRetention{
			Percentage: percentage,
			Count:      retained,
		}, nil
	})
}

// ProjectedStock reports the expected stock level per product after the
// projection horizon. The sales rate is the literal mean of per-line
// quantities within the window, not a sum divided by the window length;
// projections may be fractional or negative.
func (s *analyticsService) ProjectedStock(ctx context.Context) ([]*entity.StockProjection, error) {
	return cachedReport(ctx, s, cacheKeyProjectedStock, func(ctx context.Context) ([]*entity.StockProjection, error) {
		orderedSince := time.Now().AddDate(0, 0, -s.cfg.StockSalesWindowDays)

		report, err := s.analyticsRepo.ProductSalesRates(ctx, orderedSince)
		if err != nil {
			return nil, errors.Wrap(err, "failed to aggregate product sales rates")
		}

		horizon := float64(s.cfg.StockProjectionDays)
		for _, row := range report {
			row.ProjectedStock = float64(row.CurrentStock) - row.AverageSalesPerDay*horizon
		}

		return report, nil
	})
}

// CancellationAbuse reports users whose canceled orders within the
// window strictly exceed the configured tolerance.
func (s *analyticsService) CancellationAbuse(ctx context.Context) ([]*entity.CancellationReport, error) {
	return cachedReport(ctx, s, cacheKeyCancellations, func(ctx context.Context) ([]*entity.CancellationReport, error) {
		canceledSince := time.Now().AddDate(0, 0, -s.cfg.CancellationWindowDays)

		report, err := s.analyticsRepo.CancellationCounts(ctx, canceledStatus, canceledSince, s.cfg.CancellationMinCount)
		if err != nil {
			return nil, errors.Wrap(err, "failed to aggregate cancellation counts")
		}

		return report, nil
	})
}

// cachedReport serves a report from the cache when possible. Cache
// errors fall through to a fresh computation and a failed write never
// fails the report; the cache only ever holds whole results.
func cachedReport[T any](ctx context.Context, s *analyticsService, key string, compute func(context.Context) (T, error)) (T, error) {
	var zero T

	if s.cache != nil {
		var cached T
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	report, err := compute(ctx)
	if err != nil {
		return zero, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, report, s.reportTTL)
	}

	return report, nil
}
