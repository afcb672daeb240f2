package impl

import (
	"context"
	"sort"
	"testing"
	"time"

	"insight/config"
	"insight/internal/domain/entity"
	"insight/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory document store implementing both the user and
// analytics repository contracts, computing the same aggregations the SQL
// implementation pushes down to the database.
type fakeStore struct {
	users    []*entity.User
	orders   []*entity.Order
	products []*entity.Product
}

func (s *fakeStore) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (s *fakeStore) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (s *fakeStore) Create(_ context.Context, user *entity.User) error {
	s.users = append(s.users, user)

	return nil
}

func (s *fakeStore) TopSellingProducts(_ context.Context, soldSince time.Time, limit int) ([]*entity.ProductSales, error) {
	type agg struct {
		units   int64
		revenue int64
	}
	sales := make(map[uuid.UUID]*agg)
	for _, order := range s.orders {
		if order.OrderDate.Before(soldSince) {
			continue
		}
		for _, item := range order.Items {
			row, ok := sales[item.ProductID]
			if !ok {
				row = &agg{}
				sales[item.ProductID] = row
			}
			row.units += int64(item.Quantity)
			row.revenue += int64(item.Quantity) * item.UnitPrice
		}
	}

	report := make([]*entity.ProductSales, 0, len(sales))
	for _, product := range s.products {
		row, ok := sales[product.ID]
		if !ok {
			continue
		}
		report = append(report, &entity.ProductSales{
			ProductName:    product.Name,
			Category:       product.Category,
			TotalUnitsSold: row.units,
			TotalRevenue:   row.revenue,
		})
	}
	sort.Slice(report, func(i, j int) bool {
		return report[i].TotalUnitsSold > report[j].TotalUnitsSold
	})
	if len(report) > limit {
		report = report[:limit]
	}

	return report, nil
}

func (s *fakeStore) HighValueUsers(_ context.Context, minTotalSpent int64) ([]*entity.HighValueUser, error) {
	totals := make(map[uuid.UUID]int64)
	for _, order := range s.orders {
		totals[order.UserID] += order.TotalAmount
	}

	var report []*entity.HighValueUser
	for _, user := range s.users {
		if totals[user.ID] > minTotalSpent {
			report = append(report, &entity.HighValueUser{
				Name:       user.Name,
				Email:      user.Email,
				TotalSpent: totals[user.ID],
			})
		}
	}

	return report, nil
}

func (s *fakeStore) CountPremiumUsers(_ context.Context) (int64, error) {
	var count int64
	for _, user := range s.users {
		if user.IsPremiumMember {
			count++
		}
	}

	return count, nil
}

func (s *fakeStore) CountRetainedPremiumUsers(_ context.Context, joinedBefore, orderedSince time.Time) (int64, error) {
	var count int64
	for _, user := range s.users {
		if !user.IsPremiumMember || !user.DateJoined.Before(joinedBefore) {
			continue
		}
		for _, order := range s.orders {
			if order.UserID == user.ID && !order.OrderDate.Before(orderedSince) {
				count++

				break
			}
		}
	}

	return count, nil
}

func (s *fakeStore) ProductSalesRates(_ context.Context, orderedSince time.Time) ([]*entity.StockProjection, error) {
	quantities := make(map[uuid.UUID][]int)
	for _, order := range s.orders {
		if order.OrderDate.Before(orderedSince) {
			continue
		}
		for _, item := range order.Items {
			quantities[item.ProductID] = append(quantities[item.ProductID], item.Quantity)
		}
	}

	report := make([]*entity.StockProjection, 0, len(s.products))
	for _, product := range s.products {
		average := 0.0
		if lines := quantities[product.ID]; len(lines) > 0 {
			sum := 0
			for _, quantity := range lines {
				sum += quantity
			}
			average = float64(sum) / float64(len(lines))
		}
		report = append(report, &entity.StockProjection{
			Name:               product.Name,
			CurrentStock:       product.Stock,
			AverageSalesPerDay: average,
		})
	}

	return report, nil
}

func (s *fakeStore) CancellationCounts(_ context.Context, status string, canceledSince time.Time, minCount int64) ([]*entity.CancellationReport, error) {
	counts := make(map[uuid.UUID]int64)
	for _, order := range s.orders {
		if order.Status != status || order.OrderDate.Before(canceledSince) {
			continue
		}
		counts[order.UserID]++
	}

	var report []*entity.CancellationReport
	for _, user := range s.users {
		if counts[user.ID] > minCount {
			report = append(report, &entity.CancellationReport{
				Name:          user.Name,
				Email:         user.Email,
				CanceledCount: counts[user.ID],
			})
		}
	}

	return report, nil
}

func (s *fakeStore) FindUsersReferredBy(_ context.Context, codes []string) ([]*entity.User, error) {
	codeSet := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		codeSet[code] = struct{}{}
	}

	var referred []*entity.User
	for _, user := range s.users {
		if user.ReferredBy == nil {
			continue
		}
		if _, ok := codeSet[*user.ReferredBy]; ok {
			referred = append(referred, user)
		}
	}

	return referred, nil
}

// fakeReportCache is a map-backed cache storing reports by reference.
type fakeReportCache struct {
	values map[string]any
	sets   int
}

func newFakeReportCache() *fakeReportCache {
	return &fakeReportCache{values: make(map[string]any)}
}

func (c *fakeReportCache) Get(_ context.Context, key string, dest any) (bool, error) {
	value, ok := c.values[key]
	if !ok {
		return false, nil
	}

	switch d := dest.(type) {
	case *[]*entity.ProductSales:
		*d = value.([]*entity.ProductSales)
	case *[]*entity.HighValueUser:
		*d = value.([]*entity.HighValueUser)
	case *[]*entity.StockProjection:
		*d = value.([]*entity.StockProjection)
	case *[]*entity.CancellationReport:
		*d = value.([]*entity.CancellationReport)
	case **entity.PremiumRetention:
		*d = value.(*entity.PremiumRetention)
	default:
		return false, nil
	}

	return true, nil
}

func (c *fakeReportCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.values[key] = value
	c.sets++

	return nil
}

func testAnalyticsConfig() *config.AnalyticsConfig {
	return &config.AnalyticsConfig{
		TopProductsWindowDays:    180,
		TopProductsLimit:         5,
		HighValueMinSpent:        10000,
		RetentionMembershipDays:  365,
		RetentionOrderWindowDays: 90,
		StockSalesWindowDays:     90,
		StockProjectionDays:      30,
		CancellationWindowDays:   365,
		CancellationMinCount:     2,
	}
}

func newTestService(store *fakeStore, cfg *config.AnalyticsConfig) *analyticsService {
	return &analyticsService{
		analyticsRepo: store,
		userRepo:      store,
		cfg:           cfg,
		reportTTL:     defaultReportTTL,
	}
}

func strPtr(s string) *string {
	return &s
}

func daysAgo(days int) time.Time {
	return time.Now().AddDate(0, 0, -days)
}

func TestTopSellingProducts(t *testing.T) {
	widget := &entity.Product{ID: uuid.New(), Name: "widget", Category: "tools", Stock: 10}
	gadget := &entity.Product{ID: uuid.New(), Name: "gadget", Category: "tools", Stock: 10}

	store := &fakeStore{
		products: []*entity.Product{widget, gadget},
		orders: []*entity.Order{
			{
				UserID:    uuid.New(),
				OrderDate: daysAgo(10),
				Items: []entity.LineItem{
					{ProductID: widget.ID, Quantity: 4, UnitPrice: 10},
					{ProductID: gadget.ID, Quantity: 1, UnitPrice: 30},
				},
			},
			{
				UserID:    uuid.New(),
				OrderDate: daysAgo(20),
				Items:     []entity.LineItem{{ProductID: gadget.ID, Quantity: 6, UnitPrice: 30}},
			},
			// Outside the sales window, must not count.
			{
				UserID:    uuid.New(),
				OrderDate: daysAgo(200),
				Items:     []entity.LineItem{{ProductID: widget.ID, Quantity: 100, UnitPrice: 10}},
			},
		},
	}

	svc := newTestService(store, testAnalyticsConfig())

	report, err := svc.TopSellingProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, report, 2)

	assert.Equal(t, "gadget", report[0].ProductName)
	assert.Equal(t, int64(7), report[0].TotalUnitsSold)
	assert.Equal(t, int64(210), report[0].TotalRevenue)

	assert.Equal(t, "widget", report[1].ProductName)
	assert.Equal(t, int64(4), report[1].TotalUnitsSold)
	assert.Equal(t, int64(40), report[1].TotalRevenue)
}

func TestTopSellingProducts_LimitsRows(t *testing.T) {
	store := &fakeStore{}
	for i := range 7 {
		product := &entity.Product{ID: uuid.New(), Name: "p", Category: "c"}
		store.products = append(store.products, product)
		store.orders = append(store.orders, &entity.Order{
			UserID:    uuid.New(),
			OrderDate: daysAgo(1),
			Items:     []entity.LineItem{{ProductID: product.ID, Quantity: i + 1, UnitPrice: 1}},
		})
	}

	svc := newTestService(store, testAnalyticsConfig())

	report, err := svc.TopSellingProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, report, 5)

	for i := 1; i < len(report); i++ {
		assert.GreaterOrEqual(t, report[i-1].TotalUnitsSold, report[i].TotalUnitsSold)
	}
}

func TestHighValueUsers_StrictThreshold(t *testing.T) {
	big := &entity.User{ID: uuid.New(), Name: "big", Email: "big@example.com"}
	exact := &entity.User{ID: uuid.New(), Name: "exact", Email: "exact@example.com"}
	idle := &entity.User{ID: uuid.New(), Name: "idle", Email: "idle@example.com"}

	store := &fakeStore{
		users: []*entity.User{big, exact, idle},
		orders: []*entity.Order{
			{UserID: big.ID, OrderDate: daysAgo(400), TotalAmount: 9000},
			{UserID: big.ID, OrderDate: daysAgo(5), TotalAmount: 1001},
			// Exactly at the threshold, must be excluded.
			{UserID: exact.ID, OrderDate: daysAgo(5), TotalAmount: 10000},
		},
	}

	svc := newTestService(store, testAnalyticsConfig())

	report, err := svc.HighValueUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, report, 1)

	assert.Equal(t, "big", report[0].Name)
	assert.Equal(t, int64(10001), report[0].TotalSpent)
}

func TestReferralChain_LevelsAreMinimalHops(t *testing.T) {
	root := &entity.User{ID: uuid.New(), Name: "root", Email: "root@example.com", ReferralCode: strPtr("ref-root")}
	child := &entity.User{ID: uuid.New(), Name: "child", Email: "child@example.com", ReferralCode: strPtr("ref-child"), ReferredBy: strPtr("ref-root")}
	grandchild := &entity.User{ID: uuid.New(), Name: "grandchild", Email: "gc@example.com", ReferredBy: strPtr("ref-child")}

	store := &fakeStore{users: []*entity.User{root, child, grandchild}}
	svc := newTestService(store, testAnalyticsConfig())

	report, err := svc.ReferralChain(context.Background(), root.ID)
	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.Equal(t, "root", report[0].Name)

	chain := report[0].Chain
	require.Len(t, chain, 2)
	assert.Equal(t, "child", chain[0].Name)
	assert.Equal(t, 1, chain[0].Level)
	assert.Equal(t, "grandchild", chain[1].Name)
	assert.Equal(t, 2, chain[1].Level)
}

func TestReferralChain_TerminatesOnCycle(t *testing.T) {
	// a refers b, b refers a.
	a := &entity.User{ID: uuid.New(), Name: "a", Email: "a@example.com", ReferralCode: strPtr("ref-a"), ReferredBy: strPtr("ref-b")}
	b := &entity.User{ID: uuid.New(), Name: "b", Email: "b@example.com", ReferralCode: strPtr("ref-b"), ReferredBy: strPtr("ref-a")}

	store := &fakeStore{users: []*entity.User{a, b}}
	svc := newTestService(store, testAnalyticsConfig())

	report, err := svc.ReferralChain(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, report, 1)

	chain := report[0].Chain
	require.Len(t, chain, 1)
	assert.Equal(t, "b", chain[0].Name)
	assert.Equal(t, 1, chain[0].Level)
}

func TestReferralChain_UnknownUserYieldsEmptyReport(t *testing.T) {
	svc := newTestService(&fakeStore{}, testAnalyticsConfig())

	report, err := svc.ReferralChain(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, report)
	assert.NotNil(t, report)
}

func TestReferralChain_UserWithoutReferralsYieldsEmptyChain(t *testing.T) {
	loner := &entity.User{ID: uuid.New(), Name: "loner", Email: "loner@example.com", ReferralCode: strPtr("ref-loner")}

	store := &fakeStore{users: []*entity.User{loner}}
	svc := newTestService(store, testAnalyticsConfig())

	report, err := svc.ReferralChain(context.Background(), loner.ID)
	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.Equal(t, "loner", report[0].Name)
	assert.Empty(t, report[0].Chain)
	assert.NotNil(t, report[0].Chain)
}

func TestPremiumRetention_DenominatorCountsAllPremiumUsers(t *testing.T) {
	veteranActive := &entity.User{ID: uuid.New(), IsPremiumMember: true, DateJoined: daysAgo(800)}
	veteranIdle := &entity.User{ID: uuid.New(), IsPremiumMember: true, DateJoined: daysAgo(800)}
	// Recently joined premium users inflate the denominator but can never
	// qualify for the numerator.
	newcomer := &entity.User{ID: uuid.New(), IsPremiumMember: true, DateJoined: daysAgo(30)}
	free := &entity.User{ID: uuid.New(), IsPremiumMember: false, DateJoined: daysAgo(800)}

	store := &fakeStore{
		users: []*entity.User{veteranActive, veteranIdle, newcomer, free},
		orders: []*entity.Order{
			{UserID: veteranActive.ID, OrderDate: daysAgo(10), TotalAmount: 100},
			{UserID: veteranIdle.ID, OrderDate: daysAgo(300), TotalAmount: 100},
			{UserID: newcomer.ID, OrderDate: daysAgo(5), TotalAmount: 100},
		},
	}

	svc := newTestService(store, testAnalyticsConfig())

	report, err := svc.PremiumRetention(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), report.Count)
	assert.InDelta(t, 100.0/3.0, report.Percentage, 1e-9)
}

func TestPremiumRetention_NoPremiumUsers(t *testing.T) {
	svc := newTestService(&fakeStore{}, testAnalyticsConfig())

	report, err := svc.PremiumRetention(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), report.Count)
	assert.Zero(t, report.Percentage)
}

func TestProjectedStock(t *testing.T) {
	mover := &entity.Product{ID: uuid.New(), Name: "mover", Stock: 50}
	shelfWarmer := &entity.Product{ID: uuid.New(), Name: "shelf-warmer", Stock: 7}

	store := &fakeStore{
		products: []*entity.Product{mover, shelfWarmer},
		orders: []*entity.Order{
			{UserID: uuid.New(), OrderDate: daysAgo(10), Items: []entity.LineItem{{ProductID: mover.ID, Quantity: 2, UnitPrice: 1}}},
			{UserID: uuid.New(), OrderDate: daysAgo(20), Items: []entity.LineItem{{ProductID: mover.ID, Quantity: 4, UnitPrice: 1}}},
			// Outside the sales window, must not affect the rate.
			{UserID: uuid.New(), OrderDate: daysAgo(120), Items: []entity.LineItem{{ProductID: mover.ID, Quantity: 90, UnitPrice: 1}}},
		},
	}

	svc := newTestService(store, testAnalyticsConfig())

	report, err := svc.ProjectedStock(context.Background())
	require.NoError(t, err)
	require.Len(t, report, 2)

	byName := make(map[string]*entity.StockProjection, len(report))
	for _, row := range report {
		byName[row.Name] = row
	}

	// Mean of line quantities 2 and 4 is 3; projections may go negative.
	assert.InDelta(t, 3.0, byName["mover"].AverageSalesPerDay, 1e-9)
	assert.InDelta(t, 50-3.0*30, byName["mover"].ProjectedStock, 1e-9)

	// No qualifying sales: the projection equals the current stock.
	assert.Zero(t, byName["shelf-warmer"].AverageSalesPerDay)
	assert.InDelta(t, 7, byName["shelf-warmer"].ProjectedStock, 1e-9)
}

func TestCancellationAbuse_StrictTolerance(t *testing.T) {
	abuser := &entity.User{ID: uuid.New(), Name: "abuser", Email: "abuser@example.com"}
	borderline := &entity.User{ID: uuid.New(), Name: "borderline", Email: "border@example.com"}

	store := &fakeStore{
		users: []*entity.User{abuser, borderline},
		orders: []*entity.Order{
			{UserID: abuser.ID, Status: "canceled", OrderDate: daysAgo(10)},
			{UserID: abuser.ID, Status: "canceled", OrderDate: daysAgo(20)},
			{UserID: abuser.ID, Status: "canceled", OrderDate: daysAgo(30)},
			// Outside the window and wrong status never count.
			{UserID: abuser.ID, Status: "canceled", OrderDate: daysAgo(400)},
			{UserID: abuser.ID, Status: "shipped", OrderDate: daysAgo(5)},
			// Exactly at the tolerance, must be excluded.
			{UserID: borderline.ID, Status: "canceled", OrderDate: daysAgo(10)},
			{UserID: borderline.ID, Status: "canceled", OrderDate: daysAgo(20)},
		},
	}

	svc := newTestService(store, testAnalyticsConfig())

	report, err := svc.CancellationAbuse(context.Background())
	require.NoError(t, err)
	require.Len(t, report, 1)

	assert.Equal(t, "abuser", report[0].Name)
	assert.Equal(t, int64(3), report[0].CanceledCount)
}

func TestCachedReport_ServesSecondCallFromCache(t *testing.T) {
	product := &entity.Product{ID: uuid.New(), Name: "widget", Category: "tools"}
	store := &fakeStore{
		products: []*entity.Product{product},
		orders: []*entity.Order{
			{UserID: uuid.New(), OrderDate: daysAgo(1), Items: []entity.LineItem{{ProductID: product.ID, Quantity: 1, UnitPrice: 5}}},
		},
	}

	svc := newTestService(store, testAnalyticsConfig())
	cache := newFakeReportCache()
	svc.cache = cache

	first, err := svc.TopSellingProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, cache.sets)

	// Mutate the store; a cache hit must still serve the old report.
	store.orders = append(store.orders, &entity.Order{
		UserID:    uuid.New(),
		OrderDate: daysAgo(1),
		Items:     []entity.LineItem{{ProductID: product.ID, Quantity: 9, UnitPrice: 5}},
	})

	second, err := svc.TopSellingProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, int64(1), second[0].TotalUnitsSold)
	assert.Equal(t, 1, cache.sets)
}
