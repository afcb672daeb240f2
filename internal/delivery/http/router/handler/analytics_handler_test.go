package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"insight/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAnalyticsUsecase returns canned reports and records the user id the
// referral chain was asked for.
type stubAnalyticsUsecase struct {
	topProducts []*entity.ProductSales
	chain       []*entity.ReferralChain
	chainUserID uuid.UUID
}

func (s *stubAnalyticsUsecase) TopSellingProducts(context.Context) ([]*entity.ProductSales, error) {
	return s.topProducts, nil
}

func (s *stubAnalyticsUsecase) HighValueUsers(context.Context) ([]*entity.HighValueUser, error) {
	return nil, nil
}

func (s *stubAnalyticsUsecase) ReferralChain(_ context.Context, userID uuid.UUID) ([]*entity.ReferralChain, error) {
	s.chainUserID = userID

	return s.chain, nil
}

func (s *stubAnalyticsUsecase) PremiumRetention(context.Context) (*entity.PremiumRetention, error) {
	return &entity.PremiumRetention{}, nil
}

func (s *stubAnalyticsUsecase) ProjectedStock(context.Context) ([]*entity.StockProjection, error) {
	return nil, nil
}

func (s *stubAnalyticsUsecase) CancellationAbuse(context.Context) ([]*entity.CancellationReport, error) {
	return nil, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newAnalyticsHandlerForTest(stub *stubAnalyticsUsecase) *AnalyticsHandler {
	return NewAnalyticsHandler(AnalyticsHandlerParams{
		AnalyticsUC: stub,
		Logger:      slog.Default(),
	})
}

func TestTopSellingProductsHandler(t *testing.T) {
	stub := &stubAnalyticsUsecase{
		topProducts: []*entity.ProductSales{
			{ProductName: "widget", Category: "tools", TotalUnitsSold: 7, TotalRevenue: 210},
		},
	}
	h := newAnalyticsHandlerForTest(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/analytics/top-products", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.TopSellingProducts(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)

	var report []*entity.ProductSales
	require.NoError(t, json.Unmarshal(body.Data, &report))
	require.Len(t, report, 1)
	assert.Equal(t, "widget", report[0].ProductName)
	assert.Equal(t, int64(210), report[0].TotalRevenue)
}

func TestReferralChainHandler_InvalidID(t *testing.T) {
	h := newAnalyticsHandlerForTest(&stubAnalyticsUsecase{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/analytics/users/:id/referral-chain")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, h.ReferralChain(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "INVALID_IDENTIFIER", body.Error.Code)
}

func TestReferralChainHandler_PassesParsedID(t *testing.T) {
	stub := &stubAnalyticsUsecase{chain: []*entity.ReferralChain{}}
	h := newAnalyticsHandlerForTest(stub)

	userID := uuid.New()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/analytics/users/:id/referral-chain")
	c.SetParamNames("id")
	c.SetParamValues(userID.String())

	require.NoError(t, h.ReferralChain(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, stub.chainUserID)
}
