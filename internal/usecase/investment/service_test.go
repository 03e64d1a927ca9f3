package investment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var refreshedAt = time.Date(2026, 10, 14, 16, 0, 0, 0, time.UTC)

// MockPositionRepository is a mock implementation of PositionRepository for testing
type MockPositionRepository struct {
	mock.Mock
}

func (m *MockPositionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.InvestmentPosition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvestmentPosition), args.Error(1)
}

func (m *MockPositionRepository) GetBySymbol(ctx context.Context, ownerID uuid.UUID, symbol string) (*domain.InvestmentPosition, error) {
	args := m.Called(ctx, ownerID, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvestmentPosition), args.Error(1)
}

func (m *MockPositionRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.InvestmentPosition, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.InvestmentPosition), args.Error(1)
}

func (m *MockPositionRepository) Save(ctx context.Context, position *domain.InvestmentPosition) error {
	args := m.Called(ctx, position)
	return args.Error(0)
}

func (m *MockPositionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPriceFeed is a mock implementation of PriceFeed for testing
type MockPriceFeed struct {
	mock.Mock
}

func (m *MockPriceFeed) LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func newTestService() (*InvestmentService, *MockPositionRepository, *MockPriceFeed) {
	repo := new(MockPositionRepository)
	feed := new(MockPriceFeed)
	service := NewInvestmentService(repo, feed)
	service.Now = func() time.Time { return refreshedAt }
	return service, repo, feed
}

func TestUpdatePrice_Success(t *testing.T) {
	ctx := context.Background()
	service, repo, _ := newTestService()

	positionID := uuid.New()
	position := &domain.InvestmentPosition{
		ID:          positionID,
		Symbol:      "AAPL",
		AssetType:   domain.AssetTypeStock,
		Units:       decimal.NewFromInt(10),
		AvgBuyPrice: decimal.NewFromInt(100),
	}

	repo.On("GetByID", ctx, positionID).Return(position, nil)
	repo.On("Save", ctx, mock.MatchedBy(func(p *domain.InvestmentPosition) bool {
		return p.ID == positionID && p.LastPrice != nil && p.LastPrice.Equal(decimal.NewFromInt(120))
	})).Return(nil)

	updated, err := service.UpdatePrice(ctx, positionID, decimal.NewFromInt(120))

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1200).Equal(updated.CurrentValue()))
	assert.Equal(t, refreshedAt, *updated.LastPriceAt)
	assert.Nil(t, position.LastPrice, "stored snapshot must not be mutated")
	repo.AssertExpectations(t)
}

func TestUpdatePrice_RejectsNonPositive(t *testing.T) {
	for _, price := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
		ctx := context.Background()
		service, repo, _ := newTestService()

		_, err := service.UpdatePrice(ctx, uuid.New(), price)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "market price must be positive")
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	}
}

func TestUpdatePrice_PositionNotFound(t *testing.T) {
	ctx := context.Background()
	service, repo, _ := newTestService()

	positionID := uuid.New()
	repo.On("GetByID", ctx, positionID).Return(nil, errors.New("position not found"))

	_, err := service.UpdatePrice(ctx, positionID, decimal.NewFromInt(5))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "position not found")
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRefreshPrices_UpdatesEachSymbolOnce(t *testing.T) {
	ctx := context.Background()
	service, repo, feed := newTestService()
	ownerID := uuid.New()

	positions := []*domain.InvestmentPosition{
		{ID: uuid.New(), OwnerID: ownerID, Symbol: "AAPL", Units: decimal.NewFromInt(1), AvgBuyPrice: decimal.NewFromInt(100)},
		{ID: uuid.New(), OwnerID: ownerID, Symbol: "AAPL", Units: decimal.NewFromInt(2), AvgBuyPrice: decimal.NewFromInt(110)},
		{ID: uuid.New(), OwnerID: ownerID, Symbol: "BTC", Units: decimal.NewFromInt(1), AvgBuyPrice: decimal.NewFromInt(30000)},
	}

	repo.On("ListByOwner", ctx, ownerID).Return(positions, nil)
	feed.On("LatestPrice", ctx, "AAPL").Return(decimal.NewFromInt(150), nil).Once()
	feed.On("LatestPrice", ctx, "BTC").Return(decimal.NewFromInt(60000), nil).Once()
	repo.On("Save", ctx, mock.Anything).Return(nil).Times(3)

	report, err := service.RefreshPrices(ctx, ownerID)

	require.NoError(t, err)
	assert.Equal(t, 3, report.Updated)
	assert.Empty(t, report.Failed)
	feed.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestRefreshPrices_FailedQuoteKeepsOldPrice(t *testing.T) {
	ctx := context.Background()
	service, repo, feed := newTestService()
	ownerID := uuid.New()

	aapl := &domain.InvestmentPosition{ID: uuid.New(), Symbol: "AAPL", Units: decimal.NewFromInt(1), AvgBuyPrice: decimal.NewFromInt(100)}
	dead := &domain.InvestmentPosition{ID: uuid.New(), Symbol: "DELISTED", Units: decimal.NewFromInt(1), AvgBuyPrice: decimal.NewFromInt(5)}

	repo.On("ListByOwner", ctx, ownerID).Return([]*domain.InvestmentPosition{aapl, dead}, nil)
	feed.On("LatestPrice", ctx, "AAPL").Return(decimal.NewFromInt(150), nil)
	feed.On("LatestPrice", ctx, "DELISTED").Return(decimal.Zero, errors.New("no quote"))
	repo.On("Save", ctx, mock.MatchedBy(func(p *domain.InvestmentPosition) bool { return p.ID == aapl.ID })).Return(nil)

	report, err := service.RefreshPrices(ctx, ownerID)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)
	require.Contains(t, report.Failed, "DELISTED")
	assert.EqualError(t, report.Failed["DELISTED"], "no quote")
	repo.AssertNumberOfCalls(t, "Save", 1)
}

func TestRefreshPrices_ZeroQuoteIsAFailure(t *testing.T) {
	ctx := context.Background()
	service, repo, feed := newTestService()
	ownerID := uuid.New()

	repo.On("ListByOwner", ctx, ownerID).Return([]*domain.InvestmentPosition{
		{ID: uuid.New(), Symbol: "ZERO", Units: decimal.NewFromInt(1), AvgBuyPrice: decimal.NewFromInt(5)},
	}, nil)
	feed.On("LatestPrice", ctx, "ZERO").Return(decimal.Zero, nil)

	report, err := service.RefreshPrices(ctx, ownerID)

	require.NoError(t, err)
	assert.Equal(t, 0, report.Updated)
	assert.Contains(t, report.Failed, "ZERO")
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRefreshPrices_NoFeed(t *testing.T) {
	service := NewInvestmentService(new(MockPositionRepository), nil)

	_, err := service.RefreshPrices(context.Background(), uuid.New())

	assert.EqualError(t, err, "no price feed configured")
}
