package finance

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/application/query/querytest"
	"github.com/sooquk/dashboard/internal/domain/finance"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/api"
)

// MockWalletAPI is a mock implementation of WalletAPI
type MockWalletAPI struct {
	mock.Mock
}

func (m *MockWalletAPI) List(ctx context.Context, params shared.Params) (*shared.ListResponse[finance.Wallet], error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.ListResponse[finance.Wallet]), args.Error(1)
}

func (m *MockWalletAPI) Get(ctx context.Context, id int64) (*finance.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Wallet), args.Error(1)
}

func (m *MockWalletAPI) ByUser(ctx context.Context, userID string) (*finance.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Wallet), args.Error(1)
}

func (m *MockWalletAPI) Transactions(ctx context.Context, walletID int64, params shared.Params) (*shared.ListResponse[finance.Transaction], error) {
	args := m.Called(ctx, walletID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.ListResponse[finance.Transaction]), args.Error(1)
}

func (m *MockWalletAPI) Adjust(ctx context.Context, walletID int64, req finance.AdjustRequest) (*finance.Transaction, error) {
	args := m.Called(ctx, walletID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Transaction), args.Error(1)
}

func (m *MockWalletAPI) SetActive(ctx context.Context, walletID int64, active bool) error {
	return m.Called(ctx, walletID, active).Error(0)
}

func (m *MockWalletAPI) Delete(ctx context.Context, walletID int64, opts api.DeleteOptions) error {
	return m.Called(ctx, walletID, opts).Error(0)
}

func activeWallet() finance.Wallet {
	return finance.Wallet{WalletID: 4, UserID: "u-4", Balance: decimal.NewFromInt(50), Currency: "JOD", IsActive: true}
}

func TestWalletService_AdjustInvalidatesHistory(t *testing.T) {
	wapi := new(MockWalletAPI)
	qc, store := querytest.NewClient(t)
	svc := NewWalletService(wapi, qc)

	req := finance.AdjustRequest{Type: finance.TransactionCredit, Amount: decimal.NewFromInt(20), Description: "goodwill"}
	wapi.On("Adjust", mock.Anything, int64(4), req).
		Return(&finance.Transaction{TransactionID: 1, WalletID: 4, BalanceAfter: decimal.NewFromInt(70)}, nil).Once()

	res := svc.Adjust(context.Background(), activeWallet(), req)
	require.NoError(t, res.Err)
	assert.True(t, res.Data.BalanceAfter.Equal(decimal.NewFromInt(70)))

	assert.Equal(t, []string{
		query.ListPrefix(query.ResourceWallets).String(),
		query.DetailKey(query.ResourceWallets, int64(4)).String(),
		TransactionsPrefix(4).String(),
		query.Prefix(query.ResourceWallets, "user").String(),
	}, store.Invalidated())
}

func TestWalletService_AdjustChecksBalance(t *testing.T) {
	wapi := new(MockWalletAPI)
	qc, store := querytest.NewClient(t)
	svc := NewWalletService(wapi, qc)

	req := finance.AdjustRequest{Type: finance.TransactionDebit, Amount: decimal.NewFromInt(80), Description: "chargeback"}
	res := svc.Adjust(context.Background(), activeWallet(), req)

	assert.ErrorIs(t, res.Err, shared.ErrInsufficientFunds)
	wapi.AssertNotCalled(t, "Adjust", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, store.Invalidated())
}

func TestWalletService_AdjustInactiveWallet(t *testing.T) {
	wapi := new(MockWalletAPI)
	qc, _ := querytest.NewClient(t)
	svc := NewWalletService(wapi, qc)

	w := activeWallet()
	w.IsActive = false
	req := finance.AdjustRequest{Type: finance.TransactionCredit, Amount: decimal.NewFromInt(5), Description: "bonus"}

	res := svc.Adjust(context.Background(), w, req)
	assert.ErrorIs(t, res.Err, shared.ErrInvalidState)
}

func TestWalletService_HardDelete(t *testing.T) {
	wapi := new(MockWalletAPI)
	qc, store := querytest.NewClient(t)
	svc := NewWalletService(wapi, qc)

	wapi.On("Delete", mock.Anything, int64(4), mock.MatchedBy(func(o api.DeleteOptions) bool { return o.Hard })).Return(nil).Once()

	res := svc.Delete(context.Background(), 4, true)
	require.NoError(t, res.Err)
	assert.Contains(t, store.Invalidated(), TransactionsPrefix(4).String())
	wapi.AssertExpectations(t)
}

func TestWalletService_DisabledQueries(t *testing.T) {
	wapi := new(MockWalletAPI)
	qc, _ := querytest.NewClient(t)
	svc := NewWalletService(wapi, qc)
	ctx := context.Background()

	assert.True(t, svc.ByUser(ctx, "").IsDisabled())
	assert.True(t, svc.Transactions(ctx, 0, shared.NewParams()).IsDisabled())
	wapi.AssertNotCalled(t, "ByUser", mock.Anything, mock.Anything)
	wapi.AssertNotCalled(t, "Transactions", mock.Anything, mock.Anything, mock.Anything)
}

func TestWalletService_TransactionsKeyedPerWallet(t *testing.T) {
	wapi := new(MockWalletAPI)
	qc, store := querytest.NewClient(t)
	svc := NewWalletService(wapi, qc)
	ctx := context.Background()

	params := finance.TransactionFilter{Type: finance.TransactionDebit}.Params()
	page := shared.NewListResponse([]finance.Transaction{{TransactionID: 9, WalletID: 4}}, 1, 10, 1)
	wapi.On("Transactions", mock.Anything, int64(4), params).Return(&page, nil).Once()

	res := svc.Transactions(ctx, 4, params)
	require.NoError(t, res.Err)
	require.NotNil(t, store.Entry(TransactionsPrefix(4).Append(params.Encode())))

	// another wallet's history is untouched by an invalidation of wallet 4
	assert.False(t, query.MatchesPrefix(TransactionsPrefix(41).Append(params.Encode()).String(), TransactionsPrefix(4).String()))
}
