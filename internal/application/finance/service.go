// Package finance exposes wallet reads, manual balance adjustments, and the
// per-wallet transaction history.
package finance

import (
	"context"
	"strconv"

	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/domain/finance"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/api"
)

// WalletAPI is the backend surface the service needs
type WalletAPI interface {
	List(ctx context.Context, params shared.Params) (*shared.ListResponse[finance.Wallet], error)
	Get(ctx context.Context, id int64) (*finance.Wallet, error)
	ByUser(ctx context.Context, userID string) (*finance.Wallet, error)
	Transactions(ctx context.Context, walletID int64, params shared.Params) (*shared.ListResponse[finance.Transaction], error)
	Adjust(ctx context.Context, walletID int64, req finance.AdjustRequest) (*finance.Transaction, error)
	SetActive(ctx context.Context, walletID int64, active bool) error
	Delete(ctx context.Context, walletID int64, opts api.DeleteOptions) error
}

// AdjustWallet is the input of the adjustment mutation. Wallet is the
// state the form was opened with and is checked before sending.
type AdjustWallet struct {
	Wallet  finance.Wallet
	Request finance.AdjustRequest
}

// SetWalletActive is the input of the freeze mutation
type SetWalletActive struct {
	ID     int64
	Active bool
}

// DeleteWallet is the input of the delete mutation
type DeleteWallet struct {
	ID   int64
	Hard bool
}

// ByUserKey is where the wallet of a user is cached
func ByUserKey(userID string) query.Key {
	return query.NewKey(query.ResourceWallets, "user", userID)
}

// TransactionsPrefix matches every cached transaction page of a wallet
func TransactionsPrefix(walletID int64) query.Key {
	return query.Prefix(query.ResourceTransactions, query.OpList, strconv.FormatInt(walletID, 10))
}

// walletKeys are the prefixes any balance or state change makes stale
func walletKeys(id int64) []query.Key {
	return query.Also(query.OnUpdate(query.ResourceWallets, id),
		TransactionsPrefix(id),
		query.Prefix(query.ResourceWallets, "user"),
	)
}

// WalletService builds wallet queries and mutations
type WalletService struct {
	api WalletAPI
	qc  *query.Client
}

// NewWalletService creates a new WalletService
func NewWalletService(api WalletAPI, qc *query.Client) *WalletService {
	return &WalletService{api: api, qc: qc}
}

// ListQuery reads one page of wallets
func (s *WalletService) ListQuery(params shared.Params) query.Query[shared.ListResponse[finance.Wallet]] {
	return query.Query[shared.ListResponse[finance.Wallet]]{
		Key: query.ListKey(query.ResourceWallets, params),
		Fn: func(ctx context.Context) (shared.ListResponse[finance.Wallet], error) {
			return query.Deref(s.api.List(ctx, params))
		},
	}
}

// DetailQuery reads one wallet
func (s *WalletService) DetailQuery(id int64) query.Query[finance.Wallet] {
	return query.Query[finance.Wallet]{
		Key:      query.DetailKey(query.ResourceWallets, id),
		Disabled: id <= 0,
		Fn: func(ctx context.Context) (finance.Wallet, error) {
			return query.Deref(s.api.Get(ctx, id))
		},
	}
}

// ByUserQuery reads the wallet of a user. It stays disabled without a user.
func (s *WalletService) ByUserQuery(userID string) query.Query[finance.Wallet] {
	return query.Query[finance.Wallet]{
		Key:      ByUserKey(userID),
		Disabled: userID == "",
		Fn: func(ctx context.Context) (finance.Wallet, error) {
			return query.Deref(s.api.ByUser(ctx, userID))
		},
	}
}

// TransactionsQuery reads one page of a wallet's transactions
func (s *WalletService) TransactionsQuery(walletID int64, params shared.Params) query.Query[shared.ListResponse[finance.Transaction]] {
	return query.Query[shared.ListResponse[finance.Transaction]]{
		Key:      TransactionsPrefix(walletID).Append(params.Encode()),
		Disabled: walletID <= 0,
		Fn: func(ctx context.Context) (shared.ListResponse[finance.Transaction], error) {
			return query.Deref(s.api.Transactions(ctx, walletID, params))
		},
	}
}

// AdjustMutation credits or debits a wallet
func (s *WalletService) AdjustMutation() query.Mutation[AdjustWallet, *finance.Transaction] {
	return query.Mutation[AdjustWallet, *finance.Transaction]{
		Name: "adjust wallet",
		Fn: func(ctx context.Context, in AdjustWallet) (*finance.Transaction, error) {
			if err := in.Request.Check(in.Wallet); err != nil {
				return nil, err
			}
			return s.api.Adjust(ctx, in.Wallet.WalletID, in.Request)
		},
		Invalidates: func(in AdjustWallet, _ *finance.Transaction) []query.Key {
			return walletKeys(in.Wallet.WalletID)
		},
	}
}

// SetActiveMutation freezes or unfreezes a wallet
func (s *WalletService) SetActiveMutation() query.Mutation[SetWalletActive, struct{}] {
	return query.Mutation[SetWalletActive, struct{}]{
		Name: "set wallet active",
		Fn: func(ctx context.Context, in SetWalletActive) (struct{}, error) {
			if in.ID <= 0 {
				return struct{}{}, shared.ErrInvalidInput
			}
			return struct{}{}, s.api.SetActive(ctx, in.ID, in.Active)
		},
		Invalidates: func(in SetWalletActive, _ struct{}) []query.Key {
			return query.Also(query.OnUpdate(query.ResourceWallets, in.ID), query.Prefix(query.ResourceWallets, "user"))
		},
	}
}

// DeleteMutation removes a wallet, permanently when Hard is set
func (s *WalletService) DeleteMutation() query.Mutation[DeleteWallet, struct{}] {
	return query.Mutation[DeleteWallet, struct{}]{
		Name: "delete wallet",
		Fn: func(ctx context.Context, in DeleteWallet) (struct{}, error) {
			if in.ID <= 0 {
				return struct{}{}, shared.ErrInvalidInput
			}
			return struct{}{}, s.api.Delete(ctx, in.ID, api.DeleteOptions{Hard: in.Hard})
		},
		Invalidates: func(in DeleteWallet, _ struct{}) []query.Key {
			return walletKeys(in.ID)
		},
	}
}

// List fetches a page of wallets through the cache
func (s *WalletService) List(ctx context.Context, params shared.Params) query.Result[shared.ListResponse[finance.Wallet]] {
	return query.Fetch(ctx, s.qc, s.ListQuery(params))
}

// Get fetches one wallet through the cache
func (s *WalletService) Get(ctx context.Context, id int64) query.Result[finance.Wallet] {
	return query.Fetch(ctx, s.qc, s.DetailQuery(id))
}

// ByUser fetches the wallet of a user through the cache
func (s *WalletService) ByUser(ctx context.Context, userID string) query.Result[finance.Wallet] {
	return query.Fetch(ctx, s.qc, s.ByUserQuery(userID))
}

// Transactions fetches a page of a wallet's transactions through the cache
func (s *WalletService) Transactions(ctx context.Context, walletID int64, params shared.Params) query.Result[shared.ListResponse[finance.Transaction]] {
	return query.Fetch(ctx, s.qc, s.TransactionsQuery(walletID, params))
}

// Adjust runs the adjustment mutation
func (s *WalletService) Adjust(ctx context.Context, w finance.Wallet, req finance.AdjustRequest) query.MutationResult[*finance.Transaction] {
	return query.Mutate(ctx, s.qc, s.AdjustMutation(), AdjustWallet{Wallet: w, Request: req})
}

// SetActive runs the freeze mutation
func (s *WalletService) SetActive(ctx context.Context, id int64, active bool) query.MutationResult[struct{}] {
	return query.Mutate(ctx, s.qc, s.SetActiveMutation(), SetWalletActive{ID: id, Active: active})
}

// Delete runs the delete mutation
func (s *WalletService) Delete(ctx context.Context, id int64, hard bool) query.MutationResult[struct{}] {
	return query.Mutate(ctx, s.qc, s.DeleteMutation(), DeleteWallet{ID: id, Hard: hard})
}

// Client returns the query client the service reads through
func (s *WalletService) Client() *query.Client {
	return s.qc
}
