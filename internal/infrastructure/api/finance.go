package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/sooquk/dashboard/internal/domain/finance"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/apiclient"
)

// WalletAPI manages customer wallets. It is the only resource whose delete
// endpoint accepts hardDelete.
type WalletAPI struct {
	res *Resource[finance.Wallet, int64]
	txs *Resource[finance.Transaction, int64]
}

// NewWalletAPI creates the wallets client
func NewWalletAPI(c *apiclient.Client) *WalletAPI {
	return &WalletAPI{
		res: NewResource[finance.Wallet, int64](c, "wallet", WithHardDelete()),
		txs: NewResource[finance.Transaction, int64](c, "wallet"),
	}
}

// List returns a page of wallets
func (a *WalletAPI) List(ctx context.Context, params shared.Params) (*shared.ListResponse[finance.Wallet], error) {
	return a.res.List(ctx, params)
}

// Get returns one wallet
func (a *WalletAPI) Get(ctx context.Context, id int64) (*finance.Wallet, error) {
	return a.res.Get(ctx, id)
}

// ByUser returns the wallet of a user
func (a *WalletAPI) ByUser(ctx context.Context, userID string) (*finance.Wallet, error) {
	out, err := apiclient.Decode[finance.Wallet](ctx, a.res.client, apiclient.Request{
		Method: http.MethodGet,
		Path:   join(a.res.path, "user", userID),
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, &shared.APIError{
			Kind:       shared.KindNotFound,
			StatusCode: http.StatusNotFound,
			Message:    "user " + userID + " has no wallet",
		}
	}
	return out, nil
}

// Transactions returns a page of a wallet's transactions
func (a *WalletAPI) Transactions(ctx context.Context, walletID int64, params shared.Params) (*shared.ListResponse[finance.Transaction], error) {
	return a.txs.ListAt(ctx, join(a.res.path, strconv.FormatInt(walletID, 10), "transactions"), params)
}

// Adjust credits or debits a wallet and returns the booked transaction
func (a *WalletAPI) Adjust(ctx context.Context, walletID int64, req finance.AdjustRequest) (*finance.Transaction, error) {
	return apiclient.Decode[finance.Transaction](ctx, a.res.client, apiclient.Request{
		Method: http.MethodPost,
		Path:   a.res.ItemPath(walletID, "adjust"),
		Body:   apiclient.JSON(req),
	})
}

// SetActive freezes or unfreezes a wallet
func (a *WalletAPI) SetActive(ctx context.Context, walletID int64, active bool) error {
	return apiclient.Exec(ctx, a.res.client, apiclient.Request{
		Method: http.MethodPut,
		Path:   a.res.ItemPath(walletID, "status"),
		Body:   apiclient.JSON(map[string]bool{"isActive": active}),
	})
}

// Delete removes a wallet, permanently when opts.Hard is set
func (a *WalletAPI) Delete(ctx context.Context, walletID int64, opts DeleteOptions) error {
	return a.res.Delete(ctx, walletID, opts)
}
