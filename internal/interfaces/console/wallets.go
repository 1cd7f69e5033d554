package console

import (
	"context"
	"fmt"
	"io"

	financeapp "github.com/sooquk/dashboard/internal/application/finance"
	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/domain/finance"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/i18n"
)

// WalletsPage lists wallets, their transactions, and adjusts balances
type WalletsPage struct {
	svc  *financeapp.WalletService
	deps Deps
	List *ListPage[finance.Wallet, finance.WalletFilter]

	adjust    *query.Mutator[financeapp.AdjustWallet, *finance.Transaction]
	setActive *query.Mutator[financeapp.SetWalletActive, struct{}]
	remove    *query.Mutator[financeapp.DeleteWallet, struct{}]
}

// NewWalletsPage creates the wallets page
func NewWalletsPage(svc *financeapp.WalletService, deps Deps, filter finance.WalletFilter) *WalletsPage {
	deps = deps.withDefaults()
	qc := svc.Client()
	return &WalletsPage{
		svc:  svc,
		deps: deps,
		List: NewListPage(qc, deps, ListSpec[finance.Wallet, finance.WalletFilter]{
			Title:   "Wallets",
			Roles:   adminOnly,
			Filter:  filter,
			Query:   svc.ListQuery,
			Columns: walletColumns,
		}),
		adjust:    query.NewMutator(qc, svc.AdjustMutation()),
		setActive: query.NewMutator(qc, svc.SetActiveMutation()),
		remove:    query.NewMutator(qc, svc.DeleteMutation()),
	}
}

var walletColumns = []Column[finance.Wallet]{
	{Header: "ID", Value: func(w finance.Wallet) string { return id64(w.WalletID) }},
	{Header: "User", Value: func(w finance.Wallet) string { return w.UserName }},
	{Header: "Balance", Value: balance},
	{Header: "Status", Value: func(w finance.Wallet) string { return active(w.IsActive) }},
}

func balance(w finance.Wallet) string {
	return money(w.Balance) + " " + w.Currency
}

func walletFields(w finance.Wallet) []Field {
	return []Field{
		{"ID", id64(w.WalletID)},
		{"User", fmt.Sprintf("%s (%s)", w.UserName, w.UserID)},
		{"Balance", balance(w)},
		{"Status", active(w.IsActive)},
		{"Opened", stamp(w.CreatedAt)},
	}
}

// Show renders one wallet
func (p *WalletsPage) Show(ctx context.Context, w io.Writer, id int64) error {
	if err := p.deps.require("wallet", adminOnly...); err != nil {
		return err
	}
	return showDetail(w, p.svc.Get(ctx, id), walletFields)
}

// ShowByUser renders the wallet of a user
func (p *WalletsPage) ShowByUser(ctx context.Context, w io.Writer, userID string) error {
	if err := p.deps.require("wallet", adminOnly...); err != nil {
		return err
	}
	return showDetail(w, p.svc.ByUser(ctx, userID), walletFields)
}

// Transactions returns the transaction list of one wallet. It renders the
// disabled state until a wallet is chosen.
func (p *WalletsPage) Transactions(walletID int64, filter finance.TransactionFilter) *ListPage[finance.Transaction, finance.TransactionFilter] {
	return NewListPage(p.svc.Client(), p.deps, ListSpec[finance.Transaction, finance.TransactionFilter]{
		Title:  fmt.Sprintf("Transactions of wallet #%d", walletID),
		Roles:  adminOnly,
		Filter: filter,
		Query: func(params shared.Params) query.Query[shared.ListResponse[finance.Transaction]] {
			return p.svc.TransactionsQuery(walletID, params)
		},
		Columns: []Column[finance.Transaction]{
			{Header: "ID", Value: func(t finance.Transaction) string { return id64(t.TransactionID) }},
			{Header: "Type", Value: func(t finance.Transaction) string { return badge(string(t.Type), t.Type.Tone()) }},
			{Header: "Amount", Value: func(t finance.Transaction) string { return money(t.Amount) }},
			{Header: "Balance after", Value: func(t finance.Transaction) string { return money(t.BalanceAfter) }},
			{Header: "Description", Value: func(t finance.Transaction) string { return truncate(t.Description, 40) }},
			{Header: "At", Value: func(t finance.Transaction) string { return stamp(t.CreatedAt) }},
		},
	})
}

// Adjust credits or debits a wallet. The wallet is loaded first so an
// overdraft or a frozen wallet is refused without a request.
func (p *WalletsPage) Adjust(ctx context.Context, id int64, req finance.AdjustRequest) (*finance.Transaction, error) {
	if err := p.deps.require("wallets", adminOnly...); err != nil {
		return nil, err
	}
	cur := p.svc.Get(ctx, id)
	if !cur.HasData {
		if cur.Err == nil {
			return nil, shared.ErrInvalidInput
		}
		p.deps.Notifier.Error(ErrorMessage(cur.Err, p.deps.Translator))
		return nil, cur.Err
	}
	a := Action{
		Name:    p.adjust.Name(),
		Subject: "Wallet",
		Success: i18n.ToastUpdated,
		Confirm: fmt.Sprintf("%s %s %s on wallet #%d?", req.Type, money(req.Amount), cur.Data.Currency, id),
	}
	return Run(ctx, p.deps, a, func(ctx context.Context) query.MutationResult[*finance.Transaction] {
		return p.adjust.Submit(ctx, financeapp.AdjustWallet{Wallet: cur.Data, Request: req})
	})
}

// SetActive freezes or unfreezes a wallet. Freezing is confirmed.
func (p *WalletsPage) SetActive(ctx context.Context, id int64, on bool) error {
	if err := p.deps.require("wallets", adminOnly...); err != nil {
		return err
	}
	a := Action{Name: p.setActive.Name(), Subject: "Wallet", Success: i18n.ToastUpdated}
	if !on {
		a.Confirm = fmt.Sprintf("Freeze wallet #%d?", id)
	}
	_, err := Run(ctx, p.deps, a, func(ctx context.Context) query.MutationResult[struct{}] {
		return p.setActive.Submit(ctx, financeapp.SetWalletActive{ID: id, Active: on})
	})
	return err
}

// Delete removes a wallet after confirmation. hard deletes it permanently.
func (p *WalletsPage) Delete(ctx context.Context, id int64, hard bool) error {
	if err := p.deps.require("wallets", adminOnly...); err != nil {
		return err
	}
	what := fmt.Sprintf("wallet #%d", id)
	if hard {
		what += " permanently"
	}
	_, err := Run(ctx, p.deps, deleteAction(p.deps, p.remove.Name(), "Wallet", what),
		func(ctx context.Context) query.MutationResult[struct{}] {
			return p.remove.Submit(ctx, financeapp.DeleteWallet{ID: id, Hard: hard})
		})
	return err
}
