// Package finance holds user wallets and their transaction history.
package finance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// Wallet is the stored balance of one user
type Wallet struct {
	WalletID  int64           `json:"walletId"`
	UserID    string          `json:"userId"`
	UserName  string          `json:"userName"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt,omitempty"`
}

// TransactionType classifies a wallet movement
type TransactionType string

const (
	TransactionCredit     TransactionType = "Credit"
	TransactionDebit      TransactionType = "Debit"
	TransactionRefund     TransactionType = "Refund"
	TransactionWithdrawal TransactionType = "Withdrawal"
	TransactionReward     TransactionType = "Reward"
)

// AllTransactionTypes lists every movement type
func AllTransactionTypes() []TransactionType {
	return []TransactionType{TransactionCredit, TransactionDebit, TransactionRefund, TransactionWithdrawal, TransactionReward}
}

// IsValid checks if the type is known
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionCredit, TransactionDebit, TransactionRefund, TransactionWithdrawal, TransactionReward:
		return true
	}
	return false
}

// IsOutgoing reports whether the movement lowers the balance
func (t TransactionType) IsOutgoing() bool {
	switch t {
	case TransactionDebit, TransactionWithdrawal:
		return true
	}
	return false
}

// Tone returns the badge emphasis for the type
func (t TransactionType) Tone() shared.Tone {
	switch t {
	case TransactionCredit, TransactionRefund, TransactionReward:
		return shared.ToneSuccess
	case TransactionDebit, TransactionWithdrawal:
		return shared.ToneDanger
	}
	return shared.ToneNeutral
}

// Transaction is one wallet movement
type Transaction struct {
	TransactionID int64           `json:"transactionId"`
	WalletID      int64           `json:"walletId"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// WalletFilter narrows the wallet list
type WalletFilter struct {
	Search   string
	IsActive *bool
	MinBal   *decimal.Decimal
}

// Params converts the filter into query parameters
func (f WalletFilter) Params() shared.Params {
	return shared.NewParams().
		SetString("search", f.Search).
		SetBoolPtr("isActive", f.IsActive).
		SetDecimalPtr("minBalance", f.MinBal)
}

// TransactionFilter narrows a wallet's transaction list
type TransactionFilter struct {
	Type TransactionType
	From *time.Time
	To   *time.Time
}

// Params converts the filter into query parameters
func (f TransactionFilter) Params() shared.Params {
	return shared.NewParams().
		SetString("type", string(f.Type)).
		SetTimePtr("fromDate", f.From).
		SetTimePtr("toDate", f.To)
}

// AdjustRequest credits or debits a wallet by hand
type AdjustRequest struct {
	Type        TransactionType `json:"type" validate:"required,oneof=Credit Debit"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"required,max=250"`
}

// Check validates the request against the current wallet. The backend stays
// authoritative; this only catches what the form can know.
func (r AdjustRequest) Check(w Wallet) error {
	out := shared.NewValidationError()
	if err := shared.ValidateStruct(r); err != nil {
		verr, ok := err.(*shared.ValidationError)
		if !ok {
			return err
		}
		out = verr
	}
	if !r.Amount.IsPositive() {
		out.Add("amount", "amount must be greater than 0")
	}
	if err := out.Err(); err != nil {
		return err
	}
	if !w.IsActive {
		return fmt.Errorf("wallet %d is inactive: %w", w.WalletID, shared.ErrInvalidState)
	}
	if r.Type.IsOutgoing() && r.Amount.GreaterThan(w.Balance) {
		return fmt.Errorf("debit of %s exceeds balance %s: %w", r.Amount, w.Balance, shared.ErrInsufficientFunds)
	}
	return nil
}

// Apply returns the balance after the adjustment
func (r AdjustRequest) Apply(balance decimal.Decimal) decimal.Decimal {
	if r.Type.IsOutgoing() {
		return balance.Sub(r.Amount)
	}
	return balance.Add(r.Amount)
}
