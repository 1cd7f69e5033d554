package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sooquk/dashboard/internal/domain/finance"
	"github.com/sooquk/dashboard/internal/infrastructure/memdb"
)

// WalletHandler serves wallets and their transactions
type WalletHandler struct {
	BaseHandler
	db *memdb.DB
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(db *memdb.DB) *WalletHandler {
	return &WalletHandler{db: db}
}

// RegisterRoutes registers the wallet routes
func (h *WalletHandler) RegisterRoutes(rg *gin.RouterGroup) {
	wallets := rg.Group("/wallet")
	{
		wallets.GET("", h.List)
		wallets.GET("/user/:userId", h.GetByUser)
		wallets.GET("/:id", h.Get)
		wallets.GET("/:id/transactions", h.Transactions)
		wallets.POST("/:id/adjust", h.Adjust)
		wallets.PUT("/:id/status", h.SetStatus)
		wallets.DELETE("/:id", h.Delete)
	}
}

// List returns a page of wallets
func (h *WalletHandler) List(c *gin.Context) {
	active := queryBool(c, "isActive")
	minBalance := queryDecimal(c, "minBalance")
	search := c.Query("search")

	rows := h.db.Wallets.Find(func(w finance.Wallet) bool {
		return (active == nil || w.IsActive == *active) &&
			(minBalance == nil || !w.Balance.LessThan(*minBalance)) &&
			matches(search, w.UserName, w.UserID)
	})
	sendPage(&h.BaseHandler, c, rows)
}

// Get returns one wallet
func (h *WalletHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	w, ok := h.db.Wallets.Get(id)
	if !ok {
		h.NotFound(c, "Wallet not found")
		return
	}
	h.Success(c, w)
}

// GetByUser returns the wallet of a user
func (h *WalletHandler) GetByUser(c *gin.Context) {
	userID := c.Param("userId")
	found := h.db.Wallets.Find(func(w finance.Wallet) bool { return w.UserID == userID })
	if len(found) == 0 {
		h.NotFound(c, "User has no wallet")
		return
	}
	h.Success(c, found[0])
}

// Transactions returns a page of a wallet's transactions, newest first
func (h *WalletHandler) Transactions(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := h.db.Wallets.Get(id); !ok {
		h.NotFound(c, "Wallet not found")
		return
	}
	typ := finance.TransactionType(c.Query("type"))
	from, to := queryTime(c, "fromDate"), queryTime(c, "toDate")

	rows := h.db.Transactions.Find(func(t finance.Transaction) bool {
		return t.WalletID == id &&
			(typ == "" || t.Type == typ) &&
			inRange(t.CreatedAt, from, to)
	})
	sendPage(&h.BaseHandler, c, rows)
}

// Adjust credits or debits a wallet and books the transaction
func (h *WalletHandler) Adjust(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req finance.AdjustRequest
	if !h.bindJSON(c, &req) {
		return
	}

	var tx finance.Transaction
	_, err := h.db.Wallets.Update(id, func(w *finance.Wallet) error {
		if err := req.Check(*w); err != nil {
			return err
		}
		w.Balance = req.Apply(w.Balance)
		tx = finance.Transaction{
			TransactionID: h.db.TransactionIDs.Next(),
			WalletID:      w.WalletID,
			Type:          req.Type,
			Amount:        req.Amount,
			BalanceAfter:  w.Balance,
			Description:   req.Description,
			CreatedAt:     time.Now().UTC(),
		}
		return nil
	})
	if err != nil {
		h.notFoundOr(c, err, "Wallet not found")
		return
	}
	h.db.Transactions.Put(tx)
	h.Created(c, tx)
}

// SetStatus freezes or unfreezes a wallet
func (h *WalletHandler) SetStatus(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	w, err := h.db.Wallets.Update(id, func(w *finance.Wallet) error {
		w.IsActive = *req.IsActive
		return nil
	})
	if err != nil {
		h.notFoundOr(c, err, "Wallet not found")
		return
	}
	h.Success(c, w)
}

// Delete deactivates a wallet, or with hardDelete=true removes it with its
// transactions. Only empty wallets can be removed.
func (h *WalletHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	w, ok := h.db.Wallets.Get(id)
	if !ok {
		h.NotFound(c, "Wallet not found")
		return
	}
	if hard, _ := strconv.ParseBool(c.Query("hardDelete")); !hard {
		_, _ = h.db.Wallets.Update(id, func(w *finance.Wallet) error {
			w.IsActive = false
			return nil
		})
		h.Message(c, "Wallet deactivated")
		return
	}
	if !w.Balance.IsZero() {
		h.Conflict(c, "Wallet still holds a balance and cannot be deleted")
		return
	}
	for _, t := range h.db.Transactions.Find(func(t finance.Transaction) bool { return t.WalletID == id }) {
		h.db.Transactions.Delete(t.TransactionID)
	}
	h.db.Wallets.Delete(id)
	h.Message(c, "Wallet deleted")
}
