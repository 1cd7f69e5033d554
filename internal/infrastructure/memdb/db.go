package memdb

import (
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/sooquk/dashboard/internal/domain/catalog"
	"github.com/sooquk/dashboard/internal/domain/finance"
	"github.com/sooquk/dashboard/internal/domain/identity"
	"github.com/sooquk/dashboard/internal/domain/location"
	"github.com/sooquk/dashboard/internal/domain/loyalty"
	"github.com/sooquk/dashboard/internal/domain/promotion"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/domain/system"
	"github.com/sooquk/dashboard/internal/domain/trade"
)

const bcryptCost = bcrypt.MinCost

// ErrInvalidCredentials is returned by Authenticate
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

// Credential is the login of one user
type Credential struct {
	Email        string
	UserID       string
	PasswordHash []byte
}

// DB is the whole stub dataset
type DB struct {
	Cities        *Table[int64, location.City]
	Districts     *Table[int64, location.District]
	Categories    *Table[int64, catalog.Category]
	Coupons       *Table[int64, promotion.Coupon]
	Users         *Table[string, identity.User]
	Credentials   *Table[string, Credential]
	Orders        *Table[int64, trade.Order]
	VendorOrders  *Table[int64, trade.VendorOrder]
	Reviews       map[catalog.ReviewKind]*Table[int64, catalog.Review]
	Wallets       *Table[int64, finance.Wallet]
	Transactions  *Table[int64, finance.Transaction]
	PointTerms    *Table[int64, loyalty.PointTerm]
	ErrorLogs     *Table[int64, system.ErrorLog]
	ErrorLogTypes []system.ErrorLogType

	CityIDs, DistrictIDs, CategoryIDs, CouponIDs   Sequence
	OrderIDs, VendorOrderIDs, ReviewIDs, WalletIDs Sequence
	TransactionIDs, PointTermIDs, ErrorLogIDs      Sequence

	mu       sync.RWMutex
	settings loyalty.PointsSettings
}

// New creates an empty dataset
func New() *DB {
	reviews := make(map[catalog.ReviewKind]*Table[int64, catalog.Review])
	for _, k := range catalog.AllReviewKinds() {
		reviews[k] = NewTable(func(r catalog.Review) int64 { return r.ID })
	}
	return &DB{
		Cities:       NewTable(func(c location.City) int64 { return c.ID }),
		Districts:    NewTable(func(d location.District) int64 { return d.ID }),
		Categories:   NewTable(func(c catalog.Category) int64 { return c.ID }),
		Coupons:      NewTable(func(c promotion.Coupon) int64 { return c.ID }),
		Users:        NewTable(func(u identity.User) string { return u.ID }),
		Credentials:  NewTable(func(c Credential) string { return c.Email }),
		Orders:       NewTable(func(o trade.Order) int64 { return o.OrderID }),
		VendorOrders: NewTable(func(o trade.VendorOrder) int64 { return o.VendorOrderID }),
		Reviews:      reviews,
		Wallets:      NewTable(func(w finance.Wallet) int64 { return w.WalletID }),
		Transactions: NewTable(func(t finance.Transaction) int64 { return t.TransactionID }),
		PointTerms:   NewTable(func(p loyalty.PointTerm) int64 { return p.PointTermID }),
		ErrorLogs:    NewTable(func(e system.ErrorLog) int64 { return e.ID }),
	}
}

// Settings returns the points settings
func (db *DB) Settings() loyalty.PointsSettings {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.settings
}

// SetSettings replaces the points settings
func (db *DB) SetSettings(s loyalty.PointsSettings) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.settings = s
}

// SetPassword stores the login of a user, replacing an older one for the
// same email
func (db *DB) SetPassword(userID, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	db.Credentials.Put(Credential{Email: normalizeEmail(email), UserID: userID, PasswordHash: hash})
	return nil
}

// Authenticate returns the active user owning email and password
func (db *DB) Authenticate(email, password string) (identity.User, error) {
	cred, ok := db.Credentials.Get(normalizeEmail(email))
	if !ok || bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte(password)) != nil {
		return identity.User{}, ErrInvalidCredentials
	}
	u, ok := db.Users.Get(cred.UserID)
	if !ok || !u.IsActive {
		return identity.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// DeleteUser removes a user and its login
func (db *DB) DeleteUser(id string) bool {
	u, ok := db.Users.Get(id)
	if !ok {
		return false
	}
	db.Credentials.Delete(normalizeEmail(u.Email))
	return db.Users.Delete(id)
}

// CityName returns the name of city id, or "" if unknown
func (db *DB) CityName(id int64) string {
	c, _ := db.Cities.Get(id)
	return c.Name
}

// DistrictInUse reports whether a user address refers to district id
func (db *DB) DistrictInUse(id int64) bool {
	return db.Users.Any(func(u identity.User) bool {
		return (u.AdminDetails != nil && u.AdminDetails.DistrictID == id) ||
			(u.VendorDetails != nil && u.VendorDetails.DistrictID == id)
	})
}

// CategoryInUse reports whether category id has children
func (db *DB) CategoryInUse(id int64) bool {
	return db.Categories.Any(func(c catalog.Category) bool {
		return c.ParentID != nil && *c.ParentID == id
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
