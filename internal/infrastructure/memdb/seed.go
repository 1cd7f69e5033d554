package memdb

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/sooquk/dashboard/internal/domain/catalog"
	"github.com/sooquk/dashboard/internal/domain/finance"
	"github.com/sooquk/dashboard/internal/domain/identity"
	"github.com/sooquk/dashboard/internal/domain/location"
	"github.com/sooquk/dashboard/internal/domain/loyalty"
	"github.com/sooquk/dashboard/internal/domain/promotion"
	"github.com/sooquk/dashboard/internal/domain/system"
	"github.com/sooquk/dashboard/internal/domain/trade"
)

// SeedConfig sizes the fake dataset
type SeedConfig struct {
	Seed int64
	// Size is the number of users, coupons, error logs and reviews per kind.
	// Orders are twice as many.
	Size          int
	Now           time.Time
	AdminEmail    string
	AdminPassword string
}

// AdminUserID is the ID of the seeded admin
const AdminUserID = "00000000-0000-0000-0000-000000000001"

// Currency of every seeded wallet
const Currency = "JOD"

type place struct {
	name, nameAr string
	districts    [][2]string
}

var places = []place{
	{"Amman", "عمّان", [][2]string{{"Khalda", "خلدا"}, {"Abdoun", "عبدون"}, {"Jubaiha", "الجبيهة"}, {"Sweifieh", "الصويفية"}, {"Marka", "ماركا"}}},
	{"Irbid", "إربد", [][2]string{{"Al Husn", "الحصن"}, {"Al Nuzha", "النزهة"}, {"Bushra", "بشرى"}}},
	{"Zarqa", "الزرقاء", [][2]string{{"Russeifa", "الرصيفة"}, {"Al Hashimiya", "الهاشمية"}}},
	{"Aqaba", "العقبة", [][2]string{{"Al Shallaleh", "الشلالة"}, {"Tala Bay", "تالا باي"}}},
}

var categoryNames = [][2]string{
	{"Electronics", "إلكترونيات"},
	{"Fashion", "أزياء"},
	{"Home & Kitchen", "المنزل والمطبخ"},
	{"Beauty", "تجميل"},
	{"Groceries", "بقالة"},
	{"Toys", "ألعاب"},
}

var errorLogTypes = []system.ErrorLogType{
	{Code: "Unhandled", Name: "Unhandled exception", NameAr: "استثناء غير معالج"},
	{Code: "Validation", Name: "Validation failure", NameAr: "فشل التحقق"},
	{Code: "Database", Name: "Database error", NameAr: "خطأ في قاعدة البيانات"},
	{Code: "Payment", Name: "Payment gateway error", NameAr: "خطأ في بوابة الدفع"},
	{Code: "Integration", Name: "Third-party integration", NameAr: "تكامل خارجي"},
}

// Seed fills db with deterministic fake data for cfg.Seed
func Seed(db *DB, cfg SeedConfig) error {
	if cfg.Size <= 0 {
		cfg.Size = 25
	}
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	s := &seeder{db: db, f: gofakeit.New(uint64(cfg.Seed)), now: cfg.Now.UTC()}

	s.places()
	s.categories()
	s.coupons(cfg.Size)
	if err := s.admin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	s.users(cfg.Size)
	s.orders(cfg.Size * 2)
	s.reviews(cfg.Size)
	s.wallets()
	s.points()
	s.errorLogs(cfg.Size)
	return nil
}

type seeder struct {
	db  *DB
	f   *gofakeit.Faker
	now time.Time

	districtsByCity map[int64][]int64
	vendors         []identity.User
}

func (s *seeder) past(days int) time.Time {
	return s.f.DateRange(s.now.AddDate(0, 0, -days), s.now).Truncate(time.Second)
}

func (s *seeder) money(lo, hi float64) decimal.Decimal {
	return decimal.NewFromFloat(s.f.Price(lo, hi)).Round(2)
}

func (s *seeder) places() {
	s.districtsByCity = make(map[int64][]int64)
	for _, p := range places {
		city := location.City{ID: s.db.CityIDs.Next(), Name: p.name, NameAr: p.nameAr}
		s.db.Cities.Put(city)
		for i, d := range p.districts {
			id := s.db.DistrictIDs.Next()
			s.db.Districts.Put(location.District{
				ID:        id,
				CityID:    city.ID,
				CityName:  city.Name,
				Name:      d[0],
				NameAr:    d[1],
				IsActive:  i < 4,
				CreatedAt: s.past(365),
			})
			s.districtsByCity[city.ID] = append(s.districtsByCity[city.ID], id)
		}
	}
}

func (s *seeder) categories() {
	for i, n := range categoryNames {
		root := catalog.Category{
			ID:           s.db.CategoryIDs.Next(),
			Name:         n[0],
			NameAr:       n[1],
			Description:  s.f.Sentence(8),
			ImageURL:     fmt.Sprintf("https://cdn.sooquk.test/categories/%d.png", i+1),
			IsActive:     true,
			DisplayOrder: i + 1,
			CreatedAt:    s.past(365),
		}
		s.db.Categories.Put(root)
		for j := range 2 {
			parent := root.ID
			name := s.f.ProductCategory()
			s.db.Categories.Put(catalog.Category{
				ID:           s.db.CategoryIDs.Next(),
				Name:         name,
				NameAr:       n[1] + " - " + name,
				ParentID:     &parent,
				IsActive:     s.f.Bool(),
				DisplayOrder: j + 1,
				CreatedAt:    s.past(200),
			})
		}
	}
}

func (s *seeder) coupons(n int) {
	for i := range n {
		start := s.now.AddDate(0, 0, s.f.Number(-60, 10)).Truncate(time.Hour)
		c := promotion.Coupon{
			ID:           s.db.CouponIDs.Next(),
			Code:         strings.ToUpper(fmt.Sprintf("%s%d", s.f.Word(), s.f.Number(5, 50))),
			Description:  s.f.Sentence(6),
			DiscountType: promotion.DiscountPercentage,
			StartDate:    start,
			EndDate:      start.AddDate(0, 0, s.f.Number(7, 90)),
			UsageLimit:   s.f.Number(0, 200),
			Status:       promotion.CouponActive,
		}
		if i%3 == 0 {
			c.DiscountType = promotion.DiscountFixedAmount
			c.DiscountValue = decimal.NewFromInt(int64(s.f.Number(1, 20)))
		} else {
			c.DiscountValue = decimal.NewFromInt(int64(s.f.Number(5, 50)))
			maxDiscount := decimal.NewFromInt(int64(s.f.Number(10, 40)))
			c.MaxDiscountAmount = &maxDiscount
		}
		if c.UsageLimit > 0 {
			c.UsedCount = s.f.Number(0, c.UsageLimit)
		}
		if i%5 == 4 {
			c.Status = promotion.CouponInactive
		}
		if c.EndDate.Before(s.now) {
			c.Status = promotion.CouponExpired
		}
		s.db.Coupons.Put(c)
	}
}

func (s *seeder) admin(email, password string) error {
	if email == "" {
		return nil
	}
	u := identity.User{
		ID:          AdminUserID,
		Email:       email,
		FirstName:   "Site",
		LastName:    "Admin",
		PhoneNumber: "0790000000",
		Role:        identity.RoleAdmin,
		IsActive:    true,
		CityID:      1,
		CityName:    s.db.CityName(1),
		CreatedAt:   s.now.AddDate(-1, 0, 0),
		AdminDetails: &identity.AdminDetails{
			Department: "Operations",
			JobTitle:   "Administrator",
			Address:    "Head office",
			DistrictID: s.districtsByCity[1][0],
		},
	}
	s.db.Users.Put(u)
	return s.db.SetPassword(u.ID, u.Email, password)
}

func (s *seeder) users(n int) {
	roles := []identity.Role{identity.RoleVendor, identity.RoleCustomer, identity.RoleCustomer, identity.RoleShippingCompany, identity.RoleAdmin}
	cities := s.db.Cities.Find(nil)
	for i := range n {
		city := cities[s.f.Number(0, len(cities)-1)]
		districts := s.districtsByCity[city.ID]
		u := identity.User{
			ID:          s.f.UUID(),
			Email:       s.f.Email(),
			FirstName:   s.f.FirstName(),
			LastName:    s.f.LastName(),
			PhoneNumber: s.f.Phone(),
			Role:        roles[i%len(roles)],
			IsActive:    i%7 != 6,
			CityID:      city.ID,
			CityName:    city.Name,
			CreatedAt:   s.past(300),
		}
		switch u.Role {
		case identity.RoleAdmin:
			u.AdminDetails = &identity.AdminDetails{
				Department: s.f.RandomString([]string{"Support", "Finance", "Catalog"}),
				JobTitle:   s.f.JobTitle(),
				Address:    s.f.Street(),
				DistrictID: districts[s.f.Number(0, len(districts)-1)],
			}
		case identity.RoleVendor:
			shop := s.f.Company()
			u.VendorDetails = &identity.VendorDetails{
				ShopName:     shop,
				ShopNameAr:   "متجر " + shop,
				DistrictID:   districts[s.f.Number(0, len(districts)-1)],
				ContactEmail: s.f.Email(),
				ContactPhone: s.f.Phone(),
				Address:      s.f.Street(),
			}
			s.vendors = append(s.vendors, u)
		case identity.RoleShippingCompany:
			u.ShippingCompanyDetails = &identity.ShippingCompanyDetails{
				CompanyName:  s.f.Company() + " Logistics",
				ContactEmail: s.f.Email(),
				PhoneNumber:  s.f.Phone(),
			}
		}
		s.db.Users.Put(u)
	}
}

func (s *seeder) orders(n int) {
	customers := s.db.Users.Find(func(u identity.User) bool { return u.Role == identity.RoleCustomer })
	if len(customers) == 0 || len(s.vendors) == 0 {
		return
	}
	methods := []trade.PaymentMethod{trade.PaymentCashOnDelivery, trade.PaymentCard, trade.PaymentWallet}
	statuses := trade.AllOrderStatuses()
	for i := range n {
		customer := customers[s.f.Number(0, len(customers)-1)]
		o := trade.Order{
			OrderID:       s.db.OrderIDs.Next(),
			CustomerName:  customer.FullName(),
			Status:        statuses[s.f.Number(0, len(statuses)-1)],
			PaymentMethod: methods[i%len(methods)],
			ShippingFee:   decimal.NewFromInt(int64(s.f.Number(1, 5))),
			CreatedAt:     s.past(120),
		}
		o.OrderNumber = fmt.Sprintf("ORD-%s-%05d", o.CreatedAt.Format("20060102"), o.OrderID)
		o.PaymentStatus = paymentFor(o.Status, o.PaymentMethod)

		byVendor := make(map[string][]trade.OrderItem)
		var sellers []identity.User
		for range s.f.Number(1, 4) {
			v := s.vendors[s.f.Number(0, len(s.vendors)-1)]
			qty := s.f.Number(1, 3)
			price := s.money(2, 150)
			item := trade.OrderItem{
				ProductID:   int64(s.f.Number(1000, 9999)),
				ProductName: s.f.ProductName(),
				VendorID:    v.ID,
				Quantity:    qty,
				UnitPrice:   price,
				Total:       price.Mul(decimal.NewFromInt(int64(qty))),
			}
			if _, ok := byVendor[v.ID]; !ok {
				sellers = append(sellers, v)
			}
			byVendor[v.ID] = append(byVendor[v.ID], item)
			o.Items = append(o.Items, item)
			o.SubTotal = o.SubTotal.Add(item.Total)
		}
		if len(sellers) == 1 {
			o.VendorName = sellers[0].VendorDetails.ShopName
		}
		if i%4 == 0 {
			o.CouponCode = "WELCOME10"
			o.Discount = o.SubTotal.Mul(decimal.NewFromInt(10)).Div(decimal.NewFromInt(100)).Round(2)
		}
		o.Total = o.ComputedTotal()
		s.db.Orders.Put(o)

		for _, v := range sellers {
			vo := trade.VendorOrder{
				VendorOrderID: s.db.VendorOrderIDs.Next(),
				OrderID:       o.OrderID,
				OrderNumber:   o.OrderNumber,
				VendorID:      v.ID,
				VendorName:    v.VendorDetails.ShopName,
				Status:        o.Status,
				Items:         byVendor[v.ID],
				CreatedAt:     o.CreatedAt,
			}
			for _, it := range vo.Items {
				vo.Total = vo.Total.Add(it.Total)
			}
			s.db.VendorOrders.Put(vo)
		}
	}
}

func paymentFor(status trade.OrderStatus, method trade.PaymentMethod) trade.PaymentStatus {
	switch status {
	case trade.OrderDelivered:
		return trade.PaymentPaid
	case trade.OrderReturned:
		return trade.PaymentRefunded
	case trade.OrderCancelled:
		if method == trade.PaymentCard {
			return trade.PaymentFailed
		}
	}
	if method == trade.PaymentCashOnDelivery {
		return trade.PaymentPending
	}
	return trade.PaymentPaid
}

func (s *seeder) reviews(n int) {
	customers := s.db.Users.Find(func(u identity.User) bool { return u.Role == identity.RoleCustomer })
	shippers := s.db.Users.Find(func(u identity.User) bool { return u.Role == identity.RoleShippingCompany })
	if len(customers) == 0 {
		return
	}
	statuses := catalog.AllReviewStatuses()
	for _, kind := range catalog.AllReviewKinds() {
		for range n {
			r := catalog.Review{
				ID:        s.db.ReviewIDs.Next(),
				Kind:      kind,
				UserName:  customers[s.f.Number(0, len(customers)-1)].FullName(),
				Rating:    s.f.Number(1, 5),
				Comment:   s.f.Sentence(10),
				Status:    statuses[s.f.Number(0, len(statuses)-1)],
				CreatedAt: s.past(90),
			}
			switch kind {
			case catalog.ReviewKindProduct:
				r.TargetID = fmt.Sprint(s.f.Number(1000, 9999))
				r.TargetName = s.f.ProductName()
			case catalog.ReviewKindVendor:
				if len(s.vendors) == 0 {
					continue
				}
				v := s.vendors[s.f.Number(0, len(s.vendors)-1)]
				r.TargetID, r.TargetName = v.ID, v.VendorDetails.ShopName
			case catalog.ReviewKindShipping:
				if len(shippers) == 0 {
					continue
				}
				c := shippers[s.f.Number(0, len(shippers)-1)]
				r.TargetID, r.TargetName = c.ID, c.ShippingCompanyDetails.CompanyName
			}
			s.db.Reviews[kind].Put(r)
		}
	}
}

func (s *seeder) wallets() {
	users := s.db.Users.Find(func(u identity.User) bool { return u.Role != identity.RoleAdmin })
	types := []finance.TransactionType{finance.TransactionCredit, finance.TransactionReward, finance.TransactionDebit, finance.TransactionRefund}
	for i := len(users) - 1; i >= 0; i-- {
		u := users[i]
		w := finance.Wallet{
			WalletID:  s.db.WalletIDs.Next(),
			UserID:    u.ID,
			UserName:  u.FullName(),
			Currency:  Currency,
			IsActive:  u.IsActive,
			CreatedAt: u.CreatedAt,
		}
		at := w.CreatedAt
		for range s.f.Number(0, 5) {
			typ := types[s.f.Number(0, len(types)-1)]
			amount := s.money(1, 80)
			if typ.IsOutgoing() && amount.GreaterThan(w.Balance) {
				typ = finance.TransactionCredit
			}
			req := finance.AdjustRequest{Type: typ, Amount: amount}
			w.Balance = req.Apply(w.Balance)
			at = s.f.DateRange(at, s.now).Truncate(time.Second)
			s.db.Transactions.Put(finance.Transaction{
				TransactionID: s.db.TransactionIDs.Next(),
				WalletID:      w.WalletID,
				Type:          typ,
				Amount:        amount,
				BalanceAfter:  w.Balance,
				Description:   s.f.Sentence(4),
				CreatedAt:     at,
			})
		}
		s.db.Wallets.Put(w)
	}
}

func (s *seeder) points() {
	terms := [][2]string{
		{"Points per purchase", "نقاط لكل عملية شراء"},
		{"Refer a friend", "ادعُ صديقاً"},
		{"Write a review", "اكتب تقييماً"},
		{"Birthday bonus", "مكافأة عيد الميلاد"},
		{"Complete your profile", "أكمل ملفك الشخصي"},
	}
	for i, t := range terms {
		s.db.PointTerms.Put(loyalty.PointTerm{
			PointTermID:  s.db.PointTermIDs.Next(),
			Title:        t[0],
			TitleAr:      t[1],
			Description:  s.f.Sentence(12),
			Points:       (i + 1) * 10,
			DisplayOrder: i + 1,
			IsActive:     i != len(terms)-1,
			CreatedAt:    s.past(180),
		})
	}
	s.db.SetSettings(loyalty.PointsSettings{
		PointsPerCurrencyUnit: decimal.NewFromInt(10),
		PointValue:            decimal.RequireFromString("0.01"),
		ReferrerPoints:        100,
		RefereePoints:         50,
		MinRedeemPoints:       500,
		IsReferralEnabled:     true,
		UpdatedAt:             s.now.AddDate(0, -1, 0),
	})
}

func (s *seeder) errorLogs(n int) {
	s.db.ErrorLogTypes = append([]system.ErrorLogType(nil), errorLogTypes...)
	severities := system.AllSeverities()
	users := s.db.Users.Find(nil)
	for range n {
		typ := errorLogTypes[s.f.Number(0, len(errorLogTypes)-1)]
		e := system.ErrorLog{
			ID:         s.db.ErrorLogIDs.Next(),
			Type:       typ.Code,
			Severity:   severities[s.f.Number(0, len(severities)-1)],
			Source:     s.f.RandomString([]string{"OrdersService", "PaymentsService", "CatalogService", "IdentityService"}),
			Message:    s.f.HackerPhrase(),
			Path:       "/api/" + s.f.RandomString([]string{"orders", "wallet", "categories", "admin/users"}),
			OccurredAt: s.past(30),
		}
		if e.Severity.Rank() >= system.SeverityError.Rank() {
			e.StackTrace = fmt.Sprintf("at %s.Handle()\nat Pipeline.Next()\nat Server.Dispatch()", e.Source)
		}
		if s.f.Bool() && len(users) > 0 {
			e.UserID = users[s.f.Number(0, len(users)-1)].ID
		}
		if s.f.Number(0, 2) == 0 {
			resolved := s.f.DateRange(e.OccurredAt, s.now).Truncate(time.Second)
			e.IsResolved = true
			e.ResolvedAt = &resolved
		}
		s.db.ErrorLogs.Put(e)
	}
}
