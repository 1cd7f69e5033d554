package console

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

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

func (a *App) register() map[string]map[string]command {
	return map[string]map[string]command{
		"districts": {
			"list":    {"[-page n] [-search s] [-city id] [-active bool]", "list districts", a.districtList},
			"get":     {"<id>", "show a district", a.districtGet},
			"cities":  {"", "list cities", a.districtCities},
			"by-city": {"<cityId>", "list the districts of a city", a.districtByCity},
			"create":  {"-f file.json", "create a district", a.districtCreate},
			"update":  {"-f file.json <id>", "update a district", a.districtUpdate},
			"delete":  {"<id>", "delete a district", a.districtDelete},
		},
		"categories": {
			"list":   {"[-page n] [-search s] [-parent id] [-active bool]", "list categories", a.categoryList},
			"get":    {"<id>", "show a category", a.categoryGet},
			"create": {"-f file.json [-image path]", "create a category", a.categoryCreate},
			"update": {"-f file.json [-image path] <id>", "update a category", a.categoryUpdate},
			"delete": {"<id>", "delete a category", a.categoryDelete},
		},
		"coupons": {
			"list":   {"[-page n] [-search s] [-status s] [-type t]", "list coupons", a.couponList},
			"get":    {"<id>", "show a coupon", a.couponGet},
			"create": {"-f file.json", "create a coupon", a.couponCreate},
			"update": {"-f file.json <id>", "update a coupon", a.couponUpdate},
			"delete": {"<id>", "delete a coupon", a.couponDelete},
		},
		"users": {
			"list":       {"[-page n] [-search s] [-role r] [-active bool]", "list users", a.userList},
			"get":        {"<id>", "show a user", a.userGet},
			"form":       {"<role>", "show the form fields of a role", a.userForm},
			"create":     {"-f file.json [-logo path]", "create a user", a.userCreate},
			"update":     {"-f file.json [-logo path] <id>", "update a user", a.userUpdate},
			"activate":   {"<id>", "activate a user", a.userActivate(true)},
			"deactivate": {"<id>", "deactivate a user", a.userActivate(false)},
			"delete":     {"<id>", "delete a user", a.userDelete},
		},
		"orders": {
			"list":    {"[-page n] [-search s] [-status s] [-payment s] [-from date] [-to date]", "list orders", a.orderList},
			"get":     {"<id>", "show an order", a.orderGet},
			"stats":   {"[-status s] [-from date] [-to date]", "show order statistics", a.orderStats},
			"status":  {"[-note s] <id> <status>", "change the order status", a.orderStatus},
			"payment": {"<id> <status>", "change the payment status", a.orderPayment},
		},
		"vendor-orders": {
			"list":   {"[-page n] [-status s] [-vendor id]", "list vendor orders", a.vendorOrderList},
			"get":    {"<id>", "show a vendor order", a.vendorOrderGet},
			"status": {"[-note s] <id> <status>", "change the vendor order status", a.vendorOrderStatus},
		},
		"reviews": {
			"list":    {"-kind k [-page n] [-search s] [-status s] [-min-rating n]", "list reviews", a.reviewList},
			"get":     {"-kind k <id>", "show a review", a.reviewGet},
			"approve": {"-kind k [-note s] <id>", "approve a review", a.reviewModerate(catalog.ReviewStatusApproved)},
			"reject":  {"-kind k [-note s] <id>", "reject a review", a.reviewModerate(catalog.ReviewStatusRejected)},
			"delete":  {"-kind k <id>", "delete a review", a.reviewDelete},
		},
		"wallets": {
			"list":         {"[-page n] [-search s] [-active bool] [-min-balance n]", "list wallets", a.walletList},
			"get":          {"<id>", "show a wallet", a.walletGet},
			"user":         {"<userId>", "show the wallet of a user", a.walletByUser},
			"transactions": {"[-page n] [-type t] <id>", "list the transactions of a wallet", a.walletTransactions},
			"adjust":       {"-type Credit|Debit -amount n -desc s <id>", "credit or debit a wallet", a.walletAdjust},
			"freeze":       {"<id>", "freeze a wallet", a.walletActivate(false)},
			"unfreeze":     {"<id>", "unfreeze a wallet", a.walletActivate(true)},
			"delete":       {"[-hard] <id>", "delete a wallet", a.walletDelete},
		},
		"points": {
			"terms":           {"[-page n] [-search s] [-active bool]", "list points terms", a.pointTerms},
			"term":            {"<id>", "show a points term", a.pointTerm},
			"create-term":     {"-f file.json", "create a points term", a.pointTermCreate},
			"update-term":     {"-f file.json <id>", "update a points term", a.pointTermUpdate},
			"delete-term":     {"<id>", "delete a points term", a.pointTermDelete},
			"settings":        {"", "show the points settings", a.pointSettings},
			"update-settings": {"-f file.json", "update the points settings", a.pointSettingsUpdate},
		},
		"error-logs": {
			"list":    {"[-page n] [-search s] [-type t] [-severity s] [-resolved bool]", "list error logs", a.errorLogList},
			"get":     {"<id>", "show an error log", a.errorLogGet},
			"types":   {"", "list error types", a.errorLogTypes},
			"resolve": {"[-note s] <id>", "mark an error log resolved", a.errorLogResolve},
			"delete":  {"<id>", "delete an error log", a.errorLogDelete},
		},
	}
}

// idCommand parses a command that takes only an id
func (a *App) idCommand(name string, args []string, fn func(id int64) error) error {
	fs := a.flags(name)
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs)
	if err != nil {
		return err
	}
	return fn(id)
}

// districts

func (a *App) districtList(ctx context.Context, args []string) error {
	fs, lf := a.listFlags("districts list")
	city := fs.Int64("city", 0, "city id")
	activeFlag := fs.String("active", "", "true or false")
	if err := fs.Parse(args); err != nil {
		return err
	}
	isActive, err := optBool(*activeFlag)
	if err != nil {
		return err
	}
	filter := location.DistrictFilter{CityID: optInt64(*city), Search: lf.search, IsActive: isActive}
	return showList(ctx, a.out, NewDistrictsPage(a.svc.Districts, a.deps, filter).List, lf.page)
}

func (a *App) districtGet(ctx context.Context, args []string) error {
	return a.idCommand("districts get", args, func(id int64) error {
		return NewDistrictsPage(a.svc.Districts, a.deps, location.DistrictFilter{}).Show(ctx, a.out, id)
	})
}

func (a *App) districtCities(ctx context.Context, args []string) error {
	if err := a.flags("districts cities").Parse(args); err != nil {
		return err
	}
	return NewDistrictsPage(a.svc.Districts, a.deps, location.DistrictFilter{}).Cities(ctx, a.out)
}

func (a *App) districtByCity(ctx context.Context, args []string) error {
	return a.idCommand("districts by-city", args, func(cityID int64) error {
		if err := a.deps.require("districts", adminOnly...); err != nil {
			return err
		}
		res := a.svc.Districts.ByCity(ctx, &cityID)
		if !res.HasData {
			return res.Err
		}
		return RenderTable(a.out, []Column[location.District]{
			{Header: "ID", Value: func(d location.District) string { return id64(d.ID) }},
			{Header: "Name", Value: func(d location.District) string { return d.Name }},
			{Header: "Status", Value: func(d location.District) string { return active(d.IsActive) }},
		}, res.Data)
	})
}

func (a *App) districtCreate(ctx context.Context, args []string) error {
	fs := a.flags("districts create")
	file := fs.String("f", "", "JSON payload")
	if err := fs.Parse(args); err != nil {
		return err
	}
	var in location.DistrictInput
	if err := readPayload(*file, &in); err != nil {
		return err
	}
	d, err := NewDistrictsPage(a.svc.Districts, a.deps, location.DistrictFilter{}).Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "id: %d\n", d.ID)
	return nil
}

func (a *App) districtUpdate(ctx context.Context, args []string) error {
	fs := a.flags("districts update")
	file := fs.String("f", "", "JSON payload with the fields to change")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs)
	if err != nil {
		return err
	}
	cur := a.svc.Districts.Get(ctx, id)
	if !cur.HasData {
		return cur.Err
	}
	in := location.InputFrom(cur.Data)
	if err := readPayload(*file, &in); err != nil {
		return err
	}
	_, err = NewDistrictsPage(a.svc.Districts, a.deps, location.DistrictFilter{}).Update(ctx, id, in)
	return err
}

func (a *App) districtDelete(ctx context.Context, args []string) error {
	return a.idCommand("districts delete", args, func(id int64) error {
		return NewDistrictsPage(a.svc.Districts, a.deps, location.DistrictFilter{}).Delete(ctx, id)
	})
}

// categories

func (a *App) categoryList(ctx context.Context, args []string) error {
	fs, lf := a.listFlags("categories list")
	parent := fs.Int64("parent", 0, "parent category id")
	activeFlag := fs.String("active", "", "true or false")
	if err := fs.Parse(args); err != nil {
		return err
	}
	isActive, err := optBool(*activeFlag)
	if err != nil {
		return err
	}
	filter := catalog.CategoryFilter{Search: lf.search, ParentID: optInt64(*parent), IsActive: isActive}
	return showList(ctx, a.out, NewCategoriesPage(a.svc.Categories, a.deps, filter).List, lf.page)
}

func (a *App) categoryGet(ctx context.Context, args []string) error {
	return a.idCommand("categories get", args, func(id int64) error {
		return NewCategoriesPage(a.svc.Categories, a.deps, catalog.CategoryFilter{}).Show(ctx, a.out, id)
	})
}

func (a *App) categoryCreate(ctx context.Context, args []string) error {
	fs := a.flags("categories create")
	file := fs.String("f", "", "JSON payload")
	image := fs.String("image", "", "image to upload")
	if err := fs.Parse(args); err != nil {
		return err
	}
	var in catalog.CategoryInput
	if err := readPayload(*file, &in); err != nil {
		return err
	}
	img, err := readFile(*image)
	if err != nil {
		return err
	}
	in.Image = img
	c, err := NewCategoriesPage(a.svc.Categories, a.deps, catalog.CategoryFilter{}).Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "id: %d\n", c.ID)
	return nil
}

func categoryInput(c catalog.Category) catalog.CategoryInput {
	return catalog.CategoryInput{
		Name:         c.Name,
		NameAr:       c.NameAr,
		Description:  c.Description,
		ParentID:     c.ParentID,
		IsActive:     c.IsActive,
		DisplayOrder: c.DisplayOrder,
	}
}

func (a *App) categoryUpdate(ctx context.Context, args []string) error {
	fs := a.flags("categories update")
	file := fs.String("f", "", "JSON payload with the fields to change")
	image := fs.String("image", "", "replacement image")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs)
	if err != nil {
		return err
	}
	cur := a.svc.Categories.Get(ctx, id)
	if !cur.HasData {
		return cur.Err
	}
	in := categoryInput(cur.Data)
	if err := readPayload(*file, &in); err != nil {
		return err
	}
	if in.Image, err = readFile(*image); err != nil {
		return err
	}
	_, err = NewCategoriesPage(a.svc.Categories, a.deps, catalog.CategoryFilter{}).Update(ctx, id, in)
	return err
}

func (a *App) categoryDelete(ctx context.Context, args []string) error {
	return a.idCommand("categories delete", args, func(id int64) error {
		return NewCategoriesPage(a.svc.Categories, a.deps, catalog.CategoryFilter{}).Delete(ctx, id)
	})
}

// coupons

func (a *App) couponList(ctx context.Context, args []string) error {
	fs, lf := a.listFlags("coupons list")
	status := fs.String("status", "", "Active, Inactive or Expired")
	kind := fs.String("type", "", "Percentage or FixedAmount")
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter := promotion.CouponFilter{
		Search:       lf.search,
		Status:       promotion.CouponStatus(*status),
		DiscountType: promotion.DiscountType(*kind),
	}
	return showList(ctx, a.out, NewCouponsPage(a.svc.Coupons, a.deps, filter).List, lf.page)
}

func (a *App) couponGet(ctx context.Context, args []string) error {
	return a.idCommand("coupons get", args, func(id int64) error {
		return NewCouponsPage(a.svc.Coupons, a.deps, promotion.CouponFilter{}).Show(ctx, a.out, id)
	})
}

func (a *App) couponCreate(ctx context.Context, args []string) error {
	fs := a.flags("coupons create")
	file := fs.String("f", "", "JSON payload")
	if err := fs.Parse(args); err != nil {
		return err
	}
	var in promotion.CouponInput
	if err := readPayload(*file, &in); err != nil {
		return err
	}
	c, err := NewCouponsPage(a.svc.Coupons, a.deps, promotion.CouponFilter{}).Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "id: %d\n", c.ID)
	return nil
}

func couponInput(c promotion.Coupon) promotion.CouponInput {
	status := c.Status
	if !status.IsStored() || status == promotion.CouponExpired {
		status = promotion.CouponInactive
	}
	return promotion.CouponInput{
		Code:              c.Code,
		Description:       c.Description,
		DiscountType:      c.DiscountType,
		DiscountValue:     c.DiscountValue,
		MinOrderAmount:    c.MinOrderAmount,
		MaxDiscountAmount: c.MaxDiscountAmount,
		StartDate:         c.StartDate,
		EndDate:           c.EndDate,
		UsageLimit:        c.UsageLimit,
		Status:            status,
	}
}

func (a *App) couponUpdate(ctx context.Context, args []string) error {
	fs := a.flags("coupons update")
	file := fs.String("f", "", "JSON payload with the fields to change")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs)
	if err != nil {
		return err
	}
	cur := a.svc.Coupons.Get(ctx, id)
	if !cur.HasData {
		return cur.Err
	}
	in := couponInput(cur.Data)
	if err := readPayload(*file, &in); err != nil {
		return err
	}
	_, err = NewCouponsPage(a.svc.Coupons, a.deps, promotion.CouponFilter{}).Update(ctx, id, in)
	return err
}

func (a *App) couponDelete(ctx context.Context, args []string) error {
	return a.idCommand("coupons delete", args, func(id int64) error {
		return NewCouponsPage(a.svc.Coupons, a.deps, promotion.CouponFilter{}).Delete(ctx, id)
	})
}

// users

func (a *App) userList(ctx context.Context, args []string) error {
	fs, lf := a.listFlags("users list")
	role := fs.String("role", "", "Admin, Vendor, ShippingCompany or Customer")
	activeFlag := fs.String("active", "", "true or false")
	if err := fs.Parse(args); err != nil {
		return err
	}
	isActive, err := optBool(*activeFlag)
	if err != nil {
		return err
	}
	filter := identity.UserFilter{Search: lf.search, Role: identity.Role(*role), IsActive: isActive}
	return showList(ctx, a.out, NewUsersPage(a.svc.Users, a.deps, filter).List, lf.page)
}

func (a *App) userGet(ctx context.Context, args []string) error {
	fs := a.flags("users get")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argString(fs, 0, "id")
	if err != nil {
		return err
	}
	return NewUsersPage(a.svc.Users, a.deps, identity.UserFilter{}).Show(ctx, a.out, id)
}

func (a *App) userForm(_ context.Context, args []string) error {
	fs := a.flags("users form")
	if err := fs.Parse(args); err != nil {
		return err
	}
	role, err := argString(fs, 0, "role")
	if err != nil {
		return err
	}
	return NewUsersPage(a.svc.Users, a.deps, identity.UserFilter{}).Form(a.out, identity.Role(role))
}

// draftHead holds the fields read before the rest of a user payload
type draftHead struct {
	Role   identity.Role `json:"role"`
	CityID int64         `json:"cityId"`
}

// decodeDraft applies a user payload to d. A role in the payload switches
// the draft; a new city resets the district unless the payload sets one.
func decodeDraft(path string, d identity.UserDraft) (identity.UserDraft, error) {
	var raw json.RawMessage
	if err := readPayload(path, &raw); err != nil {
		return nil, err
	}
	var head draftHead
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	if head.Role != "" {
		next, err := identity.SwitchRole(d, head.Role)
		if err != nil {
			return nil, err
		}
		d = next
	}
	if d == nil {
		return nil, shared.NewDomainError("INVALID_ROLE", "the payload must name a role")
	}
	if head.CityID > 0 {
		identity.SetCity(d, head.CityID)
	}
	if err := json.Unmarshal(raw, d); err != nil {
		return nil, err
	}
	return d, nil
}

func attachLogo(d identity.UserDraft, path string) error {
	logo, err := readFile(path)
	if err != nil || logo == nil {
		return err
	}
	v, ok := d.(*identity.VendorDraft)
	if !ok {
		return shared.NewDomainError("INVALID_FIELD", "only vendors have a logo")
	}
	v.SetLogoFile(logo)
	return nil
}

func (a *App) userCreate(ctx context.Context, args []string) error {
	fs := a.flags("users create")
	file := fs.String("f", "", "JSON payload including role")
	logo := fs.String("logo", "", "vendor logo to upload")
	if err := fs.Parse(args); err != nil {
		return err
	}
	d, err := decodeDraft(*file, nil)
	if err != nil {
		return err
	}
	if err := attachLogo(d, *logo); err != nil {
		return err
	}
	u, err := NewUsersPage(a.svc.Users, a.deps, identity.UserFilter{}).Create(ctx, d)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "id: %s\n", u.ID)
	return nil
}

func (a *App) userUpdate(ctx context.Context, args []string) error {
	fs := a.flags("users update")
	file := fs.String("f", "", "JSON payload with the fields to change")
	logo := fs.String("logo", "", "replacement vendor logo")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argString(fs, 0, "id")
	if err != nil {
		return err
	}
	page := NewUsersPage(a.svc.Users, a.deps, identity.UserFilter{})
	d, err := page.EditDraft(ctx, id)
	if err != nil {
		return err
	}
	if d, err = decodeDraft(*file, d); err != nil {
		return err
	}
	if err := attachLogo(d, *logo); err != nil {
		return err
	}
	_, err = page.Update(ctx, id, d)
	return err
}

func (a *App) userActivate(on bool) func(context.Context, []string) error {
	return func(ctx context.Context, args []string) error {
		fs := a.flags("users activate")
		if err := fs.Parse(args); err != nil {
			return err
		}
		id, err := argString(fs, 0, "id")
		if err != nil {
			return err
		}
		return NewUsersPage(a.svc.Users, a.deps, identity.UserFilter{}).SetActive(ctx, id, on)
	}
}

func (a *App) userDelete(ctx context.Context, args []string) error {
	fs := a.flags("users delete")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argString(fs, 0, "id")
	if err != nil {
		return err
	}
	return NewUsersPage(a.svc.Users, a.deps, identity.UserFilter{}).Delete(ctx, id)
}

// orders

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a date (YYYY-MM-DD)", ErrUsage, s)
	}
	return &t, nil
}

func (a *App) orderFilter(name string, args []string) (*listFlags, trade.OrderFilter, error) {
	fs, lf := a.listFlags(name)
	status := fs.String("status", "", "order status")
	payment := fs.String("payment", "", "payment status")
	from := fs.String("from", "", "placed on or after (YYYY-MM-DD)")
	to := fs.String("to", "", "placed on or before (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return nil, trade.OrderFilter{}, err
	}
	f := trade.OrderFilter{
		Search:        lf.search,
		Status:        trade.OrderStatus(*status),
		PaymentStatus: trade.PaymentStatus(*payment),
	}
	var err error
	if f.From, err = parseDate(*from); err != nil {
		return nil, f, err
	}
	if f.To, err = parseDate(*to); err != nil {
		return nil, f, err
	}
	return lf, f, nil
}

func (a *App) orderList(ctx context.Context, args []string) error {
	lf, filter, err := a.orderFilter("orders list", args)
	if err != nil {
		return err
	}
	page := NewOrdersPage(a.svc.Orders, a.deps, filter)
	if err := page.RenderStatistics(ctx, a.out); err != nil {
		return err
	}
	fmt.Fprintln(a.out)
	return showList(ctx, a.out, page.List, lf.page)
}

func (a *App) orderStats(ctx context.Context, args []string) error {
	_, filter, err := a.orderFilter("orders stats", args)
	if err != nil {
		return err
	}
	return NewOrdersPage(a.svc.Orders, a.deps, filter).RenderStatistics(ctx, a.out)
}

func (a *App) orderGet(ctx context.Context, args []string) error {
	return a.idCommand("orders get", args, func(id int64) error {
		return NewOrdersPage(a.svc.Orders, a.deps, trade.OrderFilter{}).Show(ctx, a.out, id)
	})
}

func (a *App) orderStatus(ctx context.Context, args []string) error {
	fs := a.flags("orders status")
	note := fs.String("note", "", "note kept with the change")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs)
	if err != nil {
		return err
	}
	status, err := argString(fs, 1, "status")
	if err != nil {
		return err
	}
	_, err = NewOrdersPage(a.svc.Orders, a.deps, trade.OrderFilter{}).UpdateStatus(ctx, id, trade.OrderStatus(status), *note)
	return err
}

func (a *App) orderPayment(ctx context.Context, args []string) error {
	fs := a.flags("orders payment")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs)
	if err != nil {
		return err
	}
	status, err := argString(fs, 1, "payment status")
	if err != nil {
		return err
	}
	_, err = NewOrdersPage(a.svc.Orders, a.deps, trade.OrderFilter{}).UpdatePaymentStatus(ctx, id, trade.PaymentStatus(status))
	return err
}

func (a *App) vendorOrderList(ctx context.Context, args []string) error {
	fs, lf := a.listFlags("vendor-orders list")
	status := fs.String("status", "", "order status")
	vendor := fs.String("vendor", "", "vendor id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter := trade.VendorOrderFilter{Status: trade.OrderStatus(*status), VendorID: *vendor}
	return showList(ctx, a.out, NewVendorOrdersPage(a.svc.VendorOrders, a.deps, filter).List, lf.page)
}

func (a *App) vendorOrderGet(ctx context.Context, args []string) error {
	return a.idCommand("vendor-orders get", args, func(id int64) error {
		return NewVendorOrdersPage(a.svc.VendorOrders, a.deps, trade.VendorOrderFilter{}).Show(ctx, a.out, id)
	})
}

func (a *App) vendorOrderStatus(ctx context.Context, args []string) error {
	fs := a.flags("vendor-orders status")
	note := fs.String("note", "", "note kept with the change")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs)
	if err != nil {
		return err
	}
	status, err := argString(fs, 1, "status")
	if err != nil {
		return err
	}
	_, err = NewVendorOrdersPage(a.svc.VendorOrders, a.deps, trade.VendorOrderFilter{}).
		UpdateStatus(ctx, id, trade.OrderStatus(status), *note)
	return err
}

// reviews

func (a *App) reviewsPage(kind string, filter catalog.ReviewFilter) (*ReviewsPage, error) {
	svc, ok := a.svc.Reviews[catalog.ReviewKind(kind)]
	if !ok {
		return nil, fmt.Errorf("%w: -kind must be products, vendors or shipping", ErrUsage)
	}
	return NewReviewsPage(svc, a.deps, filter), nil
}

func (a *App) reviewList(ctx context.Context, args []string) error {
	fs, lf := a.listFlags("reviews list")
	kind := fs.String("kind", "", "products, vendors or shipping")
	status := fs.String("status", "", "Pending, Approved or Rejected")
	minRating := fs.Int("min-rating", -1, "lowest rating shown, -1 for any")
	if err := fs.Parse(args); err != nil {
		return err
	}
	page, err := a.reviewsPage(*kind, catalog.ReviewFilter{
		Status:    catalog.ReviewStatus(*status),
		MinRating: optInt(*minRating),
		Search:    lf.search,
	})
	if err != nil {
		return err
	}
	return showList(ctx, a.out, page.List, lf.page)
}

func (a *App) reviewGet(ctx context.Context, args []string) error {
	fs := a.flags("reviews get")
	kind := fs.String("kind", "", "products, vendors or shipping")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs)
	if err != nil {
		return err
	}
	page, err := a.reviewsPage(*kind, catalog.ReviewFilter{})
	if err != nil {
		return err
	}
	return page.Show(ctx, a.out, id)
}

func (a *App) reviewModerate(status catalog.ReviewStatus) func(context.Context, []string) error {
	return func(ctx context.Context, args []string) error {
		fs := a.flags("reviews moderate")
		kind := fs.String("kind", "", "products, vendors or shipping")
		note := fs.String("note", "", "moderation note")
		if err := fs.Parse(args); err != nil {
			return err
		}
		id, err := argID(fs)
		if err != nil {
			return err
		}
		page, err := a.reviewsPage(*kind, catalog.ReviewFilter{})
		if err != nil {
			return err
		}
		_, err = page.Moderate(ctx, id, status, *note)
		return err
	}
}

func (a *App) reviewDelete(ctx context.Context, args []string) error {
	fs := a.flags("reviews delete")
	kind := fs.String("kind", "", "products, vendors or shipping")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs)
	if err != nil {
		return err
	}
	page, err := a.reviewsPage(*kind, catalog.ReviewFilter{})
	if err != nil {
		return err
	}
	return page.Delete(ctx, id)
}

// wallets

func (a *App) walletsPage() *WalletsPage {
	return NewWalletsPage(a.svc.Wallets, a.deps, finance.WalletFilter{})
}

func (a *App) walletList(ctx context.Context, args []string) error {
	fs, lf := a.listFlags("wallets list")
	activeFlag := fs.String("active", "", "true or false")
	minBalance := fs.String("min-balance", "", "lowest balance shown")
	if err := fs.Parse(args); err != nil {
		return err
	}
	isActive, err := optBool(*activeFlag)
	if err != nil {
		return err
	}
	minBal, err := optDecimal(*minBalance)
	if err != nil {
		return err
	}
	filter := finance.WalletFilter{Search: lf.search, IsActive: isActive, MinBal: minBal}
	return showList(ctx, a.out, NewWalletsPage(a.svc.Wallets, a.deps, filter).List, lf.page)
}

func (a *App) walletGet(ctx context.Context, args []string) error {
	return a.idCommand("wallets get", args, func(id int64) error {
		return a.walletsPage().Show(ctx, a.out, id)
	})
}

func (a *App) walletByUser(ctx context.Context, args []string) error {
	fs := a.flags("wallets user")
	if err := fs.Parse(args); err != nil {
		return err
	}
	userID, err := argString(fs, 0, "user id")
	if err != nil {
		return err
	}
	return a.walletsPage().ShowByUser(ctx, a.out, userID)
}

func (a *App) walletTransactions(ctx context.Context, args []string) error {
	fs, lf := a.listFlags("wallets transactions")
	kind := fs.String("type", "", "transaction type")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs)
	if err != nil {
		return err
	}
	list := a.walletsPage().Transactions(id, finance.TransactionFilter{Type: finance.TransactionType(*kind)})
	return showList(ctx, a.out, list, lf.page)
}

func (a *App) walletAdjust(ctx context.Context, args []string) error {
	fs := a.flags("wallets adjust")
	kind := fs.String("type", "", "Credit or Debit")
	amount := fs.String("amount", "", "positive amount")
	desc := fs.String("desc", "", "reason shown on the transaction")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs)
	if err != nil {
		return err
	}
	amt, err := optDecimal(*amount)
	if err != nil {
		return err
	}
	if amt == nil {
		return fmt.Errorf("%w: -amount is required", ErrUsage)
	}
	req := finance.AdjustRequest{Type: finance.TransactionType(*kind), Amount: *amt, Description: *desc}
	tx, err := a.walletsPage().Adjust(ctx, id, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "transaction: %d, balance: %s\n", tx.TransactionID, money(tx.BalanceAfter))
	return nil
}

func (a *App) walletActivate(on bool) func(context.Context, []string) error {
	return func(ctx context.Context, args []string) error {
		return a.idCommand("wallets freeze", args, func(id int64) error {
			return a.walletsPage().SetActive(ctx, id, on)
		})
	}
}

func (a *App) walletDelete(ctx context.Context, args []string) error {
	fs := a.flags("wallets delete")
	hard := fs.Bool("hard", false, "delete permanently")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs)
	if err != nil {
		return err
	}
	return a.walletsPage().Delete(ctx, id, *hard)
}

// points

func (a *App) pointsPage() *PointsPage {
	return NewPointsPage(a.svc.Points, a.deps, loyalty.PointTermFilter{})
}

func (a *App) pointTerms(ctx context.Context, args []string) error {
	fs, lf := a.listFlags("points terms")
	activeFlag := fs.String("active", "", "true or false")
	if err := fs.Parse(args); err != nil {
		return err
	}
	isActive, err := optBool(*activeFlag)
	if err != nil {
		return err
	}
	filter := loyalty.PointTermFilter{Search: lf.search, IsActive: isActive}
	return showList(ctx, a.out, NewPointsPage(a.svc.Points, a.deps, filter).List, lf.page)
}

func (a *App) pointTerm(ctx context.Context, args []string) error {
	return a.idCommand("points term", args, func(id int64) error {
		return a.pointsPage().ShowTerm(ctx, a.out, id)
	})
}

func (a *App) pointTermCreate(ctx context.Context, args []string) error {
	fs := a.flags("points create-term")
	file := fs.String("f", "", "JSON payload")
	if err := fs.Parse(args); err != nil {
		return err
	}
	var in loyalty.PointTermInput
	if err := readPayload(*file, &in); err != nil {
		return err
	}
	t, err := a.pointsPage().CreateTerm(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "id: %d\n", t.PointTermID)
	return nil
}

func (a *App) pointTermUpdate(ctx context.Context, args []string) error {
	fs := a.flags("points update-term")
	file := fs.String("f", "", "JSON payload with the fields to change")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs)
	if err != nil {
		return err
	}
	cur := a.svc.Points.Term(ctx, id)
	if !cur.HasData {
		return cur.Err
	}
	t := cur.Data
	in := loyalty.PointTermInput{
		Title:         t.Title,
		TitleAr:       t.TitleAr,
		Description:   t.Description,
		DescriptionAr: t.DescriptionAr,
		Points:        t.Points,
		DisplayOrder:  t.DisplayOrder,
		IsActive:      t.IsActive,
	}
	if err := readPayload(*file, &in); err != nil {
		return err
	}
	_, err = a.pointsPage().UpdateTerm(ctx, id, in)
	return err
}

func (a *App) pointTermDelete(ctx context.Context, args []string) error {
	return a.idCommand("points delete-term", args, func(id int64) error {
		return a.pointsPage().DeleteTerm(ctx, id)
	})
}

func (a *App) pointSettings(ctx context.Context, args []string) error {
	if err := a.flags("points settings").Parse(args); err != nil {
		return err
	}
	return a.pointsPage().ShowSettings(ctx, a.out)
}

func (a *App) pointSettingsUpdate(ctx context.Context, args []string) error {
	fs := a.flags("points update-settings")
	file := fs.String("f", "", "JSON payload with the fields to change")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cur := a.svc.Points.Settings(ctx)
	if !cur.HasData {
		return cur.Err
	}
	s := cur.Data
	if err := readPayload(*file, &s); err != nil {
		return err
	}
	_, err := a.pointsPage().UpdateSettings(ctx, s)
	return err
}

// error logs

func (a *App) errorLogsPage() *ErrorLogsPage {
	return NewErrorLogsPage(a.svc.ErrorLogs, a.deps, system.ErrorLogFilter{})
}

func (a *App) errorLogList(ctx context.Context, args []string) error {
	fs, lf := a.listFlags("error-logs list")
	kind := fs.String("type", "", "error type code")
	severity := fs.String("severity", "", "Info, Warning, Error or Critical")
	resolved := fs.String("resolved", "", "true or false")
	if err := fs.Parse(args); err != nil {
		return err
	}
	isResolved, err := optBool(*resolved)
	if err != nil {
		return err
	}
	filter := system.ErrorLogFilter{
		Type:       *kind,
		Severity:   system.ErrorSeverity(*severity),
		IsResolved: isResolved,
		Search:     lf.search,
	}
	return showList(ctx, a.out, NewErrorLogsPage(a.svc.ErrorLogs, a.deps, filter).List, lf.page)
}

func (a *App) errorLogGet(ctx context.Context, args []string) error {
	return a.idCommand("error-logs get", args, func(id int64) error {
		return a.errorLogsPage().Show(ctx, a.out, id)
	})
}

func (a *App) errorLogTypes(ctx context.Context, args []string) error {
	if err := a.flags("error-logs types").Parse(args); err != nil {
		return err
	}
	return a.errorLogsPage().Types(ctx, a.out)
}

func (a *App) errorLogResolve(ctx context.Context, args []string) error {
	fs := a.flags("error-logs resolve")
	note := fs.String("note", "", "resolution note")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs)
	if err != nil {
		return err
	}
	_, err = a.errorLogsPage().Resolve(ctx, id, *note)
	return err
}

func (a *App) errorLogDelete(ctx context.Context, args []string) error {
	return a.idCommand("error-logs delete", args, func(id int64) error {
		return a.errorLogsPage().Delete(ctx, id)
	})
}
