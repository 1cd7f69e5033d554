package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sooquk/dashboard/internal/domain/identity"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/memdb"
	"github.com/sooquk/dashboard/internal/interfaces/http/middleware"
)

// UserHandler serves the admin user directory
type UserHandler struct {
	BaseHandler
	db *memdb.DB
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(db *memdb.DB) *UserHandler {
	return &UserHandler{db: db}
}

// StatusRequest toggles an active flag
type StatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// RegisterRoutes registers the user routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/admin/users")
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.GET("/:id", h.Get)
		users.PATCH("/:id", h.Update)
		users.PUT("/:id/status", h.SetStatus)
		users.DELETE("/:id", h.Delete)
	}
}

// List returns a page of users
func (h *UserHandler) List(c *gin.Context) {
	role := identity.Role(c.Query("role"))
	active := queryBool(c, "isActive")
	search := c.Query("search")

	rows := h.db.Users.Find(func(u identity.User) bool {
		return (role == "" || u.Role == role) &&
			(active == nil || u.IsActive == *active) &&
			matches(search, u.FullName(), u.Email, u.PhoneNumber)
	})
	sendPage(&h.BaseHandler, c, rows)
}

// Get returns one user with role details
func (h *UserHandler) Get(c *gin.Context) {
	u, ok := h.db.Users.Get(c.Param("id"))
	if !ok {
		h.NotFound(c, "User not found")
		return
	}
	h.Success(c, u)
}

// Create adds a user of any role but Customer
func (h *UserHandler) Create(c *gin.Context) {
	d, ok := h.bindDraft(c, "", true)
	if !ok {
		return
	}
	u := identity.User{
		ID:        uuid.NewString(),
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	h.apply(&u, d)
	if err := h.db.SetPassword(u.ID, u.Email, d.Common().Password); err != nil {
		h.HandleError(c, err)
		return
	}
	h.db.Users.Put(u)
	h.Created(c, u)
}

// Update replaces a user's profile. The password changes only when sent.
func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")
	old, ok := h.db.Users.Get(id)
	if !ok {
		h.NotFound(c, "User not found")
		return
	}
	d, ok := h.bindDraft(c, id, false)
	if !ok {
		return
	}
	u, err := h.db.Users.Update(id, func(u *identity.User) error {
		h.apply(u, d)
		return nil
	})
	if err != nil {
		h.notFoundOr(c, err, "User not found")
		return
	}
	if pw := d.Common().Password; pw != "" || !strings.EqualFold(old.Email, u.Email) {
		if err := h.moveCredential(old.Email, u, pw); err != nil {
			h.HandleError(c, err)
			return
		}
	}
	h.Success(c, u)
}

// SetStatus activates or deactivates a user
func (h *UserHandler) SetStatus(c *gin.Context) {
	var req StatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	u, err := h.db.Users.Update(c.Param("id"), func(u *identity.User) error {
		u.IsActive = *req.IsActive
		return nil
	})
	if err != nil {
		h.notFoundOr(c, err, "User not found")
		return
	}
	h.Success(c, u)
}

// Delete removes a user. Admins cannot delete themselves.
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == middleware.GetJWTUserID(c) {
		h.Conflict(c, "You cannot delete your own account")
		return
	}
	if !h.db.DeleteUser(id) {
		h.NotFound(c, "User not found")
		return
	}
	h.Message(c, "User deleted")
}

// bindDraft parses and validates a user form. self is the edited user's ID.
func (h *UserHandler) bindDraft(c *gin.Context, self string, creating bool) (identity.UserDraft, bool) {
	f, err := newForm(c)
	if err != nil {
		h.BadRequest(c, "Expected a multipart form: "+err.Error())
		return nil, false
	}
	d, err := identity.NewDraft(identity.Role(f.str("role")))
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}

	common := d.Common()
	common.Email = f.str("email")
	common.Password = f.str("password")
	common.FirstName = f.str("firstName")
	common.LastName = f.str("lastName")
	common.PhoneNumber = f.str("phoneNumber")
	common.CityID = f.integer("cityId")

	switch d := d.(type) {
	case *identity.AdminDraft:
		d.Department = f.str("department")
		d.JobTitle = f.str("jobTitle")
		d.Address = f.str("address")
		d.DistrictID = f.integer("districtId")
		h.checkDistrict(f, "districtId", common.CityID, d.DistrictID)
	case *identity.VendorDraft:
		d.ShopName = f.str("shopName")
		d.ShopNameAr = f.str("shopNameAr")
		d.VendorDistrictID = f.integer("vendorDistrictId")
		d.VendorContactEmail = f.str("vendorContactEmail")
		d.VendorContactPhone = f.str("vendorContactPhone")
		d.VendorAddress = f.str("vendorAddress")
		d.LogoURL = f.str("logoUrl")
		d.LogoFile = f.file("logoFile")
		h.checkDistrict(f, "vendorDistrictId", common.CityID, d.VendorDistrictID)
	case *identity.ShippingCompanyDraft:
		d.CompanyName = f.str("companyName")
		d.CompanyContactEmail = f.str("companyContactEmail")
		d.CompanyPhoneNumber = f.str("companyPhoneNumber")
	}

	if common.CityID > 0 {
		if _, ok := h.db.Cities.Get(common.CityID); !ok {
			f.errs.Add("cityId", "City not found")
		}
	}
	if err := f.validate(draftRules{d, creating}); err != nil {
		h.HandleError(c, err)
		return nil, false
	}

	taken := h.db.Users.Any(func(u identity.User) bool {
		return u.ID != self && strings.EqualFold(u.Email, common.Email)
	})
	if taken {
		h.HandleError(c, shared.NewDomainError("ALREADY_EXISTS", "A user with email "+common.Email+" already exists"))
		return nil, false
	}
	return d, true
}

// checkDistrict requires districtID to be a district of cityID
func (h *UserHandler) checkDistrict(f *form, field string, cityID, districtID int64) {
	if districtID <= 0 {
		return
	}
	d, ok := h.db.Districts.Get(districtID)
	if !ok || d.CityID != cityID {
		f.errs.Add(field, "District not found in the selected city")
	}
}

func (h *UserHandler) moveCredential(oldEmail string, u identity.User, password string) error {
	if password == "" {
		cred, ok := h.db.Credentials.Get(strings.ToLower(oldEmail))
		if !ok {
			return nil
		}
		h.db.Credentials.Delete(cred.Email)
		cred.Email = strings.ToLower(u.Email)
		h.db.Credentials.Put(cred)
		return nil
	}
	h.db.Credentials.Delete(strings.ToLower(oldEmail))
	return h.db.SetPassword(u.ID, u.Email, password)
}

// apply copies a validated draft onto u, replacing the role details
func (h *UserHandler) apply(u *identity.User, d identity.UserDraft) {
	common := d.Common()
	u.Email = common.Email
	u.FirstName = common.FirstName
	u.LastName = common.LastName
	u.PhoneNumber = common.PhoneNumber
	u.CityID = common.CityID
	u.CityName = h.db.CityName(common.CityID)
	u.Role = d.Role()

	var logo string
	if u.VendorDetails != nil {
		logo = u.VendorDetails.LogoURL
	}
	u.AdminDetails, u.VendorDetails, u.ShippingCompanyDetails = nil, nil, nil

	switch d := d.(type) {
	case *identity.AdminDraft:
		u.AdminDetails = &identity.AdminDetails{
			Department: d.Department,
			JobTitle:   d.JobTitle,
			Address:    d.Address,
			DistrictID: d.DistrictID,
		}
	case *identity.VendorDraft:
		switch {
		case !d.LogoFile.IsEmpty():
			logo = storeUpload("logos", d.LogoFile)
		case d.LogoURL != "":
			logo = d.LogoURL
		}
		u.VendorDetails = &identity.VendorDetails{
			ShopName:     d.ShopName,
			ShopNameAr:   d.ShopNameAr,
			DistrictID:   d.VendorDistrictID,
			ContactEmail: d.VendorContactEmail,
			ContactPhone: d.VendorContactPhone,
			Address:      d.VendorAddress,
			LogoURL:      logo,
		}
	case *identity.ShippingCompanyDraft:
		u.ShippingCompanyDetails = &identity.ShippingCompanyDetails{
			CompanyName:  d.CompanyName,
			ContactEmail: d.CompanyContactEmail,
			PhoneNumber:  d.CompanyPhoneNumber,
		}
	}
}

// draftRules adapts a draft's create or edit rules to validatable
type draftRules struct {
	d        identity.UserDraft
	creating bool
}

func (r draftRules) Validate() error {
	return r.d.Validate(r.creating)
}
