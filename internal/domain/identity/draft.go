package identity

import (
	"fmt"
	"strings"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// MinPasswordLength applies to passwords set on create
const MinPasswordLength = 8

// CommonFields are shared by every draft variant and survive a role switch
type CommonFields struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password,omitempty" validate:"omitempty,min=8"`
	FirstName   string `json:"firstName" validate:"required,max=50"`
	LastName    string `json:"lastName" validate:"required,max=50"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone"`
	CityID      int64  `json:"cityId" validate:"required,gt=0"`
}

// UserDraft is the form state of a user being created or edited. The
// concrete type selects the validation rules and visible fields.
type UserDraft interface {
	Role() Role
	Common() *CommonFields
	// Validate checks the draft. Password is only required when creating.
	Validate(creating bool) error
	resetDistrict()
}

// AdminDraft is a user draft with role Admin
type AdminDraft struct {
	CommonFields
	Department string `json:"department" validate:"required,max=100"`
	JobTitle   string `json:"jobTitle" validate:"required,max=100"`
	Address    string `json:"address" validate:"required,max=250"`
	DistrictID int64  `json:"districtId" validate:"required,gt=0"`
}

// VendorDraft is a user draft with role Vendor. The logo is either a URL or
// an uploaded file, never both.
type VendorDraft struct {
	CommonFields
	ShopName           string       `json:"shopName" validate:"required,max=100"`
	ShopNameAr         string       `json:"shopNameAr" validate:"required,max=100"`
	VendorDistrictID   int64        `json:"vendorDistrictId" validate:"required,gt=0"`
	VendorContactEmail string       `json:"vendorContactEmail" validate:"required,email"`
	VendorContactPhone string       `json:"vendorContactPhone" validate:"required,phone"`
	VendorAddress      string       `json:"vendorAddress" validate:"required,max=250"`
	LogoURL            string       `json:"logoUrl,omitempty" validate:"omitempty,url"`
	LogoFile           *shared.File `json:"-"`
}

// ShippingCompanyDraft is a user draft with role ShippingCompany
type ShippingCompanyDraft struct {
	CommonFields
	CompanyName         string `json:"companyName" validate:"required,max=100"`
	CompanyContactEmail string `json:"companyContactEmail" validate:"required,email"`
	CompanyPhoneNumber  string `json:"companyPhoneNumber" validate:"required,phone"`
}

func (d *AdminDraft) Role() Role                      { return RoleAdmin }
func (d *VendorDraft) Role() Role                     { return RoleVendor }
func (d *ShippingCompanyDraft) Role() Role            { return RoleShippingCompany }
func (d *AdminDraft) Common() *CommonFields           { return &d.CommonFields }
func (d *VendorDraft) Common() *CommonFields          { return &d.CommonFields }
func (d *ShippingCompanyDraft) Common() *CommonFields { return &d.CommonFields }

func (d *AdminDraft) resetDistrict()           { d.DistrictID = 0 }
func (d *VendorDraft) resetDistrict()          { d.VendorDistrictID = 0 }
func (d *ShippingCompanyDraft) resetDistrict() {}

func (d *AdminDraft) Validate(creating bool) error {
	return validateDraft(d, &d.CommonFields, creating, nil)
}

func (d *VendorDraft) Validate(creating bool) error {
	return validateDraft(d, &d.CommonFields, creating, func(out *shared.ValidationError) {
		if d.LogoURL != "" && !d.LogoFile.IsEmpty() {
			out.Add("logoUrl", "logoUrl cannot be combined with an uploaded logo")
		}
	})
}

func (d *ShippingCompanyDraft) Validate(creating bool) error {
	return validateDraft(d, &d.CommonFields, creating, nil)
}

func validateDraft(d UserDraft, common *CommonFields, creating bool, extra func(*shared.ValidationError)) error {
	out := shared.NewValidationError()
	if err := shared.ValidateStruct(d); err != nil {
		verr, ok := err.(*shared.ValidationError)
		if !ok {
			return fmt.Errorf("validate %s draft: %w", d.Role(), err)
		}
		out = verr
	}
	if creating && strings.TrimSpace(common.Password) == "" {
		out.Add("password", "password is required")
	}
	if extra != nil {
		extra(out)
	}
	return out.Err()
}

// SetLogoURL sets the logo URL and clears any chosen file
func (d *VendorDraft) SetLogoURL(url string) {
	d.LogoURL = strings.TrimSpace(url)
	if d.LogoURL != "" {
		d.LogoFile = nil
	}
}

// SetLogoFile sets the logo file and clears the URL
func (d *VendorDraft) SetLogoFile(f *shared.File) {
	d.LogoFile = f
	if !f.IsEmpty() {
		d.LogoURL = ""
	}
}

// NewDraft creates an empty draft for role
func NewDraft(role Role) (UserDraft, error) {
	switch role {
	case RoleAdmin:
		return &AdminDraft{}, nil
	case RoleVendor:
		return &VendorDraft{}, nil
	case RoleShippingCompany:
		return &ShippingCompanyDraft{}, nil
	}
	return nil, shared.NewDomainError("INVALID_ROLE", fmt.Sprintf("users cannot be created with role %q", role))
}

// SwitchRole returns a draft for role that keeps the common fields of d.
// Fields specific to the previous role are dropped.
func SwitchRole(d UserDraft, role Role) (UserDraft, error) {
	if d != nil && d.Role() == role {
		return d, nil
	}
	next, err := NewDraft(role)
	if err != nil {
		return nil, err
	}
	if d != nil {
		*next.Common() = *d.Common()
	}
	return next, nil
}

// SetCity changes the draft city. Any selected district is reset when the
// city actually changes.
func SetCity(d UserDraft, cityID int64) {
	c := d.Common()
	if c.CityID == cityID {
		return
	}
	c.CityID = cityID
	d.resetDistrict()
}

// DraftFromUser builds an edit draft from an existing user. The password is
// never prefilled.
func DraftFromUser(u User) (UserDraft, error) {
	common := CommonFields{
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		CityID:      u.CityID,
	}
	switch u.Role {
	case RoleAdmin:
		d := &AdminDraft{CommonFields: common}
		if a := u.AdminDetails; a != nil {
			d.Department, d.JobTitle, d.Address, d.DistrictID = a.Department, a.JobTitle, a.Address, a.DistrictID
		}
		return d, nil
	case RoleVendor:
		d := &VendorDraft{CommonFields: common}
		if v := u.VendorDetails; v != nil {
			d.ShopName = v.ShopName
			d.ShopNameAr = v.ShopNameAr
			d.VendorDistrictID = v.DistrictID
			d.VendorContactEmail = v.ContactEmail
			d.VendorContactPhone = v.ContactPhone
			d.VendorAddress = v.Address
			d.LogoURL = v.LogoURL
		}
		return d, nil
	case RoleShippingCompany:
		d := &ShippingCompanyDraft{CommonFields: common}
		if s := u.ShippingCompanyDetails; s != nil {
			d.CompanyName, d.CompanyContactEmail, d.CompanyPhoneNumber = s.CompanyName, s.ContactEmail, s.PhoneNumber
		}
		return d, nil
	}
	return nil, shared.NewDomainError("INVALID_ROLE", fmt.Sprintf("users with role %q cannot be edited here", u.Role))
}

var commonFieldNames = []string{"email", "password", "firstName", "lastName", "phoneNumber", "cityId"}

// VisibleFields returns the ordered form fields shown for role
func VisibleFields(role Role) []string {
	var specific []string
	switch role {
	case RoleAdmin:
		specific = []string{"department", "jobTitle", "districtId", "address"}
	case RoleVendor:
		specific = []string{"shopName", "shopNameAr", "vendorDistrictId", "vendorContactEmail", "vendorContactPhone", "vendorAddress", "logoUrl", "logoFile"}
	case RoleShippingCompany:
		specific = []string{"companyName", "companyContactEmail", "companyPhoneNumber"}
	default:
		return nil
	}
	out := make([]string, 0, len(commonFieldNames)+len(specific))
	out = append(out, commonFieldNames...)
	return append(out, specific...)
}
