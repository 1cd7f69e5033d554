package identity

import (
	"strings"
	"time"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// AdminDetails is the admin-only profile
type AdminDetails struct {
	Department string `json:"department"`
	JobTitle   string `json:"jobTitle"`
	Address    string `json:"address"`
	DistrictID int64  `json:"districtId"`
}

// VendorDetails is the vendor shop profile
type VendorDetails struct {
	ShopName     string `json:"shopName"`
	ShopNameAr   string `json:"shopNameAr"`
	DistrictID   int64  `json:"districtId"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	Address      string `json:"address"`
	LogoURL      string `json:"logoUrl,omitempty"`
}

// ShippingCompanyDetails is the shipping company profile
type ShippingCompanyDetails struct {
	CompanyName  string `json:"companyName"`
	ContactEmail string `json:"contactEmail"`
	PhoneNumber  string `json:"phoneNumber"`
}

// User is a dashboard account. At most one details object is set, matching Role.
type User struct {
	ID                     string                  `json:"id"`
	Email                  string                  `json:"email"`
	FirstName              string                  `json:"firstName"`
	LastName               string                  `json:"lastName"`
	PhoneNumber            string                  `json:"phoneNumber"`
	Role                   Role                    `json:"role"`
	IsActive               bool                    `json:"isActive"`
	CityID                 int64                   `json:"cityId,omitempty"`
	CityName               string                  `json:"cityName,omitempty"`
	CreatedAt              time.Time               `json:"createdAt,omitempty"`
	AdminDetails           *AdminDetails           `json:"adminDetails,omitempty"`
	VendorDetails          *VendorDetails          `json:"vendorDetails,omitempty"`
	ShippingCompanyDetails *ShippingCompanyDetails `json:"shippingCompanyDetails,omitempty"`
}

// FullName joins first and last name
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UserFilter narrows the user list
type UserFilter struct {
	Search   string
	Role     Role
	IsActive *bool
}

// Params converts the filter into query parameters
func (f UserFilter) Params() shared.Params {
	return shared.NewParams().
		SetString("search", f.Search).
		SetString("role", string(f.Role)).
		SetBoolPtr("isActive", f.IsActive)
}
