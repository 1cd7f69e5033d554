package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sooquk/dashboard/internal/domain/identity"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/apiclient"
)

// UserAPI manages admin, vendor and shipping company accounts
type UserAPI struct {
	res *Resource[identity.User, string]
}

// NewUserAPI creates the users client
func NewUserAPI(c *apiclient.Client) *UserAPI {
	return &UserAPI{res: NewResource[identity.User, string](c, "admin/users")}
}

// List returns a page of users
func (a *UserAPI) List(ctx context.Context, params shared.Params) (*shared.ListResponse[identity.User], error) {
	return a.res.List(ctx, params)
}

// Get returns one user
func (a *UserAPI) Get(ctx context.Context, id string) (*identity.User, error) {
	return a.res.Get(ctx, id)
}

// Create registers a user from a role draft
func (a *UserAPI) Create(ctx context.Context, d identity.UserDraft) (*identity.User, error) {
	return a.res.Create(ctx, UserForm(d))
}

// Update replaces a user's editable fields with PATCH. The whole field set
// of the role is sent every time.
func (a *UserAPI) Update(ctx context.Context, id string, d identity.UserDraft) (*identity.User, error) {
	return a.res.Update(ctx, id, UserForm(d))
}

// SetActive activates or deactivates a user
func (a *UserAPI) SetActive(ctx context.Context, id string, active bool) error {
	return apiclient.Exec(ctx, a.res.client, apiclient.Request{
		Method: http.MethodPut,
		Path:   a.res.ItemPath(id, "status"),
		Body:   apiclient.JSON(map[string]bool{"isActive": active}),
	})
}

// Delete soft deletes a user
func (a *UserAPI) Delete(ctx context.Context, id string) error {
	return a.res.Delete(ctx, id, DeleteOptions{})
}

// UserForm encodes the fields of d's role as multipart form data. Fields of
// other roles are never sent.
func UserForm(d identity.UserDraft) *apiclient.Form {
	c := d.Common()
	form := apiclient.NewForm().
		String("role", string(d.Role())).
		String("email", c.Email).
		OptionalString("password", c.Password).
		String("firstName", c.FirstName).
		String("lastName", c.LastName).
		String("phoneNumber", c.PhoneNumber).
		Int("cityId", c.CityID)

	switch v := d.(type) {
	case *identity.AdminDraft:
		form.String("department", v.Department).
			String("jobTitle", v.JobTitle).
			String("address", v.Address).
			Int("districtId", v.DistrictID)
	case *identity.VendorDraft:
		form.String("shopName", v.ShopName).
			String("shopNameAr", v.ShopNameAr).
			Int("vendorDistrictId", v.VendorDistrictID).
			String("vendorContactEmail", v.VendorContactEmail).
			String("vendorContactPhone", v.VendorContactPhone).
			String("vendorAddress", v.VendorAddress).
			OptionalString("logoUrl", v.LogoURL).
			File("logoFile", v.LogoFile)
	case *identity.ShippingCompanyDraft:
		form.String("companyName", v.CompanyName).
			String("companyContactEmail", v.CompanyContactEmail).
			String("companyPhoneNumber", v.CompanyPhoneNumber)
	default:
		panic(fmt.Sprintf("api: unhandled user draft %T", d))
	}
	return form
}
