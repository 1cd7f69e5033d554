// Package identity holds dashboard users and the role-conditioned drafts
// used to create and edit them.
package identity

// Role is a user role
type Role string

const (
	RoleAdmin           Role = "Admin"
	RoleVendor          Role = "Vendor"
	RoleShippingCompany Role = "ShippingCompany"
	RoleCustomer        Role = "Customer"
)

// DraftRoles lists the roles an admin can create users for
func DraftRoles() []Role {
	return []Role{RoleAdmin, RoleVendor, RoleShippingCompany}
}

// AllRoles lists every role
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleVendor, RoleShippingCompany, RoleCustomer}
}

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleVendor, RoleShippingCompany, RoleCustomer:
		return true
	}
	return false
}

// Label returns the display name of the role
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleVendor:
		return "Vendor"
	case RoleShippingCompany:
		return "Shipping company"
	case RoleCustomer:
		return "Customer"
	}
	return string(r)
}
