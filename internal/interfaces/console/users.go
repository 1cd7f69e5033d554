package console

import (
	"context"
	"io"
	"strings"

	identityapp "github.com/sooquk/dashboard/internal/application/identity"
	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/domain/identity"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/i18n"
)

// UsersPage lists users and manages their accounts. The create and edit
// forms follow the selected role.
type UsersPage struct {
	svc  *identityapp.UserService
	deps Deps
	List *ListPage[identity.User, identity.UserFilter]

	create    *query.Mutator[identity.UserDraft, *identity.User]
	update    *query.Mutator[identityapp.UpdateUser, *identity.User]
	setActive *query.Mutator[identityapp.SetUserActive, struct{}]
	remove    *query.Mutator[string, struct{}]
}

// NewUsersPage creates the users page
func NewUsersPage(svc *identityapp.UserService, deps Deps, filter identity.UserFilter) *UsersPage {
	deps = deps.withDefaults()
	qc := svc.Client()
	return &UsersPage{
		svc:  svc,
		deps: deps,
		List: NewListPage(qc, deps, ListSpec[identity.User, identity.UserFilter]{
			Title:  "Users",
			Roles:  adminOnly,
			Filter: filter,
			Query:  svc.ListQuery,
			Columns: []Column[identity.User]{
				{Header: "ID", Value: func(u identity.User) string { return u.ID }},
				{Header: "Name", Value: func(u identity.User) string { return u.FullName() }},
				{Header: "Email", Value: func(u identity.User) string { return u.Email }},
				{Header: "Phone", Value: func(u identity.User) string { return u.PhoneNumber }},
				{Header: "Role", Value: func(u identity.User) string { return u.Role.Label() }},
				{Header: "City", Value: func(u identity.User) string { return u.CityName }},
				{Header: "Status", Value: func(u identity.User) string { return active(u.IsActive) }},
			},
		}),
		create:    query.NewMutator(qc, svc.CreateMutation()),
		update:    query.NewMutator(qc, svc.UpdateMutation()),
		setActive: query.NewMutator(qc, svc.SetActiveMutation()),
		remove:    query.NewMutator(qc, svc.DeleteMutation()),
	}
}

// Show renders one user with the details of its role
func (p *UsersPage) Show(ctx context.Context, w io.Writer, id string) error {
	if err := p.deps.require("user", adminOnly...); err != nil {
		return err
	}
	return showDetail(w, p.svc.Get(ctx, id), userFields)
}

func userFields(u identity.User) []Field {
	fields := []Field{
		{"ID", u.ID},
		{"Name", u.FullName()},
		{"Email", u.Email},
		{"Phone", u.PhoneNumber},
		{"Role", u.Role.Label()},
		{"City", u.CityName},
		{"Status", active(u.IsActive)},
	}
	if a := u.AdminDetails; a != nil {
		fields = append(fields,
			Field{"Department", a.Department},
			Field{"Job title", a.JobTitle},
			Field{"Address", a.Address},
			Field{"District", id64(a.DistrictID)})
	}
	if v := u.VendorDetails; v != nil {
		fields = append(fields,
			Field{"Shop", v.ShopName},
			Field{"Shop (AR)", v.ShopNameAr},
			Field{"Contact email", v.ContactEmail},
			Field{"Contact phone", v.ContactPhone},
			Field{"Address", v.Address},
			Field{"District", id64(v.DistrictID)},
			Field{"Logo", v.LogoURL})
	}
	if s := u.ShippingCompanyDetails; s != nil {
		fields = append(fields,
			Field{"Company", s.CompanyName},
			Field{"Contact email", s.ContactEmail},
			Field{"Company phone", s.PhoneNumber})
	}
	return fields
}

// Form writes the fields the form shows for role
func (p *UsersPage) Form(w io.Writer, role identity.Role) error {
	fields := identity.VisibleFields(role)
	if fields == nil {
		return shared.NewDomainError("INVALID_ROLE", "no form for role "+string(role))
	}
	_, err := io.WriteString(w, role.Label()+": "+strings.Join(fields, ", ")+"\n")
	return err
}

// Create adds a user of the draft's role. The draft is validated for its
// role before any request.
func (p *UsersPage) Create(ctx context.Context, d identity.UserDraft) (*identity.User, error) {
	if err := p.deps.require("users", adminOnly...); err != nil {
		return nil, err
	}
	return Run(ctx, p.deps, Action{Name: p.create.Name(), Subject: "User", Success: i18n.ToastCreated},
		func(ctx context.Context) query.MutationResult[*identity.User] {
			return p.create.Submit(ctx, d)
		})
}

// Update resends the full editable field set of a user
func (p *UsersPage) Update(ctx context.Context, id string, d identity.UserDraft) (*identity.User, error) {
	if err := p.deps.require("users", adminOnly...); err != nil {
		return nil, err
	}
	return Run(ctx, p.deps, Action{Name: p.update.Name(), Subject: "User", Success: i18n.ToastUpdated},
		func(ctx context.Context) query.MutationResult[*identity.User] {
			return p.update.Submit(ctx, identityapp.UpdateUser{ID: id, Draft: d})
		})
}

// EditDraft loads the draft an edit starts from
func (p *UsersPage) EditDraft(ctx context.Context, id string) (identity.UserDraft, error) {
	if err := p.deps.require("users", adminOnly...); err != nil {
		return nil, err
	}
	return p.svc.EditDraft(ctx, id)
}

// SetActive activates or deactivates a user. Deactivation is confirmed.
func (p *UsersPage) SetActive(ctx context.Context, id string, on bool) error {
	if err := p.deps.require("users", adminOnly...); err != nil {
		return err
	}
	a := Action{Name: p.setActive.Name(), Subject: "User", Success: i18n.ToastUpdated}
	if !on {
		a.Confirm = "Deactivate user " + id + "?"
	}
	_, err := Run(ctx, p.deps, a, func(ctx context.Context) query.MutationResult[struct{}] {
		return p.setActive.Submit(ctx, identityapp.SetUserActive{ID: id, Active: on})
	})
	return err
}

// Delete removes a user after confirmation
func (p *UsersPage) Delete(ctx context.Context, id string) error {
	if err := p.deps.require("users", adminOnly...); err != nil {
		return err
	}
	_, err := Run(ctx, p.deps, deleteAction(p.deps, p.remove.Name(), "User", "user "+id),
		func(ctx context.Context) query.MutationResult[struct{}] {
			return p.remove.Submit(ctx, id)
		})
	return err
}
