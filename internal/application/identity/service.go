// Package identity exposes user reads and writes. Writes take a role draft
// and are validated for that role before anything is sent.
package identity

import (
	"context"

	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/domain/identity"
	"github.com/sooquk/dashboard/internal/domain/shared"
)

// UserAPI is the backend surface the service needs
type UserAPI interface {
	List(ctx context.Context, params shared.Params) (*shared.ListResponse[identity.User], error)
	Get(ctx context.Context, id string) (*identity.User, error)
	Create(ctx context.Context, d identity.UserDraft) (*identity.User, error)
	Update(ctx context.Context, id string, d identity.UserDraft) (*identity.User, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// UpdateUser is the input of the update mutation
type UpdateUser struct {
	ID    string
	Draft identity.UserDraft
}

// SetUserActive is the input of the activation mutation
type SetUserActive struct {
	ID     string
	Active bool
}

// WalletByUserKey is where the wallet of a user is cached. User deletes
// invalidate it since the backend closes the wallet with the account.
func WalletByUserKey(userID string) query.Key {
	return query.NewKey(query.ResourceWallets, "user", userID)
}

// UserService builds user queries and mutations
type UserService struct {
	api UserAPI
	qc  *query.Client
}

// NewUserService creates a new UserService
func NewUserService(api UserAPI, qc *query.Client) *UserService {
	return &UserService{api: api, qc: qc}
}

// ListQuery reads one page of users
func (s *UserService) ListQuery(params shared.Params) query.Query[shared.ListResponse[identity.User]] {
	return query.Query[shared.ListResponse[identity.User]]{
		Key: query.ListKey(query.ResourceUsers, params),
		Fn: func(ctx context.Context) (shared.ListResponse[identity.User], error) {
			return query.Deref(s.api.List(ctx, params))
		},
	}
}

// DetailQuery reads one user. It stays disabled without an id.
func (s *UserService) DetailQuery(id string) query.Query[identity.User] {
	return query.Query[identity.User]{
		Key:      query.DetailKey(query.ResourceUsers, id),
		Disabled: id == "",
		Fn: func(ctx context.Context) (identity.User, error) {
			return query.Deref(s.api.Get(ctx, id))
		},
	}
}

// EditDraft loads a user and returns the draft its edit form starts from
func (s *UserService) EditDraft(ctx context.Context, id string) (identity.UserDraft, error) {
	res := query.Fetch(ctx, s.qc, s.DetailQuery(id))
	if res.Err != nil {
		return nil, res.Err
	}
	return identity.DraftFromUser(res.Data)
}

// CreateMutation creates a user of the draft's role
func (s *UserService) CreateMutation() query.Mutation[identity.UserDraft, *identity.User] {
	return query.Mutation[identity.UserDraft, *identity.User]{
		Name: "create user",
		Fn: func(ctx context.Context, d identity.UserDraft) (*identity.User, error) {
			if d == nil {
				return nil, shared.ErrInvalidInput
			}
			if err := d.Validate(true); err != nil {
				return nil, err
			}
			return s.api.Create(ctx, d)
		},
		Invalidates: func(identity.UserDraft, *identity.User) []query.Key {
			return query.OnCreate(query.ResourceUsers)
		},
	}
}

// UpdateMutation updates a user. The password is optional on update.
func (s *UserService) UpdateMutation() query.Mutation[UpdateUser, *identity.User] {
	return query.Mutation[UpdateUser, *identity.User]{
		Name: "update user",
		Fn: func(ctx context.Context, in UpdateUser) (*identity.User, error) {
			if in.Draft == nil || in.ID == "" {
				return nil, shared.ErrInvalidInput
			}
			if err := in.Draft.Validate(false); err != nil {
				return nil, err
			}
			return s.api.Update(ctx, in.ID, in.Draft)
		},
		Invalidates: func(in UpdateUser, _ *identity.User) []query.Key {
			return query.OnUpdate(query.ResourceUsers, in.ID)
		},
	}
}

// SetActiveMutation activates or deactivates a user
func (s *UserService) SetActiveMutation() query.Mutation[SetUserActive, struct{}] {
	return query.Mutation[SetUserActive, struct{}]{
		Name: "set user active",
		Fn: func(ctx context.Context, in SetUserActive) (struct{}, error) {
			return struct{}{}, s.api.SetActive(ctx, in.ID, in.Active)
		},
		Invalidates: func(in SetUserActive, _ struct{}) []query.Key {
			return query.OnUpdate(query.ResourceUsers, in.ID)
		},
	}
}

// DeleteMutation deletes a user
func (s *UserService) DeleteMutation() query.Mutation[string, struct{}] {
	return query.Mutation[string, struct{}]{
		Name: "delete user",
		Fn: func(ctx context.Context, id string) (struct{}, error) {
			return struct{}{}, s.api.Delete(ctx, id)
		},
		Invalidates: func(id string, _ struct{}) []query.Key {
			return query.Also(query.OnDelete(query.ResourceUsers, id), WalletByUserKey(id))
		},
	}
}

// List fetches a page of users through the cache
func (s *UserService) List(ctx context.Context, params shared.Params) query.Result[shared.ListResponse[identity.User]] {
	return query.Fetch(ctx, s.qc, s.ListQuery(params))
}

// Get fetches one user through the cache
func (s *UserService) Get(ctx context.Context, id string) query.Result[identity.User] {
	return query.Fetch(ctx, s.qc, s.DetailQuery(id))
}

// Create runs the create mutation
func (s *UserService) Create(ctx context.Context, d identity.UserDraft) query.MutationResult[*identity.User] {
	return query.Mutate(ctx, s.qc, s.CreateMutation(), d)
}

// Update runs the update mutation
func (s *UserService) Update(ctx context.Context, id string, d identity.UserDraft) query.MutationResult[*identity.User] {
	return query.Mutate(ctx, s.qc, s.UpdateMutation(), UpdateUser{ID: id, Draft: d})
}

// SetActive runs the activation mutation
func (s *UserService) SetActive(ctx context.Context, id string, active bool) query.MutationResult[struct{}] {
	return query.Mutate(ctx, s.qc, s.SetActiveMutation(), SetUserActive{ID: id, Active: active})
}

// Delete runs the delete mutation
func (s *UserService) Delete(ctx context.Context, id string) query.MutationResult[struct{}] {
	return query.Mutate(ctx, s.qc, s.DeleteMutation(), id)
}

// Client returns the query client the service reads through
func (s *UserService) Client() *query.Client {
	return s.qc
}
