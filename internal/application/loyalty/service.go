// Package loyalty exposes the points terms and the points settings singleton.
package loyalty

import (
	"context"
	"strconv"

	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/domain/loyalty"
	"github.com/sooquk/dashboard/internal/domain/shared"
)

const (
	termsSegment    = "terms"
	settingsSegment = "settings"
)

// PointsAPI is the backend surface the service needs
type PointsAPI interface {
	ListTerms(ctx context.Context, params shared.Params) (*shared.ListResponse[loyalty.PointTerm], error)
	GetTerm(ctx context.Context, id int64) (*loyalty.PointTerm, error)
	CreateTerm(ctx context.Context, in loyalty.PointTermInput) (*loyalty.PointTerm, error)
	UpdateTerm(ctx context.Context, id int64, in loyalty.PointTermInput) (*loyalty.PointTerm, error)
	DeleteTerm(ctx context.Context, id int64) error
	Settings(ctx context.Context) (*loyalty.PointsSettings, error)
	UpdateSettings(ctx context.Context, s loyalty.PointsSettings) (*loyalty.PointsSettings, error)
}

// UpdateTerm is the input of the term update mutation
type UpdateTerm struct {
	ID    int64
	Input loyalty.PointTermInput
}

// TermsListPrefix matches every cached terms page
func TermsListPrefix() query.Key {
	return query.Prefix(query.ResourcePoints, termsSegment, query.OpList)
}

// TermDetailKey is where one term is cached
func TermDetailKey(id int64) query.Key {
	return query.NewKey(query.ResourcePoints, termsSegment, query.OpDetail, strconv.FormatInt(id, 10))
}

// SettingsKey is where the settings singleton is cached
func SettingsKey() query.Key {
	return query.NewKey(query.ResourcePoints, settingsSegment)
}

// PointsService builds points queries and mutations
type PointsService struct {
	api PointsAPI
	qc  *query.Client
}

// NewPointsService creates a new PointsService
func NewPointsService(api PointsAPI, qc *query.Client) *PointsService {
	return &PointsService{api: api, qc: qc}
}

// TermsQuery reads one page of terms
func (s *PointsService) TermsQuery(params shared.Params) query.Query[shared.ListResponse[loyalty.PointTerm]] {
	return query.Query[shared.ListResponse[loyalty.PointTerm]]{
		Key: TermsListPrefix().Append(params.Encode()),
		Fn: func(ctx context.Context) (shared.ListResponse[loyalty.PointTerm], error) {
			return query.Deref(s.api.ListTerms(ctx, params))
		},
	}
}

// TermQuery reads one term
func (s *PointsService) TermQuery(id int64) query.Query[loyalty.PointTerm] {
	return query.Query[loyalty.PointTerm]{
		Key:      TermDetailKey(id),
		Disabled: id <= 0,
		Fn: func(ctx context.Context) (loyalty.PointTerm, error) {
			return query.Deref(s.api.GetTerm(ctx, id))
		},
	}
}

// SettingsQuery reads the settings singleton
func (s *PointsService) SettingsQuery() query.Query[loyalty.PointsSettings] {
	return query.Query[loyalty.PointsSettings]{
		Key: SettingsKey(),
		Fn: func(ctx context.Context) (loyalty.PointsSettings, error) {
			return query.Deref(s.api.Settings(ctx))
		},
	}
}

// CreateTermMutation adds a term
func (s *PointsService) CreateTermMutation() query.Mutation[loyalty.PointTermInput, *loyalty.PointTerm] {
	return query.Mutation[loyalty.PointTermInput, *loyalty.PointTerm]{
		Name: "create point term",
		Fn: func(ctx context.Context, in loyalty.PointTermInput) (*loyalty.PointTerm, error) {
			if err := in.Validate(); err != nil {
				return nil, err
			}
			return s.api.CreateTerm(ctx, in)
		},
		Invalidates: func(loyalty.PointTermInput, *loyalty.PointTerm) []query.Key {
			return []query.Key{TermsListPrefix()}
		},
	}
}

// UpdateTermMutation replaces a term
func (s *PointsService) UpdateTermMutation() query.Mutation[UpdateTerm, *loyalty.PointTerm] {
	return query.Mutation[UpdateTerm, *loyalty.PointTerm]{
		Name: "update point term",
		Fn: func(ctx context.Context, in UpdateTerm) (*loyalty.PointTerm, error) {
			if in.ID <= 0 {
				return nil, shared.ErrInvalidInput
			}
			if err := in.Input.Validate(); err != nil {
				return nil, err
			}
			return s.api.UpdateTerm(ctx, in.ID, in.Input)
		},
		Invalidates: func(in UpdateTerm, _ *loyalty.PointTerm) []query.Key {
			return []query.Key{TermsListPrefix(), TermDetailKey(in.ID)}
		},
	}
}

// DeleteTermMutation removes a term
func (s *PointsService) DeleteTermMutation() query.Mutation[int64, struct{}] {
	return query.Mutation[int64, struct{}]{
		Name: "delete point term",
		Fn: func(ctx context.Context, id int64) (struct{}, error) {
			return struct{}{}, s.api.DeleteTerm(ctx, id)
		},
		Invalidates: func(id int64, _ struct{}) []query.Key {
			return []query.Key{TermsListPrefix(), TermDetailKey(id)}
		},
	}
}

// UpdateSettingsMutation saves the settings singleton
func (s *PointsService) UpdateSettingsMutation() query.Mutation[loyalty.PointsSettings, *loyalty.PointsSettings] {
	return query.Mutation[loyalty.PointsSettings, *loyalty.PointsSettings]{
		Name: "update points settings",
		Fn: func(ctx context.Context, in loyalty.PointsSettings) (*loyalty.PointsSettings, error) {
			if err := in.Validate(); err != nil {
				return nil, err
			}
			return s.api.UpdateSettings(ctx, in)
		},
		Invalidates: func(loyalty.PointsSettings, *loyalty.PointsSettings) []query.Key {
			return []query.Key{SettingsKey()}
		},
	}
}

// Terms fetches a page of terms through the cache
func (s *PointsService) Terms(ctx context.Context, params shared.Params) query.Result[shared.ListResponse[loyalty.PointTerm]] {
	return query.Fetch(ctx, s.qc, s.TermsQuery(params))
}

// Term fetches one term through the cache
func (s *PointsService) Term(ctx context.Context, id int64) query.Result[loyalty.PointTerm] {
	return query.Fetch(ctx, s.qc, s.TermQuery(id))
}

// Settings fetches the settings through the cache
func (s *PointsService) Settings(ctx context.Context) query.Result[loyalty.PointsSettings] {
	return query.Fetch(ctx, s.qc, s.SettingsQuery())
}

// CreateTerm runs the create mutation
func (s *PointsService) CreateTerm(ctx context.Context, in loyalty.PointTermInput) query.MutationResult[*loyalty.PointTerm] {
	return query.Mutate(ctx, s.qc, s.CreateTermMutation(), in)
}

// UpdateTerm runs the update mutation
func (s *PointsService) UpdateTerm(ctx context.Context, id int64, in loyalty.PointTermInput) query.MutationResult[*loyalty.PointTerm] {
	return query.Mutate(ctx, s.qc, s.UpdateTermMutation(), UpdateTerm{ID: id, Input: in})
}

// DeleteTerm runs the delete mutation
func (s *PointsService) DeleteTerm(ctx context.Context, id int64) query.MutationResult[struct{}] {
	return query.Mutate(ctx, s.qc, s.DeleteTermMutation(), id)
}

// UpdateSettings runs the settings mutation
func (s *PointsService) UpdateSettings(ctx context.Context, in loyalty.PointsSettings) query.MutationResult[*loyalty.PointsSettings] {
	return query.Mutate(ctx, s.qc, s.UpdateSettingsMutation(), in)
}

// Client returns the query client the service reads through
func (s *PointsService) Client() *query.Client {
	return s.qc
}
