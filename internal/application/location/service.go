// Package location exposes the district and city reads and writes used by
// the districts page and by address forms.
package location

import (
	"context"
	"strconv"

	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/domain/location"
	"github.com/sooquk/dashboard/internal/domain/shared"
)

// DistrictAPI is the backend surface the service needs
type DistrictAPI interface {
	List(ctx context.Context, params shared.Params) (*shared.ListResponse[location.District], error)
	Get(ctx context.Context, id int64) (*location.District, error)
	Create(ctx context.Context, in location.DistrictInput) (*location.District, error)
	Update(ctx context.Context, id int64, in location.DistrictInput) (*location.District, error)
	Delete(ctx context.Context, id int64) error
	Cities(ctx context.Context) ([]location.City, error)
	ByCity(ctx context.Context, cityID int64) ([]location.District, error)
}

// UpdateDistrict is the input of the update mutation
type UpdateDistrict struct {
	ID    int64
	Input location.DistrictInput
}

// DistrictService builds district queries and mutations
type DistrictService struct {
	api DistrictAPI
	qc  *query.Client
}

// NewDistrictService creates a new DistrictService
func NewDistrictService(api DistrictAPI, qc *query.Client) *DistrictService {
	return &DistrictService{api: api, qc: qc}
}

// ListQuery reads one page of districts
func (s *DistrictService) ListQuery(params shared.Params) query.Query[shared.ListResponse[location.District]] {
	return query.Query[shared.ListResponse[location.District]]{
		Key: query.ListKey(query.ResourceDistricts, params),
		Fn: func(ctx context.Context) (shared.ListResponse[location.District], error) {
			return query.Deref(s.api.List(ctx, params))
		},
	}
}

// DetailQuery reads one district
func (s *DistrictService) DetailQuery(id int64) query.Query[location.District] {
	return query.Query[location.District]{
		Key: query.DetailKey(query.ResourceDistricts, id),
		Fn: func(ctx context.Context) (location.District, error) {
			return query.Deref(s.api.Get(ctx, id))
		},
	}
}

// CitiesQuery reads the city lookup
func (s *DistrictService) CitiesQuery() query.Query[[]location.City] {
	return query.Query[[]location.City]{
		Key: query.NewKey(query.ResourceCities, query.OpList),
		Fn:  s.api.Cities,
	}
}

// ByCityKey is where the districts of one city are cached. It sits under
// the district list prefix so district writes refresh address forms too.
func ByCityKey(cityID int64) query.Key {
	return query.NewKey(query.ResourceDistricts, query.OpList, "city", strconv.FormatInt(cityID, 10))
}

// ByCityQuery reads the districts of a city. It stays disabled until a city
// is chosen.
func (s *DistrictService) ByCityQuery(cityID *int64) query.Query[[]location.District] {
	if cityID == nil || *cityID <= 0 {
		return query.Query[[]location.District]{
			Key:      query.NewKey(query.ResourceDistricts, query.OpList, "city"),
			Disabled: true,
		}
	}
	id := *cityID
	return query.Query[[]location.District]{
		Key: ByCityKey(id),
		Fn: func(ctx context.Context) ([]location.District, error) {
			return s.api.ByCity(ctx, id)
		},
	}
}

// CreateMutation creates a district
func (s *DistrictService) CreateMutation() query.Mutation[location.DistrictInput, *location.District] {
	return query.Mutation[location.DistrictInput, *location.District]{
		Name: "create district",
		Fn: func(ctx context.Context, in location.DistrictInput) (*location.District, error) {
			if err := in.Validate(); err != nil {
				return nil, err
			}
			return s.api.Create(ctx, in)
		},
		Invalidates: func(location.DistrictInput, *location.District) []query.Key {
			return query.OnCreate(query.ResourceDistricts)
		},
	}
}

// UpdateMutation replaces the editable fields of a district
func (s *DistrictService) UpdateMutation() query.Mutation[UpdateDistrict, *location.District] {
	return query.Mutation[UpdateDistrict, *location.District]{
		Name: "update district",
		Fn: func(ctx context.Context, in UpdateDistrict) (*location.District, error) {
			if err := in.Input.Validate(); err != nil {
				return nil, err
			}
			return s.api.Update(ctx, in.ID, in.Input)
		},
		Invalidates: func(in UpdateDistrict, _ *location.District) []query.Key {
			return query.OnUpdate(query.ResourceDistricts, in.ID)
		},
	}
}

// DeleteMutation deletes a district. The backend refuses with a conflict
// while addresses reference it.
func (s *DistrictService) DeleteMutation() query.Mutation[int64, struct{}] {
	return query.Mutation[int64, struct{}]{
		Name: "delete district",
		Fn: func(ctx context.Context, id int64) (struct{}, error) {
			return struct{}{}, s.api.Delete(ctx, id)
		},
		Invalidates: func(id int64, _ struct{}) []query.Key {
			return query.OnDelete(query.ResourceDistricts, id)
		},
	}
}

// List fetches a page of districts through the cache
func (s *DistrictService) List(ctx context.Context, params shared.Params) query.Result[shared.ListResponse[location.District]] {
	return query.Fetch(ctx, s.qc, s.ListQuery(params))
}

// Get fetches one district through the cache
func (s *DistrictService) Get(ctx context.Context, id int64) query.Result[location.District] {
	return query.Fetch(ctx, s.qc, s.DetailQuery(id))
}

// Cities fetches the city lookup through the cache
func (s *DistrictService) Cities(ctx context.Context) query.Result[[]location.City] {
	return query.Fetch(ctx, s.qc, s.CitiesQuery())
}

// ByCity fetches the districts of a city through the cache
func (s *DistrictService) ByCity(ctx context.Context, cityID *int64) query.Result[[]location.District] {
	return query.Fetch(ctx, s.qc, s.ByCityQuery(cityID))
}

// Create runs the create mutation
func (s *DistrictService) Create(ctx context.Context, in location.DistrictInput) query.MutationResult[*location.District] {
	return query.Mutate(ctx, s.qc, s.CreateMutation(), in)
}

// Update runs the update mutation
func (s *DistrictService) Update(ctx context.Context, id int64, in location.DistrictInput) query.MutationResult[*location.District] {
	return query.Mutate(ctx, s.qc, s.UpdateMutation(), UpdateDistrict{ID: id, Input: in})
}

// Delete runs the delete mutation
func (s *DistrictService) Delete(ctx context.Context, id int64) query.MutationResult[struct{}] {
	return query.Mutate(ctx, s.qc, s.DeleteMutation(), id)
}

// Client returns the query client the service reads through
func (s *DistrictService) Client() *query.Client {
	return s.qc
}
