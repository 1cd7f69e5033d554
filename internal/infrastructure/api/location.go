package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/sooquk/dashboard/internal/domain/location"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/apiclient"
)

// DistrictAPI manages districts and the city lookup
type DistrictAPI struct {
	client *apiclient.Client
	res    *Resource[location.District, int64]
}

// NewDistrictAPI creates the districts client
func NewDistrictAPI(c *apiclient.Client) *DistrictAPI {
	return &DistrictAPI{
		client: c,
		res:    NewResource[location.District, int64](c, "districts"),
	}
}

// List returns a page of districts
func (a *DistrictAPI) List(ctx context.Context, params shared.Params) (*shared.ListResponse[location.District], error) {
	return a.res.List(ctx, params)
}

// Get returns one district
func (a *DistrictAPI) Get(ctx context.Context, id int64) (*location.District, error) {
	return a.res.Get(ctx, id)
}

// Create adds a district
func (a *DistrictAPI) Create(ctx context.Context, in location.DistrictInput) (*location.District, error) {
	return a.res.Create(ctx, apiclient.JSON(in))
}

// Update replaces a district
func (a *DistrictAPI) Update(ctx context.Context, id int64, in location.DistrictInput) (*location.District, error) {
	return a.res.Update(ctx, id, apiclient.JSON(in))
}

// Delete soft deletes a district
func (a *DistrictAPI) Delete(ctx context.Context, id int64) error {
	return a.res.Delete(ctx, id, DeleteOptions{})
}

// Cities returns every city
func (a *DistrictAPI) Cities(ctx context.Context) ([]location.City, error) {
	out, err := apiclient.Decode[[]location.City](ctx, a.client, apiclient.Request{
		Method: http.MethodGet,
		Path:   "cities",
	})
	if err != nil || out == nil {
		return nil, err
	}
	return *out, nil
}

// ByCity returns the districts of one city, unpaged
func (a *DistrictAPI) ByCity(ctx context.Context, cityID int64) ([]location.District, error) {
	out, err := apiclient.Decode[[]location.District](ctx, a.client, apiclient.Request{
		Method: http.MethodGet,
		Path:   join("cities", strconv.FormatInt(cityID, 10), "districts"),
	})
	if err != nil || out == nil {
		return nil, err
	}
	return *out, nil
}
