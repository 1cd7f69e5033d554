package api

import (
	"context"
	"net/http"

	"github.com/sooquk/dashboard/internal/domain/loyalty"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/apiclient"
)

// PointsAPI manages point terms and the points/referral settings
type PointsAPI struct {
	client *apiclient.Client
	terms  *Resource[loyalty.PointTerm, int64]
}

// NewPointsAPI creates the points client
func NewPointsAPI(c *apiclient.Client) *PointsAPI {
	return &PointsAPI{
		client: c,
		terms:  NewResource[loyalty.PointTerm, int64](c, "points/terms"),
	}
}

// ListTerms returns a page of point terms
func (a *PointsAPI) ListTerms(ctx context.Context, params shared.Params) (*shared.ListResponse[loyalty.PointTerm], error) {
	return a.terms.List(ctx, params)
}

// GetTerm returns one point term
func (a *PointsAPI) GetTerm(ctx context.Context, id int64) (*loyalty.PointTerm, error) {
	return a.terms.Get(ctx, id)
}

// CreateTerm adds a point term
func (a *PointsAPI) CreateTerm(ctx context.Context, in loyalty.PointTermInput) (*loyalty.PointTerm, error) {
	return a.terms.Create(ctx, apiclient.JSON(in))
}

// UpdateTerm replaces a point term
func (a *PointsAPI) UpdateTerm(ctx context.Context, id int64, in loyalty.PointTermInput) (*loyalty.PointTerm, error) {
	return a.terms.Update(ctx, id, apiclient.JSON(in))
}

// DeleteTerm removes a point term
func (a *PointsAPI) DeleteTerm(ctx context.Context, id int64) error {
	return a.terms.Delete(ctx, id, DeleteOptions{})
}

// Settings returns the points and referral settings
func (a *PointsAPI) Settings(ctx context.Context) (*loyalty.PointsSettings, error) {
	out, err := apiclient.Decode[loyalty.PointsSettings](ctx, a.client, apiclient.Request{
		Method: http.MethodGet,
		Path:   "points/settings",
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = &loyalty.PointsSettings{}
	}
	return out, nil
}

// UpdateSettings replaces the points and referral settings
func (a *PointsAPI) UpdateSettings(ctx context.Context, s loyalty.PointsSettings) (*loyalty.PointsSettings, error) {
	return apiclient.Decode[loyalty.PointsSettings](ctx, a.client, apiclient.Request{
		Method: http.MethodPut,
		Path:   "points/settings",
		Body:   apiclient.JSON(s),
	})
}
