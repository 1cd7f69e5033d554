package api

import (
	"context"
	"net/http"

	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/domain/system"
	"github.com/sooquk/dashboard/internal/infrastructure/apiclient"
)

// ErrorLogAPI reads and resolves backend error logs
type ErrorLogAPI struct {
	res *Resource[system.ErrorLog, int64]
}

// NewErrorLogAPI creates the error logs client
func NewErrorLogAPI(c *apiclient.Client) *ErrorLogAPI {
	return &ErrorLogAPI{res: NewResource[system.ErrorLog, int64](c, "error-logs")}
}

// List returns a page of error logs
func (a *ErrorLogAPI) List(ctx context.Context, params shared.Params) (*shared.ListResponse[system.ErrorLog], error) {
	return a.res.List(ctx, params)
}

// Get returns one error log with its stack trace
func (a *ErrorLogAPI) Get(ctx context.Context, id int64) (*system.ErrorLog, error) {
	return a.res.Get(ctx, id)
}

// Types returns the error log taxonomy
func (a *ErrorLogAPI) Types(ctx context.Context) ([]system.ErrorLogType, error) {
	out, err := apiclient.Decode[[]system.ErrorLogType](ctx, a.res.client, apiclient.Request{
		Method: http.MethodGet,
		Path:   join(a.res.path, "types"),
	})
	if err != nil || out == nil {
		return nil, err
	}
	return *out, nil
}

// Resolve marks an error log as handled
func (a *ErrorLogAPI) Resolve(ctx context.Context, id int64, req system.ResolveRequest) (*system.ErrorLog, error) {
	return apiclient.Decode[system.ErrorLog](ctx, a.res.client, apiclient.Request{
		Method: http.MethodPut,
		Path:   a.res.ItemPath(id, "resolve"),
		Body:   apiclient.JSON(req),
	})
}

// Delete removes an error log
func (a *ErrorLogAPI) Delete(ctx context.Context, id int64) error {
	return a.res.Delete(ctx, id, DeleteOptions{})
}
