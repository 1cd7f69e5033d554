// Package api holds one resource client per backend resource. A call maps
// to exactly one HTTP request; errors are returned unchanged and nothing is
// cached or retried here.
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/apiclient"
)

// ErrHardDeleteUnsupported is returned when a hard delete is requested for
// a resource whose endpoint only soft deletes
var ErrHardDeleteUnsupported = shared.NewDomainError("HARD_DELETE_UNSUPPORTED", "This resource cannot be deleted permanently")

// HardDeleteParam is the query parameter that asks for a permanent delete
const HardDeleteParam = "hardDelete"

// DeleteOptions tunes a delete call. The zero value is a soft delete.
type DeleteOptions struct {
	Hard bool
}

// Resource is the generic CRUD client of one REST collection
type Resource[T any, ID any] struct {
	client     *apiclient.Client
	path       string
	pageParam  string
	sizeParam  string
	pageSize   int
	hardDelete bool
}

// ResourceOption configures a Resource
type ResourceOption func(*resourceOptions)

type resourceOptions struct {
	pageParam  string
	sizeParam  string
	pageSize   int
	hardDelete bool
}

// WithPaging sets the names of the paging parameters
func WithPaging(pageParam, sizeParam string) ResourceOption {
	return func(o *resourceOptions) {
		o.pageParam = pageParam
		o.sizeParam = sizeParam
	}
}

// WithPageSize sets the default page size
func WithPageSize(n int) ResourceOption {
	return func(o *resourceOptions) {
		o.pageSize = n
	}
}

// WithHardDelete marks the endpoint as accepting hardDelete=true
func WithHardDelete() ResourceOption {
	return func(o *resourceOptions) {
		o.hardDelete = true
	}
}

// NewResource creates a client for the collection at path
func NewResource[T any, ID any](c *apiclient.Client, path string, opts ...ResourceOption) *Resource[T, ID] {
	o := resourceOptions{
		pageParam: shared.ParamPageNumber,
		sizeParam: shared.ParamPageSize,
		pageSize:  shared.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Resource[T, ID]{
		client:     c,
		path:       strings.Trim(path, "/"),
		pageParam:  o.pageParam,
		sizeParam:  o.sizeParam,
		pageSize:   o.pageSize,
		hardDelete: o.hardDelete,
	}
}

// Path returns the collection path
func (r *Resource[T, ID]) Path() string {
	return r.path
}

// SupportsHardDelete reports whether Delete accepts DeleteOptions.Hard
func (r *Resource[T, ID]) SupportsHardDelete() bool {
	return r.hardDelete
}

// ItemPath returns the path of one resource, with optional sub-paths
func (r *Resource[T, ID]) ItemPath(id ID, sub ...string) string {
	return join(r.path, append([]string{fmt.Sprint(id)}, sub...)...)
}

// PagingParams fills missing paging parameters with defaults
func (r *Resource[T, ID]) PagingParams(params shared.Params) shared.Params {
	if params == nil {
		params = shared.NewParams()
	}
	return params.WithDefaults(r.pageParam, r.sizeParam, r.pageSize)
}

// List returns one page. Missing paging parameters get defaults; every
// other parameter is sent as given.
func (r *Resource[T, ID]) List(ctx context.Context, params shared.Params) (*shared.ListResponse[T], error) {
	return r.ListAt(ctx, r.path, params)
}

// ListAt lists a nested collection using this resource's paging rules
func (r *Resource[T, ID]) ListAt(ctx context.Context, path string, params shared.Params) (*shared.ListResponse[T], error) {
	return apiclient.DecodeList[T](ctx, r.client, apiclient.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  r.PagingParams(params),
	})
}

// Get returns one resource. An empty response is reported as not found.
func (r *Resource[T, ID]) Get(ctx context.Context, id ID) (*T, error) {
	out, err := apiclient.Decode[T](ctx, r.client, apiclient.Request{
		Method: http.MethodGet,
		Path:   r.ItemPath(id),
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, &shared.APIError{
			Kind:       shared.KindNotFound,
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("%s %v not found", r.path, id),
		}
	}
	return out, nil
}

// Create posts a new resource. The result is nil when the backend does
// not echo the created resource.
func (r *Resource[T, ID]) Create(ctx context.Context, body apiclient.Body) (*T, error) {
	return apiclient.Decode[T](ctx, r.client, apiclient.Request{
		Method: http.MethodPost,
		Path:   r.path,
		Body:   body,
	})
}

// Update replaces a resource. JSON bodies are sent with PUT, multipart
// bodies with PATCH.
func (r *Resource[T, ID]) Update(ctx context.Context, id ID, body apiclient.Body) (*T, error) {
	method := http.MethodPut
	if apiclient.IsMultipart(body) {
		method = http.MethodPatch
	}
	return apiclient.Decode[T](ctx, r.client, apiclient.Request{
		Method: method,
		Path:   r.ItemPath(id),
		Body:   body,
	})
}

// Delete removes a resource, softly unless opts.Hard is set
func (r *Resource[T, ID]) Delete(ctx context.Context, id ID, opts DeleteOptions) error {
	req := apiclient.Request{Method: http.MethodDelete, Path: r.ItemPath(id)}
	if opts.Hard {
		if !r.hardDelete {
			return fmt.Errorf("delete %s %v: %w", r.path, id, ErrHardDeleteUnsupported)
		}
		req.Query = shared.NewParams()
		req.Query[HardDeleteParam] = strconv.FormatBool(true)
	}
	return apiclient.Exec(ctx, r.client, req)
}

func join(base string, parts ...string) string {
	segs := make([]string, 0, len(parts)+1)
	segs = append(segs, base)
	for _, p := range parts {
		segs = append(segs, url.PathEscape(p))
	}
	return strings.Join(segs, "/")
}
