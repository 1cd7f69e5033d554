// Package system exposes the application error log.
package system

import (
	"context"

	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/domain/system"
)

// ErrorLogAPI is the backend surface the service needs
type ErrorLogAPI interface {
	List(ctx context.Context, params shared.Params) (*shared.ListResponse[system.ErrorLog], error)
	Get(ctx context.Context, id int64) (*system.ErrorLog, error)
	Types(ctx context.Context) ([]system.ErrorLogType, error)
	Resolve(ctx context.Context, id int64, req system.ResolveRequest) (*system.ErrorLog, error)
	Delete(ctx context.Context, id int64) error
}

// ResolveErrorLog is the input of the resolve mutation
type ResolveErrorLog struct {
	ID      int64
	Request system.ResolveRequest
}

// TypesKey is where the error type lookup is cached
func TypesKey() query.Key {
	return query.NewKey(query.ResourceErrorLogTypes)
}

// ErrorLogService builds error log queries and mutations
type ErrorLogService struct {
	api ErrorLogAPI
	qc  *query.Client
}

// NewErrorLogService creates a new ErrorLogService
func NewErrorLogService(api ErrorLogAPI, qc *query.Client) *ErrorLogService {
	return &ErrorLogService{api: api, qc: qc}
}

// ListQuery reads one page of error logs
func (s *ErrorLogService) ListQuery(params shared.Params) query.Query[shared.ListResponse[system.ErrorLog]] {
	return query.Query[shared.ListResponse[system.ErrorLog]]{
		Key: query.ListKey(query.ResourceErrorLogs, params),
		Fn: func(ctx context.Context) (shared.ListResponse[system.ErrorLog], error) {
			return query.Deref(s.api.List(ctx, params))
		},
	}
}

// DetailQuery reads one error log
func (s *ErrorLogService) DetailQuery(id int64) query.Query[system.ErrorLog] {
	return query.Query[system.ErrorLog]{
		Key:      query.DetailKey(query.ResourceErrorLogs, id),
		Disabled: id <= 0,
		Fn: func(ctx context.Context) (system.ErrorLog, error) {
			return query.Deref(s.api.Get(ctx, id))
		},
	}
}

// TypesQuery reads the error type lookup
func (s *ErrorLogService) TypesQuery() query.Query[[]system.ErrorLogType] {
	return query.Query[[]system.ErrorLogType]{
		Key: TypesKey(),
		Fn: func(ctx context.Context) ([]system.ErrorLogType, error) {
			return s.api.Types(ctx)
		},
	}
}

// ResolveMutation marks an error log as resolved
func (s *ErrorLogService) ResolveMutation() query.Mutation[ResolveErrorLog, *system.ErrorLog] {
	return query.Mutation[ResolveErrorLog, *system.ErrorLog]{
		Name: "resolve error log",
		Fn: func(ctx context.Context, in ResolveErrorLog) (*system.ErrorLog, error) {
			if in.ID <= 0 {
				return nil, shared.ErrInvalidInput
			}
			if err := shared.ValidateStruct(in.Request); err != nil {
				return nil, err
			}
			return s.api.Resolve(ctx, in.ID, in.Request)
		},
		Invalidates: func(in ResolveErrorLog, _ *system.ErrorLog) []query.Key {
			return query.OnUpdate(query.ResourceErrorLogs, in.ID)
		},
	}
}

// DeleteMutation removes an error log
func (s *ErrorLogService) DeleteMutation() query.Mutation[int64, struct{}] {
	return query.Mutation[int64, struct{}]{
		Name: "delete error log",
		Fn: func(ctx context.Context, id int64) (struct{}, error) {
			return struct{}{}, s.api.Delete(ctx, id)
		},
		Invalidates: func(id int64, _ struct{}) []query.Key {
			return query.OnDelete(query.ResourceErrorLogs, id)
		},
	}
}

// List fetches a page of error logs through the cache
func (s *ErrorLogService) List(ctx context.Context, params shared.Params) query.Result[shared.ListResponse[system.ErrorLog]] {
	return query.Fetch(ctx, s.qc, s.ListQuery(params))
}

// Get fetches one error log through the cache
func (s *ErrorLogService) Get(ctx context.Context, id int64) query.Result[system.ErrorLog] {
	return query.Fetch(ctx, s.qc, s.DetailQuery(id))
}

// Types fetches the error type lookup through the cache
func (s *ErrorLogService) Types(ctx context.Context) query.Result[[]system.ErrorLogType] {
	return query.Fetch(ctx, s.qc, s.TypesQuery())
}

// Resolve runs the resolve mutation
func (s *ErrorLogService) Resolve(ctx context.Context, id int64, note string) query.MutationResult[*system.ErrorLog] {
	return query.Mutate(ctx, s.qc, s.ResolveMutation(), ResolveErrorLog{ID: id, Request: system.ResolveRequest{Note: note}})
}

// Delete runs the delete mutation
func (s *ErrorLogService) Delete(ctx context.Context, id int64) query.MutationResult[struct{}] {
	return query.Mutate(ctx, s.qc, s.DeleteMutation(), id)
}

// Client returns the query client the service reads through
func (s *ErrorLogService) Client() *query.Client {
	return s.qc
}
