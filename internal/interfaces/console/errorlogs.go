package console

import (
	"context"
	"fmt"
	"io"

	"github.com/sooquk/dashboard/internal/application/query"
	systemapp "github.com/sooquk/dashboard/internal/application/system"
	"github.com/sooquk/dashboard/internal/domain/system"
	"github.com/sooquk/dashboard/internal/infrastructure/i18n"
)

// ErrorLogsPage browses and resolves backend error logs
type ErrorLogsPage struct {
	svc  *systemapp.ErrorLogService
	deps Deps
	List *ListPage[system.ErrorLog, system.ErrorLogFilter]

	resolve *query.Mutator[systemapp.ResolveErrorLog, *system.ErrorLog]
	remove  *query.Mutator[int64, struct{}]
}

// NewErrorLogsPage creates the error logs page
func NewErrorLogsPage(svc *systemapp.ErrorLogService, deps Deps, filter system.ErrorLogFilter) *ErrorLogsPage {
	deps = deps.withDefaults()
	qc := svc.Client()
	return &ErrorLogsPage{
		svc:  svc,
		deps: deps,
		List: NewListPage(qc, deps, ListSpec[system.ErrorLog, system.ErrorLogFilter]{
			Title:  "Error logs",
			Roles:  adminOnly,
			Filter: filter,
			Query:  svc.ListQuery,
			Columns: []Column[system.ErrorLog]{
				{Header: "ID", Value: func(l system.ErrorLog) string { return id64(l.ID) }},
				{Header: "Severity", Value: func(l system.ErrorLog) string { return badge(l.Severity.Label(), l.Severity.Tone()) }},
				{Header: "Type", Value: func(l system.ErrorLog) string { return l.Type }},
				{Header: "Source", Value: func(l system.ErrorLog) string { return l.Source }},
				{Header: "Message", Value: func(l system.ErrorLog) string { return truncate(l.Message, 50) }},
				{Header: "Resolved", Value: func(l system.ErrorLog) string { return yesNo(l.IsResolved) }},
				{Header: "At", Value: func(l system.ErrorLog) string { return stamp(l.OccurredAt) }},
			},
		}),
		resolve: query.NewMutator(qc, svc.ResolveMutation()),
		remove:  query.NewMutator(qc, svc.DeleteMutation()),
	}
}

// Show renders one error log with its stack trace
func (p *ErrorLogsPage) Show(ctx context.Context, w io.Writer, id int64) error {
	if err := p.deps.require("error log", adminOnly...); err != nil {
		return err
	}
	res := p.svc.Get(ctx, id)
	err := showDetail(w, res, func(l system.ErrorLog) []Field {
		resolved := yesNo(l.IsResolved)
		if l.ResolvedAt != nil {
			resolved += " (" + stamp(*l.ResolvedAt) + ")"
		}
		return []Field{
			{"ID", id64(l.ID)},
			{"Severity", badge(l.Severity.Label(), l.Severity.Tone())},
			{"Type", l.Type},
			{"Source", l.Source},
			{"Path", l.Path},
			{"User", l.UserID},
			{"Message", l.Message},
			{"Resolved", resolved},
			{"At", stamp(l.OccurredAt)},
		}
	})
	if err != nil || res.Data.StackTrace == "" {
		return err
	}
	_, err = fmt.Fprintf(w, "\n%s\n", res.Data.StackTrace)
	return err
}

// Types renders the error type lookup
func (p *ErrorLogsPage) Types(ctx context.Context, w io.Writer) error {
	if err := p.deps.require("error log types", adminOnly...); err != nil {
		return err
	}
	res := p.svc.Types(ctx)
	if !res.HasData {
		return res.Err
	}
	return RenderTable(w, []Column[system.ErrorLogType]{
		{Header: "Code", Value: func(t system.ErrorLogType) string { return t.Code }},
		{Header: "Name", Value: func(t system.ErrorLogType) string { return t.Name }},
		{Header: "Name (AR)", Value: func(t system.ErrorLogType) string { return t.NameAr }},
	}, res.Data)
}

// Resolve marks an error log resolved
func (p *ErrorLogsPage) Resolve(ctx context.Context, id int64, note string) (*system.ErrorLog, error) {
	if err := p.deps.require("error logs", adminOnly...); err != nil {
		return nil, err
	}
	return Run(ctx, p.deps, Action{Name: p.resolve.Name(), Subject: "Error log", Success: i18n.ToastUpdated},
		func(ctx context.Context) query.MutationResult[*system.ErrorLog] {
			return p.resolve.Submit(ctx, systemapp.ResolveErrorLog{ID: id, Request: system.ResolveRequest{Note: note}})
		})
}

// Delete removes an error log after confirmation
func (p *ErrorLogsPage) Delete(ctx context.Context, id int64) error {
	if err := p.deps.require("error logs", adminOnly...); err != nil {
		return err
	}
	_, err := Run(ctx, p.deps, deleteAction(p.deps, p.remove.Name(), "Error log", fmt.Sprintf("error log #%d", id)),
		func(ctx context.Context) query.MutationResult[struct{}] {
			return p.remove.Submit(ctx, id)
		})
	return err
}
