package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sooquk/dashboard/internal/application/listview"
	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/domain/identity"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/i18n"
)

// ListSpec describes a list page
type ListSpec[T any, F listview.Filter] struct {
	Title   string
	Roles   []identity.Role
	Columns []Column[T]
	Query   func(shared.Params) query.Query[shared.ListResponse[T]]
	Filter  F
	Paging  []listview.Option
	// OnChange is called after each delivered result, e.g. to re-render
	OnChange func(query.Result[shared.ListResponse[T]])
}

// ListPage is a mounted, filterable table of one resource
type ListPage[T any, F listview.Filter] struct {
	spec  ListSpec[T, F]
	qc    *query.Client
	deps  Deps
	state *listview.State[F]

	mu  sync.Mutex
	obs *query.Observer[shared.ListResponse[T]]
}

// NewListPage creates an unmounted list page
func NewListPage[T any, F listview.Filter](qc *query.Client, deps Deps, spec ListSpec[T, F]) *ListPage[T, F] {
	return &ListPage[T, F]{
		spec:  spec,
		qc:    qc,
		deps:  deps.withDefaults(),
		state: listview.New(spec.Filter, spec.Paging...),
	}
}

// State returns the filter and paging state, e.g. to set the initial page
// before mounting
func (p *ListPage[T, F]) State() *listview.State[F] {
	return p.state
}

// Mount checks the role gate, starts observing the current page and waits
// for the first result
func (p *ListPage[T, F]) Mount(ctx context.Context) (query.Result[shared.ListResponse[T]], error) {
	if len(p.spec.Roles) > 0 {
		if err := p.deps.require(p.spec.Title, p.spec.Roles...); err != nil {
			return query.Result[shared.ListResponse[T]]{}, err
		}
	}

	p.mu.Lock()
	if p.obs == nil {
		p.obs = query.Watch(p.qc, p.spec.Query(p.state.Params()), p.observe)
	}
	obs := p.obs
	p.mu.Unlock()

	return obs.Await(ctx), nil
}

func (p *ListPage[T, F]) observe(res query.Result[shared.ListResponse[T]]) {
	if res.HasData {
		p.state.Observe(res.Data.Pagination)
	}
	if p.spec.OnChange != nil {
		p.spec.OnChange(res)
	}
}

// Filter changes the filter, returns to page 1 and reloads
func (p *ListPage[T, F]) Filter(ctx context.Context, fn func(*F)) query.Result[shared.ListResponse[T]] {
	p.state.Update(fn)
	return p.reload(ctx)
}

// Page moves to page n and reloads
func (p *ListPage[T, F]) Page(ctx context.Context, n int) query.Result[shared.ListResponse[T]] {
	p.state.SetPage(n)
	return p.reload(ctx)
}

// Next moves one page forward
func (p *ListPage[T, F]) Next(ctx context.Context) query.Result[shared.ListResponse[T]] {
	p.state.Next()
	return p.reload(ctx)
}

// Prev moves one page back
func (p *ListPage[T, F]) Prev(ctx context.Context) query.Result[shared.ListResponse[T]] {
	p.state.Prev()
	return p.reload(ctx)
}

// reload observes the query for the current state. A response that pulls
// the page back into range is followed by one more load.
func (p *ListPage[T, F]) reload(ctx context.Context) query.Result[shared.ListResponse[T]] {
	p.mu.Lock()
	obs := p.obs
	p.mu.Unlock()
	if obs == nil {
		return query.Result[shared.ListResponse[T]]{Status: query.StatusError, Err: shared.ErrInvalidState}
	}

	var res query.Result[shared.ListResponse[T]]
	for range 2 {
		params := p.state.Params()
		obs.SetQuery(p.spec.Query(params))
		res = obs.Refetch(ctx)
		if p.state.Params().Encode() == params.Encode() {
			break
		}
	}
	return res
}

// Current returns the last delivered result
func (p *ListPage[T, F]) Current() query.Result[shared.ListResponse[T]] {
	p.mu.Lock()
	obs := p.obs
	p.mu.Unlock()
	if obs == nil {
		return query.Result[shared.ListResponse[T]]{Status: query.StatusLoading}
	}
	return obs.Current()
}

// Render writes the table, or the loading, disabled, error or empty state
func (p *ListPage[T, F]) Render(w io.Writer) error {
	return p.RenderResult(w, p.Current())
}

// RenderResult writes res the way Render does
func (p *ListPage[T, F]) RenderResult(w io.Writer, res query.Result[shared.ListResponse[T]]) error {
	tr := p.deps.Translator
	if p.spec.Title != "" {
		fmt.Fprintf(w, "== %s ==\n", p.spec.Title)
	}

	switch {
	case res.IsDisabled():
		_, err := fmt.Fprintln(w, tr.T(i18n.StateDisabled))
		return err
	case !res.HasData && res.IsError():
		_, err := fmt.Fprintf(w, "error: %s\n", ErrorMessage(res.Err, tr))
		return err
	case !res.HasData:
		_, err := fmt.Fprintln(w, tr.T(i18n.StateLoading))
		return err
	}

	if len(res.Data.Items) == 0 {
		fmt.Fprintln(w, tr.T(i18n.StateEmpty))
	} else if err := RenderTable(w, p.spec.Columns, res.Data.Items); err != nil {
		return err
	}

	pg := res.Data.Pagination
	fmt.Fprintln(w, tr.T(i18n.PageOf, pg.PageNumber, max(pg.TotalPages, 1), pg.TotalCount))
	if res.Err != nil {
		fmt.Fprintf(w, "error: %s\n", ErrorMessage(res.Err, tr))
	} else if res.IsStale || res.IsFetching {
		fmt.Fprintln(w, tr.T(i18n.StateStale))
	}
	return nil
}

// Close unmounts the page. Responses still in flight are dropped.
func (p *ListPage[T, F]) Close() {
	p.mu.Lock()
	obs := p.obs
	p.obs = nil
	p.mu.Unlock()
	if obs != nil {
		obs.Close()
	}
}
