package console

import (
	"context"
	"fmt"
	"io"

	locationapp "github.com/sooquk/dashboard/internal/application/location"
	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/domain/location"
	"github.com/sooquk/dashboard/internal/infrastructure/i18n"
)

// DistrictsPage lists districts and edits them
type DistrictsPage struct {
	svc  *locationapp.DistrictService
	deps Deps
	List *ListPage[location.District, location.DistrictFilter]

	create *query.Mutator[location.DistrictInput, *location.District]
	update *query.Mutator[locationapp.UpdateDistrict, *location.District]
	remove *query.Mutator[int64, struct{}]
}

// NewDistrictsPage creates the districts page
func NewDistrictsPage(svc *locationapp.DistrictService, deps Deps, filter location.DistrictFilter) *DistrictsPage {
	deps = deps.withDefaults()
	qc := svc.Client()
	return &DistrictsPage{
		svc:  svc,
		deps: deps,
		List: NewListPage(qc, deps, ListSpec[location.District, location.DistrictFilter]{
			Title:  "Districts",
			Roles:  adminOnly,
			Filter: filter,
			Query:  svc.ListQuery,
			Columns: []Column[location.District]{
				{Header: "ID", Value: func(d location.District) string { return id64(d.ID) }},
				{Header: "Name", Value: func(d location.District) string { return d.Name }},
				{Header: "Name (AR)", Value: func(d location.District) string { return d.NameAr }},
				{Header: "City", Value: func(d location.District) string { return d.CityName }},
				{Header: "Status", Value: func(d location.District) string { return active(d.IsActive) }},
			},
		}),
		create: query.NewMutator(qc, svc.CreateMutation()),
		update: query.NewMutator(qc, svc.UpdateMutation()),
		remove: query.NewMutator(qc, svc.DeleteMutation()),
	}
}

// Show renders one district
func (p *DistrictsPage) Show(ctx context.Context, w io.Writer, id int64) error {
	if err := p.deps.require("district", adminOnly...); err != nil {
		return err
	}
	return showDetail(w, p.svc.Get(ctx, id), func(d location.District) []Field {
		return []Field{
			{"ID", id64(d.ID)},
			{"Name", d.Name},
			{"Name (AR)", d.NameAr},
			{"City", fmt.Sprintf("%s (#%d)", d.CityName, d.CityID)},
			{"Status", active(d.IsActive)},
			{"Created", stamp(d.CreatedAt)},
		}
	})
}

// Cities renders the city lookup
func (p *DistrictsPage) Cities(ctx context.Context, w io.Writer) error {
	if err := p.deps.require("cities", adminOnly...); err != nil {
		return err
	}
	res := p.svc.Cities(ctx)
	if !res.HasData {
		return res.Err
	}
	return RenderTable(w, []Column[location.City]{
		{Header: "ID", Value: func(c location.City) string { return id64(c.ID) }},
		{Header: "Name", Value: func(c location.City) string { return c.Name }},
		{Header: "Name (AR)", Value: func(c location.City) string { return c.NameAr }},
	}, res.Data)
}

// Create adds a district
func (p *DistrictsPage) Create(ctx context.Context, in location.DistrictInput) (*location.District, error) {
	if err := p.deps.require("districts", adminOnly...); err != nil {
		return nil, err
	}
	return Run(ctx, p.deps, Action{Name: p.create.Name(), Subject: "District", Success: i18n.ToastCreated},
		func(ctx context.Context) query.MutationResult[*location.District] {
			return p.create.Submit(ctx, in)
		})
}

// Update replaces the editable fields of a district
func (p *DistrictsPage) Update(ctx context.Context, id int64, in location.DistrictInput) (*location.District, error) {
	if err := p.deps.require("districts", adminOnly...); err != nil {
		return nil, err
	}
	return Run(ctx, p.deps, Action{Name: p.update.Name(), Subject: "District", Success: i18n.ToastUpdated},
		func(ctx context.Context) query.MutationResult[*location.District] {
			return p.update.Submit(ctx, locationapp.UpdateDistrict{ID: id, Input: in})
		})
}

// Delete removes a district after confirmation
func (p *DistrictsPage) Delete(ctx context.Context, id int64) error {
	if err := p.deps.require("districts", adminOnly...); err != nil {
		return err
	}
	_, err := Run(ctx, p.deps, deleteAction(p.deps, p.remove.Name(), "District", fmt.Sprintf("district #%d", id)),
		func(ctx context.Context) query.MutationResult[struct{}] {
			return p.remove.Submit(ctx, id)
		})
	return err
}
