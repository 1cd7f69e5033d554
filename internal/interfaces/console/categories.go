package console

import (
	"context"
	"fmt"
	"io"
	"strconv"

	catalogapp "github.com/sooquk/dashboard/internal/application/catalog"
	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/domain/catalog"
	"github.com/sooquk/dashboard/internal/infrastructure/i18n"
)

// CategoriesPage lists product categories and edits them
type CategoriesPage struct {
	svc  *catalogapp.CategoryService
	deps Deps
	List *ListPage[catalog.Category, catalog.CategoryFilter]

	create *query.Mutator[catalog.CategoryInput, *catalog.Category]
	update *query.Mutator[catalogapp.UpdateCategory, *catalog.Category]
	remove *query.Mutator[int64, struct{}]
}

// NewCategoriesPage creates the categories page
func NewCategoriesPage(svc *catalogapp.CategoryService, deps Deps, filter catalog.CategoryFilter) *CategoriesPage {
	deps = deps.withDefaults()
	qc := svc.Client()
	return &CategoriesPage{
		svc:  svc,
		deps: deps,
		List: NewListPage(qc, deps, ListSpec[catalog.Category, catalog.CategoryFilter]{
			Title:  "Categories",
			Roles:  adminOnly,
			Filter: filter,
			Query:  svc.ListQuery,
			Columns: []Column[catalog.Category]{
				{Header: "ID", Value: func(c catalog.Category) string { return id64(c.ID) }},
				{Header: "Name", Value: func(c catalog.Category) string { return c.Name }},
				{Header: "Name (AR)", Value: func(c catalog.Category) string { return c.NameAr }},
				{Header: "Parent", Value: func(c catalog.Category) string { return optID(c.ParentID) }},
				{Header: "Order", Value: func(c catalog.Category) string { return strconv.Itoa(c.DisplayOrder) }},
				{Header: "Image", Value: func(c catalog.Category) string { return yesNo(c.ImageURL != "") }},
				{Header: "Status", Value: func(c catalog.Category) string { return active(c.IsActive) }},
			},
		}),
		create: query.NewMutator(qc, svc.CreateMutation()),
		update: query.NewMutator(qc, svc.UpdateMutation()),
		remove: query.NewMutator(qc, svc.DeleteMutation()),
	}
}

// Show renders one category
func (p *CategoriesPage) Show(ctx context.Context, w io.Writer, id int64) error {
	if err := p.deps.require("category", adminOnly...); err != nil {
		return err
	}
	return showDetail(w, p.svc.Get(ctx, id), func(c catalog.Category) []Field {
		parent := "root"
		if !c.IsRoot() {
			parent = "#" + optID(c.ParentID)
		}
		return []Field{
			{"ID", id64(c.ID)},
			{"Name", c.Name},
			{"Name (AR)", c.NameAr},
			{"Description", c.Description},
			{"Parent", parent},
			{"Display order", strconv.Itoa(c.DisplayOrder)},
			{"Image", c.ImageURL},
			{"Status", active(c.IsActive)},
		}
	})
}

// Create adds a category. An image, when set, is uploaded with it.
func (p *CategoriesPage) Create(ctx context.Context, in catalog.CategoryInput) (*catalog.Category, error) {
	if err := p.deps.require("categories", adminOnly...); err != nil {
		return nil, err
	}
	return Run(ctx, p.deps, Action{Name: p.create.Name(), Subject: "Category", Success: i18n.ToastCreated},
		func(ctx context.Context) query.MutationResult[*catalog.Category] {
			return p.create.Submit(ctx, in)
		})
}

// Update replaces the editable fields of a category
func (p *CategoriesPage) Update(ctx context.Context, id int64, in catalog.CategoryInput) (*catalog.Category, error) {
	if err := p.deps.require("categories", adminOnly...); err != nil {
		return nil, err
	}
	return Run(ctx, p.deps, Action{Name: p.update.Name(), Subject: "Category", Success: i18n.ToastUpdated},
		func(ctx context.Context) query.MutationResult[*catalog.Category] {
			return p.update.Submit(ctx, catalogapp.UpdateCategory{ID: id, Input: in})
		})
}

// Delete removes a category after confirmation
func (p *CategoriesPage) Delete(ctx context.Context, id int64) error {
	if err := p.deps.require("categories", adminOnly...); err != nil {
		return err
	}
	_, err := Run(ctx, p.deps, deleteAction(p.deps, p.remove.Name(), "Category", fmt.Sprintf("category #%d", id)),
		func(ctx context.Context) query.MutationResult[struct{}] {
			return p.remove.Submit(ctx, id)
		})
	return err
}
