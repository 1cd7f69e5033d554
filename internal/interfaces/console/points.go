package console

import (
	"context"
	"fmt"
	"io"
	"strconv"

	loyaltyapp "github.com/sooquk/dashboard/internal/application/loyalty"
	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/domain/loyalty"
	"github.com/sooquk/dashboard/internal/infrastructure/i18n"
)

// PointsPage manages the points terms and the referral settings
type PointsPage struct {
	svc  *loyaltyapp.PointsService
	deps Deps
	List *ListPage[loyalty.PointTerm, loyalty.PointTermFilter]

	create   *query.Mutator[loyalty.PointTermInput, *loyalty.PointTerm]
	update   *query.Mutator[loyaltyapp.UpdateTerm, *loyalty.PointTerm]
	remove   *query.Mutator[int64, struct{}]
	settings *query.Mutator[loyalty.PointsSettings, *loyalty.PointsSettings]
}

// NewPointsPage creates the points page
func NewPointsPage(svc *loyaltyapp.PointsService, deps Deps, filter loyalty.PointTermFilter) *PointsPage {
	deps = deps.withDefaults()
	qc := svc.Client()
	return &PointsPage{
		svc:  svc,
		deps: deps,
		List: NewListPage(qc, deps, ListSpec[loyalty.PointTerm, loyalty.PointTermFilter]{
			Title:  "Points terms",
			Roles:  adminOnly,
			Filter: filter,
			Query:  svc.TermsQuery,
			Columns: []Column[loyalty.PointTerm]{
				{Header: "ID", Value: func(t loyalty.PointTerm) string { return id64(t.PointTermID) }},
				{Header: "Title", Value: func(t loyalty.PointTerm) string { return t.Title }},
				{Header: "Title (AR)", Value: func(t loyalty.PointTerm) string { return t.TitleAr }},
				{Header: "Points", Value: func(t loyalty.PointTerm) string { return strconv.Itoa(t.Points) }},
				{Header: "Order", Value: func(t loyalty.PointTerm) string { return strconv.Itoa(t.DisplayOrder) }},
				{Header: "Status", Value: func(t loyalty.PointTerm) string { return active(t.IsActive) }},
			},
		}),
		create:   query.NewMutator(qc, svc.CreateTermMutation()),
		update:   query.NewMutator(qc, svc.UpdateTermMutation()),
		remove:   query.NewMutator(qc, svc.DeleteTermMutation()),
		settings: query.NewMutator(qc, svc.UpdateSettingsMutation()),
	}
}

// ShowTerm renders one term
func (p *PointsPage) ShowTerm(ctx context.Context, w io.Writer, id int64) error {
	if err := p.deps.require("points term", adminOnly...); err != nil {
		return err
	}
	return showDetail(w, p.svc.Term(ctx, id), func(t loyalty.PointTerm) []Field {
		return []Field{
			{"ID", id64(t.PointTermID)},
			{"Title", t.Title},
			{"Title (AR)", t.TitleAr},
			{"Description", t.Description},
			{"Description (AR)", t.DescriptionAr},
			{"Points", strconv.Itoa(t.Points)},
			{"Display order", strconv.Itoa(t.DisplayOrder)},
			{"Status", active(t.IsActive)},
		}
	})
}

// ShowSettings renders the referral and redemption settings
func (p *PointsPage) ShowSettings(ctx context.Context, w io.Writer) error {
	if err := p.deps.require("points settings", adminOnly...); err != nil {
		return err
	}
	return showDetail(w, p.svc.Settings(ctx), func(s loyalty.PointsSettings) []Field {
		return []Field{
			{"Points per currency unit", s.PointsPerCurrencyUnit.String()},
			{"Point value", s.PointValue.String()},
			{"Referrer points", strconv.Itoa(s.ReferrerPoints)},
			{"Referee points", strconv.Itoa(s.RefereePoints)},
			{"Minimum redeem", strconv.Itoa(s.MinRedeemPoints)},
			{"Referrals", yesNo(s.IsReferralEnabled)},
			{"Updated", stamp(s.UpdatedAt)},
		}
	})
}

// CreateTerm adds a term
func (p *PointsPage) CreateTerm(ctx context.Context, in loyalty.PointTermInput) (*loyalty.PointTerm, error) {
	if err := p.deps.require("points", adminOnly...); err != nil {
		return nil, err
	}
	return Run(ctx, p.deps, Action{Name: p.create.Name(), Subject: "Term", Success: i18n.ToastCreated},
		func(ctx context.Context) query.MutationResult[*loyalty.PointTerm] {
			return p.create.Submit(ctx, in)
		})
}

// UpdateTerm replaces the editable fields of a term
func (p *PointsPage) UpdateTerm(ctx context.Context, id int64, in loyalty.PointTermInput) (*loyalty.PointTerm, error) {
	if err := p.deps.require("points", adminOnly...); err != nil {
		return nil, err
	}
	return Run(ctx, p.deps, Action{Name: p.update.Name(), Subject: "Term", Success: i18n.ToastUpdated},
		func(ctx context.Context) query.MutationResult[*loyalty.PointTerm] {
			return p.update.Submit(ctx, loyaltyapp.UpdateTerm{ID: id, Input: in})
		})
}

// DeleteTerm removes a term after confirmation
func (p *PointsPage) DeleteTerm(ctx context.Context, id int64) error {
	if err := p.deps.require("points", adminOnly...); err != nil {
		return err
	}
	_, err := Run(ctx, p.deps, deleteAction(p.deps, p.remove.Name(), "Term", fmt.Sprintf("points term #%d", id)),
		func(ctx context.Context) query.MutationResult[struct{}] {
			return p.remove.Submit(ctx, id)
		})
	return err
}

// UpdateSettings saves the referral and redemption settings
func (p *PointsPage) UpdateSettings(ctx context.Context, s loyalty.PointsSettings) (*loyalty.PointsSettings, error) {
	if err := p.deps.require("points", adminOnly...); err != nil {
		return nil, err
	}
	return Run(ctx, p.deps, Action{Name: p.settings.Name(), Subject: "Settings", Success: i18n.ToastSaved},
		func(ctx context.Context) query.MutationResult[*loyalty.PointsSettings] {
			return p.settings.Submit(ctx, s)
		})
}
