package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	catalogapp "github.com/sooquk/dashboard/internal/application/catalog"
	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/domain/catalog"
	"github.com/sooquk/dashboard/internal/infrastructure/i18n"
)

// ReviewsPage moderates the reviews of one kind
type ReviewsPage struct {
	svc  *catalogapp.ReviewService
	deps Deps
	List *ListPage[catalog.Review, catalog.ReviewFilter]

	moderate *query.Mutator[catalogapp.ModerateReview, *catalog.Review]
	remove   *query.Mutator[int64, struct{}]
}

// NewReviewsPage creates the reviews page for the kind of svc
func NewReviewsPage(svc *catalogapp.ReviewService, deps Deps, filter catalog.ReviewFilter) *ReviewsPage {
	deps = deps.withDefaults()
	qc := svc.Client()
	return &ReviewsPage{
		svc:  svc,
		deps: deps,
		List: NewListPage(qc, deps, ListSpec[catalog.Review, catalog.ReviewFilter]{
			Title:  reviewTitle(svc.Kind()),
			Roles:  adminOnly,
			Filter: filter,
			Query:  svc.ListQuery,
			Columns: []Column[catalog.Review]{
				{Header: "ID", Value: func(r catalog.Review) string { return id64(r.ID) }},
				{Header: "Target", Value: func(r catalog.Review) string { return r.TargetName }},
				{Header: "By", Value: func(r catalog.Review) string { return r.UserName }},
				{Header: "Rating", Value: stars},
				{Header: "Comment", Value: func(r catalog.Review) string { return truncate(r.Comment, 40) }},
				{Header: "Status", Value: func(r catalog.Review) string { return badge(string(r.Status), r.Status.Tone()) }},
			},
		}),
		moderate: query.NewMutator(qc, svc.ModerateMutation()),
		remove:   query.NewMutator(qc, svc.DeleteMutation()),
	}
}

func reviewTitle(kind catalog.ReviewKind) string {
	switch kind {
	case catalog.ReviewKindProduct:
		return "Product reviews"
	case catalog.ReviewKindVendor:
		return "Vendor reviews"
	case catalog.ReviewKindShipping:
		return "Shipping reviews"
	}
	return "Reviews"
}

func stars(r catalog.Review) string {
	n := min(max(r.Rating, 0), 5)
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// Show renders one review
func (p *ReviewsPage) Show(ctx context.Context, w io.Writer, id int64) error {
	if err := p.deps.require("review", adminOnly...); err != nil {
		return err
	}
	return showDetail(w, p.svc.Get(ctx, id), func(r catalog.Review) []Field {
		return []Field{
			{"ID", id64(r.ID)},
			{"Kind", string(r.Kind)},
			{"Target", fmt.Sprintf("%s (%s)", r.TargetName, r.TargetID)},
			{"By", r.UserName},
			{"Rating", strconv.Itoa(r.Rating) + " " + stars(r)},
			{"Comment", r.Comment},
			{"Status", badge(string(r.Status), r.Status.Tone())},
			{"Posted", stamp(r.CreatedAt)},
		}
	})
}

// Moderate approves or rejects a review. Rejections are confirmed.
func (p *ReviewsPage) Moderate(ctx context.Context, id int64, status catalog.ReviewStatus, note string) (*catalog.Review, error) {
	if err := p.deps.require("reviews", adminOnly...); err != nil {
		return nil, err
	}
	a := Action{Name: p.moderate.Name(), Subject: "Review", Success: i18n.ToastUpdated}
	if status == catalog.ReviewStatusRejected {
		a.Confirm = fmt.Sprintf("Reject review #%d?", id)
	}
	return Run(ctx, p.deps, a, func(ctx context.Context) query.MutationResult[*catalog.Review] {
		return p.moderate.Submit(ctx, catalogapp.ModerateReview{
			ID:      id,
			Request: catalog.ModerateReviewRequest{Status: status, Note: note},
		})
	})
}

// Delete removes a review after confirmation
func (p *ReviewsPage) Delete(ctx context.Context, id int64) error {
	if err := p.deps.require("reviews", adminOnly...); err != nil {
		return err
	}
	_, err := Run(ctx, p.deps, deleteAction(p.deps, p.remove.Name(), "Review", fmt.Sprintf("review #%d", id)),
		func(ctx context.Context) query.MutationResult[struct{}] {
			return p.remove.Submit(ctx, id)
		})
	return err
}
