package catalog

import (
	"time"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// ReviewKind selects which review collection is addressed
type ReviewKind string

const (
	ReviewKindProduct  ReviewKind = "products"
	ReviewKindVendor   ReviewKind = "vendors"
	ReviewKindShipping ReviewKind = "shipping"
)

// AllReviewKinds lists every review collection
func AllReviewKinds() []ReviewKind {
	return []ReviewKind{ReviewKindProduct, ReviewKindVendor, ReviewKindShipping}
}

// IsValid checks if the kind is known
func (k ReviewKind) IsValid() bool {
	switch k {
	case ReviewKindProduct, ReviewKindVendor, ReviewKindShipping:
		return true
	}
	return false
}

// ReviewStatus is the moderation state of a review
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "Pending"
	ReviewStatusApproved ReviewStatus = "Approved"
	ReviewStatusRejected ReviewStatus = "Rejected"
)

// AllReviewStatuses lists every moderation state
func AllReviewStatuses() []ReviewStatus {
	return []ReviewStatus{ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected}
}

// IsValid checks if the status is known
func (s ReviewStatus) IsValid() bool {
	switch s {
	case ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected:
		return true
	}
	return false
}

// Tone returns the badge emphasis for the status
func (s ReviewStatus) Tone() shared.Tone {
	switch s {
	case ReviewStatusPending:
		return shared.ToneWarning
	case ReviewStatusApproved:
		return shared.ToneSuccess
	case ReviewStatusRejected:
		return shared.ToneDanger
	}
	return shared.ToneNeutral
}

// Review is a customer rating of a product, vendor or shipping company
type Review struct {
	ID         int64        `json:"id"`
	Kind       ReviewKind   `json:"kind"`
	TargetID   string       `json:"targetId"`
	TargetName string       `json:"targetName"`
	UserName   string       `json:"userName"`
	Rating     int          `json:"rating"`
	Comment    string       `json:"comment"`
	Status     ReviewStatus `json:"status"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// ReviewFilter narrows a review list
type ReviewFilter struct {
	Status    ReviewStatus
	MinRating *int
	Search    string
}

// Params converts the filter into query parameters
func (f ReviewFilter) Params() shared.Params {
	return shared.NewParams().
		SetString("status", string(f.Status)).
		SetIntPtr("minRating", f.MinRating).
		SetString("search", f.Search)
}

// ModerateReviewRequest approves or rejects a review
type ModerateReviewRequest struct {
	Status ReviewStatus `json:"status" validate:"required,oneof=Approved Rejected"`
	Note   string       `json:"note,omitempty" validate:"max=500"`
}

// Validate checks the request before it is submitted
func (r ModerateReviewRequest) Validate() error {
	return shared.ValidateStruct(r)
}
