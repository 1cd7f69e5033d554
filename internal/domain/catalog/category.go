package catalog

import (
	"time"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// Category is a product category, optionally nested under a parent
type Category struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	NameAr       string    `json:"nameAr"`
	Description  string    `json:"description,omitempty"`
	ParentID     *int64    `json:"parentId,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	IsActive     bool      `json:"isActive"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// IsRoot reports whether the category has no parent
func (c Category) IsRoot() bool {
	return c.ParentID == nil
}

// CategoryFilter narrows the category list
type CategoryFilter struct {
	Search   string
	ParentID *int64
	IsActive *bool
}

// Params converts the filter into query parameters
func (f CategoryFilter) Params() shared.Params {
	return shared.NewParams().
		SetString("search", f.Search).
		SetInt64Ptr("parentId", f.ParentID).
		SetBoolPtr("isActive", f.IsActive)
}

// CategoryInput is the editable field set of a category. Image is only
// sent when a new file was chosen.
type CategoryInput struct {
	Name         string       `json:"name" validate:"required,max=100"`
	NameAr       string       `json:"nameAr" validate:"required,max=100"`
	Description  string       `json:"description" validate:"max=500"`
	ParentID     *int64       `json:"parentId" validate:"omitempty,gt=0"`
	IsActive     bool         `json:"isActive"`
	DisplayOrder int          `json:"displayOrder" validate:"gte=0"`
	Image        *shared.File `json:"-"`
}

// Validate checks the input before it is submitted
func (in CategoryInput) Validate() error {
	return shared.ValidateStruct(in)
}
