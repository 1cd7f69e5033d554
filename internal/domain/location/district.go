// Package location holds the geographic lookup resources used by address
// forms: cities and their districts.
package location

import (
	"time"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// City is a read-only lookup value
type City struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	NameAr string `json:"nameAr"`
}

// District belongs to exactly one city
type District struct {
	ID        int64     `json:"id"`
	CityID    int64     `json:"cityId"`
	CityName  string    `json:"cityName,omitempty"`
	Name      string    `json:"name"`
	NameAr    string    `json:"nameAr"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// DistrictFilter narrows the district list
type DistrictFilter struct {
	CityID   *int64
	Search   string
	IsActive *bool
}

// Params converts the filter into query parameters
func (f DistrictFilter) Params() shared.Params {
	return shared.NewParams().
		SetInt64Ptr("cityId", f.CityID).
		SetString("search", f.Search).
		SetBoolPtr("isActive", f.IsActive)
}

// DistrictInput is the editable field set of a district
type DistrictInput struct {
	CityID   int64  `json:"cityId" validate:"required,gt=0"`
	Name     string `json:"name" validate:"required,max=100"`
	NameAr   string `json:"nameAr" validate:"required,max=100"`
	IsActive bool   `json:"isActive"`
}

// Validate checks the input before it is submitted
func (in DistrictInput) Validate() error {
	return shared.ValidateStruct(in)
}

// InputFrom returns the editable fields of an existing district
func InputFrom(d District) DistrictInput {
	return DistrictInput{
		CityID:   d.CityID,
		Name:     d.Name,
		NameAr:   d.NameAr,
		IsActive: d.IsActive,
	}
}
