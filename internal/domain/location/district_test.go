package location

import (
	"testing"

	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistrictFilter_Params(t *testing.T) {
	cityID := int64(3)
	active := true

	assert.Empty(t, DistrictFilter{}.Params())

	p := DistrictFilter{CityID: &cityID, IsActive: &active, Search: "ali"}.Params()
	assert.Equal(t, "cityId=3&isActive=true&search=ali", p.Encode())
}

func TestDistrictInput_Validate(t *testing.T) {
	valid := DistrictInput{CityID: 3, Name: "Tla Al-Ali", NameAr: "تلاع العلي", IsActive: true}
	require.NoError(t, valid.Validate())

	err := DistrictInput{Name: "Tla Al-Ali"}.Validate()
	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "cityId")
	assert.Contains(t, verr.Fields, "nameAr")
	assert.NotContains(t, verr.Fields, "name")
}

func TestInputFrom(t *testing.T) {
	d := District{ID: 9, CityID: 3, Name: "Khalda", NameAr: "خلدا", IsActive: false}
	in := InputFrom(d)
	assert.Equal(t, DistrictInput{CityID: 3, Name: "Khalda", NameAr: "خلدا"}, in)
}
