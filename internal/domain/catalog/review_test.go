package catalog

import (
	"testing"

	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewStatus_Tone(t *testing.T) {
	for _, s := range AllReviewStatuses() {
		t.Run(string(s), func(t *testing.T) {
			assert.True(t, s.IsValid())
			assert.NotEqual(t, shared.ToneNeutral, s.Tone())
		})
	}
	assert.Equal(t, shared.ToneNeutral, ReviewStatus("Hidden").Tone())
}

func TestReviewKind_IsValid(t *testing.T) {
	for _, k := range AllReviewKinds() {
		assert.True(t, k.IsValid())
	}
	assert.False(t, ReviewKind("stores").IsValid())
}

func TestReviewFilter_Params(t *testing.T) {
	assert.Empty(t, ReviewFilter{}.Params())
	four, zero := 4, 0
	p := ReviewFilter{Status: ReviewStatusPending, MinRating: &four}.Params()
	assert.Equal(t, "minRating=4&status=Pending", p.Encode())
	assert.Equal(t, "minRating=0", ReviewFilter{MinRating: &zero}.Params().Encode())
}

func TestModerateReviewRequest_Validate(t *testing.T) {
	require.NoError(t, ModerateReviewRequest{Status: ReviewStatusApproved}.Validate())
	assert.Error(t, ModerateReviewRequest{Status: ReviewStatusPending}.Validate())
	assert.Error(t, ModerateReviewRequest{}.Validate())
}

func TestCategoryInput_Validate(t *testing.T) {
	require.NoError(t, CategoryInput{Name: "Phones", NameAr: "هواتف"}.Validate())

	zero := int64(0)
	err := CategoryInput{Name: "Phones", ParentID: &zero, DisplayOrder: -1}.Validate()
	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "nameAr")
	assert.Contains(t, verr.Fields, "parentId")
	assert.Contains(t, verr.Fields, "displayOrder")
}
