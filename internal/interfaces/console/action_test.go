package console

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/application/query/querytest"
	"github.com/sooquk/dashboard/internal/domain/identity"
	"github.com/sooquk/dashboard/internal/domain/location"
	"github.com/sooquk/dashboard/internal/domain/shared"
)

func TestRun_DeclinedConfirmationSkipsTheRequest(t *testing.T) {
	f := newFixture(t, identity.RoleAdmin)
	f.confirmer.On("Confirm", mock.Anything, "Delete district #1? This cannot be undone.").Return(false, nil).Once()

	err := f.page().Delete(context.Background(), 1)

	assert.ErrorIs(t, err, shared.ErrNotConfirmed)
	f.api.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	assert.Empty(t, f.store.Invalidated())
}

func TestRun_ConfirmedDeleteInvalidatesAndToasts(t *testing.T) {
	f := newFixture(t, identity.RoleAdmin)
	f.confirmer.On("Confirm", mock.Anything, mock.Anything).Return(true, nil).Once()
	f.api.On("Delete", mock.Anything, int64(1)).Return(nil).Once()
	f.notifier.On("Success", "District deleted successfully").Once()

	err := f.page().Delete(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, querytest.Strings(query.OnDelete(query.ResourceDistricts, 1)...), f.store.Invalidated())
}

func TestRun_FailureShowsErrorToastWithoutInvalidation(t *testing.T) {
	f := newFixture(t, identity.RoleAdmin)
	f.confirmer.On("Confirm", mock.Anything, mock.Anything).Return(true, nil).Once()
	conflict := &shared.APIError{Kind: shared.KindConflict, StatusCode: 409, Message: "District has users"}
	f.api.On("Delete", mock.Anything, int64(1)).Return(conflict).Once()
	f.notifier.On("Error", "District has users").Once()

	err := f.page().Delete(context.Background(), 1)

	var actionErr *ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, "delete district", actionErr.Action)
	assert.ErrorIs(t, err, conflict)
	assert.Empty(t, f.store.Invalidated())
}

func TestRun_ValidationFailsBeforeTheRequest(t *testing.T) {
	f := newFixture(t, identity.RoleAdmin)
	f.notifier.On("Error", mock.MatchedBy(func(msg string) bool {
		return strings.Contains(msg, "name:") && strings.Contains(msg, "cityId:")
	})).Once()

	_, err := f.page().Create(context.Background(), location.DistrictInput{})

	var verr *shared.ValidationError
	assert.ErrorAs(t, err, &verr)
	f.api.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRun_CreateShowsSuccessToast(t *testing.T) {
	f := newFixture(t, identity.RoleAdmin)
	in := location.InputFrom(khalda)
	f.api.On("Create", mock.Anything, in).Return(&khalda, nil).Once()
	f.notifier.On("Success", "District created successfully").Once()

	d, err := f.page().Create(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, khalda.ID, d.ID)
	assert.Equal(t, querytest.Strings(query.OnCreate(query.ResourceDistricts)...), f.store.Invalidated())
}

func TestRun_ForbiddenRoleNeverRuns(t *testing.T) {
	f := newFixture(t, identity.RoleShippingCompany)

	err := f.page().Delete(context.Background(), 1)

	assert.ErrorIs(t, err, shared.ErrForbidden)
	f.confirmer.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)
}

func TestRun_ConfirmerErrorIsReturned(t *testing.T) {
	deps := Deps{Confirmer: &MockConfirmer{}}
	boom := errors.New("stdin closed")
	deps.Confirmer.(*MockConfirmer).On("Confirm", mock.Anything, "sure?").Return(false, boom)

	called := false
	_, err := Run(context.Background(), deps, Action{Name: "wipe", Confirm: "sure?"},
		func(context.Context) query.MutationResult[struct{}] {
			called = true
			return query.MutationResult[struct{}]{}
		})

	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}
