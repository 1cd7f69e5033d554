package location

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/application/query/querytest"
	"github.com/sooquk/dashboard/internal/domain/location"
	"github.com/sooquk/dashboard/internal/domain/shared"
)

// MockDistrictAPI is a mock implementation of DistrictAPI
type MockDistrictAPI struct {
	mock.Mock
}

func (m *MockDistrictAPI) List(ctx context.Context, params shared.Params) (*shared.ListResponse[location.District], error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.ListResponse[location.District]), args.Error(1)
}

func (m *MockDistrictAPI) Get(ctx context.Context, id int64) (*location.District, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.District), args.Error(1)
}

func (m *MockDistrictAPI) Create(ctx context.Context, in location.DistrictInput) (*location.District, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.District), args.Error(1)
}

func (m *MockDistrictAPI) Update(ctx context.Context, id int64, in location.DistrictInput) (*location.District, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.District), args.Error(1)
}

func (m *MockDistrictAPI) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDistrictAPI) Cities(ctx context.Context) ([]location.City, error) {
	args := m.Called(ctx)
	return args.Get(0).([]location.City), args.Error(1)
}

func (m *MockDistrictAPI) ByCity(ctx context.Context, cityID int64) ([]location.District, error) {
	args := m.Called(ctx, cityID)
	return args.Get(0).([]location.District), args.Error(1)
}

func page(items ...location.District) *shared.ListResponse[location.District] {
	r := shared.NewListResponse(items, 1, 10, int64(len(items)))
	return &r
}

var (
	khalda = location.District{ID: 1, CityID: 3, Name: "Khalda", NameAr: "خلدا", IsActive: true}
	abdoun = location.District{ID: 2, CityID: 3, Name: "Abdoun", NameAr: "عبدون", IsActive: true}
)

func newTestService(t *testing.T) (*DistrictService, *MockDistrictAPI, *querytest.Store) {
	api := new(MockDistrictAPI)
	qc, store := querytest.NewClient(t)
	return NewDistrictService(api, qc), api, store
}

func TestDistrictService_ListIsCached(t *testing.T) {
	ctx := context.Background()
	svc, api, _ := newTestService(t)
	params := location.DistrictFilter{Search: "kh"}.Params()
	api.On("List", mock.Anything, params).Return(page(khalda), nil).Once()

	first := svc.List(ctx, params)
	require.NoError(t, first.Err)
	second := svc.List(ctx, params)
	require.NoError(t, second.Err)

	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, []location.District{khalda}, second.Data.Items)
	api.AssertNumberOfCalls(t, "List", 1)
}

func TestDistrictService_CreateInvalidatesLists(t *testing.T) {
	ctx := context.Background()
	svc, api, store := newTestService(t)
	params := shared.NewParams()
	cityID := int64(3)

	api.On("List", mock.Anything, params).Return(page(khalda), nil).Once()
	api.On("ByCity", mock.Anything, cityID).Return([]location.District{khalda}, nil).Once()
	api.On("Get", mock.Anything, int64(1)).Return(&khalda, nil).Once()
	require.NoError(t, svc.List(ctx, params).Err)
	require.NoError(t, svc.ByCity(ctx, &cityID).Err)
	require.NoError(t, svc.Get(ctx, 1).Err)

	in := location.DistrictInput{CityID: 3, Name: "Abdoun", NameAr: "عبدون", IsActive: true}
	api.On("Create", mock.Anything, in).Return(&abdoun, nil).Once()
	res := svc.Create(ctx, in)
	require.NoError(t, res.Err)
	assert.Equal(t, int64(2), res.Data.ID)

	assert.True(t, store.Entry(query.ListKey(query.ResourceDistricts, params)).Invalidated)
	assert.True(t, store.Entry(ByCityKey(3)).Invalidated)
	assert.False(t, store.Entry(query.DetailKey(query.ResourceDistricts, 1)).Invalidated)

	api.On("List", mock.Anything, params).Return(page(khalda, abdoun), nil).Once()
	after := svc.List(ctx, params)
	require.NoError(t, after.Err)
	assert.Len(t, after.Data.Items, 2)
	api.AssertExpectations(t)
}

func TestDistrictService_CreateValidatesFirst(t *testing.T) {
	svc, api, store := newTestService(t)

	res := svc.Create(context.Background(), location.DistrictInput{CityID: 0, Name: ""})
	require.Error(t, res.Err)

	var verr *shared.ValidationError
	require.ErrorAs(t, res.Err, &verr)
	assert.Contains(t, verr.Fields, "cityId")
	assert.Contains(t, verr.Fields, "name")
	api.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, store.Invalidated())
}

func TestDistrictService_UpdateInvalidatesListAndDetail(t *testing.T) {
	ctx := context.Background()
	svc, api, store := newTestService(t)

	in := location.InputFrom(khalda)
	in.Name = "Khalda West"
	updated := khalda
	updated.Name = in.Name
	api.On("Update", mock.Anything, int64(1), in).Return(&updated, nil).Once()

	res := svc.Update(ctx, 1, in)
	require.NoError(t, res.Err)
	assert.Equal(t, querytest.Strings(query.OnUpdate(query.ResourceDistricts, int64(1))...), store.Invalidated())
}

func TestDistrictService_DeleteConflictKeepsCache(t *testing.T) {
	ctx := context.Background()
	svc, api, store := newTestService(t)
	params := shared.NewParams()

	api.On("List", mock.Anything, params).Return(page(khalda), nil).Once()
	require.NoError(t, svc.List(ctx, params).Err)

	conflict := &shared.APIError{Kind: shared.KindConflict, StatusCode: 409, Message: "District is used by 4 addresses"}
	api.On("Delete", mock.Anything, int64(1)).Return(conflict).Once()

	res := svc.Delete(ctx, 1)
	require.Error(t, res.Err)
	assert.True(t, shared.IsConflict(res.Err))
	assert.Empty(t, store.Invalidated())
	assert.False(t, store.Entry(query.ListKey(query.ResourceDistricts, params)).Invalidated)

	again := svc.List(ctx, params)
	assert.Equal(t, []location.District{khalda}, again.Data.Items)
	api.AssertNumberOfCalls(t, "List", 1)
}

func TestDistrictService_DeleteInvalidates(t *testing.T) {
	svc, api, store := newTestService(t)
	api.On("Delete", mock.Anything, int64(2)).Return(nil).Once()

	res := svc.Delete(context.Background(), 2)
	require.NoError(t, res.Err)
	assert.Equal(t, querytest.Strings(query.OnDelete(query.ResourceDistricts, int64(2))...), store.Invalidated())
}

func TestDistrictService_ByCityDisabledWithoutCity(t *testing.T) {
	svc, api, _ := newTestService(t)

	assert.True(t, svc.ByCity(context.Background(), nil).IsDisabled())
	zero := int64(0)
	assert.True(t, svc.ByCity(context.Background(), &zero).IsDisabled())
	api.AssertNotCalled(t, "ByCity", mock.Anything, mock.Anything)
}

func TestDistrictService_Cities(t *testing.T) {
	svc, api, _ := newTestService(t)
	cities := []location.City{{ID: 3, Name: "Amman", NameAr: "عمان"}}
	api.On("Cities", mock.Anything).Return(cities, nil).Once()

	res := svc.Cities(context.Background())
	require.NoError(t, res.Err)
	assert.Equal(t, cities, res.Data)
	svc.Cities(context.Background())
	api.AssertNumberOfCalls(t, "Cities", 1)
}
