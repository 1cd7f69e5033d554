package console

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	locationapp "github.com/sooquk/dashboard/internal/application/location"
	"github.com/sooquk/dashboard/internal/application/query/querytest"
	"github.com/sooquk/dashboard/internal/domain/identity"
	"github.com/sooquk/dashboard/internal/domain/location"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/i18n"
)

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Success(message string) { m.Called(message) }
func (m *MockNotifier) Error(message string)   { m.Called(message) }

// MockConfirmer is a mock implementation of Confirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	args := m.Called(ctx, prompt)
	return args.Bool(0), args.Error(1)
}

type roleGuard identity.Role

func (g roleGuard) IsInRole(roles ...identity.Role) bool {
	for _, r := range roles {
		if identity.Role(g) == r {
			return true
		}
	}
	return false
}

// MockDistrictAPI is a mock implementation of locationapp.DistrictAPI
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

var (
	khalda = location.District{ID: 1, CityID: 3, CityName: "Amman", Name: "Khalda", NameAr: "خلدا", IsActive: true}
	abdoun = location.District{ID: 2, CityID: 3, CityName: "Amman", Name: "Abdoun", NameAr: "عبدون", IsActive: true}
)

func districtPage(page, size int, total int64, items ...location.District) *shared.ListResponse[location.District] {
	r := shared.NewListResponse(items, page, size, total)
	return &r
}

type fixture struct {
	api       *MockDistrictAPI
	svc       *locationapp.DistrictService
	store     *querytest.Store
	notifier  *MockNotifier
	confirmer *MockConfirmer
	deps      Deps
}

func newFixture(t *testing.T, role identity.Role) *fixture {
	t.Helper()
	tr, err := i18n.New("en")
	require.NoError(t, err)

	qc, store := querytest.NewClient(t)
	api := new(MockDistrictAPI)
	f := &fixture{
		api:       api,
		svc:       locationapp.NewDistrictService(api, qc),
		store:     store,
		notifier:  new(MockNotifier),
		confirmer: new(MockConfirmer),
	}
	f.deps = Deps{
		Guard:      roleGuard(role),
		Notifier:   f.notifier,
		Confirmer:  f.confirmer,
		Translator: tr,
	}
	t.Cleanup(func() {
		api.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
		f.confirmer.AssertExpectations(t)
	})
	return f
}

func (f *fixture) page() *DistrictsPage {
	return NewDistrictsPage(f.svc, f.deps, location.DistrictFilter{})
}
