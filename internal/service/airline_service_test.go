package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/alixtron0/tour-backoffice/internal/domain"
	"github.com/alixtron0/tour-backoffice/internal/dto"
)

func TestAirlineService_Create_NormalizesCode(t *testing.T) {
	airlineRepo := new(MockAirlineRepository)
	aircraftRepo := new(MockAircraftRepository)
	service := NewAirlineService(airlineRepo, aircraftRepo)

	airlineRepo.On("GetByCode", mock.Anything, "W5").Return(nil, nil)
	airlineRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Airline) bool {
		return a.Code == "W5" && a.Name == "ماهان" && a.IsActive
	})).Return(nil)

	airline, err := service.Create(context.Background(), &dto.CreateAirlineRequest{
		Name:        "  ماهان ",
		EnglishName: "Mahan Air",
		Code:        " w5 ",
		Country:     "Iran",
	})

	require.NoError(t, err)
	assert.Equal(t, "W5", airline.Code)
	assert.NotEmpty(t, airline.ID)

	airlineRepo.AssertExpectations(t)
}

func TestAirlineService_Create_CodeConflict(t *testing.T) {
	airlineRepo := new(MockAirlineRepository)
	service := NewAirlineService(airlineRepo, new(MockAircraftRepository))

	existing := &domain.Airline{ID: "airline-1", Code: "W5"}
	airlineRepo.On("GetByCode", mock.Anything, "W5").Return(existing, nil)

	airline, err := service.Create(context.Background(), &dto.CreateAirlineRequest{
		Name: "Another",
		Code: "w5",
	})

	assert.Nil(t, airline)
	assert.Equal(t, ErrAirlineCodeExists, err)
}

func TestAirlineService_Update_PartialFields(t *testing.T) {
	airlineRepo := new(MockAirlineRepository)
	service := NewAirlineService(airlineRepo, new(MockAircraftRepository))

	stored := &domain.Airline{
		ID:       "airline-1",
		Name:     "ماهان",
		Code:     "W5",
		Country:  "Iran",
		IsActive: true,
	}
	airlineRepo.On("GetByID", mock.Anything, "airline-1").Return(stored, nil)
	airlineRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	inactive := false
	updated, err := service.Update(context.Background(), "airline-1", &dto.UpdateAirlineRequest{
		IsActive: &inactive,
	})

	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	// untouched fields stay as stored
	assert.Equal(t, "ماهان", updated.Name)
	assert.Equal(t, "W5", updated.Code)
}

func TestAirlineService_Update_CodeConflictWithOtherAirline(t *testing.T) {
	airlineRepo := new(MockAirlineRepository)
	service := NewAirlineService(airlineRepo, new(MockAircraftRepository))

	stored := &domain.Airline{ID: "airline-1", Code: "W5"}
	other := &domain.Airline{ID: "airline-2", Code: "IR"}
	airlineRepo.On("GetByID", mock.Anything, "airline-1").Return(stored, nil)
	airlineRepo.On("GetByCode", mock.Anything, "IR").Return(other, nil)

	code := "ir"
	updated, err := service.Update(context.Background(), "airline-1", &dto.UpdateAirlineRequest{
		Code: &code,
	})

	assert.Nil(t, updated)
	assert.Equal(t, ErrAirlineCodeExists, err)
}

func TestAirlineService_Update_NotFound(t *testing.T) {
	airlineRepo := new(MockAirlineRepository)
	service := NewAirlineService(airlineRepo, new(MockAircraftRepository))

	airlineRepo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	updated, err := service.Update(context.Background(), "missing", &dto.UpdateAirlineRequest{})

	assert.Nil(t, updated)
	assert.Equal(t, ErrAirlineNotFound, err)
}

func TestAirlineService_Delete_BlockedByAircraft(t *testing.T) {
	airlineRepo := new(MockAirlineRepository)
	aircraftRepo := new(MockAircraftRepository)
	service := NewAirlineService(airlineRepo, aircraftRepo)

	stored := &domain.Airline{ID: "airline-1", Code: "W5"}
	airlineRepo.On("GetByID", mock.Anything, "airline-1").Return(stored, nil)
	aircraftRepo.On("ListByAirline", mock.Anything, "airline-1").Return([]*domain.Aircraft{
		{ID: "aircraft-1", AirlineID: "airline-1"},
	}, nil)

	err := service.Delete(context.Background(), "airline-1")

	assert.Equal(t, ErrAirlineInUse, err)
	airlineRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAirlineService_Delete_Success(t *testing.T) {
	airlineRepo := new(MockAirlineRepository)
	aircraftRepo := new(MockAircraftRepository)
	service := NewAirlineService(airlineRepo, aircraftRepo)

	stored := &domain.Airline{ID: "airline-1", Code: "W5"}
	airlineRepo.On("GetByID", mock.Anything, "airline-1").Return(stored, nil)
	aircraftRepo.On("ListByAirline", mock.Anything, "airline-1").Return([]*domain.Aircraft{}, nil)
	airlineRepo.On("Delete", mock.Anything, "airline-1").Return(nil)

	err := service.Delete(context.Background(), "airline-1")

	assert.NoError(t, err)
	airlineRepo.AssertExpectations(t)
}

func TestAirlineService_Export_Workbook(t *testing.T) {
	airlineRepo := new(MockAirlineRepository)
	service := NewAirlineService(airlineRepo, new(MockAircraftRepository))

	airlineRepo.On("List", mock.Anything).Return([]*domain.Airline{
		{Name: "ماهان", EnglishName: "Mahan Air", Code: "W5", IsActive: true},
	}, nil)

	data, err := service.Export(context.Background())

	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Airlines")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "W5", rows[1][2])
}

// fakeAirlineRepository is a map-backed AirlineRepository so round-trip
// behavior can be checked against real storage semantics instead of
// per-call mock expectations.
type fakeAirlineRepository struct {
	airlines map[string]*domain.Airline
}

func newFakeAirlineRepository() *fakeAirlineRepository {
	return &fakeAirlineRepository{airlines: make(map[string]*domain.Airline)}
}

func (f *fakeAirlineRepository) Create(_ context.Context, airline *domain.Airline) error {
	stored := *airline
	f.airlines[airline.ID] = &stored
	return nil
}

func (f *fakeAirlineRepository) GetByID(_ context.Context, id string) (*domain.Airline, error) {
	return f.airlines[id], nil
}

func (f *fakeAirlineRepository) GetByCode(_ context.Context, code string) (*domain.Airline, error) {
	for _, airline := range f.airlines {
		if airline.Code == code {
			return airline, nil
		}
	}
	return nil, nil
}

func (f *fakeAirlineRepository) List(_ context.Context) ([]*domain.Airline, error) {
	out := make([]*domain.Airline, 0, len(f.airlines))
	for _, airline := range f.airlines {
		out = append(out, airline)
	}
	return out, nil
}

func (f *fakeAirlineRepository) Update(_ context.Context, airline *domain.Airline) error {
	stored := *airline
	f.airlines[airline.ID] = &stored
	return nil
}

func (f *fakeAirlineRepository) Delete(_ context.Context, id string) error {
	delete(f.airlines, id)
	return nil
}

func TestAirlineService_CreateThenListRoundTrip(t *testing.T) {
	repo := newFakeAirlineRepository()
	service := NewAirlineService(repo, new(MockAircraftRepository))

	created, err := service.Create(context.Background(), &dto.CreateAirlineRequest{
		Name:         "هواپیمایی ماهان",
		EnglishName:  "Mahan Air",
		Code:         "w5",
		Country:      "Iran",
		ContactPhone: "+98-21-48382000",
		ContactEmail: "sales@mahan.aero",
		Description:  "Scheduled carrier",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	listed, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)

	got := listed[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "هواپیمایی ماهان", got.Name)
	assert.Equal(t, "Mahan Air", got.EnglishName)
	assert.Equal(t, "W5", got.Code)
	assert.Equal(t, "Iran", got.Country)
	assert.Equal(t, "+98-21-48382000", got.ContactPhone)
	assert.Equal(t, "sales@mahan.aero", got.ContactEmail)
	assert.Equal(t, "Scheduled carrier", got.Description)
	assert.True(t, got.IsActive)
}
