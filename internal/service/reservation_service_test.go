package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alixtron0/tour-backoffice/internal/domain"
	"github.com/alixtron0/tour-backoffice/internal/dto"
)

func testReservationService(
	reservationRepo *MockReservationRepository,
	packageRepo *MockPackageRepository,
	passengerRepo *MockPassengerRepository,
) ReservationService {
	return NewReservationService(reservationRepo, packageRepo, passengerRepo)
}

func visiblePackage() *domain.Package {
	return &domain.Package{
		ID:        "pkg-1",
		Name:      "Istanbul 4 Nights",
		IsActive:  true,
		IsVisible: true,
	}
}

func TestReservationService_Create_Success(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	packageRepo := new(MockPackageRepository)
	service := testReservationService(reservationRepo, packageRepo, new(MockPassengerRepository))

	packageRepo.On("GetByID", mock.Anything, "pkg-1").Return(visiblePackage(), nil)
	reservationRepo.On("GetByBookingCode", mock.Anything, mock.AnythingOfType("string")).Return(nil, nil)
	reservationRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.PackageID == "pkg-1" && r.Status == domain.ReservationStatusPending
	})).Return(nil)

	reservation, err := service.Create(context.Background(), &dto.CreateReservationRequest{
		PackageID:      "pkg-1",
		ContactName:    "Reza Karimi",
		ContactPhone:   "+98 912 000 0000",
		PassengerCount: 3,
	}, "user-1")

	require.NoError(t, err)
	assert.Equal(t, "Istanbul 4 Nights", reservation.PackageName)
	assert.Equal(t, "user-1", reservation.CreatedBy)
	assert.Equal(t, 3, reservation.PassengerCount)
	assert.Len(t, reservation.BookingCode, 8)

	reservationRepo.AssertExpectations(t)
}

func TestReservationService_Create_BookingCodeAlphabet(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	packageRepo := new(MockPackageRepository)
	service := testReservationService(reservationRepo, packageRepo, new(MockPassengerRepository))

	packageRepo.On("GetByID", mock.Anything, "pkg-1").Return(visiblePackage(), nil)
	reservationRepo.On("GetByBookingCode", mock.Anything, mock.AnythingOfType("string")).Return(nil, nil)
	reservationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		reservation, err := service.Create(context.Background(), &dto.CreateReservationRequest{
			PackageID:      "pkg-1",
			ContactName:    "Reza Karimi",
			PassengerCount: 1,
		}, "user-1")
		require.NoError(t, err)

		code := reservation.BookingCode
		assert.Len(t, code, 8)
		// ambiguous characters are excluded from codes
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "1")
		assert.NotContains(t, code, "I")
		for _, c := range code {
			assert.True(t, strings.ContainsRune(bookingCodeAlphabet, c))
		}
		seen[code] = true
	}
	// 20 draws from a 32^8 space colliding would indicate a broken generator
	assert.Len(t, seen, 20)
}

func TestReservationService_Create_RetriesOnBookingCodeCollision(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	packageRepo := new(MockPackageRepository)
	service := testReservationService(reservationRepo, packageRepo, new(MockPassengerRepository))

	packageRepo.On("GetByID", mock.Anything, "pkg-1").Return(visiblePackage(), nil)
	taken := &domain.Reservation{ID: "res-0", BookingCode: "TAKEN"}
	reservationRepo.On("GetByBookingCode", mock.Anything, mock.AnythingOfType("string")).Return(taken, nil).Twice()
	reservationRepo.On("GetByBookingCode", mock.Anything, mock.AnythingOfType("string")).Return(nil, nil).Once()
	reservationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	reservation, err := service.Create(context.Background(), &dto.CreateReservationRequest{
		PackageID:      "pkg-1",
		ContactName:    "Reza Karimi",
		PassengerCount: 1,
	}, "user-1")

	require.NoError(t, err)
	assert.NotEmpty(t, reservation.BookingCode)
	reservationRepo.AssertExpectations(t)
}

func TestReservationService_Create_ExhaustsBookingCodeAttempts(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	packageRepo := new(MockPackageRepository)
	service := testReservationService(reservationRepo, packageRepo, new(MockPassengerRepository))

	packageRepo.On("GetByID", mock.Anything, "pkg-1").Return(visiblePackage(), nil)
	taken := &domain.Reservation{ID: "res-0"}
	reservationRepo.On("GetByBookingCode", mock.Anything, mock.AnythingOfType("string")).Return(taken, nil)

	reservation, err := service.Create(context.Background(), &dto.CreateReservationRequest{
		PackageID:      "pkg-1",
		ContactName:    "Reza Karimi",
		PassengerCount: 1,
	}, "user-1")

	assert.Nil(t, reservation)
	assert.Equal(t, errBookingCodeExhausted, err)
	reservationRepo.AssertNumberOfCalls(t, "GetByBookingCode", 5)
}

func TestReservationService_Create_HiddenPackage(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	packageRepo := new(MockPackageRepository)
	service := testReservationService(reservationRepo, packageRepo, new(MockPassengerRepository))

	hidden := visiblePackage()
	hidden.IsVisible = false
	packageRepo.On("GetByID", mock.Anything, "pkg-1").Return(hidden, nil)

	reservation, err := service.Create(context.Background(), &dto.CreateReservationRequest{
		PackageID:      "pkg-1",
		ContactName:    "Reza Karimi",
		PassengerCount: 1,
	}, "user-1")

	assert.Nil(t, reservation)
	assert.Equal(t, ErrPackageNotVisible, err)
}

func TestReservationService_Create_UnknownPackage(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	packageRepo := new(MockPackageRepository)
	service := testReservationService(reservationRepo, packageRepo, new(MockPassengerRepository))

	packageRepo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	reservation, err := service.Create(context.Background(), &dto.CreateReservationRequest{
		PackageID:      "missing",
		ContactName:    "Reza Karimi",
		PassengerCount: 1,
	}, "user-1")

	assert.Nil(t, reservation)
	assert.Equal(t, ErrPackageNotFound, err)
}

func TestReservationService_ChangeStatus(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	service := testReservationService(reservationRepo, new(MockPackageRepository), new(MockPassengerRepository))

	stored := &domain.Reservation{ID: "res-1", Status: domain.ReservationStatusPending}
	reservationRepo.On("GetByID", mock.Anything, "res-1").Return(stored, nil)
	reservationRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.Status == domain.ReservationStatusConfirmed
	})).Return(nil)

	updated, err := service.ChangeStatus(context.Background(), "res-1", "confirmed")

	require.NoError(t, err)
	assert.Equal(t, domain.ReservationStatusConfirmed, updated.Status)
	reservationRepo.AssertExpectations(t)
}

func TestReservationService_ChangeStatus_UnknownStatus(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	service := testReservationService(reservationRepo, new(MockPackageRepository), new(MockPassengerRepository))

	updated, err := service.ChangeStatus(context.Background(), "res-1", "archived")

	assert.Nil(t, updated)
	assert.Equal(t, ErrInvalidStatus, err)
	reservationRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestReservationService_Delete_BlockedByPassengers(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	passengerRepo := new(MockPassengerRepository)
	service := testReservationService(reservationRepo, new(MockPackageRepository), passengerRepo)

	stored := &domain.Reservation{ID: "res-1"}
	reservationRepo.On("GetByID", mock.Anything, "res-1").Return(stored, nil)
	passengerRepo.On("ListByReservation", mock.Anything, "res-1").Return([]*domain.Passenger{
		{ID: "pax-1"},
	}, nil)

	err := service.Delete(context.Background(), "res-1")

	assert.Equal(t, ErrReservationHasPax, err)
	reservationRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReservationService_Delete_Success(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	passengerRepo := new(MockPassengerRepository)
	service := testReservationService(reservationRepo, new(MockPackageRepository), passengerRepo)

	stored := &domain.Reservation{ID: "res-1"}
	reservationRepo.On("GetByID", mock.Anything, "res-1").Return(stored, nil)
	passengerRepo.On("ListByReservation", mock.Anything, "res-1").Return([]*domain.Passenger{}, nil)
	reservationRepo.On("Delete", mock.Anything, "res-1").Return(nil)

	err := service.Delete(context.Background(), "res-1")

	assert.NoError(t, err)
	reservationRepo.AssertExpectations(t)
}
