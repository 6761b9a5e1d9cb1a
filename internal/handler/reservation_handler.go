package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alixtron0/tour-backoffice/internal/domain"
	"github.com/alixtron0/tour-backoffice/internal/dto"
	"github.com/alixtron0/tour-backoffice/internal/listing"
	"github.com/alixtron0/tour-backoffice/internal/middleware"
	"github.com/alixtron0/tour-backoffice/internal/response"
	"github.com/alixtron0/tour-backoffice/internal/service"
)

// ReservationHandler handles reservation HTTP requests
type ReservationHandler struct {
	reservationService service.ReservationService
	passengerService   service.PassengerService
}

// NewReservationHandler creates a new ReservationHandler
func NewReservationHandler(
	reservationService service.ReservationService,
	passengerService service.PassengerService,
) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
		passengerService:   passengerService,
	}
}

var reservationSchema = listing.Schema[*domain.Reservation]{
	Searchable: []func(*domain.Reservation) string{
		func(r *domain.Reservation) string { return r.BookingCode },
		func(r *domain.Reservation) string { return r.ContactName },
		func(r *domain.Reservation) string { return r.PackageName },
	},
	Strings: map[string]func(*domain.Reservation) string{
		"status":     func(r *domain.Reservation) string { return string(r.Status) },
		"package_id": func(r *domain.Reservation) string { return r.PackageID },
	},
	Numbers: map[string]func(*domain.Reservation) float64{
		"passenger_count": func(r *domain.Reservation) float64 { return float64(r.PassengerCount) },
	},
	Times: map[string]func(*domain.Reservation) time.Time{
		"created_at": func(r *domain.Reservation) time.Time { return r.CreatedAt },
	},
}

// List handles GET /reservations
func (h *ReservationHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reservations, err := h.reservationService.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}

	params := listParams(&query, map[string]string{
		"status":     c.Query("status"),
		"package_id": c.Query("package_id"),
	})
	result := listing.Apply(reservations, params, reservationSchema)
	response.Paginated(c, result.Items, params.Page, params.PageSize, int64(result.Total))
}

// Get handles GET /reservations/:id
func (h *ReservationHandler) Get(c *gin.Context) {
	reservation, err := h.reservationService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			response.NotFound(c, "Reservation not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, reservation)
}

// Passengers handles GET /reservations/:id/passengers
func (h *ReservationHandler) Passengers(c *gin.Context) {
	reservation, err := h.reservationService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			response.NotFound(c, "Reservation not found")
			return
		}
		response.InternalError(c, err)
		return
	}

	passengers, err := h.passengerService.ListByReservation(c.Request.Context(), reservation.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"reservation": reservation, "passengers": passengers})
}

// Create handles POST /reservations
func (h *ReservationHandler) Create(c *gin.Context) {
	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	userID, _ := middleware.GetUserID(c)
	reservation, err := h.reservationService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPackageNotFound):
			response.BadRequest(c, "Package does not exist")
		case errors.Is(err, service.ErrPackageNotVisible):
			response.Conflict(c, "Package is not open for reservations")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, reservation)
}

// Update handles PUT /reservations/:id
func (h *ReservationHandler) Update(c *gin.Context) {
	var req dto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reservation, err := h.reservationService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			response.NotFound(c, "Reservation not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, reservation)
}

// ChangeStatus handles PUT /reservations/:id/status
func (h *ReservationHandler) ChangeStatus(c *gin.Context) {
	var req dto.ChangeReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reservation, err := h.reservationService.ChangeStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			response.NotFound(c, "Reservation not found")
		case errors.Is(err, service.ErrInvalidStatus):
			response.BadRequest(c, "Unknown reservation status")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c, reservation)
}

// Delete handles DELETE /reservations/:id
func (h *ReservationHandler) Delete(c *gin.Context) {
	if err := h.reservationService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			response.NotFound(c, "Reservation not found")
		case errors.Is(err, service.ErrReservationHasPax):
			response.Conflict(c, "Reservation still has passengers attached")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
