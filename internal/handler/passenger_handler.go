package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alixtron0/tour-backoffice/internal/dto"
	"github.com/alixtron0/tour-backoffice/internal/response"
	"github.com/alixtron0/tour-backoffice/internal/service"
	"github.com/alixtron0/tour-backoffice/internal/spreadsheet"
)

// PassengerHandler handles passenger HTTP requests, including the
// spreadsheet export/import flows
type PassengerHandler struct {
	passengerService service.PassengerService
}

// NewPassengerHandler creates a new PassengerHandler
func NewPassengerHandler(passengerService service.PassengerService) *PassengerHandler {
	return &PassengerHandler{passengerService: passengerService}
}

// List handles GET /passengers. Search and pagination run server-side.
func (h *PassengerHandler) List(c *gin.Context) {
	var filter dto.PassengerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter.SetDefaults()

	passengers, total, err := h.passengerService.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paginated(c, passengers, filter.Page, filter.PageSize, total)
}

// Get handles GET /passengers/:id
func (h *PassengerHandler) Get(c *gin.Context) {
	passenger, err := h.passengerService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPassengerNotFound) {
			response.NotFound(c, "Passenger not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, passenger)
}

// Create handles POST /passengers
func (h *PassengerHandler) Create(c *gin.Context) {
	var req dto.CreatePassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	passenger, err := h.passengerService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			response.BadRequest(c, "Reservation does not exist")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, passenger)
}

// Update handles PUT /passengers/:id
func (h *PassengerHandler) Update(c *gin.Context) {
	var req dto.UpdatePassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	passenger, err := h.passengerService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrPassengerNotFound) {
			response.NotFound(c, "Passenger not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, passenger)
}

// Delete handles DELETE /passengers/:id
func (h *PassengerHandler) Delete(c *gin.Context) {
	if err := h.passengerService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrPassengerNotFound) {
			response.NotFound(c, "Passenger not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// Export handles GET /passengers/export. An optional reservation_id
// narrows the workbook to one reservation.
func (h *PassengerHandler) Export(c *gin.Context) {
	data, err := h.passengerService.Export(c.Request.Context(), c.Query("reservation_id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}

	fileName := fmt.Sprintf("passengers-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Data(http.StatusOK, spreadsheet.MIMEXLSX, data)
}

// Import handles POST /passengers/import. The workbook arrives as a
// multipart file field named "file".
func (h *PassengerHandler) Import(c *gin.Context) {
	reservationID := c.Query("reservation_id")
	if reservationID == "" {
		response.BadRequest(c, "reservation_id is required")
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "A workbook file is required")
		return
	}
	defer file.Close()

	passengers, err := h.passengerService.Import(c.Request.Context(), reservationID, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			response.BadRequest(c, "Reservation does not exist")
		case errors.Is(err, spreadsheet.ErrBadWorkbook):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, gin.H{"imported": len(passengers), "passengers": passengers})
}
