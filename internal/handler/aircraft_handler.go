package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alixtron0/tour-backoffice/internal/domain"
	"github.com/alixtron0/tour-backoffice/internal/dto"
	"github.com/alixtron0/tour-backoffice/internal/listing"
	"github.com/alixtron0/tour-backoffice/internal/response"
	"github.com/alixtron0/tour-backoffice/internal/service"
)

// AircraftHandler handles aircraft HTTP requests
type AircraftHandler struct {
	aircraftService service.AircraftService
}

// NewAircraftHandler creates a new AircraftHandler
func NewAircraftHandler(aircraftService service.AircraftService) *AircraftHandler {
	return &AircraftHandler{aircraftService: aircraftService}
}

var aircraftSchema = listing.Schema[*domain.Aircraft]{
	Searchable: []func(*domain.Aircraft) string{
		func(a *domain.Aircraft) string { return a.Model },
		func(a *domain.Aircraft) string { return a.Manufacturer },
		func(a *domain.Aircraft) string { return a.AirlineName },
	},
	Bools: map[string]func(*domain.Aircraft) bool{
		"is_active": func(a *domain.Aircraft) bool { return a.IsActive },
	},
	Strings: map[string]func(*domain.Aircraft) string{
		"model":        func(a *domain.Aircraft) string { return a.Model },
		"manufacturer": func(a *domain.Aircraft) string { return a.Manufacturer },
		"airline_id":   func(a *domain.Aircraft) string { return a.AirlineID },
	},
	Numbers: map[string]func(*domain.Aircraft) float64{
		"capacity": func(a *domain.Aircraft) float64 { return float64(a.Capacity()) },
		"range_km": func(a *domain.Aircraft) float64 { return float64(a.RangeKM) },
	},
	Times: map[string]func(*domain.Aircraft) time.Time{
		"created_at": func(a *domain.Aircraft) time.Time { return a.CreatedAt },
	},
}

// List handles GET /aircraft
func (h *AircraftHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	aircraft, err := h.aircraftService.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}

	params := listParams(&query, map[string]string{"airline_id": c.Query("airline_id")})
	result := listing.Apply(aircraft, params, aircraftSchema)
	response.Paginated(c, result.Items, params.Page, params.PageSize, int64(result.Total))
}

// Get handles GET /aircraft/:id
func (h *AircraftHandler) Get(c *gin.Context) {
	aircraft, err := h.aircraftService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrAircraftNotFound) {
			response.NotFound(c, "Aircraft not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, aircraft)
}

// Create handles POST /aircraft
func (h *AircraftHandler) Create(c *gin.Context) {
	var req dto.CreateAircraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	aircraft, err := h.aircraftService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrAirlineNotFound) {
			response.BadRequest(c, "Airline does not exist")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, aircraft)
}

// Update handles PUT /aircraft/:id
func (h *AircraftHandler) Update(c *gin.Context) {
	var req dto.UpdateAircraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	aircraft, err := h.aircraftService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAircraftNotFound):
			response.NotFound(c, "Aircraft not found")
		case errors.Is(err, service.ErrAirlineNotFound):
			response.BadRequest(c, "Airline does not exist")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c, aircraft)
}

// Delete handles DELETE /aircraft/:id
func (h *AircraftHandler) Delete(c *gin.Context) {
	if err := h.aircraftService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrAircraftNotFound) {
			response.NotFound(c, "Aircraft not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
