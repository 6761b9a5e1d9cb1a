package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alixtron0/tour-backoffice/internal/domain"
	"github.com/alixtron0/tour-backoffice/internal/dto"
	"github.com/alixtron0/tour-backoffice/internal/listing"
	"github.com/alixtron0/tour-backoffice/internal/response"
	"github.com/alixtron0/tour-backoffice/internal/service"
	"github.com/alixtron0/tour-backoffice/internal/spreadsheet"
)

// AirlineHandler handles airline HTTP requests
type AirlineHandler struct {
	airlineService service.AirlineService
}

// NewAirlineHandler creates a new AirlineHandler
func NewAirlineHandler(airlineService service.AirlineService) *AirlineHandler {
	return &AirlineHandler{airlineService: airlineService}
}

var airlineSchema = listing.Schema[*domain.Airline]{
	Searchable: []func(*domain.Airline) string{
		func(a *domain.Airline) string { return a.Name },
		func(a *domain.Airline) string { return a.EnglishName },
		func(a *domain.Airline) string { return a.Code },
	},
	Bools: map[string]func(*domain.Airline) bool{
		"is_active": func(a *domain.Airline) bool { return a.IsActive },
	},
	Strings: map[string]func(*domain.Airline) string{
		"name":    func(a *domain.Airline) string { return a.Name },
		"code":    func(a *domain.Airline) string { return a.Code },
		"country": func(a *domain.Airline) string { return a.Country },
	},
	Times: map[string]func(*domain.Airline) time.Time{
		"created_at": func(a *domain.Airline) time.Time { return a.CreatedAt },
	},
}

// List handles GET /airlines
func (h *AirlineHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	airlines, err := h.airlineService.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}

	params := listParams(&query, map[string]string{"country": c.Query("country")})
	result := listing.Apply(airlines, params, airlineSchema)
	response.Paginated(c, result.Items, params.Page, params.PageSize, int64(result.Total))
}

// Get handles GET /airlines/:id
func (h *AirlineHandler) Get(c *gin.Context) {
	airline, err := h.airlineService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrAirlineNotFound) {
			response.NotFound(c, "Airline not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, airline)
}

// Create handles POST /airlines
func (h *AirlineHandler) Create(c *gin.Context) {
	var req dto.CreateAirlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	airline, err := h.airlineService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrAirlineCodeExists) {
			response.Conflict(c, "An airline with this code already exists")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, airline)
}

// Update handles PUT /airlines/:id
func (h *AirlineHandler) Update(c *gin.Context) {
	var req dto.UpdateAirlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	airline, err := h.airlineService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAirlineNotFound):
			response.NotFound(c, "Airline not found")
		case errors.Is(err, service.ErrAirlineCodeExists):
			response.Conflict(c, "An airline with this code already exists")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c, airline)
}

// Delete handles DELETE /airlines/:id
func (h *AirlineHandler) Delete(c *gin.Context) {
	err := h.airlineService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAirlineNotFound):
			response.NotFound(c, "Airline not found")
		case errors.Is(err, service.ErrAirlineInUse):
			response.Conflict(c, "Airline still has aircraft attached")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// Export handles GET /airlines/export
func (h *AirlineHandler) Export(c *gin.Context) {
	data, err := h.airlineService.Export(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}

	fileName := fmt.Sprintf("airlines-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Data(http.StatusOK, spreadsheet.MIMEXLSX, data)
}
