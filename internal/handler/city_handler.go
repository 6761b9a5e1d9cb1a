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

// CityHandler handles city HTTP requests
type CityHandler struct {
	cityService service.CityService
}

// NewCityHandler creates a new CityHandler
func NewCityHandler(cityService service.CityService) *CityHandler {
	return &CityHandler{cityService: cityService}
}

var citySchema = listing.Schema[*domain.City]{
	Searchable: []func(*domain.City) string{
		func(ct *domain.City) string { return ct.Name },
		func(ct *domain.City) string { return ct.EnglishName },
		func(ct *domain.City) string { return ct.Code },
	},
	Bools: map[string]func(*domain.City) bool{
		"is_active": func(ct *domain.City) bool { return ct.IsActive },
	},
	Strings: map[string]func(*domain.City) string{
		"name":    func(ct *domain.City) string { return ct.Name },
		"country": func(ct *domain.City) string { return ct.Country },
		"code":    func(ct *domain.City) string { return ct.Code },
	},
	Times: map[string]func(*domain.City) time.Time{
		"created_at": func(ct *domain.City) time.Time { return ct.CreatedAt },
	},
}

// List handles GET /cities
func (h *CityHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cities, err := h.cityService.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}

	params := listParams(&query, map[string]string{"country": c.Query("country")})
	result := listing.Apply(cities, params, citySchema)
	response.Paginated(c, result.Items, params.Page, params.PageSize, int64(result.Total))
}

// Get handles GET /cities/:id
func (h *CityHandler) Get(c *gin.Context) {
	city, err := h.cityService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCityNotFound) {
			response.NotFound(c, "City not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, city)
}

// Create handles POST /cities
func (h *CityHandler) Create(c *gin.Context) {
	var req dto.CreateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	city, err := h.cityService.Create(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, city)
}

// Update handles PUT /cities/:id
func (h *CityHandler) Update(c *gin.Context) {
	var req dto.UpdateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	city, err := h.cityService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrCityNotFound) {
			response.NotFound(c, "City not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, city)
}

// Delete handles DELETE /cities/:id
func (h *CityHandler) Delete(c *gin.Context) {
	if err := h.cityService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrCityNotFound):
			response.NotFound(c, "City not found")
		case errors.Is(err, service.ErrCityInUse):
			response.Conflict(c, "City is still referenced by a route")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
