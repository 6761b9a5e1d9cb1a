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

// PackageHandler handles travel package HTTP requests
type PackageHandler struct {
	packageService service.PackageService
}

// NewPackageHandler creates a new PackageHandler
func NewPackageHandler(packageService service.PackageService) *PackageHandler {
	return &PackageHandler{packageService: packageService}
}

var packageSchema = listing.Schema[*domain.Package]{
	Searchable: []func(*domain.Package) string{
		func(p *domain.Package) string { return p.Name },
	},
	Bools: map[string]func(*domain.Package) bool{
		"is_active":  func(p *domain.Package) bool { return p.IsActive },
		"is_visible": func(p *domain.Package) bool { return p.IsVisible },
	},
	Strings: map[string]func(*domain.Package) string{
		"name":     func(p *domain.Package) string { return p.Name },
		"route_id": func(p *domain.Package) string { return p.RouteID },
	},
	Numbers: map[string]func(*domain.Package) float64{
		"base_price":  func(p *domain.Package) float64 { return p.BasePrice },
		"total_price": func(p *domain.Package) float64 { return p.TotalPrice() },
	},
	Times: map[string]func(*domain.Package) time.Time{
		"start_date": func(p *domain.Package) time.Time { return p.StartDate },
		"end_date":   func(p *domain.Package) time.Time { return p.EndDate },
		"created_at": func(p *domain.Package) time.Time { return p.CreatedAt },
	},
}

// List handles GET /packages
func (h *PackageHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	packages, err := h.packageService.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}

	params := listParams(&query, map[string]string{"route_id": c.Query("route_id")})
	if visible := c.Query("is_visible"); visible != "" {
		v := visible == "true"
		params.Bools["is_visible"] = &v
	}
	result := listing.Apply(packages, params, packageSchema)
	response.Paginated(c, result.Items, params.Page, params.PageSize, int64(result.Total))
}

// Get handles GET /packages/:id
func (h *PackageHandler) Get(c *gin.Context) {
	pkg, err := h.packageService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			response.NotFound(c, "Package not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, pkg)
}

// Create handles POST /packages
func (h *PackageHandler) Create(c *gin.Context) {
	var req dto.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	userID, _ := middleware.GetUserID(c)
	pkg, err := h.packageService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRouteNotFound):
			response.BadRequest(c, "Route does not exist")
		case errors.Is(err, service.ErrAirlineNotFound):
			response.BadRequest(c, "Air leg references an unknown airline")
		case errors.Is(err, service.ErrInvalidDates):
			response.BadRequest(c, "End date must be after start date")
		case errors.Is(err, service.ErrInvalidLeg):
			response.BadRequest(c, "Invalid transport leg")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, pkg)
}

// Update handles PUT /packages/:id
func (h *PackageHandler) Update(c *gin.Context) {
	var req dto.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pkg, err := h.packageService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPackageNotFound):
			response.NotFound(c, "Package not found")
		case errors.Is(err, service.ErrRouteNotFound):
			response.BadRequest(c, "Route does not exist")
		case errors.Is(err, service.ErrAirlineNotFound):
			response.BadRequest(c, "Air leg references an unknown airline")
		case errors.Is(err, service.ErrInvalidDates):
			response.BadRequest(c, "End date must be after start date")
		case errors.Is(err, service.ErrInvalidLeg):
			response.BadRequest(c, "Invalid transport leg")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c, pkg)
}

// Delete handles DELETE /packages/:id
func (h *PackageHandler) Delete(c *gin.Context) {
	if err := h.packageService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrPackageNotFound):
			response.NotFound(c, "Package not found")
		case errors.Is(err, service.ErrPackageInUse):
			response.Conflict(c, "Package still has reservations attached")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
