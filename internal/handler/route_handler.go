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

// RouteHandler handles route HTTP requests
type RouteHandler struct {
	routeService service.RouteService
}

// NewRouteHandler creates a new RouteHandler
func NewRouteHandler(routeService service.RouteService) *RouteHandler {
	return &RouteHandler{routeService: routeService}
}

var routeSchema = listing.Schema[*domain.Route]{
	Searchable: []func(*domain.Route) string{
		func(r *domain.Route) string { return r.Origin },
		func(r *domain.Route) string { return r.Destination },
		func(r *domain.Route) string { return r.Description },
	},
	Bools: map[string]func(*domain.Route) bool{
		"is_active": func(r *domain.Route) bool { return r.IsActive },
	},
	Strings: map[string]func(*domain.Route) string{
		"origin":      func(r *domain.Route) string { return r.Origin },
		"destination": func(r *domain.Route) string { return r.Destination },
	},
	Times: map[string]func(*domain.Route) time.Time{
		"created_at": func(r *domain.Route) time.Time { return r.CreatedAt },
	},
}

// List handles GET /routes
func (h *RouteHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	routes, err := h.routeService.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}

	params := listParams(&query, nil)
	result := listing.Apply(routes, params, routeSchema)
	response.Paginated(c, result.Items, params.Page, params.PageSize, int64(result.Total))
}

// Get handles GET /routes/:id
func (h *RouteHandler) Get(c *gin.Context) {
	route, err := h.routeService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRouteNotFound) {
			response.NotFound(c, "Route not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, route)
}

// Create handles POST /routes
func (h *RouteHandler) Create(c *gin.Context) {
	var req dto.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	route, err := h.routeService.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCityNotFound):
			response.BadRequest(c, "Origin or destination city does not exist")
		case errors.Is(err, service.ErrSameCities):
			response.BadRequest(c, "Origin and destination must be different cities")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, route)
}

// Update handles PUT /routes/:id
func (h *RouteHandler) Update(c *gin.Context) {
	var req dto.UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	route, err := h.routeService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRouteNotFound):
			response.NotFound(c, "Route not found")
		case errors.Is(err, service.ErrCityNotFound):
			response.BadRequest(c, "Origin or destination city does not exist")
		case errors.Is(err, service.ErrSameCities):
			response.BadRequest(c, "Origin and destination must be different cities")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c, route)
}

// Delete handles DELETE /routes/:id
func (h *RouteHandler) Delete(c *gin.Context) {
	if err := h.routeService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrRouteNotFound):
			response.NotFound(c, "Route not found")
		case errors.Is(err, service.ErrRouteInUse):
			response.Conflict(c, "Route is still referenced by a package")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
