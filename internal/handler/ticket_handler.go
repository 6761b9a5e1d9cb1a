package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alixtron0/tour-backoffice/internal/dto"
	"github.com/alixtron0/tour-backoffice/internal/middleware"
	"github.com/alixtron0/tour-backoffice/internal/response"
	"github.com/alixtron0/tour-backoffice/internal/service"
	"github.com/alixtron0/tour-backoffice/internal/ticket"
)

// TicketHandler handles floating ticket HTTP requests
type TicketHandler struct {
	ticketService service.TicketService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(ticketService service.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// List handles GET /tickets
func (h *TicketHandler) List(c *gin.Context) {
	var filter dto.TicketListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter.SetDefaults()

	tickets, total, err := h.ticketService.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paginated(c, tickets, filter.Page, filter.PageSize, total)
}

// Get handles GET /tickets/:id
func (h *TicketHandler) Get(c *gin.Context) {
	t, err := h.ticketService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			response.NotFound(c, "Ticket not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, t)
}

// Create handles POST /tickets
func (h *TicketHandler) Create(c *gin.Context) {
	var req dto.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	userID, _ := middleware.GetUserID(c)
	t, err := h.ticketService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, t)
}

// Delete handles DELETE /tickets/:id
func (h *TicketHandler) Delete(c *gin.Context) {
	if err := h.ticketService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			response.NotFound(c, "Ticket not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// PDF handles GET /tickets/:id/pdf. The response is the rendered
// document, one page per passenger.
func (h *TicketHandler) PDF(c *gin.Context) {
	result, err := h.ticketService.GeneratePDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTicketNotFound):
			response.NotFound(c, "Ticket not found")
		case errors.Is(err, ticket.ErrInvalidRecord):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	h.servePDF(c, result)
}

// Preview handles POST /tickets/preview. It renders a PDF from the
// request body without creating a ticket.
func (h *TicketHandler) Preview(c *gin.Context) {
	var req dto.PreviewTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	result, err := h.ticketService.Preview(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ticket.ErrInvalidRecord) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	h.servePDF(c, result)
}

func (h *TicketHandler) servePDF(c *gin.Context, result *service.TicketPDF) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.FileName))
	c.Header("X-Page-Count", fmt.Sprintf("%d", result.Pages))
	c.Data(http.StatusOK, "application/pdf", result.Data)
}
