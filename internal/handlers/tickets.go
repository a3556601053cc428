package handlers

import (
	"net/http"

	"ontix/internal/middleware"
	"ontix/internal/models"

	"github.com/gin-gonic/gin"
)

// GetTicket - GET /api/tickets/:id
func (h *Handlers) GetTicket(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	response, err := h.services.Tickets.Get(c.Request.Context(), id)
	if err != nil {
		h.reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetTicketOwner - GET /api/tickets/:id/owner
func (h *Handlers) GetTicketOwner(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	response, err := h.services.Tickets.Owner(c.Request.Context(), id)
	if err != nil {
		h.reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// TransferTickets - POST /api/tickets/transfer
func (h *Handlers) TransferTickets(c *gin.Context) {
	var req models.TransferTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := middleware.MustPrincipal(c)
	if err := h.services.Tickets.Transfer(c.Request.Context(), caller, &req); err != nil {
		h.reject(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// ValidateTicket - POST /api/tickets/:id/validate
func (h *Handlers) ValidateTicket(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	caller := middleware.MustPrincipal(c)
	if err := h.services.Tickets.Validate(c.Request.Context(), caller, id); err != nil {
		h.reject(c, err)
		return
	}

	c.Status(http.StatusOK)
}
