package handlers

import (
	"net/http"

	"ontix/internal/middleware"
	"ontix/internal/models"

	"github.com/gin-gonic/gin"
)

// ListForResale - POST /api/resale/listings
func (h *Handlers) ListForResale(c *gin.Context) {
	var req models.ListForResaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := middleware.MustPrincipal(c)
	if err := h.services.Resale.List(c.Request.Context(), caller, &req); err != nil {
		h.reject(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

// GetListing - GET /api/resale/listings/:ticketId
func (h *Handlers) GetListing(c *gin.Context) {
	id, ok := pathID(c, "ticketId")
	if !ok {
		return
	}

	response, found, err := h.services.Resale.Listing(c.Request.Context(), id)
	if err != nil {
		h.reject(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not listed for resale", "reason": "NotListed"})
		return
	}
	c.JSON(http.StatusOK, response)
}

// BuyResaleTickets - POST /api/resale/purchase
func (h *Handlers) BuyResaleTickets(c *gin.Context) {
	var req models.BuyResaleTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := middleware.MustPrincipal(c)
	response, err := h.services.Resale.Buy(c.Request.Context(), caller, &req)
	if err != nil {
		h.reject(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
