package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"ontix/internal/middleware"
	"ontix/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateEvent - POST /api/events
func (h *Handlers) CreateEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := middleware.MustPrincipal(c)
	response, err := h.services.Events.Create(c.Request.Context(), caller, &req)
	if err != nil {
		h.reject(c, err)
		return
	}

	if h.valkeyClient != nil {
		h.valkeyClient.InvalidateEventsList(c.Request.Context())
	}

	c.JSON(http.StatusCreated, response)
}

// ListEvents - GET /api/events
func (h *Handlers) ListEvents(c *gin.Context) {
	query := c.Query("query")

	// Only the unfiltered listing is cached.
	if query == "" && h.valkeyClient != nil {
		rawJSON, err := h.valkeyClient.GetEventsListRaw(c.Request.Context())
		if err == nil {
			c.Data(http.StatusOK, "application/json", rawJSON)
			return
		}
	}

	response, err := h.services.Events.List(c.Request.Context(), query)
	if err != nil {
		slog.Error("Failed to list events", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list events"})
		return
	}

	if query == "" && h.valkeyClient != nil {
		if err := h.valkeyClient.SetEventsList(c.Request.Context(), response); err != nil {
			slog.Warn("Failed to cache events list", "error", err)
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetEvent - GET /api/events/:id
func (h *Handlers) GetEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ev, err := h.services.Events.Get(c.Request.Context(), id)
	if err != nil {
		h.reject(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

// BuyTickets - POST /api/events/:id/purchase
func (h *Handlers) BuyTickets(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.BuyTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := middleware.MustPrincipal(c)
	response, err := h.services.Events.Buy(c.Request.Context(), caller, id, &req)
	if err != nil {
		h.reject(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// WithdrawProceeds - POST /api/events/:id/withdraw
func (h *Handlers) WithdrawProceeds(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	caller := middleware.MustPrincipal(c)
	response, err := h.services.Treasury.Withdraw(c.Request.Context(), caller, id)
	if err != nil {
		h.reject(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetProceeds - GET /api/events/:id/proceeds
func (h *Handlers) GetProceeds(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	response, err := h.services.Treasury.Proceeds(c.Request.Context(), id)
	if err != nil {
		h.reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetTicketsSold - GET /api/events/:id/sold
func (h *Handlers) GetTicketsSold(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	response, err := h.services.Treasury.Sold(c.Request.Context(), id)
	if err != nil {
		h.reject(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// pathID parses a numeric path parameter, replying 400 on garbage.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
