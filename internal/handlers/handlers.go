package handlers

import (
	"errors"
	"net/http"

	"ontix/internal/cache"
	"ontix/internal/ledger"
	"ontix/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services     *service.Services
	valkeyClient *cache.ValkeyClient
}

func NewHandlers(services *service.Services, valkeyClient *cache.ValkeyClient) *Handlers {
	return &Handlers{
		services:     services,
		valkeyClient: valkeyClient,
	}
}

// reject maps a ledger rejection to an HTTP response carrying the stable
// reason code. Unknown errors become a 500.
func (h *Handlers) reject(c *gin.Context, err error) {
	reason := ledger.Reason(err)
	if reason == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(statusFor(err), gin.H{"error": err.Error(), "reason": reason})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrEventNotFound),
		errors.Is(err, ledger.ErrTicketNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrNotOwner),
		errors.Is(err, ledger.ErrNotOrganizer):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrIncorrectPayment),
		errors.Is(err, ledger.ErrIncorrectTotalPayment),
		errors.Is(err, ledger.ErrNoFundsAvailable):
		return http.StatusPaymentRequired
	case errors.Is(err, ledger.ErrInvalidSaleWindow),
		errors.Is(err, ledger.ErrInvalidResaleWindow),
		errors.Is(err, ledger.ErrPriceCapBelowFace),
		errors.Is(err, ledger.ErrMetadataCountMismatch),
		errors.Is(err, ledger.ErrResaleOverlapsEvent),
		errors.Is(err, ledger.ErrExceedsCap):
		return http.StatusBadRequest
	default:
		// SalesEnded, SoldOut, AlreadyResold, AlreadyUsed, TicketExpired,
		// ResaleWindowClosed, NotListed: the request conflicts with the
		// current lifecycle state.
		return http.StatusConflict
	}
}
