package service

import (
	"context"
	"time"

	"ontix/internal/ledger"
	"ontix/internal/logger"
	"ontix/internal/messaging"
	"ontix/internal/models"
)

type ResaleService struct {
	ledger     *ledger.Ledger
	natsClient *messaging.NATSClient
}

func NewResaleService(led *ledger.Ledger, natsClient *messaging.NATSClient) *ResaleService {
	return &ResaleService{ledger: led, natsClient: natsClient}
}

// List creates or replaces the caller's resale listing for a ticket.
func (s *ResaleService) List(ctx context.Context, caller ledger.Principal, req *models.ListForResaleRequest) error {
	if err := s.ledger.ListForResale(ctx, caller, req.TicketID, req.AskPrice); err != nil {
		return err
	}

	if err := s.natsClient.Publish(models.NoticeTicketListed, models.TicketListedNotice{
		TicketID:  req.TicketID,
		Seller:    string(caller),
		Price:     req.AskPrice,
		Timestamp: time.Now(),
	}); err != nil {
		logger.WithContext(ctx).Error("Failed to publish ticket listed notice",
			"error", err, "ticket_id", req.TicketID)
	}
	return nil
}

// Listing returns the active listing for a ticket, if any.
func (s *ResaleService) Listing(ctx context.Context, ticketID int64) (*models.ListingResponse, bool, error) {
	lst, ok, err := s.ledger.ListingByTicket(ticketID)
	if err != nil || !ok {
		return nil, false, err
	}
	return &models.ListingResponse{
		TicketID: lst.TicketID,
		Seller:   string(lst.Seller),
		Price:    lst.Price,
	}, true, nil
}

// Buy purchases a whole batch of listed tickets atomically. One resale
// notification is published per ticket.
func (s *ResaleService) Buy(ctx context.Context, caller ledger.Principal, req *models.BuyResaleTicketsRequest) (models.BuyResaleTicketsResponse, error) {
	receipts, err := s.ledger.BuyResaleTickets(ctx, caller, req.TicketIDs, req.Payment)
	if err != nil {
		return nil, err
	}

	result := make(models.BuyResaleTicketsResponse, len(receipts))
	for i, r := range receipts {
		result[i] = models.BuyResaleTicketsResponseItem{
			TicketID: r.TicketID,
			Seller:   string(r.Seller),
			Buyer:    string(r.Buyer),
			Price:    r.Price,
		}

		if err := s.natsClient.Publish(models.NoticeTicketResold, models.TicketResoldNotice{
			TicketID:  r.TicketID,
			Seller:    string(r.Seller),
			Buyer:     string(r.Buyer),
			Price:     r.Price,
			Timestamp: time.Now(),
		}); err != nil {
			logger.WithContext(ctx).Error("Failed to publish ticket resold notice",
				"error", err, "ticket_id", r.TicketID)
		}
	}
	return result, nil
}
