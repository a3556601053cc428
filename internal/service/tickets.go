package service

import (
	"context"
	"time"

	"ontix/internal/ledger"
	"ontix/internal/logger"
	"ontix/internal/messaging"
	"ontix/internal/models"
)

type TicketService struct {
	ledger     *ledger.Ledger
	natsClient *messaging.NATSClient
}

func NewTicketService(led *ledger.Ledger, natsClient *messaging.NATSClient) *TicketService {
	return &TicketService{ledger: led, natsClient: natsClient}
}

func (s *TicketService) Get(ctx context.Context, id int64) (*models.TicketResponse, error) {
	t, err := s.ledger.TicketByID(id)
	if err != nil {
		return nil, err
	}
	return &models.TicketResponse{
		ID:          t.ID,
		EventID:     t.EventID,
		Owner:       string(t.Owner),
		MetadataURI: t.MetadataURI,
		ExpiresAt:   t.ExpiresAt,
		Used:        t.Used,
		Resold:      t.Resold,
	}, nil
}

func (s *TicketService) Owner(ctx context.Context, id int64) (*models.OwnerResponse, error) {
	owner, err := s.ledger.OwnerOf(id)
	if err != nil {
		return nil, err
	}
	return &models.OwnerResponse{TicketID: id, Owner: string(owner)}, nil
}

// Transfer moves a batch of tickets directly between principals, outside
// the marketplace. One transfer notification is published per ticket.
func (s *TicketService) Transfer(ctx context.Context, caller ledger.Principal, req *models.TransferTicketsRequest) error {
	receipts, err := s.ledger.TransferTickets(ctx, caller, ledger.Principal(req.To), req.TicketIDs)
	if err != nil {
		return err
	}

	for _, r := range receipts {
		if err := s.natsClient.Publish(models.NoticeTicketTransferred, models.TicketTransferredNotice{
			TicketID:  r.TicketID,
			From:      string(r.From),
			To:        string(r.To),
			Timestamp: time.Now(),
		}); err != nil {
			logger.WithContext(ctx).Error("Failed to publish ticket transferred notice",
				"error", err, "ticket_id", r.TicketID)
		}
	}
	return nil
}

// Validate stamps a ticket used at venue check-in.
func (s *TicketService) Validate(ctx context.Context, caller ledger.Principal, ticketID int64) error {
	if err := s.ledger.ValidateTicket(ctx, caller, ticketID); err != nil {
		return err
	}

	if err := s.natsClient.Publish(models.NoticeTicketValidated, models.TicketValidatedNotice{
		TicketID:  ticketID,
		Owner:     string(caller),
		Timestamp: time.Now(),
	}); err != nil {
		logger.WithContext(ctx).Error("Failed to publish ticket validated notice",
			"error", err, "ticket_id", ticketID)
	}
	return nil
}
