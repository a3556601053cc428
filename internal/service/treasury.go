package service

import (
	"context"
	"time"

	"ontix/internal/ledger"
	"ontix/internal/logger"
	"ontix/internal/messaging"
	"ontix/internal/models"
)

type TreasuryService struct {
	ledger     *ledger.Ledger
	natsClient *messaging.NATSClient
}

func NewTreasuryService(led *ledger.Ledger, natsClient *messaging.NATSClient) *TreasuryService {
	return &TreasuryService{ledger: led, natsClient: natsClient}
}

// Withdraw drains an event's accumulated proceeds to its organizer.
func (s *TreasuryService) Withdraw(ctx context.Context, caller ledger.Principal, eventID int64) (*models.WithdrawResponse, error) {
	amount, err := s.ledger.WithdrawProceeds(ctx, caller, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.natsClient.Publish(models.NoticeProceedsWithdrawn, models.ProceedsWithdrawnNotice{
		EventID:   eventID,
		Organizer: string(caller),
		Amount:    amount,
		Timestamp: time.Now(),
	}); err != nil {
		logger.WithContext(ctx).Error("Failed to publish proceeds withdrawn notice",
			"error", err, "event_id", eventID)
	}

	return &models.WithdrawResponse{
		EventID:   eventID,
		Organizer: string(caller),
		Amount:    amount,
	}, nil
}

func (s *TreasuryService) Proceeds(ctx context.Context, eventID int64) (*models.ProceedsResponse, error) {
	proceeds, err := s.ledger.Proceeds(eventID)
	if err != nil {
		return nil, err
	}
	return &models.ProceedsResponse{EventID: eventID, Proceeds: proceeds}, nil
}

func (s *TreasuryService) Sold(ctx context.Context, eventID int64) (*models.TicketsSoldResponse, error) {
	sold, err := s.ledger.TicketsSold(eventID)
	if err != nil {
		return nil, err
	}
	return &models.TicketsSoldResponse{EventID: eventID, TicketsSold: sold}, nil
}
