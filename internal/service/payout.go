package service

import (
	"context"
	"time"

	"ontix/internal/ledger"
	"ontix/internal/messaging"
	"ontix/internal/models"
)

// PayoutPublisher delivers outbound fund transfers as payout notifications.
// The ledger invokes it only after its bookkeeping has committed.
type PayoutPublisher struct {
	natsClient *messaging.NATSClient
}

func NewPayoutPublisher(natsClient *messaging.NATSClient) *PayoutPublisher {
	return &PayoutPublisher{natsClient: natsClient}
}

func (p *PayoutPublisher) Pay(ctx context.Context, to ledger.Principal, amount int64, memo string) error {
	return p.natsClient.Publish(models.NoticePayoutSent, models.PayoutSentNotice{
		To:        string(to),
		Amount:    amount,
		Memo:      memo,
		Timestamp: time.Now(),
	})
}
