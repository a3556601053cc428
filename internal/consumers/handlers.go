package consumers

import (
	"context"
	"encoding/json"
	"log/slog"

	"ontix/internal/models"
	"ontix/internal/repository"

	"github.com/nats-io/stan.go"
)

// Handlers archive every ledger notification into Postgres. The archive is
// append-only history; failures are logged and the message acked to avoid
// poison-pill redelivery loops.
type Handlers struct {
	repos *repository.Repositories
}

func NewHandlers(repos *repository.Repositories) *Handlers {
	return &Handlers{repos: repos}
}

// HandleNotification stores any notification verbatim under its subject.
func (h *Handlers) HandleNotification(subject string) stan.MsgHandler {
	return func(msg *stan.Msg) {
		ctx := context.Background()

		if err := h.repos.Archive.RecordNotification(ctx, subject, msg.Data); err != nil {
			slog.Error("Failed to archive notification",
				"error", err, "subject", subject)
			msg.Ack()
			return
		}

		msg.Ack()
	}
}

// HandleTicketResold additionally lands resales in their own table so the
// single-resale rule can be cross-checked offline.
func (h *Handlers) HandleTicketResold(msg *stan.Msg) {
	ctx := context.Background()

	var notice models.TicketResoldNotice
	if err := json.Unmarshal(msg.Data, &notice); err != nil {
		slog.Error("Failed to unmarshal ticket resold notice", "error", err)
		msg.Ack()
		return
	}

	if err := h.repos.Archive.RecordNotification(ctx, models.NoticeTicketResold, msg.Data); err != nil {
		slog.Error("Failed to archive notification",
			"error", err, "subject", models.NoticeTicketResold)
	}

	if err := h.repos.Archive.RecordResale(ctx, notice.TicketID, notice.Seller, notice.Buyer, notice.Price, notice.Timestamp); err != nil {
		slog.Error("Failed to archive resale",
			"error", err, "ticket_id", notice.TicketID)
		msg.Ack()
		return
	}

	count, err := h.repos.Archive.ResaleCount(ctx, notice.TicketID)
	if err == nil && count > 1 {
		slog.Error("Ticket archived with more than one resale",
			"ticket_id", notice.TicketID, "count", count)
	}

	msg.Ack()
}

// HandlePayoutSent lands outbound fund transfers in the payouts table.
func (h *Handlers) HandlePayoutSent(msg *stan.Msg) {
	ctx := context.Background()

	var notice models.PayoutSentNotice
	if err := json.Unmarshal(msg.Data, &notice); err != nil {
		slog.Error("Failed to unmarshal payout notice", "error", err)
		msg.Ack()
		return
	}

	if err := h.repos.Archive.RecordNotification(ctx, models.NoticePayoutSent, msg.Data); err != nil {
		slog.Error("Failed to archive notification",
			"error", err, "subject", models.NoticePayoutSent)
	}

	if err := h.repos.Archive.RecordPayout(ctx, notice.To, notice.Amount, notice.Memo, notice.Timestamp); err != nil {
		slog.Error("Failed to archive payout", "error", err, "to", notice.To)
	}

	msg.Ack()
}
