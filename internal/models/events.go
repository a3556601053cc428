package models

import "time"

// NATS notification subjects, one per logical occurrence.
const (
	NoticeEventCreated      = "event.created"
	NoticeTicketPurchased   = "ticket.purchased"
	NoticeTicketListed      = "ticket.listed"
	NoticeTicketResold      = "ticket.resold"
	NoticeTicketTransferred = "ticket.transferred"
	NoticeTicketValidated   = "ticket.validated"
	NoticeProceedsWithdrawn = "event.proceeds_withdrawn"
	NoticePayoutSent        = "payout.sent"
)

// EventCreatedNotice is published once per created event.
type EventCreatedNotice struct {
	EventID   int64     `json:"event_id"`
	Organizer string    `json:"organizer"`
	Timestamp time.Time `json:"timestamp"`
}

// TicketPurchasedNotice is published once per ticket of a primary purchase.
type TicketPurchasedNotice struct {
	TicketID  int64     `json:"ticket_id"`
	EventID   int64     `json:"event_id"`
	Buyer     string    `json:"buyer"`
	Timestamp time.Time `json:"timestamp"`
}

// TicketListedNotice is published when a ticket is listed for resale.
type TicketListedNotice struct {
	TicketID  int64     `json:"ticket_id"`
	Seller    string    `json:"seller"`
	Price     int64     `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// TicketResoldNotice is published once per ticket of a resale batch.
type TicketResoldNotice struct {
	TicketID  int64     `json:"ticket_id"`
	Seller    string    `json:"seller"`
	Buyer     string    `json:"buyer"`
	Price     int64     `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// TicketTransferredNotice is published once per ticket of a direct transfer.
type TicketTransferredNotice struct {
	TicketID  int64     `json:"ticket_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

// TicketValidatedNotice is published when a ticket is stamped used.
type TicketValidatedNotice struct {
	TicketID  int64     `json:"ticket_id"`
	Owner     string    `json:"owner"`
	Timestamp time.Time `json:"timestamp"`
}

// ProceedsWithdrawnNotice is published when an organizer drains an event
// balance.
type ProceedsWithdrawnNotice struct {
	EventID   int64     `json:"event_id"`
	Organizer string    `json:"organizer"`
	Amount    int64     `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// PayoutSentNotice records an outbound fund transfer made by the payment
// sink after bookkeeping committed.
type PayoutSentNotice struct {
	To        string    `json:"to"`
	Amount    int64     `json:"amount"`
	Memo      string    `json:"memo"`
	Timestamp time.Time `json:"timestamp"`
}
