package models

import "time"

// CreateEventRequest carries the full event definition for the primary sale.
// Amounts are integer minor units; MetadataURIs must hold exactly MaxTickets
// opaque locators, one per minted ticket.
type CreateEventRequest struct {
	Name         string    `json:"name" binding:"required"`
	Location     string    `json:"location" binding:"required"`
	SaleStart    time.Time `json:"sale_start" binding:"required"`
	SaleEnd      time.Time `json:"sale_end" binding:"required"`
	Price        int64     `json:"price"`
	MaxTickets   int64     `json:"max_tickets" binding:"required"`
	ResaleStart  time.Time `json:"resale_start" binding:"required"`
	ResaleEnd    time.Time `json:"resale_end" binding:"required"`
	PriceCap     int64     `json:"price_cap"`
	MetadataURIs []string  `json:"metadata_uris"`
}

type CreateEventResponse struct {
	ID int64 `json:"id"`
}

type ListEventsResponseItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	SaleStart   time.Time `json:"sale_start"`
	SaleEnd     time.Time `json:"sale_end"`
	Price       int64     `json:"price"`
	PriceCap    int64     `json:"price_cap"`
	MaxTickets  int64     `json:"max_tickets"`
	TicketsSold int64     `json:"tickets_sold"`
}

type ListEventsResponse []ListEventsResponseItem

// BuyTicketsRequest is an exact-payment purchase of the next unsold tickets.
type BuyTicketsRequest struct {
	Quantity int64 `json:"quantity" binding:"required"`
	Payment  int64 `json:"payment"`
}

type BuyTicketsResponse struct {
	TicketIDs []int64 `json:"ticket_ids"`
}

type TicketResponse struct {
	ID          int64     `json:"id"`
	EventID     int64     `json:"event_id"`
	Owner       string    `json:"owner"`
	MetadataURI string    `json:"metadata_uri"`
	ExpiresAt   time.Time `json:"expires_at"`
	Used        bool      `json:"used"`
	Resold      bool      `json:"resold"`
}

type OwnerResponse struct {
	TicketID int64  `json:"ticket_id"`
	Owner    string `json:"owner"`
}

type TransferTicketsRequest struct {
	To        string  `json:"to" binding:"required"`
	TicketIDs []int64 `json:"ticket_ids" binding:"required"`
}

type ListForResaleRequest struct {
	TicketID int64 `json:"ticket_id"`
	AskPrice int64 `json:"ask_price" binding:"required"`
}

type ListingResponse struct {
	TicketID int64  `json:"ticket_id"`
	Seller   string `json:"seller"`
	Price    int64  `json:"price"`
}

type BuyResaleTicketsRequest struct {
	TicketIDs []int64 `json:"ticket_ids" binding:"required"`
	Payment   int64   `json:"payment"`
}

type BuyResaleTicketsResponseItem struct {
	TicketID int64  `json:"ticket_id"`
	Seller   string `json:"seller"`
	Buyer    string `json:"buyer"`
	Price    int64  `json:"price"`
}

type BuyResaleTicketsResponse []BuyResaleTicketsResponseItem

type WithdrawResponse struct {
	EventID   int64  `json:"event_id"`
	Organizer string `json:"organizer"`
	Amount    int64  `json:"amount"`
}

type ProceedsResponse struct {
	EventID  int64 `json:"event_id"`
	Proceeds int64 `json:"proceeds"`
}

type TicketsSoldResponse struct {
	EventID     int64 `json:"event_id"`
	TicketsSold int64 `json:"tickets_sold"`
}
