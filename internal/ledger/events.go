package ledger

import (
	"context"
	"time"
)

// EventRegistry owns per-event configuration and the sequential event id
// space. It mints the event's full ticket supply through the TicketStore at
// creation time.
type EventRegistry struct {
	events  []*Event
	tickets *TicketStore
}

func NewEventRegistry(tickets *TicketStore) *EventRegistry {
	return &EventRegistry{tickets: tickets}
}

func (r *EventRegistry) eventByID(id int64) (*Event, error) {
	if id < 0 || id >= int64(len(r.events)) {
		return nil, ErrEventNotFound
	}
	return r.events[id], nil
}

// CreateEventParams carries the full event definition. MetadataURIs must
// have exactly MaxTickets entries, one opaque locator per minted ticket.
type CreateEventParams struct {
	Name         string
	Location     string
	SaleStart    time.Time
	SaleEnd      time.Time
	Price        int64
	MaxTickets   int64
	ResaleStart  time.Time
	ResaleEnd    time.Time
	PriceCap     int64
	MetadataURIs []string
}

// CreateEvent registers a new event and mints its ticket supply, owned by
// the unsold sentinel. Any caller may create an event; the caller becomes
// its organizer.
func (l *Ledger) CreateEvent(ctx context.Context, caller Principal, p CreateEventParams) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if p.SaleStart.After(p.SaleEnd) {
		return 0, ErrInvalidSaleWindow
	}
	if p.ResaleStart.After(p.ResaleEnd) {
		return 0, ErrInvalidResaleWindow
	}
	if p.PriceCap < p.Price {
		return 0, ErrPriceCapBelowFace
	}
	if int64(len(p.MetadataURIs)) != p.MaxTickets {
		return 0, ErrMetadataCountMismatch
	}
	if p.ResaleEnd.After(p.SaleStart) {
		return 0, ErrResaleOverlapsEvent
	}

	id := int64(len(l.registry.events))
	l.registry.events = append(l.registry.events, &Event{
		ID:          id,
		Name:        p.Name,
		Location:    p.Location,
		SaleStart:   p.SaleStart,
		SaleEnd:     p.SaleEnd,
		ResaleStart: p.ResaleStart,
		ResaleEnd:   p.ResaleEnd,
		Price:       p.Price,
		PriceCap:    p.PriceCap,
		MaxTickets:  p.MaxTickets,
		Organizer:   caller,
	})

	// Tickets expire the moment the event starts.
	l.tickets.mint(id, p.SaleStart, p.MetadataURIs)

	return id, nil
}

// BuyTickets sells the next quantity unsold tickets of an event to the
// caller at face price. Payment must match exactly; there is no change
// giving. Returns the ids assigned to the buyer.
func (l *Ledger) BuyTickets(ctx context.Context, caller Principal, eventID, quantity, payment int64) ([]int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ev, err := l.registry.eventByID(eventID)
	if err != nil {
		return nil, err
	}
	// Only the end of the sale window is enforced; the original system
	// allowed purchases as soon as the event existed.
	if l.now().After(ev.SaleEnd) {
		return nil, ErrSalesEnded
	}
	if quantity <= 0 || ev.TicketsSold+quantity > ev.MaxTickets {
		return nil, ErrSoldOut
	}
	if payment != quantity*ev.Price {
		return nil, ErrIncorrectPayment
	}

	ids := l.tickets.assignNextUnsold(eventID, ev.TicketsSold, quantity, caller)
	ev.TicketsSold += quantity
	l.treasury.credit(eventID, payment)

	return ids, nil
}
