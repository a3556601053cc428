package ledger

import (
	"context"
	"fmt"
)

// ResaleMarket owns the active listings, keyed by ticket id. A ticket can go
// through the list-then-sell cycle at most once in its lifetime.
type ResaleMarket struct {
	listings map[int64]*Listing
	tickets  *TicketStore
	registry *EventRegistry
}

func NewResaleMarket(tickets *TicketStore, registry *EventRegistry) *ResaleMarket {
	return &ResaleMarket{
		listings: make(map[int64]*Listing),
		tickets:  tickets,
		registry: registry,
	}
}

// ListForResale creates or replaces the caller's listing for a ticket. Only
// the current owner may list, only inside the event's resale window, only at
// or below the event's price cap, and never after the ticket's single resale
// has been spent.
func (l *Ledger) ListForResale(ctx context.Context, caller Principal, ticketID, askPrice int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, err := l.tickets.ticketByID(ticketID)
	if err != nil {
		return err
	}
	if t.Owner != caller {
		return ErrNotOwner
	}
	if t.Resold {
		return ErrAlreadyResold
	}
	if t.Used {
		return ErrAlreadyUsed
	}

	ev, err := l.registry.eventByID(t.EventID)
	if err != nil {
		return err
	}
	now := l.now()
	if now.Before(ev.ResaleStart) || now.After(ev.ResaleEnd) {
		return ErrResaleWindowClosed
	}
	if askPrice > ev.PriceCap {
		return ErrExceedsCap
	}

	l.market.listings[ticketID] = &Listing{
		TicketID: ticketID,
		Seller:   caller,
		Price:    askPrice,
	}
	return nil
}

// ResaleReceipt records one completed resale within a batch.
type ResaleReceipt struct {
	TicketID int64
	Seller   Principal
	Buyer    Principal
	Price    int64
}

// BuyResaleTickets purchases a batch of listed tickets. The supplied payment
// must equal the sum of the asking prices and every ticket must pass its
// checks, otherwise the whole batch is rejected untouched. Seller payouts go
// through the payment sink only after every transfer and flag update has
// been committed.
func (l *Ledger) BuyResaleTickets(ctx context.Context, caller Principal, ticketIDs []int64, payment int64) ([]ResaleReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	var total int64
	seen := make(map[int64]struct{}, len(ticketIDs))
	batch := make([]*Listing, 0, len(ticketIDs))
	for _, id := range ticketIDs {
		t, err := l.tickets.ticketByID(id)
		if err != nil {
			return nil, err
		}
		// The resold flag is authoritative and is checked before the
		// listing lookup. A repeat of the same id inside one batch is a
		// second resale of that ticket.
		if _, dup := seen[id]; dup || t.Resold {
			return nil, ErrAlreadyResold
		}
		seen[id] = struct{}{}
		if t.Used {
			return nil, ErrAlreadyUsed
		}
		lst, ok := l.market.listings[id]
		if !ok {
			return nil, ErrNotListed
		}
		if t.expired(now) {
			return nil, ErrTicketExpired
		}
		total += lst.Price
		batch = append(batch, lst)
	}
	if payment != total {
		return nil, ErrIncorrectTotalPayment
	}

	receipts := make([]ResaleReceipt, 0, len(batch))
	for _, lst := range batch {
		t := l.tickets.tickets[lst.TicketID]
		receipts = append(receipts, ResaleReceipt{
			TicketID: t.ID,
			Seller:   lst.Seller,
			Buyer:    caller,
			Price:    lst.Price,
		})
		t.Owner = caller
		t.Resold = true
		delete(l.market.listings, lst.TicketID)
	}

	// Funds out strictly after bookkeeping.
	for _, r := range receipts {
		l.pay(ctx, r.Seller, r.Price, fmt.Sprintf("resale of ticket %d", r.TicketID))
	}
	return receipts, nil
}
