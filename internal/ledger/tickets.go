package ledger

import (
	"context"
	"time"
)

// TicketStore owns every ticket record in a dense, globally sequential
// arena. Tickets of one event occupy a contiguous id range starting at the
// event's first minted id.
type TicketStore struct {
	tickets []*Ticket

	// firstID maps an event to the id of its first minted ticket.
	firstID map[int64]int64
}

func NewTicketStore() *TicketStore {
	return &TicketStore{firstID: make(map[int64]int64)}
}

func (s *TicketStore) ticketByID(id int64) (*Ticket, error) {
	if id < 0 || id >= int64(len(s.tickets)) {
		return nil, ErrTicketNotFound
	}
	return s.tickets[id], nil
}

// mint allocates one ticket per metadata URI for an event, owned by the
// unsold sentinel and expiring at the event start.
func (s *TicketStore) mint(eventID int64, expiresAt time.Time, metadataURIs []string) {
	s.firstID[eventID] = int64(len(s.tickets))
	for _, uri := range metadataURIs {
		s.tickets = append(s.tickets, &Ticket{
			ID:          int64(len(s.tickets)),
			EventID:     eventID,
			Owner:       Nobody,
			MetadataURI: uri,
			ExpiresAt:   expiresAt,
		})
	}
}

// assignNextUnsold hands the next quantity unsold tickets of an event to the
// buyer and returns their ids. The caller has already checked supply.
func (s *TicketStore) assignNextUnsold(eventID, sold, quantity int64, buyer Principal) []int64 {
	base := s.firstID[eventID] + sold
	ids := make([]int64, 0, quantity)
	for i := int64(0); i < quantity; i++ {
		t := s.tickets[base+i]
		t.Owner = buyer
		ids = append(ids, t.ID)
	}
	return ids
}

// expired reports whether the ticket's event has already started at now.
func (t *Ticket) expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// TransferReceipt records one completed direct transfer.
type TransferReceipt struct {
	TicketID int64
	From     Principal
	To       Principal
}

// TransferTickets reassigns ownership of the whole batch from the caller to
// another principal, outside the marketplace. The batch is all-or-nothing:
// every ticket is checked before the first one moves.
func (l *Ledger) TransferTickets(ctx context.Context, caller, to Principal, ticketIDs []int64) ([]TransferReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	seen := make(map[int64]struct{}, len(ticketIDs))
	batch := make([]*Ticket, 0, len(ticketIDs))
	for _, id := range ticketIDs {
		t, err := l.tickets.ticketByID(id)
		if err != nil {
			return nil, err
		}
		// A repeated id would move the same ticket twice; after the first
		// move the caller no longer owns it.
		if _, dup := seen[id]; dup {
			return nil, ErrNotOwner
		}
		seen[id] = struct{}{}
		if t.Owner != caller {
			return nil, ErrNotOwner
		}
		if t.Resold {
			return nil, ErrAlreadyResold
		}
		if t.Used {
			return nil, ErrAlreadyUsed
		}
		if t.expired(now) {
			return nil, ErrTicketExpired
		}
		batch = append(batch, t)
	}

	receipts := make([]TransferReceipt, 0, len(batch))
	for _, t := range batch {
		receipts = append(receipts, TransferReceipt{TicketID: t.ID, From: t.Owner, To: to})
		t.Owner = to
	}
	return receipts, nil
}

// ValidateTicket stamps a ticket used at venue check-in. One-way and
// irreversible; a used ticket can never move or be listed again.
func (l *Ledger) ValidateTicket(ctx context.Context, caller Principal, ticketID int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, err := l.tickets.ticketByID(ticketID)
	if err != nil {
		return err
	}
	if t.Owner != caller {
		return ErrNotOwner
	}
	if t.Used {
		return ErrAlreadyUsed
	}
	if t.expired(l.now()) {
		return ErrTicketExpired
	}

	t.Used = true
	delete(l.market.listings, t.ID)
	return nil
}
