package ledger

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Principal is an already-authenticated caller identity. Authentication
// itself happens upstream; the ledger only compares principals.
type Principal string

// Nobody is the owner of minted but unsold tickets.
const Nobody Principal = ""

// PaymentSink receives outbound fund transfers (seller payouts, organizer
// withdrawals). It is invoked strictly after all internal bookkeeping has
// been committed, so a misbehaving sink can never observe or re-enter
// pre-update state.
type PaymentSink interface {
	Pay(ctx context.Context, to Principal, amount int64, memo string) error
}

// Event is an organizer-defined happening with a fixed ticket supply.
// Immutable after creation except for the sold counter.
type Event struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	SaleStart   time.Time `json:"sale_start"`
	SaleEnd     time.Time `json:"sale_end"`
	ResaleStart time.Time `json:"resale_start"`
	ResaleEnd   time.Time `json:"resale_end"`
	Price       int64     `json:"price"`
	PriceCap    int64     `json:"price_cap"`
	MaxTickets  int64     `json:"max_tickets"`
	TicketsSold int64     `json:"tickets_sold"`
	Organizer   Principal `json:"organizer"`
}

// Ticket is a uniquely identified, ownable unit bound to one event. IDs are
// global, sequential and contiguous per event. A ticket expires the moment
// its event starts. Used and Resold are one-way flags.
type Ticket struct {
	ID          int64     `json:"id"`
	EventID     int64     `json:"event_id"`
	Owner       Principal `json:"owner"`
	MetadataURI string    `json:"metadata_uri"`
	ExpiresAt   time.Time `json:"expires_at"`
	Used        bool      `json:"used"`
	Resold      bool      `json:"resold"`
}

// Listing is a seller's standing offer for one ticket, valid only inside the
// event's resale window and at or below the price cap.
type Listing struct {
	TicketID int64     `json:"ticket_id"`
	Seller   Principal `json:"seller"`
	Price    int64     `json:"price"`
}

// Ledger composes the event registry, ticket store, resale market and
// treasury behind a single mutex. Every public operation runs one at a time
// and either commits in full or leaves all state untouched: preconditions for
// the whole call, batches included, are checked before the first write.
type Ledger struct {
	mu sync.Mutex

	registry *EventRegistry
	tickets  *TicketStore
	market   *ResaleMarket
	treasury *Treasury

	now  func() time.Time
	sink PaymentSink
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source. Tests use this to move through sale
// and resale windows.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithPaymentSink sets the outbound payment collaborator.
func WithPaymentSink(sink PaymentSink) Option {
	return func(l *Ledger) { l.sink = sink }
}

func New(opts ...Option) *Ledger {
	tickets := NewTicketStore()
	registry := NewEventRegistry(tickets)

	l := &Ledger{
		registry: registry,
		tickets:  tickets,
		market:   NewResaleMarket(tickets, registry),
		treasury: NewTreasury(registry),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// pay routes an outbound transfer through the sink, after bookkeeping.
// Delivery is best effort: the funds have already been accounted for, so a
// sink failure is logged rather than unwinding the committed operation.
func (l *Ledger) pay(ctx context.Context, to Principal, amount int64, memo string) {
	if l.sink == nil {
		return
	}
	if err := l.sink.Pay(ctx, to, amount, memo); err != nil {
		slog.Error("Outbound payment delivery failed",
			"error", err,
			"to", string(to),
			"amount", amount,
			"memo", memo)
	}
}

// Read-only queries. All return copies; callers cannot mutate ledger state
// through them.

func (l *Ledger) EventByID(id int64) (Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ev, err := l.registry.eventByID(id)
	if err != nil {
		return Event{}, err
	}
	return *ev, nil
}

func (l *Ledger) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Event, len(l.registry.events))
	for i, ev := range l.registry.events {
		out[i] = *ev
	}
	return out
}

// NextEventID reports the id the next created event will receive.
func (l *Ledger) NextEventID() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return int64(len(l.registry.events))
}

func (l *Ledger) TicketByID(id int64) (Ticket, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, err := l.tickets.ticketByID(id)
	if err != nil {
		return Ticket{}, err
	}
	return *t, nil
}

func (l *Ledger) OwnerOf(ticketID int64) (Principal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, err := l.tickets.ticketByID(ticketID)
	if err != nil {
		return Nobody, err
	}
	return t.Owner, nil
}

// ListingByTicket returns the active listing for a ticket, if any.
func (l *Ledger) ListingByTicket(ticketID int64) (Listing, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.tickets.ticketByID(ticketID); err != nil {
		return Listing{}, false, err
	}
	lst, ok := l.market.listings[ticketID]
	if !ok {
		return Listing{}, false, nil
	}
	return *lst, true, nil
}

func (l *Ledger) Proceeds(eventID int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.registry.eventByID(eventID); err != nil {
		return 0, err
	}
	return l.treasury.balances[eventID], nil
}

func (l *Ledger) TicketsSold(eventID int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ev, err := l.registry.eventByID(eventID)
	if err != nil {
		return 0, err
	}
	return ev.TicketsSold, nil
}
