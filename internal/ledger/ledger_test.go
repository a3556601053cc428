package ledger

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	organizer = Principal("organizer")
	alice     = Principal("alice")
	bob       = Principal("bob")

	facePrice = int64(100)
	priceCap  = int64(200)
	supply    = int64(12)
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type payout struct {
	To     Principal
	Amount int64
	Memo   string
}

type recordingSink struct {
	mu      sync.Mutex
	payouts []payout
}

func (s *recordingSink) Pay(_ context.Context, to Principal, amount int64, memo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payouts = append(s.payouts, payout{To: to, Amount: amount, Memo: memo})
	return nil
}

func (s *recordingSink) all() []payout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]payout(nil), s.payouts...)
}

type fixture struct {
	ledger *Ledger
	clock  *fakeClock
	sink   *recordingSink
	now    time.Time
}

func uris(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("ipfs://uri%d", i+1)
	}
	return out
}

// newFixture creates a ledger with one event: sale window [now+2d, now+3d],
// resale window [now, now+1d], face price 100, cap 200, 12 tickets.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: now}
	sink := &recordingSink{}
	l := New(WithClock(clock.Now), WithPaymentSink(sink))

	id, err := l.CreateEvent(context.Background(), organizer, CreateEventParams{
		Name:         "Concert",
		Location:     "Jakarta",
		SaleStart:    now.Add(2 * 24 * time.Hour),
		SaleEnd:      now.Add(3 * 24 * time.Hour),
		Price:        facePrice,
		MaxTickets:   supply,
		ResaleStart:  now,
		ResaleEnd:    now.Add(24 * time.Hour),
		PriceCap:     priceCap,
		MetadataURIs: uris(int(supply)),
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), id)

	return &fixture{ledger: l, clock: clock, sink: sink, now: now}
}

func (f *fixture) buy(t *testing.T, who Principal, qty int64) []int64 {
	t.Helper()
	ids, err := f.ledger.BuyTickets(context.Background(), who, 0, qty, qty*facePrice)
	require.NoError(t, err)
	return ids
}

// afterEventStart moves the clock past the event start so every ticket is
// expired and the sale period is over.
func (f *fixture) afterEventStart() {
	f.clock.Set(f.now.Add(4 * 24 * time.Hour))
}

func TestSoldNeverExceedsSupply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.buy(t, alice, 5)
	f.buy(t, bob, 5)

	_, err := f.ledger.BuyTickets(ctx, alice, 0, 3, 3*facePrice)
	require.ErrorIs(t, err, ErrSoldOut)

	f.buy(t, alice, 2)

	_, err = f.ledger.BuyTickets(ctx, bob, 0, 1, facePrice)
	require.ErrorIs(t, err, ErrSoldOut)

	sold, err := f.ledger.TicketsSold(0)
	require.NoError(t, err)
	require.Equal(t, supply, sold)
}

func TestScenarioPrimarySale(t *testing.T) {
	// price=1, cap=2, maxTickets=12 scaled to minor units: a purchase of two
	// tickets with exact payment credits the event's proceeds in full.
	f := newFixture(t)

	ids := f.buy(t, alice, 2)
	require.Equal(t, []int64{0, 1}, ids)

	sold, err := f.ledger.TicketsSold(0)
	require.NoError(t, err)
	require.Equal(t, int64(2), sold)

	proceeds, err := f.ledger.Proceeds(0)
	require.NoError(t, err)
	require.Equal(t, 2*facePrice, proceeds)

	owner, err := f.ledger.OwnerOf(0)
	require.NoError(t, err)
	require.Equal(t, alice, owner)
}

func TestTicketMetadataExposed(t *testing.T) {
	f := newFixture(t)
	f.buy(t, alice, 1)

	tk, err := f.ledger.TicketByID(0)
	require.NoError(t, err)
	require.Equal(t, int64(0), tk.EventID)
	require.Equal(t, "ipfs://uri1", tk.MetadataURI)
	require.Equal(t, f.now.Add(2*24*time.Hour), tk.ExpiresAt)
	require.False(t, tk.Used)
	require.False(t, tk.Resold)

	_, err = f.ledger.TicketByID(99)
	require.ErrorIs(t, err, ErrTicketNotFound)
}
