package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func (f *fixture) eventParams() CreateEventParams {
	return CreateEventParams{
		Name:         "Concert",
		Location:     "Jakarta",
		SaleStart:    f.now.Add(2000 * time.Second),
		SaleEnd:      f.now.Add(3000 * time.Second),
		Price:        facePrice,
		MaxTickets:   1,
		ResaleStart:  f.now,
		ResaleEnd:    f.now.Add(1000 * time.Second),
		PriceCap:     priceCap,
		MetadataURIs: []string{"ipfs://uri"},
	}
}

func TestCreateEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("assigns sequential ids and organizer", func(t *testing.T) {
		require.Equal(t, int64(1), f.ledger.NextEventID())

		id, err := f.ledger.CreateEvent(ctx, alice, f.eventParams())
		require.NoError(t, err)
		require.Equal(t, int64(1), id)

		ev, err := f.ledger.EventByID(1)
		require.NoError(t, err)
		require.Equal(t, alice, ev.Organizer)
		require.Equal(t, "Concert", ev.Name)
		require.Equal(t, "Jakarta", ev.Location)
	})

	t.Run("mints contiguous tickets owned by nobody", func(t *testing.T) {
		ev, err := f.ledger.EventByID(0)
		require.NoError(t, err)
		require.Equal(t, supply, ev.MaxTickets)

		for id := int64(0); id < supply; id++ {
			tk, err := f.ledger.TicketByID(id)
			require.NoError(t, err)
			require.Equal(t, int64(0), tk.EventID)
			require.Equal(t, Nobody, tk.Owner)
		}
	})

	t.Run("rejects sale start after sale end", func(t *testing.T) {
		p := f.eventParams()
		p.SaleStart, p.SaleEnd = p.SaleEnd, p.SaleStart
		_, err := f.ledger.CreateEvent(ctx, alice, p)
		require.ErrorIs(t, err, ErrInvalidSaleWindow)
	})

	t.Run("rejects resale start after resale end", func(t *testing.T) {
		p := f.eventParams()
		p.ResaleStart = f.now.Add(1000 * time.Second)
		p.ResaleEnd = f.now
		_, err := f.ledger.CreateEvent(ctx, alice, p)
		require.ErrorIs(t, err, ErrInvalidResaleWindow)
	})

	t.Run("rejects price cap below face price", func(t *testing.T) {
		p := f.eventParams()
		p.Price = priceCap
		p.PriceCap = facePrice
		_, err := f.ledger.CreateEvent(ctx, alice, p)
		require.ErrorIs(t, err, ErrPriceCapBelowFace)
	})

	t.Run("rejects metadata count mismatch", func(t *testing.T) {
		p := f.eventParams()
		p.MetadataURIs = []string{"ipfs://uri1", "ipfs://uri2"}
		_, err := f.ledger.CreateEvent(ctx, alice, p)
		require.ErrorIs(t, err, ErrMetadataCountMismatch)
	})

	t.Run("rejects resale window overlapping the event", func(t *testing.T) {
		p := f.eventParams()
		p.ResaleEnd = f.now.Add(4000 * time.Second)
		_, err := f.ledger.CreateEvent(ctx, alice, p)
		require.ErrorIs(t, err, ErrResaleOverlapsEvent)
	})

	t.Run("failed creation mints nothing", func(t *testing.T) {
		before := f.ledger.NextEventID()
		p := f.eventParams()
		p.MetadataURIs = nil
		_, err := f.ledger.CreateEvent(ctx, alice, p)
		require.Error(t, err)
		require.Equal(t, before, f.ledger.NextEventID())
	})
}

func TestBuyTickets(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns next unsold tickets to the buyer", func(t *testing.T) {
		f := newFixture(t)

		ids, err := f.ledger.BuyTickets(ctx, alice, 0, 2, 2*facePrice)
		require.NoError(t, err)
		require.Equal(t, []int64{0, 1}, ids)

		ids, err = f.ledger.BuyTickets(ctx, bob, 0, 1, facePrice)
		require.NoError(t, err)
		require.Equal(t, []int64{2}, ids)

		owner, err := f.ledger.OwnerOf(2)
		require.NoError(t, err)
		require.Equal(t, bob, owner)
	})

	t.Run("allows purchase before the sale window opens", func(t *testing.T) {
		// Only the end of the sale period is a gate.
		f := newFixture(t)
		require.True(t, f.clock.Now().Before(f.now.Add(2*24*time.Hour)))
		f.buy(t, alice, 1)
	})

	t.Run("rejects after sales period ended", func(t *testing.T) {
		f := newFixture(t)
		f.afterEventStart()
		_, err := f.ledger.BuyTickets(ctx, alice, 0, 2, 2*facePrice)
		require.ErrorIs(t, err, ErrSalesEnded)
	})

	t.Run("rejects when not enough tickets remain", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.BuyTickets(ctx, alice, 0, 20, 20*facePrice)
		require.ErrorIs(t, err, ErrSoldOut)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.BuyTickets(ctx, alice, 0, 0, 0)
		require.ErrorIs(t, err, ErrSoldOut)
	})

	t.Run("exact payment law", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.ledger.BuyTickets(ctx, alice, 0, 1, facePrice/2)
		require.ErrorIs(t, err, ErrIncorrectPayment)

		_, err = f.ledger.BuyTickets(ctx, alice, 0, 1, facePrice+1)
		require.ErrorIs(t, err, ErrIncorrectPayment)

		_, err = f.ledger.BuyTickets(ctx, alice, 0, 1, facePrice)
		require.NoError(t, err)
	})

	t.Run("unknown event", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.BuyTickets(ctx, alice, 7, 1, facePrice)
		require.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("failed purchase leaves counters untouched", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 1)

		_, err := f.ledger.BuyTickets(ctx, bob, 0, 2, facePrice)
		require.ErrorIs(t, err, ErrIncorrectPayment)

		sold, err := f.ledger.TicketsSold(0)
		require.NoError(t, err)
		require.Equal(t, int64(1), sold)

		proceeds, err := f.ledger.Proceeds(0)
		require.NoError(t, err)
		require.Equal(t, facePrice, proceeds)
	})
}
