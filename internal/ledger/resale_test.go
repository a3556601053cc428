package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListForResale(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a listing inside the window", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 1)

		require.NoError(t, f.ledger.ListForResale(ctx, alice, 0, 150))

		lst, ok, err := f.ledger.ListingByTicket(0)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, alice, lst.Seller)
		require.Equal(t, int64(150), lst.Price)
	})

	t.Run("replaces an existing listing by the same owner", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 1)

		require.NoError(t, f.ledger.ListForResale(ctx, alice, 0, 150))
		require.NoError(t, f.ledger.ListForResale(ctx, alice, 0, 120))

		lst, ok, err := f.ledger.ListingByTicket(0)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, int64(120), lst.Price)
	})

	t.Run("rejects non-owner", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 1)
		require.ErrorIs(t, f.ledger.ListForResale(ctx, bob, 0, 150), ErrNotOwner)
	})

	t.Run("rejects a ticket that was already resold", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 1)
		require.NoError(t, f.ledger.ListForResale(ctx, alice, 0, 150))
		_, err := f.ledger.BuyResaleTickets(ctx, bob, []int64{0}, 150)
		require.NoError(t, err)

		require.ErrorIs(t, f.ledger.ListForResale(ctx, bob, 0, 100), ErrAlreadyResold)
	})

	t.Run("rejects a used ticket", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 1)
		require.NoError(t, f.ledger.ValidateTicket(ctx, alice, 0))

		require.ErrorIs(t, f.ledger.ListForResale(ctx, alice, 0, 150), ErrAlreadyUsed)
	})

	t.Run("rejects outside the resale window", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 1)
		f.afterEventStart()
		require.ErrorIs(t, f.ledger.ListForResale(ctx, alice, 0, 150), ErrResaleWindowClosed)
	})

	t.Run("rejects asking price above the cap", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 1)
		require.ErrorIs(t, f.ledger.ListForResale(ctx, alice, 0, priceCap+100), ErrExceedsCap)
	})

	t.Run("allows asking price equal to the cap", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 1)
		require.NoError(t, f.ledger.ListForResale(ctx, alice, 0, priceCap))
	})
}

func TestBuyResaleTickets(t *testing.T) {
	ctx := context.Background()

	t.Run("transfers ownership and pays the seller", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 1)
		require.NoError(t, f.ledger.ListForResale(ctx, alice, 0, 150))

		receipts, err := f.ledger.BuyResaleTickets(ctx, bob, []int64{0}, 150)
		require.NoError(t, err)
		require.Len(t, receipts, 1)
		require.Equal(t, ResaleReceipt{TicketID: 0, Seller: alice, Buyer: bob, Price: 150}, receipts[0])

		owner, err := f.ledger.OwnerOf(0)
		require.NoError(t, err)
		require.Equal(t, bob, owner)

		tk, err := f.ledger.TicketByID(0)
		require.NoError(t, err)
		require.True(t, tk.Resold)

		_, ok, err := f.ledger.ListingByTicket(0)
		require.NoError(t, err)
		require.False(t, ok)

		payouts := f.sink.all()
		require.Len(t, payouts, 1)
		require.Equal(t, alice, payouts[0].To)
		require.Equal(t, int64(150), payouts[0].Amount)
	})

	t.Run("rejects a second resale of the same ticket", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 1)
		require.NoError(t, f.ledger.ListForResale(ctx, alice, 0, 150))
		_, err := f.ledger.BuyResaleTickets(ctx, bob, []int64{0}, 150)
		require.NoError(t, err)

		// The resold flag wins over the missing listing.
		_, err = f.ledger.BuyResaleTickets(ctx, bob, []int64{0}, 150)
		require.ErrorIs(t, err, ErrAlreadyResold)
	})

	t.Run("rejects the same ticket twice in one batch", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 1)
		require.NoError(t, f.ledger.ListForResale(ctx, alice, 0, 150))

		_, err := f.ledger.BuyResaleTickets(ctx, bob, []int64{0, 0}, 300)
		require.ErrorIs(t, err, ErrAlreadyResold)

		// Nothing committed: still alice's listed, unresold ticket and
		// no payouts.
		owner, err := f.ledger.OwnerOf(0)
		require.NoError(t, err)
		require.Equal(t, alice, owner)

		tk, err := f.ledger.TicketByID(0)
		require.NoError(t, err)
		require.False(t, tk.Resold)

		_, ok, err := f.ledger.ListingByTicket(0)
		require.NoError(t, err)
		require.True(t, ok)
		require.Empty(t, f.sink.all())
	})

	t.Run("rejects a used ticket", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 1)
		require.NoError(t, f.ledger.ListForResale(ctx, alice, 0, 150))
		require.NoError(t, f.ledger.ValidateTicket(ctx, alice, 0))
		// Validation removed the listing; relist manually to hit the
		// used check on the buy path.
		f.ledger.market.listings[0] = &Listing{TicketID: 0, Seller: alice, Price: 150}

		_, err := f.ledger.BuyResaleTickets(ctx, bob, []int64{0}, 150)
		require.ErrorIs(t, err, ErrAlreadyUsed)
	})

	t.Run("rejects an expired ticket", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 1)
		require.NoError(t, f.ledger.ListForResale(ctx, alice, 0, 150))
		f.afterEventStart()

		_, err := f.ledger.BuyResaleTickets(ctx, bob, []int64{0}, 150)
		require.ErrorIs(t, err, ErrTicketExpired)
	})

	t.Run("rejects an unlisted ticket", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 1)

		_, err := f.ledger.BuyResaleTickets(ctx, bob, []int64{0}, facePrice)
		require.ErrorIs(t, err, ErrNotListed)
	})

	t.Run("exact total payment law", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 2)
		require.NoError(t, f.ledger.ListForResale(ctx, alice, 0, 150))
		require.NoError(t, f.ledger.ListForResale(ctx, alice, 1, 120))

		_, err := f.ledger.BuyResaleTickets(ctx, bob, []int64{0, 1}, 150)
		require.ErrorIs(t, err, ErrIncorrectTotalPayment)

		_, err = f.ledger.BuyResaleTickets(ctx, bob, []int64{0, 1}, 271)
		require.ErrorIs(t, err, ErrIncorrectTotalPayment)

		_, err = f.ledger.BuyResaleTickets(ctx, bob, []int64{0, 1}, 270)
		require.NoError(t, err)
	})

	t.Run("batch is all or nothing", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 3)
		require.NoError(t, f.ledger.ListForResale(ctx, alice, 0, 150))
		require.NoError(t, f.ledger.ListForResale(ctx, alice, 1, 150))
		// Ticket 2 stays unlisted to poison the batch.

		_, err := f.ledger.BuyResaleTickets(ctx, bob, []int64{0, 1, 2}, 450)
		require.ErrorIs(t, err, ErrNotListed)

		// The listed tickets are untouched: still owned by the seller,
		// still listed, resale flag unspent, no payouts made.
		for _, id := range []int64{0, 1} {
			owner, err := f.ledger.OwnerOf(id)
			require.NoError(t, err)
			require.Equal(t, alice, owner)

			tk, err := f.ledger.TicketByID(id)
			require.NoError(t, err)
			require.False(t, tk.Resold)

			_, ok, err := f.ledger.ListingByTicket(id)
			require.NoError(t, err)
			require.True(t, ok)
		}
		require.Empty(t, f.sink.all())
	})

	t.Run("buys a whole batch atomically", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 3)
		for id := int64(0); id < 3; id++ {
			require.NoError(t, f.ledger.ListForResale(ctx, alice, id, 150))
		}

		receipts, err := f.ledger.BuyResaleTickets(ctx, bob, []int64{0, 1, 2}, 450)
		require.NoError(t, err)
		require.Len(t, receipts, 3)
		require.Len(t, f.sink.all(), 3)

		for id := int64(0); id < 3; id++ {
			owner, err := f.ledger.OwnerOf(id)
			require.NoError(t, err)
			require.Equal(t, bob, owner)
		}
	})
}
