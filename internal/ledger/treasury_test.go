package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithdrawProceeds(t *testing.T) {
	ctx := context.Background()

	t.Run("pays the organizer the full balance", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 3)

		amount, err := f.ledger.WithdrawProceeds(ctx, organizer, 0)
		require.NoError(t, err)
		require.Equal(t, 3*facePrice, amount)

		payouts := f.sink.all()
		require.Len(t, payouts, 1)
		require.Equal(t, organizer, payouts[0].To)
		require.Equal(t, 3*facePrice, payouts[0].Amount)

		proceeds, err := f.ledger.Proceeds(0)
		require.NoError(t, err)
		require.Zero(t, proceeds)
	})

	t.Run("rejects non-organizer", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 1)

		_, err := f.ledger.WithdrawProceeds(ctx, alice, 0)
		require.ErrorIs(t, err, ErrNotOrganizer)
	})

	t.Run("rejects an empty balance", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.WithdrawProceeds(ctx, organizer, 0)
		require.ErrorIs(t, err, ErrNoFundsAvailable)
	})

	t.Run("no double withdraw", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 1)

		_, err := f.ledger.WithdrawProceeds(ctx, organizer, 0)
		require.NoError(t, err)

		_, err = f.ledger.WithdrawProceeds(ctx, organizer, 0)
		require.ErrorIs(t, err, ErrNoFundsAvailable)

		proceeds, err := f.ledger.Proceeds(0)
		require.NoError(t, err)
		require.Zero(t, proceeds)
		require.Len(t, f.sink.all(), 1)
	})

	t.Run("balance refills after new sales", func(t *testing.T) {
		f := newFixture(t)
		f.buy(t, alice, 1)

		_, err := f.ledger.WithdrawProceeds(ctx, organizer, 0)
		require.NoError(t, err)

		f.buy(t, bob, 2)

		amount, err := f.ledger.WithdrawProceeds(ctx, organizer, 0)
		require.NoError(t, err)
		require.Equal(t, 2*facePrice, amount)
	})

	t.Run("unknown event", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.WithdrawProceeds(ctx, organizer, 5)
		require.ErrorIs(t, err, ErrEventNotFound)
	})
}
