package ledger

import (
	"context"
	"fmt"
)

// Treasury holds accumulated primary-sale proceeds per event until the
// organizer withdraws them.
type Treasury struct {
	balances map[int64]int64
	registry *EventRegistry
}

func NewTreasury(registry *EventRegistry) *Treasury {
	return &Treasury{
		balances: make(map[int64]int64),
		registry: registry,
	}
}

func (t *Treasury) credit(eventID, amount int64) {
	t.balances[eventID] += amount
}

// WithdrawProceeds pays the full accumulated balance of an event to its
// organizer and returns the amount paid. The balance is zeroed before the
// external payment is made, so the sink can never re-enter and drain twice.
func (l *Ledger) WithdrawProceeds(ctx context.Context, caller Principal, eventID int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ev, err := l.registry.eventByID(eventID)
	if err != nil {
		return 0, err
	}
	if ev.Organizer != caller {
		return 0, ErrNotOrganizer
	}
	amount := l.treasury.balances[eventID]
	if amount <= 0 {
		return 0, ErrNoFundsAvailable
	}

	l.treasury.balances[eventID] = 0
	l.pay(ctx, caller, amount, fmt.Sprintf("proceeds of event %d", eventID))

	return amount, nil
}
