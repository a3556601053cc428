package integration

import (
	"testing"
)

// TestTicketLifecycle walks one ticket through primary sale, resale and
// organizer withdrawal against a live server.
func TestTicketLifecycle(t *testing.T) {
	baseURL := requireAPI(t)

	organizer := NewTestClient(baseURL, "it-organizer")
	buyer := NewTestClient(baseURL, "it-buyer")
	scalper := NewTestClient(baseURL, "it-scalper")

	eventID := organizer.CreateEvent(t, sampleEvent(12))

	tickets := buyer.BuyTickets(t, eventID, 2, 200)
	if len(tickets) != 2 {
		t.Fatalf("Expected 2 tickets, got %d", len(tickets))
	}

	if owner := buyer.OwnerOf(t, tickets[0]); owner != "it-buyer" {
		t.Fatalf("Expected owner it-buyer, got %q", owner)
	}

	buyer.ListForResale(t, tickets[0], 150)
	receipts := scalper.BuyResaleTickets(t, []int64{tickets[0]}, 150)
	if len(receipts) != 1 || receipts[0].Buyer != "it-scalper" {
		t.Fatalf("Unexpected resale receipts: %+v", receipts)
	}

	if owner := scalper.OwnerOf(t, tickets[0]); owner != "it-scalper" {
		t.Fatalf("Expected owner it-scalper, got %q", owner)
	}

	withdrawal := organizer.Withdraw(t, eventID)
	if withdrawal.Amount != 200 {
		t.Fatalf("Expected withdrawal of 200, got %d", withdrawal.Amount)
	}
	if proceeds := organizer.Proceeds(t, eventID); proceeds != 0 {
		t.Fatalf("Expected zero proceeds after withdrawal, got %d", proceeds)
	}
}

func TestHealth(t *testing.T) {
	baseURL := requireAPI(t)
	NewTestClient(baseURL, "").HealthCheck(t)
}
