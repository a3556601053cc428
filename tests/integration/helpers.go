package integration

import (
	"os"
	"testing"
	"time"

	"ontix/internal/models"
)

// requireAPI skips the test unless a running server is configured.
func requireAPI(t *testing.T) string {
	t.Helper()
	baseURL := os.Getenv("ONTIX_API_URL")
	if baseURL == "" {
		t.Skip("ONTIX_API_URL not set, skipping integration test")
	}
	return baseURL
}

// sampleEvent builds a valid event definition: sale window two days out,
// resale open from now until tomorrow.
func sampleEvent(maxTickets int64) models.CreateEventRequest {
	now := time.Now().UTC()
	uris := make([]string, maxTickets)
	for i := range uris {
		uris[i] = "ipfs://uri"
	}
	return models.CreateEventRequest{
		Name:         "Concert",
		Location:     "Jakarta",
		SaleStart:    now.Add(48 * time.Hour),
		SaleEnd:      now.Add(72 * time.Hour),
		Price:        100,
		MaxTickets:   maxTickets,
		ResaleStart:  now.Add(-time.Hour),
		ResaleEnd:    now.Add(24 * time.Hour),
		PriceCap:     200,
		MetadataURIs: uris,
	}
}
