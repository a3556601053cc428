package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"ontix/internal/models"
)

// TestClient drives the running API over HTTP.
type TestClient struct {
	BaseURL    string
	Principal  string
	HTTPClient *http.Client
}

func NewTestClient(baseURL, principal string) *TestClient {
	return &TestClient{
		BaseURL:   baseURL,
		Principal: principal,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *TestClient) makeRequest(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Principal != "" {
		req.Header.Set("X-Principal", c.Principal)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}

	return resp
}

func decode[T any](t *testing.T, resp *http.Response, want int) T {
	t.Helper()
	defer resp.Body.Close()

	if resp.StatusCode != want {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status %d, got %d: %s", want, resp.StatusCode, raw)
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return out
}

func (c *TestClient) HealthCheck(t *testing.T) {
	resp := c.makeRequest(t, "GET", "/health", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
}

func (c *TestClient) CreateEvent(t *testing.T, req models.CreateEventRequest) int64 {
	resp := c.makeRequest(t, "POST", "/api/events", req)
	return decode[models.CreateEventResponse](t, resp, http.StatusCreated).ID
}

func (c *TestClient) ListEvents(t *testing.T) models.ListEventsResponse {
	resp := c.makeRequest(t, "GET", "/api/events", nil)
	return decode[models.ListEventsResponse](t, resp, http.StatusOK)
}

func (c *TestClient) BuyTickets(t *testing.T, eventID, quantity, payment int64) []int64 {
	resp := c.makeRequest(t, "POST", fmt.Sprintf("/api/events/%d/purchase", eventID),
		models.BuyTicketsRequest{Quantity: quantity, Payment: payment})
	return decode[models.BuyTicketsResponse](t, resp, http.StatusCreated).TicketIDs
}

func (c *TestClient) OwnerOf(t *testing.T, ticketID int64) string {
	resp := c.makeRequest(t, "GET", fmt.Sprintf("/api/tickets/%d/owner", ticketID), nil)
	return decode[models.OwnerResponse](t, resp, http.StatusOK).Owner
}

func (c *TestClient) ListForResale(t *testing.T, ticketID, askPrice int64) {
	resp := c.makeRequest(t, "POST", "/api/resale/listings",
		models.ListForResaleRequest{TicketID: ticketID, AskPrice: askPrice})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}
}

func (c *TestClient) BuyResaleTickets(t *testing.T, ticketIDs []int64, payment int64) models.BuyResaleTicketsResponse {
	resp := c.makeRequest(t, "POST", "/api/resale/purchase",
		models.BuyResaleTicketsRequest{TicketIDs: ticketIDs, Payment: payment})
	return decode[models.BuyResaleTicketsResponse](t, resp, http.StatusOK)
}

func (c *TestClient) Withdraw(t *testing.T, eventID int64) models.WithdrawResponse {
	resp := c.makeRequest(t, "POST", fmt.Sprintf("/api/events/%d/withdraw", eventID), nil)
	return decode[models.WithdrawResponse](t, resp, http.StatusOK)
}

func (c *TestClient) Proceeds(t *testing.T, eventID int64) int64 {
	resp := c.makeRequest(t, "GET", fmt.Sprintf("/api/events/%d/proceeds", eventID), nil)
	return decode[models.ProceedsResponse](t, resp, http.StatusOK).Proceeds
}
