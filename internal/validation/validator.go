package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"ontix/internal/models"
)

// APIValidator smoke-checks a running server: it exercises every endpoint
// group once and verifies status codes and response shapes.
type APIValidator struct {
	baseURL   string
	principal string
	client    *http.Client
}

func NewAPIValidator(baseURL string) *APIValidator {
	return &APIValidator{
		baseURL:   baseURL,
		principal: "validator",
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ValidateAll runs the endpoint checks in dependency order: an event must
// exist before tickets can be bought, and a ticket before it can be resold.
func (v *APIValidator) ValidateAll() error {
	log.Println("Validating API endpoints...")

	if err := v.validateHealth(); err != nil {
		return fmt.Errorf("health validation failed: %w", err)
	}

	eventID, err := v.validateEvents()
	if err != nil {
		return fmt.Errorf("events validation failed: %w", err)
	}

	ticketIDs, err := v.validateTickets(eventID)
	if err != nil {
		return fmt.Errorf("tickets validation failed: %w", err)
	}

	if err := v.validateResale(ticketIDs[0]); err != nil {
		return fmt.Errorf("resale validation failed: %w", err)
	}

	if err := v.validateTreasury(eventID); err != nil {
		return fmt.Errorf("treasury validation failed: %w", err)
	}

	log.Println("All endpoints validated")
	return nil
}

func (v *APIValidator) validateHealth() error {
	resp, err := v.makeRequest("GET", "/health", nil, "")
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /health: expected 200, got %d", resp.StatusCode)
	}
	return nil
}

func (v *APIValidator) validateEvents() (int64, error) {
	log.Println("Checking events endpoints...")

	now := time.Now().UTC()
	uris := make([]string, 4)
	for i := range uris {
		uris[i] = fmt.Sprintf("ipfs://validator/%d", i)
	}
	reqBody := models.CreateEventRequest{
		Name:         "Validator Event",
		Location:     "Validator Hall",
		SaleStart:    now.Add(48 * time.Hour),
		SaleEnd:      now.Add(72 * time.Hour),
		Price:        100,
		MaxTickets:   4,
		ResaleStart:  now.Add(-time.Hour),
		ResaleEnd:    now.Add(24 * time.Hour),
		PriceCap:     200,
		MetadataURIs: uris,
	}

	var created models.CreateEventResponse
	if err := v.expectJSON("POST", "/api/events", reqBody, v.principal, http.StatusCreated, &created); err != nil {
		return 0, err
	}

	var list models.ListEventsResponse
	if err := v.expectJSON("GET", "/api/events", nil, "", http.StatusOK, &list); err != nil {
		return 0, err
	}
	if len(list) == 0 {
		return 0, fmt.Errorf("GET /api/events: expected at least one event")
	}

	path := fmt.Sprintf("/api/events/%d", created.ID)
	var ev models.ListEventsResponseItem
	if err := v.expectJSON("GET", path, nil, "", http.StatusOK, &ev); err != nil {
		return 0, err
	}

	// Unauthenticated mutation must bounce.
	resp, err := v.makeRequest("POST", "/api/events", reqBody, "")
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		return 0, fmt.Errorf("POST /api/events without principal: expected 401, got %d", resp.StatusCode)
	}

	return created.ID, nil
}

func (v *APIValidator) validateTickets(eventID int64) ([]int64, error) {
	log.Println("Checking ticket endpoints...")

	var bought models.BuyTicketsResponse
	path := fmt.Sprintf("/api/events/%d/purchase", eventID)
	req := models.BuyTicketsRequest{Quantity: 2, Payment: 200}
	if err := v.expectJSON("POST", path, req, v.principal, http.StatusCreated, &bought); err != nil {
		return nil, err
	}
	if len(bought.TicketIDs) != 2 {
		return nil, fmt.Errorf("POST %s: expected 2 ticket ids, got %d", path, len(bought.TicketIDs))
	}

	var ticket models.TicketResponse
	path = fmt.Sprintf("/api/tickets/%d", bought.TicketIDs[0])
	if err := v.expectJSON("GET", path, nil, "", http.StatusOK, &ticket); err != nil {
		return nil, err
	}
	if ticket.Owner != v.principal {
		return nil, fmt.Errorf("GET %s: expected owner %q, got %q", path, v.principal, ticket.Owner)
	}

	var owner models.OwnerResponse
	path = fmt.Sprintf("/api/tickets/%d/owner", bought.TicketIDs[1])
	if err := v.expectJSON("GET", path, nil, "", http.StatusOK, &owner); err != nil {
		return nil, err
	}

	// Transfer the second ticket away and back so later checks keep a
	// resellable ticket under the validator principal.
	transfer := models.TransferTicketsRequest{To: "validator-peer", TicketIDs: []int64{bought.TicketIDs[1]}}
	resp, err := v.makeRequest("POST", "/api/tickets/transfer", transfer, v.principal)
	if err != nil {
		return nil, err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("POST /api/tickets/transfer: expected 200, got %d", resp.StatusCode)
	}

	return bought.TicketIDs, nil
}

func (v *APIValidator) validateResale(ticketID int64) error {
	log.Println("Checking resale endpoints...")

	listReq := models.ListForResaleRequest{TicketID: ticketID, AskPrice: 150}
	resp, err := v.makeRequest("POST", "/api/resale/listings", listReq, v.principal)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("POST /api/resale/listings: expected 201, got %d", resp.StatusCode)
	}

	var listing models.ListingResponse
	path := fmt.Sprintf("/api/resale/listings/%d", ticketID)
	if err := v.expectJSON("GET", path, nil, "", http.StatusOK, &listing); err != nil {
		return err
	}
	if listing.Price != 150 {
		return fmt.Errorf("GET %s: expected price 150, got %d", path, listing.Price)
	}

	var receipts models.BuyResaleTicketsResponse
	buyReq := models.BuyResaleTicketsRequest{TicketIDs: []int64{ticketID}, Payment: 150}
	resp, err = v.makeRequest("POST", "/api/resale/purchase", buyReq, "validator-buyer")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST /api/resale/purchase: expected 200, got %d: %s", resp.StatusCode, raw)
	}
	if err := json.NewDecoder(resp.Body).Decode(&receipts); err != nil {
		return fmt.Errorf("POST /api/resale/purchase: failed to decode response: %w", err)
	}
	if len(receipts) != 1 || receipts[0].Buyer != "validator-buyer" {
		return fmt.Errorf("POST /api/resale/purchase: unexpected receipts %+v", receipts)
	}

	return nil
}

func (v *APIValidator) validateTreasury(eventID int64) error {
	log.Println("Checking treasury endpoints...")

	var proceeds models.ProceedsResponse
	path := fmt.Sprintf("/api/events/%d/proceeds", eventID)
	if err := v.expectJSON("GET", path, nil, "", http.StatusOK, &proceeds); err != nil {
		return err
	}
	if proceeds.Proceeds != 200 {
		return fmt.Errorf("GET %s: expected proceeds 200, got %d", path, proceeds.Proceeds)
	}

	var sold models.TicketsSoldResponse
	path = fmt.Sprintf("/api/events/%d/sold", eventID)
	if err := v.expectJSON("GET", path, nil, "", http.StatusOK, &sold); err != nil {
		return err
	}
	if sold.TicketsSold != 2 {
		return fmt.Errorf("GET %s: expected 2 sold, got %d", path, sold.TicketsSold)
	}

	var withdrawal models.WithdrawResponse
	path = fmt.Sprintf("/api/events/%d/withdraw", eventID)
	if err := v.expectJSON("POST", path, nil, v.principal, http.StatusOK, &withdrawal); err != nil {
		return err
	}
	if withdrawal.Amount != 200 {
		return fmt.Errorf("POST %s: expected withdrawal 200, got %d", path, withdrawal.Amount)
	}

	return nil
}

func (v *APIValidator) expectJSON(method, path string, body interface{}, principal string, want int, out interface{}) error {
	resp, err := v.makeRequest(method, path, body, principal)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: expected %d, got %d: %s", method, path, want, resp.StatusCode, raw)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}

func (v *APIValidator) makeRequest(method, path string, body interface{}, principal string) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, v.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if principal != "" {
		req.Header.Set("X-Principal", principal)
	}

	return v.client.Do(req)
}
