package service

import (
	"context"
	"fmt"
	"time"

	"ontix/internal/ledger"
	"ontix/internal/logger"
	"ontix/internal/messaging"
	"ontix/internal/models"
	"ontix/internal/search"
)

type EventService struct {
	ledger     *ledger.Ledger
	natsClient *messaging.NATSClient
	esClient   *search.ElasticsearchClient
}

func NewEventService(led *ledger.Ledger, natsClient *messaging.NATSClient, esClient *search.ElasticsearchClient) *EventService {
	return &EventService{
		ledger:     led,
		natsClient: natsClient,
		esClient:   esClient,
	}
}

// Create registers a new event with the caller as organizer, mints its
// ticket supply and indexes the event for search.
func (s *EventService) Create(ctx context.Context, caller ledger.Principal, req *models.CreateEventRequest) (*models.CreateEventResponse, error) {
	id, err := s.ledger.CreateEvent(ctx, caller, ledger.CreateEventParams{
		Name:         req.Name,
		Location:     req.Location,
		SaleStart:    req.SaleStart,
		SaleEnd:      req.SaleEnd,
		Price:        req.Price,
		MaxTickets:   req.MaxTickets,
		ResaleStart:  req.ResaleStart,
		ResaleEnd:    req.ResaleEnd,
		PriceCap:     req.PriceCap,
		MetadataURIs: req.MetadataURIs,
	})
	if err != nil {
		return nil, err
	}

	if err := s.natsClient.Publish(models.NoticeEventCreated, models.EventCreatedNotice{
		EventID:   id,
		Organizer: string(caller),
		Timestamp: time.Now(),
	}); err != nil {
		logger.WithContext(ctx).Error("Failed to publish event created notice",
			"error", err, "event_id", id)
	}

	if s.esClient != nil {
		if err := s.esClient.IndexEvent(ctx, search.EventDoc{
			ID:        id,
			Name:      req.Name,
			Location:  req.Location,
			SaleStart: req.SaleStart,
			Price:     req.Price,
			Organizer: string(caller),
		}); err != nil {
			logger.WithContext(ctx).Error("Failed to index event",
				"error", err, "event_id", id)
		}
	}

	return &models.CreateEventResponse{ID: id}, nil
}

// List returns all events, or the search-index matches when a free-text
// query is given and the index is available.
func (s *EventService) List(ctx context.Context, query string) (models.ListEventsResponse, error) {
	if query != "" && s.esClient != nil {
		ids, err := s.esClient.Search(ctx, query, 50)
		if err != nil {
			return nil, fmt.Errorf("failed to search events: %w", err)
		}

		result := make(models.ListEventsResponse, 0, len(ids))
		for _, id := range ids {
			ev, err := s.ledger.EventByID(id)
			if err != nil {
				// The index may lag behind the ledger; skip strays.
				continue
			}
			result = append(result, toListItem(ev))
		}
		return result, nil
	}

	events := s.ledger.Events()
	result := make(models.ListEventsResponse, len(events))
	for i, ev := range events {
		result[i] = toListItem(ev)
	}
	return result, nil
}

func toListItem(ev ledger.Event) models.ListEventsResponseItem {
	return models.ListEventsResponseItem{
		ID:          ev.ID,
		Name:        ev.Name,
		Location:    ev.Location,
		SaleStart:   ev.SaleStart,
		SaleEnd:     ev.SaleEnd,
		Price:       ev.Price,
		PriceCap:    ev.PriceCap,
		MaxTickets:  ev.MaxTickets,
		TicketsSold: ev.TicketsSold,
	}
}

func (s *EventService) Get(ctx context.Context, id int64) (*ledger.Event, error) {
	ev, err := s.ledger.EventByID(id)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// Buy sells the next unsold tickets of an event to the caller. One purchase
// notification is published per assigned ticket.
func (s *EventService) Buy(ctx context.Context, caller ledger.Principal, eventID int64, req *models.BuyTicketsRequest) (*models.BuyTicketsResponse, error) {
	ids, err := s.ledger.BuyTickets(ctx, caller, eventID, req.Quantity, req.Payment)
	if err != nil {
		return nil, err
	}

	for _, ticketID := range ids {
		if err := s.natsClient.Publish(models.NoticeTicketPurchased, models.TicketPurchasedNotice{
			TicketID:  ticketID,
			EventID:   eventID,
			Buyer:     string(caller),
			Timestamp: time.Now(),
		}); err != nil {
			logger.WithContext(ctx).Error("Failed to publish ticket purchased notice",
				"error", err, "ticket_id", ticketID)
		}
	}

	return &models.BuyTicketsResponse{TicketIDs: ids}, nil
}
