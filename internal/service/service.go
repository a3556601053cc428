package service

import (
	"ontix/internal/ledger"
	"ontix/internal/messaging"
	"ontix/internal/search"
)

type Services struct {
	Events   *EventService
	Tickets  *TicketService
	Resale   *ResaleService
	Treasury *TreasuryService
}

func NewServices(led *ledger.Ledger, natsClient *messaging.NATSClient, esClient *search.ElasticsearchClient) *Services {
	return &Services{
		Events:   NewEventService(led, natsClient, esClient),
		Tickets:  NewTicketService(led, natsClient),
		Resale:   NewResaleService(led, natsClient),
		Treasury: NewTreasuryService(led, natsClient),
	}
}
