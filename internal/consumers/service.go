package consumers

import (
	"context"
	"log/slog"

	"ontix/internal/config"
	"ontix/internal/database"
	"ontix/internal/messaging"
	"ontix/internal/models"
	"ontix/internal/repository"
)

type ConsumerService struct {
	db       *database.DB
	nats     *messaging.NATSClient
	repos    *repository.Repositories
	handlers *Handlers
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := db.RunMigrations(); err != nil {
		return nil, err
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	repos := repository.NewRepositories(db)

	return &ConsumerService{
		db:       db,
		nats:     natsClient,
		repos:    repos,
		handlers: NewHandlers(repos),
	}, nil
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	plain := []string{
		models.NoticeEventCreated,
		models.NoticeTicketPurchased,
		models.NoticeTicketListed,
		models.NoticeTicketTransferred,
		models.NoticeTicketValidated,
		models.NoticeProceedsWithdrawn,
	}
	for _, subject := range plain {
		if _, err := cs.nats.SubscribeQueue(subject, "archivers", cs.handlers.HandleNotification(subject)); err != nil {
			return err
		}
	}

	if _, err := cs.nats.SubscribeQueue(models.NoticeTicketResold, "archivers", cs.handlers.HandleTicketResold); err != nil {
		return err
	}

	if _, err := cs.nats.SubscribeQueue(models.NoticePayoutSent, "archivers", cs.handlers.HandlePayoutSent); err != nil {
		return err
	}

	slog.Info("All consumers started successfully")
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if cs.db != nil {
		if err := cs.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
