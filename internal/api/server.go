package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"ontix/internal/cache"
	"ontix/internal/config"
	"ontix/internal/handlers"
	"ontix/internal/ledger"
	"ontix/internal/messaging"
	"ontix/internal/middleware"
	"ontix/internal/search"
	"ontix/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP front of the ticket ledger. The ledger itself lives in
// process; NATS, Valkey and Elasticsearch are optional collaborators.
type Server struct {
	router   *gin.Engine
	config   *config.Config
	nats     *messaging.NATSClient
	valkey   *cache.ValkeyClient
	ledger   *ledger.Ledger
	services *service.Services
}

func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		// Notifications are observability, not correctness; run without.
		slog.Warn("NATS unavailable, notifications disabled", "error", err)
		natsClient = nil
	}

	var valkeyClient *cache.ValkeyClient
	if cfg.Cache.Addr != "" {
		valkeyClient, err = cache.NewValkeyClient(cfg.Cache)
		if err != nil {
			slog.Warn("Valkey unavailable, caching disabled", "error", err)
		}
	}

	var esClient *search.ElasticsearchClient
	if cfg.Search.URL != "" {
		esClient, err = search.NewElasticsearchClient(cfg.Search)
		if err != nil {
			slog.Warn("Elasticsearch unavailable, search disabled", "error", err)
		}
	}

	led := ledger.New(ledger.WithPaymentSink(service.NewPayoutPublisher(natsClient)))
	services := service.NewServices(led, natsClient, esClient)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())
	router.Use(cors.Default())

	server := &Server{
		router:   router,
		config:   cfg,
		nats:     natsClient,
		valkey:   valkeyClient,
		ledger:   led,
		services: services,
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services, s.valkey)

	api := s.router.Group("/api")
	{
		events := api.Group("/events")
		{
			events.GET("", h.ListEvents)
			events.GET("/:id", h.GetEvent)
			events.GET("/:id/proceeds", h.GetProceeds)
			events.GET("/:id/sold", h.GetTicketsSold)

			authed := events.Group("", middleware.PrincipalAuth())
			{
				authed.POST("", h.CreateEvent)
				authed.POST("/:id/purchase", h.BuyTickets)
				authed.POST("/:id/withdraw", h.WithdrawProceeds)
			}
		}

		tickets := api.Group("/tickets")
		{
			tickets.GET("/:id", h.GetTicket)
			tickets.GET("/:id/owner", h.GetTicketOwner)

			authed := tickets.Group("", middleware.PrincipalAuth())
			{
				authed.POST("/transfer", h.TransferTickets)
				authed.POST("/:id/validate", h.ValidateTicket)
			}
		}

		resale := api.Group("/resale")
		{
			resale.GET("/listings/:ticketId", h.GetListing)

			authed := resale.Group("", middleware.PrincipalAuth())
			{
				authed.POST("/listings", h.ListForResale)
				authed.POST("/purchase", h.BuyResaleTickets)
			}
		}
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/health", s.healthCheck)
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ontix-api",
		"version": "1.0.0",
	})
}

func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter exposes the router for tests.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}
	if s.valkey != nil {
		if err := s.valkey.Close(); err != nil {
			slog.Error("Error closing Valkey connection", "error", err)
		}
	}
	return nil
}
