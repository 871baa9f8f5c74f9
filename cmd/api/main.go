package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/green-crm/internal/config"
	"github.com/xavierca1/green-crm/internal/infra/cache"
	"github.com/xavierca1/green-crm/internal/infra/database"
	"github.com/xavierca1/green-crm/internal/infra/docstore"
	"github.com/xavierca1/green-crm/internal/infra/http/handlers"
	"github.com/xavierca1/green-crm/internal/infra/integration/greenapi"
	"github.com/xavierca1/green-crm/internal/infra/mail"
	"github.com/xavierca1/green-crm/internal/infra/queue"
	"github.com/xavierca1/green-crm/internal/infra/worker"
	"github.com/xavierca1/green-crm/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config inválida: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Store
	store, db, err := openStore(cfg)
	if err != nil {
		log.Fatalf("❌ Erro ao abrir store %s: %v", cfg.StoreDriver, err)
	}
	defer store.Close()
	if db != nil {
		defer db.Close()
	}

	// 2. Gateways e Adapters
	gatewayClient := greenapi.NewClient(&http.Client{}, cfg.GreenAPIDefaultHost, cfg.GreenAPICountryCode)

	var mailer usecase.EmailService
	if cfg.MailEnabled() {
		mailer = mail.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		log.Println("⚠️ SMTP não configurado, email de boas-vindas desligado")
	}

	var ledger worker.Ledger = cache.NewMemoryLedger()
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisLedger, err := cache.NewRedisLedger(cfg.RedisURL)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		defer redisLedger.Close()
		ledger = redisLedger
		redisClient = redisLedger.Client
	}

	// 3. UseCases
	syncUC := usecase.NewSyncTenantUseCase(store)
	authUC := usecase.NewAuthUseCase(store, mailer, cfg.JWTSecret, cfg.JWTExpiry)
	leadUC := usecase.NewLeadUseCase(store, gatewayClient)
	automationUC := usecase.NewAutomationUseCase(store)
	calendarUC := usecase.NewCalendarUseCase(store)
	gatewayUC := usecase.NewGatewayUseCase(store, gatewayClient)

	// 4. Envio dos triggers: direto ou via RabbitMQ quando configurado
	var dispatcher worker.Dispatcher = gatewayUC
	var rabbitConn *amqp091.Connection
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		defer rabbitMQ.Close()
		rabbitConn = rabbitMQ.Conn
		dispatcher = queue.NewProducer(rabbitMQ.Ch)

		consumer := queue.NewWorker(rabbitMQ.Ch, gatewayUC)
		go func() {
			if err := consumer.Start(ctx, queue.QueueName); err != nil {
				log.Printf("❌ %v", err)
			}
		}()
	}

	sessions := usecase.NewSessionRegistry(syncUC, func(tenantID string) usecase.Scheduler {
		return worker.NewTriggerScheduler(tenantID, dispatcher, worker.WithLedger(ledger, 0))
	})
	defer sessions.StopAll()

	// 5. Handlers e Router
	router := newRouter(routes{
		Auth:        handlers.NewAuthHandler(authUC, sessions),
		Leads:       handlers.NewLeadHandler(leadUC, cfg.LandingRateLimit),
		Automation:  handlers.NewAutomationHandler(automationUC),
		Calendar:    handlers.NewCalendarHandler(calendarUC),
		Gateway:     handlers.NewGatewayHandler(gatewayUC),
		Snapshot:    handlers.NewSnapshotHandler(syncUC),
		Health:      handlers.NewHealthHandler(cfg.StoreDriver, db, rabbitConn, redisClient, sessions),
		Validator:   authUC,
		Sessions:    sessions,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🔥 Green CRM rodando na porta %s (store: %s)", cfg.Port, cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Servidor caiu: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("⚠️ Encerrando...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Shutdown: %v", err)
	}
}

func openStore(cfg *config.Config) (*docstore.TreeStore, *sql.DB, error) {
	switch cfg.StoreDriver {
	case config.StoreBadger:
		store, err := docstore.NewBadgerStore(cfg.BadgerDir)
		return store, nil, err

	case config.StorePostgres:
		db, err := database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		store, err := docstore.NewPostgresStore(db, cfg.DatabaseURL)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, db, nil

	default:
		log.Println("⚠️ Store em memória: os dados somem no restart")
		return docstore.NewMemoryStore(), nil, nil
	}
}
