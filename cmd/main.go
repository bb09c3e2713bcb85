package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"khanabuddy/internal/analytics"
	"khanabuddy/internal/api"
	"khanabuddy/internal/auth"
	"khanabuddy/internal/bus"
	"khanabuddy/internal/chat"
	"khanabuddy/internal/config"
	"khanabuddy/internal/inventory"
	"khanabuddy/internal/monitoring"
	"khanabuddy/internal/orders"
	"khanabuddy/internal/payment"
	"khanabuddy/internal/storage"
)

var (
	addr        = flag.String("addr", "", "API listen address (overrides config)")
	metricsAddr = flag.String("metrics-addr", "", "Metrics listen address (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *metricsAddr != "" {
		cfg.Server.MetricsAddr = *metricsAddr
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer closeStore()

	policy, err := inventory.ParsePolicy(cfg.Resolver.Policy)
	if err != nil {
		log.Fatalf("Invalid resolver policy: %v", err)
	}

	b := bus.New()
	inv := inventory.NewService(store, b, inventory.NewResolver(policy))
	if cfg.SeedMenu {
		if err := inv.SeedDefaults(); err != nil {
			log.Fatalf("Failed to seed inventory: %v", err)
		}
	}

	ord := orders.NewService(store, inv, b)
	an := analytics.NewService(ord)
	assistant := chat.NewAssistant(inv, initializeLLM(cfg))
	pay := payment.NewService(inv, ord)
	authSvc := auth.New(
		cfg.Auth.JWTSecret,
		cfg.Auth.AdminUser,
		cfg.Auth.AdminPassword,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
	)
	monitor := monitoring.NewMonitor()
	for _, kind := range bus.Kinds {
		k := kind
		b.Subscribe(k, func(bus.Notification) {
			monitor.Incr("notifications_" + string(k) + "_total")
		})
	}

	apiServer := api.NewServer(inv, ord, an, assistant, pay, authSvc, monitor, b)

	go startMetricsServer(cfg.Server.MetricsAddr)

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: apiServer.Router(),
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on %s", cfg.Server.Addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

// openStore picks the configured storage backend. An empty dialect selects
// the in-memory store, which loses everything on exit.
func openStore(cfg *config.Config) (storage.Store, func(), error) {
	if cfg.Storage.Dialect == "" {
		log.Println("Using in-memory storage; state will not survive restarts")
		return storage.NewMemoryStore(), func() {}, nil
	}
	gs, err := storage.Open(cfg.Storage.Dialect, cfg.Storage.DSN)
	if err != nil {
		return nil, nil, err
	}
	return gs, func() {
		if err := gs.Close(); err != nil {
			log.Printf("Error closing store: %v", err)
		}
	}, nil
}

func initializeLLM(cfg *config.Config) llms.LLM {
	if cfg.Assistant.OpenAIKey == "" {
		return nil
	}
	model, err := openai.New(
		openai.WithModel(cfg.Assistant.Model),
		openai.WithToken(cfg.Assistant.OpenAIKey),
	)
	if err != nil {
		log.Printf("Failed to initialize OpenAI client, chat fallback disabled: %v", err)
		return nil
	}
	return model
}

func startMetricsServer(addr string) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    addr,
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on %s", addr)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
