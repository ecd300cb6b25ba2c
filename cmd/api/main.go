// cmd/api/main.go

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"github.com/ericxyz86/culturesoup/internal/adapter/storage"
	"github.com/ericxyz86/culturesoup/internal/cache"
	"github.com/ericxyz86/culturesoup/internal/config"
	"github.com/ericxyz86/culturesoup/internal/domain/trend"
	"github.com/ericxyz86/culturesoup/internal/events"
	"github.com/ericxyz86/culturesoup/internal/logger"
	"github.com/ericxyz86/culturesoup/internal/server"
	"github.com/ericxyz86/culturesoup/internal/server/handlers"
	"github.com/ericxyz86/culturesoup/internal/service/scan"
	"github.com/ericxyz86/culturesoup/internal/service/source"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	lists, err := config.LoadSourceLists(cfg.Sources.ConfigPath)
	if err != nil {
		log.Fatalf("Failed to load source lists: %v", err)
	}

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Caches are the only shared mutable state
	resultCache := cache.NewResultCache()
	supplementCache := cache.NewSupplementCache(cfg.Scan.SupplementTTL)

	// Optional scan-history persistence
	var (
		store   scan.Store
		history *storage.ScanStore
	)
	if cfg.Database.URL != "" {
		db, err := initDatabase(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()

		scanStore := storage.NewScanStore(db)
		if err := scanStore.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to ensure database schema: %v", err)
		}
		store = scanStore
		history = scanStore
	}

	// Optional scan-event publishing
	var publisher scan.Publisher
	if cfg.NATS.URL != "" {
		natsConn, err := initNATS(cfg.NATS)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer natsConn.Close()

		publisher = events.NewPublisher(natsConn, cfg.NATS.EventsTopic)
	}

	// Register sources; adapters without credentials are skipped
	keywords := scan.NewKeywords(lists.Keywords)

	sources := []trend.Source{
		source.NewRedditSource(lists.Subreddits, keywords),
		source.NewHackerNewsSource(keywords),
		source.NewTechPressSource(lists.RSSFeeds, keywords),
		source.NewSupplementSource(supplementCache),
	}
	if cfg.Sources.TwitterBearerToken != "" || cfg.Sources.TwitterConsumerKey != "" {
		sources = append(sources, source.NewTwitterSource(cfg.Sources, lists.TwitterAccounts, keywords))
	} else {
		logger.Warn("no Twitter credentials, skipping X/Twitter source")
	}
	if cfg.Sources.YouTubeAPIKey != "" {
		sources = append(sources, source.NewYouTubeSource(cfg.Sources.YouTubeAPIKey))
	} else {
		logger.Warn("no YOUTUBE_API_KEY, skipping YouTube source")
	}
	if cfg.Sources.ShortVideoBaseURL != "" {
		sources = append(sources, source.NewShortVideoSource(cfg.Sources.ShortVideoBaseURL, keywords))
	}

	// Initialize scanner
	scanner := scan.NewScanner(
		sources,
		scan.NewPipeline(cfg.Scan.MaxAgeHours, cfg.Scan.MaxResults),
		resultCache,
		store,
		publisher,
		scan.Config{
			ScanTimeout:   cfg.Scan.ScanTimeout,
			SourceTimeout: cfg.Scan.SourceTimeout,
		},
	)

	// Initialize HTTP server
	var historyStore handlers.HistoryStore
	if history != nil {
		historyStore = history
	}
	httpServer := server.NewServer(cfg.Server, scanner, historyStore, supplementCache)

	// Start HTTP server
	go func() {
		log.Printf("Starting HTTP server on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	log.Println("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Shutdown HTTP server
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MinIdleConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.Ping(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

// Initialize NATS connection
func initNATS(cfg config.NATSConfig) (*nats.Conn, error) {
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("NATS reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Printf("NATS connection closed")
		}),
	}

	return nats.Connect(cfg.URL, options...)
}
