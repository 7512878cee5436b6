package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"ela-quiz-service/internal/bank"
	"ela-quiz-service/internal/config"
	"ela-quiz-service/internal/domain"
	filebank "ela-quiz-service/internal/infra/file"
	"ela-quiz-service/internal/infra/memory"
	pgbank "ela-quiz-service/internal/infra/postgres"
	redisinfra "ela-quiz-service/internal/infra/redis"
	transport "ela-quiz-service/internal/transport/http"
	"ela-quiz-service/internal/translate"
)

// NewServeCmd builds the CLI subcommand to start the websocket quiz server.
func NewServeCmd(configPath, port, language *string, defaultPort string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve quizzes to the web UI over websockets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port, *language)
		},
	}
	cmd.Flags().StringVar(port, "port", defaultPort, "port to listen on")
	return cmd
}

func runServer(ctx context.Context, configPath, portFlag, langFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}
	defaultLanguage := langFlag
	if defaultLanguage == "" {
		defaultLanguage = cfg.DefaultLanguage()
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.BankLoader
	switch {
	case pool != nil:
		loader = pgbank.NewBankLoader(pool)
	case cfg.Banks.Dir != "":
		loader = filebank.NewBankLoader(cfg.Banks.Dir)
	default:
		// No bank source configured; serve the built-in sample bank.
		loader = memory.NewStaticBankLoader(map[string]domain.Bank{"sample": bank.Sample()})
	}

	bankTTL := config.TTLDuration(cfg.Banks.TTL, 10*time.Minute)
	var banks transport.BankSource
	if redisClient != nil {
		banks = redisinfra.NewBankRepository(redisClient, loader, bankTTL)
	} else {
		banks = memory.NewBankRepository(loader, bankTTL)
	}

	var cache translate.Cache
	if redisClient != nil {
		cache = redisinfra.NewTranslationCache(redisClient, redisTTL)
	} else {
		cache = memory.NewTranslationCache()
	}
	translateTimeout := config.TTLDuration(cfg.Translator.Timeout, 5*time.Second)
	var provider translate.Provider
	if cfg.Translator.Endpoint != "" {
		provider = translate.NewHTTPProvider(cfg.Translator.Endpoint, cfg.Translator.APIKey, translateTimeout)
	}
	resolver := translate.NewResolver(provider, cache, translateTimeout)

	wsHandler := transport.NewWSHandler(banks, resolver, defaultLanguage)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
