// main is the entry point of the mortgage calculation API.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Build the calculation-result cache (in-memory or Redis)
//  4. Register all HTTP routes and the middleware chain
//  5. Start the HTTP server in a separate goroutine
//  6. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/mortgage-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/mortgage-api
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/mortgage-api/internal/cache"
	"github.com/aanand-mishra/mortgage-api/internal/config"
	"github.com/aanand-mishra/mortgage-api/internal/http/handlers/mortgage"
	"github.com/aanand-mishra/mortgage-api/internal/http/middleware"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// MustLoad reads the YAML config and panics if anything is wrong.
	// The name "Must" signals: if this returns, config is guaranteed valid.
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// slog is Go's structured logger (stdlib since Go 1.21). Setting it
	// as the default means every slog call in handlers and middleware
	// uses the env-appropriate handler.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting mortgage-api",
		slog.String("env", cfg.Env),
		slog.String("service", mortgage.ServiceName),
	)

	// ── 3. Initialise Result Cache ────────────────────────────────────────
	// We store the result as the cache.Cache INTERFACE, not a concrete
	// type. The handlers only know about the interface — swapping
	// backends requires changing only this switch.
	var store cache.Cache
	switch cfg.Cache.Backend {
	case "redis":
		store = cache.NewRedis(cfg.Cache.RedisAddr, cfg.Cache.TTL)
		log.Info("result cache initialised",
			slog.String("backend", "redis"),
			slog.String("address", cfg.Cache.RedisAddr))
	default:
		store = cache.NewMemory(cfg.Cache.TTL)
		log.Info("result cache initialised",
			slog.String("backend", "memory"))
	}

	// ── 4. Register HTTP Routes ───────────────────────────────────────────
	// The handler functions (mortgage.Calculate, etc.) are FACTORIES —
	// they receive their dependencies and return the actual handler.
	//
	// Route table:
	//   POST /api/mortgage/calculate → validate + monthly payment
	//   POST /api/mortgage/schedule  → validate + payment + yearly breakdown
	//   GET  /api/mortgage/health    → liveness probe
	router := http.NewServeMux()

	router.HandleFunc("POST /api/mortgage/calculate", mortgage.Calculate(store))
	router.HandleFunc("POST /api/mortgage/schedule", mortgage.Schedule())
	router.HandleFunc("GET /api/mortgage/health", mortgage.Health())

	// Middleware chain, outermost first: request ID → logging → CORS →
	// rate limit → router. The health probe shares the chain; its budget
	// cost is negligible next to uniform handling.
	limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	defer limiter.Stop()

	handler := middleware.RequestID(
		middleware.Logging(
			middleware.CORS(cfg.CORS.AllowedOrigin,
				middleware.RateLimit(limiter, router))))

	// ── 5. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: handler,

		// Production hardening — set timeouts to prevent slow-client attacks.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 6. Start Server in a Goroutine ────────────────────────────────────
	// ListenAndServe blocks forever. If we called it here in main(), the
	// graceful-shutdown code below would never run.
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed when Shutdown() is
		// called. That's expected — we don't want to log it as an error.
		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	// Buffered so we don't miss the signal if main is briefly busy.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	// Stop accepting new connections, then wait up to 5 seconds for
	// in-flight requests to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
