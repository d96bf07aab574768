package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"Ozone/internal/api/handlers/wellknown"
	"Ozone/internal/api/middleware"
	"Ozone/internal/api/routes"
	"Ozone/internal/atproto/identity"
	"Ozone/internal/core/labelerconfig"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel()})))

	port := getEnv("PORT", "8080")

	// Own origin: the well-known fallback when no DID is supplied
	publicURL := getEnv("OZONE_PUBLIC_URL", "http://localhost:"+port)

	plcURL := getEnv("PLC_DIRECTORY_URL", identity.DefaultPLCURL)

	allowPrivateIPs := os.Getenv("ALLOW_PRIVATE_IPS") == "true"
	if allowPrivateIPs {
		slog.Warn("ALLOW_PRIVATE_IPS is set, SSRF protection is disabled (development only)")
	}

	apiRateLimit, err := strconv.Atoi(getEnv("API_RATE_LIMIT", "60"))
	if err != nil || apiRateLimit < 1 {
		log.Fatalf("Invalid API_RATE_LIMIT: %q", os.Getenv("API_RATE_LIMIT"))
	}

	// Only honor X-Forwarded-For / X-Real-IP when a reverse proxy sets them
	trustProxy := os.Getenv("TRUST_PROXY") == "true"

	allowedOrigins := splitList(getEnv("OZONE_ALLOWED_ORIGINS", "http://localhost:3000"))

	httpClient := identity.NewSSRFSafeHTTPClient(allowPrivateIPs)
	resolver := identity.NewResolver(identity.Config{
		HTTPClient: httpClient,
		PLCURL:     plcURL,
	})
	configService := labelerconfig.NewService(resolver, httpClient, publicURL)

	labelerHandler := wellknown.NewLabelerHandler(labelerconfig.OzoneMeta{
		DID:       os.Getenv("OZONE_SERVER_DID"),
		URL:       publicURL,
		PublicKey: os.Getenv("OZONE_SIGNING_KEY"),
	})

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	if trustProxy {
		r.Use(chiMiddleware.RealIP)
	}
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	// Global limit: 100 requests per minute per IP
	globalLimiter := middleware.NewRateLimiter(100, 1*time.Minute)
	defer globalLimiter.Stop()
	r.Use(globalLimiter.Middleware)

	apiLimiter := middleware.NewRateLimiter(apiRateLimit, 1*time.Minute)
	defer apiLimiter.Stop()

	routes.RegisterWellKnownRoutes(r, labelerHandler)
	r.Mount("/api/config", routes.LabelerConfigRoutes(configService, apiLimiter, allowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		// Resolution makes up to four sequential 15s fetches
		WriteTimeout: 90 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Ozone config service starting",
			"port", port,
			"public_url", publicURL,
			"plc_url", plcURL,
			"trust_proxy", trustProxy)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func logLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "INFO"))); err != nil {
		return slog.LevelInfo
	}
	return level
}
