package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cse-nriit/tt-backend/internal/assignments"
	"github.com/cse-nriit/tt-backend/internal/auth"
	"github.com/cse-nriit/tt-backend/internal/config"
	"github.com/cse-nriit/tt-backend/internal/courses"
	"github.com/cse-nriit/tt-backend/internal/db"
	"github.com/cse-nriit/tt-backend/internal/faculty"
	"github.com/cse-nriit/tt-backend/internal/logger"
	"github.com/cse-nriit/tt-backend/internal/mailer"
	"github.com/cse-nriit/tt-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	log := logger.New("server")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close(gdb)

	authStore := auth.NewStore(gdb)
	if err := authStore.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate auth tables")
	}
	if err := courses.Init(gdb); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate courses table")
	}
	if err := faculty.Init(gdb); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate faculty table")
	}
	if err := assignments.Init(gdb); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate assignments table")
	}

	smtp, err := mailer.NewSMTP(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.EmailFrom,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up mailer")
	}

	authService := auth.NewService(authStore, smtp, cfg.ClientURL, cfg.SessionTTL, log)
	authHandler := auth.NewHandler(authService, cfg.Production, cfg.SessionTTL)
	fetcher := auth.NewSessionInfo(authStore, cfg.SessionTTL)

	// 5 credential attempts per second with a small burst, per client IP.
	limiter := middleware.NewIPRateLimiter(rate.Limit(5), 10)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware([]string{cfg.ClientURL}))
	r.Get("/", RootHandler)

	r.Mount("/auth", auth.SetupRoutes(authHandler, fetcher, limiter))
	r.Mount("/courses", courses.SetupRoutes(courses.NewHandler(gdb), fetcher))
	r.Mount("/faculty", faculty.SetupRoutes(faculty.NewHandler(gdb), fetcher))
	r.Mount("/assign", assignments.SetupRoutes(assignments.NewHandler(gdb), fetcher))

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown did not complete cleanly")
	}
	log.Info().Msg("server stopped")
}
