package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	handlers "github.com/med-tools/clinreport/pkg/handlers/report"
	clinreportmiddleware "github.com/med-tools/clinreport/pkg/server/middleware"
	"github.com/med-tools/clinreport/pkg/services/export"
)

type Dependencies struct {
	Mailer export.Mailer
	Logger zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

// ConfigureRouter wires the report endpoints under /api/v1.
func ConfigureRouter(config Config) *chi.Mux {
	reportHandler := handlers.NewHandler(config.Dependencies.Mailer)

	router := chi.NewRouter()
	router.Use(clinreportmiddleware.Logger(&config.Dependencies.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/reports/render", reportHandler.Render)
		r.Post("/reports/email", reportHandler.Email)
	})

	return router
}

type WebAPI struct {
	logger *zerolog.Logger
	server *http.Server
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	return &WebAPI{
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: ConfigureRouter(config),
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
