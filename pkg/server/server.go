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

	handlers "github.com/restoreco/claimscope/pkg/handlers/claim"
	claimscopemiddleware "github.com/restoreco/claimscope/pkg/server/middleware"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Extractor handlers.Extractor
	Store     handlers.Store
	Builder   handlers.SummaryBuilder
	Deliverer handlers.Deliverer
	Logger    zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

// ConfigureRouter wires the wizard routes: extract (upload stage),
// review mutations, and the finalized summary/export stage.
func ConfigureRouter(config Config) *chi.Mux {
	h := handlers.NewHandler(
		config.Dependencies.Extractor,
		config.Dependencies.Store,
		config.Dependencies.Builder,
		config.Dependencies.Deliverer,
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(claimscopemiddleware.Logger(&config.Dependencies.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/claims", h.Extract)
		r.Route("/claims/{claimID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Delete("/", h.Delete)
			r.Get("/totals", h.Totals)
			r.Put("/deductible", h.SetDeductible)
			r.Post("/line-items/{itemID}/toggle", h.ToggleLineItem)
			r.Put("/line-items/{itemID}/notes", h.SetNotes)
			r.Post("/trades/{tradeID}/toggle", h.ToggleTrade)
			r.Post("/trades/{tradeID}/supplements", h.AddSupplement)
			r.Delete("/trades/{tradeID}/supplements/{supplementID}", h.RemoveSupplement)
			r.Post("/finalize", h.Finalize)
			r.Get("/summary", h.Summary)
			r.Post("/export", h.Export)
		})
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &config.Dependencies.Logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: shutdownTimeout,
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
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
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
