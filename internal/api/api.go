package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/ngthanhdat/chitieubot/internal/config"
	"github.com/ngthanhdat/chitieubot/internal/ledger"
	"github.com/ngthanhdat/chitieubot/internal/summary"
)

// API exposes read access to the ledger over HTTP, authenticated with
// short-lived JWTs issued against the deploy-time API key.
type API struct {
	router    *mux.Router
	ledger    *ledger.Service
	summary   *summary.Service
	config    *config.Config
	jwtSecret []byte
}

func New(cfg *config.Config, ledgerSvc *ledger.Service, summarySvc *summary.Service) *API {
	api := &API{
		router:    mux.NewRouter(),
		ledger:    ledgerSvc,
		summary:   summarySvc,
		config:    cfg,
		jwtSecret: []byte(cfg.JWTSecret),
	}

	api.setupRoutes()
	return api
}

func (a *API) setupRoutes() {
	// Token issuance (API-key gated)
	a.router.HandleFunc("/api/auth/token", a.handleIssueToken).Methods("POST")

	// Protected endpoints
	protected := a.router.PathPrefix("/api").Subrouter()
	protected.Use(a.authMiddleware)

	protected.HandleFunc("/users/{user_id}/balance", a.handleGetBalance).Methods("GET")
	protected.HandleFunc("/users/{user_id}/transactions", a.handleListTransactions).Methods("GET")
	protected.HandleFunc("/users/{user_id}/summary", a.handleSummary).Methods("GET")
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (a *API) Start(ctx context.Context) error {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Api-Key"},
		AllowCredentials: false,
	}

	srv := &http.Server{
		Addr:    a.config.WebBind,
		Handler: cors.New(corsOptions).Handler(a.router),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Printf("API server listening on http://%s", a.config.WebBind)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
