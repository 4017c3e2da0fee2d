// Package server assembles the HTTP router, middleware and services.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mmzou/contactbook/internal/auth"
	"github.com/mmzou/contactbook/internal/httputil"
	"github.com/mmzou/contactbook/internal/metrics"
	"github.com/mmzou/contactbook/internal/middleware"
	"github.com/mmzou/contactbook/internal/service"
	"github.com/mmzou/contactbook/internal/storage"
)

// New builds the complete HTTP handler: routes, identity resolution, logging,
// CORS and metrics.
//
// /api/register and /api/login are public; every other /api route requires a
// valid session token.
func New(store storage.Store, tokens *auth.JWTManager, logger *slog.Logger) http.Handler {
	authenticator := auth.NewPasswordAuthenticator(store)
	authSvc := service.NewAuthService(authenticator, tokens, logger)
	groupSvc := service.NewGroupService(store, logger)
	contactSvc := service.NewContactService(store, logger)

	r := mux.NewRouter()
	r.Use(middleware.Metrics())

	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)

	public := r.PathPrefix("/api").Subrouter()
	public.HandleFunc("/register", authSvc.HandleRegister).Methods(http.MethodPost)
	public.HandleFunc("/login", authSvc.HandleLogin).Methods(http.MethodPost)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(middleware.RequireAuth(tokens, store))
	protected.HandleFunc("/groups", groupSvc.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/groups", groupSvc.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/contacts", contactSvc.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/contacts", contactSvc.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/contacts", contactSvc.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/contacts", contactSvc.HandleDelete).Methods(http.MethodDelete)

	// CORS sits outside the router so OPTIONS preflights are answered before
	// route matching; logging wraps everything.
	return middleware.Logging(middleware.CORS(r))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
