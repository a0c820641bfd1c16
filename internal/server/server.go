// Package server exposes the calculator and bill operations as a JSON
// HTTP API. It is the thin host surface: identity comes from the bearer
// token, the working bill lives in the session store between requests,
// and every operation delegates to the service layer.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/frozen33/inventory/internal/auth"
	"github.com/frozen33/inventory/internal/middleware"
	"github.com/frozen33/inventory/internal/service"
	"github.com/frozen33/inventory/internal/session"
)

// Server holds the dependencies of the HTTP surface.
type Server struct {
	svc      *service.BillService
	sessions *session.Store
}

// New creates a Server over the given service and session store.
func New(svc *service.BillService, sessions *session.Store) *Server {
	return &Server{svc: svc, sessions: sessions}
}

// Handler builds the full middleware-wrapped handler. All /api routes
// require a valid owner token; /metrics and /healthz do not.
func (s *Server) Handler(tokens *auth.TokenManager) http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("POST /api/calculate/floor", s.handleCalculateFloor)
	api.HandleFunc("POST /api/calculate/wall", s.handleCalculateWall)
	api.HandleFunc("GET /api/bill", s.handleGetWorkingBill)
	api.HandleFunc("DELETE /api/bill", s.handleClearWorkingBill)
	api.HandleFunc("DELETE /api/bill/items/{index}", s.handleRemoveItem)
	api.HandleFunc("POST /api/bills", s.handleSaveBill)
	api.HandleFunc("GET /api/bills", s.handleListBills)
	api.HandleFunc("GET /api/bills/{id}", s.handleGetBill)
	api.HandleFunc("DELETE /api/bills/{id}", s.handleDeleteBill)
	api.HandleFunc("POST /api/bills/purge", s.handlePurge)
	api.HandleFunc("GET /api/bills/purge", s.handlePurgePreview)

	mux := http.NewServeMux()
	mux.Handle("/api/", middleware.RequireOwner(tokens)(api))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return middleware.Logging(middleware.CORS(mux))
}
