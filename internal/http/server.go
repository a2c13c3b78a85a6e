package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"gestionale/internal/cache"
	applog "gestionale/internal/log"
	"gestionale/internal/services"
	"gestionale/internal/store"
)

type Server struct {
	http.Server

	store       store.EntityStore
	clients     *services.ClientService
	contracts   *services.ContractService
	dashboard   *services.DashboardService
	session     *services.SessionService
	rateLimiter *rateLimiter
	logger      *applog.Logger

	// Dashboard payloads are cached per filter and purged on every write.
	dashCache    *cache.LRUCache[*services.Dashboard]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer wires routes over the entity store and services.
func NewServer(addr string, entityStore store.EntityStore, publisher services.SyncPublisher) *Server {
	mux := http.NewServeMux()

	session := services.NewSessionService(entityStore)
	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:        entityStore,
		clients:      services.NewClientService(entityStore),
		contracts:    services.NewContractService(entityStore, publisher),
		dashboard:    services.NewDashboardService(entityStore, session),
		session:      session,
		rateLimiter:  newRateLimiter(),
		logger:       applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP),
		dashCache:    cache.NewLRUCache[*services.Dashboard](50, 2*time.Minute),
		cacheManager: cache.NewManager(),
	}
	s.cacheManager.Register(s.dashCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, s.withSecurityHeaders(h))
	}

	handle("GET /clients", s.handleListClients)
	handle("POST /clients", s.handleCreateClient)
	handle("GET /clients/{id}", s.handleGetClient)
	handle("PUT /clients/{id}", s.handleUpdateClient)
	handle("DELETE /clients/{id}", s.handleDeleteClient)
	handle("GET /clients/{id}/contracts", s.handleListClientContracts)

	handle("GET /contracts", s.handleListContracts)
	handle("POST /contracts", s.handleCreateContract)
	handle("GET /contracts/expiring", s.handleListExpiringContracts)
	handle("GET /contracts/{id}", s.handleGetContract)
	handle("PUT /contracts/{id}", s.handleUpdateContract)
	handle("DELETE /contracts/{id}", s.handleDeleteContract)

	handle("GET /appointments", s.handleListAppointments)
	handle("POST /appointments", s.handleCreateAppointment)
	handle("GET /appointments/{id}", s.handleGetAppointment)
	handle("PUT /appointments/{id}", s.handleUpdateAppointment)
	handle("DELETE /appointments/{id}", s.handleDeleteAppointment)

	handle("GET /tasks", s.handleListTasks)
	handle("POST /tasks", s.handleCreateTask)
	handle("GET /tasks/{id}", s.handleGetTask)
	handle("PUT /tasks/{id}", s.handleUpdateTask)
	handle("DELETE /tasks/{id}", s.handleDeleteTask)

	handle("GET /reference/{kind}", s.handleListReference)
	handle("POST /reference/{kind}", s.handleAddReference)
	handle("DELETE /reference/{kind}", s.handleRemoveReference)

	handle("GET /dashboard", s.handleDashboard)
	handle("POST /dashboard/checkups/dismiss", s.handleDismissCheckup)
	handle("POST /dashboard/checkups/clear", s.handleClearDismissals)
	handle("GET /search", s.handleSearch)
	handle("POST /billsplit", s.handleBillSplit)

	handle("POST /auth/gate", s.handleAuthGate)
	handle("PUT /auth/credentials", s.handleSetCredentials)
	handle("GET /prefs/widgets", s.handleGetWidgetPrefs)
	handle("PUT /prefs/widgets", s.handleSetWidgetPrefs)

	return s
}

// invalidateDashboard drops every cached dashboard. Called after any write
// that can change a derived view.
func (s *Server) invalidateDashboard() {
	s.dashCache.Purge()
}

// Shutdown stops the cleanup goroutines, then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.StopCleanup()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
