package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tradepost-hq/tradepost/internal/connectivity"
	"github.com/tradepost-hq/tradepost/internal/database"
	"github.com/tradepost-hq/tradepost/internal/domain"
	"github.com/tradepost-hq/tradepost/internal/entity"
	"github.com/tradepost-hq/tradepost/internal/handler"
	"github.com/tradepost-hq/tradepost/internal/logger"
	"github.com/tradepost-hq/tradepost/internal/metrics"
	"github.com/tradepost-hq/tradepost/internal/syncer"
	"github.com/tradepost-hq/tradepost/internal/validation"
)

type Server struct {
	httpServer  *http.Server
	db          database.Handle
	facades     *entity.Facades
	syncService syncer.Service
	monitor     connectivity.Monitor
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, db database.Handle, facades *entity.Facades, syncService syncer.Service, monitor connectivity.Monitor, payloads validation.PayloadValidator) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(db))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		mountEntityRoutes(r, domain.StoreQuotes, facades.Quotes, newQuote, payloads)
		mountEntityRoutes(r, domain.StoreCustomers, facades.Customers, newCustomer, payloads)
		mountEntityRoutes(r, domain.StoreExpenses, facades.Expenses, newExpense, payloads)
		mountEntityRoutes(r, domain.StoreScheduleEntries, facades.ScheduleEntries, newScheduleEntry, payloads)
		mountEntityRoutes(r, domain.StoreJobPacks, facades.JobPacks, newJobPack, payloads)

		r.Route("/sync", func(r chi.Router) {
			r.Get("/status", handler.HandleSyncStatus(syncService))
			r.Get("/pending", handler.HandleSyncPending(syncService))
			r.Post("/drain", handler.HandleSyncDrain(syncService))
			r.Post("/bulk", handler.HandleSyncBulk(syncService))
			r.Post("/connectivity", handler.HandleSetConnectivity(monitor))
		})

		r.Route("/session", func(r chi.Router) {
			r.Post("/logout", handler.HandleLogout(syncService))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		db:          db,
		facades:     facades,
		syncService: syncService,
		monitor:     monitor,
	}
}

// mountEntityRoutes wires the CRUD surface for one record type under /<store>.
func mountEntityRoutes[T domain.Record](r chi.Router, storeName string, svc entity.Service[T], newRecord func() T, payloads validation.PayloadValidator) {
	r.Route("/"+storeName, func(r chi.Router) {
		r.Get("/", handler.HandleListEntities(svc))
		r.Post("/", handler.HandleCreateEntity(svc, newRecord))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handler.HandleGetEntity(svc))
			r.Put("/", handler.HandleUpdateEntity(svc, newRecord, storeName, payloads))
			r.Delete("/", handler.HandleDeleteEntity(svc))
		})
	})
}

func newQuote() *domain.Quote                 { return &domain.Quote{} }
func newCustomer() *domain.Customer           { return &domain.Customer{} }
func newExpense() *domain.Expense             { return &domain.Expense{} }
func newScheduleEntry() *domain.ScheduleEntry { return &domain.ScheduleEntry{} }
func newJobPack() *domain.JobPack             { return &domain.JobPack{} }

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
