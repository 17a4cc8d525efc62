package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
	"github.com/fredcamaral/slidecraft/internal/domain/ports"
)

// Version is reported by the health endpoint
var Version = "dev"

// maxRequestBody caps JSON request bodies
const maxRequestBody = 1 << 20

// HTTPLogger provides structured logging for the HTTP server
type HTTPLogger struct {
	component string
	level     entities.LogLevel
}

// NewHTTPLogger creates a new HTTP logger instance at info level
func NewHTTPLogger(component string) *HTTPLogger {
	return NewHTTPLoggerWithLevel(component, entities.LogLevelInfo)
}

// NewHTTPLoggerWithLevel creates a new HTTP logger instance with specific level
func NewHTTPLoggerWithLevel(component string, level entities.LogLevel) *HTTPLogger {
	return &HTTPLogger{component: component, level: level}
}

var levelOrder = map[entities.LogLevel]int{
	entities.LogLevelDebug: 0,
	entities.LogLevelInfo:  1,
	entities.LogLevelWarn:  2,
	entities.LogLevelError: 3,
}

// shouldLog checks if the message should be logged based on level
func (l *HTTPLogger) shouldLog(msgLevel entities.LogLevel) bool {
	return levelOrder[msgLevel] >= levelOrder[l.level]
}

func (l *HTTPLogger) logf(tag string, level entities.LogLevel, msg string, args []interface{}) {
	if l.shouldLog(level) {
		log.Printf("[%s] [%s] "+msg, append([]interface{}{tag, l.component}, args...)...)
	}
}

// Debug logs debug messages
func (l *HTTPLogger) Debug(msg string, args ...interface{}) {
	l.logf("DEBUG", entities.LogLevelDebug, msg, args)
}

// Info logs informational messages
func (l *HTTPLogger) Info(msg string, args ...interface{}) {
	l.logf("INFO", entities.LogLevelInfo, msg, args)
}

// Warn logs warning messages
func (l *HTTPLogger) Warn(msg string, args ...interface{}) {
	l.logf("WARN", entities.LogLevelWarn, msg, args)
}

// Error logs error messages
func (l *HTTPLogger) Error(msg string, args ...interface{}) {
	l.logf("ERROR", entities.LogLevelError, msg, args)
}

// Success logs success messages at info level
func (l *HTTPLogger) Success(msg string, args ...interface{}) {
	l.logf("SUCCESS", entities.LogLevelInfo, msg, args)
}

// SetLevel updates the logging level
func (l *HTTPLogger) SetLevel(level entities.LogLevel) {
	l.level = level
}

// Services are the domain collaborators behind the API
type Services struct {
	Builder   ports.DeckBuilder
	Templates ports.TemplateLibrary
	Quick     ports.SlideGenerator

	// Generator is optional; generate requests fail with 503 without it
	Generator ports.SlideGenerator

	// Exports is optional; export requests fail with 400 without it
	Exports ports.ExportService

	// Sanitizer cleans template values; optional
	Sanitizer ports.TextSanitizer

	// Metrics receives build events and request counts; optional
	Metrics ports.MetricsRecorder

	// UploadsDir is scanned for custom base templates
	UploadsDir string
}

// Server implements the HTTPServer interface
type Server struct {
	server   *http.Server
	connMgr  *ConnectionManager
	services Services
	registry *BuildRegistry
	config   *entities.ServerConfig
	logger   *HTTPLogger
	limiter  *rateLimiter
	mu       sync.RWMutex
	running  bool
}

// NewServer creates a new HTTP server.
// config must not be nil; use config.GetDefaultConfig().Server if needed.
func NewServer(services Services, config *entities.ServerConfig, loggingConfig *entities.LoggingConfig) *Server {
	if config == nil {
		panic("server config cannot be nil - provide a valid ServerConfig")
	}

	level := entities.LogLevelInfo
	if loggingConfig != nil {
		level = loggingConfig.GetLevel()
	}

	return &Server{
		connMgr:  NewConnectionManager(),
		services: services,
		registry: NewBuildRegistry(defaultRegistrySize),
		config:   config,
		logger:   NewHTTPLoggerWithLevel("server", level),
		limiter:  newRateLimiter(defaultRateLimit, time.Minute),
	}
}

// Logger returns the server logger so callers can share it with services
func (s *Server) Logger() *HTTPLogger {
	return s.logger
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context, port int, host string) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}

	go s.connMgr.Run(ctx)
	go s.limiter.cleanupRoutine(ctx)

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           s.Handler(),
		ReadTimeout:       s.config.GetReadTimeout(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.config.GetWriteTimeout(),
		IdleTimeout:       60 * time.Second,
	}
	s.running = true
	s.mu.Unlock()

	go func() {
		s.logger.Info("HTTP server starting on %s:%d", host, port)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.New("server not running")
	}

	s.connMgr.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.GetShutdownTimeout())
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.running = false
	return nil
}

// NotifyClients sends an update event to all connected clients
func (s *Server) NotifyClients(event ports.UpdateEvent) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.running {
		return errors.New("server not running")
	}

	s.connMgr.Broadcast(event)
	return nil
}

// IsRunning returns whether the server is currently running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Handler returns the routed API with CORS and middleware applied
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.GetCORSOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           300,
	})
	return c.Handler(s.setupRoutes())
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/ws", s.handleWebSocket).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)
	api.HandleFunc("/themes", s.handleThemes).Methods(http.MethodGet)

	api.HandleFunc("/templates", s.handleTemplates).Methods(http.MethodGet)
	api.HandleFunc("/templates/uploads", s.handleUploads).Methods(http.MethodGet)
	api.HandleFunc("/templates/{id}", s.handleTemplate).Methods(http.MethodGet)

	api.HandleFunc("/decks", s.handleListDecks).Methods(http.MethodGet)
	api.HandleFunc("/decks", s.handleBuildDeck).Methods(http.MethodPost)
	api.HandleFunc("/decks/quick", s.handleQuickDeck).Methods(http.MethodPost)
	api.HandleFunc("/decks/generate", s.handleGenerateDeck).Methods(http.MethodPost)
	api.HandleFunc("/decks/template/{id}", s.handleTemplateDeck).Methods(http.MethodPost)
	api.HandleFunc("/decks/{id}", s.handleGetDeck).Methods(http.MethodGet)
	api.HandleFunc("/decks/{id}/download", s.handleDownload).Methods(http.MethodGet)
	api.HandleFunc("/decks/{id}/exports/{format}", s.handleExportDownload).Methods(http.MethodGet)

	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handleError(w, errors.New("no route for "+r.URL.Path), http.StatusNotFound)
	})
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handleError(w, errors.New(r.Method+" not allowed on "+r.URL.Path), http.StatusMethodNotAllowed)
	})
	// Subrouters resolve their own misses; the root handlers never see /api requests
	router.NotFoundHandler, api.NotFoundHandler = notFound, notFound
	router.MethodNotAllowedHandler, api.MethodNotAllowedHandler = methodNotAllowed, methodNotAllowed

	// Outermost first
	router.Use(func(next http.Handler) http.Handler { return createRecoveryMiddleware(next, s.logger) })
	router.Use(func(next http.Handler) http.Handler { return createLoggingMiddleware(next, s.logger) })
	if s.services.Metrics != nil {
		router.Use(func(next http.Handler) http.Handler { return createMetricsMiddleware(next, s.services.Metrics) })
	}
	router.Use(s.limiter.middleware)
	router.Use(securityHeadersMiddleware)

	return router
}

var _ ports.HTTPServer = (*Server)(nil)
