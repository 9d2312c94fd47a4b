package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"studentapi/internal/handler"
)

// Options configures the HTTP server.
type Options struct {
	Addr            string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

type Server struct {
	http *http.Server
	opts Options
}

// NewRouter registers the API routes, then the landing page, then the
// static file server as the catch-all.
func NewRouter(studentHandler *handler.StudentHandler, pageHandler *handler.PageHandler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/students/above-threshold", studentHandler.AboveThreshold).Methods(http.MethodPost)
	r.HandleFunc("/healthz", studentHandler.Health).Methods(http.MethodGet)
	r.HandleFunc("/", pageHandler.Index).Methods(http.MethodGet, http.MethodHead)
	r.PathPrefix("/").Handler(pageHandler.Static()).Methods(http.MethodGet, http.MethodHead)

	return r
}

// New wraps router with access logging, panic recovery and CORS.
func New(router http.Handler, opts Options) *Server {
	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}

	h := handlers.CORS(
		handlers.AllowedOrigins(opts.CORSOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(router)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
	h = handlers.CombinedLoggingHandler(os.Stdout, h)

	return &Server{
		opts: opts,
		http: &http.Server{
			Addr:              opts.Addr,
			Handler:           h,
			ReadTimeout:       5 * time.Second,
			ReadHeaderTimeout: 2 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Handler exposes the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start begins serving HTTP in a background goroutine. Errors other than
// a graceful close are sent on the returned channel.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server running at http://localhost%s", s.http.Addr)
		if err := s.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// Stop gracefully shuts down the server, waiting up to ShutdownTimeout.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.opts.ShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}
