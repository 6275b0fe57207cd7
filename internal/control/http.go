package control

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/supby/relay2mqtt/internal/logger"
)

const requestTimeout = 10 * time.Second

// Server exposes the control interface over HTTP. Every route accepts GET
// and POST; form values come from the query string and the body.
type Server struct {
	httpServer *http.Server
	iface      *Interface
	logger     logger.Logger
	listener   net.Listener
}

func NewServer(address string, iface *Interface, log logger.Logger) *Server {
	s := &Server{
		iface:  iface,
		logger: log,
	}

	s.httpServer = &http.Server{
		Addr:              address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: requestTimeout,
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.serve)
}

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	s.listener = ln

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server: %v", err)
		}
	}()

	s.logger.Info("HTTP server started on %v", ln.Addr())
	return nil
}

func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Shutdown stops accepting requests and waits for in-flight responses.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	resp, err := s.iface.Submit(ctx, r.URL.Path, r.Form)
	if err != nil {
		s.logger.Warn("%v %v: %v", r.Method, r.URL.Path, err)
		http.Error(w, "device busy", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(resp.Status)
	if _, err := w.Write(resp.Body); err != nil {
		s.logger.Debug("Write response: %v", err)
	}
}
