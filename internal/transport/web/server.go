package web

import (
	"context"
	"embed"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sandevgo/quillbot/internal/config"
	"github.com/sandevgo/quillbot/internal/service/relay"
	"github.com/sandevgo/quillbot/pkg/log"
)

//go:embed static
var staticFS embed.FS

const sessionCookie = "quill_session"

// Server is the JSON/HTTP front end: a small API over the relay plus an
// embedded single-page UI. Sessions are correlated with an opaque cookie.
type Server struct {
	addr       string
	svc        *relay.Relay
	httpServer *http.Server
}

func NewServer(cfg *config.AppConfig, svc *relay.Relay) *Server {
	return &Server{
		addr: cfg.HTTPAddr,
		svc:  svc,
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/context", s.handleAddContext)
	mux.HandleFunc("GET /api/contexts", s.handleListContexts)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("POST /api/clear", s.handleClear)
	mux.HandleFunc("POST /api/summary", s.handleSummary)
	return mux
}

func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	log.FromCtx(ctx).Info().Str("addr", s.addr).Msg("web transport listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	// The caller's context is already done when shutdown starts; keep its
	// values but give the drain its own deadline.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "index not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}
