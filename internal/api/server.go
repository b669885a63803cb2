// Package api exposes the identification façade over HTTP. Adapted from
// CineVault's internal/api/server.go: the Server-struct-wraps-
// dependencies shape, the stdlib net/http.ServeMux with Go 1.22+
// "METHOD /path" route patterns, and the respondJSON/respondError
// envelope helpers are all grounded on that file (the teacher's actual
// route table is built this way; the separate go-chi-based
// internal/auth/handlers.go the teacher also carries is an
// inconsistency in that checkout — go-chi never appears in the
// teacher's go.mod — so it is not reproduced here). Every other
// CineVault concern server.go wires (libraries, transcoding, detection,
// users, scanning) has no counterpart in this domain and is not carried.
package api

import (
	"log"
	"net/http"
	"time"

	"github.com/mediavault/identifier/internal/audit"
	"github.com/mediavault/identifier/internal/auth"
	"github.com/mediavault/identifier/internal/config"
	"github.com/mediavault/identifier/internal/httputil"
	"github.com/mediavault/identifier/internal/identifier"
	"github.com/mediavault/identifier/internal/mediainfo"
	"github.com/mediavault/identifier/internal/wshub"
)

// Server owns the identification façade's HTTP surface.
type Server struct {
	config     *config.Config
	identifier *identifier.Identifier
	auditor    *audit.Writer
	authMW     *auth.Middleware
	wsHub      *wshub.Hub
	router     *http.ServeMux
}

func NewServer(cfg *config.Config, idf *identifier.Identifier, auditor *audit.Writer, hub *wshub.Hub) *Server {
	s := &Server{
		config:     cfg,
		identifier: idf,
		auditor:    auditor,
		authMW:     auth.NewMiddleware(cfg.ServiceTokenSecret),
		wsHub:      hub,
		router:     http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /api/v1/status", s.handleStatus)

	s.router.Handle("POST /api/v1/identify/filename", s.authMW.RequireAuth(http.HandlerFunc(s.handleIdentifyByFilename)))
	s.router.Handle("POST /api/v1/identify/metadata", s.authMW.RequireAuth(http.HandlerFunc(s.handleIdentifyByMetadata)))

	s.router.Handle("/ws/identifications", s.authMW.RequireAuth(s.wsHub))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ws_clients": s.wsHub.ClientCount(),
	})
}

// recordAudit builds a RequestRecord from a completed call and enqueues
// it, logging rather than failing the HTTP response if the queue write
// itself fails — an audit hiccup must never mask a successful
// identification.
func (s *Server) recordAudit(requestID, endpoint, filename, requesterIP string, receivedAt time.Time, media *mediainfo.MediaInfo, callErr error) {
	if s.auditor == nil {
		return
	}
	rec := audit.RequestRecord{
		ID:          requestID,
		Endpoint:    endpoint,
		Filename:    filename,
		RequesterIP: requesterIP,
		ReceivedAt:  receivedAt,
		RespondedAt: time.Now(),
		ElapsedTime: time.Since(receivedAt).Seconds(),
	}
	switch {
	case callErr != nil:
		rec.ResultStatus = "error"
		rec.ErrorMessage = callErr.Error()
	case media == nil:
		rec.ResultStatus = "not_identified"
	default:
		rec.ResultStatus = "ok"
	}
	if err := s.auditor.EnqueueRequest(rec); err != nil {
		// The write is best-effort; the caller already has their answer.
		log.Printf("api: failed to enqueue audit record: %v", err)
	}
}
