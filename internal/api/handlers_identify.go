package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/mediavault/identifier/internal/audit"
	"github.com/mediavault/identifier/internal/httputil"
	"github.com/mediavault/identifier/internal/identifier"
	"github.com/mediavault/identifier/internal/mediainfo"
	"github.com/mediavault/identifier/internal/pipeline"
	"github.com/mediavault/identifier/internal/wshub"
)

type identifyByFilenameRequest struct {
	FilePath string `json:"file_path"`
}

type identifyByMetadataRequest struct {
	MediaType string `json:"media_type"`
	Title     string `json:"title"`
	Year      int    `json:"year"`
	Season    *int   `json:"season,omitempty"`
	Episode   *int   `json:"episode,omitempty"`
}

func (s *Server) handleIdentifyByFilename(w http.ResponseWriter, r *http.Request) {
	var body identifyByFilenameRequest
	if err := httputil.ReadJSON(r, &body); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INPUT_ERROR", "request body must be valid JSON")
		return
	}

	requestID := audit.NewRequestID()
	receivedAt := time.Now()

	media, err := s.identifier.IdentifyByFilename(body.FilePath)

	s.recordAudit(requestID, "identify_by_filename", body.FilePath, r.RemoteAddr, receivedAt, media, err)
	s.writeIdentifyResult(w, requestID, media, err)
}

func (s *Server) handleIdentifyByMetadata(w http.ResponseWriter, r *http.Request) {
	var body identifyByMetadataRequest
	if err := httputil.ReadJSON(r, &body); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INPUT_ERROR", "request body must be valid JSON")
		return
	}

	requestID := audit.NewRequestID()
	receivedAt := time.Now()

	media, err := s.identifier.IdentifyByMetadata(body.MediaType, body.Title, body.Year, body.Season, body.Episode)

	s.recordAudit(requestID, "identify_by_metadata", "", r.RemoteAddr, receivedAt, media, err)
	s.writeIdentifyResult(w, requestID, media, err)
}

// writeIdentifyResult maps the façade's outcome onto spec §7's error
// taxonomy: a nil error with nil media is NotIdentified (204); an
// *identifier.InputError is 400; everything else (PipelineFatal via
// *pipeline.ExecutionError, PersistenceError, or any other failure) is
// 500 and is never swallowed. A successful identification also
// broadcasts to wshub so connected clients see it land.
func (s *Server) writeIdentifyResult(w http.ResponseWriter, requestID string, media *mediainfo.MediaInfo, err error) {
	if err != nil {
		var inputErr *identifier.InputError
		if errors.As(err, &inputErr) {
			httputil.WriteError(w, httputil.StatusFor(httputil.KindInput), "INPUT_ERROR", err.Error())
			return
		}

		var execErr *pipeline.ExecutionError
		if errors.As(err, &execErr) {
			httputil.WriteError(w, httputil.StatusFor(httputil.KindPipelineFatal), "PIPELINE_FATAL", err.Error())
			return
		}

		var persistErr *identifier.PersistenceError
		if errors.As(err, &persistErr) {
			httputil.WriteError(w, httputil.StatusFor(httputil.KindPersistence), "PERSISTENCE_ERROR", err.Error())
			return
		}

		httputil.WriteError(w, httputil.StatusFor(httputil.KindInternal), "INTERNAL_ERROR", err.Error())
		return
	}

	if media == nil {
		w.WriteHeader(httputil.StatusFor(httputil.KindNotIdentified))
		return
	}

	event := wshub.Event{RequestID: requestID, Status: "ok"}
	if media.ID != nil {
		event.MediaID = *media.ID
	}
	s.wsHub.Broadcast(event)
	httputil.WriteJSON(w, http.StatusOK, media)
}
