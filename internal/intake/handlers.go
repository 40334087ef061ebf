package intake

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/logobrief/internal/logging"
	"github.com/muurk/logobrief/internal/questionnaire"
	"github.com/muurk/logobrief/internal/submission"
	"github.com/muurk/logobrief/internal/version"
)

// maxBriefBytes bounds the request body of a submitted brief
const maxBriefBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	Subscribers int    `json:"subscribers"`
}

func (s *Server) handleSubmitBrief(w http.ResponseWriter, r *http.Request) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		writeJSON(w, http.StatusUnsupportedMediaType, errorResponse{Error: "content type must be application/json"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBriefBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var form questionnaire.Form
	if err := dec.Decode(&form); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "brief is too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "request body must contain a single JSON object"})
		return
	}
	form = form.Normalize()

	if errs := questionnaire.ValidateWith(s.catalog, form); len(errs) > 0 {
		logging.Warn("Brief rejected",
			zap.String("remote_addr", r.RemoteAddr),
			zap.String("problems", questionnaire.Summarize(errs)),
		)
		writeJSON(w, http.StatusBadRequest, submission.RejectionFromErrors(errs))
		return
	}

	receipt := submission.Receipt{
		ID:         s.newID(),
		ReceivedAt: s.now(),
	}

	logging.Info("Brief received",
		zap.String("id", receipt.ID),
		zap.String("business_name", form.BusinessName),
		zap.String("service_tier", form.ServiceTier),
		zap.String("deadline", form.Deadline),
	)

	s.hub.Broadcast(FeedEvent{
		ID:         receipt.ID,
		ReceivedAt: receipt.ReceivedAt,
		Brief:      form,
	})

	writeJSON(w, http.StatusCreated, receipt)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	info := version.Current()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		Version:     info.Version,
		Commit:      info.Commit,
		Subscribers: s.hub.Count(),
	})
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an error response
		logging.Warn("Feed upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}
	s.hub.Serve(conn, r.RemoteAddr)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Debug("Failed to write response", zap.Error(err))
	}
}

// statusRecorder captures the status code for response logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets the websocket upgrader take over the connection.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path, logging.HeaderMap(r.Header))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logging.LogHTTPResponse(r.RemoteAddr, rec.status, logging.HeaderMap(rec.Header()))
		logging.Debug("Request complete",
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
