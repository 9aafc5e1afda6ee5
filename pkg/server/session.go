package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/martinmoraga/pyvolt/pkg/assembler"
	"github.com/martinmoraga/pyvolt/pkg/defaults"
	"github.com/martinmoraga/pyvolt/pkg/errors"
	"github.com/martinmoraga/pyvolt/pkg/measurement"
	"github.com/martinmoraga/pyvolt/pkg/noise"
	"github.com/martinmoraga/pyvolt/pkg/serializer"
	"github.com/martinmoraga/pyvolt/pkg/telemetry"
)

// maxTelemetryBody caps the request body of one telemetry batch.
const maxTelemetryBody = 4 << 20

// Session owns the measurement set a running daemon serves. The set is
// lock-free by contract, so the session's RWMutex is what serializes
// report reads against telemetry writes.
type Session struct {
	mu      sync.RWMutex
	set     *measurement.Set
	model   *noise.Model
	version string
	bounds  telemetry.Bounds
}

// NewSession wraps an assembled measurement set for serving.
func NewSession(set *measurement.Set, model *noise.Model, version string) *Session {
	return &Session{
		set:     set,
		model:   model,
		version: version,
		bounds:  telemetry.DefaultBounds(),
	}
}

// Report snapshots the session as a measurement report.
func (s *Session) Report(sorted bool) *assembler.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := s.set
	if sorted {
		set = set.Sorted()
	}
	return assembler.NewReport(set, s.model, s.version, sorted)
}

// Apply drives a telemetry batch into the set under the write lock.
func (s *Session) Apply(ctx context.Context, samples []telemetry.Sample) (telemetry.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &telemetry.Replayer{Set: s.set, Bounds: s.bounds}
	return r.Replay(ctx, samples)
}

// Len returns the number of measurements in the session set.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Len()
}

// handleReport handles GET /v1/report
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	if s.session == nil {
		WriteError(w, r, http.StatusServiceUnavailable, errors.ErrCodeUnavailable,
			"No estimation session", true, nil)
		return
	}

	sorted := false
	if v := r.URL.Query().Get("sorted"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
				"Invalid sorted parameter", false, map[string]any{"sorted": v})
			return
		}
		sorted = b
	}

	serializer.RespondJSON(w, http.StatusOK, s.session.Report(sorted))
}

// handleTelemetry handles POST /v1/telemetry
func (s *Server) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	if s.session == nil {
		WriteError(w, r, http.StatusServiceUnavailable, errors.ErrCodeUnavailable,
			"No estimation session", true, nil)
		return
	}

	var batch []telemetry.Sample
	body := http.MaxBytesReader(w, r.Body, maxTelemetryBody)
	if err := json.NewDecoder(body).Decode(&batch); err != nil {
		WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Invalid telemetry batch", false, map[string]any{"error": err.Error()})
		return
	}
	if len(batch) == 0 {
		WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Empty telemetry batch", false, nil)
		return
	}
	if limit := s.config.MaxBatchSamples; limit > 0 && len(batch) > limit {
		WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Telemetry batch too large", false, map[string]any{
				"samples": len(batch),
				"limit":   limit,
			})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.TelemetryHandlerTimeout)
	defer cancel()

	stats, err := s.session.Apply(ctx, batch)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			err = errors.Wrap(errors.ErrCodeTimeout, "Telemetry batch aborted", err)
		}
		WriteErrorFromErr(w, r, err, "Telemetry batch aborted",
			map[string]any{"received": stats.Received})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, stats)
}
