// Package server exposes lighting frames over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/litescript/ls-skylight/internal/astro"
	"github.com/litescript/ls-skylight/internal/ephem"
	"github.com/litescript/ls-skylight/internal/lighting"
	"github.com/litescript/ls-skylight/internal/logging"
	"github.com/litescript/ls-skylight/internal/metrics"
	"github.com/litescript/ls-skylight/internal/state"
	"github.com/litescript/ls-skylight/internal/twilight"
)

const shutdownTimeout = 5 * time.Second

// Server answers lighting queries. Requests without parameters are served
// from the state manager's live frame when one exists.
type Server struct {
	composer *lighting.Composer
	state    *state.Manager
	metrics  *metrics.Metrics
	log      *logging.Logger
	location astro.GeoPoint
	now      func() time.Time
}

// New creates a server. location is used when a request omits lat/lon.
func New(c *lighting.Composer, sm *state.Manager, m *metrics.Metrics, location astro.GeoPoint, log *logging.Logger) *Server {
	if log == nil {
		log = logging.Discard()
	}
	return &Server{
		composer: c,
		state:    sm,
		metrics:  m,
		log:      log.With("component", "server"),
		location: location,
		now:      time.Now,
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter().StrictSlash(true)
	if s.metrics != nil {
		r.Use(s.metrics.LatencyHandler)
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/lighting", s.serveLighting).Methods(http.MethodGet)
	api.HandleFunc("/points", s.servePoints).Methods(http.MethodGet)
	api.HandleFunc("/phases", s.servePhases).Methods(http.MethodGet)

	r.HandleFunc("/healthz", s.serveHealth).Methods(http.MethodGet)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Handler:      s.Router(),
		Addr:         addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Infow("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// query holds parsed request parameters.
type query struct {
	t        time.Time
	loc      astro.GeoPoint
	explicit bool
}

func (s *Server) parseQuery(r *http.Request) (query, error) {
	q := query{t: s.now(), loc: s.location}

	if v := r.FormValue("t"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return q, fmt.Errorf("invalid t %q: want RFC3339", v)
		}
		q.t = t
		q.explicit = true
	}
	for _, p := range []struct {
		name string
		dst  *float64
		max  float64
	}{
		{"lat", &q.loc.Lat, 90},
		{"lon", &q.loc.Lon, 180},
	} {
		v := r.FormValue(p.name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || f < -p.max || f > p.max {
			return q, fmt.Errorf("invalid %s %q: want a number in [-%g, %g]", p.name, v, p.max, p.max)
		}
		*p.dst = f
		q.explicit = true
	}
	return q, nil
}

func (s *Server) serveLighting(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if !q.explicit && s.state != nil {
		if f, ok := s.state.Frame(); ok {
			writeJSON(w, http.StatusOK, lighting.ExportFrame(f, s.composer.Provider().Name(), s.now()))
			return
		}
	}

	start := time.Now()
	f, err := s.composer.Resolve(q.t, q.loc)
	if s.metrics != nil {
		var fp *lighting.Frame
		if err == nil {
			fp = &f
		}
		s.metrics.ObserveCompose(fp, time.Since(start), err)
	}
	switch {
	case errors.Is(err, lighting.ErrNoLightingState):
		writeError(w, http.StatusServiceUnavailable, err)
		return
	case err != nil:
		s.log.Errorw("compose failed", "location", q.loc.String(), "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, lighting.ExportFrame(f, s.composer.Provider().Name(), s.now()))
}

// pointsResponse is the body of /api/v1/points.
type pointsResponse struct {
	Time     time.Time              `json:"time"`
	Location astro.GeoPoint         `json:"location"`
	Subsolar astro.GeoPoint         `json:"subsolar"`
	Sublunar astro.GeoPoint         `json:"sublunar"`
	Sun      ephem.CelestialFix     `json:"sun"`
	Moon     ephem.CelestialFix     `json:"moon"`
	Phase    ephem.MoonIllumination `json:"moon_illumination"`
}

func (s *Server) servePoints(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	p := s.composer.Provider()
	loc := q.loc.Normalized()
	illum := p.MoonIllumination(q.t)
	writeJSON(w, http.StatusOK, pointsResponse{
		Time:     q.t,
		Location: loc,
		Subsolar: astro.SubsolarPoint(q.t),
		Sublunar: astro.SublunarPoint(q.t, illum.Phase),
		Sun:      p.BodyPosition(q.t, loc, ephem.Sun),
		Moon:     p.BodyPosition(q.t, loc, ephem.Moon),
		Phase:    illum,
	})
}

// phaseEvent is one entry of /api/v1/phases.
type phaseEvent struct {
	Phase twilight.PhaseKey `json:"phase"`
	Time  time.Time         `json:"time"`
}

type phasesResponse struct {
	Time     time.Time             `json:"time"`
	Location astro.GeoPoint        `json:"location"`
	Events   []phaseEvent          `json:"events"`
	Current  *lighting.BlendResult `json:"current,omitempty"`
}

func (s *Server) servePhases(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	loc := q.loc.Normalized()
	evs := s.composer.Provider().TwilightEvents(q.t, loc)
	resp := phasesResponse{Time: q.t, Location: loc, Events: []phaseEvent{}}
	for _, k := range twilight.Phases {
		if at, ok := evs[k]; ok {
			resp.Events = append(resp.Events, phaseEvent{Phase: k, Time: at})
		}
	}

	res, err := s.composer.Compute(q.t, loc)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	resp.Current = &res
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) serveHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{"status": "ok"}
	if s.state != nil {
		status["has_frame"] = s.state.HasData()
		snap := s.state.Snapshot()
		if !snap.LastUpdate.IsZero() {
			status["last_update"] = snap.LastUpdate
		}
		if snap.LastError != nil {
			status["last_error"] = snap.LastError.Error()
		}
	}
	writeJSON(w, http.StatusOK, status)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
