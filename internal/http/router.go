// Package httpapi is the dashboard-facing HTTP surface of the monitor.
package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router stdlib http.ServeMux with method checks done per route
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterHealthRoutes liveness probe
func (r *Router) RegisterHealthRoutes() {
	r.Handle("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]string{"status": "ok"}))
	})
}

// RegisterMetricsRoutes Prometheus scrape endpoint
func (r *Router) RegisterMetricsRoutes(h http.Handler) {
	r.mux.Handle("/metrics", h)
}

// RegisterMonitorRoutes patient list, detail, selection and alarm routes
func (r *Router) RegisterMonitorRoutes(h *MonitorHandler) {
	const patientsPath = "/api/v1/patients"
	const alarmsPath = "/api/v1/alarms"

	r.Handle(patientsPath, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.ListPatients(w, req)
	})

	// patients/{id} and patients/{id}/trends/export
	r.Handle(patientsPath+"/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		rest := strings.TrimPrefix(req.URL.Path, patientsPath+"/")
		parts := strings.Split(rest, "/")

		id, ok := parseID(parts[0])
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch {
		case len(parts) == 1:
			h.GetPatient(w, req, id)
		case len(parts) == 3 && parts[1] == "trends" && parts[2] == "export":
			h.ExportTrends(w, req, id)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	r.Handle("/api/v1/selection", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.GetSelection(w, req)
		case http.MethodPost:
			h.SaveSelection(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	r.Handle(alarmsPath, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.ListAlarms(w, req)
	})

	// alarms/{id}/acknowledge
	r.Handle(alarmsPath+"/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		rest := strings.TrimPrefix(req.URL.Path, alarmsPath+"/")
		id, ok := strings.CutSuffix(rest, "/acknowledge")
		if !ok || id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.AcknowledgeAlarm(w, req, id)
	})
}
