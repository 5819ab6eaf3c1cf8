package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// DashboardHandler serves the dashboard snapshot over REST.
type DashboardHandler struct {
	logger *zap.Logger
	source DashboardSource
}

func NewDashboardHandler(source DashboardSource, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{
		logger: logger.Named("dashboard"),
		source: source,
	}
}

// Register mounts the dashboard routes on r.
func (h *DashboardHandler) Register(r *mux.Router) {
	r.HandleFunc("/api/v1/dashboard", h.snapshot).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/dashboard/rolling", h.rolling).Methods(http.MethodGet)
}

// snapshot writes the full dashboard, or null while nothing is aggregated yet.
func (h *DashboardHandler) snapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.source.DashboardData(r.Context())
	if err != nil {
		h.logger.Error("dashboard data failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "dashboard data unavailable")
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *DashboardHandler) rolling(w http.ResponseWriter, r *http.Request) {
	averages, err := h.source.RollingAverages(r.Context())
	if err != nil {
		h.logger.Error("rolling averages failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "rolling averages unavailable")
		return
	}
	out := make(map[string]any, len(averages))
	for _, avg := range averages {
		out[avg.Key()] = avg
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
