// Package loadmaps exposes the live planning session state over HTTP.
package loadmaps

import (
	"encoding/json"
	"net/http"

	"github.com/freightworks/loadplan/core/capacity"
	"github.com/freightworks/loadplan/core/model"
	"github.com/freightworks/loadplan/core/session"
)

// response is the status payload returned to the console.
type response struct {
	LoadMap model.VehicleLoadMap  `json:"load_map"`
	Layout  model.TrailerLayout   `json:"layout"`
	Summary capacity.Summary      `json:"summary"`
	Stats   capacity.Distribution `json:"stats"`
	Version uint64                `json:"version"`
}

// NewStatusHandler returns an HTTP handler exposing the current load map,
// capacity summary and distribution stats via GET /api/loadmaps/status.
func NewStatusHandler(s *session.Session) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		layout := s.Layout()
		resp := response{
			LoadMap: s.LoadMap(),
			Layout:  layout,
			Summary: s.Summary(),
			Stats:   capacity.Stats(layout.Items),
			Version: s.Version(),
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
