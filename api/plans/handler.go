// Package plans exposes the load plan store over HTTP.
package plans

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/freightworks/loadplan/core/model"
	"github.com/freightworks/loadplan/core/planstore"
)

// saveRequest is the POST body for saving a plan.
type saveRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Layout      model.TrailerLayout  `json:"layout"`
	Deliveries  []model.DeliveryItem `json:"deliveries"`
}

// NewHandler returns an HTTP handler for the plan store:
// GET /api/plans lists plans, GET /api/plans?id=<id> returns one,
// POST /api/plans saves a new snapshot.
func NewHandler(store planstore.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if id := r.URL.Query().Get("id"); id != "" {
				plan, err := store.Load(r.Context(), id)
				var unknown model.UnknownItemError
				if errors.As(err, &unknown) {
					http.Error(w, err.Error(), http.StatusNotFound)
					return
				}
				if err != nil {
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
				writeJSON(w, plan)
				return
			}
			list, err := store.List(r.Context())
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			writeJSON(w, list)
		case http.MethodPost:
			var req saveRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if req.Name == "" {
				http.Error(w, "name is required", http.StatusBadRequest)
				return
			}
			plan, err := store.Save(r.Context(), req.Name, req.Description, req.Layout, req.Deliveries)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			if err := json.NewEncoder(w).Encode(plan); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
