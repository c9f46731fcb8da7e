package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"ms-marketplace/internal/logger"
	"ms-marketplace/internal/matching"
	"ms-marketplace/internal/models"
)

type Handler struct {
	MatchingService *matching.MatchingService
	DefaultRadiusKm float64
	Logger          *logger.Logger
}

func NewHandler(matchingService *matching.MatchingService, defaultRadiusKm float64, log *logger.Logger) *Handler {
	return &Handler{
		MatchingService: matchingService,
		DefaultRadiusKm: defaultRadiusKm,
		Logger:          log,
	}
}

func (h *Handler) NearbyFarmers(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		http.Error(w, "lat is required and must be a number", http.StatusBadRequest)
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		http.Error(w, "lon is required and must be a number", http.StatusBadRequest)
		return
	}

	radiusKm := h.DefaultRadiusKm
	if raw := r.URL.Query().Get("radius_km"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, "radius_km must be a number", http.StatusBadRequest)
			return
		}
	}

	origin := models.GeoPoint{Latitude: lat, Longitude: lon}
	farmers, err := h.MatchingService.NearbyFarmers(origin, radiusKm)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.Logger.Error("API", fmt.Sprintf("NearbyFarmers: %v", err))
		http.Error(w, "Failed to find nearby farmers: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(farmers)
}

func (h *Handler) TopRatedFarmers(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	farmers, err := h.MatchingService.TopRatedFarmers(limit)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("TopRatedFarmers: %v", err))
		http.Error(w, "Failed to load top rated farmers: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(farmers)
}
