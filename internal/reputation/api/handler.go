package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ms-marketplace/internal/logger"
	"ms-marketplace/internal/models"
	"ms-marketplace/internal/reputation"
	"ms-marketplace/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	ReputationService *reputation.ReputationService
	Logger            *logger.Logger
}

func NewHandler(reputationService *reputation.ReputationService, log *logger.Logger) *Handler {
	return &Handler{ReputationService: reputationService, Logger: log}
}

func (h *Handler) AddRating(w http.ResponseWriter, r *http.Request) {
	var req models.RatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.ReputationService.AddRating(req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("AddRating: %v", err))
		switch {
		case errors.Is(err, models.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, models.ErrConflict):
			http.Error(w, "Reputation is being modified concurrently, try again", http.StatusConflict)
		default:
			http.Error(w, "Could not record rating: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}
	h.Logger.LogReputation("RATE", req.TargetUserID, fmt.Sprintf("rated %d by %s for order %s", req.Rating, req.RaterID, req.OrderID))

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Rating recorded", nil))
}

func (h *Handler) GetUserReputation(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	rep, err := h.ReputationService.GetUserReputation(userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "User has no reputation yet", http.StatusNotFound)
			return
		}
		h.Logger.Error("API", fmt.Sprintf("GetUserReputation: %v", err))
		http.Error(w, "Failed to load reputation: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rep)
}

func (h *Handler) VerifyUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	if err := h.ReputationService.VerifyUser(userID); err != nil {
		h.Logger.Error("API", fmt.Sprintf("VerifyUser: %v", err))
		http.Error(w, "Could not verify user: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.Logger.LogReputation("VERIFY", userID, "legacy verified flag set")

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("User verified", nil))
}
