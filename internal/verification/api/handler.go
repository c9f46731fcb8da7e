package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ms-marketplace/internal/logger"
	"ms-marketplace/internal/models"
	"ms-marketplace/internal/utils"
	"ms-marketplace/internal/verification"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	VerificationService *verification.VerificationService
	Logger              *logger.Logger
}

func NewHandler(verificationService *verification.VerificationService, log *logger.Logger) *Handler {
	return &Handler{VerificationService: verificationService, Logger: log}
}

func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID      string          `json:"user_id"`
		UserRole    models.UserRole `json:"user_role"`
		FullName    string          `json:"full_name"`
		PhoneNumber string          `json:"phone_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	requestID, err := h.VerificationService.SubmitVerificationRequest(body.UserID, body.UserRole, body.FullName, body.PhoneNumber)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("SubmitRequest: %v", err))
		if errors.Is(err, models.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Could not submit verification request: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.Logger.LogVerification("SUBMIT", body.UserID, fmt.Sprintf("request %s filed", requestID))

	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("Verification request submitted", map[string]string{
		"request_id": requestID,
	}))
}

func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestId")

	request, err := h.VerificationService.GetVerificationRequest(requestID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Verification request not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load verification request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(request)
}

func (h *Handler) GetUserRequests(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	requests, err := h.VerificationService.GetUserVerificationRequests(userID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetUserRequests: %v", err))
		http.Error(w, "Failed to load verification requests: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(requests)
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	record, err := h.VerificationService.GetVerificationStatus(userID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetStatus: %v", err))
		http.Error(w, "Failed to load verification status: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(record)
}

func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestId")

	var body struct {
		ReviewerID string `json:"reviewer_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.VerificationService.ApproveVerification(requestID, body.ReviewerID); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ApproveRequest: %v", err))
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Verification request not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Could not approve verification: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.Logger.LogVerification("APPROVE", requestID, fmt.Sprintf("approved by %s", body.ReviewerID))

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Verification approved", nil))
}

func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestId")

	var body struct {
		ReviewerID string `json:"reviewer_id"`
		Reason     string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.VerificationService.RejectVerification(requestID, body.ReviewerID, body.Reason); err != nil {
		h.Logger.Error("API", fmt.Sprintf("RejectRequest: %v", err))
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Verification request not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Could not reject verification: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.Logger.LogVerification("REJECT", requestID, fmt.Sprintf("rejected by %s", body.ReviewerID))

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Verification rejected", nil))
}
