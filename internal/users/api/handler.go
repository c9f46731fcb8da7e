package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ms-marketplace/internal/logger"
	"ms-marketplace/internal/models"
	"ms-marketplace/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type UserStore interface {
	CreateUser(user models.User) error
	GetUserByID(id string) (*models.User, error)
}

type Handler struct {
	Users  UserStore
	Logger *logger.Logger
}

func NewHandler(users UserStore, log *logger.Logger) *Handler {
	return &Handler{Users: users, Logger: log}
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if user.FullName == "" || user.Role == "" {
		http.Error(w, "full_name and role are required", http.StatusBadRequest)
		return
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()

	if err := h.Users.CreateUser(user); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateUser: %v", err))
		http.Error(w, "Could not create user: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.Logger.Info("API", fmt.Sprintf("CreateUser: user %s created with role %s", user.ID, user.Role))

	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("User created", map[string]string{
		"user_id": user.ID,
	}))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	user, err := h.Users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		h.Logger.Error("API", fmt.Sprintf("GetUser: %v", err))
		http.Error(w, "Failed to load user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}
