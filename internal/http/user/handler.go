package user

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vendortrack/internal/user"
)

type Handler struct {
	svc *user.Service
}

func NewHandler(svc *user.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.current)
	r.Post("/", h.signIn)
}

type signInRequest struct {
	Name string `json:"name"`
}

type profileResponse struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) current(w http.ResponseWriter, _ *http.Request) {
	p, err := h.svc.Current()
	if err != nil {
		if errors.Is(err, user.ErrNoProfile) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeProfile(w, http.StatusOK, p)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.SignIn(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, user.ErrInvalidName) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeProfile(w, http.StatusCreated, p)
}

func writeProfile(w http.ResponseWriter, status int, p user.Profile) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(profileResponse{Name: p.Name, CreatedAt: p.CreatedAt}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
