package event

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vendortrack/internal/event"
	"github.com/MrJamesThe3rd/vendortrack/internal/revenue"
)

const defaultRecent = 10

type Handler struct {
	svc *event.Service
}

func NewHandler(svc *event.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/recent", h.recent)
	r.Get("/active", h.active)
	r.Get("/{id}", h.get)
	r.Post("/{id}/tap", h.tap)
	r.Post("/{id}/undo", h.undo)
	r.Put("/{id}/items/{productID}", h.setQuantity)
	r.Get("/{id}/reconciliation", h.prefill)
	r.Post("/{id}/preview", h.preview)
	r.Post("/{id}/finalize", h.finalize)
}

type createEventRequest struct {
	Date     string `json:"date"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

type tapRequest struct {
	ProductID string `json:"product_id"`
}

type setQuantityRequest struct {
	Qty int `json:"qty"`
}

// list returns the full history, newest first.
func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toResponseList(h.svc.History()))
}

func (h *Handler) recent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecent

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}

		limit = n
	}

	writeJSON(w, http.StatusOK, toResponseList(h.svc.Recent(limit)))
}

func (h *Handler) active(w http.ResponseWriter, _ *http.Request) {
	ev, ok := h.svc.Active()
	if !ok {
		http.Error(w, "no active event", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(ev, false))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ev, err := h.svc.Create(r.Context(), event.Fields{
		Date:     req.Date,
		Location: req.Location,
		Notes:    req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(ev, false))
}

// get returns one event. ?sort=total orders line items by line total.
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ev, err := h.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(ev, r.URL.Query().Get("sort") == "total"))
}

func (h *Handler) tap(w http.ResponseWriter, r *http.Request) {
	var req tapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ev, err := h.svc.Tap(r.Context(), chi.URLParam(r, "id"), req.ProductID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(ev, false))
}

func (h *Handler) undo(w http.ResponseWriter, r *http.Request) {
	ev, err := h.svc.Undo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(ev, false))
}

func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ev, err := h.svc.SetQuantity(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "productID"), req.Qty)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(ev, false))
}

// prefill returns the end-of-day form values for the event.
func (h *Handler) prefill(w http.ResponseWriter, r *http.Request) {
	ev, err := h.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toReconciliationDTO(revenue.Prefill(ev)))
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	var req reconciliationDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ev, err := h.svc.Preview(chi.URLParam(r, "id"), req.toReconciliation())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, revenue.Compute(&ev))
}

func (h *Handler) finalize(w http.ResponseWriter, r *http.Request) {
	var req reconciliationDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ev, err := h.svc.Finalize(r.Context(), chi.URLParam(r, "id"), req.toReconciliation())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(ev, false))
}

// Summary serves the home screen: lifetime revenue, the active draft and
// the most recent events.
func (h *Handler) Summary(w http.ResponseWriter, _ *http.Request) {
	all := h.svc.All()

	resp := summaryResponse{
		LifetimeRevenue: revenue.Lifetime(all),
		EventCount:      len(all),
		Recent:          toResponseList(h.svc.Recent(defaultRecent)),
	}

	if ev, ok := h.svc.Active(); ok {
		active := toResponse(ev, false)
		resp.Active = &active
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, event.ErrNotFound):
		http.Error(w, "event not found", http.StatusNotFound)
	case errors.Is(err, event.ErrInvalidEvent):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, event.ErrNotDraft), errors.Is(err, event.ErrDraftExists):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		slog.Error("event request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
