package export

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vendortrack/internal/event"
	"github.com/MrJamesThe3rd/vendortrack/internal/export"
)

type Handler struct {
	svc    *export.Service
	events *event.Service
}

func NewHandler(svc *export.Service, events *event.Service) *Handler {
	return &Handler{svc: svc, events: events}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/archive", h.archive)
	r.Get("/{id}", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := h.svc.Render(chi.URLParam(r, "id"), format)
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}

		slog.Error("failed to render export", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))

	if _, err := w.Write(doc.Data); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

// archive zips the exports of every finalized event, newest first.
func (h *Handler) archive(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var done []event.Event

	for _, ev := range h.events.History() {
		if !ev.IsDraft() {
			done = append(done, ev)
		}
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"vendortrack_%s.zip\"", time.Now().Format("20060102")))

	if err := export.WriteArchive(w, done, format); err != nil {
		slog.Error("failed to create zip", "error", err)
	}
}
