package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/vendortrack/internal/http/catalog"
	"github.com/MrJamesThe3rd/vendortrack/internal/http/event"
	"github.com/MrJamesThe3rd/vendortrack/internal/http/export"
	"github.com/MrJamesThe3rd/vendortrack/internal/http/importcsv"
	"github.com/MrJamesThe3rd/vendortrack/internal/http/user"
)

type Handlers struct {
	Products *catalog.Handler
	Import   *importcsv.Handler
	Events   *event.Handler
	Export   *export.Handler
	User     *user.Handler
}

func New(h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Route("/import", h.Import.Routes)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Products.Routes(r)
			})
		})

		r.Route("/events", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Events.Routes(r)
		})

		r.Get("/summary", h.Events.Summary)

		r.Route("/export", h.Export.Routes)

		r.Route("/user", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.User.Routes(r)
		})
	})

	return router
}
