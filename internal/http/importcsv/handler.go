package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vendortrack/internal/catalog"
	"github.com/MrJamesThe3rd/vendortrack/internal/importer"
)

type Handler struct {
	importSvc  *importer.Service
	catalogSvc *catalog.Service
}

func NewHandler(importSvc *importer.Service, catalogSvc *catalog.Service) *Handler {
	return &Handler{
		importSvc:  importSvc,
		catalogSvc: catalogSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importProducts)
	r.Post("/preview", h.preview)
}

type productDTO struct {
	ID       string          `json:"id,omitempty"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Cost     decimal.Decimal `json:"cost"`
	Active   bool            `json:"active"`
}

type importResponse struct {
	Imported int          `json:"imported"`
	Products []productDTO `json:"products"`
}

// importProducts parses the uploaded sheet and upserts every row into the
// catalog. Rows are matched to existing products by name.
func (h *Handler) importProducts(w http.ResponseWriter, r *http.Request) {
	products, ok := h.parseUpload(w, r)
	if !ok {
		return
	}

	saved, err := h.catalogSvc.ImportBatch(r.Context(), products)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidProduct) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		slog.Error("failed to import products", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeResponse(w, http.StatusCreated, saved)
}

// preview parses the upload without touching the catalog.
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	products, ok := h.parseUpload(w, r)
	if !ok {
		return
	}

	writeResponse(w, http.StatusOK, products)
}

func (h *Handler) parseUpload(w http.ResponseWriter, r *http.Request) ([]catalog.Product, bool) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	products, err := h.importSvc.Import(importer.Format(r.FormValue("format")), file)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, importer.ErrUnknownFormat) {
			status = http.StatusBadRequest
		}

		http.Error(w, err.Error(), status)

		return nil, false
	}

	return products, true
}

func writeResponse(w http.ResponseWriter, status int, products []catalog.Product) {
	resp := importResponse{
		Imported: len(products),
		Products: make([]productDTO, 0, len(products)),
	}

	for _, p := range products {
		resp.Products = append(resp.Products, productDTO{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Category: p.Category,
			Cost:     p.Cost,
			Active:   p.Active,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
