package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vendortrack/internal/catalog"
)

type productResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Cost     decimal.Decimal `json:"cost"`
	Margin   decimal.Decimal `json:"margin"`
	Active   bool            `json:"active"`
}

func toResponse(p catalog.Product) productResponse {
	return productResponse{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Category: p.Category,
		Cost:     p.Cost,
		Margin:   p.Price.Sub(p.Cost),
		Active:   p.Active,
	}
}

func toResponseList(products []catalog.Product) []productResponse {
	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toResponse(p)
	}

	return resp
}
