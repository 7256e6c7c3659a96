package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vendortrack/internal/catalog"
	enc "github.com/MrJamesThe3rd/vendortrack/internal/encoding"
)

const (
	colName     = "name"
	colPrice    = "price"
	colCategory = "category"
	colCost     = "cost"
	colActive   = "active"
)

// headerAliases maps lower-cased header cells to the column they name.
var headerAliases = map[string]string{
	"name":       colName,
	"product":    colName,
	"item":       colName,
	"price":      colPrice,
	"unit price": colPrice,
	"category":   colCategory,
	"type":       colCategory,
	"cost":       colCost,
	"unit cost":  colCost,
	"active":     colActive,
	"enabled":    colActive,
}

// CSV reads product lists exported from spreadsheets. The header may sit
// below a few title rows; cells are separated by commas or semicolons.
type CSV struct{}

func NewCSV() *CSV {
	return &CSV{}
}

func (c *CSV) Parse(r io.Reader) ([]catalog.Product, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx := detectHeader(rows)
	if headerIdx < 0 {
		return nil, ErrNoHeader
	}

	var products []catalog.Product

	for i, row := range rows[headerIdx+1:] {
		line := headerIdx + i + 2

		p, ok := parseRow(cols, row)
		if !ok {
			slog.Debug("skipping product row", "line", line)
			continue
		}

		products = append(products, p)
	}

	return products, nil
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

func (c colIndex) cell(row []string, col string) string {
	i, ok := c[col]
	if !ok || i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}

// detectHeader returns the first row that names both a name and a price column.
func detectHeader(rows [][]string) (colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			key := strings.ToLower(strings.TrimSpace(cell))
			if col, ok := headerAliases[key]; ok {
				if _, seen := cols[col]; !seen {
					cols[col] = i
				}
			}
		}

		_, hasName := cols[colName]
		_, hasPrice := cols[colPrice]

		if hasName && hasPrice {
			return cols, rowIdx
		}
	}

	return nil, -1
}

func parseRow(cols colIndex, row []string) (catalog.Product, bool) {
	name := cols.cell(row, colName)
	if name == "" {
		return catalog.Product{}, false
	}

	price, err := parseMoney(cols.cell(row, colPrice))
	if err != nil {
		return catalog.Product{}, false
	}

	cost := decimal.Zero
	if raw := cols.cell(row, colCost); raw != "" {
		if cost, err = parseMoney(raw); err != nil {
			return catalog.Product{}, false
		}
	}

	return catalog.Product{
		Name:     name,
		Price:    price,
		Category: normalizeCategory(cols.cell(row, colCategory)),
		Cost:     cost,
		Active:   parseActive(cols.cell(row, colActive)),
	}, true
}

func parseMoney(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(s, "$", "")
	clean = strings.ReplaceAll(clean, ",", "")

	return decimal.NewFromString(strings.TrimSpace(clean))
}

// normalizeCategory maps a cell onto a known category, defaulting to Other.
func normalizeCategory(s string) string {
	for _, c := range catalog.Categories {
		if c != catalog.CategoryAll && strings.EqualFold(c, s) {
			return c
		}
	}

	return "Other"
}

// parseActive treats a blank cell as active.
func parseActive(s string) bool {
	switch strings.ToLower(s) {
	case "", "1", "y", "yes", "true", "active":
		return true
	default:
		return false
	}
}

// detectDelimiter picks ';' when the start of the file has more semicolons
// than commas.
func detectDelimiter(data []byte) rune {
	sample := data[:min(len(data), 4096)]
	if bytes.Count(sample, []byte(";")) > bytes.Count(sample, []byte(",")) {
		return ';'
	}

	return ','
}
