package importer

import (
	"errors"
	"io"

	"github.com/MrJamesThe3rd/vendortrack/internal/catalog"
)

var (
	ErrUnknownFormat = errors.New("unknown import format")
	ErrNoHeader      = errors.New("no header row with name and price columns")
)

type Format string

const (
	FormatCSV Format = "csv"
)

// Importer turns an uploaded file into catalog products. Products are not
// validated here; the catalog does that when the batch is applied.
type Importer interface {
	Parse(r io.Reader) ([]catalog.Product, error)
}
