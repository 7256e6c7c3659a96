package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/vendortrack/internal/catalog"
)

type Service struct {
	csvImporter Importer
}

func NewService() *Service {
	return &Service{
		csvImporter: NewCSV(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]catalog.Product, error) {
	var importer Importer

	switch format {
	case FormatCSV, "":
		importer = s.csvImporter
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	return importer.Parse(r)
}
