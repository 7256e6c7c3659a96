package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MrJamesThe3rd/vendortrack/internal/event"
	"github.com/MrJamesThe3rd/vendortrack/internal/revenue"
)

// Events looks up a stored event by id.
type Events interface {
	Get(id string) (event.Event, error)
}

// Document is one encoded export ready for delivery.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Service renders event exports for the API and the terminal client.
type Service struct {
	events Events
}

// NewService creates a new export Service.
func NewService(events Events) *Service {
	return &Service{events: events}
}

// Render encodes the event with the given id.
func (s *Service) Render(id string, format Format) (Document, error) {
	ev, err := s.events.Get(id)
	if err != nil {
		return Document{}, fmt.Errorf("loading event: %w", err)
	}

	return Build(ev, format)
}

// Build encodes ev without looking it up.
func Build(ev event.Event, format Format) (Document, error) {
	var buf bytes.Buffer

	rows := Rows(ev, revenue.Compute(&ev))
	if err := Encode(&buf, format, rows); err != nil {
		return Document{}, err
	}

	return Document{
		Filename:    Filename(ev, string(format)),
		ContentType: format.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

// Save renders the event and writes it into dir, returning the file path.
func (s *Service) Save(id string, format Format, dir string) (string, error) {
	doc, err := s.Render(id, format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, doc.Filename)
	if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return path, nil
}
