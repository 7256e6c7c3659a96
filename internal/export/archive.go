package export

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/vendortrack/internal/event"
)

// WriteArchive zips one export per event into w. Events that would share a
// file name get a numeric suffix.
func WriteArchive(w io.Writer, events []event.Event, format Format) error {
	zw := zip.NewWriter(w)
	seen := make(map[string]int, len(events))

	for _, ev := range events {
		doc, err := Build(ev, format)
		if err != nil {
			return fmt.Errorf("rendering event %s: %w", ev.ID, err)
		}

		name := doc.Filename

		seen[name]++
		if n := seen[name]; n > 1 {
			ext := "." + string(format)
			name = fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), n, ext)
		}

		f, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("adding %s: %w", name, err)
		}

		if _, err := f.Write(doc.Data); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}

	return nil
}
