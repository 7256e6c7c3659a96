package export_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/vendortrack/internal/catalog"
	"github.com/MrJamesThe3rd/vendortrack/internal/event"
	"github.com/MrJamesThe3rd/vendortrack/internal/export"
	"github.com/MrJamesThe3rd/vendortrack/internal/revenue"
)

type fakeCatalog map[string]catalog.Product

func (c fakeCatalog) Lookup(id string) (catalog.Product, bool) {
	p, ok := c[id]
	return p, ok
}

type fakeEvents map[string]event.Event

func (f fakeEvents) Get(id string) (event.Event, error) {
	ev, ok := f[id]
	if !ok {
		return event.Event{}, event.ErrNotFound
	}

	return ev, nil
}

func soldEvent(t *testing.T) event.Event {
	t.Helper()

	cat := fakeCatalog{
		"p1": {ID: "p1", Name: "Taco", Price: decimal.NewFromInt(5)},
		"p2": {ID: "p2", Name: "Horchata", Price: decimal.RequireFromString("3.5")},
	}

	ev, err := event.New(event.Fields{Date: "2024-06-01", Location: "Farmers Market"}, time.Now())
	require.NoError(t, err)

	for _, id := range []string{"p2", "p1", "p1"} {
		ev, err = event.Tap(ev, id, cat)
		require.NoError(t, err)
	}

	ev, err = event.Finalize(ev, event.Reconciliation{SquareTotal: "20", VendorFee: "5"})
	require.NoError(t, err)

	return ev
}

func TestRows(t *testing.T) {
	ev := soldEvent(t)

	rows := export.Rows(ev, revenue.Compute(&ev))

	want := [][]string{
		{"Product", "Qty", "Unit Price", "Total"},
		{"Horchata", "1", "3.50", "3.50"},
		{"Taco", "2", "5.00", "10.00"},
		{},
		{"Square", "", "", "20.00"},
		{"Cash App", "", "", "0"},
		{"Cash Sales", "", "", "13.50"},
		{"Vendor Fee", "", "", "5.00"},
		{"Other Expenses", "", "", "0"},
		{"Net Profit", "", "", "28.50"},
	}

	assert.Equal(t, want, rows)
}

func TestRows_EmptyEvent(t *testing.T) {
	rows := export.Rows(event.Event{}, revenue.Compute(nil))

	require.Len(t, rows, 8)
	assert.Equal(t, export.Header, rows[0])
	assert.Empty(t, rows[1])
	assert.Equal(t, []string{"Net Profit", "", "", "0"}, rows[7])
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name     string
		location string
		ext      string
		want     string
	}{
		{name: "Location", location: "Farmers Market", ext: "csv", want: "Farmers Market-2024-06-01.csv"},
		{name: "BlankLocation", location: "  ", ext: "csv", want: "event-2024-06-01.csv"},
		{name: "DottedExt", location: "Pier", ext: ".xlsx", want: "Pier-2024-06-01.xlsx"},
		{name: "PathCharacters", location: "A/B", ext: "csv", want: "A_B-2024-06-01.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := event.Event{Location: tt.location, Date: "2024-06-01"}
			assert.Equal(t, tt.want, export.Filename(ev, tt.ext))
		})
	}
}

func TestEncode_CSV(t *testing.T) {
	var buf bytes.Buffer

	rows := [][]string{{"Product", "Qty"}, {"Taco, large", "2"}, {}, {"Square", "1.00"}}
	require.NoError(t, export.Encode(&buf, export.FormatCSV, rows))

	assert.Equal(t, "Product,Qty\n\"Taco, large\",2\n\nSquare,1.00\n", buf.String())
}

func TestEncode_XLSX(t *testing.T) {
	var buf bytes.Buffer

	ev := soldEvent(t)
	require.NoError(t, export.Encode(&buf, export.FormatXLSX, export.Rows(ev, revenue.Compute(&ev))))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	cells := map[string]string{
		"A1":  "Product",
		"A2":  "Horchata",
		"D3":  "10.00",
		"A4":  "",
		"A5":  "Square",
		"A10": "Net Profit",
		"D10": "28.50",
	}

	for cell, want := range cells {
		got, err := f.GetCellValue("Sheet1", cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, cell)
	}
}

func TestParseFormat(t *testing.T) {
	f, err := export.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, export.FormatCSV, f)

	f, err = export.ParseFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, export.FormatXLSX, f)

	_, err = export.ParseFormat("pdf")
	assert.ErrorIs(t, err, export.ErrUnknownFormat)
}

func TestService_Render(t *testing.T) {
	ev := soldEvent(t)
	svc := export.NewService(fakeEvents{ev.ID: ev})

	doc, err := svc.Render(ev.ID, export.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "Farmers Market-2024-06-01.csv", doc.Filename)
	assert.Equal(t, "text/csv", doc.ContentType)
	assert.True(t, strings.HasPrefix(string(doc.Data), "Product,Qty,Unit Price,Total\nHorchata,1,3.50,3.50\n"))

	_, err = svc.Render("missing", export.FormatCSV)
	assert.True(t, errors.Is(err, event.ErrNotFound))
}

func TestService_Save(t *testing.T) {
	ev := soldEvent(t)
	svc := export.NewService(fakeEvents{ev.ID: ev})
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := svc.Save(ev.ID, export.FormatXLSX, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Farmers Market-2024-06-01.xlsx"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteArchive(t *testing.T) {
	ev := soldEvent(t)
	twin := ev.Clone()
	twin.ID = "twin"

	var buf bytes.Buffer
	require.NoError(t, export.WriteArchive(&buf, []event.Event{ev, twin}, export.FormatCSV))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{"Farmers Market-2024-06-01.csv", "Farmers Market-2024-06-01-2.csv"}, names)
}
