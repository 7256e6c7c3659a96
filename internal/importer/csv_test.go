package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vendortrack/internal/importer"
)

func TestCSV_Parse(t *testing.T) {
	input := strings.Join([]string{
		"Summer Menu,,,",
		"",
		"Product,Unit Price,Category,Cost,Active",
		"Street Taco,$4.50,food,1.20,yes",
		"Horchata,3,Drink,,",
		"Tote Bag,\"1,200.00\",Merch,300,no",
		",5,Food,,",
		"Mystery,free,Food,,",
		"Sticker,2,Stationery,,",
	}, "\n")

	products, err := importer.NewCSV().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, products, 4)

	assert.Equal(t, "Street Taco", products[0].Name)
	assert.Equal(t, "4.50", products[0].Price.StringFixed(2))
	assert.Equal(t, "Food", products[0].Category)
	assert.Equal(t, "1.20", products[0].Cost.StringFixed(2))
	assert.True(t, products[0].Active)

	assert.True(t, products[1].Cost.IsZero())
	assert.True(t, products[1].Active)

	assert.Equal(t, "1200.00", products[2].Price.StringFixed(2))
	assert.False(t, products[2].Active)

	assert.Equal(t, "Other", products[3].Category)
	assert.Empty(t, products[3].ID)
}

func TestCSV_Semicolons(t *testing.T) {
	input := "name;price;category\nElote;4;Snack\nAgua Fresca;3.25;Drink\n"

	products, err := importer.NewCSV().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Agua Fresca", products[1].Name)
	assert.Equal(t, "3.25", products[1].Price.StringFixed(2))
}

func TestCSV_Latin1(t *testing.T) {
	input := []byte("name,price\nJalape\xf1o Popper,6\n")

	products, err := importer.NewCSV().Parse(strings.NewReader(string(input)))
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Jalapeño Popper", products[0].Name)
}

func TestCSV_NoHeader(t *testing.T) {
	_, err := importer.NewCSV().Parse(strings.NewReader("Taco,5\nElote,4\n"))
	assert.ErrorIs(t, err, importer.ErrNoHeader)
}

func TestService_Import(t *testing.T) {
	svc := importer.NewService()

	products, err := svc.Import(importer.FormatCSV, strings.NewReader("name,price\nTaco,5\n"))
	require.NoError(t, err)
	assert.Len(t, products, 1)

	_, err = svc.Import("ods", strings.NewReader(""))
	assert.ErrorIs(t, err, importer.ErrUnknownFormat)
}
