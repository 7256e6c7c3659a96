package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vendortrack/internal/encoding"
)

func readAll(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "UTF8Passthrough",
			input: []byte("name,price\nCrème Brûlée,6\nJalapeño Popper,4\n"),
			want:  "name,price\nCrème Brûlée,6\nJalapeño Popper,4\n",
		},
		{
			name:  "UTF8BOMStripped",
			input: append([]byte{0xEF, 0xBB, 0xBF}, "name,price\n"...),
			want:  "name,price\n",
		},
		{
			// Windows-1252: ñ = 0xF1
			name:  "Windows1252",
			input: []byte("name,price\nJalape\xf1o,4\n"),
			want:  "name,price\nJalapeño,4\n",
		},
		{
			// ñ straddles the 4096-byte detection sample
			name:  "UTF8RuneAcrossSampleEdge",
			input: append(bytes.Repeat([]byte("a"), 4095), "ñ,4\n"...),
			want:  strings.Repeat("a", 4095) + "ñ,4\n",
		},
		{
			name:  "UTF16LE",
			input: []byte{0xFF, 0xFE, 'h', 0, 'i', 0},
			want:  "hi",
		},
		{
			name:  "Empty",
			input: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, readAll(t, tt.input))
		})
	}
}

func TestDetect(t *testing.T) {
	assert.Equal(t, encoding.UTF8, encoding.Detect([]byte("plain ascii")))
	assert.Equal(t, encoding.UTF8BOM, encoding.Detect([]byte{0xEF, 0xBB, 0xBF, 'a'}))
	assert.Equal(t, encoding.UTF16BE, encoding.Detect([]byte{0xFE, 0xFF, 0, 'a'}))
}
