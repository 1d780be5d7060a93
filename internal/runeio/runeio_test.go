package runeio_test

import (
	"strings"
	"testing"

	"github.com/jcorbin/goforth/internal/runeio"
	"github.com/stretchr/testify/assert"
)

func TestLiteralRune(t *testing.T) {
	for _, tc := range []struct {
		token string
		r     rune
		ok    bool
	}{
		{"A", 'A', true},
		{"abc", 'a', true},
		{"<ESC>", 0x1b, true},
		{"<esc>", 0x1b, true},
		{"^[", 0x1b, true},
		{"<SP>", ' ', true},
		{"'x'", 'x', true},
		{`'\n'`, '\n', true},
		{"'", '\'', true},
		{"", 0, false},
	} {
		t.Run(tc.token, func(t *testing.T) {
			r, ok := runeio.LiteralRune(tc.token)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.r, r)
		})
	}
}

func TestWriteString(t *testing.T) {
	var sb strings.Builder
	n, err := runeio.WriteString(&sb, "Ok\u0085\u009bé")
	assert.NoError(t, err)
	assert.Equal(t, "Ok\r\n\x1b[é", sb.String())
	assert.Equal(t, sb.Len(), n)

	sb.Reset()
	runeio.WriteRune(&sb, -1)
	assert.Equal(t, "\ufffd", sb.String())
}

func TestWriteCells(t *testing.T) {
	var sb strings.Builder
	_, err := runeio.WriteCells(&sb, []int{'h', 'i', 0x85, 0x110041, -1})
	assert.NoError(t, err)
	assert.Equal(t, "hi\r\n\ufffd\ufffd", sb.String())
}

func TestRune(t *testing.T) {
	assert.Equal(t, 'A', runeio.Rune(65))
	assert.Equal(t, '\ufffd', runeio.Rune(-65))
	assert.Equal(t, '\ufffd', runeio.Rune(0x110000))
}
