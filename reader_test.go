package forth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/goforth/internal/fileinput"
)

func TestReader(t *testing.T) {
	var rd reader
	_, err := rd.token()
	assert.Equal(t, errNeedInput, err)

	rd.feed(fileinput.Line{
		Location: fileinput.Location{Name: "test", Line: 1},
		Text:     `  Foo ." bar"`,
	})
	tok, err := rd.token()
	require.NoError(t, err)
	assert.Equal(t, "Foo", tok)

	word, err := rd.word()
	require.NoError(t, err)
	assert.Equal(t, `."`, word)

	var sb strings.Builder
	for {
		r, err := rd.char()
		require.NoError(t, err)
		if r == '"' {
			break
		}
		sb.WriteRune(r)
	}
	assert.Equal(t, "bar", sb.String())

	_, err = rd.word()
	assert.Equal(t, errNeedInput, err)
	assert.Equal(t, "test:1", rd.loc.String())
}
