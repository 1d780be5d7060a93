package forth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumper_rawCode(t *testing.T) {
	vm, err := New(WithoutCore())
	require.NoError(t, err)
	require.NoError(t, vm.Run(": t 1 later ;", false))

	xt, defined := vm.Lookup("t")
	require.True(t, defined)

	var sb strings.Builder
	require.NoError(t, xtDumper{vm: vm, out: &sb, rawCode: true}.dump(xt))
	listing := strings.Split(sb.String(), "\n")
	assert.Equal(t, ": t 1 later ;", listing[0])
	assert.Len(t, listing, 3)
}
