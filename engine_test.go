package forth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_malformedCode(t *testing.T) {
	vm, err := New(WithoutCore())
	require.NoError(t, err)

	err = vm.catch(func() { vm.execute([]Atom{literalAtom(42)}) })
	var re RuntimeError
	if assert.True(t, errors.As(err, &re), "expected runtime error, got %v", err) {
		assert.Contains(t, re.Msg, "malformed code")
	}

	vm.resetCompiler()
	err = vm.catch(func() { vm.execute([]Atom{nativeAtom(xtPush)}) })
	if assert.True(t, errors.As(err, &re), "expected runtime error, got %v", err) {
		assert.Contains(t, re.Msg, "missing operand")
	}
}

func TestEngine_jumps(t *testing.T) {
	vm, err := New(WithoutCore())
	require.NoError(t, err)

	// 0 jnz(6) 1 0 jz(12) 2 3
	code := []Atom{
		nativeAtom(xtPush), literalAtom(0),
		nativeAtom(xtJNZ), literalAtom(6),
		nativeAtom(xtPush), literalAtom(1),
		nativeAtom(xtPush), literalAtom(0),
		nativeAtom(xtJZ), literalAtom(12),
		nativeAtom(xtPush), literalAtom(2),
		nativeAtom(xtPush), literalAtom(3),
	}
	require.NoError(t, vm.catch(func() { vm.execute(code) }))
	assert.Equal(t, []int{1, 3}, vm.DataStack())
	assert.Empty(t, vm.frames)
}
