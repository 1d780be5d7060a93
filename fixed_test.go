package forth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedRoundTrip(t *testing.T) {
	for _, p := range []int{0, 1, 3, 5, 8} {
		for _, v := range []int{0, 1, -1, 7, -7, 123, 100000, -5012345, 1 << 40, -(1 << 40)} {
			s := formatFixed(v, p)
			got, err := parseFixed(s, p)
			if assert.NoError(t, err, "parse %q", s) {
				assert.Equal(t, v, got, "round trip %v at precision %v via %q", v, p, s)
			}
		}
	}
}

func TestFormatFixed(t *testing.T) {
	for _, tc := range []struct {
		v, p int
		want string
	}{
		{5, 0, "5"},
		{-5, 0, "-5"},
		{5, 1, "0.5"},
		{-3, 5, "-0.00003"},
		{400001, 5, "4.00001"},
	} {
		assert.Equal(t, tc.want, formatFixed(tc.v, tc.p), "format %v at precision %v", tc.v, tc.p)
	}
}

func TestParseFixed(t *testing.T) {
	for _, tc := range []struct {
		in   string
		p    int
		want int
	}{
		{"1.5", 5, 150000},
		{"-0.5", 5, -50000},
		{"2.0005", 3, 2000},
		{"2.0015", 3, 2002},
		{"-2.0015", 3, -2002},
	} {
		got, err := parseFixed(tc.in, tc.p)
		if assert.NoError(t, err, "parse %q", tc.in) {
			assert.Equal(t, tc.want, got, "parse %q at precision %v", tc.in, tc.p)
		}
	}

	_, err := parseFixed("1.2.3", 2)
	assert.Error(t, err)
	_, err = parseFixed("1e400", 2)
	assert.True(t, errors.Is(err, errFixedRange), "expected range error, got %v", err)
}
