package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Books", "books"},
		{"  Vintage Vinyl  ", "vintage-vinyl"},
		{"Déjà Vu Records", "d-j-vu-records"},
		{"--weird--input--", "weird-input"},
		{"2nd Hand", "2nd-hand"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Slugify(tc.in), tc.in)
	}
}

func TestCalculate(t *testing.T) {
	from, limit := Calculate(1, 10)
	require.Equal(t, 0, from)
	require.Equal(t, 10, limit)

	from, limit = Calculate(3, 25)
	require.Equal(t, 50, from)
	require.Equal(t, 25, limit)

	// Out-of-range inputs fall back to defaults.
	from, limit = Calculate(0, 0)
	require.Equal(t, 0, from)
	require.Equal(t, DefaultPageSize, limit)

	from, limit = Calculate(-2, 1000)
	require.Equal(t, 0, from)
	require.Equal(t, DefaultPageSize, limit)
}
