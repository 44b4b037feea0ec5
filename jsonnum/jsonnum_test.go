package jsonnum_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DmitriBogdanov/prototyping-utils/jsonerr"
	"github.com/DmitriBogdanov/prototyping-utils/jsonnum"
)

func TestParsePrefixStopsAtDelimiter(t *testing.T) {
	f, end, err := jsonnum.ParsePrefix([]byte(`42,"rest"`), 0)
	require.NoError(t, err)
	require.Equal(t, 42.0, f)
	require.Equal(t, 2, end)

	f, end, err = jsonnum.ParsePrefix([]byte(`[-1.5e3]`), 1)
	require.NoError(t, err)
	require.Equal(t, -1500.0, f)
	require.Equal(t, 7, end)

	f, end, err = jsonnum.ParsePrefix([]byte(`0}`), 0)
	require.NoError(t, err)
	require.Equal(t, 0.0, f)
	require.Equal(t, 1, end)
}

func TestParsePrefixConsumesToEnd(t *testing.T) {
	data := []byte(`1.7976931348623157e308`)
	f, end, err := jsonnum.ParsePrefix(data, 0)
	require.NoError(t, err)
	require.Equal(t, math.MaxFloat64, f)
	require.Equal(t, len(data), end)
}

func TestParsePrefixFormatErrors(t *testing.T) {
	for _, in := range []string{`-`, `+`, `.`, `1e+`, `1..2`, `--1`} {
		_, _, err := jsonnum.ParsePrefix([]byte(in), 0)
		require.True(t, jsonerr.IsKind(err, jsonerr.NumberFormat), "input %q: %v", in, err)
	}

	// Empty token: cursor at a byte outside the numeric charset.
	_, _, err := jsonnum.ParsePrefix([]byte(`x`), 0)
	require.True(t, jsonerr.IsKind(err, jsonerr.NumberFormat))
}

func TestParsePrefixRangeErrors(t *testing.T) {
	for _, in := range []string{`1e999`, `-1e999`, `1e999999`} {
		_, _, err := jsonnum.ParsePrefix([]byte(in), 0)
		require.True(t, jsonerr.IsKind(err, jsonerr.NumberRange), "input %q: %v", in, err)
	}

	// The extremes of the double range still parse.
	f, _, err := jsonnum.ParsePrefix([]byte(`5e-324`), 0)
	require.NoError(t, err)
	require.NotZero(t, f)
}

func TestAppendFloatShortestRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		in   float64
		want string
	}{
		{1, "1"},
		{-2.5, "-2.5"},
		{0.1, "0.1"},
		{1e21, "1e+21"},
		{5e-324, "5e-324"},
		{math.MaxFloat64, "1.7976931348623157e+308"},
	} {
		got := jsonnum.AppendFloat(nil, tc.in)
		require.Equal(t, tc.want, string(got))
	}

	// Appends to the caller's buffer.
	buf := jsonnum.AppendFloat([]byte("n="), 7)
	require.Equal(t, "n=7", string(buf))
}

func TestFormatNonFinite(t *testing.T) {
	require.Equal(t, "inf", jsonnum.FormatNonFinite(math.Inf(1)))
	require.Equal(t, "-inf", jsonnum.FormatNonFinite(math.Inf(-1)))
	require.Equal(t, "nan", jsonnum.FormatNonFinite(math.NaN()))
}
