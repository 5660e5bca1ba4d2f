package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"rounds up at the half cent", "10.005", "10.01"},
		{"rounds down below the half cent", "10.004", "10.00"},
		{"negative half cent rounds away from zero", "-10.005", "-10.01"},
		{"already exact", "10.50", "10.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := NewFromString(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, in.Round2().String())
		})
	}
}

func TestMinMaxMaxZero(t *testing.T) {
	a := New(5)
	b := New(10)
	assert.True(t, Min(a, b).Equal(a))
	assert.True(t, Max(a, b).Equal(b))
	assert.True(t, MaxZero(New(-3)).IsZero())
	assert.True(t, MaxZero(New(3)).Equal(New(3)))
}

func TestArithmetic(t *testing.T) {
	a := NewFromFloat(10.5)
	b := NewFromFloat(3.25)
	assert.Equal(t, "13.75", a.Add(b).String())
	assert.Equal(t, "7.25", a.Sub(b).String())
	assert.Equal(t, "-10.5", a.Neg().String())
}

// TestStringPreservesStoredPrecision guards against reintroducing a fixed
// 2dp String(), which would silently truncate rate and credit fields the
// engine reports at full precision.
func TestStringPreservesStoredPrecision(t *testing.T) {
	rate, err := NewFromString("0.0595")
	require.NoError(t, err)
	assert.Equal(t, "0.0595", rate.String())

	rounded := NewFromFloat(37.846).Round2()
	assert.Equal(t, "37.85", rounded.String())
}

func TestJSONRoundTrip(t *testing.T) {
	a := NewFromFloat(1234.5).Round2()
	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `"1234.50"`, string(data))

	var out Amount
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out.Equal(NewFromFloat(1234.5)))

	var fromNumber Amount
	require.NoError(t, json.Unmarshal([]byte("42"), &fromNumber))
	assert.True(t, fromNumber.Equal(New(42)))
}

func TestIsZeroIsNegativeIsPositive(t *testing.T) {
	assert.True(t, Zero.IsZero())
	assert.True(t, New(-1).IsNegative())
	assert.True(t, New(1).IsPositive())
}
