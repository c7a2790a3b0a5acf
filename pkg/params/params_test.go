package params

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "1234", want: 1234},
		{raw: "42abc", want: 42},
		{raw: " 7", want: 7},
		{raw: "-3", want: -3},
		{raw: "12.9", want: 12},
		{raw: "abc", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "99999999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Int("movieId", tt.raw)
			if tt.wantErr {
				var invalid *InvalidParamError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, "movieId", invalid.Name)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Value)
			assert.Equal(t, tt.raw, got.Raw)
		})
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{raw: "4.0", want: 4},
		{raw: "4.5stars", want: 4.5},
		{raw: ".5", want: 0.5},
		{raw: "1e2", want: 100},
		{raw: "5", want: 5},
		{raw: "1e-999", want: 0},
		{raw: "NaN", wantErr: true},
		{raw: "infinity", wantErr: true},
		{raw: "high", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Float("minRating", tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.Value, 1e-9)
		})
	}
}

func TestFloat_Infinity(t *testing.T) {
	tests := []struct {
		raw  string
		sign int
	}{
		{raw: "Infinity", sign: 1},
		{raw: "+Infinity", sign: 1},
		{raw: "-Infinity", sign: -1},
		{raw: "Infinityx", sign: 1},
		{raw: "1e999", sign: 1},
		{raw: "-1e999", sign: -1},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Float("minRating", tt.raw)
			require.NoError(t, err)
			assert.True(t, math.IsInf(got.Value, tt.sign), got.Value)
		})
	}
}

func TestYear(t *testing.T) {
	_, err := Year("year", "2023")
	assert.NoError(t, err)

	for _, raw := range []string{"23", "20233", "abcd", ""} {
		_, err := Year("year", raw)
		assert.Error(t, err, raw)
	}
}

func TestOptional(t *testing.T) {
	f, err := OptionalFloat("minRating", "")
	require.NoError(t, err)
	assert.Nil(t, f)

	f, err = OptionalFloat("minRating", "3.5")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, 3.5, f.Value)

	_, err = OptionalFloat("minRating", "x")
	assert.Error(t, err)

	assert.Nil(t, OptionalString(""))
	assert.Equal(t, "Jane", OptionalString("Jane").Value)
}
