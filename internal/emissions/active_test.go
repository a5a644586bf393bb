package emissions

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/boardcarbon/internal/carbon"
	"github.com/rshade/boardcarbon/internal/units"
)

func TestActiveModel_GetCarbon(t *testing.T) {
	m, err := NewActiveModel("", zerolog.New(nil))
	require.NoError(t, err)

	tests := []struct {
		name   string
		weight string
		typ    ActiveType
		n      int
		want   string
	}{
		{
			name:   "bjt transistor",
			weight: "1 g",
			typ:    ActiveTransistorBJT,
			n:      2,
			want:   "0.308 kg", // 0.001 kg × 154 × 2
		},
		{
			name:   "mosfet transistor",
			weight: "2 g",
			typ:    ActiveTransistorMOSFET,
			n:      1,
			want:   "0.386 kg", // 0.002 kg × 193
		},
		{
			name:   "empty type resolves to generic",
			weight: "1 g",
			typ:    "",
			n:      1,
			want:   "0.168 kg", // generic aliased from active_generic
		},
		{
			name:   "unresolved type falls back to generic",
			weight: "1 g",
			typ:    ActiveType("igbt"),
			n:      1,
			want:   "0.168 kg",
		},
		{
			name:   "zero count yields zero mass",
			weight: "1 g",
			typ:    ActiveTransistorBJT,
			n:      0,
			want:   "0 kg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.GetCarbon(units.MustParse(tt.weight), tt.typ, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Quantity.String())
			assert.Equal(t, carbon.SourceActive, got.Source)
			assert.True(t, got.Quantity.Check(units.Mass))
		})
	}
}

func TestActiveModel_GetCarbon_WrongDimension(t *testing.T) {
	m, err := NewActiveModel("", zerolog.New(nil))
	require.NoError(t, err)

	_, err = m.GetCarbon(units.MustParse("1 mm"), ActiveTransistorBJT, 1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

// TestNewActiveModel_GenericDerivation verifies the generic entry is
// aliased from active_generic and that a table providing neither fails.
func TestNewActiveModel_GenericDerivation(t *testing.T) {
	logger := zerolog.New(nil)

	path := writeModelFile(t, "active_generic: 100 kg/kg\n")
	m, err := NewActiveModel(path, logger)
	require.NoError(t, err)

	got, err := m.GetCarbon(units.MustParse("1 g"), ActiveGeneric, 1)
	require.NoError(t, err)
	assert.Equal(t, "0.1 kg", got.Quantity.String())

	path = writeModelFile(t, "transistor_bjt: 154 kg/kg\n")
	_, err = NewActiveModel(path, logger)
	assert.ErrorIs(t, err, ErrMissingGeneric)
}

func TestNewActiveModel_BadFactorLiteral(t *testing.T) {
	path := writeModelFile(t, "transistor_bjt: fast\n")
	_, err := NewActiveModel(path, zerolog.New(nil))
	assert.ErrorIs(t, err, units.ErrMalformedQuantity)
}

// TestNewActiveModel_UnknownKeysSkipped verifies unrecognized keys never
// fail construction.
func TestNewActiveModel_UnknownKeysSkipped(t *testing.T) {
	path := writeModelFile(t, "voltage_regulator: 12 kg/kg\nactive_generic: 100 kg/kg\n")
	m, err := NewActiveModel(path, zerolog.New(nil))
	require.NoError(t, err)

	got, err := m.GetCarbon(units.MustParse("1 g"), ActiveTransistorBJT, 1)
	require.NoError(t, err)
	assert.Equal(t, "0.1 kg", got.Quantity.String(), "skipped key leaves only the generic factor")
}
