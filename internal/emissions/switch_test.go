package emissions

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/boardcarbon/internal/carbon"
	"github.com/rshade/boardcarbon/internal/units"
)

func TestSwitchModel_GetCarbon(t *testing.T) {
	m, err := NewSwitchModel("", zerolog.New(nil))
	require.NoError(t, err)

	tests := []struct {
		name   string
		weight string
		typ    SwitchType
		n      int
		want   string
	}{
		{
			name:   "generic switch",
			weight: "5 g",
			typ:    SwitchGeneric,
			n:      2,
			want:   "0.354 kg", // 0.005 kg × 35.4 × 2
		},
		{
			name:   "empty type resolves to generic",
			weight: "5 g",
			typ:    "",
			n:      1,
			want:   "0.177 kg",
		},
		{
			name:   "unresolved type falls back to generic",
			weight: "5 g",
			typ:    SwitchType("rocker"),
			n:      1,
			want:   "0.177 kg",
		},
		{
			name:   "zero count yields zero mass",
			weight: "5 g",
			typ:    SwitchGeneric,
			n:      0,
			want:   "0 kg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.GetCarbon(units.MustParse(tt.weight), tt.typ, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Quantity.String())
			assert.Equal(t, carbon.SourceSwitch, got.Source)
		})
	}
}

func TestNewSwitchModel_GenericRequired(t *testing.T) {
	path := writeModelFile(t, "momentary: 12 kg/kg\n")
	_, err := NewSwitchModel(path, zerolog.New(nil))
	assert.ErrorIs(t, err, ErrMissingGeneric)
}

func TestSwitchModel_GetCarbon_WrongDimension(t *testing.T) {
	m, err := NewSwitchModel("", zerolog.New(nil))
	require.NoError(t, err)

	_, err = m.GetCarbon(units.MustParse("1 kWh"), SwitchGeneric, 1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
