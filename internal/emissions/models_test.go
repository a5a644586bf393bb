package emissions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/boardcarbon/internal/units"
)

// writeModelFile writes a model file into a per-test temp directory and
// returns its path.
func writeModelFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func quantityPtr(q units.Quantity) *units.Quantity {
	return &q
}

// TestModels_EmbeddedDefaults verifies every model constructs from its
// compiled-in default table.
func TestModels_EmbeddedDefaults(t *testing.T) {
	logger := zerolog.New(nil)

	_, err := NewActiveModel("", logger)
	assert.NoError(t, err, "active model")

	_, err = NewCapacitorModel("", nil, logger)
	assert.NoError(t, err, "capacitor model")

	_, err = NewConnectorModel("", logger)
	assert.NoError(t, err, "connector model")

	_, err = NewDiodeModel("", logger)
	assert.NoError(t, err, "diode model")

	_, err = NewInductorModel("", logger)
	assert.NoError(t, err, "inductor model")

	_, err = NewOtherModel("", logger)
	assert.NoError(t, err, "other model")

	_, err = NewPCBModel("", logger)
	assert.NoError(t, err, "pcb model")

	_, err = NewResistorModel("", logger)
	assert.NoError(t, err, "resistor model")

	_, err = NewSwitchModel("", logger)
	assert.NoError(t, err, "switch model")

	_, err = LoadIntensityTable("", logger)
	assert.NoError(t, err, "intensity table")
}

// TestModels_Deterministic verifies two models built from the same table
// answer the same request identically.
func TestModels_Deterministic(t *testing.T) {
	logger := zerolog.New(nil)

	a, err := NewActiveModel("", logger)
	require.NoError(t, err)
	b, err := NewActiveModel("", logger)
	require.NoError(t, err)

	weight := units.MustParse("1.5 g")
	first, err := a.GetCarbon(weight, ActiveTransistorMOSFET, 7)
	require.NoError(t, err)
	second, err := b.GetCarbon(weight, ActiveTransistorMOSFET, 7)
	require.NoError(t, err)

	assert.True(t, first.Quantity.Equal(second.Quantity))
	assert.Equal(t, first.Source, second.Source)
}

// TestModels_CountAdditivity verifies one call for n parts equals the sum
// of n single-part calls.
func TestModels_CountAdditivity(t *testing.T) {
	logger := zerolog.New(nil)

	m, err := NewResistorModel("", logger)
	require.NoError(t, err)

	batch, err := m.GetCarbon(5, ResistorPKG0603)
	require.NoError(t, err)

	sum := units.Zero(units.Mass)
	for i := 0; i < 5; i++ {
		one, err := m.GetCarbon(1, ResistorPKG0603)
		require.NoError(t, err)
		sum, err = sum.Add(one.Quantity)
		require.NoError(t, err)
	}

	assert.True(t, batch.Quantity.Equal(sum),
		"batch %s should equal summed singles %s", batch.Quantity.String(), sum.String())
}
