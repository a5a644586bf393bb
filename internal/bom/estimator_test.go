package bom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/boardcarbon/internal/emissions"
	"github.com/rshade/boardcarbon/internal/units"
)

func intPtr(n int) *int {
	return &n
}

func writeModelDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

// TestEstimator_Estimate walks a full document end to end against the
// embedded default tables and checks the exact rollups.
func TestEstimator_Estimate(t *testing.T) {
	e, err := NewEstimator("", zerolog.New(nil))
	require.NoError(t, err)

	path := writeBOMFile(t, "bom.yaml", `
name: sensor-node
board:
  area: "0.01 m2"
  layers: 4
components:
  - ref: R1..R12
    kind: resistor
    package: "0402"
    quantity: 12
  - ref: C1..C4
    kind: capacitor
    type: "0603"
    quantity: 4
  - ref: L1
    kind: inductor
    type: "0603"
  - ref: J1
    kind: connector
    type: pci
    weight: "10 g"
  - ref: U9
    kind: active
    type: transistor_mosfet
`)
	b, err := Load(path)
	require.NoError(t, err)

	s, err := e.Estimate(b)
	require.NoError(t, err)

	assert.Equal(t, "sensor-node", s.Name)
	assert.Equal(t, "1.16628", s.TotalKg) // 0.0456 + 0.00024 + 0.00032 + 0.00012 + 1.12
	assert.Equal(t, map[string]string{
		"fabrication": "0.04584",
		"passives":    "0.00032",
		"inductor":    "0.00012",
		"connector":   "1.12",
	}, s.BySource)

	require.Len(t, s.Lines, 6)
	assert.Equal(t, "board", s.Lines[0].Ref)
	assert.Equal(t, "0.0456", s.Lines[0].CarbonKg)
	assert.Equal(t, "0.00024", s.Lines[1].CarbonKg)
	assert.Equal(t, "0.00032", s.Lines[2].CarbonKg)
	assert.Equal(t, "0.00012", s.Lines[3].CarbonKg)
	assert.Equal(t, "1.12", s.Lines[4].CarbonKg)

	// The active line has no weight: recorded, noted, excluded.
	skipped := s.Lines[5]
	assert.Equal(t, "U9", skipped.Ref)
	assert.Equal(t, "0", skipped.CarbonKg)
	assert.Contains(t, skipped.Note, "weight required")
}

// TestEstimator_BoardAborts verifies an untabulated board layer count
// fails the whole run rather than recording a skipped line.
func TestEstimator_BoardAborts(t *testing.T) {
	dir := writeModelDir(t, map[string]string{
		"pcb.yaml": "4: 4.56 kg/m2\n",
	})
	e, err := NewEstimator(dir, zerolog.New(nil))
	require.NoError(t, err)

	_, err = e.Estimate(&BillOfMaterials{
		Board: &Board{Area: "0.01 m2", Layers: 7},
	})
	assert.ErrorIs(t, err, emissions.ErrUntabulatedLayers)
}

// TestEstimator_ModelOverrides verifies a category file under the
// override directory replaces the embedded table for that category only.
func TestEstimator_ModelOverrides(t *testing.T) {
	dir := writeModelDir(t, map[string]string{
		"resistor.yaml": "\"0805\": 0.0001 kg\n",
	})
	e, err := NewEstimator(dir, zerolog.New(nil))
	require.NoError(t, err)

	s, err := e.Estimate(&BillOfMaterials{Components: []Component{
		{Ref: "R1", Kind: KindResistor, Quantity: intPtr(2)},
		{Ref: "D1", Kind: KindDiode, Type: "glass_smd", Weight: "0.5 g"},
	}})
	require.NoError(t, err)

	require.Len(t, s.Lines, 2)
	assert.Equal(t, "0.0002", s.Lines[0].CarbonKg, "override factor 0.0001 kg × 2")
	assert.Equal(t, "0.03135", s.Lines[1].CarbonKg, "diode still uses the embedded table")
}

// TestEstimator_DefaultLocation verifies the run-level location applies
// to capacitor lines that specify none while explicit lines win.
func TestEstimator_DefaultLocation(t *testing.T) {
	e, err := NewEstimator("", zerolog.New(nil))
	require.NoError(t, err)
	e.SetDefaultLocation(emissions.LocationChina)

	s, err := e.Estimate(&BillOfMaterials{Components: []Component{
		{Ref: "C1", Kind: KindCapacitor, Type: "mlcc"},
		{Ref: "C2", Kind: KindCapacitor, Type: "mlcc", Location: "japan"},
	}})
	require.NoError(t, err)
	require.Len(t, s.Lines, 2)

	china := units.MustParse("480 MJ/kg").
		Mul(units.MustParse("0.03 g")).
		Mul(units.MustParse("0.582 kg/kWh"))
	japan := units.MustParse("480 MJ/kg").
		Mul(units.MustParse("0.03 g")).
		Mul(units.MustParse("0.474 kg/kWh"))

	assert.Equal(t, china.Value().String(), s.Lines[0].CarbonKg)
	assert.Equal(t, japan.Value().String(), s.Lines[1].CarbonKg)
}

// TestEstimator_PCBComponentLine verifies auxiliary boards listed as
// components carry their own geometry and scale with quantity.
func TestEstimator_PCBComponentLine(t *testing.T) {
	e, err := NewEstimator("", zerolog.New(nil))
	require.NoError(t, err)

	s, err := e.Estimate(&BillOfMaterials{Components: []Component{
		{Ref: "PNL1", Kind: KindPCB, Area: "0.01 m2", Layers: 2, Quantity: intPtr(2)},
	}})
	require.NoError(t, err)

	require.Len(t, s.Lines, 1)
	assert.Equal(t, "0.0456", s.Lines[0].CarbonKg, "2.28 kg/m2 × 0.01 m2 × 2")
	assert.Equal(t, "fabrication", s.Lines[0].Source)
}

func TestEstimator_InductorWeightPrecedence(t *testing.T) {
	e, err := NewEstimator("", zerolog.New(nil))
	require.NoError(t, err)

	s, err := e.Estimate(&BillOfMaterials{Components: []Component{
		{Ref: "L1", Kind: KindInductor, Type: "0603", Weight: "2 g"},
	}})
	require.NoError(t, err)

	require.Len(t, s.Lines, 1)
	assert.Equal(t, "0.01594", s.Lines[0].CarbonKg, "0.002 kg × 7.97 beats the package factor")
}

func TestEstimator_Estimate_NilBOM(t *testing.T) {
	e, err := NewEstimator("", zerolog.New(nil))
	require.NoError(t, err)

	_, err = e.Estimate(nil)
	assert.Error(t, err)
}

// TestNewEstimator_BadOverride verifies a broken override table aborts
// assembly instead of falling back silently.
func TestNewEstimator_BadOverride(t *testing.T) {
	dir := writeModelDir(t, map[string]string{
		"connector.yaml": "pci: 112 kg/kg\n",
	})
	_, err := NewEstimator(dir, zerolog.New(nil))
	assert.ErrorIs(t, err, emissions.ErrMissingFactor)
}
