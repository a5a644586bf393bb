package emissions

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/boardcarbon/internal/carbon"
	"github.com/rshade/boardcarbon/internal/units"
)

// DiodeType identifies a diode type in the model-file vocabulary, based
// on Ecoinvent 3.11 activities.
type DiodeType string

const (
	// DiodeGlassSMD is a glass diode for surface mounting; it is the
	// donor for the generic entry when none is configured.
	DiodeGlassSMD DiodeType = "glass_smd"

	// DiodeLED is a light-emitting diode.
	DiodeLED DiodeType = "led"

	// DiodeTransistor is a surface-mounted transistor package reported
	// under the diode category.
	DiodeTransistor DiodeType = "transistor"

	// DiodeGeneric is the fallback entry for unresolved types.
	DiodeGeneric DiodeType = "generic"
)

// ParseDiodeType maps a model-file key onto the diode vocabulary.
func ParseDiodeType(s string) (DiodeType, bool) {
	switch t := DiodeType(s); t {
	case DiodeGlassSMD, DiodeLED, DiodeTransistor, DiodeGeneric:
		return t, true
	}
	return "", false
}

// DiodeModel estimates emissions for diodes from mass-normalized factors
// (kg CO2e per kg of component).
type DiodeModel struct {
	factors *factorTable[DiodeType]
}

// NewDiodeModel loads the diode factor table from path, or from the
// embedded default table when path is empty. Construction fails when no
// generic factor can be established.
func NewDiodeModel(path string, logger zerolog.Logger) (*DiodeModel, error) {
	doc, err := loadDocument(path, defaultDiodeModel)
	if err != nil {
		return nil, fmt.Errorf("diode model: %w", err)
	}

	factors, err := newFactorTable(doc.Pairs(), vocabulary[DiodeType]{
		category:       "diode",
		parse:          ParseDiodeType,
		generic:        DiodeGeneric,
		genericFrom:    []DiodeType{DiodeGlassSMD},
		requireGeneric: true,
		fallback:       DiodeGeneric,
	}, logger)
	if err != nil {
		return nil, err
	}
	return &DiodeModel{factors: factors}, nil
}

// GetCarbon computes weight × factor × n for n diodes of the given type.
// weight is the mass of a single diode and must be a mass quantity; an
// empty type resolves to the generic factor. Diode results are reported
// under the fabrication source category.
func (m *DiodeModel) GetCarbon(weight units.Quantity, typ DiodeType, n int) (carbon.Carbon, error) {
	if typ == "" {
		typ = DiodeGeneric
	}
	return m.factors.massCarbon(weight, typ, n, carbon.SourceFabrication)
}
