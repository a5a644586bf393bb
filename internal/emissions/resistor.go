package emissions

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/boardcarbon/internal/carbon"
)

// ResistorType identifies a resistor package size in the model-file
// vocabulary.
type ResistorType string

const (
	ResistorPKG0201 ResistorType = "0201"
	ResistorPKG0402 ResistorType = "0402"
	ResistorPKG0603 ResistorType = "0603"

	// ResistorPKG0805 is the default package, the donor for the generic
	// entry, and the substitution target for unresolved types.
	ResistorPKG0805 ResistorType = "0805"

	ResistorGeneric ResistorType = "generic"
)

// ParseResistorType maps a model-file key onto the resistor vocabulary.
func ParseResistorType(s string) (ResistorType, bool) {
	switch t := ResistorType(s); t {
	case ResistorPKG0201, ResistorPKG0402, ResistorPKG0603, ResistorPKG0805, ResistorGeneric:
		return t, true
	}
	return "", false
}

// ResistorModel estimates emissions per placed resistor from
// package-normalized factors (kg CO2e per part). No weight input is
// involved.
type ResistorModel struct {
	factors *factorTable[ResistorType]
	logger  zerolog.Logger
}

// NewResistorModel loads the resistor factor table from path, or from the
// embedded default table when path is empty. At least one package factor
// must be configured; the generic entry is aliased from 0805 when absent.
func NewResistorModel(path string, logger zerolog.Logger) (*ResistorModel, error) {
	doc, err := loadDocument(path, defaultResistorModel)
	if err != nil {
		return nil, fmt.Errorf("resistor model: %w", err)
	}

	factors, err := newFactorTable(doc.Pairs(), vocabulary[ResistorType]{
		category:    "resistor",
		parse:       ParseResistorType,
		generic:     ResistorGeneric,
		genericFrom: []ResistorType{ResistorPKG0805},
		requireAny:  true,
		fallback:    ResistorPKG0805,
	}, logger)
	if err != nil {
		return nil, err
	}
	return &ResistorModel{factors: factors, logger: logger}, nil
}

// GetCarbon computes factor × n for n resistors of the given package.
// An empty type defaults to the 0805 package, and an unresolved type
// falls back to 0805 rather than the generic entry.
func (m *ResistorModel) GetCarbon(n int, typ ResistorType) (carbon.Carbon, error) {
	if typ == "" {
		typ = ResistorPKG0805
	}
	factor, err := m.factors.resolve(typ)
	if err != nil {
		return carbon.Carbon{}, err
	}

	total := factor.MulInt(n)
	m.logger.Debug().
		Str("type", string(typ)).
		Str("factor", factor.String()).
		Int("n", n).
		Msgf("resistor carbon: %s", total.String())
	return carbon.New(total, carbon.SourceFabrication), nil
}
