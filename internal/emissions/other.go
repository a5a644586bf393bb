package emissions

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/boardcarbon/internal/carbon"
	"github.com/rshade/boardcarbon/internal/units"
)

// OtherType identifies an unclassified component type in the model-file
// vocabulary.
type OtherType string

const (
	// OtherPassiveGeneric is a generic passive component.
	OtherPassiveGeneric OtherType = "passive_generic"

	// OtherActiveGeneric is a generic active component reported under
	// the other category.
	OtherActiveGeneric OtherType = "active_generic"

	// OtherGeneric is the fallback entry for unresolved types. Unlike
	// the other categories it is never synthesized; the model file must
	// configure it.
	OtherGeneric OtherType = "generic"
)

// ParseOtherType maps a model-file key onto the other-component vocabulary.
func ParseOtherType(s string) (OtherType, bool) {
	switch t := OtherType(s); t {
	case OtherPassiveGeneric, OtherActiveGeneric, OtherGeneric:
		return t, true
	}
	return "", false
}

// OtherModel estimates emissions for components outside the modeled
// categories from mass-normalized factors (kg CO2e per kg of component).
type OtherModel struct {
	factors *factorTable[OtherType]
}

// NewOtherModel loads the other-component factor table from path, or from
// the embedded default table when path is empty. Construction fails when
// the generic factor is not configured.
func NewOtherModel(path string, logger zerolog.Logger) (*OtherModel, error) {
	doc, err := loadDocument(path, defaultOtherModel)
	if err != nil {
		return nil, fmt.Errorf("other model: %w", err)
	}

	factors, err := newFactorTable(doc.Pairs(), vocabulary[OtherType]{
		category:       "other",
		parse:          ParseOtherType,
		generic:        OtherGeneric,
		requireGeneric: true,
		fallback:       OtherGeneric,
	}, logger)
	if err != nil {
		return nil, err
	}
	return &OtherModel{factors: factors}, nil
}

// GetCarbon computes weight × factor × n for n components of the given
// type. weight is the mass of a single component and must be a mass
// quantity; an empty type resolves to the generic factor.
func (m *OtherModel) GetCarbon(weight units.Quantity, typ OtherType, n int) (carbon.Carbon, error) {
	if typ == "" {
		typ = OtherGeneric
	}
	return m.factors.massCarbon(weight, typ, n, carbon.SourceOther)
}
