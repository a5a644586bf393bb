package emissions

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/boardcarbon/internal/carbon"
	"github.com/rshade/boardcarbon/internal/units"
)

// ActiveType identifies an active semiconductor component type in the
// model-file vocabulary, based on Ecoinvent 3.11 activities.
type ActiveType string

const (
	// ActiveTransistorBJT is a surface-mounted BJT transistor (NPN/PNP).
	ActiveTransistorBJT ActiveType = "transistor_bjt"

	// ActiveTransistorMOSFET is a surface-mounted MOSFET transistor.
	ActiveTransistorMOSFET ActiveType = "transistor_mosfet"

	// ActiveUnspecified is an unclassified active semiconductor; it is
	// the donor for the generic entry when none is configured.
	ActiveUnspecified ActiveType = "active_generic"

	// ActiveGeneric is the fallback entry for unresolved types.
	ActiveGeneric ActiveType = "generic"
)

// ParseActiveType maps a model-file key onto the active vocabulary.
func ParseActiveType(s string) (ActiveType, bool) {
	switch t := ActiveType(s); t {
	case ActiveTransistorBJT, ActiveTransistorMOSFET, ActiveUnspecified, ActiveGeneric:
		return t, true
	}
	return "", false
}

// ActiveModel estimates emissions for active semiconductor components
// from mass-normalized factors (kg CO2e per kg of component).
type ActiveModel struct {
	factors *factorTable[ActiveType]
}

// NewActiveModel loads the active factor table from path, or from the
// embedded default table when path is empty. Construction fails when no
// generic factor can be established.
func NewActiveModel(path string, logger zerolog.Logger) (*ActiveModel, error) {
	doc, err := loadDocument(path, defaultActiveModel)
	if err != nil {
		return nil, fmt.Errorf("active model: %w", err)
	}

	factors, err := newFactorTable(doc.Pairs(), vocabulary[ActiveType]{
		category:       "active",
		parse:          ParseActiveType,
		generic:        ActiveGeneric,
		genericFrom:    []ActiveType{ActiveUnspecified},
		requireGeneric: true,
		fallback:       ActiveGeneric,
	}, logger)
	if err != nil {
		return nil, err
	}
	return &ActiveModel{factors: factors}, nil
}

// GetCarbon computes weight × factor × n for n components of the given
// type. weight is the mass of a single component and must be a mass
// quantity; an empty type resolves to the generic factor.
func (m *ActiveModel) GetCarbon(weight units.Quantity, typ ActiveType, n int) (carbon.Carbon, error) {
	if typ == "" {
		typ = ActiveGeneric
	}
	return m.factors.massCarbon(weight, typ, n, carbon.SourceActive)
}
