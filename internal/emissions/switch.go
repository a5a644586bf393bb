package emissions

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/boardcarbon/internal/carbon"
	"github.com/rshade/boardcarbon/internal/units"
)

// SwitchType identifies a switch type in the model-file vocabulary.
type SwitchType string

// SwitchGeneric is the only modeled switch type and the fallback entry
// for unresolved types.
const SwitchGeneric SwitchType = "generic"

// ParseSwitchType maps a model-file key onto the switch vocabulary.
func ParseSwitchType(s string) (SwitchType, bool) {
	if t := SwitchType(s); t == SwitchGeneric {
		return t, true
	}
	return "", false
}

// SwitchModel estimates emissions for mechanical switches from
// mass-normalized factors (kg CO2e per kg of component).
type SwitchModel struct {
	factors *factorTable[SwitchType]
}

// NewSwitchModel loads the switch factor table from path, or from the
// embedded default table when path is empty. The generic factor must be
// configured explicitly; construction fails without it.
func NewSwitchModel(path string, logger zerolog.Logger) (*SwitchModel, error) {
	doc, err := loadDocument(path, defaultSwitchModel)
	if err != nil {
		return nil, fmt.Errorf("switch model: %w", err)
	}

	factors, err := newFactorTable(doc.Pairs(), vocabulary[SwitchType]{
		category:       "switch",
		parse:          ParseSwitchType,
		generic:        SwitchGeneric,
		requireGeneric: true,
		fallback:       SwitchGeneric,
	}, logger)
	if err != nil {
		return nil, err
	}
	return &SwitchModel{factors: factors}, nil
}

// GetCarbon computes weight × factor × n for n switches. weight is the
// mass of a single switch and must be a mass quantity; an empty type
// resolves to the generic factor.
func (m *SwitchModel) GetCarbon(weight units.Quantity, typ SwitchType, n int) (carbon.Carbon, error) {
	if typ == "" {
		typ = SwitchGeneric
	}
	return m.factors.massCarbon(weight, typ, n, carbon.SourceSwitch)
}
