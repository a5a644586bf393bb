package emissions

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/boardcarbon/internal/carbon"
	"github.com/rshade/boardcarbon/internal/units"
)

// CapacitorType identifies a capacitor type in the model-file vocabulary.
// The mlcc/tec/generic members are energy-based (manufacturing energy per
// kg of component); the package members are per-part emission factors.
type CapacitorType string

const (
	// CapacitorMLCC is a multilayer ceramic capacitor (energy-based).
	CapacitorMLCC CapacitorType = "mlcc"

	// CapacitorTEC is a tantalum electrolytic capacitor (energy-based).
	CapacitorTEC CapacitorType = "tec"

	// CapacitorGeneric is the generic energy-based capacitor type.
	CapacitorGeneric CapacitorType = "generic"

	// Package-based types (kg CO2e per placed part).
	CapacitorPKG0201 CapacitorType = "0201"
	CapacitorPKG0402 CapacitorType = "0402"
	CapacitorPKG0603 CapacitorType = "0603"
	CapacitorPKG0805 CapacitorType = "0805"
)

// ParseCapacitorType maps a model-file key onto the capacitor vocabulary.
func ParseCapacitorType(s string) (CapacitorType, bool) {
	switch t := CapacitorType(s); t {
	case CapacitorMLCC, CapacitorTEC, CapacitorGeneric,
		CapacitorPKG0201, CapacitorPKG0402, CapacitorPKG0603, CapacitorPKG0805:
		return t, true
	}
	return "", false
}

// energyBased reports whether a type belongs to the energy-based
// vocabulary rather than the package table.
func (t CapacitorType) energyBased() bool {
	return t == CapacitorMLCC || t == CapacitorTEC || t == CapacitorGeneric
}

var (
	// DefaultCapacitorWeight is assumed for energy-based requests that
	// supply no measured weight.
	DefaultCapacitorWeight = units.MustParse("0.03 g")

	// DefaultCarbonPerCapacitor is the rescue emission per part applied
	// when a requested type is absent from both factor tables.
	DefaultCarbonPerCapacitor = units.MustParse("300 g")
)

// CapacitorModel estimates emissions for capacitors. It selects among
// three calculations per request:
//
//  1. Package-based, when the requested type has a package factor:
//     factor × n.
//  2. Energy-based, when the requested type has an energy factor:
//     energyPerKg × weight × n × intensity(location).
//  3. Rescue default, when the type is in neither table:
//     DefaultCarbonPerCapacitor × n.
type CapacitorModel struct {
	energy      map[CapacitorType]units.Quantity
	packages    map[CapacitorType]units.Quantity
	intensities *IntensityTable
	logger      zerolog.Logger
}

// NewCapacitorModel loads the capacitor factor table from path, or from
// the embedded default table when path is empty. intensities supplies the
// location multipliers for energy-based requests; nil loads the embedded
// default intensity table. Construction never fails on missing factors;
// every request is answerable through the rescue default.
func NewCapacitorModel(path string, intensities *IntensityTable, logger zerolog.Logger) (*CapacitorModel, error) {
	doc, err := loadDocument(path, defaultCapacitorModel)
	if err != nil {
		return nil, fmt.Errorf("capacitor model: %w", err)
	}

	m := &CapacitorModel{
		energy:      make(map[CapacitorType]units.Quantity),
		packages:    make(map[CapacitorType]units.Quantity),
		intensities: intensities,
		logger:      logger,
	}
	for _, p := range doc.Pairs() {
		lit, ok := p.Value.Scalar()
		if !ok {
			logger.Warn().Str("key", p.Key).Msg("ignoring nested entry in capacitor model file")
			continue
		}
		typ, ok := ParseCapacitorType(p.Key)
		if !ok {
			logger.Warn().Str("key", p.Key).Msg("unknown capacitor type in model file, skipping")
			continue
		}
		q, err := units.Parse(lit)
		if err != nil {
			return nil, fmt.Errorf("capacitor factor %q: %w", p.Key, err)
		}
		if typ.energyBased() {
			m.energy[typ] = q
		} else {
			m.packages[typ] = q
		}
	}

	if m.intensities == nil {
		ci, err := LoadIntensityTable("", logger)
		if err != nil {
			return nil, fmt.Errorf("capacitor model: %w", err)
		}
		m.intensities = ci
	}
	return m, nil
}

// GetCarbon estimates emissions for n capacitors of the given type.
// weight is the mass of a single part; nil assumes DefaultCapacitorWeight
// and is only consulted by the energy-based calculation. An empty
// location defaults to Japan, an empty type to generic. All capacitor
// results are reported under the passives source category.
func (m *CapacitorModel) GetCarbon(loc EnergyLocation, typ CapacitorType, weight *units.Quantity, n int) (carbon.Carbon, error) {
	if typ == "" {
		typ = CapacitorGeneric
	}

	if factor, ok := m.packages[typ]; ok {
		total := factor.MulInt(n)
		m.logger.Debug().
			Str("type", string(typ)).
			Str("factor", factor.String()).
			Int("n", n).
			Msgf("capacitor carbon (package-based): %s", total.String())
		return carbon.New(total, carbon.SourcePassives), nil
	}

	if energyPerKg, ok := m.energy[typ]; ok {
		w := DefaultCapacitorWeight
		if weight != nil {
			if !weight.Check(units.Mass) {
				return carbon.Carbon{}, fmt.Errorf("%w: expected a mass weight for the capacitor model, got %q",
					ErrDimensionMismatch, weight.String())
			}
			w = *weight
		}
		if loc == "" {
			loc = LocationJapan
		}

		intensity := m.intensities.Intensity(loc)
		total := energyPerKg.Mul(w).MulInt(n).Mul(intensity)
		m.logger.Debug().
			Str("type", string(typ)).
			Str("location", string(loc)).
			Str("energy", energyPerKg.String()).
			Str("weight", w.String()).
			Str("intensity", intensity.String()).
			Int("n", n).
			Msgf("capacitor carbon (energy-based): %s", total.String())
		return carbon.New(total, carbon.SourcePassives), nil
	}

	total := DefaultCarbonPerCapacitor.MulInt(n)
	m.logger.Debug().
		Str("type", string(typ)).
		Int("n", n).
		Msgf("capacitor carbon (default per part): %s", total.String())
	return carbon.New(total, carbon.SourcePassives), nil
}
