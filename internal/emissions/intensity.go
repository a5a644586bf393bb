package emissions

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/boardcarbon/internal/units"
)

// EnergyLocation identifies a manufacturing location in the carbon
// intensity table.
type EnergyLocation string

const (
	// LocationWorld is the world-average grid intensity, required in
	// every table as the fallback for unlisted locations.
	LocationWorld EnergyLocation = "world"

	LocationChina      EnergyLocation = "china"
	LocationTaiwan     EnergyLocation = "taiwan"
	LocationSouthKorea EnergyLocation = "south_korea"
	LocationJapan      EnergyLocation = "japan"
	LocationUSA        EnergyLocation = "usa"
	LocationEurope     EnergyLocation = "europe"
	LocationIndia      EnergyLocation = "india"
	LocationSingapore  EnergyLocation = "singapore"
)

// ParseEnergyLocation maps a table key onto the location vocabulary.
func ParseEnergyLocation(s string) (EnergyLocation, bool) {
	switch l := EnergyLocation(s); l {
	case LocationWorld, LocationChina, LocationTaiwan, LocationSouthKorea,
		LocationJapan, LocationUSA, LocationEurope, LocationIndia, LocationSingapore:
		return l, true
	}
	return "", false
}

// IntensityTable maps manufacturing locations to grid carbon intensity,
// the mass of CO2e emitted per unit of manufacturing energy. It is a
// read-only value shared by every model with an energy-based calculation.
type IntensityTable struct {
	byLocation map[EnergyLocation]units.Quantity
	logger     zerolog.Logger
}

// LoadIntensityTable loads the intensity table from path, or from the
// embedded default table when path is empty. Entries must carry a
// mass-per-energy dimension (values like "0.474 kg/kWh"), and the world
// entry is required; unknown location keys warn and skip.
func LoadIntensityTable(path string, logger zerolog.Logger) (*IntensityTable, error) {
	doc, err := loadDocument(path, defaultIntensityTable)
	if err != nil {
		return nil, fmt.Errorf("carbon intensity table: %w", err)
	}

	t := &IntensityTable{
		byLocation: make(map[EnergyLocation]units.Quantity, doc.Len()),
		logger:     logger,
	}
	for _, p := range doc.Pairs() {
		lit, ok := p.Value.Scalar()
		if !ok {
			logger.Warn().Str("key", p.Key).Msg("ignoring nested entry in carbon intensity table")
			continue
		}
		loc, ok := ParseEnergyLocation(p.Key)
		if !ok {
			logger.Warn().Str("key", p.Key).Msg("unknown location in carbon intensity table, skipping")
			continue
		}
		q, err := units.Parse(lit)
		if err != nil {
			return nil, fmt.Errorf("carbon intensity %q: %w", p.Key, err)
		}
		if !q.Check(units.MassPerEnergy) {
			return nil, fmt.Errorf("%w: carbon intensity %q must be mass per energy, got %q",
				ErrDimensionMismatch, p.Key, q.String())
		}
		t.byLocation[loc] = q
	}

	if _, ok := t.byLocation[LocationWorld]; !ok {
		return nil, fmt.Errorf("%w: carbon intensity %q", ErrMissingFactor, string(LocationWorld))
	}
	return t, nil
}

// Intensity returns the carbon intensity for loc. Locations without an
// entry fall back to the world average with a warning.
func (t *IntensityTable) Intensity(loc EnergyLocation) units.Quantity {
	if q, ok := t.byLocation[loc]; ok {
		return q
	}
	t.logger.Warn().
		Str("location", string(loc)).
		Msg("no carbon intensity for location, using world average")
	return t.byLocation[LocationWorld]
}
