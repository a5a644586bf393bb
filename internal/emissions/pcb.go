package emissions

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/rshade/boardcarbon/internal/carbon"
	"github.com/rshade/boardcarbon/internal/modelfile"
	"github.com/rshade/boardcarbon/internal/units"
)

// Reserved PCB model-file keys alongside the integer layer entries.
const (
	// InterpolatedAverageKey configures the average carbon per area per
	// layer used for layer counts without an exact entry.
	InterpolatedAverageKey = "cpla"

	// carbonCoefficientKey configures the thickness-based coefficient.
	carbonCoefficientKey = "carbon_coefficient"

	// typicalThicknessKey configures the layer-count→thickness table.
	typicalThicknessKey = "typical_thickness"
)

// PCBModel estimates printed-circuit-board emissions from board area and
// layer count, or from physical thickness when one is supplied and a
// carbon coefficient is configured.
type PCBModel struct {
	layers       map[int]units.Quantity
	interpolated *units.Quantity
	coefficient  *units.Quantity
	thickness    map[int]units.Quantity
	logger       zerolog.Logger
}

// NewPCBModel loads the PCB factor table from path, or from the embedded
// default table when path is empty. Integer keys tabulate carbon per area
// by layer count; cpla, carbon_coefficient, and typical_thickness are
// reserved. Without a cpla entry, requests for untabulated layer counts
// fail at call time.
func NewPCBModel(path string, logger zerolog.Logger) (*PCBModel, error) {
	doc, err := loadDocument(path, defaultPCBModel)
	if err != nil {
		return nil, fmt.Errorf("pcb model: %w", err)
	}

	m := &PCBModel{
		layers:    make(map[int]units.Quantity),
		thickness: make(map[int]units.Quantity),
		logger:    logger,
	}
	for _, p := range doc.Pairs() {
		if p.Key == typicalThicknessKey {
			sub, ok := p.Value.Nested()
			if !ok {
				logger.Warn().Msg("pcb typical_thickness entry is not a mapping, skipping")
				continue
			}
			if err := m.loadTypicalThickness(sub); err != nil {
				return nil, err
			}
			continue
		}

		lit, ok := p.Value.Scalar()
		if !ok {
			logger.Warn().Str("key", p.Key).Msg("ignoring nested entry in pcb model file")
			continue
		}
		switch p.Key {
		case InterpolatedAverageKey:
			q, err := units.Parse(lit)
			if err != nil {
				return nil, fmt.Errorf("pcb %s: %w", InterpolatedAverageKey, err)
			}
			m.interpolated = &q
		case carbonCoefficientKey:
			q, err := units.Parse(lit)
			if err != nil {
				return nil, fmt.Errorf("pcb %s: %w", carbonCoefficientKey, err)
			}
			m.coefficient = &q
		default:
			count, err := strconv.Atoi(p.Key)
			if err != nil {
				logger.Warn().Str("key", p.Key).Msg("unknown pcb model key, skipping")
				continue
			}
			q, err := units.Parse(lit)
			if err != nil {
				return nil, fmt.Errorf("pcb factor %q: %w", p.Key, err)
			}
			m.layers[count] = q
		}
	}

	if m.interpolated == nil {
		logger.Warn().Msg("pcb model has no interpolated average carbon per area per layer; " +
			"requests for unregistered layer counts will fail")
	}
	return m, nil
}

// loadTypicalThickness parses the layer-count→thickness sub-table.
func (m *PCBModel) loadTypicalThickness(doc *modelfile.Document) error {
	for _, p := range doc.Pairs() {
		lit, ok := p.Value.Scalar()
		if !ok {
			m.logger.Warn().Str("key", p.Key).Msg("ignoring nested typical_thickness entry")
			continue
		}
		count, err := strconv.Atoi(p.Key)
		if err != nil {
			m.logger.Warn().Str("key", p.Key).Msg("unknown typical_thickness key, skipping")
			continue
		}
		q, err := units.Parse(lit)
		if err != nil {
			return fmt.Errorf("pcb typical_thickness %q: %w", p.Key, err)
		}
		m.thickness[count] = q
	}
	return nil
}

// TypicalThickness returns the reference thickness for a layer count from
// the typical_thickness table. Estimation never consults it implicitly.
func (m *PCBModel) TypicalThickness(layers int) (units.Quantity, bool) {
	q, ok := m.thickness[layers]
	return q, ok
}

// GetCarbon estimates board emissions. area must be an area quantity and
// a supplied thickness a length (ErrDimensionMismatch otherwise). When
// thickness is supplied and a carbon coefficient is configured the
// thickness path computes area × layers × thickness × coefficient.
// Otherwise the layer path uses the exact layer entry, or cpla × layers
// for untabulated counts; with neither available the request fails with
// ErrUntabulatedLayers. PCB results are reported under the fabrication
// source category.
func (m *PCBModel) GetCarbon(area units.Quantity, layers int, thickness *units.Quantity) (carbon.Carbon, error) {
	if !area.Check(units.Area) {
		return carbon.Carbon{}, fmt.Errorf("%w: expected an area for the pcb model, got %q",
			ErrDimensionMismatch, area.String())
	}
	if thickness != nil && !thickness.Check(units.Length) {
		return carbon.Carbon{}, fmt.Errorf("%w: expected a length thickness for the pcb model, got %q",
			ErrDimensionMismatch, thickness.String())
	}

	if thickness != nil && m.coefficient != nil {
		total := area.Mul(*thickness).Mul(*m.coefficient).MulInt(layers)
		m.logger.Debug().
			Str("area", area.String()).
			Int("layers", layers).
			Str("thickness", thickness.String()).
			Str("coefficient", m.coefficient.String()).
			Msgf("pcb carbon (thickness-based): %s", total.String())
		return carbon.New(total, carbon.SourceFabrication), nil
	}

	var perArea units.Quantity
	if q, ok := m.layers[layers]; ok {
		perArea = q
	} else if m.interpolated != nil {
		perArea = m.interpolated.MulInt(layers)
	} else {
		return carbon.Carbon{}, fmt.Errorf("%w: %d layers and no %s configured",
			ErrUntabulatedLayers, layers, InterpolatedAverageKey)
	}

	total := perArea.Mul(area)
	m.logger.Debug().
		Str("area", area.String()).
		Int("layers", layers).
		Str("perArea", perArea.String()).
		Msgf("pcb carbon (layer-based): %s", total.String())
	return carbon.New(total, carbon.SourceFabrication), nil
}
