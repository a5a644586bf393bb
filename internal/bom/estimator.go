package bom

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/rshade/boardcarbon/internal/carbon"
	"github.com/rshade/boardcarbon/internal/emissions"
	"github.com/rshade/boardcarbon/internal/report"
	"github.com/rshade/boardcarbon/internal/units"
)

// Model file names recognized under an override directory.
const (
	activeModelFile    = "active.yaml"
	capacitorModelFile = "capacitors.yaml"
	connectorModelFile = "connector.yaml"
	diodeModelFile     = "diode.yaml"
	inductorModelFile  = "inductor.yaml"
	otherModelFile     = "other.yaml"
	pcbModelFile       = "pcb.yaml"
	resistorModelFile  = "resistor.yaml"
	switchModelFile    = "switch.yaml"
	intensityTableFile = "carbon_intensity.yaml"
)

// Estimator owns one instance of every category model plus the shared
// carbon-intensity table.
type Estimator struct {
	active     *emissions.ActiveModel
	capacitors *emissions.CapacitorModel
	connector  *emissions.ConnectorModel
	diode      *emissions.DiodeModel
	inductor   *emissions.InductorModel
	other      *emissions.OtherModel
	pcb        *emissions.PCBModel
	resistor   *emissions.ResistorModel
	switches   *emissions.SwitchModel

	defaultLocation emissions.EnergyLocation
	logger          zerolog.Logger // logger is immutable (copy-on-write)
}

// NewEstimator constructs all nine category models and the intensity
// table. An empty dir selects the embedded default tables throughout;
// otherwise each category whose file exists under dir is loaded from it
// and the rest fall back to the embedded defaults. Any model that fails
// to construct aborts assembly.
func NewEstimator(dir string, logger zerolog.Logger) (*Estimator, error) {
	intensities, err := emissions.LoadIntensityTable(modelPath(dir, intensityTableFile, logger), logger)
	if err != nil {
		return nil, err
	}

	e := &Estimator{logger: logger}

	if e.active, err = emissions.NewActiveModel(modelPath(dir, activeModelFile, logger), logger); err != nil {
		return nil, err
	}
	if e.capacitors, err = emissions.NewCapacitorModel(modelPath(dir, capacitorModelFile, logger), intensities, logger); err != nil {
		return nil, err
	}
	if e.connector, err = emissions.NewConnectorModel(modelPath(dir, connectorModelFile, logger), logger); err != nil {
		return nil, err
	}
	if e.diode, err = emissions.NewDiodeModel(modelPath(dir, diodeModelFile, logger), logger); err != nil {
		return nil, err
	}
	if e.inductor, err = emissions.NewInductorModel(modelPath(dir, inductorModelFile, logger), logger); err != nil {
		return nil, err
	}
	if e.other, err = emissions.NewOtherModel(modelPath(dir, otherModelFile, logger), logger); err != nil {
		return nil, err
	}
	if e.pcb, err = emissions.NewPCBModel(modelPath(dir, pcbModelFile, logger), logger); err != nil {
		return nil, err
	}
	if e.resistor, err = emissions.NewResistorModel(modelPath(dir, resistorModelFile, logger), logger); err != nil {
		return nil, err
	}
	if e.switches, err = emissions.NewSwitchModel(modelPath(dir, switchModelFile, logger), logger); err != nil {
		return nil, err
	}

	return e, nil
}

// SetDefaultLocation overrides the manufacturing location applied to
// lines that specify none. The capacitor model still defaults to Japan
// when neither the line nor this override names one.
func (e *Estimator) SetDefaultLocation(loc emissions.EnergyLocation) {
	e.defaultLocation = loc
}

// modelPath resolves a category file under the override directory,
// returning the empty path (the embedded default) when dir is empty or
// the file does not exist.
func modelPath(dir, name string, logger zerolog.Logger) string {
	if dir == "" {
		return ""
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	logger.Debug().Str("path", path).Msg("using model file override")
	return path
}

// Estimate walks the bill of materials in order and assembles the run
// summary. Lines that fail estimation are recorded with a note and
// excluded from the rollups; a board whose layer count has no factor
// aborts the whole run.
func (e *Estimator) Estimate(b *BillOfMaterials) (*report.Summary, error) {
	if b == nil {
		return nil, errors.New("nil bill of materials")
	}

	rb := report.NewBuilder(b.Name)

	if b.Board != nil {
		c, err := e.boardCarbon(b.Board.Area, b.Board.Layers, b.Board.Thickness)
		if err != nil {
			return nil, fmt.Errorf("board: %w", err)
		}
		if err := rb.AddCarbon("board", string(KindPCB), 1, c); err != nil {
			return nil, err
		}
	}

	for i := range b.Components {
		comp := &b.Components[i]
		c, err := e.estimateComponent(comp)
		switch {
		case err == nil:
			if err := rb.AddCarbon(comp.Ref, string(comp.Kind), comp.Count(), c); err != nil {
				return nil, err
			}
		case errors.Is(err, emissions.ErrUntabulatedLayers):
			return nil, fmt.Errorf("component %s: %w", comp.Ref, err)
		default:
			e.logger.Warn().
				Str("ref", comp.Ref).
				Str("kind", string(comp.Kind)).
				Err(err).
				Msg("skipping component")
			rb.AddSkipped(comp.Ref, string(comp.Kind), comp.Count(), err.Error())
		}
	}

	s := rb.Summary()
	e.logger.Info().
		Str("name", b.Name).
		Int("lines", len(s.Lines)).
		Str("total_kg", s.TotalKg).
		Msg("bom estimated")
	return s, nil
}

// estimateComponent dispatches one line to its category model.
func (e *Estimator) estimateComponent(c *Component) (carbon.Carbon, error) {
	n := c.Count()

	switch c.Kind {
	case KindActive:
		weight, err := parseRequiredWeight(c.Weight)
		if err != nil {
			return carbon.Carbon{}, err
		}
		return e.active.GetCarbon(weight, emissions.ActiveType(c.TypeName()), n)

	case KindCapacitor:
		weight, err := parseOptionalWeight(c.Weight)
		if err != nil {
			return carbon.Carbon{}, err
		}
		loc := emissions.EnergyLocation(c.Location)
		if loc == "" {
			loc = e.defaultLocation
		}
		return e.capacitors.GetCarbon(loc, emissions.CapacitorType(c.TypeName()), weight, n)

	case KindConnector:
		weight, err := parseRequiredWeight(c.Weight)
		if err != nil {
			return carbon.Carbon{}, err
		}
		return e.connector.GetCarbon(weight, emissions.ConnectorType(c.TypeName()), n)

	case KindDiode:
		weight, err := parseRequiredWeight(c.Weight)
		if err != nil {
			return carbon.Carbon{}, err
		}
		return e.diode.GetCarbon(weight, emissions.DiodeType(c.TypeName()), n)

	case KindInductor:
		weight, err := parseOptionalWeight(c.Weight)
		if err != nil {
			return carbon.Carbon{}, err
		}
		basis := emissions.SelectBasis(emissions.InductorType(c.TypeName()), weight)
		return e.inductor.GetCarbon(basis, n)

	case KindOther:
		weight, err := parseRequiredWeight(c.Weight)
		if err != nil {
			return carbon.Carbon{}, err
		}
		return e.other.GetCarbon(weight, emissions.OtherType(c.TypeName()), n)

	case KindPCB:
		board, err := e.boardCarbon(c.Area, c.Layers, c.Thickness)
		if err != nil {
			return carbon.Carbon{}, err
		}
		return carbon.New(board.Quantity.MulInt(n), board.Source), nil

	case KindResistor:
		return e.resistor.GetCarbon(n, emissions.ResistorType(c.TypeName()))

	case KindSwitch:
		weight, err := parseRequiredWeight(c.Weight)
		if err != nil {
			return carbon.Carbon{}, err
		}
		return e.switches.GetCarbon(weight, emissions.SwitchType(c.TypeName()), n)
	}

	return carbon.Carbon{}, fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)
}

// boardCarbon estimates one board from its document literals.
func (e *Estimator) boardCarbon(areaLit string, layers int, thicknessLit string) (carbon.Carbon, error) {
	if areaLit == "" {
		return carbon.Carbon{}, errors.New("board area required")
	}
	area, err := units.Parse(areaLit)
	if err != nil {
		return carbon.Carbon{}, fmt.Errorf("board area: %w", err)
	}

	var thickness *units.Quantity
	if thicknessLit != "" {
		q, err := units.Parse(thicknessLit)
		if err != nil {
			return carbon.Carbon{}, fmt.Errorf("board thickness: %w", err)
		}
		thickness = &q
	}

	return e.pcb.GetCarbon(area, layers, thickness)
}

// parseRequiredWeight reads a weight literal for a category that
// accounts by mass.
func parseRequiredWeight(lit string) (units.Quantity, error) {
	if lit == "" {
		return units.Quantity{}, ErrMissingWeight
	}
	q, err := units.Parse(lit)
	if err != nil {
		return units.Quantity{}, fmt.Errorf("weight: %w", err)
	}
	return q, nil
}

// parseOptionalWeight reads a weight literal for a category where the
// weight is one input among several; nil means none supplied.
func parseOptionalWeight(lit string) (*units.Quantity, error) {
	if lit == "" {
		return nil, nil
	}
	q, err := units.Parse(lit)
	if err != nil {
		return nil, fmt.Errorf("weight: %w", err)
	}
	return &q, nil
}
