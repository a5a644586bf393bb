package emissions

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/boardcarbon/internal/carbon"
	"github.com/rshade/boardcarbon/internal/units"
)

// InductorType identifies an inductor type in the model-file vocabulary.
type InductorType string

const (
	// InductorWeightBased selects mass accounting via the weight-based
	// factor (kg CO2e per kg of component).
	InductorWeightBased InductorType = "weight_based"

	// Package-based types (kg CO2e per placed part).
	InductorPKG0201 InductorType = "0201"
	InductorPKG0402 InductorType = "0402"
	InductorPKG0603 InductorType = "0603"
	InductorPKG0805 InductorType = "0805"

	// InductorGeneric aliases the 0805 package factor when not
	// configured explicitly.
	InductorGeneric InductorType = "generic"
)

// ParseInductorType maps a model-file key onto the inductor vocabulary.
func ParseInductorType(s string) (InductorType, bool) {
	switch t := InductorType(s); t {
	case InductorWeightBased, InductorPKG0201, InductorPKG0402,
		InductorPKG0603, InductorPKG0805, InductorGeneric:
		return t, true
	}
	return "", false
}

// parseInductorPackageType admits only the package vocabulary; the
// weight_based key is routed to the weight factor before the package
// table is built.
func parseInductorPackageType(s string) (InductorType, bool) {
	t, ok := ParseInductorType(s)
	if !ok || t == InductorWeightBased {
		return "", false
	}
	return t, true
}

// Basis selects how an inductor request is accounted. It is a closed
// variant: PackageBasis or WeightBasis, normally produced by SelectBasis.
type Basis interface {
	isBasis()
}

// PackageBasis accounts per placed part using the package factor table.
type PackageBasis struct {
	Type InductorType
}

// WeightBasis accounts by component mass using the weight-based factor.
// A nil Weight records a weight-based request with no measurement, which
// yields a zero-valued result rather than an error.
type WeightBasis struct {
	Weight *units.Quantity
}

func (PackageBasis) isBasis() {}
func (WeightBasis) isBasis() {}

// SelectBasis applies the request precedence: a supplied weight always
// selects weight accounting regardless of the type tag; the weight_based
// type selects it even without a measurement; every other type selects
// package accounting.
func SelectBasis(typ InductorType, weight *units.Quantity) Basis {
	if weight != nil {
		return WeightBasis{Weight: weight}
	}
	if typ == InductorWeightBased {
		return WeightBasis{}
	}
	return PackageBasis{Type: typ}
}

// InductorModel estimates emissions for inductors, per placed part from
// the package factor table or by mass via the weight-based factor.
type InductorModel struct {
	packages     *factorTable[InductorType]
	weightFactor *units.Quantity
	logger       zerolog.Logger
}

// NewInductorModel loads the inductor factor table from path, or from the
// embedded default table when path is empty. The generic entry aliases
// the 0805 package factor when present. Construction does not require any
// particular factor; requests against missing data degrade per GetCarbon.
func NewInductorModel(path string, logger zerolog.Logger) (*InductorModel, error) {
	doc, err := loadDocument(path, defaultInductorModel)
	if err != nil {
		return nil, fmt.Errorf("inductor model: %w", err)
	}

	m := &InductorModel{logger: logger}
	pairs := doc.Pairs()
	rest := pairs[:0:0]
	for _, p := range pairs {
		lit, ok := p.Value.Scalar()
		if ok && p.Key == string(InductorWeightBased) {
			q, err := units.Parse(lit)
			if err != nil {
				return nil, fmt.Errorf("inductor factor %q: %w", p.Key, err)
			}
			m.weightFactor = &q
			continue
		}
		rest = append(rest, p)
	}

	m.packages, err = newFactorTable(rest, vocabulary[InductorType]{
		category:    "inductor",
		parse:       parseInductorPackageType,
		generic:     InductorGeneric,
		genericFrom: []InductorType{InductorPKG0805},
		fallback:    InductorPKG0805,
	}, logger)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// GetCarbon estimates emissions for n inductors under the given basis.
// A nil basis is treated as a generic package request. Package requests
// against an empty package table return ErrNoFactors; weight requests
// with no measurement or no configured weight factor return a zero-valued
// result. All inductor results carry the inductor source tag.
func (m *InductorModel) GetCarbon(basis Basis, n int) (carbon.Carbon, error) {
	switch b := basis.(type) {
	case WeightBasis:
		if b.Weight == nil {
			m.logger.Warn().Msg("weight not provided for inductor weight-based calculation, skipping")
			return carbon.New(units.Zero(units.Mass), carbon.SourceInductor), nil
		}
		if !b.Weight.Check(units.Mass) {
			return carbon.Carbon{}, fmt.Errorf("%w: expected a mass weight for the inductor model, got %q",
				ErrDimensionMismatch, b.Weight.String())
		}
		if m.weightFactor == nil {
			m.logger.Error().Msg("weight-based emission factor not configured in inductor model")
			return carbon.New(units.Zero(units.Mass), carbon.SourceInductor), nil
		}

		total := b.Weight.Mul(*m.weightFactor).MulInt(n)
		m.logger.Debug().
			Str("weight", b.Weight.String()).
			Str("factor", m.weightFactor.String()).
			Int("n", n).
			Msgf("inductor carbon (weight-based): %s", total.String())
		return carbon.New(total, carbon.SourceInductor), nil

	case PackageBasis:
		typ := b.Type
		if typ == "" {
			typ = InductorGeneric
		}
		factor, err := m.packages.resolve(typ)
		if err != nil {
			return carbon.Carbon{}, err
		}

		total := factor.MulInt(n)
		m.logger.Debug().
			Str("type", string(typ)).
			Str("factor", factor.String()).
			Int("n", n).
			Msgf("inductor carbon (package-based): %s", total.String())
		return carbon.New(total, carbon.SourceInductor), nil

	case nil:
		return m.GetCarbon(PackageBasis{Type: InductorGeneric}, n)

	default:
		return carbon.Carbon{}, fmt.Errorf("unsupported inductor basis %T", basis)
	}
}
