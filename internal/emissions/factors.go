// Package emissions implements the per-category embodied-carbon models:
// nine component categories, each configured from a type-keyed emission
// factor table and exposing a single GetCarbon entry point.
//
// All categories share one resolution policy, implemented once by
// factorTable: unknown keys in a model file are skipped with a warning,
// a generic fallback entry is established at construction (synthesized
// from a category-specific donor when not configured explicitly), and an
// unresolved type at call time substitutes the fallback rather than
// failing. Missing required factors are construction errors; the models
// never terminate the process.
package emissions

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/boardcarbon/internal/carbon"
	"github.com/rshade/boardcarbon/internal/modelfile"
	"github.com/rshade/boardcarbon/internal/units"
)

// vocabulary describes how one category assembles its factor table and
// resolves requested types against it.
type vocabulary[T ~string] struct {
	// category labels diagnostics and error messages.
	category string

	// parse maps a raw document key onto the category's type set.
	parse func(string) (T, bool)

	// generic is the member synthesized at construction when absent;
	// empty means the category has no generic concept (Connector).
	generic T

	// genericFrom lists donor members tried in order when generic is
	// not configured explicitly.
	genericFrom []T

	// requireGeneric makes construction fail when no generic entry
	// could be established.
	requireGeneric bool

	// required lists members that must be configured explicitly.
	required []T

	// requireAny makes construction fail on an empty table.
	requireAny bool

	// fallback is the call-time substitution target for unresolved types.
	fallback T
}

// factorTable is a constructed emission-factor table for one category.
// Immutable after newFactorTable returns.
type factorTable[T ~string] struct {
	category string
	logger   zerolog.Logger
	factors  map[T]units.Quantity
	order    []T
	fallback T
}

// newFactorTable builds a table from document pairs per the category
// vocabulary. Unknown keys warn and skip; a factor literal that fails to
// parse is a document defect and fails construction, as do the
// vocabulary's required-member and generic-derivation rules.
func newFactorTable[T ~string](pairs []modelfile.Pair, v vocabulary[T], logger zerolog.Logger) (*factorTable[T], error) {
	t := &factorTable[T]{
		category: v.category,
		logger:   logger,
		factors:  make(map[T]units.Quantity, len(pairs)),
		fallback: v.fallback,
	}

	for _, p := range pairs {
		lit, ok := p.Value.Scalar()
		if !ok {
			logger.Warn().
				Str("key", p.Key).
				Msgf("ignoring nested entry in %s model file", v.category)
			continue
		}
		typ, ok := v.parse(p.Key)
		if !ok {
			logger.Warn().
				Str("key", p.Key).
				Msgf("unknown %s type in model file, skipping", v.category)
			continue
		}
		q, err := units.Parse(lit)
		if err != nil {
			return nil, fmt.Errorf("%s factor %q: %w", v.category, p.Key, err)
		}
		t.set(typ, q)
	}

	for _, req := range v.required {
		if _, ok := t.factors[req]; !ok {
			return nil, fmt.Errorf("%w: %s factor %q", ErrMissingFactor, v.category, string(req))
		}
	}

	if v.requireAny && len(t.order) == 0 {
		return nil, fmt.Errorf("%w: %s model file has no recognized entries", ErrNoFactors, v.category)
	}

	if v.generic != "" {
		if _, ok := t.factors[v.generic]; !ok {
			for _, donor := range v.genericFrom {
				if q, ok := t.factors[donor]; ok {
					t.set(v.generic, q)
					break
				}
			}
		}
		if _, ok := t.factors[v.generic]; !ok && v.requireGeneric {
			return nil, fmt.Errorf("%w: %s model", ErrMissingGeneric, v.category)
		}
	}

	return t, nil
}

// set records a factor, keeping first-insertion order for fallback use.
// A repeated key overwrites the value but keeps its original position.
func (t *factorTable[T]) set(typ T, q units.Quantity) {
	if _, ok := t.factors[typ]; !ok {
		t.order = append(t.order, typ)
	}
	t.factors[typ] = q
}

// has reports whether a type has an explicit entry.
func (t *factorTable[T]) has(typ T) bool {
	_, ok := t.factors[typ]
	return ok
}

// resolve returns the factor for typ: the exact entry when configured,
// else the fallback member, else the first configured entry in document
// order, each substitution with a warning. Only an empty table fails.
func (t *factorTable[T]) resolve(typ T) (units.Quantity, error) {
	if q, ok := t.factors[typ]; ok {
		return q, nil
	}
	if q, ok := t.factors[t.fallback]; ok {
		t.logger.Warn().
			Str("type", string(typ)).
			Str("using", string(t.fallback)).
			Msgf("%s type not found in model, using default", t.category)
		return q, nil
	}
	if len(t.order) > 0 {
		first := t.order[0]
		t.logger.Warn().
			Str("type", string(typ)).
			Str("using", string(first)).
			Msgf("%s type not found in model, using first configured factor", t.category)
		return t.factors[first], nil
	}
	return units.Quantity{}, fmt.Errorf("%w: %s model", ErrNoFactors, t.category)
}

// massCarbon computes weight × resolve(typ) × n, the shared arithmetic of
// the mass-normalized models. weight is the mass of a single component.
func (t *factorTable[T]) massCarbon(weight units.Quantity, typ T, n int, source carbon.SourceType) (carbon.Carbon, error) {
	if !weight.Check(units.Mass) {
		return carbon.Carbon{}, fmt.Errorf("%w: expected a mass weight for the %s model, got %q",
			ErrDimensionMismatch, t.category, weight.String())
	}
	factor, err := t.resolve(typ)
	if err != nil {
		return carbon.Carbon{}, err
	}

	total := weight.Mul(factor).MulInt(n)
	t.logger.Debug().
		Str("type", string(typ)).
		Str("weight", weight.String()).
		Str("factor", factor.String()).
		Int("n", n).
		Msgf("%s carbon: %s", t.category, total.String())
	return carbon.New(total, source), nil
}

// loadDocument reads the model file at path, or parses the embedded
// default table when path is empty.
func loadDocument(path string, embedded []byte) (*modelfile.Document, error) {
	if path == "" {
		return modelfile.Parse(embedded)
	}
	return modelfile.Load(path)
}
