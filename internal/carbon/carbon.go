// Package carbon defines the carbon result value produced by the
// emission models: a dimensioned quantity tagged with the emission
// source category it should be reported under.
package carbon

import "github.com/rshade/boardcarbon/internal/units"

// SourceType identifies the reporting bucket an emission belongs to.
type SourceType int

const (
	// SourceFabrication groups board and discrete-semiconductor
	// manufacturing emissions (PCBs, diodes, resistors).
	SourceFabrication SourceType = iota

	// SourceActive covers active semiconductor components.
	SourceActive

	// SourcePassives covers capacitors.
	SourcePassives

	// SourceConnector covers board-level connectors.
	SourceConnector

	// SourceInductor covers inductive components.
	SourceInductor

	// SourceSwitch covers mechanical switches.
	SourceSwitch

	// SourceOther covers components outside the modeled categories.
	SourceOther
)

// String returns the reporting label for the source category.
func (s SourceType) String() string {
	switch s {
	case SourceFabrication:
		return "fabrication"
	case SourceActive:
		return "active"
	case SourcePassives:
		return "passives"
	case SourceConnector:
		return "connector"
	case SourceInductor:
		return "inductor"
	case SourceSwitch:
		return "switch"
	case SourceOther:
		return "other"
	default:
		return "unknown"
	}
}

// Carbon is an immutable emission result. Ownership passes to the caller;
// accumulate with Quantity.Add.
type Carbon struct {
	Quantity units.Quantity
	Source   SourceType
}

// New returns a carbon result for the given quantity and source category.
func New(q units.Quantity, source SourceType) Carbon {
	return Carbon{Quantity: q, Source: source}
}

// String renders the result as "<quantity> (<source>)".
func (c Carbon) String() string {
	return c.Quantity.String() + " (" + c.Source.String() + ")"
}
