// Package units provides dimensioned quantities for emission arithmetic.
//
// A Quantity pairs an exact decimal magnitude with a dimension exponent
// vector over mass, length, and energy. Values are normalized to base
// units (kg, mm, MJ) at parse time, so arithmetic never needs conversion
// tables and two quantities with equal dimensions compare directly.
package units

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Dimension is the exponent vector of a quantity over the base dimensions.
// The zero value is dimensionless.
type Dimension struct {
	Mass   int
	Length int
	Energy int
}

// Named dimensions used throughout the emission models.
var (
	Dimensionless = Dimension{}
	Mass          = Dimension{Mass: 1}
	Length        = Dimension{Length: 1}
	Area          = Dimension{Length: 2}
	Volume        = Dimension{Length: 3}
	Energy        = Dimension{Energy: 1}

	// MassPerEnergy is the dimension of a carbon-intensity factor (kg/MJ).
	MassPerEnergy = Dimension{Mass: 1, Energy: -1}

	// EnergyPerMass is the dimension of a manufacturing-energy factor (MJ/kg).
	EnergyPerMass = Dimension{Mass: -1, Energy: 1}
)

// add returns the component-wise sum of two exponent vectors.
func (d Dimension) add(o Dimension) Dimension {
	return Dimension{
		Mass:   d.Mass + o.Mass,
		Length: d.Length + o.Length,
		Energy: d.Energy + o.Energy,
	}
}

// scale multiplies every exponent by n.
func (d Dimension) scale(n int) Dimension {
	return Dimension{Mass: d.Mass * n, Length: d.Length * n, Energy: d.Energy * n}
}

// String renders the dimension as its base-unit symbol, e.g. "kg", "mm2",
// "kg/MJ". The dimensionless vector renders as an empty string.
func (d Dimension) String() string {
	return unitSymbol(d)
}

// Quantity is an immutable dimensioned value. The zero value is a
// dimensionless zero.
type Quantity struct {
	value decimal.Decimal
	dim   Dimension
}

// New returns a quantity with the given magnitude in base units.
func New(value decimal.Decimal, dim Dimension) Quantity {
	return Quantity{value: value, dim: dim}
}

// Zero returns a zero-magnitude quantity of the given dimension.
func Zero(dim Dimension) Quantity {
	return Quantity{value: decimal.Zero, dim: dim}
}

// Scalar returns a dimensionless quantity with the given integer magnitude.
func Scalar(n int) Quantity {
	return Quantity{value: decimal.NewFromInt(int64(n))}
}

// Value returns the magnitude in base units.
func (q Quantity) Value() decimal.Decimal {
	return q.value
}

// Dim returns the dimension exponent vector.
func (q Quantity) Dim() Dimension {
	return q.dim
}

// Check reports whether the quantity has exactly the given dimension.
func (q Quantity) Check(dim Dimension) bool {
	return q.dim == dim
}

// IsZero reports whether the magnitude is zero, regardless of dimension.
func (q Quantity) IsZero() bool {
	return q.value.IsZero()
}

// Mul returns the product of two quantities; dimensions add.
func (q Quantity) Mul(o Quantity) Quantity {
	return Quantity{value: q.value.Mul(o.value), dim: q.dim.add(o.dim)}
}

// MulInt scales the quantity by an integer count.
func (q Quantity) MulInt(n int) Quantity {
	return Quantity{value: q.value.Mul(decimal.NewFromInt(int64(n))), dim: q.dim}
}

// Add returns the sum of two quantities of equal dimension. Adding
// quantities of different dimensions returns ErrIncompatibleDimensions.
func (q Quantity) Add(o Quantity) (Quantity, error) {
	if q.dim != o.dim {
		return Quantity{}, fmt.Errorf("%w: %q + %q", ErrIncompatibleDimensions, q.String(), o.String())
	}
	return Quantity{value: q.value.Add(o.value), dim: q.dim}, nil
}

// Equal reports whether two quantities have the same dimension and a
// numerically equal magnitude (1.5 equals 1.50).
func (q Quantity) Equal(o Quantity) bool {
	return q.dim == o.dim && q.value.Equal(o.value)
}

// String renders the quantity in base units, e.g. "0.00003 kg", "112",
// "6.84 kg/mm2". The output round-trips through Parse.
func (q Quantity) String() string {
	sym := unitSymbol(q.dim)
	if sym == "" {
		return q.value.String()
	}
	return q.value.String() + " " + sym
}
