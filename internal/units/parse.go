package units

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// baseUnit is one recognized unit symbol: the dimension axis it lives on
// and its conversion factor into the base unit of that axis.
type baseUnit struct {
	dim    Dimension
	factor decimal.Decimal
}

// unitTable maps unit symbols to base-unit conversions. Base units are
// kg (mass), mm (length), and MJ (energy); kWh converts at exactly 3.6.
var unitTable = map[string]baseUnit{
	"1": {Dimensionless, decimal.NewFromInt(1)},

	"kg": {Mass, decimal.NewFromInt(1)},
	"g":  {Mass, decimal.RequireFromString("0.001")},
	"mg": {Mass, decimal.RequireFromString("0.000001")},
	"t":  {Mass, decimal.NewFromInt(1000)},
	"lb": {Mass, decimal.RequireFromString("0.45359237")},

	"mm": {Length, decimal.NewFromInt(1)},
	"cm": {Length, decimal.NewFromInt(10)},
	"m":  {Length, decimal.NewFromInt(1000)},
	"in": {Length, decimal.RequireFromString("25.4")},

	"MJ":  {Energy, decimal.NewFromInt(1)},
	"kJ":  {Energy, decimal.RequireFromString("0.001")},
	"J":   {Energy, decimal.RequireFromString("0.000001")},
	"GJ":  {Energy, decimal.NewFromInt(1000)},
	"kWh": {Energy, decimal.RequireFromString("3.6")},
	"Wh":  {Energy, decimal.RequireFromString("0.0036")},
	"MWh": {Energy, decimal.NewFromInt(3600)},
}

// Parse reads a quantity literal such as "9.38 kg/kg", "0.0004 kg",
// "473 g/kWh" or a bare number, and returns the value normalized to base
// units. A unit expression is factor tokens joined by "*", with "/"
// starting a divisor; each token is a symbol with an optional integer
// exponent ("mm2", "m^2").
func Parse(s string) (Quantity, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Quantity{}, fmt.Errorf("%w: empty literal", ErrMalformedQuantity)
	}

	value, err := decimal.NewFromString(fields[0])
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: bad number in %q", ErrMalformedQuantity, s)
	}

	expr := strings.Join(fields[1:], "")
	if expr == "" {
		return Quantity{value: value}, nil
	}

	var dim Dimension
	for i, part := range strings.Split(expr, "/") {
		sign := 1
		if i > 0 {
			sign = -1
		}
		for _, tok := range strings.Split(part, "*") {
			if tok == "" {
				continue
			}
			d, factor, err := parseToken(tok)
			if err != nil {
				return Quantity{}, fmt.Errorf("%w in %q", err, s)
			}
			dim = dim.add(d.scale(sign))
			if sign > 0 {
				value = value.Mul(factor)
			} else {
				value = value.Div(factor)
			}
		}
	}
	return Quantity{value: value, dim: dim}, nil
}

// MustParse is Parse for trusted literals; it panics on error.
func MustParse(s string) Quantity {
	q, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return q
}

// parseToken resolves one unit token, applying any exponent suffix.
func parseToken(tok string) (Dimension, decimal.Decimal, error) {
	sym := tok
	exp := 1
	if i := strings.IndexAny(tok, "^0123456789"); i > 0 {
		digits := strings.TrimPrefix(tok[i:], "^")
		n, err := strconv.Atoi(digits)
		if err != nil || n < 1 || n > 6 {
			return Dimension{}, decimal.Decimal{}, fmt.Errorf("%w: bad exponent %q", ErrUnknownUnit, tok)
		}
		sym, exp = tok[:i], n
	}

	u, ok := unitTable[sym]
	if !ok {
		return Dimension{}, decimal.Decimal{}, fmt.Errorf("%w: %q", ErrUnknownUnit, sym)
	}

	factor := decimal.NewFromInt(1)
	for i := 0; i < exp; i++ {
		factor = factor.Mul(u.factor)
	}
	return u.dim.scale(exp), factor, nil
}

// unitSymbol renders a dimension vector in base-unit symbols. Positive
// exponents join with "*"; each negative exponent appends a "/" divisor,
// so output parses back through Parse.
func unitSymbol(d Dimension) string {
	axes := []struct {
		sym string
		exp int
	}{
		{"kg", d.Mass},
		{"mm", d.Length},
		{"MJ", d.Energy},
	}

	var num, den []string
	for _, a := range axes {
		switch {
		case a.exp > 0:
			num = append(num, axisSymbol(a.sym, a.exp))
		case a.exp < 0:
			den = append(den, axisSymbol(a.sym, -a.exp))
		}
	}
	if len(num) == 0 && len(den) == 0 {
		return ""
	}
	if len(num) == 0 {
		num = []string{"1"}
	}

	out := strings.Join(num, "*")
	for _, part := range den {
		out += "/" + part
	}
	return out
}

func axisSymbol(sym string, exp int) string {
	if exp == 1 {
		return sym
	}
	return sym + strconv.Itoa(exp)
}
