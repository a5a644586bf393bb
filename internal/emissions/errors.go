package emissions

// constError is an immutable error type for sentinel errors.
// It implements the error interface and can be compared with errors.Is().
type constError string

func (e constError) Error() string { return string(e) }

// All fatal conditions below are configuration-integrity failures: the
// model refuses to exist (or to answer) rather than run half-configured.
// The caller assembling the models decides whether that aborts the run.
var (
	// ErrMissingGeneric indicates no generic fallback factor could be
	// established at construction.
	ErrMissingGeneric = constError("no generic emission factor available")

	// ErrMissingFactor indicates a required named factor is absent from
	// the model file.
	ErrMissingFactor = constError("required emission factor missing")

	// ErrNoFactors indicates a factor table with no usable entries.
	ErrNoFactors = constError("no emission factors configured")

	// ErrDimensionMismatch indicates a weight, area, or thickness argument
	// of the wrong dimension: a caller bug, never coerced.
	ErrDimensionMismatch = constError("argument has wrong dimension")

	// ErrUntabulatedLayers indicates a PCB layer count with neither an
	// exact table entry nor an interpolation basis.
	ErrUntabulatedLayers = constError("no pcb factor for layer count")
)
