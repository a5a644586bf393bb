package units

// constError is an immutable error type for sentinel errors.
// It implements the error interface and can be compared with errors.Is().
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrMalformedQuantity indicates a literal that is not "<number> [unit]".
	ErrMalformedQuantity = constError("malformed quantity literal")

	// ErrUnknownUnit indicates a unit symbol outside the supported table.
	ErrUnknownUnit = constError("unknown unit symbol")

	// ErrIncompatibleDimensions indicates arithmetic across different dimensions.
	ErrIncompatibleDimensions = constError("incompatible dimensions")
)
