package bom

// constError is an immutable error type for sentinel errors.
// It implements the error interface and can be compared with errors.Is().
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrUnknownKind indicates a component kind outside the nine
	// modeled categories. The whole document is rejected.
	ErrUnknownKind = constError("unknown component kind")

	// ErrMissingWeight indicates a component whose category accounts by
	// mass but whose line carries no weight.
	ErrMissingWeight = constError("component weight required")
)
