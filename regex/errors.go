package regex

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindSyntax   ErrKind = iota // pattern rejected at compile time
	ErrKindDecode                  // name table violates its structural invariants
	ErrKindState                   // operation on a closed pattern
	ErrKindNotFound                // no group carries the requested name
	ErrKindResource                // memory for the compiled pattern unavailable
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindSyntax:
		return "syntax"
	case ErrKindDecode:
		return "decode"
	case ErrKindState:
		return "state"
	case ErrKindNotFound:
		return "not found"
	case ErrKindResource:
		return "resource"
	}
	return "unknown"
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinels by kind and message, so errors.Is(err, ErrClosed)
// holds for every closed-pattern error regardless of its cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind && e.Msg == t.Msg
}

// Sentinels commonly returned by this package.
var (
	// ErrClosed indicates use of a pattern, table view or iterator after Close.
	ErrClosed = &Error{Kind: ErrKindState, Msg: "regex: pattern closed"}
	// ErrDecode indicates a name table entry that could not be decoded.
	ErrDecode = &Error{Kind: ErrKindDecode, Msg: "regex: name table decode fault"}
	// ErrNotFound indicates a name no group carries.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "regex: no such group name"}
)

func decodeFault(err error) error {
	return &Error{Kind: ErrKindDecode, Msg: ErrDecode.Msg, Err: err}
}
