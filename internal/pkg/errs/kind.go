package errs

import "errors"

// Kind is the stable category of a failure. Transport adapters map kinds to
// response codes; messages are never inspected.
type Kind int

const (
	// KindInternal covers storage faults, broken invariants and anything unclassified.
	KindInternal Kind = iota
	// KindBadRequest covers malformed input and illegal state transitions.
	KindBadRequest
	// KindNotFound covers absent entities and entities the caller may not address.
	KindNotFound
	// KindForbidden covers authenticated callers acting outside their permissions.
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "BadRequest"
	case KindNotFound:
		return "NotFound"
	case KindForbidden:
		return "Forbidden"
	case KindInternal:
		return "Internal"
	}
	return "Internal"
}

// KindOf classifies err by the sentinel it wraps. When several sentinels are
// reachable (errors.Join), Forbidden wins over NotFound, which wins over
// BadRequest.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrAccessDenied):
		return KindForbidden
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange),
		errors.Is(err, ErrValueIsRequired):
		return KindBadRequest
	}
	return KindInternal
}
