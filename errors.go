package vectorai

import "github.com/yezz123/vectorai/pkg/verr"

// ErrorKind classifies why a vectorai operation failed.
type ErrorKind = verr.Kind

const (
	NotFound = verr.NotFound
	Conflict = verr.Conflict
	Invalid  = verr.Invalid
	Degraded = verr.Degraded
	Io       = verr.Io
	Internal = verr.Internal
)

// Error is the Op-tagged, kinded error type every vectorai operation
// returns on failure.
type Error = verr.Error

// KindOf extracts the ErrorKind from err, defaulting to Internal for
// errors vectorai did not produce.
func KindOf(err error) ErrorKind { return verr.KindOf(err) }
