package aware

import "github.com/samber/oops"

// Error kinds surfaced by the gate. Call sites wrap these with oops so that
// errors.Is can discriminate the kind while the message carries the offending
// detail. Neither kind is retried or recovered internally, and no error leaves
// partial registry state behind.
var (
	// ErrAuthorization covers unknown or foreign client ids, denied
	// discovery permissions, and non-system callers of privileged toggles.
	ErrAuthorization = oops.Errorf("aware: authorization denied")

	// ErrValidation covers malformed service names, oversized payloads,
	// match filters that do not parse as length-value records, and
	// configurations the current platform cannot satisfy.
	ErrValidation = oops.Errorf("aware: invalid configuration")

	// ErrResourceExhausted is returned by Connect when the client table is
	// full or the connect-rate guard rejects the call.
	ErrResourceExhausted = oops.Errorf("aware: resources exhausted")
)
