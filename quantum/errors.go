package quantum

import "github.com/pkg/errors"

// Validation failures. Every public operation checks its input before it
// touches the state vector, so a returned error means nothing was mutated.
var (
	ErrInvalidQubitIndex = errors.New("invalid qubit index")
	ErrInvalidQubitSpec  = errors.New("invalid qubit specification")
	ErrDimensionMismatch = errors.New("operator dimension does not match state")
	ErrInvalidVectorSpec = errors.New("invalid initialization vector")
	ErrInvalidShotCount  = errors.New("shot count must be positive")
	ErrInvalidQubitCount = errors.New("invalid qubit count")
	ErrUnknownGate       = errors.New("unknown gate")
	ErrNormDrift         = errors.New("state is not normalized")
)
