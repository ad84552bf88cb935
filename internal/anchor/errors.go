package anchor

import "errors"

// Configuration errors. They are reported before any anchor is scored.
var (
	ErrInvalidAnswer   = errors.New("anchor: invalid answer type")
	ErrInvalidMode     = errors.New("anchor: invalid anchor mode")
	ErrNegativeBound   = errors.New("anchor: mismatch bounds must be >= 0")
	ErrIndelsNeedFixed = errors.New("anchor: indels are only supported with fixed pattern and subject")
)
