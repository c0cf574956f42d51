package superset

import crerr "github.com/cockroachdb/errors"

var (
	// ErrMissingReferenceData marks a load that cannot proceed because the identity
	// map or the canonical player list is absent.
	ErrMissingReferenceData = crerr.New("missing reference data")
	// ErrMalformedSourceFile marks a per-player or summary file that cannot be read.
	ErrMalformedSourceFile = crerr.New("malformed source file")
)
