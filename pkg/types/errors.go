// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Error kinds. Callers wrap these with fmt.Errorf("%w: ...") and match
// them with errors.Is.
var (
	// ErrValidation marks input rejected before any side effect: empty
	// query, invalid id, out-of-range rating.
	ErrValidation = errors.New("validation error")

	// ErrNetwork marks a transport failure, a non-success response, or a
	// malformed response body.
	ErrNetwork = errors.New("network error")

	// ErrStorageCorruption marks a persisted value that could not be
	// decoded. It is recovered per key and never shown to the user.
	ErrStorageCorruption = errors.New("storage corruption")

	// ErrMissingCredential is returned at startup when no API key is
	// configured.
	ErrMissingCredential = errors.New("missing API credential")
)
