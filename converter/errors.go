package converter

import "errors"

// Error classes surfaced by Convert. Match with errors.Is. Missing input
// files are reported by wrapping os.ErrNotExist instead.
var (
	// ErrInvalidOption reports a request that fails validation before any
	// work has started.
	ErrInvalidOption = errors.New("invalid option")

	// ErrInvalidRange reports a page range that resolves to an empty interval.
	ErrInvalidRange = errors.New("invalid page range")

	// ErrEncrypted reports an encrypted document opened without a password.
	ErrEncrypted = errors.New("PDF is encrypted, provide a password")

	// ErrBadPassword reports a password the document rejected.
	ErrBadPassword = errors.New("incorrect PDF password")
)
