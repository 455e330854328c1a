package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidOption    = goerr.New("invalid option")
	ErrValidationFailed = goerr.New("validation failed")

	// ErrMalformedPayload marks webhook payloads that pass signature
	// verification but lack required structure (e.g. repository section).
	ErrMalformedPayload = goerr.New("malformed webhook payload")
)
