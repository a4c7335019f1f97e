package importer

import "errors"

var (
	// ErrEmptyDocument is returned when the OpenAPI payload is empty.
	ErrEmptyDocument = errors.New("importer: document payload is empty")
	// ErrOperationNotFound is returned when no operation matches the id.
	ErrOperationNotFound = errors.New("importer: operation not found")
	// ErrNoRequestBody is returned when the operation has no usable request
	// body schema.
	ErrNoRequestBody = errors.New("importer: operation has no request body schema")
)
