// Package importer seeds a form document from the request body schema of an
// OpenAPI 3 operation, so a builder session can start from an existing API
// instead of an empty row.
package importer
