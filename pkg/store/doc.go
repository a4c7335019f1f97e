// Package store keeps named form documents in a SQLite database so builder
// sessions can be resumed. Documents are stored as JSON in the same shape the
// model package encodes, next to a revision counter bumped on every save.
package store
