// Package templating wraps pongo2 so field types declared in catalog files can
// carry their code templates as plain strings. Templates receive the field's
// flattened attributes under `field` and never escape their output.
package templating
