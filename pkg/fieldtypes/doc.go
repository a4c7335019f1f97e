// Package fieldtypes holds the field type registry: a catalog keyed by type
// tag where each entry bundles display metadata, the defaults seeded into new
// field instances, a settings schema and the code template that turns an
// instance into generated source. New kinds of field are added by registering
// entries, either in Go or through YAML/JSON catalog files whose templates are
// pongo2 strings, without touching the form model or the generator.
package fieldtypes
