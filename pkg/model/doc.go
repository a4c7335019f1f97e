// Package model defines the value types of a form document: fields grouped in
// ordered rows, and the document that orders the rows. Every value is
// immutable once built. Accessors hand out copies of slices and attribute
// maps, so a snapshot given to a renderer or the code generator can never be
// changed behind the back of the form model that produced it.
//
// A field carries its identifier, its field type tag and a free-form map of
// attributes (`label`, `required`, `placeholder`, `inputType`, `options`, ...).
// The `options` attribute is normalised into []Option so templates always see
// the same shape regardless of whether the field came from Go code, JSON or
// YAML.
package model
