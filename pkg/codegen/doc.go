// Package codegen renders a form document into the source of a standalone
// Angular component. Output is a pure function of the document snapshot, the
// registry and the generator options: identical inputs always produce
// byte-identical text.
package codegen
