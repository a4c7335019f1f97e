// Package form implements the form document model: the single owner of the
// row/field tree and of the current field selection.
//
// Operations are synchronous. Each one builds a complete new model.Document
// and swaps it in atomically before notifying subscribers, so a renderer or
// the code generator holding an older snapshot keeps a consistent view.
// References to rows or fields that no longer exist are not errors; the
// operation returns false and leaves the document untouched. The model never
// lets the last row be deleted.
package form
