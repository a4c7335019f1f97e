// Package tui is a terminal front end for the form builder. A Session walks
// the user through menu prompts (add, edit, move and delete fields and rows)
// and applies each choice as a form model operation. Prompts go through a
// PromptDriver; the default implementation uses survey.
package tui
