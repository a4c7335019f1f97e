package tui

import (
	"log/slog"

	"github.com/goliatone/go-formbuilder/pkg/codegen"
	"github.com/goliatone/go-formbuilder/pkg/fieldtypes"
	"github.com/goliatone/go-formbuilder/pkg/form"
)

// Theme captures optional message prefixes the session prints with.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithModel edits an existing model instead of a fresh one.
func WithModel(m *form.Model) Option {
	return func(s *Session) {
		if m != nil {
			s.model = m
		}
	}
}

// WithRegistry sets the field type catalog offered when adding fields.
func WithRegistry(registry *fieldtypes.Registry) Option {
	return func(s *Session) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithGenerator sets the generator used by the "Show code" action.
func WithGenerator(generator *codegen.Generator) Option {
	return func(s *Session) {
		if generator != nil {
			s.generator = generator
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
