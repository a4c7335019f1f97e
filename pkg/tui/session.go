package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/codegen"
	"github.com/goliatone/go-formbuilder/pkg/fieldtypes"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Menu entries, in the order the main prompt lists them.
const (
	ActionAddField    = "Add field"
	ActionEditField   = "Edit field"
	ActionMoveField   = "Move field"
	ActionDeleteField = "Delete field"
	ActionAddRow      = "Add row"
	ActionDeleteRow   = "Delete row"
	ActionMoveRowUp   = "Move row up"
	ActionMoveRowDown = "Move row down"
	ActionShowCode    = "Show code"
	ActionDone        = "Done"
)

var menu = []string{
	ActionAddField,
	ActionEditField,
	ActionMoveField,
	ActionDeleteField,
	ActionAddRow,
	ActionDeleteRow,
	ActionMoveRowUp,
	ActionMoveRowDown,
	ActionShowCode,
	ActionDone,
}

// Dynamic option editor entries.
const (
	optionAdd    = "Add option"
	optionRename = "Rename option"
	optionRemove = "Remove option"
	optionDone   = "Done"
)

// Session drives a form model from terminal prompts. Every edit goes through
// the model operations, so subscribers see the same snapshots they would from
// any other caller.
type Session struct {
	driver    PromptDriver
	model     *form.Model
	registry  *fieldtypes.Registry
	generator *codegen.Generator
	theme     Theme
	logger    *slog.Logger
}

// NewSession constructs a session with the survey driver, a fresh model, the
// built-in registry and the default generator.
func NewSession(options ...Option) *Session {
	s := &Session{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver()
	}
	if s.model == nil {
		s.model = form.New(form.WithLogger(s.logger))
	}
	if s.registry == nil {
		s.registry = fieldtypes.Default()
	}
	if s.generator == nil {
		s.generator = codegen.New(codegen.WithLogger(s.logger))
	}
	return s
}

// Model returns the model being edited.
func (s *Session) Model() *form.Model {
	return s.model
}

// Run shows the main menu until the user picks Done. ErrAborted is returned
// when the user interrupts a prompt.
func (s *Session) Run(ctx context.Context) error {
	for {
		idx, err := s.driver.Select(ctx, SelectConfig{Message: "What next?", Options: menu, PageSize: len(menu)})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(menu) {
			continue
		}
		action := menu[idx]
		if action == ActionDone {
			return nil
		}
		if err := s.Do(ctx, action); err != nil {
			return err
		}
	}
}

// Do runs a single menu action.
func (s *Session) Do(ctx context.Context, action string) error {
	s.logger.Debug("tui: action", "action", action)
	switch action {
	case ActionAddField:
		return s.addField(ctx)
	case ActionEditField:
		return s.withField(ctx, "Edit which field?", s.editField)
	case ActionMoveField:
		return s.withField(ctx, "Move which field?", s.moveField)
	case ActionDeleteField:
		return s.withField(ctx, "Delete which field?", s.deleteField)
	case ActionAddRow:
		id := s.model.AddRow()
		return s.info(ctx, fmt.Sprintf("Added row %d", s.model.Document().RowIndex(id)+1))
	case ActionDeleteRow:
		return s.withRow(ctx, "Delete which row?", func(ctx context.Context, rowID string) error {
			if !s.model.DeleteRow(rowID) {
				return s.warn(ctx, "The last row cannot be deleted")
			}
			return nil
		})
	case ActionMoveRowUp:
		return s.withRow(ctx, "Move which row up?", func(_ context.Context, rowID string) error {
			s.model.MoveRowUp(rowID)
			return nil
		})
	case ActionMoveRowDown:
		return s.withRow(ctx, "Move which row down?", func(_ context.Context, rowID string) error {
			s.model.MoveRowDown(rowID)
			return nil
		})
	case ActionShowCode:
		return s.driver.Info(ctx, s.generator.Generate(s.model.Document(), s.registry))
	case ActionDone:
		return nil
	default:
		return fmt.Errorf("tui: unknown action %q", action)
	}
}

func (s *Session) addField(ctx context.Context) error {
	defs := s.registry.List()
	if len(defs) == 0 {
		return s.warn(ctx, "No field types are registered")
	}
	labels := make([]string, len(defs))
	for i, def := range defs {
		labels[i] = def.Label
	}
	idx, err := s.driver.Select(ctx, SelectConfig{Message: "Field type", Options: labels})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(defs) {
		return nil
	}
	def := defs[idx]

	return s.withRow(ctx, "Add to which row?", func(ctx context.Context, rowID string) error {
		field := def.NewField(s.model.NewFieldID())
		if !s.model.AddField(field, rowID) {
			return s.warn(ctx, "Row no longer exists")
		}
		s.model.SetSelectedField(field.ID())
		return nil
	})
}

func (s *Session) editField(ctx context.Context, field model.Field) error {
	s.model.SetSelectedField(field.ID())

	def, ok := s.registry.Lookup(field.Type())
	if !ok {
		return s.warn(ctx, fmt.Sprintf("Field type %q has no settings", field.Type()))
	}
	for _, setting := range def.Settings {
		current, ok := s.model.SelectedField()
		if !ok {
			return nil
		}
		if err := s.editSetting(ctx, current, setting); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) editSetting(ctx context.Context, field model.Field, setting fieldtypes.Setting) error {
	switch setting.Type {
	case fieldtypes.SettingCheckbox:
		value, err := s.driver.Confirm(ctx, ConfirmConfig{Message: setting.Label, Default: field.Bool(setting.Key)})
		if err != nil {
			return err
		}
		s.model.UpdateField(field.ID(), map[string]any{setting.Key: value})
	case fieldtypes.SettingSelect:
		if len(setting.Options) == 0 {
			return nil
		}
		labels := make([]string, len(setting.Options))
		current := 0
		for i, option := range setting.Options {
			labels[i] = option.Label
			if option.Value == field.String(setting.Key) {
				current = i
			}
		}
		idx, err := s.driver.Select(ctx, SelectConfig{Message: setting.Label, Options: labels, DefaultIndex: current})
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(setting.Options) {
			s.model.UpdateField(field.ID(), map[string]any{setting.Key: setting.Options[idx].Value})
		}
	case fieldtypes.SettingDynamicOptions:
		return s.editOptions(ctx, field.ID(), setting)
	default:
		value, err := s.driver.Input(ctx, InputConfig{Message: setting.Label, Default: field.String(setting.Key)})
		if err != nil {
			return err
		}
		s.model.UpdateField(field.ID(), map[string]any{setting.Key: value})
	}
	return nil
}

func (s *Session) editOptions(ctx context.Context, fieldID string, setting fieldtypes.Setting) error {
	actions := []string{optionAdd, optionRename, optionRemove, optionDone}
	for {
		idx, err := s.driver.Select(ctx, SelectConfig{Message: setting.Label, Options: actions})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(actions) {
			continue
		}
		switch actions[idx] {
		case optionAdd:
			s.model.AddOption(fieldID)
		case optionRename, optionRemove:
			field, ok := s.model.SelectedField()
			if !ok {
				return nil
			}
			options := field.Options()
			if len(options) == 0 {
				if err := s.warn(ctx, "No options yet"); err != nil {
					return err
				}
				continue
			}
			labels := make([]string, len(options))
			for i, option := range options {
				labels[i] = option.Label
			}
			pick, err := s.driver.Select(ctx, SelectConfig{Message: "Which option?", Options: labels})
			if err != nil {
				return err
			}
			if pick < 0 || pick >= len(options) {
				continue
			}
			if actions[idx] == optionRemove {
				s.model.RemoveOption(fieldID, pick)
				continue
			}
			label, err := s.driver.Input(ctx, InputConfig{Message: "Option label", Default: labels[pick]})
			if err != nil {
				return err
			}
			s.model.UpdateOptionLabel(fieldID, pick, label)
		case optionDone:
			return nil
		}
	}
}

func (s *Session) moveField(ctx context.Context, field model.Field) error {
	_, sourceRow, ok := s.model.Document().FindField(field.ID())
	if !ok {
		return nil
	}
	return s.withRow(ctx, "Move to which row?", func(ctx context.Context, targetRow string) error {
		raw, err := s.driver.Input(ctx, InputConfig{
			Message:   "Position (1 = first, blank = last)",
			Validator: validatePosition,
		})
		if err != nil {
			return err
		}
		index := form.End
		if raw = strings.TrimSpace(raw); raw != "" {
			n, _ := strconv.Atoi(raw)
			index = n - 1
		}
		s.model.MoveField(field.ID(), sourceRow, targetRow, index)
		return nil
	})
}

func (s *Session) deleteField(ctx context.Context, field model.Field) error {
	ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: fmt.Sprintf("Delete %s?", fieldLabel(field))})
	if err != nil || !ok {
		return err
	}
	s.model.DeleteField(field.ID())
	return nil
}

func (s *Session) withField(ctx context.Context, message string, fn func(context.Context, model.Field) error) error {
	doc := s.model.Document()
	var (
		fields []model.Field
		labels []string
	)
	for rowIdx, row := range doc.Rows() {
		for _, field := range row.Fields() {
			fields = append(fields, field)
			labels = append(labels, fmt.Sprintf("Row %d: %s", rowIdx+1, fieldLabel(field)))
		}
	}
	if len(fields) == 0 {
		return s.warn(ctx, "The form has no fields yet")
	}

	selected := 0
	if current, ok := s.model.SelectedField(); ok {
		for i, field := range fields {
			if field.ID() == current.ID() {
				selected = i
			}
		}
	}
	idx, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: selected})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(fields) {
		return nil
	}
	return fn(ctx, fields[idx])
}

func (s *Session) withRow(ctx context.Context, message string, fn func(context.Context, string) error) error {
	rows := s.model.Document().Rows()
	labels := make([]string, len(rows))
	for i, row := range rows {
		labels[i] = fmt.Sprintf("Row %d (%d fields)", i+1, row.Len())
	}
	idx, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: labels})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(rows) {
		return nil
	}
	return fn(ctx, rows[idx].ID())
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.InfoPrefix+msg)
}

func (s *Session) warn(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.ErrorPrefix+msg)
}

func fieldLabel(field model.Field) string {
	label := field.String(model.AttrLabel)
	if label == "" {
		label = field.ID()
	}
	return fmt.Sprintf("%s (%s)", label, field.Type())
}

func validatePosition(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return errors.New("enter a position starting at 1")
	}
	return nil
}
