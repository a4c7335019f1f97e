package fieldtypes

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/templating"
)

// LoadOption configures catalog loading.
type LoadOption func(*loadConfig)

type loadConfig struct {
	engine *templating.Engine
	logger *slog.Logger
}

// WithEngine compiles catalog templates with the supplied engine (shared
// filters, globals, include FS).
func WithEngine(engine *templating.Engine) LoadOption {
	return func(cfg *loadConfig) {
		if engine != nil {
			cfg.engine = engine
		}
	}
}

// WithLogger reports template execution failures at debug level.
func WithLogger(logger *slog.Logger) LoadOption {
	return func(cfg *loadConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

type catalogFile struct {
	Types []catalogEntry `yaml:"types"`
}

type catalogEntry struct {
	Type     string         `yaml:"type"`
	Label    string         `yaml:"label"`
	Icon     string         `yaml:"icon"`
	Defaults map[string]any `yaml:"defaults"`
	Settings []Setting      `yaml:"settings"`
	Template string         `yaml:"template"`
}

// LoadFS walks fsys and parses every JSON/YAML catalog file into definitions,
// in lexical file order and declaration order within a file. A type declared
// twice is an error.
func LoadFS(fsys fs.FS, options ...LoadOption) ([]Definition, error) {
	cfg := loadConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if fsys == nil {
		return nil, nil
	}
	if cfg.engine == nil {
		engine, err := templating.New()
		if err != nil {
			return nil, fmt.Errorf("fieldtypes: template engine: %w", err)
		}
		cfg.engine = engine
	}

	var defs []Definition
	seen := make(map[string]string)

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("fieldtypes: read %s: %w", path, err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return fmt.Errorf("fieldtypes: catalog %s is empty", path)
		}

		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("fieldtypes: parse %s: %w", path, err)
		}

		for idx, raw := range file.Types {
			def, err := buildDefinition(raw, cfg)
			if err != nil {
				return fmt.Errorf("fieldtypes: %s entry %d: %w", path, idx, err)
			}
			if previous, dup := seen[def.Type]; dup {
				return fmt.Errorf("fieldtypes: duplicate type %q (files %s and %s)", def.Type, previous, path)
			}
			seen[def.Type] = path
			defs = append(defs, def)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return defs, nil
}

// LoadFS registers every definition found in fsys. Catalog entries override
// registered types with the same tag.
func (r *Registry) LoadFS(fsys fs.FS, options ...LoadOption) error {
	defs, err := LoadFS(fsys, options...)
	if err != nil {
		return err
	}
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// FromTemplate adapts a compiled template into a CodeTemplate. The template
// sees the flattened field under `field`; execution errors yield "".
func FromTemplate(tpl *templating.Template, logger *slog.Logger) CodeTemplate {
	return func(field model.Field) string {
		out, err := tpl.Execute(map[string]any{"field": field.Data()})
		if err != nil {
			if logger != nil {
				logger.Debug("field template failed", "type", field.Type(), "field", field.ID(), "error", err)
			}
			return ""
		}
		return out
	}
}

func buildDefinition(raw catalogEntry, cfg loadConfig) (Definition, error) {
	typ := strings.TrimSpace(raw.Type)
	if typ == "" {
		return Definition{}, ErrTypeRequired
	}

	def := Definition{
		Type:          typ,
		Label:         strings.TrimSpace(raw.Label),
		Icon:          sanitizeIcon(raw.Icon),
		DefaultConfig: model.NewField("", typ, raw.Defaults).Attrs(),
		Settings:      append([]Setting(nil), raw.Settings...),
	}
	if def.Label == "" {
		def.Label = typ
	}
	for idx, setting := range def.Settings {
		if strings.TrimSpace(setting.Key) == "" {
			return Definition{}, fmt.Errorf("setting %d of type %q has no key", idx, typ)
		}
		if setting.Type == "" {
			def.Settings[idx].Type = SettingText
		}
	}

	if strings.TrimSpace(raw.Template) != "" {
		tpl, err := cfg.engine.Compile(raw.Template)
		if err != nil {
			return Definition{}, fmt.Errorf("type %q: %w", typ, err)
		}
		def.Template = FromTemplate(tpl, cfg.logger)
	}
	return def, nil
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
