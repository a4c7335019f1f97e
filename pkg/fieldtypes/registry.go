package fieldtypes

import (
	"errors"
	"strings"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ErrTypeRequired is returned when registering a definition without a type tag.
var ErrTypeRequired = errors.New("fieldtypes: definition type is required")

// Registry is the catalog of field type definitions keyed by type tag. List
// preserves registration order; re-registering a type replaces the entry in
// place. Unknown tags are a normal outcome of Lookup, not an error.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Definition
	order []string
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]Definition)}
}

// Default constructs a registry holding the built-in catalog (text, checkbox,
// select, date).
func Default() *Registry {
	reg := NewRegistry()
	for _, def := range Builtins() {
		reg.MustRegister(def)
	}
	return reg
}

// Register adds or overwrites the entry for def.Type.
func (r *Registry) Register(def Definition) error {
	typ := strings.TrimSpace(def.Type)
	if typ == "" {
		return ErrTypeRequired
	}
	def.Type = typ

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[typ]; !exists {
		r.order = append(r.order, typ)
	}
	r.types[typ] = def
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(def Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Lookup returns the definition registered for typ.
func (r *Registry) Lookup(typ string) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.types[typ]
	return def, ok
}

// List returns definitions in registration order.
func (r *Registry) List() []Definition {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Definition, 0, len(r.order))
	for _, typ := range r.order {
		out = append(out, r.types[typ])
	}
	return out
}

// Types returns the registered type tags in registration order.
func (r *Registry) Types() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// Len reports the number of registered types.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// NewField creates an instance of typ seeded with the type's defaults. The
// boolean is false when typ is unknown.
func (r *Registry) NewField(typ, id string) (model.Field, bool) {
	def, ok := r.Lookup(typ)
	if !ok {
		return model.Field{}, false
	}
	return def.NewField(id), true
}
