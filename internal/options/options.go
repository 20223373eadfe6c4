// Package options implements the engine's UCI option store: typed
// option definitions, protocol advertisement lines, and value updates
// with optional per-context overrides.
package options

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Type is the advertised UCI option type.
type Type int

const (
	Check Type = iota
	Spin
	Combo
	String
)

type definition struct {
	name     string
	typ      Type
	def      string
	min, max int
	choices  []string
}

// Registry holds the registered options and their current values.
// Reads and writes may come from different goroutines (the render path
// reads toggles while the command path sets values), so access is
// guarded by a RWMutex.
type Registry struct {
	mu       sync.RWMutex
	order    []string
	defs     map[string]*definition
	values   map[string]string
	contexts map[string]map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		defs:     make(map[string]*definition),
		values:   make(map[string]string),
		contexts: make(map[string]map[string]string),
	}
}

func (r *Registry) add(d *definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[d.name]; !exists {
		r.order = append(r.order, d.name)
	}
	r.defs[d.name] = d
	r.values[d.name] = d.def
}

// AddCheck registers a boolean option.
func (r *Registry) AddCheck(name string, def bool) {
	r.add(&definition{name: name, typ: Check, def: strconv.FormatBool(def)})
}

// AddSpin registers an integer option with inclusive bounds.
func (r *Registry) AddSpin(name string, def, min, max int) {
	r.add(&definition{name: name, typ: Spin, def: strconv.Itoa(def), min: min, max: max})
}

// AddCombo registers a choice option. The default must be one of the
// choices.
func (r *Registry) AddCombo(name, def string, choices []string) {
	r.add(&definition{name: name, typ: Combo, def: def, choices: choices})
}

// AddString registers a free-text option.
func (r *Registry) AddString(name, def string) {
	r.add(&definition{name: name, typ: String, def: def})
}

// UciLines renders one advertisement line per registered option, in
// registration order.
func (r *Registry) UciLines() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lines := make([]string, 0, len(r.order))
	for _, name := range r.order {
		d := r.defs[name]
		var b strings.Builder
		fmt.Fprintf(&b, "option name %s type %s default %s", d.name, typeName(d.typ), d.def)
		switch d.typ {
		case Spin:
			fmt.Fprintf(&b, " min %d max %d", d.min, d.max)
		case Combo:
			for _, choice := range d.choices {
				fmt.Fprintf(&b, " var %s", choice)
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}

// Set validates and stores a new value. A non-empty context stores the
// value as a context-scoped override without touching the default
// context. Unknown names and type-invalid values are errors, never
// silently dropped.
func (r *Registry) Set(name, value, context string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.defs[name]
	if !ok {
		return fmt.Errorf("unknown option: %s", name)
	}
	if err := d.validate(value); err != nil {
		return err
	}
	if context != "" {
		if r.contexts[context] == nil {
			r.contexts[context] = make(map[string]string)
		}
		r.contexts[context][name] = value
		return nil
	}
	r.values[name] = value
	return nil
}

func (d *definition) validate(value string) error {
	switch d.typ {
	case Check:
		if value != "true" && value != "false" {
			return fmt.Errorf("option %s expects true or false, got %q", d.name, value)
		}
	case Spin:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("option %s expects an integer, got %q", d.name, value)
		}
		if n < d.min || n > d.max {
			return fmt.Errorf("option %s value %d outside [%d, %d]", d.name, n, d.min, d.max)
		}
	case Combo:
		for _, choice := range d.choices {
			if value == choice {
				return nil
			}
		}
		return fmt.Errorf("option %s has no choice %q", d.name, value)
	}
	return nil
}

// Get returns the current value in the default context, or the empty
// string for an unknown name.
func (r *Registry) Get(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values[name]
}

// GetContext returns the value visible in the given context, falling
// back to the default context when no override exists.
func (r *Registry) GetContext(name, context string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if ctx, ok := r.contexts[context]; ok {
		if v, ok := ctx[name]; ok {
			return v
		}
	}
	return r.values[name]
}

// Bool reads a check option; unknown names read as false.
func (r *Registry) Bool(name string) bool {
	return r.Get(name) == "true"
}

// Int reads a spin option; unknown names read as zero.
func (r *Registry) Int(name string) int {
	n, _ := strconv.Atoi(r.Get(name))
	return n
}

// Float reads a numeric option stored as free text.
func (r *Registry) Float(name string) float64 {
	f, _ := strconv.ParseFloat(r.Get(name), 64)
	return f
}

func typeName(t Type) string {
	switch t {
	case Check:
		return "check"
	case Spin:
		return "spin"
	case Combo:
		return "combo"
	case String:
		return "string"
	}
	return "unknown"
}
