package esincss

import (
	"regexp"
	"strings"
)

// printerKind tags values produced by this package so IsVar never has to
// guess from the shape of a value.
const printerKind = "variablePrinter"

// namespaceStrip removes characters that would break a custom property name.
var namespaceStrip = regexp.MustCompile(`[\s{};@():\[\]]`)

// Entry is one name/value pair of a variable set. Slices of entries keep
// the declaration order stable.
type Entry struct {
	Name  string
	Value any
}

// VariableOptions tunes name validation and type resolution for MakeVariables.
type VariableOptions struct {
	// NameRe replaces DefaultNameRe. It must be anchored with ^ and $.
	NameRe *regexp.Regexp
	// ToCSSName maps a variable name to its CSS custom property name.
	// It does not apply to Namespace.
	ToCSSName func(name string) string
	// ResolveType runs before the default type resolution. A non-empty
	// result is used as is.
	ResolveType func(value any) string
	// IsColor runs after the default type resolution and can upgrade a
	// value to the "color" type.
	IsColor func(value any) bool
	// Namespace is prepended to every CSS name. Whitespace and CSS syntax
	// characters are silently stripped from it.
	Namespace string
}

// Printer renders references to one CSS custom property. Printers are
// immutable and compared by identity.
type Printer struct {
	kind    string
	cssName string
	typ     string
}

// Kind returns the value's kind tag.
func (p *Printer) Kind() string { return p.kind }

// CSSName returns the custom property name, including the leading "--".
func (p *Printer) CSSName() string { return p.cssName }

// Type returns the semantic type of the value the variable was declared with.
func (p *Printer) Type() string { return p.typ }

// String renders var(--name).
func (p *Printer) String() string {
	return "var(" + p.cssName + ")"
}

// Or renders var(--name, fallback). A nil, false or empty fallback renders
// plain var(--name).
func (p *Printer) Or(fallback any) string {
	if isOmitted(fallback) {
		return p.String()
	}
	fb := stringify(fallback)
	if fb == "" {
		return p.String()
	}
	return "var(" + p.cssName + ", " + fb + ")"
}

// IsVar reports whether v is a Printer created by this package.
func IsVar(v any) bool {
	p, ok := v.(*Printer)
	return ok && p != nil && p.kind == printerKind
}

// Registry holds the declarations and printers for one set of variables.
//
// Declarations is a plain string owned by the caller, who may append raw
// CSS to it. Concurrent mutation must be serialized by the caller. The
// printers are fixed at construction.
type Registry struct {
	Declarations string

	names   []string
	vars    map[string]*Printer
	allowed map[string]bool
}

// MakeVariables validates input and builds its Registry. Any invalid name
// fails the whole call and no Registry is returned.
func MakeVariables(input []Entry, opts VariableOptions) (*Registry, error) {
	if err := assertValidNameRe(opts.NameRe); err != nil {
		return nil, err
	}

	toCSSName := opts.ToCSSName
	if toCSSName == nil {
		toCSSName = func(name string) string { return name }
	}
	namespace := namespaceStrip.ReplaceAllString(opts.Namespace, "")

	reg := &Registry{
		names:   make([]string, 0, len(input)),
		vars:    make(map[string]*Printer, len(input)),
		allowed: make(map[string]bool, len(input)),
	}

	var decl strings.Builder
	for _, e := range input {
		if err := assertValidName(e.Name, opts.NameRe); err != nil {
			return nil, err
		}

		p := &Printer{
			kind:    printerKind,
			cssName: "--" + namespace + toCSSName(e.Name),
			typ:     resolveVariableType(e.Value, opts),
		}

		if _, seen := reg.vars[e.Name]; !seen {
			reg.names = append(reg.names, e.Name)
		}
		reg.vars[e.Name] = p
		reg.allowed[e.Name] = true
		decl.WriteString(declaration(p.cssName, e.Value))
	}
	reg.Declarations = decl.String()

	return reg, nil
}

func resolveVariableType(v any, opts VariableOptions) string {
	typ := ""
	if opts.ResolveType != nil {
		typ = opts.ResolveType(v)
	}
	if typ == "" {
		typ = ResolveType(v)
	}
	if opts.IsColor != nil && typ != TypeColor && opts.IsColor(v) {
		typ = TypeColor
	}
	return typ
}

func declaration(cssName string, v any) string {
	return cssName + ": " + strings.TrimSpace(stringify(v)) + ";\n"
}

// Var returns the printer for name, or nil when name is unknown.
func (r *Registry) Var(name string) *Printer {
	return r.vars[name]
}

// Vars returns a copy of the name to printer map.
func (r *Registry) Vars() map[string]*Printer {
	out := make(map[string]*Printer, len(r.vars))
	for name, p := range r.vars {
		out[name] = p
	}
	return out
}

// Names returns the variable names in declaration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Override renders declarations for a subset of the registry's variables.
// Unknown names are dropped silently, and nil or false values are skipped.
func (r *Registry) Override(values []Entry) string {
	var b strings.Builder
	for _, e := range values {
		if !r.allowed[e.Name] || isOmitted(e.Value) {
			continue
		}
		p := r.vars[e.Name]
		if p == nil {
			continue
		}
		b.WriteString(declaration(p.cssName, e.Value))
	}
	return b.String()
}

// JoinVariables combines registries into a new one. Declarations are
// concatenated in argument order without de-duplication, and on name
// collisions the later registry's printer wins.
func JoinVariables(regs ...*Registry) *Registry {
	joined := &Registry{
		vars:    make(map[string]*Printer),
		allowed: make(map[string]bool),
	}

	var decl strings.Builder
	for _, r := range regs {
		if r == nil {
			continue
		}
		decl.WriteString(r.Declarations)
		for _, name := range r.names {
			if _, seen := joined.vars[name]; !seen {
				joined.names = append(joined.names, name)
			}
			joined.vars[name] = r.vars[name]
		}
		for name := range r.allowed {
			joined.allowed[name] = true
		}
	}
	joined.Declarations = decl.String()

	return joined
}
