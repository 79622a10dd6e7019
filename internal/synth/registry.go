package synth

import (
	"fmt"
	"sort"
	"time"

	"recordgen/internal/diagnostic"
	"recordgen/internal/schema"
	"recordgen/internal/value"
)

// Factory produces a fresh default value for one field. It is invoked once
// per constructed instance, so factory-produced lists and maps are never
// shared between instances.
type Factory func() any

// Registry holds named record specifications and default factories, and
// compiles specs into synthesized Record types. Nested record references
// are resolved through the registry.
type Registry struct {
	specs     map[string]*schema.Spec
	factories map[string]Factory

	// compiled caches already-compiled records; entries are pre-cached
	// during compilation to detect reference cycles.
	compiled map[string]*Record
	inFlight map[string]bool
}

// builtinFactories are available in every registry without explicit
// registration. RegisterFactory with the same name overrides them.
var builtinFactories = map[string]Factory{
	"now": func() any { return time.Now() },
}

// NewRegistry creates a Registry with the builtin factories pre-registered.
func NewRegistry() *Registry {
	factories := make(map[string]Factory, len(builtinFactories))
	for name, fn := range builtinFactories {
		factories[name] = fn
	}

	return &Registry{
		specs:     map[string]*schema.Spec{},
		factories: factories,
		compiled:  map[string]*Record{},
		inFlight:  map[string]bool{},
	}
}

// Add registers a record specification. Duplicate names are an error.
func (r *Registry) Add(spec *schema.Spec) error {
	if spec == nil || spec.Name == "" {
		return fmt.Errorf("spec must have a name")
	}

	if _, ok := r.specs[spec.Name]; ok {
		return fmt.Errorf("duplicate record %q", spec.Name)
	}

	r.specs[spec.Name] = spec

	return nil
}

// RegisterFactory registers a named default factory. Re-registering a name
// replaces the previous factory.
func (r *Registry) RegisterFactory(name string, fn Factory) {
	r.factories[name] = fn
}

// Spec returns the specification with the given name, or nil if absent.
func (r *Registry) Spec(name string) *schema.Spec {
	return r.specs[name]
}

// Names returns the registered record names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.specs))
	for name := range r.specs {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// LoadFile converts a validated schema file into registered specs,
// decoding and coercing default literals. Validation diagnostics are
// merged into the result; loading stops on validation errors.
func (r *Registry) LoadFile(f *schema.File) *diagnostic.Diagnostics {
	diags := schema.Validate(f)
	if diags.HasErrors() {
		return diags
	}

	for i := range f.Records {
		spec, specDiags := buildSpec(&f.Records[i])
		diags.Merge(*specDiags)

		if specDiags.HasErrors() {
			continue
		}

		if err := r.Add(spec); err != nil {
			diags.AddError("duplicate_record", err.Error(), spec.Name, "")
		}
	}

	return diags
}

// buildSpec converts one schema record definition into a Spec, coercing
// default literals to their canonical runtime values.
func buildSpec(rd *schema.RecordDef) (*schema.Spec, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	spec := &schema.Spec{
		Name:      rd.Name,
		Immutable: rd.Immutable,
		Ordered:   rd.Ordered,
		Fields:    make([]schema.FieldDecl, 0, len(rd.Fields)),
	}

	for i := range rd.Fields {
		fd := &rd.Fields[i]

		decl := schema.FieldDecl{
			Name:    fd.Name,
			Type:    fd.TypeRef(),
			Factory: fd.Factory,
		}

		if fd.HasDefault() {
			raw, err := fd.DefaultValue()
			if err != nil {
				diags.AddError("default_decode", err.Error(), rd.Name, fd.Name)
				continue
			}

			coerced, err := value.Coerce(decl.Type, raw)
			if err != nil {
				diags.AddError("default_coerce",
					fmt.Sprintf("default does not fit kind %s: %v", decl.Type, err),
					rd.Name, fd.Name)

				continue
			}

			decl.Default = coerced
			decl.HasDefault = true
		}

		spec.Fields = append(spec.Fields, decl)
	}

	return spec, diags
}

// Compile compiles the named spec (and, transitively, every spec it
// references) into a Record. Results are cached; compiling the same name
// twice returns the same *Record.
func (r *Registry) Compile(name string) (*Record, error) {
	if rec, ok := r.compiled[name]; ok {
		return rec, nil
	}

	spec, ok := r.specs[name]
	if !ok {
		return nil, fmt.Errorf("record %q not registered", name)
	}

	if r.inFlight[name] {
		return nil, fmt.Errorf("record reference cycle through %q", name)
	}

	r.inFlight[name] = true
	defer delete(r.inFlight, name)

	rec := &Record{
		spec:      spec,
		index:     make(map[string]int, len(spec.Fields)),
		nested:    map[string]*Record{},
		factories: make([]Factory, len(spec.Fields)),
	}

	for i := range spec.Fields {
		decl := &spec.Fields[i]

		if _, ok := rec.index[decl.Name]; ok {
			return nil, fmt.Errorf("%s: duplicate field %q", name, decl.Name)
		}

		rec.index[decl.Name] = i

		if decl.Factory != "" {
			fn, ok := r.factories[decl.Factory]
			if !ok {
				return nil, fmt.Errorf("%s.%s: factory %q not registered", name, decl.Name, decl.Factory)
			}

			rec.factories[i] = fn
		}
	}

	// Resolve nested record references depth-first. The inFlight guard
	// turns cycles into errors instead of infinite recursion.
	for _, ref := range spec.RecordRefs() {
		nestedRec, err := r.Compile(ref)
		if err != nil {
			return nil, fmt.Errorf("%s: nested record %q: %w", name, ref, err)
		}

		rec.nested[ref] = nestedRec
	}

	r.compiled[name] = rec

	return rec, nil
}

// CompileAll compiles every registered spec, in name order.
func (r *Registry) CompileAll() (map[string]*Record, error) {
	out := make(map[string]*Record, len(r.specs))

	for _, name := range r.Names() {
		rec, err := r.Compile(name)
		if err != nil {
			return nil, err
		}

		out[name] = rec
	}

	return out, nil
}

// Compile is the single-spec convenience entrypoint: it compiles one spec
// with a fresh registry, so the spec may not reference nested records and
// only builtin factories are available.
func Compile(spec *schema.Spec) (*Record, error) {
	reg := NewRegistry()

	if err := reg.Add(spec); err != nil {
		return nil, err
	}

	return reg.Compile(spec.Name)
}
