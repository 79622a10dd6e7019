package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"text/template"

	"recordgen/internal/schema"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// GenerateComments enables generation of explanatory comments.
	GenerateComments bool
	// Factories maps schema factory names to Go call expressions.
	Factories map[string]FactoryExpr
}

// FactoryExpr is the Go rendition of a named default factory: a call
// expression evaluated once per constructor invocation.
type FactoryExpr struct {
	// Expr is the call expression, e.g. "time.Now()".
	Expr string
	// Import is the package path the expression needs, if any.
	Import string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:      "records",
		OutputDir:        "./generated",
		GenerateComments: true,
		Factories: map[string]FactoryExpr{
			"now": {Expr: "time.Now()", Import: "time"},
		},
	}
}

// Generator generates Go source for synthesized record types.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "order.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate emits one file per record specification: the struct definition,
// a constructor enforcing required fields, String, Equal, and, for ordered
// records, Compare. Specs are emitted in dependency order so nested record
// structs exist before use.
func (g *Generator) Generate(specs []*schema.Spec) ([]GeneratedFile, error) {
	ordered, err := orderSpecs(specs)
	if err != nil {
		return nil, err
	}

	var files []GeneratedFile

	for _, spec := range ordered {
		file, err := g.generateSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", spec.Name, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

// generateSpec generates code for a single record specification.
func (g *Generator) generateSpec(spec *schema.Spec) (*GeneratedFile, error) {
	data, err := g.buildTemplateData(spec)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := recordTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	// Format the generated code
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, data.Filename, buf.Bytes())
		}

		// Return unformatted code for debugging
		return &GeneratedFile{
			Filename: data.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: data.Filename,
		Content:  formatted,
	}, nil
}

// orderSpecs toposorts specs by nested record references, so referenced
// structs are generated before the records embedding them.
func orderSpecs(specs []*schema.Spec) ([]*schema.Spec, error) {
	byName := make(map[string]int, len(specs))
	for i, spec := range specs {
		byName[spec.Name] = i
	}

	order, err := topoSortSpecs(len(specs), func(i int) []int {
		var deps []int

		for _, ref := range specs[i].RecordRefs() {
			j, ok := byName[ref]
			if !ok {
				continue // surfaced later as an unknown reference
			}

			deps = append(deps, j)
		}

		return deps
	})
	if err != nil {
		return nil, fmt.Errorf("ordering records: %w", err)
	}

	out := make([]*schema.Spec, len(order))
	for i, idx := range order {
		out[i] = specs[idx]
	}

	return out, nil
}

// templateData holds all data needed for the record template.
type templateData struct {
	PackageName      string
	Filename         string
	Imports          []string
	TypeName         string
	TypeDoc          string
	StructFields     []structField
	Getters          []getterData
	Constructor      constructorData
	Options          []optionData
	FormatExpr       string
	EqualChecks      []string
	CompareStanzas   []string
	Ordered          bool
	GenerateComments bool
}

// structField is one generated struct field.
type structField struct {
	Name   string
	GoType string
}

// getterData is one generated accessor for an immutable record.
type getterData struct {
	Method string
	Field  string
	GoType string
}

// constructorData describes the generated constructor.
type constructorData struct {
	Name       string
	Params     []paramData
	OptionType string
	Inits      []initData
}

// paramData is one required constructor parameter.
type paramData struct {
	Name   string
	GoType string
}

// initData is one field initialization inside the constructor.
type initData struct {
	Field string
	Expr  string
}

// optionData is one generated functional option for a defaulted field.
type optionData struct {
	FuncName string
	Field    string
	Param    string
	GoType   string
}

// sortImports returns the import paths sorted, stdlib style.
func sortImports(imports map[string]struct{}) []string {
	out := make([]string, 0, len(imports))
	for path := range imports {
		out = append(out, path)
	}

	sort.Strings(out)

	return out
}

var recordTemplate = template.Must(template.New("record").Parse(`// Code generated by recordgen. DO NOT EDIT.

package {{.PackageName}}

{{if .Imports}}
import (
{{range .Imports}}	"{{.}}"
{{end}})
{{end}}
{{if .GenerateComments}}// {{.TypeName}} {{.TypeDoc}}
{{end}}type {{.TypeName}} struct {
{{range .StructFields}}	{{.Name}} {{.GoType}}
{{end}}}

{{if .Options}}// {{.Constructor.OptionType}} overrides one defaulted field of {{.TypeName}} at construction.
type {{.Constructor.OptionType}} func(*{{.TypeName}})

{{range .Options}}// {{.FuncName}} sets the {{.Param}} field.
func {{.FuncName}}(v {{.GoType}}) {{$.Constructor.OptionType}} {
	return func(r *{{$.TypeName}}) { r.{{.Field}} = v }
}

{{end}}{{end}}// {{.Constructor.Name}} constructs a {{.TypeName}}. Required fields are
// parameters; defaulted fields take their declared default or factory value
// unless overridden{{if .Options}} by options{{end}}.
func {{.Constructor.Name}}({{range $i, $p := .Constructor.Params}}{{if $i}}, {{end}}{{$p.Name}} {{$p.GoType}}{{end}}{{if .Options}}{{if .Constructor.Params}}, {{end}}opts ...{{.Constructor.OptionType}}{{end}}) {{.TypeName}} {
	r := {{.TypeName}}{}
{{range .Constructor.Inits}}	r.{{.Field}} = {{.Expr}}
{{end}}{{if .Options}}
	for _, opt := range opts {
		opt(&r)
	}
{{end}}
	return r
}

{{range .Getters}}// {{.Method}} returns the {{.Field}} field.
func (r {{$.TypeName}}) {{.Method}}() {{.GoType}} {
	return r.{{.Field}}
}

{{end}}// String renders the record type name and each field in declaration order.
func (r {{.TypeName}}) String() string {
	return {{.FormatExpr}}
}

// Equal reports whether every field of both records compares equal, in
// declaration order.
func (r {{.TypeName}}) Equal(other {{.TypeName}}) bool {
{{range .EqualChecks}}	if !({{.}}) {
		return false
	}
{{end}}
	return true
}
{{if .Ordered}}
// Compare orders two records lexicographically over field values in
// declaration order. Returns a negative, zero, or positive result.
func (r {{.TypeName}}) Compare(other {{.TypeName}}) int {
{{range .CompareStanzas}}{{.}}
{{end}}
	return 0
}
{{end}}`))
