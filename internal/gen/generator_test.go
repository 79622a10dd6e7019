package gen

import (
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recordgen/internal/schema"
)

func pointSpec() *schema.Spec {
	return &schema.Spec{
		Name:    "Point",
		Ordered: true,
		Fields: []schema.FieldDecl{
			{Name: "x", Type: schema.TypeRef{Kind: schema.KindInt}},
			{Name: "y", Type: schema.TypeRef{Kind: schema.KindInt}, Default: int64(0), HasDefault: true},
		},
	}
}

func generateOne(t *testing.T, spec *schema.Spec) string {
	t.Helper()

	g := NewGenerator(GeneratorConfig{PackageName: "records", GenerateComments: true})

	files, err := g.Generate([]*schema.Spec{spec})
	require.NoError(t, err)
	require.Len(t, files, 1)

	return string(files[0].Content)
}

func TestGenerate_Point(t *testing.T) {
	src := generateOne(t, pointSpec())

	assert.Contains(t, src, "package records")
	assert.Contains(t, src, "type Point struct {")
	assert.Contains(t, src, "func NewPoint(x int64, opts ...PointOption) Point {")
	assert.Contains(t, src, "func PointWithY(v int64) PointOption {")
	assert.Contains(t, src, "func (r Point) String() string {")
	assert.Contains(t, src, "func (r Point) Equal(other Point) bool {")
	assert.Contains(t, src, "func (r Point) Compare(other Point) int {")
	assert.Contains(t, src, `"Point(x=%d, y=%d)"`)
}

func TestGenerate_Formatted(t *testing.T) {
	src := generateOne(t, pointSpec())

	formatted, err := format.Source([]byte(src))
	require.NoError(t, err)

	if diff := cmp.Diff(string(formatted), src); diff != "" {
		t.Errorf("generated source is not gofmt-clean (-want +got):\n%s", diff)
	}
}

func TestGenerate_ImmutableGetters(t *testing.T) {
	spec := &schema.Spec{
		Name:      "Token",
		Immutable: true,
		Fields: []schema.FieldDecl{
			{Name: "value", Type: schema.TypeRef{Kind: schema.KindString}},
		},
	}

	src := generateOne(t, spec)

	assert.Contains(t, src, "value string")
	assert.Contains(t, src, "func (r Token) Value() string {")
	assert.NotContains(t, src, "func (r Token) Compare")
}

func TestGenerate_StringFormats(t *testing.T) {
	spec := &schema.Spec{
		Name: "Sample",
		Fields: []schema.FieldDecl{
			{Name: "name", Type: schema.TypeRef{Kind: schema.KindString}},
			{Name: "ok", Type: schema.TypeRef{Kind: schema.KindBool}},
			{Name: "at", Type: schema.TypeRef{Kind: schema.KindTime}},
		},
	}

	src := generateOne(t, spec)

	assert.Contains(t, src, `"Sample(name='%s', ok=%t, at='%s')"`)
	assert.Contains(t, src, "r.At.Format(time.RFC3339)")
}

func TestGenerate_Defaults(t *testing.T) {
	spec := &schema.Spec{
		Name: "Job",
		Fields: []schema.FieldDecl{
			{Name: "retries", Type: schema.TypeRef{Kind: schema.KindInt}, Default: int64(3), HasDefault: true},
			{Name: "queue", Type: schema.TypeRef{Kind: schema.KindString}, Default: "default", HasDefault: true},
		},
	}

	src := generateOne(t, spec)

	assert.Contains(t, src, "r.Retries = 3")
	assert.Contains(t, src, `r.Queue = "default"`)
	// No required fields: constructor takes options only.
	assert.Contains(t, src, "func NewJob(opts ...JobOption) Job {")
}

func TestGenerate_FactoryExpr(t *testing.T) {
	spec := &schema.Spec{
		Name: "Event",
		Fields: []schema.FieldDecl{
			{Name: "created_at", Type: schema.TypeRef{Kind: schema.KindTime}, Factory: "now"},
			{Name: "tags", Type: schema.TypeRef{Kind: schema.KindList,
				Elem: &schema.TypeRef{Kind: schema.KindString}}, Factory: "list"},
		},
	}

	g := NewGenerator(DefaultGeneratorConfig())

	files, err := g.Generate([]*schema.Spec{spec})
	require.NoError(t, err)

	src := string(files[0].Content)
	assert.Contains(t, src, "r.CreatedAt = time.Now()")
	assert.Contains(t, src, "r.Tags = []string{}")
}

func TestGenerate_UnknownScalarFactory(t *testing.T) {
	spec := &schema.Spec{
		Name: "Event",
		Fields: []schema.FieldDecl{
			{Name: "id", Type: schema.TypeRef{Kind: schema.KindString}, Factory: "uuid"},
		},
	}

	g := NewGenerator(GeneratorConfig{PackageName: "records"})

	_, err := g.Generate([]*schema.Spec{spec})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `factory "uuid"`)
}

func TestGenerate_NestedOrder(t *testing.T) {
	address := &schema.Spec{
		Name: "Address",
		Fields: []schema.FieldDecl{
			{Name: "city", Type: schema.TypeRef{Kind: schema.KindString}},
		},
	}
	customer := &schema.Spec{
		Name: "Customer",
		Fields: []schema.FieldDecl{
			{Name: "name", Type: schema.TypeRef{Kind: schema.KindString}},
			{Name: "home", Type: schema.TypeRef{Kind: schema.KindRecord, Record: "Address"}},
		},
	}

	g := NewGenerator(GeneratorConfig{PackageName: "records"})

	// Customer listed first; Address must still be emitted first.
	files, err := g.Generate([]*schema.Spec{customer, address})
	require.NoError(t, err)
	require.Len(t, files, 2)

	want := []string{"address.go", "customer.go"}

	var got []string
	for _, f := range files {
		got = append(got, f.Filename)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected emission order (-want +got):\n%s", diff)
	}

	src := string(files[1].Content)
	assert.Contains(t, src, "Home Address")
	assert.Contains(t, src, "r.Home.Equal(other.Home)")
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()

	g := NewGenerator(GeneratorConfig{PackageName: "records"})

	files, err := g.Generate([]*schema.Spec{pointSpec()})
	require.NoError(t, err)

	require.NoError(t, WriteFiles(files, dir))

	data, err := os.ReadFile(filepath.Join(dir, "point.go"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "// Code generated by recordgen. DO NOT EDIT."))
}
