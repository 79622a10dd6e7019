package synth

import (
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recordgen/internal/schema"
)

func TestRegistry_LoadFile(t *testing.T) {
	f, err := schema.Parse([]byte(`
records:
  - name: Address
    fields:
      - name: city
        kind: string
      - name: zip
        kind: string
        default: ""
  - name: Customer
    fields:
      - name: name
        kind: string
      - name: home
        kind: record
        record: Address
`))
	require.NoError(t, err)

	reg := NewRegistry()

	diags := reg.LoadFile(f)
	require.True(t, diags.IsValid(), "unexpected diagnostics: %v", diags.Errors)

	records, err := reg.CompileAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	spew.Dump(records["Customer"].Spec())

	home := records["Address"].MustNew(map[string]any{"city": "Oslo"})
	cust, err := records["Customer"].New(map[string]any{"name": "Ada", "home": home})
	require.NoError(t, err)

	assert.Equal(t, "Customer(name='Ada', home=Address(city='Oslo', zip=''))", cust.String())
}

func TestRegistry_NestedTypeChecked(t *testing.T) {
	f, err := schema.Parse([]byte(`
records:
  - name: Address
    fields: [{name: city, kind: string}]
  - name: Other
    fields: [{name: city, kind: string}]
  - name: Customer
    fields:
      - name: home
        kind: record
        record: Address
`))
	require.NoError(t, err)

	reg := NewRegistry()
	require.True(t, reg.LoadFile(f).IsValid())

	records, err := reg.CompileAll()
	require.NoError(t, err)

	wrong := records["Other"].MustNew(map[string]any{"city": "Oslo"})

	_, err = records["Customer"].New(map[string]any{"home": wrong})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected Address instance")
}

func TestRegistry_CycleDetected(t *testing.T) {
	reg := NewRegistry()

	a := &schema.Spec{
		Name: "A",
		Fields: []schema.FieldDecl{
			{Name: "b", Type: schema.TypeRef{Kind: schema.KindRecord, Record: "B"}},
		},
	}
	b := &schema.Spec{
		Name: "B",
		Fields: []schema.FieldDecl{
			{Name: "a", Type: schema.TypeRef{Kind: schema.KindRecord, Record: "A"}},
		},
	}

	require.NoError(t, reg.Add(a))
	require.NoError(t, reg.Add(b))

	_, err := reg.Compile("A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestRegistry_DuplicateAdd(t *testing.T) {
	reg := NewRegistry()

	spec := pointSpec(false)
	require.NoError(t, reg.Add(spec))
	require.Error(t, reg.Add(spec))
}

func TestRegistry_CompileCached(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Add(pointSpec(false)))

	first, err := reg.Compile("Point")
	require.NoError(t, err)

	second, err := reg.Compile("Point")
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestRegistry_LoadFile_DefaultCoercion(t *testing.T) {
	f, err := schema.Parse([]byte(`
records:
  - name: Job
    fields:
      - name: timeout
        kind: duration
        default: "90s"
`))
	require.NoError(t, err)

	reg := NewRegistry()

	diags := reg.LoadFile(f)
	require.True(t, diags.IsValid())

	spec := reg.Spec("Job")
	require.NotNil(t, spec)
	require.True(t, spec.Fields[0].HasDefault)
	assert.Equal(t, 90*time.Second, spec.Fields[0].Default)
}

func TestRegistry_LoadFile_BadDefault(t *testing.T) {
	f, err := schema.Parse([]byte(`
records:
  - name: Job
    fields:
      - name: timeout
        kind: duration
        default: "soon"
`))
	require.NoError(t, err)

	reg := NewRegistry()

	diags := reg.LoadFile(f)
	require.True(t, diags.HasErrors())

	first, ok := diags.FirstError()
	require.True(t, ok)
	assert.Equal(t, "default_coerce", first.Code)
}

func TestRegistry_BuiltinNowFactory(t *testing.T) {
	spec := &schema.Spec{
		Name: "Event",
		Fields: []schema.FieldDecl{
			{Name: "at", Type: schema.TypeRef{Kind: schema.KindTime}, Factory: "now"},
		},
	}

	rec, err := Compile(spec)
	require.NoError(t, err)

	inst := rec.MustNew(nil)

	at, ok := inst.MustGet("at").(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), at, time.Minute)
}
