package synth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recordgen/internal/schema"
)

func personSpec() *schema.Spec {
	return &schema.Spec{
		Name: "Record",
		Fields: []schema.FieldDecl{
			{Name: "name", Type: schema.TypeRef{Kind: schema.KindString}},
			{Name: "age", Type: schema.TypeRef{Kind: schema.KindInt}, Default: int64(0), HasDefault: true},
		},
	}
}

func TestNew_SuppliedAndDefault(t *testing.T) {
	rec, err := Compile(personSpec())
	require.NoError(t, err)

	inst, err := rec.New(map[string]any{"name": "Alice"})
	require.NoError(t, err)

	assert.Equal(t, "Alice", inst.MustGet("name"))
	assert.Equal(t, int64(0), inst.MustGet("age"))
	assert.Equal(t, "Record(name='Alice', age=0)", inst.String())
}

func TestNew_ReadBack(t *testing.T) {
	rec, err := Compile(personSpec())
	require.NoError(t, err)

	inst, err := rec.New(map[string]any{"name": "Bob", "age": 37})
	require.NoError(t, err)

	assert.Equal(t, "Bob", inst.MustGet("name"))
	assert.Equal(t, int64(37), inst.MustGet("age"))
}

func TestNew_MissingRequired(t *testing.T) {
	rec, err := Compile(personSpec())
	require.NoError(t, err)

	_, err = rec.New(map[string]any{"age": 1})
	require.Error(t, err)

	var missing *MissingFieldError

	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Record", missing.Record)
	assert.Equal(t, "name", missing.Field)
}

func TestNew_UnknownField(t *testing.T) {
	rec, err := Compile(personSpec())
	require.NoError(t, err)

	_, err = rec.New(map[string]any{"name": "Alice", "email": "a@example.com"})
	require.Error(t, err)

	var unknown *UnknownFieldError

	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "email", unknown.Field)
}

func TestNew_CoercesSupplied(t *testing.T) {
	rec, err := Compile(personSpec())
	require.NoError(t, err)

	_, err = rec.New(map[string]any{"name": 42})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Record.name")
}

func TestNew_FactoryInvokedPerInstance(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterFactory("list", func() any { return []any{} })

	spec := &schema.Spec{
		Name: "Bag",
		Fields: []schema.FieldDecl{
			{Name: "items", Type: schema.TypeRef{Kind: schema.KindList}, Factory: "list"},
		},
	}
	require.NoError(t, reg.Add(spec))

	rec, err := reg.Compile("Bag")
	require.NoError(t, err)

	a := rec.MustNew(nil)
	b := rec.MustNew(nil)

	// Mutating one factory-produced list must not leak into the other.
	itemsA := a.MustGet("items").([]any)
	itemsA = append(itemsA, "x")
	require.NoError(t, a.Set("items", itemsA))

	assert.Empty(t, b.MustGet("items"))
	assert.Len(t, a.MustGet("items"), 1)
}

func TestNew_LiteralDefaultCopied(t *testing.T) {
	spec := &schema.Spec{
		Name: "Bag",
		Fields: []schema.FieldDecl{
			{
				Name:       "items",
				Type:       schema.TypeRef{Kind: schema.KindList},
				Default:    []any{"seed"},
				HasDefault: true,
			},
		},
	}

	rec, err := Compile(spec)
	require.NoError(t, err)

	a := rec.MustNew(nil)
	b := rec.MustNew(nil)

	itemsA := a.MustGet("items").([]any)
	itemsA[0] = "mutated"

	assert.Equal(t, []any{"seed"}, b.MustGet("items"))
}

func TestCompile_UnknownFactory(t *testing.T) {
	spec := &schema.Spec{
		Name: "Bag",
		Fields: []schema.FieldDecl{
			{Name: "items", Type: schema.TypeRef{Kind: schema.KindList}, Factory: "nope"},
		},
	}

	_, err := Compile(spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `factory "nope" not registered`)
}
