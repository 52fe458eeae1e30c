package decoder_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/spectrokit/internal/decoder"
	"github.com/specialistvlad/spectrokit/internal/item"
	"github.com/specialistvlad/spectrokit/internal/model"
	"github.com/specialistvlad/spectrokit/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type Circle struct {
	item.Base
	Radius float64
}

type Square struct {
	item.Base
	Side float64
}

type Link struct {
	item.Base
	From string
	To   string
}

func shapeFactory(tag, field string, build func(item.Base, float64) item.Item) *item.Factory {
	return &item.Factory{
		Descriptor: &item.Descriptor{
			Category: "shape",
			Tag:      tag,
			Typed:    true,
			Fields:   []item.Field{item.Label(), {Name: field, Type: cty.Number}},
		},
		New: func(f item.Fields) (item.Item, error) {
			var size float64
			if err := f.Decode(field, &size); err != nil {
				return nil, err
			}
			return build(item.NewBase(f), size), nil
		},
	}
}

var linkFactory = &item.Factory{
	Descriptor: &item.Descriptor{
		Category: "link",
		Fields: []item.Field{
			{Name: "from", Type: cty.String, Ref: item.ItemRef, Target: "shapes"},
			{Name: "to", Type: cty.String, Ref: item.ItemRef, Target: "shapes"},
		},
	},
	New: func(f item.Fields) (item.Item, error) {
		l := &Link{Base: item.NewBase(f)}
		if err := f.Decode("from", &l.From); err != nil {
			return nil, err
		}
		if err := f.Decode("to", &l.To); err != nil {
			return nil, err
		}
		return l, nil
	},
}

type drawingModule struct{}

func (drawingModule) Register(r *registry.Registry) error {
	if err := r.Register("shape", "circle", shapeFactory("circle", "radius", func(b item.Base, v float64) item.Item {
		return &Circle{Base: b, Radius: v}
	})); err != nil {
		return err
	}
	if err := r.Register("shape", "square", shapeFactory("square", "side", func(b item.Base, v float64) item.Item {
		return &Square{Base: b, Side: v}
	})); err != nil {
		return err
	}
	return r.RegisterUntyped("link", linkFactory)
}

var drawingSpec = model.MustSpec("drawing",
	model.Attribute{Name: "shapes", Kind: model.Keyed, Category: "shape"},
	model.Attribute{Name: "items", Kind: model.Ordered, Category: "shape"},
	model.Attribute{Name: "links", Kind: model.Ordered, Category: "link"},
)

func newDecoder(t *testing.T, opts ...decoder.Option) *decoder.Decoder {
	t.Helper()
	r := registry.New()
	require.NoError(t, r.Load(drawingModule{}))
	return decoder.New(r, drawingSpec, opts...)
}

func TestDecode_KeyedTypedMapping(t *testing.T) {
	t.Parallel()

	d := newDecoder(t)
	m, err := d.Decode(context.Background(), map[string]any{
		"shapes": map[string]any{"a": map[string]any{"type": "circle", "radius": 2}},
	})
	require.NoError(t, err)

	got, ok := m.Get("shapes", "a")
	require.True(t, ok)
	circle, ok := got.(*Circle)
	require.True(t, ok, "expected *Circle, got %T", got)
	assert.Equal(t, 2.0, circle.Radius)
	assert.Equal(t, "a", circle.Label())
}

func TestDecode_KeyedPositionalGetsLabelPrepended(t *testing.T) {
	t.Parallel()

	d := newDecoder(t)
	m, err := d.Decode(context.Background(), map[string]any{
		"shapes": map[string]any{"b": []any{"square", 4}},
	})
	require.NoError(t, err)

	got, ok := m.Get("shapes", "b")
	require.True(t, ok)
	square, ok := got.(*Square)
	require.True(t, ok, "expected *Square, got %T", got)
	assert.Equal(t, 4.0, square.Side)
	assert.Equal(t, "b", square.Label())
}

func TestDecode_OrderedHasNoLabelInjection(t *testing.T) {
	t.Parallel()

	d := newDecoder(t)
	m, err := d.Decode(context.Background(), map[string]any{
		"items": []any{[]any{"x", "circle", 2}, []any{"y", "square", 3}},
	})
	require.NoError(t, err)

	items := m.Items("items")
	require.Len(t, items, 2)
	require.IsType(t, &Circle{}, items[0])
	require.IsType(t, &Square{}, items[1])
	assert.Equal(t, "x", items[0].Label())
	assert.Equal(t, 2.0, items[0].(*Circle).Radius)
	assert.Equal(t, "y", items[1].Label())
	assert.Equal(t, 3.0, items[1].(*Square).Side)
}

func TestDecode_UntypedOrderedMapping(t *testing.T) {
	t.Parallel()

	d := newDecoder(t)
	m, err := d.Decode(context.Background(), map[string]any{
		"links": []any{map[string]any{"from": "a", "to": "b"}, []any{"b", "c"}},
	})
	require.NoError(t, err)
	links := m.Items("links")
	require.Len(t, links, 2)
	assert.Equal(t, "c", links[1].(*Link).To)
	assert.Equal(t, "", links[0].Label())
}

func TestDecode_MissingTypeLeavesModelUntouched(t *testing.T) {
	t.Parallel()

	d := newDecoder(t)
	m := model.New(drawingSpec)
	err := d.DecodeInto(context.Background(), m, map[string]any{
		"shapes": map[string]any{
			"a": map[string]any{"type": "circle", "radius": 1},
			"b": map[string]any{"radius": 2},
		},
	})

	var missing *decoder.MissingTypeError
	require.True(t, errors.As(err, &missing), "expected MissingTypeError, got %v", err)
	assert.Equal(t, "shapes", missing.Attribute)
	assert.Equal(t, "b", missing.Label)
	assert.Equal(t, 0, m.Len("shapes"), "no item may be inserted when decoding fails")
}

func TestDecode_ShortPositionalFormIsMissingType(t *testing.T) {
	t.Parallel()

	d := newDecoder(t)
	_, err := d.Decode(context.Background(), map[string]any{
		"items": []any{[]any{"x"}},
	})
	var missing *decoder.MissingTypeError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, 0, missing.Index)
}

func TestDecode_UnknownType(t *testing.T) {
	t.Parallel()

	d := newDecoder(t)
	_, err := d.Decode(context.Background(), map[string]any{
		"shapes": map[string]any{"a": map[string]any{"type": "hexagon", "radius": 1}},
	})
	var unknown *registry.UnknownTypeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, []string{"circle", "square"}, unknown.Known)
	assert.Contains(t, err.Error(), "attribute 'shapes', item 'a'")
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		tree map[string]any
	}{
		{name: "keyed attribute is a sequence", tree: map[string]any{"shapes": []any{"a"}}},
		{name: "ordered attribute is a mapping", tree: map[string]any{"items": map[string]any{"a": 1}}},
		{name: "item is a scalar", tree: map[string]any{"shapes": map[string]any{"a": 5}}},
		{name: "unknown field", tree: map[string]any{"shapes": map[string]any{"a": map[string]any{"type": "circle", "radius": 1, "depth": 2}}}},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d := newDecoder(t)
			_, err := d.Decode(context.Background(), tc.tree)
			var malformed *item.MalformedItemError
			require.True(t, errors.As(err, &malformed), "expected MalformedItemError, got %v", err)
		})
	}
}

func TestDecode_Residue(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"shapes":  map[string]any{"a": []any{"circle", 1}},
		"zeta":    1,
		"comment": "x",
	}

	t.Run("strict", func(t *testing.T) {
		t.Parallel()
		_, err := newDecoder(t).Decode(context.Background(), tree)
		var unknown *decoder.UnknownAttributeError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, []string{"comment", "zeta"}, unknown.Names)
		assert.Equal(t, "drawing", unknown.ModelType)
	})

	t.Run("lenient", func(t *testing.T) {
		t.Parallel()
		m, err := newDecoder(t, decoder.WithIgnoreUnknown()).Decode(context.Background(), tree)
		require.NoError(t, err)
		assert.Equal(t, 1, m.Len("shapes"))
	})
}

func TestDecode_DefaultType(t *testing.T) {
	t.Parallel()

	t.Run("from tree", func(t *testing.T) {
		t.Parallel()
		m, err := newDecoder(t).Decode(context.Background(), map[string]any{
			"default-shape": "square",
			"shapes":        map[string]any{"a": map[string]any{"side": 2}},
		})
		require.NoError(t, err)
		got, _ := m.Get("shapes", "a")
		require.IsType(t, &Square{}, got)
	})

	t.Run("from option", func(t *testing.T) {
		t.Parallel()
		d := newDecoder(t, decoder.WithDefaultType("shape", "circle"))
		m, err := d.Decode(context.Background(), map[string]any{
			"shapes": map[string]any{"a": map[string]any{"radius": 2}},
		})
		require.NoError(t, err)
		got, _ := m.Get("shapes", "a")
		require.IsType(t, &Circle{}, got)
	})

	t.Run("explicit type wins", func(t *testing.T) {
		t.Parallel()
		m, err := newDecoder(t).Decode(context.Background(), map[string]any{
			"default_shape": "square",
			"shapes":        map[string]any{"a": map[string]any{"type": "circle", "radius": 2}},
		})
		require.NoError(t, err)
		got, _ := m.Get("shapes", "a")
		require.IsType(t, &Circle{}, got)
	})

	t.Run("non-string default", func(t *testing.T) {
		t.Parallel()
		_, err := newDecoder(t).Decode(context.Background(), map[string]any{"default-shape": 3})
		require.ErrorContains(t, err, "must be a type name")
	})
}

func TestDecodeInto_AppendsAndOverwrites(t *testing.T) {
	t.Parallel()

	d := newDecoder(t)
	m := model.New(drawingSpec)
	ctx := context.Background()
	require.NoError(t, d.DecodeInto(ctx, m, map[string]any{
		"shapes": map[string]any{"a": []any{"circle", 1}},
		"items":  []any{[]any{"x", "circle", 1}},
	}))
	require.NoError(t, d.DecodeInto(ctx, m, map[string]any{
		"shapes": map[string]any{"a": []any{"square", 5}},
		"items":  []any{[]any{"y", "circle", 1}},
	}))

	got, _ := m.Get("shapes", "a")
	require.IsType(t, &Square{}, got)
	assert.Equal(t, []string{"x", "y"}, m.Labels("items"))
}

func TestDecodeInto_RejectsForeignModel(t *testing.T) {
	t.Parallel()

	other := model.MustSpec("other", model.Attribute{Name: "shapes", Kind: model.Keyed, Category: "shape"})
	err := newDecoder(t).DecodeInto(context.Background(), model.New(other), map[string]any{})
	require.ErrorContains(t, err, "cannot populate")
}

func TestDecode_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	cfg := map[string]any{"type": "circle", "radius": 2}
	seq := []any{"square", 3}
	tree := map[string]any{"shapes": map[string]any{"a": cfg, "b": seq}}

	_, err := newDecoder(t).Decode(context.Background(), tree)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"type": "circle", "radius": 2}, cfg)
	assert.Equal(t, []any{"square", 3}, seq)
}

func TestEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"shapes": map[string]any{
			"a": map[string]any{"type": "circle", "radius": 2},
			"b": map[string]any{"type": "square", "side": 1.5},
		},
		"items": []any{map[string]any{"label": "x", "type": "circle", "radius": 7}},
		"links": []any{map[string]any{"from": "a", "to": "b"}},
	}

	d := newDecoder(t)
	m, err := d.Decode(context.Background(), tree)
	require.NoError(t, err)

	encoded, err := decoder.Encode(m)
	require.NoError(t, err)
	if diff := cmp.Diff(tree, encoded); diff != "" {
		t.Fatalf("Encode() mismatch (-want +got):\n%s", diff)
	}

	again, err := d.Decode(context.Background(), encoded)
	require.NoError(t, err)
	assert.Equal(t, m.String(), again.String())
}
