package jsxtree_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rohmanhakim/jsxtree/internal/sanitizer"
	"github.com/rohmanhakim/jsxtree/pkg/jsxtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	nodes, err := jsxtree.Compile(`<Card title="t"><p class="x">Hi</p></Card>`, jsxtree.Options{
		Components: map[string]any{"Card": "card"},
		Bindings:   jsxtree.Bindings{"lang": "en"},
	})
	require.NoError(t, err)

	expected := []jsxtree.Node{
		&jsxtree.Component{
			Name:       "Card",
			Definition: "card",
			Props:      jsxtree.Props{"title": "t", "lang": "en"},
			Children: []jsxtree.Node{
				&jsxtree.Element{
					Tag:      "p",
					Props:    jsxtree.Props{"className": "x", "lang": "en"},
					Children: []jsxtree.Node{&jsxtree.Text{Text: "Hi"}},
				},
			},
		},
	}
	if diff := cmp.Diff(expected, nodes); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_MalformedMarkupPropagates(t *testing.T) {
	nodes, err := jsxtree.Compile(`<div></span>`, jsxtree.Options{})
	require.Error(t, err)
	assert.Nil(t, nodes)
	assert.True(t, errors.Is(err, jsxtree.ErrMalformedMarkup))
}

func TestCompile_InvalidBlacklistPattern(t *testing.T) {
	_, err := jsxtree.Compile(`<div></div>`, jsxtree.Options{BlacklistedAttrs: []string{"bad["}})
	require.Error(t, err)

	var sanErr *sanitizer.SanitizationError
	assert.True(t, errors.As(err, &sanErr))
}

func TestCompile_Lenient(t *testing.T) {
	nodes, err := jsxtree.Compile(`<div></span><p>ok`, jsxtree.Options{Lenient: true})
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	div, ok := nodes[0].(*jsxtree.Element)
	require.True(t, ok)
	assert.Equal(t, "div", div.Tag)
}

func TestCompile_Idempotent(t *testing.T) {
	opts := jsxtree.Options{
		Components:       map[string]any{"X": "x"},
		BlacklistedTags:  []string{"Foo"},
		BlacklistedAttrs: []string{"prefixed[a-z]*"},
	}
	input := `<X a={[1, 2]} prefixedA="b"><Foo>gone</Foo><img src="a"></X>`

	first, err := jsxtree.Compile(input, opts)
	require.NoError(t, err)
	second, err := jsxtree.Compile(input, opts)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(first, second))

	a, err := jsxtree.MarshalJSON(first)
	require.NoError(t, err)
	b, err := jsxtree.MarshalJSON(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestMarshalJSON(t *testing.T) {
	nodes, err := jsxtree.Compile(`<div class="a" hidden>x<Unknown /></div>`, jsxtree.Options{})
	require.NoError(t, err)

	out, err := jsxtree.MarshalJSON(nodes)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{
			"type": "element",
			"tag": "div",
			"props": {"className": "a", "hidden": true},
			"children": [
				{"type": "text", "text": "x"},
				{"type": "element", "tag": "Unknown", "props": {}, "children": [], "unrecognized": true}
			]
		}
	]`, string(out))
}
