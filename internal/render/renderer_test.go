package render_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/jsxtree/internal/render"
	"github.com/rohmanhakim/jsxtree/internal/tree"
	"github.com/rohmanhakim/jsxtree/pkg/jsxtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
)

func compile(t *testing.T, input string, components map[string]any) []tree.Node {
	t.Helper()
	nodes, err := jsxtree.Compile(input, jsxtree.Options{Components: components})
	require.NoError(t, err)
	return nodes
}

func renderDoc(t *testing.T, r *render.Renderer, nodes []tree.Node) (*goquery.Document, string) {
	t.Helper()
	out, err := r.RenderString(nodes)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	return doc, out
}

func TestRender_NativeElements(t *testing.T) {
	r := render.NewRenderer(render.Options{})
	nodes := compile(t, `<h1>Header</h1><div class="foo">Foo</div><span class="bar">Bar</span>`, nil)

	_, out := renderDoc(t, r, nodes)
	assert.Equal(t, `<h1>Header</h1><div class="foo">Foo</div><span class="bar">Bar</span>`, out)
}

func TestRender_Wrapper(t *testing.T) {
	r := render.NewRenderer(render.Options{Wrap: true})
	nodes := compile(t, `<p>a</p><p>b</p>`, nil)

	doc, _ := renderDoc(t, r, nodes)
	wrapper := doc.Find("div.jsx-parser")
	require.Equal(t, 1, wrapper.Length())
	assert.Equal(t, 2, wrapper.Children().Length())
}

func TestRender_CustomWrapperClass(t *testing.T) {
	r := render.NewRenderer(render.Options{Wrap: true, WrapperClass: "content"})

	doc, _ := renderDoc(t, r, compile(t, `<p>a</p>`, nil))
	assert.Equal(t, 1, doc.Find("div.content > p").Length())
}

func TestRender_PropsToAttributes(t *testing.T) {
	r := render.NewRenderer(render.Options{})
	nodes := compile(t, `<label for="x" hidden data-n={3} aria-hidden={false} style="background-color: red; -webkit-box-flex: 1">L</label>`, nil)

	doc, _ := renderDoc(t, r, nodes)
	label := doc.Find("label")
	require.Equal(t, 1, label.Length())

	forValue, _ := label.Attr("for")
	assert.Equal(t, "x", forValue)
	_, hidden := label.Attr("hidden")
	assert.True(t, hidden)
	n, _ := label.Attr("data-n")
	assert.Equal(t, "3", n)
	_, ariaHidden := label.Attr("aria-hidden")
	assert.False(t, ariaHidden)
	style, _ := label.Attr("style")
	assert.Equal(t, "background-color:red;-webkit-box-flex:1", style)
}

func TestRender_StructuredPropIsJSON(t *testing.T) {
	r := render.NewRenderer(render.Options{})
	nodes := compile(t, `<div data-obj={{ foo: "bar" }}></div>`, nil)

	doc, _ := renderDoc(t, r, nodes)
	obj, _ := doc.Find("div").Attr("data-obj")
	assert.Equal(t, `{"foo":"bar"}`, obj)
}

func TestRender_VoidElement(t *testing.T) {
	r := render.NewRenderer(render.Options{})
	nodes := compile(t, `<img src="/foo.png"><div class="invalidChild"></div></img>`, nil)

	doc, _ := renderDoc(t, r, nodes)
	assert.Equal(t, 1, doc.Find("img").Length())
	assert.Equal(t, 0, doc.Find(".invalidChild").Length())
}

func TestRender_ComponentFunc(t *testing.T) {
	r := render.NewRenderer(render.Options{})
	card := render.ComponentFunc(func(props tree.Props, children []g.Node) (g.Node, error) {
		title, _ := props["title"].(string)
		return g.El("section", g.Attr("class", "card"), g.El("h2", g.Text(title)), g.Group(children)), nil
	})

	nodes := compile(t, `<Card title="Hello"><p>Body</p></Card>`, map[string]any{"Card": card})

	doc, _ := renderDoc(t, r, nodes)
	assert.Equal(t, "Hello", doc.Find("section.card > h2").Text())
	assert.Equal(t, "Body", doc.Find("section.card > p").Text())
}

func TestRender_DeclarativeElement(t *testing.T) {
	r := render.NewRenderer(render.Options{})
	components := map[string]any{
		"Note": render.Element{Tag: "aside", Props: tree.Props{"className": "note", "role": "note"}},
	}

	nodes := compile(t, `<Note role="alert">Careful</Note>`, components)

	doc, _ := renderDoc(t, r, nodes)
	aside := doc.Find("aside.note")
	require.Equal(t, 1, aside.Length())
	role, _ := aside.Attr("role")
	assert.Equal(t, "alert", role)
	assert.Equal(t, "Careful", aside.Text())
}

func TestRender_ComponentErrorPropagatesUnchanged(t *testing.T) {
	r := render.NewRenderer(render.Options{})
	onlyOne := render.ComponentFunc(func(props tree.Props, children []g.Node) (g.Node, error) {
		child, err := render.OnlyChild(children)
		if err != nil {
			return nil, err
		}
		return g.El("div", child), nil
	})
	components := map[string]any{"OnlyOne": onlyOne}

	_, err := r.RenderString(compile(t, `<OnlyOne><p>a</p><p>b</p></OnlyOne>`, components))
	require.Error(t, err)
	assert.Same(t, render.ErrNotSingleChild, err)

	out, err := r.RenderString(compile(t, `<OnlyOne><p>a</p></OnlyOne>`, components))
	require.NoError(t, err)
	assert.Equal(t, `<div><p>a</p></div>`, out)
}

func TestRender_UnsupportedDefinition(t *testing.T) {
	r := render.NewRenderer(render.Options{})

	_, err := r.RenderString(compile(t, `<Thing />`, map[string]any{"Thing": "not a component"}))
	require.Error(t, err)

	var renderErr *render.RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, render.ErrCauseUnsupportedDefinition, renderErr.Cause)
	assert.Equal(t, "Thing", renderErr.Tag)
}

func TestRender_UnrecognizedTagIsLogged(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	r := render.NewRenderer(render.Options{Logger: logger})

	_, out := renderDoc(t, r, compile(t, `<Unrecognized>x</Unrecognized>`, nil))

	assert.Contains(t, out, "<Unrecognized>x</Unrecognized>")
	assert.Contains(t, logs.String(), "tag=Unrecognized")
	assert.Contains(t, logs.String(), "unrecognized")
}

func TestRender_StrictHTML(t *testing.T) {
	r := render.NewRenderer(render.Options{StrictHTML: true, Wrap: true})
	nodes := compile(t, `<a href="javascript:alert(1)">x</a><iframe src="https://example.com"></iframe><p class="keep">y</p>`, nil)

	doc, out := renderDoc(t, r, nodes)
	_, hasHref := doc.Find("a").Attr("href")
	assert.False(t, hasHref)
	assert.Equal(t, 0, doc.Find("iframe").Length())
	assert.Equal(t, 1, doc.Find("div.jsx-parser p.keep").Length())
	assert.NotContains(t, out, "javascript:")
}

func TestOnlyChild(t *testing.T) {
	_, err := render.OnlyChild(nil)
	assert.ErrorIs(t, err, render.ErrNotSingleChild)

	child, err := render.OnlyChild([]g.Node{g.Text("a")})
	require.NoError(t, err)
	assert.NotNil(t, child)
}
