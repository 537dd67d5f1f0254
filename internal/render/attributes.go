package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rohmanhakim/jsxtree/internal/attrs"
	"github.com/rohmanhakim/jsxtree/internal/tree"
	g "maragu.dev/gomponents"
)

// attributes converts props into HTML attributes in sorted name order.
// false and nil are omitted; true renders a bare attribute.
func attributes(props tree.Props) []g.Node {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	nodes := make([]g.Node, 0, len(keys))
	for _, key := range keys {
		name := attrs.HTMLName(key)
		switch v := props[key].(type) {
		case nil:
		case bool:
			if v {
				nodes = append(nodes, g.Attr(name))
			}
		default:
			nodes = append(nodes, g.Attr(name, attributeValue(key, v)))
		}
	}
	return nodes
}

func attributeValue(key string, v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case attrs.Style:
		return styleString(x)
	case map[string]any:
		if key == "style" {
			return styleMapString(x)
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func styleString(style attrs.Style) string {
	parts := make([]string, 0, len(style))
	for _, d := range style {
		parts = append(parts, attrs.KebabCaseProperty(d.Property)+":"+d.Value)
	}
	return strings.Join(parts, ";")
}

func styleMapString(style map[string]any) string {
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, attrs.KebabCaseProperty(k)+":"+fmt.Sprint(style[k]))
	}
	return strings.Join(parts, ";")
}
