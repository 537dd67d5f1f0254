package attrs

import (
	"bytes"
	"encoding/json"

	"github.com/rohmanhakim/jsxtree/internal/metadata"
)

/*
Props is the final property mapping of one output node.

Values are one of:
  - string
  - bool
  - int or float64
  - map[string]any or []any (evaluated structured values)
  - Style
  - nil (an expression that evaluated to nil)
*/
type Props map[string]any

// StyleDecl is one parsed CSS declaration with a camel-cased property name.
type StyleDecl struct {
	Property string
	Value    string
}

// Style is an ordered style map in declaration order.
type Style []StyleDecl

func (s Style) Get(property string) (string, bool) {
	for _, d := range s {
		if d.Property == property {
			return d.Value, true
		}
	}
	return "", false
}

// MarshalJSON writes s as a JSON object, keeping declaration order.
func (s Style) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(d.Property)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(d.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Evaluator evaluates the source of a bracketed attribute value.
type Evaluator interface {
	Evaluate(source string) (any, error)
}

// AttrBlacklist answers attribute-name blacklist membership.
type AttrBlacklist interface {
	IsAttrBlacklisted(name string) bool
}

// Context carries everything Resolve needs for one element.
type Context struct {
	// Tag is the element or component name, used for diagnostics only.
	Tag string
	// Native selects HTML-to-DOM name normalization. Components keep names
	// as written apart from class and for.
	Native bool
	// Bindings are default props with the lowest precedence.
	Bindings     map[string]any
	Blacklist    AttrBlacklist
	Evaluator    Evaluator
	MetadataSink metadata.MetadataSink
}
