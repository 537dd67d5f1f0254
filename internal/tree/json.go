package tree

import (
	"encoding/json"

	"github.com/rohmanhakim/jsxtree/pkg/hashutil"
)

type textJSON struct {
	Type NodeKind `json:"type"`
	Text string   `json:"text"`
}

type elementJSON struct {
	Type         NodeKind `json:"type"`
	Tag          string   `json:"tag"`
	Props        Props    `json:"props"`
	Children     []Node   `json:"children"`
	Unrecognized bool     `json:"unrecognized,omitempty"`
}

type componentJSON struct {
	Type     NodeKind `json:"type"`
	Name     string   `json:"name"`
	Props    Props    `json:"props"`
	Children []Node   `json:"children"`
}

func (t *Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(textJSON{Type: KindText, Text: t.Text})
}

func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(elementJSON{
		Type:         KindElement,
		Tag:          e.Tag,
		Props:        nonNilProps(e.Props),
		Children:     nonNilChildren(e.Children),
		Unrecognized: e.Unrecognized,
	})
}

// MarshalJSON omits the definition, which belongs to the host.
func (c *Component) MarshalJSON() ([]byte, error) {
	return json.Marshal(componentJSON{
		Type:     KindComponent,
		Name:     c.Name,
		Props:    nonNilProps(c.Props),
		Children: nonNilChildren(c.Children),
	})
}

func nonNilProps(p Props) Props {
	if p == nil {
		return Props{}
	}
	return p
}

func nonNilChildren(c []Node) []Node {
	if c == nil {
		return []Node{}
	}
	return c
}

// Marshal encodes nodes as an indented JSON array.
func Marshal(nodes []Node) ([]byte, error) {
	return json.MarshalIndent(nonNilChildren(nodes), "", "  ")
}

// Fingerprint hashes the canonical JSON encoding of nodes. Structurally
// identical trees have identical fingerprints.
func Fingerprint(nodes []Node, algo hashutil.HashAlgo) (string, error) {
	data, err := json.Marshal(nonNilChildren(nodes))
	if err != nil {
		return "", err
	}
	return hashutil.HashBytes(data, algo)
}
