// Package modelfile loads emission-model configuration documents.
//
// A model file is a YAML mapping from type keys to factor literals, with
// at most one level of nesting. Documents are decoded through yaml.Node
// rather than into Go maps so that entry order is preserved (fallback
// selection depends on the first configured entry) and scalar keys keep
// their literal text (PCB layer counts are written as bare integers).
package modelfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is an order-preserving view of one model file.
type Document struct {
	pairs []Pair
}

// Pair is one key/value entry of a document, in document order.
type Pair struct {
	Key   string
	Value Value
}

// Value holds either a scalar literal or a nested mapping.
type Value struct {
	scalar string
	nested *Document
}

// Scalar returns the literal text of a scalar value.
func (v Value) Scalar() (string, bool) {
	if v.nested != nil {
		return "", false
	}
	return v.scalar, true
}

// Nested returns the sub-document of a mapping value.
func (v Value) Nested() (*Document, bool) {
	if v.nested == nil {
		return nil, false
	}
	return v.nested, true
}

// Load reads and parses the model file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("model file %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes model-file bytes. An empty or null document yields an
// empty Document, not an error.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return &Document{}, nil
	}
	return fromNode(root.Content[0])
}

// Len returns the number of entries.
func (d *Document) Len() int {
	return len(d.pairs)
}

// Pairs returns the entries in document order. The slice is shared;
// callers must treat it as read-only.
func (d *Document) Pairs() []Pair {
	return d.pairs
}

// Scalar returns the literal for key, if present with a scalar value.
// The first occurrence wins.
func (d *Document) Scalar(key string) (string, bool) {
	for _, p := range d.pairs {
		if p.Key == key {
			return p.Value.Scalar()
		}
	}
	return "", false
}

// Nested returns the sub-document for key, if present with a mapping value.
func (d *Document) Nested(key string) (*Document, bool) {
	for _, p := range d.pairs {
		if p.Key == key {
			return p.Value.Nested()
		}
	}
	return nil, false
}

func fromNode(n *yaml.Node) (*Document, error) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return &Document{}, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: document must be a mapping, got %s", n.Line, kindName(n.Kind))
	}

	doc := &Document{pairs: make([]Pair, 0, len(n.Content)/2)}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping key must be a scalar", k.Line)
		}

		switch v.Kind {
		case yaml.ScalarNode:
			doc.pairs = append(doc.pairs, Pair{Key: k.Value, Value: Value{scalar: v.Value}})
		case yaml.MappingNode:
			sub, err := fromNode(v)
			if err != nil {
				return nil, err
			}
			doc.pairs = append(doc.pairs, Pair{Key: k.Value, Value: Value{nested: sub}})
		default:
			return nil, fmt.Errorf("line %d: value for %q must be a scalar or mapping, got %s",
				v.Line, k.Value, kindName(v.Kind))
		}
	}
	return doc, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
