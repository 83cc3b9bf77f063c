// Package semantic analyzes dataset-definition documents (semantic
// views and file-based semantic models) for base-table and
// search-service references, tolerating the several field-naming
// conventions the formats have used over time.
package semantic

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// NodeKind tags the variant of a Node.
type NodeKind int

const (
	ScalarNode NodeKind = iota
	ObjectNode
	ArrayNode
)

// Node is one parsed document node. Exactly one of Object, Array, or
// Scalar is meaningful, selected by Kind. Representing the document as
// a tagged variant keeps the discovery scans free of duck-typed
// attribute probing.
type Node struct {
	Kind   NodeKind
	Object map[string]Node
	Array  []Node
	Scalar any
}

// ParseDocument parses raw YAML (or JSON, which YAML subsumes) into a
// Node tree.
func ParseDocument(data []byte) (Node, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Node{}, fmt.Errorf("parsing dataset definition: %w", err)
	}
	return fromAny(v), nil
}

func fromAny(v any) Node {
	switch t := v.(type) {
	case map[string]any:
		obj := make(map[string]Node, len(t))
		for k, val := range t {
			obj[k] = fromAny(val)
		}
		return Node{Kind: ObjectNode, Object: obj}
	case []any:
		arr := make([]Node, 0, len(t))
		for _, val := range t {
			arr = append(arr, fromAny(val))
		}
		return Node{Kind: ArrayNode, Array: arr}
	default:
		return Node{Kind: ScalarNode, Scalar: v}
	}
}

// field returns the child node under key, which must exist on an
// ObjectNode.
func (n Node) field(key string) (Node, bool) {
	if n.Kind != ObjectNode {
		return Node{}, false
	}
	child, ok := n.Object[key]
	return child, ok
}
