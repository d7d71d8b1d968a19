package sexp

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromYAML converts a YAML node into a tree.
// Scalars become atoms and sequences become proper lists, so the YAML
// document [AND, T, [NOT, F]] is the tree (AND T (NOT F)). Mappings and
// null scalars have no tree equivalent and are rejected with their position.
func FromYAML(node *yaml.Node) (Value, error) {
	return fromYAML(node, "")
}

// FromYAMLSource is FromYAML with a source label used in error positions.
func FromYAMLSource(node *yaml.Node, source string) (Value, error) {
	return fromYAML(node, source)
}

func fromYAML(node *yaml.Node, source string) (Value, error) {
	if node == nil {
		return nil, &ReadError{Message: "missing YAML node"}
	}
	pos := Position{Source: source, Line: node.Line, Column: node.Column}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) != 1 {
			return nil, &ReadError{Position: pos, Message: "YAML document must contain exactly one tree"}
		}
		return fromYAML(node.Content[0], source)

	case yaml.AliasNode:
		return fromYAML(node.Alias, source)

	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, &ReadError{Position: pos, Message: "null is not a valid atom"}
		}
		return Atom{Name: node.Value}, nil

	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := fromYAML(child, source)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return List(items...), nil

	case yaml.MappingNode:
		return nil, &ReadError{Position: pos, Message: "YAML mappings cannot be converted to a tree"}

	default:
		return nil, &ReadError{Position: pos, Message: fmt.Sprintf("unsupported YAML node kind %d", node.Kind)}
	}
}

// ReadYAML decodes a YAML document into a tree.
func ReadYAML(data []byte, source string) (Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &ReadError{Position: Position{Source: source, Line: 1, Column: 1}, Message: fmt.Sprintf("YAML parsing failed: %v", err)}
	}
	if node.Kind == 0 {
		return nil, &ReadError{Position: Position{Source: source, Line: 1, Column: 1}, Message: "empty YAML document"}
	}
	return fromYAML(&node, source)
}
