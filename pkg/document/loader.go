package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sdejongh/tablediff/pkg/diff"
	"github.com/sdejongh/tablediff/pkg/models"
)

const (
	mergeTag     = "!!merge"
	timestampTag = "!!timestamp"
)

// Load reads every YAML document from r and merges their top-level keys
// into one mapping, later documents overwriting earlier ones. Empty
// documents are skipped. source names the input in errors.
func Load(r io.Reader, source string) (diff.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return diff.Value{}, &models.IOError{Op: "read", Path: source, Err: err}
	}

	merged := diff.MappingValue()
	decoder := yaml.NewDecoder(bytes.NewReader(data))

	for index := 0; ; index++ {
		var node yaml.Node
		if err := decoder.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return diff.Value{}, &models.ParseError{Path: source, Err: err}
		}

		doc, err := convert(&node)
		if err != nil {
			return diff.Value{}, &models.ParseError{Path: source, Err: fmt.Errorf("document %d: %w", index, err)}
		}

		switch doc.Kind() {
		case diff.Null:
			continue
		case diff.Mapping:
			for _, entry := range doc.Entries() {
				merged.Set(entry.Key, entry.Value)
			}
		default:
			return diff.Value{}, &models.ParseError{
				Path: source,
				Err:  fmt.Errorf("document %d is a %s, want a mapping", index, doc.Kind()),
			}
		}
	}

	return merged, nil
}

// convert turns a decoded YAML node into a Value
func convert(node *yaml.Node) (diff.Value, error) {
	switch node.Kind {
	case 0:
		return diff.NullValue(), nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return diff.NullValue(), nil
		}
		return convert(node.Content[0])
	case yaml.AliasNode:
		if node.Alias == nil {
			return diff.Value{}, fmt.Errorf("line %d: unresolved alias %q", node.Line, node.Value)
		}
		return convert(node.Alias)
	case yaml.ScalarNode:
		return convertScalar(node)
	case yaml.SequenceNode:
		items := make([]diff.Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := convert(child)
			if err != nil {
				return diff.Value{}, err
			}
			items = append(items, item)
		}
		return diff.SequenceValue(items...), nil
	case yaml.MappingNode:
		return convertMapping(node)
	default:
		return diff.Value{}, fmt.Errorf("line %d: unsupported node kind %d", node.Line, node.Kind)
	}
}

// convertMapping applies merge keys after explicit keys, so explicit keys
// always win regardless of where the merge key appears
func convertMapping(node *yaml.Node) (diff.Value, error) {
	result := diff.MappingValue()
	var merges []*yaml.Node

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind == yaml.ScalarNode && keyNode.ShortTag() == mergeTag {
			merges = append(merges, valNode)
			continue
		}

		key, err := convert(keyNode)
		if err != nil {
			return diff.Value{}, err
		}
		if key.IsContainer() {
			return diff.Value{}, fmt.Errorf("line %d: mapping key must be a scalar, got %s", keyNode.Line, key.Kind())
		}

		val, err := convert(valNode)
		if err != nil {
			return diff.Value{}, err
		}
		result.Set(key, val)
	}

	for _, m := range merges {
		sources, err := mergeSources(m)
		if err != nil {
			return diff.Value{}, err
		}
		for _, src := range sources {
			for _, entry := range src.Entries() {
				if _, exists := result.Get(entry.Key); !exists {
					result.Set(entry.Key, entry.Value)
				}
			}
		}
	}

	return result, nil
}

// mergeSources resolves the value of a merge key: one mapping or a
// sequence of mappings, earlier ones taking precedence
func mergeSources(node *yaml.Node) ([]diff.Value, error) {
	resolved := node
	if resolved.Kind == yaml.AliasNode && resolved.Alias != nil {
		resolved = resolved.Alias
	}

	var nodes []*yaml.Node
	if resolved.Kind == yaml.SequenceNode {
		nodes = resolved.Content
	} else {
		nodes = []*yaml.Node{resolved}
	}

	sources := make([]diff.Value, 0, len(nodes))
	for _, n := range nodes {
		val, err := convert(n)
		if err != nil {
			return nil, err
		}
		if val.Kind() != diff.Mapping {
			return nil, fmt.Errorf("line %d: merge value must be a mapping, got %s", n.Line, val.Kind())
		}
		sources = append(sources, val)
	}
	return sources, nil
}

// convertScalar resolves a scalar with the YAML core schema
func convertScalar(node *yaml.Node) (diff.Value, error) {
	// Decoding into any leaves timestamps as strings
	if node.ShortTag() == timestampTag {
		var t time.Time
		if err := node.Decode(&t); err != nil {
			return diff.Value{}, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return diff.TimeValue(t), nil
	}

	var raw any
	if err := node.Decode(&raw); err != nil {
		return diff.Value{}, fmt.Errorf("line %d: %w", node.Line, err)
	}

	switch s := raw.(type) {
	case nil:
		return diff.NullValue(), nil
	case bool:
		return diff.BoolValue(s), nil
	case int:
		return diff.IntValue(int64(s)), nil
	case int64:
		return diff.IntValue(s), nil
	case uint64:
		if s > math.MaxInt64 {
			return diff.FloatValue(float64(s)), nil
		}
		return diff.IntValue(int64(s)), nil
	case float64:
		return diff.FloatValue(s), nil
	case string:
		return diff.StringValue(s), nil
	case time.Time:
		return diff.TimeValue(s), nil
	default:
		return diff.FromInterface(raw)
	}
}
