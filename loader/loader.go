package loader

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/wavechain/annotation"
	"github.com/katalvlaran/wavechain/config"
	"github.com/katalvlaran/wavechain/tendency"
	"github.com/katalvlaran/wavechain/waveform"
)

// globalsKey names the top-level metadata mapping.
const globalsKey = "globals"

// Document is a loaded, resolved waveform document.
type Document struct {
	Tree        *config.Tree
	Globals     map[string]any
	Annotations *annotation.Set
}

// LoadFile reads and parses the document at path.
func LoadFile(path string, opts ...Option) (*Document, error) {
	o := newOptions(opts...)
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	if info.Size() > o.maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes (max %d)", ErrTooLarge, path, info.Size(), o.maxBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}

	return parse(data, o)
}

// Parse builds a document from YAML bytes.
func Parse(data []byte, opts ...Option) (*Document, error) {
	return parse(data, newOptions(opts...))
}

type parser struct {
	opts  options
	doc   *Document
	wopts []waveform.Option
}

func parse(data []byte, o options) (*Document, error) {
	if int64(len(data)) > o.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(data), o.maxBytes)
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	p := &parser{
		opts: o,
		doc: &Document{
			Tree:        config.New(config.WithLogger(o.logger)),
			Globals:     map[string]any{},
			Annotations: annotation.New(),
		},
	}
	p.wopts = append(o.waveformOptions(), waveform.WithAnnotations(p.doc.Annotations))

	if len(root.Content) > 0 {
		body := root.Content[0]
		if body.Kind != yaml.MappingNode {
			return nil, nodeErrorf(body, ErrNotMapping, "document")
		}
		if err := p.group(nil, body, true); err != nil {
			return nil, err
		}
	}
	if err := p.doc.Tree.Resolve(); err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	o.logger.Debug("document loaded",
		slog.Int("waveforms", len(p.doc.Tree.Names())),
		slog.Int("annotations", p.doc.Annotations.Len()))

	return p.doc, nil
}

// group walks the key/value pairs of a mapping node.
func (p *parser) group(g *config.Group, node *yaml.Node, top bool) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		name := key.Value
		switch {
		case top && name == globalsKey:
			if err := val.Decode(&p.doc.Globals); err != nil {
				return nodeErrorf(val, ErrInvalidNode, "globals: %v", err)
			}
		case strings.Contains(name, "/"):
			if err := p.waveform(g, name, val); err != nil {
				return err
			}
		default:
			if val.Kind != yaml.MappingNode {
				return nodeErrorf(val, ErrNotMapping, "group %q", name)
			}
			child, err := p.doc.Tree.AddGroup(g, name)
			if err != nil {
				return nodeErrorf(key, err, "group %q", name)
			}
			if err := p.group(child, val, false); err != nil {
				return err
			}
		}
	}

	return nil
}

func (p *parser) waveform(g *config.Group, name string, val *yaml.Node) error {
	var specs []tendency.Spec
	switch val.Kind {
	case yaml.SequenceNode:
		var err error
		if specs, err = p.specs(val); err != nil {
			return err
		}
	case yaml.ScalarNode:
		if v, ok := number(val); ok {
			specs = []tendency.Spec{tendency.ConstantSpec(v, val.Line)}
			break
		}
		if val.ShortTag() != "!!str" {
			return nodeErrorf(val, ErrInvalidNode, "waveform %q: %s value", name, val.ShortTag())
		}
		if err := p.doc.Tree.AddDerived(g, name, val.Value, val.Line); err != nil {
			return nodeErrorf(val, err, "waveform %q", name)
		}
		return nil
	default:
		return nodeErrorf(val, ErrInvalidNode, "waveform %q", name)
	}

	w, err := waveform.New(name, specs, p.wopts...)
	if err != nil {
		return nodeError(val, err)
	}
	if err := p.doc.Tree.AddWaveform(g, w); err != nil {
		return nodeErrorf(val, err, "waveform %q", name)
	}

	return nil
}

func (p *parser) specs(seq *yaml.Node) ([]tendency.Spec, error) {
	out := make([]tendency.Spec, 0, len(seq.Content))
	for _, item := range seq.Content {
		s, err := p.spec(item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, nil
}

// spec converts one sequence item. Nested repeat waveforms are converted
// recursively so their tendencies keep their own lines.
func (p *parser) spec(n *yaml.Node) (tendency.Spec, error) {
	if n.Kind == yaml.ScalarNode {
		if v, ok := number(n); ok {
			return tendency.ConstantSpec(v, n.Line), nil
		}
	}
	if n.Kind != yaml.MappingNode {
		return tendency.Spec{}, nodeErrorf(n, ErrInvalidNode, "tendency must be a mapping or a number")
	}

	s := tendency.Spec{Line: n.Line, Fields: make(map[string]any, len(n.Content)/2)}
	hasType := false
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch {
		case key.Value == "type":
			if val.Kind != yaml.ScalarNode || val.ShortTag() != "!!str" {
				return tendency.Spec{}, nodeErrorf(val, tendency.ErrFieldType, "type must be a string")
			}
			s.Type, hasType = val.Value, true
		case key.Value == "waveform" && val.Kind == yaml.SequenceNode:
			nested, err := p.specs(val)
			if err != nil {
				return tendency.Spec{}, err
			}
			items := make([]any, len(nested))
			for j := range nested {
				items[j] = nested[j]
			}
			s.Fields[key.Value] = items
		default:
			var v any
			if err := val.Decode(&v); err != nil {
				return tendency.Spec{}, nodeErrorf(val, ErrInvalidNode, "%s: %v", key.Value, err)
			}
			s.Fields[key.Value] = v
		}
	}
	if !hasType {
		return tendency.Spec{}, nodeErrorf(n, tendency.ErrMissingType, "tendency")
	}

	return s, nil
}

// number decodes an int or float scalar.
func number(n *yaml.Node) (float64, bool) {
	if n.ShortTag() != "!!int" && n.ShortTag() != "!!float" {
		return 0, false
	}
	var v float64
	if err := n.Decode(&v); err != nil {
		return 0, false
	}

	return v, true
}
