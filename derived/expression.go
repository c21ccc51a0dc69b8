package derived

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// Expression is a compiled derived-waveform definition.
type Expression struct {
	name   string
	source string
	refs   []string
	root   ast.Node
}

// Compile parses source as the definition of the derived waveform name.
// known reports whether a reference names an existing waveform.
func Compile(name, source string, known func(string) bool) (*Expression, error) {
	if strings.TrimSpace(source) == "" {
		return nil, derivedErrorf(name, ErrEmptyExpression, "%q", source)
	}
	if known == nil {
		known = func(string) bool { return false }
	}
	rewritten, refs, err := rewrite(name, source, known)
	if err != nil {
		return nil, err
	}
	tree, err := parser.Parse(rewritten)
	if err != nil {
		return nil, derivedErrorf(name, ErrUnsupportedSyntax, "%v", err)
	}
	if err := check(tree.Node, len(refs)); err != nil {
		return nil, derivedErrorf(name, ErrUnsupportedSyntax, "%v", err)
	}

	return &Expression{name: name, source: source, refs: refs, root: tree.Node}, nil
}

// Name returns the derived waveform name.
func (e *Expression) Name() string { return e.name }

// Source returns the expression as written.
func (e *Expression) Source() string { return e.source }

// References lists the referenced waveforms in order of first use.
func (e *Expression) References() []string {
	out := make([]string, len(e.refs))
	copy(out, e.refs)

	return out
}

// check rejects every node outside the arithmetic grammar.
func check(node ast.Node, nrefs int) error {
	switch n := node.(type) {
	case *ast.IntegerNode, *ast.FloatNode:
		return nil
	case *ast.IdentifierNode:
		if _, ok := placeholderIndex(n.Value, nrefs); !ok {
			return fmt.Errorf("identifier %q", n.Value)
		}
		return nil
	case *ast.UnaryNode:
		if n.Operator != "-" && n.Operator != "+" {
			return fmt.Errorf("unary operator %q", n.Operator)
		}
		return check(n.Node, nrefs)
	case *ast.BinaryNode:
		switch n.Operator {
		case "+", "-", "*", "/":
		default:
			return fmt.Errorf("operator %q", n.Operator)
		}
		if err := check(n.Left, nrefs); err != nil {
			return err
		}
		return check(n.Right, nrefs)
	case nil:
		return fmt.Errorf("empty expression")
	}

	return fmt.Errorf("%T", node)
}

func placeholderIndex(ident string, nrefs int) (int, bool) {
	if !strings.HasPrefix(ident, placeholderPrefix) {
		return 0, false
	}
	k, err := strconv.Atoi(ident[len(placeholderPrefix):])
	if err != nil || k < 0 || k >= nrefs {
		return 0, false
	}

	return k, true
}

// Eval computes the expression over n samples. lookup is called once per
// reference and must return exactly n values.
func (e *Expression) Eval(n int, lookup func(ref string) ([]float64, error)) ([]float64, error) {
	vals := make([][]float64, len(e.refs))
	for i, ref := range e.refs {
		v, err := lookup(ref)
		if err != nil {
			return nil, fmt.Errorf("derived %q: %s: %w", e.name, ref, err)
		}
		if len(v) != n {
			return nil, derivedErrorf(e.name, ErrLengthMismatch, "%s has %d samples, want %d", ref, len(v), n)
		}
		vals[i] = v
	}

	return evalNode(e.root, n, vals), nil
}

// evalNode assumes node passed check.
func evalNode(node ast.Node, n int, vals [][]float64) []float64 {
	switch nd := node.(type) {
	case *ast.IntegerNode:
		return constant(n, float64(nd.Value))
	case *ast.FloatNode:
		return constant(n, nd.Value)
	case *ast.IdentifierNode:
		k, _ := placeholderIndex(nd.Value, len(vals))
		out := make([]float64, n)
		copy(out, vals[k])
		return out
	case *ast.UnaryNode:
		out := evalNode(nd.Node, n, vals)
		if nd.Operator == "-" {
			for i := range out {
				out[i] = -out[i]
			}
		}
		return out
	case *ast.BinaryNode:
		l := evalNode(nd.Left, n, vals)
		r := evalNode(nd.Right, n, vals)
		for i := range l {
			switch nd.Operator {
			case "+":
				l[i] += r[i]
			case "-":
				l[i] -= r[i]
			case "*":
				l[i] *= r[i]
			case "/":
				l[i] /= r[i]
			}
		}
		return l
	}

	return make([]float64, n)
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}

	return out
}
