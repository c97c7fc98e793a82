package ast

import (
	"sun-lang/internal/span"
)

// NodeToMap converts an AST node to a map suitable for JSON serialization.
// This produces a tagged-union structure: every node has a "kind" field.
func NodeToMap(node Node) map[string]interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		body := make([]interface{}, len(n.Body))
		for i, stmt := range n.Body {
			body[i] = NodeToMap(stmt)
		}
		return m(n, "body", body)

	case *VarDeclaration:
		result := m(n, "identifier", n.Identifier, "constant", n.Constant)
		if n.Value != nil {
			result["value"] = NodeToMap(n.Value)
		}
		return result

	case *AssignmentExpr:
		return m(n,
			"target", NodeToMap(n.Target),
			"value", NodeToMap(n.Value))
	case *BinaryExpr:
		return m(n,
			"operator", n.Operator,
			"left", NodeToMap(n.Left),
			"right", NodeToMap(n.Right))
	case *Identifier:
		return m(n, "symbol", n.Symbol)
	case *NumericLiteral:
		return m(n, "value", n.Value)
	case *ObjectLiteral:
		props := make([]interface{}, len(n.Properties))
		for i, p := range n.Properties {
			props[i] = NodeToMap(p)
		}
		return m(n, "properties", props)
	case *Property:
		result := m(n, "key", n.Key)
		if n.Value != nil {
			result["value"] = NodeToMap(n.Value)
		}
		return result

	default:
		return map[string]interface{}{"kind": "Unknown"}
	}
}

// ---- helpers ----

// m builds a map with kind, span, and extra key-value pairs.
func m(node Node, kvs ...interface{}) map[string]interface{} {
	result := map[string]interface{}{
		"kind": node.Kind().String(),
		"span": spanToMap(node.GetSpan()),
	}
	for i := 0; i+1 < len(kvs); i += 2 {
		key := kvs[i].(string)
		result[key] = kvs[i+1]
	}
	return result
}

func spanToMap(s span.Span) map[string]interface{} {
	return map[string]interface{}{
		"start": map[string]interface{}{
			"offset": s.Start.Offset,
			"line":   s.Start.Line,
			"column": s.Start.Column,
		},
		"end": map[string]interface{}{
			"offset": s.End.Offset,
			"line":   s.End.Line,
			"column": s.End.Column,
		},
	}
}
