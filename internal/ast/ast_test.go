package ast

import (
	"encoding/json"
	"testing"
)

func TestNodeKinds(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{&Program{}, "Program"},
		{&VarDeclaration{}, "VarDeclaration"},
		{&AssignmentExpr{}, "AssignmentExpr"},
		{&BinaryExpr{}, "BinaryExpr"},
		{&Identifier{}, "Identifier"},
		{&NumericLiteral{}, "NumericLiteral"},
		{&ObjectLiteral{}, "ObjectLiteral"},
		{&Property{}, "Property"},
	}
	for _, tt := range tests {
		if got := tt.node.Kind().String(); got != tt.want {
			t.Errorf("%T: kind %q, want %q", tt.node, got, tt.want)
		}
	}
	if got := NodeKind(99).String(); got != "NodeKind(99)" {
		t.Errorf("unknown kind: got %q", got)
	}
}

func TestStmtAndExprSets(t *testing.T) {
	// Every expression is usable as a statement.
	var exprs = []Expr{
		&AssignmentExpr{}, &BinaryExpr{}, &Identifier{},
		&NumericLiteral{}, &ObjectLiteral{}, &Property{},
	}
	for _, e := range exprs {
		var s Stmt = e
		if s.Kind() != e.Kind() {
			t.Errorf("%T changed kind when viewed as Stmt", e)
		}
	}

	var stmt Stmt = &VarDeclaration{}
	if _, ok := stmt.(Expr); ok {
		t.Error("VarDeclaration must not be an Expr")
	}
	var root Node = &Program{}
	if _, ok := root.(Stmt); ok {
		t.Error("Program must not be a Stmt")
	}
}

func TestObjectLiteralSetProperty(t *testing.T) {
	obj := &ObjectLiteral{}
	obj.SetProperty(&Property{Key: "a"})
	obj.SetProperty(&Property{Key: "b", Value: &NumericLiteral{Value: 2}})
	obj.SetProperty(&Property{Key: "a", Value: &NumericLiteral{Value: 3}})

	if len(obj.Properties) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(obj.Properties))
	}
	if obj.Properties[0].Key != "a" || obj.Properties[1].Key != "b" {
		t.Errorf("unexpected order: %q, %q", obj.Properties[0].Key, obj.Properties[1].Key)
	}
	a, ok := obj.Property("a")
	if !ok || a.IsShorthand() {
		t.Fatalf("expected explicit 'a', got %+v", a)
	}
	if lit := a.Value.(*NumericLiteral); lit.Value != 3 {
		t.Errorf("expected replaced value 3, got %v", lit.Value)
	}
	if _, ok := obj.Property("c"); ok {
		t.Error("unexpected property 'c'")
	}
}

func TestNodeToMap(t *testing.T) {
	prog := &Program{Body: []Stmt{
		&VarDeclaration{Identifier: "x", Constant: true, Value: &BinaryExpr{
			Left:     &NumericLiteral{Value: 1},
			Right:    &Identifier{Symbol: "y"},
			Operator: "+",
		}},
		&VarDeclaration{Identifier: "z"},
		&ObjectLiteral{Properties: []*Property{{Key: "k"}}},
	}}

	data, err := json.Marshal(NodeToMap(prog))
	if err != nil {
		t.Fatalf("json error: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out["kind"] != "Program" {
		t.Fatalf("expected kind Program, got %v", out["kind"])
	}
	body := out["body"].([]interface{})
	if len(body) != 3 {
		t.Fatalf("expected 3 body entries, got %d", len(body))
	}
	decl := body[0].(map[string]interface{})
	if decl["identifier"] != "x" || decl["constant"] != true {
		t.Errorf("unexpected declaration: %v", decl)
	}
	value := decl["value"].(map[string]interface{})
	if value["kind"] != "BinaryExpr" || value["operator"] != "+" {
		t.Errorf("unexpected value: %v", value)
	}
	if _, ok := body[1].(map[string]interface{})["value"]; ok {
		t.Error("bare let should have no value key")
	}
	prop := body[2].(map[string]interface{})["properties"].([]interface{})[0].(map[string]interface{})
	if prop["key"] != "k" {
		t.Errorf("unexpected property: %v", prop)
	}
	if _, ok := prop["value"]; ok {
		t.Error("shorthand property should have no value key")
	}
}
