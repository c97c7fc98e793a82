// Package ast defines the abstract syntax tree for sun-lang.
//
// The node set is closed: Node, Stmt and Expr carry unexported marker
// methods, so only the types in this file satisfy them. Consumers dispatch
// with a type switch over the concrete pointer types, and every node also
// reports its NodeKind tag for callers that only need the tag.
package ast

import (
	"fmt"
	"sun-lang/internal/span"
)

// ============================================================
// Node kinds
// ============================================================

// NodeKind tags each node variant.
type NodeKind int

const (
	ProgramNode NodeKind = iota
	VarDeclarationNode
	AssignmentExprNode
	BinaryExprNode
	IdentifierNode
	NumericLiteralNode
	ObjectLiteralNode
	PropertyNode
)

var nodeKindNames = [...]string{
	ProgramNode:        "Program",
	VarDeclarationNode: "VarDeclaration",
	AssignmentExprNode: "AssignmentExpr",
	BinaryExprNode:     "BinaryExpr",
	IdentifierNode:     "Identifier",
	NumericLiteralNode: "NumericLiteral",
	ObjectLiteralNode:  "ObjectLiteral",
	PropertyNode:       "Property",
}

func (k NodeKind) String() string {
	if k >= 0 && int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// ============================================================
// Node interfaces
// ============================================================

// Node is the interface implemented by all AST nodes.
type Node interface {
	nodeNode()
	Kind() NodeKind
	GetSpan() span.Span
}

// Stmt is anything that may appear in a program body.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is a value-producing node. Every Expr is also a Stmt.
type Expr interface {
	Stmt
	exprNode()
}

// ============================================================
// Base types (embedded to provide common fields)
// ============================================================

// NodeBase provides the common Span field for all AST nodes.
type NodeBase struct {
	Span span.Span
}

func (n NodeBase) nodeNode()          {}
func (n NodeBase) GetSpan() span.Span { return n.Span }

// StmtBase is embedded by statement-only nodes.
type StmtBase struct{ NodeBase }

func (StmtBase) stmtNode() {}

// ExprBase is embedded by all expression nodes.
type ExprBase struct{ StmtBase }

func (ExprBase) exprNode() {}

// ============================================================
// Program (AST root)
// ============================================================

// Program is the root of a parsed source file.
type Program struct {
	NodeBase
	Body []Stmt
}

func (*Program) Kind() NodeKind { return ProgramNode }

// ============================================================
// Statements
// ============================================================

// VarDeclaration is `let name = value;` or `const name = value;`.
type VarDeclaration struct {
	StmtBase
	Identifier string
	Constant   bool
	Value      Expr // nil for a bare `let name;`
}

func (*VarDeclaration) Kind() NodeKind { return VarDeclarationNode }

// ============================================================
// Expressions
// ============================================================

// AssignmentExpr is `target = value`. The parser accepts any target; the
// evaluator rejects everything but an Identifier.
type AssignmentExpr struct {
	ExprBase
	Target Expr
	Value  Expr
}

func (*AssignmentExpr) Kind() NodeKind { return AssignmentExprNode }

// BinaryExpr is an arithmetic operation. Operator is the operator lexeme.
type BinaryExpr struct {
	ExprBase
	Left     Expr
	Right    Expr
	Operator string
}

func (*BinaryExpr) Kind() NodeKind { return BinaryExprNode }

// Identifier is a name reference.
type Identifier struct {
	ExprBase
	Symbol string
}

func (*Identifier) Kind() NodeKind { return IdentifierNode }

// NumericLiteral is a number literal.
type NumericLiteral struct {
	ExprBase
	Value float64
}

func (*NumericLiteral) Kind() NodeKind { return NumericLiteralNode }

// ObjectLiteral is `{ key, key: value, ... }`. Keys are unique; Properties
// keeps the order in which each key first appeared.
type ObjectLiteral struct {
	ExprBase
	Properties []*Property
}

func (*ObjectLiteral) Kind() NodeKind { return ObjectLiteralNode }

// Property returns the property stored under key.
func (o *ObjectLiteral) Property(key string) (*Property, bool) {
	for _, p := range o.Properties {
		if p.Key == key {
			return p, true
		}
	}
	return nil, false
}

// SetProperty adds p, replacing any existing property with the same key in place.
func (o *ObjectLiteral) SetProperty(p *Property) {
	for i, existing := range o.Properties {
		if existing.Key == p.Key {
			o.Properties[i] = p
			return
		}
	}
	o.Properties = append(o.Properties, p)
}

// Property is one object literal entry. A nil Value is shorthand: the key is
// looked up as an identifier when the literal is evaluated.
type Property struct {
	ExprBase
	Key   string
	Value Expr
}

func (*Property) Kind() NodeKind { return PropertyNode }

// IsShorthand reports whether the property has no explicit value.
func (p *Property) IsShorthand() bool {
	return p.Value == nil
}
