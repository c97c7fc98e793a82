package runtime

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"sun-lang/internal/ast"
	"sun-lang/internal/diag"
	"sun-lang/internal/parser"
	"sun-lang/internal/span"
)

// ============================================================
// Interpreter
// ============================================================

// Interpreter owns a global environment and evaluates programs against it.
// Declarations made by one Run are visible to the next, which is what the
// REPL relies on.
type Interpreter struct {
	global *Environment
	log    *slog.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger routes evaluation tracing to l.
func WithLogger(l *slog.Logger) Option {
	return func(i *Interpreter) {
		if l != nil {
			i.log = l
		}
	}
}

// WithEnvironment evaluates against env instead of a fresh global scope.
func WithEnvironment(env *Environment) Option {
	return func(i *Interpreter) {
		if env != nil {
			i.global = env
		}
	}
}

// NewInterpreter creates an interpreter with a freshly seeded global scope.
func NewInterpreter(opts ...Option) *Interpreter {
	i := &Interpreter{
		global: NewGlobalEnvironment(),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Env returns the global environment.
func (i *Interpreter) Env() *Environment {
	return i.global
}

// Run evaluates program and returns the value of its last statement.
func (i *Interpreter) Run(program *ast.Program) (Value, error) {
	i.log.Debug("run program", slog.Int("statements", len(program.Body)))
	return evaluator{log: i.log}.eval(program, i.global)
}

// RunSource parses and runs source. Warnings from both stages are returned
// even when evaluation fails.
func (i *Interpreter) RunSource(source string) (Value, []diag.Diagnostic, error) {
	program, diags, err := parser.ProduceAST(source)
	if err != nil {
		return Nil(), diags, err
	}
	val, err := i.Run(program)
	return val, diags, err
}

// Evaluate evaluates node against env without logging.
func Evaluate(node ast.Node, env *Environment) (Value, error) {
	return evaluator{log: slog.New(slog.NewTextHandler(io.Discard, nil))}.eval(node, env)
}

// ============================================================
// Node dispatch
// ============================================================

type evaluator struct {
	log *slog.Logger
}

func (ev evaluator) eval(node ast.Node, env *Environment) (Value, error) {
	switch n := node.(type) {
	case *ast.Program:
		return ev.evalProgram(n, env)
	case *ast.VarDeclaration:
		return ev.evalVarDeclaration(n, env)
	case *ast.AssignmentExpr:
		return ev.evalAssignment(n, env)
	case *ast.BinaryExpr:
		return ev.evalBinary(n, env)
	case *ast.Identifier:
		return ev.evalIdentifier(n, env)
	case *ast.NumericLiteral:
		return Number(n.Value), nil
	case *ast.ObjectLiteral:
		return ev.evalObject(n, env)
	case *ast.Property:
		return ev.evalProperty(n, env)
	case nil:
		return Nil(), diag.NewFatal(diag.CodeUnknownNode, span.Span{}, "cannot evaluate a nil node")
	default:
		return Nil(), diag.NewFatal(diag.CodeUnknownNode, node.GetSpan(),
			"this AST node has not yet been set up for interpretation: %s", node.Kind())
	}
}

// ============================================================
// Statements
// ============================================================

func (ev evaluator) evalProgram(program *ast.Program, env *Environment) (Value, error) {
	last := Nil()
	for _, stmt := range program.Body {
		val, err := ev.eval(stmt, env)
		if err != nil {
			return Nil(), err
		}
		last = val
	}
	return last, nil
}

func (ev evaluator) evalVarDeclaration(decl *ast.VarDeclaration, env *Environment) (Value, error) {
	if decl.Value == nil {
		return Nil(), nil
	}
	val, err := ev.eval(decl.Value, env)
	if err != nil {
		return Nil(), err
	}
	if _, err := env.DeclareVar(decl.Identifier, val, decl.Constant, false); err != nil {
		return Nil(), withSpan(err, decl.GetSpan())
	}
	ev.log.Debug("declare",
		slog.String("name", decl.Identifier),
		slog.Bool("constant", decl.Constant),
		slog.String("value", val.String()))
	return Nil(), nil
}

// ============================================================
// Expressions
// ============================================================

// evalAssignment stores through the reassignment path of DeclareVar, so the
// target becomes a constant binding of the current scope.
func (ev evaluator) evalAssignment(node *ast.AssignmentExpr, env *Environment) (Value, error) {
	target, ok := node.Target.(*ast.Identifier)
	if !ok {
		return Nil(), diag.NewFatal(diag.CodeInvalidAssign, node.GetSpan(),
			"invalid left-hand side in assignment: %s", describe(node.Target))
	}

	val, err := ev.eval(node.Value, env)
	if err != nil {
		return Nil(), err
	}
	out, err := env.DeclareVar(target.Symbol, val, true, true)
	if err != nil {
		return Nil(), withSpan(err, node.GetSpan())
	}
	ev.log.Debug("assign", slog.String("name", target.Symbol), slog.String("value", val.String()))
	return out, nil
}

// evalBinary evaluates both operands in order. Any operand that is not a
// number makes the whole expression Nil.
func (ev evaluator) evalBinary(node *ast.BinaryExpr, env *Environment) (Value, error) {
	lhs, err := ev.eval(node.Left, env)
	if err != nil {
		return Nil(), err
	}
	rhs, err := ev.eval(node.Right, env)
	if err != nil {
		return Nil(), err
	}

	if lhs.Kind() != NumberKind || rhs.Kind() != NumberKind {
		ev.log.Debug("non-numeric operands",
			slog.String("operator", node.Operator),
			slog.String("left", lhs.Kind().String()),
			slog.String("right", rhs.Kind().String()))
		return Nil(), nil
	}
	return Number(numericOp(node.Operator, lhs.AsNumber(), rhs.AsNumber())), nil
}

// numericOp applies op with IEEE 754 semantics. Anything that is not + - * /
// is treated as %.
func numericOp(op string, l, r float64) float64 {
	switch op {
	case "+":
		return l + r
	case "-":
		return l - r
	case "*":
		return l * r
	case "/":
		return l / r
	default:
		return math.Mod(l, r)
	}
}

func (ev evaluator) evalIdentifier(node *ast.Identifier, env *Environment) (Value, error) {
	val, err := env.LookUpVar(node.Symbol)
	if err != nil {
		return Nil(), withSpan(err, node.GetSpan())
	}
	return val, nil
}

func (ev evaluator) evalObject(node *ast.ObjectLiteral, env *Environment) (Value, error) {
	obj := NewObject()
	for _, prop := range node.Properties {
		val, err := ev.evalProperty(prop, env)
		if err != nil {
			return Nil(), err
		}
		obj.Set(prop.Key, val)
	}
	return ObjectValue(obj), nil
}

// evalProperty yields the explicit value, or looks the key up for shorthand.
func (ev evaluator) evalProperty(prop *ast.Property, env *Environment) (Value, error) {
	if prop.Value != nil {
		return ev.eval(prop.Value, env)
	}
	val, err := env.LookUpVar(prop.Key)
	if err != nil {
		return Nil(), withSpan(err, prop.GetSpan())
	}
	return val, nil
}

func describe(node ast.Node) string {
	if node == nil {
		return "nothing"
	}
	return node.Kind().String()
}

// withSpan fills in the location of a diagnostic raised without one.
func withSpan(err error, s span.Span) error {
	var f *diag.Fatal
	if errors.As(err, &f) && f.Span == (span.Span{}) {
		f.Span = s
	}
	return err
}
