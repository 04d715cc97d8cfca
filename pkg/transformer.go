package seasharp

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Transform converts a program tree into a Program, checking declarations and
// types on the way. Each call owns a fresh symbol table, so independent trees
// may be transformed concurrently.
func Transform(root *Node) *Result {
	t := newTransformer()

	prog, err := t.program(root)
	if err != nil {
		var f *FatalError
		if errors.As(err, &f) {
			return &Result{Fatal: f.Err, Symbols: t.symbols}
		}

		// Only FatalError is ever returned by the walk
		return &Result{Fatal: &MalformedNodeError{Reason: err.Error()}, Symbols: t.symbols}
	}

	if len(t.errors) != 0 {
		return &Result{Errors: t.errors, Symbols: t.symbols}
	}

	return &Result{Program: prog, Symbols: t.symbols}
}

// operand is the statically known form of a value: its type and the text
// used to report it. literal is set when text is the value itself rather
// than the name of a variable holding it.
type operand struct {
	typ     Type
	text    string
	literal bool
}

type transformer struct {
	symbols *SymbolTable
	errors  []CompileError

	// Last literal value stored in each variable, if known
	bindings map[string]operand
}

func newTransformer() *transformer {
	return &transformer{
		symbols:  NewSymbolTable(),
		bindings: make(map[string]operand),
	}
}

func (t *transformer) addError(err CompileError) {
	t.errors = append(t.errors, err)
}

func (t *transformer) program(root *Node) (*Program, error) {
	if root == nil || root.Kind != NodeProgram {
		return nil, malformed(root, "expected a program")
	}

	prog := &Program{}
	for _, child := range root.Children {
		stmt, err := t.statement(child)
		if err != nil {
			return nil, err
		}

		prog.Statements = append(prog.Statements, stmt)
	}

	return prog, nil
}

func (t *transformer) statement(n *Node) (Expression, error) {
	if n == nil {
		return nil, malformed(nil, "missing statement")
	}

	switch n.Kind {
	case NodeDeclaration:
		return t.declaration(n)
	case NodeAssignment:
		return t.assignment(n)
	default:
		return t.expr(n)
	}
}

func (t *transformer) declaration(n *Node) (Expression, error) {
	if len(n.Children) != 3 {
		return nil, malformed(n, "expected type, identifier and value")
	}

	typ, ok := ParseType(n.Child(0).Text)
	if !ok {
		return nil, malformed(n.Child(0), "unknown type '"+n.Child(0).Text+"'")
	}

	id := n.Child(1)

	declared := true
	if err := t.symbols.Declare(id.Text, typ, id.Loc); errors.Is(err, ErrAlreadyDeclared) {
		declared = false
		t.addError(&AlreadyDeclaredError{Loc: id.Loc, Name: id.Text})
	}

	value, err := t.expr(n.Child(2))
	if err != nil {
		return nil, err
	}

	if err := t.checkAssignable(typ, value, id.Loc); err != nil {
		return nil, err
	}

	if declared {
		t.bind(id.Text, typ, value)
	}

	return &VariableDeclaration{
		Name:         id.Text,
		DeclaredType: typ,
		Initializer:  value,
	}, nil
}

func (t *transformer) assignment(n *Node) (Expression, error) {
	if len(n.Children) != 2 {
		return nil, malformed(n, "expected identifier and value")
	}

	id := n.Child(0)

	typ, ok := t.symbols.Lookup(id.Text)
	if !ok {
		return nil, fatal(&UndeclaredError{Loc: id.Loc, Name: id.Text})
	}

	value, err := t.expr(n.Child(1))
	if err != nil {
		return nil, err
	}

	if err := t.checkAssignable(typ, value, id.Loc); err != nil {
		return nil, err
	}

	t.bind(id.Text, typ, value)

	return &Assignment{
		Name:  id.Text,
		Value: value,
	}, nil
}

func (t *transformer) expr(n *Node) (Expression, error) {
	if n == nil {
		return nil, malformed(nil, "missing expression")
	}

	switch n.Kind {
	case NodeNumber:
		v, err := strconv.ParseFloat(n.Text, 64)
		if err != nil {
			return nil, malformed(n, "invalid number '"+n.Text+"'")
		}

		return &Number{
			Value:     v,
			IsInteger: !strings.Contains(n.Text, "."),
		}, nil
	case NodeBoolean:
		switch n.Text {
		case "true":
			return &Bool{Value: true}, nil
		case "false":
			return &Bool{Value: false}, nil
		default:
			return nil, malformed(n, "invalid boolean '"+n.Text+"'")
		}
	case NodeVariable:
		if _, ok := t.symbols.Lookup(n.Text); !ok {
			t.addError(&UndeclaredError{Loc: n.Loc, Name: n.Text})
		}

		return &Variable{Name: n.Text}, nil
	case NodeParens:
		inner, err := t.singleOperand(n)
		if err != nil {
			return nil, err
		}

		return &Parens{Inner: inner}, nil
	case NodeUnaryMinus:
		value, err := t.singleOperand(n)
		if err != nil {
			return nil, err
		}

		if inner, ok := value.(*UnaryMinus); ok {
			switch inner.Operand.(type) {
			case *Number, *Variable:
				return nil, fatal(&ConsecutiveUnaryError{Loc: n.Loc})
			}
		}

		return &UnaryMinus{Operand: value}, nil
	case NodeNot:
		value, err := t.singleOperand(n)
		if err != nil {
			return nil, err
		}

		return &Not{Operand: value}, nil
	case NodeAddSub, NodeMultDivMod, NodeAnd, NodeOr:
		return t.binary(n)
	default:
		return nil, malformed(n, "expected an expression")
	}
}

func (t *transformer) singleOperand(n *Node) (Expression, error) {
	if len(n.Children) != 1 {
		return nil, malformed(n, "expected a single operand")
	}

	return t.expr(n.Child(0))
}

func (t *transformer) binary(n *Node) (Expression, error) {
	if len(n.Children) != 3 {
		return nil, malformed(n, "expected two operands and an operator")
	}

	left, err := t.expr(n.Child(0))
	if err != nil {
		return nil, err
	}

	right, err := t.expr(n.Child(2))
	if err != nil {
		return nil, err
	}

	op := n.Child(1)

	switch n.Kind {
	case NodeAddSub:
		switch AdditiveOp(op.Text) {
		case OpAdd, OpSub:
			return &AddSub{Left: left, Right: right, Op: AdditiveOp(op.Text)}, nil
		}
	case NodeMultDivMod:
		switch MultiplicativeOp(op.Text) {
		case OpMul, OpDiv, OpMod:
			return &MultDivMod{Left: left, Right: right, Op: MultiplicativeOp(op.Text)}, nil
		}
	case NodeAnd:
		return &And{Left: left, Right: right}, nil
	case NodeOr:
		return &Or{Left: left, Right: right}, nil
	}

	return nil, malformed(op, "unexpected operator '"+op.Text+"'")
}

// checkAssignable rejects values whose statically known type cannot be stored
// in a variable of type target. Values that cannot be resolved statically,
// such as arithmetic and boolean operations, are accepted.
func (t *transformer) checkAssignable(target Type, value Expression, loc *Location) error {
	op, ok := t.resolve(value)
	if !ok || target.Accepts(op.typ) {
		return nil
	}

	return fatal(&IncompatibleAssignmentError{
		Loc:    loc,
		Target: target,
		Value:  op.typ,
		Text:   op.text,
	})
}

func (t *transformer) resolve(e Expression) (operand, bool) {
	switch e := e.(type) {
	case *Number:
		if e.IsInteger {
			return operand{typ: TypeInt, text: e.String(), literal: true}, true
		}

		return operand{typ: TypeFloat, text: e.String(), literal: true}, true
	case *Bool:
		return operand{typ: TypeBool, text: e.String(), literal: true}, true
	case *Parens:
		return t.resolve(e.Inner)
	case *UnaryMinus:
		op, ok := t.resolve(e.Operand)
		if !ok || op.typ == TypeBool || !op.literal {
			return operand{}, false
		}

		op.text = negate(op.text)
		return op, true
	case *Variable:
		if op, ok := t.bindings[e.Name]; ok {
			return op, true
		}

		if typ, ok := t.symbols.Lookup(e.Name); ok {
			return operand{typ: typ, text: e.Name}, true
		}
	}

	return operand{}, false
}

// bind records the literal now held by name, converted to its declared type.
// Anything else makes the value unknown again.
func (t *transformer) bind(name string, typ Type, value Expression) {
	op, ok := t.resolve(value)
	if !ok || !op.literal || (op.typ == TypeBool && typ != TypeBool) {
		delete(t.bindings, name)
		return
	}

	if typ == TypeFloat && op.typ == TypeInt {
		op.text += ".0"
	}

	op.typ = typ
	t.bindings[name] = op
}

func negate(text string) string {
	if strings.HasPrefix(text, "-") {
		return text[1:]
	}

	return "-" + text
}

func malformed(n *Node, reason string) error {
	if n == nil {
		return fatal(&MalformedNodeError{Reason: reason})
	}

	return fatal(&MalformedNodeError{Loc: n.Loc, Kind: n.Kind, Reason: reason})
}
