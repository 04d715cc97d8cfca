package seasharp

import (
	"strconv"
	"strings"
)

type Program struct {
	Statements []Expression
}

// String renders the program back to source, one statement per line.
func (p *Program) String() string {
	var str strings.Builder
	for _, stmt := range p.Statements {
		str.WriteString(stmt.String())
		str.WriteString(";\n")
	}

	return str.String()
}

// Expression is implemented only by the node types in this file.
type Expression interface {
	String() string
	expression()
}

type Number struct {
	Value     float64
	IsInteger bool
}

type Bool struct {
	Value bool
}

type Variable struct {
	Name string
}

type UnaryMinus struct {
	Operand Expression
}

type Not struct {
	Operand Expression
}

type AdditiveOp string

const (
	OpAdd AdditiveOp = "+"
	OpSub AdditiveOp = "-"
)

type AddSub struct {
	Left  Expression
	Right Expression
	Op    AdditiveOp
}

type MultiplicativeOp string

const (
	OpMul MultiplicativeOp = "*"
	OpDiv MultiplicativeOp = "/"
	OpMod MultiplicativeOp = "%"
)

type MultDivMod struct {
	Left  Expression
	Right Expression
	Op    MultiplicativeOp
}

type And struct {
	Left  Expression
	Right Expression
}

type Or struct {
	Left  Expression
	Right Expression
}

// Parens keeps explicit grouping so that printing reproduces the source.
type Parens struct {
	Inner Expression
}

type VariableDeclaration struct {
	Name         string
	DeclaredType Type
	Initializer  Expression
}

type Assignment struct {
	Name  string
	Value Expression
}

func (*Number) expression()              {}
func (*Bool) expression()                {}
func (*Variable) expression()            {}
func (*UnaryMinus) expression()          {}
func (*Not) expression()                 {}
func (*AddSub) expression()              {}
func (*MultDivMod) expression()          {}
func (*And) expression()                 {}
func (*Or) expression()                  {}
func (*Parens) expression()              {}
func (*VariableDeclaration) expression() {}
func (*Assignment) expression()          {}

func (e *Number) String() string {
	if e.IsInteger {
		return strconv.FormatFloat(e.Value, 'f', 0, 64)
	}

	s := strconv.FormatFloat(e.Value, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

func (e *Bool) String() string {
	return strconv.FormatBool(e.Value)
}

func (e *Variable) String() string {
	return e.Name
}

func (e *UnaryMinus) String() string {
	return "-" + e.Operand.String()
}

func (e *Not) String() string {
	return "!" + e.Operand.String()
}

func (e *AddSub) String() string {
	return e.Left.String() + " " + string(e.Op) + " " + e.Right.String()
}

func (e *MultDivMod) String() string {
	return e.Left.String() + " " + string(e.Op) + " " + e.Right.String()
}

func (e *And) String() string {
	return e.Left.String() + " && " + e.Right.String()
}

func (e *Or) String() string {
	return e.Left.String() + " || " + e.Right.String()
}

func (e *Parens) String() string {
	return "(" + e.Inner.String() + ")"
}

func (e *VariableDeclaration) String() string {
	return e.DeclaredType.String() + " " + e.Name + " = " + e.Initializer.String()
}

func (e *Assignment) String() string {
	return e.Name + " = " + e.Value.String()
}
