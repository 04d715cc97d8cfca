package seasharp

import "fmt"

// Location is a 1-based line and column in the source.
type Location struct {
	Line int
	Col  int
}

func (l *Location) String() string {
	if l == nil {
		return "?:?"
	}

	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

type NodeKind int

const (
	NodeProgram NodeKind = iota
	NodeDeclaration
	NodeAssignment
	NodeVariable
	NodeNumber
	NodeBoolean
	NodeParens
	NodeUnaryMinus
	NodeNot
	NodeAddSub
	NodeMultDivMod
	NodeAnd
	NodeOr

	// NodeToken is a bare terminal inside a construct: a type keyword, the
	// identifier of a declaration or assignment, or a binary operator.
	NodeToken
)

var nodeKindNames = map[NodeKind]string{
	NodeProgram:     "Program",
	NodeDeclaration: "Declaration",
	NodeAssignment:  "Assignment",
	NodeVariable:    "Variable",
	NodeNumber:      "Number",
	NodeBoolean:     "Boolean",
	NodeParens:      "Parens",
	NodeUnaryMinus:  "UnaryMinus",
	NodeNot:         "Not",
	NodeAddSub:      "AddSub",
	NodeMultDivMod:  "MultDivMod",
	NodeAnd:         "And",
	NodeOr:          "Or",
	NodeToken:       "Token",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Node is one element of the parse tree handed to the Transformer.
//
//	Declaration            [Token(type), Token(id), expr]
//	Assignment             [Token(id), expr]
//	AddSub, MultDivMod,
//	And, Or                [left, Token(op), right]
//	UnaryMinus, Not,
//	Parens                 [expr]
//	Number, Boolean,
//	Variable, Token        no children, Text holds the source text
type Node struct {
	Kind     NodeKind
	Children []*Node
	Text     string
	Loc      *Location
}

func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}

	return n.Children[i]
}

func newTerminal(kind NodeKind, tok Token) *Node {
	return &Node{
		Kind: kind,
		Text: tok.Value,
		Loc:  tok.Loc,
	}
}
