package seasharp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type BufferedTokenizerMocker struct {
	buf []Token
	pos int
}

func NewBufferedTokenizerMocker(toks []Token) *BufferedTokenizerMocker {
	return &BufferedTokenizerMocker{
		buf: toks,
		pos: 0,
	}
}

func (b *BufferedTokenizerMocker) Do() {
	return
}

func (b *BufferedTokenizerMocker) Get() Token {
	if len(b.buf) <= b.pos {
		return Token{Typ: TokenEOF}
	}

	tok := b.buf[b.pos]
	b.pos++

	return tok
}

func (b *BufferedTokenizerMocker) GetFilename() string {
	return "testing"
}

func tok(typ NodeKind, text string) *Node {
	return &Node{Kind: typ, Text: text}
}

func node(kind NodeKind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

func TestParser(t *testing.T) {
	cases := []struct {
		data   []Token
		fail   bool
		expect []*Node
	}{
		{
			[]Token{
				{TokenNumber, "1", nil},
				{TokenPlus, "+", nil},
				{TokenNumber, "3", nil},
				{TokenMulti, "*", nil},
				{TokenNumber, "2", nil},
				{TokenSemicolon, ";", nil},
			},
			false,
			[]*Node{
				node(NodeAddSub,
					tok(NodeNumber, "1"),
					tok(NodeToken, "+"),
					node(NodeMultDivMod, tok(NodeNumber, "3"), tok(NodeToken, "*"), tok(NodeNumber, "2")),
				),
			},
		},
		{
			[]Token{
				{TokenOpenParentheses, "(", nil},
				{TokenNumber, "1", nil},
				{TokenPlus, "+", nil},
				{TokenNumber, "3", nil},
				{TokenCloseParentheses, ")", nil},
				{TokenMulti, "*", nil},
				{TokenNumber, "2", nil},
				{TokenSemicolon, ";", nil},
			},
			false,
			[]*Node{
				node(NodeMultDivMod,
					node(NodeParens,
						node(NodeAddSub, tok(NodeNumber, "1"), tok(NodeToken, "+"), tok(NodeNumber, "3")),
					),
					tok(NodeToken, "*"),
					tok(NodeNumber, "2"),
				),
			},
		},
		{
			[]Token{
				{TokenNumber, "1", nil},
				{TokenMinus, "-", nil},
				{TokenNumber, "3", nil},
				{TokenPlus, "+", nil},
				{TokenNumber, "1", nil},
				{TokenSemicolon, ";", nil},
			},
			false,
			[]*Node{
				node(NodeAddSub,
					node(NodeAddSub, tok(NodeNumber, "1"), tok(NodeToken, "-"), tok(NodeNumber, "3")),
					tok(NodeToken, "+"),
					tok(NodeNumber, "1"),
				),
			},
		},
		{
			[]Token{
				{TokenTypeName, "int", nil},
				{TokenIdentifier, "x", nil},
				{TokenAssign, "=", nil},
				{TokenNumber, "1", nil},
				{TokenSemicolon, ";", nil},
				{TokenIdentifier, "x", nil},
				{TokenAssign, "=", nil},
				{TokenIdentifier, "y", nil},
				{TokenSemicolon, ";", nil},
			},
			false,
			[]*Node{
				node(NodeDeclaration, tok(NodeToken, "int"), tok(NodeToken, "x"), tok(NodeNumber, "1")),
				node(NodeAssignment, tok(NodeToken, "x"), tok(NodeVariable, "y")),
			},
		},
		{
			[]Token{
				{TokenMinus, "-", nil},
				{TokenMinus, "-", nil},
				{TokenIdentifier, "x", nil},
				{TokenSemicolon, ";", nil},
			},
			false,
			[]*Node{
				node(NodeUnaryMinus, node(NodeUnaryMinus, tok(NodeVariable, "x"))),
			},
		},
		{
			[]Token{
				{TokenIdentifier, "a", nil},
				{TokenOr, "||", nil},
				{TokenIdentifier, "b", nil},
				{TokenAnd, "&&", nil},
				{TokenNot, "!", nil},
				{TokenBool, "true", nil},
				{TokenSemicolon, ";", nil},
			},
			false,
			[]*Node{
				node(NodeOr,
					tok(NodeVariable, "a"),
					tok(NodeToken, "||"),
					node(NodeAnd, tok(NodeVariable, "b"), tok(NodeToken, "&&"), node(NodeNot, tok(NodeBoolean, "true"))),
				),
			},
		},
		{
			[]Token{
				{TokenLineComment, "this is a comment", nil},
			},
			false,
			nil,
		},
		{
			[]Token{
				{TokenNumber, "1", nil},
				{TokenNumber, "2", nil},
				{TokenSemicolon, ";", nil},
			},
			true,
			nil,
		},
		{
			[]Token{
				{TokenTypeName, "int", nil},
				{TokenAssign, "=", nil},
				{TokenNumber, "2", nil},
				{TokenSemicolon, ";", nil},
			},
			true,
			nil,
		},
		{
			[]Token{
				{TokenOpenParentheses, "(", nil},
				{TokenNumber, "2", nil},
				{TokenSemicolon, ";", nil},
			},
			true,
			nil,
		},
		{
			[]Token{
				{TokenNumber, "2", nil},
			},
			true,
			nil,
		},
	}

	for _, c := range cases {
		tokenizer := NewBufferedTokenizerMocker(c.data)
		p := NewParser(tokenizer)

		got, errs := p.Run()
		if c.fail {
			assert.NotEmpty(t, errs)
			continue
		}

		expect := &Node{
			Kind:     NodeProgram,
			Children: c.expect,
			Loc:      &Location{Line: 1, Col: 1},
		}

		assert.Empty(t, errs)
		assert.Equal(t, expect, got)
	}
}

func TestParserLocations(t *testing.T) {
	p := NewParser(NewLexerFromReader(strings.NewReader("int x = 1;\n  x = -(x + 2);")))

	got, errs := p.Run()
	require.Empty(t, errs)
	require.Len(t, got.Children, 2)

	decl := got.Children[0]
	assert.Equal(t, loc(1, 1), decl.Loc)
	assert.Equal(t, loc(1, 5), decl.Child(1).Loc)
	assert.Equal(t, loc(1, 9), decl.Child(2).Loc)

	assign := got.Children[1]
	assert.Equal(t, NodeAssignment, assign.Kind)
	assert.Equal(t, loc(2, 3), assign.Child(0).Loc)

	minus := assign.Child(1)
	assert.Equal(t, NodeUnaryMinus, minus.Kind)
	assert.Equal(t, loc(2, 7), minus.Loc)
	assert.Equal(t, loc(2, 8), minus.Child(0).Loc)
	assert.Equal(t, loc(2, 9), minus.Child(0).Child(0).Loc)
}

func TestParserSyntaxErrors(t *testing.T) {
	cases := []struct {
		data   string
		expect []string
	}{
		{
			"int = 1;\n1 2;\nint y = 3;",
			[]string{
				"Syntax error: mismatched input '=' expecting an identifier (line 1, column 5).",
				"Syntax error: mismatched input '2' expecting ';' (line 2, column 3).",
			},
		},
		{
			"int x = ;",
			[]string{
				"Syntax error: extraneous input ';' (line 1, column 9).",
			},
		},
		{
			"int x = 1;\nx = @;",
			[]string{
				"Syntax error: invalid symbol '@' (line 2, column 5).",
			},
		},
		{
			"x = (1 + 2",
			[]string{
				"Syntax error: missing ')' at end of input (line 1, column 11).",
			},
		},
	}

	for _, c := range cases {
		p := NewParser(NewLexerFromReader(strings.NewReader(c.data)))

		_, errs := p.Run()

		var got []string
		for _, err := range errs {
			got = append(got, err.String())
		}

		assert.Equal(t, c.expect, got, c.data)
	}
}
