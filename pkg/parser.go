package seasharp

type Parser struct {
	filename  string
	tokenizer Tokenizer
	buf       *Token

	errors    []*SyntaxError
	lexFailed bool
}

func NewParser(tokenizer Tokenizer) *Parser {
	return &Parser{
		tokenizer: tokenizer,
		filename:  tokenizer.GetFilename(),
	}
}

func (p *Parser) GetFilename() string {
	return p.filename
}

// Run consumes the whole token stream and returns the program tree. When the
// returned slice is not empty the tree is incomplete and must not be analysed.
func (p *Parser) Run() (*Node, []*SyntaxError) {
	go p.tokenizer.Do()

	root := &Node{
		Kind: NodeProgram,
		Loc:  &Location{Line: 1, Col: 1},
	}

	for {
		tok := p.peek()
		if tok.Typ == TokenEOF {
			break
		}

		if tok.Typ == TokenError {
			p.unexpected(tok, "")
			break
		}

		stmt := p.statement()
		if stmt == nil {
			p.synchronize()
			continue
		}

		if !p.check(TokenSemicolon) {
			p.unexpected(p.peek(), "';'")
			p.synchronize()
			continue
		}

		p.next() // Skip ;
		root.Children = append(root.Children, stmt)
	}

	return root, p.errors
}

func (p *Parser) peek() Token {
	if p.buf == nil {
		temp := p.next()
		p.buf = &temp
	}

	return *p.buf
}

func (p *Parser) next() Token {
	if p.buf != nil {
		if !p.buf.isValid() {
			// If an invalid token is buffered, don't try to get more tokens
			return *p.buf
		}

		temp := p.buf
		p.buf = nil

		return *temp
	}

	tok := p.tokenizer.Get()
	if !tok.isValid() {
		// If a token is invalid (such as Error or EOF) keep it buffered since no more valid tokens are expected
		p.buf = &tok
	}

	if tok.isComment() {
		return p.next()
	}

	return tok
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Typ == typ
}

func (p *Parser) expect(typ TokenType, what string) *Token {
	if !p.check(typ) {
		p.unexpected(p.peek(), what)
		return nil
	}

	tok := p.next()
	return &tok
}

// synchronize drops tokens up to and including the next ';' so that parsing
// can resume at the following statement.
func (p *Parser) synchronize() {
	for {
		tok := p.peek()
		if !tok.isValid() {
			return
		}

		p.next()
		if tok.Typ == TokenSemicolon {
			return
		}
	}
}

func (p *Parser) errorf(loc *Location, format string, args ...interface{}) *Node {
	p.errors = append(p.errors, newSyntaxError(loc, format, args...))
	return nil
}

func (p *Parser) unexpected(tok Token, expecting string) *Node {
	switch {
	case tok.Typ == TokenError:
		if p.lexFailed {
			return nil
		}

		p.lexFailed = true
		return p.errorf(tok.Loc, "%s", tok.Value)
	case tok.Typ == TokenEOF && expecting != "":
		return p.errorf(tok.Loc, "missing %s at end of input", expecting)
	case tok.Typ == TokenEOF:
		return p.errorf(tok.Loc, "unexpected end of input")
	case expecting != "":
		return p.errorf(tok.Loc, "mismatched input '%s' expecting %s", tok.Value, expecting)
	default:
		return p.errorf(tok.Loc, "extraneous input '%s'", tok.Value)
	}
}

func (p *Parser) statement() *Node {
	if p.check(TokenTypeName) {
		return p.declaration()
	}

	expr := p.expr()
	if expr == nil {
		return nil
	}

	if expr.Kind == NodeVariable && p.check(TokenAssign) {
		return p.assignment(expr)
	}

	return expr
}

func (p *Parser) declaration() *Node {
	typ := p.next()

	id := p.expect(TokenIdentifier, "an identifier")
	if id == nil {
		return nil
	}

	if p.expect(TokenAssign, "'='") == nil {
		return nil
	}

	value := p.expr()
	if value == nil {
		return nil
	}

	return &Node{
		Kind:     NodeDeclaration,
		Children: []*Node{newTerminal(NodeToken, typ), newTerminal(NodeToken, *id), value},
		Loc:      typ.Loc,
	}
}

func (p *Parser) assignment(target *Node) *Node {
	p.next() // Skip =

	value := p.expr()
	if value == nil {
		return nil
	}

	return &Node{
		Kind: NodeAssignment,
		Children: []*Node{
			{Kind: NodeToken, Text: target.Text, Loc: target.Loc},
			value,
		},
		Loc: target.Loc,
	}
}

func (p *Parser) expr() *Node {
	return p.orExpr()
}

func (p *Parser) orExpr() *Node {
	return p.binaryLoop(p.andExpr, map[TokenType]NodeKind{TokenOr: NodeOr})
}

func (p *Parser) andExpr() *Node {
	return p.binaryLoop(p.additiveExpr, map[TokenType]NodeKind{TokenAnd: NodeAnd})
}

func (p *Parser) additiveExpr() *Node {
	return p.binaryLoop(p.multiplicativeExpr, map[TokenType]NodeKind{
		TokenPlus:  NodeAddSub,
		TokenMinus: NodeAddSub,
	})
}

func (p *Parser) multiplicativeExpr() *Node {
	return p.binaryLoop(p.unaryExpr, map[TokenType]NodeKind{
		TokenMulti: NodeMultDivMod,
		TokenDiv:   NodeMultDivMod,
		TokenMod:   NodeMultDivMod,
	})
}

// binaryLoop parses a left-associative chain of operands produced by operand
// and joined by any operator in ops (for example 1 - 3 + 1 is (1 - 3) + 1).
func (p *Parser) binaryLoop(operand func() *Node, ops map[TokenType]NodeKind) *Node {
	lhs := operand()
	if lhs == nil {
		return nil
	}

	for {
		kind, ok := ops[p.peek().Typ]
		if !ok {
			return lhs
		}

		op := p.next()

		rhs := operand()
		if rhs == nil {
			return nil
		}

		lhs = &Node{
			Kind:     kind,
			Children: []*Node{lhs, newTerminal(NodeToken, op), rhs},
			Loc:      lhs.Loc,
		}
	}
}

func (p *Parser) unaryExpr() *Node {
	var kind NodeKind
	switch p.peek().Typ {
	case TokenMinus:
		kind = NodeUnaryMinus
	case TokenNot:
		kind = NodeNot
	default:
		return p.primary()
	}

	op := p.next()

	operand := p.unaryExpr()
	if operand == nil {
		return nil
	}

	return &Node{
		Kind:     kind,
		Children: []*Node{operand},
		Loc:      op.Loc,
	}
}

func (p *Parser) primary() *Node {
	switch tok := p.peek(); tok.Typ {
	case TokenOpenParentheses:
		return p.parenthesisedExpression()
	case TokenIdentifier:
		return newTerminal(NodeVariable, p.next())
	case TokenNumber:
		return newTerminal(NodeNumber, p.next())
	case TokenBool:
		return newTerminal(NodeBoolean, p.next())
	default:
		return p.unexpected(tok, "")
	}
}

func (p *Parser) parenthesisedExpression() *Node {
	open := p.next()

	inner := p.expr()
	if inner == nil {
		return nil
	}

	if p.expect(TokenCloseParentheses, "')'") == nil {
		return nil
	}

	return &Node{
		Kind:     NodeParens,
		Children: []*Node{inner},
		Loc:      open.Loc,
	}
}
