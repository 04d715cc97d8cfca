package seasharp

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

const EOF rune = -1

//go:generate stringer -type=TokenType -trimprefix=Token
const (
	TokenError TokenType = iota
	TokenEOF
	TokenNumber
	TokenBool

	TokenIdentifier
	TokenTypeName

	TokenPlus
	TokenMinus
	TokenMulti
	TokenDiv
	TokenMod
	TokenNot
	TokenAnd
	TokenOr
	TokenAssign
	TokenSemicolon
	TokenLineComment
	TokenOpenParentheses
	TokenCloseParentheses
)

var keywordTable = map[string]TokenType{
	"int":   TokenTypeName,
	"float": TokenTypeName,
	"bool":  TokenTypeName,
	"true":  TokenBool,
	"false": TokenBool,
}

var operatorTable = map[string]TokenType{
	"+":  TokenPlus,
	"-":  TokenMinus,
	"*":  TokenMulti,
	"/":  TokenDiv,
	"%":  TokenMod,
	"!":  TokenNot,
	"&&": TokenAnd,
	"||": TokenOr,
	"=":  TokenAssign,
	";":  TokenSemicolon,
	"//": TokenLineComment,
	"(":  TokenOpenParentheses,
	")":  TokenCloseParentheses,
}

type Token struct {
	Typ   TokenType
	Value string
	Loc   *Location
}

func (t Token) isValid() bool {
	return t.Typ != TokenError && t.Typ != TokenEOF
}

func (t Token) isComment() bool {
	return t.Typ == TokenLineComment
}

// Tokenizer is the token source consumed by the Parser. Do is expected to run
// on its own goroutine while Get is called from the parser's.
type Tokenizer interface {
	Do()
	Get() Token
	GetFilename() string
}

type Lexer struct {
	filename string
	reader   *bufio.Reader
	done     chan Token

	line  int
	col   int
	start Location
}

func NewLexer(filename string) (*Lexer, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}

	l := NewLexerFromReader(bytes.NewReader(data))
	l.filename = filename

	return l, nil
}

func NewLexerFromReader(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
		done:   make(chan Token),
		line:   1,
		col:    1,
	}
}

func (l *Lexer) GetFilename() string {
	return l.filename
}

func (l *Lexer) Chan() chan Token {
	return l.done
}

func (l *Lexer) Do() {
	for state := defaultState; state != nil; {
		state = state(l)
	}

	close(l.done)
}

func (l *Lexer) Get() Token {
	tok, ok := <-l.done
	if !ok {
		return Token{Typ: TokenEOF, Loc: l.location()}
	}

	return tok
}

func (l *Lexer) RunBlocking() ([]Token, error) {
	go l.Do()

	var tokens []Token
	for t := range l.Chan() {
		switch t.Typ {
		case TokenEOF:
			return tokens, nil
		case TokenError:
			return nil, errors.Errorf("%s (%s)", t.Value, t.Loc)
		}

		tokens = append(tokens, t)
	}

	return tokens, nil
}

func defaultState(l *Lexer) stateFunc {
	for {
		l.start = *l.location()

		switch r := l.peek(); {
		case r == EOF:
			return l.emmitValue(TokenEOF, "")
		case unicode.IsSpace(r):
			l.next()
			continue
		case '0' <= r && r <= '9':
			return numberState
		case unicode.IsLetter(r) || r == '_':
			return identifierState
		default:
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	var num strings.Builder
	readDigits(l, &num)

	if l.peek() == '.' {
		num.WriteRune(l.next())

		if r := l.peek(); r < '0' || r > '9' {
			return l.errorf("malformed number '%s'", num.String())
		}

		readDigits(l, &num)
	}

	return l.emmitValue(TokenNumber, num.String())
}

func readDigits(l *Lexer, num *strings.Builder) {
	for r := l.peek(); '0' <= r && r <= '9'; r = l.peek() {
		num.WriteRune(l.next())
	}
}

func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	for r := l.peek(); unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'; r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return l.emmitValue(t, id.String())
	}

	return l.emmitValue(TokenIdentifier, id.String())
}

func operatorState(l *Lexer) stateFunc {
	r := l.next()
	if r == '&' || r == '|' || r == '/' { // Some operators can be two runes
		op := string(r) + string(l.peek())
		if tok, ok := operatorTable[op]; ok {
			l.next() // Skip

			if tok == TokenLineComment {
				return lineCommentState
			}

			return l.emmitValue(tok, op)
		}
	}

	if tok, ok := operatorTable[string(r)]; ok {
		return l.emmitValue(tok, string(r))
	}

	return l.errorf("invalid symbol '%c'", r)
}

func lineCommentState(l *Lexer) stateFunc {
	var comment strings.Builder
	for r := l.peek(); r != '\n' && r != EOF; r = l.peek() {
		comment.WriteRune(l.next())
	}

	return l.emmitValue(TokenLineComment, comment.String())
}

func (l *Lexer) errorf(format string, args ...interface{}) stateFunc {
	l.done <- Token{
		Typ:   TokenError,
		Value: fmt.Sprintf(format, args...),
		Loc:   l.startLocation(),
	}

	return nil
}

func (l *Lexer) emmitValue(t TokenType, val string) stateFunc {
	l.done <- Token{
		Typ:   t,
		Value: val,
		Loc:   l.startLocation(),
	}

	if t == TokenEOF {
		return nil
	}

	return defaultState
}

func (l *Lexer) startLocation() *Location {
	loc := l.start
	return &loc
}

func (l *Lexer) location() *Location {
	return &Location{Line: l.line, Col: l.col}
}

// peek does not move the position counters, only next does.
func (l *Lexer) peek() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		return EOF
	}

	_ = l.reader.UnreadRune()
	return r
}

func (l *Lexer) next() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return EOF
		}

		return utf8.RuneError
	}

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}
