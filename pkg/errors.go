package seasharp

import (
	"fmt"
)

// CompileError is a semantic diagnostic. String renders the fixed
// "<description> (<line>:<column>)" form.
type CompileError interface {
	fmt.Stringer
	error
	GetLocation() *Location
}

type AlreadyDeclaredError struct {
	Loc  *Location
	Name string
}

func (e *AlreadyDeclaredError) String() string {
	return fmt.Sprintf("variable '%s' already declared (%s)", e.Name, e.Loc)
}

func (e *AlreadyDeclaredError) Error() string          { return e.String() }
func (e *AlreadyDeclaredError) GetLocation() *Location { return e.Loc }

type UndeclaredError struct {
	Loc  *Location
	Name string
}

func (e *UndeclaredError) String() string {
	return fmt.Sprintf("variable '%s' not declared (%s)", e.Name, e.Loc)
}

func (e *UndeclaredError) Error() string          { return e.String() }
func (e *UndeclaredError) GetLocation() *Location { return e.Loc }

type ConsecutiveUnaryError struct {
	Loc *Location
}

func (e *ConsecutiveUnaryError) String() string {
	return fmt.Sprintf("consecutive unary minus not allowed (%s)", e.Loc)
}

func (e *ConsecutiveUnaryError) Error() string          { return e.String() }
func (e *ConsecutiveUnaryError) GetLocation() *Location { return e.Loc }

// IncompatibleAssignmentError reports a value of kind Value (rendered as Text)
// bound to a variable declared as Target.
type IncompatibleAssignmentError struct {
	Loc    *Location
	Target Type
	Value  Type
	Text   string
}

func (e *IncompatibleAssignmentError) String() string {
	return fmt.Sprintf("cannot assign %s '%s' to %s variable (%s)", valueKind(e.Target, e.Value), e.Text, e.Target, e.Loc)
}

func (e *IncompatibleAssignmentError) Error() string          { return e.String() }
func (e *IncompatibleAssignmentError) GetLocation() *Location { return e.Loc }

func valueKind(target, value Type) string {
	switch {
	case value == TypeBool:
		return "boolean"
	case target == TypeInt && value == TypeFloat:
		return "float"
	default:
		return "number"
	}
}

// MalformedNodeError is reported for a tree the Parser could not have built.
type MalformedNodeError struct {
	Loc    *Location
	Kind   NodeKind
	Reason string
}

func (e *MalformedNodeError) String() string {
	return fmt.Sprintf("malformed %s node: %s (%s)", e.Kind, e.Reason, e.Loc)
}

func (e *MalformedNodeError) Error() string          { return e.String() }
func (e *MalformedNodeError) GetLocation() *Location { return e.Loc }

// FatalError carries a CompileError that aborts the whole analysis run.
type FatalError struct {
	Err CompileError
}

func (e *FatalError) Error() string {
	return e.Err.String()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

func fatal(err CompileError) error {
	return &FatalError{Err: err}
}

// SyntaxError is reported by the Parser. A tree with syntax errors is never
// handed to the Transformer.
type SyntaxError struct {
	Loc *Location
	Msg string
}

func newSyntaxError(loc *Location, format string, args ...interface{}) *SyntaxError {
	if loc == nil {
		loc = &Location{}
	}

	return &SyntaxError{
		Loc: loc,
		Msg: fmt.Sprintf(format, args...),
	}
}

func (e *SyntaxError) String() string {
	return fmt.Sprintf("Syntax error: %s (line %d, column %d).", e.Msg, e.Loc.Line, e.Loc.Col)
}

func (e *SyntaxError) Error() string {
	return e.String()
}

// Result is the outcome of one analysis run. Exactly one of the following
// holds: Fatal is set; Errors is not empty; Program is set.
type Result struct {
	Program *Program
	Errors  []CompileError
	Fatal   CompileError

	// Symbols is the table as it stood when analysis stopped
	Symbols *SymbolTable
}

func (r *Result) Rejected() bool {
	return r.Fatal != nil || len(r.Errors) != 0
}

func (r *Result) Messages() []string {
	if r.Fatal != nil {
		return []string{r.Fatal.String()}
	}

	var messages []string
	for _, err := range r.Errors {
		messages = append(messages, err.String())
	}

	return messages
}
