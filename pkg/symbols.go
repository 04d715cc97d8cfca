package seasharp

import (
	"github.com/pkg/errors"
)

var ErrAlreadyDeclared = errors.New("already declared")

type Symbol struct {
	Name string
	Type Type
	Loc  *Location
}

// SymbolTable is the single flat scope of a program. Entries are never
// removed or overwritten: the first declaration of a name wins.
type SymbolTable struct {
	entries map[string]*Symbol
	order   []*Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		entries: make(map[string]*Symbol),
	}
}

func (t *SymbolTable) Declare(name string, typ Type, loc *Location) error {
	if _, exists := t.entries[name]; exists {
		return errors.Wrapf(ErrAlreadyDeclared, "variable '%s'", name)
	}

	sym := &Symbol{
		Name: name,
		Type: typ,
		Loc:  loc,
	}

	t.entries[name] = sym
	t.order = append(t.order, sym)

	return nil
}

func (t *SymbolTable) Lookup(name string) (Type, bool) {
	sym := t.Get(name)
	if sym == nil {
		return 0, false
	}

	return sym.Type, true
}

func (t *SymbolTable) Get(name string) *Symbol {
	sym, contains := t.entries[name]
	if !contains {
		return nil
	}

	return sym
}

// Symbols returns the entries in declaration order.
func (t *SymbolTable) Symbols() []*Symbol {
	symbols := make([]*Symbol, len(t.order))
	copy(symbols, t.order)

	return symbols
}

func (t *SymbolTable) Len() int {
	return len(t.order)
}
