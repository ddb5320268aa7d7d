package symtab

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"narratr/internal/ast"
)

var (
	ErrDuplicateSymbol = errors.New("duplicate symbol")
	ErrUndefinedSymbol = errors.New("undefined symbol")
)

// SymbolType classifies an entry.
type SymbolType uint8

const (
	TypeUnresolved SymbolType = iota
	TypeScene
	TypeItem
	TypeParam
	TypeValue // see Entry.ValueType
)

func (t SymbolType) String() string {
	switch t {
	case TypeScene:
		return "scene"
	case TypeItem:
		return "item"
	case TypeParam:
		return "param"
	case TypeValue:
		return "value"
	default:
		return "none"
	}
}

// Entry is one declaration.
type Entry struct {
	Symbol    string
	Value     ast.Node // defining node; nil until resolved
	Type      SymbolType
	ValueType ast.ValueType // meaningful for TypeValue
	Scope     Scope
	God       bool
}

// TypeName is the printable type: the value type for variables, the symbol type otherwise.
func (e *Entry) TypeName() string {
	if e.Type == TypeValue {
		return e.ValueType.String()
	}
	return e.Type.String()
}

// Key builds the composite "scope.symbol" key.
func Key(symbol string, scope Scope) string {
	return scope.Key() + "." + symbol
}

// Table is the mutable symbol table owned by the parser.
type Table struct {
	entries map[string]*Entry
}

func New() *Table {
	return &Table{entries: make(map[string]*Entry)}
}

// Insert adds a new entry. It fails if (scope, symbol) already exists, whatever the payload.
func (t *Table) Insert(symbol string, value ast.Node, typ SymbolType, scope Scope, god bool) (*Entry, error) {
	key := Key(symbol, scope)
	if _, ok := t.entries[key]; ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrDuplicateSymbol, symbol, scope)
	}
	e := &Entry{Symbol: symbol, Value: value, Type: typ, Scope: scope, God: god}
	if expr, ok := value.(ast.Expr); ok && typ == TypeValue {
		e.ValueType = expr.ValueType()
	}
	t.entries[key] = e
	return e, nil
}

// Get looks up (scope, symbol). It never fails.
func (t *Table) Get(symbol string, scope Scope) (*Entry, bool) {
	e, ok := t.entries[Key(symbol, scope)]
	return e, ok
}

// Update replaces the payload of an existing entry.
func (t *Table) Update(symbol string, value ast.Node, typ SymbolType, scope Scope, god bool) error {
	e, ok := t.entries[Key(symbol, scope)]
	if !ok {
		return fmt.Errorf("%w: %s in %s", ErrUndefinedSymbol, symbol, scope)
	}
	e.Value = value
	e.Type = typ
	e.God = god
	e.ValueType = ast.TypeUnknown
	if expr, ok := value.(ast.Expr); ok && typ == TypeValue {
		e.ValueType = expr.ValueType()
	}
	return nil
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns every entry ordered by key.
func (t *Table) Entries() []*Entry {
	keys := slices.Sorted(maps.Keys(t.entries))
	out := make([]*Entry, len(keys))
	for i, k := range keys {
		out[i] = t.entries[k]
	}
	return out
}

// ScopeEntries returns the entries of one scope ordered by symbol.
func (t *Table) ScopeEntries(scope Scope) []*Entry {
	var out []*Entry
	for _, e := range t.entries {
		if e.Scope == scope {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b *Entry) int {
		switch {
		case a.Symbol < b.Symbol:
			return -1
		case a.Symbol > b.Symbol:
			return 1
		}
		return 0
	})
	return out
}

// IsGod reports whether symbol is declared god in any scope.
func (t *Table) IsGod(symbol string) bool {
	for _, e := range t.entries {
		if e.God && e.Symbol == symbol {
			return true
		}
	}
	return false
}

// View exposes t read-only.
func (t *Table) View() View {
	return tableView{t: t}
}
