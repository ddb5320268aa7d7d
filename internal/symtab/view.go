package symtab

// View is the read-only access code generation gets to the table.
type View interface {
	Get(symbol string, scope Scope) (Entry, bool)
	ScopeEntries(scope Scope) []Entry
	Entries() []Entry
	IsGod(symbol string) bool
	Len() int
}

type tableView struct {
	t *Table
}

// Get returns a copy so callers cannot mutate the table.
func (v tableView) Get(symbol string, scope Scope) (Entry, bool) {
	e, ok := v.t.Get(symbol, scope)
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

func (v tableView) ScopeEntries(scope Scope) []Entry {
	return copyEntries(v.t.ScopeEntries(scope))
}

func (v tableView) Entries() []Entry {
	return copyEntries(v.t.Entries())
}

func (v tableView) IsGod(symbol string) bool {
	return v.t.IsGod(symbol)
}

func (v tableView) Len() int {
	return v.t.Len()
}

func copyEntries(in []*Entry) []Entry {
	out := make([]Entry, len(in))
	for i, e := range in {
		out[i] = *e
	}
	return out
}
