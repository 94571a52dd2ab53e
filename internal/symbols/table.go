package symbols

// Table is a case-sensitive multimap from name to symbols, scoped to one
// AST node that opens a scope (script root, state, function, event
// handler, compound statement). Define accepts a duplicate name of any
// kind; the resolver diagnoses duplicate labels, and the optimizer's
// final validation diagnoses duplicate globals.
//
// Symbols are kept in an explicit ordered slice per name, and an
// additional ordered slice of every symbol ever defined directly in
// this table, because Go map iteration order is intentionally
// randomized and mangling (and anything else that walks
// all symbols) needs declaration order to stay deterministic.
type Table struct {
	Parent *Table

	byName map[string][]*Symbol
	all    []*Symbol

	// descendants lets the root table walk every symbol in the whole
	// tree for reference accounting and mangling, without needing an
	// AST walk.
	descendants []*Table
}

// NewTable creates an empty table, optionally recording it as a
// descendant of parent so a later whole-tree walk from the root can
// find it.
func NewTable(parent *Table) *Table {
	t := &Table{Parent: parent, byName: make(map[string][]*Symbol)}
	if parent != nil {
		parent.registerDescendant(t)
	}
	return t
}

func (t *Table) registerDescendant(child *Table) {
	t.descendants = append(t.descendants, child)
}

// Define adds sym to this table's own scope.
func (t *Table) Define(sym *Symbol) {
	t.byName[sym.Name] = append(t.byName[sym.Name], sym)
	t.all = append(t.all, sym)
}

// LookupLocal finds a symbol declared directly in this table (not
// ancestors), optionally filtered by kind. anyKind=true ignores kind
// and matches any kind. Returns the most recently defined match, matching
// the original's "last definition wins" redeclaration behavior.
func (t *Table) LookupLocal(name string, kind Kind, anyKind bool) *Symbol {
	syms := t.byName[name]
	for i := len(syms) - 1; i >= 0; i-- {
		if anyKind || syms[i].Kind == kind {
			return syms[i]
		}
	}
	return nil
}

// Lookup walks this table, then its ancestors, consulting each
// scope-opening table's own definitions.
func (t *Table) Lookup(name string, kind Kind, anyKind bool) *Symbol {
	for tab := t; tab != nil; tab = tab.Parent {
		if sym := tab.LookupLocal(name, kind, anyKind); sym != nil {
			return sym
		}
	}
	return nil
}

// All returns every symbol defined directly in this table, in
// declaration order.
func (t *Table) All() []*Symbol {
	return t.all
}

// Root walks up to the outermost ancestor table (the script root,
// holding builtins).
func (t *Table) Root() *Table {
	r := t
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

// Walk calls fn for every symbol in this table and, if this is the root
// table (or any table with registered descendants), every descendant
// table too — used by reference-counting and mangling, which need to
// see the whole tree's symbols regardless of where in the AST they were
// declared.
func (t *Table) Walk(fn func(*Symbol)) {
	for _, s := range t.all {
		fn(s)
	}
	for _, d := range t.descendants {
		d.Walk(fn)
	}
}

// SetMangledNames assigns short, alphabet-encoded names to every
// non-builtin variable/function symbol reachable from this table, in
// declaration order, guaranteeing no collision with a kept (unmangled)
// name. State, event and label symbols keep their names. Call this only
// on the root table after pruning.
func (t *Table) SetMangledNames() {
	used := make(map[string]bool)
	t.Walk(func(s *Symbol) {
		if s.MangledName == "" {
			used[s.Name] = true
		}
	})

	counter := 0
	next := func() string {
		for {
			name := mangleIndex(counter)
			counter++
			if !used[name] {
				return name
			}
		}
	}

	t.Walk(func(s *Symbol) {
		if s.SubKind == BUILTIN {
			return
		}
		switch s.Kind {
		case VARIABLE, FUNCTION:
			s.MangledName = next()
		}
	})
}

// mangleIndex renders n as a base-26 lowercase-letter identifier:
// 0->"a", 25->"z", 26->"aa".
func mangleIndex(n int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	if n < 26 {
		return string(alphabet[n])
	}
	return mangleIndex(n/26-1) + string(alphabet[n%26])
}
