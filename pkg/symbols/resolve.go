package symbols

// ResolveChain looks up a root-relative path of keys. It fails if any
// segment is missing.
func (t *Table) ResolveChain(path []string) (*Symbol, bool) {
	return t.walk(RootID, path)
}

// ResolveIndices looks up a root-relative path of child positions.
func (t *Table) ResolveIndices(path []int) (*Symbol, bool) {
	cur := t.Root()
	for _, position := range path {
		next, ok := t.ChildAt(cur.ID, position)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Resolve finds name starting at scope start. At each level it checks the
// direct children (including children of anonymous style blocks), then the
// targets of use statements, and then moves to the parent scope.
func (t *Table) Resolve(start ID, name string) (*Symbol, bool) {
	for scope := t.Get(start); scope != nil; scope, _ = t.Parent(scope) {
		if sym, ok := t.local(scope.ID, name); ok {
			return sym, true
		}
		if sym, ok := t.imported(scope.ID, name); ok {
			return sym, true
		}
	}
	return nil, false
}

// Visible lists the symbols reachable by name from scope, in resolution
// order. A name shadowed by an earlier match is listed once.
func (t *Table) Visible(scope ID) []*Symbol {
	seen := make(map[string]bool)
	var out []*Symbol
	add := func(sym *Symbol) {
		if sym.IsIndexed() || seen[sym.Key] {
			return
		}
		seen[sym.Key] = true
		out = append(out, sym)
	}

	for cur := t.Get(scope); cur != nil; cur, _ = t.Parent(cur) {
		for _, child := range t.Children(cur.ID) {
			add(child)
			if child.IsAnonymousStyle() {
				for _, nested := range t.Children(child.ID) {
					add(nested)
				}
			}
		}
		for _, target := range t.useTargets(cur.ID) {
			add(target)
			for _, nested := range t.Children(target.ID) {
				add(nested)
			}
		}
	}
	return out
}

// UseTarget returns the symbol a use symbol points at.
func (t *Table) UseTarget(use *Symbol) (*Symbol, bool) {
	kind, ok := use.Kind.(UseKind)
	if !ok {
		return nil, false
	}
	return t.ResolveChain(kind.Path)
}

func (t *Table) local(scope ID, name string) (*Symbol, bool) {
	if sym, ok := t.Child(scope, name); ok {
		return sym, true
	}
	for _, child := range t.Children(scope) {
		if !child.IsAnonymousStyle() {
			continue
		}
		if sym, ok := t.Child(child.ID, name); ok {
			return sym, true
		}
	}
	return nil, false
}

// imported checks use targets of scope. Lookups through an import do not
// follow the target's own imports or parents, so import cycles terminate.
func (t *Table) imported(scope ID, name string) (*Symbol, bool) {
	for _, target := range t.useTargets(scope) {
		if target.Key == name {
			return target, true
		}
		if sym, ok := t.local(target.ID, name); ok {
			return sym, true
		}
	}
	return nil, false
}

func (t *Table) useTargets(scope ID) []*Symbol {
	var out []*Symbol
	for _, child := range t.Children(scope) {
		if target, ok := t.UseTarget(child); ok {
			out = append(out, target)
		}
	}
	return out
}

func (t *Table) walk(start ID, path []string) (*Symbol, bool) {
	cur := t.Get(start)
	if cur == nil {
		return nil, false
	}
	for _, key := range path {
		next, ok := t.Child(cur.ID, key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
