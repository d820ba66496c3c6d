package lispy

import (
	"slices"
	"sort"
	"strings"

	"github.com/zephyrtronium/contains"
)

// An Env is an environment mapping names to values. Lookups consult the
// environment's own bindings, then its parent chain, then its fallback
// environments in order, then the builtin table, and finally the host
// intrinsic table.
//
// Envs are not safe for concurrent use. Every Env created from the same root
// shares lookup scratch space.
type Env struct {
	vars      map[string]Value
	parent    *Env
	fallbacks []*Env
	sc        *scope
	// plain is true when neither this environment nor any of its parents has
	// fallbacks.
	plain bool
	// anc is a closure known to be among the parents.
	anc *Env
}

// scope is state shared by a tree of environments.
type scope struct {
	// names counts the environments in the tree binding each name. A lookup
	// of a name with no count skips straight to the builtin tables.
	names map[string]int
	// owner holds the environment binding each name with a count of one.
	owner map[string]*Env
	// linked holds the scopes of foreign environments joined into this tree
	// by NewCompoundEnv.
	linked []*scope

	// set holds visited environments during a search. Once a search visits
	// more than spillVisits environments, the rest go into spill instead.
	set   contains.Set
	n     int
	spill map[uintptr]struct{}
	stack []*Env
}

const spillVisits = 64

func (sc *scope) bound(name string) bool {
	if sc.names[name] != 0 {
		return true
	}
	if len(sc.linked) == 0 {
		return false
	}
	seen := []*scope{sc}
	todo := append([]*scope(nil), sc.linked...)
	for len(todo) > 0 {
		o := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if slices.Contains(seen, o) {
			continue
		}
		seen = append(seen, o)
		if o.names[name] != 0 {
			return true
		}
		todo = append(todo, o.linked...)
	}
	return false
}

// visit marks an environment visited for the current search, reporting
// whether it was new.
func (sc *scope) visit(e *Env) bool {
	id := e.UniqueID()
	if sc.n < spillVisits {
		if !sc.set.Add(id) {
			return false
		}
		sc.n++
		return true
	}
	if sc.set.Contains(id) {
		return false
	}
	if sc.spill == nil {
		sc.spill = make(map[uintptr]struct{})
	}
	if _, ok := sc.spill[id]; ok {
		return false
	}
	sc.spill[id] = struct{}{}
	return true
}

func (sc *scope) reset() {
	sc.set.Reset()
	sc.n = 0
	clear(sc.spill)
}

func (sc *scope) link(o *scope) {
	if o == sc {
		return
	}
	for _, l := range sc.linked {
		if l == o {
			return
		}
	}
	sc.linked = append(sc.linked, o)
}

// NewEnv creates an environment whose parent is parent, which may be nil.
func NewEnv(parent *Env) *Env {
	e := &Env{vars: make(map[string]Value), parent: parent, plain: true}
	if parent != nil {
		e.sc = parent.sc
		e.plain = parent.plain
	} else {
		e.sc = &scope{names: make(map[string]int), owner: make(map[string]*Env)}
	}
	return e
}

// NewCompoundEnv creates an environment which looks up names in its own
// bindings and then in each of envs in order. Bindings always go into the
// new environment's own table.
func NewCompoundEnv(envs ...*Env) *Env {
	if len(envs) == 0 {
		return NewEnv(nil)
	}
	e := NewEnv(envs[0])
	for _, f := range envs[1:] {
		if f == nil {
			continue
		}
		e.fallbacks = append(e.fallbacks, f)
		e.sc.link(f.sc)
		e.plain = false
	}
	return e
}

// callEnv creates the environment for a call: fresh bindings, then the
// caller's environment, then the callee's closure. A closure which is already
// an ancestor of the caller is searched through the caller anyway, so it is
// not added as a fallback and the call env stays a plain parent chain.
func callEnv(caller, closure *Env, size int) *Env {
	e := &Env{vars: make(map[string]Value, size), parent: caller, sc: caller.sc, plain: caller.plain}
	switch {
	case closure == nil:
	case caller.anc == closure || caller.descends(closure):
		e.anc = closure
	default:
		e.fallbacks = []*Env{closure}
		e.sc.link(closure.sc)
		e.plain = false
	}
	return e
}

// Bind sets a name in this environment's own table.
func (e *Env) Bind(name string, value Value) {
	if _, ok := e.vars[name]; !ok {
		sc := e.sc
		sc.names[name]++
		if sc.names[name] == 1 {
			sc.owner[name] = e
		} else {
			delete(sc.owner, name)
		}
	}
	e.vars[name] = value
}

// Set sets a name in the nearest environment which already binds it, or in
// this environment if none does.
func (e *Env) Set(name string, value Value) {
	if o := e.find(name); o != nil {
		o.vars[name] = value
		return
	}
	e.Bind(name, value)
}

// Local returns the value bound to a name in this environment's own table.
func (e *Env) Local(name string) (Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Get looks up a name through the whole lookup chain.
func (e *Env) Get(name string) (Value, bool) {
	if o := e.find(name); o != nil {
		return o.vars[name], true
	}
	if b, ok := builtins[name]; ok {
		return b, true
	}
	if v, ok := intrinsics[name]; ok {
		return v, true
	}
	return nil, false
}

// Lookup looks up a name through the whole lookup chain. If the name is not
// found, the error is a NameNotFound.
func (e *Env) Lookup(name string) (Value, error) {
	if v, ok := e.Get(name); ok {
		return v, nil
	}
	return nil, nameNotFound(name)
}

// Contains reports whether a name resolves anywhere in the lookup chain.
func (e *Env) Contains(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// find returns the first environment in the graph rooted at e which binds
// name, searching depth first: own bindings, then the parent's graph, then
// each fallback's graph.
func (e *Env) find(name string) *Env {
	if !e.sc.bound(name) {
		return nil
	}
	// Plain parent chains need no bookkeeping. Parents share their child's
	// scope, so a name with an owner is found by identity alone.
	owner := e.sc.owner[name]
	if owner != nil && owner.parent == nil && e.plain {
		// Every plain chain in a scope ends at its one root.
		return owner
	}
	for len(e.fallbacks) == 0 {
		if owner != nil {
			if e == owner {
				return e
			}
		} else if _, ok := e.vars[name]; ok {
			return e
		}
		if e.parent == nil {
			return nil
		}
		e = e.parent
	}
	sc := e.sc
	sc.reset()
	sc.stack = append(sc.stack[:0], e)
	for len(sc.stack) > 0 {
		cur := sc.stack[len(sc.stack)-1]
		sc.stack = sc.stack[:len(sc.stack)-1]
		if !sc.visit(cur) {
			continue
		}
		if _, ok := cur.vars[name]; ok {
			sc.stack = sc.stack[:0]
			return cur
		}
		// Push in reverse so the parent comes off first.
		for i := len(cur.fallbacks) - 1; i >= 0; i-- {
			sc.stack = append(sc.stack, cur.fallbacks[i])
		}
		if cur.parent != nil {
			sc.stack = append(sc.stack, cur.parent)
		}
	}
	return nil
}

// descends reports whether o is e or one of its parents.
func (e *Env) descends(o *Env) bool {
	for ; e != nil; e = e.parent {
		if e == o {
			return true
		}
	}
	return false
}

// Parent returns the environment's parent, or nil.
func (e *Env) Parent() *Env {
	return e.parent
}

// Names returns the names bound in this environment's own table, sorted.
func (e *Env) Names() []string {
	r := make([]string, 0, len(e.vars))
	for k := range e.vars {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// describe renders the environment's own bindings, truncating long values
// and eliding bindings past max.
func (e *Env) describe(max int) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range e.Names() {
		if i > 0 {
			b.WriteString(", ")
		}
		if i == max {
			b.WriteString("...")
			break
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(truncate(ShortRepr(e.vars[k]), 24))
	}
	b.WriteByte('}')
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
