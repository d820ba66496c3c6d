package lispy

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// A Module is a named collection of host values which programs can bind with
// pyimport and pyimport_from.
type Module struct {
	// Name is the module's full dotted path.
	Name string
	// Members maps member names to values.
	Members map[string]Value
}

// NewModule creates a module with the given members. Fns in members are
// wrapped as builtins named after their member.
func NewModule(name string, members map[string]any) *Module {
	m := &Module{Name: name, Members: make(map[string]Value, len(members))}
	for k, v := range members {
		switch f := v.(type) {
		case Fn:
			v = NewBuiltin(name+"."+k, f)
		case func(*Interpreter, *Env, Value, []Value) (Value, error):
			v = NewBuiltin(name+"."+k, f)
		}
		m.Members[k] = v
	}
	return m
}

// Member returns a member of the module.
func (m *Module) Member(name string) (Value, bool) {
	v, ok := m.Members[name]
	return v, ok
}

// MemberNames returns the names of the module's members, sorted.
func (m *Module) MemberNames() []string {
	r := make([]string, 0, len(m.Members))
	for k := range m.Members {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

func (m *Module) String() string {
	return "<module " + m.Name + ">"
}

// A HasMembers value exposes named members to dotted access.
type HasMembers interface {
	Member(name string) (Value, bool)
}

var (
	// modules holds registered host modules by full path.
	modules = make(map[string]*Module)
	// modulesMu guards modules and haveInterpreter.
	modulesMu sync.Mutex
	// haveInterpreter becomes true once NewInterpreter has been called.
	haveInterpreter bool
)

// RegisterModule registers a host module. Modules whose names contain dots
// are submodules; pyimport_from finds them before members of their parent.
// RegisterModule should be called from within init funcs. Panics if
// NewInterpreter has been called or a module with the same name exists.
func RegisterModule(m *Module) {
	modulesMu.Lock()
	defer modulesMu.Unlock()
	if haveInterpreter {
		panic("lispy: RegisterModule must be called before any Interpreter is created")
	}
	if _, ok := modules[m.Name]; ok {
		panic(fmt.Sprintf("lispy: module %s registered twice", m.Name))
	}
	modules[m.Name] = m
}

// Modules returns the names of all registered modules, sorted.
func Modules() []string {
	modulesMu.Lock()
	defer modulesMu.Unlock()
	r := make([]string, 0, len(modules))
	for k := range modules {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// importModule finds a registered module by path.
func importModule(path string) (*Module, error) {
	modulesMu.Lock()
	m, ok := modules[path]
	modulesMu.Unlock()
	if !ok {
		return nil, &Error{Kind: HostErrorKind, Msg: fmt.Sprintf("no module named %s", path), Name: path}
	}
	return m, nil
}

// importFrom finds a submodule of a module, or failing that, a member.
func importFrom(path, member string) (Value, error) {
	if m, err := importModule(path + "." + member); err == nil {
		return m, nil
	}
	m, err := importModule(path)
	if err != nil {
		return nil, err
	}
	if v, ok := m.Member(member); ok {
		return v, nil
	}
	return nil, &Error{Kind: HostErrorKind, Msg: fmt.Sprintf("cannot import name %s from %s", member, path), Name: member}
}

// linkSubmodules attaches registered submodules as members of their parents so
// that dotted access through a parent finds them.
func linkSubmodules() {
	modulesMu.Lock()
	defer modulesMu.Unlock()
	for name, m := range modules {
		i := strings.LastIndexByte(name, '.')
		if i < 0 {
			continue
		}
		if p, ok := modules[name[:i]]; ok {
			if _, exists := p.Members[name[i+1:]]; !exists {
				p.Members[name[i+1:]] = m
			}
		}
	}
}
