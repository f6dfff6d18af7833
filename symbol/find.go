package symbol

import (
	"strings"

	"golang.org/x/exp/slices"
)

type symbolic interface {
	MicroSym() string
	ClassName() string
}

// findSym returns the first symbol whose micro symbol matches sym, ignoring
// case, or the zero value if none was found
func findSym[S symbolic](syms []S, sym string) (S, bool) {
	var zero S
	if sym == "" {
		return zero, false
	}
	lower, err := dispatchSym(sym)
	if err != nil {
		// Nothing this long could have been declared
		return zero, false
	}
	ind := slices.IndexFunc(syms, func(s S) bool {
		return strings.ToLower(s.MicroSym()) == lower
	})
	if ind < 0 {
		return zero, false
	}
	return syms[ind], true
}

// freshSyms returns only the symbols declared in the named class
func freshSyms[S symbolic](syms []S, className string) []S {
	fresh := []S{}
	for _, sym := range syms {
		if sym.ClassName() == className {
			fresh = append(fresh, sym)
		}
	}
	return fresh
}

// Function searches the class's inert functions for the given symbol, and
// returns nil if none was found
func (c *Class) Function(sym string) *Function {
	function, _ := findSym(c.functions, sym)
	return function
}

// Method searches the class's methods for the given symbol, and returns nil if
// none was found
func (c *Class) Method(sym string) *Method {
	method, _ := findSym(c.methods, sym)
	return method
}

// FreshMethod is like Method, but only returns a method that was declared in
// this class
func (c *Class) FreshMethod(sym string) *Method {
	method := c.Method(sym)
	if method != nil && method.ClassName() == c.className {
		return method
	}
	return nil
}

// FreshMethods returns the methods declared in this class, leaving out the
// inherited ones
func (c *Class) FreshMethods() []*Method {
	return freshSyms(c.methods, c.className)
}

// FreshMemberVars returns the member variables declared in this class, leaving
// out the inherited ones
func (c *Class) FreshMemberVars() []*Variable {
	return freshSyms(c.memberVars, c.className)
}

// MemberVar searches the class's member variables by name
func (c *Class) MemberVar(name string) *Variable {
	variable, _ := findSym(c.memberVars, name)
	return variable
}

// Slot returns the position and entry of the method table slot for sym, or -1
// if the class has no such method
func (c *Class) Slot(sym string) (int, Slot) {
	lower, err := dispatchSym(sym)
	if err != nil {
		return -1, Slot{}
	}
	ind := slices.IndexFunc(c.slots, func(slot Slot) bool {
		return slot.Method.MicroSym() == lower
	})
	if ind < 0 {
		return -1, Slot{}
	}
	return ind, c.slots[ind]
}

// FindNovelMethod walks up from the class through its ancestors, and returns
// the method for sym in the class that first declared it
func (c *Class) FindNovelMethod(sym string) (*Method, error) {
	if !c.treeGrown {
		return nil, newError(ErrNotGrown, c.className, "can't call find_novel_method before grow_tree")
	}
	for ancestor := c; ancestor != nil; ancestor = ancestor.Parent() {
		if _, slot := ancestor.Slot(sym); slot.Method != nil && slot.Kind == SlotNovel {
			return slot.Method, nil
		}
	}
	return nil, nil
}
