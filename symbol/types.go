package symbol

import (
	"strings"
	"unicode"
)

// resolveType prefixes an object type with the prefix of the parcel whose
// class it names, e.g. "Obj*" becomes "cfish_Obj*". Object types start with a
// capital letter, like every struct symbol, and other types pass through
// unchanged, so resolving a type twice changes nothing
func resolveType(parcel *Parcel, className, typ string) (string, error) {
	specifier := strings.TrimRight(typ, "*")
	if specifier == "" || !unicode.IsUpper(rune(specifier[0])) {
		return typ, nil
	}
	found := parcel.LookupStructSym(specifier)
	if found == nil {
		return "", newError(ErrUnknownType, className, "no class found for type '%s'", typ)
	}
	return found.Prefix() + typ, nil
}

// ResolveTypes resolves the object types of every variable, function and
// method the class declares against the classes visible from its parcel. It
// has to run before grow_tree, so that inherited and finalized methods carry
// the resolved types
func (c *Class) ResolveTypes() error {
	if err := c.checkMutable("resolve_types"); err != nil {
		return err
	}
	resolve := func(typ string) (string, error) {
		return resolveType(c.Parcel(), c.className, typ)
	}

	for _, vars := range [][]*Variable{c.memberVars, c.inertVars} {
		for _, variable := range vars {
			typ, err := resolve(variable.typ)
			if err != nil {
				return err
			}
			variable.typ = typ
		}
	}
	for _, function := range c.functions {
		if err := function.resolveTypes(resolve); err != nil {
			return err
		}
	}
	for _, method := range c.methods {
		if err := method.resolveTypes(resolve); err != nil {
			return err
		}
	}
	return nil
}

// ResolveTypes resolves the types of every registered class
func (r *Registry) ResolveTypes() error {
	for _, class := range r.classes {
		if err := class.ResolveTypes(); err != nil {
			return err
		}
	}
	return nil
}
