package symbol

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Exposure is the visibility of a symbol outside of its class and parcel
type Exposure uint8

const (
	ExposureParcel Exposure = iota
	ExposurePrivate
	ExposurePublic
	ExposureLocal
)

func (e Exposure) String() string {
	switch e {
	case ExposurePrivate:
		return "private"
	case ExposurePublic:
		return "public"
	case ExposureLocal:
		return "local"
	}
	return "parcel"
}

// ParseExposure converts the name of an exposure level back into its value.
// An empty string is the default, parcel exposure
func ParseExposure(name string) (Exposure, error) {
	switch name {
	case "", "parcel":
		return ExposureParcel, nil
	case "private":
		return ExposurePrivate, nil
	case "public":
		return ExposurePublic, nil
	case "local":
		return ExposureLocal, nil
	}
	return ExposureParcel, newError(ErrInvalidName, "", "invalid exposure '%s'", name)
}

// Owner identifies the class a member symbol was declared in
type Owner struct {
	Parcel    *Parcel
	ClassName string
	ClassNick string
}

// Symbol is the part shared by classes, functions, methods and variables
type Symbol struct {
	parcel    *Parcel
	exposure  Exposure
	className string
	classNick string
	microSym  string
}

func newSymbol(owner Owner, exposure Exposure, microSym string) (Symbol, error) {
	if owner.Parcel == nil {
		return Symbol{}, newError(ErrInvalidName, owner.ClassName, "symbol '%s' has no parcel", microSym)
	}
	if !validClassName(owner.ClassName) {
		return Symbol{}, newError(ErrInvalidName, owner.ClassName, "invalid class name")
	}
	if owner.ClassNick == "" {
		owner.ClassNick = StructSym(owner.ClassName)
	}
	if !isIdentifier(owner.ClassNick) {
		return Symbol{}, newError(ErrInvalidName, owner.ClassName, "invalid class nickname '%s'", owner.ClassNick)
	}
	if !isIdentifier(microSym) {
		return Symbol{}, newError(ErrInvalidName, owner.ClassName, "invalid symbol '%s'", microSym)
	}
	return Symbol{
		parcel:    owner.Parcel,
		exposure:  exposure,
		className: owner.ClassName,
		classNick: owner.ClassNick,
		microSym:  microSym,
	}, nil
}

// Parcel returns the parcel the symbol belongs to
func (s Symbol) Parcel() *Parcel {
	return s.parcel
}

func (s Symbol) Exposure() Exposure {
	return s.exposure
}

// ClassName returns the name of the class the symbol was declared in
func (s Symbol) ClassName() string {
	return s.className
}

func (s Symbol) ClassNick() string {
	return s.classNick
}

func (s Symbol) MicroSym() string {
	return s.microSym
}

// ShortSym returns the symbol qualified by its class nickname, e.g. "Dog_speak"
func (s Symbol) ShortSym() string {
	return s.classNick + "_" + s.microSym
}

// FullSym returns ShortSym with the parcel prefix, e.g. "zoo_Dog_speak"
func (s Symbol) FullSym() string {
	return s.parcel.Prefix() + s.ShortSym()
}

// Param is a single function or method parameter
type Param struct {
	Name string
	Type string
}

// Variable is a member or inert variable
type Variable struct {
	Symbol
	typ string
}

// NewVariable creates a variable declared in the owner's class
func NewVariable(owner Owner, exposure Exposure, name, typ string) (*Variable, error) {
	sym, err := newSymbol(owner, exposure, name)
	if err != nil {
		return nil, err
	}
	return &Variable{Symbol: sym, typ: typ}, nil
}

// Type returns the declared type of the variable
func (v *Variable) Type() string {
	return v.typ
}

func (v Variable) String() string {
	return fmt.Sprintf("Name: %s Type: %s", v.microSym, v.typ)
}

// Function is an inert function, which is never inherited
type Function struct {
	Symbol
	returnType string
	params     []Param
}

// NewFunction creates an inert function declared in the owner's class
func NewFunction(owner Owner, exposure Exposure, name, returnType string, params []Param) (*Function, error) {
	sym, err := newSymbol(owner, exposure, name)
	if err != nil {
		return nil, err
	}
	if _, err := dispatchSym(name); err != nil {
		return nil, err
	}
	return &Function{Symbol: sym, returnType: returnType, params: slices.Clone(params)}, nil
}

func (f *Function) ReturnType() string {
	return f.returnType
}

func (f *Function) Params() []Param {
	return f.params
}

// ParamTypes returns a list of the types of all the parameters
func (f *Function) ParamTypes() []string {
	types := make([]string, len(f.params))
	for ind, param := range f.params {
		types[ind] = param.Type
	}
	return types
}

// resolveTypes rewrites the return and parameter types
func (f *Function) resolveTypes(resolve func(string) (string, error)) error {
	returnType, err := resolve(f.returnType)
	if err != nil {
		return err
	}
	f.returnType = returnType
	for ind := range f.params {
		if f.params[ind].Type, err = resolve(f.params[ind].Type); err != nil {
			return err
		}
	}
	return nil
}

func (f Function) String() string {
	return fmt.Sprintf("Name: %s Type: %s", f.microSym, f.returnType)
}

// MethodSpec describes a method declaration
type MethodSpec struct {
	Exposure   Exposure
	MacroSym   string
	ReturnType string
	Params     []Param
	Abstract   bool
	Final      bool
}

// Method is a dynamically dispatched function, inherited and possibly
// overridden by subclasses
type Method struct {
	Function
	// The method's name as declared, the micro symbol is its lower-case form
	macroSym string
	abstract bool
	final    bool
}

// NewMethod creates a method declared in the owner's class
func NewMethod(owner Owner, spec MethodSpec) (*Method, error) {
	microSym, err := dispatchSym(spec.MacroSym)
	if err != nil {
		return nil, err
	}
	if !isIdentifier(spec.MacroSym) {
		return nil, newError(ErrInvalidName, owner.ClassName, "invalid method name '%s'", spec.MacroSym)
	}
	sym, err := newSymbol(owner, spec.Exposure, microSym)
	if err != nil {
		return nil, err
	}
	return &Method{
		Function: Function{Symbol: sym, returnType: spec.ReturnType, params: slices.Clone(spec.Params)},
		macroSym: spec.MacroSym,
		abstract: spec.Abstract,
		final:    spec.Final,
	}, nil
}

// MacroSym returns the method name as it was declared
func (m *Method) MacroSym() string {
	return m.macroSym
}

func (m *Method) Abstract() bool {
	return m.abstract
}

func (m *Method) Final() bool {
	return m.final
}

// Finalize returns a final copy of the method. The receiver is not modified,
// since it may be shared with the classes it was inherited from
func (m *Method) Finalize() *Method {
	finalized := *m
	finalized.params = slices.Clone(m.params)
	finalized.final = true
	return &finalized
}

// Compatible reports whether the method could override other, i.e. both
// have the same return type and parameter types
func (m *Method) Compatible(other *Method) bool {
	return m.returnType == other.returnType &&
		slices.Equal(m.ParamTypes(), other.ParamTypes())
}

// checkOverride validates that the method may take the place of orig in a
// subclass's method table
func (m *Method) checkOverride(orig *Method) error {
	if orig.final {
		return newError(ErrInvalidOverride, m.className,
			"attempt to override final method '%s' from %s", orig.macroSym, orig.className)
	}
	if !m.Compatible(orig) {
		return newError(ErrInvalidOverride, m.className,
			"non-matching signatures for method '%s' in %s and %s", m.macroSym, m.className, orig.className)
	}
	return nil
}

// ShortMethodSym returns the method name qualified by a class nickname
func (m *Method) ShortMethodSym(classNick string) string {
	return classNick + "_" + m.macroSym
}

// FullMethodSym returns the name of the method's dispatch symbol when it is
// invoked on the given class
func (m *Method) FullMethodSym(invoker *Class) string {
	return invoker.Parcel().Prefix() + m.ShortMethodSym(invoker.Nickname())
}

// FullOffsetSym returns the name of the variable holding the method's vtable
// offset in the given class
func (m *Method) FullOffsetSym(invoker *Class) string {
	return m.FullMethodSym(invoker) + "_OFFSET"
}

// FullTypedef returns the name of the method's function pointer type
func (m *Method) FullTypedef(invoker *Class) string {
	return m.FullMethodSym(invoker) + "_t"
}

// ImpFunc returns the name of the function implementing the method in the
// class that declared it
func (m *Method) ImpFunc(klass *Class) string {
	return klass.Parcel().Prefix() + klass.Nickname() + "_" + m.macroSym + "_IMP"
}

func (m Method) String() string {
	var modifiers []string
	if m.abstract {
		modifiers = append(modifiers, "abstract")
	}
	if m.final {
		modifiers = append(modifiers, "final")
	}
	if len(modifiers) == 0 {
		return fmt.Sprintf("%s.%s", m.className, m.macroSym)
	}
	return fmt.Sprintf("%s.%s (%s)", m.className, m.macroSym, strings.Join(modifiers, ", "))
}

// SlotKind tells how a method came to occupy a slot in a class's method table
type SlotKind uint8

const (
	// SlotNovel is a method first declared in the class
	SlotNovel SlotKind = iota
	// SlotInherited is a parent's method carried through unchanged
	SlotInherited
	// SlotOverridden is the class's own implementation of a parent's method
	SlotOverridden
)

func (k SlotKind) String() string {
	switch k {
	case SlotInherited:
		return "inherited"
	case SlotOverridden:
		return "overridden"
	}
	return "novel"
}

// Slot is a single entry in a class's method table
type Slot struct {
	Kind SlotKind
	// The method that is dispatched to through this slot
	Method *Method
	// For SlotOverridden, the parent method that was replaced
	Overrides *Method
}
