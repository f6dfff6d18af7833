package symbol

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// ClassID is the index of a class within its registry
type ClassID int

// NoClass is the parent of a class that has not been linked into a tree
const NoClass ClassID = -1

// ClassSpec describes a class declaration, as produced by a parser
type ClassSpec struct {
	// Defaults to the registry's default parcel
	Parcel   *Parcel
	Exposure Exposure
	// Dot-separated full name, e.g. "zoo.animals.Dog"
	Name string
	// Defaults to the last component of Name
	Nickname string
	// Defaults to "class"
	MicroSym string
	Doc      string
	File     *FileSpec
	// Defaults to the registry's root class, unless the class is inert or is
	// itself the root class
	ParentName string
	Final      bool
	Inert      bool
}

// Class represents a single class declaration and its place in the hierarchy
type Class struct {
	Symbol
	names Names

	reg      *Registry
	id       ClassID
	parent   ClassID
	children []ClassID

	doc        string
	file       *FileSpec
	parentName string
	final      bool
	inert      bool
	treeGrown  bool
	// Set once the class has been added as some other class's child
	linked bool

	functions  []*Function
	methods    []*Method
	slots      []Slot
	memberVars []*Variable
	inertVars  []*Variable
}

func (c *Class) String() string {
	return fmt.Sprintf("Class: %s", c.className)
}

// Name returns the full name of the class
func (c *Class) Name() string {
	return c.className
}

// Nickname returns the class's short name
func (c *Class) Nickname() string {
	return c.classNick
}

// ID returns the class's index in its registry
func (c *Class) ID() ClassID {
	return c.id
}

// Owner returns the owner used to declare members of this class
func (c *Class) Owner() Owner {
	return Owner{Parcel: c.parcel, ClassName: c.className, ClassNick: c.classNick}
}

// Names returns every naming symbol derived for the class
func (c *Class) Names() Names {
	return c.names
}

func (c *Class) StructSym() string { return c.names.StructSym }
func (c *Class) FullStructSym() string { return c.names.FullStructSym }
func (c *Class) ShortIvarsStruct() string { return c.names.IvarsStruct }
func (c *Class) FullIvarsStruct() string { return c.names.FullIvarsStruct }
func (c *Class) ShortIvarsFunc() string { return c.names.IvarsFunc }
func (c *Class) FullIvarsFunc() string { return c.names.FullIvarsFunc }
func (c *Class) FullIvarsOffset() string { return c.names.FullIvarsOffset }
func (c *Class) ShortVtableVar() string { return c.names.ShortVtableVar }
func (c *Class) FullVtableVar() string { return c.names.FullVtableVar }
func (c *Class) PrivacySymbol() string { return c.names.PrivacySymbol }
func (c *Class) IncludeH() string { return c.names.IncludeH }

func (c *Class) Doc() string {
	return c.doc
}

// FileSpec returns where the class was declared, or nil
func (c *Class) FileSpec() *FileSpec {
	return c.file
}

// PathPart returns the relative path of the declaring file, or an empty string
func (c *Class) PathPart() string {
	if c.file == nil {
		return ""
	}
	return c.file.PathPart
}

// Included reports whether the class was read from an include directory
func (c *Class) Included() bool {
	return c.file != nil && c.file.Included
}

// ParentName returns the declared name of the parent class, which is empty for
// root and inert classes
func (c *Class) ParentName() string {
	return c.parentName
}

func (c *Class) Final() bool {
	return c.final
}

func (c *Class) Inert() bool {
	return c.inert
}

// TreeGrown reports whether grow_tree has frozen the class
func (c *Class) TreeGrown() bool {
	return c.treeGrown
}

// Parent returns the parent class, or nil before ancestry has been
// established or after the registry was cleared
func (c *Class) Parent() *Class {
	if c.parent == NoClass || c.reg == nil {
		return nil
	}
	return c.reg.classes[c.parent]
}

// Children returns the child classes, in the order they were added
func (c *Class) Children() []*Class {
	if c.reg == nil {
		return nil
	}
	children := make([]*Class, len(c.children))
	for ind, id := range c.children {
		children[ind] = c.reg.classes[id]
	}
	return children
}

// Functions returns the inert functions, in declaration order
func (c *Class) Functions() []*Function {
	return c.functions
}

// Methods returns the declared methods before grow_tree, and the full method
// table in slot order afterwards
func (c *Class) Methods() []*Method {
	return c.methods
}

// MethodTable returns the resolved slots, which are only available after
// grow_tree
func (c *Class) MethodTable() []Slot {
	return c.slots
}

// MemberVars returns the member variables; after grow_tree this includes
// every ancestor's member variables first
func (c *Class) MemberVars() []*Variable {
	return c.memberVars
}

// InertVars returns the class-level variables, in declaration order
func (c *Class) InertVars() []*Variable {
	return c.inertVars
}

func (c *Class) checkMutable(op string) error {
	if c.treeGrown {
		return newError(ErrPrematureMutation, c.className, "can't call %s after grow_tree", op)
	}
	return nil
}

// AddChild declares another class as inheriting from this one
func (c *Class) AddChild(child *Class) error {
	if err := c.checkMutable("add_child"); err != nil {
		return err
	}
	if c.inert {
		return newError(ErrInvalidHierarchy, c.className, "can't inherit from inert class")
	}
	if child.inert {
		return newError(ErrInvalidHierarchy, child.className, "inert class can't inherit")
	}
	if child.reg != c.reg {
		return newError(ErrInvalidHierarchy, child.className, "class belongs to another registry")
	}
	if child == c || child.linked || slices.Contains(c.children, child.id) {
		return newError(ErrInvalidHierarchy, child.className, "class already linked to a parent")
	}
	if !child.parcel.HasPrereq(c.parcel) {
		return newError(ErrInvalidHierarchy, child.className,
			"inherits from '%s', but parcel '%s' is not a prerequisite of '%s'",
			c.className, c.parcel.Name(), child.parcel.Name())
	}
	c.children = append(c.children, child.id)
	child.linked = true
	child.parcel.AddInheritedParcel(c.parcel)
	return nil
}

// AddFunction adds an inert function
func (c *Class) AddFunction(function *Function) error {
	if err := c.checkMutable("add_function"); err != nil {
		return err
	}
	c.functions = append(c.functions, function)
	return nil
}

// AddMethod adds a method, the order of addition determines the method's slot
func (c *Class) AddMethod(method *Method) error {
	if err := c.checkMutable("add_method"); err != nil {
		return err
	}
	if c.inert {
		return newError(ErrInvalidHierarchy, c.className, "can't add_method to an inert class")
	}
	c.methods = append(c.methods, method)
	return nil
}

// AddMemberVar adds an instance variable
func (c *Class) AddMemberVar(variable *Variable) error {
	if err := c.checkMutable("add_member_var"); err != nil {
		return err
	}
	c.memberVars = append(c.memberVars, variable)
	return nil
}

// AddInertVar adds a class-level variable
func (c *Class) AddInertVar(variable *Variable) error {
	if err := c.checkMutable("add_inert_var"); err != nil {
		return err
	}
	c.inertVars = append(c.inertVars, variable)
	return nil
}
