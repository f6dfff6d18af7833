package symbol

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// DefaultRootClass is the class every other non-inert class inherits from when
// it doesn't name a parent
const DefaultRootClass = "clownfish.Obj"

// A Registry owns every class and parcel created during a single compilation
// run. Classes refer to each other by their index in the registry
type Registry struct {
	rootClassName string
	defaultParcel *Parcel

	parcels []*Parcel
	classes []*Class
	// Full struct symbol to index in classes
	byKey map[string]ClassID
}

// NewRegistry creates an empty registry. An empty root class name selects
// DefaultRootClass
func NewRegistry(rootClassName string) *Registry {
	if rootClassName == "" {
		rootClassName = DefaultRootClass
	}
	return &Registry{
		rootClassName: rootClassName,
		defaultParcel: newParcel("DEFAULT", "", false),
		byKey:         make(map[string]ClassID),
	}
}

func (r *Registry) String() string {
	return fmt.Sprintf("Registry: [%d parcels, %d classes]", len(r.parcels), len(r.classes))
}

// RootClassName returns the name of the universal root class
func (r *Registry) RootClassName() string {
	return r.rootClassName
}

// DefaultParcel returns the parcel used by classes that don't name one
func (r *Registry) DefaultParcel() *Parcel {
	return r.defaultParcel
}

// RegisterParcel adds a parcel, rejecting duplicate names and prefixes
func (r *Registry) RegisterParcel(parcel *Parcel) error {
	for _, other := range r.parcels {
		if other.name == parcel.name {
			return newError(ErrDuplicateIdentity, "", "parcel '%s' registered twice", parcel.name)
		}
		if other.prefix == parcel.prefix {
			return newError(ErrDuplicateIdentity, "", "parcel '%s' has the same prefix as '%s'", parcel.name, other.name)
		}
	}
	r.parcels = append(r.parcels, parcel)
	return nil
}

// Parcel looks up a registered parcel by name, and returns nil if none was
// found
func (r *Registry) Parcel(name string) *Parcel {
	for _, parcel := range r.parcels {
		if parcel.name == name {
			return parcel
		}
	}
	return nil
}

// Parcels returns every registered parcel, in registration order
func (r *Registry) Parcels() []*Parcel {
	return r.parcels
}

// Classes returns every registered class, in registration order
func (r *Registry) Classes() []*Class {
	return r.classes
}

// NewClass creates a class from its declaration and registers it
func (r *Registry) NewClass(spec ClassSpec) (*Class, error) {
	if spec.Parcel == nil {
		spec.Parcel = r.defaultParcel
	}
	if spec.MicroSym == "" {
		spec.MicroSym = "class"
	}
	sym, err := newSymbol(Owner{
		Parcel:    spec.Parcel,
		ClassName: spec.Name,
		ClassNick: spec.Nickname,
	}, spec.Exposure, spec.MicroSym)
	if err != nil {
		return nil, err
	}

	// Inert classes don't get the default parent, but a declared one is kept
	// so that linking rejects it
	parentName := spec.ParentName
	if parentName == "" && !spec.Inert && spec.Name != r.rootClassName {
		parentName = r.rootClassName
	}

	class := &Class{
		Symbol:     sym,
		names:      DeriveNames(spec.Parcel.Prefix(), spec.Name, sym.classNick, spec.File),
		reg:        r,
		parent:     NoClass,
		doc:        spec.Doc,
		file:       spec.File,
		parentName: parentName,
		final:      spec.Final,
		inert:      spec.Inert,
	}

	if spec.File != nil && spec.File.Included {
		if !spec.Parcel.Included() {
			return nil, newError(ErrProvenanceMismatch, spec.Name,
				"class from include dir found in parcel %s from source dir", spec.Parcel.Name())
		}
	} else if spec.Parcel.Included() {
		return nil, newError(ErrProvenanceMismatch, spec.Name,
			"class from source dir found in parcel %s from include dir", spec.Parcel.Name())
	}

	if err := r.register(class); err != nil {
		return nil, err
	}
	spec.Parcel.AddClassStructSym(class.names.StructSym)

	log.WithFields(log.Fields{
		"class":  class.className,
		"parcel": spec.Parcel.Name(),
		"parent": parentName,
	}).Debug("Registered class")
	return class, nil
}

// register stores a class, checking it against every already registered class
func (r *Registry) register(class *Class) error {
	key := class.names.FullStructSym
	for _, other := range r.classes {
		if other.className == class.className {
			return newError(ErrDuplicateIdentity, class.className, "two classes with name %s", class.className)
		}
		if other.names.FullStructSym == key {
			return newError(ErrDuplicateIdentity, class.className,
				"class name conflict between %s and %s", class.className, other.className)
		}
		if other.parcel.Prefix() == class.parcel.Prefix() && other.classNick == class.classNick {
			return newError(ErrDuplicateIdentity, class.className,
				"class nickname conflict between %s and %s", class.className, other.className)
		}
	}
	class.id = ClassID(len(r.classes))
	r.classes = append(r.classes, class)
	r.byKey[key] = class.id
	return nil
}

// Fetch returns the class with the given name in the given parcel, or nil if
// there is none. A nil parcel means an empty prefix
func (r *Registry) Fetch(parcel *Parcel, className string) (*Class, error) {
	prefix := ""
	if parcel != nil {
		prefix = parcel.Prefix()
	}
	key, err := SingletonKey(prefix, className)
	if err != nil {
		return nil, err
	}
	id, in := r.byKey[key]
	if !in {
		return nil, nil
	}
	return r.classes[id], nil
}

// FetchByName returns the class with the given full name, or nil
func (r *Registry) FetchByName(className string) *Class {
	for _, class := range r.classes {
		if class.className == className {
			return class
		}
	}
	return nil
}

// Clear releases every class. Parent links are broken first, so that nothing
// retained by a caller keeps the rest of the tree reachable
func (r *Registry) Clear() {
	for _, class := range r.classes {
		class.parent = NoClass
		class.reg = nil
	}
	r.classes = nil
	r.parcels = nil
	r.byKey = make(map[string]ClassID)
}
