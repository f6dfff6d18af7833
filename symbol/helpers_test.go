package symbol

import (
	"testing"
)

func mustParcel(t *testing.T, name, nickname string, included bool) *Parcel {
	t.Helper()
	parcel, err := NewParcel(name, nickname, included)
	if err != nil {
		t.Fatal(err)
	}
	return parcel
}

func mustClass(t *testing.T, reg *Registry, spec ClassSpec) *Class {
	t.Helper()
	class, err := reg.NewClass(spec)
	if err != nil {
		t.Fatal(err)
	}
	return class
}

func mustMethod(t *testing.T, class *Class, macroSym string, final bool) *Method {
	t.Helper()
	method, err := NewMethod(class.Owner(), MethodSpec{
		Exposure:   ExposurePublic,
		MacroSym:   macroSym,
		ReturnType: "void",
		Final:      final,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := class.AddMethod(method); err != nil {
		t.Fatal(err)
	}
	return method
}

func mustMemberVar(t *testing.T, class *Class, name string) *Variable {
	t.Helper()
	variable, err := NewVariable(class.Owner(), ExposurePrivate, name, "int32_t")
	if err != nil {
		t.Fatal(err)
	}
	if err := class.AddMemberVar(variable); err != nil {
		t.Fatal(err)
	}
	return variable
}

func mustLink(t *testing.T, parent, child *Class) {
	t.Helper()
	if err := parent.AddChild(child); err != nil {
		t.Fatal(err)
	}
}

func classNames(classes []*Class) []string {
	names := make([]string, len(classes))
	for ind, class := range classes {
		names[ind] = class.Name()
	}
	return names
}

func methodNames(methods []*Method) []string {
	names := make([]string, len(methods))
	for ind, method := range methods {
		names[ind] = method.ClassName() + "." + method.MacroSym()
	}
	return names
}

func varNames(vars []*Variable) []string {
	names := make([]string, len(vars))
	for ind, variable := range vars {
		names[ind] = variable.ClassName() + "." + variable.MicroSym()
	}
	return names
}

// zooFixture builds the Obj -> Animal -> Dog hierarchy in parcel M
type zooFixture struct {
	reg    *Registry
	parcel *Parcel
	obj    *Class
	animal *Class
	dog    *Class
}

func newZooFixture(t *testing.T, dogFinal bool) zooFixture {
	t.Helper()
	reg := NewRegistry("Obj")
	parcel := mustParcel(t, "M", "M", false)
	if err := reg.RegisterParcel(parcel); err != nil {
		t.Fatal(err)
	}

	f := zooFixture{reg: reg, parcel: parcel}
	f.obj = mustClass(t, reg, ClassSpec{Parcel: parcel, Name: "Obj"})
	f.animal = mustClass(t, reg, ClassSpec{Parcel: parcel, Name: "Animal", ParentName: "Obj"})
	f.dog = mustClass(t, reg, ClassSpec{Parcel: parcel, Name: "Dog", ParentName: "Animal", Final: dogFinal})

	mustMemberVar(t, f.obj, "refcount")
	mustMethod(t, f.animal, "Speak", false)
	mustMemberVar(t, f.animal, "legs")
	mustMethod(t, f.dog, "Speak", false)
	mustMethod(t, f.dog, "Fetch", false)
	mustMemberVar(t, f.dog, "tricks")

	mustLink(t, f.obj, f.animal)
	mustLink(t, f.animal, f.dog)
	return f
}
