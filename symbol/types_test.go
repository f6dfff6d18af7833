package symbol

import (
	"errors"
	"reflect"
	"testing"
)

func TestResolveType(t *testing.T) {
	core := mustParcel(t, "Core", "Core", false)
	zoo := mustParcel(t, "Zoo", "Zoo", false)
	zoo.AddPrereq(core)
	core.AddClassStructSym("Obj")
	zoo.AddClassStructSym("Dog")

	cases := map[string]string{
		"void":      "void",
		"int32_t*":  "int32_t*",
		"Obj*":      "core_Obj*",
		"Dog**":     "zoo_Dog**",
		"core_Obj*": "core_Obj*",
	}
	for typ, expected := range cases {
		actual, err := resolveType(zoo, "zoo.Dog", typ)
		if err != nil {
			t.Errorf("%s: %v", typ, err)
		} else if actual != expected {
			t.Errorf("%s: Expected: %v, Actual: %v", typ, expected, actual)
		}
	}

	// Prerequisites only go one way
	if _, err := resolveType(core, "core.Obj", "Dog*"); KindOf(err) != ErrUnknownType {
		t.Errorf("Expected an unknown type error, got: %v", err)
	}
}

func TestBuildResolvesTypes(t *testing.T) {
	reg := NewRegistry("core.Obj")
	core := mustParcel(t, "Core", "Core", false)
	zoo := mustParcel(t, "Zoo", "Zoo", false)
	zoo.AddPrereq(core)
	for _, parcel := range []*Parcel{core, zoo} {
		if err := reg.RegisterParcel(parcel); err != nil {
			t.Fatal(err)
		}
	}

	obj := mustClass(t, reg, ClassSpec{Parcel: core, Name: "core.Obj"})
	dog := mustClass(t, reg, ClassSpec{Parcel: zoo, Name: "zoo.Dog", Final: true})

	equals, err := NewMethod(obj.Owner(), MethodSpec{
		MacroSym:   "Equals",
		ReturnType: "bool",
		Params:     []Param{{Name: "other", Type: "Obj*"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := obj.AddMethod(equals); err != nil {
		t.Fatal(err)
	}
	owner, err := NewVariable(dog.Owner(), ExposurePrivate, "owner", "Obj*")
	if err != nil {
		t.Fatal(err)
	}
	if err := dog.AddMemberVar(owner); err != nil {
		t.Fatal(err)
	}
	adopt, err := NewFunction(dog.Owner(), ExposurePublic, "adopt", "Dog*", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := dog.AddFunction(adopt); err != nil {
		t.Fatal(err)
	}

	if _, err := reg.Build(); err != nil {
		t.Fatal(err)
	}

	if owner.Type() != "core_Obj*" {
		t.Errorf("Expected: %v, Actual: %v", "core_Obj*", owner.Type())
	}
	if adopt.ReturnType() != "zoo_Dog*" {
		t.Errorf("Expected: %v, Actual: %v", "zoo_Dog*", adopt.ReturnType())
	}
	// The finalized copy in Dog's table carries the resolved type too
	for _, method := range []*Method{obj.Method("equals"), dog.Method("equals")} {
		if expected := []string{"core_Obj*"}; !reflect.DeepEqual(method.ParamTypes(), expected) {
			t.Errorf("%v: Expected: %v, Actual: %v", method, expected, method.ParamTypes())
		}
	}

	premature := &Error{Kind: ErrPrematureMutation}
	if err := dog.ResolveTypes(); !errors.Is(err, premature) {
		t.Errorf("Expected a premature mutation error, got: %v", err)
	}
}

func TestBuildUnknownType(t *testing.T) {
	reg := NewRegistry("Obj")
	mustClass(t, reg, ClassSpec{Name: "Obj"})
	thing := mustClass(t, reg, ClassSpec{Name: "Thing"})
	variable, err := NewVariable(thing.Owner(), ExposurePrivate, "missing", "Missing*")
	if err != nil {
		t.Fatal(err)
	}
	if err := thing.AddMemberVar(variable); err != nil {
		t.Fatal(err)
	}

	_, err = reg.Build()
	if KindOf(err) != ErrUnknownType {
		t.Errorf("Expected an unknown type error, got: %v", err)
	}
}
