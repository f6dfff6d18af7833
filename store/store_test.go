package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/NickyBoy89/cfc/compile"
	"github.com/NickyBoy89/cfc/config"
	"github.com/NickyBoy89/cfc/symbol"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "index", "index.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func indexProject(t *testing.T, s *Store) *compile.Result {
	t.Helper()
	cfg, err := config.LoadFromDir("../testfiles/project")
	if err != nil {
		t.Fatal(err)
	}
	result, err := compile.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveHierarchy(result.Ladder()); err != nil {
		t.Fatal(err)
	}
	return result
}

func TestSaveLadder(t *testing.T) {
	s := openStore(t)
	indexProject(t, s)

	classes, err := s.Ladder()
	if err != nil {
		t.Fatal(err)
	}
	names := []string{}
	parents := []string{}
	for _, class := range classes {
		names = append(names, class.Name)
		parents = append(parents, class.Parent)
	}
	expectedNames := []string{"clownfish.Obj", "clownfish.String", "zoo.Animal", "zoo.Dog", "zoo.cats.Cat", "zoo.Util"}
	if !reflect.DeepEqual(names, expectedNames) {
		t.Errorf("Expected: %v, Actual: %v", expectedNames, names)
	}
	expectedParents := []string{"", "clownfish.Obj", "clownfish.Obj", "zoo.Animal", "zoo.Animal", ""}
	if !reflect.DeepEqual(parents, expectedParents) {
		t.Errorf("Expected: %v, Actual: %v", expectedParents, parents)
	}

	dog := classes[3]
	if dog.Parcel != "Zoo" || dog.Nickname != "Doggy" || dog.FullStructSym != "zoo_Dog" ||
		dog.FullVtableVar != "ZOO_DOG" || dog.FullIvarsOffset != "zoo_Doggy_IVARS_OFFSET" {
		t.Errorf("Unexpected class row: %+v", dog)
	}
	if !dog.Final || dog.Inert || !classes[5].Inert {
		t.Errorf("Unexpected flags: %+v, %+v", dog, classes[5])
	}
}

func TestParcels(t *testing.T) {
	s := openStore(t)
	indexProject(t, s)

	parcels, err := s.Parcels()
	if err != nil {
		t.Fatal(err)
	}
	expected := []Parcel{
		{"Clownfish", "Cfish", "cfish_", "Cfish_", "CFISH_", true},
		{"Zoo", "Zoo", "zoo_", "Zoo_", "ZOO_", false},
	}
	if !reflect.DeepEqual(parcels, expected) {
		t.Errorf("Expected: %v, Actual: %v", expected, parcels)
	}
}

func TestMethodTable(t *testing.T) {
	s := openStore(t)
	indexProject(t, s)

	slots, err := s.MethodTable("zoo.Dog")
	if err != nil {
		t.Fatal(err)
	}
	expected := []MethodSlot{
		{"zoo.Dog", 0, "ToString", "inherited", "clownfish.Obj", "zoo_Doggy_ToString", "cfish_Obj_ToString_IMP", true, false},
		{"zoo.Dog", 1, "Equals", "inherited", "clownfish.Obj", "zoo_Doggy_Equals", "cfish_Obj_Equals_IMP", true, false},
		{"zoo.Dog", 2, "Destroy", "inherited", "clownfish.Obj", "zoo_Doggy_Destroy", "cfish_Obj_Destroy_IMP", true, false},
		{"zoo.Dog", 3, "Speak", "overridden", "zoo.Dog", "zoo_Doggy_Speak", "zoo_Doggy_Speak_IMP", true, false},
		{"zoo.Dog", 4, "GetLegs", "inherited", "zoo.Animal", "zoo_Doggy_GetLegs", "zoo_Animal_GetLegs_IMP", true, false},
		{"zoo.Dog", 5, "Fetch", "novel", "zoo.Dog", "zoo_Doggy_Fetch", "zoo_Doggy_Fetch_IMP", true, false},
	}
	if !reflect.DeepEqual(slots, expected) {
		t.Errorf("Expected: %v, Actual: %v", expected, slots)
	}

	// Animal's speak is abstract and isn't finalized
	slots, err = s.MethodTable("zoo.Animal")
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 5 || slots[3].MacroSym != "Speak" || !slots[3].Abstract || slots[3].Final {
		t.Errorf("Unexpected Animal slots: %v", slots)
	}

	if _, err := s.MethodTable("zoo.Missing"); !errors.Is(err, ErrClassNotFound) {
		t.Errorf("Expected a missing class error, got: %v", err)
	}
}

func TestMemberVars(t *testing.T) {
	s := openStore(t)
	indexProject(t, s)

	vars, err := s.MemberVars("zoo.Dog")
	if err != nil {
		t.Fatal(err)
	}
	names := []string{}
	declared := []string{}
	for _, variable := range vars {
		names = append(names, variable.Name)
		declared = append(declared, variable.DeclaredIn)
	}
	if expected := []string{"refcount", "legs", "tricks"}; !reflect.DeepEqual(names, expected) {
		t.Errorf("Expected: %v, Actual: %v", expected, names)
	}
	if expected := []string{"clownfish.Obj", "zoo.Animal", "zoo.Dog"}; !reflect.DeepEqual(declared, expected) {
		t.Errorf("Expected: %v, Actual: %v", expected, declared)
	}
	if vars[1].Type != "int32_t" || vars[2].Type != "cfish_String**" {
		t.Errorf("Unexpected types: %v", vars)
	}

	if vars, err := s.MemberVars("zoo.Util"); err != nil || len(vars) != 0 {
		t.Errorf("Expected no member vars for an inert class, got: %v, %v", vars, err)
	}
}

func TestSaveUngrown(t *testing.T) {
	s := openStore(t)
	reg := symbol.NewRegistry("Obj")
	class, err := reg.NewClass(symbol.ClassSpec{Name: "Obj"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveHierarchy([]*symbol.Class{class}); err == nil {
		t.Error("Expected an ungrown class to be rejected")
	}

	// Nothing from the failed transaction should remain
	classes, err := s.Ladder()
	if err != nil {
		t.Fatal(err)
	}
	if len(classes) != 0 {
		t.Errorf("Expected no classes, got: %v", classes)
	}
}

func TestClear(t *testing.T) {
	s := openStore(t)
	indexProject(t, s)
	if err := s.SetMetadata("indexed_at", "now"); err != nil {
		t.Fatal(err)
	}

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	classes, err := s.Ladder()
	if err != nil {
		t.Fatal(err)
	}
	if len(classes) != 0 {
		t.Errorf("Expected no classes, got: %v", classes)
	}
	if _, err := s.GetMetadata("indexed_at"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected the metadata to be cleared, got: %v", err)
	}

	// The same hierarchy can be indexed again
	indexProject(t, s)
}

func TestMetadata(t *testing.T) {
	s := openStore(t)
	if err := s.SetMetadata("root_class", "Obj"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetMetadata("root_class", "clownfish.Obj"); err != nil {
		t.Fatal(err)
	}
	value, err := s.GetMetadata("root_class")
	if err != nil {
		t.Fatal(err)
	}
	if value != "clownfish.Obj" {
		t.Errorf("Expected: %v, Actual: %v", "clownfish.Obj", value)
	}
}
