package compile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/NickyBoy89/cfc/config"
	"github.com/NickyBoy89/cfc/symbol"
)

func classNames(classes []*symbol.Class) []string {
	names := []string{}
	for _, class := range classes {
		names = append(names, class.Name())
	}
	return names
}

func loadProject(t *testing.T) *Result {
	t.Helper()
	cfg, err := config.LoadFromDir("../testfiles/project")
	if err != nil {
		t.Fatal(err)
	}
	result, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	return result
}

// writeProject creates a single parcel project from a map of file names to
// their contents
func writeProject(t *testing.T, files map[string]string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, "src", name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := config.Default()
	cfg.RootClass = "Obj"
	cfg.Parcels = []config.Parcel{{Name: "App", SourceDirs: []string{filepath.Join(dir, "src")}}}
	return cfg
}

func TestRunProject(t *testing.T) {
	result := loadProject(t)

	if len(result.Files) != 6 {
		t.Errorf("Expected: %v, Actual: %v", 6, len(result.Files))
	}

	expectedRoots := []string{"clownfish.Obj", "zoo.Util"}
	if actual := classNames(result.Roots); !reflect.DeepEqual(actual, expectedRoots) {
		t.Errorf("Expected: %v, Actual: %v", expectedRoots, actual)
	}

	expectedLadder := []string{"clownfish.Obj", "clownfish.String", "zoo.Animal", "zoo.Dog", "zoo.cats.Cat", "zoo.Util"}
	if actual := classNames(result.Ladder()); !reflect.DeepEqual(actual, expectedLadder) {
		t.Errorf("Expected: %v, Actual: %v", expectedLadder, actual)
	}

	cfish := result.Registry.Parcel("Clownfish")
	zoo := result.Registry.Parcel("Zoo")
	if cfish == nil || !cfish.Included() || zoo == nil || zoo.Included() {
		t.Fatalf("Unexpected parcels: %v", result.Registry.Parcels())
	}
	if inherited := zoo.InheritedParcels(); len(inherited) != 1 || inherited[0] != cfish {
		t.Errorf("Expected Zoo to inherit from Clownfish, got: %v", inherited)
	}

	dog, err := result.Registry.Fetch(zoo, "zoo.Dog")
	if err != nil || dog == nil {
		t.Fatalf("Expected to find zoo.Dog, got: %v, %v", dog, err)
	}
	if dog.FullStructSym() != "zoo_Dog" || dog.FullIvarsFunc() != "zoo_Doggy_IVARS" {
		t.Errorf("Unexpected names: %+v", dog.Names())
	}

	kinds := []symbol.SlotKind{}
	for _, slot := range dog.MethodTable() {
		kinds = append(kinds, slot.Kind)
		if !slot.Method.Final() {
			t.Errorf("Expected %v to be final in a final class", slot.Method)
		}
	}
	expectedKinds := []symbol.SlotKind{
		symbol.SlotInherited, symbol.SlotInherited, symbol.SlotInherited,
		symbol.SlotOverridden, symbol.SlotInherited, symbol.SlotNovel,
	}
	if !reflect.DeepEqual(kinds, expectedKinds) {
		t.Errorf("Expected: %v, Actual: %v", expectedKinds, kinds)
	}

	vars := []string{}
	for _, variable := range dog.MemberVars() {
		vars = append(vars, variable.MicroSym())
	}
	if expected := []string{"refcount", "legs", "tricks"}; !reflect.DeepEqual(vars, expected) {
		t.Errorf("Expected: %v, Actual: %v", expected, vars)
	}

	// Object types carry the prefix of the parcel that declares them
	if tricks := dog.MemberVars()[2]; tricks.Type() != "cfish_String**" {
		t.Errorf("Expected: %v, Actual: %v", "cfish_String**", tricks.Type())
	}
	if expected := []string{"cfish_Obj*", "int32_t"}; !reflect.DeepEqual(dog.Method("fetch").ParamTypes(), expected) {
		t.Errorf("Expected: %v, Actual: %v", expected, dog.Method("fetch").ParamTypes())
	}
	if adopt := dog.Function("adopt"); adopt == nil || adopt.ReturnType() != "zoo_Dog*" {
		t.Errorf("Expected adopt to return zoo_Dog*, got: %v", adopt)
	}
	util := result.Registry.FetchByName("zoo.Util")
	if expected := []string{"zoo_Animal**"}; !reflect.DeepEqual(util.Function("countLegs").ParamTypes(), expected) {
		t.Errorf("Expected: %v, Actual: %v", expected, util.Function("countLegs").ParamTypes())
	}

	novel, err := dog.FindNovelMethod("speak")
	if err != nil || novel == nil || novel.ClassName() != "zoo.Animal" {
		t.Errorf("Expected speak to be first declared in zoo.Animal, got: %v, %v", novel, err)
	}

	// Cat isn't final, so its inherited methods are shared with Animal
	cat := result.Registry.FetchByName("zoo.cats.Cat")
	animal := result.Registry.FetchByName("zoo.Animal")
	if cat.Method("destroy") != animal.Method("destroy") || cat.Method("destroy").Final() {
		t.Error("Expected Cat to inherit destroy unchanged")
	}
}

func TestRunCycle(t *testing.T) {
	cfg, err := config.LoadFromDir("../testfiles/cycle")
	if err != nil {
		t.Fatal(err)
	}
	_, err = Run(context.Background(), cfg)
	if symbol.KindOf(err) != symbol.ErrInvalidHierarchy {
		t.Errorf("Expected an inheritance cycle, got: %v", err)
	}
}

func TestRunSyntaxError(t *testing.T) {
	cfg := config.Default()
	cfg.Parcels = []config.Parcel{{Name: "Broken", SourceDirs: []string{"../testfiles/broken"}}}
	if _, err := Run(context.Background(), cfg); err == nil {
		t.Error("Expected a syntax error")
	}
}

func TestRunInvalidConfig(t *testing.T) {
	if _, err := Run(context.Background(), config.Default()); err == nil {
		t.Error("Expected a config without parcels to be rejected")
	}
}

func TestRunMissingDir(t *testing.T) {
	cfg := config.Default()
	cfg.Parcels = []config.Parcel{{Name: "Missing", SourceDirs: []string{filepath.Join(t.TempDir(), "nothing")}}}
	if _, err := Run(context.Background(), cfg); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected a missing directory error, got: %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	cfg := writeProject(t, map[string]string{"Obj.java": "class Obj {}"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, cfg); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected the run to be cancelled, got: %v", err)
	}
}

func TestRunDuplicateClass(t *testing.T) {
	cfg := writeProject(t, map[string]string{
		"Obj.java":     "class Obj {}",
		"a/Thing.java": "package a; class Thing {}",
		"b/Thing.java": "package b; class Thing {}",
	})
	_, err := Run(context.Background(), cfg)
	if symbol.KindOf(err) != symbol.ErrDuplicateIdentity {
		t.Errorf("Expected a duplicate identity error, got: %v", err)
	}
}

func TestRunExcludedDir(t *testing.T) {
	cfg := writeProject(t, map[string]string{
		"Obj.java":          "class Obj {}",
		"Thing.java":        "class Thing extends Obj { void run() {} }",
		"build/Broken.java": "class {",
		"notes.txt":         "not a declaration",
	})
	result, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{"Obj", "Thing"}
	if actual := classNames(result.Ladder()); !reflect.DeepEqual(actual, expected) {
		t.Errorf("Expected: %v, Actual: %v", expected, actual)
	}
}

func TestRunUnknownParent(t *testing.T) {
	cfg := writeProject(t, map[string]string{
		"Obj.java":   "class Obj {}",
		"Thing.java": "class Thing extends Missing {}",
	})
	if _, err := Run(context.Background(), cfg); symbol.KindOf(err) != symbol.ErrInvalidHierarchy {
		t.Errorf("Expected an unknown parent error, got: %v", err)
	}
}

func TestRunUnknownType(t *testing.T) {
	cfg := writeProject(t, map[string]string{
		"Obj.java":   "class Obj {}",
		"Thing.java": "class Thing extends Obj { Missing item; }",
	})
	if _, err := Run(context.Background(), cfg); symbol.KindOf(err) != symbol.ErrUnknownType {
		t.Errorf("Expected an unknown type error, got: %v", err)
	}
}

func TestRunInertWithParent(t *testing.T) {
	cfg := writeProject(t, map[string]string{
		"Obj.java":    "class Obj {}",
		"Helper.java": "@Inert class Helper extends Obj { static void help() {} }",
	})
	if _, err := Run(context.Background(), cfg); symbol.KindOf(err) != symbol.ErrInvalidHierarchy {
		t.Errorf("Expected an inert class with a parent to be rejected, got: %v", err)
	}
}
