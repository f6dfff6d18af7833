package symbol

import (
	"strings"
	"unicode"
)

const (
	// MaxSingletonLen is the longest prefix + struct symbol accepted as a
	// registry lookup key
	MaxSingletonLen = 256
	// MaxFuncLen is the longest symbol accepted for function and method lookup
	MaxFuncLen = 128
)

// Names holds every identifier derived from a class's name, nickname, and
// parcel prefix. They are computed once when the class is created.
type Names struct {
	// Last component of the class name, e.g. "Dog" for "zoo.Dog"
	StructSym string
	// StructSym with the parcel prefix, e.g. "zoo_Dog"
	FullStructSym string
	// Struct holding the class's instance variables
	IvarsStruct     string
	FullIvarsStruct string
	// Function returning a pointer to the instance variables
	IvarsFunc       string
	FullIvarsFunc   string
	FullIvarsOffset string
	// Variable holding the class's vtable
	ShortVtableVar string
	FullVtableVar  string
	// Token that must be defined to see the class's private members
	PrivacySymbol string
	// Relative path of the generated header
	IncludeH string
}

// DeriveNames computes the naming symbols of a class. The file spec may be
// nil, in which case the header defaults to "class.h"
func DeriveNames(prefix, className, nickname string, file *FileSpec) Names {
	structSym := StructSym(className)
	fullStructSym := prefix + structSym
	names := Names{
		StructSym:       structSym,
		FullStructSym:   fullStructSym,
		IvarsStruct:     structSym + "IVARS",
		FullIvarsStruct: fullStructSym + "IVARS",
		IvarsFunc:       nickname + "_IVARS",
		FullIvarsFunc:   prefix + nickname + "_IVARS",
		ShortVtableVar:  strings.ToUpper(structSym),
		FullVtableVar:   strings.ToUpper(fullStructSym),
		IncludeH:        "class.h",
	}
	names.FullIvarsOffset = names.FullIvarsFunc + "_OFFSET"
	names.PrivacySymbol = "C_" + names.FullVtableVar
	if file != nil {
		names.IncludeH = file.IncludeH()
	}
	return names
}

// StructSym returns the last dot-separated component of a class name
func StructSym(className string) string {
	if ind := strings.LastIndexByte(className, '.'); ind >= 0 {
		return className[ind+1:]
	}
	return className
}

// SingletonKey builds the registry key for a class name within a parcel prefix
func SingletonKey(prefix, className string) (string, error) {
	structSym := StructSym(className)
	if len(prefix)+len(structSym) > MaxSingletonLen {
		return "", newError(ErrLookupOverflow, className, "names too long: '%s', '%s'", prefix, structSym)
	}
	return prefix + structSym, nil
}

// dispatchSym normalizes a function or method symbol for lookup
func dispatchSym(sym string) (string, error) {
	if len(sym) > MaxFuncLen {
		return "", newError(ErrLookupOverflow, "", "sym too long: '%s'", sym)
	}
	return strings.ToLower(sym), nil
}

// Uppercase uppercases the first character of the given string
func Uppercase(name string) string {
	if name == "" {
		return name
	}
	return string(unicode.ToUpper(rune(name[0]))) + name[1:]
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for ind, char := range name {
		if char == '_' || unicode.IsLetter(char) {
			continue
		}
		if ind > 0 && unicode.IsDigit(char) {
			continue
		}
		return false
	}
	return true
}

// validClassName reports whether every dot-separated component is an
// identifier and the last one starts with an upper-case letter
func validClassName(className string) bool {
	components := strings.Split(className, ".")
	for _, component := range components {
		if !isIdentifier(component) {
			return false
		}
	}
	last := components[len(components)-1]
	return unicode.IsUpper(rune(last[0]))
}
