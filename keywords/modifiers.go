package keywords

import (
	"strings"

	"golang.org/x/exp/slices"
)

// List from https://www.w3schools.com/java/java_modifiers.asp
var (
	AccessModifiers    = []string{"private", "protected", "public"}
	NonAccessModifiers = []string{"final", "static", "abstract", "transient", "synchronized", "volatile"}
)

// Annotations understood on class declarations
const (
	// @Inert marks a class that can't be instantiated or inherited from
	InertAnnotation = "Inert"
	// @Nickname("Short") overrides the class's nickname
	NicknameAnnotation = "Nickname"
)

// C spellings of the Java primitive types
var primitiveCTypes = map[string]string{
	"void":    "void",
	"byte":    "int8_t",
	"short":   "int16_t",
	"int":     "int32_t",
	"long":    "int64_t",
	"float":   "float",
	"double":  "double",
	"boolean": "bool",
	"char":    "int32_t",
}

// IsModifier reports whether the keyword is any known modifier
func IsModifier(keyword string) bool {
	return IsAccessModifier(keyword) || slices.Contains(NonAccessModifiers, keyword)
}

// IsAccessModifier reports whether the keyword controls visibility
func IsAccessModifier(keyword string) bool {
	return slices.Contains(AccessModifiers, keyword)
}

// CType converts a Java type into the C type used in generated symbols.
// Primitives map to fixed-width types, and every other type is a reference
// to an object, so it becomes a pointer to its struct
func CType(javaType string) string {
	javaType = strings.TrimSpace(javaType)
	// Generic arguments don't survive into C
	if ind := strings.IndexByte(javaType, '<'); ind >= 0 {
		rest := ""
		if end := strings.LastIndexByte(javaType, '>'); end > ind {
			rest = javaType[end+1:]
		}
		javaType = strings.TrimSpace(javaType[:ind]) + rest
	}
	if strings.HasSuffix(javaType, "[]") {
		return CType(strings.TrimSuffix(javaType, "[]")) + "*"
	}
	if cType, ok := primitiveCTypes[javaType]; ok {
		return cType
	}
	if ind := strings.LastIndexByte(javaType, '.'); ind >= 0 {
		javaType = javaType[ind+1:]
	}
	return javaType + "*"
}

// abstract 	continue 	for 	new 	switch
// assert*** 	default 	goto* 	package 	synchronized
// boolean 	do 	if 	private 	this
// break 	double 	implements 	protected 	throw
// byte 	else 	import 	public 	throws
// case 	enum**** 	instanceof 	return 	transient
// catch 	extends 	int 	short 	try
// char 	final 	interface 	static 	void
// class 	finally 	long 	strictfp** 	volatile
// const* 	float 	native 	super 	while
