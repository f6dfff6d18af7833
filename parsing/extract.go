package parsing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NickyBoy89/cfc/keywords"
	"github.com/NickyBoy89/cfc/nodeutil"
	"github.com/NickyBoy89/cfc/symbol"
	log "github.com/sirupsen/logrus"
	sitter "github.com/smacker/go-tree-sitter"
)

// fileContext is what the header of a file declares, and is used to resolve
// the names of parent classes
type fileContext struct {
	pack string
	// Simple class name to its fully qualified name
	imports map[string]string
}

// resolve turns a class name as written in the file into a full class name.
// Imports win, then names that are already qualified, and anything else is
// assumed to be in the file's own package
func (fctx fileContext) resolve(name string) string {
	if full, in := fctx.imports[name]; in {
		return full
	}
	if strings.Contains(name, ".") || fctx.pack == "" {
		return name
	}
	return fctx.pack + "." + name
}

// ExtractClasses registers every top-level class declared in the file with
// the registry, in declaration order
func (file *SourceFile) ExtractClasses(reg *symbol.Registry, parcel *symbol.Parcel) ([]*symbol.Class, error) {
	if file.Ast == nil {
		return nil, fmt.Errorf("%s: file has not been parsed", file.Name)
	}
	if err := nodeutil.AssertTypeIs(file.Ast, "program"); err != nil {
		return nil, fmt.Errorf("%s: %w", file.Name, err)
	}

	fctx := fileContext{imports: make(map[string]string)}
	classes := []*symbol.Class{}
	for _, node := range nodeutil.Children(file.Ast) {
		switch node.Type() {
		case "package_declaration":
			fctx.pack = qualifiedName(node, file.Source)
		case "import_declaration":
			fctx.addImport(node, file.Source)
		case "class_declaration":
			class, err := file.extractClass(node, reg, parcel, fctx)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file.Name, err)
			}
			classes = append(classes, class)
		case "interface_declaration", "enum_declaration", "record_declaration", "annotation_type_declaration":
			log.WithFields(log.Fields{
				"file": file.Name,
				"type": node.Type(),
			}).Warn("Skipping declaration that is not a class")
		}
	}
	return classes, nil
}

// qualifiedName returns the first dotted name in a package or import
// declaration
func qualifiedName(node *sitter.Node, source []byte) string {
	for _, child := range nodeutil.Children(node) {
		switch child.Type() {
		case "identifier", "scoped_identifier":
			return child.Content(source)
		}
	}
	return ""
}

func (fctx fileContext) addImport(node *sitter.Node, source []byte) {
	for _, child := range nodeutil.UnnamedChildren(node) {
		switch child.Type() {
		// Static imports name members, and wildcards don't name anything
		case "static", "asterisk", "*":
			return
		}
	}
	if name := qualifiedName(node, source); name != "" {
		fctx.imports[symbol.StructSym(name)] = name
	}
}

type modifierSet struct {
	exposure symbol.Exposure
	static   bool
	final    bool
	abstract bool
	// Annotation names, mapped to their first argument if they have one
	annotations map[string]string
}

func parseModifiers(node *sitter.Node, source []byte) modifierSet {
	mods := modifierSet{annotations: make(map[string]string)}
	for _, child := range nodeutil.Children(node) {
		if child.Type() != "modifiers" {
			continue
		}
		for _, modifier := range nodeutil.UnnamedChildren(child) {
			switch modifier.Type() {
			case "public":
				mods.exposure = symbol.ExposurePublic
			case "private":
				mods.exposure = symbol.ExposurePrivate
			case "protected":
				mods.exposure = symbol.ExposureParcel
			case "static":
				mods.static = true
			case "final":
				mods.final = true
			case "abstract":
				mods.abstract = true
			case "marker_annotation", "annotation":
				name := symbol.StructSym(modifier.ChildByFieldName("name").Content(source))
				mods.annotations[name] = annotationArgument(modifier, source)
			default:
				if !keywords.IsModifier(modifier.Type()) {
					log.WithField("modifier", modifier.Content(source)).Debug("Ignoring modifier")
				}
			}
		}
	}
	return mods
}

// annotationArgument returns the single argument of an annotation, unquoted
func annotationArgument(node *sitter.Node, source []byte) string {
	args := node.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return ""
	}
	value := args.NamedChild(0)
	// Named as in @Nickname(value = "Pet")
	if value.Type() == "element_value_pair" {
		value = value.ChildByFieldName("value")
		if value == nil {
			return ""
		}
	}
	arg := value.Content(source)
	if unquoted, err := strconv.Unquote(arg); err == nil {
		return unquoted
	}
	return arg
}

// docComment returns the text of a documentation comment directly preceding
// the node
func docComment(node *sitter.Node, source []byte) string {
	prev := node.PrevNamedSibling()
	if prev == nil || !strings.HasSuffix(prev.Type(), "comment") {
		return ""
	}
	text := prev.Content(source)
	if !strings.HasPrefix(text, "/**") {
		return ""
	}
	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(text, "/**"), "*/"), "\n")
	for ind, line := range lines {
		lines[ind] = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// typeName strips the type arguments off of a type
func typeName(node *sitter.Node, source []byte) string {
	if node.Type() == "generic_type" {
		return node.NamedChild(0).Content(source)
	}
	return node.Content(source)
}

func (file *SourceFile) extractClass(node *sitter.Node, reg *symbol.Registry, parcel *symbol.Parcel, fctx fileContext) (*symbol.Class, error) {
	mods := parseModifiers(node, file.Source)

	className := node.ChildByFieldName("name").Content(file.Source)
	if fctx.pack != "" {
		className = fctx.pack + "." + className
	}

	spec := symbol.ClassSpec{
		Parcel:   parcel,
		Exposure: mods.exposure,
		Name:     className,
		Nickname: mods.annotations[keywords.NicknameAnnotation],
		Doc:      docComment(node, file.Source),
		File:     file.Spec,
		Final:    mods.final,
	}
	_, spec.Inert = mods.annotations[keywords.InertAnnotation]

	if superclass := node.ChildByFieldName("superclass"); superclass != nil {
		spec.ParentName = fctx.resolve(typeName(superclass.NamedChild(0), file.Source))
	}

	class, err := reg.NewClass(spec)
	if err != nil {
		return nil, err
	}

	for _, member := range nodeutil.Children(node.ChildByFieldName("body")) {
		var err error
		switch member.Type() {
		case "field_declaration":
			err = file.extractField(class, member)
		case "method_declaration":
			err = file.extractMethod(class, member)
		case "constructor_declaration":
			err = file.extractConstructor(class, member)
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
			log.WithFields(log.Fields{
				"class":  className,
				"nested": member.ChildByFieldName("name").Content(file.Source),
			}).Warn("Skipping nested type declaration")
		}
		if err != nil {
			return nil, err
		}
	}

	log.WithFields(log.Fields{
		"class":     className,
		"parent":    class.ParentName(),
		"methods":   len(class.Methods()),
		"functions": len(class.Functions()),
	}).Debug("Extracted class")
	return class, nil
}

func (file *SourceFile) extractField(class *symbol.Class, node *sitter.Node) error {
	mods := parseModifiers(node, file.Source)
	javaType := node.ChildByFieldName("type").Content(file.Source)

	for _, declarator := range nodeutil.Children(node) {
		if declarator.Type() != "variable_declarator" {
			continue
		}
		fieldType := javaType
		// C-style arrays, such as `int legs[]`
		if dims := declarator.ChildByFieldName("dimensions"); dims != nil {
			fieldType += dims.Content(file.Source)
		}

		name := declarator.ChildByFieldName("name").Content(file.Source)
		variable, err := symbol.NewVariable(class.Owner(), mods.exposure, name, keywords.CType(fieldType))
		if err != nil {
			return err
		}
		if mods.static {
			err = class.AddInertVar(variable)
		} else {
			err = class.AddMemberVar(variable)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (file *SourceFile) extractParams(node *sitter.Node) []symbol.Param {
	params := []symbol.Param{}
	for _, param := range nodeutil.Children(node.ChildByFieldName("parameters")) {
		switch param.Type() {
		case "formal_parameter":
			params = append(params, symbol.Param{
				Name: param.ChildByFieldName("name").Content(file.Source),
				Type: keywords.CType(param.ChildByFieldName("type").Content(file.Source)),
			})
		case "spread_parameter":
			// Variadic parameters are passed as an array
			var javaType, name string
			for _, child := range nodeutil.Children(param) {
				switch child.Type() {
				case "modifiers":
				case "variable_declarator":
					name = child.ChildByFieldName("name").Content(file.Source)
				default:
					if javaType == "" {
						javaType = child.Content(file.Source)
					}
				}
			}
			params = append(params, symbol.Param{Name: name, Type: keywords.CType(javaType + "[]")})
		}
	}
	return params
}

func (file *SourceFile) extractMethod(class *symbol.Class, node *sitter.Node) error {
	mods := parseModifiers(node, file.Source)
	name := node.ChildByFieldName("name").Content(file.Source)
	returnType := keywords.CType(node.ChildByFieldName("type").Content(file.Source))
	params := file.extractParams(node)

	// Static methods are never dispatched dynamically
	if mods.static {
		return file.addFunction(class, mods.exposure, name, returnType, params)
	}

	if class.Method(name) != nil {
		return fmt.Errorf("method '%s' declared more than once in %s", name, class.Name())
	}
	method, err := symbol.NewMethod(class.Owner(), symbol.MethodSpec{
		Exposure:   mods.exposure,
		MacroSym:   symbol.Uppercase(name),
		ReturnType: returnType,
		Params:     params,
		Abstract:   mods.abstract,
		Final:      mods.final,
	})
	if err != nil {
		return err
	}
	return class.AddMethod(method)
}

// extractConstructor declares a constructor as the inert function "new"
func (file *SourceFile) extractConstructor(class *symbol.Class, node *sitter.Node) error {
	mods := parseModifiers(node, file.Source)
	return file.addFunction(class, mods.exposure, "new", class.FullStructSym()+"*", file.extractParams(node))
}

func (file *SourceFile) addFunction(class *symbol.Class, exposure symbol.Exposure, name, returnType string, params []symbol.Param) error {
	if class.Function(name) != nil {
		return fmt.Errorf("function '%s' declared more than once in %s", name, class.Name())
	}
	function, err := symbol.NewFunction(class.Owner(), exposure, name, returnType, params)
	if err != nil {
		return err
	}
	return class.AddFunction(function)
}
