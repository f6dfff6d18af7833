package parsing

import (
	"context"
	"fmt"
	"os"

	"github.com/NickyBoy89/cfc/nodeutil"
	"github.com/NickyBoy89/cfc/symbol"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// SourceFile is a single file of class declarations
type SourceFile struct {
	Name   string
	Source []byte
	Ast    *sitter.Node
	// Where the file was found, used for the classes' header paths and to
	// tell source classes from included ones
	Spec *symbol.FileSpec
}

func (file SourceFile) String() string {
	return fmt.Sprintf("SourceFile { Name: %s, Ast: %v, Spec: %+v }", file.Name, file.Ast, file.Spec)
}

// ReadSourceFile loads a file found under sourceDir
func ReadSourceFile(sourceDir, path string, included bool) (*SourceFile, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	spec, err := symbol.NewFileSpec(sourceDir, path, included)
	if err != nil {
		return nil, err
	}
	return &SourceFile{Name: path, Source: source, Spec: spec}, nil
}

// ParseAST parses the file's source, and reports the first syntax error in it
func (file *SourceFile) ParseAST(ctx context.Context) error {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, file.Source)
	if err != nil {
		return err
	}

	file.Ast = tree.RootNode()
	if bad := nodeutil.FirstError(file.Ast); bad != nil {
		point := bad.StartPoint()
		return fmt.Errorf("%s:%d:%d: syntax error near %q",
			file.Name, point.Row+1, point.Column+1, bad.Content(file.Source))
	}
	return nil
}
