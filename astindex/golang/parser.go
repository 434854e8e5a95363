// Package golang extracts code entities from Go source files.
package golang

import (
	"context"
	"fmt"
	goast "go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/c360studio/semshapes/astindex"
	"github.com/c360studio/semshapes/identifier"
)

func init() {
	astindex.DefaultRegistry.Register("go", []string{".go"},
		func(repoRoot string) astindex.Extractor {
			return NewExtractor(repoRoot)
		})
}

// Extractor parses Go files with go/ast and emits module and function
// entities.
type Extractor struct {
	repoRoot string
}

// NewExtractor creates a Go extractor rooted at the repository root.
func NewExtractor(repoRoot string) *Extractor {
	return &Extractor{repoRoot: repoRoot}
}

// Language returns the language tag.
func (e *Extractor) Language() string { return "go" }

// ParseFile extracts the module entity and one function entity per
// declared function or method.
func (e *Extractor) ParseFile(ctx context.Context, filePath string) (*astindex.FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	hash := identifier.ContentHash(content)

	relPath, err := filepath.Rel(e.repoRoot, filePath)
	if err != nil {
		relPath = filePath
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filePath, content, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse file: %w", err)
	}

	module := &astindex.Entity{
		IRI:       identifier.EntityIRI("module", relPath),
		Kind:      astindex.KindModule,
		Name:      file.Name.Name,
		Path:      relPath,
		Language:  "go",
		StartLine: 1,
		EndLine:   fset.Position(file.End()).Line,
		Hash:      hash,
	}
	if file.Doc != nil {
		module.DocComment = strings.TrimSpace(file.Doc.Text())
	}

	result := &astindex.FileResult{
		Module:   module,
		Entities: []*astindex.Entity{module},
		Path:     relPath,
		Hash:     hash,
	}

	for _, decl := range file.Decls {
		fn, ok := decl.(*goast.FuncDecl)
		if !ok {
			continue
		}
		result.Entities = append(result.Entities, e.extractFunction(fset, fn, relPath, module.IRI))
	}
	return result, nil
}

func (e *Extractor) extractFunction(fset *token.FileSet, fn *goast.FuncDecl, relPath, moduleIRI string) *astindex.Entity {
	name := fn.Name.Name
	if recv := receiverType(fn); recv != "" {
		name = recv + "." + name
	}

	entity := &astindex.Entity{
		IRI:       identifier.EntityIRI("function", relPath, name),
		Kind:      astindex.KindFunction,
		Name:      name,
		Path:      relPath,
		Language:  "go",
		StartLine: fset.Position(fn.Pos()).Line,
		EndLine:   fset.Position(fn.End()).Line,
		Arity:     countParams(fn),
		Exported:  isExported(fn.Name.Name),
		DefinedIn: moduleIRI,
	}
	if fn.Doc != nil {
		entity.DocComment = strings.TrimSpace(fn.Doc.Text())
	}
	return entity
}

// receiverType returns the bare receiver type name for methods.
func receiverType(fn *goast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	expr := fn.Recv.List[0].Type
	if star, ok := expr.(*goast.StarExpr); ok {
		expr = star.X
	}
	if idx, ok := expr.(*goast.IndexExpr); ok {
		expr = idx.X
	}
	if ident, ok := expr.(*goast.Ident); ok {
		return ident.Name
	}
	return ""
}

func countParams(fn *goast.FuncDecl) int {
	if fn.Type.Params == nil {
		return 0
	}
	n := 0
	for _, field := range fn.Type.Params.List {
		if len(field.Names) == 0 {
			n++
			continue
		}
		n += len(field.Names)
	}
	return n
}

func isExported(name string) bool {
	r := []rune(name)
	return len(r) > 0 && unicode.IsUpper(r[0])
}
