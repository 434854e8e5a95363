// Package python extracts code entities from Python source files using
// tree-sitter.
package python

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/c360studio/semshapes/astindex"
	"github.com/c360studio/semshapes/identifier"
)

func init() {
	astindex.DefaultRegistry.Register("python", []string{".py"},
		func(repoRoot string) astindex.Extractor {
			return NewExtractor(repoRoot)
		})
}

// Extractor parses Python files and emits module, function and
// process-abstraction entities. Classes deriving from threading.Thread
// or multiprocessing.Process are treated as process abstractions; other
// classes contribute their methods as functions.
type Extractor struct {
	repoRoot string
	parser   *sitter.Parser
}

// NewExtractor creates a Python extractor rooted at the repository root.
func NewExtractor(repoRoot string) *Extractor {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Extractor{repoRoot: repoRoot, parser: p}
}

// Language returns the language tag.
func (e *Extractor) Language() string { return "python" }

// ParseFile extracts entities from one Python file.
func (e *Extractor) ParseFile(ctx context.Context, filePath string) (*astindex.FileResult, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	hash := identifier.ContentHash(content)

	relPath, err := filepath.Rel(e.repoRoot, filePath)
	if err != nil {
		relPath = filePath
	}

	tree, err := e.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse file: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()

	module := &astindex.Entity{
		IRI:        identifier.EntityIRI("module", relPath),
		Kind:       astindex.KindModule,
		Name:       moduleName(relPath),
		Path:       relPath,
		Language:   "python",
		StartLine:  1,
		EndLine:    int(root.EndPoint().Row) + 1,
		Hash:       hash,
		DocComment: bodyDocstring(root, content),
	}

	result := &astindex.FileResult{
		Module:   module,
		Entities: []*astindex.Entity{module},
		Path:     relPath,
		Hash:     hash,
	}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		e.extractNode(root.NamedChild(i), content, relPath, module.IRI, result)
	}
	return result, nil
}

func (e *Extractor) extractNode(node *sitter.Node, content []byte, relPath, moduleIRI string, result *astindex.FileResult) {
	switch node.Type() {
	case "function_definition":
		result.Entities = append(result.Entities, e.extractFunction(node, content, relPath, moduleIRI, ""))
	case "class_definition":
		e.extractClass(node, content, relPath, moduleIRI, result)
	case "decorated_definition":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			if child.Type() == "function_definition" || child.Type() == "class_definition" {
				e.extractNode(child, content, relPath, moduleIRI, result)
			}
		}
	}
}

func (e *Extractor) extractFunction(node *sitter.Node, content []byte, relPath, moduleIRI, prefix string) *astindex.Entity {
	name := nodeText(node.ChildByFieldName("name"), content)
	if prefix != "" {
		name = prefix + "." + name
	}

	arity := 0
	if params := node.ChildByFieldName("parameters"); params != nil {
		arity = int(params.NamedChildCount())
	}

	return &astindex.Entity{
		IRI:        identifier.EntityIRI("function", relPath, name),
		Kind:       astindex.KindFunction,
		Name:       name,
		Path:       relPath,
		Language:   "python",
		StartLine:  int(node.StartPoint().Row) + 1,
		EndLine:    int(node.EndPoint().Row) + 1,
		Arity:      arity,
		Exported:   !strings.HasPrefix(name, "_"),
		DocComment: functionDocstring(node, content),
		DefinedIn:  moduleIRI,
	}
}

func (e *Extractor) extractClass(node *sitter.Node, content []byte, relPath, moduleIRI string, result *astindex.FileResult) {
	className := nodeText(node.ChildByFieldName("name"), content)
	if className == "" {
		return
	}

	if isProcessClass(node, content) {
		result.Entities = append(result.Entities, &astindex.Entity{
			IRI:        identifier.EntityIRI("process", relPath, className),
			Kind:       astindex.KindProcess,
			Name:       className,
			Path:       relPath,
			Language:   "python",
			StartLine:  int(node.StartPoint().Row) + 1,
			EndLine:    int(node.EndPoint().Row) + 1,
			DocComment: functionDocstring(node, content),
			DefinedIn:  moduleIRI,
		})
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() == "function_definition" {
			result.Entities = append(result.Entities, e.extractFunction(child, content, relPath, moduleIRI, className))
		}
	}
}

// isProcessClass reports whether the class derives from threading.Thread
// or multiprocessing.Process.
func isProcessClass(node *sitter.Node, content []byte) bool {
	supers := node.ChildByFieldName("superclasses")
	if supers == nil {
		return false
	}
	for i := 0; i < int(supers.NamedChildCount()); i++ {
		base := nodeText(supers.NamedChild(i), content)
		switch {
		case base == "Thread", base == "Process",
			strings.HasSuffix(base, ".Thread"), strings.HasSuffix(base, ".Process"):
			return true
		}
	}
	return false
}

// functionDocstring returns the docstring of a definition node's body.
func functionDocstring(node *sitter.Node, content []byte) string {
	body := node.ChildByFieldName("body")
	if body == nil {
		return ""
	}
	return bodyDocstring(body, content)
}

// bodyDocstring returns the leading string expression of a block, if any.
func bodyDocstring(body *sitter.Node, content []byte) string {
	if body.NamedChildCount() == 0 {
		return ""
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return ""
	}
	expr := first.NamedChild(0)
	if expr.Type() != "string" {
		return ""
	}
	return strings.Trim(nodeText(expr, content), `"' `+"\n\t")
}

func nodeText(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	return string(content[node.StartByte():node.EndByte()])
}

// moduleName converts a relative path to a dotted module name.
func moduleName(relPath string) string {
	mod := strings.TrimSuffix(relPath, ".py")
	mod = strings.ReplaceAll(mod, string(filepath.Separator), ".")
	return strings.TrimSuffix(mod, ".__init__")
}
