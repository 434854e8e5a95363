package astindex

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/c360studio/semshapes/rdf"
)

// Extractor parses one source file into entities. Implementations must
// be safe for reuse across files but need not be safe for concurrent use.
type Extractor interface {
	// Language is the short language tag ("go", "python").
	Language() string

	// ParseFile extracts the entities declared in one file.
	ParseFile(ctx context.Context, path string) (*FileResult, error)
}

// Factory builds an extractor rooted at the repository root.
type Factory func(repoRoot string) Extractor

// Registry maps file extensions to extractor factories. Language
// packages register themselves in init.
type Registry struct {
	mu         sync.RWMutex
	factories  map[string]Factory // language -> factory
	extensions map[string]string  // ".go" -> language
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories:  make(map[string]Factory),
		extensions: make(map[string]string),
	}
}

// DefaultRegistry is the process-wide extractor registry.
var DefaultRegistry = NewRegistry()

// Register adds a language factory with its file extensions.
func (r *Registry) Register(language string, extensions []string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[language] = f
	for _, ext := range extensions {
		r.extensions[ext] = language
	}
}

// languageFor resolves a file extension to a registered language.
func (r *Registry) languageFor(ext string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lang, ok := r.extensions[ext]
	return lang, ok
}

func (r *Registry) factory(language string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[language]
	return f, ok
}

// Indexer walks source directories and accumulates extracted entities
// into one graph.
type Indexer struct {
	repoRoot   string
	registry   *Registry
	logger     *slog.Logger
	extractors map[string]Extractor
}

// NewIndexer creates an indexer rooted at repoRoot using the default
// registry.
func NewIndexer(repoRoot string, logger *slog.Logger) *Indexer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{
		repoRoot:   repoRoot,
		registry:   DefaultRegistry,
		logger:     logger,
		extractors: make(map[string]Extractor),
	}
}

// IndexPatterns resolves the glob patterns to directories, extracts
// every supported file beneath them, and returns the combined graph.
// Files that fail to parse are logged and skipped so one bad file never
// aborts an indexing run.
func (ix *Indexer) IndexPatterns(ctx context.Context, patterns []string) (*rdf.Graph, []*FileResult, error) {
	dirs, err := ResolvePaths(patterns)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve index paths: %w", err)
	}

	g := rdf.NewGraph()
	var results []*FileResult
	for _, dir := range dirs {
		walkErr := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if info.IsDir() {
				if skipDir(filepath.Base(path)) && path != dir {
					return filepath.SkipDir
				}
				return nil
			}

			res, err := ix.indexFile(ctx, path)
			if err != nil {
				ix.logger.Warn("skipping file", "path", path, "error", err)
				return nil
			}
			if res == nil {
				return nil
			}

			results = append(results, res)
			for _, t := range res.Triples() {
				g.Add(t)
			}
			return nil
		})
		if walkErr != nil {
			return nil, nil, fmt.Errorf("walk %s: %w", dir, walkErr)
		}
	}

	ix.logger.Info("indexing complete", "files", len(results), "triples", g.Len())
	return g, results, nil
}

// indexFile extracts one file, or returns nil when no extractor handles
// its extension.
func (ix *Indexer) indexFile(ctx context.Context, path string) (*FileResult, error) {
	lang, ok := ix.registry.languageFor(filepath.Ext(path))
	if !ok {
		return nil, nil
	}

	ex, ok := ix.extractors[lang]
	if !ok {
		factory, registered := ix.registry.factory(lang)
		if !registered {
			return nil, nil
		}
		ex = factory(ix.repoRoot)
		ix.extractors[lang] = ex
	}
	return ex.ParseFile(ctx, path)
}

// skipDir filters vendored, hidden and build directories.
func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "vendor", "node_modules", "__pycache__", "venv", "dist", "build", "testdata":
		return true
	}
	return false
}
