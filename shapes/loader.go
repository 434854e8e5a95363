package shapes

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/semshapes/rdf"
)

// shapeFile is the YAML document structure for shape definitions.
type shapeFile struct {
	Prefixes map[string]string `yaml:"prefixes"`
	Shapes   []nodeShapeDef    `yaml:"shapes"`
}

type nodeShapeDef struct {
	ID          string   `yaml:"id"`
	TargetClass string   `yaml:"targetClass"`
	Message     string   `yaml:"message"`
	NodeKind    string   `yaml:"nodeKind"`
	LanguageIn  []string `yaml:"languageIn"`

	constraintDef `yaml:",inline"`

	Properties []propShapeDef `yaml:"properties"`
	Sparql     []queryDef     `yaml:"sparql"`
}

type propShapeDef struct {
	Path    string `yaml:"path"`
	Message string `yaml:"message"`

	constraintDef `yaml:",inline"`
}

type queryDef struct {
	Message string `yaml:"message"`
	Query   string `yaml:"query"`
}

// constraintDef holds the YAML constraint fields shared by node and
// property shapes.
type constraintDef struct {
	Datatype          string   `yaml:"datatype"`
	Class             string   `yaml:"class"`
	Pattern           string   `yaml:"pattern"`
	MinLength         *int     `yaml:"minLength"`
	MaxLength         *int     `yaml:"maxLength"`
	In                []any    `yaml:"in"`
	HasValue          any      `yaml:"hasValue"`
	MinInclusive      *float64 `yaml:"minInclusive"`
	MaxInclusive      *float64 `yaml:"maxInclusive"`
	MinExclusive      *float64 `yaml:"minExclusive"`
	MaxExclusive      *float64 `yaml:"maxExclusive"`
	QualifiedClass    string   `yaml:"qualifiedClass"`
	QualifiedMinCount *int     `yaml:"qualifiedMinCount"`
}

// resolvedConstraints carries the decoded constraint values ready for
// assignment to either shape type.
type resolvedConstraints struct {
	datatype          *rdf.Term
	class             *rdf.Term
	pattern           *regexp.Regexp
	minLength         *int
	maxLength         *int
	in                []rdf.Term
	hasValue          *rdf.Term
	minInclusive      *float64
	maxInclusive      *float64
	minExclusive      *float64
	maxExclusive      *float64
	qualifiedClass    *rdf.Term
	qualifiedMinCount *int
}

// LoadFile parses a single YAML shape-definition file.
func LoadFile(path string) ([]*NodeShape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shape file: %w", err)
	}
	shapes, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse shape file %s: %w", path, err)
	}
	return shapes, nil
}

// LoadGlob loads shape definitions from every file matching the given
// doublestar patterns.
func LoadGlob(patterns ...string) ([]*NodeShape, error) {
	var all []*NodeShape
	for _, pattern := range patterns {
		base, rest := doublestar.SplitPattern(pattern)
		matches, err := doublestar.Glob(os.DirFS(base), rest)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			shapes, err := LoadFile(filepath.Join(base, m))
			if err != nil {
				return nil, err
			}
			all = append(all, shapes...)
		}
	}
	return all, nil
}

// Parse decodes YAML shape definitions into NodeShape values, expanding
// prefixed names against the file's prefix table and compiling regex
// patterns. Definitions are checked for internal consistency here;
// validators assume shapes that load successfully are well formed.
func Parse(data []byte) ([]*NodeShape, error) {
	var file shapeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode YAML: %w", err)
	}

	var shapes []*NodeShape
	for i, def := range file.Shapes {
		shape, err := buildNodeShape(def, file.Prefixes)
		if err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, def.ID, err)
		}
		shapes = append(shapes, shape)
	}
	return shapes, nil
}

func buildNodeShape(def nodeShapeDef, prefixes map[string]string) (*NodeShape, error) {
	if def.ID == "" {
		return nil, fmt.Errorf("missing id")
	}

	rc, err := resolveConstraints(def.constraintDef, prefixes)
	if err != nil {
		return nil, err
	}
	if rc.qualifiedClass != nil || rc.qualifiedMinCount != nil {
		return nil, fmt.Errorf("qualified constraints are only valid on property shapes")
	}

	shape := &NodeShape{
		ID:         rdf.NewIRI(expandIRI(def.ID, prefixes)),
		Message:    def.Message,
		LanguageIn: def.LanguageIn,

		Datatype:     rc.datatype,
		Class:        rc.class,
		Pattern:      rc.pattern,
		MinLength:    rc.minLength,
		MaxLength:    rc.maxLength,
		In:           rc.in,
		HasValue:     rc.hasValue,
		MinInclusive: rc.minInclusive,
		MaxInclusive: rc.maxInclusive,
		MinExclusive: rc.minExclusive,
		MaxExclusive: rc.maxExclusive,
	}

	if def.TargetClass != "" {
		tc := rdf.NewIRI(expandIRI(def.TargetClass, prefixes))
		shape.TargetClass = &tc
	}

	if def.NodeKind != "" {
		kind, err := parseNodeKind(def.NodeKind)
		if err != nil {
			return nil, err
		}
		shape.NodeKind = &kind
	}

	for j, p := range def.Properties {
		ps, err := buildPropertyShape(shape.ID, j, p, prefixes)
		if err != nil {
			return nil, fmt.Errorf("property %d: %w", j, err)
		}
		shape.Properties = append(shape.Properties, ps)
	}

	for _, q := range def.Sparql {
		if strings.TrimSpace(q.Query) == "" {
			return nil, fmt.Errorf("sparql constraint with empty query")
		}
		shape.Queries = append(shape.Queries, QueryConstraint{
			Query:   q.Query,
			Message: q.Message,
			Shape:   shape.ID,
		})
	}

	return shape, nil
}

func buildPropertyShape(owner rdf.Term, index int, def propShapeDef, prefixes map[string]string) (*PropertyShape, error) {
	if def.Path == "" {
		return nil, fmt.Errorf("missing path")
	}

	rc, err := resolveConstraints(def.constraintDef, prefixes)
	if err != nil {
		return nil, err
	}

	return &PropertyShape{
		ID:      rdf.NewIRI(fmt.Sprintf("%s/property/%d", owner.Value, index)),
		Path:    rdf.NewIRI(expandIRI(def.Path, prefixes)),
		Message: def.Message,

		Datatype:          rc.datatype,
		Class:             rc.class,
		Pattern:           rc.pattern,
		MinLength:         rc.minLength,
		MaxLength:         rc.maxLength,
		In:                rc.in,
		HasValue:          rc.hasValue,
		MinInclusive:      rc.minInclusive,
		MaxInclusive:      rc.maxInclusive,
		MinExclusive:      rc.minExclusive,
		MaxExclusive:      rc.maxExclusive,
		QualifiedClass:    rc.qualifiedClass,
		QualifiedMinCount: rc.qualifiedMinCount,
	}, nil
}

func resolveConstraints(def constraintDef, prefixes map[string]string) (*resolvedConstraints, error) {
	rc := &resolvedConstraints{
		minLength:         def.MinLength,
		maxLength:         def.MaxLength,
		minInclusive:      def.MinInclusive,
		maxInclusive:      def.MaxInclusive,
		minExclusive:      def.MinExclusive,
		maxExclusive:      def.MaxExclusive,
		qualifiedMinCount: def.QualifiedMinCount,
	}

	if def.Datatype != "" {
		dt := rdf.NewIRI(expandIRI(def.Datatype, prefixes))
		rc.datatype = &dt
	}
	if def.Class != "" {
		cls := rdf.NewIRI(expandIRI(def.Class, prefixes))
		rc.class = &cls
	}
	if def.QualifiedClass != "" {
		qc := rdf.NewIRI(expandIRI(def.QualifiedClass, prefixes))
		rc.qualifiedClass = &qc
	}
	if def.Pattern != "" {
		re, err := regexp.Compile(def.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", def.Pattern, err)
		}
		rc.pattern = re
	}
	if def.MinLength != nil && *def.MinLength < 0 {
		return nil, fmt.Errorf("minLength must not be negative")
	}
	if def.MaxLength != nil && *def.MaxLength < 0 {
		return nil, fmt.Errorf("maxLength must not be negative")
	}
	if def.QualifiedMinCount != nil && *def.QualifiedMinCount < 0 {
		return nil, fmt.Errorf("qualifiedMinCount must not be negative")
	}

	for _, v := range def.In {
		rc.in = append(rc.in, yamlTerm(v, prefixes))
	}
	if def.HasValue != nil {
		hv := yamlTerm(def.HasValue, prefixes)
		rc.hasValue = &hv
	}

	return rc, nil
}

// yamlTerm converts a YAML scalar to an RDF term. Strings that look like
// IRIs (absolute or prefixed) become IRI terms; everything else becomes
// an appropriately typed literal.
func yamlTerm(v any, prefixes map[string]string) rdf.Term {
	switch val := v.(type) {
	case string:
		if strings.HasPrefix(val, "http://") || strings.HasPrefix(val, "https://") {
			return rdf.NewIRI(val)
		}
		if expanded := expandIRI(val, prefixes); expanded != val {
			return rdf.NewIRI(expanded)
		}
		return rdf.NewLiteral(val)
	case bool:
		return rdf.NewBoolean(val)
	case int:
		return rdf.NewInteger(int64(val))
	case int64:
		return rdf.NewInteger(val)
	case float64:
		return rdf.NewDecimal(val)
	default:
		return rdf.NewLiteral(fmt.Sprintf("%v", val))
	}
}

// expandIRI expands "pfx:local" against the prefix table; absolute IRIs
// and unknown prefixes pass through unchanged.
func expandIRI(s string, prefixes map[string]string) string {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	idx := strings.Index(s, ":")
	if idx <= 0 {
		return s
	}
	if ns, ok := prefixes[s[:idx]]; ok {
		return ns + s[idx+1:]
	}
	return s
}

// parseNodeKind maps the YAML node-kind keyword to a NodeKind.
func parseNodeKind(s string) (NodeKind, error) {
	switch strings.ToLower(s) {
	case "iri":
		return NodeKindIRI, nil
	case "blanknode", "blank":
		return NodeKindBlankNode, nil
	case "literal":
		return NodeKindLiteral, nil
	default:
		return "", fmt.Errorf("unknown nodeKind %q (want iri, blankNode, or literal)", s)
	}
}
