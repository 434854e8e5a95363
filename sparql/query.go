package sparql

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/c360studio/semshapes/rdf"
)

// Query is a parsed SELECT query.
type Query struct {
	// Vars are the projected variable names without sigils. Empty
	// means SELECT * (project every bound variable).
	Vars []string

	// Binds are constant bindings applied before pattern matching.
	Binds []Bind

	// Patterns are the basic graph patterns joined in order.
	Patterns []TriplePattern

	// Filters are evaluated against each complete solution.
	Filters []Expr
}

// SelectsVar reports whether the query's projection names the variable.
func (q *Query) SelectsVar(name string) bool {
	for _, v := range q.Vars {
		if v == name {
			return true
		}
	}
	return false
}

// Bind is a constant variable binding (BIND(term AS ?var)).
type Bind struct {
	Var  string
	Term rdf.Term
}

// PatternTerm is one position of a triple pattern: either a variable or
// a constant term.
type PatternTerm struct {
	IsVar bool
	Var   string
	Term  rdf.Term
}

// Variable creates a variable pattern term.
func Variable(name string) PatternTerm {
	return PatternTerm{IsVar: true, Var: name}
}

// Constant creates a constant pattern term.
func Constant(t rdf.Term) PatternTerm {
	return PatternTerm{Term: t}
}

// TriplePattern matches triples positionally.
type TriplePattern struct {
	Subject   PatternTerm
	Predicate PatternTerm
	Object    PatternTerm
}

// Expr is a filter expression node.
type Expr interface {
	isExpr()
}

// Comparison compares two operands with <, <=, >, >=, =, or !=.
type Comparison struct {
	Op    string
	Left  Operand
	Right Operand
}

// Logical combines two expressions with && or ||.
type Logical struct {
	Op    string
	Left  Expr
	Right Expr
}

// Not negates an expression.
type Not struct {
	Inner Expr
}

func (Comparison) isExpr() {}
func (Logical) isExpr()    {}
func (Not) isExpr()        {}

// Operand is a comparison operand: a variable or a constant term.
type Operand struct {
	IsVar bool
	Var   string
	Term  rdf.Term
}

// Parse parses a SELECT query in the supported subset.
func Parse(text string) (*Query, error) {
	s, err := scan(text)
	if err != nil {
		return nil, err
	}
	p := &queryParser{tokens: s}
	return p.parseQuery()
}

type qtokKind int

const (
	qtokKeyword qtokKind = iota // SELECT, WHERE, FILTER, BIND, AS, a
	qtokVar
	qtokIRI
	qtokBlank
	qtokLiteral
	qtokNumber
	qtokBoolean
	qtokStar
	qtokLBrace
	qtokRBrace
	qtokLParen
	qtokRParen
	qtokDot
	qtokOp       // < <= > >= = !=
	qtokAnd      // &&
	qtokOr       // ||
	qtokBang     // !
	qtokDatatype // ^^
	qtokLang     // @tag
)

type qtoken struct {
	kind  qtokKind
	value string
}

// scan tokenizes the query text.
func scan(text string) ([]qtoken, error) {
	var tokens []qtoken
	runes := []rune(text)
	i, n := 0, len(runes)

	for i < n {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '#':
			for i < n && runes[i] != '\n' {
				i++
			}
		case r == '?' || r == '$':
			j := i + 1
			for j < n && isVarRune(runes[j]) {
				j++
			}
			if j == i+1 {
				return nil, fmt.Errorf("empty variable name at offset %d", i)
			}
			tokens = append(tokens, qtoken{kind: qtokVar, value: string(runes[i+1 : j])})
			i = j
		case r == '<':
			// Disambiguate IRI from less-than: an IRI must close on
			// the same logical token without whitespace.
			if j := scanIRIEnd(runes, i); j > 0 {
				tokens = append(tokens, qtoken{kind: qtokIRI, value: string(runes[i+1 : j])})
				i = j + 1
				break
			}
			if i+1 < n && runes[i+1] == '=' {
				tokens = append(tokens, qtoken{kind: qtokOp, value: "<="})
				i += 2
			} else {
				tokens = append(tokens, qtoken{kind: qtokOp, value: "<"})
				i++
			}
		case r == '>':
			if i+1 < n && runes[i+1] == '=' {
				tokens = append(tokens, qtoken{kind: qtokOp, value: ">="})
				i += 2
			} else {
				tokens = append(tokens, qtoken{kind: qtokOp, value: ">"})
				i++
			}
		case r == '=':
			tokens = append(tokens, qtoken{kind: qtokOp, value: "="})
			i++
		case r == '!':
			if i+1 < n && runes[i+1] == '=' {
				tokens = append(tokens, qtoken{kind: qtokOp, value: "!="})
				i += 2
			} else {
				tokens = append(tokens, qtoken{kind: qtokBang})
				i++
			}
		case r == '&' && i+1 < n && runes[i+1] == '&':
			tokens = append(tokens, qtoken{kind: qtokAnd})
			i += 2
		case r == '|' && i+1 < n && runes[i+1] == '|':
			tokens = append(tokens, qtoken{kind: qtokOr})
			i += 2
		case r == '^' && i+1 < n && runes[i+1] == '^':
			tokens = append(tokens, qtoken{kind: qtokDatatype})
			i += 2
		case r == '@':
			j := i + 1
			for j < n && (unicode.IsLetter(runes[j]) || runes[j] == '-') {
				j++
			}
			tokens = append(tokens, qtoken{kind: qtokLang, value: string(runes[i+1 : j])})
			i = j
		case r == '"':
			var sb strings.Builder
			j := i + 1
			closed := false
			for j < n {
				if runes[j] == '\\' && j+1 < n {
					switch runes[j+1] {
					case 'n':
						sb.WriteRune('\n')
					case 't':
						sb.WriteRune('\t')
					default:
						sb.WriteRune(runes[j+1])
					}
					j += 2
					continue
				}
				if runes[j] == '"' {
					closed = true
					break
				}
				sb.WriteRune(runes[j])
				j++
			}
			if !closed {
				return nil, fmt.Errorf("unterminated string at offset %d", i)
			}
			tokens = append(tokens, qtoken{kind: qtokLiteral, value: sb.String()})
			i = j + 1
		case r == '_' && i+1 < n && runes[i+1] == ':':
			j := i + 2
			for j < n && isVarRune(runes[j]) {
				j++
			}
			tokens = append(tokens, qtoken{kind: qtokBlank, value: string(runes[i+2 : j])})
			i = j
		case r == '{':
			tokens = append(tokens, qtoken{kind: qtokLBrace})
			i++
		case r == '}':
			tokens = append(tokens, qtoken{kind: qtokRBrace})
			i++
		case r == '(':
			tokens = append(tokens, qtoken{kind: qtokLParen})
			i++
		case r == ')':
			tokens = append(tokens, qtoken{kind: qtokRParen})
			i++
		case r == '.':
			tokens = append(tokens, qtoken{kind: qtokDot})
			i++
		case r == '*':
			tokens = append(tokens, qtoken{kind: qtokStar})
			i++
		case r == '-' || r == '+' || unicode.IsDigit(r):
			j := i + 1
			for j < n && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			if j > i && runes[j-1] == '.' {
				j--
			}
			tokens = append(tokens, qtoken{kind: qtokNumber, value: string(runes[i:j])})
			i = j
		case unicode.IsLetter(r):
			j := i
			for j < n && isVarRune(runes[j]) {
				j++
			}
			word := string(runes[i:j])
			switch strings.ToUpper(word) {
			case "SELECT", "WHERE", "FILTER", "BIND", "AS":
				tokens = append(tokens, qtoken{kind: qtokKeyword, value: strings.ToUpper(word)})
			case "TRUE", "FALSE":
				tokens = append(tokens, qtoken{kind: qtokBoolean, value: strings.ToLower(word)})
			default:
				if word == "a" {
					tokens = append(tokens, qtoken{kind: qtokKeyword, value: "a"})
				} else {
					return nil, fmt.Errorf("unexpected identifier %q at offset %d", word, i)
				}
			}
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", r, i)
		}
	}
	return tokens, nil
}

// scanIRIEnd returns the index of the closing '>' when runes[start] opens
// an IRI reference, or 0 when the '<' is a comparison operator.
func scanIRIEnd(runes []rune, start int) int {
	for j := start + 1; j < len(runes); j++ {
		r := runes[j]
		if r == '>' {
			return j
		}
		if unicode.IsSpace(r) || r == '"' || r == '{' || r == '}' || r == '(' || r == ')' {
			return 0
		}
	}
	return 0
}

func isVarRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

type queryParser struct {
	tokens []qtoken
	pos    int
}

func (p *queryParser) done() bool { return p.pos >= len(p.tokens) }

func (p *queryParser) peek() qtoken {
	if p.done() {
		return qtoken{kind: -1}
	}
	return p.tokens[p.pos]
}

func (p *queryParser) next() qtoken {
	t := p.peek()
	p.pos++
	return t
}

func (p *queryParser) parseQuery() (*Query, error) {
	if t := p.next(); t.kind != qtokKeyword || t.value != "SELECT" {
		return nil, fmt.Errorf("query must start with SELECT")
	}

	q := &Query{}

	// Projection: * or one or more variables.
	switch p.peek().kind {
	case qtokStar:
		p.next()
	case qtokVar:
		for p.peek().kind == qtokVar {
			q.Vars = append(q.Vars, p.next().value)
		}
	default:
		return nil, fmt.Errorf("SELECT needs a projection (* or variables)")
	}

	if t := p.next(); t.kind != qtokKeyword || t.value != "WHERE" {
		return nil, fmt.Errorf("expected WHERE after projection")
	}
	if t := p.next(); t.kind != qtokLBrace {
		return nil, fmt.Errorf("expected '{' after WHERE")
	}

	for {
		t := p.peek()
		switch {
		case t.kind == qtokRBrace:
			p.next()
			return q, nil
		case t.kind == qtokKeyword && t.value == "FILTER":
			p.next()
			expr, err := p.parseFilter()
			if err != nil {
				return nil, err
			}
			q.Filters = append(q.Filters, expr)
		case t.kind == qtokKeyword && t.value == "BIND":
			p.next()
			bind, err := p.parseBind()
			if err != nil {
				return nil, err
			}
			q.Binds = append(q.Binds, bind)
		case t.kind == -1:
			return nil, fmt.Errorf("unexpected end of query, expected '}'")
		default:
			pattern, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			q.Patterns = append(q.Patterns, pattern)
			// The trailing '.' on a pattern is optional before '}'.
			if p.peek().kind == qtokDot {
				p.next()
			}
		}
	}
}

// parseBind consumes "( term AS ?var )" after the BIND keyword.
func (p *queryParser) parseBind() (Bind, error) {
	if t := p.next(); t.kind != qtokLParen {
		return Bind{}, fmt.Errorf("expected '(' after BIND")
	}
	term, err := p.parseConstantTerm()
	if err != nil {
		return Bind{}, fmt.Errorf("BIND value: %w", err)
	}
	if t := p.next(); t.kind != qtokKeyword || t.value != "AS" {
		return Bind{}, fmt.Errorf("expected AS in BIND")
	}
	v := p.next()
	if v.kind != qtokVar {
		return Bind{}, fmt.Errorf("expected variable after AS")
	}
	if t := p.next(); t.kind != qtokRParen {
		return Bind{}, fmt.Errorf("expected ')' closing BIND")
	}
	return Bind{Var: v.value, Term: term}, nil
}

// parsePattern consumes one subject-predicate-object pattern.
func (p *queryParser) parsePattern() (TriplePattern, error) {
	s, err := p.parsePatternTerm()
	if err != nil {
		return TriplePattern{}, fmt.Errorf("pattern subject: %w", err)
	}
	pred, err := p.parsePatternTerm()
	if err != nil {
		return TriplePattern{}, fmt.Errorf("pattern predicate: %w", err)
	}
	o, err := p.parsePatternTerm()
	if err != nil {
		return TriplePattern{}, fmt.Errorf("pattern object: %w", err)
	}
	return TriplePattern{Subject: s, Predicate: pred, Object: o}, nil
}

func (p *queryParser) parsePatternTerm() (PatternTerm, error) {
	if p.peek().kind == qtokVar {
		return Variable(p.next().value), nil
	}
	term, err := p.parseConstantTerm()
	if err != nil {
		return PatternTerm{}, err
	}
	return Constant(term), nil
}

// parseConstantTerm consumes a non-variable term.
func (p *queryParser) parseConstantTerm() (rdf.Term, error) {
	t := p.next()
	switch t.kind {
	case qtokIRI:
		return rdf.NewIRI(t.value), nil
	case qtokBlank:
		return rdf.NewBlankNode(t.value), nil
	case qtokNumber:
		if strings.Contains(t.value, ".") {
			return rdf.NewTypedLiteral(t.value, rdf.XsdDecimal), nil
		}
		return rdf.NewTypedLiteral(t.value, rdf.XsdInteger), nil
	case qtokBoolean:
		return rdf.NewTypedLiteral(t.value, rdf.XsdBoolean), nil
	case qtokKeyword:
		if t.value == "a" {
			return rdf.NewIRI(rdf.RdfType), nil
		}
		return rdf.Term{}, fmt.Errorf("unexpected keyword %s", t.value)
	case qtokLiteral:
		lexical := t.value
		switch p.peek().kind {
		case qtokLang:
			return rdf.NewLangLiteral(lexical, p.next().value), nil
		case qtokDatatype:
			p.next()
			dt := p.next()
			if dt.kind != qtokIRI {
				return rdf.Term{}, fmt.Errorf("datatype must be an IRI")
			}
			return rdf.NewTypedLiteral(lexical, dt.value), nil
		}
		return rdf.NewLiteral(lexical), nil
	default:
		return rdf.Term{}, fmt.Errorf("expected a term")
	}
}

// parseFilter consumes "( expr )" after the FILTER keyword.
func (p *queryParser) parseFilter() (Expr, error) {
	if t := p.next(); t.kind != qtokLParen {
		return nil, fmt.Errorf("expected '(' after FILTER")
	}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.next(); t.kind != qtokRParen {
		return nil, fmt.Errorf("expected ')' closing FILTER")
	}
	return expr, nil
}

func (p *queryParser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == qtokOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Logical{Op: "||", Left: left, Right: right}
	}
	return left, nil
}

func (p *queryParser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == qtokAnd {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = Logical{Op: "&&", Left: left, Right: right}
	}
	return left, nil
}

func (p *queryParser) parseUnary() (Expr, error) {
	switch p.peek().kind {
	case qtokBang:
		p.next()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Not{Inner: inner}, nil
	case qtokLParen:
		p.next()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if t := p.next(); t.kind != qtokRParen {
			return nil, fmt.Errorf("expected ')'")
		}
		return expr, nil
	default:
		return p.parseComparison()
	}
}

func (p *queryParser) parseComparison() (Expr, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	op := p.next()
	if op.kind != qtokOp {
		return nil, fmt.Errorf("expected comparison operator")
	}
	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	return Comparison{Op: op.value, Left: left, Right: right}, nil
}

func (p *queryParser) parseOperand() (Operand, error) {
	if p.peek().kind == qtokVar {
		return Operand{IsVar: true, Var: p.next().value}, nil
	}
	term, err := p.parseConstantTerm()
	if err != nil {
		return Operand{}, err
	}
	return Operand{Term: term}, nil
}
