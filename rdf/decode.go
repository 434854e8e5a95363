package rdf

import (
	"fmt"
	"strings"
	"unicode"
)

// DecodeTurtle parses Turtle (or N-Triples, which is a subset of what the
// tokenizer accepts) into a Graph. It covers the subset emitted by
// EncodeTurtle: prefix directives, prefixed names, bracketed IRIs, blank
// nodes, quoted literals with datatype or language annotations, the "a"
// keyword, bare booleans and numbers, and ";" / "," continuations.
func DecodeTurtle(text string) (*Graph, error) {
	p := &turtleParser{
		tokens:   nil,
		prefixes: make(map[string]string),
	}
	tokens, err := tokenizeTurtle(text)
	if err != nil {
		return nil, err
	}
	p.tokens = tokens

	g := NewGraph()
	for !p.done() {
		if p.peek().kind == tokPrefix {
			if err := p.parsePrefix(); err != nil {
				return nil, err
			}
			continue
		}
		if err := p.parseStatement(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

type tokenKind int

const (
	tokIRI tokenKind = iota
	tokPrefixedName
	tokBlankNode
	tokLiteral
	tokLangTag
	tokDatatypeMark // ^^
	tokA
	tokNumber
	tokBoolean
	tokDot
	tokSemicolon
	tokComma
	tokPrefix // @prefix
)

type token struct {
	kind  tokenKind
	value string
	extra string // local part for prefixed names
}

// tokenizeTurtle splits the input into Turtle tokens.
func tokenizeTurtle(text string) ([]token, error) {
	var tokens []token
	runes := []rune(text)
	i := 0
	n := len(runes)

	for i < n {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '#':
			for i < n && runes[i] != '\n' {
				i++
			}
		case r == '<':
			j := i + 1
			for j < n && runes[j] != '>' {
				j++
			}
			if j >= n {
				return nil, fmt.Errorf("unterminated IRI at offset %d", i)
			}
			tokens = append(tokens, token{kind: tokIRI, value: string(runes[i+1 : j])})
			i = j + 1
		case r == '"':
			value, next, err := scanQuoted(runes, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokLiteral, value: value})
			i = next
		case r == '^' && i+1 < n && runes[i+1] == '^':
			tokens = append(tokens, token{kind: tokDatatypeMark})
			i += 2
		case r == '@':
			j := i + 1
			for j < n && (unicode.IsLetter(runes[j]) || runes[j] == '-') {
				j++
			}
			word := string(runes[i+1 : j])
			if word == "prefix" {
				tokens = append(tokens, token{kind: tokPrefix})
			} else {
				tokens = append(tokens, token{kind: tokLangTag, value: word})
			}
			i = j
		case r == '.':
			tokens = append(tokens, token{kind: tokDot})
			i++
		case r == ';':
			tokens = append(tokens, token{kind: tokSemicolon})
			i++
		case r == ',':
			tokens = append(tokens, token{kind: tokComma})
			i++
		case r == '_' && i+1 < n && runes[i+1] == ':':
			j := i + 2
			for j < n && isNameRune(runes[j]) {
				j++
			}
			tokens = append(tokens, token{kind: tokBlankNode, value: string(runes[i+2 : j])})
			i = j
		case r == '-' || r == '+' || unicode.IsDigit(r):
			j := i + 1
			for j < n && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			// A trailing '.' is the statement terminator, not part of the number.
			if j > i && runes[j-1] == '.' {
				j--
			}
			tokens = append(tokens, token{kind: tokNumber, value: string(runes[i:j])})
			i = j
		default:
			j := i
			for j < n && isNameRune(runes[j]) {
				j++
			}
			if j == i {
				return nil, fmt.Errorf("unexpected character %q at offset %d", r, i)
			}
			word := string(runes[i:j])
			switch {
			case j < n && runes[j] == ':':
				// Prefixed name: pfx:local
				k := j + 1
				for k < n && isNameRune(runes[k]) {
					k++
				}
				tokens = append(tokens, token{kind: tokPrefixedName, value: word, extra: string(runes[j+1 : k])})
				i = k
			case word == "a":
				tokens = append(tokens, token{kind: tokA})
				i = j
			case word == "true" || word == "false":
				tokens = append(tokens, token{kind: tokBoolean, value: word})
				i = j
			default:
				return nil, fmt.Errorf("unexpected token %q at offset %d", word, i)
			}
		}
	}
	return tokens, nil
}

// scanQuoted reads a quoted literal starting at runes[start] == '"' and
// returns the unescaped value and the index after the closing quote.
func scanQuoted(runes []rune, start int) (string, int, error) {
	var sb strings.Builder
	i := start + 1
	n := len(runes)
	for i < n {
		r := runes[i]
		if r == '\\' && i+1 < n {
			switch runes[i+1] {
			case 'n':
				sb.WriteRune('\n')
			case 'r':
				sb.WriteRune('\r')
			case 't':
				sb.WriteRune('\t')
			case '"':
				sb.WriteRune('"')
			case '\\':
				sb.WriteRune('\\')
			default:
				sb.WriteRune(runes[i+1])
			}
			i += 2
			continue
		}
		if r == '"' {
			return sb.String(), i + 1, nil
		}
		sb.WriteRune(r)
		i++
	}
	return "", 0, fmt.Errorf("unterminated literal at offset %d", start)
}

func isNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}

type turtleParser struct {
	tokens   []token
	pos      int
	prefixes map[string]string
}

func (p *turtleParser) done() bool   { return p.pos >= len(p.tokens) }
func (p *turtleParser) peek() token  { return p.tokens[p.pos] }
func (p *turtleParser) next() token  { t := p.tokens[p.pos]; p.pos++; return t }
func (p *turtleParser) expect(k tokenKind, what string) (token, error) {
	if p.done() {
		return token{}, fmt.Errorf("unexpected end of input, expected %s", what)
	}
	t := p.next()
	if t.kind != k {
		return token{}, fmt.Errorf("expected %s", what)
	}
	return t, nil
}

// parsePrefix consumes "@prefix name: <iri> ." and records the mapping.
func (p *turtleParser) parsePrefix() error {
	p.next() // @prefix
	name, err := p.expect(tokPrefixedName, "prefix name")
	if err != nil {
		return fmt.Errorf("prefix directive: %w", err)
	}
	iri, err := p.expect(tokIRI, "prefix IRI")
	if err != nil {
		return fmt.Errorf("prefix directive: %w", err)
	}
	if _, err := p.expect(tokDot, "'.'"); err != nil {
		return fmt.Errorf("prefix directive: %w", err)
	}
	p.prefixes[name.value] = iri.value
	return nil
}

// parseStatement consumes one subject with its predicate-object list.
func (p *turtleParser) parseStatement(g *Graph) error {
	subject, err := p.parseTerm()
	if err != nil {
		return fmt.Errorf("subject: %w", err)
	}
	for {
		predicate, err := p.parseTerm()
		if err != nil {
			return fmt.Errorf("predicate: %w", err)
		}
		for {
			object, err := p.parseTerm()
			if err != nil {
				return fmt.Errorf("object: %w", err)
			}
			g.Add(Triple{Subject: subject, Predicate: predicate, Object: object})
			if p.done() {
				return fmt.Errorf("unexpected end of input, expected '.'")
			}
			if p.peek().kind == tokComma {
				p.next()
				continue
			}
			break
		}
		switch p.next().kind {
		case tokDot:
			return nil
		case tokSemicolon:
			// Turtle allows a trailing ";" before the ".".
			if !p.done() && p.peek().kind == tokDot {
				p.next()
				return nil
			}
			continue
		default:
			return fmt.Errorf("expected '.' or ';' after object")
		}
	}
}

// parseTerm consumes a single term, including any datatype or language
// annotation on literals.
func (p *turtleParser) parseTerm() (Term, error) {
	if p.done() {
		return Term{}, fmt.Errorf("unexpected end of input")
	}
	t := p.next()
	switch t.kind {
	case tokIRI:
		return NewIRI(t.value), nil
	case tokA:
		return NewIRI(RdfType), nil
	case tokBlankNode:
		return NewBlankNode(t.value), nil
	case tokPrefixedName:
		ns, ok := p.prefixes[t.value]
		if !ok {
			return Term{}, fmt.Errorf("undeclared prefix %q", t.value)
		}
		return NewIRI(ns + t.extra), nil
	case tokNumber:
		if strings.Contains(t.value, ".") {
			return NewTypedLiteral(t.value, XsdDecimal), nil
		}
		return NewTypedLiteral(t.value, XsdInteger), nil
	case tokBoolean:
		return NewTypedLiteral(t.value, XsdBoolean), nil
	case tokLiteral:
		lexical := t.value
		if !p.done() {
			switch p.peek().kind {
			case tokLangTag:
				lang := p.next()
				return NewLangLiteral(lexical, lang.value), nil
			case tokDatatypeMark:
				p.next()
				dt, err := p.parseTerm()
				if err != nil {
					return Term{}, fmt.Errorf("datatype: %w", err)
				}
				if !dt.IsIRI() {
					return Term{}, fmt.Errorf("datatype must be an IRI")
				}
				return NewTypedLiteral(lexical, dt.Value), nil
			}
		}
		return NewLiteral(lexical), nil
	default:
		return Term{}, fmt.Errorf("unexpected token")
	}
}
