// Package css compiles CSS-style selector strings into predicates over
// dom.Elements. The grammar covers a single compound selector (tag, #id,
// .class, [attr], :pseudo); combinators are out of scope.
package css

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/nlsn/markup/dom"
)

var (
	ErrMalformedSelector  = errors.New("malformed selector")
	ErrUnknownPseudoClass = errors.New("unknown pseudo class")
	ErrInvalidArgument    = errors.New("invalid argument")
)

// Selector is a compiled selector: a tag constraint ("*" matches any tag)
// plus attribute and pseudo class predicates, evaluated with AND semantics.
// A Selector is immutable once compiled.
type Selector struct {
	Tag     string
	Attrs   []AttrPredicate
	Pseudos []PseudoPredicate
}

// AttrPredicate is one [name op value] condition. An empty Op tests attribute
// presence only.
type AttrPredicate struct {
	Name  string
	Op    string
	Value string
	match MatchFunc
}

// PseudoPredicate is a named predicate resolved from the pseudo class
// registry at compile time.
type PseudoPredicate struct {
	Name   string
	Arg    string
	hasArg bool
	match  func(*dom.Element) bool
}

// MatchFunc reports whether an attribute value matches an operand.
type MatchFunc func(value, operand string) bool

// Matchers maps attribute selector operators to their match functions. The
// "" operator is the presence test of a value-less [name] selector.
var Matchers = map[string]MatchFunc{
	"":   func(string, string) bool { return true },
	"=":  func(v, o string) bool { return v == o },
	"~=": includeMatch,
	"|=": func(v, o string) bool { return v == o || strings.HasPrefix(v, o+"-") },
	"^=": func(v, o string) bool { return o != "" && strings.HasPrefix(v, o) },
	"$=": func(v, o string) bool { return o != "" && strings.HasSuffix(v, o) },
	"*=": func(v, o string) bool { return o != "" && strings.Contains(v, o) },
}

// Compile parses a selector expression. It fails with ErrInvalidArgument for
// a blank expression, ErrUnknownPseudoClass for an unregistered pseudo class
// and ErrMalformedSelector for anything the grammar rejects. No partial
// Selector is ever returned.
func Compile(expression string) (*Selector, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("%w: empty selector", ErrInvalidArgument)
	}
	tokens, err := lex(expression)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedSelector, err)
	}
	return parse(tokens)
}

func MustCompile(expression string) *Selector {
	s, err := Compile(expression)
	if err != nil {
		panic(err)
	}
	return s
}

// Match reports whether e is eligible for the selector. It is nil-safe and
// never fails for a compiled selector: missing attributes and foreign tags
// evaluate to false. Checks short-circuit in order tag, attribute predicates,
// pseudo predicates.
func (s *Selector) Match(e *dom.Element) bool {
	if s == nil || e == nil {
		return false
	}
	if s.Tag != "*" && !strings.EqualFold(s.Tag, e.Tag()) {
		return false
	}
	for _, a := range s.Attrs {
		if !a.Match(e) {
			return false
		}
	}
	for _, p := range s.Pseudos {
		if !p.Match(e) {
			return false
		}
	}
	return true
}

// Filter yields the elements of els for which Match holds, preserving order.
// The sequence is lazy and restartable; re-iterating re-evaluates.
func (s *Selector) Filter(els iter.Seq[*dom.Element]) iter.Seq[*dom.Element] {
	return func(yield func(*dom.Element) bool) {
		for e := range els {
			if s.Match(e) && !yield(e) {
				return
			}
		}
	}
}

// Match reports whether e carries an attribute with the predicate's name
// (case-insensitive, first match) whose value satisfies the operator. A
// missing attribute always fails.
func (a AttrPredicate) Match(e *dom.Element) bool {
	v, ok := e.Attr(a.Name)
	return ok && a.match(v, a.Value)
}

func (p PseudoPredicate) Match(e *dom.Element) bool { return p.match(e) }

// String renders the canonical form: uppercase tag, attribute predicates and
// pseudo predicates in source order. Compile(s.String()) is equivalent to s.
func (s *Selector) String() string {
	var out strings.Builder
	if s.Tag == "*" {
		out.WriteString("*")
	} else {
		out.WriteString(strings.ToUpper(EscapeIdentifier(s.Tag)))
	}
	for _, a := range s.Attrs {
		out.WriteString(a.String())
	}
	for _, p := range s.Pseudos {
		out.WriteString(p.String())
	}
	return out.String()
}

func (a AttrPredicate) String() string {
	if a.Op == "" {
		return "[" + EscapeIdentifier(a.Name) + "]"
	}
	return "[" + EscapeIdentifier(a.Name) + a.Op + `"` + EscapeString(a.Value) + `"]`
}

func (p PseudoPredicate) String() string {
	if p.hasArg {
		return ":" + EscapeIdentifier(p.Name) + "(" + p.Arg + ")"
	}
	return ":" + EscapeIdentifier(p.Name)
}
