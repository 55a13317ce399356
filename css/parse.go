package css

import (
	"fmt"
	"strings"
)

type parser struct {
	tokens []token
	index  int
}

func (p *parser) next() token {
	if p.index == len(p.tokens) {
		return token{category: tokenEOF}
	}
	t := p.tokens[p.index]
	p.index++
	return t
}

func (p *parser) peek() token {
	t := p.next()
	p.index--
	return t
}

func parse(tokens []token) (*Selector, error) {
	p := &parser{tokens: tokens}
	s := &Selector{Tag: "*"}
	switch p.peek().category {
	case tokenIdent:
		s.Tag = strings.ToLower(p.next().string)
	case tokenUniversal:
		p.next()
	}
	for {
		switch t := p.peek(); t.category {
		case tokenEOF:
			return s, nil
		case tokenID:
			s.Attrs = append(s.Attrs, attrPredicate("id", "=", p.next().string))
		case tokenClass:
			s.Attrs = append(s.Attrs, attrPredicate("class", "~=", p.next().string))
		case tokenBracketOpen:
			a, err := p.parseAttrPredicate()
			if err != nil {
				return nil, err
			}
			s.Attrs = append(s.Attrs, a)
		case tokenPseudoClass:
			ps, err := ResolvePseudoClass(p.next().string, "")
			if err != nil {
				return nil, err
			}
			s.Pseudos = append(s.Pseudos, ps)
		case tokenPseudoFunction:
			ps, err := p.parsePseudoFunction()
			if err != nil {
				return nil, err
			}
			s.Pseudos = append(s.Pseudos, ps)
		default:
			return nil, fmt.Errorf("%w: unexpected %q at index %d", ErrMalformedSelector, t.string, t.index)
		}
	}
}

func (p *parser) parseAttrPredicate() (AttrPredicate, error) {
	if t := p.next(); t.category != tokenBracketOpen {
		return AttrPredicate{}, fmt.Errorf("%w: expected [ but got %q", ErrMalformedSelector, t.string)
	}
	if t := p.peek(); t.category != tokenIdent {
		return AttrPredicate{}, fmt.Errorf("%w: expected attribute name but got %q", ErrMalformedSelector, t.string)
	}
	name, op := strings.ToLower(p.next().string), ""
	if p.peek().category == tokenMatcher {
		op = p.next().string
	}
	if op == "" {
		if t := p.next(); t.category != tokenBracketClose {
			return AttrPredicate{}, fmt.Errorf("%w: expected ] but got %q", ErrMalformedSelector, t.string)
		}
		return attrPredicate(name, "", ""), nil
	}
	t := p.next()
	if t.category != tokenString && t.category != tokenIdent {
		return AttrPredicate{}, fmt.Errorf("%w: expected attribute value but got %q", ErrMalformedSelector, t.string)
	}
	value := t.string
	if t.category == tokenString {
		value = value[1 : len(value)-1]
	}
	if t := p.next(); t.category != tokenBracketClose {
		return AttrPredicate{}, fmt.Errorf("%w: expected ] but got %q", ErrMalformedSelector, t.string)
	}
	return attrPredicate(name, op, value), nil
}

func (p *parser) parsePseudoFunction() (PseudoPredicate, error) {
	name := strings.ToLower(p.next().string)
	if PseudoFunctions[name] == nil {
		return PseudoPredicate{}, fmt.Errorf("%w: :%s()", ErrUnknownPseudoClass, name)
	}
	if p.peek().category != tokenFunctionArguments {
		return PseudoPredicate{}, fmt.Errorf("%w: expected arguments for :%s()", ErrMalformedSelector, name)
	}
	args := p.next().string
	if len(args) != 0 {
		args = args[1 : len(args)-1] // strip ()
	}
	return ResolvePseudoClass(name, args)
}
