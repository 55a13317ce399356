package css

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nlsn/markup/dom"
)

var (
	complexNthRegexp = regexp.MustCompile(`^\s*([+-]?\d*)?n\s*([+-]?\s*\d+)?\s*$`)
	simpleNthRegexp  = regexp.MustCompile(`^\s*([+-]?\d+)\s*$`)
	whitespaceRegexp = regexp.MustCompile(`\s`)
)

func attrPredicate(name, op, value string) AttrPredicate {
	m := Matchers[op]
	if m == nil {
		panic("invalid match operator for attribute predicate: " + op)
	}
	return AttrPredicate{Name: name, Op: op, Value: value, match: m}
}

// includeMatch tests exact membership of operand in the whitespace separated
// token list value; it never degrades to substring containment.
func includeMatch(value, operand string) bool {
	if operand == "" {
		return false
	}
	for {
		if i := strings.IndexAny(value, " \t\r\n\f"); i == -1 {
			return value == operand
		} else if value[:i] == operand {
			return true
		} else {
			value = value[i+1:]
		}
	}
}

// siblingIndex returns the 1-based position of e among its parent's child
// elements, counting from the end when fromEnd is set and only siblings with
// e's tag when ofType is set. A parentless element counts as position 1.
func siblingIndex(e *dom.Element, fromEnd, ofType bool) int {
	if e.Parent() == nil {
		return 1
	}
	nth := 0
	siblings := e.Parent().Children()
	for i := range siblings {
		c := siblings[i]
		if fromEnd {
			c = siblings[len(siblings)-1-i]
		}
		if !ofType || strings.EqualFold(c.Tag(), e.Tag()) {
			nth++
		}
		if c == e {
			return nth
		}
	}
	return 0
}

func nthSibling(fromEnd, ofType bool) func(string) (func(*dom.Element) bool, error) {
	return func(args string) (func(*dom.Element) bool, error) {
		a, b, err := parseNthArgs(args)
		return func(e *dom.Element) bool {
			return isNth(a, b, siblingIndex(e, fromEnd, ofType))
		}, err
	}
}

func positionalChild(fromEnd, ofType bool) func(*dom.Element) bool {
	return func(e *dom.Element) bool {
		return siblingIndex(e, fromEnd, ofType) == 1
	}
}

func parseNthArgs(args string) (int, int, error) {
	if args = strings.TrimSpace(args); args == "odd" {
		return 2, 1, nil
	} else if args == "even" {
		return 2, 0, nil
	} else if m := simpleNthRegexp.FindStringSubmatch(args); m != nil {
		b, err := atoi(m[1], "0")
		return 0, b, err
	} else if m := complexNthRegexp.FindStringSubmatch(args); m != nil {
		a, err := atoi(m[1], "1")
		if err != nil {
			return 0, 0, err
		}
		b, err := atoi(m[2], "0")
		if err != nil {
			return 0, 0, err
		}
		return a, b, nil
	}
	return 0, 0, fmt.Errorf("bad nth arguments: %q", args)
}

func atoi(s, fallback string) (int, error) {
	s = whitespaceRegexp.ReplaceAllString(s, "")
	if s == "" || s == "+" || s == "-" {
		s = s + fallback
	}
	return strconv.Atoi(s)
}

// isNth checks whether y is a valid result for the given a and b.
// The formula is y = (a*n+b) with n being any positive integer, starting with 1.
// If a is 0 a*n is 0 and y must be b - otherwise a must fit into y-b n times, i.e. 1 or more times
// without any remainder.
func isNth(a, b, y int) bool {
	an := (y - b)
	return (a == 0 && b == y) || (a != 0 && an/a >= 0 && an%a == 0)
}
