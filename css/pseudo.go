package css

import (
	"fmt"
	"strings"

	"github.com/nlsn/markup/dom"
)

// PseudoClasses resolves argument-less pseudo class names. The registry is
// populated at init and extendable via RegisterPseudoClass; resolution
// happens at compile time, an unregistered name fails compilation with
// ErrUnknownPseudoClass.
var PseudoClasses = map[string]func(*dom.Element) bool{
	"root":          func(e *dom.Element) bool { return e.Parent() == nil },
	"empty":         func(e *dom.Element) bool { return e.IsEmpty() },
	"first-child":   positionalChild(false, false),
	"last-child":    positionalChild(true, false),
	"first-of-type": positionalChild(false, true),
	"last-of-type":  positionalChild(true, true),
	"only-child":    onlyChild(false),
	"only-of-type":  onlyChild(true),
}

// PseudoFunctions resolves pseudo class names that take an argument. The
// factory turns the raw argument into a predicate at compile time; a bad
// argument fails compilation with ErrMalformedSelector.
var PseudoFunctions = map[string]func(string) (func(*dom.Element) bool, error){
	"nth-child":        nthSibling(false, false),
	"nth-last-child":   nthSibling(true, false),
	"nth-of-type":      nthSibling(false, true),
	"nth-last-of-type": nthSibling(true, true),
	"contains":         contains,
}

// not recursively compiles its argument, so registering it inside the map
// literal would make PseudoFunctions refer to itself.
func init() {
	PseudoFunctions["not"] = not
}

// RegisterPseudoClass makes name resolvable in selectors like ":name".
// Registration is not synchronized with compilation; register at init time.
func RegisterPseudoClass(name string, f func(*dom.Element) bool) {
	PseudoClasses[strings.ToLower(name)] = f
}

// RegisterPseudoFunction makes name resolvable in selectors like ":name(arg)".
func RegisterPseudoFunction(name string, f func(string) (func(*dom.Element) bool, error)) {
	PseudoFunctions[strings.ToLower(name)] = f
}

// ResolvePseudoClass constructs the predicate registered under name. Names
// without a registration fail with ErrUnknownPseudoClass, bad arguments with
// ErrMalformedSelector.
func ResolvePseudoClass(name, arg string) (PseudoPredicate, error) {
	name = strings.ToLower(name)
	if arg == "" {
		if f := PseudoClasses[name]; f != nil {
			return PseudoPredicate{Name: name, match: f}, nil
		}
	}
	if f := PseudoFunctions[name]; f != nil {
		match, err := f(arg)
		if err != nil {
			return PseudoPredicate{}, fmt.Errorf("%w: :%s(%s): %s", ErrMalformedSelector, name, arg, err)
		}
		return PseudoPredicate{Name: name, Arg: arg, hasArg: true, match: match}, nil
	}
	return PseudoPredicate{}, fmt.Errorf("%w: :%s", ErrUnknownPseudoClass, name)
}

func onlyChild(ofType bool) func(*dom.Element) bool {
	return func(e *dom.Element) bool {
		if e.Parent() == nil {
			return true
		}
		count := 0
		for _, c := range e.Parent().Children() {
			if !ofType || strings.EqualFold(c.Tag(), e.Tag()) {
				count++
			}
		}
		return count == 1
	}
}

func not(args string) (func(*dom.Element) bool, error) {
	s, err := Compile(args)
	if err != nil {
		return nil, err
	}
	return func(e *dom.Element) bool { return !s.Match(e) }, nil
}

func contains(substring string) (func(*dom.Element) bool, error) {
	if len(substring) >= 2 && substring[0] == '"' && substring[len(substring)-1] == '"' {
		substring = substring[1 : len(substring)-1]
	}
	return func(e *dom.Element) bool {
		return strings.Contains(e.Text(), substring)
	}, nil
}
