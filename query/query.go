// Package query evaluates compiled css selectors over dom documents. An
// Engine additionally keeps a live class index on its document and uses it to
// pre-filter candidates for class selectors; the result set is identical to
// a full tree walk, though bucket order reflects index insertion order rather
// than document order after attribute churn.
package query

import (
	"github.com/nlsn/markup/css"
	"github.com/nlsn/markup/dom"
	"github.com/nlsn/markup/index"
)

// All returns the elements of scope's subtree matching s, in document order.
func All(s *css.Selector, scope *dom.Element) []*dom.Element {
	if s == nil || scope == nil {
		return nil
	}
	out := []*dom.Element{}
	for e := range s.Filter(scope.Walk()) {
		out = append(out, e)
	}
	return out
}

// First returns the first element of scope's subtree matching s, or nil.
func First(s *css.Selector, scope *dom.Element) *dom.Element {
	if s == nil || scope == nil {
		return nil
	}
	for e := range s.Filter(scope.Walk()) {
		return e
	}
	return nil
}

type Engine struct {
	doc     *dom.Document
	classes *index.ClassIndex
}

// NewEngine binds a fresh class index to doc and keeps it synchronized with
// document mutations until Close.
func NewEngine(doc *dom.Document) *Engine {
	en := &Engine{doc: doc, classes: index.NewClassIndex()}
	index.Attach(doc, en.classes)
	return en
}

// Classes exposes the engine's live class index.
func (en *Engine) Classes() *index.ClassIndex { return en.classes }

// Select compiles expression and returns all matching elements. When the
// selector constrains a class token, the class index narrows the candidate
// set before full predicate evaluation.
func (en *Engine) Select(expression string) ([]*dom.Element, error) {
	s, err := css.Compile(expression)
	if err != nil {
		return nil, err
	}
	return en.SelectCompiled(s), nil
}

// SelectCompiled is Select for a pre-compiled selector.
func (en *Engine) SelectCompiled(s *css.Selector) []*dom.Element {
	if s == nil {
		return nil
	}
	if token, ok := classToken(s); ok {
		out := []*dom.Element{}
		for _, e := range en.classes.Lookup(token) {
			if s.Match(e) {
				out = append(out, e)
			}
		}
		return out
	}
	if en.doc == nil {
		return nil
	}
	return All(s, en.doc.Root())
}

// Close detaches the engine's index from the document.
func (en *Engine) Close() {
	index.Detach(en.doc, en.classes)
}

// classToken returns the first class token membership predicate of s, the
// candidate pre-filter the class index can serve.
func classToken(s *css.Selector) (string, bool) {
	for _, a := range s.Attrs {
		if a.Name == "class" && a.Op == "~=" && a.Value != "" {
			return a.Value, true
		}
	}
	return "", false
}
