// Package index maintains derived lookup structures over a dom.Document by
// observing its mutations. Indexes hold non-owning references only; element
// lifetime belongs to the document.
package index

import (
	"github.com/nlsn/markup/dom"
)

// Index is the lifecycle contract of a concrete element index: it is bound to
// one document, built once from the elements present at bind time and kept in
// sync through the dom.Observer hooks for the lifetime of the document.
// Hooks for attribute names an index does not track must be cheap no-ops, and
// removal hooks must tolerate elements the index never saw.
type Index interface {
	dom.Observer

	// InitializeData resets the index to empty for the given document.
	// Attach follows up with one ElementAdded call per element already
	// present, in document order.
	InitializeData(doc *dom.Document)
}

// Attach binds idx to doc: initializes it, feeds it every element currently
// in the document and subscribes it to future mutations.
func Attach(doc *dom.Document, idx Index) {
	if doc == nil || idx == nil {
		return
	}
	idx.InitializeData(doc)
	for e := range doc.Walk() {
		idx.ElementAdded(e)
	}
	doc.Subscribe(idx)
}

// Detach unsubscribes idx from doc. The index keeps its current data; rebind
// with Attach to resynchronize.
func Detach(doc *dom.Document, idx Index) {
	if doc == nil || idx == nil {
		return
	}
	doc.Unsubscribe(idx)
}
