package index

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/nlsn/markup/dom"
	"golang.org/x/exp/maps"
)

// ClassIndex maps each whitespace separated token of an element's class
// attribute to the elements currently carrying it, in insertion order. All
// bucket mutations happen under one mutex per index; Lookup copies the bucket
// out under the read lock, so callers get a consistent snapshot that later
// mutations do not change.
type ClassIndex struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
}

// bucket keeps insertion order in order and O(1) membership in ids, keyed by
// element identity. An element appears at most once per bucket.
type bucket struct {
	order []*dom.Element
	ids   map[uuid.UUID]struct{}
}

func NewClassIndex() *ClassIndex {
	return &ClassIndex{buckets: map[string]*bucket{}}
}

// InitializeData implements Index.
func (ci *ClassIndex) InitializeData(*dom.Document) {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	ci.buckets = map[string]*bucket{}
}

// ElementAdded indexes e under each token of its current class attribute.
func (ci *ClassIndex) ElementAdded(e *dom.Element) {
	if v, ok := e.Attr("class"); ok {
		ci.add(e, strings.Fields(v))
	}
}

// ElementRemoved drops e from the buckets of its current class attribute,
// captured before the document clears it. Removal is idempotent.
func (ci *ClassIndex) ElementRemoved(e *dom.Element) {
	if v, ok := e.Attr("class"); ok {
		ci.remove(e, strings.Fields(v))
	}
}

// AttributeAdded indexes e under each token of a newly added class attribute.
// Attributes other than class are ignored.
func (ci *ClassIndex) AttributeAdded(e *dom.Element, a dom.Attribute) {
	if strings.EqualFold(a.Name, "class") {
		ci.add(e, strings.Fields(a.Value))
	}
}

// AttributeRemoved drops e from the buckets of the removed class attribute's
// pre-removal value. A value change arrives as AttributeRemoved(old) followed
// by AttributeAdded(new); tokens present in both end up registered exactly
// once, re-inserted at the tail of their bucket.
func (ci *ClassIndex) AttributeRemoved(e *dom.Element, a dom.Attribute) {
	if strings.EqualFold(a.Name, "class") {
		ci.remove(e, strings.Fields(a.Value))
	}
}

// Lookup returns the elements currently indexed under className in insertion
// order. The returned slice is a snapshot; unknown tokens yield an empty,
// non-nil slice.
func (ci *ClassIndex) Lookup(className string) []*dom.Element {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	b := ci.buckets[className]
	if b == nil {
		return []*dom.Element{}
	}
	out := make([]*dom.Element, len(b.order))
	copy(out, b.order)
	return out
}

// Tokens returns the class tokens that currently have at least one element.
func (ci *ClassIndex) Tokens() []string {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	return maps.Keys(ci.buckets)
}

// Len returns the number of elements indexed under className.
func (ci *ClassIndex) Len(className string) int {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	if b := ci.buckets[className]; b != nil {
		return len(b.order)
	}
	return 0
}

func (ci *ClassIndex) add(e *dom.Element, tokens []string) {
	if e == nil || len(tokens) == 0 {
		return
	}
	ci.mu.Lock()
	defer ci.mu.Unlock()
	for _, t := range tokens {
		b := ci.buckets[t]
		if b == nil {
			b = &bucket{ids: map[uuid.UUID]struct{}{}}
			ci.buckets[t] = b
		}
		if _, ok := b.ids[e.ID()]; ok {
			continue
		}
		b.ids[e.ID()] = struct{}{}
		b.order = append(b.order, e)
	}
}

func (ci *ClassIndex) remove(e *dom.Element, tokens []string) {
	if e == nil || len(tokens) == 0 {
		return
	}
	ci.mu.Lock()
	defer ci.mu.Unlock()
	for _, t := range tokens {
		b := ci.buckets[t]
		if b == nil {
			continue
		}
		if _, ok := b.ids[e.ID()]; !ok {
			continue
		}
		delete(b.ids, e.ID())
		for i, e2 := range b.order {
			if e2 == e {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
		if len(b.order) == 0 {
			delete(ci.buckets, t)
		}
	}
}

var _ Index = (*ClassIndex)(nil)
