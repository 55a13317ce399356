// Package dom provides a mutable markup element tree whose mutations are
// observable. Indexes subscribe to a Document and are notified synchronously
// about every element and attribute change.
package dom

import (
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Attribute is a (name, value) pair. Name comparison is case-insensitive
// everywhere in this package.
type Attribute struct {
	Name  string
	Value string
}

// Element is a node of a markup tree. An element belongs to at most one
// Document at a time; identity is the uuid assigned at creation, not value
// equality.
type Element struct {
	id       uuid.UUID
	tag      string
	attrs    []Attribute
	text     string
	parent   *Element
	children []*Element
	doc      *Document
}

// Observer receives document mutation notifications. All hooks are invoked
// synchronously at the point of mutation. AttributeRemoved receives the
// attribute as it was immediately before removal.
type Observer interface {
	ElementAdded(e *Element)
	ElementRemoved(e *Element)
	AttributeAdded(e *Element, a Attribute)
	AttributeRemoved(e *Element, a Attribute)
}

func El(tag string, attrs ...Attribute) *Element {
	return &Element{id: uuid.New(), tag: tag, attrs: attrs}
}

func (e *Element) ID() uuid.UUID    { return e.id }
func (e *Element) Tag() string      { return e.tag }
func (e *Element) Parent() *Element { return e.parent }

// Children returns the element's child elements in document order. The
// returned slice is the backing store; callers must not mutate it.
func (e *Element) Children() []*Element { return e.children }

// Attrs returns the element's attributes in insertion order. The returned
// slice is the backing store; callers must not mutate it.
func (e *Element) Attrs() []Attribute { return e.attrs }

// Attr returns the value of the first attribute with the given name.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.attrs {
		if strings.EqualFold(a.Name, name) {
			return a.Value, true
		}
	}
	return "", false
}

func (e *Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// Text returns the concatenated text content of the element's subtree.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	var out strings.Builder
	e.appendText(&out)
	return out.String()
}

func (e *Element) appendText(out *strings.Builder) {
	out.WriteString(e.text)
	for _, c := range e.children {
		c.appendText(out)
	}
}

// SetText replaces the element's own text content. Text is not observable;
// indexes track elements and attributes only.
func (e *Element) SetText(s string) { e.text = s }

// OwnText returns the element's own text content, excluding descendants.
func (e *Element) OwnText() string { return e.text }

// IsEmpty reports whether the element has neither child elements nor text.
func (e *Element) IsEmpty() bool { return len(e.children) == 0 && e.text == "" }

// SetAttr sets the first attribute with the given name, appending a new
// attribute when none exists. Changing an existing attribute notifies
// AttributeRemoved with the old value followed by AttributeAdded with the new
// one; the pair is not atomic with respect to concurrent readers.
func (e *Element) SetAttr(name, value string) *Element {
	for i, a := range e.attrs {
		if strings.EqualFold(a.Name, name) {
			e.attrs[i].Value = value
			e.notify(func(o Observer) { o.AttributeRemoved(e, a) })
			e.notify(func(o Observer) { o.AttributeAdded(e, Attribute{a.Name, value}) })
			return e
		}
	}
	a := Attribute{name, value}
	e.attrs = append(e.attrs, a)
	e.notify(func(o Observer) { o.AttributeAdded(e, a) })
	return e
}

// RemoveAttr removes the first attribute with the given name. Removing an
// absent attribute is a no-op.
func (e *Element) RemoveAttr(name string) *Element {
	for i, a := range e.attrs {
		if strings.EqualFold(a.Name, name) {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			e.notify(func(o Observer) { o.AttributeRemoved(e, a) })
			return e
		}
	}
	return e
}

// Append attaches child (and its subtree) as the last child of e. A child
// that is already part of a tree is detached first, like DOM adoption.
// Joining a watched document notifies ElementAdded once per element of the
// subtree, in document order.
func (e *Element) Append(child *Element) *Element {
	if child == nil || child == e {
		return e
	}
	if child.parent != nil || child.doc != nil {
		child.Remove()
	}
	child.parent = e
	e.children = append(e.children, child)
	if e.doc != nil {
		child.adopt(e.doc)
	}
	return e
}

// Remove detaches e (and its subtree) from its parent and document.
// ElementRemoved is notified once per element of the subtree, in document
// order, before the subtree is detached - each element's attributes are still
// intact when the hook runs. Removing a detached element is a no-op.
func (e *Element) Remove() {
	if e.doc != nil {
		d := e.doc
		for se := range e.Walk() {
			d.notify(func(o Observer) { o.ElementRemoved(se) })
		}
		if d.root == e {
			d.root = nil
		}
	}
	if e.parent != nil {
		siblings := e.parent.children
		for i, c := range siblings {
			if c == e {
				e.parent.children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
		e.parent = nil
	}
	e.orphan()
}

func (e *Element) adopt(d *Document) {
	for se := range e.Walk() {
		se.doc = d
		d.notify(func(o Observer) { o.ElementAdded(se) })
	}
}

func (e *Element) orphan() {
	for se := range e.Walk() {
		se.doc = nil
	}
}

// Walk yields e and every descendant element, depth first in document order.
func (e *Element) Walk() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		e.walk(yield)
	}
}

func (e *Element) walk(yield func(*Element) bool) bool {
	if e == nil {
		return true
	}
	if !yield(e) {
		return false
	}
	for _, c := range e.children {
		if !c.walk(yield) {
			return false
		}
	}
	return true
}

func (e *Element) notify(f func(Observer)) {
	if e.doc != nil {
		e.doc.notify(f)
	}
}

// Document owns a tree of elements and fans mutation notifications out to
// subscribed observers.
type Document struct {
	root      *Element
	mu        sync.RWMutex
	observers []Observer
}

// NewDocument creates a document owning root. Elements already below root are
// part of the document from the start; observers subscribed later learn about
// them through their initial scan, not through hooks.
func NewDocument(root *Element) *Document {
	d := &Document{}
	if root != nil {
		if root.parent != nil || root.doc != nil {
			root.Remove()
		}
		d.root = root
		for se := range root.Walk() {
			se.doc = d
		}
	}
	return d
}

func (d *Document) Root() *Element { return d.root }

// Walk yields every element of the document, depth first in document order.
func (d *Document) Walk() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		if d.root != nil {
			d.root.walk(yield)
		}
	}
}

func (d *Document) Subscribe(o Observer) {
	if o == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
}

func (d *Document) Unsubscribe(o Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, o2 := range d.observers {
		if o2 == o {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			return
		}
	}
}

// notify snapshots the observer list so a concurrent Unsubscribe cannot
// splice the backing array out from under the iteration. Hooks run outside
// the lock; they must not mutate the document re-entrantly.
func (d *Document) notify(f func(Observer)) {
	d.mu.RLock()
	os := slices.Clone(d.observers)
	d.mu.RUnlock()
	for _, o := range os {
		f(o)
	}
}
