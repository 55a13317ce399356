package dom

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []string
}

func (r *recorder) ElementAdded(e *Element)   { r.record("add", e) }
func (r *recorder) ElementRemoved(e *Element) { r.record("rm", e) }
func (r *recorder) AttributeAdded(e *Element, a Attribute) {
	r.events = append(r.events, fmt.Sprintf("attr+ %s %s=%q", e.Tag(), a.Name, a.Value))
}
func (r *recorder) AttributeRemoved(e *Element, a Attribute) {
	r.events = append(r.events, fmt.Sprintf("attr- %s %s=%q", e.Tag(), a.Name, a.Value))
}
func (r *recorder) record(kind string, e *Element) {
	class, _ := e.Attr("class")
	r.events = append(r.events, fmt.Sprintf("%s %s class=%q", kind, e.Tag(), class))
}

func watched(root *Element) (*Document, *recorder) {
	d := NewDocument(root)
	r := &recorder{}
	d.Subscribe(r)
	return d, r
}

func TestAttrFirstMatchCaseInsensitive(t *testing.T) {
	e := El("div", Attribute{"ID", "a"}, Attribute{"id", "b"})
	v, ok := e.Attr("id")
	require.True(t, ok)
	assert.Equal(t, "a", v, "lookup returns the first match")
	_, ok = e.Attr("missing")
	assert.False(t, ok)
	assert.True(t, e.HasAttr("Id"))
}

func TestSetAttrNotifications(t *testing.T) {
	root := El("body")
	_, r := watched(root)

	root.SetAttr("class", "a b")
	assert.Equal(t, []string{`attr+ body class="a b"`}, r.events)

	r.events = nil
	root.SetAttr("class", "b c")
	assert.Equal(t, []string{`attr- body class="a b"`, `attr+ body class="b c"`}, r.events,
		"a change notifies remove-old then add-new")

	r.events = nil
	root.RemoveAttr("class")
	assert.Equal(t, []string{`attr- body class="b c"`}, r.events)

	r.events = nil
	root.RemoveAttr("class")
	assert.Empty(t, r.events, "removing an absent attribute is silent")
}

func TestAppendNotifiesPerSubtreeElement(t *testing.T) {
	root := El("body")
	_, r := watched(root)

	ul := El("ul", Attribute{"class", "list"})
	ul.Append(El("li", Attribute{"class", "x"}))
	ul.Append(El("li"))
	root.Append(ul)
	assert.Equal(t, []string{
		`add ul class="list"`,
		`add li class="x"`,
		`add li class=""`,
	}, r.events, "one notification per element, in document order")
}

func TestRemoveNotifiesBeforeDetach(t *testing.T) {
	ul := El("ul", Attribute{"class", "list"})
	li := El("li", Attribute{"class", "x"})
	ul.Append(li)
	root := El("body")
	root.Append(ul)
	_, r := watched(root)

	ul.Remove()
	assert.Equal(t, []string{
		`rm ul class="list"`,
		`rm li class="x"`,
	}, r.events, "hooks still see the elements' attributes")
	assert.Nil(t, ul.Parent())
	assert.Empty(t, root.Children())
}

func TestAppendAdoptsAttachedElement(t *testing.T) {
	a, b := El("a"), El("b")
	li := El("li", Attribute{"class", "x"})
	a.Append(li)
	root := El("body")
	root.Append(a)
	root.Append(b)
	_, r := watched(root)

	b.Append(li)
	assert.Equal(t, []string{`rm li class="x"`, `add li class="x"`}, r.events)
	assert.Empty(t, a.Children())
	assert.Equal(t, []*Element{li}, b.Children())
}

func TestWalkOrder(t *testing.T) {
	d, err := ParseString(`<div><p>1</p><ul><li>2</li></ul><span>3</span></div>`)
	require.NoError(t, err)
	tags := []string{}
	for e := range d.Walk() {
		tags = append(tags, e.Tag())
	}
	assert.Equal(t, []string{"html", "head", "body", "div", "p", "ul", "li", "span"}, tags)
}

func TestParse(t *testing.T) {
	d, err := ParseString(`<div id="a" class="x y">hello <b>world</b></div>`)
	require.NoError(t, err)
	var div, bold *Element
	for e := range d.Walk() {
		switch e.Tag() {
		case "div":
			div = e
		case "b":
			bold = e
		}
	}
	require.NotNil(t, div)
	require.NotNil(t, bold)
	class, _ := div.Attr("class")
	assert.Equal(t, "x y", class)
	assert.Equal(t, "hello world", div.Text())
	assert.Equal(t, "hello ", div.OwnText())
	assert.False(t, div.IsEmpty())
	assert.True(t, El("p").IsEmpty())
}

func TestUnsubscribe(t *testing.T) {
	root := El("body")
	d, r := watched(root)
	d.Unsubscribe(r)
	root.SetAttr("class", "a")
	assert.Empty(t, r.events)
}

func TestElementIdentity(t *testing.T) {
	a, b := El("div"), El("div")
	assert.NotEqual(t, a.ID(), b.ID())
}
