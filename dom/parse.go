package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Parse reads HTML and builds a Document from its element tree. Comments and
// other non-element nodes are dropped; text nodes become the own-text of
// their parent element.
func Parse(r io.Reader) (*Document, error) {
	n, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	root := convert(firstElement(n))
	return NewDocument(root), nil
}

func MustParse(r io.Reader) *Document {
	d, err := Parse(r)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseString is a convenience wrapper around Parse for fixtures and tests.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func firstElement(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if e := firstElement(c); e != nil {
			return e
		}
	}
	return nil
}

func convert(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	attrs := make([]Attribute, 0, len(n.Attr))
	for _, a := range n.Attr {
		attrs = append(attrs, Attribute{a.Key, a.Val})
	}
	e := El(n.Data, attrs...)
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			child := convert(c)
			child.parent = e
			e.children = append(e.children, child)
		case html.TextNode:
			text.WriteString(c.Data)
		}
	}
	e.text = text.String()
	return e
}
