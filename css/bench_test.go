package css

import (
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	ecss "github.com/ericchiang/css"
	"github.com/nlsn/markup/dom"
	"golang.org/x/net/html"
)

var benchSelectors = []string{"div.highlight", "li", ".x", "[data-state=active]"}

func BenchmarkMarkupCSS(b *testing.B) {
	d, err := dom.ParseString(fixtureHTML)
	if err != nil {
		b.Fatal(err)
	}
	for _, selector := range benchSelectors {
		s := MustCompile(selector)
		b.Run(selector, func(b *testing.B) {
			for n := 0; n < b.N; n++ {
				for range s.Filter(d.Walk()) {
				}
			}
		})
	}
}

func BenchmarkAndyBalholmCSS(b *testing.B) {
	d, err := html.Parse(strings.NewReader(fixtureHTML))
	if err != nil {
		b.Fatal(err)
	}
	for _, selector := range benchSelectors {
		s := cascadia.MustCompile(selector)
		b.Run(selector, func(b *testing.B) {
			for n := 0; n < b.N; n++ {
				s.MatchAll(d)
			}
		})
	}
}

func BenchmarkEricChiangCSS(b *testing.B) {
	d, err := html.Parse(strings.NewReader(fixtureHTML))
	if err != nil {
		b.Fatal(err)
	}
	for _, selector := range benchSelectors {
		s := ecss.MustParse(selector)
		b.Run(selector, func(b *testing.B) {
			for n := 0; n < b.N; n++ {
				s.Select(d)
			}
		})
	}
}
