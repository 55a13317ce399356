// domq compiles a selector and prints the matching elements of an HTML
// document read from a file or stdin.
//
// $ domq 'div.highlight[data-state=active]' page.html
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nlsn/markup/css"
	"github.com/nlsn/markup/dom"
	"github.com/nlsn/markup/query"
	"github.com/nlsn/markup/util"
)

func main() {
	attr := flag.String("attr", "", "print this attribute instead of the text content")
	verbose := flag.Bool("v", false, "log debug output to stderr")
	flag.Parse()
	if flag.NArg() < 1 {
		log.Fatal("usage: domq [-attr name] SELECTOR [FILE]")
	}
	ctx := context.Background()
	if *verbose {
		ctx = util.WithLogger(ctx, util.WithLvl(util.DEBUG, func(lvl util.Lvl, msg string) {
			fmt.Fprintf(os.Stderr, "%s %s\n", lvl, msg)
		}))
	}
	s, err := css.Compile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	util.Debugf(ctx, "compiled %q into %s", flag.Arg(0), s)
	in := os.Stdin
	if flag.NArg() > 1 {
		f, err := os.Open(flag.Arg(1))
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}
	doc, err := dom.Parse(in)
	if err != nil {
		log.Fatal(err)
	}
	matches := query.All(s, doc.Root())
	util.Debugf(ctx, "%d matches", len(matches))
	for _, e := range matches {
		if *attr != "" {
			v, _ := e.Attr(*attr)
			fmt.Println(v)
		} else {
			fmt.Println(e.Text())
		}
	}
}
