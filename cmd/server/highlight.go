// CLAUDE:SUMMARY CLI subcommand that prints a text with legal terms of a catalog wrapped in brackets.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hazyhaar/anunturi/pkg/highlight"
)

func cmdHighlight(args []string) {
	fs := flag.NewFlagSet("highlight", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	catalogID := fs.String("catalog", "", "term catalog ID (default catalog if empty)")
	explain := fs.Bool("explain", false, "list the explanation of each highlighted term")
	fs.Parse(args)

	cfg, logger := mustSetup(*cfgPath)
	reg := mustLoadRegistry(cfg, logger)

	cat, err := reg.Resolve(*catalogID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "highlight: %v\n", err)
		os.Exit(1)
	}

	text := strings.Join(fs.Args(), " ")
	if text == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "highlight: read stdin: %v\n", err)
			os.Exit(1)
		}
		text = string(data)
	}

	segs := cat.Segment(text)
	fmt.Println(brackets(segs))
	if *explain {
		for _, a := range highlight.Annotate(segs, cat) {
			if a.IsTagged() {
				fmt.Printf("\n%s: %s\n", a.Term, a.Explanation)
			}
		}
	}
}

// brackets renders segments with tagged ones wrapped in [ ].
func brackets(segs []highlight.Segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.IsTagged() {
			b.WriteString("[" + s.Text + "]")
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}
