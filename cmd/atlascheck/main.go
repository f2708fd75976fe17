// Command atlascheck validates atlas descriptor files and prints a one-line
// summary per file.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"spritemap/internal/atlas"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: atlascheck atlas.json [more.json ...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if failed := run(flag.Args(), os.Stdout); failed > 0 {
		os.Exit(1)
	}
}

// run checks every path and returns how many failed.
func run(paths []string, w io.Writer) int {
	failed := 0
	for _, path := range paths {
		desc, err := atlas.Load(path)
		if err != nil {
			fmt.Fprintf(w, "FAIL %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "ok   %s: %s\n", path, desc.Summary())
	}
	return failed
}
