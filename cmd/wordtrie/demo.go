package main

import (
	"fmt"
	"io"

	"github.com/bastiangx/wordtrie/pkg/dictionary"
)

var (
	demoWords  = []string{"Τεστ", "test"}
	demoChecks = []string{"Τεστ", "test", "τεστ", "Test"}
)

// runDemo inserts the demo words into dict and prints one "word:found" line per check.
func runDemo(w io.Writer, dict *dictionary.Dictionary) error {
	for _, word := range demoWords {
		if err := dict.Insert(word); err != nil {
			return err
		}
	}
	for _, word := range demoChecks {
		if _, err := fmt.Fprintf(w, "%s:%t\n", word, dict.Contains(word)); err != nil {
			return err
		}
	}
	return nil
}
