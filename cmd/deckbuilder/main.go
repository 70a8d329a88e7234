// Command deckbuilder is the Commander deck building CLI: it validates
// deck lists, assembles decks with a local language model, renders
// deck reports, and serves the REST API.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
