// Command astar runs the incremental A* engine on a grid layout: solved in
// one go, animated in the terminal, or served to a browser.
package main

import (
	"errors"
	"fmt"
	"os"

	astar "github.com/pdrpinto/astar/v2"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.Is(err, astar.ErrNoPathFound) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
