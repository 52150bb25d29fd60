// Package main implements lingoctl, the operator CLI for lingo-review:
// database migrations, distractor bank imports, schedule previews and
// development tokens.
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
