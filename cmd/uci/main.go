// Command uci runs the engine as a UCI-speaking subprocess over stdin/stdout,
// the entry point a chess GUI launches, grounded on the teacher's root
// uci.go main().
package main

import (
	"os"

	"ravenfish/uci"
)

func main() {
	session := uci.NewSession(os.Stdout)
	session.Loop(os.Stdin)
}
