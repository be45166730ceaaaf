// Command brdump decodes and builds BR protocol frames.
package main

import "github.com/moffa90/go-brping/internal/cli"

func main() {
	cli.Execute()
}
