// Command milkdiary is a personal milk-delivery tracker: a license-
// gated local diary of daily exceptions and a plain-text bill
// generator, with a CLI and a local HTTP API.
package main

import "github.com/iniyantalkies/milkdiary/internal/cli"

func main() {
	cli.Execute()
}
