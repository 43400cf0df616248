// Command parley is a terminal chat client for tunnel-exposed dev APIs.
package main

import "github.com/parley-dev/parley/internal/cli"

func main() {
	cli.Execute()
}
