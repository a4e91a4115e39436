// Command isprime-inverted prints the swapped literals of isprime: NO for
// primes, YES otherwise. Graded against the expected outputs of isprime it
// passes no case.
package main

import (
	_ "embed"
	"os"

	"github.com/ahrav/go-oracle/internal/cli"
)

//go:embed config.yaml
var configYAML []byte

func main() {
	cmd := cli.NewCommand("isprime-inverted", configYAML, os.Stdin, os.Stdout, os.Stderr)
	os.Exit(cli.Execute(cmd))
}
