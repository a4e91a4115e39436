// Command isprime reads an integer from stdin and prints YES if it is prime, NO otherwise.
package main

import (
	_ "embed"
	"os"

	"github.com/ahrav/go-oracle/internal/cli"
)

//go:embed config.yaml
var configYAML []byte

func main() {
	cmd := cli.NewCommand("isprime", configYAML, os.Stdin, os.Stdout, os.Stderr)
	os.Exit(cli.Execute(cmd))
}
