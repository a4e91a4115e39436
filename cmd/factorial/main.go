// Command factorial reads an integer n from stdin and prints n!, or -1 when n is negative.
package main

import (
	_ "embed"
	"os"

	"github.com/ahrav/go-oracle/internal/cli"
)

//go:embed config.yaml
var configYAML []byte

func main() {
	cmd := cli.NewCommand("factorial", configYAML, os.Stdin, os.Stdout, os.Stderr)
	os.Exit(cli.Execute(cmd))
}
