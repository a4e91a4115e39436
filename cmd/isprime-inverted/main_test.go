package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ahrav/go-oracle/internal/cli"
)

func TestEmbeddedProgram(t *testing.T) {
	tests := []struct {
		stdin string
		want  string
	}{
		{"7", "NO"},
		{"8", "YES"},
		{"2", "NO"},
		{"1", "YES"},
	}

	for _, tt := range tests {
		t.Run(tt.stdin, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			cmd := cli.NewCommand("isprime-inverted", configYAML, strings.NewReader(tt.stdin), &stdout, &stderr)
			cmd.SetArgs([]string{})

			assert.Equal(t, cli.ExitOK, cli.Execute(cmd), stderr.String())
			assert.Equal(t, tt.want, stdout.String())
		})
	}
}
