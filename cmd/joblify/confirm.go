package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/joblify/employer-console/internal/workflow"
)

// promptConfirmer asks on out and reads a y/N answer from in. With yes set it
// prints the prompt and accepts without reading.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
	yes bool
}

var _ workflow.Confirmer = (*promptConfirmer)(nil)

func newConfirmer(in io.Reader, out io.Writer, yes bool) *promptConfirmer {
	return &promptConfirmer{in: bufio.NewReader(in), out: out, yes: yes}
}

//nolint:errcheck // writing to the terminal; errors are not recoverable
func (c *promptConfirmer) Confirm(prompt string) bool {
	if c.yes {
		fmt.Fprintf(c.out, "%s [y/N] y\n", prompt)
		return true
	}
	fmt.Fprintf(c.out, "%s [y/N] ", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(c.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
