package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompt is a scaffolding.Confirmer that asks on out and reads answers
// from in. Anything other than yes or no asks again.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompt creates a Prompt.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

// Confirm implements scaffolding.Confirmer. It fails when input ends
// before a valid answer.
func (p *Prompt) Confirm(question string) (bool, error) {
	for {
		fmt.Fprint(p.out, question)

		line, err := p.in.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes", "true":
			return true, nil
		case "n", "no", "false":
			return false, nil
		}

		if err != nil {
			if err == io.EOF {
				return false, fmt.Errorf("no answer to %q: input closed", strings.TrimSpace(question))
			}
			return false, fmt.Errorf("failed to read answer: %w", err)
		}
	}
}
