package picker

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MenuChooser is the non-interactive fallback: a numbered menu printed
// to Out, answered by a line on In. An empty answer cancels.
type MenuChooser struct {
	In  io.Reader
	Out io.Writer
}

func (c *MenuChooser) ChooseOne(prompt string, candidates []string) (string, error) {
	fmt.Fprintln(c.Out, prompt)
	for i, cand := range candidates {
		fmt.Fprintf(c.Out, "  %d) %s\n", i+1, cand)
	}
	fmt.Fprint(c.Out, "> ")

	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && line == "" {
		return "", ErrCancelled
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ErrCancelled
	}

	if n, err := strconv.Atoi(line); err == nil {
		if n < 1 || n > len(candidates) {
			return "", fmt.Errorf("choice %d out of range 1-%d", n, len(candidates))
		}
		return candidates[n-1], nil
	}
	// Accept a literal candidate as the answer too.
	for _, cand := range candidates {
		if cand == line {
			return cand, nil
		}
	}
	return "", fmt.Errorf("unknown choice %q", line)
}
