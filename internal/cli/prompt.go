package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// prompter reads operator answers line by line
type prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{reader: bufio.NewReader(in), out: out}
}

// ask prints label and returns the trimmed answer. io.EOF is returned once input ends.
func (p *prompter) ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askDefault keeps current when the answer is blank
func (p *prompter) askDefault(label, current string) (string, error) {
	answer, err := p.ask(fmt.Sprintf("%s [%s]", label, current))
	if err != nil {
		return "", err
	}
	if answer == "" {
		return current, nil
	}
	return answer, nil
}

// confirm accepts y or yes in any case
func (p *prompter) confirm(label string) (bool, error) {
	answer, err := p.ask(label + " (y/N)")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
