package runner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter reads one sanitized answer per prompt.
type Prompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewPrompter wraps the given reader and writer.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{reader: bufio.NewReader(r), writer: w}
}

// Ask prints the question and returns the trimmed answer.
// A final line without a newline is still returned; io.EOF is returned only
// once nothing is left to read. Lines rejected by SanitizeLine are reported
// and the question is asked again.
func (p *Prompter) Ask(question string) (string, error) {
	for {
		if question != "" {
			fmt.Fprint(p.writer, question)
		}

		line, err := p.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		if errors.Is(err, io.EOF) && line == "" {
			return "", io.EOF
		}

		clean, serr := SanitizeLine(line)
		if serr != nil {
			fmt.Fprintf(p.writer, "Error: %v\n", serr)
			if errors.Is(err, io.EOF) {
				return "", io.EOF
			}
			continue
		}
		return strings.TrimSpace(clean), nil
	}
}

// Confirm asks a Y/N question. Anything other than y or yes is a no.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.Ask(question)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Println writes a line to the prompter output.
func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.writer, a...)
}

// Printf writes formatted text to the prompter output.
func (p *Prompter) Printf(format string, a ...any) {
	fmt.Fprintf(p.writer, format, a...)
}
