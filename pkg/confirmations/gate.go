// Package confirmations implements the single confirmation gate every
// state-changing action passes through before touching the host.
package confirmations

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/tuna/pkg/errors"
	"github.com/arthur-debert/tuna/pkg/style"
)

// Prompt is the question shown before a change is applied
const Prompt = "Do you wish to proceed(y/n/a):"

// Answer is the operator's response to a prompt
type Answer int

const (
	AnswerNo Answer = iota
	AnswerYes
	AnswerAlways
)

// ParseAnswer maps free-form input to an answer. Anything unrecognized is "no".
func ParseAnswer(input string) Answer {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return AnswerYes
	case "a", "always":
		return AnswerAlways
	default:
		return AnswerNo
	}
}

// Change describes a pending mutation so the operator can judge it
type Change struct {
	Subject string
	Before  string
	After   string
}

// Gate asks for confirmation before mutations. Answering "always", or
// starting with alwaysYes, suppresses every later prompt of the run.
type Gate struct {
	alwaysYes bool
	in        *bufio.Reader
	printer   *style.Printer
}

// NewGate creates a gate reading answers from in and writing prompts through printer
func NewGate(alwaysYes bool, in io.Reader, printer *style.Printer) *Gate {
	return &Gate{
		alwaysYes: alwaysYes,
		in:        bufio.NewReader(in),
		printer:   printer,
	}
}

// AlwaysYes reports whether prompts are currently suppressed
func (g *Gate) AlwaysYes() bool {
	return g.alwaysYes
}

// Confirm shows the change and asks whether to apply it. It returns false
// when the operator declines or input ends.
func (g *Gate) Confirm(c Change) (bool, error) {
	if g.alwaysYes {
		return true, nil
	}

	g.printer.Println(style.TitleStyle.Render(c.Subject + " Before:"))
	g.printer.Println(orNone(c.Before))
	g.printer.Println(style.TitleStyle.Render(c.Subject + " After:"))
	g.printer.Println(orNone(c.After))
	fmt.Fprint(g.printer.Writer(), Prompt+" ")

	line, err := g.in.ReadString('\n')
	if err != nil && !stderrors.Is(err, io.EOF) {
		return false, errors.Wrap(err, errors.ErrPrompt, "failed to read answer")
	}
	if err != nil && line == "" {
		// input closed: nothing will ever confirm
		fmt.Fprintln(g.printer.Writer())
		return false, nil
	}

	switch ParseAnswer(line) {
	case AnswerAlways:
		g.alwaysYes = true
		return true, nil
	case AnswerYes:
		return true, nil
	default:
		return false, nil
	}
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return style.MutedStyle.Render("(none)")
	}
	return s
}
