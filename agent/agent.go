// Package agent implements the interactive AI assistant of the folio CLI.
//
// A facilitator chat routes the user's questions to specialized experts: an
// analyst grounded in web search, and a bookkeeper with function tools over
// the portfolio. The core never depends on this package.
package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
}

// New creates an agent writing to w and reading user input from r.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
	}
}

// Start opens the chat sessions, experts first so the facilitator can call
// on them from its very first answer.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return fmt.Errorf("could not start expert %s: %w", e.Name, err)
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "assist> "

// next returns the following user input: queued prompts first, then the
// reader. Queued prompts are echoed so the session transcript reads like a
// typed conversation.
func (a *Agent) next(queue *[]string) (string, error) {
	if len(*queue) > 0 {
		input := strings.TrimSpace((*queue)[0])
		*queue = (*queue)[1:]
		if input != "" {
			fmt.Fprintln(a.w, input)
		}
		return input, nil
	}
	input, err := a.r.ReadString('\n')
	return strings.TrimSpace(input), err
}

// Run drives the REPL session. Initial prompts, when given, are consumed
// in order before reading from the user. 'bye' or the end of the input
// stream ends the session cleanly.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to folio assist. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)

		input, err := a.next(&prompts)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch input {
		case "":
			continue
		case "bye":
			return nil
		}

		answer, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		for _, part := range answer.Parts {
			if part.Text != "" {
				fmt.Fprintln(a.w, part.Text)
			}
		}
	}
}
