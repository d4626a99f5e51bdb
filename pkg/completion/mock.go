package completion

import (
	"context"
	"strings"
)

// Mock is an offline client for local development. It never calls out and
// returns a deterministic completion derived from the prompt.
type Mock struct{}

func (Mock) Complete(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Write a structured, detailed response to the following request.\n\n")
	sb.WriteString(strings.TrimSpace(prompt))
	return sb.String(), nil
}
