// Package explain provides an optional, API-key-gated natural language
// explanation of why a proof line failed validation, via the Anthropic
// API. It never participates in verification itself; a missing key
// degrades to ErrNoAPIKey rather than a crash.
package explain

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cenkalti/backoff/v4"
)

// ErrNoAPIKey is returned when no API key is configured.
var ErrNoAPIKey = errors.New("explain: no API key configured")

// Request describes one invalid line a caller wants explained.
type Request struct {
	Label      string
	Formula    string
	RuleSymbol string
	CitedLines []string
	ProofText  string
}

func (r Request) prompt() string {
	return fmt.Sprintf(
		"In this natural-deduction proof:\n\n%s\n\nLine %s (%s via %s, citing %v) failed validation. "+
			"In two or three sentences, explain the most likely reason why, referring to the specific rule's side conditions.",
		r.ProofText, r.Label, r.Formula, r.RuleSymbol, r.CitedLines)
}

// Explain asks the configured model for a short natural-language
// explanation of why req's line is invalid. It retries any failed
// request with exponential backoff, up to 3 retries after the first
// attempt.
func Explain(ctx context.Context, apiKey, model string, req Request) (string, error) {
	if apiKey == "" {
		return "", ErrNoAPIKey
	}
	if model == "" {
		model = "claude-3-5-sonnet-latest"
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	operation := func() (string, error) {
		msg, err := client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(model),
			MaxTokens: 256,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(req.prompt())),
			},
		})
		if err != nil {
			return "", err
		}
		var text string
		for _, block := range msg.Content {
			if block.Type == "text" {
				text += block.Text
			}
		}
		return text, nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	result, err := backoff.RetryWithData(operation, bo)
	if err != nil {
		return "", fmt.Errorf("explain: requesting explanation: %w", err)
	}
	return result, nil
}
