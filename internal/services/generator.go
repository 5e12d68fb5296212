package services

import "context"

// TextGenerator is the only side-channel the advising features depend on:
// a natural-language prompt goes out, generated text comes back. The call
// may fail or time out; callers decide how to degrade.
type TextGenerator interface {
  Generate(ctx context.Context, prompt string) (string, error)
}
