// Package ai talks to a generative text model and turns its answers into
// topic suggestions and video highlights.
package ai

import "context"

// TextGenerator produces free text or schema-constrained JSON for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	// GenerateJSON asks for a response that is a JSON document matching schema.
	GenerateJSON(ctx context.Context, prompt string, schema map[string]any) (string, error)
}
