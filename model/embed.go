package model

import "context"

// Embedder computes embedding vectors for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Completer produces a natural-language answer from a prompt.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}
