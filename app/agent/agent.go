// Package agent synthesizes answers from retrieved context chunks.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"docqa/model"
	"docqa/types"

	"github.com/pkoukk/tiktoken-go"
)

const systemPrompt = `You are an assistant answering questions about uploaded documents.
Answer clearly and to the point, using only the provided context.
If the context is empty or does not contain the answer, say that you don't know.`

// GenerateAnswer builds a stuff-all-context prompt from the retrieved chunks
// and asks the completion model for an answer with deterministic sampling.
func GenerateAnswer(ctx context.Context, llm model.Completer, question string, chunks []types.Chunk) (string, error) {
	prompt := buildPrompt(question, chunks)

	if count, err := CountTokens(prompt); err == nil {
		slog.Info("prompt assembled", "chunks", len(chunks), "tokens", count)
	}

	answer, err := llm.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}
	return answer, nil
}

// Sources returns the verbatim chunk texts in retrieval rank order, for
// caller-side citation.
func Sources(chunks []types.Chunk) []string {
	sources := make([]string, len(chunks))
	for i, chunk := range chunks {
		sources[i] = chunk.Content
	}
	return sources
}

func buildPrompt(question string, chunks []types.Chunk) string {
	var sb strings.Builder
	sb.WriteString("Use the following pieces of context to answer the question at the end. ")
	sb.WriteString("If you don't know the answer, just say that you don't know, don't try to make up an answer.\n\n")
	for _, chunk := range chunks {
		sb.WriteString(chunk.Content)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Question: ")
	sb.WriteString(question)
	sb.WriteString("\nHelpful Answer:")
	return sb.String()
}

// CountTokens measures prompt size with the model's tokenizer.
func CountTokens(text string) (int, error) {
	enc, err := tiktoken.EncodingForModel("gpt-3.5-turbo")
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}
