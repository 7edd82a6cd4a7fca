package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"assetlens/domain/table"
	"assetlens/internal/analysis"
	"assetlens/ports"
)

// Analyst produces the AI-generated dataset summary and answers chat
// questions. It only ever sends the bounded payloads from
// internal/analysis, never the full dataset.
type Analyst struct {
	generator ports.TextGenerator
}

// NewAnalyst creates an analyst over any text-generation backend.
func NewAnalyst(generator ports.TextGenerator) *Analyst {
	return &Analyst{generator: generator}
}

// SummarizeDataset builds the summary payload and asks the model for a
// Markdown overview of the inventory.
func (a *Analyst) SummarizeDataset(ctx context.Context, ds *table.Dataset) (string, error) {
	if ds == nil || ds.IsEmpty() {
		return "", fmt.Errorf("no dataset loaded to summarize")
	}

	prompt, err := BuildSummaryPrompt(ds)
	if err != nil {
		return "", err
	}

	log.Printf("[Analyst] Requesting dataset summary - rows=%d, columns=%d", len(ds.Rows), len(ds.Columns))
	text, err := a.generator.GenerateText(ctx, summarySystemMessage, prompt)
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Ask answers a free-form question about the inventory using the capped
// chat context payload.
func (a *Analyst) Ask(ctx context.Context, ds *table.Dataset, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("question cannot be empty")
	}
	if ds == nil || ds.IsEmpty() {
		return "", fmt.Errorf("no dataset loaded to answer questions about")
	}

	prompt, err := BuildChatPrompt(ds, question)
	if err != nil {
		return "", err
	}

	log.Printf("[Analyst] Chat question - length=%d", len(question))
	text, err := a.generator.GenerateText(ctx, chatSystemMessage, prompt)
	if err != nil {
		return "", fmt.Errorf("chat generation failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// BuildSummaryPrompt renders the summary prompt for a dataset. Exported so
// tests can pin the payload contract without a live model.
func BuildSummaryPrompt(ds *table.Dataset) (string, error) {
	summary := analysis.Summarize(ds)
	payload, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary payload: %w", err)
	}
	return strings.ReplaceAll(summaryPromptTemplate, "{SUMMARY_JSON}", string(payload)), nil
}

// BuildChatPrompt renders the chat prompt for a question over a dataset.
func BuildChatPrompt(ds *table.Dataset, question string) (string, error) {
	chatCtx := analysis.BuildChatContext(ds)
	payload, err := json.MarshalIndent(chatCtx, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat context: %w", err)
	}
	prompt := strings.ReplaceAll(chatPromptTemplate, "{CONTEXT_JSON}", string(payload))
	prompt = strings.ReplaceAll(prompt, "{QUESTION}", question)
	return prompt, nil
}
