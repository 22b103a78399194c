// Package analysis produces an AI-generated textual summary of one log's
// table data. It is a thin wrapper on the Gemini API: one prompt in, one
// plain-text summary out, no streaming.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/ledgerline/stockbook/internal/export"
	"github.com/ledgerline/stockbook/pkg/types"
)

// DefaultModel is used when no analysis model is configured.
const DefaultModel = "gemini-2.5-flash"

// Analyst holds the Gemini client and the model selection.
type Analyst struct {
	client *genai.Client
	model  string
}

// NewAnalyst initializes the Gemini client. Credentials come from the
// environment (GEMINI_API_KEY or Google Cloud application defaults).
// An empty model selects DefaultModel.
func NewAnalyst(ctx context.Context, model string) (*Analyst, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("init Gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Analyst{client: client, model: model}, nil
}

// Summarize asks the model for a plain-text summary of the log's table
// data. There is no retry and no partial output: the caller either gets
// the full summary or an error.
func (a *Analyst) Summarize(ctx context.Context, l *types.Log) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(BuildPrompt(l), genai.RoleUser),
	}
	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from model %s", a.model)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// BuildPrompt embeds the log's markdown rendition in a short instruction.
// Exposed for tests and the --dry-run path.
func BuildPrompt(l *types.Log) string {
	var b strings.Builder
	b.WriteString("You are reviewing a daily stock log. Summarize the table data below in a few plain sentences: ")
	b.WriteString("notable quantities, obvious gaps, and anything unusual. Do not repeat the tables.\n\n")
	b.WriteString(export.Render(l))
	return b.String()
}
