package report

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/dvloznov/ledger-sync/internal/reconcile"
)

// SummaryModelName is the Gemini model used for run summaries.
const SummaryModelName = "gemini-2.5-flash"

// Summarize asks Gemini for a short prose summary of a run report.
func Summarize(ctx context.Context, apiKey string, rep *reconcile.Report) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("Summarize: create genai client: %w", err)
	}

	prompt := "You are summarizing a daily ledger reconciliation run for a finance team.\n" +
		"Write 2-3 plain sentences: state the date range, how many rows were " +
		"inserted, overwritten and skipped, and call out anything unusual " +
		"(for example zero totals or overwrites).\n" +
		"Return plain text only. No Markdown, no lists.\n\n" +
		Render(rep)

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, SummaryModelName, contents, nil)
	if err != nil {
		return "", fmt.Errorf("Summarize: generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("Summarize: empty response from model")
	}

	return text, nil
}
