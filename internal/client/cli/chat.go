package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/smartcampus/assistant-cli/internal/client/api"
	"github.com/smartcampus/assistant-cli/internal/client/models"
)

// Ask sends a question together with the accumulated conversation so the
// backend can resolve follow-ups. Successful turns are appended to the
// history; failures leave it untouched.
func (a *App) Ask(ctx context.Context, question string) error {
	ans, err := a.client.Ask(ctx, api.AskRequest{
		Question:     question,
		Conversation: a.conversation,
	})
	if err != nil {
		return a.report(ctx, err)
	}

	printlnFn(ans.Answer)
	if len(ans.Sources) > 0 {
		printlnFn("Sources:", strings.Join(ans.Sources, ", "))
	}

	a.conversation = append(a.conversation,
		models.ConversationTurn{Role: "user", Content: question},
		models.ConversationTurn{Role: "assistant", Content: ans.Answer},
	)
	return nil
}

func (a *App) Search(ctx context.Context, query string) error {
	res, err := a.client.SearchDocuments(ctx, query, 0)
	if err != nil {
		return a.report(ctx, err)
	}
	if res.Answer != "" {
		printlnFn(res.Answer)
	}
	if len(res.Hits) == 0 {
		printlnFn("No matches")
		return nil
	}
	for _, h := range res.Hits {
		printlnFn(formatHit(h))
	}
	return nil
}

func formatHit(h models.SearchHit) string {
	return fmt.Sprintf("%.3f %s: %s", h.Score, h.Source, snippet(h.Text))
}

func (a *App) Summary(ctx context.Context, topic string) error {
	text, err := a.client.Summary(ctx, api.SummaryRequest{Topic: topic})
	if err != nil {
		return a.report(ctx, err)
	}
	printlnFn(text)
	return nil
}

// Feedback rates the most recent answer. The backend accepts verdicts on
// other object types too; the CLI keeps the command scoped to the chat flow.
func (a *App) Feedback(ctx context.Context, verdict, comment string) error {
	if len(a.conversation) == 0 {
		printlnFn("Nothing to rate yet; ask a question first")
		return nil
	}
	err := a.client.Feedback(ctx, api.FeedbackRequest{
		ObjectType: "answer",
		Verdict:    verdict,
		Comment:    comment,
	})
	if err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Feedback recorded")
	return nil
}
