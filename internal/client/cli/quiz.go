package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/smartcampus/assistant-cli/internal/client/api"
	"github.com/smartcampus/assistant-cli/internal/client/models"
)

const quizLength = 5

// Quiz runs an adaptive session on the given topic. Each answer is graded
// locally against the delivered key and the full graded history is echoed
// back, which is how the backend adapts the next question's difficulty.
func (a *App) Quiz(ctx context.Context, topic string) error {
	var history []models.QuizTurn
	for {
		step, err := a.client.QuizNext(ctx, api.QuizNextRequest{
			Topic:          topic,
			History:        history,
			TotalQuestions: quizLength,
		})
		if err != nil {
			return a.report(ctx, err)
		}
		if step.Summary != nil {
			printQuizSummary(step.Summary)
			return nil
		}

		q := step.Question
		printlnFn(fmt.Sprintf("[%s] %s", q.Difficulty, q.Prompt))
		for _, opt := range q.Options {
			printlnFn(fmt.Sprintf("  %s) %s", opt.ID, opt.Text))
		}

		answer, err := getSimpleText(a.reader, "Your answer (empty to stop)", os.Stdout)
		if err != nil {
			return err
		}
		if answer == "" {
			printlnFn("Quiz stopped")
			return nil
		}

		turn := gradeTurn(q, answer)
		if turn.WasCorrect {
			printlnFn("Correct!")
		} else {
			printlnFn("Incorrect; the answer was:", turn.CorrectOptionText)
		}
		if q.Explanation != "" {
			printlnFn(q.Explanation)
		}
		history = append(history, turn)
	}
}

// gradeTurn matches the typed answer against the option ids, case-insensitive.
func gradeTurn(q *models.QuizQuestion, answer string) models.QuizTurn {
	selected := strings.TrimSpace(answer)
	var correctText string
	for _, opt := range q.Options {
		if opt.ID == q.CorrectOptionID {
			correctText = opt.Text
		}
	}
	return models.QuizTurn{
		QuestionID:        q.ID,
		Question:          q.Prompt,
		SelectedOptionID:  selected,
		CorrectOptionID:   q.CorrectOptionID,
		CorrectOptionText: correctText,
		Difficulty:        q.Difficulty,
		WasCorrect:        strings.EqualFold(selected, q.CorrectOptionID),
		Explanation:       q.Explanation,
		ConceptLabel:      q.ConceptLabel,
	}
}

func printQuizSummary(s *models.QuizSummary) {
	printlnFn(fmt.Sprintf("Quiz complete: %d/%d correct (%.0f%%)",
		s.CorrectCount, s.TotalQuestions, s.Accuracy*100))
	for _, c := range s.ConceptBreakdown {
		printlnFn(fmt.Sprintf("  %-30s %d/%d (%.0f%%)",
			c.Concept, c.Correct, c.Attempts, c.Accuracy*100))
	}
	if len(s.RecommendedConcepts) > 0 {
		printlnFn("Worth revisiting:", strings.Join(s.RecommendedConcepts, ", "))
	}
}

// Drill prints a whole practice batch up front, answer key marked with an
// asterisk, for studying outside a live session.
func (a *App) Drill(ctx context.Context, topic string) error {
	questions, err := a.client.QuizBatch(ctx, topic, quizLength)
	if err != nil {
		return a.report(ctx, err)
	}
	if len(questions) == 0 {
		printlnFn("No questions could be generated; upload some documents first")
		return nil
	}
	for i, q := range questions {
		printlnFn(fmt.Sprintf("%d. [%s] %s", i+1, q.Difficulty, q.Prompt))
		for _, opt := range q.Options {
			marker := " "
			if opt.ID == q.CorrectOptionID {
				marker = "*"
			}
			printlnFn(fmt.Sprintf(" %s %s) %s", marker, opt.ID, opt.Text))
		}
	}
	return nil
}
