package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/smartcampus/assistant-cli/internal/client/models"
)

type quizOptionDTO struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// quizQuestionDTO mirrors the generated question block. Key casing is mixed
// on the wire (question_id next to correctOptionId); kept as-is here.
type quizQuestionDTO struct {
	QuestionID      string          `json:"question_id"`
	Prompt          string          `json:"prompt"`
	Difficulty      string          `json:"difficulty"`
	Options         []quizOptionDTO `json:"options"`
	CorrectOptionID string          `json:"correctOptionId"`
	Explanation     string          `json:"explanation"`
	ConceptLabel    string          `json:"conceptLabel"`
}

func (d quizQuestionDTO) toModel() models.QuizQuestion {
	q := models.QuizQuestion{
		ID:              d.QuestionID,
		Prompt:          d.Prompt,
		Difficulty:      d.Difficulty,
		CorrectOptionID: d.CorrectOptionID,
		Explanation:     d.Explanation,
		ConceptLabel:    d.ConceptLabel,
	}
	for _, opt := range d.Options {
		q.Options = append(q.Options, models.QuizOption{ID: opt.ID, Text: opt.Text})
	}
	return q
}

type quizBatchRequestDTO struct {
	Topic        string `json:"topic,omitempty"`
	NumQuestions int    `json:"num_questions,omitempty"`
}

// QuizBatch generates a fixed set of questions in one call, answer key
// included, for practice outside a live session.
func (c *HTTPClient) QuizBatch(ctx context.Context, topic string, numQuestions int) ([]models.QuizQuestion, error) {
	var dtos []quizQuestionDTO
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/quiz",
		body:   quizBatchRequestDTO{Topic: topic, NumQuestions: numQuestions},
		out:    &dtos,
	})
	if err != nil {
		return nil, err
	}

	questions := make([]models.QuizQuestion, 0, len(dtos))
	for _, d := range dtos {
		questions = append(questions, d.toModel())
	}
	return questions, nil
}

type quizTurnDTO struct {
	QuestionID        string `json:"questionId,omitempty"`
	Question          string `json:"question"`
	SelectedOptionID  string `json:"selectedOptionId,omitempty"`
	CorrectOptionID   string `json:"correctOptionId,omitempty"`
	CorrectOptionText string `json:"correctOptionText,omitempty"`
	Difficulty        string `json:"difficulty"`
	WasCorrect        bool   `json:"wasCorrect"`
	Explanation       string `json:"explanation,omitempty"`
	ConceptLabel      string `json:"conceptLabel,omitempty"`
}

type quizNextRequestDTO struct {
	Topic          string        `json:"topic"`
	History        []quizTurnDTO `json:"history"`
	TopK           int           `json:"top_k,omitempty"`
	Sources        []string      `json:"sources,omitempty"`
	TotalQuestions int           `json:"totalQuestions,omitempty"`
	SourceMode     string        `json:"sourceMode,omitempty"`
	SourceID       string        `json:"sourceId,omitempty"`
}

type quizConceptStatDTO struct {
	Concept  string  `json:"concept"`
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// quizStepDTO is the union reply of the adaptive endpoint. Status selects
// which half is populated: "question" or "complete".
type quizStepDTO struct {
	Status             string           `json:"status"`
	Question           *quizQuestionDTO `json:"question"`
	TotalQuestions     int              `json:"totalQuestions"`
	RemainingQuestions int              `json:"remainingQuestions"`

	CorrectCount        int                  `json:"correctCount"`
	IncorrectCount      int                  `json:"incorrectCount"`
	Accuracy            float64              `json:"accuracy"`
	ConceptBreakdown    []quizConceptStatDTO `json:"conceptBreakdown"`
	RecommendedConcepts []string             `json:"recommendedConcepts"`
}

// QuizNext advances an adaptive session. The accumulated history rides along
// so the backend can pick the next difficulty; once every question has been
// answered the reply carries the summary instead of a question.
func (c *HTTPClient) QuizNext(ctx context.Context, req QuizNextRequest) (*models.QuizStep, error) {
	body := quizNextRequestDTO{
		Topic:          req.Topic,
		History:        make([]quizTurnDTO, 0, len(req.History)),
		TopK:           req.TopK,
		Sources:        req.Sources,
		TotalQuestions: req.TotalQuestions,
		SourceMode:     req.SourceMode,
		SourceID:       req.SourceID,
	}
	for _, turn := range req.History {
		body.History = append(body.History, quizTurnDTO{
			QuestionID:        turn.QuestionID,
			Question:          turn.Question,
			SelectedOptionID:  turn.SelectedOptionID,
			CorrectOptionID:   turn.CorrectOptionID,
			CorrectOptionText: turn.CorrectOptionText,
			Difficulty:        turn.Difficulty,
			WasCorrect:        turn.WasCorrect,
			Explanation:       turn.Explanation,
			ConceptLabel:      turn.ConceptLabel,
		})
	}

	var dto quizStepDTO
	if err := c.do(ctx, call{method: http.MethodPost, path: "/quiz/next", body: body, out: &dto}); err != nil {
		return nil, err
	}

	step := &models.QuizStep{Total: dto.TotalQuestions}
	if dto.Status == "complete" {
		summary := &models.QuizSummary{
			TotalQuestions:      dto.TotalQuestions,
			CorrectCount:        dto.CorrectCount,
			IncorrectCount:      dto.IncorrectCount,
			Accuracy:            dto.Accuracy,
			RecommendedConcepts: dto.RecommendedConcepts,
		}
		for _, cb := range dto.ConceptBreakdown {
			summary.ConceptBreakdown = append(summary.ConceptBreakdown, models.QuizConceptStat{
				Concept:  cb.Concept,
				Attempts: cb.Attempts,
				Correct:  cb.Correct,
				Accuracy: cb.Accuracy,
			})
		}
		step.Summary = summary
		return step, nil
	}

	if dto.Question == nil {
		return nil, fmt.Errorf("quiz step %q carries no question", dto.Status)
	}
	q := dto.Question.toModel()
	step.Question = &q
	step.Remaining = dto.RemainingQuestions
	return step, nil
}

type feedbackRequestDTO struct {
	ObjectID   string `json:"object_id,omitempty"`
	ObjectType string `json:"object_type"`
	Feedback   string `json:"feedback"`
	Comment    string `json:"comment,omitempty"`
}

// Feedback records an up/down/flag verdict on a generated object.
func (c *HTTPClient) Feedback(ctx context.Context, req FeedbackRequest) error {
	body := feedbackRequestDTO{
		ObjectID:   req.ObjectID,
		ObjectType: req.ObjectType,
		Feedback:   req.Verdict,
		Comment:    req.Comment,
	}
	return c.do(ctx, call{method: http.MethodPost, path: "/feedback", body: body})
}
