package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/smartcampus/assistant-cli/internal/client/models"
)

type conversationTurnDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type qaRequestDTO struct {
	Question     string                `json:"question"`
	TopK         int                   `json:"top_k,omitempty"`
	Sources      []string              `json:"sources,omitempty"`
	Conversation []conversationTurnDTO `json:"conversation,omitempty"`
}

type qaResponseDTO struct {
	Answer string `json:"answer"`
	// Each source is either a plain string or a metadata object carrying
	// original_filename/source keys, depending on the backend code path.
	Sources []json.RawMessage `json:"sources"`
}

// Ask sends a question to the RAG chat endpoint and returns the generated
// answer with the display names of the documents that grounded it.
func (c *HTTPClient) Ask(ctx context.Context, req AskRequest) (*models.Answer, error) {
	body := qaRequestDTO{
		Question: req.Question,
		TopK:     req.TopK,
		Sources:  req.Sources,
	}
	for _, turn := range req.Conversation {
		body.Conversation = append(body.Conversation, conversationTurnDTO{Role: turn.Role, Content: turn.Content})
	}

	var resp qaResponseDTO
	if err := c.do(ctx, call{method: http.MethodPost, path: "/qa", body: body, out: &resp}); err != nil {
		return nil, err
	}

	answer := &models.Answer{Answer: resp.Answer}
	for _, raw := range resp.Sources {
		if name := sourceName(raw); name != "" {
			answer.Sources = append(answer.Sources, name)
		}
	}
	return answer, nil
}

// sourceName extracts a display name from one element of the sources array.
func sourceName(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var meta struct {
		OriginalFilename string `json:"original_filename"`
		Source           string `json:"source"`
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return ""
	}
	if meta.OriginalFilename != "" {
		return meta.OriginalFilename
	}
	return meta.Source
}

type summaryRequestDTO struct {
	Topic   string   `json:"topic,omitempty"`
	TopK    int      `json:"top_k,omitempty"`
	Sources []string `json:"sources,omitempty"`
}

type summaryResponseDTO struct {
	Summary string `json:"summary"`
}

// Summary asks the backend to summarize the student's documents.
func (c *HTTPClient) Summary(ctx context.Context, req SummaryRequest) (string, error) {
	var resp summaryResponseDTO
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/summary",
		body:   summaryRequestDTO{Topic: req.Topic, TopK: req.TopK, Sources: req.Sources},
		out:    &resp,
	})
	if err != nil {
		return "", err
	}
	return resp.Summary, nil
}
