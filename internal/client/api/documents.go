package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/smartcampus/assistant-cli/internal/client/models"
)

type documentListItemDTO struct {
	ID         looseID `json:"id"`
	Source     string  `json:"source"`
	CreatedAt  string  `json:"created_at"`
	Difficulty string  `json:"difficulty"`
	Version    int     `json:"version"`
}

type documentListDTO struct {
	Sources   []documentListItemDTO `json:"sources"`
	TotalDocs int                   `json:"total_docs"`
}

// ListDocuments returns the server-confirmed document list, newest first.
func (c *HTTPClient) ListDocuments(ctx context.Context) ([]models.Document, error) {
	var resp documentListDTO
	if err := c.do(ctx, call{method: http.MethodGet, path: "/documents", out: &resp}); err != nil {
		return nil, err
	}

	docs := make([]models.Document, 0, len(resp.Sources))
	for _, d := range resp.Sources {
		docs = append(docs, models.Document{
			ID:         string(d.ID),
			Name:       d.Source,
			IngestedAt: d.CreatedAt,
			Difficulty: d.Difficulty,
			Version:    d.Version,
		})
	}
	return docs, nil
}

type documentChunkDTO struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	ChunkIndex int    `json:"chunk_index"`
}

type documentDetailDTO struct {
	Source     string             `json:"source"`
	ID         looseID            `json:"id"`
	ChunkCount int                `json:"chunk_count"`
	IngestedAt string             `json:"ingested_at"`
	Summary    string             `json:"summary"`
	Difficulty string             `json:"difficulty"`
	Version    int                `json:"version"`
	Chunks     []documentChunkDTO `json:"chunks"`
}

func (c *HTTPClient) GetDocument(ctx context.Context, id string) (*models.DocumentDetail, error) {
	var dto documentDetailDTO
	if err := c.do(ctx, call{method: http.MethodGet, path: "/documents/" + url.PathEscape(id), out: &dto}); err != nil {
		return nil, err
	}

	detail := &models.DocumentDetail{
		ID:         string(dto.ID),
		Name:       dto.Source,
		ChunkCount: dto.ChunkCount,
		IngestedAt: dto.IngestedAt,
		Summary:    dto.Summary,
		Difficulty: dto.Difficulty,
		Version:    dto.Version,
	}
	for _, ch := range dto.Chunks {
		detail.Chunks = append(detail.Chunks, models.DocumentChunk{
			ID:         ch.ID,
			Text:       ch.Text,
			ChunkIndex: ch.ChunkIndex,
		})
	}
	return detail, nil
}

func (c *HTTPClient) DeleteDocument(ctx context.Context, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/documents/" + url.PathEscape(id)})
}

type searchHitDTO struct {
	Text          string  `json:"text"`
	Source        string  `json:"source"`
	DisplaySource string  `json:"display_source"`
	Score         float64 `json:"score"`
}

type searchResponseDTO struct {
	Results []searchHitDTO `json:"results"`
	Answer  string         `json:"answer"`
}

// SearchDocuments runs a semantic search over the student's documents.
// The backend takes the query via URL parameters on a POST, so that is what
// we send.
func (c *HTTPClient) SearchDocuments(ctx context.Context, query string, topK int) (*models.SearchResult, error) {
	q := url.Values{}
	q.Set("query", query)
	if topK > 0 {
		q.Set("top_k", strconv.Itoa(topK))
	}

	var resp searchResponseDTO
	if err := c.do(ctx, call{method: http.MethodPost, path: "/documents/search", query: q, out: &resp}); err != nil {
		return nil, err
	}

	result := &models.SearchResult{Answer: resp.Answer}
	for _, h := range resp.Results {
		source := h.DisplaySource
		if source == "" {
			source = h.Source
		}
		result.Hits = append(result.Hits, models.SearchHit{Source: source, Text: h.Text, Score: h.Score})
	}
	return result, nil
}

type similarHitDTO struct {
	Filename string  `json:"filename"`
	Snippet  string  `json:"snippet"`
	Score    float64 `json:"score"`
}

type similarResponseDTO struct {
	Similar []similarHitDTO `json:"similar"`
}

func (c *HTTPClient) SimilarDocuments(ctx context.Context, id string) ([]models.SearchHit, error) {
	var resp similarResponseDTO
	err := c.do(ctx, call{method: http.MethodGet, path: "/documents/" + url.PathEscape(id) + "/similar", out: &resp})
	if err != nil {
		return nil, err
	}

	hits := make([]models.SearchHit, 0, len(resp.Similar))
	for _, h := range resp.Similar {
		hits = append(hits, models.SearchHit{Source: h.Filename, Text: h.Snippet, Score: h.Score})
	}
	return hits, nil
}

type ingestResponseDTO struct {
	Status      string  `json:"status"`
	Message     string  `json:"message"`
	DocumentID  looseID `json:"document_id"`
	Version     int     `json:"version"`
	Difficulty  string  `json:"difficulty"`
	ChunksAdded int     `json:"chunks_added"`
}

func (d ingestResponseDTO) toModel() *models.IngestResult {
	return &models.IngestResult{
		DocumentID:  string(d.DocumentID),
		Version:     d.Version,
		Difficulty:  d.Difficulty,
		ChunksAdded: d.ChunksAdded,
		Duplicate:   d.Status == "duplicate_detected",
		Message:     d.Message,
	}
}

// IngestFile uploads one document as multipart/form-data. This is the only
// call bounded by the long upload timeout; oversized payloads surface as
// HTTP 413 and duplicate content as IngestResult.Duplicate unless forced.
func (c *HTTPClient) IngestFile(ctx context.Context, upload FileUpload) (*models.IngestResult, error) {
	var q url.Values
	if upload.Force {
		q = url.Values{}
		q.Set("force_upload", "true")
	}

	var resp ingestResponseDTO
	if err := c.uploadMultipart(ctx, "/ingest-file", q, upload, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

type wikiRequestDTO struct {
	Query string `json:"query"`
}

// IngestWikipedia asks the backend to fetch and index a Wikipedia article.
func (c *HTTPClient) IngestWikipedia(ctx context.Context, query string) (*models.IngestResult, error) {
	var resp ingestResponseDTO
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/documents/ingest/wikipedia",
		body:   wikiRequestDTO{Query: query},
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}
