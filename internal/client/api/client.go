// Package api contains the HTTP client for the Smart Campus Assistant
// backend: a thin request wrapper plus one typed resource client per backend
// resource. All wire-format translation happens here; callers only ever see
// the normalized models.
package api

import (
	"context"
	"io"

	"github.com/smartcampus/assistant-cli/internal/client/models"
)

// Client is the full backend surface consumed by the view-state controllers
// and the CLI. It is satisfied by HTTPClient; tests supply fakes.
type Client interface {
	Close() error

	// auth
	Login(ctx context.Context, req LoginRequest) (string, models.Profile, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (models.Profile, error)
	Verify(ctx context.Context, university, rollNo string) (bool, string, error)
	Ping(ctx context.Context) error

	// documents
	ListDocuments(ctx context.Context) ([]models.Document, error)
	GetDocument(ctx context.Context, id string) (*models.DocumentDetail, error)
	DeleteDocument(ctx context.Context, id string) error
	SearchDocuments(ctx context.Context, query string, topK int) (*models.SearchResult, error)
	SimilarDocuments(ctx context.Context, id string) ([]models.SearchHit, error)
	IngestFile(ctx context.Context, upload FileUpload) (*models.IngestResult, error)
	IngestWikipedia(ctx context.Context, query string) (*models.IngestResult, error)

	// chat
	Ask(ctx context.Context, req AskRequest) (*models.Answer, error)
	Summary(ctx context.Context, req SummaryRequest) (string, error)

	// quiz
	QuizBatch(ctx context.Context, topic string, numQuestions int) ([]models.QuizQuestion, error)
	QuizNext(ctx context.Context, req QuizNextRequest) (*models.QuizStep, error)
	Feedback(ctx context.Context, req FeedbackRequest) error

	// analytics
	AnalyticsOptions(ctx context.Context) (*models.AnalyticsOptions, error)
	Stats(ctx context.Context) (*models.StoreStats, error)
	DashboardOverview(ctx context.Context) (*models.DashboardOverview, error)
	QuizViewURL(scope models.AnalyticsScope, sessionIDs []string, source string) string

	// admin
	ListUsers(ctx context.Context) ([]models.AdminUser, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*models.AdminUser, error)
	DeleteUser(ctx context.Context, id int64) error
	StudentPerformance(ctx context.Context) ([]models.StudentPerformance, error)
	ResetStore(ctx context.Context) (*models.StoreStats, error)
}

// LoginRequest carries the unified login/registration payload. FullName and
// Password are optional for returning users on shared-auth deployments.
type LoginRequest struct {
	University string
	RollNo     string
	FullName   string
	Password   string
}

// AskRequest is a question for the RAG chat endpoint.
type AskRequest struct {
	Question     string
	TopK         int
	Sources      []string
	Conversation []models.ConversationTurn
}

// SummaryRequest asks the backend to summarize the student's documents.
type SummaryRequest struct {
	Topic   string
	TopK    int
	Sources []string
}

// QuizNextRequest advances an adaptive quiz session. History carries every
// graded turn so far; TotalQuestions bounds the run.
type QuizNextRequest struct {
	Topic          string
	History        []models.QuizTurn
	TopK           int
	Sources        []string
	TotalQuestions int
	SourceMode     string
	SourceID       string
}

// FeedbackRequest rates a generated object (an answer, a quiz question, a
// summary) with an optional free-text comment.
type FeedbackRequest struct {
	ObjectID   string
	ObjectType string
	Verdict    string
	Comment    string
}

// CreateUserRequest is the admin user-creation payload.
type CreateUserRequest struct {
	University string
	RollNo     string
	FullName   string
	Password   string
	IsAdmin    bool
}

// FileUpload describes one multipart document upload. Size is advisory (used
// for progress reporting); Progress, when non-nil, receives the running count
// of bytes sent and must be safe to call from the uploading goroutine.
type FileUpload struct {
	Name     string
	Content  io.Reader
	Size     int64
	Force    bool
	Progress func(sent int64)
}
