package services

import (
	"context"
	"io"

	"github.com/smartcampus/assistant-cli/internal/client/api"
	"github.com/smartcampus/assistant-cli/internal/client/models"
)

// fakeAPI implements api.Client with canned responses. Only the fields a
// test sets matter; everything else returns zero values.
type fakeAPI struct {
	loginToken   string
	loginProfile models.Profile
	loginErr     error
	lastLogin    api.LoginRequest

	logoutErr   error
	logoutCalls int

	pingErr error

	listDocs      []models.Document
	listDocsErr   error
	listDocsCalls int

	ingestResult       *models.IngestResult
	ingestForcedResult *models.IngestResult
	ingestErr          error
	lastUpload         api.FileUpload
	uploadedBytes      int64

	overview    *models.DashboardOverview
	overviewErr error
	stats       *models.StoreStats
	statsErr    error
	options     *models.AnalyticsOptions
	optionsErr  error

	users          []models.AdminUser
	usersErr       error
	listUsersCalls int
	createdUser    *models.AdminUser
	createUserErr  error
	deleteUserErr  error
	deletedUserID  int64
	perf           []models.StudentPerformance
	perfErr        error

	resetStats *models.StoreStats
	resetErr   error
	resetCalls int
}

var _ api.Client = (*fakeAPI)(nil)

func (f *fakeAPI) Close() error { return nil }

func (f *fakeAPI) Login(_ context.Context, req api.LoginRequest) (string, models.Profile, error) {
	f.lastLogin = req
	if f.loginErr != nil {
		return "", models.Profile{}, f.loginErr
	}
	return f.loginToken, f.loginProfile, nil
}

func (f *fakeAPI) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAPI) Me(context.Context) (models.Profile, error) {
	return f.loginProfile, nil
}

func (f *fakeAPI) Verify(context.Context, string, string) (bool, string, error) {
	return true, "registered", nil
}

func (f *fakeAPI) Ping(context.Context) error { return f.pingErr }

func (f *fakeAPI) ListDocuments(context.Context) ([]models.Document, error) {
	f.listDocsCalls++
	return f.listDocs, f.listDocsErr
}

func (f *fakeAPI) GetDocument(context.Context, string) (*models.DocumentDetail, error) {
	return nil, nil
}

func (f *fakeAPI) DeleteDocument(context.Context, string) error { return nil }

func (f *fakeAPI) SearchDocuments(context.Context, string, int) (*models.SearchResult, error) {
	return nil, nil
}

func (f *fakeAPI) SimilarDocuments(context.Context, string) ([]models.SearchHit, error) {
	return nil, nil
}

func (f *fakeAPI) IngestFile(_ context.Context, upload api.FileUpload) (*models.IngestResult, error) {
	f.lastUpload = upload
	if f.ingestErr != nil {
		return nil, f.ingestErr
	}
	// Drain the content the way the real client would, reporting progress.
	buf := make([]byte, 4)
	for {
		n, err := upload.Content.Read(buf)
		f.uploadedBytes += int64(n)
		if upload.Progress != nil && n > 0 {
			upload.Progress(f.uploadedBytes)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	if upload.Force && f.ingestForcedResult != nil {
		return f.ingestForcedResult, nil
	}
	return f.ingestResult, nil
}

func (f *fakeAPI) IngestWikipedia(context.Context, string) (*models.IngestResult, error) {
	return f.ingestResult, f.ingestErr
}

func (f *fakeAPI) Ask(context.Context, api.AskRequest) (*models.Answer, error) { return nil, nil }

func (f *fakeAPI) Summary(context.Context, api.SummaryRequest) (string, error) { return "", nil }

func (f *fakeAPI) QuizBatch(context.Context, string, int) ([]models.QuizQuestion, error) {
	return nil, nil
}

func (f *fakeAPI) QuizNext(context.Context, api.QuizNextRequest) (*models.QuizStep, error) {
	return nil, nil
}

func (f *fakeAPI) Feedback(context.Context, api.FeedbackRequest) error { return nil }

func (f *fakeAPI) AnalyticsOptions(context.Context) (*models.AnalyticsOptions, error) {
	return f.options, f.optionsErr
}

func (f *fakeAPI) Stats(context.Context) (*models.StoreStats, error) {
	return f.stats, f.statsErr
}

func (f *fakeAPI) DashboardOverview(context.Context) (*models.DashboardOverview, error) {
	return f.overview, f.overviewErr
}

func (f *fakeAPI) QuizViewURL(models.AnalyticsScope, []string, string) string { return "" }

func (f *fakeAPI) ListUsers(context.Context) ([]models.AdminUser, error) {
	f.listUsersCalls++
	return f.users, f.usersErr
}

func (f *fakeAPI) CreateUser(_ context.Context, req api.CreateUserRequest) (*models.AdminUser, error) {
	if f.createUserErr != nil {
		return nil, f.createUserErr
	}
	if f.createdUser != nil {
		return f.createdUser, nil
	}
	return &models.AdminUser{ID: 100, University: req.University, RollNo: req.RollNo,
		FullName: req.FullName, IsActive: true, IsAdmin: req.IsAdmin}, nil
}

func (f *fakeAPI) DeleteUser(_ context.Context, id int64) error {
	f.deletedUserID = id
	return f.deleteUserErr
}

func (f *fakeAPI) StudentPerformance(context.Context) ([]models.StudentPerformance, error) {
	return f.perf, f.perfErr
}

func (f *fakeAPI) ResetStore(context.Context) (*models.StoreStats, error) {
	f.resetCalls++
	return f.resetStats, f.resetErr
}
