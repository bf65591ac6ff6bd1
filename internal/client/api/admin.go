package api

import (
	"context"
	"net/http"

	"github.com/smartcampus/assistant-cli/internal/client/models"
)

type adminUserDTO struct {
	ID         int64     `json:"id"`
	University string    `json:"university"`
	RollNo     string    `json:"roll_no"`
	FullName   string    `json:"full_name"`
	IsActive   looseBool `json:"is_active"`
	IsAdmin    looseBool `json:"is_admin"`
}

func (d adminUserDTO) toModel() models.AdminUser {
	return models.AdminUser{
		ID:         d.ID,
		University: d.University,
		RollNo:     d.RollNo,
		FullName:   d.FullName,
		IsActive:   bool(d.IsActive),
		IsAdmin:    bool(d.IsAdmin),
	}
}

// ListUsers fetches all user records. Admin-only server side; a student
// token gets a 401/403 back, which is surfaced untouched.
func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.AdminUser, error) {
	var dtos []adminUserDTO
	if err := c.do(ctx, call{method: http.MethodGet, path: "/admin/users", out: &dtos}); err != nil {
		return nil, err
	}

	users := make([]models.AdminUser, 0, len(dtos))
	for _, d := range dtos {
		users = append(users, d.toModel())
	}
	return users, nil
}

type createUserDTO struct {
	University string `json:"university"`
	RollNo     string `json:"roll_no"`
	FullName   string `json:"full_name"`
	Password   string `json:"password,omitempty"`
	IsAdmin    bool   `json:"is_admin"`
}

// CreateUser adds a user record. Validation failures come back as HTTP 422
// with per-field errors, already aggregated into the error message.
func (c *HTTPClient) CreateUser(ctx context.Context, req CreateUserRequest) (*models.AdminUser, error) {
	body := createUserDTO{
		University: req.University,
		RollNo:     req.RollNo,
		FullName:   req.FullName,
		Password:   req.Password,
		IsAdmin:    req.IsAdmin,
	}

	var dto adminUserDTO
	if err := c.do(ctx, call{method: http.MethodPost, path: "/admin/users", body: body, out: &dto}); err != nil {
		return nil, err
	}
	user := dto.toModel()
	return &user, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/admin/users/" + formatID(id)})
}

type performanceDTO struct {
	University string `json:"university"`
	RollNo     string `json:"roll_no"`
	FullName   string `json:"full_name"`
	LoginCount int    `json:"login_count"`
	LastActive string `json:"last_active"`
}

// StudentPerformance returns the admin login-activity report.
func (c *HTTPClient) StudentPerformance(ctx context.Context) ([]models.StudentPerformance, error) {
	var dtos []performanceDTO
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/admin/student-performance", out: &dtos}); err != nil {
		return nil, err
	}

	rows := make([]models.StudentPerformance, 0, len(dtos))
	for _, d := range dtos {
		rows = append(rows, models.StudentPerformance{
			University: d.University,
			RollNo:     d.RollNo,
			FullName:   d.FullName,
			LoginCount: d.LoginCount,
			LastActive: d.LastActive,
		})
	}
	return rows, nil
}

// ResetStore wipes every stored document and embedding, for all users, and
// returns the (now empty) store statistics. Irreversible; the CLI asks for
// an explicit confirmation before calling this.
func (c *HTTPClient) ResetStore(ctx context.Context) (*models.StoreStats, error) {
	var dto statsDTO
	if err := c.do(ctx, call{method: http.MethodPost, path: "/reset-store", out: &dto}); err != nil {
		return nil, err
	}
	return dto.toModel(), nil
}
