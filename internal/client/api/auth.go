package api

import (
	"context"
	"net/http"

	"github.com/smartcampus/assistant-cli/internal/client/models"
)

type loginRequestDTO struct {
	University string `json:"university"`
	RollNo     string `json:"roll_no"`
	FullName   string `json:"full_name,omitempty"`
	Password   string `json:"password,omitempty"`
}

type loginResponseDTO struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        *profileDTO `json:"user"`
}

// Login authenticates (or registers, when the backend allows it) and returns
// the bearer token together with the normalized profile. Runs without auth:
// this is the one call that must work while anonymous.
func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (string, models.Profile, error) {
	body := loginRequestDTO{
		University: req.University,
		RollNo:     req.RollNo,
		FullName:   req.FullName,
		Password:   req.Password,
	}

	var resp loginResponseDTO
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/auth/login",
		body:     body,
		skipAuth: true,
		out:      &resp,
	})
	if err != nil {
		return "", models.Profile{}, err
	}

	profile := models.Profile{University: req.University, RollNo: req.RollNo, FullName: req.FullName}
	if resp.User != nil {
		profile = resp.User.toModel()
	}
	return resp.AccessToken, profile, nil
}

// Logout invalidates the server-side session for the current token.
// The local session is cleared by the caller regardless of the outcome.
func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, call{method: http.MethodPost, path: "/api/auth/logout"})
}

// Me returns the profile the backend associates with the current token.
func (c *HTTPClient) Me(ctx context.Context) (models.Profile, error) {
	var dto profileDTO
	err := c.do(ctx, call{method: http.MethodGet, path: "/api/auth/me", out: &dto})
	if err != nil {
		return models.Profile{}, err
	}
	return dto.toModel(), nil
}

type verifyRequestDTO struct {
	University string `json:"university"`
	RollNo     string `json:"roll_no"`
}

type verifyResponseDTO struct {
	Exists   bool   `json:"exists"`
	FullName string `json:"full_name"`
}

// Verify checks whether a student record exists before prompting for an
// access code, so the login form can distinguish first-time registration.
func (c *HTTPClient) Verify(ctx context.Context, university, rollNo string) (bool, string, error) {
	var resp verifyResponseDTO
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/auth/verify",
		body:     verifyRequestDTO{University: university, RollNo: rollNo},
		skipAuth: true,
		out:      &resp,
	})
	if err != nil {
		return false, "", err
	}
	return resp.Exists, resp.FullName, nil
}

// Ping probes backend liveness. Any 2xx counts as reachable.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, call{method: http.MethodGet, path: "/health", skipAuth: true})
}
