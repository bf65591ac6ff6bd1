package services

import (
	"context"
	"slices"
	"sync"

	"github.com/smartcampus/assistant-cli/internal/client/api"
	"github.com/smartcampus/assistant-cli/internal/client/models"
	"github.com/smartcampus/assistant-cli/internal/logging"
)

// AdminService backs the admin views. The user list is cached after the
// first fetch and dropped after every mutation, so a list read following a
// create or delete always reflects the server.
type AdminService interface {
	Users(ctx context.Context) ([]models.AdminUser, error)
	CreateUser(ctx context.Context, req api.CreateUserRequest) (*models.AdminUser, error)
	DeleteUser(ctx context.Context, id int64) error
	Performance(ctx context.Context) ([]models.StudentPerformance, error)

	// ResetStore wipes the whole document store on the server. Destructive;
	// confirmation is the caller's job.
	ResetStore(ctx context.Context) (*models.StoreStats, error)
}

type adminService struct {
	client api.Client
	log    logging.Logger

	mu     sync.Mutex
	users  []models.AdminUser
	loaded bool
}

func NewAdminService(client api.Client, log logging.Logger) AdminService {
	if log == nil {
		log = logging.Discard()
	}
	return &adminService{client: client, log: log}
}

func (s *adminService) Users(ctx context.Context) ([]models.AdminUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return slices.Clone(s.users), nil
	}
	list, err := s.client.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	s.users = list
	s.loaded = true
	return slices.Clone(list), nil
}

func (s *adminService) CreateUser(ctx context.Context, req api.CreateUserRequest) (*models.AdminUser, error) {
	user, err := s.client.CreateUser(ctx, req)
	// Invalidate even on error: the server may have applied the change
	// before the response was lost.
	s.invalidate()
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "user created", "id", user.ID, "roll_no", user.RollNo, "is_admin", user.IsAdmin)
	return user, nil
}

func (s *adminService) DeleteUser(ctx context.Context, id int64) error {
	err := s.client.DeleteUser(ctx, id)
	s.invalidate()
	if err != nil {
		return err
	}
	s.log.Info(ctx, "user deleted", "id", id)
	return nil
}

func (s *adminService) Performance(ctx context.Context) ([]models.StudentPerformance, error) {
	return s.client.StudentPerformance(ctx)
}

func (s *adminService) ResetStore(ctx context.Context) (*models.StoreStats, error) {
	stats, err := s.client.ResetStore(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Warn(ctx, "document store reset", "docs_remaining", stats.Docs)
	return stats, nil
}

func (s *adminService) invalidate() {
	s.mu.Lock()
	s.users = nil
	s.loaded = false
	s.mu.Unlock()
}
