package service

import (
	"context"

	"shopadmin/internal/backend"
	"shopadmin/internal/domain"
)

// UserSource операции с пользователями на стороне бэкенда
type UserSource interface {
	FetchUsers(ctx context.Context) ([]domain.User, error)
	FetchUser(ctx context.Context, id string) (*domain.User, error)
	DownloadUsersCSV(ctx context.Context) ([]byte, error)
	DeleteUser(ctx context.Context, id string) error
	Profile(ctx context.Context) (*domain.User, error)
}

var _ UserSource = (*backend.Session)(nil)

type UserService struct {
	src UserSource
}

func NewUserService(src UserSource) *UserService {
	return &UserService{src: src}
}

// Current возвращает пользователя, под которым открыта сессия
func (s *UserService) Current(ctx context.Context) (*domain.User, error) {
	return s.src.Profile(ctx)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.src.FetchUsers(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.src.FetchUser(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.src.DeleteUser(ctx, id)
}

// ExportCSV returns the backend's export as is.
func (s *UserService) ExportCSV(ctx context.Context) ([]byte, error) {
	return s.src.DownloadUsersCSV(ctx)
}
