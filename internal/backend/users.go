package backend

import (
	"context"
	"net/http"
	"net/url"

	"shopadmin/internal/domain"
)

// FetchUsers accepts {users}, {data} or a bare list.
func (s *Session) FetchUsers(ctx context.Context) ([]domain.User, error) {
	raw, err := s.do(ctx, "fetch users", http.MethodGet, "/users", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.User](s.client.validate, unwrapData(pick(raw, "users")))
}

func (s *Session) FetchUser(ctx context.Context, id string) (*domain.User, error) {
	raw, err := s.do(ctx, "fetch user", http.MethodGet, "/user/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.User](s.client.validate, unwrapData(pick(raw, "user")))
}

func (s *Session) DeleteUser(ctx context.Context, id string) error {
	_, err := s.do(ctx, "delete user", http.MethodDelete, "/user/"+url.PathEscape(id), nil, nil)
	return err
}

// DownloadUsersCSV returns the backend's CSV export unchanged.
func (s *Session) DownloadUsersCSV(ctx context.Context) ([]byte, error) {
	return s.do(ctx, "download users", http.MethodGet, "/users/download", nil, nil)
}
