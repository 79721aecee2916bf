package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"shopadmin/internal/domain"
)

// Session владеет токенами одного оператора: CSRF, bearer и cookie jar.
// It is created at login and discarded at logout.
type Session struct {
	client *Client
	http   *http.Client

	mu     sync.RWMutex
	csrf   string
	bearer string
	user   *domain.User
}

func (s *Session) authorize(req *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+s.bearer)
	}
	switch req.Method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		if s.csrf != "" {
			req.Header.Set("X-CSRF-Token", s.csrf)
		}
	}
}

// captureCSRF stores csrfToken from any JSON object response that carries one.
func (s *Session) captureCSRF(raw []byte) {
	if firstByte(raw) != '{' {
		return
	}
	var body struct {
		CSRFToken string `json:"csrfToken"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.CSRFToken == "" {
		return
	}
	s.mu.Lock()
	s.csrf = body.CSRFToken
	s.mu.Unlock()
}

func (s *Session) clear() {
	s.mu.Lock()
	s.csrf = ""
	s.bearer = ""
	s.user = nil
	s.mu.Unlock()
}

// CSRFToken текущий CSRF-токен
func (s *Session) CSRFToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.csrf
}

// User оператор, под которым выполнен вход, или nil
func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	cp := *s.user
	return &cp
}

// Authenticated reports whether the session still holds credentials.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil || s.bearer != ""
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates against the backend and keeps the returned CSRF token.
func (s *Session) Login(ctx context.Context, username, password string) (*domain.User, error) {
	raw, err := s.do(ctx, "login", http.MethodPost, "/login", nil, loginReq{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	u, err := decodeOne[domain.User](s.client.validate, pick(raw, "user"))
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
	cp := *u
	return &cp, nil
}

// Logout always drops local credentials, even when the backend call fails.
func (s *Session) Logout(ctx context.Context) error {
	_, err := s.do(ctx, "logout", http.MethodPost, "/logout", nil, nil)
	s.clear()
	return err
}

func (s *Session) Profile(ctx context.Context) (*domain.User, error) {
	raw, err := s.do(ctx, "profile", http.MethodGet, "/profile", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.User](s.client.validate, pick(unwrapData(raw), "user"))
}

func (s *Session) RefreshToken(ctx context.Context) error {
	_, err := s.do(ctx, "refresh token", http.MethodPost, "/refresh-token", nil, nil)
	return err
}
