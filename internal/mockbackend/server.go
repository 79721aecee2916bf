// Package mockbackend is an in-memory stand-in for the e-commerce backend
// the console talks to. It speaks the same routes and envelopes so the
// console can be developed and tested without the real service.
package mockbackend

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"shopadmin/internal/domain"
	"shopadmin/internal/repository"
)

const sessionCookie = "sid"

// Options настройки заглушки
type Options struct {
	// AdminToken, when set, is accepted as a bearer token in place of a login.
	AdminToken string
	Logger     *slog.Logger
}

type session struct {
	user domain.User
	csrf string
}

// Server HTTP-сервер заглушки бэкенда
type Server struct {
	router     *mux.Router
	products   *repository.MemoryStore
	orders     *repository.MemoryOrders
	categories *repository.MemoryCategories
	users      *repository.MemoryUsers
	orderSvc   *OrderService
	adminToken string
	log        *slog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

func New(store *repository.MemoryStore, opts Options) *Server {
	l := opts.Logger
	if l == nil {
		l = slog.Default()
	}
	orders := repository.NewMemoryOrders(store)
	s := &Server{
		router:     mux.NewRouter(),
		products:   store,
		orders:     orders,
		categories: repository.NewMemoryCategories(store),
		users:      repository.NewMemoryUsers(store),
		orderSvc:   NewOrderService(store, orders, repository.NewMemoryTx(store)),
		adminToken: opts.AdminToken,
		log:        l.With("component", "mockbackend"),
		sessions:   make(map[string]*session),
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) registerRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/login", s.login).Methods(http.MethodPost)

	auth := api.NewRoute().Subrouter()
	auth.Use(s.requireAuth)
	auth.HandleFunc("/logout", s.logout).Methods(http.MethodPost)
	auth.HandleFunc("/profile", s.profile).Methods(http.MethodGet)
	auth.HandleFunc("/refresh-token", s.refreshToken).Methods(http.MethodPost)

	auth.HandleFunc("/admin/orders", s.listOrders).Methods(http.MethodGet)
	auth.HandleFunc("/admin/order/{id}", s.getOrder).Methods(http.MethodGet)
	auth.HandleFunc("/admin/order/{id}/status", s.updateOrderStatus).Methods(http.MethodPut)

	auth.HandleFunc("/products", s.listProducts).Methods(http.MethodGet)
	auth.HandleFunc("/product/{id}", s.getProduct).Methods(http.MethodGet)
	auth.HandleFunc("/product", s.createProduct).Methods(http.MethodPost)
	auth.HandleFunc("/product/{id}", s.updateProduct).Methods(http.MethodPut)
	auth.HandleFunc("/categories", s.listCategories).Methods(http.MethodGet)
	auth.HandleFunc("/category", s.createCategory).Methods(http.MethodPost)

	auth.HandleFunc("/users", s.listUsers).Methods(http.MethodGet)
	auth.HandleFunc("/users/download", s.downloadUsers).Methods(http.MethodGet)
	auth.HandleFunc("/user/{id}", s.getUser).Methods(http.MethodGet)
	auth.HandleFunc("/user/{id}", s.deleteUser).Methods(http.MethodDelete)
}

// requireAuth accepts either the admin bearer token or a session cookie.
// Cookie sessions must echo the CSRF token on mutating requests.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminToken != "" && r.Header.Get("Authorization") == "Bearer "+s.adminToken {
			next.ServeHTTP(w, r)
			return
		}
		c, err := r.Cookie(sessionCookie)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorBody("Authentication required"))
			return
		}
		s.mu.Lock()
		sess, ok := s.sessions[c.Value]
		s.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorBody("Session expired"))
			return
		}
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
			if r.Header.Get("X-CSRF-Token") != sess.csrf {
				writeJSON(w, http.StatusForbidden, errorBody("Invalid CSRF token"))
				return
			}
		}
		if strings.HasPrefix(r.URL.Path, "/api/admin/") && !sess.user.IsAdmin {
			writeJSON(w, http.StatusForbidden, errorBody("Admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) sessionFor(r *http.Request) (string, *session) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.Value, s.sessions[c.Value]
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}
	u, err := s.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorBody("Invalid username or password"))
		return
	}
	sid := uuid.NewString()
	csrf := uuid.NewString()
	s.mu.Lock()
	s.sessions[sid] = &session{user: *u, csrf: csrf}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: sid, Path: "/", HttpOnly: true})
	s.log.Info("login", "username", u.Username)
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Login successful",
		"user":      u,
		"csrfToken": csrf,
	})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if sid, sess := s.sessionFor(r); sess != nil {
		s.mu.Lock()
		delete(s.sessions, sid)
		s.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]any{"message": "Logged out"})
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	_, sess := s.sessionFor(r)
	if sess == nil {
		writeJSON(w, http.StatusNotFound, errorBody("no profile for token access"))
		return
	}
	writeJSON(w, http.StatusOK, sess.user)
}

func (s *Server) refreshToken(w http.ResponseWriter, r *http.Request) {
	_, sess := s.sessionFor(r)
	if sess == nil {
		writeJSON(w, http.StatusOK, map[string]any{"message": "token access needs no csrf"})
		return
	}
	csrf := uuid.NewString()
	s.mu.Lock()
	sess.csrf = csrf
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"csrfToken": csrf})
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorBody(msg string) map[string]any {
	return map[string]any{"success": false, "message": msg, "error": msg}
}

func ok(msg string, data any) map[string]any {
	return map[string]any{"success": true, "message": msg, "data": data}
}
