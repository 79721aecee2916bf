package mockbackend

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"shopadmin/internal/domain"
	"shopadmin/internal/repository"
)

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.OrderFilter{Search: q.Get("search")}
	if v := q.Get("status"); v != "" {
		st, err := domain.ParseDeliveryStatus(strings.ToUpper(v))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("Invalid status filter"))
			return
		}
		f.Status = st
	}
	if v := q.Get("paymentStatus"); v != "" {
		ps, err := domain.ParsePaymentStatus(strings.ToUpper(v))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("Invalid payment status filter"))
			return
		}
		f.PaymentStatus = ps
	}
	list, err := s.orders.List(r.Context(), f)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, ok("Orders fetched", paginate(list, q.Get("page"), q.Get("limit"))))
}

// paginate applies 1-based page/limit; invalid values mean "everything".
func paginate[T any](in []T, page, limit string) []T {
	l, err := strconv.Atoi(limit)
	if err != nil || l <= 0 {
		return in
	}
	p, err := strconv.Atoi(page)
	if err != nil || p <= 0 {
		p = 1
	}
	pages := len(in) / l
	if len(in)%l != 0 {
		pages++
	}
	if p > pages {
		return []T{}
	}
	start := (p - 1) * l
	end := start + l
	if end > len(in) {
		end = len(in)
	}
	return in[start:end]
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.orders.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ok("Order fetched", o))
}

type statusReq struct {
	DeliveryStatus string `json:"deliveryStatus"`
	PaymentStatus  string `json:"paymentStatus"`
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}
	var (
		delivery domain.DeliveryStatus
		payment  domain.PaymentStatus
		err      error
	)
	if req.DeliveryStatus != "" {
		if delivery, err = domain.ParseDeliveryStatus(req.DeliveryStatus); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("Invalid delivery status"))
			return
		}
	}
	if req.PaymentStatus != "" {
		if payment, err = domain.ParsePaymentStatus(req.PaymentStatus); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("Invalid payment status"))
			return
		}
	}
	id := mux.Vars(r)["id"]
	o, err := s.orderSvc.UpdateStatus(r.Context(), id, delivery, payment)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.log.Info("order status updated", "order_id", id, "delivery", o.DeliveryStatus, "payment", o.PaymentStatus)
	writeJSON(w, http.StatusOK, ok("Order status updated", o))
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := s.products.List(r.Context(), repository.ProductFilter{
		NameSubstring: q.Get("search"),
		CategoryID:    q.Get("categoryId"),
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, ok("Products fetched", map[string]any{
		"products": list,
		"total":    len(list),
	}))
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.products.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ok("Product fetched", p))
}

type productReq struct {
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	CategoryID  string          `json:"categoryId"`
	Images      []string        `json:"images"`
	IsActive    bool            `json:"isActive"`
}

func (req productReq) valid() bool {
	return req.Name != "" && !req.Price.IsNegative() && req.Stock >= 0
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.valid() {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid product"))
		return
	}
	if req.CategoryID != "" {
		if _, err := s.categories.GetByID(r.Context(), req.CategoryID); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("Unknown category"))
			return
		}
	}
	p := domain.Product{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		Images:      req.Images,
		IsActive:    req.IsActive,
	}
	if p.Slug == "" {
		p.Slug = slugify(p.Name)
	}
	if err := s.products.Create(r.Context(), &p); err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ok("Product created", p))
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.valid() {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid product"))
		return
	}
	p, err := s.products.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeErr(w, err)
		return
	}
	p.Name, p.Description, p.Price, p.Stock = req.Name, req.Description, req.Price, req.Stock
	p.CategoryID, p.Images, p.IsActive = req.CategoryID, req.Images, req.IsActive
	if req.Slug != "" {
		p.Slug = req.Slug
	}
	if err := s.products.Update(r.Context(), p); err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ok("Product updated", p))
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	list, err := s.categories.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, ok("Categories fetched", list))
}

type categoryReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid category"))
		return
	}
	c := domain.Category{Name: strings.TrimSpace(req.Name), Description: req.Description}
	if err := s.categories.Create(r.Context(), &c); err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ok("Category created", c))
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := s.users.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": list})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

// deleteUser is admin only; an admin cannot delete the account it is
// logged in with. Sessions of the deleted user are dropped.
func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, sess := s.sessionFor(r); sess != nil {
		if !sess.user.IsAdmin {
			writeJSON(w, http.StatusForbidden, errorBody("Admin access required"))
			return
		}
		if sess.user.ID == id {
			writeJSON(w, http.StatusConflict, errorBody("Cannot delete your own account"))
			return
		}
	}
	if err := s.users.Delete(r.Context(), id); err != nil {
		s.writeErr(w, err)
		return
	}
	s.mu.Lock()
	for sid, sess := range s.sessions {
		if sess.user.ID == id {
			delete(s.sessions, sid)
		}
	}
	s.mu.Unlock()
	s.log.Info("user deleted", "user_id", id)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "User deleted"})
}

func (s *Server) downloadUsers(w http.ResponseWriter, r *http.Request) {
	list, err := s.users.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="users.csv"`)
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"ID", "Name", "Username", "Email", "Phone", "City", "Admin", "Created At"})
	for _, u := range list {
		var email, phone, city string
		if d := u.UserDetails; d != nil {
			email, phone, city = d.Email, d.Phone, d.City
		}
		_ = cw.Write([]string{
			u.ID, u.Name, u.Username, email, phone, city,
			strconv.FormatBool(u.IsAdmin), u.CreatedAt.Format(time.RFC3339),
		})
	}
	cw.Flush()
}

func (s *Server) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("Not found"))
	case errors.Is(err, repository.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody("Already exists"))
	case errors.Is(err, ErrInvalidInput), errors.Is(err, domain.ErrInvalidStatusValue):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, ErrInvalidState):
		writeJSON(w, http.StatusConflict, errorBody("Illegal status transition"))
	case errors.Is(err, ErrNotEnoughStock):
		writeJSON(w, http.StatusConflict, errorBody("Not enough stock"))
	default:
		s.log.Error("request failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("Internal server error"))
	}
}

func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
