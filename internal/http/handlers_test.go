package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"shopadmin/internal/backend"
	"shopadmin/internal/domain"
	"shopadmin/internal/logging"
	"shopadmin/internal/mockbackend"
	"shopadmin/internal/repository"
)

func init() { gin.SetMode(gin.TestMode) }

func setupServer(t *testing.T) *Server {
	t.Helper()
	store := repository.NewMemoryStore()
	if err := mockbackend.Seed(context.Background(), store); err != nil {
		t.Fatal(err)
	}
	mock := httptest.NewServer(mockbackend.New(store, mockbackend.Options{Logger: logging.Discard()}).Handler())
	t.Cleanup(mock.Close)

	client, err := backend.New(backend.Config{BaseURL: mock.URL + "/api", Timeout: 5 * time.Second, Logger: logging.Discard()})
	if err != nil {
		t.Fatal(err)
	}
	return NewServer(Options{
		Backend:  client,
		Sessions: NewSessionStore(time.Hour),
		Logger:   logging.Discard(),
	})
}

func doJSON(t *testing.T, s *Server, method, path, sid string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sid != "" {
		req.Header.Set(headerSession, sid)
	}
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func login(t *testing.T, s *Server, username, password string) string {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/api/v1/login", "", map[string]string{"username": username, "password": password})
	if w.Code != http.StatusOK {
		t.Fatalf("login code %v body %s", w.Code, w.Body.String())
	}
	resp := decode[loginResp](t, w)
	if resp.SessionID == "" || resp.User == nil || resp.User.Username != username {
		t.Fatalf("login resp %+v", resp)
	}
	return resp.SessionID
}

func activate(t *testing.T, s *Server, sid string) orderListResp {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/api/v1/orders/activate", sid, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("activate code %v body %s", w.Code, w.Body.String())
	}
	return decode[orderListResp](t, w)
}

func TestLoginAndSession(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/login", "", map[string]string{"username": "admin", "password": "nope"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password code %v", w.Code)
	}
	w = doJSON(t, s, http.MethodPost, "/api/v1/login", "", map[string]string{"username": "admin"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing password code %v", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/orders", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no session code %v", w.Code)
	}

	sid := login(t, s, mockbackend.SeedAdminUsername, mockbackend.SeedAdminPassword)
	if s.sessions.Len() != 1 {
		t.Fatalf("sessions %d", s.sessions.Len())
	}
	w = doJSON(t, s, http.MethodPost, "/api/v1/logout", sid, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("logout code %v", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/orders", sid, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("after logout code %v", w.Code)
	}
}

func TestOrderFlow(t *testing.T) {
	s := setupServer(t)
	sid := login(t, s, mockbackend.SeedAdminUsername, mockbackend.SeedAdminPassword)

	// view not opened yet
	w := doJSON(t, s, http.MethodGet, "/api/v1/orders", sid, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("before activate code %v", w.Code)
	}

	all := activate(t, s, sid)
	if len(all.Orders) != 8 || all.Error != "" {
		t.Fatalf("activate %d orders, err %q", len(all.Orders), all.Error)
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/orders?status=shipped", sid, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("filter code %v", w.Code)
	}
	shipped := decode[orderListResp](t, w).Orders
	if len(shipped) != 1 {
		t.Fatalf("shipped %d", len(shipped))
	}
	id := shipped[0].ID

	w = doJSON(t, s, http.MethodGet, "/api/v1/orders/"+id+"/transitions", sid, nil)
	tr := decode[transitionsResp](t, w)
	want := []domain.DeliveryStatus{domain.DeliveryOutForDelivery, domain.DeliveryDelivered, domain.DeliveryCancelled}
	if tr.Current != domain.DeliveryShipped || len(tr.Next) != len(want) {
		t.Fatalf("transitions %+v", tr)
	}
	for i := range want {
		if tr.Next[i] != want[i] {
			t.Fatalf("next[%d]=%s want %s", i, tr.Next[i], want[i])
		}
	}

	w = doJSON(t, s, http.MethodPut, "/api/v1/orders/"+id+"/status", sid, map[string]string{"deliveryStatus": "DELIVERED"})
	if w.Code != http.StatusOK {
		t.Fatalf("deliver code %v body %s", w.Code, w.Body.String())
	}
	if got := decode[domain.Order](t, w); got.DeliveryStatus != domain.DeliveryDelivered {
		t.Fatalf("status after update %s", got.DeliveryStatus)
	}

	// the local record changed without a reload
	w = doJSON(t, s, http.MethodGet, "/api/v1/orders?status=SHIPPED", sid, nil)
	if n := len(decode[orderListResp](t, w).Orders); n != 0 {
		t.Fatalf("shipped after update %d", n)
	}

	// backwards move is refused locally
	w = doJSON(t, s, http.MethodPut, "/api/v1/orders/"+id+"/status", sid, map[string]string{"deliveryStatus": "PROCESSING"})
	if w.Code != http.StatusConflict {
		t.Fatalf("illegal code %v", w.Code)
	}
	er := decode[errorResponse](t, w)
	if er.Kind != "illegal_transition" || er.Error != "Cannot change status from Delivered to Processing" {
		t.Fatalf("illegal resp %+v", er)
	}

	w = doJSON(t, s, http.MethodPut, "/api/v1/orders/"+id+"/status", sid, map[string]string{"deliveryStatus": "LOST"})
	if w.Code != http.StatusBadRequest || decode[errorResponse](t, w).Error != "Invalid delivery status" {
		t.Fatalf("invalid status code %v body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, s, http.MethodPut, "/api/v1/orders/"+id+"/status", sid, map[string]string{"paymentStatus": "REFUNDED"})
	if w.Code != http.StatusOK || decode[domain.Order](t, w).PaymentStatus != domain.PaymentRefunded {
		t.Fatalf("payment code %v body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, s, http.MethodPut, "/api/v1/orders/missing/status", sid, map[string]string{"deliveryStatus": "DELIVERED"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing order code %v", w.Code)
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/orders/"+id, sid, nil)
	if w.Code != http.StatusOK || decode[domain.Order](t, w).ID != id {
		t.Fatalf("detail code %v", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/orders/missing", sid, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("detail missing code %v", w.Code)
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/orders/counts", sid, nil)
	counts := decode[map[string]int](t, w)
	if counts["DELIVERED"] != 2 || counts["SHIPPED"] != 0 {
		t.Fatalf("counts %v", counts)
	}

	// deactivate closes the view
	w = doJSON(t, s, http.MethodDelete, "/api/v1/orders/activate", sid, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("deactivate code %v", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/orders", sid, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("after deactivate code %v", w.Code)
	}
}

func TestUpdateOrderStatus_InvalidPaymentLeavesOrderUntouched(t *testing.T) {
	s := setupServer(t)
	sid := login(t, s, mockbackend.SeedAdminUsername, mockbackend.SeedAdminPassword)
	activate(t, s, sid)

	w := doJSON(t, s, http.MethodGet, "/api/v1/orders?status=pending", sid, nil)
	pending := decode[orderListResp](t, w).Orders
	if len(pending) != 1 {
		t.Fatalf("pending %d", len(pending))
	}
	id := pending[0].ID

	w = doJSON(t, s, http.MethodPut, "/api/v1/orders/"+id+"/status", sid,
		map[string]string{"deliveryStatus": "SHIPPED", "paymentStatus": "BOUNCED"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("mixed body code %v body %s", w.Code, w.Body.String())
	}
	if er := decode[errorResponse](t, w); er.Error != "Invalid payment status" {
		t.Fatalf("mixed body resp %+v", er)
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/orders/"+id+"/transitions", sid, nil)
	if tr := decode[transitionsResp](t, w); tr.Current != domain.DeliveryPending {
		t.Fatalf("local status %s", tr.Current)
	}
	// a fresh load shows the backend was not touched either
	for _, o := range activate(t, s, sid).Orders {
		if o.ID == id && o.DeliveryStatus != domain.DeliveryPending {
			t.Fatalf("backend status %s", o.DeliveryStatus)
		}
	}

	w = doJSON(t, s, http.MethodPut, "/api/v1/orders/"+id+"/status", sid,
		map[string]string{"deliveryStatus": "CONFIRMED", "paymentStatus": "PAID"})
	if w.Code != http.StatusOK {
		t.Fatalf("combined code %v body %s", w.Code, w.Body.String())
	}
	got := decode[domain.Order](t, w)
	if got.DeliveryStatus != domain.DeliveryConfirmed || got.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("combined result %+v", got)
	}
}

func TestOrderExport(t *testing.T) {
	s := setupServer(t)
	sid := login(t, s, mockbackend.SeedAdminUsername, mockbackend.SeedAdminPassword)
	activate(t, s, sid)

	w := doJSON(t, s, http.MethodGet, "/api/v1/orders/export?status=all", sid, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export code %v", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type %q", ct)
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 9 || !strings.HasPrefix(lines[0], "Order ID,") {
		t.Fatalf("export lines %d: %q", len(lines), lines[0])
	}
}

func TestNonAdminCannotLoadOrders(t *testing.T) {
	s := setupServer(t)
	sid := login(t, s, "asha", "password")

	w := doJSON(t, s, http.MethodPost, "/api/v1/orders/activate", sid, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("activate code %v", w.Code)
	}
	resp := decode[orderListResp](t, w)
	if len(resp.Orders) != 0 || resp.Error == "" {
		t.Fatalf("non-admin view %+v", resp)
	}
}

func TestCatalogAndAnalytics(t *testing.T) {
	s := setupServer(t)
	sid := login(t, s, mockbackend.SeedAdminUsername, mockbackend.SeedAdminPassword)

	w := doJSON(t, s, http.MethodGet, "/api/v1/products/stock", sid, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stock code %v", w.Code)
	}
	stock := decode[struct {
		InStock    int              `json:"inStock"`
		LowStock   []domain.Product `json:"lowStock"`
		OutOfStock []domain.Product `json:"outOfStock"`
	}](t, w)
	if stock.InStock != 4 || len(stock.LowStock) != 1 || len(stock.OutOfStock) != 1 {
		t.Fatalf("stock %+v", stock)
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/products?q=honey", sid, nil)
	if products := decode[[]domain.Product](t, w); len(products) != 1 {
		t.Fatalf("search %d", len(products))
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/categories", sid, map[string]string{"name": "Toys"})
	if w.Code != http.StatusCreated {
		t.Fatalf("category code %v body %s", w.Code, w.Body.String())
	}
	w = doJSON(t, s, http.MethodPost, "/api/v1/categories", sid, map[string]string{"name": "Toys"})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate category code %v", w.Code)
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/dashboard", sid, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard code %v", w.Code)
	}
	dash := decode[domain.DashboardStats](t, w)
	if dash.TotalOrders != 8 || dash.PendingOrders != 5 || dash.CompletedOrders != 1 || dash.CancelledOrders != 1 {
		t.Fatalf("dashboard %+v", dash)
	}
	if dash.TotalUsers != 4 || dash.TotalProducts != 6 {
		t.Fatalf("dashboard totals %+v", dash)
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/analytics", sid, nil)
	a := decode[domain.Analytics](t, w)
	if a.TotalOrders != 8 || len(a.OrdersByStatus) != 8 || len(a.TopProducts) == 0 {
		t.Fatalf("analytics %+v", a)
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/users/export", sid, nil)
	if w.Code != http.StatusOK || !strings.HasPrefix(w.Body.String(), "ID,Name") {
		t.Fatalf("users export code %v", w.Code)
	}
}

func TestUsers_GetDeleteAndProfile(t *testing.T) {
	s := setupServer(t)
	sid := login(t, s, mockbackend.SeedAdminUsername, mockbackend.SeedAdminPassword)

	w := doJSON(t, s, http.MethodGet, "/api/v1/me", sid, nil)
	me := decode[domain.User](t, w)
	if w.Code != http.StatusOK || me.Username != mockbackend.SeedAdminUsername || !me.IsAdmin {
		t.Fatalf("me code %v user %+v", w.Code, me)
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/users", sid, nil)
	var victim domain.User
	for _, u := range decode[[]domain.User](t, w) {
		if u.Username == "vikram" {
			victim = u
		}
	}
	if victim.ID == "" {
		t.Fatal("seeded user vikram not listed")
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/users/"+victim.ID, sid, nil)
	if w.Code != http.StatusOK || decode[domain.User](t, w).Username != "vikram" {
		t.Fatalf("get user code %v body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, s, http.MethodDelete, "/api/v1/users/"+me.ID, sid, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("self delete code %v body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, s, http.MethodDelete, "/api/v1/users/"+victim.ID, sid, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete code %v body %s", w.Code, w.Body.String())
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/users/"+victim.ID, sid, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get deleted code %v", w.Code)
	}
	w = doJSON(t, s, http.MethodDelete, "/api/v1/users/"+victim.ID, sid, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("delete twice code %v", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/users", sid, nil)
	if n := len(decode[[]domain.User](t, w)); n != 3 {
		t.Fatalf("users after delete %d", n)
	}

	// the deleted customer can no longer log in
	w = doJSON(t, s, http.MethodPost, "/api/v1/login", "", map[string]string{"username": "vikram", "password": "password"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("deleted user login code %v", w.Code)
	}
}

func TestNextStatuses(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/v1/statuses/delivered/next", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("code %v", w.Code)
	}
	tr := decode[transitionsResp](t, w)
	if len(tr.Next) != 1 || tr.Next[0] != domain.DeliveryReturned {
		t.Fatalf("next %+v", tr)
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/statuses/lost/next", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid code %v", w.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	s := setupServer(t)
	if w := doJSON(t, s, http.MethodGet, "/healthz", "", nil); w.Code != http.StatusOK {
		t.Fatalf("healthz %v", w.Code)
	}
	w := doJSON(t, s, http.MethodGet, "/metrics", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "shopadmin_http_requests_total") {
		t.Fatalf("metrics code %v", w.Code)
	}
}
