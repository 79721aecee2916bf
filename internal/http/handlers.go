package httpapi

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shopadmin/internal/backend"
	"shopadmin/internal/domain"
	"shopadmin/internal/logging"
	"shopadmin/internal/service"
)

// Options зависимости HTTP-сервера консоли
type Options struct {
	Backend *backend.Client
	// BearerToken is attached to every backend session when set.
	BearerToken string
	Sessions    *SessionStore
	Logger      *slog.Logger
}

type Server struct {
	engine   *gin.Engine
	backend  *backend.Client
	bearer   string
	sessions *SessionStore
	log      *slog.Logger
}

func NewServer(opts Options) *Server {
	l := opts.Logger
	if l == nil {
		l = logging.Base()
	}
	r := gin.New()
	r.Use(gin.Recovery(), Logging(l), Metrics())
	s := &Server{
		engine:   r,
		backend:  opts.Backend,
		bearer:   opts.BearerToken,
		sessions: opts.Sessions,
		log:      l,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.engine.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	v1 := s.engine.Group("/api/v1")
	v1.POST("/login", s.login)
	v1.GET("/statuses/:status/next", s.nextStatuses)

	auth := v1.Group("", s.requireSession)
	{
		auth.POST("/logout", s.logout)

		orders := auth.Group("/orders")
		orders.POST("/activate", s.activateOrders)
		orders.DELETE("/activate", s.deactivateOrders)
		orders.GET("", s.listOrders)
		orders.GET("/counts", s.orderCounts)
		orders.GET("/export", s.exportOrders)
		orders.GET("/:id", s.getOrder)
		orders.GET("/:id/transitions", s.orderTransitions)
		orders.PUT("/:id/status", s.updateOrderStatus)

		products := auth.Group("/products")
		products.GET("", s.listProducts)
		products.POST("", s.createProduct)
		products.GET("/stock", s.stockOverview)
		products.GET("/:id", s.getProduct)
		products.PUT("/:id", s.updateProduct)

		auth.GET("/categories", s.listCategories)
		auth.POST("/categories", s.createCategory)

		auth.GET("/me", s.me)
		auth.GET("/users", s.listUsers)
		auth.GET("/users/export", s.exportUsers)
		auth.GET("/users/:id", s.getUser)
		auth.DELETE("/users/:id", s.deleteUser)

		auth.GET("/analytics", s.analytics)
		auth.GET("/dashboard", s.dashboard)
	}
}

// errorResponse тело ответа с ошибкой
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Server) fail(c *gin.Context, err error) {
	s.failWith(c, err, message(err))
}

func (s *Server) failWith(c *gin.Context, err error, msg string) {
	status := HTTPStatus(err)
	_ = c.Error(err)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		msg = http.StatusText(status)
	}
	c.JSON(status, errorResponse{Error: msg, Kind: Kind(err)})
}

// Auth handlers
type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResp struct {
	SessionID string       `json:"sessionId"`
	User      *domain.User `json:"user"`
}

// @Summary Log in to the backend and open a console session
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginReq true "Credentials"
// @Success 200 {object} loginResp
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /login [post]
func (s *Server) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "username and password required", Kind: "invalid_input"})
		return
	}
	bs, err := s.backend.NewSession(s.bearer)
	if err != nil {
		s.fail(c, err)
		return
	}
	u, err := bs.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		logging.From(c).Warn("login failed", "username", req.Username, "err", err)
		s.fail(c, err)
		return
	}
	cs := s.sessions.Create(bs)
	activeSessions.Set(float64(s.sessions.Len()))
	logging.From(c).Info("console session opened", "session_id", cs.id, "username", u.Username)
	c.JSON(http.StatusOK, loginResp{SessionID: cs.id, User: u})
}

// @Summary Log out and drop the console session
// @Tags auth
// @Param X-Session-Id header string true "Console session"
// @Success 204
// @Failure 401 {object} errorResponse
// @Router /logout [post]
func (s *Server) logout(c *gin.Context) {
	cs := session(c)
	if err := cs.backend.Logout(c.Request.Context()); err != nil {
		logging.From(c).Warn("backend logout failed", "err", err)
	}
	s.sessions.Delete(cs.id)
	activeSessions.Set(float64(s.sessions.Len()))
	c.Status(http.StatusNoContent)
}

// orderListResp состояние экрана заказов
type orderListResp struct {
	Orders  []domain.Order `json:"orders"`
	Error   string         `json:"error,omitempty"`
	Version uint64         `json:"version"`
}

// @Summary Open the orders view and load orders from the backend
// @Tags orders
// @Produce json
// @Param X-Session-Id header string true "Console session"
// @Success 200 {object} orderListResp
// @Failure 401 {object} errorResponse
// @Failure 502 {object} orderListResp
// @Router /orders/activate [post]
func (s *Server) activateOrders(c *gin.Context) {
	view := session(c).openView(logging.From(c))
	err := view.Activate(c.Request.Context())
	if errors.Is(err, backend.ErrUnauthorized) {
		s.fail(c, err)
		return
	}
	resp := orderListResp{Orders: view.Orders(), Error: view.Err(), Version: view.Version()}
	if err != nil {
		_ = c.Error(err)
		c.JSON(HTTPStatus(err), resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Close the orders view
// @Tags orders
// @Param X-Session-Id header string true "Console session"
// @Success 204
// @Router /orders/activate [delete]
func (s *Server) deactivateOrders(c *gin.Context) {
	session(c).closeView()
	c.Status(http.StatusNoContent)
}

// @Summary List orders of the active view
// @Tags orders
// @Produce json
// @Param X-Session-Id header string true "Console session"
// @Param status query string false "all or a delivery status, any case"
// @Success 200 {object} orderListResp
// @Failure 409 {object} errorResponse
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	view, err := session(c).activeView()
	if err != nil {
		s.fail(c, err)
		return
	}
	list, err := view.ApplyFilter(c.DefaultQuery("status", service.FilterAll))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orderListResp{Orders: list, Error: view.Err(), Version: view.Version()})
}

// @Summary Order counts per delivery status
// @Tags orders
// @Produce json
// @Param X-Session-Id header string true "Console session"
// @Success 200 {object} map[string]int
// @Failure 409 {object} errorResponse
// @Router /orders/counts [get]
func (s *Server) orderCounts(c *gin.Context) {
	view, err := session(c).activeView()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Counts())
}

// @Summary Export orders of the active view as CSV
// @Tags orders
// @Produce text/csv
// @Param X-Session-Id header string true "Console session"
// @Param status query string false "all or a delivery status"
// @Success 200 {string} string "CSV"
// @Failure 409 {object} errorResponse
// @Router /orders/export [get]
func (s *Server) exportOrders(c *gin.Context) {
	view, err := session(c).activeView()
	if err != nil {
		s.fail(c, err)
		return
	}
	list, err := view.ApplyFilter(c.DefaultQuery("status", service.FilterAll))
	if err != nil {
		s.fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := service.WriteOrdersCSV(&buf, domain.SortByStatus(list)); err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="orders.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// @Summary Get order details from the backend
// @Tags orders
// @Produce json
// @Param X-Session-Id header string true "Console session"
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 409 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /orders/{id} [get]
func (s *Server) getOrder(c *gin.Context) {
	view, err := session(c).activeView()
	if err != nil {
		s.fail(c, err)
		return
	}
	o, err := view.RequestOrderDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.failWith(c, err, view.Err())
		return
	}
	c.JSON(http.StatusOK, o)
}

// transitionsResp допустимые переходы заказа
type transitionsResp struct {
	Current domain.DeliveryStatus   `json:"current"`
	Next    []domain.DeliveryStatus `json:"next"`
}

// @Summary Statuses the order may move to
// @Tags orders
// @Produce json
// @Param X-Session-Id header string true "Console session"
// @Param id path string true "Order ID"
// @Success 200 {object} transitionsResp
// @Failure 404 {object} errorResponse
// @Router /orders/{id}/transitions [get]
func (s *Server) orderTransitions(c *gin.Context) {
	view, err := session(c).activeView()
	if err != nil {
		s.fail(c, err)
		return
	}
	o, ok := view.Lookup(c.Param("id"))
	if !ok {
		s.fail(c, service.ErrOrderNotFound)
		return
	}
	next, err := domain.AvailableNextStatuses(o.DeliveryStatus)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, transitionsResp{Current: o.DeliveryStatus, Next: next})
}

// statusReq новые статусы; пустые поля не меняются
type statusReq struct {
	DeliveryStatus string `json:"deliveryStatus"`
	PaymentStatus  string `json:"paymentStatus"`
}

// @Summary Change delivery and/or payment status
// @Tags orders
// @Accept json
// @Produce json
// @Param X-Session-Id header string true "Console session"
// @Param id path string true "Order ID"
// @Param input body statusReq true "New statuses"
// @Success 200 {object} domain.Order
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /orders/{id}/status [put]
func (s *Server) updateOrderStatus(c *gin.Context) {
	view, err := session(c).activeView()
	if err != nil {
		s.fail(c, err)
		return
	}
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil || (req.DeliveryStatus == "" && req.PaymentStatus == "") {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "deliveryStatus or paymentStatus required", Kind: "invalid_input"})
		return
	}
	id := c.Param("id")
	err = view.RequestChange(c.Request.Context(), id, service.StatusChange{
		Delivery: req.DeliveryStatus,
		Payment:  req.PaymentStatus,
	})
	statusChanges.WithLabelValues(changeKind(req), outcome(err)).Inc()
	if err != nil {
		s.failView(c, view, err)
		return
	}
	o, _ := view.Lookup(id)
	logging.From(c).Info("order status changed", "order_id", id,
		"delivery", o.DeliveryStatus, "payment", o.PaymentStatus)
	c.JSON(http.StatusOK, o)
}

// failView answers with the message the view recorded, if any.
func (s *Server) failView(c *gin.Context, view *service.OrderListSynchronizer, err error) {
	msg := view.Err()
	if msg == "" || errors.Is(err, service.ErrOrderNotFound) || errors.Is(err, service.ErrClosed) {
		msg = message(err)
	}
	s.failWith(c, err, msg)
}

func changeKind(req statusReq) string {
	switch {
	case req.DeliveryStatus != "" && req.PaymentStatus != "":
		return "both"
	case req.DeliveryStatus != "":
		return "delivery"
	default:
		return "payment"
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return Kind(err)
}

// @Summary Next legal delivery statuses for a status
// @Tags statuses
// @Produce json
// @Param status path string true "Delivery status literal"
// @Success 200 {object} transitionsResp
// @Failure 400 {object} errorResponse
// @Router /statuses/{status}/next [get]
func (s *Server) nextStatuses(c *gin.Context) {
	st, err := domain.ParseDeliveryStatus(strings.ToUpper(c.Param("status")))
	if err != nil {
		s.fail(c, err)
		return
	}
	next, err := domain.AvailableNextStatuses(st)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, transitionsResp{Current: st, Next: next})
}
