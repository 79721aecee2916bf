package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"shopadmin/internal/logging"
)

const (
	headerRequestID = "X-Request-Id"
	headerSession   = "X-Session-Id"
	ctxSession      = "console_session"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopadmin_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shopadmin_http_request_duration_ms",
			Help:    "Duration of HTTP requests in ms",
			Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600},
		},
		[]string{"method", "path"},
	)

	statusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopadmin_order_status_changes_total",
			Help: "Order status change requests by outcome",
		},
		[]string{"kind", "outcome"},
	)

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "shopadmin_console_sessions",
		Help: "Console sessions currently held in memory",
	})
)

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := float64(time.Since(start).Milliseconds())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}

// Logging logs every request and injects a request-scoped slog.Logger.
func Logging(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(headerRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
			c.Request.Header.Set(headerRequestID, reqID)
		}
		c.Header(headerRequestID, reqID)

		l := base.With(
			"req_id", reqID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"remote", c.ClientIP(),
		)
		logging.With(c, l)
		c.Request = c.Request.WithContext(logging.WithCtx(c.Request.Context(), l))

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"status", status,
			"dur_ms", time.Since(start).Milliseconds(),
			"resp_bytes", c.Writer.Size(),
		}
		if len(c.Params) > 0 {
			attrs = append(attrs, "params", c.Params)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}
		if status >= http.StatusInternalServerError {
			l.Error("http_request", attrs...)
			return
		}
		l.Info("http_request", attrs...)
	}
}

// requireSession resolves X-Session-Id; the session is then available via session(c).
func (s *Server) requireSession(c *gin.Context) {
	cs, err := s.sessions.Get(c.GetHeader(headerSession))
	if err != nil {
		s.fail(c, err)
		c.Abort()
		return
	}
	if !cs.backend.Authenticated() {
		// the backend rejected the credentials earlier
		s.sessions.Delete(cs.id)
		activeSessions.Set(float64(s.sessions.Len()))
		s.fail(c, ErrNoSession)
		c.Abort()
		return
	}
	c.Set(ctxSession, cs)
	c.Next()
}

func session(c *gin.Context) *consoleSession {
	return c.MustGet(ctxSession).(*consoleSession)
}
