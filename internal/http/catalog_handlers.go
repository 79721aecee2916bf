package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopadmin/internal/backend"
	"shopadmin/internal/logging"
	"shopadmin/internal/service"
)

func (s *Server) catalog(c *gin.Context) *service.CatalogService {
	return service.NewCatalogService(session(c).backend)
}

// Product handlers

// @Summary List products
// @Tags products
// @Produce json
// @Param X-Session-Id header string true "Console session"
// @Param q query string false "Name contains"
// @Param categoryId query string false "Category ID"
// @Success 200 {array} domain.Product
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	list, err := s.catalog(c).ListProducts(c.Request.Context(), service.ProductFilter{
		NameSubstring: c.Query("q"),
		CategoryID:    c.Query("categoryId"),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param X-Session-Id header string true "Console session"
// @Param input body backend.ProductInput true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} errorResponse
// @Router /products [post]
func (s *Server) createProduct(c *gin.Context) {
	var req backend.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid json", Kind: "invalid_input"})
		return
	}
	p, err := s.catalog(c).CreateProduct(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary Get product by id
// @Tags products
// @Produce json
// @Param X-Session-Id header string true "Console session"
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} errorResponse
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	p, err := s.catalog(c).GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Param X-Session-Id header string true "Console session"
// @Param id path string true "Product ID"
// @Param input body backend.ProductInput true "Product"
// @Success 200 {object} domain.Product
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /products/{id} [put]
func (s *Server) updateProduct(c *gin.Context) {
	var req backend.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid json", Kind: "invalid_input"})
		return
	}
	p, err := s.catalog(c).UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Stock overview
// @Tags products
// @Produce json
// @Param X-Session-Id header string true "Console session"
// @Success 200 {object} service.StockOverview
// @Router /products/stock [get]
func (s *Server) stockOverview(c *gin.Context) {
	ov, err := s.catalog(c).Stock(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

// @Summary List categories
// @Tags categories
// @Produce json
// @Param X-Session-Id header string true "Console session"
// @Success 200 {array} domain.Category
// @Router /categories [get]
func (s *Server) listCategories(c *gin.Context) {
	list, err := s.catalog(c).ListCategories(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param X-Session-Id header string true "Console session"
// @Param input body backend.CategoryInput true "Category"
// @Success 201 {object} domain.Category
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /categories [post]
func (s *Server) createCategory(c *gin.Context) {
	var req backend.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid json", Kind: "invalid_input"})
		return
	}
	cat, err := s.catalog(c).CreateCategory(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// User handlers

// @Summary List users
// @Tags users
// @Produce json
// @Param X-Session-Id header string true "Console session"
// @Success 200 {array} domain.User
// @Router /users [get]
func (s *Server) listUsers(c *gin.Context) {
	list, err := service.NewUserService(session(c).backend).List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get one user
// @Tags users
// @Produce json
// @Param X-Session-Id header string true "Console session"
// @Param id path string true "User ID"
// @Success 200 {object} domain.User
// @Failure 404 {object} errorResponse
// @Router /users/{id} [get]
func (s *Server) getUser(c *gin.Context) {
	u, err := service.NewUserService(session(c).backend).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary Delete a user
// @Tags users
// @Param X-Session-Id header string true "Console session"
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /users/{id} [delete]
func (s *Server) deleteUser(c *gin.Context) {
	id := c.Param("id")
	if err := service.NewUserService(session(c).backend).Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	logging.From(c).Info("user deleted", "user_id", id)
	c.Status(http.StatusNoContent)
}

// @Summary Profile of the logged-in operator
// @Tags users
// @Produce json
// @Param X-Session-Id header string true "Console session"
// @Success 200 {object} domain.User
// @Router /me [get]
func (s *Server) me(c *gin.Context) {
	u, err := service.NewUserService(session(c).backend).Current(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary Download users as CSV
// @Tags users
// @Produce text/csv
// @Param X-Session-Id header string true "Console session"
// @Success 200 {string} string "CSV"
// @Router /users/export [get]
func (s *Server) exportUsers(c *gin.Context) {
	raw, err := service.NewUserService(session(c).backend).ExportCSV(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="users.csv"`)
	c.Data(http.StatusOK, "text/csv", raw)
}

// Analytics handlers

// @Summary Analytics over orders, products and users
// @Tags analytics
// @Produce json
// @Param X-Session-Id header string true "Console session"
// @Success 200 {object} domain.Analytics
// @Failure 502 {object} errorResponse
// @Router /analytics [get]
func (s *Server) analytics(c *gin.Context) {
	a, err := service.NewAnalyticsService(session(c).backend).Analytics(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// @Summary Dashboard stats
// @Tags analytics
// @Produce json
// @Param X-Session-Id header string true "Console session"
// @Success 200 {object} domain.DashboardStats
// @Failure 502 {object} errorResponse
// @Router /dashboard [get]
func (s *Server) dashboard(c *gin.Context) {
	st, err := service.NewAnalyticsService(session(c).backend).Dashboard(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
