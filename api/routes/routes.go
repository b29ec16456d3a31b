package routes

import (
	"github.com/sulakshana2003/BackEnd-R/api/handler"
	"github.com/sulakshana2003/BackEnd-R/api/middleware"
	"github.com/sulakshana2003/BackEnd-R/internal/entity"

	"github.com/labstack/echo/v4"
)

type Router struct {
	Echo           *echo.Echo
	Users          *handler.UserHandler
	Catalog        *handler.CatalogHandler
	AuthMiddleware middleware.AuthMiddleware
}

func NewRouter(e *echo.Echo, users *handler.UserHandler, catalog *handler.CatalogHandler, authMiddleware middleware.AuthMiddleware) *Router {
	return &Router{
		Echo:           e,
		Users:          users,
		Catalog:        catalog,
		AuthMiddleware: authMiddleware,
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo
	e.Use(r.AuthMiddleware.Authenticate)

	requireAuth := r.AuthMiddleware.RequireAuth
	adminOnly := middleware.IsAdmin()

	users := e.Group("/users")
	users.POST("/register", r.Users.Register)
	users.POST("/login", r.Users.Login)
	users.POST("/google-login", r.Users.GoogleLogin)
	users.POST("/forgot-password", r.Users.ForgotPassword)
	users.POST("/reset-password", r.Users.ResetPassword)
	users.GET("/me", r.Users.Me, requireAuth)
	users.PUT("/me", r.Users.UpdateMe, requireAuth)

	e.GET("/admin/users", r.Users.AdminListUsers, requireAuth, adminOnly)
	e.GET("/admin/security-logs", r.Users.AdminListSecurityLogs, requireAuth, adminOnly)

	if r.Catalog == nil {
		return
	}
	e.GET("/categories", r.Catalog.ListCategories)
	e.POST("/categories", r.Catalog.CreateCategory, requireAuth, adminOnly)
	e.PUT("/categories/:cid", r.Catalog.UpdateCategory, requireAuth, adminOnly)
	e.DELETE("/categories/:cid", r.Catalog.DeleteCategory, requireAuth, adminOnly)

	e.GET("/products", r.Catalog.ListProducts)
	e.POST("/products", r.Catalog.CreateProduct, requireAuth, adminOnly)
	e.PATCH("/products/:pid/availability", r.Catalog.SetAvailability, requireAuth,
		middleware.HasRole(entity.UserRoleAdmin, entity.UserRoleKitchen, entity.UserRoleCashier))
}
