package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tejidosandina/rollos-api/internal/application/auth"
	"github.com/tejidosandina/rollos-api/internal/application/usecase"
	"github.com/tejidosandina/rollos-api/internal/domain/rbac"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RollUC    *usecase.RollUseCase
	CatalogUC *usecase.CatalogUseCase
	UserUC    *usecase.UserUseCase
	AuditUC   *usecase.AuditUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, logout protegido.
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", AuthMiddleware(deps.JWTSecret), authHandler.Logout)

	// Rutas protegidas (requieren Bearer Token).
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Rolls
	rolls := protected.Group("/rolls")
	rollHandler := NewRollHandler(deps.RollUC)
	rolls.Get("/", RequirePermission(rbac.PermRollsRead), rollHandler.List)
	rolls.Get("/:id", RequirePermission(rbac.PermRollsRead), rollHandler.GetByID)
	rolls.Post("/", RequirePermission(rbac.PermRollsCreate), rollHandler.Create)
	rolls.Put("/:id", RequirePermission(rbac.PermRollsUpdate), rollHandler.Update)
	rolls.Delete("/:id", RequirePermission(rbac.PermRollsDelete), rollHandler.Delete)

	// Catalogs
	catalogs := protected.Group("/catalogs")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalogs.Get("/", RequirePermission(rbac.PermCatalogsRead), catalogHandler.List)
	catalogs.Get("/:id", RequirePermission(rbac.PermCatalogsRead), catalogHandler.GetByID)
	catalogs.Post("/", RequirePermission(rbac.PermCatalogsCreate), catalogHandler.Create)
	catalogs.Put("/:id", RequirePermission(rbac.PermCatalogsUpdate), catalogHandler.Update)
	catalogs.Delete("/:id", RequirePermission(rbac.PermCatalogsDelete), catalogHandler.Delete)

	// Users (solo admin vía users:manage)
	users := protected.Group("/users", RequirePermission(rbac.PermUsersManage))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Audit log (solo admin vía audit:read)
	audit := protected.Group("/audit", RequirePermission(rbac.PermAuditRead))
	auditHandler := NewAuditHandler(deps.AuditUC)
	audit.Get("/", auditHandler.List)
}
