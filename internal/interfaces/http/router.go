package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/checklist-api/internal/application/auth"
	"github.com/jhoicas/checklist-api/internal/application/usecase"
	"github.com/jhoicas/checklist-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ComplianceUC *usecase.ComplianceUseCase
	EventUC      *usecase.EventUseCase
	LineStopUC   *usecase.LineStopUseCase
	PermissionUC *usecase.PermissionUseCase
	UserUC       *usecase.UserUseCase
	Permissions  permissionChecker
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/me", authHandler.Me)

	// Checklists: el permiso depende del tipo, lo decide el caso de uso
	eventHandler := NewEventHandler(deps.EventUC)
	protected.Post("/events", eventHandler.Record)

	compliance := protected.Group("/compliance", RequirePermission(entity.ModuleManagement, deps.Permissions))
	complianceHandler := NewComplianceHandler(deps.ComplianceUC)
	compliance.Get("/lines", complianceHandler.Lines)
	compliance.Get("/leaders", complianceHandler.Leaders)
	compliance.Get("/missing-leaders", complianceHandler.MissingLeaders)

	lineStops := protected.Group("/line-stops", RequirePermission(entity.ModuleLineStop, deps.Permissions))
	lineStopHandler := NewLineStopHandler(deps.LineStopUC)
	lineStops.Post("/", lineStopHandler.Create)
	lineStops.Get("/", lineStopHandler.List)
	lineStops.Get("/:id", lineStopHandler.GetByID)
	lineStops.Post("/:id/justify", lineStopHandler.Justify)
	lineStops.Post("/:id/signed-document", lineStopHandler.AttachSignedDocument)

	permissions := protected.Group("/permissions", RequirePermission(entity.ModuleAdmin, deps.Permissions))
	permissionHandler := NewPermissionHandler(deps.PermissionUC)
	permissions.Get("/", permissionHandler.List)
	permissions.Put("/", permissionHandler.Save)

	users := protected.Group("/users", RequirePermission(entity.ModuleAdmin, deps.Permissions))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
}
