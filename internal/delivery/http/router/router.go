// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"htga/internal/delivery/http/middleware"
	"htga/internal/delivery/http/router/handler"
	"htga/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler          *handler.AuthHandler
	EvaluatorHandler     *handler.EvaluatorHandler
	EstablishmentHandler *handler.EstablishmentHandler
	AssignmentHandler    *handler.AssignmentHandler
	BudgetHandler        *handler.BudgetHandler
	NotificationHandler  *handler.NotificationHandler
	NDAHandler           *handler.NDAHandler
	ReceiptHandler       *handler.ReceiptHandler
	AdminHandler         *handler.AdminHandler
	AuthMiddleware       *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	p := r.params

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", p.AuthHandler.Register)
		authGroup.POST("/login", p.AuthHandler.Login)
		authGroup.POST("/refresh", p.AuthHandler.Refresh)
		authGroup.POST("/forgot-password", p.AuthHandler.ForgotPassword)
		authGroup.POST("/reset-password", p.AuthHandler.ResetPassword)
	}

	// Provider webhooks; authenticated by payload signature, not by session.
	e.POST("/webhooks/signature", p.NDAHandler.Webhook)

	// Evaluator routes
	userGroup := e.Group("/user")
	userGroup.Use(p.AuthMiddleware.Authenticate)
	userGroup.Use(p.AuthMiddleware.RequireRole(service.RoleEvaluator))
	{
		userGroup.GET("/profile", p.EvaluatorHandler.GetProfile)
		userGroup.PUT("/profile", p.EvaluatorHandler.UpdateProfile)
		userGroup.PUT("/password", p.EvaluatorHandler.ChangePassword)
		userGroup.POST("/fcm-token", p.EvaluatorHandler.RegisterFCMToken)
		userGroup.GET("/assignments", p.AssignmentHandler.ListMine)
		userGroup.POST("/assignments/:id/submit", p.AssignmentHandler.SubmitClaim)
		userGroup.POST("/assignments/:id/reassign", p.AssignmentHandler.RequestReassignment)
		userGroup.POST("/receipts", p.ReceiptHandler.Upload)
		userGroup.GET("/nda", p.NDAHandler.Status)
	}

	// Admin routes
	adminGroup := e.Group("/admin")
	adminGroup.Use(p.AuthMiddleware.Authenticate)
	adminGroup.Use(p.AuthMiddleware.RequireRole(service.RoleAdmin))
	{
		adminGroup.POST("/establishments", p.EstablishmentHandler.Create)
		adminGroup.GET("/establishments", p.EstablishmentHandler.List)
		adminGroup.GET("/establishments/:id", p.EstablishmentHandler.Get)
		adminGroup.PUT("/establishments/:id", p.EstablishmentHandler.Update)
		adminGroup.DELETE("/establishments/:id", p.EstablishmentHandler.Delete)

		adminGroup.GET("/evaluators", p.EvaluatorHandler.List)
		adminGroup.GET("/evaluators/:id", p.EvaluatorHandler.Get)
		adminGroup.PUT("/evaluators/:id", p.EvaluatorHandler.Update)
		adminGroup.DELETE("/evaluators/:id", p.EvaluatorHandler.Delete)

		adminGroup.GET("/assignments", p.AssignmentHandler.List)
		adminGroup.POST("/assignments", p.AssignmentHandler.Create)
		adminGroup.POST("/assignments/auto-assign", p.AssignmentHandler.AutoAssign)
		adminGroup.GET("/assignments/validate", p.AssignmentHandler.Validate)
		adminGroup.GET("/assignments/:id/candidates", p.AssignmentHandler.Candidates)
		adminGroup.PUT("/assignments/:id", p.AssignmentHandler.UpdateSlots)
		adminGroup.DELETE("/assignments/:id", p.AssignmentHandler.Delete)

		adminGroup.GET("/budget", p.BudgetHandler.Rows)
		adminGroup.GET("/budget/export", p.BudgetHandler.Export)

		adminGroup.POST("/notifications", p.NotificationHandler.Broadcast)
		adminGroup.POST("/nda/:evaluatorID/send", p.NDAHandler.Send)
	}

	// Superadmin routes
	superadminGroup := e.Group("/superadmin")
	superadminGroup.Use(p.AuthMiddleware.Authenticate)
	superadminGroup.Use(p.AuthMiddleware.RequireRole(service.RoleSuperadmin))
	{
		superadminGroup.POST("/admins", p.AdminHandler.Create)
		superadminGroup.GET("/admins", p.AdminHandler.List)
		superadminGroup.PUT("/admins/:uid", p.AdminHandler.SetDisabled)
		superadminGroup.DELETE("/admins/:uid", p.AdminHandler.Delete)
	}
}
