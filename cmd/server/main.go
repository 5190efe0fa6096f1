package main

import (
	"foreclosure_flow_go/config"
	"foreclosure_flow_go/db"
	"foreclosure_flow_go/handlers"
	"foreclosure_flow_go/middleware"
	"foreclosure_flow_go/models"
	"foreclosure_flow_go/services"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.TursoDatabaseURL, cfg.TursoAuthToken, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.Firm{}, &models.User{}, &models.Session{},
		&models.Case{}, &models.Property{}, &models.Mortgage{},
		&models.Party{}, &models.CasePartyLink{}, &models.Deadline{},
		&models.DocumentTemplate{}, &models.Document{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize file storage
	services.InitializeStorage(cfg)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		TokenLookup:    "header:X-CSRF-Token,form:_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Static files
	e.Static("/static", "static")

	// Public routes (no authentication required)
	e.POST("/login", handlers.LoginPostHandler)

	// Protected routes (authentication + firm required)
	protected := e.Group("")
	protected.Use(middleware.RequireAuth())
	protected.Use(middleware.RequireFirm())
	{
		protected.POST("/logout", handlers.LogoutHandler)
		protected.GET("/api/me", handlers.GetCurrentUserHandler)

		// Cases
		protected.GET("/api/cases", handlers.GetCasesHandler)
		protected.POST("/api/cases", handlers.CreateCaseHandler)
		protected.GET("/api/cases/:id", handlers.GetCaseHandler)
		protected.PUT("/api/cases/:id", handlers.UpdateCaseHandler)
		protected.PUT("/api/cases/:id/status", handlers.UpdateCaseStatusHandler)
		protected.PUT("/api/cases/:id/property", handlers.UpdatePropertyHandler)
		protected.PUT("/api/cases/:id/mortgage", handlers.UpdateMortgageHandler)

		// Parties
		protected.GET("/api/parties", handlers.GetPartiesHandler)
		protected.POST("/api/parties", handlers.CreatePartyHandler)
		protected.PUT("/api/parties/:id", handlers.UpdatePartyHandler)
		protected.POST("/api/cases/:id/parties", handlers.AttachPartyHandler)
		protected.DELETE("/api/cases/:id/parties/:partyId", handlers.DetachPartyHandler)

		// Deadlines
		protected.GET("/api/deadlines", handlers.GetDeadlinesHandler)
		protected.GET("/api/cases/:id/deadlines", handlers.GetCaseDeadlinesHandler)
		protected.POST("/api/cases/:id/deadlines", handlers.CreateDeadlineHandler)
		protected.PUT("/api/cases/:id/deadlines/:deadlineId", handlers.UpdateDeadlineHandler)
		protected.PUT("/api/cases/:id/deadlines/:deadlineId/toggle", handlers.ToggleDeadlineHandler)
		protected.DELETE("/api/cases/:id/deadlines/:deadlineId", handlers.DeleteDeadlineHandler)

		// Templates
		protected.GET("/api/templates", handlers.GetTemplatesHandler)
		protected.GET("/api/templates/:id", handlers.GetTemplateHandler)
		protected.GET("/api/templates/variables", handlers.GetVariableDictionaryHandler)

		// Documents
		protected.GET("/api/cases/:id/documents", handlers.GetCaseDocumentsHandler)
		protected.GET("/api/cases/:id/preview/:templateId", handlers.PreviewDocumentHandler)
		protected.POST("/api/cases/:id/documents/generate", handlers.GenerateDocumentHandler)
		protected.POST("/api/cases/:id/documents", handlers.SaveDraftHandler)
		protected.PUT("/api/cases/:id/documents/:documentId", handlers.UpdateDraftHandler)
		protected.PUT("/api/cases/:id/documents/:documentId/finalize", handlers.FinalizeDocumentHandler)
		protected.PUT("/api/cases/:id/documents/:documentId/filed", handlers.MarkDocumentFiledHandler)
		protected.PUT("/api/cases/:id/documents/:documentId/served", handlers.MarkDocumentServedHandler)
		protected.POST("/api/cases/:id/documents/:documentId/serve-email", handlers.ServeDocumentEmailHandler)
		protected.GET("/api/cases/:id/documents/:documentId/download", handlers.DownloadDocumentHandler)
		protected.GET("/api/cases/:id/summary.pdf", handlers.CaseSummaryPDFHandler)

		// Reports
		protected.GET("/api/reports/cases.csv", handlers.ExportCasesCSVHandler)
		protected.GET("/api/reports/cases.xlsx", handlers.ExportCasesXLSXHandler)
		protected.GET("/api/reports/deadlines.csv", handlers.ExportDeadlinesCSVHandler)

		// Admin and lawyer only routes
		managing := protected.Group("")
		managing.Use(middleware.RequireRole(models.RoleAdmin, models.RoleLawyer))
		{
			managing.DELETE("/api/cases/:id", handlers.DeleteCaseHandler)
			managing.POST("/api/templates", handlers.CreateTemplateHandler)
			managing.PUT("/api/templates/:id", handlers.UpdateTemplateHandler)
			managing.DELETE("/api/templates/:id", handlers.DeleteTemplateHandler)
			managing.GET("/api/import/template", handlers.DownloadImportTemplateHandler)
			managing.POST("/api/import/cases", handlers.ImportCasesHandler)
		}
	}

	// Start background cleanup jobs (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
