package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-admin-backend/internal/domains/system/service"
	"recipe-admin-backend/internal/shared/middleware"
	"recipe-admin-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.CORSOrigins),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		// Auth nằm ở gateway phía trước, không xử lý trong service này
		admin := v1.Group("/admin")
		setupRecipeRoutes(admin, c)
		setupArticleRoutes(admin, c)
		setupStatusRoutes(admin, c)
	}

	return router
}

// ========================================
// RECIPE ROUTES
// ========================================
func setupRecipeRoutes(admin *gin.RouterGroup, c *container.Container) {
	recipes := admin.Group("/recipes")
	{
		recipes.GET("", c.RecipeHandler.ListRecipes)
		recipes.POST("", c.RecipeHandler.CreateRecipe)

		// Templates & completeness reports
		recipes.GET("/templates/:tier", c.RecipeHandler.GetTemplates)
		recipes.GET("/completeness", c.RecipeHandler.CompletenessReport)
		recipes.GET("/completeness/audit", c.RecipeHandler.LatestAudit)
		recipes.GET("/completeness/export", c.RecipeHandler.ExportCompleteness)

		recipes.GET("/:id", c.RecipeHandler.GetRecipe)
		recipes.PUT("/:id", c.RecipeHandler.UpdateRecipe)
		recipes.DELETE("/:id", c.RecipeHandler.DeleteRecipe)

		// Pre-publish workflow
		recipes.GET("/:id/completeness", c.RecipeHandler.GetCompleteness)
		recipes.GET("/:id/prepublish", c.RecipeHandler.PrePublishCheck)
		recipes.POST("/:id/publish", c.RecipeHandler.Publish)
		recipes.POST("/:id/unpublish", c.RecipeHandler.Unpublish)
		recipes.POST("/:id/archive", c.RecipeHandler.Archive)
		recipes.POST("/:id/templates", c.RecipeHandler.ApplyTemplates)

		recipes.GET("/:id/ingredients", c.RecipeHandler.GetNormalizedIngredients)
		recipes.POST("/:id/image", c.RecipeHandler.UploadImage)
	}
}

// ========================================
// ARTICLE ROUTES
// ========================================
func setupArticleRoutes(admin *gin.RouterGroup, c *container.Container) {
	articles := admin.Group("/articles")
	{
		articles.GET("", c.ArticleHandler.List)
		articles.POST("", c.ArticleHandler.Create)
		articles.GET("/:id", c.ArticleHandler.Get)
		articles.PUT("/:id", c.ArticleHandler.Update)
		articles.DELETE("/:id", c.ArticleHandler.Delete)
		articles.POST("/:id/publish", c.ArticleHandler.Publish)
		articles.POST("/:id/unpublish", c.ArticleHandler.Unpublish)
	}
}

// ========================================
// STATUS ROUTES
// ========================================
func setupStatusRoutes(admin *gin.RouterGroup, c *container.Container) {
	status := admin.Group("/status")
	{
		status.GET("", c.StatusHandler.Aggregate)
		status.GET("/cache", c.StatusHandler.Component(service.ComponentCache))
		status.GET("/storage", c.StatusHandler.Component(service.ComponentStorage))
		status.GET("/vault", c.StatusHandler.Component(service.ComponentVault))
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Database là dependency bắt buộc
		dbStatus := "ok"
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
		} else if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = fmt.Sprintf("error: %v", err)
		}

		redisStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
		}

		services := gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}
		if appCtx.DB != nil {
			if stats, err := appCtx.DB.Stats(); err == nil {
				services["pool"] = stats
			}
		}
		health["services"] = services

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			health["status"] = "degraded"
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, health)
	}
}
