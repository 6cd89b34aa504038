package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.Use(h.SessionMiddleware())

	// Страницы клиента
	pages := api.Group("/pages")
	{
		pages.GET("/home", h.homePage)
		pages.GET("/leaderboard", h.leaderboardPage)
		pages.GET("/library", h.libraryPage)
		pages.GET("/map", h.mapPage)
		pages.GET("/my-reports", RequireSession(), h.myReportsPage)
		pages.GET("/report", RequireSession(), h.reportPage)
	}

	issues := api.Group("/issues")
	{
		issues.GET("", h.listIssues)
		issues.GET("/:id", h.getIssue)
		issues.POST("", RequireSession(), h.createIssue)
		issues.DELETE("/:id", RequireSession(), h.deleteIssue)
		// Анонимный голос обрабатывает сервис: 401 с переходом на вход
		issues.POST("/:id/upvote", h.upvoteIssue)
	}

	api.GET("/votes/me", RequireSession(), h.myVotes)
	api.GET("/issue-types/most-reported", h.mostReported)
	api.GET("/exports/leaderboard.pdf", h.leaderboardPDF)

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/logout", h.logout)
		auth.GET("/me", RequireSession(), h.me)
	}

	api.GET("/storage/:bucket/:name", h.serveImage)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
