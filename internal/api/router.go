package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yourname/habitquest/internal/auth"
)

// NewRouter assembles the gin engine: correlation and logging
// middleware, token auth, and the item/user routes.
func NewRouter(app App, provider auth.Provider) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(RequestLogMiddleware(app.Logger()))
	r.Use(auth.Middleware(provider))

	r.GET("/api/items", GetItems(app))
	r.POST("/api/habits", PostHabit(app))
	r.POST("/api/tasks", PostTask(app))
	r.DELETE("/api/items/:id", DeleteItem(app))
	r.PUT("/api/items/:id/complete", CompleteItem(app))
	r.PUT("/api/items/:id/uncomplete", UncompleteItem(app))

	r.GET("/api/me", GetMe(app))
	r.GET("/api/leaderboard", GetLeaderboard(app))

	return r
}
