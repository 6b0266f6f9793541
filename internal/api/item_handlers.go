package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourname/habitquest/internal"
	"github.com/yourname/habitquest/internal/response"
	"github.com/yourname/habitquest/internal/service"
)

// ToggleResult is what the complete/uncomplete endpoints return: the
// item after the toggle plus the user's refreshed gamification stats,
// so the client can update both without a second round trip.
type ToggleResult struct {
	Item      *internal.Item `json:"item"`
	UserStats *internal.User `json:"user_stats"`
}

func GetItems(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		items, err := app.Game().ListItems(c.Request.Context(), user.ID, time.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch items")
			return
		}
		HandleSuccess(c, app.Logger(), items, nil)
	}
}

func PostHabit(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var req service.CreateHabitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateCreateHabitRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Habit validation failed")
			return
		}

		habit, err := service.CreateHabit(c.Request.Context(), app.Items(), user, &req, time.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save habit")
			return
		}
		c.JSON(http.StatusCreated, response.Success(habit, nil))
	}
}

func PostTask(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var req service.CreateTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateCreateTaskRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Task validation failed")
			return
		}

		task, err := service.CreateTask(c.Request.Context(), app.Items(), user, &req, time.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save task")
			return
		}
		c.JSON(http.StatusCreated, response.Success(task, nil))
	}
}

func DeleteItem(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		itemID := c.Param("id")

		if err := service.DeleteItem(c.Request.Context(), app.Items(), user, itemID); err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to delete item")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"id": itemID}, nil)
	}
}

func CompleteItem(app App) gin.HandlerFunc {
	return toggleHandler(app, true)
}

func UncompleteItem(app App) gin.HandlerFunc {
	return toggleHandler(app, false)
}

func toggleHandler(app App, targetState bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		itemID := c.Param("id")
		now := time.Now()

		var (
			item  *internal.Item
			stats *internal.User
			err   error
		)
		if targetState {
			item, stats, err = app.Game().CompleteItem(c.Request.Context(), user.ID, itemID, now)
		} else {
			item, stats, err = app.Game().UncompleteItem(c.Request.Context(), user.ID, itemID, now)
		}
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to toggle item")
			return
		}
		HandleSuccess(c, app.Logger(), ToggleResult{Item: item, UserStats: stats}, nil)
	}
}
