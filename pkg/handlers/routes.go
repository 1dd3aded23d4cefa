package handlers

import (
	"net/http"

	"github.com/arnavshah/standup-api-go/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Register mounts every route on r
func (h *Handler) Register(r *gin.Engine) {
	r.Use(metrics.GinMiddleware)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "standup-api",
			"status":  "online",
		})
	})
	r.GET("/healthz", func(c *gin.Context) {
		if db, err := h.DB.DB(); err != nil || db.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	r.POST("/admin/login", h.Login)

	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)

		admin.GET("/members", h.ListMembers)
		admin.POST("/members", h.AddMember)
		admin.DELETE("/members/:name", h.RemoveMember)
		admin.GET("/absences", h.ListAbsences)
		admin.POST("/absences", h.MarkAbsent)
		admin.DELETE("/absences", h.ClearAbsent)

		admin.GET("/questions", h.ListQuestions)
		admin.POST("/questions", h.AddQuestion)
		admin.PUT("/questions/:id/activate", h.ActivateQuestion)
		admin.PUT("/questions/:id/deactivate", h.DeactivateQuestion)
		admin.GET("/questions/:id/results", h.GetResults)
		admin.PUT("/active-question", h.SetActiveQuestion)
		admin.GET("/guesses", h.ListGuesses)
		admin.DELETE("/guesses", h.ClearGuesses)
	}

	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.GET("/pairings", h.GetPairings)
		api.GET("/pairings/week", h.GetWeekPairings)
		api.POST("/pairings", h.CreatePairings)
		api.POST("/validate", h.ValidateInput)

		api.GET("/standups", h.GetStandups)
		api.PUT("/standups", h.SaveStandup)

		api.GET("/questions/active", h.GetActiveQuestion)
		api.PUT("/guesses", h.SubmitGuess)

		api.POST("/wheel/spin", h.SpinWheel)
		api.GET("/usage", h.GetMyUsage)
	}
}
