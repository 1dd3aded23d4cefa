package handlers

import (
	"net/http"

	"github.com/arnavshah/standup-api-go/pkg/database"
	"github.com/gin-gonic/gin"
)

// GetMyUsage returns usage stats for the authenticated API key
func (h *Handler) GetMyUsage(c *gin.Context) {
	apiKeyRaw, exists := c.Get(ctxAPIKey)
	if !exists {
		writeError(c, http.StatusInternalServerError, APIError{Code: InternalServerError.Code, Message: "API key context missing"})
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	var usage []database.APIUsage
	if err := h.DB.Where("key_id = ?", apiKey.ID).Order("date desc").Limit(30).Find(&usage).Error; err != nil {
		h.fail(c, "get my usage", err)
		return
	}

	// Calculate totals
	var totalRequests, totalMembers, totalPairs int64
	for _, u := range usage {
		totalRequests += int64(u.RequestCount)
		totalMembers += int64(u.TotalMembers)
		totalPairs += int64(u.TotalPairs)
	}

	c.JSON(http.StatusOK, gin.H{
		"key_name":      apiKey.Name,
		"rate_limit":    apiKey.RateLimit,
		"usage_history": usage,
		"totals": gin.H{
			"requests": totalRequests,
			"members":  totalMembers,
			"pairs":    totalPairs,
		},
	})
}
