package handlers

import (
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/arnavshah/standup-api-go/pkg/auth"
	"github.com/arnavshah/standup-api-go/pkg/database"
	"github.com/arnavshah/standup-api-go/pkg/guess"
	"github.com/arnavshah/standup-api-go/pkg/roster"
	"github.com/arnavshah/standup-api-go/pkg/standup"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	dateLayout       = "2006-01-02"
	defaultRateLimit = 10000

	ctxAPIKey       = "apiKey"
	ctxUserID       = "userID"
	ctxUsername     = "username"
	ctxUsageMembers = "usageMembers"
	ctxUsagePairs   = "usagePairs"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	DB        *gorm.DB
	Logger    *zap.SugaredLogger
	Auth      *auth.Authenticator
	Roster    roster.Repo
	Standups  standup.Repo
	Guesses   guess.Repo
	TeamOrder []string

	// Now and NewRand are replaced in tests
	Now     func() time.Time
	NewRand func() *rand.Rand
}

// New wires the gorm-backed repositories around db
func New(logger *zap.SugaredLogger, db *gorm.DB, authn *auth.Authenticator, teamOrder []string) *Handler {
	return &Handler{
		DB:        db,
		Logger:    logger,
		Auth:      authn,
		Roster:    roster.NewRepoGorm(logger, db),
		Standups:  standup.NewRepoGorm(logger, db),
		Guesses:   guess.NewRepoGorm(logger, db),
		TeamOrder: teamOrder,
		Now:       time.Now,
		NewRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

func bearer(header string) string {
	return strings.TrimPrefix(header, "Bearer ")
}

// parseDate reads a YYYY-MM-DD date, defaulting to today in UTC
func (h *Handler) parseDate(s string) (time.Time, error) {
	if s == "" {
		y, m, d := h.Now().UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, errBadDate
	}
	return t, nil
}

// AuthMiddleware verifies the JWT token for admin routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c.GetHeader("Authorization"))
		if token == "" {
			writeError(c, http.StatusUnauthorized, APIError{Code: Unauthorized.Code, Message: "Authorization header required"})
			return
		}

		claims, err := h.Auth.VerifyToken(token)
		if err != nil {
			h.Logger.Warnw("rejected admin token", "error", err)
			writeError(c, http.StatusUnauthorized, APIError{Code: Unauthorized.Code, Message: "invalid token"})
			return
		}

		c.Set(ctxUsername, claims.Username)
		c.Next()
	}
}

// APIKeyMiddleware verifies the HMAC API key, enforces the key's daily limit
// and records usage once the request has been handled.
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := bearer(c.GetHeader("Authorization"))
		if key == "" {
			writeError(c, http.StatusUnauthorized, APIError{Code: Unauthorized.Code, Message: "API key required"})
			return
		}

		userID, err := h.Auth.VerifyHMACKey(key)
		if err != nil {
			h.Logger.Warnw("rejected API key", "error", err)
			writeError(c, http.StatusUnauthorized, APIError{Code: Unauthorized.Code, Message: "invalid API key signature"})
			return
		}

		// Fetch or create the key record to track usage
		var apiKey database.APIKey
		if err := h.DB.Where(database.APIKey{Key: key}).Attrs(database.APIKey{
			Name:       userID,
			KeyPreview: auth.KeyPreview(key),
			RateLimit:  defaultRateLimit,
		}).FirstOrCreate(&apiKey).Error; err != nil {
			h.fail(c, "load api key", err)
			return
		}

		// revoked rows are kept so the key cannot register itself again
		if apiKey.RevokedAt != nil {
			writeError(c, http.StatusUnauthorized, APIError{Code: Unauthorized.Code, Message: "API key has been revoked"})
			return
		}

		now := h.Now().UTC()
		var usage database.APIUsage
		if err := h.DB.Where("key_id = ? AND date = ?", apiKey.ID, now.Format(dateLayout)).Limit(1).Find(&usage).Error; err != nil {
			h.fail(c, "load api usage", err)
			return
		}
		if apiKey.RateLimit > 0 && usage.RequestCount >= apiKey.RateLimit {
			writeError(c, http.StatusTooManyRequests, RateLimited)
			return
		}

		if err := h.DB.Model(&apiKey).Update("last_used", now).Error; err != nil {
			h.Logger.Warnw("failed to update last_used", "keyID", apiKey.ID, "err", err)
		}

		c.Set(ctxAPIKey, &apiKey)
		c.Set(ctxUserID, userID)
		c.Next()

		if c.Writer.Status() < http.StatusInternalServerError {
			h.RecordUsage(c, c.GetInt(ctxUsageMembers), c.GetInt(ctxUsagePairs))
		}
	}
}

// noteUsage attaches pairing sizes to the request for RecordUsage
func noteUsage(c *gin.Context, members, pairs int) {
	c.Set(ctxUsageMembers, members)
	c.Set(ctxUsagePairs, pairs)
}

// RecordUsage records API usage in the database using an efficient upsert
func (h *Handler) RecordUsage(c *gin.Context, memberCount, pairCount int) {
	apiKeyRaw, exists := c.Get(ctxAPIKey)
	if !exists {
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	today := h.Now().UTC().Format(dateLayout)

	// Use OnConflict for a single-query upsert (supported by both Postgres and SQLite)
	err := h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count": gorm.Expr("request_count + ?", 1),
			"total_members": gorm.Expr("total_members + ?", memberCount),
			"total_pairs":   gorm.Expr("total_pairs + ?", pairCount),
		}),
	}).Create(&database.APIUsage{
		KeyID:        apiKey.ID,
		Date:         today,
		RequestCount: 1,
		TotalMembers: memberCount,
		TotalPairs:   pairCount,
	}).Error
	if err != nil {
		h.Logger.Errorw("failed to record usage", "keyID", apiKey.ID, "err", err)
	}
}

// Login handles admin login
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	invalid := APIError{Code: Unauthorized.Code, Message: "invalid credentials"}

	var user database.MasterUser
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		writeError(c, http.StatusUnauthorized, invalid)
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		h.Logger.Warnw("failed admin login", "username", req.Username)
		writeError(c, http.StatusUnauthorized, invalid)
		return
	}

	token, err := h.Auth.CreateToken(user.Username)
	if err != nil {
		h.fail(c, "create token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// GenerateKey creates a new API key using the HMAC strategy
func (h *Handler) GenerateKey(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		RateLimit int    `json:"rate_limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	if req.RateLimit == 0 {
		req.RateLimit = defaultRateLimit
	}

	key := h.Auth.GenerateHMACKey(req.Name)

	apiKey := database.APIKey{
		Key:        key,
		Name:       req.Name,
		KeyPreview: auth.KeyPreview(key),
		RateLimit:  req.RateLimit,
	}

	if err := h.DB.Create(&apiKey).Error; err != nil {
		h.fail(c, "create key", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":   apiKey.ID,
		"name": req.Name,
		"key":  key,
	})
}

// ListKeys returns all API keys that have not been revoked
func (h *Handler) ListKeys(c *gin.Context) {
	var keys []database.APIKey
	if err := h.DB.Where("revoked_at IS NULL").Order("id asc").Find(&keys).Error; err != nil {
		h.fail(c, "list keys", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"keys": keys})
}

// RevokeKey marks an API key as revoked. The row stays so the signed key
// cannot be registered again on its next request.
func (h *Handler) RevokeKey(c *gin.Context) {
	id := c.Param("id")
	res := h.DB.Model(&database.APIKey{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", h.Now().UTC())
	if res.Error != nil {
		h.fail(c, "revoke key", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		writeError(c, http.StatusNotFound, NotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Key revoked"})
}

// UpdateKeyLimit updates the rate limit for a key
func (h *Handler) UpdateKeyLimit(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		RateLimit int `json:"rate_limit" form:"rate_limit"`
	}

	// Try JSON first, then Form/Query
	if err := c.ShouldBindJSON(&req); err != nil {
		if err := c.ShouldBindQuery(&req); err != nil {
			h.badRequest(c, err)
			return
		}
	}

	if req.RateLimit <= 0 {
		writeError(c, http.StatusBadRequest, APIError{Code: BadRequest.Code, Message: "rate_limit must be positive"})
		return
	}

	res := h.DB.Model(&database.APIKey{}).Where("id = ? AND revoked_at IS NULL", id).Update("rate_limit", req.RateLimit)
	if res.Error != nil {
		h.fail(c, "update key limit", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		writeError(c, http.StatusNotFound, NotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rate limit updated successfully"})
}

// GetUsage returns usage stats for a key
func (h *Handler) GetUsage(c *gin.Context) {
	id := c.Param("id")
	var usage []database.APIUsage
	if err := h.DB.Where("key_id = ?", id).Order("date desc").Limit(30).Find(&usage).Error; err != nil {
		h.fail(c, "get usage", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"usage": usage})
}
