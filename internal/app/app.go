// Package app wires configuration, storage and routes into a gin engine.
package app

import (
	"fmt"
	"time"

	"github.com/arnavshah/standup-api-go/internal/config"
	"github.com/arnavshah/standup-api-go/pkg/auth"
	"github.com/arnavshah/standup-api-go/pkg/database"
	"github.com/arnavshah/standup-api-go/pkg/handlers"
	"github.com/arnavshah/standup-api-go/pkg/roster"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Build opens the database, runs migrations, seeds the admin user and the
// roster file, and returns the router with every route mounted.
func Build(cfg config.Config, zapLogger *zap.Logger) (*gin.Engine, error) {
	logger := zapLogger.Sugar()

	if cfg.JWTSecret == "" || cfg.APIMasterSecret == "" {
		logger.Warn("JWT_SECRET or API_MASTER_SECRET is empty; tokens and API keys are not secure")
	}

	db, err := database.Open(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := auth.EnsureAdminExists(logger, db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return nil, fmt.Errorf("ensure admin: %w", err)
	}

	h := handlers.New(logger, db, auth.New(cfg.JWTSecret, cfg.APIMasterSecret), cfg.TeamOrder)

	if cfg.RosterFile != "" {
		f, err := roster.LoadFile(cfg.RosterFile)
		if err != nil {
			return nil, err
		}
		if _, err := roster.Seed(logger, h.Roster, f); err != nil {
			return nil, err
		}
	}

	router := gin.New()
	router.Use(ginzap.GinzapWithConfig(zapLogger, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		Skipper: func(c *gin.Context) bool {
			return c.Request.URL.Path == "/metrics" && c.Request.Method == "GET"
		},
	}))
	router.Use(ginzap.RecoveryWithZap(zapLogger, true))

	h.Register(router)
	return router, nil
}
