package handler

import (
	"log"
	"net/http"

	"github.com/arnavshah/standup-api-go/internal/app"
	"github.com/arnavshah/standup-api-go/internal/config"
	"github.com/arnavshah/standup-api-go/internal/logging"
	"github.com/gin-gonic/gin"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	config.LoadEnv()
	cfg := config.Load()

	gin.SetMode(gin.ReleaseMode)

	zapLogger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}

	r, err = app.Build(cfg, zapLogger)
	if err != nil {
		zapLogger.Sugar().Fatalw("could not start", "err", err)
	}
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
