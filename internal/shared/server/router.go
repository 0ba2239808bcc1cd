package server

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ghostorshell-backend/internal/analyses"
	"ghostorshell-backend/internal/detector"
	"ghostorshell-backend/internal/shared/config"
	"ghostorshell-backend/internal/shared/server/middleware"
	"ghostorshell-backend/internal/shared/server/respond"
	"ghostorshell-backend/internal/visitors"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
// A nil sqlDB wires in-memory repos, used by tests and keyless local runs.
func NewRouter(cfg config.Config, sqlDB *sql.DB) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	var analysisRepo analyses.Repo
	var creditRepo visitors.Repo
	if sqlDB != nil {
		analysisRepo = analyses.NewPGRepo(sqlDB)
		creditRepo = visitors.NewPGRepo(sqlDB)
	} else {
		analysisRepo = analyses.NewMemoryRepo()
		creditRepo = visitors.NewMemoryRepo()
	}

	var det detector.Detector
	if cfg.DemoMode() {
		log.Printf("no OPENAI_API_KEY configured, running in demo mode")
		det = detector.NewDemo()
	} else {
		live, err := detector.NewOpenAI(cfg.OpenAIAPIKey, cfg.LLMModel)
		if err != nil {
			log.Printf("live detector unavailable (%v), falling back to demo mode", err)
			det = detector.NewDemo()
		} else {
			det = live
		}
	}

	creditSvc := visitors.NewService(creditRepo)
	creditHandler := visitors.NewHandler(creditSvc)
	analysisSvc := &analyses.Service{Repo: analysisRepo, Detector: det}
	analysisHandler := analyses.NewHandler(analysisSvc, creditSvc)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true, "demoMode": cfg.DemoMode()})
	})
	analysisHandler.RegisterRoutes(api)
	creditHandler.RegisterRoutes(api)
	if cfg.Env == "dev" {
		dev := api.Group("/dev")
		analysisHandler.RegisterDevRoutes(dev)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
