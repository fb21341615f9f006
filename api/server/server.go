package server

import (
	"github.com/gin-gonic/gin"

	"vodplace/api/service"
	"vodplace/config"
	"vodplace/pkg/log"
)

var svc *service.Service

// Run the whole vodplace api app
func Run(cfg *config.ServerConfig, s *service.Service) {
	svc = s
	if config.GetRunMode() == config.RunModeProd {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.Default()
	initRouter(engine)
	if err := engine.Run(cfg.Listen); err != nil {
		log.Errorf("engine start fail due to %v", err)
		panic(err)
	}
}

func initRouter(ge *gin.Engine) {
	e := ge.Group("/api/v1")

	datasets := e.Group("/datasets")
	datasets.POST("/", createDataset)
	datasets.GET("/", getDatasets)
	datasets.GET("/:fingerprint", getDataset)
	datasets.DELETE("/:fingerprint", removeDataset)

	jobs := e.Group("/jobs")
	jobs.POST("/", createJob)
	jobs.GET("/", getJobs)
	jobs.GET("/:job_id", getJob)
	jobs.GET("/:job_id/solution", getSolution)
	jobs.GET("/:job_id/report", getReport)

	e.GET("/strategies", getStrategies)
	e.GET("/version", getVersion)
}
