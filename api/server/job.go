package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vodplace/api/model"
	"vodplace/pkg/log"
)

// POST /jobs
func createJob(c *gin.Context) {
	p := new(model.ParamJob)
	if err := c.BindJSON(p); err != nil {
		c.JSON(http.StatusBadRequest, err)
		return
	}
	if err := p.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, err)
		return
	}

	log.Infof("order job on dataset %s with param %v", p.Dataset, *p)
	j, err := svc.CreateJob(p)
	if err != nil {
		eJSON(c, err)
		return
	}

	c.JSON(http.StatusOK, j)
}

// GET /jobs
func getJobs(c *gin.Context) {
	q := new(model.QueryPage)
	if err := c.ShouldBindQuery(q); err != nil {
		c.JSON(http.StatusBadRequest, err)
		return
	}

	js, err := svc.GetJobs(q)
	if err != nil {
		eJSON(c, err)
		return
	}

	listJSON(c, js, len(js))
}

// GET /jobs/:job_id
func getJob(c *gin.Context) {
	j, err := svc.GetJob(c.Param("job_id"))
	if err != nil {
		eJSON(c, err)
		return
	}

	c.JSON(http.StatusOK, j)
}

// GET /jobs/:job_id/solution
func getSolution(c *gin.Context) {
	sol, err := svc.GetSolution(c.Param("job_id"))
	if err != nil {
		eJSON(c, err)
		return
	}

	if c.DefaultQuery("raw", "") != "" {
		c.String(http.StatusOK, sol.Text)
		return
	}
	c.JSON(http.StatusOK, sol)
}

// GET /jobs/:job_id/report
func getReport(c *gin.Context) {
	report, err := svc.GetReport(c.Param("job_id"))
	if err != nil {
		eJSON(c, err)
		return
	}
	c.String(http.StatusOK, report)
}
