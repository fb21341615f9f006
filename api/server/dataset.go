package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vodplace/api/model"
	"vodplace/pkg/log"
)

// POST /datasets
func createDataset(c *gin.Context) {
	p := new(model.ParamDataset)
	if err := c.BindJSON(p); err != nil {
		c.JSON(http.StatusBadRequest, err)
		return
	}
	if err := p.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, err)
		return
	}

	log.Infof("upload new dataset %s with %d bytes", p.Name, len(p.Text))
	ds, err := svc.CreateDataset(p)
	if err != nil {
		eJSON(c, err)
		return
	}

	c.JSON(http.StatusOK, ds)
}

// GET /datasets
func getDatasets(c *gin.Context) {
	q := new(model.QueryPage)
	if err := c.ShouldBindQuery(q); err != nil {
		c.JSON(http.StatusBadRequest, err)
		return
	}

	dss, err := svc.GetDatasets(q)
	if err != nil {
		eJSON(c, err)
		return
	}

	listJSON(c, dss, len(dss))
}

// GET /datasets/:fingerprint
func getDataset(c *gin.Context) {
	ds, err := svc.GetDataset(c.Param("fingerprint"))
	if err != nil {
		eJSON(c, err)
		return
	}

	c.JSON(http.StatusOK, ds)
}

// DELETE /datasets/:fingerprint
func removeDataset(c *gin.Context) {
	if err := svc.RemoveDataset(c.Param("fingerprint")); err != nil {
		eJSON(c, err)
		return
	}
	done(c)
}
