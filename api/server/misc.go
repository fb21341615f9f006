package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vodplace/place"
	"vodplace/version"
)

// GET /strategies
func getStrategies(c *gin.Context) {
	names := place.Names()
	listJSON(c, names, len(names))
}

// GET /version
func getVersion(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]string{"version": version.Str()})
}
