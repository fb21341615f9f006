package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"vodplace/api/model"
	"vodplace/dataset"
	"vodplace/place"
)

// eJSON will report error json into body
func eJSON(c *gin.Context, err error) {
	merr := map[string]interface{}{"error": fmt.Sprintf("%v", err)}

	switch errors.Cause(err) {
	case model.ErrNotFound:
		c.JSON(http.StatusNotFound, merr)
	case model.ErrConflict:
		c.JSON(http.StatusConflict, merr)
	case dataset.ErrBadRow, dataset.ErrTruncated, dataset.ErrIDRange, place.ErrUnknownStrategy:
		c.JSON(http.StatusBadRequest, merr)
	default:
		c.JSON(http.StatusInternalServerError, merr)
	}
}

type list struct {
	Count int         `json:"count"`
	Items interface{} `json:"items"`
}

func empty() *list {
	return &list{
		Count: 0,
		Items: []struct{}{},
	}
}

func listJSON(c *gin.Context, vals interface{}, count int) {
	if count == 0 {
		c.JSON(http.StatusOK, empty())
		return
	}

	c.JSON(http.StatusOK, &list{
		Count: count,
		Items: vals,
	})
}

func done(c *gin.Context) {
	c.JSON(http.StatusOK, struct {
		Message string `json:"message"`
	}{
		Message: "done",
	})
}
