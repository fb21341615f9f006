package server

import (
	"bytes"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vodplace/api/model"
	"vodplace/api/service"
	"vodplace/config"
	"vodplace/job"
)

const _exampleText = "5 2 4 3 100\n" +
	"50 50 80 30 110\n" +
	"1000 3\n0 100\n2 200\n1 300\n" +
	"500 0\n" +
	"3 0 1500\n0 1 1000\n4 0 500\n1 0 1000\n"

func _createServer(t *testing.T) (*gin.Engine, string) {
	gin.SetMode(gin.TestMode)
	root, err := ioutil.TempDir("", "vodplace-api-test")
	require.NoError(t, err)
	cfg := config.DefaultServerConfig()
	cfg.Data = filepath.Join(root, "data")
	cfg.WorkDir = filepath.Join(root, "work")
	cfg.RefineBudget = 1000
	svc = service.New(cfg)
	engine := gin.New()
	initRouter(engine)
	return engine, root
}

func _do(engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAPILifecycle(t *testing.T) {
	engine, root := _createServer(t)
	defer os.RemoveAll(root)
	defer svc.Close()

	// upload
	w := _do(engine, "POST", "/api/v1/datasets/", map[string]string{"name": "example", "text": _exampleText})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ds := new(model.Dataset)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), ds))
	assert.Len(t, ds.Fingerprint, 8)
	assert.Equal(t, 5, ds.Videos)

	// re-upload conflicts
	w = _do(engine, "POST", "/api/v1/datasets/", map[string]string{"text": _exampleText})
	assert.Equal(t, http.StatusConflict, w.Code)

	// garbage body is a client error
	w = _do(engine, "POST", "/api/v1/datasets/", map[string]string{"text": "junk"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// list and fetch
	w = _do(engine, "GET", "/api/v1/datasets/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Count int              `json:"count"`
		Items []*model.Dataset `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Count)

	w = _do(engine, "GET", "/api/v1/datasets/"+ds.Fingerprint, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = _do(engine, "GET", "/api/v1/datasets/ffffffff", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// order a job
	w = _do(engine, "POST", "/api/v1/jobs/", map[string]string{"dataset": ds.Fingerprint, "strategy": "demand"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	j := new(job.Job)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), j))
	assert.NotEmpty(t, j.ID)

	w = _do(engine, "POST", "/api/v1/jobs/", map[string]string{"dataset": ds.Fingerprint, "strategy": "annealing"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = _do(engine, "POST", "/api/v1/jobs/", map[string]string{"dataset": "ffffffff"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// wait for the manager to finish it
	deadline := time.Now().Add(10 * time.Second)
	for {
		w = _do(engine, "GET", "/api/v1/jobs/"+j.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), j))
		if job.IsTerminal(j.State) {
			break
		}
		require.True(t, time.Now().Before(deadline), "job did not finish in time")
		time.Sleep(20 * time.Millisecond)
	}
	assert.Equal(t, job.StateDone, j.State)
	assert.Equal(t, int64(562500), j.Score)

	// solution, raw solution and report
	w = _do(engine, "GET", "/api/v1/jobs/"+j.ID+"/solution", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sol := new(model.Solution)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), sol))
	assert.Equal(t, int64(562500), sol.Score)

	w = _do(engine, "GET", "/api/v1/jobs/"+j.ID+"/solution?raw=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1\n0 1 3\n", w.Body.String())

	w = _do(engine, "GET", "/api/v1/jobs/"+j.ID+"/report", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "score 562500")

	w = _do(engine, "GET", "/api/v1/jobs/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// misc endpoints
	w = _do(engine, "GET", "/api/v1/strategies", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "demand")

	w = _do(engine, "GET", "/api/v1/version", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// remove the dataset
	w = _do(engine, "DELETE", "/api/v1/datasets/"+ds.Fingerprint, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = _do(engine, "DELETE", "/api/v1/datasets/"+ds.Fingerprint, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIEmptyLists(t *testing.T) {
	engine, root := _createServer(t)
	defer os.RemoveAll(root)
	defer svc.Close()

	w := _do(engine, "GET", "/api/v1/datasets/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":0`)

	w = _do(engine, "GET", "/api/v1/jobs/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":0`)

	w = _do(engine, "GET", "/api/v1/jobs/missing/solution", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
