package api

import (
	"io/ioutil"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vodplace/api/server"
	"vodplace/api/service"
	"vodplace/config"
)

const exampleText = "5 2 4 3 100\n" +
	"50 50 80 30 110\n" +
	"1000 3\n" +
	"0 100\n" +
	"2 200\n" +
	"1 300\n" +
	"500 0\n" +
	"3 0 1500\n" +
	"0 1 1000\n" +
	"4 0 500\n" +
	"1 0 1000\n"

var (
	fingerprint string
	jobID       string
)

// =============================== prepare environments ==============

func setupTest(t *testing.T) bool {
	root, err := ioutil.TempDir("", "vodplace-ci")
	require.NoError(t, err)
	conf := config.DefaultServerConfig()
	conf.Listen = "127.0.0.1:18880"
	conf.Data = filepath.Join(root, "data")
	conf.WorkDir = filepath.Join(root, "work")
	conf.RefineBudget = 1000
	svc := service.New(conf)
	go server.Run(conf, svc)
	t.Logf("sleeping 1 second for the apiserver on %s ...", conf.Listen)
	time.Sleep(time.Second)
	return true
}

func tearDownTest(t *testing.T) bool {
	return true
}

// =========================== rest api cases ==============

// testDatasetUpload uploads the worked example and checks the parsed
// dimensions, then reposts it for the conflict and a junk body for the
// bad request.
func testDatasetUpload(t *testing.T) {
	code, body := _post(t, "/datasets/", map[string]string{"name": "example", "text": exampleText})
	require.Equal(t, http.StatusOK, code, "body: %s", body)
	ds := _decode(t, body)
	fingerprint, _ = ds["fingerprint"].(string)
	assert.Len(t, fingerprint, 8)
	assert.EqualValues(t, 5, ds["videos"])
	assert.EqualValues(t, 2, ds["endpoints"])
	assert.EqualValues(t, 4000, ds["total_requests"])

	code, _ = _post(t, "/datasets/", map[string]string{"name": "example", "text": exampleText})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = _post(t, "/datasets/", map[string]string{"name": "junk", "text": "not a dataset"})
	assert.Equal(t, http.StatusBadRequest, code)
}

// testJobSolve orders a solve on the uploaded dataset and follows it to
// done, then reads the submission and the report back.
func testJobSolve(t *testing.T) {
	code, body := _post(t, "/jobs/", map[string]string{"dataset": fingerprint, "strategy": "demand"})
	require.Equal(t, http.StatusOK, code, "body: %s", body)
	j := _decode(t, body)
	jobID, _ = j["id"].(string)
	require.NotEmpty(t, jobID)

	j = _waitJob(t, jobID)
	require.Equal(t, "done", j["state"], "job: %v", j)
	assert.EqualValues(t, 562500, j["score"])

	code, body = _get(t, "/jobs/"+jobID+"/solution?raw=1")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "1\n0 1 3\n", string(body))

	code, body = _get(t, "/jobs/"+jobID+"/report")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, strings.Contains(string(body), "score 562500"), "report: %s", body)
}

// testJobBadParams covers the unknown dataset and the unknown strategy.
func testJobBadParams(t *testing.T) {
	code, _ := _post(t, "/jobs/", map[string]string{"dataset": "ffffffff"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = _post(t, "/jobs/", map[string]string{"dataset": fingerprint, "strategy": "annealing"})
	assert.Equal(t, http.StatusBadRequest, code)
}

// testListAndRemove lists both resources and removes the dataset last.
func testListAndRemove(t *testing.T) {
	code, body := _get(t, "/datasets/")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, _decode(t, body)["count"])

	code, body = _get(t, "/jobs/")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, _decode(t, body)["count"])

	code, body = _get(t, "/strategies")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, strings.Contains(string(body), "demand"), "strategies: %s", body)

	code, _ = _delete(t, "/datasets/"+fingerprint)
	assert.Equal(t, http.StatusOK, code)
	code, _ = _delete(t, "/datasets/"+fingerprint)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestIntegration(t *testing.T) {
	setupTest(t)
	defer tearDownTest(t)

	t.Run("DatasetUpload", testDatasetUpload)
	t.Run("JobSolve", testJobSolve)
	t.Run("JobBadParams", testJobBadParams)
	t.Run("ListAndRemove", testListAndRemove)
}
