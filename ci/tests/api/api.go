package api

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// ================== tools functions

const apiBase = "http://127.0.0.1:18880/api/v1"

func _request(t *testing.T, method, path string, body interface{}) (int, []byte) {
	var bs []byte
	if body != nil {
		var err error
		bs, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req, err := http.NewRequest(method, apiBase+path, bytes.NewReader(bs))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	cli := &http.Client{Timeout: 10 * time.Second}
	resp, err := cli.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	rb, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, rb
}

func _post(t *testing.T, path string, body interface{}) (int, []byte) {
	return _request(t, http.MethodPost, path, body)
}

func _get(t *testing.T, path string) (int, []byte) {
	return _request(t, http.MethodGet, path, nil)
}

func _delete(t *testing.T, path string) (int, []byte) {
	return _request(t, http.MethodDelete, path, nil)
}

func _decode(t *testing.T, body []byte) map[string]interface{} {
	m := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(body, &m), "body: %s", body)
	return m
}

// _waitJob polls the job until it reaches a terminal state.
func _waitJob(t *testing.T, id string) map[string]interface{} {
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		code, body := _get(t, "/jobs/"+id)
		require.Equal(t, http.StatusOK, code, "body: %s", body)
		j := _decode(t, body)
		state, _ := j["state"].(string)
		if state == "done" || state == "fail" {
			return j
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("job %s still running after 10s", id)
	return nil
}
