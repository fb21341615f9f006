package log_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vodplace/pkg/log"
)

type capture struct {
	lines []string
}

func (c *capture) Log(lv log.Level, msg string) {
	c.lines = append(c.lines, lv.String()+" "+msg)
}

func (c *capture) Close() error { return nil }

func TestLogLevelsAndFile(t *testing.T) {
	root, err := ioutil.TempDir("", "vodplace-log")
	require.NoError(t, err)
	defer os.RemoveAll(root)
	day := time.Now().Format("2006-01-02")
	base := filepath.Join(root, "logs", "vodplace.log")

	require.True(t, log.Init(&log.Config{Stdout: true, Log: base}))
	log.Info("line1")
	log.Infof("line%d", 2)
	log.Warn("w1")
	log.Warnf("w%d", 2)
	log.Error("e1")
	log.Errorf("e%d", 2)
	log.Errorf("stack:%+v", assert.AnError)
	require.NoError(t, log.Close())

	bs, err := ioutil.ReadFile(base + "." + day)
	require.NoError(t, err)
	s := string(bs)
	assert.Contains(t, s, "[INFO] line1")
	assert.Contains(t, s, "[INFO] line2")
	assert.Contains(t, s, "[WARN] w2")
	assert.Contains(t, s, "[ERROR] e2")
}

func TestLogVerbose(t *testing.T) {
	c := &capture{}
	log.InitHandle(c)
	log.DefaultVerboseLevel = 2
	defer func() { log.DefaultVerboseLevel = 0 }()

	log.V(3).Info("hidden")
	log.V(3).Infof("hidden:%d", 1)
	log.V(2).Infof("seen:%d", 1)
	if log.V(1) {
		log.Info("guarded")
	}
	assert.Equal(t, []string{"INFO seen:1", "INFO guarded"}, c.lines)
}

func TestLogNilConfig(t *testing.T) {
	assert.False(t, log.Init(nil))
}
