// Package log is the leveled logging shared by the vodplace binaries.
// The package drops every line until Init or InitHandle installs a
// handler, so library code can log without caring whether anyone
// listens.
package log

import (
	"flag"
	"fmt"
)

// Level tags one log line.
type Level int

const (
	_infoLevel Level = iota
	_warnLevel
	_errorLevel
)

// String implementation.
func (l Level) String() string {
	switch l {
	case _warnLevel:
		return "WARN"
	case _errorLevel:
		return "ERROR"
	}
	return "INFO"
}

// Config picks the handlers. A log path turns on daily rolled files,
// stdout or debug turn on the stdout handler.
type Config struct {
	Stdout bool
	Debug  bool
	Log    string
	LogVL  int `toml:"log_vl"`
}

var (
	logStd  bool
	logFile string
	logVl   int
	debug   bool

	h Handler
)

func init() {
	flag.BoolVar(&logStd, "std", false, "force the stdout log handler on.")
	flag.BoolVar(&debug, "debug", false, "debug mode opens the stdout handler. high priority than conf.debug.")
	flag.StringVar(&logFile, "log", "", "log file base path. high priority than conf.log.")
	flag.IntVar(&logVl, "log-vl", 0, "log verbose level. high priority than conf.log_vl.")
}

// Init builds handlers from c merged with the command line flags and
// reports whether any handler came on.
func Init(c *Config) bool {
	if c == nil {
		c = &Config{}
	}
	if logFile != "" {
		c.Log = logFile
	}
	if logVl != 0 {
		c.LogVL = logVl
	}
	if c.LogVL != 0 {
		DefaultVerboseLevel = c.LogVL
	}
	var hs Handlers
	if c.Stdout || c.Debug || logStd || debug {
		hs = append(hs, NewStdHandler())
	}
	if c.Log != "" {
		hs = append(hs, NewFileHandler(c.Log))
	}
	if len(hs) == 0 {
		return false
	}
	h = hs
	return true
}

// InitHandle installs the given handlers directly, mostly for tests.
func InitHandle(hs ...Handler) {
	h = Handlers(hs)
}

// Close closes every handler.
func Close() error {
	if h == nil {
		return nil
	}
	return h.Close()
}

// Infof logs a message at the info log level.
func Infof(format string, args ...interface{}) {
	logf(_infoLevel, format, args...)
}

// Warnf logs a message at the warning log level.
func Warnf(format string, args ...interface{}) {
	logf(_warnLevel, format, args...)
}

// Errorf logs a message at the error log level.
func Errorf(format string, args ...interface{}) {
	logf(_errorLevel, format, args...)
}

// Info logs a message at the info log level.
func Info(args ...interface{}) {
	logs(_infoLevel, args...)
}

// Warn logs a message at the warning log level.
func Warn(args ...interface{}) {
	logs(_warnLevel, args...)
}

// Error logs a message at the error log level.
func Error(args ...interface{}) {
	logs(_errorLevel, args...)
}

func logf(lv Level, format string, args ...interface{}) {
	if h == nil {
		return
	}
	if len(args) == 0 {
		h.Log(lv, format)
		return
	}
	h.Log(lv, fmt.Sprintf(format, args...))
}

func logs(lv Level, args ...interface{}) {
	if h == nil {
		return
	}
	h.Log(lv, fmt.Sprint(args...))
}

// DefaultVerboseLevel gates V. Lines logged under V(n) print only when
// n is at or under this level.
var DefaultVerboseLevel = 0

// Verbose is a boolean with the leveled print methods hung off it, so
// log.V(2).Infof(...) and a plain if log.V(2) guard both work.
type Verbose bool

// V reports whether verbose logs at level v are on.
func V(v int) Verbose {
	return Verbose(v <= DefaultVerboseLevel)
}

// Infof logs a message at the info log level.
func (v Verbose) Infof(format string, args ...interface{}) {
	if v {
		logf(_infoLevel, format, args...)
	}
}

// Warnf logs a message at the warning log level.
func (v Verbose) Warnf(format string, args ...interface{}) {
	if v {
		logf(_warnLevel, format, args...)
	}
}

// Errorf logs a message at the error log level.
func (v Verbose) Errorf(format string, args ...interface{}) {
	if v {
		logf(_errorLevel, format, args...)
	}
}

// Info logs a message at the info log level.
func (v Verbose) Info(args ...interface{}) {
	if v {
		logs(_infoLevel, args...)
	}
}

// Warn logs a message at the warning log level.
func (v Verbose) Warn(args ...interface{}) {
	if v {
		logs(_warnLevel, args...)
	}
}

// Error logs a message at the error log level.
func (v Verbose) Error(args ...interface{}) {
	if v {
		logs(_errorLevel, args...)
	}
}
