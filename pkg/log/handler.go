package log

import (
	"fmt"
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// Handler writes leveled lines somewhere. Handlers look after their own
// locking.
type Handler interface {
	Log(lv Level, msg string)
	Close() error
}

// Handlers fans one line out to several handlers.
type Handlers []Handler

// Log sends the line to every handler.
func (hs Handlers) Log(lv Level, msg string) {
	for _, h := range hs {
		h.Log(lv, msg)
	}
}

// Close closes every handler and keeps the last error.
func (hs Handlers) Close() (err error) {
	for _, h := range hs {
		if e := h.Close(); e != nil {
			err = errors.WithStack(e)
		}
	}
	return
}

type stdHandler struct {
	out *stdlog.Logger
}

// NewStdHandler logs to stdout.
func NewStdHandler() Handler {
	return &stdHandler{out: stdlog.New(os.Stdout, "", stdlog.LstdFlags|stdlog.Lshortfile)}
}

func (s *stdHandler) Log(lv Level, msg string) {
	_ = s.out.Output(6, fmt.Sprintf("[%s] %s", lv, msg))
}

func (s *stdHandler) Close() (err error) {
	return
}

// one log file per day.
const fileFrag = "2006-01-02"

type fileHandler struct {
	out  *stdlog.Logger
	f    *os.File
	base string
	day  string
}

// NewFileHandler logs to base.<day>, rolling the file at midnight. The
// base directory is created on demand.
func NewFileHandler(base string) Handler {
	if _, file := filepath.Split(base); file == "" {
		panic(fmt.Sprintf("log base %q has no file part", base))
	}
	fh := &fileHandler{
		out:  stdlog.New(nil, "", stdlog.LstdFlags|stdlog.Lshortfile),
		base: base,
	}
	if err := fh.roll(time.Now()); err != nil {
		panic(err)
	}
	return fh
}

func (fh *fileHandler) Log(lv Level, msg string) {
	_ = fh.roll(time.Now())
	_ = fh.out.Output(6, fmt.Sprintf("[%s] %s", lv, msg))
}

func (fh *fileHandler) Close() error {
	if fh.f == nil {
		return nil
	}
	return fh.f.Close()
}

func (fh *fileHandler) roll(now time.Time) error {
	day := now.Format(fileFrag)
	if fh.f != nil {
		if day == fh.day {
			return nil
		}
		fh.f.Close()
		fh.f = nil
	}
	if dir, _ := filepath.Split(fh.base); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(fmt.Sprintf("%s.%s", fh.base, day), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	fh.day = day
	fh.f = f
	fh.out.SetOutput(f)
	return nil
}
