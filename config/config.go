package config

import (
	errs "errors"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"vodplace/job"
	"vodplace/pkg/log"
	"vodplace/place"
)

// errors of config validating.
var (
	ErrNoListen   = errs.New("listen address required")
	ErrNoDataDir  = errs.New("data dir required")
	ErrNoWatchDir = errs.New("input dir and output dir required")
	ErrBadBudget  = errs.New("refine budget must not be negative")
)

// define run mode
const (
	RunModeTest    = "test"
	RunModePreProd = "pre-prod"
	RunModeProd    = "prod"
)

// RunModeType is defined as a string with const
type RunModeType = string

// default runMode is test
var runMode = RunModeTest

// SetRunMode switches the global run mode, the apiserver must call it
// before server.Run when it serves prod traffic.
func SetRunMode(mode RunModeType) {
	switch mode {
	case RunModeTest, RunModePreProd, RunModeProd:
		runMode = mode
	default:
		panic("fail to setup unsupport run-mode")
	}
}

// GetRunMode will get the runMode global variables.
func GetRunMode() string {
	return runMode
}

// PlacerConfig is the watch daemon config.
type PlacerConfig struct {
	Pprof        string
	Strategy     string
	Refine       bool
	RefineBudget int    `toml:"refine_budget"`
	InputDir     string `toml:"input_dir"`
	OutputDir    string `toml:"output_dir"`
	WorkDir      string `toml:"work_dir"`
	MaxRetries   int    `toml:"max_retries"`
	*log.Config
}

// DefaultConfig new config by defalut string.
func DefaultConfig() *PlacerConfig {
	c := &PlacerConfig{}
	if _, err := toml.Decode(defaultPlacerConfig, c); err != nil {
		panic(err)
	}
	if err := c.Validate(); err != nil {
		panic(err)
	}
	return c
}

// LoadFromFile load from file.
func (c *PlacerConfig) LoadFromFile(path string) error {
	_, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrapf(err, "Load From File:%s", path)
	}
	return c.Validate()
}

// Validate validate config field value.
func (c *PlacerConfig) Validate() error {
	if c.InputDir == "" || c.OutputDir == "" {
		return ErrNoWatchDir
	}
	if c.RefineBudget < 0 {
		return ErrBadBudget
	}
	if c.Strategy == job.StrategyAuto {
		return nil
	}
	_, err := place.Get(c.Strategy)
	return err
}

// ServerConfig is apiserver's config.
type ServerConfig struct {
	Listen       string `toml:"listen"`
	Admin        string `toml:"admin"`
	Data         string `toml:"data"`
	WorkDir      string `toml:"work_dir"`
	Strategy     string `toml:"strategy"`
	Refine       bool   `toml:"refine"`
	RefineBudget int    `toml:"refine_budget"`
	*log.Config
}

// DefaultServerConfig new config by defalut string.
func DefaultServerConfig() *ServerConfig {
	c := &ServerConfig{}
	if _, err := toml.Decode(defaultServerConfig, c); err != nil {
		panic(err)
	}
	if err := c.Validate(); err != nil {
		panic(err)
	}
	return c
}

// LoadFromFile load from file.
func (c *ServerConfig) LoadFromFile(path string) error {
	_, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrapf(err, "Load From File:%s", path)
	}
	return c.Validate()
}

// Validate validate config field value.
func (c *ServerConfig) Validate() error {
	if c.Listen == "" {
		return ErrNoListen
	}
	if c.Data == "" {
		return ErrNoDataDir
	}
	if c.RefineBudget < 0 {
		return ErrBadBudget
	}
	if c.Strategy == job.StrategyAuto {
		return nil
	}
	_, err := place.Get(c.Strategy)
	return err
}

const defaultPlacerConfig = `
##################################################
#                                                #
#                    Vodplace                    #
#         video cache placement toolkit          #
#            and solver written in Go            #
#                                                #
##################################################
pprof = "0.0.0.0:2310"
stdout = true
debug = false
log = ""
log_vl = 0

strategy = "demand"
refine = true
# The soft wall clock budget in msec for one refine pass. 0 means keep moving until no move improves.
refine_budget = 2000
input_dir = "./input"
output_dir = "./output"
work_dir = "/tmp/vodplace"
# Give up on a file which appeared but keeps failing to parse after this many tries.
max_retries = 5
`

const defaultServerConfig = `
listen = "0.0.0.0:8880"
admin = "0.0.0.0:2311"
data = "/tmp/vodplace/data"
work_dir = "/tmp/vodplace"
strategy = "demand"
refine = true
refine_budget = 2000
stdout = true
debug = false
log = ""
log_vl = 0
`
