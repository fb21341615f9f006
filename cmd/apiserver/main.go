package main

import (
	"flag"
	"net/http"
	_ "net/http/pprof" // NOTE: use http pprof

	"vodplace/api/server"
	"vodplace/api/service"
	"vodplace/config"
	"vodplace/pkg/log"
	"vodplace/pkg/prom"
	"vodplace/version"
)

var (
	confPath string
	runMode  string
)

func main() {
	flag.StringVar(&confPath, "conf", "", "apiserver conf")
	flag.StringVar(&runMode, "run-mode", config.RunModeTest, "run mode: test pre-prod prod")
	flag.Parse()

	if version.ShowVersion() {
		return
	}

	conf := config.DefaultServerConfig()
	if confPath != "" {
		if err := conf.LoadFromFile(confPath); err != nil {
			panic(err)
		}
	}
	config.SetRunMode(runMode)
	if log.Init(conf.Config) {
		defer log.Close()
	}
	if conf.Admin != "" {
		go http.ListenAndServe(conf.Admin, nil)
		prom.Init()
	} else {
		prom.On = false
	}
	svc := service.New(conf)
	defer svc.Close()
	server.Run(conf, svc)
}
