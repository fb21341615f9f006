package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"vodplace/api/model"
	"vodplace/pkg/log"
)

var (
	server string
	cmd    string
	file   string
	name   string
	id     string
	client = &http.Client{}
)

const (
	datasetBase = "/api/v1/datasets/"
	jobBase     = "/api/v1/jobs/"
)

func main() {
	flag.StringVar(&server, "server", "http://127.0.0.1:8880", "api server addr")
	flag.StringVar(&cmd, "cmd", "", "cli cmd: upload getdataset solve getjob report solution")
	flag.StringVar(&file, "file", "", "dataset file to upload")
	flag.StringVar(&name, "name", "", "dataset fingerprint")
	flag.StringVar(&id, "id", "", "job id")
	flag.Parse()
	log.InitHandle(log.NewStdHandler())
	switch {
	case cmd == "upload":
		upload(file)
	case cmd == "getdataset":
		if name == "" {
			datasets()
		} else {
			dataset(name)
		}
	case cmd == "solve":
		solve(name)
	case cmd == "getjob":
		if id == "" {
			jobs()
		} else {
			job(id)
		}
	case cmd == "report":
		report(id)
	case cmd == "solution":
		solution(id)
	default:
		flag.Usage()
	}
}

func upload(path string) (err error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		err = errors.WithStack(err)
		return
	}
	arg := &model.ParamDataset{
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Text: string(raw),
	}
	bs, err := json.Marshal(arg)
	if err != nil {
		err = errors.WithStack(err)
		return
	}
	return newReq(http.MethodPost, server+datasetBase, string(bs))
}

func datasets() (err error) {
	return newReq(http.MethodGet, server+datasetBase, "")
}

func dataset(fp string) (err error) {
	return newReq(http.MethodGet, server+datasetBase+fp, "")
}

func solve(fp string) (err error) {
	bs, err := json.Marshal(&model.ParamJob{Dataset: fp})
	if err != nil {
		err = errors.WithStack(err)
		return
	}
	return newReq(http.MethodPost, server+jobBase, string(bs))
}

func jobs() (err error) {
	return newReq(http.MethodGet, server+jobBase, "")
}

func job(jid string) (err error) {
	return newReq(http.MethodGet, server+jobBase+jid, "")
}

func report(jid string) (err error) {
	return newReq(http.MethodGet, server+jobBase+jid+"/report", "")
}

func solution(jid string) (err error) {
	return newReq(http.MethodGet, server+jobBase+jid+"/solution?"+fmt.Sprintf("raw=%d", 1), "")
}

func newReq(method, url, body string) (err error) {
	var req *http.Request
	req, err = http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		err = errors.WithStack(err)
		return
	}
	resp, err := client.Do(req)
	if err != nil {
		err = errors.WithStack(err)
		return
	}
	defer resp.Body.Close()
	bs, err := ioutil.ReadAll(resp.Body)
	log.Infof("%s %s %d\n%s err %v", method, url, resp.StatusCode, bs, err)
	return
}
