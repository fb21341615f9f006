package main

import (
	errs "errors"
	"fmt"
	"net/http"
	_ "net/http/pprof" // NOTE: use http pprof
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"vodplace/config"
	"vodplace/dataset"
	"vodplace/export"
	"vodplace/gen"
	"vodplace/job"
	"vodplace/pkg/log"
	"vodplace/pkg/prom"
	"vodplace/place"
	"vodplace/score"
	"vodplace/version"
	"vodplace/watch"
)

var (
	errFlag   = errs.New("error flags")
	confPath  string
	input     string
	output    string
	solution  string
	strategy  string
	budget    int
	norefine  bool
	pprofAddr string
	redisAddr string
	seed      int64
	videos    int
	endpoints int
	caches    int
	capacity  int
	demands   int
)

func main() {
	app := cli.NewApp()
	app.Name = "placer"
	app.Usage = "video cache placement toolkit"
	app.Version = version.Str()
	solveCmd := cli.Command{
		Name:        "solve",
		ShortName:   "s",
		Usage:       "solve one dataset file",
		Description: "solve one dataset file and write the placement next to it",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:        "input,i",
				Usage:       "dataset file to solve",
				Destination: &input,
			},
			cli.StringFlag{
				Name:        "output,o",
				Usage:       "placement file to write. default swaps the dataset extension",
				Destination: &output,
			},
			cli.StringFlag{
				Name:        "conf,c",
				Usage:       "run with the specific configuration.",
				Destination: &confPath,
			},
			cli.StringFlag{
				Name:        "strategy,t",
				Usage:       "placement strategy. auto races all of them.",
				Destination: &strategy,
			},
			cli.IntFlag{
				Name:        "budget,b",
				Usage:       "refine budget in msec. high priority than conf.refine_budget.",
				Destination: &budget,
			},
			cli.BoolFlag{
				Name:        "norefine",
				Usage:       "skip the refine pass after placing",
				Destination: &norefine,
			},
		},
		Action: func(c *cli.Context) error {
			if input == "" {
				cli.ShowCommandHelp(c, "solve")
				return errFlag
			}
			cfg := placerConfig()
			if log.Init(cfg.Config) {
				defer log.Close()
			}
			p, err := dataset.ParseFile(input)
			if err != nil {
				return err
			}
			out := output
			if out == "" {
				out = strings.TrimSuffix(input, watch.InExt) + watch.OutExt
			}
			res, err := job.Execute(p, &job.Options{
				Strategy:     cfg.Strategy,
				Refine:       cfg.Refine,
				RefineBudget: time.Duration(cfg.RefineBudget) * time.Millisecond,
				WorkDir:      cfg.WorkDir,
				OutputPath:   out,
			})
			if err != nil {
				return err
			}
			return score.WriteReport(os.Stdout, p, res.Placement, res.Score)
		},
	}
	scoreCmd := cli.Command{
		Name:      "score",
		ShortName: "sc",
		Usage:     "score a placement against its dataset",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:        "input,i",
				Usage:       "dataset file",
				Destination: &input,
			},
			cli.StringFlag{
				Name:        "solution,s",
				Usage:       "placement file",
				Destination: &solution,
			},
		},
		Action: func(c *cli.Context) error {
			if input == "" || solution == "" {
				cli.ShowCommandHelp(c, "score")
				return errFlag
			}
			p, pl, err := loadPair()
			if err != nil {
				return err
			}
			return score.WriteReport(os.Stdout, p, pl, score.Evaluate(p, pl))
		},
	}
	validateCmd := cli.Command{
		Name:      "validate",
		ShortName: "v",
		Usage:     "check a placement for capacity and range faults",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:        "input,i",
				Usage:       "dataset file",
				Destination: &input,
			},
			cli.StringFlag{
				Name:        "solution,s",
				Usage:       "placement file",
				Destination: &solution,
			},
		},
		Action: func(c *cli.Context) error {
			if input == "" || solution == "" {
				cli.ShowCommandHelp(c, "validate")
				return errFlag
			}
			p, pl, err := loadPair()
			if err != nil {
				return err
			}
			faults := place.Validate(p, pl)
			if len(faults) == 0 {
				fmt.Printf("placement %s fits dataset %s\n", solution, p.Fingerprint)
				return nil
			}
			for _, f := range faults {
				fmt.Println(f)
			}
			return errors.Wrapf(place.ErrInvalid, "%d faults", len(faults))
		},
	}
	genCmd := cli.Command{
		Name:      "gen",
		ShortName: "g",
		Usage:     "generate a random solvable dataset",
		Flags: []cli.Flag{
			cli.Int64Flag{
				Name:        "seed",
				Usage:       "rand seed. 0 seeds from the clock.",
				Destination: &seed,
			},
			cli.IntFlag{
				Name:        "videos",
				Usage:       "video count",
				Destination: &videos,
			},
			cli.IntFlag{
				Name:        "endpoints",
				Usage:       "endpoint count",
				Destination: &endpoints,
			},
			cli.IntFlag{
				Name:        "caches",
				Usage:       "cache count",
				Destination: &caches,
			},
			cli.IntFlag{
				Name:        "capacity",
				Usage:       "cache capacity in MB",
				Destination: &capacity,
			},
			cli.IntFlag{
				Name:        "demands",
				Usage:       "demand row count",
				Destination: &demands,
			},
			cli.StringFlag{
				Name:        "output,o",
				Usage:       "dataset file to write. default is the dataset name",
				Destination: &output,
			},
		},
		Action: func(c *cli.Context) error {
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			p, err := gen.Generate(gen.Options{
				Seed:      seed,
				Videos:    videos,
				Endpoints: endpoints,
				Caches:    caches,
				Capacity:  capacity,
				Demands:   demands,
			})
			if err != nil {
				return err
			}
			out := output
			if out == "" {
				out = p.Name + watch.InExt
			}
			if err = dataset.WriteProblemFile(out, p); err != nil {
				return err
			}
			fmt.Printf("generated %s (%s): %d videos, %d endpoints, %d demand rows\n",
				p.Name, p.Fingerprint, p.VideoCount, p.EndpointCount, len(p.Demands))
			return nil
		},
	}
	watchCmd := cli.Command{
		Name:        "watch",
		ShortName:   "w",
		Usage:       "watch a directory and solve datasets as they land",
		Description: "watch conf.input_dir and write placements into conf.output_dir",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:        "conf,c",
				Usage:       "run with the specific configuration.",
				Destination: &confPath,
			},
			cli.StringFlag{
				Name:        "pprof",
				Usage:       "pprof listen addr. high priority than conf.pprof.",
				Destination: &pprofAddr,
			},
		},
		Action: func(c *cli.Context) error {
			cfg := placerConfig()
			if log.Init(cfg.Config) {
				defer log.Close()
			}
			if cfg.Pprof != "" {
				go http.ListenAndServe(cfg.Pprof, nil)
				prom.Init()
			} else {
				prom.On = false
			}
			w, err := watch.New(cfg)
			if err != nil {
				return err
			}
			defer w.Close()
			w.Run()
			signalHandler()
			return nil
		},
	}
	publishCmd := cli.Command{
		Name:      "publish",
		ShortName: "p",
		Usage:     "publish a scored placement into redis",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:        "input,i",
				Usage:       "dataset file",
				Destination: &input,
			},
			cli.StringFlag{
				Name:        "solution,s",
				Usage:       "placement file",
				Destination: &solution,
			},
			cli.StringFlag{
				Name:        "redis,r",
				Usage:       "redis addr to publish into",
				Destination: &redisAddr,
			},
		},
		Action: func(c *cli.Context) error {
			if input == "" || solution == "" || redisAddr == "" {
				cli.ShowCommandHelp(c, "publish")
				return errFlag
			}
			p, pl, err := loadPair()
			if err != nil {
				return err
			}
			r := score.Evaluate(p, pl)
			pub := export.New(redisAddr)
			defer pub.Close()
			if err = pub.Ping(); err != nil {
				return err
			}
			return pub.Publish(p, pl, r.Score)
		},
	}
	app.Commands = []cli.Command{solveCmd, scoreCmd, validateCmd, genCmd, watchCmd, publishCmd}
	app.Run(os.Args)
}

func placerConfig() (c *config.PlacerConfig) {
	c = config.DefaultConfig()
	if confPath != "" {
		if err := c.LoadFromFile(confPath); err != nil {
			panic(err)
		}
	}
	// high priority start
	if strategy != "" {
		c.Strategy = strategy
	}
	if budget > 0 {
		c.RefineBudget = budget
	}
	if norefine {
		c.Refine = false
	}
	if pprofAddr != "" {
		c.Pprof = pprofAddr
	}
	// high priority end
	return
}

func loadPair() (*dataset.Problem, *dataset.Placement, error) {
	p, err := dataset.ParseFile(input)
	if err != nil {
		return nil, nil, err
	}
	pl, err := dataset.ParseSolutionFile(solution, p)
	if err != nil {
		return nil, nil, err
	}
	return p, pl, nil
}

func signalHandler() {
	var ch = make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
	for {
		log.Infof("vodplace watch version[%s] start serving", version.Str())
		si := <-ch
		log.Infof("vodplace watch version[%s] signal(%s) stop the process", version.Str(), si.String())
		switch si {
		case syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT:
			log.Infof("vodplace watch version[%s] exited", version.Str())
			return
		case syscall.SIGHUP:
		default:
			return
		}
	}
}
