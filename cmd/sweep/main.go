// sweep trains one agent per combination of learning rate (alpha) and exploration rate (epsilon),
// concurrently, and compares their learning curves.
package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/janpfeifer/must"
	"github.com/janpfeifer/tttGo/internal/ai/valuetable"
	"github.com/janpfeifer/tttGo/internal/curve"
	"github.com/janpfeifer/tttGo/internal/parameters"
	"github.com/janpfeifer/tttGo/internal/profilers"
	"github.com/janpfeifer/tttGo/internal/trainer"
	"github.com/janpfeifer/tttGo/internal/ui/spinning"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	flagAlphas      = flag.String("alphas", "0.1,0.5,0.9", "Comma-separated learning rates to try.")
	flagEpsilons    = flag.String("epsilons", "0.1,0.3,0.5", "Comma-separated initial exploration rates to try.")
	flagEpisodes    = flag.Int("ep", 50_000, "Number of training episodes for each configuration.")
	flagConfig      = flag.String("config", "", "Extra training parameters shared by all configurations, as in tttrainer.")
	flagWindow      = flag.Int("curve_window", curve.DefaultWindow, "Number of episodes in the rolling mean of the learning curves.")
	flagParallelism = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and train "+
		"these many configurations simultaneously.")
)

// Globals
var (
	// globalCtx is cancelled on an interrupt (Ctrl+C) or at the end of the program.
	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	// Capture Control+C
	var globalCancel func()
	globalCtx, globalCancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(globalCancel, 5*time.Second)
	defer globalCancel()

	profilers.Setup(globalCtx)
	defer profilers.OnQuit()

	alphas := must.M1(parseFloats(*flagAlphas))
	epsilons := must.M1(parseFloats(*flagEpsilons))
	runs := must.M1(createRuns(alphas, epsilons))
	must.M(trainAll(globalCtx, runs))
	printResults(runs)
}

// Run is one configuration of the sweep.
type Run struct {
	Config trainer.Config
	Stats  curve.Stats
}

func parseFloats(list string) ([]float64, error) {
	var values []float64
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse value %q in list %q", part, list)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, errors.Errorf("empty list of values %q", list)
	}
	return values, nil
}

// createRuns for every combination of alpha and epsilon. Each run gets a distinct seed derived
// from the configured one, if any.
func createRuns(alphas, epsilons []float64) ([]*Run, error) {
	var runs []*Run
	for _, alpha := range alphas {
		for _, epsilon := range epsilons {
			params := parameters.NewFromConfigString(*flagConfig)
			params["alpha"] = strconv.FormatFloat(alpha, 'g', -1, 64)
			params["epsilon"] = strconv.FormatFloat(epsilon, 'g', -1, 64)
			params["episodes"] = strconv.Itoa(*flagEpisodes)
			params["progress_every"] = "0"
			cfg, err := trainer.NewConfigFromParams(params)
			if err != nil {
				return nil, errors.WithMessagef(err, "invalid configuration for alpha=%g, epsilon=%g", alpha, epsilon)
			}
			if cfg.Seed != 0 {
				cfg.Seed += uint64(len(runs))
			}
			runs = append(runs, &Run{Config: cfg})
		}
	}
	return runs, nil
}

func getParallelism() int {
	if *flagParallelism > 0 {
		return *flagParallelism
	}
	return runtime.GOMAXPROCS(0)
}

// trainAll runs concurrently, each with its own table: no table is shared among goroutines.
func trainAll(ctx context.Context, runs []*Run) error {
	var wg errgroup.Group
	wg.SetLimit(getParallelism())
	spinner := spinning.New(ctx)
	defer spinner.Done()

	var mu sync.Mutex
	finished := 0
	spinner.SetStatus("Trained 0 of %d configurations", len(runs))
	for _, run := range runs {
		wg.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			t := trainer.New(run.Config, valuetable.New())
			result, err := t.Train(ctx, nil)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return errors.WithMessagef(err, "alpha=%g, epsilon=%g", run.Config.Alpha, run.Config.Epsilon)
			}
			run.Stats = curve.Summary(result.Scores, *flagWindow)
			mu.Lock()
			defer mu.Unlock()
			finished++
			spinner.SetStatus("Trained %d of %d configurations", finished, len(runs))
			klog.V(1).Infof("alpha=%g, epsilon=%g: %s", run.Config.Alpha, run.Config.Epsilon, run.Stats)
			return nil
		})
	}
	err := wg.Wait()
	if ctx.Err() != nil {
		fmt.Printf("\nInterrupted: %s\n", ctx.Err())
		return nil
	}
	return err
}

// printResults sorted by the final rolling mean score, best first.
func printResults(runs []*Run) {
	slices.SortStableFunc(runs, func(a, b *Run) int {
		switch {
		case a.Stats.Last > b.Stats.Last:
			return -1
		case a.Stats.Last < b.Stats.Last:
			return 1
		}
		return 0
	})
	fmt.Printf("\n%8s %8s %10s %10s %10s\n", "alpha", "epsilon", "final", "best", "mean")
	for _, run := range runs {
		if run.Stats.Episodes == 0 {
			continue
		}
		fmt.Printf("%8g %8g %10.3f %10.3f %10.3f\n", run.Config.Alpha, run.Config.Epsilon,
			run.Stats.Last, run.Stats.Best, run.Stats.Mean)
	}
}
