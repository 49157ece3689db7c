// tttrainer trains a tic-tac-toe agent with TD learning against a scripted opponent, reports the
// learning curve and then lets a human play against the trained agent.
package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/janpfeifer/must"
	"github.com/janpfeifer/tttGo/internal/ai"
	"github.com/janpfeifer/tttGo/internal/ai/valuetable"
	"github.com/janpfeifer/tttGo/internal/curve"
	"github.com/janpfeifer/tttGo/internal/parameters"
	"github.com/janpfeifer/tttGo/internal/players"
	"github.com/janpfeifer/tttGo/internal/profilers"
	"github.com/janpfeifer/tttGo/internal/state"
	"github.com/janpfeifer/tttGo/internal/trainer"
	"github.com/janpfeifer/tttGo/internal/ui/cli"
	"github.com/janpfeifer/tttGo/internal/ui/spinning"
	"github.com/pkg/errors"
	"io"
	"k8s.io/klog/v2"
	"math/rand/v2"
	"os"
	"time"
)

var (
	flagAlpha    = flag.Float64("a", 0.9, "Alpha: learning rate of the TD update.")
	flagEpsilon  = flag.Float64("e", 0.3, "Epsilon: initial exploration rate of the agent.")
	flagEpisodes = flag.Int("ep", 500_000, "Number of training episodes.")
	flagConfig   = flag.String("config", "", "Extra training parameters as a comma-separated list of key=value, "+
		"e.g.: \"scripted_epsilon=0.2,eval_games=20,seed=1\". The flags -a, -e and -ep take precedence.")

	flagCurveHTML   = flag.String("curve_html", "", "If set, writes the learning curve chart to this HTML `file`.")
	flagCurveWindow = flag.Int("curve_window", curve.DefaultWindow, "Number of episodes in the rolling mean of the learning curve.")

	flagPlay  = flag.Bool("play", true, "After training, play against the agent until the input is closed.")
	flagFirst = flag.String("first", "human", "Who moves first in the human matches: \"human\", \"ai\" or \"random\".")
	flagWatch = flag.Int("watch", 0, "If > 0, after training shows that many games of the agent (-ai) against -watch_opponent.")

	flagAI = flag.String("ai", "agent", "Configuration of the trained AI player for -watch and human play, "+
		"e.g. \"agent:epsilon=0.05\" or \"random\".")
	flagWatchOpponent = flag.String("watch_opponent", "random", "Configuration of the opponent in -watch games: "+
		"\"random\" or \"agent\" (plays the opponent mark from the same table).")
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

	cfg := must.M1(createConfig())
	table := valuetable.New()
	result, err := train(cfg, table)
	if err != nil {
		if globalCtx.Err() == nil {
			klog.Fatalf("Training failed: %+v", err)
		}
		fmt.Printf("%v\n", err)
	}
	report(result)

	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	aiPlayer, opponent := must.M2(createPlayers(table, rng))
	if *flagWatch > 0 {
		watch(aiPlayer, opponent, rng, *flagWatch)
	}
	if *flagPlay && globalCtx.Err() == nil {
		must.M(playHuman(aiPlayer, rng))
	}
}

// createConfig from -config, with -a, -e and -ep overriding it if they were given explicitly.
func createConfig() (trainer.Config, error) {
	params := parameters.NewFromConfigString(*flagConfig)
	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	for name, key := range map[string]string{"a": "alpha", "e": "epsilon", "ep": "episodes"} {
		if _, found := params[key]; !found || setFlags[name] {
			params[key] = flag.Lookup(name).Value.String()
		}
	}
	cfg, err := trainer.NewConfigFromParams(params)
	if err != nil {
		return cfg, errors.WithMessagef(err, "invalid training configuration (-config=%q)", *flagConfig)
	}
	return cfg, nil
}

func train(cfg trainer.Config, table *valuetable.Table) (*trainer.Result, error) {
	fmt.Printf("Training: alpha=%g, epsilon=%g, episodes=%d\n", cfg.Alpha, cfg.Epsilon, cfg.Episodes)
	t := trainer.New(cfg, table)
	spinner := spinning.New(globalCtx)
	defer spinner.Done()
	var runningScore float64
	start := time.Now()
	return t.Train(globalCtx, func(r trainer.EpisodeResult) {
		runningScore = curve.MovingAverage(runningScore, r.Score.Total, 0.999, r.Episode)
		if cfg.SkipEvaluation {
			spinner.SetStatus("Episode %d/%d, epsilon=%.4f, %s",
				r.Episode, cfg.Episodes, r.Epsilon, time.Since(start).Round(time.Second))
			return
		}
		spinner.SetStatus("Episode %d/%d, epsilon=%.4f, score(avg)=%.3f/%d, %s",
			r.Episode, cfg.Episodes, r.Epsilon, runningScore, cfg.EvalGames, time.Since(start).Round(time.Second))
	})
}

// report prints the learning curve summary and writes the chart if -curve_html is set.
func report(result *trainer.Result) {
	if result == nil {
		return
	}
	fmt.Printf("\nTraining episodes: %d wins, %d draws, %d losses; final epsilon=%.4f\n",
		result.Wins, result.Draws, result.Losses, result.FinalEpsilon)
	if len(result.Scores) == 0 {
		return
	}
	fmt.Printf("Learning curve: %s\n", curve.Summary(result.Scores, *flagCurveWindow))
	if klog.V(1).Enabled() {
		means := curve.RollingMean(result.Scores, *flagCurveWindow)
		step := max(len(means)/20, 1)
		for ii := 0; ii < len(means); ii += step {
			klog.Infof("  episode %7d: %.3f", ii+*flagCurveWindow, means[ii])
		}
	}
	if *flagCurveHTML == "" {
		return
	}
	f := must.M1(os.Create(*flagCurveHTML))
	must.M(curve.WriteHTML(f, "Tic-tac-toe TD learning", result.Scores, *flagCurveWindow))
	must.M(f.Close())
	fmt.Printf("Learning curve chart written to %q\n", *flagCurveHTML)
}

// createPlayers from -ai, playing the agent's mark, and -watch_opponent, playing the opponent's mark.
func createPlayers(table *valuetable.Table, rng *rand.Rand) (aiPlayer, opponent players.Player, err error) {
	aiPlayer, err = players.New(*flagAI, table, rng, ai.AgentMark)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "invalid -ai")
	}
	opponent, err = players.New(*flagWatchOpponent, table, rng, ai.OpponentMark)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "invalid -watch_opponent")
	}
	klog.V(1).Infof("AI player: %s, watch opponent: %s", aiPlayer, opponent)
	return
}

// watch prints numGames of agent against opponent.
func watch(agent, opponent players.Player, rng *rand.Rand, numGames int) {
	ui := cli.NewTerminal()
	for game := range numGames {
		if globalCtx.Err() != nil {
			return
		}
		board := state.NewBoard()
		turn := ai.RandomFirst(rng.IntN)
		fmt.Printf("\nGame %d: %s vs %s, %s starts\n", game+1, agent, opponent, turn)
		for !board.IsFinished() {
			player := agent
			if turn == opponent.Mark() {
				player = opponent
			}
			board.Act(player.Play(board), turn)
			turn = turn.Opponent()
		}
		ui.PrintBoard(board)
		ui.PrintWinner(board.Classify())
	}
}

// playHuman loops over matches of a human against agent until the input is closed.
func playHuman(agent players.Player, rng *rand.Rand) error {
	ui := cli.NewTerminal()
	human := agent.Mark().Opponent()
	ui.PrintInstructions(human)
	for globalCtx.Err() == nil {
		var first state.Cell
		switch *flagFirst {
		case "human":
			first = human
		case "ai":
			first = agent.Mark()
		case "random":
			first = ai.RandomFirst(rng.IntN)
		default:
			return errors.Errorf("invalid -first=%q, valid values are \"human\", \"ai\" or \"random\"", *flagFirst)
		}
		fmt.Printf("\nNew game, %s starts\n", first)
		outcome, err := ui.PlayMatch(agent, first)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return nil
			}
			return err
		}
		klog.V(1).Infof("Match finished: %s", outcome)
	}
	return nil
}
