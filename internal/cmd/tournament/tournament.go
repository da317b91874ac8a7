// Package tournament implements the tournament command.
package tournament

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"golang.org/x/text/message"

	platformcmd "github.com/louisbranch/dilemma/internal/platform/cmd"
	apperrors "github.com/louisbranch/dilemma/internal/platform/errors"
	"github.com/louisbranch/dilemma/internal/platform/i18n/catalog"
	"github.com/louisbranch/dilemma/internal/services/tournament/app"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/agent"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/strategy"
	"github.com/louisbranch/dilemma/internal/tools/scenario"
)

// Config holds tournament command configuration.
type Config struct {
	Entrants       string `env:"DILEMMA_ENTRANTS"              envDefault:"NICE=2,GREEDY=2,TIT_FOR_TAT=2,NICE_UNTIL_NOT=2,AVERAGE_OF_OPPONENT=2,RANDOM_FROM_OPPONENT_HISTORY=2,RANDOM=2"`
	RandomAgents   int    `env:"DILEMMA_RANDOM_AGENTS"`
	Threshold      int    `env:"DILEMMA_ELIMINATION_THRESHOLD" envDefault:"-10"`
	MaxRounds      int    `env:"DILEMMA_MAX_ROUNDS"            envDefault:"100"`
	Seed           int64  `env:"DILEMMA_SEED"`
	Workers        int    `env:"DILEMMA_WORKERS"               envDefault:"1"`
	Scenario       string `env:"DILEMMA_SCENARIO_FILE"`
	Locale         string `env:"DILEMMA_LOCALE"                envDefault:"en-US"`
	Verbose        bool   `env:"DILEMMA_VERBOSE"`
	Versus         string `env:"DILEMMA_VERSUS"`
	ListStrategies bool
}

// ParseConfig parses env defaults and then flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Entrants, "entrants", cfg.Entrants, "comma-separated STRATEGY=COUNT pairs")
	fs.IntVar(&cfg.RandomAgents, "random", cfg.RandomAgents, "number of agents with a randomly chosen strategy")
	fs.IntVar(&cfg.Threshold, "threshold", cfg.Threshold, "score at or below which a match ends")
	fs.IntVar(&cfg.MaxRounds, "max-rounds", cfg.MaxRounds, "maximum turns per match")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 generates one)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "matches played concurrently per bracket round")
	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to a Lua tournament file")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for messages (en-US, pt-BR)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log bracket progress")
	fs.StringVar(&cfg.Versus, "versus", cfg.Versus, "play turn by turn against the named strategy")
	fs.BoolVar(&cfg.ListStrategies, "list-strategies", cfg.ListStrategies, "describe the available strategies and exit")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEntrants reads a "STRATEGY=COUNT,..." roster. A bare strategy name
// counts once. Order is preserved.
func ParseEntrants(value string) ([]agent.Entry, error) {
	var entries []agent.Entry
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, rawCount, hasCount := strings.Cut(part, "=")
		count := 1
		if hasCount {
			n, err := strconv.Atoi(strings.TrimSpace(rawCount))
			if err != nil || n <= 0 {
				return nil, apperrors.InvalidConfiguration(fmt.Sprintf("entrant count for %s must be a positive integer", strings.TrimSpace(name)))
			}
			count = n
		}
		s, err := strategy.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, agent.Entry{Strategy: s, Count: count})
	}
	return entries, nil
}

// Run executes the tournament command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	printer := catalog.Default().Printer(cfg.Locale)
	if cfg.ListStrategies {
		listStrategies(printer, out)
		return nil
	}

	appCfg, err := appConfig(cfg, log.New(errOut, "", 0))
	if err != nil {
		return err
	}
	report, err := app.Run(ctx, appCfg)
	if err != nil {
		return err
	}
	printReport(printer, out, report)
	return nil
}

// appConfig merges flags with the scenario file. Settings the scenario sets
// win; a scenario that declares any entrants replaces the flag roster.
func appConfig(cfg Config, logger *log.Logger) (app.Config, error) {
	entries, err := ParseEntrants(cfg.Entrants)
	if err != nil {
		return app.Config{}, err
	}
	appCfg := app.Config{
		Name:         "tournament",
		Entries:      entries,
		RandomAgents: cfg.RandomAgents,
		Threshold:    cfg.Threshold,
		MaxRounds:    cfg.MaxRounds,
		Seed:         cfg.Seed,
		Workers:      cfg.Workers,
		Logger:       logger,
		Verbose:      cfg.Verbose,
	}
	if strings.TrimSpace(cfg.Scenario) == "" {
		return appCfg, nil
	}

	t, err := scenario.LoadFromFile(cfg.Scenario)
	if err != nil {
		return app.Config{}, err
	}
	appCfg.Name = t.Name
	if len(t.Entries) > 0 || t.RandomAgents > 0 {
		appCfg.Entries = t.Entries
		appCfg.RandomAgents = t.RandomAgents
	}
	if t.Threshold != nil {
		appCfg.Threshold = *t.Threshold
	}
	if t.MaxRounds != nil {
		appCfg.MaxRounds = *t.MaxRounds
	}
	if t.Seed != nil {
		appCfg.Seed = *t.Seed
	}
	if t.Workers != nil {
		appCfg.Workers = *t.Workers
	}
	return appCfg, nil
}

func listStrategies(printer *message.Printer, out io.Writer) {
	fmt.Fprintln(out, printer.Sprintf("strategies.header", len(strategy.Automatic)))
	for _, s := range strategy.Automatic {
		fmt.Fprintf(out, "  %s\n", printer.Sprintf(s.MessageKey()))
	}
}

func printReport(printer *message.Printer, out io.Writer, report app.Report) {
	fmt.Fprintln(out, printer.Sprintf("report.header"))
	fmt.Fprintln(out, printer.Sprintf("report.note"))
	fmt.Fprintln(out, printer.Sprintf("report.name", report.Name))
	fmt.Fprintln(out, printer.Sprintf("report.seed", strconv.FormatInt(report.Seed, 10)))
	fmt.Fprintln(out, printer.Sprintf("report.rounds", report.Rounds))
	fmt.Fprintln(out)

	winner := report.Winner()
	for _, a := range report.Standings {
		if a == winner {
			continue
		}
		fmt.Fprintln(out, reportLine(printer, a))
	}
	if winner != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, printer.Sprintf("report.winner"))
		fmt.Fprintln(out, reportLine(printer, winner))
	}
}

func reportLine(printer *message.Printer, a *agent.Agent) string {
	return printer.Sprintf("report.line", a.Score, a.EliminationRound, a.Strategy.String())
}
