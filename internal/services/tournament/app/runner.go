package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/dilemma/internal/platform/errors"
	"github.com/louisbranch/dilemma/internal/platform/id"
	"github.com/louisbranch/dilemma/internal/random"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/agent"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/bracket"
)

const tracerName = "github.com/louisbranch/dilemma/internal/services/tournament/app"

// Config describes one tournament run.
type Config struct {
	Name         string
	Entries      []agent.Entry
	RandomAgents int
	Threshold    int
	MaxRounds    int
	// Seed pins the run; zero draws a fresh seed.
	Seed    int64
	Workers int
	Logger  *log.Logger
	Verbose bool
	// NewSeed overrides seed generation, mainly for tests.
	NewSeed func() (int64, error)
}

// Report is the outcome of a run.
type Report struct {
	Name       string
	Seed       int64
	SeedSource random.SeedSource
	Rounds     int
	// Standings lists every agent in elimination order, winner last.
	Standings []*agent.Agent
}

// Winner returns the tournament winner.
func (r Report) Winner() *agent.Agent {
	if len(r.Standings) == 0 {
		return nil
	}
	return r.Standings[len(r.Standings)-1]
}

// Runner plays tournaments.
type Runner struct {
	logger  *log.Logger
	verbose bool
	tracer  trace.Tracer
}

// NewRunner builds a runner from cfg's logging settings.
func NewRunner(cfg Config) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}
	return &Runner{
		logger:  logger,
		verbose: cfg.Verbose,
		tracer:  otel.Tracer(tracerName),
	}
}

// Run plays the tournament described by cfg.
func Run(ctx context.Context, cfg Config) (Report, error) {
	return NewRunner(cfg).Run(ctx, cfg)
}

// Run plays the tournament described by cfg.
func (r *Runner) Run(ctx context.Context, cfg Config) (report Report, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	if cfg.MaxRounds <= 0 {
		return Report{}, apperrors.InvalidConfiguration(fmt.Sprintf("max rounds must be positive, got %d", cfg.MaxRounds))
	}
	if cfg.Workers < 0 {
		return Report{}, apperrors.InvalidConfiguration(fmt.Sprintf("workers must not be negative, got %d", cfg.Workers))
	}

	seed, source, err := random.ResolveSeed(cfg.Seed, cfg.NewSeed)
	if err != nil {
		return Report{}, fmt.Errorf("resolve seed: %w", err)
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "tournament"
	}
	_, span := r.tracer.Start(ctx, "tournament.run", trace.WithAttributes(
		attribute.String("tournament.name", name),
		attribute.Int64("tournament.seed", seed),
		attribute.Int("tournament.threshold", cfg.Threshold),
		attribute.Int("tournament.max_rounds", cfg.MaxRounds),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
		}
		span.End()
	}()

	rng := random.New(seed)
	// Identifiers get their own stream so their bytes never mirror bracket draws.
	factory := agent.NewFactory(rng, id.NewGenerator(random.Derive(rng, 1)[0]))
	roster, err := factory.BuildRoster(cfg.Entries, cfg.RandomAgents)
	if err != nil {
		return Report{}, err
	}
	span.SetAttributes(attribute.Int("tournament.agents", len(roster)))
	r.logf("%s: %d agents, seed %d (%s)", name, len(roster), seed, source)

	rounds := 0
	standings, err := bracket.Run(roster, bracket.Options{
		Threshold: cfg.Threshold,
		MaxRounds: cfg.MaxRounds,
		Rand:      rng,
		Workers:   cfg.Workers,
		OnRound: func(round bracket.Round) {
			rounds = round.Number
			attrs := []attribute.KeyValue{
				attribute.Int("bracket.round", round.Number),
				attribute.Int("bracket.matches", len(round.Matches)),
			}
			if round.Bye != nil {
				attrs = append(attrs, attribute.String("bracket.bye", round.Bye.ID))
			}
			span.AddEvent("bracket.round", trace.WithAttributes(attrs...))
			r.logf("round %d: %d matches, bye=%t", round.Number, len(round.Matches), round.Bye != nil)
			for _, result := range round.Matches {
				r.logf("  %s (%s) %d beat %s (%s) %d in %d turns",
					result.Winner.ID, result.Winner.Strategy, result.Winner.Score,
					result.Loser.ID, result.Loser.Strategy, result.Loser.Score, result.Turns)
			}
		},
	})
	if err != nil {
		return Report{}, err
	}

	report = Report{
		Name:       name,
		Seed:       seed,
		SeedSource: source,
		Rounds:     rounds,
		Standings:  standings,
	}
	winner := report.Winner()
	span.SetAttributes(attribute.String("tournament.winner", winner.Strategy.String()))
	r.logf("%s: winner %s (%s) after %d rounds", name, winner.ID, winner.Strategy, rounds)
	return report, nil
}

func (r *Runner) logf(format string, args ...any) {
	if !r.verbose || r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}
