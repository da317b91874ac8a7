package app

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/dilemma/internal/platform/errors"
	"github.com/louisbranch/dilemma/internal/platform/id"
	"github.com/louisbranch/dilemma/internal/random"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/agent"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/strategy"
)

func baseConfig() Config {
	return Config{
		Name: "classic",
		Entries: []agent.Entry{
			{Strategy: strategy.Nice, Count: 3},
			{Strategy: strategy.Greedy, Count: 2},
			{Strategy: strategy.TitForTat, Count: 2},
		},
		RandomAgents: 2,
		Threshold:    -10,
		MaxRounds:    50,
		Seed:         42,
	}
}

func TestRunWithFixedSeed(t *testing.T) {
	report, err := Run(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Seed != 42 {
		t.Fatalf("seed = %d, want 42", report.Seed)
	}
	if report.SeedSource != random.SeedSourceFixed {
		t.Fatalf("seed source = %q, want %q", report.SeedSource, random.SeedSourceFixed)
	}
	if len(report.Standings) != 9 {
		t.Fatalf("standings = %d, want 9", len(report.Standings))
	}
	// 9 -> 5 -> 3 -> 2 -> 1
	if report.Rounds != 4 {
		t.Fatalf("rounds = %d, want 4", report.Rounds)
	}
	winner := report.Winner()
	if winner == nil || winner.Eliminated {
		t.Fatalf("winner = %+v, want a surviving agent", winner)
	}
	if winner.EliminationRound != 0 {
		t.Fatalf("winner elimination round = %d, want 0", winner.EliminationRound)
	}
	for _, a := range report.Standings[:len(report.Standings)-1] {
		if !a.Eliminated || a.EliminationRound < 1 || a.EliminationRound > report.Rounds {
			t.Fatalf("agent %s eliminated=%t round=%d, want eliminated in 1..%d", a.ID, a.Eliminated, a.EliminationRound, report.Rounds)
		}
	}
}

func TestRunIsReproducible(t *testing.T) {
	first, err := Run(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	cfg := baseConfig()
	cfg.Workers = 4
	second, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	for i := range first.Standings {
		a, b := first.Standings[i], second.Standings[i]
		if a.ID != b.ID || a.Strategy != b.Strategy || a.Score != b.Score || a.EliminationRound != b.EliminationRound {
			t.Fatalf("standing %d = %+v, want %+v", i, b, a)
		}
	}
}

func TestRunGeneratesSeedWhenUnset(t *testing.T) {
	cfg := baseConfig()
	cfg.Seed = 0
	cfg.NewSeed = func() (int64, error) { return 7, nil }

	report, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Seed != 7 || report.SeedSource != random.SeedSourceGenerated {
		t.Fatalf("seed = %d (%s), want 7 (generated)", report.Seed, report.SeedSource)
	}
}

func TestRunPropagatesSeedError(t *testing.T) {
	cfg := baseConfig()
	cfg.Seed = 0
	boom := errors.New("no entropy")
	cfg.NewSeed = func() (int64, error) { return 0, boom }

	if _, err := Run(context.Background(), cfg); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	tcs := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero max rounds", mutate: func(c *Config) { c.MaxRounds = 0 }},
		{name: "negative workers", mutate: func(c *Config) { c.Workers = -1 }},
		{name: "empty roster", mutate: func(c *Config) { c.Entries = nil; c.RandomAgents = 0 }},
		{name: "single agent", mutate: func(c *Config) {
			c.Entries = []agent.Entry{{Strategy: strategy.Nice, Count: 1}}
			c.RandomAgents = 0
		}},
		{name: "negative random", mutate: func(c *Config) { c.RandomAgents = -2 }},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			cfg := baseConfig()
			tc.mutate(&cfg)
			_, err := Run(context.Background(), cfg)
			if !apperrors.IsCode(err, apperrors.CodeInvalidConfiguration) {
				t.Fatalf("err = %v, want %s", err, apperrors.CodeInvalidConfiguration)
			}
		})
	}
}

func TestRunRejectsHumanEntrants(t *testing.T) {
	cfg := baseConfig()
	cfg.Entries = append(cfg.Entries, agent.Entry{Strategy: strategy.Human, Count: 1})

	_, err := Run(context.Background(), cfg)
	if !apperrors.IsCode(err, apperrors.CodeUnsupportedStrategy) {
		t.Fatalf("err = %v, want %s", err, apperrors.CodeUnsupportedStrategy)
	}
}

func TestRunHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, baseConfig()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want %v", err, context.Canceled)
	}
}

func TestRunLogsOnlyWhenVerbose(t *testing.T) {
	var quiet bytes.Buffer
	cfg := baseConfig()
	cfg.Logger = log.New(&quiet, "", 0)
	if _, err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("quiet run: %v", err)
	}
	if quiet.Len() != 0 {
		t.Fatalf("quiet output = %q, want empty", quiet.String())
	}

	var loud bytes.Buffer
	cfg.Logger = log.New(&loud, "", 0)
	cfg.Verbose = true
	if _, err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("verbose run: %v", err)
	}
	out := loud.String()
	for _, want := range []string{"classic: 9 agents, seed 42 (fixed)", "round 1: 4 matches, bye=true", "winner"} {
		if !strings.Contains(out, want) {
			t.Fatalf("verbose output missing %q:\n%s", want, out)
		}
	}
}

func TestReportWinnerOnEmptyStandings(t *testing.T) {
	if got := (Report{}).Winner(); got != nil {
		t.Fatalf("winner = %v, want nil", got)
	}
}

func TestRunDrawsIdentifiersFromSeparateStream(t *testing.T) {
	report, err := Run(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// IDs read straight from the seed's own stream would share bytes with
	// the bracket's draws.
	sameStream := id.NewGenerator(random.New(42))
	shared := map[string]bool{}
	for range report.Standings {
		v, err := sameStream()
		if err != nil {
			t.Fatalf("generate id: %v", err)
		}
		shared[v] = true
	}

	seen := map[string]bool{}
	for _, a := range report.Standings {
		if seen[a.ID] {
			t.Fatalf("duplicate id %s", a.ID)
		}
		seen[a.ID] = true
		if shared[a.ID] {
			t.Fatalf("id %s came from the bracket stream", a.ID)
		}
	}
}
