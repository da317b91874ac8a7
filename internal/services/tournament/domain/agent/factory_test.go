package agent

import (
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/louisbranch/dilemma/internal/platform/errors"
	"github.com/louisbranch/dilemma/internal/random"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/strategy"
)

func sequentialIDs() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("agent-%d", n), nil
	}
}

func isInvalidConfiguration(err error) bool {
	return errors.Is(err, apperrors.New(apperrors.CodeInvalidConfiguration, ""))
}

func TestBuildFixed(t *testing.T) {
	factory := NewFactory(random.New(1), sequentialIDs())
	agents, err := factory.BuildFixed(strategy.TitForTat, 3)
	if err != nil {
		t.Fatalf("BuildFixed returned error: %v", err)
	}
	if len(agents) != 3 {
		t.Fatalf("agents = %d, want 3", len(agents))
	}
	for i, a := range agents {
		if a.Strategy != strategy.TitForTat {
			t.Fatalf("agent %d strategy = %v, want TIT_FOR_TAT", i, a.Strategy)
		}
		if want := fmt.Sprintf("agent-%d", i+1); a.ID != want {
			t.Fatalf("agent %d id = %q, want %q", i, a.ID, want)
		}
		if a.Score != 0 || a.Turns() != 0 || a.Eliminated || a.EliminationRound != 0 {
			t.Fatalf("agent %d is not fresh: %+v", i, a)
		}
	}
	if agents[0] == agents[1] {
		t.Fatal("expected distinct agents")
	}
}

func TestBuildFixedRejectsBadInput(t *testing.T) {
	factory := NewFactory(random.New(1), sequentialIDs())
	for _, count := range []int{0, -2} {
		if _, err := factory.BuildFixed(strategy.Nice, count); !isInvalidConfiguration(err) {
			t.Fatalf("BuildFixed(count=%d) error = %v, want invalid configuration", count, err)
		}
	}
	if _, err := factory.BuildFixed(strategy.Strategy(0), 1); !isInvalidConfiguration(err) {
		t.Fatalf("BuildFixed(unknown) error = %v, want invalid configuration", err)
	}
}

func TestBuildFixedPropagatesIDError(t *testing.T) {
	want := errors.New("no entropy")
	factory := NewFactory(random.New(1), func() (string, error) { return "", want })
	if _, err := factory.BuildFixed(strategy.Nice, 1); !errors.Is(err, want) {
		t.Fatalf("BuildFixed error = %v, want %v", err, want)
	}
}

func TestBuildRandomNeverPicksHuman(t *testing.T) {
	factory := NewFactory(random.New(11), sequentialIDs())
	seen := map[strategy.Strategy]bool{}
	for i := 0; i < 500; i++ {
		a, err := factory.BuildRandom()
		if err != nil {
			t.Fatalf("BuildRandom returned error: %v", err)
		}
		if a.Strategy == strategy.Human {
			t.Fatal("BuildRandom picked HUMAN")
		}
		seen[a.Strategy] = true
	}
	if len(seen) != len(strategy.Automatic) {
		t.Fatalf("saw %d strategies over 500 draws, want %d", len(seen), len(strategy.Automatic))
	}
}

func TestBuildRandomIsSeeded(t *testing.T) {
	first := NewFactory(random.New(4), sequentialIDs())
	second := NewFactory(random.New(4), sequentialIDs())
	for i := 0; i < 20; i++ {
		a, _ := first.BuildRandom()
		b, _ := second.BuildRandom()
		if a.Strategy != b.Strategy {
			t.Fatalf("draw %d: %v vs %v", i, a.Strategy, b.Strategy)
		}
	}
}

func TestBuildRoster(t *testing.T) {
	factory := NewFactory(random.New(1), sequentialIDs())
	roster, err := factory.BuildRoster([]Entry{
		{Strategy: strategy.Nice, Count: 2},
		{Strategy: strategy.Greedy, Count: 1},
	}, 2)
	if err != nil {
		t.Fatalf("BuildRoster returned error: %v", err)
	}
	if len(roster) != 5 {
		t.Fatalf("roster = %d, want 5", len(roster))
	}
	if roster[0].Strategy != strategy.Nice || roster[1].Strategy != strategy.Nice || roster[2].Strategy != strategy.Greedy {
		t.Fatalf("unexpected roster order: %v %v %v", roster[0].Strategy, roster[1].Strategy, roster[2].Strategy)
	}
}

func TestBuildRosterRejectsEmptyAndNegative(t *testing.T) {
	factory := NewFactory(random.New(1), sequentialIDs())
	if _, err := factory.BuildRoster(nil, 0); !isInvalidConfiguration(err) {
		t.Fatalf("empty roster error = %v, want invalid configuration", err)
	}
	if _, err := factory.BuildRoster(nil, -1); !isInvalidConfiguration(err) {
		t.Fatalf("negative random count error = %v, want invalid configuration", err)
	}
	if _, err := factory.BuildRoster([]Entry{{Strategy: strategy.Nice, Count: 0}}, 3); !isInvalidConfiguration(err) {
		t.Fatalf("zero count entry error = %v, want invalid configuration", err)
	}
}

func TestNewFactoryDefaultsToRandomIDs(t *testing.T) {
	agents, err := NewFactory(random.New(1), nil).BuildFixed(strategy.Nice, 2)
	if err != nil {
		t.Fatalf("BuildFixed returned error: %v", err)
	}
	if agents[0].ID == "" || agents[0].ID == agents[1].ID {
		t.Fatalf("ids = %q, %q; want distinct non-empty", agents[0].ID, agents[1].ID)
	}
}
