package agent

import (
	"fmt"

	apperrors "github.com/louisbranch/dilemma/internal/platform/errors"
	"github.com/louisbranch/dilemma/internal/platform/id"
	"github.com/louisbranch/dilemma/internal/random"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/strategy"
)

// Entry requests Count agents playing Strategy.
type Entry struct {
	Strategy strategy.Strategy
	Count    int
}

// Factory builds agents. Random strategy picks are drawn from its source.
type Factory struct {
	rng   random.Source
	newID func() (string, error)
}

// NewFactory returns a factory drawing from rng. A nil newID uses id.NewID.
func NewFactory(rng random.Source, newID func() (string, error)) *Factory {
	if newID == nil {
		newID = id.NewID
	}
	return &Factory{rng: rng, newID: newID}
}

// BuildFixed returns count fresh agents playing s.
func (f *Factory) BuildFixed(s strategy.Strategy, count int) ([]*Agent, error) {
	if !s.Valid() {
		return nil, apperrors.InvalidConfiguration(fmt.Sprintf("unknown strategy %d", int(s)))
	}
	if count <= 0 {
		return nil, apperrors.InvalidConfiguration(fmt.Sprintf("%s count must be positive, got %d", s, count))
	}
	agents := make([]*Agent, 0, count)
	for i := 0; i < count; i++ {
		a, err := f.build(s)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, nil
}

// BuildRandom returns an agent playing one of the automatic strategies,
// chosen uniformly.
func (f *Factory) BuildRandom() (*Agent, error) {
	return f.build(strategy.Automatic[f.rng.Intn(len(strategy.Automatic))])
}

// BuildRoster builds every entry in order, then randomCount randomly typed
// agents.
func (f *Factory) BuildRoster(entries []Entry, randomCount int) ([]*Agent, error) {
	if randomCount < 0 {
		return nil, apperrors.InvalidConfiguration(fmt.Sprintf("random agent count must not be negative, got %d", randomCount))
	}
	var roster []*Agent
	for _, entry := range entries {
		agents, err := f.BuildFixed(entry.Strategy, entry.Count)
		if err != nil {
			return nil, err
		}
		roster = append(roster, agents...)
	}
	for i := 0; i < randomCount; i++ {
		a, err := f.BuildRandom()
		if err != nil {
			return nil, err
		}
		roster = append(roster, a)
	}
	if len(roster) == 0 {
		return nil, apperrors.InvalidConfiguration("the roster is empty")
	}
	return roster, nil
}

func (f *Factory) build(s strategy.Strategy) (*Agent, error) {
	agentID, err := f.newID()
	if err != nil {
		return nil, fmt.Errorf("build %s agent: %w", s, err)
	}
	return New(agentID, s), nil
}
