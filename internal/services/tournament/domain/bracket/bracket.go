// Package bracket runs a single-elimination tournament over a roster of
// agents.
package bracket

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/louisbranch/dilemma/internal/platform/errors"
	"github.com/louisbranch/dilemma/internal/random"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/agent"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/match"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/strategy"
)

// Options controls a tournament run.
type Options struct {
	// Threshold and MaxRounds bound every match, see match.Options.
	Threshold int
	MaxRounds int
	// Rand drives the shuffles and seeds every match.
	Rand random.Source
	// Workers caps how many matches of a round run at once. Values below 1
	// run matches one at a time. Results do not depend on it.
	Workers int
	// OnRound, when set, is called after every bracket round.
	OnRound func(Round)
}

// Round summarizes one pass of pairing and reduction.
type Round struct {
	Number int
	// Bye is the agent carried forward without playing, if the round was odd.
	Bye     *agent.Agent
	Matches []match.Result
}

// Run plays the bracket until one agent remains and returns every agent in
// elimination order with the winner last. Each loser gets the 1-based number
// of the round it lost in; the winner never does.
//
// Every round shuffles the survivors, sets aside the middle agent as a bye
// when the count is odd, and pairs the rest from the outside in. Match
// sources are drawn from Rand in pairing order before any match is played.
func Run(agents []*agent.Agent, opts Options) ([]*agent.Agent, error) {
	if err := validate(agents, opts); err != nil {
		return nil, err
	}

	survivors := append([]*agent.Agent(nil), agents...)
	eliminated := make([]*agent.Agent, 0, len(agents))

	for number := 1; len(survivors) > 1; number++ {
		opts.Rand.Shuffle(len(survivors), func(i, j int) {
			survivors[i], survivors[j] = survivors[j], survivors[i]
		})

		round, err := playRound(number, survivors, opts)
		if err != nil {
			return nil, fmt.Errorf("bracket round %d: %w", number, err)
		}

		next := make([]*agent.Agent, 0, len(round.Matches)+1)
		if round.Bye != nil {
			next = append(next, round.Bye)
		}
		for _, result := range round.Matches {
			next = append(next, result.Winner)
			result.Loser.RecordElimination(number)
			eliminated = append(eliminated, result.Loser)
		}
		if opts.OnRound != nil {
			opts.OnRound(round)
		}
		survivors = next
	}

	return append(eliminated, survivors[0]), nil
}

func playRound(number int, survivors []*agent.Agent, opts Options) (Round, error) {
	n := len(survivors)
	round := Round{Number: number, Matches: make([]match.Result, n/2)}
	if n%2 == 1 {
		round.Bye = survivors[n/2]
	}

	sources := random.Derive(opts.Rand, n/2)
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range round.Matches {
		i := i
		g.Go(func() error {
			result, err := match.Run(survivors[i], survivors[n-1-i], match.Options{
				Threshold: opts.Threshold,
				MaxRounds: opts.MaxRounds,
				Rand:      sources[i],
			})
			if err != nil {
				return err
			}
			round.Matches[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Round{}, err
	}
	return round, nil
}

func validate(agents []*agent.Agent, opts Options) error {
	if len(agents) < 2 {
		return apperrors.InvalidConfiguration(fmt.Sprintf("a tournament needs at least two agents, got %d", len(agents)))
	}
	if opts.MaxRounds <= 0 {
		return apperrors.InvalidConfiguration("max rounds must be positive")
	}
	if opts.Rand == nil {
		return apperrors.InvalidConfiguration("a tournament needs a random source")
	}

	seen := make(map[*agent.Agent]struct{}, len(agents))
	for i, a := range agents {
		if a == nil {
			return apperrors.InvalidConfiguration(fmt.Sprintf("agent %d is missing", i))
		}
		if _, ok := seen[a]; ok {
			return apperrors.InvalidConfiguration(fmt.Sprintf("agent %s is entered twice", a.ID))
		}
		seen[a] = struct{}{}
		if a.Eliminated {
			return apperrors.InvalidConfiguration(fmt.Sprintf("agent %s was already eliminated", a.ID))
		}
		if a.Strategy == strategy.Human {
			return apperrors.WithMetadata(apperrors.CodeUnsupportedStrategy,
				fmt.Sprintf("agent %s plays %s, which cannot enter a bracket", a.ID, a.Strategy),
				map[string]string{"Strategy": a.Strategy.String()})
		}
		if !a.Strategy.Valid() {
			return apperrors.InvalidConfiguration(fmt.Sprintf("agent %s has an unknown strategy", a.ID))
		}
	}
	return nil
}
