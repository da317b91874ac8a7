package match

import (
	"fmt"

	apperrors "github.com/louisbranch/dilemma/internal/platform/errors"
	"github.com/louisbranch/dilemma/internal/random"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/agent"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/strategy"
)

// MoveSource supplies the moves of HUMAN agents during Run.
type MoveSource interface {
	SupplyMove(turn int, self, opponent *agent.Agent) (strategy.Move, error)
}

// MoveSourceFunc adapts a function to MoveSource.
type MoveSourceFunc func(turn int, self, opponent *agent.Agent) (strategy.Move, error)

// SupplyMove calls f.
func (f MoveSourceFunc) SupplyMove(turn int, self, opponent *agent.Agent) (strategy.Move, error) {
	return f(turn, self, opponent)
}

// Options bounds a match.
type Options struct {
	// Threshold ends the match as soon as either score is at or below it.
	Threshold int
	// MaxRounds caps the number of turns.
	MaxRounds int
	// Rand feeds the randomized strategies.
	Rand random.Source
	// Moves supplies HUMAN moves. Optional when neither agent is HUMAN.
	Moves MoveSource
}

// Result names the winner and loser of a match.
type Result struct {
	Winner *agent.Agent
	Loser  *agent.Agent
	Turns  int
}

// Run resets both agents and plays turns until MaxRounds turns have been
// played or either score drops to Threshold or below. The check runs before
// every turn, so a Threshold of zero or more ends the match before it starts.
//
// The higher score wins. On a tie b loses. The loser is marked eliminated;
// the elimination round is left to the caller.
//
// A HUMAN seat needs Moves; this is checked before either agent is touched.
// If Moves fails partway, the error is returned and both agents keep the
// history and score of the turns already played.
func Run(a, b *agent.Agent, opts Options) (Result, error) {
	if err := validate(a, b, opts); err != nil {
		return Result{}, err
	}

	a.Reset()
	b.Reset()

	for round := 1; round <= opts.MaxRounds && a.Score > opts.Threshold && b.Score > opts.Threshold; round++ {
		supplied, err := supply(round, a, b, opts.Moves)
		if err != nil {
			return Result{}, err
		}
		if _, err := PlayTurn(a, b, supplied, opts.Rand); err != nil {
			return Result{}, err
		}
	}

	result := Result{Winner: a, Loser: b, Turns: a.Turns()}
	if b.Score > a.Score {
		result.Winner, result.Loser = b, a
	}
	result.Loser.Eliminate()
	return result, nil
}

func validate(a, b *agent.Agent, opts Options) error {
	switch {
	case a == nil || b == nil:
		return apperrors.InvalidConfiguration("a match needs two agents")
	case a == b:
		return apperrors.InvalidConfiguration("an agent cannot play itself")
	case opts.MaxRounds <= 0:
		return apperrors.InvalidConfiguration("max rounds must be positive")
	case opts.Rand == nil:
		return apperrors.InvalidConfiguration("a match needs a random source")
	}
	if opts.Moves == nil {
		for _, seat := range []*agent.Agent{a, b} {
			if seat.Strategy == strategy.Human {
				return apperrors.WithMetadata(apperrors.CodeUnsupportedStrategy,
					fmt.Sprintf("agent %s plays %s but no move source was given", seat.ID, seat.Strategy),
					map[string]string{"Strategy": seat.Strategy.String()})
			}
		}
	}
	return nil
}

func supply(round int, a, b *agent.Agent, moves MoveSource) (Supplied, error) {
	var supplied Supplied
	if moves == nil {
		return supplied, nil
	}
	if a.Strategy == strategy.Human {
		move, err := moves.SupplyMove(round, a, b)
		if err != nil {
			return Supplied{}, err
		}
		supplied.A = &move
	}
	if b.Strategy == strategy.Human {
		move, err := moves.SupplyMove(round, b, a)
		if err != nil {
			return Supplied{}, err
		}
		supplied.B = &move
	}
	return supplied, nil
}
