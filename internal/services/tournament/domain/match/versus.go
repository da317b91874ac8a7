package match

import (
	apperrors "github.com/louisbranch/dilemma/internal/platform/errors"
	"github.com/louisbranch/dilemma/internal/random"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/agent"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/strategy"
)

// Versus is an open-ended session between an automatic opponent and a HUMAN
// agent. There is no round cap or threshold; the caller stops when it wants.
type Versus struct {
	Opponent *agent.Agent
	Human    *agent.Agent
	rng      random.Source
}

// NewVersus resets both agents and starts a session.
func NewVersus(opponent, human *agent.Agent, rng random.Source) (*Versus, error) {
	switch {
	case opponent == nil || human == nil:
		return nil, apperrors.InvalidConfiguration("a versus session needs two agents")
	case human.Strategy != strategy.Human:
		return nil, apperrors.InvalidConfiguration("the human seat must play the HUMAN strategy")
	case opponent.Strategy == strategy.Human || !opponent.Strategy.Valid():
		return nil, apperrors.InvalidConfiguration("the opponent must play an automatic strategy")
	case rng == nil:
		return nil, apperrors.InvalidConfiguration("a versus session needs a random source")
	}
	opponent.Reset()
	human.Reset()
	return &Versus{Opponent: opponent, Human: human, rng: rng}, nil
}

// Play parses the person's input and plays one turn with it. Invalid input
// returns an INVALID_MOVE error and leaves the session untouched.
func (v *Versus) Play(input string) (Turn, error) {
	move, err := strategy.ParseMove(input)
	if err != nil {
		return Turn{}, err
	}
	return v.PlayMove(move)
}

// PlayMove plays one turn with an already parsed move.
func (v *Versus) PlayMove(move strategy.Move) (Turn, error) {
	return PlayTurn(v.Opponent, v.Human, Supplied{B: &move}, v.rng)
}
