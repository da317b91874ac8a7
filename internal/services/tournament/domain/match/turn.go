package match

import (
	"github.com/louisbranch/dilemma/internal/random"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/agent"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/payoff"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/strategy"
)

// Supplied carries externally chosen moves for HUMAN agents. A nil side is
// decided by the agent's strategy.
type Supplied struct {
	A *strategy.Move
	B *strategy.Move
}

// Turn is the outcome of one simultaneous turn.
type Turn struct {
	Number int
	MoveA  strategy.Move
	MoveB  strategy.Move
	DeltaA int
	DeltaB int
}

// PlayTurn decides both moves against the histories as they stood before the
// turn, then records the moves and payoffs on both agents.
func PlayTurn(a, b *agent.Agent, supplied Supplied, rng random.Source) (Turn, error) {
	moveA, err := decide(a, b, supplied.A, rng)
	if err != nil {
		return Turn{}, err
	}
	moveB, err := decide(b, a, supplied.B, rng)
	if err != nil {
		return Turn{}, err
	}

	deltaA, deltaB := payoff.Score(moveA, moveB)
	a.Record(moveA, deltaA)
	b.Record(moveB, deltaB)

	return Turn{
		Number: a.Turns(),
		MoveA:  moveA,
		MoveB:  moveB,
		DeltaA: deltaA,
		DeltaB: deltaB,
	}, nil
}

func decide(self, opponent *agent.Agent, supplied *strategy.Move, rng random.Source) (strategy.Move, error) {
	if self.Strategy == strategy.Human && supplied != nil {
		return *supplied, nil
	}
	return strategy.Decide(self.Strategy, opponent.History, self.History, rng)
}
