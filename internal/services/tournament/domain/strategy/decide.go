package strategy

import (
	"fmt"

	apperrors "github.com/louisbranch/dilemma/internal/platform/errors"
	"github.com/louisbranch/dilemma/internal/random"
)

// Decide returns the next move for s given the opponent's and the agent's own
// moves so far. rng is only drawn from by Random and
// RandomFromOpponentHistory.
//
// Human returns an UNSUPPORTED_STRATEGY_FOR_AUTO_DECISION error. An
// undeclared strategy value is a programming error and panics.
func Decide(s Strategy, opponent, own []Move, rng random.Source) (Move, error) {
	switch s {
	case Nice:
		return Cooperate, nil
	case Greedy:
		return Defect, nil
	case TitForTat:
		if len(opponent) == 0 {
			return Cooperate, nil
		}
		return opponent[len(opponent)-1], nil
	case NiceUntilNot:
		return niceUntilNot(opponent, own), nil
	case AverageOfOpponent:
		return averageOfOpponent(opponent), nil
	case RandomFromOpponentHistory:
		if len(opponent) == 0 {
			return Cooperate, nil
		}
		return opponent[rng.Intn(len(opponent))], nil
	case Random:
		return Move(rng.Intn(2) == 1), nil
	case Human:
		return Defect, apperrors.WithMetadata(apperrors.CodeUnsupportedStrategy,
			"human moves must be supplied by the caller",
			map[string]string{"Strategy": s.String()})
	default:
		panic(fmt.Sprintf("strategy: undeclared strategy %d", int(s)))
	}
}

// niceUntilNot mirrors the opponent while it last cooperated itself; after a
// defection it only returns to cooperation once the opponent has cooperated
// twice in a row. No own move yet is not the same as a defection.
func niceUntilNot(opponent, own []Move) Move {
	if len(opponent) == 0 {
		return Cooperate
	}
	if len(own) > 0 && own[len(own)-1] == Cooperate {
		return opponent[len(opponent)-1]
	}
	if len(opponent) == 1 {
		return Defect
	}
	if opponent[len(opponent)-1] == Cooperate && opponent[len(opponent)-2] == Cooperate {
		return Cooperate
	}
	return Defect
}

// averageOfOpponent cooperates unless the opponent has defected strictly
// more often than it cooperated.
func averageOfOpponent(opponent []Move) Move {
	tally := 0
	for _, move := range opponent {
		if move == Cooperate {
			tally++
		} else {
			tally--
		}
	}
	return Move(tally >= 0)
}
