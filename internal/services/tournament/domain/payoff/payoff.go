// Package payoff scores one turn of the prisoner's dilemma.
package payoff

import "github.com/louisbranch/dilemma/internal/services/tournament/domain/strategy"

// Payoff values for a single turn.
const (
	// MutualCooperation is paid to each agent when neither defects.
	MutualCooperation = 5
	// MutualDefection is paid to each agent when both defect.
	MutualDefection = 0
	// Temptation is paid to a lone defector.
	Temptation = 3
	// Sucker is paid to a lone cooperator.
	Sucker = -1
)

// Score returns the score deltas for moves a and b played in the same turn.
// Score(a, b) and Score(b, a) are component-swapped.
func Score(a, b strategy.Move) (int, int) {
	switch {
	case a == strategy.Cooperate && b == strategy.Cooperate:
		return MutualCooperation, MutualCooperation
	case a == strategy.Cooperate && b == strategy.Defect:
		return Sucker, Temptation
	case a == strategy.Defect && b == strategy.Cooperate:
		return Temptation, Sucker
	default:
		return MutualDefection, MutualDefection
	}
}
