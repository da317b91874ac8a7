// Package agent defines the tournament participant and the factory that
// builds rosters of them.
package agent

import "github.com/louisbranch/dilemma/internal/services/tournament/domain/strategy"

// Agent is one participant: a fixed strategy plus the mutable state of its
// current or most recent match.
type Agent struct {
	ID       string
	Strategy strategy.Strategy
	// History holds the agent's own moves since the last Reset.
	History []strategy.Move
	// Score is the sum of payoff deltas since the last Reset.
	Score int
	// EliminationRound is the bracket round the agent lost in, 0 if never.
	EliminationRound int
	Eliminated       bool
}

// New returns a fresh agent.
func New(id string, s strategy.Strategy) *Agent {
	return &Agent{ID: id, Strategy: s}
}

// Reset clears the score and history ahead of a new match.
func (a *Agent) Reset() {
	a.Score = 0
	a.History = nil
}

// Record appends a played move and its payoff.
func (a *Agent) Record(move strategy.Move, delta int) {
	a.History = append(a.History, move)
	a.Score += delta
}

// Turns returns the number of moves played since the last Reset.
func (a *Agent) Turns() int {
	return len(a.History)
}

// LastMove returns the agent's most recent move, if any.
func (a *Agent) LastMove() (strategy.Move, bool) {
	if len(a.History) == 0 {
		return strategy.Defect, false
	}
	return a.History[len(a.History)-1], true
}

// Eliminate marks the agent as having lost a match.
func (a *Agent) Eliminate() {
	a.Eliminated = true
}

// RecordElimination stores the bracket round the agent was knocked out in.
// The round is written once; later calls are ignored.
func (a *Agent) RecordElimination(round int) {
	if a.EliminationRound != 0 || round <= 0 {
		return
	}
	a.EliminationRound = round
	a.Eliminated = true
}
