// Package strategy implements the per-turn decision rules of the iterated
// prisoner's dilemma.
//
// Decide is a pure function of the strategy, both move histories and, for
// the randomized strategies, the supplied source. Human is a placeholder for
// moves supplied by a controller; Decide refuses to play it.
package strategy
