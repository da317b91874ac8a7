// Package match plays the iterated dilemma between two agents.
//
// Run plays a bounded match and picks a winner; PlayTurn plays a single
// simultaneous turn; Versus drives an open-ended session against an agent
// whose moves are supplied by a person.
package match
