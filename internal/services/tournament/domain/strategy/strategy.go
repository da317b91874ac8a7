package strategy

import (
	"strings"

	apperrors "github.com/louisbranch/dilemma/internal/platform/errors"
)

// Move is one simultaneous choice in a turn.
type Move bool

const (
	// Cooperate withholds accusation of the other agent.
	Cooperate Move = true
	// Defect accuses the other agent.
	Defect Move = false
)

func (m Move) String() string {
	if m == Cooperate {
		return "cooperate"
	}
	return "defect"
}

// ParseMove reads a controller-supplied move. It accepts "c", "cooperate",
// "d" and "defect" in any case; anything else is an INVALID_MOVE error.
func ParseMove(input string) (Move, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "c", "cooperate":
		return Cooperate, nil
	case "d", "defect":
		return Defect, nil
	default:
		return Defect, apperrors.WithMetadata(apperrors.CodeInvalidMove,
			"move must be cooperate or defect",
			map[string]string{"Input": input})
	}
}

// Strategy identifies the decision rule an agent follows.
type Strategy int

const (
	Nice Strategy = iota + 1
	Greedy
	TitForTat
	NiceUntilNot
	AverageOfOpponent
	RandomFromOpponentHistory
	Random
	Human
)

// Automatic lists the strategies Decide can play, in declaration order.
var Automatic = []Strategy{
	Nice,
	Greedy,
	TitForTat,
	NiceUntilNot,
	AverageOfOpponent,
	RandomFromOpponentHistory,
	Random,
}

var names = map[Strategy]string{
	Nice:                      "NICE",
	Greedy:                    "GREEDY",
	TitForTat:                 "TIT_FOR_TAT",
	NiceUntilNot:              "NICE_UNTIL_NOT",
	AverageOfOpponent:         "AVERAGE_OF_OPPONENT",
	RandomFromOpponentHistory: "RANDOM_FROM_OPPONENT_HISTORY",
	Random:                    "RANDOM",
	Human:                     "HUMAN",
}

var aliases = map[string]Strategy{
	"TITFORTAT": TitForTat,
	"NICEUNTIL": NiceUntilNot,
	"AVESTRAT":  AverageOfOpponent,
	"RANSTRAT":  RandomFromOpponentHistory,
	"USER":      Human,
}

func (s Strategy) String() string {
	if name, ok := names[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// MessageKey returns the catalog key describing the strategy.
func (s Strategy) MessageKey() string {
	return "strategy." + strings.ToLower(s.String())
}

// Valid reports whether s is a declared strategy.
func (s Strategy) Valid() bool {
	_, ok := names[s]
	return ok
}

// ParseStrategy resolves a strategy by name, ignoring case, dashes and
// spaces. The short names from the classic console version are accepted too.
func ParseStrategy(name string) (Strategy, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	for s, n := range names {
		if n == normalized {
			return s, nil
		}
	}
	if s, ok := aliases[normalized]; ok {
		return s, nil
	}
	return 0, apperrors.InvalidConfiguration("unknown strategy " + name)
}
