package scenario

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"

	apperrors "github.com/louisbranch/dilemma/internal/platform/errors"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/agent"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/strategy"
)

const tournamentTypeName = "tournament"

// Tournament is the definition produced by a scenario script.
type Tournament struct {
	Name         string
	Entries      []agent.Entry
	RandomAgents int
	Threshold    *int
	MaxRounds    *int
	Seed         *int64
	Workers      *int
}

// LoadFromFile runs the Lua script at path and returns its tournament.
func LoadFromFile(path string) (*Tournament, error) {
	state := newState()
	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, invalidScenario(path, "load lua", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return run(state, path, name)
}

// Load runs source as a scenario script. name labels errors and becomes the
// tournament name when the script does not set one.
func Load(name, source string) (*Tournament, error) {
	state := newState()
	if err := lua.LoadString(state, source); err != nil {
		return nil, invalidScenario(name, "load lua", err)
	}
	return run(state, name, name)
}

func newState() *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerTournamentType(state)
	registerTournamentConstructor(state)
	return state
}

func run(state *lua.State, label, fallbackName string) (*Tournament, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, invalidScenario(label, "run lua", err)
	}
	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, invalidScenario(label, "script must return Tournament", nil)
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	tournament, ok := ud.(*Tournament)
	if !ok || tournament == nil {
		return nil, invalidScenario(label, "script returned invalid Tournament", nil)
	}
	if strings.TrimSpace(tournament.Name) == "" {
		tournament.Name = fallbackName
	}
	return tournament, nil
}

func invalidScenario(label, reason string, cause error) error {
	detail := fmt.Sprintf("scenario %s: %s", label, reason)
	if cause != nil {
		detail = fmt.Sprintf("%s: %v", detail, cause)
	}
	return apperrors.WrapWithMetadata(
		apperrors.CodeInvalidConfiguration,
		detail,
		map[string]string{"Reason": detail},
		cause,
	)
}

func registerTournamentType(state *lua.State) {
	lua.NewMetaTable(state, tournamentTypeName)
	state.NewTable()
	lua.SetFunctions(state, tournamentMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerTournamentConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, tournamentConstructor, 0)
	state.SetGlobal("Tournament")
}

var tournamentConstructor = []lua.RegistryFunction{
	{Name: "new", Function: tournamentNew},
}

var tournamentMethods = []lua.RegistryFunction{
	{Name: "entrants", Function: tournamentEntrants},
	{Name: "random", Function: tournamentRandom},
	{Name: "threshold", Function: tournamentThreshold},
	{Name: "max_rounds", Function: tournamentMaxRounds},
	{Name: "seed", Function: tournamentSeed},
	{Name: "workers", Function: tournamentWorkers},
}

func tournamentNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	state.PushUserData(&Tournament{Name: name})
	lua.SetMetaTableNamed(state, tournamentTypeName)
	return 1
}

// tournamentEntrants adds count agents of one strategy; count defaults to 1.
func tournamentEntrants(state *lua.State) int {
	tournament := checkTournament(state)
	name := lua.CheckString(state, 2)
	count := lua.OptInteger(state, 3, 1)
	s, err := strategy.ParseStrategy(name)
	if err != nil {
		lua.ArgumentError(state, 2, fmt.Sprintf("unknown strategy %q", name))
		return 0
	}
	if s == strategy.Human {
		lua.ArgumentError(state, 2, "HUMAN agents cannot enter a tournament")
		return 0
	}
	if count <= 0 {
		lua.ArgumentError(state, 3, "count must be positive")
		return 0
	}
	tournament.Entries = append(tournament.Entries, agent.Entry{Strategy: s, Count: count})
	return returnSelf(state)
}

func tournamentRandom(state *lua.State) int {
	tournament := checkTournament(state)
	count := lua.CheckInteger(state, 2)
	if count < 0 {
		lua.ArgumentError(state, 2, "count must not be negative")
		return 0
	}
	tournament.RandomAgents += count
	return returnSelf(state)
}

func tournamentThreshold(state *lua.State) int {
	tournament := checkTournament(state)
	value := lua.CheckInteger(state, 2)
	tournament.Threshold = &value
	return returnSelf(state)
}

func tournamentMaxRounds(state *lua.State) int {
	tournament := checkTournament(state)
	value := lua.CheckInteger(state, 2)
	if value <= 0 {
		lua.ArgumentError(state, 2, "max rounds must be positive")
		return 0
	}
	tournament.MaxRounds = &value
	return returnSelf(state)
}

func tournamentSeed(state *lua.State) int {
	tournament := checkTournament(state)
	value := int64(lua.CheckInteger(state, 2))
	tournament.Seed = &value
	return returnSelf(state)
}

func tournamentWorkers(state *lua.State) int {
	tournament := checkTournament(state)
	value := lua.CheckInteger(state, 2)
	if value < 0 {
		lua.ArgumentError(state, 2, "workers must not be negative")
		return 0
	}
	tournament.Workers = &value
	return returnSelf(state)
}

func checkTournament(state *lua.State) *Tournament {
	ud := lua.CheckUserData(state, 1, tournamentTypeName)
	if tournament, ok := ud.(*Tournament); ok && tournament != nil {
		return tournament
	}
	lua.ArgumentError(state, 1, "tournament expected")
	return nil
}

func returnSelf(state *lua.State) int {
	state.PushValue(1)
	return 1
}
