package tournament

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/louisbranch/dilemma/internal/platform/errors"
	"github.com/louisbranch/dilemma/internal/platform/i18n/catalog"
	"github.com/louisbranch/dilemma/internal/platform/id"
	"github.com/louisbranch/dilemma/internal/random"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/agent"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/match"
	"github.com/louisbranch/dilemma/internal/services/tournament/domain/strategy"
)

// RunVersus plays an open-ended session against cfg.Versus, reading one move
// per line from in until "q" or end of input.
func RunVersus(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	if in == nil {
		in = strings.NewReader("")
	}
	if out == nil {
		out = io.Discard
	}
	if ctx == nil {
		ctx = context.Background()
	}

	opponentStrategy, err := strategy.ParseStrategy(cfg.Versus)
	if err != nil {
		return err
	}
	seed, _, err := random.ResolveSeed(cfg.Seed, nil)
	if err != nil {
		return fmt.Errorf("resolve seed: %w", err)
	}
	rng := random.New(seed)
	streams := random.Derive(rng, 2)
	factory := agent.NewFactory(rng, id.NewGenerator(streams[0]))
	opponents, err := factory.BuildFixed(opponentStrategy, 1)
	if err != nil {
		return err
	}
	humans, err := factory.BuildFixed(strategy.Human, 1)
	if err != nil {
		return err
	}
	session, err := match.NewVersus(opponents[0], humans[0], streams[1])
	if err != nil {
		return err
	}

	printer := catalog.Default().Printer(cfg.Locale)
	fmt.Fprintln(out, printer.Sprintf("versus.intro", opponentStrategy.String()))
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, printer.Sprintf("versus.prompt"))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "q" || line == "quit" {
			break
		}
		turn, err := session.Play(line)
		if apperrors.IsCode(err, apperrors.CodeInvalidMove) {
			fmt.Fprintln(out, apperrors.UserMessage(err, cfg.Locale))
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out, printer.Sprintf("versus.turn",
			turn.Number, turn.MoveB.String(), turn.DeltaB, turn.MoveA.String(), turn.DeltaA))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read moves: %w", err)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, printer.Sprintf("versus.score", session.Human.Score, session.Opponent.Score))
	return nil
}
