// Package main provides a CLI for running Iterated Prisoner's Dilemma
// tournaments.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	platformcmd "github.com/louisbranch/dilemma/internal/platform/cmd"
	"github.com/louisbranch/dilemma/internal/platform/config"

	tournamentcmd "github.com/louisbranch/dilemma/internal/cmd/tournament"
)

func main() {
	cfg, err := tournamentcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceTournament, func(ctx context.Context) error {
		if cfg.Versus != "" {
			return tournamentcmd.RunVersus(ctx, cfg, os.Stdin, os.Stdout)
		}
		return tournamentcmd.Run(ctx, cfg, os.Stdout, os.Stderr)
	})
	platformcmd.ExitOnError(err, cfg.Locale)
}
