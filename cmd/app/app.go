package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	cliapp "github.com/statismics/backend/cmd/app/cli"
	"github.com/statismics/backend/cmd/app/server"
	"github.com/statismics/backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "statismics",
		Usage:       "GitHub user statistics",
		Description: "Looks up a GitHub user and charts their repositories. Built with Go, fiber, go-github and go.uber.org/fx.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			cliapp.LookupCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
