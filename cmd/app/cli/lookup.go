package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/statismics/backend/internal/model"
	"github.com/statismics/backend/internal/render"
	"github.com/statismics/backend/internal/service"
	"github.com/statismics/backend/internal/util"
)

const (
	FormatJSON = "json"
	FormatSVG  = "svg"
)

type LookupDeps struct {
	fx.In

	LookupService *service.Lookup
}

func LookupCommand() *cli.Command {
	return &cli.Command{
		Name:  "lookup",
		Usage: "look up a GitHub user once and print the result",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "user",
				Aliases:  []string{"u"},
				Usage:    "GitHub username to look up",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "directory to write the result to; stdout when empty (json only)",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "output format: json or svg",
				Value: FormatJSON,
			},
		},
		Action: func(c *cli.Context) error {
			username := c.String("user")
			if !util.IsGitHubHandle(username) {
				return errors.Errorf("%q is not a valid GitHub username", username)
			}
			format := c.String("format")
			if format != FormatJSON && format != FormatSVG {
				return errors.Errorf("unknown format %q", format)
			}
			if format == FormatSVG && c.String("out") == "" {
				return errors.New("--out is required for svg output")
			}

			var deps LookupDeps
			stop, err := Start(c.Context, fx.Populate(&deps))
			if err != nil {
				return err
			}
			defer stop()

			snapshot, err := deps.LookupService.Run(c.Context, username)
			if err != nil {
				notice := service.NoticeFor(username, err)
				return errors.Wrap(err, notice.Title)
			}

			switch format {
			case FormatSVG:
				return writeSVGs(c.String("out"), snapshot)
			default:
				return writeJSON(c.String("out"), snapshot)
			}
		},
	}
}

func writeJSON(dir string, snapshot *model.Snapshot) error {
	var w io.Writer = os.Stdout
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "failed to create output directory")
		}
		f, err := os.Create(filepath.Join(dir, snapshot.Profile.Login+".json"))
		if err != nil {
			return errors.Wrap(err, "failed to create output file")
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snapshot)
}

func writeSVGs(dir string, snapshot *model.Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}

	for i := range snapshot.Charts {
		desc := &snapshot.Charts[i]
		path := filepath.Join(dir, desc.ID+".svg")
		if err := writeSVG(path, desc); err != nil {
			return err
		}
		log.Info().
			Str("evt.name", "cli.lookup.chart").
			Str("chart", desc.ID).
			Str("path", path).
			Msg("chart written")
	}
	return nil
}

func writeSVG(path string, desc *model.ChartDescriptor) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create chart file")
	}
	defer f.Close()

	return render.SVG(f, desc)
}
