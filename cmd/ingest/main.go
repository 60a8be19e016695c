package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/DanielWijono/minton3t-ranking/app"
	ingestservice "github.com/DanielWijono/minton3t-ranking/app/modules/ingest/application"
	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/normalize"
	"github.com/DanielWijono/minton3t-ranking/app/observability"
	"github.com/DanielWijono/minton3t-ranking/config"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newCLI(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCLI(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "ingest",
		Usage:     "import leaderboard and MVP spreadsheets",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
			&cli.StringFlag{Name: "log-level", Value: "warn", Usage: "debug, info, warn or error"},
		},
		Commands: []*cli.Command{
			{
				Name:      "preview",
				Usage:     "parse and normalize a file without writing it",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "flow", Value: string(normalize.FlowLeaderboard), Usage: "leaderboard or mvp"},
				},
				Action: func(c *cli.Context) error {
					name, data, err := readFile(c)
					if err != nil {
						return err
					}
					obs := newObservability(c, stderr)
					svc := ingestservice.NewIngestService(nil, nil, nil, nil, obs.Logger, obs.Metrics, obs.Tracer)

					preview, err := svc.Preview(c.Context, normalize.Flow(c.String("flow")), name, data)
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, preview)
				},
			},
			{
				Name:      "leaderboard",
				Usage:     "replace the leaderboard with a file",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					name, data, err := readFile(c)
					if err != nil {
						return err
					}
					svc, closeFn, err := openService(c, stderr)
					if err != nil {
						return err
					}
					defer closeFn()

					result, err := svc.SyncLeaderboard(c.Context, name, data)
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, result)
				},
			},
			{
				Name:      "mvp",
				Usage:     "replace the entries of one MVP period with a file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "month", Required: true, Usage: "1-12"},
					&cli.IntFlag{Name: "year", Required: true},
				},
				Action: func(c *cli.Context) error {
					name, data, err := readFile(c)
					if err != nil {
						return err
					}
					svc, closeFn, err := openService(c, stderr)
					if err != nil {
						return err
					}
					defer closeFn()

					result, err := svc.SyncMVP(c.Context, c.Int("month"), c.Int("year"), name, data)
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, result)
				},
			},
		},
	}
}

func newObservability(c *cli.Context, w io.Writer) observability.Observability {
	return observability.NewWithWriter(observability.Config{
		ServiceName: "minton3t-ingest",
		LogLevel:    c.String("log-level"),
	}, w)
}

// openService connects to the configured database and returns the ingest service.
func openService(c *cli.Context, stderr io.Writer) (ingestservice.Service, func(), error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	application, err := app.NewOfflineApp(c.Context, cfg, newObservability(c, stderr))
	if err != nil {
		return nil, nil, err
	}
	return application.Modules.Ingest.GetService(), application.Close, nil
}

func readFile(c *cli.Context) (string, []byte, error) {
	path := c.Args().First()
	if path == "" {
		return "", nil, fmt.Errorf("missing file argument")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return filepath.Base(path), data, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
