package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"bookstore-catalog/internal/domains/loadtest"

	"github.com/urfave/cli/v3"
)

func loadtestCommand() *cli.Command {
	return &cli.Command{
		Name:  "loadtest",
		Usage: "drive load against a running catalog API",
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "run a scenario in-process and print a report",
				Action: runLoadTest,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "base-url",
						Usage:   "catalog API base URL",
						Value:   "http://localhost:8080",
						Sources: cli.EnvVars("CATALOG_BASE_URL"),
					},
					&cli.StringFlag{
						Name:    "scenario",
						Aliases: []string{"s"},
						Usage:   "builtin scenario name or path to a YAML scenario",
						Value:   "smoke",
					},
					&cli.IntFlag{Name: "vus", Usage: "override virtual users"},
					&cli.DurationFlag{Name: "duration", Aliases: []string{"d"}, Usage: "override duration"},
					&cli.FloatFlag{Name: "rps", Usage: "override the request rate cap"},
					&cli.DurationFlag{Name: "timeout", Usage: "per-request timeout", Value: 10 * time.Second},
					&cli.BoolFlag{Name: "json", Usage: "print the result as JSON"},
				},
			},
			{
				Name:  "scenarios",
				Usage: "list builtin scenarios",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					w := cmd.Root().Writer
					for _, sc := range loadtest.Builtins() {
						fmt.Fprintf(w, "%-8s %3d VUs %8s  %s\n", sc.Name, sc.VUs, sc.Duration, sc.Description)
					}
					return nil
				},
			},
		},
	}
}

// resolveScenario accepts a builtin name or a .yaml/.yml file and applies
// flag overrides.
func resolveScenario(cmd *cli.Command) (loadtest.Scenario, error) {
	name := cmd.String("scenario")

	var (
		sc  loadtest.Scenario
		err error
	)
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		sc, err = loadtest.LoadScenario(name)
	default:
		sc, err = loadtest.Builtin(name)
	}
	if err != nil {
		return sc, err
	}

	if cmd.IsSet("vus") {
		sc.VUs = int(cmd.Int("vus"))
	}
	if cmd.IsSet("duration") {
		sc.Duration = cmd.Duration("duration")
	}
	if cmd.IsSet("rps") {
		sc.RPS = cmd.Float("rps")
	}
	return sc, sc.Validate()
}

func runLoadTest(ctx context.Context, cmd *cli.Command) error {
	sc, err := resolveScenario(cmd)
	if err != nil {
		return err
	}

	runner := loadtest.NewRunner(cmd.String("base-url"), cmd.Duration("timeout"))
	res, runErr := runner.Run(ctx, sc)
	if res == nil {
		return runErr
	}

	w := cmd.Root().Writer
	if cmd.Bool("json") {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		writeReport(w, res)
	}

	switch {
	case errors.Is(runErr, context.Canceled):
		return cli.Exit("load test interrupted; partial results shown", 130)
	case runErr != nil:
		return runErr
	case !res.Passed:
		return cli.Exit("thresholds failed", 2)
	}
	return nil
}
