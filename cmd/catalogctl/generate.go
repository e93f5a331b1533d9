package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"bookstore-catalog/internal/shared/datagen"

	"github.com/urfave/cli/v3"
)

const maxGenerate = 100000

// generateFlags returns fresh flags per command; cli keeps parsed state on
// the flag values.
func generateFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "number of entities to generate",
			Value:   10,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "write to `FILE` instead of stdout",
		},
		&cli.BoolFlag{
			Name:  "compact",
			Usage: "emit compact JSON",
		},
		&cli.Uint64Flag{
			Name:  "seed",
			Usage: "random seed; 0 picks one",
		},
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "write generated books or authors as a JSON array",
		Commands: []*cli.Command{
			{
				Name:  "books",
				Usage: "generate books",
				Flags: generateFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					n, err := countFlag(cmd)
					if err != nil {
						return err
					}
					return writeJSON(cmd, newGenerator(cmd).Books(n))
				},
			},
			{
				Name:  "authors",
				Usage: "generate authors",
				Flags: generateFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					n, err := countFlag(cmd)
					if err != nil {
						return err
					}
					return writeJSON(cmd, newGenerator(cmd).Authors(n))
				},
			},
		},
	}
}

func countFlag(cmd *cli.Command) (int, error) {
	n := int(cmd.Int("count"))
	if n < 1 || n > maxGenerate {
		return 0, fmt.Errorf("count must be between 1 and %d", maxGenerate)
	}
	return n, nil
}

func newGenerator(cmd *cli.Command) *datagen.Generator {
	seed := cmd.Uint64("seed")
	if seed == 0 {
		seed = rand.Uint64()
	}
	return datagen.New(seed)
}

func writeJSON(cmd *cli.Command, v any) error {
	var w io.Writer = cmd.Root().Writer
	if path := cmd.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	if !cmd.Bool("compact") {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
