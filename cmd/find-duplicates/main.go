package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"go-cat-finder/internal/dedup"
	apperrors "go-cat-finder/internal/errors"
	"go-cat-finder/internal/logger"
)

func main() {
	app := &cli.App{
		Name:      "find-duplicates",
		Usage:     "Find duplicate images by comparing file size and SHA-256 checksum",
		ArgsUsage: "<target> <search-dir>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "show verbose output",
			},
			&cli.BoolFlag{
				Name:    "show-checksums",
				Aliases: []string{"c"},
				Usage:   "show checksums in output",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err.Error())
		os.Exit(apperrors.GetExitCode(err))
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 2 {
		cli.ShowAppHelp(c)
		return cli.Exit("expected a target file and a search directory", 2)
	}
	target := c.Args().Get(0)
	searchDir := c.Args().Get(1)

	logger.SetVerbose(c.Bool("verbose"))
	showChecksums := c.Bool("show-checksums")

	_, err := dedup.FindDuplicates(target, searchDir, func(m dedup.Match) {
		if showChecksums {
			fmt.Printf("%s [SHA-256: %s]\n", m.Path, m.Checksum)
		} else {
			fmt.Println(m.Path)
		}
	})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}
