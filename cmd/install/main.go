package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/ZeroAd-06/MaaEnd/agent/go-service/installer"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("Install failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "install",
		Usage:     "assemble the MaaEnd distribution folder",
		ArgsUsage: "[version]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Usage:   "project directory holding deps/, assets/ and agent/",
				Value:   ".",
				EnvVars: []string{"MAAEND_INSTALL_ROOT"},
			},
			&cli.StringFlag{
				Name:    "out",
				Usage:   "install directory (default: <root>/install)",
				EnvVars: []string{"MAAEND_INSTALL_OUT"},
			},
			&cli.StringFlag{
				Name:    "tag",
				Usage:   "version written to interface.json when no positional version is given",
				Value:   installer.DefaultVersion,
				EnvVars: []string{"MAAEND_VERSION"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log every install step",
			},
		},
		Action: func(c *cli.Context) error {
			level := zerolog.InfoLevel
			if c.Bool("verbose") {
				level = zerolog.DebugLevel
			}
			cfg := installer.Config{
				Root:    c.String("root"),
				Out:     c.String("out"),
				Version: c.String("tag"),
			}
			if c.Args().Present() {
				cfg.Version = c.Args().First()
			}
			return installer.Run(cfg, log.Logger.Level(level), c.App.Writer)
		},
	}
}
