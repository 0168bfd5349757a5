package main

import (
	"errors"
	"os"
	"sort"

	"dccdump/pkg/app"
	"dccdump/pkg/app/config"

	"github.com/urfave/cli/v2"
	"github.com/womat/debug"
)

func main() {
	exitCode := 1
	defer func() {
		os.Exit(exitCode)
	}()

	// cfg holds the application configuration
	cfg := config.NewConfig()

	cliApp := &cli.App{
		Name:    app.MODULE,
		Usage:   "decode NMRA DCC packets from DS202 buffer captures",
		Version: app.VERSION,
		Description: "Parse a buffer file captured from the track signal with a DS202 pocket oscilloscope" +
			"\n and print the decoded locomotive instructions." +
			"\n Timing anomalies and corrupt packets are reported on the diagnostic stream.",
		UsageText: "dccdump [--conf <file>] [-A|-B] [--timebase <timebase>] FILE" +
			"\n\nEXAMPLE:" +
			"\n\tdecode channel B of a capture recorded with a 0.2ms timebase" +
			"\n\t\tdccdump -B --timebase 0.2ms DATA001.BUF",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Destination: &cfg.Flag.ConfigFile, Usage: "load configuration from `FILE`"},
			&cli.StringFlag{Name: "log", Aliases: []string{"l"}, Destination: &cfg.Flag.LogLevel, Usage: "`LEVEL` defines the log level (fatal|info|warning|error|debug|trace)"},
			&cli.BoolFlag{Name: "A", Destination: &cfg.Flag.ChannelA, Usage: "use channel A"},
			&cli.BoolFlag{Name: "B", Destination: &cfg.Flag.ChannelB, Usage: "use channel B"},
			&cli.StringFlag{Name: "timebase", Destination: &cfg.Flag.Timebase, Usage: "`TIMEBASE` the buffer was recorded with"},
			&cli.BoolFlag{Name: "output-samples", Destination: &cfg.Flag.OutputSamples, Usage: "output samples in buffer"},
			&cli.BoolFlag{Name: "output-bits", Destination: &cfg.Flag.OutputBits, Usage: "output raw bitstream"},
			&cli.BoolFlag{Name: "filter", Destination: &cfg.Flag.Filter, Usage: "smooth samples before decoding"},
			&cli.BoolFlag{Name: "no-stats", Destination: &cfg.Flag.NoStats, Usage: "do not output stats"},
		},
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() != 1 {
				return errors.New("expected exactly one buffer FILE")
			}
			cfg.Filename = ctx.Args().First()

			if err := cfg.LoadConfig(); err != nil {
				return err
			}

			debug.SetDebug(cfg.Debug.File, cfg.Debug.Flag)
			defer func() {
				_ = cfg.Debug.File.Close()
			}()

			a, err := app.New(cfg, os.Stdout)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			return a.Run()
		},
	}

	// we expect to have more command line flags in the future - sort them
	sort.Sort(cli.FlagsByName(cliApp.Flags))
	sort.Sort(cli.CommandsByName(cliApp.Commands))

	if err := cliApp.Run(os.Args); err != nil {
		debug.FatalLog.Print(err)
		return
	}

	exitCode = 0
}
