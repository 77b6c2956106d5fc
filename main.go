package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"git.sr.ht/~spc/go-log"
	"github.com/urfave/cli/v2"

	"github.com/capdb/capdiff/internal/conf"
	"github.com/capdb/capdiff/internal/l10n"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// newApp builds the command line interface, with flag defaults taken from
// the loaded configuration.
func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "capdiff"
	app.Version = Version
	app.Usage = l10n.T("compare capability database exports")
	app.HideHelpCommand = true

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "log-level",
			Value: levelName(conf.Configuration.LogLevel),
			Usage: l10n.T("set log level to `LEVEL` (DEBUG, INFO, WARN, ERROR)"),
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "diff",
			Usage:       l10n.T("Compare the data contained within two .ini files (regardless of order or format)"),
			UsageText:   "capdiff diff [command options] LEFT [RIGHT]",
			Description: l10n.T("When RIGHT is omitted or does not exist, a baseline is generated from the resource directory and used instead."),
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "resources",
					Value: conf.Configuration.ResourceDir,
					Usage: l10n.T("read baseline resources from `DIR`"),
				},
				&cli.StringFlag{
					Name:  "cache-dir",
					Value: conf.Configuration.CacheDir,
					Usage: l10n.T("write generated baselines below `DIR`"),
				},
				&cli.BoolFlag{
					Name:  "no-sort",
					Value: !conf.Configuration.Sort,
					Usage: l10n.T("keep sections and properties in file order"),
				},
			},
			Action: diffAction,
		},
	}

	app.Before = beforeAction

	return app
}

// beforeAction configures logging for every command.
func beforeAction(c *cli.Context) error {
	level, err := parseLevel(c.String("log-level"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(0)
	log.SetPrefix("capdiff: ")
	log.SetLevel(toLogLevel(level))

	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported log level %q", s)
	}
}

func levelName(level slog.Level) string {
	switch {
	case level <= slog.LevelDebug:
		return "DEBUG"
	case level <= slog.LevelInfo:
		return "INFO"
	case level <= slog.LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

func toLogLevel(level slog.Level) log.Level {
	switch {
	case level <= slog.LevelDebug:
		return log.LevelDebug
	case level <= slog.LevelInfo:
		return log.LevelInfo
	case level <= slog.LevelWarn:
		return log.LevelWarn
	default:
		return log.LevelError
	}
}
