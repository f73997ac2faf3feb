package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	chlog "github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/urfave/cli/v2"

	"github.com/mklimuk/fanctl/cmd/fanctl/console"
)

var version string
var commit string
var date string

var cfg Config

func main() {
	os.Exit(run())
}

func run() int {
	app := cli.NewApp()
	app.Name = "fanctl"
	app.EnableBashCompletion = true
	app.Version = fmt.Sprintf("%s-%s-%s", version, date, commit)
	app.Usage = "Commander Core XT fan controller cli"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "enable verbose logging",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "optional configuration file",
		},
	}
	app.Before = func(ctx *cli.Context) error {
		if path := ctx.String("config"); path != "" {
			var err error
			cfg, err = LoadConfig(path)
			if err != nil {
				return console.Exit(1, "could not load config: %s", console.Red(err))
			}
		}
		charm := chlog.NewWithOptions(os.Stdout, chlog.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			TimeFormat:      time.DateTime,
		})
		charm.SetColorProfile(termenv.TrueColor)
		charm.SetLevel(chlog.InfoLevel)
		if ctx.Bool("verbose") || cfg.Debug {
			charm.SetLevel(chlog.DebugLevel)
		}
		slog.SetDefault(slog.New(charm))
		return nil
	}
	app.Commands = cli.Commands{
		&statusCmd,
		&sensorsCmd,
		&fanCmd,
		&modeCmd,
		&shellCmd,
		&usbCmd,
	}
	err := app.Run(os.Args)
	if err != nil {
		var exerr cli.ExitCoder
		if errors.As(err, &exerr) {
			log.Printf("unexpected error: %v", err)
			return exerr.ExitCode()
		}
		return 1
	}
	return 0
}
