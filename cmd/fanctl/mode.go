package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/fanctl/cmd/fanctl/console"
)

var modeCmd = cli.Command{
	Name:      "mode",
	Usage:     "switch the controller between software and hardware mode",
	ArgsUsage: "<software|hardware>",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
		&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "do not ask for confirmation"},
	},
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		mode := c.Args().First()
		switch mode {
		case "software", "hardware":
		default:
			return console.Exit(1, "mode must be %s or %s", console.White("software"), console.White("hardware"))
		}
		if mode == "software" && !c.Bool("yes") {
			// in software mode fans stop responding to the onboard curve
			confirmed, err := console.Confirm("software mode suspends the onboard fan curve, continue?")
			if err != nil {
				return console.Exit(1, "prompt error: %s", console.Red(err))
			}
			if !confirmed {
				console.Printf("%s aborted\n", console.PictoStop)
				return nil
			}
		}
		dev, err := attach(ctx)
		if err != nil {
			return console.Exit(1, "controller attach error: %s", console.Red(err))
		}
		if mode == "hardware" {
			// Detach restores hardware mode and closes the transport
			err = dev.Detach(ctx)
			if err != nil {
				return console.Exit(1, "error switching to hardware mode: %s", console.Red(err))
			}
			console.Printf("%s controller in hardware mode\n", console.PictoPlug)
			return nil
		}
		// attach already switched to software mode; leave it that way
		err = dev.Close()
		if err != nil {
			return console.Exit(1, "error releasing controller: %s", console.Red(err))
		}
		console.Printf("%s controller in software mode\n", console.PictoPlug)
		return nil
	},
}
