package main

import (
	"context"
	"errors"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/fanctl/cmd/fanctl/console"
	"github.com/mklimuk/fanctl/commander"
)

var fanCmd = cli.Command{
	Name:  "fan",
	Usage: "read and control individual fan channels",
	Subcommands: cli.Commands{
		&fanRPMCmd,
		&fanPWMCmd,
		&fanTargetCmd,
	},
}

var fanRPMCmd = cli.Command{
	Name:      "rpm",
	Usage:     "read the current speed of a fan channel",
	ArgsUsage: "<channel>",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
	},
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		channel, err := parseChannel(c.Args().First())
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		dev, err := attach(ctx)
		if err != nil {
			return console.Exit(1, "controller attach error: %s", console.Red(err))
		}
		defer func() {
			_ = dev.Detach(ctx)
		}()
		rpm, err := dev.FanRPM(ctx, channel)
		if err != nil {
			return console.Exit(1, "error reading fan %d rpm: %s", channel, console.Red(err))
		}
		console.Printf("%s %s rpm\n", console.PictoFan, console.White(rpm))
		return nil
	},
}

var fanPWMCmd = cli.Command{
	Name:      "pwm",
	Usage:     "read or set the duty cycle of a fan channel (0-255)",
	ArgsUsage: "<channel> [value]",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
	},
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		channel, err := parseChannel(c.Args().First())
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		dev, err := attach(ctx)
		if err != nil {
			return console.Exit(1, "controller attach error: %s", console.Red(err))
		}
		defer func() {
			_ = dev.Detach(ctx)
		}()
		if c.Args().Len() < 2 {
			pwm, err := dev.FanPWM(ctx, channel)
			if err != nil {
				return console.Exit(1, "error reading fan %d pwm: %s", channel, console.Red(err))
			}
			console.Printf("%s %s\n", console.PictoFan, console.White(pwm))
			return nil
		}
		value, err := strconv.Atoi(c.Args().Get(1))
		if err != nil {
			return console.Exit(1, "invalid pwm value: %s", console.Red(c.Args().Get(1)))
		}
		err = dev.SetFanPWM(ctx, channel, value)
		if err != nil {
			return console.Exit(1, "error setting fan %d pwm: %s", channel, console.Red(err))
		}
		console.Printf("%s fan %s pwm set to %s\n", console.PictoFan, console.White(channel), console.White(value))
		return nil
	},
}

var fanTargetCmd = cli.Command{
	Name:      "target",
	Usage:     "read or set the target speed of a fan channel",
	ArgsUsage: "<channel> [rpm]",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
	},
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		channel, err := parseChannel(c.Args().First())
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		dev, err := attach(ctx)
		if err != nil {
			return console.Exit(1, "controller attach error: %s", console.Red(err))
		}
		defer func() {
			_ = dev.Detach(ctx)
		}()
		if c.Args().Len() < 2 {
			target, err := dev.FanTarget(channel)
			if errors.Is(err, commander.ErrNoData) {
				console.Printf("%s no target set\n", console.PictoFan)
				return nil
			}
			if err != nil {
				return console.Exit(1, "error reading fan %d target: %s", channel, console.Red(err))
			}
			console.Printf("%s %s rpm\n", console.PictoFan, console.White(target))
			return nil
		}
		value, err := strconv.Atoi(c.Args().Get(1))
		if err != nil {
			return console.Exit(1, "invalid target value: %s", console.Red(c.Args().Get(1)))
		}
		err = dev.SetFanTarget(channel, value)
		if errors.Is(err, commander.ErrUnsupported) {
			console.Warnf("target speed is recorded but the controller does not apply it yet")
			return nil
		}
		if err != nil {
			return console.Exit(1, "error setting fan %d target: %s", channel, console.Red(err))
		}
		return nil
	},
}

func parseChannel(arg string) (int, error) {
	if arg == "" {
		return 0, errors.New("missing fan channel argument")
	}
	channel, err := strconv.Atoi(arg)
	if err != nil || channel < 0 || channel >= commander.NumFans {
		return 0, errors.New("fan channel must be a number between 0 and 5")
	}
	return channel, nil
}
