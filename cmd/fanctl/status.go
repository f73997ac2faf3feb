package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/mklimuk/fanctl/cmd/fanctl/console"
	"github.com/mklimuk/fanctl/commander"
)

type fanStatus struct {
	Label string `yaml:"label"`
	RPM   int    `yaml:"rpm"`
	PWM   int    `yaml:"pwm"`
}

type controllerStatus struct {
	Firmware string               `yaml:"firmware,omitempty"`
	Fans     map[string]fanStatus `yaml:"fans"`
}

var statusCmd = cli.Command{
	Name:  "status",
	Usage: "show firmware version and the state of all connected fans",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
	},
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		dev, err := attach(ctx)
		if err != nil {
			return console.Exit(1, "controller attach error: %s", console.Red(err))
		}
		defer func() {
			_ = dev.Detach(ctx)
		}()

		status := controllerStatus{Fans: make(map[string]fanStatus)}
		if fw, ok := dev.Firmware(); ok {
			status.Firmware = fw.String()
		}
		for channel := 0; channel < commander.NumFans; channel++ {
			if !dev.ConnectedFans().Has(channel) {
				continue
			}
			label, _ := dev.FanLabel(channel)
			rpm, err := dev.FanRPM(ctx, channel)
			if err != nil {
				return console.Exit(1, "error reading fan %d rpm: %s", channel, console.Red(err))
			}
			pwm, err := dev.FanPWM(ctx, channel)
			if err != nil {
				return console.Exit(1, "error reading fan %d pwm: %s", channel, console.Red(err))
			}
			status.Fans[label] = fanStatus{
				Label: cfg.Label(channel, label),
				RPM:   rpm,
				PWM:   pwm,
			}
		}

		enc := yaml.NewEncoder(os.Stdout)
		err = enc.Encode(status)
		if err != nil {
			return console.Exit(1, "encoding error: %s", console.Red(err))
		}
		return nil
	},
}
