package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/fanctl/cmd/fanctl/console"
	"github.com/mklimuk/fanctl/commander"
	"github.com/mklimuk/fanctl/hwmon"
)

var sensorKinds = []struct {
	sensor   hwmon.SensorType
	channels int
	picto    string
}{
	{hwmon.Temp, commander.NumTempSensors, console.PictoThermometer},
	{hwmon.Fan, commander.NumFans, console.PictoFan},
	{hwmon.PWM, commander.NumFans, console.PictoFan},
}

var sensorsCmd = cli.Command{
	Name:  "sensors",
	Usage: "dump every readable monitoring attribute through the hwmon surface",
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

		registry := hwmon.NewRegistry()
		if err := registry.Register("commander", dev); err != nil {
			return console.Exit(1, "chip registration error: %s", console.Red(err))
		}
		defer registry.Unregister("commander")

		for _, name := range registry.Names() {
			chip, ok := registry.Lookup(name)
			if !ok {
				continue
			}
			console.Printf("%s\n", console.Bold(name))
			dumpChip(ctx, chip)
		}
		return nil
	},
}

func dumpChip(ctx context.Context, chip hwmon.Chip) {
	for _, kind := range sensorKinds {
		for channel := 0; channel < kind.channels; channel++ {
			if chip.Visibility(kind.sensor, hwmon.Input, channel) == hwmon.Hidden {
				continue
			}
			name := sensorName(chip, kind.sensor, channel)
			value, err := chip.Read(ctx, kind.sensor, hwmon.Input, channel)
			if err != nil {
				console.Errorf("%s: %s", name, console.Red(err))
				continue
			}
			console.Printf("%s %s: %s\n", kind.picto, name, console.White(value))
		}
	}
}

func sensorName(chip hwmon.Chip, sensor hwmon.SensorType, channel int) string {
	if chip.Visibility(sensor, hwmon.Label, channel) != hwmon.Hidden {
		if label, err := chip.ReadString(sensor, hwmon.Label, channel); err == nil {
			return cfg.Label(channel, label)
		}
	}
	switch sensor {
	case hwmon.PWM:
		return fmt.Sprintf("pwm%d", channel+1)
	case hwmon.Temp:
		return fmt.Sprintf("temp%d", channel+1)
	default:
		return fmt.Sprintf("ch%d", channel+1)
	}
}
