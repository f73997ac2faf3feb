package main

import (
	"context"
	"encoding/hex"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/urfave/cli/v2"

	"github.com/mklimuk/fanctl/cmd/fanctl/console"
	"github.com/mklimuk/fanctl/commander"
)

var shellCmd = cli.Command{
	Name:  "shell",
	Usage: "interactive controller session",
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

		rl, err := readline.NewEx(&readline.Config{
			Prompt: console.Bold("fanctl> "),
			AutoComplete: readline.NewPrefixCompleter(
				readline.PcItem("status"),
				readline.PcItem("rpm"),
				readline.PcItem("pwm"),
				readline.PcItem("target"),
				readline.PcItem("dump"),
				readline.PcItem("help"),
				readline.PcItem("exit"),
			),
		})
		if err != nil {
			return console.Exit(1, "readline error: %s", console.Red(err))
		}
		defer rl.Close()

		shellHelp()
		for {
			line, err := rl.Readline()
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return console.Exit(1, "readline error: %s", console.Red(err))
			}
			args := strings.Fields(line)
			if len(args) == 0 {
				continue
			}
			if args[0] == "exit" || args[0] == "quit" {
				return nil
			}
			shellEval(ctx, dev, args)
		}
	},
}

func shellEval(ctx context.Context, dev *commander.Device, args []string) {
	switch args[0] {
	case "help":
		shellHelp()
	case "status":
		if fw, ok := dev.Firmware(); ok {
			console.Printf("firmware %s\n", console.White(fw))
		}
		for channel := 0; channel < commander.NumFans; channel++ {
			if !dev.ConnectedFans().Has(channel) {
				continue
			}
			label, _ := dev.FanLabel(channel)
			rpm, err := dev.FanRPM(ctx, channel)
			if err != nil {
				console.Errorf("%s: %s", label, console.Red(err))
				continue
			}
			pwm, err := dev.FanPWM(ctx, channel)
			if err != nil {
				console.Errorf("%s: %s", label, console.Red(err))
				continue
			}
			console.Printf("%s %s: %s rpm, pwm %s\n", console.PictoFan, cfg.Label(channel, label), console.White(rpm), console.White(pwm))
		}
	case "rpm":
		channel, ok := shellChannel(args, 2)
		if !ok {
			return
		}
		rpm, err := dev.FanRPM(ctx, channel)
		if err != nil {
			console.Errorf("rpm read error: %s", console.Red(err))
			return
		}
		console.Printf("%s %s rpm\n", console.PictoFan, console.White(rpm))
	case "pwm":
		channel, ok := shellChannel(args, 2)
		if !ok {
			return
		}
		if len(args) == 2 {
			pwm, err := dev.FanPWM(ctx, channel)
			if err != nil {
				console.Errorf("pwm read error: %s", console.Red(err))
				return
			}
			console.Printf("%s pwm %s\n", console.PictoFan, console.White(pwm))
			return
		}
		value, err := strconv.Atoi(args[2])
		if err != nil {
			console.Errorf("invalid pwm value: %s", console.Red(args[2]))
			return
		}
		err = dev.SetFanPWM(ctx, channel, value)
		if err != nil {
			console.Errorf("pwm write error: %s", console.Red(err))
			return
		}
		console.Printf("%s pwm set to %s\n", console.PictoFan, console.White(value))
	case "target":
		channel, ok := shellChannel(args, 2)
		if !ok {
			return
		}
		if len(args) == 2 {
			target, err := dev.FanTarget(channel)
			if errors.Is(err, commander.ErrNoData) {
				console.Print("no target set")
				return
			}
			if err != nil {
				console.Errorf("target read error: %s", console.Red(err))
				return
			}
			console.Printf("%s target %s rpm\n", console.PictoFan, console.White(target))
			return
		}
		value, err := strconv.Atoi(args[2])
		if err != nil {
			console.Errorf("invalid target value: %s", console.Red(args[2]))
			return
		}
		err = dev.SetFanTarget(channel, value)
		if errors.Is(err, commander.ErrUnsupported) {
			console.Warnf("target recorded but the controller does not apply it yet")
			return
		}
		if err != nil {
			console.Errorf("target write error: %s", console.Red(err))
		}
	case "dump":
		if len(args) < 2 {
			console.Errorf("usage: dump <endpoint>")
			return
		}
		id, err := strconv.ParseUint(strings.TrimPrefix(args[1], "0x"), 16, 8)
		if err != nil {
			console.Errorf("invalid endpoint: %s", console.Red(args[1]))
			return
		}
		data, err := dev.DumpEndpoint(ctx, commander.Endpoint(id))
		if err != nil {
			console.Errorf("dump error: %s", console.Red(err))
			return
		}
		console.Print(hex.Dump(data))
	default:
		console.Errorf("unknown command: %s", console.Red(args[0]))
	}
}

// shellChannel parses the channel argument at position 1 and checks that at
// least minArgs arguments are present.
func shellChannel(args []string, minArgs int) (int, bool) {
	if len(args) < minArgs {
		console.Errorf("usage: %s <channel> [value]", args[0])
		return 0, false
	}
	channel, err := parseChannel(args[1])
	if err != nil {
		console.Errorf("%s", console.Red(err))
		return 0, false
	}
	return channel, true
}

func shellHelp() {
	console.Print("commands:")
	console.Print("  status              firmware and all connected fans")
	console.Print("  rpm <ch>            read fan speed")
	console.Print("  pwm <ch> [0-255]    read or set fan duty cycle")
	console.Print("  target <ch> [rpm]   read or set fan target speed")
	console.Print("  dump <endpoint>     hex dump of a raw endpoint read")
	console.Print("  exit                leave the shell")
}
