// fandbg is a low level debugging client for the Commander Core XT. It talks
// to the same endpoint session protocol as fanctl but exposes raw reads
// instead of typed channel operations.
package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	chlog "github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/mklimuk/fanctl/adapter"
	"github.com/mklimuk/fanctl/commander"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "fandbg",
	Short: "Commander Core XT protocol debugger",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		charm := chlog.NewWithOptions(os.Stderr, chlog.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			TimeFormat:      time.DateTime,
		})
		charm.SetColorProfile(termenv.TrueColor)
		charm.SetLevel(chlog.InfoLevel)
		if verbose {
			charm.SetLevel(chlog.DebugLevel)
		}
		slog.SetDefault(slog.New(charm))
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "attach to the controller and print discovery results",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		transport, err := adapter.Open()
		if err != nil {
			return fmt.Errorf("transport open: %w", err)
		}
		dev := commander.NewDevice(transport)
		if err := dev.Attach(ctx); err != nil {
			_ = transport.Close()
			return fmt.Errorf("attach: %w", err)
		}
		defer func() {
			_ = dev.Detach(ctx)
		}()

		if fw, ok := dev.Firmware(); ok {
			fmt.Printf("firmware:   %s\n", fw)
		} else {
			fmt.Println("firmware:   unavailable")
		}
		fmt.Printf("fans:       %d connected\n", dev.ConnectedFans().Count())
		for channel := 0; channel < commander.NumFans; channel++ {
			if !dev.ConnectedFans().Has(channel) {
				continue
			}
			label, _ := dev.FanLabel(channel)
			fmt.Printf("  channel %d: %s\n", channel, label)
		}
		fmt.Printf("temps:      %d connected\n", dev.ConnectedTemps().Count())
		return nil
	},
}

var readCmd = &cobra.Command{
	Use:   "read <endpoint>",
	Short: "run a read session against a raw endpoint and hex dump the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := strconv.ParseUint(strings.TrimPrefix(args[0], "0x"), 16, 8)
		if err != nil {
			return fmt.Errorf("invalid endpoint %q: %w", args[0], err)
		}
		transport, err := adapter.Open()
		if err != nil {
			return fmt.Errorf("transport open: %w", err)
		}
		dev := commander.NewDevice(transport)
		if err := dev.Attach(ctx); err != nil {
			_ = transport.Close()
			return fmt.Errorf("attach: %w", err)
		}
		defer func() {
			_ = dev.Detach(ctx)
		}()

		data, err := dev.DumpEndpoint(ctx, commander.Endpoint(id))
		if err != nil {
			return fmt.Errorf("endpoint %#02x read: %w", id, err)
		}
		fmt.Print(hex.Dump(data))
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(infoCmd, readCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
