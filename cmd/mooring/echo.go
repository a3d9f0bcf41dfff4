package main

import (
	"os"

	"mooring/internal/handler"

	"github.com/spf13/cobra"
)

var echoCmd = &cobra.Command{
	Use:   "echo",
	Short: "Print every received request and answer 200 OK",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()
		h := handler.NewEchoHandler(os.Stdout, cfg.Echo.Full, cfg.Echo.Format)
		return listenAndServe(ctx, cfg.Echo.Addr, h)
	},
}

func init() {
	f := echoCmd.Flags()
	f.String("addr", "", "listen address")
	f.Bool("full", false, "print whole bodies instead of the first 1024 bytes")
	f.Bool("format", false, "pretty-print JSON bodies")
	bindFlags(echoCmd, map[string]string{
		"addr":   "echo.addr",
		"full":   "echo.full",
		"format": "echo.format",
	})
}
