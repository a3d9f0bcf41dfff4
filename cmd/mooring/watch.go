package main

import (
	"mooring/internal/dashboard"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show a receiver's hook tensions in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval := cfg.Dashboard.Interval.Duration()
		client := dashboard.NewClient(cfg.Dashboard.URL, interval)
		m := dashboard.New(client, interval, cfg.Receiver.AttentionThreshold, cfg.Receiver.CriticalThreshold)
		return dashboard.Run(m)
	},
}

func init() {
	f := watchCmd.Flags()
	f.String("url", "", "receiver base URL")
	f.Duration("refresh", 0, "poll interval")
	bindFlags(watchCmd, map[string]string{
		"url":     "dashboard.url",
		"refresh": "dashboard.interval",
	})
}
