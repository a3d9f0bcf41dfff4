package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mooring/internal/config"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     *config.Config
	v       = viper.New()
	logger  = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, TimeFormat: time.DateTime})
)

var rootCmd = &cobra.Command{
	Use:   "mooring",
	Short: "Synthetic port mooring telemetry",
	Long: `Generates evolving snapshots of a port's berths, bollards, hooks and radars,
publishes them to a receiver or to files, and receives and monitors them.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $MOORING_CONFIG, ./mooring.yaml, ~/.config/mooring/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	cobra.CheckErr(v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")))

	rootCmd.AddCommand(generateCmd, receiveCmd, echoCmd, serveCmd, openapiCmd, watchCmd, configCmd)
}

// loadConfig reads the config file, environment and bound flags
func loadConfig(cmd *cobra.Command, args []string) error {
	c, path, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg = c

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	logger.SetLevel(level)
	log.SetDefault(logger)

	if path != "" {
		logger.Debug("using config file", "path", path)
	}
	return nil
}

// bindFlags binds cmd's local flags to config keys, flag name to key
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for name, key := range keys {
		cobra.CheckErr(v.BindPFlag(key, cmd.Flags().Lookup(name)))
	}
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// listenAndServe runs an HTTP server until ctx is cancelled, then drains it
func listenAndServe(ctx context.Context, addr string, h http.Handler) error {
	server := &http.Server{
		Addr:        addr,
		Handler:     h,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
