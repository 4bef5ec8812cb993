package main

import (
	"fmt"
	"os"
	"time"

	"github.com/matheus3301/wschat/internal/daemon"
	"github.com/matheus3301/wschat/internal/paths"
	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:          "wschatd",
	Short:        "WebSocket test server that pushes canned chat messages",
	SilenceUsage: true,
	RunE:         runDaemon,
}

var (
	flagConfig   string
	flagListen   string
	flagInterval time.Duration
	flagLogLevel string
	flagQR       bool
	flagQuiet    bool
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&flagConfig, "config", "", "config file (default ~/.wschat/config.toml)")
	flags.StringVar(&flagListen, "listen", "", "listen address (overrides config, default :8181)")
	flags.DurationVar(&flagInterval, "interval", 0, "delay between canned messages (overrides config, default 5s)")
	flags.StringVar(&flagLogLevel, "log-level", "", "log level (overrides config)")
	flags.BoolVar(&flagQR, "qr", false, "print a QR code of the endpoint URL on startup")
	flags.BoolVar(&flagQuiet, "quiet", false, "log to file only")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runDaemon(cmd *cobra.Command, _ []string) error {
	cfg, err := paths.ResolveConfig(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flagInterval > 0 {
		cfg.Server.Interval = flagInterval
	}
	if flagLogLevel != "" {
		cfg.Server.LogLevel = flagLogLevel
	}

	p := daemon.Params{Config: cfg, Listen: flagListen, Console: !flagQuiet}

	app := fx.New(
		daemon.Module(p),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
		fx.Invoke(func(srv *daemon.Server) {
			if flagQR {
				printQR(cmd, srv.URL())
			}
		}),
	)
	if err := app.Err(); err != nil {
		return err
	}
	app.Run()
	return nil
}

func printQR(cmd *cobra.Command, url string) {
	q, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "qr: %v\n", err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), q.ToSmallString(false))
	fmt.Fprintln(cmd.OutOrStdout(), url)
}
