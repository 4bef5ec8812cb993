package main

import (
	"fmt"
	"os"
	"time"

	"github.com/matheus3301/wschat/internal/bus"
	"github.com/matheus3301/wschat/internal/logging"
	"github.com/matheus3301/wschat/internal/paths"
	"github.com/matheus3301/wschat/internal/status"
	"github.com/matheus3301/wschat/internal/store"
	intsync "github.com/matheus3301/wschat/internal/sync"
	"github.com/matheus3301/wschat/internal/tui"
	"github.com/matheus3301/wschat/internal/wsclient"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:          "wschat",
	Short:        "Terminal chat client for the wschat test server",
	SilenceUsage: true,
	RunE:         runChat,
}

var (
	flagConfig      string
	flagEndpoint    string
	flagNoSeed      bool
	flagOffline     bool
	flagStartServer bool
	flagLogLevel    string
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&flagConfig, "config", "", "config file (default ~/.wschat/config.toml)")
	flags.StringVar(&flagEndpoint, "endpoint", "", "WebSocket server URL (overrides config)")
	flags.BoolVar(&flagNoSeed, "no-seed", false, "start with an empty contact list")
	flags.BoolVar(&flagOffline, "offline", false, "do not connect to a server")
	flags.BoolVar(&flagStartServer, "start-server", false, "start wschatd if the endpoint does not answer")
	flags.StringVar(&flagLogLevel, "log-level", "", "log level (overrides config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := paths.ResolveConfig(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	endpoint := paths.ResolveEndpoint(flagEndpoint, cfg)
	if err := paths.ValidateEndpoint(endpoint); err != nil {
		return err
	}
	if err := paths.EnsureDir(); err != nil {
		return fmt.Errorf("create %s: %w", paths.BaseDir(), err)
	}

	level := cfg.Client.LogLevel
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	// File only: console output would corrupt the screen.
	logger, err := logging.New(logging.Options{
		Path:      paths.LogPath("wschat"),
		Component: "wschat",
		Level:     level,
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if flagStartServer && !flagOffline {
		if err := ensureServer(endpoint, logger); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
	}

	b := bus.New()
	st := store.NewStore(b)
	if cfg.Client.SeedDemo && !flagNoSeed {
		st.Seed(store.DemoSeed(time.Now()))
	}

	var engine *intsync.Engine
	if !flagOffline {
		engine = intsync.NewEngine(st, status.NewMachine(b), b, wsclient.Dialer{}, endpoint, logger.Named("sync"))
	}

	logger.Info("starting", zap.String("endpoint", endpoint), zap.Bool("offline", flagOffline))
	app := tui.NewApp(tui.Options{
		Store:       st,
		Engine:      engine,
		Bus:         b,
		Logger:      logger.Named("tui"),
		AutoConnect: engine != nil,
	})
	runErr := app.Run()

	if engine != nil {
		engine.Disconnect()
	}
	logger.Info("exiting")
	return runErr
}
