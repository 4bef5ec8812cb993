package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matheus3301/wschat/internal/bus"
	"github.com/matheus3301/wschat/internal/config"
	"github.com/matheus3301/wschat/internal/logging"
	"github.com/matheus3301/wschat/internal/paths"
	"github.com/matheus3301/wschat/internal/status"
	"github.com/matheus3301/wschat/internal/store"
	intsync "github.com/matheus3301/wschat/internal/sync"
	"github.com/matheus3301/wschat/internal/wsclient"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:          "wschatctl",
	Short:        "Headless helper for the wschat client and server",
	SilenceUsage: true,
}

var (
	flagConfig   string
	flagEndpoint string
	flagJSON     bool
	flagVerbose  bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "config file (default ~/.wschat/config.toml)")
	flags.StringVar(&flagEndpoint, "endpoint", "", "WebSocket server URL (overrides config)")
	flags.BoolVar(&flagJSON, "json", false, "output in JSON format")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "log to stderr")

	rootCmd.AddCommand(watchCmd, contactsCmd, configCmd, statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := paths.ResolveConfig(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(logging.Options{
		Component: "wschatctl",
		Level:     cfg.Client.LogLevel,
		Console:   flagVerbose,
	})
}

// session is a headless client: store, state machine and sync engine on one bus.
type session struct {
	bus    *bus.Bus
	store  *store.Store
	engine *intsync.Engine
	logger *zap.Logger
}

func newSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	endpoint := paths.ResolveEndpoint(flagEndpoint, cfg)
	if err := paths.ValidateEndpoint(endpoint); err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	b := bus.New()
	st := store.NewStore(b)
	return &session{
		bus:    b,
		store:  st,
		engine: intsync.NewEngine(st, status.NewMachine(b), b, wsclient.Dialer{}, endpoint, logger),
		logger: logger,
	}, nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
