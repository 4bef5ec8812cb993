package daemon

import (
	"context"

	"github.com/matheus3301/wschat/internal/broadcast"
	"github.com/matheus3301/wschat/internal/config"
	"github.com/matheus3301/wschat/internal/lock"
	"github.com/matheus3301/wschat/internal/logging"
	"github.com/matheus3301/wschat/internal/metrics"
	"github.com/matheus3301/wschat/internal/paths"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// LockName is the pid file name used by wschatd inside the base directory.
const LockName = "wschatd"

// Params holds the resolved daemon configuration passed to the fx module.
type Params struct {
	Config  *config.Config
	Listen  string // overrides Config.Server.Listen when set
	BaseDir string // optional override for testing; empty = paths.BaseDir()
	Console bool   // also log to stderr
}

func (p Params) listen() string {
	if p.Listen != "" {
		return p.Listen
	}
	if p.Config != nil && p.Config.Server.Listen != "" {
		return p.Config.Server.Listen
	}
	return config.DefaultListen
}

func (p Params) baseDir() string {
	if p.BaseDir != "" {
		return p.BaseDir
	}
	return paths.BaseDir()
}

func (p Params) server() config.ServerConfig {
	if p.Config == nil {
		return config.Default().Server
	}
	return p.Config.Server
}

// Module returns the fx module for the broadcast daemon, composing all
// providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("daemon",
		fx.Supply(p),
		fx.Provide(
			provideLogger,
			provideLock,
			provideRegistry,
			metrics.New,
			provideBroadcast,
			NewServer,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideLogger(p Params) (*zap.Logger, error) {
	path := ""
	if p.BaseDir == "" {
		if err := paths.EnsureDir(); err != nil {
			return nil, err
		}
		path = paths.LogPath(LockName)
	}
	return logging.New(logging.Options{
		Path:      path,
		Component: LockName,
		Level:     p.server().LogLevel,
		Console:   p.Console,
	})
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	l, err := lock.Acquire(p.baseDir(), LockName, p.listen())
	if err != nil {
		return nil, err
	}
	logger.Info("daemon lock acquired", zap.String("path", lock.Path(p.baseDir(), LockName)))
	return l, nil
}

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideBroadcast(p Params, m *metrics.Metrics, logger *zap.Logger) *broadcast.Server {
	return broadcast.NewServer(broadcast.OptionsFromConfig(p.server()), m, logger.Named("broadcast"))
}

func registerLifecycle(lc fx.Lifecycle, lk *lock.Lock, srv *Server, bs *broadcast.Server, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := srv.Start(); err != nil {
					logger.Error("http server error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// Hijacked WebSocket connections are not tracked by Shutdown,
			// so the broadcast loops are stopped separately.
			srv.Stop(ctx)
			bs.Close()
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("daemon stopped")
			_ = logger.Sync()
			return nil
		},
	})
}
