package paths

import "github.com/matheus3301/wschat/internal/config"

// ResolveConfig loads the config file at flagPath, or at ConfigPath() when
// flagPath is empty. A missing file yields config.Default().
func ResolveConfig(flagPath string) (*config.Config, error) {
	if flagPath == "" {
		flagPath = ConfigPath()
	}
	return config.LoadOrDefault(flagPath)
}

// ResolveEndpoint determines the client endpoint using precedence:
// 1. flagOverride (--endpoint flag)
// 2. config.toml [client].endpoint
// 3. config.DefaultEndpoint
func ResolveEndpoint(flagOverride string, cfg *config.Config) string {
	if flagOverride != "" {
		return flagOverride
	}
	if cfg != nil && cfg.Client.Endpoint != "" {
		return cfg.Client.Endpoint
	}
	return config.DefaultEndpoint
}
