// Package config defines the configuration structure for async-services.
//
// Configuration is organized into logical sections (Server, Manager, Store,
// Jobs, Authentication) and uses code generation via optgen to create
// functional option helpers.
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - HTTP server settings
//	├── Manager        - Task manager limits
//	├── Store          - History database location
//	├── Jobs           - Cron jobs file
//	├── Auth           - Authentication settings
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Server Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────┐
//	│ Field            │ Default │ Description                            │
//	├──────────────────┼─────────┼────────────────────────────────────────┤
//	│ ServerMode       │ "dev"   │ Server mode: "prod" or "dev"           │
//	│ HTTPPort         │ 8000    │ HTTP server listen port                │
//	│ RateLimit        │ 50      │ API requests per second, 0 disables    │
//	│ RateBurst        │ 100     │ Token bucket size                      │
//	└──────────────────┴─────────┴────────────────────────────────────────┘
//
// # Manager Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────┐
//	│ Field            │ Default │ Description                            │
//	├──────────────────┼─────────┼────────────────────────────────────────┤
//	│ MaxConcurrency   │ 0       │ Tasks running at once, 0 is unbounded  │
//	│ DefaultTimeout   │ 0s      │ Timeout for tasks not setting one      │
//	└──────────────────┴─────────┴────────────────────────────────────────┘
//
// # Store and Jobs Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────┐
//	│ Field            │ Default │ Description                            │
//	├──────────────────┼─────────┼────────────────────────────────────────┤
//	│ DataFolder       │ ""      │ DuckDB folder, empty means in-memory   │
//	│ File             │ ""      │ YAML jobs file, empty disables cron    │
//	│ Watch            │ true    │ Reload jobs when the file changes      │
//	└──────────────────┴─────────┴────────────────────────────────────────┘
//
// # Authentication Configuration
//
//	┌─────────────┬─────────┬────────────────────────────────────────┐
//	│ Field       │ Default │ Description                            │
//	├─────────────┼─────────┼────────────────────────────────────────┤
//	│ Enabled     │ false   │ Require a HS256 bearer token           │
//	│ Secret      │ ""      │ Shared signing secret                  │
//	└─────────────┴─────────┴────────────────────────────────────────┘
//
// # Usage Example
//
//	cfg := config.NewConfigurationWithOptionsAndDefaults(
//	    config.WithManager(config.Manager{MaxConcurrency: 8}),
//	    config.WithLogLevel("info"),
//	)
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// # Debug Logging
//
// Fields are tagged with `debugmap` so the configuration can be logged
// without exposing the authentication secret:
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config
