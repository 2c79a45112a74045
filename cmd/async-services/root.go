package main

import (
	"fmt"
	"path/filepath"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tupyy/async-services/internal/config"
	"github.com/tupyy/async-services/pkg/log"
)

const (
	envPrefix = "ASYNC_SERVICES"
	dbFile    = "async-services.duckdb"
)

// configKeys maps flag names to configuration keys.
var configKeys = map[string]string{
	"log-format":      "logFormat",
	"log-level":       "logLevel",
	"server-mode":     "server.serverMode",
	"http-port":       "server.httpPort",
	"rate-limit":      "server.rateLimit",
	"rate-burst":      "server.rateBurst",
	"max-concurrency": "manager.maxConcurrency",
	"default-timeout": "manager.defaultTimeout",
	"data-folder":     "store.dataFolder",
	"jobs-file":       "jobs.file",
	"jobs-watch":      "jobs.watch",
	"auth-enabled":    "auth.enabled",
	"auth-secret":     "auth.secret",
}

type app struct {
	cfg        *config.Configuration
	configFile string
	logger     *zap.Logger
}

func newRootCommand() *cobra.Command {
	return newApp().command()
}

func newApp() *app {
	return &app{cfg: config.NewConfigurationWithOptionsAndDefaults()}
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:           "async-services",
		Short:         "Run asynchronous tasks and expose them over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: cobrautil.CommandStack(
			cobrautil.SyncViperPreRunE(envPrefix),
			a.loadConfiguration,
			a.initLogging,
		),
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "Configuration file (yaml, json or toml)")
	pf.StringVar(&a.cfg.LogFormat, "log-format", a.cfg.LogFormat, "Log format: console or json")
	pf.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "Log level")

	root.AddCommand(
		newServeCommand(a),
		newRunCommand(a),
		newKindsCommand(),
		newHistoryCommand(a),
		newPurgeCommand(a),
		newTokenCommand(a),
		newVersionCommand(),
	)
	return root
}

// loadConfiguration resolves the configuration from flags, environment
// (already synced into flags), the config file and the defaults, in that order.
func (a *app) loadConfiguration(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	if a.configFile != "" {
		v.SetConfigFile(a.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read configuration file %q: %w", a.configFile, err)
		}
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := configKeys[f.Name]
		if !ok || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(key, f)
	})
	if bindErr != nil {
		return bindErr
	}

	if err := v.Unmarshal(a.cfg); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}
	return a.cfg.Validate()
}

func (a *app) initLogging(*cobra.Command, []string) error {
	logger, _, err := log.InitLogger(a.cfg.LogFormat, a.cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *app) dbPath() string {
	if a.cfg.Store.DataFolder == "" {
		return ""
	}
	return filepath.Join(a.cfg.Store.DataFolder, dbFile)
}

func registerServerFlags(fs *pflag.FlagSet, cfg *config.Configuration) {
	fs.StringVar(&cfg.Server.ServerMode, "server-mode", cfg.Server.ServerMode, "Server mode: dev or prod")
	fs.IntVar(&cfg.Server.HTTPPort, "http-port", cfg.Server.HTTPPort, "HTTP listen port")
	fs.Float64Var(&cfg.Server.RateLimit, "rate-limit", cfg.Server.RateLimit, "API requests per second, 0 disables the limit")
	fs.IntVar(&cfg.Server.RateBurst, "rate-burst", cfg.Server.RateBurst, "API request burst")
	fs.BoolVar(&cfg.Auth.Enabled, "auth-enabled", cfg.Auth.Enabled, "Require a bearer token on the API")
	registerSecretFlag(fs, cfg)
}

func registerSecretFlag(fs *pflag.FlagSet, cfg *config.Configuration) {
	fs.StringVar(&cfg.Auth.Secret, "auth-secret", cfg.Auth.Secret, "HS256 token signing secret")
}

func registerManagerFlags(fs *pflag.FlagSet, cfg *config.Configuration) {
	fs.IntVar(&cfg.Manager.MaxConcurrency, "max-concurrency", cfg.Manager.MaxConcurrency, "Tasks running at once, 0 is unbounded")
	fs.DurationVar(&cfg.Manager.DefaultTimeout, "default-timeout", cfg.Manager.DefaultTimeout, "Timeout of tasks that do not set one, 0 disables it")
}

func registerStoreFlags(fs *pflag.FlagSet, cfg *config.Configuration) {
	fs.StringVar(&cfg.Store.DataFolder, "data-folder", cfg.Store.DataFolder, "Folder of the history database, empty keeps it in memory")
}

func registerJobsFlags(fs *pflag.FlagSet, cfg *config.Configuration) {
	fs.StringVar(&cfg.Jobs.File, "jobs-file", cfg.Jobs.File, "YAML file of cron jobs")
	fs.BoolVar(&cfg.Jobs.Watch, "jobs-watch", cfg.Jobs.Watch, "Reload the jobs file when it changes")
}
