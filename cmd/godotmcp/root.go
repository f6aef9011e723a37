package main

import (
	"fmt"
	"os"
	"strings"

	"godotmcp/internal/config"
	"godotmcp/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileKey    = "config"
	logLevelKey      = "log_level"
	projectPathKey   = "project_path"
	timeoutKey       = "command_timeout"
	executablesKey   = "executables"
	relayHostKey     = "relay_host"
	relayPortKey     = "relay_port"
	relayEndpointKey = "relay_endpoint"
	relayTimeoutKey  = "relay_timeout"
	httpListenKey    = "http_listen"
)

// envPrefix is prepended to every environment override.
const envPrefix = "GODOT_MCP_"

func newRootCommand() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "godotmcp",
		Short:         "Bridge MCP and HTTP clients to a local Godot project",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default "+config.ConfigPath()+")")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.StringP("project", "p", "", "Godot project directory to bind at startup")
	flags.Duration("timeout", config.DefaultCommandTimeout, "timeout for a single Godot command")
	flags.StringSlice("executables", nil, "Godot binary names searched on PATH, in order")
	flags.String("relay-host", config.DefaultRelayHost, "host of the running Godot instance")
	flags.Int("relay-port", config.DefaultRelayPort, "default port of the running Godot instance")
	flags.String("relay-endpoint", config.DefaultRelayEndpoint, "default endpoint path on the Godot instance")
	flags.Duration("relay-timeout", config.DefaultRelayTimeout, "timeout for a relayed request")

	mustBindFlag(v, configFileKey, "CONFIG", flags.Lookup("config"))
	mustBindFlag(v, logLevelKey, "LOG_LEVEL", flags.Lookup("log-level"))
	mustBindFlag(v, projectPathKey, "PROJECT", flags.Lookup("project"))
	mustBindFlag(v, timeoutKey, "TIMEOUT", flags.Lookup("timeout"))
	mustBindFlag(v, executablesKey, "EXECUTABLES", flags.Lookup("executables"))
	mustBindFlag(v, relayHostKey, "RELAY_HOST", flags.Lookup("relay-host"))
	mustBindFlag(v, relayPortKey, "RELAY_PORT", flags.Lookup("relay-port"))
	mustBindFlag(v, relayEndpointKey, "RELAY_ENDPOINT", flags.Lookup("relay-endpoint"))
	mustBindFlag(v, relayTimeoutKey, "RELAY_TIMEOUT", flags.Lookup("relay-timeout"))

	root.AddCommand(newStdioCommand(v))
	root.AddCommand(newHTTPCommand(v))
	root.AddCommand(newConfigCommand(v))
	root.AddCommand(newVersionCommand())
	return root
}

func mustBindFlag(v *viper.Viper, key, env string, flag *pflag.Flag) {
	if flag == nil {
		panic(fmt.Sprintf("flag for key %s not found", key))
	}
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
	if env != "" {
		if err := v.BindEnv(key, envPrefix+env); err != nil {
			panic(err)
		}
	}
}

// loadConfig reads the config file and applies explicitly set flags and
// environment variables on top. Unset flags never override the file.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg, err := config.Load(v.GetString(configFileKey))
	if err != nil {
		return nil, err
	}

	if v.IsSet(logLevelKey) {
		cfg.LogLevel = v.GetString(logLevelKey)
	}
	if v.IsSet(projectPathKey) {
		cfg.ProjectPath = v.GetString(projectPathKey)
	}
	if v.IsSet(timeoutKey) {
		cfg.CommandTimeout = v.GetDuration(timeoutKey)
	}
	if v.IsSet(executablesKey) {
		cfg.Executables = splitList(v.GetStringSlice(executablesKey))
	}
	if v.IsSet(relayHostKey) {
		cfg.RelayHost = v.GetString(relayHostKey)
	}
	if v.IsSet(relayPortKey) {
		cfg.RelayPort = v.GetInt(relayPortKey)
	}
	if v.IsSet(relayEndpointKey) {
		cfg.RelayEndpoint = v.GetString(relayEndpointKey)
	}
	if v.IsSet(relayTimeoutKey) {
		cfg.RelayTimeout = v.GetDuration(relayTimeoutKey)
	}
	if v.IsSet(httpListenKey) {
		cfg.HTTPListen = v.GetString(httpListenKey)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// splitList accepts both repeated flags and a comma-separated env value.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// newLogger builds the process logger. DEBUG=1 keeps the debug-file behavior.
func newLogger(cfg *config.Config) *logging.AppLogger {
	var logger *logging.AppLogger
	if os.Getenv("DEBUG") != "" {
		logger = logging.NewAppLogger()
	} else {
		logger = logging.NewWithWriter(os.Stderr, cfg.LogLevel)
	}
	logging.SetDefault(logger)
	return logger
}
