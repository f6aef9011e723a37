package main

import (
	"context"
	"fmt"
	"os"

	"godotmcp/internal/config"
	"godotmcp/internal/engine"
	"godotmcp/internal/gateway"
	"godotmcp/internal/httpapi"
	"godotmcp/internal/logging"
	"godotmcp/internal/mcp"
	"godotmcp/internal/relay"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

func newStdioCommand(v *viper.Viper) *cobra.Command {
	var httpAddr string

	cmd := &cobra.Command{
		Use:   "stdio",
		Short: "Serve MCP over stdin/stdout",
		Long: "Serve the Model Context Protocol over stdin/stdout. With --http the REST " +
			"transport runs alongside it and both share one project binding.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			gw, err := buildGateway(cfg, logger)
			if err != nil {
				return err
			}
			mcpServer := mcp.NewServer(gw, logger, Version)

			if httpAddr == "" {
				return mcpServer.Serve(cmd.Context(), os.Stdin, os.Stdout)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			grp, gctx := errgroup.WithContext(ctx)
			grp.Go(func() error {
				// The MCP client going away ends the whole process.
				defer cancel()
				return mcpServer.Serve(gctx, os.Stdin, os.Stdout)
			})
			grp.Go(func() error {
				return httpapi.New(gw, logger).ListenAndServe(gctx, httpAddr)
			})
			return grp.Wait()
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http", "", "also serve the REST API on this address (e.g. localhost:8081)")
	return cmd
}

func newHTTPCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve the REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			gw, err := buildGateway(cfg, logger)
			if err != nil {
				return err
			}
			return httpapi.New(gw, logger).ListenAndServe(cmd.Context(), cfg.HTTPListen)
		},
	}

	cmd.Flags().StringP("listen", "l", config.DefaultHTTPListen, "listen address for the REST API")
	mustBindFlag(v, httpListenKey, "HTTP_LISTEN", cmd.Flags().Lookup("listen"))
	return cmd
}

// buildGateway wires the collaborators from cfg and binds cfg.ProjectPath.
func buildGateway(cfg *config.Config, logger *logging.AppLogger) (*gateway.Gateway, error) {
	gw := gateway.New(gateway.Options{
		Version: Version,
		Runner:  engine.NewRunner(cfg.Executables, cfg.CommandTimeout, logger),
		Relay:   relay.NewClient(cfg.RelayHost, cfg.RelayPort, cfg.RelayEndpoint, cfg.RelayTimeout, logger),
		Logger:  logger,
	})

	if cfg.ProjectPath != "" {
		path, err := gw.Binding().Set(cfg.ProjectPath)
		if err != nil {
			return nil, fmt.Errorf("cannot bind startup project: %w", err)
		}
		logger.Info("Bound startup project", "path", path)
	}
	return gw, nil
}
