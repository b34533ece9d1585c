package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/retain/internal/config"
	"github.com/vango-dev/retain/internal/demo"
	"github.com/vango-dev/retain/pkg/component"
	"github.com/vango-dev/retain/pkg/server"
	"github.com/vango-dev/retain/pkg/telemetry"
)

func serveCmd(load func() (*config.Config, error)) *cobra.Command {
	var (
		host  string
		port  int
		title string
		todos []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo tree live over WebSocket",
		Long: `Serve the demo page. Every WebSocket connection gets its own tree.

Examples:
  retain serve
  retain serve --port 8080 --todo "write docs"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			srv := newServer(cfg, title, func() component.Prefab { return demo.Page(title, todos...) }, cmd.ErrOrStderr())

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from "+config.ConfigFileName+")")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from "+config.ConfigFileName+")")
	cmd.Flags().StringVarP(&title, "title", "t", "retain", "Page title")
	cmd.Flags().StringSliceVar(&todos, "todo", []string{"Try the counter", "Add an item"}, "Initial todo items")
	return cmd
}

func newServer(cfg *config.Config, title string, root func() component.Prefab, w io.Writer) *server.Server {
	logger := newLogger(cfg, w)
	opts := []server.Option{server.WithLogger(logger)}

	if cfg.Telemetry.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := telemetry.NewMetrics(
			telemetry.WithRegistry(reg),
			telemetry.WithNamespace(cfg.Telemetry.Namespace),
		)
		opts = append(opts, server.WithMetrics(m, reg))
	}
	if cfg.Telemetry.TracerName != "" {
		opts = append(opts, server.WithTracer(telemetry.NewTracer(cfg.Telemetry.TracerName)))
	}

	return server.New(root, server.Config{
		Address:           cfg.Address(),
		LivePath:          cfg.Server.Path,
		MetricsPath:       cfg.Telemetry.MetricsPath,
		Title:             title,
		ReadBufferSize:    cfg.Server.ReadBufferSize,
		WriteBufferSize:   cfg.Server.WriteBufferSize,
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		PingInterval:      cfg.PingInterval(),
		MaxSessions:       cfg.Server.MaxSessions,
		MaxFollowUpPasses: cfg.Render.MaxFollowUpPasses,
	}, opts...)
}
