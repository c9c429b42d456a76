package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dhaniamnd/co2-reporter/internal/server"
	"github.com/dhaniamnd/co2-reporter/internal/util"
)

// 未显式配置端口时向后探测的端口数
const portSearchLimit = 20

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		port      int
		devMode   bool
		noBrowser bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web report server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, info, logger, err := root.load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			// 命令行端口仅在配置未显式指定时生效
			if port > 0 && !info.PortSpecified {
				cfg.Server.Port = port
			}
			if devMode {
				cfg.Server.DevMode = true
			}
			if noBrowser {
				cfg.Server.OpenBrowser = false
			}
			if !info.PortSpecified && port == 0 {
				p, err := util.FindAvailablePort(cfg.Server.Port, portSearchLimit)
				if err != nil {
					return err
				}
				cfg.Server.Port = p
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "==========================================")
			fmt.Fprintln(out, "  co2reporter - cement plant CO2 report")
			fmt.Fprintln(out, "==========================================")
			if info.FileFound {
				fmt.Fprintf(out, "Config: %s\n", info.Path)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.NewServer(cfg, logger)
			addr := fmt.Sprintf(":%d", cfg.Server.Port)
			url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Run(ctx, addr) }()

			switch {
			case cfg.Server.DevMode:
				fmt.Fprintf(out, "Dev mode: visit %s\n", url)
			case cfg.Server.OpenBrowser:
				fmt.Fprintf(out, "Opening browser: %s\n", url)
				if err := util.OpenBrowserWithFallback(url); err != nil {
					fmt.Fprintf(out, "Could not open a browser, visit %s manually\n", url)
				}
			default:
				fmt.Fprintf(out, "Listening on %s\n", url)
			}
			fmt.Fprintln(out, "Press Ctrl+C to stop...")

			return <-errCh
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "server port (ignored when config.toml sets server.port)")
	cmd.Flags().BoolVar(&devMode, "dev", false, "dev mode: redirect pages to the frontend dev server")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "do not open a browser on start")
	return cmd
}
