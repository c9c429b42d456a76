package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dhaniamnd/co2-reporter/internal/config"
	"github.com/dhaniamnd/co2-reporter/internal/logging"
)

// rootOptions 全局参数
type rootOptions struct {
	cfgFile   string
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "co2reporter",
		Short: "Compute CO2 emissions from cement plant workbooks",
		Long: `co2reporter reads cement plant production workbooks (tidy row-per-month
sheets or transposed indicator x plant matrices), validates them and computes
process, fuel and electricity CO2 emissions. It can serve the interactive
report over HTTP or produce CSV/XLSX reports from the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is config.toml next to the executable)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: text or json")

	cmd.AddCommand(
		newServeCmd(opts),
		newReportCmd(opts),
		newTemplateCmd(),
	)
	return cmd
}

// load 加载配置并按命令行参数覆盖日志设置
func (o *rootOptions) load() (*config.AppConfig, config.LoadConfigInfo, *slog.Logger, error) {
	cfg, info, err := config.LoadConfigWithInfo(o.cfgFile)
	if err != nil {
		return nil, info, nil, err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Logging.Format = o.logFormat
	}
	logger := logging.New(cfg.Logging, nil)
	slog.SetDefault(logger)
	return cfg, info, logger, nil
}
