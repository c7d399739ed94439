// Package cmd 提供 codemetrics 的命令行入口与子命令编排。
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codemetrics/internal/config"
	"codemetrics/internal/languages"
	"codemetrics/internal/logging"
	"codemetrics/internal/report"
)

// rootOptions 存放全部子命令共享的参数。
type rootOptions struct {
	configPath string
}

// globalBindings 把根命令的持久化 flag 映射到配置键。
var globalBindings = map[string]string{
	"logging.level":  "log-level",
	"logging.format": "log-format",
}

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本；Ctrl+C 会取消正在进行的扫描。
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd(version, languages.Default())
	return rootCmd.ExecuteContext(ctx)
}

// newRootCmd 创建根命令并注册全部子命令。
func newRootCmd(version string, registry *languages.Registry) *cobra.Command {
	options := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "codemetrics",
		Short: "基于词法模式表的代码度量工具",
		Long: "codemetrics 按语言模式表统计行数、注释、圈复杂度与函数，\n" +
			"并给出 0~100 的启发式质量得分，支持目录并发扫描与远程仓库扫描。",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&options.configPath, "config", "", "配置文件路径，默认查找 ./codemetrics.yaml")
	rootCmd.PersistentFlags().String("log-level", "info", "日志级别: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "日志格式: text 或 json")

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguageCmd(registry))
	rootCmd.AddCommand(newAnalyzeCmd(options, registry))
	rootCmd.AddCommand(newScanCmd(options, registry))

	return rootCmd
}

// loadConfig 读取配置并把命令行 flag 绑定到对应配置键，只有显式传入的 flag 会覆盖配置。
func loadConfig(cmd *cobra.Command, options *rootOptions, bindings map[string]string) (*config.Config, *slog.Logger, error) {
	viperCfg := viper.New()

	for _, group := range []map[string]string{globalBindings, bindings} {
		for key, flagName := range group {
			flag := cmd.Flags().Lookup(flagName)
			if flag == nil {
				continue
			}
			if err := viperCfg.BindPFlag(key, flag); err != nil {
				return nil, nil, fmt.Errorf("bind flag %s: %w", flagName, err)
			}
		}
	}

	cfg, err := config.LoadWith(viperCfg, options.configPath)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.New(cfg.Logging, cmd.ErrOrStderr())
	if used := viperCfg.ConfigFileUsed(); used != "" {
		logger.Debug("config loaded", "file", used)
	}
	return cfg, logger, nil
}

// emit 按配置输出结果，配置了导出路径时同时写文件。
func emit(cmd *cobra.Command, value any, cfg config.ReportConfig) error {
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	if err := report.Render(cmd.OutOrStdout(), value, format, report.Options{NoColor: cfg.NoColor}); err != nil {
		return err
	}

	outputPath := strings.TrimSpace(cfg.Output)
	if outputPath == "" {
		return nil
	}
	if err := report.WriteFile(outputPath, value, report.FormatForPath(outputPath, format)); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Report exported to %s\n", outputPath)
	return nil
}
