package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"codemetrics/internal/analysis"
	"codemetrics/internal/languages"
	"codemetrics/internal/model"
	"codemetrics/internal/scanner"
)

var errPathWithRepo = errors.New("path argument cannot be combined with --repo")

// newScanCmd 创建 scan 子命令。
// 示例：
//
//	codemetrics scan .
//	codemetrics scan ./project --format json --output result.json
//	codemetrics scan --repo https://github.com/owner/project.git
func newScanCmd(options *rootOptions, registry *languages.Registry) *cobra.Command {
	var repositoryURL string

	scanCmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "扫描目录、文件或远程仓库并输出代码度量信息",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if repositoryURL != "" && len(args) > 0 {
				return errPathWithRepo
			}

			cfg, logger, err := loadConfig(cmd, options, map[string]string{
				"report.format":              "format",
				"report.output":              "output",
				"report.no_color":            "no-color",
				"analysis.strict_code_lines": "strict",
				"analysis.max_file_size":     "max-file-size",
				"scan.workers":               "workers",
				"scan.extensions":            "ext",
				"scan.exclude_dirs":          "exclude",
				"scan.clone_depth":           "depth",
				"metrics.textfile":           "metrics-textfile",
			})
			if err != nil {
				return err
			}

			maxFileSize, err := cfg.Analysis.MaxFileSizeBytes()
			if err != nil {
				return err
			}

			var metrics *scanner.Metrics
			if cfg.Metrics.Textfile != "" {
				metrics = scanner.NewMetrics()
			}

			analyzer := analysis.NewAnalyzer(
				analysis.WithRegistry(registry),
				analysis.WithStrictCodeLines(cfg.Analysis.StrictCodeLines),
			)
			service := scanner.NewService(analyzer, scanner.Options{
				Workers:     cfg.Scan.Workers,
				Extensions:  cfg.Scan.Extensions,
				ExcludeDirs: cfg.Scan.ExcludeDirs,
				MaxFileSize: maxFileSize,
				CloneDepth:  cfg.Scan.CloneDepth,
				Logger:      logger,
				Metrics:     metrics,
			})

			var result model.ScanResult
			if repositoryURL != "" {
				result, err = service.ScanRepository(cmd.Context(), repositoryURL)
			} else {
				target := "."
				if len(args) > 0 {
					target = args[0]
				}
				result, err = service.ScanPath(cmd.Context(), target)
			}
			if err != nil {
				return err
			}

			if metrics != nil {
				if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
					return fmt.Errorf("export metrics: %w", err)
				}
				logger.Info("metrics exported", "path", cfg.Metrics.Textfile)
			}

			return emit(cmd, result, cfg.Report)
		},
	}

	scanCmd.Flags().StringVar(&repositoryURL, "repo", "", "扫描远程 git 仓库（浅克隆到临时目录）")
	scanCmd.Flags().String("format", "table", "输出格式: table, json 或 yaml")
	scanCmd.Flags().String("output", "", "导出文件路径，格式按后缀推断")
	scanCmd.Flags().Bool("no-color", false, "禁用彩色输出")
	scanCmd.Flags().Bool("strict", false, "代码行不计入纯注释行")
	scanCmd.Flags().String("max-file-size", "1MB", "单文件大小上限，例如 512KB、2MiB")
	scanCmd.Flags().Int("workers", 0, "并发 worker 数量，0 表示 CPU 核数")
	scanCmd.Flags().StringSlice("ext", scanner.DefaultExtensions, "允许扫描的文件后缀")
	scanCmd.Flags().StringSlice("exclude", scanner.DefaultExcludeDirs, "跳过的目录名")
	scanCmd.Flags().Int("depth", 1, "克隆仓库的 --depth，0 表示完整克隆")
	scanCmd.Flags().String("metrics-textfile", "", "把 Prometheus 指标写入 textfile")

	return scanCmd
}
