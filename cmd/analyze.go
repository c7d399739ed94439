package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"codemetrics/internal/analysis"
	"codemetrics/internal/languages"
	"codemetrics/internal/scanner"
)

// newAnalyzeCmd 创建 analyze 子命令，对单个文件输出完整度量。
// 未识别的后缀会按通用模式表分析。
// 示例：
//
//	codemetrics analyze src/app.js
//	codemetrics analyze main.py --format json --output report/main.json
func newAnalyzeCmd(options *rootOptions, registry *languages.Registry) *cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "分析单个文件并输出度量与质量问题",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, options, map[string]string{
				"report.format":              "format",
				"report.output":              "output",
				"report.no_color":            "no-color",
				"analysis.strict_code_lines": "strict",
				"analysis.max_file_size":     "max-file-size",
			})
			if err != nil {
				return err
			}

			maxFileSize, err := cfg.Analysis.MaxFileSizeBytes()
			if err != nil {
				return err
			}

			analyzer := analysis.NewAnalyzer(
				analysis.WithRegistry(registry),
				analysis.WithStrictCodeLines(cfg.Analysis.StrictCodeLines),
			)
			service := scanner.NewService(analyzer, scanner.Options{
				MaxFileSize: maxFileSize,
				Logger:      logger,
			})

			content, err := service.ReadSource(args[0])
			if err != nil {
				return err
			}
			if !registry.Supports(args[0]) {
				logger.Info("unrecognized extension, using generic patterns", "path", args[0])
			}

			result := analyzer.Analyze(filepath.ToSlash(args[0]), content)
			logger.Debug("file analyzed", "path", result.FileName, "language", result.Language)

			return emit(cmd, result, cfg.Report)
		},
	}

	analyzeCmd.Flags().String("format", "table", "输出格式: table, json 或 yaml")
	analyzeCmd.Flags().String("output", "", "导出文件路径，格式按后缀推断")
	analyzeCmd.Flags().Bool("no-color", false, "禁用彩色输出")
	analyzeCmd.Flags().Bool("strict", false, "代码行不计入纯注释行")
	analyzeCmd.Flags().String("max-file-size", "1MB", "单文件大小上限，例如 512KB、2MiB")

	return analyzeCmd
}
