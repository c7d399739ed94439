package cmd

import (
	"github.com/spf13/cobra"

	"codemetrics/internal/languages"
	"codemetrics/internal/report"
)

// newLanguageCmd 创建 language 子命令。
// 命令用于展示已内置模式表的语言、语法家族以及对应文件后缀。
func newLanguageCmd(registry *languages.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "language",
		Short: "展示已支持语言、语法家族及后缀",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return report.PrintLanguages(cmd.OutOrStdout(), registry.Languages())
		},
	}
}
